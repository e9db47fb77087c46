package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/moodwire/moodwire/internal/ingest"
	"github.com/moodwire/moodwire/internal/sentiment"
)

// ANSI color codes for sentiment labels
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorDim   = "\033[2m"
	colorBold  = "\033[1m"
)

// TopicTables writes one table per topic to w, in the order of topics.
// Topics with no articles are skipped.
func TopicTables(w io.Writer, topics []string, results map[string][]ingest.Article) {
	for _, topic := range topics {
		articles := results[topic]
		if len(articles) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%sTopic: %s%s\n", colorBold, strings.ToUpper(topic), colorReset)

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "MOOD\tSCORE\tARTICLE\tSOURCE")
		for _, article := range articles {
			fmt.Fprintf(tw, "%s\t%+.2f\t%s\t%s\n",
				coloredLabel(article.SentimentLabel),
				article.SentimentScore,
				article.Title,
				article.Source,
			)
		}
		tw.Flush()
	}
}

// coloredLabel renders a sentiment label with its ANSI color
func coloredLabel(label sentiment.Label) string {
	switch label {
	case sentiment.Positive:
		return colorGreen + "positive" + colorReset
	case sentiment.Negative:
		return colorRed + "negative" + colorReset
	default:
		return colorDim + "neutral" + colorReset
	}
}
