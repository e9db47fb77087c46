package sentiment

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Label is the categorical sentiment of an article
type Label string

const (
	Negative Label = "negative"
	Neutral  Label = "neutral"
	Positive Label = "positive"
)

// Analyzer normalizes the external classifier's star-rating output into a
// polarity score in [-1, 1] and a categorical label.
type Analyzer struct {
	classifier Classifier
	maxLen     int // classifier input limit, in characters
	minLen     int // below this trimmed length the classifier is skipped
}

// NewAnalyzer creates an analyzer over the given classifier
func NewAnalyzer(classifier Classifier, maxLen, minLen int) *Analyzer {
	return &Analyzer{
		classifier: classifier,
		maxLen:     maxLen,
		minLen:     minLen,
	}
}

// Analyze scores text and returns (score, label).
//
// Near-empty input returns (0, neutral) without calling the classifier:
// it wastes a call and produces unstable results. Classifier failures also
// degrade to (0, neutral) because sentiment scoring must never abort
// ingestion.
func (a *Analyzer) Analyze(ctx context.Context, text string) (float64, Label) {
	// Length thresholds count characters, not bytes. The feeds are mostly
	// French, so accented text would otherwise clear the guard early.
	if utf8.RuneCountInString(strings.TrimSpace(text)) < a.minLen {
		return 0.0, Neutral
	}

	// The model rejects input past its length limit, so truncate rather
	// than error. Character count, not tokens.
	if runes := []rune(text); len(runes) > a.maxLen {
		text = string(runes[:a.maxLen])
	}

	result, err := a.classifier.Classify(ctx, text)
	if err != nil {
		log.Printf("Classifier error, defaulting to neutral: %v", err)
		return 0.0, Neutral
	}

	stars, err := parseStars(result.Label)
	if err != nil {
		log.Printf("Unexpected classifier label %q, defaulting to neutral: %v", result.Label, err)
		return 0.0, Neutral
	}

	return scoreFromStars(stars), labelFromStars(stars)
}

// parseStars extracts the numeric rating from a label like "1 star" or
// "4 stars".
func parseStars(label string) (int, error) {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty label")
	}

	stars, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("parsing star rating: %w", err)
	}

	if stars < 1 || stars > 5 {
		return 0, fmt.Errorf("star rating %d out of range", stars)
	}

	return stars, nil
}

// scoreFromStars maps the 1..5 star rating onto the [-1, 1] polarity
// scale: 1 -> -1.0, 2 -> -0.5, 3 -> 0.0, 4 -> +0.5, 5 -> +1.0.
func scoreFromStars(stars int) float64 {
	return float64(stars-3) / 2.0
}

// labelFromStars maps the star rating to its categorical label
func labelFromStars(stars int) Label {
	switch {
	case stars <= 2:
		return Negative
	case stars == 3:
		return Neutral
	default:
		return Positive
	}
}
