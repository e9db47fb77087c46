package feed

// Source identifies a single feed within a topic
type Source struct {
	Name string
	URL  string
}

// Registry is a read-only, ordered mapping of topic -> feed sources.
// It is built once at startup and never mutated afterward; lookup of an
// unknown topic yields no sources rather than an error.
type Registry struct {
	order  []string
	topics map[string][]Source
}

func NewRegistry() *Registry {
	return &Registry{
		topics: make(map[string][]Source),
	}
}

// Add registers sources for a topic, preserving insertion order for both
// topics and sources within a topic.
func (r *Registry) Add(topic string, sources ...Source) {
	if _, exists := r.topics[topic]; !exists {
		r.order = append(r.order, topic)
	}
	r.topics[topic] = append(r.topics[topic], sources...)
}

// Sources returns the feed sources for a topic in registration order.
// Unknown topics return an empty slice.
func (r *Registry) Sources(topic string) []Source {
	return r.topics[topic]
}

// Topics returns all registered topic keys in registration order.
func (r *Registry) Topics() []string {
	return r.order
}

// DefaultRegistry returns the built-in topic/feed configuration.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Add("economy",
		Source{Name: "lesechos", URL: "https://news.google.com/rss/search?q=site:lesechos.fr+économie&hl=fr&gl=FR&ceid=FR:fr"},
		Source{Name: "latribune", URL: "https://news.google.com/rss/search?q=site:latribune.fr+économie&hl=fr&gl=FR&ceid=FR:fr"},
	)
	r.Add("climate",
		Source{Name: "lemonde_planete", URL: "https://www.lemonde.fr/planete/rss_full.xml"},
		Source{Name: "reporterre", URL: "https://reporterre.net/spip.php?page=backend"},
	)
	r.Add("politics",
		Source{Name: "lefigaro_pol", URL: "https://www.lefigaro.fr/rss/figaro_politique.xml"},
		Source{Name: "liberation_pol", URL: "https://www.liberation.fr/arc/outboundfeeds/rss/category/politique/"},
	)
	r.Add("geopolitics",
		Source{Name: "courrierinter", URL: "https://www.courrierinternational.com/feed/all/rss.xml"},
		Source{Name: "diploweb", URL: "https://www.diploweb.com/spip.php?page=backend"},
	)
	return r
}
