package feed

import (
	"reflect"
	"testing"
)

func TestRegistryOrder(t *testing.T) {
	registry := NewRegistry()
	registry.Add("economy",
		Source{Name: "alpha", URL: "http://example.com/alpha.xml"},
		Source{Name: "beta", URL: "http://example.com/beta.xml"},
	)
	registry.Add("climate",
		Source{Name: "gamma", URL: "http://example.com/gamma.xml"},
	)

	expectedTopics := []string{"economy", "climate"}
	if !reflect.DeepEqual(registry.Topics(), expectedTopics) {
		t.Errorf("Expected topics %v, got %v", expectedTopics, registry.Topics())
	}

	sources := registry.Sources("economy")
	if len(sources) != 2 {
		t.Fatalf("Expected 2 sources for economy, got %d", len(sources))
	}
	if sources[0].Name != "alpha" || sources[1].Name != "beta" {
		t.Errorf("Expected sources in registration order, got %v", sources)
	}
}

func TestRegistryUnknownTopic(t *testing.T) {
	registry := NewRegistry()
	registry.Add("economy", Source{Name: "alpha", URL: "http://example.com/alpha.xml"})

	sources := registry.Sources("unknown")
	if len(sources) != 0 {
		t.Errorf("Expected no sources for unknown topic, got %d", len(sources))
	}
}

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	topics := registry.Topics()
	if len(topics) != 4 {
		t.Errorf("Expected 4 default topics, got %d", len(topics))
	}

	for _, topic := range topics {
		sources := registry.Sources(topic)
		if len(sources) == 0 {
			t.Errorf("Expected sources for default topic %s", topic)
		}
		for _, source := range sources {
			if source.Name == "" || source.URL == "" {
				t.Errorf("Incomplete source in topic %s: %+v", topic, source)
			}
		}
	}
}
