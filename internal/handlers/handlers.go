package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// healthHandler provides health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// topicsHandler lists the registered topic keys
func (s *Server) topicsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"topics": s.pipeline.Topics(),
	})
}

// ingestTopicHandler runs ingestion for one topic and returns the scored
// articles. An unknown topic returns an empty list, not an error.
func (s *Server) ingestTopicHandler(w http.ResponseWriter, r *http.Request) {
	topic := mux.Vars(r)["topic"]

	articles := s.pipeline.IngestTopic(r.Context(), topic)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"topic":    topic,
		"count":    len(articles),
		"articles": articles,
	})
}

// ingestAllHandler runs ingestion for every registered topic
func (s *Server) ingestAllHandler(w http.ResponseWriter, r *http.Request) {
	results := s.pipeline.IngestAll(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"topics":  s.pipeline.Topics(),
		"results": results,
	})
}
