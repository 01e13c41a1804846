// Package api exposes the search aggregator and recent-search store over a
// small JSON HTTP API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/toole-brendan/hrx-sub003/pkg/log"
	"github.com/toole-brendan/hrx-sub003/pkg/recent"
	"github.com/toole-brendan/hrx-sub003/pkg/search"
)

type Server struct {
	aggregator *search.Aggregator
	recents    *recent.Store
	minQuery   int
	logger     *log.Logger
}

// NewServer wires the API over an aggregator and a recent-search store.
// minQuery is the minimum trimmed query length accepted by the search
// endpoint; values below 1 mean 1.
func NewServer(aggregator *search.Aggregator, recents *recent.Store, minQuery int) *Server {
	if minQuery < 1 {
		minQuery = 1
	}
	return &Server{
		aggregator: aggregator,
		recents:    recents,
		minQuery:   minQuery,
		logger:     log.ForComponent("api"),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
