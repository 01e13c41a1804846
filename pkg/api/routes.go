package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// API routes with method-specific routing
	mux.HandleFunc("GET /api/search", s.HandleSearch)
	mux.HandleFunc("GET /api/recent", s.HandleRecentList)
	mux.HandleFunc("POST /api/recent", s.HandleRecentRecord)
	mux.HandleFunc("DELETE /api/recent/{id}", s.HandleRecentRemove)
	mux.HandleFunc("DELETE /api/recent", s.HandleRecentClear)
	mux.HandleFunc("GET /health", s.HandleHealth)
}
