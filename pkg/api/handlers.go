package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/toole-brendan/hrx-sub003/pkg/search"
	"github.com/toole-brendan/hrx-sub003/pkg/version"
)

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "Missing query parameter", "Query parameter 'q' is required")
		return
	}
	if len(query) < s.minQuery {
		s.writeError(w, http.StatusBadRequest, "Query too short",
			fmt.Sprintf("Query must be at least %d characters", s.minQuery))
		return
	}

	// Optional per-request category filter, applied to the merged results.
	var filter map[search.Category]bool
	if cats := r.URL.Query()["category"]; len(cats) > 0 {
		filter = make(map[search.Category]bool)
		for _, raw := range cats {
			cat := search.Category(raw)
			if !cat.Valid() {
				s.writeError(w, http.StatusBadRequest, "Unknown category",
					fmt.Sprintf("Category %q does not exist", raw))
				return
			}
			filter[cat] = true
		}
	}

	results := s.aggregator.Search(r.Context(), query)
	s.aggregator.Publish(results)

	hits := results.Hits
	if filter != nil {
		filtered := make([]search.Result, 0, len(hits))
		for _, hit := range hits {
			if filter[hit.Category] {
				filtered = append(filtered, hit)
			}
		}
		hits = filtered
	}

	response := SearchResponse{
		Query:     results.Query,
		Count:     len(hits),
		Failed:    results.Failed,
		ElapsedMs: results.Elapsed.Milliseconds(),
	}

	if r.URL.Query().Get("grouped") == "true" {
		grouped := &search.Results{Hits: hits}
		response.Groups = grouped.Groups()
	} else {
		response.Hits = hits
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleRecentList(w http.ResponseWriter, r *http.Request) {
	entries := s.recents.List()
	s.writeJSON(w, http.StatusOK, RecentListResponse{
		Entries: entries,
		Count:   len(entries),
	})
}

func (s *Server) HandleRecentRecord(w http.ResponseWriter, r *http.Request) {
	var req RecordRecentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		s.writeError(w, http.StatusBadRequest, "Missing query", "Field 'query' is required")
		return
	}

	entry := s.recents.Record(req.Query, req.Subtitle)
	s.writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) HandleRecentRemove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.writeError(w, http.StatusBadRequest, "Invalid path", "Entry id is required")
		return
	}
	s.recents.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) HandleRecentClear(w http.ResponseWriter, r *http.Request) {
	s.recents.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}
