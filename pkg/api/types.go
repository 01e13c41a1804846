package api

import (
	"time"

	"github.com/toole-brendan/hrx-sub003/pkg/recent"
	"github.com/toole-brendan/hrx-sub003/pkg/search"
)

type SearchResponse struct {
	Query string `json:"query"`

	// Hits is the flat relevance-ordered list. Omitted when grouped output
	// was requested.
	Hits []search.Result `json:"hits,omitempty"`

	// Groups is the category-alphabetical grouped view. Present only when
	// grouped output was requested.
	Groups []search.Group `json:"groups,omitempty"`

	Count int `json:"count"`

	// Failed lists categories whose fetch failed for this search.
	Failed []search.Category `json:"failed,omitempty"`

	ElapsedMs int64 `json:"elapsed_ms"`
}

type RecentListResponse struct {
	Entries []recent.Entry `json:"entries"`
	Count   int            `json:"count"`
}

type RecordRecentRequest struct {
	Query    string `json:"query"`
	Subtitle string `json:"subtitle,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
