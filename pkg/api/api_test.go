package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/toole-brendan/hrx-sub003/pkg/client"
	"github.com/toole-brendan/hrx-sub003/pkg/recent"
	"github.com/toole-brendan/hrx-sub003/pkg/search"
)

// fakeSource feeds the aggregator fixed records.
type fakeSource struct {
	userErr error
}

func (f *fakeSource) Properties(ctx context.Context) ([]client.Property, error) {
	return []client.Property{
		{ID: 1, Name: "M4 Carbine", SerialNumber: "W123456"},
	}, nil
}

func (f *fakeSource) SearchUsers(ctx context.Context, query string) ([]client.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return []client.User{
		{ID: 1, FirstName: "John", LastName: "Smith", Rank: "SGT"},
	}, nil
}

func (f *fakeSource) Transfers(ctx context.Context, filter client.TransferFilter) ([]client.Transfer, error) {
	return []client.Transfer{{ID: 42, Status: "pending"}}, nil
}

func (f *fakeSource) SearchCatalog(ctx context.Context, query string, limit int) ([]client.CatalogItem, error) {
	return []client.CatalogItem{
		{NSN: "1005-01-231-0973", Nomenclature: "RIFLE,5.56 MILLIMETER"},
	}, nil
}

func newTestServer(t *testing.T, src search.Source) (*httptest.Server, *recent.Store) {
	t.Helper()

	store, err := recent.Open(filepath.Join(t.TempDir(), "recent.db"))
	if err != nil {
		t.Fatalf("opening recent store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	aggregator := search.NewAggregator(src, search.Options{})
	server := NewServer(aggregator, store, 2)

	mux := http.NewServeMux()
	server.RegisterRoutes(mux)

	ts := httptest.NewServer(CorsMiddleware(mux))
	t.Cleanup(ts.Close)
	return ts, store
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestSearchEndpointFlat(t *testing.T) {
	ts, _ := newTestServer(t, &fakeSource{})

	var resp SearchResponse
	status := getJSON(t, ts.URL+"/api/search?q=m4", &resp)
	if status != http.StatusOK {
		t.Fatalf("status: got %d", status)
	}
	if resp.Query != "m4" {
		t.Errorf("query: got %q", resp.Query)
	}
	if resp.Count == 0 || len(resp.Hits) != resp.Count {
		t.Fatalf("count %d does not match hits %d", resp.Count, len(resp.Hits))
	}
	for i := 1; i < len(resp.Hits); i++ {
		if resp.Hits[i].Score > resp.Hits[i-1].Score {
			t.Fatalf("hits not sorted at %d", i)
		}
	}
	if len(resp.Groups) != 0 {
		t.Error("flat response must not include groups")
	}
}

func TestSearchEndpointGrouped(t *testing.T) {
	ts, _ := newTestServer(t, &fakeSource{})

	var resp SearchResponse
	status := getJSON(t, ts.URL+"/api/search?q=m4&grouped=true", &resp)
	if status != http.StatusOK {
		t.Fatalf("status: got %d", status)
	}
	if len(resp.Hits) != 0 {
		t.Error("grouped response must not include flat hits")
	}
	for i := 1; i < len(resp.Groups); i++ {
		if resp.Groups[i].Label < resp.Groups[i-1].Label {
			t.Fatalf("groups not alphabetical at %d", i)
		}
	}
}

func TestSearchEndpointValidation(t *testing.T) {
	ts, _ := newTestServer(t, &fakeSource{})

	if status := getJSON(t, ts.URL+"/api/search", nil); status != http.StatusBadRequest {
		t.Errorf("missing q: got %d", status)
	}
	if status := getJSON(t, ts.URL+"/api/search?q=a", nil); status != http.StatusBadRequest {
		t.Errorf("short q: got %d", status)
	}
	if status := getJSON(t, ts.URL+"/api/search?q=m4&category=bogus", nil); status != http.StatusBadRequest {
		t.Errorf("bogus category: got %d", status)
	}
}

func TestSearchEndpointCategoryFilter(t *testing.T) {
	ts, _ := newTestServer(t, &fakeSource{})

	var resp SearchResponse
	status := getJSON(t, ts.URL+"/api/search?q=smith&category=person", &resp)
	if status != http.StatusOK {
		t.Fatalf("status: got %d", status)
	}
	for _, hit := range resp.Hits {
		if hit.Category != search.CategoryPerson {
			t.Fatalf("unexpected category %q with filter", hit.Category)
		}
	}
}

func TestSearchEndpointReportsFailedCategories(t *testing.T) {
	ts, _ := newTestServer(t, &fakeSource{userErr: errors.New("upstream down")})

	var resp SearchResponse
	status := getJSON(t, ts.URL+"/api/search?q=m4", &resp)
	if status != http.StatusOK {
		t.Fatalf("partial failure must still be 200, got %d", status)
	}
	if len(resp.Failed) != 1 || resp.Failed[0] != search.CategoryPerson {
		t.Fatalf("failed: got %v", resp.Failed)
	}
}

func TestRecentEndpoints(t *testing.T) {
	ts, store := newTestServer(t, &fakeSource{})

	// Record through the API.
	body := bytes.NewBufferString(`{"query":"m4 carbine","subtitle":"3 results"}`)
	resp, err := http.Post(ts.URL+"/api/recent", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	var entry recent.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("record status: got %d", resp.StatusCode)
	}
	if entry.Query != "m4 carbine" {
		t.Errorf("entry query: got %q", entry.Query)
	}

	// List.
	var list RecentListResponse
	if status := getJSON(t, ts.URL+"/api/recent", &list); status != http.StatusOK {
		t.Fatalf("list status: got %d", status)
	}
	if list.Count != 1 || len(list.Entries) != 1 {
		t.Fatalf("list: got %+v", list)
	}

	// Remove by id.
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/recent/"+entry.ID, nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	_ = delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("remove status: got %d", delResp.StatusCode)
	}
	if len(store.List()) != 0 {
		t.Fatal("entry not removed")
	}

	// Clear.
	store.Record("alpha", "")
	store.Record("bravo", "")
	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/recent", nil)
	clearResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	_ = clearResp.Body.Close()
	if clearResp.StatusCode != http.StatusNoContent {
		t.Fatalf("clear status: got %d", clearResp.StatusCode)
	}
	if len(store.List()) != 0 {
		t.Fatal("store not cleared")
	}
}

func TestRecentRecordValidation(t *testing.T) {
	ts, _ := newTestServer(t, &fakeSource{})

	resp, err := http.Post(ts.URL+"/api/recent", "application/json", bytes.NewBufferString(`{"subtitle":"x"}`))
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing query, got %d", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, &fakeSource{})

	var health HealthResponse
	if status := getJSON(t, ts.URL+"/health", &health); status != http.StatusOK {
		t.Fatalf("status: got %d", status)
	}
	if health.Status != "ok" || health.Version == "" {
		t.Errorf("health: got %+v", health)
	}
}

func TestCorsPreflight(t *testing.T) {
	ts, _ := newTestServer(t, &fakeSource{})

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/search", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("preflight status: got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
