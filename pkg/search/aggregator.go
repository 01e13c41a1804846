package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/toole-brendan/hrx-sub003/pkg/client"
	"github.com/toole-brendan/hrx-sub003/pkg/log"
)

// Source is the narrow slice of the property book API the aggregator needs:
// one fetch operation per category. *client.Client satisfies it; tests use
// in-memory fakes.
type Source interface {
	Properties(ctx context.Context) ([]client.Property, error)
	SearchUsers(ctx context.Context, query string) ([]client.User, error)
	Transfers(ctx context.Context, filter client.TransferFilter) ([]client.Transfer, error)
	SearchCatalog(ctx context.Context, query string, limit int) ([]client.CatalogItem, error)
}

// Options configures an Aggregator.
type Options struct {
	// CategoryTimeout bounds each category fetch. Zero means 10s.
	CategoryTimeout time.Duration
	// CatalogLimit is passed to the reference catalog search. Zero means 25.
	CatalogLimit int
	// Categories restricts the fan-out. Empty means all categories.
	Categories []Category
}

// Aggregator fans a query out to all enabled categories in parallel,
// normalizes and scores each category's records, and merges everything into
// a relevance-ranked result set.
type Aggregator struct {
	source Source
	opts   Options
	logger *log.Logger

	gen atomic.Uint64

	mu     sync.RWMutex
	latest *Results
}

// NewAggregator creates an aggregator over the given source.
func NewAggregator(source Source, opts Options) *Aggregator {
	if opts.CategoryTimeout == 0 {
		opts.CategoryTimeout = 10 * time.Second
	}
	if opts.CatalogLimit == 0 {
		opts.CatalogLimit = 25
	}
	return &Aggregator{
		source: source,
		opts:   opts,
		logger: log.ForComponent("aggregator"),
	}
}

// enabled reports whether cat takes part in the fan-out.
func (a *Aggregator) enabled(cat Category) bool {
	if len(a.opts.Categories) == 0 {
		return true
	}
	for _, c := range a.opts.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// Search runs one aggregated search and returns the merged, ranked results.
//
// Every category fetch runs in its own goroutine with its own timeout. A
// failing category is logged and listed in Results.Failed, contributing zero
// hits; it never fails the search. Search waits for all categories to settle
// before ranking.
//
// Each call is tagged with a fresh generation. Callers that display results
// must hand the batch to Publish, which rejects batches superseded by a
// later Search call.
func (a *Aggregator) Search(ctx context.Context, query string) *Results {
	gen := a.gen.Add(1)
	start := time.Now()

	categories := AllCategories()
	// One slot per category, filled concurrently and concatenated in
	// declaration order so equal-score ordering is reproducible.
	slots := make([][]Result, len(categories))
	errs := make([]error, len(categories))

	var wg sync.WaitGroup
	for i, cat := range categories {
		if !a.enabled(cat) {
			continue
		}
		wg.Add(1)
		go func(i int, cat Category) {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, a.opts.CategoryTimeout)
			defer cancel()
			slots[i], errs[i] = a.fetchCategory(fetchCtx, cat, query)
		}(i, cat)
	}
	wg.Wait()

	var hits []Result
	var failed []Category
	for i, cat := range categories {
		if errs[i] != nil {
			a.logger.Warnf("%s fetch failed for %q: %v", cat, query, errs[i])
			failed = append(failed, cat)
			continue
		}
		hits = append(hits, slots[i]...)
	}

	rank(hits)

	results := &Results{
		Query:      query,
		Generation: gen,
		Hits:       hits,
		Failed:     failed,
		Elapsed:    time.Since(start),
	}
	a.logger.Debugf("search %q: %d hits, %d failed categories in %v",
		query, len(hits), len(failed), results.Elapsed)
	return results
}

func (a *Aggregator) fetchCategory(ctx context.Context, cat Category, query string) ([]Result, error) {
	switch cat {
	case CategoryProperty:
		records, err := a.source.Properties(ctx)
		if err != nil {
			return nil, err
		}
		return normalizeProperties(query, records), nil
	case CategoryPerson:
		records, err := a.source.SearchUsers(ctx, query)
		if err != nil {
			return nil, err
		}
		return normalizeUsers(records), nil
	case CategoryTransfer:
		records, err := a.source.Transfers(ctx, client.TransferFilter{})
		if err != nil {
			return nil, err
		}
		return normalizeTransfers(query, records), nil
	case CategoryReference:
		records, err := a.source.SearchCatalog(ctx, query, a.opts.CatalogLimit)
		if err != nil {
			return nil, err
		}
		return normalizeCatalog(records), nil
	default:
		return nil, nil
	}
}

// Publish installs results as the latest visible batch, unless a newer
// Search has started since the batch was produced. It returns false for
// stale batches, which must be discarded by the caller. This is what keeps a
// slow fetch from an old query from overwriting fresh results.
func (a *Aggregator) Publish(results *Results) bool {
	if results == nil {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if results.Generation != a.gen.Load() {
		a.logger.Debugf("dropping stale results for %q (generation %d, current %d)",
			results.Query, results.Generation, a.gen.Load())
		return false
	}
	a.latest = results
	return true
}

// Latest returns the most recently published batch, or nil if none has been
// published (or results were cleared).
func (a *Aggregator) Latest() *Results {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.latest
}

// Clear discards the published batch and invalidates in-flight searches, so
// a pending fetch for an abandoned query cannot publish afterwards.
func (a *Aggregator) Clear() {
	a.gen.Add(1)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.latest = nil
}
