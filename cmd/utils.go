package cmd

import (
	"fmt"
	"time"

	"github.com/toole-brendan/hrx-sub003/pkg/client"
	"github.com/toole-brendan/hrx-sub003/pkg/config"
	"github.com/toole-brendan/hrx-sub003/pkg/search"
)

// createAggregatorFromConfig builds the API client and the search aggregator
// the way every command needs them wired.
func createAggregatorFromConfig(cfg *config.Config) (*search.Aggregator, error) {
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("server_url is not set; run 'hrx init' and edit the config")
	}

	apiClient, err := client.New(cfg.ServerURL, client.Options{
		Token:   cfg.Token,
		Timeout: cfg.Search.CategoryTimeout.Duration + 2*time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	categories, err := parseCategories(cfg.Search.Categories)
	if err != nil {
		return nil, err
	}

	return search.NewAggregator(apiClient, search.Options{
		CategoryTimeout: cfg.Search.CategoryTimeout.Duration,
		CatalogLimit:    cfg.Search.CatalogLimit,
		Categories:      categories,
	}), nil
}

// parseCategories validates category names from config or flags.
func parseCategories(names []string) ([]search.Category, error) {
	categories := make([]search.Category, 0, len(names))
	for _, name := range names {
		cat := search.Category(name)
		if !cat.Valid() {
			return nil, fmt.Errorf("unknown category %q (valid: %v)", name, search.AllCategories())
		}
		categories = append(categories, cat)
	}
	return categories, nil
}
