package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/toole-brendan/hrx-sub003/pkg/config"
	"github.com/toole-brendan/hrx-sub003/pkg/recent"
	"github.com/toole-brendan/hrx-sub003/pkg/search"
	"github.com/urfave/cli/v3"
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Run a one-shot search across all categories",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "query",
				Usage:    "Search query",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "category",
				Usage: "Restrict the search to a category (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "grouped",
				Usage: "Group results by category instead of the flat ranked list",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit raw JSON results",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runSearch(ctx, c.String("config"), c.String("query"),
				c.StringSlice("category"), c.Bool("grouped"), c.Bool("json"))
		},
	}
}

// runSearch performs a single aggregated search and prints the results
func runSearch(ctx context.Context, configPath, query string, categoryNames []string, grouped, asJSON bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	query = strings.TrimSpace(query)
	if len(query) < cfg.Search.MinQueryLength {
		return fmt.Errorf("query must be at least %d characters", cfg.Search.MinQueryLength)
	}

	if len(categoryNames) > 0 {
		cfg.Search.Categories = categoryNames
	}

	aggregator, err := createAggregatorFromConfig(cfg)
	if err != nil {
		return err
	}

	results := aggregator.Search(ctx, query)

	recordRecentSearch(cfg, results)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	printResults(results, grouped)
	return nil
}

// recordRecentSearch stores the query in the recent-search history.
// History is a convenience; failures must not fail the search.
func recordRecentSearch(cfg *config.Config, results *search.Results) {
	store, err := recent.Open(cfg.RecentDBPath())
	if err != nil {
		fmt.Printf("Warning: failed to open recent search store: %v\n", err)
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Warning: failed to close recent search store: %v\n", err)
		}
	}()

	store.Record(results.Query, fmt.Sprintf("%d results", len(results.Hits)))
}

// printResults renders a result set in either flat or grouped form
func printResults(results *search.Results, grouped bool) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Search: %s", results.Query)))

	for _, cat := range results.Failed {
		fmt.Println(warnStyle.Render(fmt.Sprintf("Warning: %s search failed, results are partial", cat.Label())))
	}

	if len(results.Hits) == 0 {
		fmt.Println(noDataStyle.Render("No results found"))
		return
	}

	if grouped {
		for _, group := range results.Groups() {
			fmt.Println(formatGroupHeader(group))
			for i, hit := range group.Results {
				fmt.Println(formatResult(i+1, hit))
			}
		}
	} else {
		for i, hit := range results.Hits {
			fmt.Println(formatResult(i+1, hit))
		}
	}

	fmt.Printf("\nTotal: %d results in %v\n", len(results.Hits), results.Elapsed.Round(time.Millisecond))
}
