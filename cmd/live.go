package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/toole-brendan/hrx-sub003/pkg/config"
	"github.com/toole-brendan/hrx-sub003/pkg/recent"
	"github.com/toole-brendan/hrx-sub003/pkg/search"
	"github.com/urfave/cli/v3"
)

// LiveCommand creates the live command
func LiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "live",
		Usage: "Interactive search with debounced as-you-type queries",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "grouped",
				Usage: "Group results by category instead of the flat ranked list",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return liveSearch(ctx, c.String("config"), c.Bool("grouped"))
		},
	}
}

// liveSearch runs the interactive search loop.
//
// Each input line goes through the debouncer; a trigger fires a search in the
// background so typing is never blocked. Results are published through the
// aggregator so a slow search that finishes after a newer one is silently
// dropped instead of overwriting fresher results.
func liveSearch(ctx context.Context, configPath string, grouped bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	aggregator, err := createAggregatorFromConfig(cfg)
	if err != nil {
		return err
	}

	store, err := recent.Open(cfg.RecentDBPath())
	if err != nil {
		fmt.Printf("Warning: failed to open recent search store: %v\n", err)
		store = nil
	} else {
		defer func() {
			if err := store.Close(); err != nil {
				fmt.Printf("Warning: failed to close recent search store: %v\n", err)
			}
		}()
	}

	debouncer := search.NewDebouncer(cfg.Search.Debounce.Duration, cfg.Search.MinQueryLength)
	defer debouncer.Close()

	liveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		consumeEvents(liveCtx, debouncer, aggregator, store, grouped)
	}()

	fmt.Println(titleStyle.Render("Live search"))
	if store != nil {
		printRecentHints(store)
	}
	fmt.Println("Type to search, empty line to clear, Ctrl+D to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		debouncer.Input(scanner.Text())
	}

	cancel()
	wg.Wait()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// consumeEvents drains debouncer events and dispatches searches
func consumeEvents(ctx context.Context, debouncer *search.Debouncer, aggregator *search.Aggregator, store *recent.Store, grouped bool) {
	var searches sync.WaitGroup
	defer searches.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-debouncer.Events():
			if !ok {
				return
			}
			switch event.Kind {
			case search.EventClear:
				aggregator.Clear()
				fmt.Println(noDataStyle.Render("(cleared)"))
			case search.EventTrigger:
				searches.Add(1)
				go func(query string) {
					defer searches.Done()
					runLiveSearch(ctx, aggregator, store, query, grouped)
				}(event.Query)
			}
		}
	}
}

// runLiveSearch executes one debounced search and prints it if still current
func runLiveSearch(ctx context.Context, aggregator *search.Aggregator, store *recent.Store, query string, grouped bool) {
	results := aggregator.Search(ctx, query)
	if !aggregator.Publish(results) {
		// A newer search started while this one ran; its results are stale.
		return
	}

	if store != nil {
		store.Record(query, fmt.Sprintf("%d results", len(results.Hits)))
	}

	printResults(results, grouped)
	fmt.Print("> ")
}

// printRecentHints shows up to five recent queries as suggestions
func printRecentHints(store *recent.Store) {
	entries := store.List()
	if len(entries) == 0 {
		return
	}
	if len(entries) > 5 {
		entries = entries[:5]
	}
	fmt.Println(subtitleStyle.Render("Recent:"))
	for _, entry := range entries {
		fmt.Printf("  %s %s\n",
			hitTitleStyle.Render(entry.Query),
			metaStyle.Render(formatTime(entry.Timestamp)))
	}
}
