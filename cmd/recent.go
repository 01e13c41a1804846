package cmd

import (
	"context"
	"fmt"

	"github.com/toole-brendan/hrx-sub003/pkg/config"
	"github.com/toole-brendan/hrx-sub003/pkg/recent"
	"github.com/urfave/cli/v3"
)

// RecentCommand creates the recent command with its subcommands
func RecentCommand() *cli.Command {
	return &cli.Command{
		Name:  "recent",
		Usage: "Manage recent search history",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent searches, newest first",
				Action: func(ctx context.Context, c *cli.Command) error {
					return listRecent(c.String("config"))
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a recent search by ID",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("usage: hrx recent remove <id>")
					}
					return removeRecent(c.String("config"), c.Args().First())
				},
			},
			{
				Name:  "clear",
				Usage: "Clear all recent searches",
				Action: func(ctx context.Context, c *cli.Command) error {
					return clearRecent(c.String("config"))
				},
			},
		},
	}
}

// openRecentStore opens the recent search store from the config
func openRecentStore(configPath string) (*recent.Store, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	store, err := recent.Open(cfg.RecentDBPath())
	if err != nil {
		return nil, fmt.Errorf("opening recent search store: %w", err)
	}
	return store, nil
}

// listRecent prints the stored recent searches
func listRecent(configPath string) error {
	store, err := openRecentStore(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Warning: failed to close recent search store: %v\n", err)
		}
	}()

	entries := store.List()
	if len(entries) == 0 {
		fmt.Println(noDataStyle.Render("No recent searches"))
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Recent searches (%d)", len(entries))))
	for i, entry := range entries {
		fmt.Printf("%2d. %s %s\n", i+1,
			hitTitleStyle.Render(entry.Query),
			metaStyle.Render(formatTime(entry.Timestamp)))
		if entry.Subtitle != "" {
			fmt.Printf("    %s\n", subtitleStyle.Render(entry.Subtitle))
		}
		fmt.Printf("    %s\n", metaStyle.Render("id: "+entry.ID))
	}
	return nil
}

// removeRecent deletes a single recent search by ID
func removeRecent(configPath, id string) error {
	store, err := openRecentStore(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Warning: failed to close recent search store: %v\n", err)
		}
	}()

	store.Remove(id)
	fmt.Printf("Removed recent search %s\n", id)
	return nil
}

// clearRecent wipes the recent search history
func clearRecent(configPath string) error {
	store, err := openRecentStore(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Warning: failed to close recent search store: %v\n", err)
		}
	}()

	store.Clear()
	fmt.Println("Recent searches cleared")
	return nil
}
