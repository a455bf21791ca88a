package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/watchlist"
	"github.com/urfave/cli/v3"
)

func watchlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "watchlist",
		Aliases: []string{"wl"},
		Usage:   "Inspect and manage the saved watchlist",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Print the watchlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort field: title or year (defaults to ui.default_sort)",
					},
					&cli.BoolFlag{
						Name:  "desc",
						Usage: "Sort descending",
					},
					&cli.StringFlag{
						Name:  "match",
						Usage: "Only show titles fuzzily matching this text",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output entries as JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Indent JSON output",
					},
				},
				Action: r.WatchlistList,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a film by IMDb ID",
				ArgsUsage: "<imdbID>",
				Action:    r.WatchlistRemove,
			},
			{
				Name:      "export",
				Usage:     "Write the watchlist to a JSON file",
				ArgsUsage: "<file>",
				Action:    r.WatchlistExport,
			},
		},
	}
}

// WatchlistList prints the sorted, optionally filtered watchlist
func (r *Runner) WatchlistList(ctx context.Context, cmd *cli.Command) error {
	fieldName := cmd.String("sort")
	if fieldName == "" {
		fieldName = r.config.UI.DefaultSort
	}
	field, err := watchlist.ParseSortField(fieldName)
	if err != nil {
		return err
	}
	dir := watchlist.SortAsc
	if cmd.Bool("desc") {
		dir = watchlist.SortDesc
	}

	wl, closeStore, err := r.openWatchlist()
	if err != nil {
		return err
	}
	defer closeStore()

	entries := watchlist.NewSorter(r.config.UI.Locale).Sort(wl.Entries(), field, dir)
	if q := cmd.String("match"); q != "" {
		entries = watchlist.Match(entries, q)
	}

	if cmd.Bool("json") {
		out := make([]filmJSON, 0, len(entries))
		for _, f := range entries {
			out = append(out, toFilmJSON(f, true))
		}
		return r.writeJSON(out, cmd.Bool("pretty"))
	}

	if len(entries) == 0 {
		if wl.Len() == 0 {
			return r.writePlain("No movies in your watchlist yet.\n")
		}
		return r.writePlain("No watchlist titles match %q.\n", cmd.String("match"))
	}

	rows := make([][]string, 0, len(entries))
	for _, f := range entries {
		rows = append(rows, []string{f.Title, f.Year, f.ID})
	}
	return r.writeTable([]string{"Title", "Year", "IMDb ID"}, rows)
}

// WatchlistRemove deletes one entry by IMDb ID
func (r *Runner) WatchlistRemove(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.Args().First())
	if id == "" {
		return errors.New("an IMDb ID is required")
	}

	wl, closeStore, err := r.openWatchlist()
	if err != nil {
		return err
	}
	defer closeStore()

	title := id
	for _, f := range wl.Entries() {
		if f.ID == id {
			title = f.Title
			break
		}
	}

	removed, err := wl.Remove(id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", domain.ErrNotInWatchlist, id)
	}
	return r.writePlain("Removed %s from watchlist\n", title)
}

// WatchlistExport writes the watchlist to a file in its persisted format
func (r *Runner) WatchlistExport(ctx context.Context, cmd *cli.Command) error {
	path, err := adapter.ExpandHome(strings.TrimSpace(cmd.Args().First()))
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New("an output file is required")
	}

	wl, closeStore, err := r.openWatchlist()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := watchlist.Export(path, wl.Entries()); err != nil {
		return err
	}
	r.logger.Info("watchlist exported", "path", path, "entries", wl.Len())
	return r.writePlain("Exported %d movies to %s\n", wl.Len(), path)
}
