package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/urfave/cli/v3"
)

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search OMDb by title and print the matches",
		ArgsUsage: "<title...>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output results as JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Indent JSON output",
			},
		},
		Action: r.Search,
	}
}

// Search runs one title search outside the TUI
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	title, ok := search.Validate(strings.Join(cmd.Args().Slice(), " "))
	if !ok {
		return errors.New(search.MsgEmptyQuery)
	}
	if !r.config.IsConfigured() {
		return fmt.Errorf("%w: run \"marquee setup\" first", domain.ErrMissingAPIKey)
	}

	svc, err := r.newSearchService()
	if err != nil {
		return err
	}

	outcome := svc.Search(ctx, title)
	if outcome.ErrorMessage != "" {
		return errors.New(outcome.ErrorMessage)
	}

	// Saved markers are best effort: a running TUI holds the store lock
	saved := func(string) bool { return false }
	if wl, closeStore, err := r.openWatchlist(); err != nil {
		r.logger.Warn("watchlist unavailable, results not marked", "error", err)
	} else {
		defer closeStore()
		saved = wl.Contains
	}

	if cmd.Bool("json") {
		out := make([]filmJSON, 0, len(outcome.Films))
		for _, f := range outcome.Films {
			out = append(out, toFilmJSON(f, saved(f.ID)))
		}
		return r.writeJSON(out, cmd.Bool("pretty"))
	}

	rows := make([][]string, 0, len(outcome.Films))
	for _, f := range outcome.Films {
		mark := ""
		if saved(f.ID) {
			mark = "saved"
		}
		rows = append(rows, []string{f.Title, f.Year, f.ID, mark})
	}
	if err := r.writeTable([]string{"Title", "Year", "IMDb ID", "Watchlist"}, rows); err != nil {
		return err
	}
	return r.writePlain("%d results for %q\n", len(outcome.Films), title)
}
