package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/mmcdole/marquee/internal/watchlist"
	"github.com/urfave/cli/v3"
)

// TUI starts the interactive interface, running setup first when no key is stored
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() > 0 {
		return fmt.Errorf("unknown command %q", cmd.Args().First())
	}

	if !r.config.IsConfigured() {
		if err := r.runSetup(ctx); err != nil {
			return err
		}
	}

	searchSvc, err := r.newSearchService()
	if err != nil {
		return err
	}

	wl, closeStore, err := r.openWatchlist()
	if err != nil {
		return err
	}
	defer closeStore()

	sortField, err := watchlist.ParseSortField(r.config.UI.DefaultSort)
	if err != nil {
		r.logger.Warn("invalid default sort, using title", "error", err)
	}

	launcher := adapter.NewLauncher(r.config.Browser.Command, r.config.Browser.Args, r.logger)

	model := tui.NewModel(searchSvc, wl, launcher, tui.Options{
		Debounce:          r.config.Search.Debounce,
		GridColumns:       r.config.UI.GridColumns,
		PlaceholderPoster: r.config.UI.PlaceholderPoster,
		DefaultSort:       sortField,
		Locale:            r.config.UI.Locale,
		Logger:            r.logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	r.logger.Info("starting TUI", "watchlist", wl.Len())

	if _, err := p.Run(); err != nil {
		r.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	r.logger.Info("shutting down")
	return nil
}
