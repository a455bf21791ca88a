package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source/omdb"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/watchlist"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	configFile string
	config     *adapter.Config
	logger     *slog.Logger
	output     io.Writer
	input      io.Reader
	reader     *bufio.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
// Config is normally loaded by Before; setting it here skips the file.
type RunnerOpts struct {
	Config *adapter.Config
	Logger *slog.Logger
	Output io.Writer
	Input  io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		input:  opts.Input,
		reader: bufio.NewReader(opts.Input),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		searchCommand, watchlistCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads configuration and the logger ahead of any command
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.configFile = cmd.String("config")

	if r.config == nil {
		cfg, err := adapter.LoadConfig(r.configFile)
		if err != nil {
			return ctx, fmt.Errorf("failed to load config: %w", err)
		}
		r.config = cfg
	}
	if level := cmd.String("log-level"); level != "" {
		r.config.Logging.Level = level
	}

	if r.logger == nil {
		logger, err := adapter.SetupLogger(&r.config.Logging)
		if err != nil {
			// Fall back to null logger if file logging fails
			logger = adapter.NullLogger()
		}
		r.logger = logger
	}
	slog.SetDefault(r.logger)

	r.logger.Debug("starting marquee", "version", Version, "command", cmd.Args().First())
	return ctx, nil
}

// newSearchService builds the OMDb client and the search service over it
func (r *Runner) newSearchService() (*search.Service, error) {
	gw := r.config.Gateway
	client, err := omdb.NewClient(gw.BaseURL, gw.APIKey, r.logger,
		omdb.WithTimeout(gw.Timeout),
		omdb.WithRateLimit(gw.RateLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OMDb client: %w", err)
	}
	return search.NewService(client, r.logger), nil
}

// openWatchlist opens the configured store. The returned func closes it.
func (r *Runner) openWatchlist() (*watchlist.Service, func(), error) {
	kv, err := store.NewKVStore(r.config.Storage.Path)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to open watchlist: %w", err)
	}
	closeStore := func() {
		if err := kv.Close(); err != nil {
			r.logger.Warn("failed to close store", "error", err)
		}
	}
	return watchlist.NewService(kv, r.logger), closeStore, nil
}

// filmJSON is the scripting view of a film
type filmJSON struct {
	IMDbID      string `json:"imdbID"`
	Title       string `json:"title"`
	Year        string `json:"year"`
	Poster      string `json:"poster"`
	IMDbURL     string `json:"imdbURL"`
	InWatchlist bool   `json:"inWatchlist"`
}

func toFilmJSON(f domain.Film, saved bool) filmJSON {
	return filmJSON{
		IMDbID:      f.ID,
		Title:       f.Title,
		Year:        f.Year,
		Poster:      f.PosterURL,
		IMDbURL:     f.IMDbURL(),
		InWatchlist: saved,
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeTable renders rows under headers with a dim border
func (r *Runner) writeTable(headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.DimGray)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(styles.MarqueeGold).Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)

	return r.writePlain("%s\n", t.Render())
}
