package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	runner := NewRunner(RunnerOpts{})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the command tree. With no subcommand the TUI starts.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "marquee",
		Usage:   "Search OMDb for movies and keep a watchlist",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the log level (debug, info, warn, error)",
			},
		},
		Before:   r.Before,
		Action:   r.TUI,
		Commands: r.register(),
	}
}
