package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source/omdb"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const apiKeyURL = "https://www.omdbapi.com/apikey.aspx"

// maxSetupAttempts bounds the prompt loop when keys keep being rejected
const maxSetupAttempts = 3

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Store an OMDb API key in the configuration file",
		Action: r.Setup,
	}
}

// Setup prompts for an API key even when one is already configured
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	return r.runSetup(ctx)
}

// runSetup asks for a key, checks it against the gateway and saves the config
func (r *Runner) runSetup(ctx context.Context) error {
	r.writePlain("\nWelcome to Marquee!\n\n")
	r.writePlain("Marquee needs an OMDb API key. Get a free one at %s\n\n", apiKeyURL)

	for attempt := 0; attempt < maxSetupAttempts; {
		key, err := r.readSecret("Enter your OMDb API key: ")
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if key == "" {
			r.writePlain("API key cannot be empty. Please try again.\n")
			continue
		}
		attempt++

		ok, err := r.verifyKey(ctx, key)
		if err != nil {
			// The gateway may be down; keep the key rather than block setup
			r.logger.Warn("could not verify api key", "error", err)
			r.writePlain("! Could not reach OMDb to verify the key, saving it anyway.\n")
		} else if !ok {
			r.writePlain("✗ OMDb rejected that key. Please check it and try again.\n\n")
			continue
		}

		r.config.Gateway.APIKey = key
		path, err := adapter.SaveConfig(r.config, r.configFile)
		if err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		r.logger.Info("setup complete", "config", path)
		r.writePlain("✓ API key saved to %s\n\n", path)
		return nil
	}

	return errors.New("no valid API key entered")
}

// verifyKey runs one probe search. A negative answer naming the key means rejection.
func (r *Runner) verifyKey(ctx context.Context, key string) (bool, error) {
	gw := r.config.Gateway
	client, err := omdb.NewClient(gw.BaseURL, key, r.logger, omdb.WithTimeout(gw.Timeout))
	if err != nil {
		return false, err
	}

	result, err := client.SearchTitle(ctx, "matrix")
	if err != nil {
		return false, err
	}
	if !result.Found && strings.Contains(strings.ToLower(result.Message), "api key") {
		return false, nil
	}
	return true, nil
}

// readSecret reads one line, without echo when input is a terminal
func (r *Runner) readSecret(prompt string) (string, error) {
	r.writePlain("%s", prompt)

	if f, ok := r.input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		r.writePlain("\n")
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := r.reader.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
