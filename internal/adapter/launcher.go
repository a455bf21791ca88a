package adapter

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// Launcher opens web pages in the configured browser or system default
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments placed before the URL
	logger  *slog.Logger
	goos    string

	// start runs cmd without waiting for it; replaced in tests
	start func(cmd *exec.Cmd) error
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		logger:  logger,
		goos:    runtime.GOOS,
		start:   func(cmd *exec.Cmd) error { return cmd.Start() },
	}
}

// Open opens an http(s) URL in the browser
func (l *Launcher) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not a web URL", rawURL)
	}

	cmd := l.buildCommand(rawURL)
	l.logger.Info("opening browser", "command", cmd.Path, "args", cmd.Args[1:])
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	return nil
}

// buildCommand builds the process that opens rawURL
func (l *Launcher) buildCommand(rawURL string) *exec.Cmd {
	// Tier 1: User configured a specific browser
	if l.command != "" {
		args := append(append([]string{}, l.args...), rawURL)
		return exec.Command(l.command, args...)
	}

	// Tier 2: system default handler
	switch l.goos {
	case "darwin":
		return exec.Command("open", rawURL)
	case "windows":
		// Not cmd /c start: cmd.exe would split gateway URLs at '&'
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		// Linux and other Unix-like systems
		return exec.Command("xdg-open", rawURL)
	}
}
