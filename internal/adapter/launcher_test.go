package adapter

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLauncherConfiguredCommand(t *testing.T) {
	l := NewLauncher("firefox", []string{"--new-tab"}, NullLogger())
	var started *exec.Cmd
	l.start = func(cmd *exec.Cmd) error {
		started = cmd
		return nil
	}

	require.NoError(t, l.Open("https://www.imdb.com/title/tt0133093/"))
	require.NotNil(t, started)
	assert.Equal(t, []string{"firefox", "--new-tab", "https://www.imdb.com/title/tt0133093/"}, started.Args)
}

func TestLauncherSystemDefault(t *testing.T) {
	l := NewLauncher("", nil, NullLogger())
	var started *exec.Cmd
	l.start = func(cmd *exec.Cmd) error {
		started = cmd
		return nil
	}

	require.NoError(t, l.Open("http://img.example/poster.jpg"))
	require.NotNil(t, started)
	assert.Equal(t, "http://img.example/poster.jpg", started.Args[len(started.Args)-1])
}

func TestLauncherPlatformDefaults(t *testing.T) {
	const poster = "https://img.example/p.jpg?id=1&size=large"
	tests := []struct {
		goos string
		want []string
	}{
		{"darwin", []string{"open", poster}},
		{"windows", []string{"rundll32", "url.dll,FileProtocolHandler", poster}},
		{"linux", []string{"xdg-open", poster}},
		{"freebsd", []string{"xdg-open", poster}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			l := NewLauncher("", nil, NullLogger())
			l.goos = tt.goos
			assert.Equal(t, tt.want, l.buildCommand(poster).Args)
		})
	}
}

func TestLauncherRejectsNonWebURLs(t *testing.T) {
	l := NewLauncher("", nil, NullLogger())
	l.start = func(*exec.Cmd) error {
		t.Fatal("nothing should be launched")
		return nil
	}

	for _, u := range []string{"N/A", "file:///etc/passwd", "javascript:alert(1)", ""} {
		assert.Error(t, l.Open(u), u)
	}
}

func TestLauncherStartFailure(t *testing.T) {
	l := NewLauncher("definitely-not-a-browser", nil, NullLogger())
	l.start = func(*exec.Cmd) error { return errors.New("exec: not found") }

	err := l.Open("https://www.imdb.com/title/tt0078748/")
	assert.ErrorContains(t, err, "failed to launch browser")
}
