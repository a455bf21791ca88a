package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/watchlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matrixBody = `{
  "Search": [
    {"Title":"The Matrix","Year":"1999","imdbID":"tt0133093","Type":"movie","Poster":"https://img.example/matrix.jpg"},
    {"Title":"The Matrix Reloaded","Year":"2003","imdbID":"tt0234215","Type":"movie","Poster":"N/A"}
  ],
  "totalResults":"2",
  "Response":"True"
}`

var (
	matrix = domain.Film{ID: "tt0133093", Title: "The Matrix", Year: "1999", PosterURL: "https://img.example/matrix.jpg"}
	alien  = domain.Film{ID: "tt0078748", Title: "Alien", Year: "1979", PosterURL: "N/A"}
	heat   = domain.Film{ID: "tt0113277", Title: "Heat", Year: "1995", PosterURL: "N/A"}
)

// newGateway serves OMDb answers; only the key k123 is accepted
func newGateway(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if req.URL.Query().Get("apikey") != "k123" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"Response":"False","Error":"Invalid API key!"}`))
			return
		}
		switch strings.ToLower(req.URL.Query().Get("s")) {
		case "matrix", "the matrix":
			w.Write([]byte(matrixBody))
		default:
			w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type env struct {
	dir     string
	config  string
	dbPath  string
	gateway *httptest.Server
}

// newEnv writes a config file pointing at a fake gateway and a temp store
func newEnv(t *testing.T, apiKey string) *env {
	t.Helper()
	dir := t.TempDir()
	e := &env{
		dir:     dir,
		config:  filepath.Join(dir, "config.yaml"),
		dbPath:  filepath.Join(dir, "marquee.db"),
		gateway: newGateway(t),
	}

	content := fmt.Sprintf(`gateway:
  base_url: %s
  api_key: %q
storage:
  path: %s
logging:
  file: %s
`, e.gateway.URL, apiKey, e.dbPath, filepath.Join(dir, "marquee.log"))
	require.NoError(t, os.WriteFile(e.config, []byte(content), 0644))
	return e
}

// run executes one command line against a fresh runner
func (e *env) run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	r := NewRunner(RunnerOpts{
		Logger: adapter.NullLogger(),
		Output: &out,
		Input:  strings.NewReader(input),
	})
	argv := append([]string{"marquee", "--config", e.config}, args...)
	err := newApp(r).Run(context.Background(), argv)
	return out.String(), err
}

func (e *env) seed(t *testing.T, films ...domain.Film) {
	t.Helper()
	kv, err := store.NewKVStore(e.dbPath)
	require.NoError(t, err)
	wl := watchlist.NewService(kv, adapter.NullLogger())
	for _, f := range films {
		_, err := wl.Add(f)
		require.NoError(t, err)
	}
	require.NoError(t, kv.Close())
}

func (e *env) entries(t *testing.T) []domain.Film {
	t.Helper()
	kv, err := store.NewKVStore(e.dbPath)
	require.NoError(t, err)
	defer kv.Close()
	return watchlist.NewService(kv, adapter.NullLogger()).Entries()
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(RunnerOpts{})
	assert.Equal(t, os.Stdout, r.output)
	assert.Equal(t, os.Stdin, r.input)
	assert.NotNil(t, r.reader)
	assert.Nil(t, r.config, "config is loaded in Before")
}

func TestSearchCommandJSON(t *testing.T) {
	e := newEnv(t, "k123")
	e.seed(t, matrix)

	out, err := e.run(t, "", "search", "--json", "the", "matrix")
	require.NoError(t, err)

	var got []filmJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "tt0133093", got[0].IMDbID)
	assert.True(t, got[0].InWatchlist)
	assert.Equal(t, "https://www.imdb.com/title/tt0133093/", got[0].IMDbURL)
	assert.Equal(t, "The Matrix Reloaded", got[1].Title)
	assert.False(t, got[1].InWatchlist)
	assert.Equal(t, "N/A", got[1].Poster)
}

func TestSearchCommandTable(t *testing.T) {
	e := newEnv(t, "k123")
	e.seed(t, matrix)

	out, err := e.run(t, "", "search", "matrix")
	require.NoError(t, err)
	assert.Contains(t, out, "The Matrix Reloaded")
	assert.Contains(t, out, "saved")
	assert.Contains(t, out, `2 results for "matrix"`)
}

func TestSearchCommandFailures(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		args    []string
		wantErr string
		wantIs  error
	}{
		{name: "no title", apiKey: "k123", args: []string{"search", "   "}, wantErr: search.MsgEmptyQuery},
		{name: "not found", apiKey: "k123", args: []string{"search", "xyzzy"}, wantErr: "Movie not found!"},
		{name: "no key", apiKey: "", args: []string{"search", "matrix"}, wantIs: domain.ErrMissingAPIKey},
		{name: "rejected key", apiKey: "nope", args: []string{"search", "matrix"}, wantErr: "Invalid API key!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, tt.apiKey)
			_, err := e.run(t, "", tt.args...)
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestWatchlistListCommand(t *testing.T) {
	e := newEnv(t, "k123")
	e.seed(t, matrix, alien, heat)

	ids := func(out string) []string {
		var got []filmJSON
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		var ids []string
		for _, f := range got {
			ids = append(ids, f.IMDbID)
		}
		return ids
	}

	out, err := e.run(t, "", "watchlist", "list", "--json")
	require.NoError(t, err)
	assert.Equal(t, []string{alien.ID, heat.ID, matrix.ID}, ids(out), "default sort is title ascending")

	out, err = e.run(t, "", "watchlist", "list", "--sort", "year", "--desc", "--json")
	require.NoError(t, err)
	assert.Equal(t, []string{matrix.ID, heat.ID, alien.ID}, ids(out))

	out, err = e.run(t, "", "watchlist", "list", "--match", "alien", "--json")
	require.NoError(t, err)
	assert.Equal(t, []string{alien.ID}, ids(out))

	out, err = e.run(t, "", "wl", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Heat")
	assert.Contains(t, out, "tt0078748")

	_, err = e.run(t, "", "watchlist", "list", "--sort", "rating")
	assert.Error(t, err)
}

func TestWatchlistListEmpty(t *testing.T) {
	e := newEnv(t, "k123")

	out, err := e.run(t, "", "watchlist", "list")
	require.NoError(t, err)
	assert.Equal(t, "No movies in your watchlist yet.\n", out)

	out, err = e.run(t, "", "watchlist", "list", "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestWatchlistRemoveCommand(t *testing.T) {
	e := newEnv(t, "k123")
	e.seed(t, matrix, alien)

	out, err := e.run(t, "", "watchlist", "remove", matrix.ID)
	require.NoError(t, err)
	assert.Equal(t, "Removed The Matrix from watchlist\n", out)
	assert.Equal(t, []domain.Film{alien}, e.entries(t))

	_, err = e.run(t, "", "watchlist", "rm", matrix.ID)
	assert.ErrorIs(t, err, domain.ErrNotInWatchlist)

	_, err = e.run(t, "", "watchlist", "remove")
	assert.Error(t, err)
}

func TestWatchlistExportCommand(t *testing.T) {
	e := newEnv(t, "k123")
	e.seed(t, matrix, alien)
	dest := filepath.Join(e.dir, "watchlist.json")

	out, err := e.run(t, "", "watchlist", "export", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 movies")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	assert.Contains(t, string(data), `"imdbID": "tt0078748"`)
}

func TestSetupCommand(t *testing.T) {
	e := newEnv(t, "")

	// An empty line, a rejected key, then the accepted one
	out, err := e.run(t, "\nwrong\nk123\n", "setup")
	require.NoError(t, err)
	assert.Contains(t, out, "API key cannot be empty")
	assert.Contains(t, out, "OMDb rejected that key")
	assert.Contains(t, out, "API key saved to "+e.config)

	cfg, err := adapter.LoadConfig(e.config)
	require.NoError(t, err)
	assert.Equal(t, "k123", cfg.Gateway.APIKey)
	assert.Equal(t, e.gateway.URL, cfg.Gateway.BaseURL)
	assert.Equal(t, e.dbPath, cfg.Storage.Path)
}

func TestSetupCommandGivesUp(t *testing.T) {
	e := newEnv(t, "")

	_, err := e.run(t, "a\nb\nc\n", "setup")
	assert.EqualError(t, err, "no valid API key entered")

	_, err = e.run(t, "", "setup")
	assert.Error(t, err, "end of input before any key")

	cfg, err := adapter.LoadConfig(e.config)
	require.NoError(t, err)
	assert.False(t, cfg.IsConfigured())
}
