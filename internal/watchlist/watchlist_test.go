package watchlist

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	matrix = domain.Film{ID: "tt0133093", Title: "The Matrix", Year: "1999", PosterURL: "https://img.example/m.jpg"}
	alien  = domain.Film{ID: "tt0078748", Title: "Alien", Year: "1979", PosterURL: "N/A"}
	heat   = domain.Film{ID: "tt0113277", Title: "Heat", Year: "1995", PosterURL: "N/A"}
)

// recordingStore counts writes and can be told to fail
type recordingStore struct {
	values map[string]string
	writes []string
	fail   error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{values: make(map[string]string)}
}

func (r *recordingStore) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

func (r *recordingStore) Set(key, value string) error {
	if r.fail != nil {
		return r.fail
	}
	r.values[key] = value
	r.writes = append(r.writes, value)
	return nil
}

func (r *recordingStore) Close() error { return nil }

func TestAddIsIdempotent(t *testing.T) {
	svc := NewService(newRecordingStore(), nil)

	changed, err := svc.Add(matrix)
	require.NoError(t, err)
	assert.True(t, changed)

	second := matrix
	second.Title = "The Matrix (duplicate)"
	changed, err = svc.Add(second)
	require.NoError(t, err)
	assert.False(t, changed)

	require.Equal(t, 1, svc.Len())
	assert.Equal(t, "The Matrix", svc.Entries()[0].Title, "first add wins")
}

func TestAddAppendsInOrder(t *testing.T) {
	svc := NewService(newRecordingStore(), nil)
	for _, f := range []domain.Film{matrix, alien, heat} {
		_, err := svc.Add(f)
		require.NoError(t, err)
	}

	if diff := cmp.Diff([]domain.Film{matrix, alien, heat}, svc.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
}

func TestAddRejectsEmptyID(t *testing.T) {
	rs := newRecordingStore()
	svc := NewService(rs, nil)

	changed, err := svc.Add(domain.Film{Title: "Nameless"})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, rs.writes)
}

func TestRemove(t *testing.T) {
	svc := NewService(newRecordingStore(), nil)
	for _, f := range []domain.Film{matrix, alien, heat} {
		_, err := svc.Add(f)
		require.NoError(t, err)
	}

	changed, err := svc.Remove(alien.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []domain.Film{matrix, heat}, svc.Entries())
	assert.False(t, svc.Contains(alien.ID))
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	rs := newRecordingStore()
	svc := NewService(rs, nil)
	_, err := svc.Add(matrix)
	require.NoError(t, err)
	_, err = svc.Add(alien)
	require.NoError(t, err)
	writes := len(rs.writes)

	changed, err := svc.Remove("tt9999999")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, []domain.Film{matrix, alien}, svc.Entries())
	assert.Len(t, rs.writes, writes, "no write for a no-op")
}

func TestEveryMutationPersistsFullList(t *testing.T) {
	rs := newRecordingStore()
	svc := NewService(rs, nil)

	_, _ = svc.Add(matrix)
	_, _ = svc.Add(alien)
	_, _ = svc.Remove(matrix.ID)

	require.Len(t, rs.writes, 3)
	assert.JSONEq(t, `[{"Title":"The Matrix","Year":"1999","imdbID":"tt0133093","Poster":"https://img.example/m.jpg"}]`, rs.writes[0])
	assert.JSONEq(t, `[
		{"Title":"The Matrix","Year":"1999","imdbID":"tt0133093","Poster":"https://img.example/m.jpg"},
		{"Title":"Alien","Year":"1979","imdbID":"tt0078748","Poster":"N/A"}
	]`, rs.writes[1])
	assert.JSONEq(t, `[{"Title":"Alien","Year":"1979","imdbID":"tt0078748","Poster":"N/A"}]`, rs.writes[2])
}

func TestPersistFailureIsReported(t *testing.T) {
	rs := newRecordingStore()
	rs.fail = errors.New("disk full")
	svc := NewService(rs, nil)

	changed, err := svc.Add(matrix)
	assert.True(t, changed)
	assert.Error(t, err)
	assert.True(t, svc.Contains(matrix.ID), "in-memory state keeps the mutation")
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		stored *string
		want   []domain.Film
	}{
		{name: "absent", stored: nil, want: []domain.Film{}},
		{name: "malformed", stored: ptr(`{not json`), want: []domain.Film{}},
		{name: "wrong shape", stored: ptr(`{"Title":"x"}`), want: []domain.Film{}},
		{name: "empty list", stored: ptr(`[]`), want: []domain.Film{}},
		{
			name:   "duplicates collapse, first wins",
			stored: ptr(`[{"Title":"Alien","Year":"1979","imdbID":"tt0078748","Poster":"N/A"},{"Title":"Alien again","imdbID":"tt0078748"},{"Title":"no id"}]`),
			want:   []domain.Film{alien},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := newRecordingStore()
			if tt.stored != nil {
				rs.values[StoreKey] = *tt.stored
			}
			svc := NewService(rs, nil)
			assert.Equal(t, tt.want, svc.Entries())
		})
	}
}

func TestRoundTripThroughBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.db")

	kv, err := store.NewKVStore(path)
	require.NoError(t, err)
	svc := NewService(kv, nil)
	for _, f := range []domain.Film{heat, matrix, alien} {
		_, err := svc.Add(f)
		require.NoError(t, err)
	}
	want := svc.Entries()
	require.NoError(t, kv.Close())

	reopened, err := store.NewKVStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got := NewService(reopened, nil).Entries()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reloaded watchlist mismatch (-want +got):\n%s", diff)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	svc := NewService(newRecordingStore(), nil)
	_, _ = svc.Add(matrix)

	entries := svc.Entries()
	entries[0].Title = "changed"
	assert.Equal(t, "The Matrix", svc.Entries()[0].Title)
}

func ptr(s string) *string { return &s }
