package watchlist

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
)

// StoreKey is the key the watchlist is persisted under
const StoreKey = "watchlist"

// entryRecord is the persisted shape of an entry. The keys match the
// gateway's field names so stored lists stay interchangeable with it.
type entryRecord struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Poster string `json:"Poster"`
}

// Service owns the watchlist and writes it through to the store.
type Service struct {
	store   domain.KeyValueStore
	entries []domain.Film
	logger  *slog.Logger
}

// NewService loads the watchlist from store.
// A missing or unreadable value yields an empty watchlist.
func NewService(store domain.KeyValueStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{store: store, logger: logger}
	s.entries = s.load()
	return s
}

func (s *Service) load() []domain.Film {
	raw, ok := s.store.Get(StoreKey)
	if !ok {
		return nil
	}

	entries, err := decode(raw)
	if err != nil {
		s.logger.Warn("ignoring malformed watchlist", "error", err)
		return nil
	}
	s.logger.Debug("loaded watchlist", "count", len(entries))
	return entries
}

// decode parses a persisted watchlist, collapsing duplicate IDs (first wins)
func decode(raw string) ([]domain.Film, error) {
	var records []entryRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, err
	}

	entries := make([]domain.Film, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if r.IMDbID == "" || seen[r.IMDbID] {
			continue
		}
		seen[r.IMDbID] = true
		entries = append(entries, domain.Film{
			ID:        r.IMDbID,
			Title:     r.Title,
			Year:      r.Year,
			PosterURL: r.Poster,
		})
	}
	return entries, nil
}

// Encode serializes entries in the persisted format
func Encode(entries []domain.Film) ([]byte, error) {
	records := make([]entryRecord, len(entries))
	for i, f := range entries {
		records[i] = entryRecord{
			Title:  f.Title,
			Year:   f.Year,
			IMDbID: f.ID,
			Poster: f.PosterURL,
		}
	}
	return json.Marshal(records)
}

func (s *Service) persist() error {
	data, err := Encode(s.entries)
	if err != nil {
		return fmt.Errorf("failed to encode watchlist: %w", err)
	}
	if err := s.store.Set(StoreKey, string(data)); err != nil {
		s.logger.Error("failed to save watchlist", "error", err)
		return fmt.Errorf("failed to save watchlist: %w", err)
	}
	return nil
}

// Entries returns a copy of the watchlist in insertion order
func (s *Service) Entries() []domain.Film {
	out := make([]domain.Film, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries
func (s *Service) Len() int {
	return len(s.entries)
}

// Contains reports whether an entry with id is present
func (s *Service) Contains(id string) bool {
	return domain.ContainsFilm(s.entries, id)
}

// Add appends film unless its ID is already present.
// Returns whether the watchlist changed.
func (s *Service) Add(film domain.Film) (bool, error) {
	if film.ID == "" || s.Contains(film.ID) {
		return false, nil
	}
	s.entries = append(s.entries, film)
	s.logger.Debug("added to watchlist", "id", film.ID, "title", film.Title)
	return true, s.persist()
}

// Remove deletes the entry with id. Absent IDs are a no-op.
// Returns whether the watchlist changed.
func (s *Service) Remove(id string) (bool, error) {
	idx := -1
	for i, f := range s.entries {
		if f.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	entries := make([]domain.Film, 0, len(s.entries)-1)
	entries = append(entries, s.entries[:idx]...)
	entries = append(entries, s.entries[idx+1:]...)
	s.entries = entries
	s.logger.Debug("removed from watchlist", "id", id)
	return true, s.persist()
}
