package watchlist

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/domain"
)

// Match keeps the entries whose title fuzzily contains query, in their
// original order. Matching ignores case and diacritics.
func Match(entries []domain.Film, query string) []domain.Film {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}

	var out []domain.Film
	for _, f := range entries {
		if fuzzy.MatchNormalizedFold(query, f.Title) {
			out = append(out, f)
		}
	}
	return out
}
