package watchlist

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField selects the watchlist ordering
type SortField int

const (
	SortTitle SortField = iota
	SortYear
)

// String returns the display name for the sort field
func (f SortField) String() string {
	switch f {
	case SortTitle:
		return "Title"
	case SortYear:
		return "Year"
	default:
		return "Unknown"
	}
}

// SortFields returns the available sort fields in display order
func SortFields() []SortField {
	return []SortField{SortTitle, SortYear}
}

// ParseSortField maps "title" or "year" (any case) to a field
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "title":
		return SortTitle, nil
	case "year":
		return SortYear, nil
	default:
		return SortTitle, fmt.Errorf("unknown sort field %q (want title or year)", s)
	}
}

// SortDirection represents sort direction
type SortDirection int

const (
	SortAsc SortDirection = iota
	SortDesc
)

// Sorter orders watchlist entries, comparing titles with a locale's collation rules
type Sorter struct {
	locale language.Tag
}

// NewSorter creates a sorter for a BCP 47 locale such as "en" or "de-CH".
// Unparsable locales fall back to the root collation.
func NewSorter(locale string) Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return Sorter{locale: tag}
}

// Sort returns a sorted copy of entries; entries itself is never modified.
// Year order uses the numeric start year, unparsable years last in either
// direction. Both orders are stable, so ties keep watchlist order.
func (s Sorter) Sort(entries []domain.Film, field SortField, dir SortDirection) []domain.Film {
	out := slices.Clone(entries)
	if len(out) < 2 {
		return out
	}

	var cmp func(a, b domain.Film) int
	switch field {
	case SortYear:
		cmp = func(a, b domain.Film) int { return compareYear(a, b, dir) }
	default:
		// Collator keeps internal buffers and is not safe to share
		col := collate.New(s.locale)
		cmp = func(a, b domain.Film) int {
			if dir == SortDesc {
				a, b = b, a
			}
			return col.CompareString(a.Title, b.Title)
		}
	}

	slices.SortStableFunc(out, cmp)
	return out
}

// compareYear orders by start year in dir; entries without one go last either way
func compareYear(a, b domain.Film, dir SortDirection) int {
	ya, okA := a.StartYear()
	yb, okB := b.StartYear()
	switch {
	case okA && okB:
		if dir == SortDesc {
			return yb - ya
		}
		return ya - yb
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}
