package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// PosterUnavailable is the gateway's marker for a film without a poster image
const PosterUnavailable = "N/A"

// imdbTitleURL is the public page for an IMDb title identifier
const imdbTitleURL = "https://www.imdb.com/title/"

// Film is a single search result or watchlist entry
type Film struct {
	ID        string // IMDb identifier, unique per film
	Title     string // Display title
	Year      string // Release year as sent by the gateway ("1999", "2001–2003")
	PosterURL string // Poster image URL or PosterUnavailable
}

// HasPoster reports whether the film carries a usable poster URL
func (f Film) HasPoster() bool {
	p := strings.TrimSpace(f.PosterURL)
	return p != "" && p != PosterUnavailable
}

// PosterOr returns the poster URL, or placeholder when none is available
func (f Film) PosterOr(placeholder string) string {
	if f.HasPoster() {
		return f.PosterURL
	}
	return placeholder
}

// IMDbURL returns the film's IMDb page, empty if the film has no ID
func (f Film) IMDbURL() string {
	if f.ID == "" {
		return ""
	}
	return imdbTitleURL + f.ID + "/"
}

// StartYear parses the leading year of Year.
// Series ranges like "2001–2003" yield 2001.
func (f Film) StartYear() (int, bool) {
	s := strings.TrimSpace(f.Year)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}
	year, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return year, true
}

// ContainsFilm reports whether films holds an entry with the given ID
func ContainsFilm(films []Film, id string) bool {
	for _, f := range films {
		if f.ID == id {
			return true
		}
	}
	return false
}
