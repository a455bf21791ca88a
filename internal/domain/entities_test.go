package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilmStartYear(t *testing.T) {
	tests := []struct {
		year   string
		want   int
		wantOK bool
	}{
		{"1999", 1999, true},
		{"2001–2003", 2001, true},
		{"2019–", 2019, true},
		{" 1984 ", 1984, true},
		{"N/A", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			got, ok := Film{Year: tt.year}.StartYear()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilmPoster(t *testing.T) {
	const placeholder = "https://via.placeholder.com/150"

	withPoster := Film{PosterURL: "https://img.example/p.jpg"}
	assert.True(t, withPoster.HasPoster())
	assert.Equal(t, "https://img.example/p.jpg", withPoster.PosterOr(placeholder))

	sentinel := Film{PosterURL: PosterUnavailable}
	assert.False(t, sentinel.HasPoster())
	assert.Equal(t, placeholder, sentinel.PosterOr(placeholder))

	assert.Equal(t, placeholder, Film{}.PosterOr(placeholder))
}

func TestFilmIMDbURL(t *testing.T) {
	assert.Equal(t, "https://www.imdb.com/title/tt0133093/", Film{ID: "tt0133093"}.IMDbURL())
	assert.Empty(t, Film{}.IMDbURL())
}

func TestContainsFilm(t *testing.T) {
	films := []Film{{ID: "tt1"}, {ID: "tt2"}}
	assert.True(t, ContainsFilm(films, "tt2"))
	assert.False(t, ContainsFilm(films, "tt3"))
	assert.False(t, ContainsFilm(nil, "tt1"))
}
