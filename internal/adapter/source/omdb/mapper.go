package omdb

import (
	"fmt"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// mapFilm converts an OMDb search entry to a domain film
func mapFilm(item SearchItem) domain.Film {
	return domain.Film{
		ID:        strings.TrimSpace(item.IMDbID),
		Title:     item.Title,
		Year:      item.Year,
		PosterURL: item.Poster,
	}
}

// mapSearchResponse decodes the tagged OMDb answer.
// The Response field must be present; entries without an imdbID are dropped
// and a positive answer left with no entries is reported as not found.
func mapSearchResponse(resp SearchResponse) (domain.SearchResult, error) {
	switch resp.Response {
	case responseTrue:
		films := make([]domain.Film, 0, len(resp.Search))
		for _, item := range resp.Search {
			film := mapFilm(item)
			if film.ID == "" {
				continue
			}
			films = append(films, film)
		}
		if len(films) == 0 {
			return domain.SearchResult{Found: false, Message: resp.Error}, nil
		}
		return domain.SearchResult{Found: true, Films: films}, nil

	case responseFalse:
		return domain.SearchResult{Found: false, Message: strings.TrimSpace(resp.Error)}, nil

	default:
		return domain.SearchResult{}, fmt.Errorf("%w: response indicator %q", domain.ErrMalformedResponse, resp.Response)
	}
}
