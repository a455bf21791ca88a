package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// User-facing messages for the search error taxonomy
const (
	MsgEmptyQuery   = "Please enter a movie title"
	MsgNoMovies     = "No movies found"
	MsgFetchFailure = "Failed to fetch movies"
)

// Service turns a title into a displayable outcome
type Service struct {
	client domain.SearchClient
	logger *slog.Logger
}

// NewService creates a new search service
func NewService(client domain.SearchClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client: client,
		logger: logger,
	}
}

// Validate returns the trimmed title, or false when nothing is left to search for
func Validate(title string) (string, bool) {
	trimmed := strings.TrimSpace(title)
	return trimmed, trimmed != ""
}

// Search performs exactly one gateway call for a non-empty title.
// Errors never escape: every failure is folded into ErrorMessage.
func (s *Service) Search(ctx context.Context, title string) domain.SearchOutcome {
	trimmed, ok := Validate(title)
	if !ok {
		return domain.SearchOutcome{ErrorMessage: MsgEmptyQuery}
	}

	s.logger.Debug("searching", "query", trimmed)

	result, err := s.client.SearchTitle(ctx, trimmed)
	if err != nil {
		s.logger.Warn("search failed", "query", trimmed, "error", err)
		return domain.SearchOutcome{ErrorMessage: MsgFetchFailure}
	}

	if !result.Found || len(result.Films) == 0 {
		msg := strings.TrimSpace(result.Message)
		if msg == "" {
			msg = MsgNoMovies
		}
		s.logger.Debug("no results", "query", trimmed, "message", msg)
		return domain.SearchOutcome{ErrorMessage: msg}
	}

	s.logger.Debug("search complete", "query", trimmed, "results", len(result.Films))
	return domain.SearchOutcome{Films: result.Films}
}
