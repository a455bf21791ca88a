package domain

import "context"

// SearchResult is the decoded gateway answer for a title search.
// Found selects the variant: Films is set when true, Message when false.
type SearchResult struct {
	Found   bool
	Films   []Film
	Message string // Gateway-provided reason for a negative answer, may be empty
}

// SearchOutcome is what a search produced for display.
// Exactly one of Films and ErrorMessage is non-empty.
type SearchOutcome struct {
	Films        []Film
	ErrorMessage string
}

// SearchClient provides network search by title.
type SearchClient interface {
	SearchTitle(ctx context.Context, title string) (SearchResult, error)
}
