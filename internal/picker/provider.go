// Package picker implements the interactive icon picker TUI.
package picker

import "context"

// Request is a single picker search request.
type Request struct {
	// RequestID is a monotonic counter used to discard stale responses.
	RequestID uint64

	// Query is the current search text.
	Query string

	// Limit is the maximum number of items to return.
	Limit int
}

// Item is one selectable icon.
type Item struct {
	// ID is the full "prefix:name" identifier.
	ID string

	// Score is the ranking score (lower is better).
	Score float64
}

// Response is the result of a picker search.
type Response struct {
	Items []Item
}

// Provider supplies search results to the picker. Implementations must
// be safe for concurrent use; fetches run on the Bubble Tea runtime's
// goroutines.
type Provider interface {
	Fetch(ctx context.Context, req Request) (Response, error)
}
