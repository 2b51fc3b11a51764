package imdb

import (
	"context"
	"fmt"
)

// Title represents a movie or series title with its name and release year.
type Title struct {
	Name string
	Year int
}

// IMDB defines the methods to interact with the IMDB website.
type IMDB interface {
	// GetTitle gets a Title by its ID.
	GetTitle(ctx context.Context, imdbID string) (*Title, error)
	// GetTechnicalPage fetches the raw markup of the technical-specs page
	// for a title and returns it decoded to UTF-8, plus the page URL.
	GetTechnicalPage(ctx context.Context, imdbID string) (document string, pageURL string, err error)
}

// StatusError reports a non-success response from the upstream site. The
// caller decides the UI fallback; there is no automatic retry.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream responded with status %d", e.StatusCode)
}
