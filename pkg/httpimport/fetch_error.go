package httpimport

import "fmt"

// FetchError is the error produced when a remote module responds with a
// non-success status.  It is fatal for the build; the fetch is not retried.
type FetchError struct {
	// Path is the canonical path that was requested.
	Path string
	// StatusCode is the HTTP status of the response.
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("GET %s failed: status %d", e.Path, e.StatusCode)
}
