package httpimport

import "net/http"

// FetchResponse is the outcome of a successful download: the complete
// response body plus the metadata loader classification needs.  It is
// transient state, not retained beyond the load operation that produced it.
type FetchResponse struct {
	// URL is the effective (post-redirect) URL the content was served from.
	URL string
	// StatusCode is the HTTP status of the final response.
	StatusCode int
	// Header holds the response headers of the final response.
	Header http.Header
	// Body is the complete, unmodified response body.
	Body []byte
}
