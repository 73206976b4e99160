package testutil

import (
	"bytes"
	"io"
	"net/http"
)

// DoerFunc adapts a function to the httpimport.Doer interface.
type DoerFunc func(req *http.Request) (*http.Response, error)

// Do implements the httpimport.Doer interface
func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// NewStaticDoer returns a client double that answers every request with the
// given status, headers and body.  The response carries no Request field,
// mimicking transports that do not report a final (post-redirect) URL.
func NewStaticDoer(statusCode int, header http.Header, body []byte) DoerFunc {
	return func(req *http.Request) (*http.Response, error) {
		if header == nil {
			header = make(http.Header)
		}
		return &http.Response{
			StatusCode: statusCode,
			Header:     header,
			Body:       io.NopCloser(bytes.NewReader(body)),
		}, nil
	}
}
