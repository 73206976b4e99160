package httpimport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// debugFetch is a debug flag for use by a developer
const debugFetch = false

// Doer is the subset of http.Client the Fetcher needs.  Test doubles may
// return responses that carry no Request field (no final URL).
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher downloads a canonical path with a bounded timeout, following
// redirects transparently, and records the final URL of each successful
// download in the redirect ledger.
type Fetcher struct {
	client  Doer
	timeout time.Duration
	ledger  *RedirectLedger
	onLog   func(message string)
	logger  zerolog.Logger
}

func NewFetcher(client Doer, timeout time.Duration, ledger *RedirectLedger, onLog func(message string), logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		client:  client,
		timeout: timeout,
		ledger:  ledger,
		onLog:   onLog,
		logger:  logger,
	}
}

// Fetch downloads rawURL.  A non-2xx response fails with a *FetchError;
// timeouts and transport failures fail with a grpc status error carrying
// codes.DeadlineExceeded or codes.Unavailable.  Failures are fatal for the
// build and never retried.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResponse, error) {
	if f.onLog != nil {
		f.onLog(fmt.Sprintf("Downloading: %s", rawURL))
	}
	f.logger.Debug().Msgf("downloading %s", rawURL)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "creating request for %s: %v", rawURL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, status.Errorf(codes.DeadlineExceeded, "downloading %s: timed out after %v", rawURL, f.timeout)
		}
		return nil, status.Errorf(codes.Unavailable, "downloading %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if debugFetch {
		respDump, err := httputil.DumpResponse(resp, false)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("HTTP_RESPONSE:\n%s", string(respDump))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Path: rawURL, StatusCode: resp.StatusCode}
	}

	// the transport reports the URL of the final request in the redirect
	// chain; test doubles may not populate it, in which case the requested
	// URL stands in as the effective one.
	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	f.ledger.Record(rawURL, finalURL)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, status.Errorf(codes.DeadlineExceeded, "reading %s: timed out after %v", rawURL, f.timeout)
		}
		return nil, status.Errorf(codes.Unavailable, "reading %s: %v", rawURL, err)
	}

	f.logger.Debug().Msgf("downloaded %s (%d bytes, served from %s)", rawURL, len(body), finalURL)

	return &FetchResponse{
		URL:        finalURL,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
