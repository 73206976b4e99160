package httpimport

import "sync"

// RedirectLedger records, per requested canonical path, the URL the module
// was actually served from after redirects.  Entries live for the duration
// of one build; there is no expiry or eviction.  esbuild may run plugin
// callbacks from multiple goroutines, so access is synchronized.
type RedirectLedger struct {
	mu        sync.Mutex
	effective map[string]string
}

func NewRedirectLedger() *RedirectLedger {
	return &RedirectLedger{
		effective: make(map[string]string),
	}
}

// Record notes that a fetch of requested was ultimately served from
// effective.  A later fetch of the same path overwrites the entry.
func (l *RedirectLedger) Record(requested, effective string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.effective[requested] = effective
}

// BaseFor returns the base URL for resolving relative imports that appear
// inside the module fetched from requested: the redirect target if one was
// recorded, otherwise requested itself (no redirect observed).
func (l *RedirectLedger) BaseFor(requested string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if effective, ok := l.effective[requested]; ok {
		return effective
	}
	return requested
}
