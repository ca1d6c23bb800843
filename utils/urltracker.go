package utils

import (
	"net/url"
	"strings"
	"sync"
)

// URLTracker remembers listing URLs already collected during one extraction run.
// URLs are compared without query string and fragment, since search pages
// decorate the same room link with per-impression tracking parameters.
type URLTracker struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewURLTracker creates a new tracker
func NewURLTracker() *URLTracker {
	return &URLTracker{seen: make(map[string]struct{})}
}

// Add reports whether rawURL was not seen before and records it
func (t *URLTracker) Add(rawURL string) bool {
	key := trackingKey(rawURL)
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.seen[key]; exists {
		return false
	}
	t.seen[key] = struct{}{}
	return true
}

// Count returns the number of distinct URLs recorded
func (t *URLTracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}

func trackingKey(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	u.Fragment = ""
	return strings.ToLower(u.Host) + strings.TrimSuffix(u.Path, "/")
}
