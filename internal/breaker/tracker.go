// Package breaker tracks repeated "not found" responses per endpoint and
// blocks an endpoint locally for a cool-down once they pile up.
//
// It is a sliding-window counter, not a general rate limiter: only the
// failures explicitly recorded by the caller count, and a successful
// response does not clear earlier failures.
package breaker

import (
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	DefaultWindow    = 30 * time.Second
	DefaultThreshold = 5
	DefaultCooldown  = 60 * time.Second
)

// Config tunes a Tracker. Zero fields take the defaults.
type Config struct {
	Window    time.Duration
	Threshold int
	Cooldown  time.Duration
}

type record struct {
	failures     []time.Time
	blockedUntil time.Time
}

// Tracker is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	cfg     Config
	now     func() time.Time
	records map[string]*record
}

type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func New(cfg Config, opts ...Option) *Tracker {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}

	t := &Tracker{
		cfg:     cfg,
		now:     time.Now,
		records: make(map[string]*record),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Key builds the endpoint key "<METHOD> <path>". Query strings and fragments
// are dropped, so /api/entries?from=a and /api/entries?from=b share a key.
func Key(method, path string) string {
	if u, err := url.Parse(path); err == nil && u.Path != "" {
		path = u.Path
	} else if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return strings.ToUpper(method) + " " + path
}

// RecordFailure registers a failure for key and reports whether this call is
// the one that blocked it. A key that is already blocked keeps its original
// deadline.
func (t *Tracker) RecordFailure(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	rec, ok := t.records[key]
	if !ok {
		rec = &record{}
		t.records[key] = rec
	}

	rec.failures = t.prune(rec.failures, now)
	rec.failures = append(rec.failures, now)

	if rec.blockedUntil.After(now) {
		return false
	}

	if len(rec.failures) > t.cfg.Threshold {
		rec.blockedUntil = now.Add(t.cfg.Cooldown)
		return true
	}
	return false
}

// Check reports whether key is blocked and until when. An expired block is
// cleared on the way.
func (t *Tracker) Check(key string) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[key]
	if !ok {
		return time.Time{}, false
	}

	now := t.now()
	if rec.blockedUntil.IsZero() {
		return time.Time{}, false
	}
	if rec.blockedUntil.After(now) {
		return rec.blockedUntil, true
	}

	rec.blockedUntil = time.Time{}
	rec.failures = t.prune(rec.failures, now)
	if len(rec.failures) == 0 {
		delete(t.records, key)
	}
	return time.Time{}, false
}

// Failures returns the number of failures for key still inside the window.
func (t *Tracker) Failures(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[key]
	if !ok {
		return 0
	}
	rec.failures = t.prune(rec.failures, t.now())
	return len(rec.failures)
}

// Reset forgets every record.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = make(map[string]*record)
}

// Block describes a currently blocked endpoint.
type Block struct {
	Key   string
	Until time.Time
}

// Snapshot lists the blocked endpoints sorted by key.
func (t *Tracker) Snapshot() []Block {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	out := make([]Block, 0)
	for k, rec := range t.records {
		if rec.blockedUntil.After(now) {
			out = append(out, Block{Key: k, Until: rec.blockedUntil})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (t *Tracker) prune(failures []time.Time, now time.Time) []time.Time {
	kept := make([]time.Time, 0, len(failures))
	for _, ts := range failures {
		if now.Sub(ts) < t.cfg.Window {
			kept = append(kept, ts)
		}
	}
	return kept
}
