// Package search composes the history engine and the fuzzy ranker into
// a live search session: a query optionally starts with a "tag:<name>"
// token that filters by exact tag membership, the rest of the query
// selects the fuzzy-matching subset, and the final display order is
// pinned-first then newest-first regardless of fuzzy score.
package search

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clipvault/clipvault/internal/fuzzy"
	"github.com/clipvault/clipvault/internal/history"
	"github.com/clipvault/clipvault/internal/store"
)

// DefaultDebounce is the recommended delay between keystrokes and
// query evaluation for search-as-you-type callers.
const DefaultDebounce = fuzzy.DebounceMillis * time.Millisecond

// ParseTagFilter extracts a leading "tag:<name>" token from a query.
// It returns the tag (empty when there is none) and the remaining
// search text.
func ParseTagFilter(query string) (tag, rest string) {
	q := strings.TrimSpace(query)
	if !strings.HasPrefix(strings.ToLower(q), "tag:") {
		return "", q
	}

	after := q[len("tag:"):]
	if i := strings.IndexFunc(after, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }); i >= 0 {
		return strings.TrimSpace(after[:i]), strings.TrimSpace(after[i+1:])
	}
	return strings.TrimSpace(after), ""
}

// Session serves live queries over the history engine. It lists up to
// limit entries per query so the whole retained history is searchable,
// not just the default listing page.
type Session struct {
	engine *history.Engine
	limit  int
}

// NewSession creates a search session over the engine covering up to
// store.DefaultMaxHistory entries per query.
func NewSession(engine *history.Engine) *Session {
	return NewSessionWithLimit(engine, store.DefaultMaxHistory)
}

// NewSessionWithLimit creates a search session that lists up to limit
// entries per query. Pass the configured max-history so every retained
// entry stays reachable. Values <= 0 use store.DefaultMaxHistory.
func NewSessionWithLimit(engine *history.Engine, limit int) *Session {
	if limit <= 0 {
		limit = store.DefaultMaxHistory
	}
	return &Session{engine: engine, limit: limit}
}

// Query evaluates a search query: list from the engine, filter by tag
// membership when a tag: token leads the query, keep the fuzzy-matching
// subset of the rest, then order for display by pin status and recency.
func (s *Session) Query(query string) []*store.Entry {
	tag, rest := ParseTagFilter(query)

	entries := s.engine.Entries(s.limit, false)
	if tag != "" {
		entries = filterByTag(entries, tag)
	}

	matched := fuzzy.Rank(entries, rest)
	return displayOrder(matched)
}

func filterByTag(entries []*store.Entry, tag string) []*store.Entry {
	var out []*store.Entry
	for _, entry := range entries {
		if store.HasTag(entry.Tags, tag) {
			out = append(out, entry)
		}
	}
	return out
}

// displayOrder sorts matched entries pinned-first, then CreatedAt
// descending. Fuzzy score decides membership only, never display
// order; ties keep their fuzzy order (stable sort).
func displayOrder(entries []*store.Entry) []*store.Entry {
	out := make([]*store.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Debouncer coalesces rapid queries: each Trigger cancels the pending
// evaluation, so only the latest query within the delay window runs.
// Cancellation is advisory; queries are pure reads.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer. A non-positive delay uses
// DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the debounce delay, cancelling any
// previously pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
