// Package memstore provides an in-memory implementation of
// store.EntryStore. It mirrors the SQLite store's semantics (dedup,
// trim, lazy expiry filtering) and exists for fast unit tests and the
// demo binary; nothing is persisted.
package memstore

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clipvault/clipvault/internal/store"
)

// MemoryStore is an in-memory implementation of store.EntryStore.
// It is thread-safe via a RWMutex: writes are serialized, reads share.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    map[int64]*store.Entry
	nextID     int64
	maxHistory int
}

// NewMemoryStore creates an empty in-memory store. maxHistory bounds
// retained non-expired entries; values <= 0 use store.DefaultMaxHistory.
func NewMemoryStore(maxHistory int) *MemoryStore {
	if maxHistory <= 0 {
		maxHistory = store.DefaultMaxHistory
	}
	return &MemoryStore{
		entries:    make(map[int64]*store.Entry),
		nextID:     1,
		maxHistory: maxHistory,
	}
}

// InsertOrTouch records an observation with the same atomicity as the
// SQLite store: the whole dedup/insert/trim sequence runs under one
// lock acquisition.
func (m *MemoryStore) InsertOrTouch(input *store.InsertInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for _, entry := range m.entries {
		if entry.Hash == input.Hash {
			entry.CreatedAt = now
			return nil
		}
	}

	id := m.nextID
	m.nextID++
	m.entries[id] = &store.Entry{
		ID:          id,
		ContentType: input.ContentType,
		TextContent: input.TextContent,
		ImageData:   input.ImageData,
		Hash:        input.Hash,
		CreatedAt:   now,
		ExpiresAt:   input.ExpiresAt,
		Sensitive:   input.Sensitive,
	}

	m.trimToMax(now)
	return nil
}

// trimToMax removes the oldest non-pinned live entries over the cap.
// Caller must hold the write lock.
func (m *MemoryStore) trimToMax(now time.Time) {
	var live, candidates []*store.Entry
	for _, entry := range m.entries {
		if entry.Expired(now) {
			continue
		}
		live = append(live, entry)
		if !entry.Pinned {
			candidates = append(candidates, entry)
		}
	}

	excess := len(live) - m.maxHistory
	if excess <= 0 {
		return
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})
	if excess > len(candidates) {
		excess = len(candidates)
	}
	for _, entry := range candidates[:excess] {
		delete(m.entries, entry.ID)
	}
}

// List returns live entries ordered pinned-first, newest first.
func (m *MemoryStore) List(limit int, includeImageData bool) ([]*store.Entry, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.liveSorted()
	if len(entries) > limit {
		entries = entries[:limit]
	}

	out := make([]*store.Entry, len(entries))
	for i, entry := range entries {
		out[i] = cloneEntry(entry, includeImageData)
	}
	return out, nil
}

// Search filters live text entries by literal substring.
func (m *MemoryStore) Search(query string) ([]*store.Entry, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return m.List(store.DefaultListLimit, false)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// SQLite LIKE folds case for ASCII only, so the fold here must not
	// touch non-ASCII letters or the backends disagree on queries like
	// "É" vs "é".
	lower := lowerASCII(q)
	var out []*store.Entry
	for _, entry := range m.liveSorted() {
		if !strings.Contains(lowerASCII(entry.TextContent), lower) {
			continue
		}
		out = append(out, cloneEntry(entry, false))
		if len(out) >= store.DefaultListLimit {
			break
		}
	}
	return out, nil
}

// ImageData returns the image payload for a single entry.
func (m *MemoryStore) ImageData(id int64) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[id]
	if !ok || entry.ContentType != store.ContentTypeImage {
		return nil, nil
	}
	data := make([]byte, len(entry.ImageData))
	copy(data, entry.ImageData)
	return data, nil
}

// SetPinned sets the pin flag for an entry.
func (m *MemoryStore) SetPinned(id int64, pinned bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.entries[id]; ok {
		entry.Pinned = pinned
	}
	return nil
}

// SetTags replaces the entry's tag set with the normalized given set.
func (m *MemoryStore) SetTags(id int64, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.entries[id]; ok {
		entry.Tags = store.NormalizeTags(tags)
	}
	return nil
}

// AddTag merges a single trimmed tag into the entry's tag set.
func (m *MemoryStore) AddTag(id int64, tag string) error {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.entries[id]; ok {
		entry.Tags = store.NormalizeTags(append(entry.Tags, trimmed))
	}
	return nil
}

// SweepExpired deletes entries whose expiry time has passed.
func (m *MemoryStore) SweepExpired() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, entry := range m.entries {
		if entry.Expired(now) {
			delete(m.entries, id)
		}
	}
	return nil
}

// Count returns the number of non-expired entries.
func (m *MemoryStore) Count() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := time.Now()
	count := 0
	for _, entry := range m.entries {
		if !entry.Expired(now) {
			count++
		}
	}
	return count, nil
}

// Clear removes all entries.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[int64]*store.Entry)
	return nil
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close() error {
	return nil
}

// liveSorted returns non-expired entries ordered pinned-first, then
// CreatedAt descending. Caller must hold at least a read lock.
func (m *MemoryStore) liveSorted() []*store.Entry {
	now := time.Now()
	var entries []*store.Entry
	for _, entry := range m.entries {
		if !entry.Expired(now) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Pinned != entries[j].Pinned {
			return entries[i].Pinned
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries
}

// lowerASCII lowercases A-Z only, leaving all other runes untouched.
func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// cloneEntry copies an entry so callers cannot mutate stored state.
func cloneEntry(entry *store.Entry, includeImageData bool) *store.Entry {
	clone := *entry
	clone.Tags = append([]string(nil), entry.Tags...)
	if includeImageData {
		clone.ImageData = append([]byte(nil), entry.ImageData...)
	} else {
		clone.ImageData = nil
	}
	return &clone
}
