// Package store defines the storage contract for clipvault's persistence
// layer. An EntryStore owns every persisted clipboard entry: all mutation
// and read paths funnel through it, and the data-model invariants
// (unique live hash, bounded retention, lazy expiry filtering) are
// enforced inside each write.
package store

// EntryStore manages clipboard entry persistence.
// Implementations must serialize writes (insert, touch, trim, pin, tag,
// sweep apply one at a time in submission order) while reads proceed
// concurrently against a consistent snapshot.
type EntryStore interface {
	// InsertOrTouch records a clipboard observation. If a live entry with
	// the same hash already exists, only its CreatedAt is bumped to now
	// (dedup-touch). Otherwise a new unpinned entry is inserted and the
	// store is trimmed back to its retention cap. Dedup check, insert,
	// and trim are one atomic unit.
	InsertOrTouch(input *InsertInput) error

	// List returns entries ordered pinned-first, then CreatedAt
	// descending, excluding expired entries. When includeImageData is
	// false, image payloads are omitted so listings stay cheap.
	// If limit <= 0 the default limit is used.
	List(limit int, includeImageData bool) ([]*Entry, error)

	// Search returns non-expired entries whose text contains the query
	// as a literal substring, ordered like List and capped at the
	// default limit. An empty or whitespace query behaves like List.
	Search(query string) ([]*Entry, error)

	// ImageData returns the image payload for a single entry, or nil
	// if the entry is absent or not an image.
	ImageData(id int64) ([]byte, error)

	// SetPinned sets the pin flag. Idempotent; pinned entries are
	// exempt from retention trimming and always sort first.
	SetPinned(id int64, pinned bool) error

	// SetTags replaces the entry's tag set with the given set,
	// normalized (trimmed, deduplicated, sorted). An empty set clears
	// the tags.
	SetTags(id int64, tags []string) error

	// AddTag merges a single tag into the entry's tag set. The tag is
	// trimmed first; an empty result is a no-op.
	AddTag(id int64, tag string) error

	// SweepExpired deletes every entry whose expiry time has passed.
	// Idempotent and safe to call with nothing to delete.
	SweepExpired() error

	// Count returns the number of non-expired entries.
	Count() (int, error)

	// Clear removes all entries.
	Clear() error

	// Close releases any resources (DB connections, etc.).
	Close() error
}
