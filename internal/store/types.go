package store

import (
	"time"
)

// ContentType identifies what kind of payload an entry holds.
type ContentType string

const (
	// ContentTypeText marks an entry carrying plain text.
	ContentTypeText ContentType = "text"
	// ContentTypeImage marks an entry carrying PNG-encoded image bytes.
	ContentTypeImage ContentType = "image"
)

// DefaultListLimit caps the number of entries returned by List and
// Search when the caller does not provide its own limit.
const DefaultListLimit = 100

// DefaultMaxHistory bounds the number of non-expired entries retained
// when no cap is configured. Oldest non-pinned entries are trimmed once
// the cap is exceeded.
const DefaultMaxHistory = 500

// PreviewLength is the maximum number of runes in an entry preview.
const PreviewLength = 80

// Entry represents one recorded clipboard observation with metadata.
type Entry struct {
	// ID is the store-assigned identity, stable for the entry's lifetime.
	ID int64

	// ContentType is text or image. Exactly one of TextContent and
	// ImageData is populated, consistent with this field.
	ContentType ContentType

	// TextContent is the clipboard text for text entries.
	TextContent string

	// ImageData is the PNG-encoded payload for image entries. Omitted
	// by List when image data was not requested.
	ImageData []byte

	// Hash is the hex-encoded SHA256 of the raw payload. No two live
	// entries share a hash.
	Hash string

	// CreatedAt orders the history. It is bumped, not preserved, when
	// identical content reappears.
	CreatedAt time.Time

	// ExpiresAt, when set and in the past, makes the entry invisible to
	// reads and eligible for the expiry sweep.
	ExpiresAt *time.Time

	// Pinned entries are exempt from retention trimming and sort first.
	Pinned bool

	// Sensitive records the classifier verdict at capture time. It only
	// influences how long the entry persists, never how it displays.
	Sensitive bool

	// Tags is the normalized (deduplicated, sorted) tag set.
	Tags []string
}

// InsertInput carries a clipboard observation into InsertOrTouch.
type InsertInput struct {
	ContentType ContentType
	TextContent string
	ImageData   []byte

	// Hash is the hex-encoded SHA256 of the payload, computed by the
	// caller during capture.
	Hash string

	// ExpiresAt is the optional expiry, set for sensitive text.
	ExpiresAt *time.Time

	// Sensitive is the classifier verdict for text entries.
	Sensitive bool
}

// Preview returns a short display string for the entry: text truncated
// to PreviewLength runes with an ellipsis, or a fixed label for images.
// The fuzzy ranker scores previews, so image entries stay findable by
// their label.
func (e *Entry) Preview() string {
	if e.ContentType == ContentTypeImage {
		return "[image]"
	}
	runes := []rune(e.TextContent)
	if len(runes) <= PreviewLength {
		return e.TextContent
	}
	return string(runes[:PreviewLength]) + "…"
}

// Expired reports whether the entry's expiry time has passed as of now.
func (e *Entry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && !e.ExpiresAt.After(now)
}
