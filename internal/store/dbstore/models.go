package dbstore

import (
	"time"

	"github.com/clipvault/clipvault/internal/store"
)

// EntryModel is the database representation of a clipboard entry.
type EntryModel struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	ContentType string     `gorm:"size:8;not null"`         // "text" or "image"
	TextContent string     `gorm:"type:text"`               // populated for text entries
	ImageData   []byte     `gorm:"type:blob"`               // populated for image entries
	Hash        string     `gorm:"size:64;uniqueIndex;not null"` // SHA256 of the payload
	CreatedAt   time.Time  `gorm:"not null;index"`          // bumped on dedup-touch
	ExpiresAt   *time.Time `gorm:"index"`                   // set for sensitive text
	Pinned      bool       `gorm:"not null;default:false"`
	Sensitive   bool       `gorm:"not null;default:false"`
	Tags        string     // comma-joined normalized tag set, "" when absent
}

// TableName returns the table name for EntryModel
func (EntryModel) TableName() string {
	return "clipboard_entries"
}

// ToEntry converts the GORM model to a store.Entry
func (m *EntryModel) ToEntry() *store.Entry {
	return &store.Entry{
		ID:          m.ID,
		ContentType: store.ContentType(m.ContentType),
		TextContent: m.TextContent,
		ImageData:   m.ImageData,
		Hash:        m.Hash,
		CreatedAt:   m.CreatedAt,
		ExpiresAt:   m.ExpiresAt,
		Pinned:      m.Pinned,
		Sensitive:   m.Sensitive,
		Tags:        store.SplitTags(m.Tags),
	}
}
