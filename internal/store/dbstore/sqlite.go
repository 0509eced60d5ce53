// Package dbstore provides the SQLite-backed implementation of
// store.EntryStore. Writes are serialized through a single mutex and
// each insert runs its dedup check, row creation, and retention trim
// inside one transaction, so readers never observe a duplicate hash or
// an over-cap state.
package dbstore

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clipvault/clipvault/internal/store"
)

// SQLiteStore is a SQLite-backed implementation of store.EntryStore.
type SQLiteStore struct {
	db         *gorm.DB
	dbPath     string
	maxHistory int

	// writeMu serializes all mutating operations. Reads go straight to
	// the database and see committed state only.
	writeMu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at dbPath and migrates
// the schema. maxHistory bounds the number of retained non-expired
// entries; values <= 0 fall back to store.DefaultMaxHistory.
func NewSQLiteStore(dbPath string, maxHistory int) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&EntryModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	if maxHistory <= 0 {
		maxHistory = store.DefaultMaxHistory
	}

	return &SQLiteStore{
		db:         db,
		dbPath:     dbPath,
		maxHistory: maxHistory,
	}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InsertOrTouch records an observation: bump CreatedAt when the hash is
// already live, otherwise insert and trim, all in one transaction.
func (s *SQLiteStore) InsertOrTouch(input *store.InsertInput) error {
	if input.Hash == "" {
		return fmt.Errorf("insert requires a content hash")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing EntryModel
		err := tx.Select("id").Where("hash = ?", input.Hash).First(&existing).Error
		if err == nil {
			// Dedup-touch: refresh recency, keep everything else.
			return tx.Model(&EntryModel{}).
				Where("id = ?", existing.ID).
				Update("created_at", now).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing entry: %w", err)
		}

		model := &EntryModel{
			ContentType: string(input.ContentType),
			TextContent: input.TextContent,
			ImageData:   input.ImageData,
			Hash:        input.Hash,
			CreatedAt:   now,
			ExpiresAt:   input.ExpiresAt,
			Pinned:      false,
			Sensitive:   input.Sensitive,
		}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to insert entry: %w", err)
		}

		return trimToMax(tx, s.maxHistory, now)
	})
	if err != nil {
		return fmt.Errorf("insert or touch: %w", err)
	}
	return nil
}

// trimToMax removes the oldest non-pinned, non-expired entries so the
// live count does not exceed maxHistory. Pinned entries are never
// removed, so the cap may stay exceeded when too many are pinned.
func trimToMax(tx *gorm.DB, maxHistory int, now time.Time) error {
	var live int64
	err := tx.Model(&EntryModel{}).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Count(&live).Error
	if err != nil {
		return fmt.Errorf("failed to count live entries: %w", err)
	}

	excess := int(live) - maxHistory
	if excess <= 0 {
		return nil
	}

	var ids []int64
	err = tx.Model(&EntryModel{}).
		Select("id").
		Where("(expires_at IS NULL OR expires_at > ?) AND pinned = ?", now, false).
		Order("created_at ASC").
		Limit(excess).
		Pluck("id", &ids).Error
	if err != nil {
		return fmt.Errorf("failed to find trim candidates: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	if err := tx.Delete(&EntryModel{}, ids).Error; err != nil {
		return fmt.Errorf("failed to trim entries: %w", err)
	}
	return nil
}

// listColumns omits image_data so listings stay cheap for large blobs.
var listColumns = []string{
	"id", "content_type", "text_content", "hash",
	"created_at", "expires_at", "pinned", "sensitive", "tags",
}

// List returns non-expired entries ordered pinned-first, newest first.
func (s *SQLiteStore) List(limit int, includeImageData bool) ([]*store.Entry, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	query := s.db.Model(&EntryModel{}).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("pinned DESC, created_at DESC").
		Limit(limit)
	if !includeImageData {
		query = query.Select(listColumns)
	}

	var models []*EntryModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return toEntries(models), nil
}

// Search filters non-expired text entries by literal substring.
func (s *SQLiteStore) Search(query string) ([]*store.Entry, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return s.List(store.DefaultListLimit, false)
	}

	var models []*EntryModel
	err := s.db.Model(&EntryModel{}).
		Select(listColumns).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Where("text_content LIKE ?", "%"+q+"%").
		Order("pinned DESC, created_at DESC").
		Limit(store.DefaultListLimit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}

	return toEntries(models), nil
}

// ImageData returns the image payload for a single entry.
func (s *SQLiteStore) ImageData(id int64) ([]byte, error) {
	var model EntryModel
	err := s.db.Select("image_data").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch image data: %w", err)
	}
	return model.ImageData, nil
}

// SetPinned sets the pin flag for an entry.
func (s *SQLiteStore) SetPinned(id int64, pinned bool) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.db.Model(&EntryModel{}).
		Where("id = ?", id).
		Update("pinned", pinned).Error
	if err != nil {
		return fmt.Errorf("failed to set pinned: %w", err)
	}
	return nil
}

// SetTags replaces the entry's tag set with the normalized given set.
func (s *SQLiteStore) SetTags(id int64, tags []string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.db.Model(&EntryModel{}).
		Where("id = ?", id).
		Update("tags", store.JoinTags(tags)).Error
	if err != nil {
		return fmt.Errorf("failed to set tags: %w", err)
	}
	return nil
}

// AddTag merges a single trimmed tag into the entry's tag set.
func (s *SQLiteStore) AddTag(id int64, tag string) error {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var model EntryModel
		err := tx.Select("id", "tags").First(&model, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("entry not found: %d", id)
			}
			return fmt.Errorf("failed to load tags: %w", err)
		}

		merged := append(store.SplitTags(model.Tags), trimmed)
		err = tx.Model(&EntryModel{}).
			Where("id = ?", id).
			Update("tags", store.JoinTags(merged)).Error
		if err != nil {
			return fmt.Errorf("failed to add tag: %w", err)
		}
		return nil
	})
}

// SweepExpired deletes entries whose expiry time has passed.
func (s *SQLiteStore) SweepExpired() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.db.
		Where("expires_at IS NOT NULL AND expires_at <= ?", time.Now()).
		Delete(&EntryModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to sweep expired entries: %w", err)
	}
	return nil
}

// Count returns the number of non-expired entries.
func (s *SQLiteStore) Count() (int, error) {
	var count int64
	err := s.db.Model(&EntryModel{}).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return int(count), nil
}

// Clear removes all entries.
func (s *SQLiteStore) Clear() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&EntryModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	return nil
}

func toEntries(models []*EntryModel) []*store.Entry {
	entries := make([]*store.Entry, len(models))
	for i, model := range models {
		entries[i] = model.ToEntry()
	}
	return entries
}
