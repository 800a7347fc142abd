// Package audit stores the admin change history.
package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/database/dberr"
	"github.com/mrlokans/locallibrary/internal/entities"
)

const defaultLimit = 50

// Filter narrows a history listing. Zero values match everything.
type Filter struct {
	Kind     string
	ObjectID string
	Action   entities.ChangeAction
	Limit    int
	Offset   int
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Record saves a change entry.
func (r *Repository) Record(ctx context.Context, entry *entities.ChangeEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return dberr.Translate(r.db.WithContext(ctx).Create(entry).Error)
}

// List returns matching entries, most recent first, and the total number
// of matches before pagination.
func (r *Repository) List(ctx context.Context, f Filter) ([]entities.ChangeEntry, int64, error) {
	var entries []entities.ChangeEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.ChangeEntry{})
	if f.Kind != "" {
		query = query.Where("kind = ?", f.Kind)
	}
	if f.ObjectID != "" {
		query = query.Where("object_id = ?", f.ObjectID)
	}
	if f.Action != "" {
		query = query.Where("action = ?", f.Action)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dberr.Translate(err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, dberr.Translate(err)
}

// DeleteOlderThan removes entries created before cutoff and returns how
// many were removed.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&entities.ChangeEntry{})
	return result.RowsAffected, dberr.Translate(result.Error)
}
