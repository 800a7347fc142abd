// Package instances provides database operations for book instances, the
// physical copies a library can lend.
//
// Instance identifiers are random UUIDs assigned on Create; callers never
// choose them.
package instances

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/database/dberr"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all book instance database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new instances repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an instance with a freshly generated ID. A blank status
// defaults to maintenance.
func (r *Repository) Create(ctx context.Context, bi *entities.BookInstance) error {
	if err := catalog.ValidateBookInstance(bi); err != nil {
		return err
	}
	bi.ID = uuid.Nil
	return dberr.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireBook(tx, bi.BookID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(bi).Error
	}))
}

// Get retrieves an instance together with its book.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*entities.BookInstance, error) {
	var instance entities.BookInstance
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("id = ?", id).
		First(&instance).Error
	if err != nil {
		return nil, dberr.Translate(err)
	}
	return &instance, nil
}

// List returns instances matching filter ordered by due date.
func (r *Repository) List(ctx context.Context, filter catalog.InstanceFilter) ([]entities.BookInstance, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", catalog.ErrValidation, filter.Status)
	}

	query := r.db.WithContext(ctx).Preload("Book")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.BookID != 0 {
		query = query.Where("book_id = ?", filter.BookID)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_back >= ?", filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_back <= ?", filter.DueTo)
	}

	var list []entities.BookInstance
	err := query.Order("due_back ASC").Order("id ASC").Find(&list).Error
	return list, dberr.Translate(err)
}

// ListByBook returns the instances of one book.
func (r *Repository) ListByBook(ctx context.Context, bookID uint) ([]entities.BookInstance, error) {
	return r.List(ctx, catalog.InstanceFilter{BookID: bookID})
}

// Update overwrites the book, due date, imprint and status of an instance.
func (r *Repository) Update(ctx context.Context, bi *entities.BookInstance) error {
	if err := catalog.ValidateBookInstance(bi); err != nil {
		return err
	}
	if !bi.Status.IsValid() {
		return fmt.Errorf("%w: status is required", catalog.ErrValidation)
	}
	return dberr.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireBook(tx, bi.BookID); err != nil {
			return err
		}
		result := tx.Model(&entities.BookInstance{}).
			Where("id = ?", bi.ID).
			Updates(map[string]any{
				"book_id":  bi.BookID,
				"due_back": bi.DueBack,
				"imprint":  bi.Imprint,
				"status":   bi.Status,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

// Delete removes an instance.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.BookInstance{})
	if result.Error != nil {
		return dberr.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.Translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func requireBook(tx *gorm.DB, bookID uint) error {
	var n int64
	if err := tx.Model(&entities.Book{}).Where("id = ?", bookID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: book %d does not exist", catalog.ErrValidation, bookID)
	}
	return nil
}
