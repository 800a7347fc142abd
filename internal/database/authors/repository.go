// Package authors provides database operations for authors.
//
// Authors referenced by a book cannot be deleted; Delete reports
// catalog.ErrReferentialIntegrityViolation instead of cascading.
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	list, err := repo.List(ctx) // ordered by last name, first name
package authors

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/database/dberr"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an author.
func (r *Repository) Create(ctx context.Context, a *entities.Author) error {
	if err := catalog.ValidateAuthor(a); err != nil {
		return err
	}
	return dberr.Translate(r.db.WithContext(ctx).Create(a).Error)
}

// Get retrieves an author by ID.
func (r *Repository) Get(ctx context.Context, id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.WithContext(ctx).First(&author, id).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &author, nil
}

// List returns all authors ordered by last name, then first name.
func (r *Repository) List(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC").Find(&authors).Error
	return authors, dberr.Translate(err)
}

// Update overwrites every attribute of an author, including clearing dates
// set to nil.
func (r *Repository) Update(ctx context.Context, a *entities.Author) error {
	if err := catalog.ValidateAuthor(a); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&entities.Author{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"first_name":    a.FirstName,
			"last_name":     a.LastName,
			"date_of_birth": a.DateOfBirth,
			"date_of_death": a.DateOfDeath,
		})
	if result.Error != nil {
		return dberr.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.Translate(gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes an author that no book references.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return dberr.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var books int64
		if err := tx.Model(&entities.Book{}).Where("author_id = ?", id).Count(&books).Error; err != nil {
			return err
		}
		if books > 0 {
			return fmt.Errorf("%w: author %d is referenced by %d book(s)",
				catalog.ErrReferentialIntegrityViolation, id, books)
		}

		result := tx.Delete(&entities.Author{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}
