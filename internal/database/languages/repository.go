// Package languages provides database operations for book languages.
package languages

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/database/dberr"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all language database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new languages repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, l *entities.Language) error {
	if err := catalog.ValidateLanguage(l); err != nil {
		return err
	}
	return dberr.Translate(r.db.WithContext(ctx).Create(l).Error)
}

func (r *Repository) Get(ctx context.Context, id uint) (*entities.Language, error) {
	var language entities.Language
	if err := r.db.WithContext(ctx).First(&language, id).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &language, nil
}

func (r *Repository) FindByName(ctx context.Context, name string) (*entities.Language, error) {
	var language entities.Language
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&language).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &language, nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Language, error) {
	var languages []entities.Language
	err := r.db.WithContext(ctx).Order("name ASC").Find(&languages).Error
	return languages, dberr.Translate(err)
}

func (r *Repository) Update(ctx context.Context, l *entities.Language) error {
	if err := catalog.ValidateLanguage(l); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&entities.Language{}).
		Where("id = ?", l.ID).
		Update("name", l.Name)
	if result.Error != nil {
		return dberr.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.Translate(gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a language and unlinks it from every book.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return dberr.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Language{ID: id}).Association("Books").Clear(); err != nil {
			return err
		}
		result := tx.Delete(&entities.Language{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}
