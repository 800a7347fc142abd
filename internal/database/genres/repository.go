// Package genres provides database operations for book genres.
//
// # Interface Implementation
//
//	var _ catalog.GenreStore = (*Repository)(nil)
//
// # Usage
//
//	repo := genres.NewRepository(db)
//	err := repo.Create(ctx, &entities.Genre{Name: "Fantasy"})
package genres

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/database/dberr"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a genre. Duplicate names fail with ErrUniquenessViolation.
func (r *Repository) Create(ctx context.Context, g *entities.Genre) error {
	if err := catalog.ValidateGenre(g); err != nil {
		return err
	}
	return dberr.Translate(r.db.WithContext(ctx).Create(g).Error)
}

// Get retrieves a genre by ID.
func (r *Repository) Get(ctx context.Context, id uint) (*entities.Genre, error) {
	var genre entities.Genre
	if err := r.db.WithContext(ctx).First(&genre, id).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &genre, nil
}

// FindByName retrieves a genre by its exact name.
func (r *Repository) FindByName(ctx context.Context, name string) (*entities.Genre, error) {
	var genre entities.Genre
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&genre).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &genre, nil
}

// List returns all genres ordered by name.
func (r *Repository) List(ctx context.Context) ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, dberr.Translate(err)
}

// Update renames a genre.
func (r *Repository) Update(ctx context.Context, g *entities.Genre) error {
	if err := catalog.ValidateGenre(g); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&entities.Genre{}).
		Where("id = ?", g.ID).
		Update("name", g.Name)
	if result.Error != nil {
		return dberr.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.Translate(gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a genre together with its book links. Books themselves
// are untouched.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return dberr.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Genre{ID: id}).Association("Books").Clear(); err != nil {
			return err
		}
		result := tx.Delete(&entities.Genre{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}
