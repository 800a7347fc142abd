// Package books provides database operations for books and their genre and
// language links.
//
// # Interface Implementation
//
//	var _ catalog.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.FindByISBN(ctx, "9780141439518")
package books

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/database/dberr"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func preloaded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Preload("Languages", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		})
}

// Create inserts a book and links the genres and languages it carries by
// ID. The referenced author, genres and languages must already exist; they
// are never created or modified here.
func (r *Repository) Create(ctx context.Context, b *entities.Book) error {
	if err := catalog.ValidateBook(b); err != nil {
		return err
	}
	return dberr.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAuthor(tx, b.AuthorID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
			return err
		}
		if err := replaceGenres(tx, b.ID, entityIDs(b.Genres, genreID)); err != nil {
			return err
		}
		return replaceLanguages(tx, b.ID, entityIDs(b.Languages, languageID))
	}))
}

// Get retrieves a book with its author, genres and languages.
func (r *Repository) Get(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	if err := preloaded(r.db.WithContext(ctx)).First(&book, id).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &book, nil
}

// FindByISBN retrieves a book by ISBN.
func (r *Repository) FindByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	var book entities.Book
	if err := preloaded(r.db.WithContext(ctx)).Where("isbn = ?", isbn).First(&book).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &book, nil
}

// List returns all books ordered by title.
func (r *Repository) List(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := preloaded(r.db.WithContext(ctx)).Order("title ASC, id ASC").Find(&books).Error
	return books, dberr.Translate(err)
}

// ListByAuthor returns the books of one author ordered by title.
func (r *Repository) ListByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := preloaded(r.db.WithContext(ctx)).
		Where("author_id = ?", authorID).
		Order("title ASC, id ASC").
		Find(&books).Error
	return books, dberr.Translate(err)
}

// Update overwrites the scalar attributes of a book. Genre and language
// links are replaced only when the corresponding slice is non-nil.
func (r *Repository) Update(ctx context.Context, b *entities.Book) error {
	if err := catalog.ValidateBook(b); err != nil {
		return err
	}
	return dberr.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAuthor(tx, b.AuthorID); err != nil {
			return err
		}
		result := tx.Model(&entities.Book{}).
			Where("id = ?", b.ID).
			Updates(map[string]any{
				"title":     b.Title,
				"summary":   b.Summary,
				"isbn":      b.ISBN,
				"author_id": b.AuthorID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if b.Genres != nil {
			if err := replaceGenres(tx, b.ID, entityIDs(b.Genres, genreID)); err != nil {
				return err
			}
		}
		if b.Languages != nil {
			return replaceLanguages(tx, b.ID, entityIDs(b.Languages, languageID))
		}
		return nil
	}))
}

// SetGenres replaces the genres of a book.
func (r *Repository) SetGenres(ctx context.Context, bookID uint, genreIDs []uint) error {
	return dberr.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireBook(tx, bookID); err != nil {
			return err
		}
		return replaceGenres(tx, bookID, uniqueIDs(genreIDs))
	}))
}

// SetLanguages replaces the languages of a book.
func (r *Repository) SetLanguages(ctx context.Context, bookID uint, languageIDs []uint) error {
	return dberr.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireBook(tx, bookID); err != nil {
			return err
		}
		return replaceLanguages(tx, bookID, uniqueIDs(languageIDs))
	}))
}

// Delete removes a book that no instance references, along with its genre
// and language links.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return dberr.Translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var instances int64
		if err := tx.Model(&entities.BookInstance{}).Where("book_id = ?", id).Count(&instances).Error; err != nil {
			return err
		}
		if instances > 0 {
			return fmt.Errorf("%w: book %d is referenced by %d instance(s)",
				catalog.ErrReferentialIntegrityViolation, id, instances)
		}

		book := &entities.Book{ID: id}
		if err := tx.Model(book).Association("Genres").Clear(); err != nil {
			return err
		}
		if err := tx.Model(book).Association("Languages").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&entities.Book{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

func requireAuthor(tx *gorm.DB, authorID uint) error {
	var n int64
	if err := tx.Model(&entities.Author{}).Where("id = ?", authorID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: author %d does not exist", catalog.ErrValidation, authorID)
	}
	return nil
}

func requireBook(tx *gorm.DB, bookID uint) error {
	var n int64
	if err := tx.Model(&entities.Book{}).Where("id = ?", bookID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func replaceGenres(tx *gorm.DB, bookID uint, ids []uint) error {
	var genres []entities.Genre
	if err := loadAll(tx, &genres, "genre", ids); err != nil {
		return err
	}
	return replaceLinks(tx, bookID, "Genres", genres)
}

func replaceLanguages(tx *gorm.DB, bookID uint, ids []uint) error {
	var languages []entities.Language
	if err := loadAll(tx, &languages, "language", ids); err != nil {
		return err
	}
	return replaceLinks(tx, bookID, "Languages", languages)
}

// loadAll fetches the records with the given IDs, failing validation when
// any of them is missing.
func loadAll[T any](tx *gorm.DB, dest *[]T, name string, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("id IN ?", ids).Find(dest).Error; err != nil {
		return err
	}
	if len(*dest) != len(ids) {
		return fmt.Errorf("%w: unknown %s in %v", catalog.ErrValidation, name, ids)
	}
	return nil
}

// replaceLinks rewrites the join rows of one book. The linked records are
// never written.
func replaceLinks[T any](tx *gorm.DB, bookID uint, association string, linked []T) error {
	assoc := tx.Model(&entities.Book{ID: bookID}).Omit(association + ".*").Association(association)
	if len(linked) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(linked)
}

func genreID(g entities.Genre) uint       { return g.ID }
func languageID(l entities.Language) uint { return l.ID }

// entityIDs collects distinct, non-zero IDs.
func entityIDs[T any](items []T, id func(T) uint) []uint {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, id(item))
	}
	return uniqueIDs(ids)
}

func uniqueIDs(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != 0 && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
