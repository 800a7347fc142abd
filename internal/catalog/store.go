package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// GenreStore persists genres. Names are unique.
type GenreStore interface {
	Create(ctx context.Context, g *entities.Genre) error
	Get(ctx context.Context, id uint) (*entities.Genre, error)
	FindByName(ctx context.Context, name string) (*entities.Genre, error)
	List(ctx context.Context) ([]entities.Genre, error)
	Update(ctx context.Context, g *entities.Genre) error
	Delete(ctx context.Context, id uint) error
}

// LanguageStore persists languages. Names are unique.
type LanguageStore interface {
	Create(ctx context.Context, l *entities.Language) error
	Get(ctx context.Context, id uint) (*entities.Language, error)
	FindByName(ctx context.Context, name string) (*entities.Language, error)
	List(ctx context.Context) ([]entities.Language, error)
	Update(ctx context.Context, l *entities.Language) error
	Delete(ctx context.Context, id uint) error
}

// AuthorStore persists authors. Delete is rejected while books reference
// the author.
type AuthorStore interface {
	Create(ctx context.Context, a *entities.Author) error
	Get(ctx context.Context, id uint) (*entities.Author, error)
	List(ctx context.Context) ([]entities.Author, error)
	Update(ctx context.Context, a *entities.Author) error
	Delete(ctx context.Context, id uint) error
}

// BookStore persists books and their genre/language links. ISBNs are
// unique and Delete is rejected while instances reference the book.
type BookStore interface {
	Create(ctx context.Context, b *entities.Book) error
	Get(ctx context.Context, id uint) (*entities.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*entities.Book, error)
	List(ctx context.Context) ([]entities.Book, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error)
	Update(ctx context.Context, b *entities.Book) error
	SetGenres(ctx context.Context, bookID uint, genreIDs []uint) error
	SetLanguages(ctx context.Context, bookID uint, languageIDs []uint) error
	Delete(ctx context.Context, id uint) error
}

// InstanceFilter narrows instance listings. Zero fields are ignored.
type InstanceFilter struct {
	Status  entities.LoanStatus
	BookID  uint
	DueFrom *time.Time
	DueTo   *time.Time
}

// BookInstanceStore persists physical copies.
type BookInstanceStore interface {
	Create(ctx context.Context, bi *entities.BookInstance) error
	Get(ctx context.Context, id uuid.UUID) (*entities.BookInstance, error)
	List(ctx context.Context, filter InstanceFilter) ([]entities.BookInstance, error)
	ListByBook(ctx context.Context, bookID uint) ([]entities.BookInstance, error)
	Update(ctx context.Context, bi *entities.BookInstance) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Counter is the aggregate read surface of the store.
type Counter interface {
	CountAll(ctx context.Context, kind Kind) (int64, error)
	CountWhere(ctx context.Context, kind Kind, p Predicate) (int64, error)
}
