package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	jsoniter "github.com/json-iterator/go"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/entities"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CatalogImport is the fixture document accepted by the importer.
// Books reference authors by key, and genres and languages by name.
// Instances reference books by ISBN.
type CatalogImport struct {
	Genres    []string        `json:"genres"`
	Languages []string        `json:"languages"`
	Authors   []AuthorInput   `json:"authors"`
	Books     []BookInput     `json:"books"`
	Instances []InstanceInput `json:"instances"`
}

type AuthorInput struct {
	Key         string `json:"key"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	DateOfDeath string `json:"date_of_death,omitempty"`
}

type BookInput struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary,omitempty"`
	ISBN      string   `json:"isbn"`
	Author    string   `json:"author"`
	Genres    []string `json:"genres,omitempty"`
	Languages []string `json:"languages,omitempty"`
}

type InstanceInput struct {
	ISBN    string `json:"isbn"`
	Imprint string `json:"imprint,omitempty"`
	Status  string `json:"status,omitempty"`
	DueBack string `json:"due_back,omitempty"`
}

// DecodeCatalogImport reads a fixture document. Unknown fields are rejected.
func DecodeCatalogImport(r io.Reader) (*CatalogImport, error) {
	var doc CatalogImport
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode catalog: %v", catalog.ErrValidation, err)
	}
	return &doc, nil
}

// ImportService loads catalog fixtures into the store.
type ImportService struct {
	stores CatalogStores
}

// NewImportService creates a new ImportService.
func NewImportService(stores CatalogStores) *ImportService {
	return &ImportService{stores: stores}
}

// Import inserts the document in dependency order: genres, languages,
// authors, books, instances. Genres, languages and books that are not part
// of the document are looked up in the store. The first failure stops the
// import; records created before it are kept.
func (s *ImportService) Import(ctx context.Context, doc *CatalogImport) (ImportResult, error) {
	var result ImportResult
	genreIDs := make(map[string]uint)
	languageIDs := make(map[string]uint)
	authorIDs := make(map[string]uint)
	bookIDs := make(map[string]uint)

	for _, name := range doc.Genres {
		g := &entities.Genre{Name: name}
		if err := s.stores.Genres.Create(ctx, g); err != nil {
			return result, fmt.Errorf("import genre %q: %w", name, err)
		}
		genreIDs[name] = g.ID
		result.Genres++
	}

	for _, name := range doc.Languages {
		l := &entities.Language{Name: name}
		if err := s.stores.Languages.Create(ctx, l); err != nil {
			return result, fmt.Errorf("import language %q: %w", name, err)
		}
		languageIDs[name] = l.ID
		result.Languages++
	}

	for _, in := range doc.Authors {
		a, err := authorFromInput(in)
		if err != nil {
			return result, fmt.Errorf("import author %q: %w", in.Key, err)
		}
		if _, dup := authorIDs[in.Key]; dup || in.Key == "" {
			return result, fmt.Errorf("import author %q: %w: key must be unique and non-empty", in.Key, catalog.ErrValidation)
		}
		if err := s.stores.Authors.Create(ctx, a); err != nil {
			return result, fmt.Errorf("import author %q: %w", in.Key, err)
		}
		authorIDs[in.Key] = a.ID
		result.Authors++
	}

	for _, in := range doc.Books {
		b, err := s.bookFromInput(ctx, in, authorIDs, genreIDs, languageIDs)
		if err != nil {
			return result, fmt.Errorf("import book %q: %w", in.Title, err)
		}
		if err := s.stores.Books.Create(ctx, b); err != nil {
			return result, fmt.Errorf("import book %q: %w", in.Title, err)
		}
		bookIDs[b.ISBN] = b.ID
		result.Books++
	}

	for _, in := range doc.Instances {
		bi, err := s.instanceFromInput(ctx, in, bookIDs)
		if err != nil {
			return result, fmt.Errorf("import instance of %s: %w", in.ISBN, err)
		}
		if err := s.stores.Instances.Create(ctx, bi); err != nil {
			return result, fmt.Errorf("import instance of %s: %w", in.ISBN, err)
		}
		result.Instances++
	}

	log.Printf("Imported catalog: %d genres, %d languages, %d authors, %d books, %d instances",
		result.Genres, result.Languages, result.Authors, result.Books, result.Instances)
	return result, nil
}

func authorFromInput(in AuthorInput) (*entities.Author, error) {
	born, err := catalog.ParseDate(in.DateOfBirth)
	if err != nil {
		return nil, err
	}
	died, err := catalog.ParseDate(in.DateOfDeath)
	if err != nil {
		return nil, err
	}
	return &entities.Author{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: born,
		DateOfDeath: died,
	}, nil
}

func (s *ImportService) bookFromInput(
	ctx context.Context,
	in BookInput,
	authorIDs, genreIDs, languageIDs map[string]uint,
) (*entities.Book, error) {
	authorID, ok := authorIDs[in.Author]
	if !ok {
		return nil, fmt.Errorf("%w: unknown author key %q", catalog.ErrValidation, in.Author)
	}

	b := &entities.Book{Title: in.Title, ISBN: in.ISBN, AuthorID: authorID}
	if in.Summary != "" {
		summary := in.Summary
		b.Summary = &summary
	}

	for _, name := range in.Genres {
		id, err := resolve(ctx, genreIDs, name, func(ctx context.Context, name string) (uint, error) {
			g, err := s.stores.Genres.FindByName(ctx, name)
			if err != nil {
				return 0, err
			}
			return g.ID, nil
		})
		if err != nil {
			return nil, fmt.Errorf("genre %q: %w", name, err)
		}
		b.Genres = append(b.Genres, entities.Genre{ID: id, Name: name})
	}

	for _, name := range in.Languages {
		id, err := resolve(ctx, languageIDs, name, func(ctx context.Context, name string) (uint, error) {
			l, err := s.stores.Languages.FindByName(ctx, name)
			if err != nil {
				return 0, err
			}
			return l.ID, nil
		})
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", name, err)
		}
		b.Languages = append(b.Languages, entities.Language{ID: id, Name: name})
	}

	return b, nil
}

func (s *ImportService) instanceFromInput(ctx context.Context, in InstanceInput, bookIDs map[string]uint) (*entities.BookInstance, error) {
	bookID, err := resolve(ctx, bookIDs, in.ISBN, func(ctx context.Context, isbn string) (uint, error) {
		b, err := s.stores.Books.FindByISBN(ctx, isbn)
		if err != nil {
			return 0, err
		}
		return b.ID, nil
	})
	if err != nil {
		return nil, err
	}
	status, err := catalog.ParseLoanStatus(in.Status)
	if err != nil {
		return nil, err
	}
	due, err := catalog.ParseDate(in.DueBack)
	if err != nil {
		return nil, err
	}
	return &entities.BookInstance{BookID: bookID, Imprint: in.Imprint, Status: status, DueBack: due}, nil
}

// resolve finds a reference among the records imported so far, falling
// back to the store. Missing references are validation errors.
func resolve(ctx context.Context, known map[string]uint, key string, lookup func(context.Context, string) (uint, error)) (uint, error) {
	if id, ok := known[key]; ok {
		return id, nil
	}
	id, err := lookup(ctx, key)
	if errors.Is(err, catalog.ErrNotFound) {
		return 0, fmt.Errorf("%w: %q does not exist", catalog.ErrValidation, key)
	}
	if err != nil {
		return 0, err
	}
	known[key] = id
	return id, nil
}
