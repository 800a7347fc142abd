// Package admin describes how the management API presents each catalog
// kind: list columns, filters, form layout and inline relations.
//
// The description is plain data built by DefaultSite and handed to the
// HTTP router; nothing registers itself at init time.
package admin

import (
	"fmt"
	"strconv"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Fieldset is a titled group of form fields. An empty title renders
// without a heading.
type Fieldset struct {
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

// Inline shows related records of another kind on a detail page.
type Inline struct {
	Kind      catalog.Kind `json:"kind"`
	Extra     int          `json:"extra"`
	CanDelete bool         `json:"can_delete"`
}

// Registration configures one kind in the management API.
type Registration struct {
	Kind        catalog.Kind `json:"kind"`
	Path        string       `json:"path"`
	ListDisplay []string     `json:"list_display"`
	ListFilter  []string     `json:"list_filter,omitempty"`
	// Fields lists form rows; fields sharing a row are shown side by side.
	Fields    [][]string `json:"fields,omitempty"`
	Fieldsets []Fieldset `json:"fieldsets,omitempty"`
	Inlines   []Inline   `json:"inlines,omitempty"`
}

// Site is the set of kinds exposed by the management API.
type Site struct {
	Registrations []Registration `json:"registrations"`
}

// DefaultSite returns the standard catalog administration layout.
func DefaultSite() *Site {
	return &Site{Registrations: []Registration{
		{
			Kind:        catalog.KindAuthor,
			Path:        "authors",
			ListDisplay: []string{"last_name", "first_name", "date_of_birth", "date_of_death"},
			Fields:      [][]string{{"first_name"}, {"last_name"}, {"date_of_birth", "date_of_death"}},
			Inlines:     []Inline{{Kind: catalog.KindBook, Extra: 0, CanDelete: false}},
		},
		{
			Kind:        catalog.KindBook,
			Path:        "books",
			ListDisplay: []string{"title", "author", "display_genre"},
			Inlines:     []Inline{{Kind: catalog.KindBookInstance, Extra: 0, CanDelete: true}},
		},
		{
			Kind:        catalog.KindBookInstance,
			Path:        "bookinstances",
			ListDisplay: []string{"book", "status", "due_back", "id"},
			ListFilter:  []string{"status", "due_back"},
			Fieldsets: []Fieldset{
				{Title: "", Fields: []string{"book", "imprint", "id"}},
				{Title: "Availability", Fields: []string{"status", "due_back"}},
			},
		},
		{Kind: catalog.KindGenre, Path: "genres", ListDisplay: []string{"name"}},
		{Kind: catalog.KindLanguage, Path: "languages", ListDisplay: []string{"name"}},
	}}
}

// Lookup returns the registration for kind.
func (s *Site) Lookup(kind catalog.Kind) (Registration, bool) {
	for _, r := range s.Registrations {
		if r.Kind == kind {
			return r, true
		}
	}
	return Registration{}, false
}

// Registered reports whether kind is part of the site.
func (s *Site) Registered(kind catalog.Kind) bool {
	_, ok := s.Lookup(kind)
	return ok
}

// Row renders the list_display columns of entity, which must be a value
// or pointer of the registration's entity type.
func Row(reg Registration, entity any) ([]string, error) {
	row := make([]string, 0, len(reg.ListDisplay))
	for _, column := range reg.ListDisplay {
		v, err := cell(reg.Kind, column, entity)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}
	return row, nil
}

func cell(kind catalog.Kind, column string, entity any) (string, error) {
	switch e := deref(entity).(type) {
	case entities.Genre:
		if column == "name" {
			return catalog.FormatGenre(e), nil
		}
		if column == "id" {
			return strconv.FormatUint(uint64(e.ID), 10), nil
		}
	case entities.Language:
		if column == "name" {
			return catalog.FormatLanguage(e), nil
		}
		if column == "id" {
			return strconv.FormatUint(uint64(e.ID), 10), nil
		}
	case entities.Author:
		switch column {
		case "id":
			return strconv.FormatUint(uint64(e.ID), 10), nil
		case "first_name":
			return e.FirstName, nil
		case "last_name":
			return e.LastName, nil
		case "date_of_birth":
			return catalog.FormatDate(e.DateOfBirth), nil
		case "date_of_death":
			return catalog.FormatDate(e.DateOfDeath), nil
		}
	case entities.Book:
		switch column {
		case "id":
			return strconv.FormatUint(uint64(e.ID), 10), nil
		case "title":
			return catalog.FormatBook(e), nil
		case "author":
			return catalog.FormatAuthor(e.Author), nil
		case "display_genre":
			return catalog.DisplayGenres(e), nil
		case "isbn":
			return e.ISBN, nil
		}
	case entities.BookInstance:
		switch column {
		case "id":
			return e.ID.String(), nil
		case "book":
			return catalog.FormatBook(e.Book), nil
		case "status":
			return e.Status.Label(), nil
		case "due_back":
			return catalog.FormatDate(e.DueBack), nil
		case "imprint":
			return e.Imprint, nil
		}
	default:
		return "", fmt.Errorf("admin: %T is not a catalog entity", entity)
	}
	return "", fmt.Errorf("admin: %s has no column %q", kind, column)
}

func deref(entity any) any {
	switch e := entity.(type) {
	case *entities.Genre:
		return *e
	case *entities.Language:
		return *e
	case *entities.Author:
		return *e
	case *entities.Book:
		return *e
	case *entities.BookInstance:
		return *e
	default:
		return entity
	}
}
