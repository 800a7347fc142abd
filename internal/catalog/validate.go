package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Field length limits.
const (
	MaxGenreNameLength    = 20
	MaxLanguageNameLength = 100
	MaxAuthorNameLength   = 100
	MaxTitleLength        = 200
	MaxSummaryLength      = 500
	MaxISBNLength         = 13
	MaxImprintLength      = 20
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func checkRequired(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return invalid("%s is required", field)
	}
	return checkLength(field, value, max)
}

func checkLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return invalid("%s must be at most %d characters", field, max)
	}
	return nil
}

func ValidateGenre(g *entities.Genre) error {
	return checkRequired("name", g.Name, MaxGenreNameLength)
}

func ValidateLanguage(l *entities.Language) error {
	return checkRequired("name", l.Name, MaxLanguageNameLength)
}

func ValidateAuthor(a *entities.Author) error {
	if err := checkRequired("first_name", a.FirstName, MaxAuthorNameLength); err != nil {
		return err
	}
	return checkRequired("last_name", a.LastName, MaxAuthorNameLength)
}

func ValidateBook(b *entities.Book) error {
	if err := checkRequired("title", b.Title, MaxTitleLength); err != nil {
		return err
	}
	if b.Summary != nil {
		if err := checkLength("summary", *b.Summary, MaxSummaryLength); err != nil {
			return err
		}
	}
	if err := checkRequired("isbn", b.ISBN, MaxISBNLength); err != nil {
		return err
	}
	if b.AuthorID == 0 {
		return invalid("author is required")
	}
	return nil
}

func ValidateBookInstance(bi *entities.BookInstance) error {
	if bi.BookID == 0 {
		return invalid("book is required")
	}
	if err := checkLength("imprint", bi.Imprint, MaxImprintLength); err != nil {
		return err
	}
	if bi.Status != "" && !bi.Status.IsValid() {
		return invalid("unknown status %q", bi.Status)
	}
	return nil
}
