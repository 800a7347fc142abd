package catalog

import (
	"strings"
	"time"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// DateLayout is the wire and display layout for calendar dates.
const DateLayout = "2006-01-02"

// displayGenreLimit caps the genres shown in list views.
const displayGenreLimit = 3

func FormatGenre(g entities.Genre) string {
	return g.Name
}

func FormatLanguage(l entities.Language) string {
	return l.Name
}

// FormatAuthor renders "Last, First".
func FormatAuthor(a entities.Author) string {
	return a.LastName + ", " + a.FirstName
}

func FormatBook(b entities.Book) string {
	return b.Title
}

// FormatBookInstance renders the identifier followed by the book title in
// parentheses. The book must be loaded.
func FormatBookInstance(bi entities.BookInstance) string {
	return bi.ID.String() + " (" + bi.Book.Title + ")"
}

// DisplayGenres joins the names of the first three genres of a book.
func DisplayGenres(b entities.Book) string {
	genres := b.Genres
	if len(genres) > displayGenreLimit {
		genres = genres[:displayGenreLimit]
	}
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

// FormatDate renders an optional date, empty when nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate parses an optional date; the empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, invalid("invalid date %q, expected YYYY-MM-DD", s)
	}
	return &t, nil
}

// ParseLoanStatus accepts a status code ("a") or its label ("Available"),
// ignoring case. The empty string yields the default status.
func ParseLoanStatus(s string) (entities.LoanStatus, error) {
	if s == "" {
		return entities.LoanStatusMaintenance, nil
	}
	for _, status := range entities.LoanStatuses {
		if strings.EqualFold(s, string(status)) || strings.EqualFold(s, status.Label()) {
			return status, nil
		}
	}
	return "", invalid("unknown status %q", s)
}
