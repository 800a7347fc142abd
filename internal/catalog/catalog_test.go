package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/entities"
)

func TestPredicate_Validate(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		p     Predicate
		valid bool
	}{
		{"equals on status", KindBookInstance, Equals("status", "a"), true},
		{"contains on title", KindBook, Contains("title", "dahlia"), true},
		{"unknown attribute", KindBook, Equals("colour", "red"), false},
		{"attribute of another kind", KindGenre, Equals("title", "x"), false},
		{"unknown kind", Kind("shelf"), Equals("id", 1), false},
		{"unsupported op", KindBook, Predicate{Attribute: "title", Op: "regex", Value: "x"}, false},
		{"contains needs string", KindBook, Predicate{Attribute: "title", Op: OpContains, Value: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate(tt.kind)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidPredicate)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	long := func(n int) string { return strings.Repeat("x", n) }
	summary := long(MaxSummaryLength + 1)

	assert.NoError(t, ValidateGenre(&entities.Genre{Name: long(MaxGenreNameLength)}))
	assert.ErrorIs(t, ValidateGenre(&entities.Genre{Name: long(MaxGenreNameLength + 1)}), ErrValidation)
	assert.ErrorIs(t, ValidateGenre(&entities.Genre{Name: "   "}), ErrValidation)

	assert.ErrorIs(t, ValidateLanguage(&entities.Language{}), ErrValidation)

	assert.ErrorIs(t, ValidateAuthor(&entities.Author{FirstName: "Homer"}), ErrValidation)
	assert.NoError(t, ValidateAuthor(&entities.Author{FirstName: "Homer", LastName: "Unknown"}))

	book := entities.Book{Title: "Odyssey", ISBN: "9780140268867", AuthorID: 1}
	assert.NoError(t, ValidateBook(&book))

	noAuthor := book
	noAuthor.AuthorID = 0
	assert.ErrorIs(t, ValidateBook(&noAuthor), ErrValidation)

	longSummary := book
	longSummary.Summary = &summary
	assert.ErrorIs(t, ValidateBook(&longSummary), ErrValidation)

	assert.NoError(t, ValidateBookInstance(&entities.BookInstance{BookID: 1}))
	assert.ErrorIs(t, ValidateBookInstance(&entities.BookInstance{}), ErrValidation)
	assert.ErrorIs(t, ValidateBookInstance(&entities.BookInstance{BookID: 1, Status: "q"}), ErrValidation)
}

func TestFormat(t *testing.T) {
	author := entities.Author{FirstName: "Ursula", LastName: "Le Guin"}
	assert.Equal(t, "Le Guin, Ursula", FormatAuthor(author))
	assert.Equal(t, "Fantasy", FormatGenre(entities.Genre{Name: "Fantasy"}))
	assert.Equal(t, "English", FormatLanguage(entities.Language{Name: "English"}))
	assert.Equal(t, "The Dispossessed", FormatBook(entities.Book{Title: "The Dispossessed"}))

	id := uuid.MustParse("7d2f0a4e-9c1b-4f3a-8e2d-5b6c7d8e9f01")
	instance := entities.BookInstance{ID: id, Book: entities.Book{Title: "The Dispossessed"}}
	assert.Equal(t, "7d2f0a4e-9c1b-4f3a-8e2d-5b6c7d8e9f01 (The Dispossessed)", FormatBookInstance(instance))
}

func TestDisplayGenres(t *testing.T) {
	book := entities.Book{Genres: []entities.Genre{
		{Name: "Fantasy"}, {Name: "Horror"}, {Name: "Poetry"}, {Name: "Satire"},
	}}
	assert.Equal(t, "Fantasy, Horror, Poetry", DisplayGenres(book))
	assert.Equal(t, "", DisplayGenres(entities.Book{}))
}

func TestDates(t *testing.T) {
	d, err := ParseDate("2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", FormatDate(d))

	none, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, none)
	assert.Equal(t, "", FormatDate(nil))

	_, err = ParseDate("19/10/2026")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseLoanStatus(t *testing.T) {
	tests := map[string]entities.LoanStatus{
		"":          entities.LoanStatusMaintenance,
		"a":         entities.LoanStatusAvailable,
		"Available": entities.LoanStatusAvailable,
		"on loan":   entities.LoanStatusOnLoan,
		"R":         entities.LoanStatusReserved,
	}
	for input, want := range tests {
		got, err := ParseLoanStatus(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLoanStatus("lost")
	assert.ErrorIs(t, err, ErrValidation)
}
