package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/entities"
)

type createdID struct {
	ID uint `json:"id"`
}

func (s *testServer) create(t *testing.T, path string, body any) uint {
	t.Helper()
	w := s.do(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[createdID](t, w).ID
}

func TestAdmin_Site(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/admin/api/site", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bookinstances"`)
	assert.Contains(t, w.Body.String(), `"list_display"`)
}

func TestAdmin_GenreCRUD(t *testing.T) {
	s := newTestServer(t)

	id := s.create(t, "/admin/api/genres", map[string]string{"name": "Fantasy"})
	assert.NotZero(t, id)

	w := s.do(t, http.MethodGet, fmt.Sprintf("/admin/api/genres/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Fantasy", decode[entities.Genre](t, w).Name)

	w = s.do(t, http.MethodPut, fmt.Sprintf("/admin/api/genres/%d", id), map[string]string{"name": "Science Fiction"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Science Fiction", decode[entities.Genre](t, w).Name)

	w = s.do(t, http.MethodGet, "/admin/api/genres", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[ListResponse](t, w)
	require.Len(t, list.Items, 1)
	assert.Equal(t, []string{"Science Fiction"}, list.Items[0].Row)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/admin/api/genres/%d", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/admin/api/genres/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, codeNotFound, decode[ErrorResponse](t, w).Code)
}

func TestAdmin_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		path string
		body any
	}{
		{"missing genre name", "/admin/api/genres", map[string]string{}},
		{"blank genre name", "/admin/api/genres", map[string]string{"name": "   "}},
		{"bad birth date", "/admin/api/authors", map[string]string{
			"first_name": "Mary", "last_name": "Shelley", "date_of_birth": "30/08/1797",
		}},
		{"unknown author", "/admin/api/books", map[string]any{
			"title": "Frankenstein", "isbn": "9780486282114", "author_id": 99,
		}},
		{"bad status", "/admin/api/bookinstances", map[string]any{"book_id": 1, "status": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestAdmin_InvalidID(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/admin/api/authors/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/admin/api/bookinstances/42", nil).Code)
}

func seedBook(t *testing.T, s *testServer) (authorID, bookID uint) {
	t.Helper()
	genreID := s.create(t, "/admin/api/genres", map[string]string{"name": "Gothic"})
	languageID := s.create(t, "/admin/api/languages", map[string]string{"name": "English"})
	authorID = s.create(t, "/admin/api/authors", map[string]string{
		"first_name": "Mary", "last_name": "Shelley", "date_of_birth": "1797-08-30", "date_of_death": "1851-02-01",
	})
	bookID = s.create(t, "/admin/api/books", map[string]any{
		"title":        "Frankenstein",
		"summary":      "A scientist creates life.",
		"isbn":         "9780486282114",
		"author_id":    authorID,
		"genre_ids":    []uint{genreID},
		"language_ids": []uint{languageID},
	})
	return authorID, bookID
}

func TestAdmin_BookLifecycle(t *testing.T) {
	s := newTestServer(t)
	authorID, bookID := seedBook(t, s)

	w := s.do(t, http.MethodGet, "/admin/api/books", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[ListResponse](t, w)
	require.Len(t, list.Items, 1)
	assert.Equal(t, []string{"Frankenstein", "Shelley, Mary", "Gothic"}, list.Items[0].Row)

	// Duplicate ISBN.
	w = s.do(t, http.MethodPost, "/admin/api/books", map[string]any{
		"title": "Frankenstein (copy)", "isbn": "9780486282114", "author_id": authorID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, codeUniqueness, decode[ErrorResponse](t, w).Code)

	// Author with books cannot be deleted.
	w = s.do(t, http.MethodDelete, fmt.Sprintf("/admin/api/authors/%d", authorID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, codeReferential, decode[ErrorResponse](t, w).Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/admin/api/authors/%d", authorID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[AuthorDetail](t, w)
	require.Len(t, detail.Books, 1)
	assert.Equal(t, bookID, detail.Books[0].ID)

	// Omitted genre_ids keep the links.
	w = s.do(t, http.MethodPut, fmt.Sprintf("/admin/api/books/%d", bookID), map[string]any{
		"title": "Frankenstein; or, The Modern Prometheus", "isbn": "9780486282114", "author_id": authorID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	book := decode[entities.Book](t, w)
	assert.Equal(t, "Frankenstein; or, The Modern Prometheus", book.Title)
	assert.Len(t, book.Genres, 1)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/admin/api/books/%d", bookID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/admin/api/authors/%d", authorID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdmin_Instances(t *testing.T) {
	s := newTestServer(t)
	_, bookID := seedBook(t, s)

	create := func(body map[string]any) entities.BookInstance {
		body["book_id"] = bookID
		w := s.do(t, http.MethodPost, "/admin/api/bookinstances", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return decode[entities.BookInstance](t, w)
	}

	maint := create(map[string]any{"imprint": "Dover, 1994"})
	assert.Equal(t, entities.LoanStatusMaintenance, maint.Status)
	create(map[string]any{"imprint": "Penguin, 2003", "status": "o", "due_back": "2026-11-01"})
	create(map[string]any{"imprint": "Penguin, 2003", "status": "Available"})

	list := func(query string) ListResponse {
		w := s.do(t, http.MethodGet, "/admin/api/bookinstances"+query, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode[ListResponse](t, w)
	}

	assert.Len(t, list("").Items, 3)
	assert.Len(t, list("?status=a").Items, 1)
	assert.Len(t, list("?status=o&due_from=2026-10-01&due_to=2026-11-30").Items, 1)
	assert.Empty(t, list("?due_to=2026-01-01").Items)
	assert.Len(t, list(fmt.Sprintf("?book_id=%d", bookID)).Items, 3)

	w := s.do(t, http.MethodGet, "/admin/api/bookinstances?status=z", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/admin/api/bookinstances/"+maint.ID.String(), map[string]any{
		"book_id": bookID, "imprint": "Dover, 1994", "status": "r", "due_back": "2026-12-24",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, entities.LoanStatusReserved, decode[entities.BookInstance](t, w).Status)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/admin/api/books/%d", bookID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[BookDetail](t, w).Instances, 3)

	// Books with copies cannot be deleted.
	w = s.do(t, http.MethodDelete, fmt.Sprintf("/admin/api/books/%d", bookID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodDelete, "/admin/api/bookinstances/"+maint.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/admin/api/bookinstances/"+maint.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	summary := s.do(t, http.MethodGet, "/api/summary", nil)
	require.Equal(t, http.StatusOK, summary.Code)
	body := decode[map[string]any](t, summary)
	assert.EqualValues(t, 2, body["instance_count"])
	assert.EqualValues(t, 1, body["available_instance_count"])
}
