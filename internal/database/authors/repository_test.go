package authors

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	db, err := database.NewDatabase(config.SQLiteDatabase(filepath.Join(t.TempDir(), "authors.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB), db.DB
}

func TestRepository_CreateWithDates(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	born, err := catalog.ParseDate("1929-10-21")
	require.NoError(t, err)
	died, err := catalog.ParseDate("2018-01-22")
	require.NoError(t, err)

	author := &entities.Author{FirstName: "Ursula", LastName: "Le Guin", DateOfBirth: born, DateOfDeath: died}
	require.NoError(t, repo.Create(ctx, author))
	assert.NotZero(t, author.ID)

	got, err := repo.Get(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Le Guin, Ursula", catalog.FormatAuthor(*got))
	assert.Equal(t, "1929-10-21", catalog.FormatDate(got.DateOfBirth))
	assert.Equal(t, "2018-01-22", catalog.FormatDate(got.DateOfDeath))
}

func TestRepository_CreateValidation(t *testing.T) {
	repo, _ := setupTestDB(t)

	err := repo.Create(context.Background(), &entities.Author{FirstName: "Homer"})
	assert.ErrorIs(t, err, catalog.ErrValidation)
}

func TestRepository_ListOrderedByName(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.Author{FirstName: "Terry", LastName: "Pratchett"}))
	require.NoError(t, repo.Create(ctx, &entities.Author{FirstName: "Neil", LastName: "Gaiman"}))
	require.NoError(t, repo.Create(ctx, &entities.Author{FirstName: "Anne", LastName: "Gaiman"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Gaiman, Anne", catalog.FormatAuthor(list[0]))
	assert.Equal(t, "Gaiman, Neil", catalog.FormatAuthor(list[1]))
	assert.Equal(t, "Pratchett, Terry", catalog.FormatAuthor(list[2]))
}

func TestRepository_UpdateClearsDates(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	born, err := catalog.ParseDate("1948-04-28")
	require.NoError(t, err)
	author := &entities.Author{FirstName: "Terry", LastName: "Pratchett", DateOfBirth: born}
	require.NoError(t, repo.Create(ctx, author))

	author.FirstName = "Terence"
	author.DateOfBirth = nil
	require.NoError(t, repo.Update(ctx, author))

	got, err := repo.Get(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Terence", got.FirstName)
	assert.Nil(t, got.DateOfBirth)

	err = repo.Update(ctx, &entities.Author{ID: 404, FirstName: "No", LastName: "One"})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRepository_DeleteRestrictedByBooks(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	author := &entities.Author{FirstName: "Terry", LastName: "Pratchett"}
	require.NoError(t, repo.Create(ctx, author))
	book := &entities.Book{Title: "Mort", ISBN: "9780552131063", AuthorID: author.ID}
	require.NoError(t, db.Omit("Author", "Genres", "Languages").Create(book).Error)

	err := repo.Delete(ctx, author.ID)
	assert.ErrorIs(t, err, catalog.ErrReferentialIntegrityViolation)

	_, err = repo.Get(ctx, author.ID)
	assert.NoError(t, err, "author must survive a rejected delete")

	require.NoError(t, db.Delete(&entities.Book{}, book.ID).Error)
	require.NoError(t, repo.Delete(ctx, author.ID))
	assert.ErrorIs(t, repo.Delete(ctx, author.ID), catalog.ErrNotFound)
}
