package genres

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
	db, err := database.NewDatabase(config.SQLiteDatabase(filepath.Join(t.TempDir(), "genres.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB), db.DB
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	genre := &entities.Genre{Name: "Fantasy"}
	require.NoError(t, repo.Create(ctx, genre))
	assert.NotZero(t, genre.ID)

	got, err := repo.Get(ctx, genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fantasy", got.Name)

	byName, err := repo.FindByName(ctx, "Fantasy")
	require.NoError(t, err)
	assert.Equal(t, genre.ID, byName.ID)
}

func TestRepository_CreateDuplicateName(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.Genre{Name: "Fantasy"}))
	err := repo.Create(ctx, &entities.Genre{Name: "Fantasy"})
	assert.ErrorIs(t, err, catalog.ErrUniquenessViolation)
}

func TestRepository_CreateValidation(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Create(ctx, &entities.Genre{Name: ""}), catalog.ErrValidation)
	assert.ErrorIs(t, repo.Create(ctx, &entities.Genre{Name: "A genre name far too long"}), catalog.ErrValidation)
}

func TestRepository_GetMissing(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.Get(context.Background(), 42)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRepository_ListOrderedByName(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"Poetry", "Fantasy", "Horror"} {
		require.NoError(t, repo.Create(ctx, &entities.Genre{Name: name}))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Fantasy", list[0].Name)
	assert.Equal(t, "Horror", list[1].Name)
	assert.Equal(t, "Poetry", list[2].Name)
}

func TestRepository_Update(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	genre := &entities.Genre{Name: "Scifi"}
	require.NoError(t, repo.Create(ctx, genre))

	genre.Name = "Science Fiction"
	require.NoError(t, repo.Update(ctx, genre))

	got, err := repo.Get(ctx, genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", got.Name)

	err = repo.Update(ctx, &entities.Genre{ID: 999, Name: "Ghost"})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRepository_DeleteUnlinksBooks(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	genre := &entities.Genre{Name: "Fantasy"}
	require.NoError(t, repo.Create(ctx, genre))

	author := &entities.Author{FirstName: "Ursula", LastName: "Le Guin"}
	require.NoError(t, db.Create(author).Error)
	book := &entities.Book{Title: "A Wizard of Earthsea", ISBN: "9780547773742", AuthorID: author.ID}
	require.NoError(t, db.Omit("Author", "Genres", "Languages").Create(book).Error)
	require.NoError(t, db.Model(book).Omit("Genres.*").Association("Genres").Append(genre))

	require.NoError(t, repo.Delete(ctx, genre.ID))

	var links int64
	require.NoError(t, db.Table("book_genres").Count(&links).Error)
	assert.Zero(t, links)

	var books int64
	require.NoError(t, db.Model(&entities.Book{}).Count(&books).Error)
	assert.Equal(t, int64(1), books)

	assert.ErrorIs(t, repo.Delete(ctx, genre.ID), catalog.ErrNotFound)
}
