package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDatabase(config.SQLiteDatabase(filepath.Join(t.TempDir(), "audit.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB)
}

func TestRepository_Record(t *testing.T) {
	repo := setupTestDB(t)

	entry := &entities.ChangeEntry{
		Action:     entities.ChangeAddition,
		Kind:       "genre",
		ObjectID:   "1",
		ObjectRepr: "Fantasy",
	}

	require.NoError(t, repo.Record(context.Background(), entry))
	assert.NotZero(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestRepository_List(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 15; i++ {
		require.NoError(t, repo.Record(ctx, &entities.ChangeEntry{
			Action:    entities.ChangeChange,
			Kind:      "book",
			ObjectID:  "7",
			CreatedAt: now.Add(time.Duration(-i) * time.Hour),
		}))
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Record(ctx, &entities.ChangeEntry{
			Action:   entities.ChangeDeletion,
			Kind:     "genre",
			ObjectID: "3",
		}))
	}

	t.Run("all entries", func(t *testing.T) {
		entries, total, err := repo.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, entries, 20)
	})

	t.Run("by kind and object", func(t *testing.T) {
		entries, total, err := repo.List(ctx, Filter{Kind: "book", ObjectID: "7"})
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, entries, 15)
	})

	t.Run("by action", func(t *testing.T) {
		_, total, err := repo.List(ctx, Filter{Action: entities.ChangeDeletion})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
	})

	t.Run("pagination", func(t *testing.T) {
		page1, total, err := repo.List(ctx, Filter{Kind: "book", Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, page1, 5)

		page2, _, err := repo.List(ctx, Filter{Kind: "book", Limit: 5, Offset: 5})
		require.NoError(t, err)
		assert.Len(t, page2, 5)
		assert.NotEqual(t, page1[0].ID, page2[0].ID)
	})

	t.Run("most recent first", func(t *testing.T) {
		entries, _, err := repo.List(ctx, Filter{Kind: "book"})
		require.NoError(t, err)
		for i := 1; i < len(entries); i++ {
			assert.False(t, entries[i-1].CreatedAt.Before(entries[i].CreatedAt))
		}
	})
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Record(ctx, &entities.ChangeEntry{
		Action: entities.ChangeAddition, Kind: "author", ObjectID: "1", CreatedAt: now.Add(-48 * time.Hour),
	}))
	require.NoError(t, repo.Record(ctx, &entities.ChangeEntry{
		Action: entities.ChangeDeletion, Kind: "author", ObjectID: "1", CreatedAt: now.Add(-1 * time.Hour),
	}))

	deleted, err := repo.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	entries, total, err := repo.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, entities.ChangeDeletion, entries[0].Action)
}
