package dberr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/catalog"
)

func TestTranslate(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Translate(nil))
	})

	t.Run("record not found", func(t *testing.T) {
		err := Translate(gorm.ErrRecordNotFound)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("translated duplicate key", func(t *testing.T) {
		err := Translate(gorm.ErrDuplicatedKey)
		assert.ErrorIs(t, err, catalog.ErrUniquenessViolation)
	})

	t.Run("sqlite unique message", func(t *testing.T) {
		err := Translate(errors.New("UNIQUE constraint failed: books.isbn"))
		assert.ErrorIs(t, err, catalog.ErrUniquenessViolation)
	})

	t.Run("postgres foreign key message", func(t *testing.T) {
		err := Translate(errors.New(`ERROR: update or delete on table "authors" violates foreign key constraint "fk_books_author" (SQLSTATE 23503)`))
		assert.ErrorIs(t, err, catalog.ErrReferentialIntegrityViolation)
	})

	t.Run("catalog errors pass through", func(t *testing.T) {
		orig := fmt.Errorf("%w: title is required", catalog.ErrValidation)
		err := Translate(orig)
		assert.Equal(t, orig, err)
		assert.NotErrorIs(t, err, catalog.ErrStoreUnavailable)
	})

	t.Run("context cancellation passes through", func(t *testing.T) {
		err := Translate(context.Canceled)
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, catalog.ErrStoreUnavailable)
	})

	t.Run("anything else means the store is unavailable", func(t *testing.T) {
		err := Translate(errors.New("sql: database is closed"))
		assert.ErrorIs(t, err, catalog.ErrStoreUnavailable)
	})
}
