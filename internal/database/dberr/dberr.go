// Package dberr maps gorm and driver errors onto the catalog error kinds.
package dberr

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/catalog"
)

// Driver messages for constraint failures that are not translated by the
// gorm dialector (sqlite and postgres wording).
var (
	uniqueMessages = []string{
		"UNIQUE constraint failed",
		"duplicate key value violates unique constraint",
	}
	foreignKeyMessages = []string{
		"FOREIGN KEY constraint failed",
		"violates foreign key constraint",
	}
)

var catalogErrors = []error{
	catalog.ErrUniquenessViolation,
	catalog.ErrReferentialIntegrityViolation,
	catalog.ErrStoreUnavailable,
	catalog.ErrNotFound,
	catalog.ErrValidation,
	catalog.ErrInvalidPredicate,
}

// Translate joins err with the matching catalog error kind. Errors that
// already carry a catalog kind and context cancellations pass through
// unchanged; anything unrecognised is treated as the store being
// unavailable.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range catalogErrors {
		if errors.Is(err, known) {
			return err
		}
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Join(catalog.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey), containsAny(err, uniqueMessages):
		return errors.Join(catalog.ErrUniquenessViolation, err)
	case containsAny(err, foreignKeyMessages):
		return errors.Join(catalog.ErrReferentialIntegrityViolation, err)
	default:
		return errors.Join(catalog.ErrStoreUnavailable, err)
	}
}

func containsAny(err error, needles []string) bool {
	msg := err.Error()
	for _, n := range needles {
		if strings.Contains(msg, n) {
			return true
		}
	}
	return false
}
