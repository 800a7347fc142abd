package catalog

import "errors"

// Error kinds reported by the entity store. Callers match them with
// errors.Is and translate them into display messages; the store never
// retries on its own.
var (
	ErrUniquenessViolation           = errors.New("uniqueness violation")
	ErrReferentialIntegrityViolation = errors.New("referential integrity violation")
	ErrStoreUnavailable              = errors.New("store unavailable")
	ErrNotFound                      = errors.New("record not found")
	ErrValidation                    = errors.New("validation failed")
	ErrInvalidPredicate              = errors.New("invalid predicate")
)
