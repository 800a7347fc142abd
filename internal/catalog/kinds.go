package catalog

import (
	"fmt"
	"slices"
)

// Kind names one of the five catalog entity kinds.
type Kind string

const (
	KindGenre        Kind = "genre"
	KindLanguage     Kind = "language"
	KindAuthor       Kind = "author"
	KindBook         Kind = "book"
	KindBookInstance Kind = "bookinstance"
)

// Kinds lists all entity kinds.
var Kinds = []Kind{KindGenre, KindLanguage, KindAuthor, KindBook, KindBookInstance}

var kindAttributes = map[Kind][]string{
	KindGenre:        {"id", "name"},
	KindLanguage:     {"id", "name"},
	KindAuthor:       {"id", "first_name", "last_name", "date_of_birth", "date_of_death"},
	KindBook:         {"id", "title", "summary", "isbn", "author_id"},
	KindBookInstance: {"id", "book_id", "due_back", "imprint", "status"},
}

// Attributes returns the filterable column names of a kind, or nil if the
// kind is unknown.
func Attributes(kind Kind) []string {
	return kindAttributes[kind]
}

// PredicateOp is the comparison used by a Predicate.
type PredicateOp string

const (
	OpEquals   PredicateOp = "eq"
	// OpContains is a case-insensitive substring match.
	OpContains PredicateOp = "contains"
)

// Predicate filters records of a kind on one attribute.
type Predicate struct {
	Attribute string
	Op        PredicateOp
	Value     any
}

// Equals builds an equality predicate.
func Equals(attribute string, value any) Predicate {
	return Predicate{Attribute: attribute, Op: OpEquals, Value: value}
}

// Contains builds a substring predicate.
func Contains(attribute, substr string) Predicate {
	return Predicate{Attribute: attribute, Op: OpContains, Value: substr}
}

// Validate checks that the predicate references an existing attribute of
// kind and uses a supported operator.
func (p Predicate) Validate(kind Kind) error {
	attrs := Attributes(kind)
	if attrs == nil {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidPredicate, kind)
	}
	if !slices.Contains(attrs, p.Attribute) {
		return fmt.Errorf("%w: %s has no attribute %q", ErrInvalidPredicate, kind, p.Attribute)
	}
	switch p.Op {
	case OpEquals:
		return nil
	case OpContains:
		if _, ok := p.Value.(string); !ok {
			return fmt.Errorf("%w: contains on %q needs a string value", ErrInvalidPredicate, p.Attribute)
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported operator %q", ErrInvalidPredicate, p.Op)
	}
}
