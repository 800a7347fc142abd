// Package counts answers aggregate count queries over the catalog.
//
// Queries are built with goqu for the dialect of the open connection and
// executed through gorm, so the same code serves sqlite and postgres.
//
// # Interface Implementation
//
//	var _ catalog.Counter = (*Repository)(nil)
package counts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/database/dberr"
	"github.com/mrlokans/locallibrary/internal/entities"
)

const (
	dialectSQLite   = "sqlite3"
	dialectPostgres = "postgres"
	likeEscape      = "!"
	containsLiteral = "LOWER(?) LIKE LOWER(?) ESCAPE '" + likeEscape + "'"

	// DATE() reads both the sqlite timestamp text and a postgres date
	dateEqualsLiteral = "DATE(?) = ?"
)

// dateColumns hold calendar dates; equality compares the day only.
var dateColumns = map[string]bool{
	"date_of_birth": true,
	"date_of_death": true,
	"due_back":      true,
}

var kindTables = map[catalog.Kind]string{
	catalog.KindGenre:        entities.Genre{}.TableName(),
	catalog.KindLanguage:     entities.Language{}.TableName(),
	catalog.KindAuthor:       entities.Author{}.TableName(),
	catalog.KindBook:         entities.Book{}.TableName(),
	catalog.KindBookInstance: entities.BookInstance{}.TableName(),
}

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// Repository counts catalog records.
type Repository struct {
	db      *gorm.DB
	dialect string
}

// NewRepository creates a counter for db, picking the SQL dialect from the
// gorm dialector.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, dialect: DialectFor(db.Dialector.Name())}
}

// DialectFor maps a gorm dialector name onto a goqu dialect.
func DialectFor(gormName string) string {
	if gormName == dialectPostgres {
		return dialectPostgres
	}
	return dialectSQLite
}

// CountAll returns the number of stored records of kind.
func (r *Repository) CountAll(ctx context.Context, kind catalog.Kind) (int64, error) {
	query, err := BuildCountQuery(r.dialect, kind, nil)
	if err != nil {
		return 0, err
	}
	return r.count(ctx, query)
}

// CountWhere returns the number of stored records of kind matching p.
// Contains predicates match case-insensitively and treat % and _ in the
// value literally.
func (r *Repository) CountWhere(ctx context.Context, kind catalog.Kind, p catalog.Predicate) (int64, error) {
	if err := p.Validate(kind); err != nil {
		return 0, err
	}
	query, err := BuildCountQuery(r.dialect, kind, &p)
	if err != nil {
		return 0, err
	}
	return r.count(ctx, query)
}

func (r *Repository) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Raw(query).Scan(&n).Error; err != nil {
		return 0, dberr.Translate(err)
	}
	return n, nil
}

// BuildCountQuery renders the count statement for kind, optionally
// filtered by p, with values interpolated for dialect.
func BuildCountQuery(dialect string, kind catalog.Kind, p *catalog.Predicate) (string, error) {
	table, ok := kindTables[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown kind %q", catalog.ErrInvalidPredicate, kind)
	}

	stmt := goqu.Dialect(dialect).
		From(table).
		Select(goqu.COUNT(goqu.Star()))

	if p != nil {
		cond, err := condition(*p)
		if err != nil {
			return "", err
		}
		stmt = stmt.Where(cond)
	}

	query, _, err := stmt.ToSQL()
	if err != nil {
		return "", errors.Join(catalog.ErrInvalidPredicate, err)
	}
	return query, nil
}

func condition(p catalog.Predicate) (exp.Expression, error) {
	switch p.Op {
	case catalog.OpEquals:
		if dateColumns[p.Attribute] {
			return dateCondition(p)
		}
		return goqu.C(p.Attribute).Eq(normalize(p.Value)), nil
	case catalog.OpContains:
		substr, _ := p.Value.(string)
		pattern := "%" + likeReplacer.Replace(substr) + "%"
		return goqu.L(containsLiteral, goqu.C(p.Attribute), pattern), nil
	default:
		return nil, fmt.Errorf("%w: unsupported operator %q", catalog.ErrInvalidPredicate, p.Op)
	}
}

func dateCondition(p catalog.Predicate) (exp.Expression, error) {
	var day *time.Time
	switch val := p.Value.(type) {
	case nil:
	case time.Time:
		day = &val
	case *time.Time:
		day = val
	case string:
		parsed, err := catalog.ParseDate(val)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", catalog.ErrInvalidPredicate, err)
		}
		day = parsed
	default:
		return nil, fmt.Errorf("%w: %q needs a date value, got %T", catalog.ErrInvalidPredicate, p.Attribute, p.Value)
	}

	if day == nil {
		return goqu.C(p.Attribute).IsNull(), nil
	}
	return goqu.L(dateEqualsLiteral, goqu.C(p.Attribute), catalog.FormatDate(day)), nil
}

// normalize turns catalog value types into plain SQL literals.
func normalize(v any) any {
	switch val := v.(type) {
	case entities.LoanStatus:
		return string(val)
	case uuid.UUID:
		return val.String()
	default:
		return v
	}
}
