package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope narrows a query.
type Scope = func(*gorm.DB) *gorm.DB

// Range is an inclusive time window. A nil bound leaves that side open.
type Range struct {
	From *time.Time
	To   *time.Time
}

func (r Range) on(column string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if r.From != nil {
			db = db.Where(column+" >= ?", r.From.UTC())
		}
		if r.To != nil {
			db = db.Where(column+" <= ?", r.To.UTC())
		}
		return db
	}
}

// eq filters column = *v when v is set.
func eq[T any](column string, v *T) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if v == nil {
			return db
		}
		return db.Where(column+" = ?", *v)
	}
}

// matching is a case-insensitive substring search over columns.
func matching(q string, columns ...string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		op := "LIKE"
		if db.Dialector.Name() == "postgres" {
			op = "ILIKE"
		}
		pattern := "%" + escapeLike(strings.TrimSpace(q)) + "%"

		parts := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, c := range columns {
			parts[i] = c + " " + op + ` ? ESCAPE '\'`
			args[i] = pattern
		}
		return db.Where("("+strings.Join(parts, " OR ")+")", args...)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func find[T any](ctx context.Context, db *gorm.DB, op, order string, scopes ...Scope) ([]T, error) {
	rows := make([]T, 0)
	q := db.WithContext(ctx).Scopes(scopes...)
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, apperr.Store(op, err)
	}
	return rows, nil
}

// first returns nil, nil when no live row matches.
func first[T any](ctx context.Context, db *gorm.DB, op string, scopes ...Scope) (*T, error) {
	var row T
	err := db.WithContext(ctx).Scopes(scopes...).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Store(op, err)
	}
	return &row, nil
}

func byID(id uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("id = ?", id) }
}

// mustGet is first by id, reporting a missing row as a NotFoundError.
func mustGet[T any](ctx context.Context, db *gorm.DB, op, entity string, id uuid.UUID) (*T, error) {
	row, err := first[T](ctx, db, op, byID(id))
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperr.NotFound(entity, id)
	}
	return row, nil
}

func create(ctx context.Context, db *gorm.DB, op string, row interface{}) error {
	return apperr.Store(op, db.WithContext(ctx).Create(row).Error)
}

func save(ctx context.Context, db *gorm.DB, op string, row interface{}) error {
	return apperr.Store(op, db.WithContext(ctx).Save(row).Error)
}

// softDelete stamps deleted_at. Deleting a missing or already deleted row
// is not an error.
func softDelete[T any](ctx context.Context, db *gorm.DB, op string, id uuid.UUID) error {
	return apperr.Store(op, db.WithContext(ctx).Delete(new(T), "id = ?", id).Error)
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return apperr.Invalid(field, "is required")
	}
	return nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// setOpt copies src into a nullable column.
func setOpt[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func requiredID(field string, id uuid.UUID) error {
	if id == uuid.Nil {
		return apperr.Invalid(field, "is required")
	}
	return nil
}
