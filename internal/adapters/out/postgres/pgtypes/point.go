// Package pgtypes holds column types shared by the PostgreSQL repositories.
package pgtypes

import (
	"database/sql/driver"
	"errors"

	"station/internal/core/domain/model/kernel"
	"station/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// UniqueViolation is the SQLSTATE of a unique constraint violation.
const UniqueViolation = "23505"

// Point maps a PostgreSQL point column onto an optional kernel.Coordinate.
//
// Values are written as the "(lng,lat)" literal. On read, any value that does not parse
// as a valid coordinate loads as absent instead of failing the whole row.
type Point struct {
	Coordinate kernel.Coordinate
	Valid      bool
}

// NewPoint wraps c, treating nil as SQL NULL.
func NewPoint(c *kernel.Coordinate) Point {
	if c == nil {
		return Point{}
	}
	return Point{Coordinate: *c, Valid: true}
}

// Ptr returns the coordinate, or nil when the column is NULL or malformed.
func (p Point) Ptr() *kernel.Coordinate {
	if !p.Valid {
		return nil
	}
	c := p.Coordinate
	return &c
}

// GormDataType tells gorm migrations to create a point column.
func (Point) GormDataType() string {
	return "point"
}

// Value implements driver.Valuer.
func (p Point) Value() (driver.Value, error) {
	if !p.Valid {
		return nil, nil //nolint:nilnil // NULL
	}
	return kernel.FormatCoordinate(p.Coordinate), nil
}

// Scan implements sql.Scanner.
func (p *Point) Scan(src any) error {
	if src == nil {
		*p = Point{}
		return nil
	}

	c, ok := kernel.ParseCoordinate(src)
	*p = Point{Coordinate: c, Valid: ok}
	return nil
}

// IsUniqueViolation reports whether err is a duplicate key error, either translated by
// gorm or raised by lib/pq.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == UniqueViolation
}

// NotFoundOr maps gorm.ErrRecordNotFound to an ObjectNotFoundError and wraps every other
// database failure in a PersistenceError.
func NotFoundOr(operation, entity string, id kernel.UUID, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundErrorWithCause(entity, id.String(), err)
	}
	return errs.NewPersistenceError(operation, err)
}
