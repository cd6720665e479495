package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds SELECT ... FOR UPDATE to the next query. Callers must be
// inside a transaction for the lock to outlive the statement.
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// paginate clamps page/limit the same way for every list endpoint.
func paginate(page, limit, defLimit, maxLimit int) (offset, lim int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxLimit {
		limit = defLimit
	}
	return (page - 1) * limit, limit
}

// RangoFechas is a half-open [Desde, Hasta) interval; zero values mean unbounded.
type RangoFechas struct {
	Desde time.Time
	Hasta time.Time
}

func (r RangoFechas) apply(q *gorm.DB, column string) *gorm.DB {
	if !r.Desde.IsZero() {
		q = q.Where(column+" >= ?", r.Desde)
	}
	if !r.Hasta.IsZero() {
		q = q.Where(column+" < ?", r.Hasta)
	}
	return q
}
