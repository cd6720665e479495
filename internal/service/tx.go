package service

import (
	"context"
	"time"

	"sneakerfever/internal/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// runSavepoint runs fn in a nested transaction (SAVEPOINT) of tx so that its
// failure rolls back only fn's writes.
func runSavepoint(tx *gorm.DB, fn func(sp *gorm.DB) error) error {
	if tx == nil {
		return fn(nil)
	}
	return tx.Transaction(fn)
}

func formatFecha(t time.Time) string { return t.Format("2006-01-02") }

func formatTimestamp(t time.Time) string { return t.Format(time.RFC3339) }

// parseFecha parses YYYY-MM-DD; empty input returns the zero time.
func parseFecha(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

// validarMonto accepts strictly positive amounts with at most 2 decimals.
func validarMonto(m decimal.Decimal, campo string) error {
	if !m.IsPositive() {
		return apperr.Validacion("%s debe ser mayor a cero", campo)
	}
	if !m.Equal(m.Round(2)) {
		return apperr.Validacion("%s admite como maximo 2 decimales", campo)
	}
	return nil
}
