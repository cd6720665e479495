// Package apperr defines the domain error taxonomy shared by services and the
// HTTP layer. Services wrap one of the sentinels with context using %w; callers
// classify with errors.Is.
package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidacion             = errors.New("datos invalidos")
	ErrNoEncontrado           = errors.New("no encontrado")
	ErrConflicto              = errors.New("conflicto de estado")
	ErrStockInsuficiente      = errors.New("stock insuficiente")
	ErrComprobanteInvalido    = errors.New("documento invalido para el comprobante")
	ErrCuotaPagada            = errors.New("la cuota ya esta pagada")
	ErrMontoExcedeSaldo       = errors.New("el monto excede el saldo pendiente")
	ErrSecuenciaNoConfigurada = errors.New("secuencia de comprobante no configurada")
	ErrIntegridad             = errors.New("error de integridad de datos")
)

func Validacion(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidacion, fmt.Sprintf(format, args...))
}

func NoEncontrado(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNoEncontrado, fmt.Sprintf(format, args...))
}

func Conflicto(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflicto, fmt.Sprintf(format, args...))
}

// FromDB translates a persistence error into the taxonomy. Errors already
// classified pass through unchanged; nil stays nil.
func FromDB(err error, entidad string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NoEncontrado("%s", entidad)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s duplicado", ErrConflicto, entidad)
	case Clasificado(err):
		return err
	default:
		return fmt.Errorf("%w: %s: %v", ErrIntegridad, entidad, err)
	}
}

// Clasificado reports whether err already wraps one of the sentinels.
func Clasificado(err error) bool {
	for _, s := range []error{
		ErrValidacion, ErrNoEncontrado, ErrConflicto, ErrStockInsuficiente,
		ErrComprobanteInvalido, ErrCuotaPagada, ErrMontoExcedeSaldo,
		ErrSecuenciaNoConfigurada, ErrIntegridad,
	} {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
