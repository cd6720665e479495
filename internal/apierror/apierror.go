// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"

	"sneakerfever/internal/apperr"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

var mapping = []struct {
	err    error
	status int
	code   string
}{
	{apperr.ErrValidacion, http.StatusBadRequest, "VALIDACION"},
	{apperr.ErrNoEncontrado, http.StatusNotFound, "NO_ENCONTRADO"},
	{apperr.ErrConflicto, http.StatusConflict, "CONFLICTO"},
	{apperr.ErrStockInsuficiente, http.StatusConflict, "STOCK_INSUFICIENTE"},
	{apperr.ErrComprobanteInvalido, http.StatusUnprocessableEntity, "DOCUMENTO_INVALIDO"},
	{apperr.ErrCuotaPagada, http.StatusConflict, "CUOTA_PAGADA"},
	{apperr.ErrMontoExcedeSaldo, http.StatusUnprocessableEntity, "MONTO_EXCEDE_SALDO"},
	{apperr.ErrSecuenciaNoConfigurada, http.StatusUnprocessableEntity, "SECUENCIA_NO_CONFIGURADA"},
}

// FromError maps a service error to its HTTP status and envelope. Integrity
// and unclassified errors become a 500 with a generic message.
func FromError(err error) (int, *APIError) {
	for _, m := range mapping {
		if errors.Is(err, m.err) {
			return m.status, &APIError{Detail: err.Error(), Code: m.code}
		}
	}
	return http.StatusInternalServerError, &APIError{Detail: "Error interno del servidor", Code: "INTEGRIDAD"}
}
