package service

import (
	"context"
	"fmt"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/dto"
	"sneakerfever/internal/repository"

	"gorm.io/gorm"
)

const maxNumeroComprobante = 99999999

// SecuenciaService hands out gap-free document numbers per (tipo, serie).
type SecuenciaService interface {
	// AsignarTx reserves the next number inside tx. The counter row stays
	// locked until tx ends, so a rollback releases the number unused.
	AsignarTx(ctx context.Context, tx *gorm.DB, tipo, serie string) (string, error)
	// Previsualizar returns the number the next sale would get, without reserving it.
	Previsualizar(ctx context.Context, tipo, serie string) (string, error)
	ListarActivas(ctx context.Context) ([]dto.SecuenciaResponse, error)
}

type secuenciaService struct {
	repo repository.SecuenciaRepository
}

func NewSecuenciaService(repo repository.SecuenciaRepository) SecuenciaService {
	return &secuenciaService{repo: repo}
}

// FormatearNumero zero-pads a document number to 8 digits.
func FormatearNumero(n int64) string { return fmt.Sprintf("%08d", n) }

func (s *secuenciaService) AsignarTx(ctx context.Context, tx *gorm.DB, tipo, serie string) (string, error) {
	n, err := s.repo.SiguienteNumeroTx(ctx, tx, tipo, serie)
	if err != nil {
		return "", err
	}
	if n > maxNumeroComprobante {
		return "", apperr.Conflicto("la serie %s de %s agoto su numeracion", serie, tipo)
	}
	return FormatearNumero(n), nil
}

func (s *secuenciaService) Previsualizar(ctx context.Context, tipo, serie string) (string, error) {
	sec, err := s.repo.FindActiva(ctx, tipo, serie)
	if err != nil {
		return "", err
	}
	return FormatearNumero(sec.NumeroActual + 1), nil
}

func (s *secuenciaService) ListarActivas(ctx context.Context) ([]dto.SecuenciaResponse, error) {
	secs, err := s.repo.ListActivas(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SecuenciaResponse, 0, len(secs))
	for _, sec := range secs {
		out = append(out, dto.SecuenciaResponse{
			TipoComprobante: sec.TipoComprobante,
			Serie:           sec.Serie,
			NumeroActual:    sec.NumeroActual,
			Siguiente:       FormatearNumero(sec.NumeroActual + 1),
			Activo:          sec.Activo,
		})
	}
	return out, nil
}
