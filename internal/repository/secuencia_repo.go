package repository

import (
	"context"
	"errors"
	"fmt"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/model"

	"gorm.io/gorm"
)

type SecuenciaRepository interface {
	// SiguienteNumeroTx locks the (tipo, serie) counter, increments it and
	// returns the new value. The lock is held until tx ends.
	SiguienteNumeroTx(ctx context.Context, tx *gorm.DB, tipo, serie string) (int64, error)
	FindActiva(ctx context.Context, tipo, serie string) (*model.ComprobanteSecuencia, error)
	ListActivas(ctx context.Context) ([]model.ComprobanteSecuencia, error)
	// Upsert crea el contador si no existe; no retrocede uno existente.
	Upsert(ctx context.Context, s *model.ComprobanteSecuencia) error
}

type secuenciaRepo struct{ db *gorm.DB }

func NewSecuenciaRepository(db *gorm.DB) SecuenciaRepository { return &secuenciaRepo{db: db} }

func noConfigurada(tipo, serie string) error {
	return fmt.Errorf("%w: %s %s", apperr.ErrSecuenciaNoConfigurada, tipo, serie)
}

func (r *secuenciaRepo) SiguienteNumeroTx(ctx context.Context, tx *gorm.DB, tipo, serie string) (int64, error) {
	var s model.ComprobanteSecuencia
	err := forUpdate(tx.WithContext(ctx)).
		Where("tipo_comprobante = ? AND serie = ? AND activo = true", tipo, serie).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, noConfigurada(tipo, serie)
	}
	if err != nil {
		return 0, apperr.FromDB(err, "secuencia")
	}

	s.NumeroActual++
	if err := tx.WithContext(ctx).Model(&s).Update("numero_actual", s.NumeroActual).Error; err != nil {
		return 0, apperr.FromDB(err, "secuencia")
	}
	return s.NumeroActual, nil
}

func (r *secuenciaRepo) FindActiva(ctx context.Context, tipo, serie string) (*model.ComprobanteSecuencia, error) {
	var s model.ComprobanteSecuencia
	err := r.db.WithContext(ctx).
		Where("tipo_comprobante = ? AND serie = ? AND activo = true", tipo, serie).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, noConfigurada(tipo, serie)
	}
	if err != nil {
		return nil, apperr.FromDB(err, "secuencia")
	}
	return &s, nil
}

func (r *secuenciaRepo) ListActivas(ctx context.Context) ([]model.ComprobanteSecuencia, error) {
	var out []model.ComprobanteSecuencia
	err := r.db.WithContext(ctx).Where("activo = true").
		Order("tipo_comprobante, serie").Find(&out).Error
	return out, apperr.FromDB(err, "secuencias")
}

func (r *secuenciaRepo) Upsert(ctx context.Context, s *model.ComprobanteSecuencia) error {
	err := r.db.WithContext(ctx).
		Where(model.ComprobanteSecuencia{TipoComprobante: s.TipoComprobante, Serie: s.Serie}).
		Attrs(model.ComprobanteSecuencia{NumeroActual: s.NumeroActual, Activo: true}).
		FirstOrCreate(s).Error
	return apperr.FromDB(err, "secuencia")
}
