package repository

import (
	"context"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovimientoFilter defines filters for listing stock movements.
type MovimientoFilter struct {
	ProductoID *uuid.UUID
	Tipo       string
	Fechas     RangoFechas
	Page       int
	Limit      int
}

type MovimientoRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, m *model.MovimientoInventario) error
	List(ctx context.Context, filter MovimientoFilter) ([]model.MovimientoInventario, int64, error)
}

type movimientoRepo struct{ db *gorm.DB }

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository {
	return &movimientoRepo{db: db}
}

func (r *movimientoRepo) CreateTx(ctx context.Context, tx *gorm.DB, m *model.MovimientoInventario) error {
	return apperr.FromDB(tx.WithContext(ctx).Create(m).Error, "movimiento de inventario")
}

func (r *movimientoRepo) List(ctx context.Context, filter MovimientoFilter) ([]model.MovimientoInventario, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimientoInventario{})
	if filter.ProductoID != nil {
		q = q.Where("producto_id = ?", *filter.ProductoID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	q = filter.Fechas.apply(q, "created_at")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "movimientos")
	}

	offset, limit := paginate(filter.Page, filter.Limit, 100, 500)
	var movimientos []model.MovimientoInventario
	err := q.Preload("Producto").Order("created_at DESC").Offset(offset).Limit(limit).Find(&movimientos).Error
	return movimientos, total, apperr.FromDB(err, "movimientos")
}
