package repository

import (
	"context"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VentaFilter defines filters for listing sales.
type VentaFilter struct {
	ClienteID *uuid.UUID
	Estado    string
	FormaPago string
	Fechas    RangoFechas
	Page      int
	Limit     int
}

type VentaRepository interface {
	// CreateTx inserts the sale together with its Detalles.
	CreateTx(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	// FindByIDForUpdateTx locks the sale row and loads its lines ordered by producto_id.
	FindByIDForUpdateTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Venta, error)
	UpdateEstadoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error
	List(ctx context.Context, filter VentaFilter) ([]model.Venta, int64, error)
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) CreateTx(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return apperr.FromDB(tx.WithContext(ctx).Omit("Cliente", "Credito", "Detalles.Producto").Create(v).Error, "venta")
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Detalles.Producto").
		Preload("Credito.Cuotas", func(db *gorm.DB) *gorm.DB { return db.Order("numero_cuota ASC") }).
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, apperr.FromDB(err, "venta "+id.String())
	}
	return &v, nil
}

func (r *ventaRepo) FindByIDForUpdateTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	if err := forUpdate(tx.WithContext(ctx)).First(&v, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "venta "+id.String())
	}
	if err := tx.WithContext(ctx).Where("venta_id = ?", id).Order("producto_id ASC").Find(&v.Detalles).Error; err != nil {
		return nil, apperr.FromDB(err, "detalles de venta")
	}
	return &v, nil
}

func (r *ventaRepo) UpdateEstadoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error {
	res := tx.WithContext(ctx).Model(&model.Venta{}).Where("id = ?", id).Update("estado", estado)
	if res.Error != nil {
		return apperr.FromDB(res.Error, "venta")
	}
	if res.RowsAffected == 0 {
		return apperr.NoEncontrado("venta %s", id)
	}
	return nil
}

func (r *ventaRepo) List(ctx context.Context, filter VentaFilter) ([]model.Venta, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.ClienteID != nil {
		q = q.Where("cliente_id = ?", *filter.ClienteID)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.FormaPago != "" {
		q = q.Where("forma_pago = ?", filter.FormaPago)
	}
	q = filter.Fechas.apply(q, "fecha_venta")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "ventas")
	}

	offset, limit := paginate(filter.Page, filter.Limit, 50, 200)
	var ventas []model.Venta
	err := q.Preload("Cliente").Preload("Detalles.Producto").
		Order("fecha_venta DESC").Offset(offset).Limit(limit).Find(&ventas).Error
	return ventas, total, apperr.FromDB(err, "ventas")
}
