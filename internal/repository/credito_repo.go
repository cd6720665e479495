package repository

import (
	"context"
	"time"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreditoRepository interface {
	// CreateTx inserts the credit and its Cuotas.
	CreateTx(ctx context.Context, tx *gorm.DB, c *model.CreditoVenta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CreditoVenta, error)
	FindByVentaID(ctx context.Context, ventaID uuid.UUID) (*model.CreditoVenta, error)
	// FindByIDForUpdateTx locks the credit row and loads its Cuotas.
	FindByIDForUpdateTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.CreditoVenta, error)
	// FindByVentaIDForUpdateTx returns (nil, nil) when the sale has no credit.
	FindByVentaIDForUpdateTx(ctx context.Context, tx *gorm.DB, ventaID uuid.UUID) (*model.CreditoVenta, error)
	ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.CreditoVenta, error)
	ListByEstado(ctx context.Context, estado string) ([]model.CreditoVenta, error)
	// ListVencidos: non-terminal credits whose end date is before hoy.
	ListVencidos(ctx context.Context, hoy time.Time) ([]model.CreditoVenta, error)
	// ListProximosVencer: non-terminal credits with a pending installment due in [hoy, hasta].
	ListProximosVencer(ctx context.Context, hoy, hasta time.Time) ([]model.CreditoVenta, error)
	// ListPendientesTx locks up to limit non-terminal credits with id > despues,
	// skipping rows locked by other transactions.
	ListPendientesTx(ctx context.Context, tx *gorm.DB, despues uuid.UUID, limit int) ([]model.CreditoVenta, error)
	UpdateTx(ctx context.Context, tx *gorm.DB, c *model.CreditoVenta) error

	FindCuotaByID(ctx context.Context, id uuid.UUID) (*model.Cuota, error)
	// ListCuotasVencidas: unpaid installments due before hoy on non-cancelled credits.
	ListCuotasVencidas(ctx context.Context, hoy time.Time) ([]model.Cuota, error)
	UpdateCuotaTx(ctx context.Context, tx *gorm.DB, q *model.Cuota) error

	CreatePagoTx(ctx context.Context, tx *gorm.DB, p *model.RegistroPago) error
	// ListPagos returns payments of a credit, newest first.
	ListPagos(ctx context.Context, creditoID uuid.UUID) ([]model.RegistroPago, error)
}

type creditoRepo struct{ db *gorm.DB }

func NewCreditoRepository(db *gorm.DB) CreditoRepository { return &creditoRepo{db: db} }

var estadosAbiertos = []string{model.CreditoActivo, model.CreditoVencido}

func cuotasOrdenadas(db *gorm.DB) *gorm.DB { return db.Order("numero_cuota ASC") }

func (r *creditoRepo) CreateTx(ctx context.Context, tx *gorm.DB, c *model.CreditoVenta) error {
	return apperr.FromDB(tx.WithContext(ctx).Omit("Venta").Create(c).Error, "credito")
}

func (r *creditoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CreditoVenta, error) {
	var c model.CreditoVenta
	err := r.db.WithContext(ctx).Preload("Cuotas", cuotasOrdenadas).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, apperr.FromDB(err, "credito "+id.String())
	}
	return &c, nil
}

func (r *creditoRepo) FindByVentaID(ctx context.Context, ventaID uuid.UUID) (*model.CreditoVenta, error) {
	var c model.CreditoVenta
	err := r.db.WithContext(ctx).Preload("Cuotas", cuotasOrdenadas).First(&c, "venta_id = ?", ventaID).Error
	if err != nil {
		return nil, apperr.FromDB(err, "credito de la venta "+ventaID.String())
	}
	return &c, nil
}

func (r *creditoRepo) loadCuotasTx(ctx context.Context, tx *gorm.DB, c *model.CreditoVenta) error {
	err := tx.WithContext(ctx).Where("credito_id = ?", c.ID).Order("numero_cuota ASC").Find(&c.Cuotas).Error
	return apperr.FromDB(err, "cuotas")
}

func (r *creditoRepo) FindByIDForUpdateTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.CreditoVenta, error) {
	var c model.CreditoVenta
	if err := forUpdate(tx.WithContext(ctx)).First(&c, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "credito "+id.String())
	}
	if err := r.loadCuotasTx(ctx, tx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *creditoRepo) FindByVentaIDForUpdateTx(ctx context.Context, tx *gorm.DB, ventaID uuid.UUID) (*model.CreditoVenta, error) {
	var creditos []model.CreditoVenta
	if err := forUpdate(tx.WithContext(ctx)).Where("venta_id = ?", ventaID).Limit(1).Find(&creditos).Error; err != nil {
		return nil, apperr.FromDB(err, "credito")
	}
	if len(creditos) == 0 {
		return nil, nil
	}
	c := &creditos[0]
	if err := r.loadCuotasTx(ctx, tx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *creditoRepo) ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.CreditoVenta, error) {
	var out []model.CreditoVenta
	err := r.db.WithContext(ctx).
		Joins("JOIN ventas ON ventas.id = creditos_venta.venta_id").
		Where("ventas.cliente_id = ?", clienteID).
		Preload("Cuotas", cuotasOrdenadas).
		Order("creditos_venta.created_at DESC").
		Find(&out).Error
	return out, apperr.FromDB(err, "creditos")
}

func (r *creditoRepo) ListByEstado(ctx context.Context, estado string) ([]model.CreditoVenta, error) {
	var out []model.CreditoVenta
	err := r.db.WithContext(ctx).Where("estado = ?", estado).
		Preload("Cuotas", cuotasOrdenadas).
		Order("fecha_fin ASC").Find(&out).Error
	return out, apperr.FromDB(err, "creditos")
}

func (r *creditoRepo) ListVencidos(ctx context.Context, hoy time.Time) ([]model.CreditoVenta, error) {
	var out []model.CreditoVenta
	err := r.db.WithContext(ctx).
		Where("estado IN ? AND saldo_pendiente > 0 AND fecha_fin < ?", estadosAbiertos, model.Dia(hoy)).
		Preload("Cuotas", cuotasOrdenadas).
		Order("fecha_fin ASC").Find(&out).Error
	return out, apperr.FromDB(err, "creditos")
}

func (r *creditoRepo) ListProximosVencer(ctx context.Context, hoy, hasta time.Time) ([]model.CreditoVenta, error) {
	var out []model.CreditoVenta
	sub := r.db.Model(&model.Cuota{}).Select("credito_id").
		Where("saldo_pendiente > 0 AND fecha_vencimiento BETWEEN ? AND ?", model.Dia(hoy), model.Dia(hasta))
	err := r.db.WithContext(ctx).
		Where("estado IN ? AND id IN (?)", estadosAbiertos, sub).
		Preload("Cuotas", cuotasOrdenadas).
		Order("fecha_fin ASC").Find(&out).Error
	return out, apperr.FromDB(err, "creditos")
}

func (r *creditoRepo) ListPendientesTx(ctx context.Context, tx *gorm.DB, despues uuid.UUID, limit int) ([]model.CreditoVenta, error) {
	var out []model.CreditoVenta
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("estado IN ? AND id > ?", estadosAbiertos, despues).
		Order("id ASC").Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, apperr.FromDB(err, "creditos")
	}
	for i := range out {
		if err := r.loadCuotasTx(ctx, tx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *creditoRepo) UpdateTx(ctx context.Context, tx *gorm.DB, c *model.CreditoVenta) error {
	err := tx.WithContext(ctx).Model(&model.CreditoVenta{}).Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"monto_pagado":    c.MontoPagado,
			"saldo_pendiente": c.SaldoPendiente,
			"estado":          c.Estado,
		}).Error
	return apperr.FromDB(err, "credito")
}

func (r *creditoRepo) FindCuotaByID(ctx context.Context, id uuid.UUID) (*model.Cuota, error) {
	var q model.Cuota
	if err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		return nil, apperr.FromDB(err, "cuota "+id.String())
	}
	return &q, nil
}

func (r *creditoRepo) ListCuotasVencidas(ctx context.Context, hoy time.Time) ([]model.Cuota, error) {
	var out []model.Cuota
	err := r.db.WithContext(ctx).
		Joins("JOIN creditos_venta ON creditos_venta.id = cuotas_pago.credito_id").
		Where("creditos_venta.estado IN ?", estadosAbiertos).
		Where("cuotas_pago.saldo_pendiente > 0 AND cuotas_pago.fecha_vencimiento < ?", model.Dia(hoy)).
		Order("cuotas_pago.fecha_vencimiento ASC").
		Find(&out).Error
	return out, apperr.FromDB(err, "cuotas")
}

func (r *creditoRepo) UpdateCuotaTx(ctx context.Context, tx *gorm.DB, q *model.Cuota) error {
	err := tx.WithContext(ctx).Model(&model.Cuota{}).Where("id = ?", q.ID).
		Updates(map[string]interface{}{
			"monto_pagado":    q.MontoPagado,
			"saldo_pendiente": q.SaldoPendiente,
			"fecha_pago":      q.FechaPago,
			"estado":          q.Estado,
		}).Error
	return apperr.FromDB(err, "cuota")
}

func (r *creditoRepo) CreatePagoTx(ctx context.Context, tx *gorm.DB, p *model.RegistroPago) error {
	return apperr.FromDB(tx.WithContext(ctx).Create(p).Error, "pago")
}

func (r *creditoRepo) ListPagos(ctx context.Context, creditoID uuid.UUID) ([]model.RegistroPago, error) {
	var out []model.RegistroPago
	err := r.db.WithContext(ctx).Where("credito_id = ?", creditoID).
		Order("fecha_pago DESC, created_at DESC").Find(&out).Error
	return out, apperr.FromDB(err, "pagos")
}
