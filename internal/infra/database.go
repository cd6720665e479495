package infra

import (
	"fmt"

	"sneakerfever/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx. TranslateError is
// on so unique violations surface as gorm.ErrDuplicatedKey.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// RunMigrations creates / updates all tables and then applies the constraints
// AutoMigrate cannot express.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Producto{},
		&model.Cliente{},
		&model.ComprobanteSecuencia{},
		&model.Venta{},
		&model.DetalleVenta{},
		&model.CreditoVenta{},
		&model.Cuota{},
		&model.RegistroPago{},
		&model.MovimientoInventario{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL statements. Each statement is guarded
// by an existence check so re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"productos stock >= 0", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_productos_stock_no_negativo') THEN
    ALTER TABLE productos ADD CONSTRAINT chk_productos_stock_no_negativo CHECK (stock >= 0);
  END IF;
END $$`},
		{"secuencias numero_actual >= 0", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_secuencias_numero') THEN
    ALTER TABLE comprobante_secuencias ADD CONSTRAINT chk_secuencias_numero CHECK (numero_actual >= 0);
  END IF;
END $$`},
		{"cuotas saldo en rango", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_cuotas_saldo') THEN
    ALTER TABLE cuotas_pago ADD CONSTRAINT chk_cuotas_saldo
      CHECK (saldo_pendiente >= 0 AND monto_pagado >= 0 AND monto_pagado + saldo_pendiente = monto);
  END IF;
END $$`},
		{"pagos monto > 0", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_registros_pago_monto') THEN
    ALTER TABLE registros_pago ADD CONSTRAINT chk_registros_pago_monto CHECK (monto > 0);
  END IF;
END $$`},
		// partial index for the overdue sweep
		{"idx_creditos_abiertos", `
CREATE INDEX IF NOT EXISTS idx_creditos_abiertos
    ON creditos_venta (id)
    WHERE estado IN ('ACTIVO', 'VENCIDO')`},
		{"idx_cuotas_pendientes", `
CREATE INDEX IF NOT EXISTS idx_cuotas_pendientes
    ON cuotas_pago (fecha_vencimiento)
    WHERE saldo_pendiente > 0`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
