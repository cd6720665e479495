package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de movimiento de inventario.
const (
	MovimientoEntrada    = "ENTRADA"
	MovimientoSalida     = "SALIDA"
	MovimientoDevolucion = "DEVOLUCION"
	MovimientoMerma      = "MERMA"
)

const (
	MotivoCompra            = "COMPRA"
	MotivoVenta             = "VENTA"
	MotivoAnulacionVenta    = "ANULACION_VENTA"
	MotivoAjusteFisico      = "AJUSTE_FISICO"
	MotivoMerma             = "MERMA"
	MotivoDevolucionCliente = "DEVOLUCION_CLIENTE"
	MotivoAjustePositivo    = "AJUSTE_POSITIVO"
	MotivoAjusteNegativo    = "AJUSTE_NEGATIVO"
)

const (
	ReferenciaVenta   = "VENTA"
	ReferenciaCompra  = "COMPRA"
	ReferenciaAjuste  = "AJUSTE"
	ReferenciaNinguno = "NINGUNO"
)

// MovimientoInventario registra cada cambio de stock de un producto.
// Es inmutable: nunca se actualiza ni se borra.
type MovimientoInventario struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Tipo           string     `gorm:"type:varchar(20);not null;index"`
	Cantidad       int        `gorm:"not null"` // siempre positiva; el signo lo da Tipo
	StockAnterior  int        `gorm:"not null"`
	StockNuevo     int        `gorm:"not null"`
	Motivo         string     `gorm:"type:varchar(30);not null"`
	ReferenciaID   *uuid.UUID `gorm:"type:uuid;index"`
	ReferenciaTipo string     `gorm:"type:varchar(20);not null;default:'NINGUNO'"`
	Usuario        string     `gorm:"not null"`
	Observaciones  *string
	CreatedAt      time.Time `gorm:"index"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (MovimientoInventario) TableName() string { return "movimientos_inventario" }

// DeltaMovimiento devuelve el cambio con signo que un movimiento aplica al stock.
func DeltaMovimiento(tipo string, cantidad int) (int, bool) {
	switch tipo {
	case MovimientoEntrada, MovimientoDevolucion:
		return cantidad, true
	case MovimientoSalida, MovimientoMerma:
		return -cantidad, true
	}
	return 0, false
}
