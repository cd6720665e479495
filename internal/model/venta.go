package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

// Venta es la cabecera del comprobante. (TipoComprobante, Serie, Numero) es
// unico; el indice compuesto respalda al asignador de numeros.
type Venta struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ClienteID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	TipoComprobante     string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_ventas_comprobante"`
	Serie               string          `gorm:"type:varchar(4);not null;uniqueIndex:idx_ventas_comprobante"`
	Numero              string          `gorm:"type:varchar(8);not null;uniqueIndex:idx_ventas_comprobante"`
	FechaVenta          time.Time       `gorm:"not null;index"`
	FormaPago           string          `gorm:"type:varchar(10);not null"`
	Subtotal            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DescuentoPorcentaje decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	MontoDescuento      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IGV                 decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:igv"`
	Total               decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado              string          `gorm:"type:varchar(10);not null;index"`
	Observaciones       *string
	UsuarioCreacion     string `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Cliente  *Cliente       `gorm:"foreignKey:ClienteID"`
	Detalles []DetalleVenta `gorm:"foreignKey:VentaID"`
	Credito  *CreditoVenta  `gorm:"foreignKey:VentaID"`
}

// ComprobanteCompleto devuelve el identificador impreso, p.ej. "B001-00000042".
func (v *Venta) ComprobanteCompleto() string { return v.Serie + "-" + v.Numero }

// DetalleVenta es una linea de la venta. PrecioUnitario es una copia del
// precio del producto al momento de vender.
type DetalleVenta struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad            int             `gorm:"not null"`
	PrecioUnitario      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DescuentoPorcentaje decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Subtotal            decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (DetalleVenta) TableName() string { return "detalles_venta" }

// SubtotalLinea = round2(precio * (1 - desc/100) * cantidad), half-up.
func SubtotalLinea(precio, descuentoPct decimal.Decimal, cantidad int) decimal.Decimal {
	unit := precio.Sub(precio.Mul(descuentoPct).Div(cien))
	return unit.Mul(decimal.NewFromInt(int64(cantidad))).Round(2)
}

// TotalVenta aplica el descuento general sobre el subtotal. IGV siempre es cero.
func TotalVenta(subtotal, descuentoPct decimal.Decimal) (descuento, total decimal.Decimal) {
	descuento = subtotal.Mul(descuentoPct).Div(cien).Round(2)
	return descuento, subtotal.Sub(descuento)
}
