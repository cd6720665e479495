package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto es el articulo vendible. Stock nunca baja de cero; la restriccion
// CHECK en la base lo respalda (ver infra.applySchemaPatches).
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo      string    `gorm:"uniqueIndex;not null"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	Talla       *string         `gorm:"type:varchar(10)"`
	PrecioVenta decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	StockMinimo int             `gorm:"not null;default:5"`
	// Estado: 1 activo, 0 inactivo, 2 eliminado
	Estado    int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Producto) Activo() bool { return p.Estado == EstadoActivo }

// BajoStock es verdadero cuando el stock alcanzo el minimo configurado.
func (p *Producto) BajoStock() bool { return p.Stock <= p.StockMinimo }
