package model

import (
	"time"

	"github.com/google/uuid"
)

// ComprobanteSecuencia es el contador por (tipo, serie). NumeroActual es el
// ultimo numero emitido; el siguiente es NumeroActual+1.
type ComprobanteSecuencia struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TipoComprobante string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_secuencia_tipo_serie"`
	Serie           string    `gorm:"type:varchar(4);not null;uniqueIndex:idx_secuencia_tipo_serie"`
	NumeroActual    int64     `gorm:"not null;default:0"`
	Activo          bool      `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ComprobanteSecuencia) TableName() string { return "comprobante_secuencias" }
