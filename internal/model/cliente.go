package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente identifica al comprador por DNI (8 digitos) o RUC (11 digitos).
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Documento string    `gorm:"type:varchar(11);uniqueIndex;not null"`
	Telefono  *string   `gorm:"type:varchar(20)"`
	Email     *string
	Direccion *string
	Estado    int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Cliente) Activo() bool { return c.Estado == EstadoActivo }

// EsRUC reports whether the document is an 11-digit RUC.
func (c *Cliente) EsRUC() bool { return EsRUC(c.Documento) }

func EsRUC(doc string) bool { return len(doc) == 11 && soloDigitos(doc) }

// EsDNI reports whether the document is an 8-digit DNI.
func EsDNI(doc string) bool { return len(doc) == 8 && soloDigitos(doc) }

func soloDigitos(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
