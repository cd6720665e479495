package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditoVenta es el plan de financiamiento de una venta a credito.
//
// Montos:
//   - MontoFinanciado = (MontoTotal - MontoInicial) + MontoInteres
//   - MontoPagado     = MontoInicial + suma de cuotas pagadas
//   - SaldoPendiente  = MontoFinanciado - suma de cuotas pagadas
type CreditoVenta struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	MontoTotal        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoInicial      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	InteresPorcentaje decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	MontoInteres      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontoFinanciado   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	NumeroCuotas      int             `gorm:"not null"`
	IntervaloCuotas   string          `gorm:"type:varchar(10);not null"`
	FechaInicio       time.Time       `gorm:"type:date;not null"`
	FechaFin          time.Time       `gorm:"type:date;not null;index"`
	MontoPagado       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SaldoPendiente    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado            string          `gorm:"type:varchar(10);not null;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Venta  *Venta  `gorm:"foreignKey:VentaID"`
	Cuotas []Cuota `gorm:"foreignKey:CreditoID"`
}

func (CreditoVenta) TableName() string { return "creditos_venta" }

// Terminal reports whether no further state transition is allowed.
func (c *CreditoVenta) Terminal() bool {
	return c.Estado == CreditoPagado || c.Estado == CreditoCancelado
}

// RecalcularMontos deriva MontoPagado y SaldoPendiente de las cuotas cargadas.
func (c *CreditoVenta) RecalcularMontos() {
	pagadoCuotas := decimal.Zero
	for _, q := range c.Cuotas {
		pagadoCuotas = pagadoCuotas.Add(q.MontoPagado)
	}
	c.MontoPagado = c.MontoInicial.Add(pagadoCuotas)
	c.SaldoPendiente = c.MontoFinanciado.Sub(pagadoCuotas)
}

// RecalcularEstado aplica la maquina de estados del credito. PAGADO y
// CANCELADO no se modifican.
func (c *CreditoVenta) RecalcularEstado(hoy time.Time) {
	if c.Terminal() {
		return
	}
	switch {
	case !c.SaldoPendiente.IsPositive():
		c.Estado = CreditoPagado
	case DespuesDe(hoy, c.FechaFin):
		c.Estado = CreditoVencido
	default:
		c.Estado = CreditoActivo
	}
}

// Cancelar congela un credito abierto; los pagos registrados no se tocan.
// Un credito PAGADO o CANCELADO queda como esta. Devuelve si hubo cambio.
func (c *CreditoVenta) Cancelar() bool {
	if c.Terminal() {
		return false
	}
	c.Estado = CreditoCancelado
	return true
}

// PorcentajePagado es la fraccion pagada del monto financiado, 0..100.
func (c *CreditoVenta) PorcentajePagado() decimal.Decimal {
	if !c.MontoFinanciado.IsPositive() {
		return cien
	}
	pagado := c.MontoFinanciado.Sub(c.SaldoPendiente)
	return pagado.Mul(cien).DivRound(c.MontoFinanciado, 2)
}

// Cuota es una obligacion del plan con fecha de vencimiento.
type Cuota struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreditoID        uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_cuota_credito_numero"`
	NumeroCuota      int             `gorm:"not null;uniqueIndex:idx_cuota_credito_numero"`
	Monto            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoPagado      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SaldoPendiente   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FechaVencimiento time.Time       `gorm:"type:date;not null;index"`
	FechaPago        *time.Time      `gorm:"type:date"`
	Estado           string          `gorm:"type:varchar(10);not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Cuota) TableName() string { return "cuotas_pago" }

// Saldada reports whether the installment balance is zero. It reads the
// balance, not the cached Estado.
func (q *Cuota) Saldada() bool { return !q.SaldoPendiente.IsPositive() }

// RecalcularEstado deriva el estado de la cuota desde su saldo y vencimiento.
func (q *Cuota) RecalcularEstado(hoy time.Time) {
	q.Estado = q.estado(DespuesDe(hoy, q.FechaVencimiento))
}

// EstadoSinVencimiento es el estado de una cuota de un credito CANCELADO:
// ya no vence.
func (q *Cuota) EstadoSinVencimiento() string { return q.estado(false) }

func (q *Cuota) estado(vencida bool) string {
	switch {
	case q.Saldada():
		return CuotaPagada
	case vencida:
		return CuotaVencida
	case q.MontoPagado.IsPositive():
		return CuotaParcial
	default:
		return CuotaPendiente
	}
}

// AplicarPago descuenta monto del saldo. El llamador valida 0 < monto <= saldo.
func (q *Cuota) AplicarPago(monto decimal.Decimal, hoy time.Time) {
	q.MontoPagado = q.MontoPagado.Add(monto)
	q.SaldoPendiente = q.SaldoPendiente.Sub(monto)
	if q.Saldada() {
		d := Dia(hoy)
		q.FechaPago = &d
	}
	q.RecalcularEstado(hoy)
}

// RegistroPago es un pago aplicado a una cuota. Inmutable.
type RegistroPago struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreditoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CuotaID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Monto         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago    string          `gorm:"type:varchar(15);not null"`
	Referencia    *string         `gorm:"type:varchar(100)"`
	Observaciones *string
	Usuario       string    `gorm:"not null"`
	FechaPago     time.Time `gorm:"not null;index"`
	CreatedAt     time.Time
}

func (RegistroPago) TableName() string { return "registros_pago" }
