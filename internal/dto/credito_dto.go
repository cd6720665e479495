package dto

import "github.com/shopspring/decimal"

type CreditoFilter struct {
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	Estado    string `form:"estado"     validate:"omitempty,oneof=ACTIVO PAGADO VENCIDO CANCELADO"`
}

type ProximosVencerQuery struct {
	Dias int `form:"dias,default=7" validate:"min=1,max=90"`
}

type CuotaResponse struct {
	ID               string          `json:"id"`
	CreditoID        string          `json:"credito_id"`
	NumeroCuota      int             `json:"numero_cuota"`
	Monto            decimal.Decimal `json:"monto"`
	MontoPagado      decimal.Decimal `json:"monto_pagado"`
	SaldoPendiente   decimal.Decimal `json:"saldo_pendiente"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	FechaPago        *string         `json:"fecha_pago"`
	Estado           string          `json:"estado"`
	// DiasVencida > 0 only when the installment is overdue.
	DiasVencida int `json:"dias_vencida"`
}

type CreditoResponse struct {
	ID                string          `json:"id"`
	VentaID           string          `json:"venta_id"`
	MontoTotal        decimal.Decimal `json:"monto_total"`
	MontoInicial      decimal.Decimal `json:"monto_inicial"`
	InteresPorcentaje decimal.Decimal `json:"interes_porcentaje"`
	MontoInteres      decimal.Decimal `json:"monto_interes"`
	MontoFinanciado   decimal.Decimal `json:"monto_financiado"`
	NumeroCuotas      int             `json:"numero_cuotas"`
	IntervaloCuotas   string          `json:"intervalo_cuotas"`
	FechaInicio       string          `json:"fecha_inicio"`
	FechaFin          string          `json:"fecha_fin"`
	MontoPagado       decimal.Decimal `json:"monto_pagado"`
	SaldoPendiente    decimal.Decimal `json:"saldo_pendiente"`
	PorcentajePagado  decimal.Decimal `json:"porcentaje_pagado"`
	DiasRestantes     int             `json:"dias_restantes"`
	Estado            string          `json:"estado"`
	Cuotas            []CuotaResponse `json:"cuotas,omitempty"`
}

type RegistrarPagoRequest struct {
	CreditoID     string          `json:"credito_id"     validate:"required,uuid"`
	CuotaID       string          `json:"cuota_id"       validate:"required,uuid"`
	Monto         decimal.Decimal `json:"monto"          validate:"required"`
	MetodoPago    string          `json:"metodo_pago"    validate:"required,oneof=EFECTIVO TRANSFERENCIA YAPE PLIN TARJETA"`
	Referencia    *string         `json:"referencia"     validate:"omitempty,max=100"`
	Observaciones *string         `json:"observaciones"  validate:"omitempty,max=500"`
}

type PagoResponse struct {
	ID            string          `json:"id"`
	CreditoID     string          `json:"credito_id"`
	CuotaID       string          `json:"cuota_id"`
	Monto         decimal.Decimal `json:"monto"`
	MetodoPago    string          `json:"metodo_pago"`
	Referencia    *string         `json:"referencia"`
	Observaciones *string         `json:"observaciones"`
	Usuario       string          `json:"usuario"`
	FechaPago     string          `json:"fecha_pago"`
	// Snapshot after applying the payment.
	Cuota   *CuotaResponse   `json:"cuota,omitempty"`
	Credito *CreditoResponse `json:"credito,omitempty"`
}

type ActualizarEstadosResponse struct {
	Actualizados int `json:"actualizados"`
}
