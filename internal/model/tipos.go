package model

import "time"

// Tipos de comprobante. El prefijo de serie por convencion es B, F y NV.
const (
	ComprobanteBoleta    = "BOLETA"
	ComprobanteFactura   = "FACTURA"
	ComprobanteNotaVenta = "NOTA_VENTA"
)

const (
	FormaPagoContado = "CONTADO"
	FormaPagoCredito = "CREDITO"
)

const (
	VentaPendiente = "PENDIENTE"
	VentaPagada    = "PAGADA"
	VentaAnulada   = "ANULADA"
)

const (
	CreditoActivo    = "ACTIVO"
	CreditoPagado    = "PAGADO"
	CreditoVencido   = "VENCIDO"
	CreditoCancelado = "CANCELADO"
)

const (
	CuotaPendiente = "PENDIENTE"
	CuotaParcial   = "PARCIAL"
	CuotaPagada    = "PAGADA"
	CuotaVencida   = "VENCIDA"
)

const (
	IntervaloSemanal   = "SEMANAL"
	IntervaloQuincenal = "QUINCENAL"
	IntervaloMensual   = "MENSUAL"
)

const (
	MetodoEfectivo      = "EFECTIVO"
	MetodoTransferencia = "TRANSFERENCIA"
	MetodoYape          = "YAPE"
	MetodoPlin          = "PLIN"
	MetodoTarjeta       = "TARJETA"
)

// Estado tri-state compartido por productos y clientes.
const (
	EstadoInactivo  = 0
	EstadoActivo    = 1
	EstadoEliminado = 2
)

// DiasIntervalo devuelve la cantidad de dias de cada periodo de cuotas.
func DiasIntervalo(intervalo string) (int, bool) {
	switch intervalo {
	case IntervaloSemanal:
		return 7, true
	case IntervaloQuincenal:
		return 15, true
	case IntervaloMensual:
		return 30, true
	}
	return 0, false
}

// Dia normaliza t a su fecha calendario como medianoche UTC, que es como se
// leen las columnas de tipo date.
func Dia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DespuesDe compares calendar days, each read in its own location.
func DespuesDe(a, b time.Time) bool {
	return Dia(a).After(Dia(b))
}

// DiasEntre devuelve los dias calendario de desde a hasta (negativo si hasta es anterior).
func DiasEntre(desde, hasta time.Time) int {
	return int(Dia(hasta).Sub(Dia(desde)).Hours() / 24)
}
