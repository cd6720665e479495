package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from query string of GET /v1/ventas.
type VentaFilter struct {
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	Estado    string `form:"estado"     validate:"omitempty,oneof=PENDIENTE PAGADA ANULADA"`
	FormaPago string `form:"forma_pago" validate:"omitempty,oneof=CONTADO CREDITO"`
	Desde     string `form:"desde"` // YYYY-MM-DD
	Hasta     string `form:"hasta"` // YYYY-MM-DD, inclusive
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DetalleVentaRequest struct {
	ProductoID string          `json:"producto_id" validate:"required,uuid"`
	Cantidad   int             `json:"cantidad"    validate:"required,min=1"`
	Descuento  decimal.Decimal `json:"descuento"   validate:"min=0,max=100"` // porcentaje
}

// CreditoRequest holds the financing terms; required when forma_pago = CREDITO.
type CreditoRequest struct {
	MontoInicial      decimal.Decimal `json:"monto_inicial"      validate:"min=0"`
	InteresPorcentaje decimal.Decimal `json:"interes_porcentaje" validate:"min=0,max=100"`
	NumeroCuotas      int             `json:"numero_cuotas"      validate:"required,min=1,max=120"`
	IntervaloCuotas   string          `json:"intervalo_cuotas"   validate:"required,oneof=SEMANAL QUINCENAL MENSUAL"`
	// FechaInicio: YYYY-MM-DD; empty = fecha de la venta
	FechaInicio string `json:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
}

type CrearVentaRequest struct {
	// ClienteID or Documento identifies the customer. With only Documento the
	// customer is looked up and created if missing (NombreCliente required then).
	ClienteID       *string               `json:"cliente_id"       validate:"omitempty,uuid"`
	Documento       *string               `json:"documento"        validate:"omitempty,numeric,min=8,max=11"`
	NombreCliente   *string               `json:"nombre_cliente"   validate:"omitempty,min=2,max=150"`
	EmailCliente    *string               `json:"email_cliente"    validate:"omitempty,email"`
	TipoComprobante string                `json:"tipo_comprobante" validate:"required,oneof=BOLETA FACTURA NOTA_VENTA"`
	Serie           string                `json:"serie"            validate:"required,max=4"`
	FormaPago       string                `json:"forma_pago"       validate:"required,oneof=CONTADO CREDITO"`
	Descuento       decimal.Decimal       `json:"descuento"        validate:"min=0,max=100"` // porcentaje general
	Observaciones   *string               `json:"observaciones"    validate:"omitempty,max=500"`
	Detalles        []DetalleVentaRequest `json:"detalles"         validate:"required,min=1,dive"`
	Credito         *CreditoRequest       `json:"credito"          validate:"required_if=FormaPago CREDITO"`
}

type ActualizarEstadoVentaRequest struct {
	Estado string `json:"estado" validate:"required,oneof=PENDIENTE PAGADA ANULADA"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Descuento      decimal.Decimal `json:"descuento"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID                  string                 `json:"id"`
	TipoComprobante     string                 `json:"tipo_comprobante"`
	Serie               string                 `json:"serie"`
	Numero              string                 `json:"numero"`
	ComprobanteCompleto string                 `json:"comprobante_completo"`
	ClienteID           string                 `json:"cliente_id"`
	ClienteNombre       string                 `json:"cliente_nombre,omitempty"`
	ClienteDocumento    string                 `json:"cliente_documento,omitempty"`
	FechaVenta          string                 `json:"fecha_venta"`
	FormaPago           string                 `json:"forma_pago"`
	Detalles            []DetalleVentaResponse `json:"detalles"`
	Subtotal            decimal.Decimal        `json:"subtotal"`
	Descuento           decimal.Decimal        `json:"descuento"`
	MontoDescuento      decimal.Decimal        `json:"monto_descuento"`
	IGV                 decimal.Decimal        `json:"igv"`
	Total               decimal.Decimal        `json:"total"`
	Estado              string                 `json:"estado"`
	Observaciones       *string                `json:"observaciones,omitempty"`
	UsuarioCreacion     string                 `json:"usuario_creacion"`
	Credito             *CreditoResponse       `json:"credito,omitempty"`
}
