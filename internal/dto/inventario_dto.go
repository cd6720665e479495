package dto

import "github.com/shopspring/decimal"

// ─── Movimientos ──────────────────────────────────────────────────────────────

type RegistrarMovimientoRequest struct {
	ProductoID     string  `json:"producto_id"     validate:"required,uuid"`
	Tipo           string  `json:"tipo"            validate:"required,oneof=ENTRADA SALIDA DEVOLUCION MERMA"`
	Cantidad       int     `json:"cantidad"        validate:"required,min=1"`
	Motivo         string  `json:"motivo"          validate:"required,oneof=COMPRA AJUSTE_FISICO MERMA DEVOLUCION_CLIENTE AJUSTE_POSITIVO AJUSTE_NEGATIVO"`
	ReferenciaID   *string `json:"referencia_id"   validate:"omitempty,uuid"`
	ReferenciaTipo string  `json:"referencia_tipo" validate:"omitempty,oneof=VENTA COMPRA AJUSTE NINGUNO"`
	Observaciones  *string `json:"observaciones"   validate:"omitempty,max=500"`
}

type MovimientoResponse struct {
	ID             string  `json:"id"`
	ProductoID     string  `json:"producto_id"`
	ProductoNombre string  `json:"producto_nombre,omitempty"`
	Tipo           string  `json:"tipo"`
	Cantidad       int     `json:"cantidad"`
	StockAnterior  int     `json:"stock_anterior"`
	StockNuevo     int     `json:"stock_nuevo"`
	Motivo         string  `json:"motivo"`
	ReferenciaID   *string `json:"referencia_id"`
	ReferenciaTipo string  `json:"referencia_tipo"`
	Usuario        string  `json:"usuario"`
	Observaciones  *string `json:"observaciones"`
	CreatedAt      string  `json:"created_at"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// MovimientoFilter: kardex por producto, por tipo o por rango de fechas.
type MovimientoFilter struct {
	ProductoID string `form:"producto_id" validate:"omitempty,uuid"`
	Tipo       string `form:"tipo"        validate:"omitempty,oneof=ENTRADA SALIDA DEVOLUCION MERMA"`
	Desde      string `form:"desde"` // YYYY-MM-DD
	Hasta      string `form:"hasta"` // YYYY-MM-DD, inclusive
	Page       int    `form:"page,default=1"    validate:"min=1"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type AlertaStockResponse struct {
	ProductoID  string          `json:"producto_id"`
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	StockActual int             `json:"stock_actual"`
	StockMinimo int             `json:"stock_minimo"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
}

// ─── Secuencias ───────────────────────────────────────────────────────────────

type SiguienteNumeroQuery struct {
	TipoComprobante string `form:"tipo_comprobante" validate:"required,oneof=BOLETA FACTURA NOTA_VENTA"`
	Serie           string `form:"serie"            validate:"required,max=4"`
}

type SecuenciaResponse struct {
	TipoComprobante string `json:"tipo_comprobante"`
	Serie           string `json:"serie"`
	NumeroActual    int64  `json:"numero_actual"`
	Siguiente       string `json:"siguiente"`
	Activo          bool   `json:"activo"`
}
