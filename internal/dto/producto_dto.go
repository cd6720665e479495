package dto

import "github.com/shopspring/decimal"

// ─── Productos: Request DTOs ─────────────────────────────────────────────────

type CrearProductoRequest struct {
	Codigo      string          `json:"codigo"       validate:"required,min=3,max=30"`
	Nombre      string          `json:"nombre"       validate:"required,min=2,max=120"`
	Descripcion *string         `json:"descripcion"  validate:"omitempty,max=500"`
	Talla       *string         `json:"talla"        validate:"omitempty,max=10"`
	PrecioVenta decimal.Decimal `json:"precio_venta" validate:"required,gt=0"`
	StockMinimo int             `json:"stock_minimo" validate:"min=0"`
	// StockInicial > 0 enters the ledger as an ENTRADA / COMPRA movement.
	StockInicial int `json:"stock_inicial" validate:"min=0"`
}

// ActualizarProductoRequest: nil fields are left untouched. Stock is not
// editable here; use /v1/inventario/movimientos.
type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"       validate:"omitempty,min=2,max=120"`
	Descripcion *string          `json:"descripcion"  validate:"omitempty,max=500"`
	Talla       *string          `json:"talla"        validate:"omitempty,max=10"`
	PrecioVenta *decimal.Decimal `json:"precio_venta" validate:"omitempty,gt=0"`
	StockMinimo *int             `json:"stock_minimo" validate:"omitempty,min=0"`
}

type CambiarEstadoProductoRequest struct {
	// 1 activo, 0 inactivo, 2 eliminado
	Estado *int `json:"estado" validate:"required,min=0,max=2"`
}

// ─── Productos: Filter / Pagination ──────────────────────────────────────────

type ProductoFilter struct {
	Buscar string `form:"buscar" validate:"omitempty,max=60"`
	Estado *int   `form:"estado" validate:"omitempty,min=0,max=2"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Productos: Response DTOs ────────────────────────────────────────────────

type ProductoResponse struct {
	ID          string          `json:"id"`
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion"`
	Talla       *string         `json:"talla"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	Stock       int             `json:"stock"`
	StockMinimo int             `json:"stock_minimo"`
	BajoStock   bool            `json:"bajo_stock"`
	Estado      int             `json:"estado"`
}

type ProductoListResponse struct {
	Data       []ProductoResponse `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

// ConsultaPrecioResponse is the cached price check; it never carries stock.
type ConsultaPrecioResponse struct {
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Talla       *string         `json:"talla"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	Activo      bool            `json:"activo"`
}

// ─── Clientes ────────────────────────────────────────────────────────────────

type ClienteQuery struct {
	Buscar string `form:"buscar" validate:"omitempty,max=60"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Documento string  `json:"documento"`
	EsRUC     bool    `json:"es_ruc"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"`
	Direccion *string `json:"direccion"`
	Activo    bool    `json:"activo"`
}
