package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/dto"
	"sneakerfever/internal/model"
	"sneakerfever/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	precioCachePrefix = "precio:"
	precioCacheTTL    = 10 * time.Minute
)

// ProductoService is the product catalog. Stock is read here but only ever
// written through InventarioService.
type ProductoService interface {
	Crear(ctx context.Context, usuario string, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado int) (*dto.ProductoResponse, error)
	// ConsultarPrecio looks a product up by codigo through a Redis cache.
	ConsultarPrecio(ctx context.Context, codigo string) (*dto.ConsultaPrecioResponse, error)
}

type productoService struct {
	db         *gorm.DB
	repo       repository.ProductoRepository
	inventario InventarioService
	rdb        *redis.Client // nil disables the price cache
}

func NewProductoService(db *gorm.DB, repo repository.ProductoRepository, inventario InventarioService, rdb *redis.Client) ProductoService {
	return &productoService{db: db, repo: repo, inventario: inventario, rdb: rdb}
}

func (s *productoService) Crear(ctx context.Context, usuario string, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	codigo := strings.ToUpper(strings.TrimSpace(req.Codigo))
	if codigo == "" {
		return nil, apperr.Validacion("codigo requerido")
	}
	if err := validarMonto(req.PrecioVenta, "precio_venta"); err != nil {
		return nil, err
	}
	if req.StockInicial < 0 || req.StockMinimo < 0 {
		return nil, apperr.Validacion("stock_inicial y stock_minimo no pueden ser negativos")
	}

	p := &model.Producto{
		ID:          uuid.New(),
		Codigo:      codigo,
		Nombre:      strings.TrimSpace(req.Nombre),
		Descripcion: req.Descripcion,
		Talla:       req.Talla,
		PrecioVenta: req.PrecioVenta,
		StockMinimo: req.StockMinimo,
		Estado:      model.EstadoActivo,
	}
	err := runTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(ctx, tx, p); err != nil {
			return err
		}
		if req.StockInicial == 0 {
			return nil
		}
		mov, err := s.inventario.AplicarMovimientoTx(ctx, tx, MovimientoInput{
			ProductoID:     p.ID,
			Tipo:           model.MovimientoEntrada,
			Cantidad:       req.StockInicial,
			Motivo:         model.MotivoCompra,
			ReferenciaTipo: model.ReferenciaNinguno,
			Usuario:        usuario,
		})
		if err != nil {
			return err
		}
		p.Stock = mov.StockNuevo
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("codigo", p.Codigo).Int("stock", p.Stock).Str("usuario", usuario).Msg("producto creado")
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	productos, total, err := s.repo.List(ctx, repository.ProductoFilter{
		Buscar: filter.Buscar,
		Estado: filter.Estado,
		Page:   filter.Page,
		Limit:  filter.Limit,
	})
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, productoToResponse(&productos[i]))
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	return &dto.ProductoListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	campos := map[string]interface{}{}
	if req.Nombre != nil {
		campos["nombre"] = strings.TrimSpace(*req.Nombre)
	}
	if req.Descripcion != nil {
		campos["descripcion"] = *req.Descripcion
	}
	if req.Talla != nil {
		campos["talla"] = *req.Talla
	}
	if req.PrecioVenta != nil {
		if err := validarMonto(*req.PrecioVenta, "precio_venta"); err != nil {
			return nil, err
		}
		campos["precio_venta"] = *req.PrecioVenta
	}
	if req.StockMinimo != nil {
		if *req.StockMinimo < 0 {
			return nil, apperr.Validacion("stock_minimo no puede ser negativo")
		}
		campos["stock_minimo"] = *req.StockMinimo
	}
	if len(campos) == 0 {
		return nil, apperr.Validacion("no hay campos para actualizar")
	}
	return s.actualizar(ctx, id, campos)
}

func (s *productoService) CambiarEstado(ctx context.Context, id uuid.UUID, estado int) (*dto.ProductoResponse, error) {
	switch estado {
	case model.EstadoActivo, model.EstadoInactivo, model.EstadoEliminado:
	default:
		return nil, apperr.Validacion("estado %d invalido", estado)
	}
	return s.actualizar(ctx, id, map[string]interface{}{"estado": estado})
}

func (s *productoService) actualizar(ctx context.Context, id uuid.UUID, campos map[string]interface{}) (*dto.ProductoResponse, error) {
	if err := s.repo.UpdateCampos(ctx, id, campos); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidarPrecio(ctx, p.Codigo)
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) ConsultarPrecio(ctx context.Context, codigo string) (*dto.ConsultaPrecioResponse, error) {
	codigo = strings.ToUpper(strings.TrimSpace(codigo))
	if codigo == "" {
		return nil, apperr.Validacion("codigo requerido")
	}
	key := precioCachePrefix + codigo

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var resp dto.ConsultaPrecioResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		case !errors.Is(err, redis.Nil):
			log.Warn().Err(err).Str("codigo", codigo).Msg("precio cache: lectura fallida")
		}
	}

	p, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	if p.Estado == model.EstadoEliminado {
		return nil, apperr.NoEncontrado("producto %s", codigo)
	}
	resp := &dto.ConsultaPrecioResponse{
		Codigo:      p.Codigo,
		Nombre:      p.Nombre,
		Talla:       p.Talla,
		PrecioVenta: p.PrecioVenta,
		Activo:      p.Activo(),
	}

	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			if err := s.rdb.Set(ctx, key, b, precioCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("codigo", codigo).Msg("precio cache: escritura fallida")
			}
		}
	}
	return resp, nil
}

func (s *productoService) invalidarPrecio(ctx context.Context, codigo string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, precioCachePrefix+codigo).Err(); err != nil {
		log.Warn().Err(err).Str("codigo", codigo).Msg("precio cache: invalidacion fallida")
	}
}
