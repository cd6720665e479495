package service

import (
	"context"
	"time"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/dto"
	"sneakerfever/internal/model"
	"sneakerfever/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovimientoInput describes one stock change to apply through the ledger.
type MovimientoInput struct {
	ProductoID     uuid.UUID
	Tipo           string
	Cantidad       int
	Motivo         string
	ReferenciaID   *uuid.UUID
	ReferenciaTipo string
	Usuario        string
	Observaciones  *string
}

// InventarioService is the stock ledger. Every stock change goes through a
// locked read-modify-write of the product row; stock never goes negative.
type InventarioService interface {
	// RegistrarMovimiento applies a manual movement in its own transaction.
	RegistrarMovimiento(ctx context.Context, usuario string, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error)
	// AplicarMovimientoTx writes the stock and the movement row inside tx.
	AplicarMovimientoTx(ctx context.Context, tx *gorm.DB, in MovimientoInput) (*model.MovimientoInventario, error)
	// AjustarStockTx only writes the stock; the caller records the movement.
	AjustarStockTx(ctx context.Context, tx *gorm.DB, productoID uuid.UUID, tipo string, cantidad int) (antes, despues int, err error)
	RegistrarMovimientoTx(ctx context.Context, tx *gorm.DB, m *model.MovimientoInventario) error
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
	ListarAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error)
}

type inventarioService struct {
	db           *gorm.DB
	productoRepo repository.ProductoRepository
	movRepo      repository.MovimientoRepository
}

func NewInventarioService(db *gorm.DB, productoRepo repository.ProductoRepository, movRepo repository.MovimientoRepository) InventarioService {
	return &inventarioService{db: db, productoRepo: productoRepo, movRepo: movRepo}
}

func (s *inventarioService) RegistrarMovimiento(ctx context.Context, usuario string, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, apperr.Validacion("producto_id invalido")
	}
	in := MovimientoInput{
		ProductoID:     pid,
		Tipo:           req.Tipo,
		Cantidad:       req.Cantidad,
		Motivo:         req.Motivo,
		ReferenciaTipo: req.ReferenciaTipo,
		Usuario:        usuario,
		Observaciones:  req.Observaciones,
	}
	if req.ReferenciaID != nil {
		ref, err := uuid.Parse(*req.ReferenciaID)
		if err != nil {
			return nil, apperr.Validacion("referencia_id invalido")
		}
		in.ReferenciaID = &ref
	}

	var mov *model.MovimientoInventario
	err = runTx(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		mov, err = s.AplicarMovimientoTx(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := movimientoToResponse(mov)
	return &resp, nil
}

func (s *inventarioService) AplicarMovimientoTx(ctx context.Context, tx *gorm.DB, in MovimientoInput) (*model.MovimientoInventario, error) {
	if in.Usuario == "" {
		return nil, apperr.Validacion("usuario requerido")
	}
	if in.Motivo == "" {
		return nil, apperr.Validacion("motivo requerido")
	}
	antes, despues, err := s.AjustarStockTx(ctx, tx, in.ProductoID, in.Tipo, in.Cantidad)
	if err != nil {
		return nil, err
	}
	ref := in.ReferenciaTipo
	if ref == "" {
		ref = model.ReferenciaNinguno
	}
	mov := &model.MovimientoInventario{
		ID:             uuid.New(),
		ProductoID:     in.ProductoID,
		Tipo:           in.Tipo,
		Cantidad:       in.Cantidad,
		StockAnterior:  antes,
		StockNuevo:     despues,
		Motivo:         in.Motivo,
		ReferenciaID:   in.ReferenciaID,
		ReferenciaTipo: ref,
		Usuario:        in.Usuario,
		Observaciones:  in.Observaciones,
		CreatedAt:      time.Now(),
	}
	if err := s.movRepo.CreateTx(ctx, tx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

func (s *inventarioService) AjustarStockTx(ctx context.Context, tx *gorm.DB, productoID uuid.UUID, tipo string, cantidad int) (int, int, error) {
	if cantidad <= 0 {
		return 0, 0, apperr.Validacion("la cantidad debe ser mayor a cero")
	}
	delta, ok := model.DeltaMovimiento(tipo, cantidad)
	if !ok {
		return 0, 0, apperr.Validacion("tipo de movimiento %q invalido", tipo)
	}
	return s.productoRepo.AplicarDeltaTx(ctx, tx, productoID, delta)
}

func (s *inventarioService) RegistrarMovimientoTx(ctx context.Context, tx *gorm.DB, m *model.MovimientoInventario) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return s.movRepo.CreateTx(ctx, tx, m)
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	f := repository.MovimientoFilter{Tipo: filter.Tipo, Page: filter.Page, Limit: filter.Limit}
	if filter.ProductoID != "" {
		pid, err := uuid.Parse(filter.ProductoID)
		if err != nil {
			return nil, apperr.Validacion("producto_id invalido")
		}
		f.ProductoID = &pid
	}
	rango, err := rangoFechas(filter.Desde, filter.Hasta)
	if err != nil {
		return nil, err
	}
	f.Fechas = rango

	movs, total, err := s.movRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoResponse, 0, len(movs))
	for i := range movs {
		data = append(data, movimientoToResponse(&movs[i]))
	}
	return &dto.MovimientoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventarioService) ListarAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	productos, err := s.productoRepo.ListBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertaStockResponse, 0, len(productos))
	for _, p := range productos {
		out = append(out, dto.AlertaStockResponse{
			ProductoID:  p.ID.String(),
			Codigo:      p.Codigo,
			Nombre:      p.Nombre,
			StockActual: p.Stock,
			StockMinimo: p.StockMinimo,
			PrecioVenta: p.PrecioVenta,
		})
	}
	return out, nil
}

// rangoFechas converts inclusive YYYY-MM-DD bounds into a half-open range.
func rangoFechas(desde, hasta string) (repository.RangoFechas, error) {
	var r repository.RangoFechas
	d, err := parseFecha(desde)
	if err != nil {
		return r, apperr.Validacion("fecha desde invalida: %s", desde)
	}
	h, err := parseFecha(hasta)
	if err != nil {
		return r, apperr.Validacion("fecha hasta invalida: %s", hasta)
	}
	r.Desde = d
	if !h.IsZero() {
		r.Hasta = h.AddDate(0, 0, 1)
	}
	if !r.Desde.IsZero() && !r.Hasta.IsZero() && !r.Desde.Before(r.Hasta) {
		return r, apperr.Validacion("rango de fechas vacio")
	}
	return r, nil
}
