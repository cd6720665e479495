package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/dto"
	"sneakerfever/internal/model"
	"sneakerfever/internal/repository"
	"sneakerfever/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	CrearVenta(ctx context.Context, usuario string, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	AnularVenta(ctx context.Context, id uuid.UUID, usuario string) (*dto.VentaResponse, error)
	// ActualizarEstado only accepts ANULADA (routed through AnularVenta) or the
	// current state; every other transition is derived from payments.
	ActualizarEstado(ctx context.Context, id uuid.UUID, estado, usuario string) (*dto.VentaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	// CargarComprobante returns the sale with customer, lines and credit
	// loaded, ready for the receipt renderer.
	CargarComprobante(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	db           *gorm.DB
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	secuencias   SecuenciaService
	inventario   InventarioService
	clientes     ClienteService
	creditos     CreditoService
	dispatcher   *worker.Dispatcher
	now          func() time.Time
}

func NewVentaService(
	db *gorm.DB,
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	secuencias SecuenciaService,
	inventario InventarioService,
	clientes ClienteService,
	creditos CreditoService,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		db:           db,
		repo:         repo,
		productoRepo: productoRepo,
		secuencias:   secuencias,
		inventario:   inventario,
		clientes:     clientes,
		creditos:     creditos,
		dispatcher:   dispatcher,
		now:          time.Now,
	}
}

type lineaResuelta struct {
	producto  *model.Producto
	cantidad  int
	descuento decimal.Decimal
	subtotal  decimal.Decimal
}

// ── CrearVenta ────────────────────────────────────────────────────────────────
// One transaction. Every business rule is checked before the first write:
//   1. Lines: product exists, is active, requested quantity <= stock
//   2. Customer resolved (not yet created) and FACTURA requires RUC
//   3. Totals, and the installment plan for CREDITO
// Then:
//   4. Create the customer if new, allocate SERIE-NUMERO
//   5. Decrement stock per line under the product row lock
//   6. Persist sale + lines, and credit + installments
//   7. Movement rows in a savepoint; failures are logged, not fatal
// After commit: receipt and low-stock jobs (best effort).

func (s *ventaService) CrearVenta(ctx context.Context, usuario string, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	if err := validarCabecera(req); err != nil {
		return nil, err
	}
	fechaVenta := s.now()

	var terminos TerminosCredito
	if req.FormaPago == model.FormaPagoCredito {
		t, err := TerminosDesdeRequest(req.Credito, fechaVenta)
		if err != nil {
			return nil, err
		}
		terminos = t
	}

	var (
		venta   *model.Venta
		cliente *model.Cliente
		alertas []worker.AlertaStockJobPayload
	)
	err := runTx(ctx, s.db, func(tx *gorm.DB) error {
		// 1. Lines
		lineas, subtotal, err := s.resolverLineas(ctx, tx, req.Detalles)
		if err != nil {
			return err
		}

		// 2. Customer
		var nuevo bool
		cliente, nuevo, err = s.clientes.ResolverTx(ctx, tx, ClienteInput{
			ClienteID: req.ClienteID,
			Documento: req.Documento,
			Nombre:    req.NombreCliente,
			Email:     req.EmailCliente,
		})
		if err != nil {
			return err
		}
		if req.TipoComprobante == model.ComprobanteFactura && !cliente.EsRUC() {
			return fmt.Errorf("%w: no se puede emitir FACTURA al documento %s, se requiere RUC (11 digitos)",
				apperr.ErrComprobanteInvalido, cliente.Documento)
		}

		// 3. Totals and plan
		montoDescuento, total := model.TotalVenta(subtotal, req.Descuento)
		if !total.IsPositive() {
			return apperr.Validacion("el total de la venta debe ser mayor a cero")
		}
		ventaID := uuid.New()
		var credito *model.CreditoVenta
		if req.FormaPago == model.FormaPagoCredito {
			credito, err = GenerarPlanCuotas(ventaID, total, terminos)
			if err != nil {
				return err
			}
		}

		// 4. Customer + number
		if nuevo {
			if err := s.clientes.GuardarTx(ctx, tx, cliente); err != nil {
				return err
			}
		}
		numero, err := s.secuencias.AsignarTx(ctx, tx, req.TipoComprobante, req.Serie)
		if err != nil {
			return err
		}

		// 5. Stock, product rows locked in producto_id order
		movimientos := make([]model.MovimientoInventario, 0, len(lineas))
		for _, i := range ordenDeBloqueo(lineas) {
			l := lineas[i]
			antes, despues, err := s.inventario.AjustarStockTx(ctx, tx, l.producto.ID, model.MovimientoSalida, l.cantidad)
			if err != nil {
				return err
			}
			ref := ventaID
			movimientos = append(movimientos, model.MovimientoInventario{
				ProductoID:     l.producto.ID,
				Tipo:           model.MovimientoSalida,
				Cantidad:       l.cantidad,
				StockAnterior:  antes,
				StockNuevo:     despues,
				Motivo:         model.MotivoVenta,
				ReferenciaID:   &ref,
				ReferenciaTipo: model.ReferenciaVenta,
				Usuario:        usuario,
			})
			if despues <= l.producto.StockMinimo {
				alertas = append(alertas, worker.AlertaStockJobPayload{
					ProductoID:  l.producto.ID.String(),
					Codigo:      l.producto.Codigo,
					Nombre:      l.producto.Nombre,
					StockActual: despues,
					StockMinimo: l.producto.StockMinimo,
				})
			}
		}

		// 6. Sale and credit
		estado := model.VentaPagada
		if req.FormaPago == model.FormaPagoCredito {
			estado = model.VentaPendiente
		}
		venta = &model.Venta{
			ID:                  ventaID,
			ClienteID:           cliente.ID,
			TipoComprobante:     req.TipoComprobante,
			Serie:               req.Serie,
			Numero:              numero,
			FechaVenta:          fechaVenta,
			FormaPago:           req.FormaPago,
			Subtotal:            subtotal,
			DescuentoPorcentaje: req.Descuento,
			MontoDescuento:      montoDescuento,
			IGV:                 decimal.Zero,
			Total:               total,
			Estado:              estado,
			Observaciones:       req.Observaciones,
			UsuarioCreacion:     usuario,
		}
		for _, l := range lineas {
			venta.Detalles = append(venta.Detalles, model.DetalleVenta{
				ID:                  uuid.New(),
				VentaID:             ventaID,
				ProductoID:          l.producto.ID,
				Cantidad:            l.cantidad,
				PrecioUnitario:      l.producto.PrecioVenta,
				DescuentoPorcentaje: l.descuento,
				Subtotal:            l.subtotal,
			})
		}
		if err := s.repo.CreateTx(ctx, tx, venta); err != nil {
			return err
		}
		if credito != nil {
			if err := s.creditos.GuardarTx(ctx, tx, credito); err != nil {
				return err
			}
		}

		// 7. Audit trail, best effort
		for i := range movimientos {
			mov := &movimientos[i]
			err := runSavepoint(tx, func(sp *gorm.DB) error {
				return s.inventario.RegistrarMovimientoTx(ctx, sp, mov)
			})
			if err != nil {
				log.Warn().Err(err).
					Str("venta_id", ventaID.String()).
					Str("producto_id", mov.ProductoID.String()).
					Msg("no se pudo registrar el movimiento de inventario de la venta")
			}
		}

		// attach for the response
		venta.Cliente = cliente
		venta.Credito = credito
		for i := range venta.Detalles {
			venta.Detalles[i].Producto = lineas[i].producto
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("comprobante", venta.ComprobanteCompleto()).
		Str("forma_pago", venta.FormaPago).
		Str("total", venta.Total.StringFixed(2)).
		Str("usuario", usuario).
		Msg("venta registrada")

	s.despacharPostVenta(ctx, venta, cliente, alertas)
	return ventaToResponse(venta, s.now()), nil
}

func validarCabecera(req dto.CrearVentaRequest) error {
	switch req.TipoComprobante {
	case model.ComprobanteBoleta, model.ComprobanteFactura, model.ComprobanteNotaVenta:
	default:
		return apperr.Validacion("tipo de comprobante %q invalido", req.TipoComprobante)
	}
	if req.Serie == "" {
		return apperr.Validacion("serie requerida")
	}
	switch req.FormaPago {
	case model.FormaPagoContado, model.FormaPagoCredito:
	default:
		return apperr.Validacion("forma de pago %q invalida", req.FormaPago)
	}
	if len(req.Detalles) == 0 {
		return apperr.Validacion("la venta debe tener al menos un detalle")
	}
	if req.Descuento.IsNegative() || req.Descuento.GreaterThan(cien) {
		return apperr.Validacion("el descuento debe estar entre 0 y 100")
	}
	return nil
}

// resolverLineas loads every product and checks availability. Quantities of
// repeated products are added up before comparing against stock.
func (s *ventaService) resolverLineas(ctx context.Context, tx *gorm.DB, detalles []dto.DetalleVentaRequest) ([]lineaResuelta, decimal.Decimal, error) {
	lineas := make([]lineaResuelta, 0, len(detalles))
	productos := make(map[uuid.UUID]*model.Producto)
	pedidos := make(map[uuid.UUID]int)
	subtotal := decimal.Zero

	for _, d := range detalles {
		pid, err := uuid.Parse(d.ProductoID)
		if err != nil {
			return nil, decimal.Zero, apperr.Validacion("producto_id invalido: %s", d.ProductoID)
		}
		if d.Cantidad <= 0 {
			return nil, decimal.Zero, apperr.Validacion("la cantidad debe ser mayor a cero")
		}
		if d.Descuento.IsNegative() || d.Descuento.GreaterThan(cien) {
			return nil, decimal.Zero, apperr.Validacion("el descuento de linea debe estar entre 0 y 100")
		}
		p, ok := productos[pid]
		if !ok {
			p, err = s.productoRepo.FindByIDTx(ctx, tx, pid)
			if err != nil {
				return nil, decimal.Zero, err
			}
			if !p.Activo() {
				return nil, decimal.Zero, apperr.Validacion("el producto %s no esta activo", p.Nombre)
			}
			productos[pid] = p
		}
		pedidos[pid] += d.Cantidad
		if pedidos[pid] > p.Stock {
			return nil, decimal.Zero, fmt.Errorf("%w: %s (disponible %d, solicitado %d)",
				apperr.ErrStockInsuficiente, p.Nombre, p.Stock, pedidos[pid])
		}

		sub := model.SubtotalLinea(p.PrecioVenta, d.Descuento, d.Cantidad)
		subtotal = subtotal.Add(sub)
		lineas = append(lineas, lineaResuelta{producto: p, cantidad: d.Cantidad, descuento: d.Descuento, subtotal: sub})
	}
	return lineas, subtotal, nil
}

// ordenDeBloqueo returns the indexes of lineas sorted by product id. Every
// transaction that touches several products locks them in this order.
func ordenDeBloqueo(lineas []lineaResuelta) []int {
	idx := make([]int, len(lineas))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return uuidMenor(lineas[idx[a]].producto.ID, lineas[idx[b]].producto.ID)
	})
	return idx
}

// uuidMenor compares byte-wise, the same order postgres uses for uuid columns.
func uuidMenor(a, b uuid.UUID) bool { return bytes.Compare(a[:], b[:]) < 0 }

// despacharPostVenta enqueues receipt and stock alert jobs. Failures are logged.
func (s *ventaService) despacharPostVenta(ctx context.Context, venta *model.Venta, cliente *model.Cliente, alertas []worker.AlertaStockJobPayload) {
	if s.dispatcher == nil {
		return
	}
	payload := worker.ComprobanteJobPayload{VentaID: venta.ID.String()}
	if cliente != nil && cliente.Email != nil && *cliente.Email != "" {
		payload.ClienteEmail = cliente.Email
	}
	if err := s.dispatcher.EnqueueComprobante(ctx, payload); err != nil {
		log.Warn().Err(err).Str("venta_id", venta.ID.String()).Msg("no se pudo encolar el comprobante")
	}
	for _, a := range alertas {
		if err := s.dispatcher.EnqueueAlertaStock(ctx, a); err != nil {
			log.Warn().Err(err).Str("producto_id", a.ProductoID).Msg("no se pudo encolar la alerta de stock")
		}
	}
}

// ── AnularVenta ───────────────────────────────────────────────────────────────
// Restores each line's stock through the ledger, marks the sale ANULADA and
// cancels its credit. Recorded payments are left untouched.

func (s *ventaService) AnularVenta(ctx context.Context, id uuid.UUID, usuario string) (*dto.VentaResponse, error) {
	err := runTx(ctx, s.db, func(tx *gorm.DB) error {
		venta, err := s.repo.FindByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if venta.Estado == model.VentaAnulada {
			return apperr.Conflicto("la venta %s ya esta anulada", venta.ComprobanteCompleto())
		}

		ref := venta.ID
		detalles := append([]model.DetalleVenta(nil), venta.Detalles...)
		sort.SliceStable(detalles, func(i, j int) bool {
			return uuidMenor(detalles[i].ProductoID, detalles[j].ProductoID)
		})
		for _, d := range detalles {
			_, err := s.inventario.AplicarMovimientoTx(ctx, tx, MovimientoInput{
				ProductoID:     d.ProductoID,
				Tipo:           model.MovimientoDevolucion,
				Cantidad:       d.Cantidad,
				Motivo:         model.MotivoAnulacionVenta,
				ReferenciaID:   &ref,
				ReferenciaTipo: model.ReferenciaVenta,
				Usuario:        usuario,
			})
			if err != nil {
				return err
			}
		}

		if err := s.repo.UpdateEstadoTx(ctx, tx, venta.ID, model.VentaAnulada); err != nil {
			return err
		}
		return s.creditos.CancelarPorVentaTx(ctx, tx, venta.ID)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("venta_id", id.String()).Str("usuario", usuario).Msg("venta anulada")
	return s.ObtenerPorID(ctx, id)
}

func (s *ventaService) ActualizarEstado(ctx context.Context, id uuid.UUID, estado, usuario string) (*dto.VentaResponse, error) {
	if estado == model.VentaAnulada {
		return s.AnularVenta(ctx, id, usuario)
	}
	actual, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actual.Estado == estado {
		return ventaToResponse(actual, s.now()), nil
	}
	if actual.Estado == model.VentaAnulada {
		return nil, apperr.Conflicto("la venta %s esta anulada", actual.ComprobanteCompleto())
	}
	return nil, apperr.Conflicto("la venta pasa de %s a %s solo por el pago total de su credito", actual.Estado, estado)
}

func (s *ventaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ventaToResponse(v, s.now()), nil
}

func (s *ventaService) CargarComprobante(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ventaService) ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	f := repository.VentaFilter{
		Estado:    filter.Estado,
		FormaPago: filter.FormaPago,
		Page:      filter.Page,
		Limit:     filter.Limit,
	}
	if filter.ClienteID != "" {
		id, err := uuid.Parse(filter.ClienteID)
		if err != nil {
			return nil, apperr.Validacion("cliente_id invalido")
		}
		f.ClienteID = &id
	}
	rango, err := rangoFechas(filter.Desde, filter.Hasta)
	if err != nil {
		return nil, err
	}
	f.Fechas = rango

	ventas, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	hoy := s.now()
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i], hoy))
	}
	return &dto.VentaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}
