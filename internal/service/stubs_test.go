package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/model"
	"sneakerfever/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory store ───────────────────────────────────────────────────────────
// One mutex guards every table, so a stub call behaves like a locked row
// read-modify-write. Values are copied in and out to mimic a database.

type memStore struct {
	mu          sync.Mutex
	productos   map[uuid.UUID]model.Producto
	clientes    map[uuid.UUID]model.Cliente
	secuencias  map[string]model.ComprobanteSecuencia
	ventas      map[uuid.UUID]model.Venta
	creditos    map[uuid.UUID]model.CreditoVenta
	cuotas      map[uuid.UUID]model.Cuota
	pagos       []model.RegistroPago
	movimientos []model.MovimientoInventario

	failMovimientos bool
	lecturasCodigo  int
	bloqueos        []uuid.UUID // product ids in AplicarDeltaTx call order
}

func newMemStore() *memStore {
	return &memStore{
		productos:  make(map[uuid.UUID]model.Producto),
		clientes:   make(map[uuid.UUID]model.Cliente),
		secuencias: make(map[string]model.ComprobanteSecuencia),
		ventas:     make(map[uuid.UUID]model.Venta),
		creditos:   make(map[uuid.UUID]model.CreditoVenta),
		cuotas:     make(map[uuid.UUID]model.Cuota),
	}
}

func secKey(tipo, serie string) string { return tipo + "/" + serie }

func (s *memStore) cuotasDe(creditoID uuid.UUID) []model.Cuota {
	var out []model.Cuota
	for _, q := range s.cuotas {
		if q.CreditoID == creditoID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NumeroCuota < out[j].NumeroCuota })
	return out
}

func (s *memStore) creditoConCuotas(c model.CreditoVenta) *model.CreditoVenta {
	c.Cuotas = s.cuotasDe(c.ID)
	return &c
}

func abierto(c model.CreditoVenta) bool {
	return c.Estado == model.CreditoActivo || c.Estado == model.CreditoVencido
}

// ── Producto ──────────────────────────────────────────────────────────────────

type stubProductoRepo struct{ s *memStore }

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.s.productos[p.ID] = *p
	return nil
}

func (r *stubProductoRepo) CreateTx(_ context.Context, _ *gorm.DB, p *model.Producto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existente := range r.s.productos {
		if existente.Codigo == p.Codigo {
			return apperr.Conflicto("producto %s duplicado", p.Codigo)
		}
	}
	r.s.productos[p.ID] = *p
	return nil
}

func (r *stubProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lecturasCodigo++
	for _, p := range r.s.productos {
		if p.Codigo == codigo {
			return &p, nil
		}
	}
	return nil, apperr.NoEncontrado("producto %s", codigo)
}

func (r *stubProductoRepo) List(_ context.Context, f repository.ProductoFilter) ([]model.Producto, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Producto
	for _, p := range r.s.productos {
		if f.Estado != nil && p.Estado != *f.Estado {
			continue
		}
		if f.Estado == nil && p.Estado == model.EstadoEliminado {
			continue
		}
		b := strings.ToLower(f.Buscar)
		if b != "" && !strings.Contains(strings.ToLower(p.Codigo), b) && !strings.Contains(strings.ToLower(p.Nombre), b) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) UpdateCampos(_ context.Context, id uuid.UUID, campos map[string]interface{}) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.productos[id]
	if !ok {
		return apperr.NoEncontrado("producto %s", id)
	}
	for k, v := range campos {
		switch k {
		case "nombre":
			p.Nombre = v.(string)
		case "descripcion":
			p.Descripcion = ptr(v.(string))
		case "talla":
			p.Talla = ptr(v.(string))
		case "precio_venta":
			p.PrecioVenta = v.(decimal.Decimal)
		case "stock_minimo":
			p.StockMinimo = v.(int)
		case "estado":
			p.Estado = v.(int)
		}
	}
	r.s.productos[id] = p
	return nil
}

func (r *stubProductoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	return r.FindByIDTx(ctx, nil, id)
}

func (r *stubProductoRepo) FindByIDTx(_ context.Context, _ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.productos[id]
	if !ok {
		return nil, apperr.NoEncontrado("producto %s", id)
	}
	return &p, nil
}

func (r *stubProductoRepo) ListBajoStock(_ context.Context) ([]model.Producto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Producto
	for _, p := range r.s.productos {
		if p.Activo() && p.BajoStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) AplicarDeltaTx(_ context.Context, _ *gorm.DB, id uuid.UUID, delta int) (int, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.bloqueos = append(r.s.bloqueos, id)
	p, ok := r.s.productos[id]
	if !ok {
		return 0, 0, apperr.NoEncontrado("producto %s", id)
	}
	nuevo := p.Stock + delta
	if nuevo < 0 {
		return p.Stock, p.Stock, fmt.Errorf("%w: %s", apperr.ErrStockInsuficiente, p.Nombre)
	}
	antes := p.Stock
	p.Stock = nuevo
	r.s.productos[id] = p
	return antes, nuevo, nil
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── Cliente ───────────────────────────────────────────────────────────────────

type stubClienteRepo struct{ s *memStore }

func (r *stubClienteRepo) FindByIDTx(_ context.Context, _ *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clientes[id]
	if !ok {
		return nil, apperr.NoEncontrado("cliente %s", id)
	}
	return &c, nil
}

func (r *stubClienteRepo) FindByDocumentoTx(_ context.Context, _ *gorm.DB, documento string) (*model.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.clientes {
		if c.Documento == documento {
			return &c, nil
		}
	}
	return nil, apperr.NoEncontrado("cliente con documento %s", documento)
}

func (r *stubClienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	return r.FindByIDTx(ctx, nil, id)
}

func (r *stubClienteRepo) FindByDocumento(ctx context.Context, documento string) (*model.Cliente, error) {
	return r.FindByDocumentoTx(ctx, nil, documento)
}

func (r *stubClienteRepo) Search(_ context.Context, buscar string, limit int) ([]model.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Cliente
	for _, c := range r.s.clientes {
		if strings.HasPrefix(c.Documento, buscar) || strings.Contains(strings.ToLower(c.Nombre), strings.ToLower(buscar)) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubClienteRepo) CreateTx(_ context.Context, _ *gorm.DB, c *model.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existente := range r.s.clientes {
		if existente.Documento == c.Documento {
			return apperr.Conflicto("cliente duplicado")
		}
	}
	r.s.clientes[c.ID] = *c
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Secuencia ─────────────────────────────────────────────────────────────────

type stubSecuenciaRepo struct{ s *memStore }

func (r *stubSecuenciaRepo) SiguienteNumeroTx(_ context.Context, _ *gorm.DB, tipo, serie string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sec, ok := r.s.secuencias[secKey(tipo, serie)]
	if !ok || !sec.Activo {
		return 0, fmt.Errorf("%w: %s %s", apperr.ErrSecuenciaNoConfigurada, tipo, serie)
	}
	sec.NumeroActual++
	r.s.secuencias[secKey(tipo, serie)] = sec
	return sec.NumeroActual, nil
}

func (r *stubSecuenciaRepo) FindActiva(_ context.Context, tipo, serie string) (*model.ComprobanteSecuencia, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sec, ok := r.s.secuencias[secKey(tipo, serie)]
	if !ok || !sec.Activo {
		return nil, fmt.Errorf("%w: %s %s", apperr.ErrSecuenciaNoConfigurada, tipo, serie)
	}
	return &sec, nil
}

func (r *stubSecuenciaRepo) ListActivas(_ context.Context) ([]model.ComprobanteSecuencia, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.ComprobanteSecuencia
	for _, sec := range r.s.secuencias {
		if sec.Activo {
			out = append(out, sec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Serie < out[j].Serie })
	return out, nil
}

func (r *stubSecuenciaRepo) Upsert(_ context.Context, sec *model.ComprobanteSecuencia) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.secuencias[secKey(sec.TipoComprobante, sec.Serie)]; !ok {
		r.s.secuencias[secKey(sec.TipoComprobante, sec.Serie)] = *sec
	}
	return nil
}

var _ repository.SecuenciaRepository = (*stubSecuenciaRepo)(nil)

// ── Movimiento ────────────────────────────────────────────────────────────────

type stubMovimientoRepo struct{ s *memStore }

func (r *stubMovimientoRepo) CreateTx(_ context.Context, _ *gorm.DB, m *model.MovimientoInventario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failMovimientos {
		return fmt.Errorf("%w: disk full", apperr.ErrIntegridad)
	}
	r.s.movimientos = append(r.s.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, f repository.MovimientoFilter) ([]model.MovimientoInventario, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.MovimientoInventario
	for _, m := range r.s.movimientos {
		if f.ProductoID != nil && m.ProductoID != *f.ProductoID {
			continue
		}
		if f.Tipo != "" && m.Tipo != f.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

var _ repository.MovimientoRepository = (*stubMovimientoRepo)(nil)

// ── Venta ─────────────────────────────────────────────────────────────────────

type stubVentaRepo struct{ s *memStore }

func (r *stubVentaRepo) CreateTx(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, otra := range r.s.ventas {
		if otra.TipoComprobante == v.TipoComprobante && otra.Serie == v.Serie && otra.Numero == v.Numero {
			return apperr.Conflicto("venta duplicada")
		}
	}
	copia := *v
	copia.Cliente, copia.Credito = nil, nil
	copia.Detalles = append([]model.DetalleVenta(nil), v.Detalles...)
	r.s.ventas[v.ID] = copia
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.ventas[id]
	if !ok {
		return nil, apperr.NoEncontrado("venta %s", id)
	}
	return r.hidratar(v), nil
}

// hidratar emulates the Preloads. Caller holds mu.
func (r *stubVentaRepo) hidratar(v model.Venta) *model.Venta {
	if c, ok := r.s.clientes[v.ClienteID]; ok {
		v.Cliente = &c
	}
	v.Detalles = append([]model.DetalleVenta(nil), v.Detalles...)
	for i := range v.Detalles {
		if p, ok := r.s.productos[v.Detalles[i].ProductoID]; ok {
			v.Detalles[i].Producto = &p
		}
	}
	for _, c := range r.s.creditos {
		if c.VentaID == v.ID {
			v.Credito = r.s.creditoConCuotas(c)
		}
	}
	return &v
}

func (r *stubVentaRepo) FindByIDForUpdateTx(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	return r.FindByID(ctx, id)
}

func (r *stubVentaRepo) UpdateEstadoTx(_ context.Context, _ *gorm.DB, id uuid.UUID, estado string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.ventas[id]
	if !ok {
		return apperr.NoEncontrado("venta %s", id)
	}
	v.Estado = estado
	r.s.ventas[id] = v
	return nil
}

func (r *stubVentaRepo) List(_ context.Context, f repository.VentaFilter) ([]model.Venta, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Venta
	for _, v := range r.s.ventas {
		if f.ClienteID != nil && v.ClienteID != *f.ClienteID {
			continue
		}
		if f.Estado != "" && v.Estado != f.Estado {
			continue
		}
		if f.FormaPago != "" && v.FormaPago != f.FormaPago {
			continue
		}
		out = append(out, *r.hidratar(v))
	}
	return out, int64(len(out)), nil
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── Credito ───────────────────────────────────────────────────────────────────

type stubCreditoRepo struct{ s *memStore }

func (r *stubCreditoRepo) CreateTx(_ context.Context, _ *gorm.DB, c *model.CreditoVenta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, otro := range r.s.creditos {
		if otro.VentaID == c.VentaID {
			return apperr.Conflicto("credito duplicado")
		}
	}
	copia := *c
	copia.Cuotas = nil
	r.s.creditos[c.ID] = copia
	for _, q := range c.Cuotas {
		r.s.cuotas[q.ID] = q
	}
	return nil
}

func (r *stubCreditoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CreditoVenta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.creditos[id]
	if !ok {
		return nil, apperr.NoEncontrado("credito %s", id)
	}
	return r.s.creditoConCuotas(c), nil
}

func (r *stubCreditoRepo) FindByVentaID(_ context.Context, ventaID uuid.UUID) (*model.CreditoVenta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.creditos {
		if c.VentaID == ventaID {
			return r.s.creditoConCuotas(c), nil
		}
	}
	return nil, apperr.NoEncontrado("credito de la venta %s", ventaID)
}

func (r *stubCreditoRepo) FindByIDForUpdateTx(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.CreditoVenta, error) {
	return r.FindByID(ctx, id)
}

func (r *stubCreditoRepo) FindByVentaIDForUpdateTx(ctx context.Context, _ *gorm.DB, ventaID uuid.UUID) (*model.CreditoVenta, error) {
	c, err := r.FindByVentaID(ctx, ventaID)
	if errors.Is(err, apperr.ErrNoEncontrado) {
		return nil, nil
	}
	return c, err
}

func (r *stubCreditoRepo) listar(keep func(model.CreditoVenta) bool) []model.CreditoVenta {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.CreditoVenta
	for _, c := range r.s.creditos {
		if keep(c) {
			out = append(out, *r.s.creditoConCuotas(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func (r *stubCreditoRepo) ListByCliente(_ context.Context, clienteID uuid.UUID) ([]model.CreditoVenta, error) {
	r.s.mu.Lock()
	ventas := make(map[uuid.UUID]bool)
	for _, v := range r.s.ventas {
		if v.ClienteID == clienteID {
			ventas[v.ID] = true
		}
	}
	r.s.mu.Unlock()
	return r.listar(func(c model.CreditoVenta) bool { return ventas[c.VentaID] }), nil
}

func (r *stubCreditoRepo) ListByEstado(_ context.Context, estado string) ([]model.CreditoVenta, error) {
	return r.listar(func(c model.CreditoVenta) bool { return c.Estado == estado }), nil
}

func (r *stubCreditoRepo) ListVencidos(_ context.Context, hoy time.Time) ([]model.CreditoVenta, error) {
	return r.listar(func(c model.CreditoVenta) bool {
		return abierto(c) && c.SaldoPendiente.IsPositive() && model.DespuesDe(hoy, c.FechaFin)
	}), nil
}

func (r *stubCreditoRepo) ListProximosVencer(_ context.Context, hoy, hasta time.Time) ([]model.CreditoVenta, error) {
	r.s.mu.Lock()
	conCuota := make(map[uuid.UUID]bool)
	for _, q := range r.s.cuotas {
		if q.SaldoPendiente.IsPositive() && !model.DespuesDe(hoy, q.FechaVencimiento) && !model.DespuesDe(q.FechaVencimiento, hasta) {
			conCuota[q.CreditoID] = true
		}
	}
	r.s.mu.Unlock()
	return r.listar(func(c model.CreditoVenta) bool { return abierto(c) && conCuota[c.ID] }), nil
}

func (r *stubCreditoRepo) ListPendientesTx(_ context.Context, _ *gorm.DB, despues uuid.UUID, limit int) ([]model.CreditoVenta, error) {
	out := r.listar(func(c model.CreditoVenta) bool {
		return abierto(c) && c.ID.String() > despues.String()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubCreditoRepo) UpdateTx(_ context.Context, _ *gorm.DB, c *model.CreditoVenta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.creditos[c.ID]
	if !ok {
		return apperr.NoEncontrado("credito %s", c.ID)
	}
	stored.MontoPagado = c.MontoPagado
	stored.SaldoPendiente = c.SaldoPendiente
	stored.Estado = c.Estado
	r.s.creditos[c.ID] = stored
	return nil
}

func (r *stubCreditoRepo) FindCuotaByID(_ context.Context, id uuid.UUID) (*model.Cuota, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.cuotas[id]
	if !ok {
		return nil, apperr.NoEncontrado("cuota %s", id)
	}
	return &q, nil
}

func (r *stubCreditoRepo) ListCuotasVencidas(_ context.Context, hoy time.Time) ([]model.Cuota, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Cuota
	for _, q := range r.s.cuotas {
		if abierto(r.s.creditos[q.CreditoID]) && q.SaldoPendiente.IsPositive() && model.DespuesDe(hoy, q.FechaVencimiento) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaVencimiento.Before(out[j].FechaVencimiento) })
	return out, nil
}

func (r *stubCreditoRepo) UpdateCuotaTx(_ context.Context, _ *gorm.DB, q *model.Cuota) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cuotas[q.ID]; !ok {
		return apperr.NoEncontrado("cuota %s", q.ID)
	}
	r.s.cuotas[q.ID] = *q
	return nil
}

func (r *stubCreditoRepo) CreatePagoTx(_ context.Context, _ *gorm.DB, p *model.RegistroPago) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.pagos = append(r.s.pagos, *p)
	return nil
}

func (r *stubCreditoRepo) ListPagos(_ context.Context, creditoID uuid.UUID) ([]model.RegistroPago, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.RegistroPago
	for i := len(r.s.pagos) - 1; i >= 0; i-- {
		if r.s.pagos[i].CreditoID == creditoID {
			out = append(out, r.s.pagos[i])
		}
	}
	return out, nil
}

var _ repository.CreditoRepository = (*stubCreditoRepo)(nil)

// ── Fixture ───────────────────────────────────────────────────────────────────

// fixture wires every service over one memStore with a nil *gorm.DB, so
// runTx calls straight through.
type fixture struct {
	store      *memStore
	hoy        time.Time
	secuencias SecuenciaService
	inventario InventarioService
	creditos   *creditoService
	pagos      *pagoService
	ventas     *ventaService
}

func newFixture() *fixture {
	st := newMemStore()
	f := &fixture{store: st, hoy: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
	now := func() time.Time { return f.hoy }

	productoRepo := &stubProductoRepo{s: st}
	ventaRepo := &stubVentaRepo{s: st}
	creditoRepo := &stubCreditoRepo{s: st}

	f.secuencias = NewSecuenciaService(&stubSecuenciaRepo{s: st})
	f.inventario = NewInventarioService(nil, productoRepo, &stubMovimientoRepo{s: st})

	f.creditos = NewCreditoService(nil, creditoRepo, ventaRepo, 2).(*creditoService)
	f.creditos.now = now

	f.pagos = NewPagoService(nil, creditoRepo, ventaRepo).(*pagoService)
	f.pagos.now = now

	f.ventas = NewVentaService(nil, ventaRepo, productoRepo, f.secuencias, f.inventario,
		NewClienteService(&stubClienteRepo{s: st}), f.creditos, nil).(*ventaService)
	f.ventas.now = now

	for _, sec := range []struct{ tipo, serie string }{
		{model.ComprobanteBoleta, "B001"},
		{model.ComprobanteFactura, "F001"},
		{model.ComprobanteNotaVenta, "NV01"},
	} {
		st.secuencias[secKey(sec.tipo, sec.serie)] = model.ComprobanteSecuencia{
			ID: uuid.New(), TipoComprobante: sec.tipo, Serie: sec.serie, Activo: true,
		}
	}
	return f
}

func (f *fixture) seedProducto(nombre string, precio string, stock, minimo int) model.Producto {
	p := model.Producto{
		ID:          uuid.New(),
		Codigo:      strings.ToUpper("SKU-" + strings.ReplaceAll(nombre, " ", "-")),
		Nombre:      nombre,
		PrecioVenta: decimal.RequireFromString(precio),
		Stock:       stock,
		StockMinimo: minimo,
		Estado:      model.EstadoActivo,
	}
	f.store.productos[p.ID] = p
	return p
}

func (f *fixture) seedCliente(nombre, documento string) model.Cliente {
	c := model.Cliente{ID: uuid.New(), Nombre: nombre, Documento: documento, Estado: model.EstadoActivo}
	f.store.clientes[c.ID] = c
	return c
}

func (f *fixture) stock(id uuid.UUID) int {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.productos[id].Stock
}

func (f *fixture) venta(id string) model.Venta {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.ventas[uuid.MustParse(id)]
}

func (f *fixture) credito(id string) model.CreditoVenta {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return *f.store.creditoConCuotas(f.store.creditos[uuid.MustParse(id)])
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }
