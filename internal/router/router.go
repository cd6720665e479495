package router

import (
	"context"
	"time"

	"sneakerfever/internal/config"
	"sneakerfever/internal/handler"
	"sneakerfever/internal/infra"
	"sneakerfever/internal/middleware"
	"sneakerfever/internal/repository"
	"sneakerfever/internal/service"
	"sneakerfever/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// ctx bounds the lifetime of the background goroutines it starts.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	limiter := middleware.NewRateLimiter(1000, time.Minute) // 1000 req/min per IP
	limiter.StartPurge(ctx, 5*time.Minute)

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.Origenes()...))
	r.Use(middleware.ErrorHandler())
	r.Use(limiter.Middleware())

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	secuenciaRepo := repository.NewSecuenciaRepository(db)
	movimientoRepo := repository.NewMovimientoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	creditoRepo := repository.NewCreditoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	// Worker dispatcher: injected into services that enqueue async jobs
	var dispatcher *worker.Dispatcher
	if rdb != nil {
		dispatcher = worker.NewDispatcher(rdb)
	}

	secuenciaSvc := service.NewSecuenciaService(secuenciaRepo)
	inventarioSvc := service.NewInventarioService(db, productoRepo, movimientoRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	creditoSvc := service.NewCreditoService(db, creditoRepo, ventaRepo, cfg.VencimientosLote)
	pagoSvc := service.NewPagoService(db, creditoRepo, ventaRepo)
	productoSvc := service.NewProductoService(db, productoRepo, inventarioSvc, rdb)
	ventaSvc := service.NewVentaService(db, ventaRepo, productoRepo, secuenciaSvc, inventarioSvc, clienteSvc, creditoSvc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	ventasH := handler.NewVentasHandler(ventaSvc, creditoSvc, infra.GenerarComprobantePDF, cfg.PDFStoragePath, cfg.NegocioNombre)
	creditosH := handler.NewCreditosHandler(creditoSvc, pagoSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	secuenciasH := handler.NewSecuenciasHandler(secuenciaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	var breakers []*infra.CircuitBreaker
	if smtpCB != nil {
		breakers = append(breakers, smtpCB)
	}
	r.GET("/health", handler.Health(db, rdb, breakers...))
	r.GET("/v1/precio/:codigo", productosH.ConsultarPrecio)

	todos := middleware.RequireRole(middleware.RolCajero, middleware.RolSupervisor, middleware.RolAdministrador)
	supervision := middleware.RequireRole(middleware.RolSupervisor, middleware.RolAdministrador)

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		ventas := v1.Group("/ventas")
		{
			ventas.POST("", todos, ventasH.CrearVenta)
			ventas.GET("", todos, ventasH.ListarVentas)
			ventas.GET("/:id", todos, ventasH.ObtenerVenta)
			ventas.GET("/:id/credito", todos, ventasH.ObtenerCredito)
			ventas.GET("/:id/comprobante", todos, ventasH.DescargarComprobante)
			ventas.POST("/:id/anular", supervision, ventasH.AnularVenta)
			ventas.PATCH("/:id/estado", supervision, ventasH.ActualizarEstado)
		}

		creditos := v1.Group("/creditos", todos)
		{
			creditos.GET("", creditosH.Listar)
			creditos.GET("/vencidos", creditosH.ListarVencidos)
			creditos.GET("/proximos-vencer", creditosH.ListarProximosVencer)
			creditos.GET("/:id", creditosH.Obtener)
			creditos.GET("/:id/cuotas", creditosH.ListarCuotas)
			creditos.GET("/:id/pagos", creditosH.ListarPagos)
		}
		v1.POST("/creditos/actualizar-estados", supervision, creditosH.ActualizarEstados)

		cuotas := v1.Group("/cuotas", todos)
		{
			cuotas.GET("/vencidas", creditosH.ListarCuotasVencidas)
			cuotas.GET("/:id", creditosH.ObtenerCuota)
		}

		v1.POST("/pagos", todos, creditosH.RegistrarPago)

		inv := v1.Group("/inventario", supervision)
		{
			inv.POST("/movimientos", inventarioH.RegistrarMovimiento)
			inv.GET("/movimientos", inventarioH.ListarMovimientos)
			inv.GET("/alertas", inventarioH.ObtenerAlertas)
		}

		productos := v1.Group("/productos")
		{
			productos.GET("", todos, productosH.Listar)
			productos.GET("/:id", todos, productosH.ObtenerPorID)
			productos.POST("", supervision, productosH.Crear)
			productos.PUT("/:id", supervision, productosH.Actualizar)
			productos.PATCH("/:id/estado", supervision, productosH.CambiarEstado)
		}

		clientes := v1.Group("/clientes", todos)
		{
			clientes.GET("", clientesH.Buscar)
			clientes.GET("/documento/:documento", clientesH.ObtenerPorDocumento)
			clientes.GET("/:id", clientesH.ObtenerPorID)
		}

		secuencias := v1.Group("/secuencias", todos)
		{
			secuencias.GET("", secuenciasH.Listar)
			secuencias.GET("/siguiente", secuenciasH.Siguiente)
		}
	}

	// Swagger UI: only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
