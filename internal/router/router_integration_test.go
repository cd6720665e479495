//go:build integration

package router_test

// Runs the HTTP surface against real Postgres and Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"sneakerfever/internal/config"
	"sneakerfever/internal/infra"
	"sneakerfever/internal/middleware"
	"sneakerfever/internal/model"
	"sneakerfever/internal/repository"
	"sneakerfever/internal/router"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

const secret = "integration-secret"

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	token  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcPostgres.WithDatabase("sneakerfever_test"),
		tcPostgres.WithUsername("sneakerfever"),
		tcPostgres.WithPassword("sneakerfever"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })
	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })
	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:              "test",
		JWTSecret:        secret,
		DatabaseURL:      pgURL,
		RedisURL:         rdURL,
		WorkerPoolSize:   1,
		PDFStoragePath:   t.TempDir(),
		NegocioNombre:    "SneakerFever",
		VencimientosLote: 50,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))
	rdb, err := infra.NewRedis(ctx, cfg.RedisURL, cfg.WorkerPoolSize)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	secuencias := repository.NewSecuenciaRepository(db)
	for _, s := range []model.ComprobanteSecuencia{
		{TipoComprobante: model.ComprobanteBoleta, Serie: "B001"},
		{TipoComprobante: model.ComprobanteFactura, Serie: "F001"},
		{TipoComprobante: model.ComprobanteNotaVenta, Serie: "NV01"},
	} {
		s := s
		require.NoError(t, secuencias.Upsert(ctx, &s))
	}

	srvCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	srv := httptest.NewServer(router.New(srvCtx, cfg, db, rdb, nil))
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, db: db, token: firmar(t, "supervisor1", middleware.RolSupervisor)}
}

func firmar(t *testing.T, user, rol string) string {
	t.Helper()
	claims := middleware.JWTClaims{
		UserID:   uuid.NewString(),
		Username: user,
		Rol:      rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func (e *testEnv) producto(t *testing.T, codigo, precio string, stock int) uuid.UUID {
	t.Helper()
	var p struct {
		ID    string `json:"id"`
		Stock int    `json:"stock"`
	}
	status := e.do(t, http.MethodPost, "/v1/productos", map[string]any{
		"codigo":        codigo,
		"nombre":        "Zapatilla " + codigo,
		"precio_venta":  precio,
		"stock_minimo":  0,
		"stock_inicial": stock,
	}, &p)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, stock, p.Stock)
	return uuid.MustParse(p.ID)
}

func (e *testEnv) stock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	var p model.Producto
	require.NoError(t, e.db.First(&p, "id = ?", id).Error)
	return p.Stock
}

func (e *testEnv) do(t *testing.T, method, path string, body any, dest any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)
	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if dest != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
	}
	return resp.StatusCode
}

type ventaResp struct {
	ID                  string `json:"id"`
	ClienteID           string `json:"cliente_id"`
	Numero              string `json:"numero"`
	ComprobanteCompleto string `json:"comprobante_completo"`
	Estado              string `json:"estado"`
	Total               string `json:"total"`
	Credito             *struct {
		ID     string `json:"id"`
		Estado string `json:"estado"`
		Cuotas []struct {
			ID             string `json:"id"`
			SaldoPendiente string `json:"saldo_pendiente"`
		} `json:"cuotas"`
	} `json:"credito"`
}

type errorResp struct {
	Code string `json:"code"`
}

func TestIntegration_VentaCreditoPagoYAnulacion(t *testing.T) {
	env := setupTestEnv(t)
	prod := env.producto(t, "NK-DNK-41", "529.90", 5)

	var health map[string]any
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health", nil, &health))

	var precio struct {
		PrecioVenta string `json:"precio_venta"`
	}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/v1/precio/nk-dnk-41", nil, &precio))
	assert.True(t, decimal.RequireFromString("529.90").Equal(decimal.RequireFromString(precio.PrecioVenta)))

	var kardex struct {
		Total int64 `json:"total"`
	}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/v1/inventario/movimientos?producto_id="+prod.String(), nil, &kardex))
	assert.EqualValues(t, 1, kardex.Total, "initial stock is one ENTRADA")

	// 1. Credit sale to a new customer identified by document.
	var v ventaResp
	status := env.do(t, http.MethodPost, "/v1/ventas", map[string]any{
		"documento":        "45678912",
		"nombre_cliente":   "Lucia Rojas",
		"tipo_comprobante": "BOLETA",
		"serie":            "B001",
		"forma_pago":       "CREDITO",
		"detalles":         []map[string]any{{"producto_id": prod, "cantidad": 1}},
		"credito": map[string]any{
			"monto_inicial":      "0",
			"interes_porcentaje": "0",
			"numero_cuotas":      3,
			"intervalo_cuotas":   "MENSUAL",
		},
	}, &v)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "B001-00000001", v.ComprobanteCompleto)
	assert.Equal(t, "PENDIENTE", v.Estado)
	require.NotNil(t, v.Credito)
	require.Len(t, v.Credito.Cuotas, 3)
	assert.Equal(t, 4, env.stock(t, prod))

	// 2. FACTURA needs a RUC: the customer has a DNI.
	var e errorResp
	status = env.do(t, http.MethodPost, "/v1/ventas", map[string]any{
		"cliente_id":       v.ClienteID,
		"tipo_comprobante": "FACTURA",
		"serie":            "F001",
		"forma_pago":       "CONTADO",
		"detalles":         []map[string]any{{"producto_id": prod, "cantidad": 1}},
	}, &e)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "DOCUMENTO_INVALIDO", e.Code)
	assert.Equal(t, 4, env.stock(t, prod), "rejected sale does not touch stock")

	// 3. Overpaying an installment is rejected; exact payments settle the plan.
	primera := v.Credito.Cuotas[0]
	excede := decimal.RequireFromString(primera.SaldoPendiente).Add(decimal.RequireFromString("0.01"))
	status = env.do(t, http.MethodPost, "/v1/pagos", map[string]any{
		"credito_id": v.Credito.ID, "cuota_id": primera.ID, "monto": excede, "metodo_pago": "YAPE",
	}, &e)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "MONTO_EXCEDE_SALDO", e.Code)

	var pago struct {
		Credito struct {
			Estado         string `json:"estado"`
			SaldoPendiente string `json:"saldo_pendiente"`
		} `json:"credito"`
	}
	for _, q := range v.Credito.Cuotas {
		status = env.do(t, http.MethodPost, "/v1/pagos", map[string]any{
			"credito_id": v.Credito.ID, "cuota_id": q.ID, "monto": q.SaldoPendiente, "metodo_pago": "EFECTIVO",
		}, &pago)
		require.Equal(t, http.StatusCreated, status)
	}
	assert.Equal(t, "PAGADO", pago.Credito.Estado)
	assert.True(t, decimal.RequireFromString(pago.Credito.SaldoPendiente).IsZero())

	status = env.do(t, http.MethodPost, "/v1/pagos", map[string]any{
		"credito_id": v.Credito.ID, "cuota_id": primera.ID, "monto": "1", "metodo_pago": "EFECTIVO",
	}, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CUOTA_PAGADA", e.Code)

	var pagada ventaResp
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/v1/ventas/"+v.ID, nil, &pagada))
	assert.Equal(t, "PAGADA", pagada.Estado)

	// 4. Voiding a cash sale restores stock exactly once.
	var contado ventaResp
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/v1/ventas", map[string]any{
		"cliente_id":       v.ClienteID,
		"tipo_comprobante": "BOLETA",
		"serie":            "B001",
		"forma_pago":       "CONTADO",
		"detalles":         []map[string]any{{"producto_id": prod, "cantidad": 2}},
	}, &contado))
	assert.Equal(t, "B001-00000002", contado.ComprobanteCompleto)
	assert.Equal(t, 2, env.stock(t, prod))

	var anulada ventaResp
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/v1/ventas/"+contado.ID+"/anular", nil, &anulada))
	assert.Equal(t, "ANULADA", anulada.Estado)
	assert.Equal(t, 4, env.stock(t, prod))
	assert.Equal(t, http.StatusConflict, env.do(t, http.MethodPost, "/v1/ventas/"+contado.ID+"/anular", nil, nil))
	assert.Equal(t, 4, env.stock(t, prod))
}

func TestIntegration_Concurrencia(t *testing.T) {
	env := setupTestEnv(t)
	unico := env.producto(t, "NB-550-43", "549.90", 1)
	abundante := env.producto(t, "VN-OSK-39", "289.90", 100)

	var base ventaResp
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/v1/ventas", map[string]any{
		"documento":        "20123456789",
		"nombre_cliente":   "Distribuidora Lima SAC",
		"tipo_comprobante": "NOTA_VENTA",
		"serie":            "NV01",
		"forma_pago":       "CONTADO",
		"detalles":         []map[string]any{{"producto_id": abundante, "cantidad": 1}},
	}, &base))
	require.Equal(t, "NV01-00000001", base.ComprobanteCompleto)

	venta := func(prod uuid.UUID) map[string]any {
		return map[string]any{
			"cliente_id":       base.ClienteID,
			"tipo_comprobante": "NOTA_VENTA",
			"serie":            "NV01",
			"forma_pago":       "CONTADO",
			"detalles":         []map[string]any{{"producto_id": prod, "cantidad": 1}},
		}
	}

	t.Run("last unit is sold once", func(t *testing.T) {
		var (
			wg     sync.WaitGroup
			mu     sync.Mutex
			status []int
		)
		for i := 0; i < 6; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s := env.do(t, http.MethodPost, "/v1/ventas", venta(unico), nil)
				mu.Lock()
				status = append(status, s)
				mu.Unlock()
			}()
		}
		wg.Wait()

		ok, conflict := 0, 0
		for _, s := range status {
			switch s {
			case http.StatusCreated:
				ok++
			case http.StatusConflict:
				conflict++
			}
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, 5, conflict)
		assert.Zero(t, env.stock(t, unico))
	})

	t.Run("numbers stay contiguous", func(t *testing.T) {
		const n = 20
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			numeros []string
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				var v ventaResp
				if env.do(t, http.MethodPost, "/v1/ventas", venta(abundante), &v) == http.StatusCreated {
					mu.Lock()
					numeros = append(numeros, v.Numero)
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		require.Len(t, numeros, n)
		sort.Strings(numeros)
		// NV01-00000001 went to the base sale, 00000002 to the single-unit sale;
		// rejected sales rolled back without burning numbers.
		for i, num := range numeros {
			assert.Equal(t, fmt.Sprintf("%08d", i+3), num)
		}
		assert.Equal(t, 100-1-n, env.stock(t, abundante))
	})
}
