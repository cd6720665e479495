package service

import (
	"context"
	"testing"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/dto"
	"sneakerfever/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActualizarEstados_MarcaCuotasYCreditosVencidos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	// lote=2 in the fixture, so three credits take two batches
	a := seedCredito(t, f, "300", 3)
	b := seedCredito(t, f, "300", 3)
	c := seedCredito(t, f, "300", 1)

	n, err := f.creditos.ActualizarEstados(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "nothing is due yet")

	// 2026-04-10: first installments are overdue, c ends 2026-04-01
	f.hoy = f.hoy.AddDate(0, 0, 39)
	n, err = f.creditos.ActualizarEstados(ctx)
	require.NoError(t, err)
	// a.cuota1, b.cuota1, c.cuota1 and credit c
	assert.Equal(t, 4, n)

	assert.Equal(t, model.CuotaVencida, f.credito(a.Credito.ID).Cuotas[0].Estado)
	assert.Equal(t, model.CuotaPendiente, f.credito(a.Credito.ID).Cuotas[1].Estado)
	assert.Equal(t, model.CreditoActivo, f.credito(a.Credito.ID).Estado)
	assert.Equal(t, model.CuotaVencida, f.credito(b.Credito.ID).Cuotas[0].Estado)
	assert.Equal(t, model.CreditoVencido, f.credito(c.Credito.ID).Estado)

	// idempotent
	n, err = f.creditos.ActualizarEstados(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestActualizarEstados_IgnoraCancelados(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	v := seedCredito(t, f, "300", 1)
	_, err := f.ventas.AnularVenta(ctx, uuid.MustParse(v.ID), "supervisor")
	require.NoError(t, err)

	f.hoy = f.hoy.AddDate(0, 3, 0)
	n, err := f.creditos.ActualizarEstados(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, model.CreditoCancelado, f.credito(v.Credito.ID).Estado)
	assert.Equal(t, model.CuotaPendiente, f.credito(v.Credito.ID).Cuotas[0].Estado)
}

func TestActualizarEstados_CompletaCreditoSaldado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	v := seedCredito(t, f, "100", 1)

	// installment settled but credit aggregates left stale
	id := uuid.MustParse(v.Credito.ID)
	for qid, q := range f.store.cuotas {
		if q.CreditoID == id {
			q.MontoPagado, q.SaldoPendiente = q.Monto, decimal.Zero
			f.store.cuotas[qid] = q
		}
	}

	n, err := f.creditos.ActualizarEstados(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	c := f.credito(v.Credito.ID)
	assert.Equal(t, model.CreditoPagado, c.Estado)
	assert.True(t, c.SaldoPendiente.IsZero())
	assert.Equal(t, model.VentaPagada, f.venta(v.ID).Estado)
}

func TestCreditoLecturas_DerivanEstadoSinEscribir(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	v := seedCredito(t, f, "300", 1)
	id := uuid.MustParse(v.Credito.ID)

	f.hoy = f.hoy.AddDate(0, 2, 0)
	resp, err := f.creditos.ObtenerPorID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.CreditoVencido, resp.Estado)
	assert.Equal(t, model.CuotaVencida, resp.Cuotas[0].Estado)
	assert.Zero(t, resp.DiasRestantes)

	assert.Equal(t, model.CreditoActivo, f.credito(v.Credito.ID).Estado, "reads must not write")

	porVenta, err := f.creditos.ObtenerPorVenta(ctx, uuid.MustParse(v.ID))
	require.NoError(t, err)
	assert.Equal(t, resp.ID, porVenta.ID)

	cuota, err := f.creditos.ObtenerCuota(ctx, uuid.MustParse(resp.Cuotas[0].ID))
	require.NoError(t, err)
	assert.Positive(t, cuota.DiasVencida)
}

func TestCreditoListados(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	corto := seedCredito(t, f, "300", 1)  // due 2026-04-01
	largo := seedCredito(t, f, "300", 12) // first due 2026-04-01, ends 2027
	pagado := seedCredito(t, f, "100", 1)
	_, err := f.pagos.RegistrarPago(ctx, "cajero1", pagar(pagado, 0, "100"))
	require.NoError(t, err)

	activos, err := f.creditos.Listar(ctx, dto.CreditoFilter{})
	require.NoError(t, err)
	assert.Len(t, activos, 2)

	pagados, err := f.creditos.Listar(ctx, dto.CreditoFilter{Estado: model.CreditoPagado})
	require.NoError(t, err)
	require.Len(t, pagados, 1)
	assert.Equal(t, pagado.Credito.ID, pagados[0].ID)

	_, err = f.creditos.Listar(ctx, dto.CreditoFilter{ClienteID: "nope"})
	assert.ErrorIs(t, err, apperr.ErrValidacion)

	// 2026-03-28: both open credits have an installment due within 7 days
	f.hoy = f.hoy.AddDate(0, 0, 26)
	proximos, err := f.creditos.ListarProximosVencer(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, proximos, 2)

	_, err = f.creditos.ListarProximosVencer(ctx, 0)
	assert.ErrorIs(t, err, apperr.ErrValidacion)

	// 2026-04-05
	f.hoy = f.hoy.AddDate(0, 0, 8)
	vencidos, err := f.creditos.ListarVencidos(ctx)
	require.NoError(t, err)
	require.Len(t, vencidos, 1)
	assert.Equal(t, corto.Credito.ID, vencidos[0].ID)

	cuotas, err := f.creditos.ListarCuotasVencidas(ctx)
	require.NoError(t, err)
	assert.Len(t, cuotas, 2)

	todas, err := f.creditos.ListarCuotas(ctx, uuid.MustParse(largo.Credito.ID))
	require.NoError(t, err)
	assert.Len(t, todas, 12)
}

func TestListarPagos_CreditoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.creditos.ListarPagos(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNoEncontrado)
}

func TestCreditoCancelado_CuotasNoVencen(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	v := seedCredito(t, f, "300", 3)
	_, err := f.pagos.RegistrarPago(ctx, "cajero1", pagar(v, 0, "40"))
	require.NoError(t, err)
	_, err = f.ventas.AnularVenta(ctx, uuid.MustParse(v.ID), "supervisor")
	require.NoError(t, err)

	f.hoy = f.hoy.AddDate(0, 6, 0)
	id := uuid.MustParse(v.Credito.ID)

	resp, err := f.creditos.ObtenerPorID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.CreditoCancelado, resp.Estado)
	require.Len(t, resp.Cuotas, 3)
	assert.Equal(t, model.CuotaParcial, resp.Cuotas[0].Estado)
	for _, q := range resp.Cuotas[1:] {
		assert.Equal(t, model.CuotaPendiente, q.Estado)
	}
	for _, q := range resp.Cuotas {
		assert.Zero(t, q.DiasVencida)
	}

	cuotas, err := f.creditos.ListarCuotas(ctx, id)
	require.NoError(t, err)
	for _, q := range cuotas {
		assert.NotEqual(t, model.CuotaVencida, q.Estado)
	}

	cuota, err := f.creditos.ObtenerCuota(ctx, uuid.MustParse(resp.Cuotas[1].ID))
	require.NoError(t, err)
	assert.Equal(t, model.CuotaPendiente, cuota.Estado)
	assert.Zero(t, cuota.DiasVencida)

	vencidas, err := f.creditos.ListarCuotasVencidas(ctx)
	require.NoError(t, err)
	assert.Empty(t, vencidas)

	_, err = f.creditos.ListarCuotas(ctx, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNoEncontrado)
}
