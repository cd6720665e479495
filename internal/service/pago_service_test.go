package service

import (
	"context"
	"testing"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/dto"
	"sneakerfever/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCredito sells one unit at precio on credit with no down payment and no
// interest, so every installment is precio/n.
func seedCredito(t *testing.T, f *fixture, precio string, n int) *dto.VentaResponse {
	t.Helper()
	cli := f.seedCliente("Rosa Huaman", "40001122")
	p := f.seedProducto("Producto "+uuid.NewString()[:8], precio, 5, 0)

	req := ventaContado(cli.ID, linea(p, 1))
	req.FormaPago = model.FormaPagoCredito
	req.Credito = &dto.CreditoRequest{
		MontoInicial:      dec("0"),
		InteresPorcentaje: dec("0"),
		NumeroCuotas:      n,
		IntervaloCuotas:   model.IntervaloMensual,
	}
	v, err := f.ventas.CrearVenta(context.Background(), "cajero1", req)
	require.NoError(t, err)
	require.NotNil(t, v.Credito)
	return v
}

func pagar(v *dto.VentaResponse, cuota int, monto string) dto.RegistrarPagoRequest {
	return dto.RegistrarPagoRequest{
		CreditoID:  v.Credito.ID,
		CuotaID:    v.Credito.Cuotas[cuota].ID,
		Monto:      dec(monto),
		MetodoPago: model.MetodoYape,
	}
}

func TestRegistrarPago_MontoMayorAlSaldo(t *testing.T) {
	f := newFixture()
	v := seedCredito(t, f, "150", 3)

	_, err := f.pagos.RegistrarPago(context.Background(), "cajero1", pagar(v, 0, "50.01"))
	assert.ErrorIs(t, err, apperr.ErrMontoExcedeSaldo)

	c := f.credito(v.Credito.ID)
	assert.True(t, c.Cuotas[0].MontoPagado.IsZero())
	assert.Empty(t, f.store.pagos)
}

func TestRegistrarPago_SaldaCuota(t *testing.T) {
	f := newFixture()
	v := seedCredito(t, f, "150", 3)

	resp, err := f.pagos.RegistrarPago(context.Background(), "cajero1", pagar(v, 0, "50.00"))
	require.NoError(t, err)

	require.NotNil(t, resp.Cuota)
	assert.Equal(t, model.CuotaPagada, resp.Cuota.Estado)
	require.NotNil(t, resp.Cuota.FechaPago)
	assert.Equal(t, "2026-03-02", *resp.Cuota.FechaPago)
	require.NotNil(t, resp.Credito)
	assert.Equal(t, "100.00", resp.Credito.SaldoPendiente.StringFixed(2))
	assert.Equal(t, "50.00", resp.Credito.MontoPagado.StringFixed(2))
	assert.Equal(t, model.CreditoActivo, resp.Credito.Estado)
	assert.Nil(t, resp.Credito.Cuotas)

	c := f.credito(v.Credito.ID)
	assert.Equal(t, model.CuotaPagada, c.Cuotas[0].Estado)
	assert.True(t, c.SaldoPendiente.Equal(dec("100")))
	assert.Equal(t, model.VentaPendiente, f.venta(v.ID).Estado)
	require.Len(t, f.store.pagos, 1)
	assert.Equal(t, "cajero1", f.store.pagos[0].Usuario)
}

func TestRegistrarPago_PagosParcialesHastaCancelarElCredito(t *testing.T) {
	f := newFixture()
	v := seedCredito(t, f, "100", 2)
	ctx := context.Background()

	r, err := f.pagos.RegistrarPago(ctx, "cajero1", pagar(v, 0, "20"))
	require.NoError(t, err)
	assert.Equal(t, model.CuotaParcial, r.Cuota.Estado)
	assert.Nil(t, r.Cuota.FechaPago)

	r, err = f.pagos.RegistrarPago(ctx, "cajero1", pagar(v, 0, "30"))
	require.NoError(t, err)
	assert.Equal(t, model.CuotaPagada, r.Cuota.Estado)

	r, err = f.pagos.RegistrarPago(ctx, "cajero1", pagar(v, 1, "50"))
	require.NoError(t, err)
	assert.Equal(t, model.CreditoPagado, r.Credito.Estado)
	assert.True(t, r.Credito.SaldoPendiente.IsZero())
	assert.Equal(t, "100", r.Credito.PorcentajePagado.String())

	assert.Equal(t, model.VentaPagada, f.venta(v.ID).Estado)

	c := f.credito(v.Credito.ID)
	assert.Equal(t, model.CreditoPagado, c.Estado)
	// amounts stay consistent with the installments
	pagadoCuotas := c.Cuotas[0].MontoPagado.Add(c.Cuotas[1].MontoPagado)
	assert.True(t, pagadoCuotas.Add(c.SaldoPendiente).Equal(c.MontoFinanciado))
	assert.True(t, c.MontoPagado.Sub(c.MontoInicial).Equal(pagadoCuotas))

	pagos, err := f.creditos.ListarPagos(ctx, uuid.MustParse(v.Credito.ID))
	require.NoError(t, err)
	require.Len(t, pagos, 3)
	assert.Equal(t, "50", pagos[0].Monto.String(), "newest first")
}

func TestRegistrarPago_CuotaYaPagada(t *testing.T) {
	f := newFixture()
	v := seedCredito(t, f, "150", 3)
	ctx := context.Background()

	_, err := f.pagos.RegistrarPago(ctx, "cajero1", pagar(v, 1, "50"))
	require.NoError(t, err)

	_, err = f.pagos.RegistrarPago(ctx, "cajero1", pagar(v, 1, "1"))
	assert.ErrorIs(t, err, apperr.ErrCuotaPagada)
	assert.Len(t, f.store.pagos, 1)
}

func TestRegistrarPago_CreditoCancelado(t *testing.T) {
	f := newFixture()
	v := seedCredito(t, f, "150", 3)
	ctx := context.Background()

	_, err := f.ventas.AnularVenta(ctx, uuid.MustParse(v.ID), "supervisor")
	require.NoError(t, err)

	_, err = f.pagos.RegistrarPago(ctx, "cajero1", pagar(v, 0, "10"))
	assert.ErrorIs(t, err, apperr.ErrConflicto)
}

func TestRegistrarPago_Validaciones(t *testing.T) {
	f := newFixture()
	v := seedCredito(t, f, "150", 3)
	otra := seedCredito(t, f, "90", 3)
	ctx := context.Background()

	casos := map[string]struct {
		req  dto.RegistrarPagoRequest
		want error
	}{
		"monto cero":       {pagar(v, 0, "0"), apperr.ErrValidacion},
		"monto negativo":   {pagar(v, 0, "-5"), apperr.ErrValidacion},
		"tres decimales":   {pagar(v, 0, "10.005"), apperr.ErrValidacion},
		"credito invalido": {dto.RegistrarPagoRequest{CreditoID: "x", CuotaID: v.Credito.Cuotas[0].ID, Monto: dec("1")}, apperr.ErrValidacion},
		"cuota invalida":   {dto.RegistrarPagoRequest{CreditoID: v.Credito.ID, CuotaID: "x", Monto: dec("1")}, apperr.ErrValidacion},
		"credito inexistente": {dto.RegistrarPagoRequest{
			CreditoID: uuid.NewString(), CuotaID: v.Credito.Cuotas[0].ID, Monto: dec("1"),
		}, apperr.ErrNoEncontrado},
		"cuota de otro credito": {dto.RegistrarPagoRequest{
			CreditoID: v.Credito.ID, CuotaID: otra.Credito.Cuotas[0].ID, Monto: dec("1"),
		}, apperr.ErrNoEncontrado},
	}
	for nombre, tc := range casos {
		t.Run(nombre, func(t *testing.T) {
			_, err := f.pagos.RegistrarPago(ctx, "cajero1", tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.store.pagos)
}

func TestRegistrarPago_CuotaVencidaSigueVencidaConPagoParcial(t *testing.T) {
	f := newFixture()
	v := seedCredito(t, f, "150", 3)

	// first installment due 2026-04-01
	f.hoy = f.hoy.AddDate(0, 1, 5)

	r, err := f.pagos.RegistrarPago(context.Background(), "cajero1", pagar(v, 0, "10"))
	require.NoError(t, err)
	assert.Equal(t, model.CuotaVencida, r.Cuota.Estado)
	assert.Positive(t, r.Cuota.DiasVencida)
	assert.Equal(t, model.CreditoActivo, r.Credito.Estado, "credit end date not reached")
}
