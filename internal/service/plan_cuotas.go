package service

import (
	"time"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/dto"
	"sneakerfever/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxCuotas = 120

var cien = decimal.NewFromInt(100)

// TerminosCredito are the financing parameters of a credit sale.
type TerminosCredito struct {
	MontoInicial      decimal.Decimal
	InteresPorcentaje decimal.Decimal
	NumeroCuotas      int
	Intervalo         string
	FechaInicio       time.Time
}

// TerminosDesdeRequest builds the terms; an empty fecha_inicio means the sale date.
func TerminosDesdeRequest(req *dto.CreditoRequest, fechaVenta time.Time) (TerminosCredito, error) {
	if req == nil {
		return TerminosCredito{}, apperr.Validacion("las ventas a CREDITO requieren los datos del credito")
	}
	inicio := fechaVenta
	if req.FechaInicio != "" {
		f, err := parseFecha(req.FechaInicio)
		if err != nil {
			return TerminosCredito{}, apperr.Validacion("fecha_inicio invalida: %s", req.FechaInicio)
		}
		inicio = f
	}
	return TerminosCredito{
		MontoInicial:      req.MontoInicial,
		InteresPorcentaje: req.InteresPorcentaje,
		NumeroCuotas:      req.NumeroCuotas,
		Intervalo:         req.IntervaloCuotas,
		FechaInicio:       inicio,
	}, nil
}

// GenerarPlanCuotas builds the credit and its installments for a sale of
// montoTotal. It does not persist anything.
//
//	base        = montoTotal - inicial
//	interes     = round2(base * pct / 100)
//	financiado  = base + interes
//	cuota       = round2(financiado / n); the last one absorbs the remainder
//	vencimiento = inicio + i*dias;  fin = inicio + n*dias
func GenerarPlanCuotas(ventaID uuid.UUID, montoTotal decimal.Decimal, t TerminosCredito) (*model.CreditoVenta, error) {
	dias, ok := model.DiasIntervalo(t.Intervalo)
	if !ok {
		return nil, apperr.Validacion("intervalo de cuotas %q invalido", t.Intervalo)
	}
	if t.NumeroCuotas < 1 || t.NumeroCuotas > maxCuotas {
		return nil, apperr.Validacion("numero de cuotas debe estar entre 1 y %d", maxCuotas)
	}
	if t.InteresPorcentaje.IsNegative() || t.InteresPorcentaje.GreaterThan(cien) {
		return nil, apperr.Validacion("el interes debe estar entre 0 y 100")
	}
	if t.MontoInicial.IsNegative() {
		return nil, apperr.Validacion("el monto inicial no puede ser negativo")
	}
	if !t.MontoInicial.LessThan(montoTotal) {
		return nil, apperr.Validacion("el monto inicial (%s) debe ser menor al total (%s)",
			t.MontoInicial.StringFixed(2), montoTotal.StringFixed(2))
	}
	if t.FechaInicio.IsZero() {
		return nil, apperr.Validacion("fecha de inicio requerida")
	}

	base := montoTotal.Sub(t.MontoInicial)
	interes := base.Mul(t.InteresPorcentaje).Div(cien).Round(2)
	financiado := base.Add(interes)

	n := t.NumeroCuotas
	porCuota := financiado.DivRound(decimal.NewFromInt(int64(n)), 2)
	ultima := financiado.Sub(porCuota.Mul(decimal.NewFromInt(int64(n - 1))))
	if !porCuota.IsPositive() || !ultima.IsPositive() {
		return nil, apperr.Validacion("el monto financiado %s no alcanza para %d cuotas", financiado.StringFixed(2), n)
	}

	inicio := model.Dia(t.FechaInicio)
	credito := &model.CreditoVenta{
		ID:                uuid.New(),
		VentaID:           ventaID,
		MontoTotal:        montoTotal,
		MontoInicial:      t.MontoInicial,
		InteresPorcentaje: t.InteresPorcentaje,
		MontoInteres:      interes,
		MontoFinanciado:   financiado,
		NumeroCuotas:      n,
		IntervaloCuotas:   t.Intervalo,
		FechaInicio:       inicio,
		FechaFin:          inicio.AddDate(0, 0, n*dias),
		MontoPagado:       t.MontoInicial,
		SaldoPendiente:    financiado,
		Estado:            model.CreditoActivo,
		Cuotas:            make([]model.Cuota, 0, n),
	}
	for i := 1; i <= n; i++ {
		monto := porCuota
		if i == n {
			monto = ultima
		}
		credito.Cuotas = append(credito.Cuotas, model.Cuota{
			ID:               uuid.New(),
			CreditoID:        credito.ID,
			NumeroCuota:      i,
			Monto:            monto,
			MontoPagado:      decimal.Zero,
			SaldoPendiente:   monto,
			FechaVencimiento: inicio.AddDate(0, 0, i*dias),
			Estado:           model.CuotaPendiente,
		})
	}
	return credito, nil
}
