package service

import (
	"context"
	"fmt"
	"time"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/dto"
	"sneakerfever/internal/model"
	"sneakerfever/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PagoService applies installment payments and cascades the resulting state
// to the credit and the sale.
type PagoService interface {
	RegistrarPago(ctx context.Context, usuario string, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error)
}

type pagoService struct {
	db          *gorm.DB
	creditoRepo repository.CreditoRepository
	ventaRepo   repository.VentaRepository
	now         func() time.Time
}

func NewPagoService(db *gorm.DB, creditoRepo repository.CreditoRepository, ventaRepo repository.VentaRepository) PagoService {
	return &pagoService{db: db, creditoRepo: creditoRepo, ventaRepo: ventaRepo, now: time.Now}
}

// ── RegistrarPago ─────────────────────────────────────────────────────────────
// One transaction, credit row locked:
//   1. Validate credit/installment and amount against the stored balance
//   2. Insert the payment
//   3. Update the installment (paid, balance, state, payment date)
//   4. Recompute credit aggregates and state
//   5. Credit PAGADO → sale PAGADA

func (s *pagoService) RegistrarPago(ctx context.Context, usuario string, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error) {
	creditoID, err := uuid.Parse(req.CreditoID)
	if err != nil {
		return nil, apperr.Validacion("credito_id invalido")
	}
	cuotaID, err := uuid.Parse(req.CuotaID)
	if err != nil {
		return nil, apperr.Validacion("cuota_id invalido")
	}
	if err := validarMonto(req.Monto, "monto"); err != nil {
		return nil, err
	}

	hoy := s.now()
	var (
		pago    *model.RegistroPago
		credito *model.CreditoVenta
		cuota   *model.Cuota
	)
	err = runTx(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		credito, err = s.creditoRepo.FindByIDForUpdateTx(ctx, tx, creditoID)
		if err != nil {
			return err
		}
		if credito.Estado == model.CreditoCancelado {
			return apperr.Conflicto("el credito %s esta cancelado", credito.ID)
		}

		for i := range credito.Cuotas {
			if credito.Cuotas[i].ID == cuotaID {
				cuota = &credito.Cuotas[i]
				break
			}
		}
		if cuota == nil {
			return apperr.NoEncontrado("cuota %s del credito %s", cuotaID, creditoID)
		}
		if cuota.Saldada() {
			return fmt.Errorf("%w: cuota %d", apperr.ErrCuotaPagada, cuota.NumeroCuota)
		}
		if req.Monto.GreaterThan(cuota.SaldoPendiente) {
			return fmt.Errorf("%w: monto %s, saldo de la cuota %d: %s", apperr.ErrMontoExcedeSaldo,
				req.Monto.StringFixed(2), cuota.NumeroCuota, cuota.SaldoPendiente.StringFixed(2))
		}

		pago = &model.RegistroPago{
			ID:            uuid.New(),
			CreditoID:     credito.ID,
			CuotaID:       cuota.ID,
			Monto:         req.Monto,
			MetodoPago:    req.MetodoPago,
			Referencia:    req.Referencia,
			Observaciones: req.Observaciones,
			Usuario:       usuario,
			FechaPago:     hoy,
			CreatedAt:     hoy,
		}
		if err := s.creditoRepo.CreatePagoTx(ctx, tx, pago); err != nil {
			return err
		}

		cuota.AplicarPago(req.Monto, hoy)
		if err := s.creditoRepo.UpdateCuotaTx(ctx, tx, cuota); err != nil {
			return err
		}

		credito.RecalcularMontos()
		credito.RecalcularEstado(hoy)
		if err := s.creditoRepo.UpdateTx(ctx, tx, credito); err != nil {
			return err
		}

		if credito.Estado == model.CreditoPagado {
			return s.ventaRepo.UpdateEstadoTx(ctx, tx, credito.VentaID, model.VentaPagada)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("credito_id", credito.ID.String()).
		Int("cuota", cuota.NumeroCuota).
		Str("monto", req.Monto.StringFixed(2)).
		Str("estado_credito", credito.Estado).
		Str("usuario", usuario).
		Msg("pago registrado")

	resp := pagoToResponse(pago)
	cuotaResp := cuotaToResponse(*cuota, credito.Estado, hoy)
	creditoResp := creditoToResponse(credito, hoy)
	creditoResp.Cuotas = nil
	resp.Cuota = &cuotaResp
	resp.Credito = &creditoResp
	return &resp, nil
}
