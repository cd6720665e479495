package service

import (
	"context"
	"time"

	"sneakerfever/internal/apperr"
	"sneakerfever/internal/dto"
	"sneakerfever/internal/model"
	"sneakerfever/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const loteVencimientosDefault = 200

type CreditoService interface {
	// GuardarTx persists a credit produced by GenerarPlanCuotas.
	GuardarTx(ctx context.Context, tx *gorm.DB, c *model.CreditoVenta) error
	// CancelarPorVentaTx cancels the open credit of a sale, if it has one.
	// A PAGADO credit is left as is.
	CancelarPorVentaTx(ctx context.Context, tx *gorm.DB, ventaID uuid.UUID) error

	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CreditoResponse, error)
	ObtenerPorVenta(ctx context.Context, ventaID uuid.UUID) (*dto.CreditoResponse, error)
	Listar(ctx context.Context, filter dto.CreditoFilter) ([]dto.CreditoResponse, error)
	ListarVencidos(ctx context.Context) ([]dto.CreditoResponse, error)
	ListarProximosVencer(ctx context.Context, dias int) ([]dto.CreditoResponse, error)
	ListarCuotas(ctx context.Context, creditoID uuid.UUID) ([]dto.CuotaResponse, error)
	ObtenerCuota(ctx context.Context, id uuid.UUID) (*dto.CuotaResponse, error)
	ListarCuotasVencidas(ctx context.Context) ([]dto.CuotaResponse, error)
	ListarPagos(ctx context.Context, creditoID uuid.UUID) ([]dto.PagoResponse, error)

	// ActualizarEstados recomputes installment and credit states of every
	// open credit. Returns how many credits or installments changed.
	ActualizarEstados(ctx context.Context) (int, error)
}

type creditoService struct {
	db        *gorm.DB
	repo      repository.CreditoRepository
	ventaRepo repository.VentaRepository
	lote      int
	now       func() time.Time
}

func NewCreditoService(db *gorm.DB, repo repository.CreditoRepository, ventaRepo repository.VentaRepository, lote int) CreditoService {
	if lote <= 0 {
		lote = loteVencimientosDefault
	}
	return &creditoService{db: db, repo: repo, ventaRepo: ventaRepo, lote: lote, now: time.Now}
}

func (s *creditoService) GuardarTx(ctx context.Context, tx *gorm.DB, c *model.CreditoVenta) error {
	return s.repo.CreateTx(ctx, tx, c)
}

func (s *creditoService) CancelarPorVentaTx(ctx context.Context, tx *gorm.DB, ventaID uuid.UUID) error {
	c, err := s.repo.FindByVentaIDForUpdateTx(ctx, tx, ventaID)
	if err != nil || c == nil {
		return err
	}
	if !c.Cancelar() {
		return nil
	}
	return s.repo.UpdateTx(ctx, tx, c)
}

func (s *creditoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CreditoResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := creditoToResponse(c, s.now())
	return &resp, nil
}

func (s *creditoService) ObtenerPorVenta(ctx context.Context, ventaID uuid.UUID) (*dto.CreditoResponse, error) {
	c, err := s.repo.FindByVentaID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	resp := creditoToResponse(c, s.now())
	return &resp, nil
}

func (s *creditoService) Listar(ctx context.Context, filter dto.CreditoFilter) ([]dto.CreditoResponse, error) {
	var (
		creditos []model.CreditoVenta
		err      error
	)
	if filter.ClienteID != "" {
		id, perr := uuid.Parse(filter.ClienteID)
		if perr != nil {
			return nil, apperr.Validacion("cliente_id invalido")
		}
		creditos, err = s.repo.ListByCliente(ctx, id)
	} else {
		estado := filter.Estado
		if estado == "" {
			estado = model.CreditoActivo
		}
		creditos, err = s.repo.ListByEstado(ctx, estado)
	}
	if err != nil {
		return nil, err
	}
	out := s.creditosToResponse(creditos)
	if filter.ClienteID != "" && filter.Estado != "" {
		filtrados := out[:0]
		for _, c := range out {
			if c.Estado == filter.Estado {
				filtrados = append(filtrados, c)
			}
		}
		out = filtrados
	}
	return out, nil
}

func (s *creditoService) ListarVencidos(ctx context.Context) ([]dto.CreditoResponse, error) {
	creditos, err := s.repo.ListVencidos(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return s.creditosToResponse(creditos), nil
}

func (s *creditoService) ListarProximosVencer(ctx context.Context, dias int) ([]dto.CreditoResponse, error) {
	if dias < 1 {
		return nil, apperr.Validacion("dias debe ser mayor a cero")
	}
	hoy := s.now()
	creditos, err := s.repo.ListProximosVencer(ctx, hoy, hoy.AddDate(0, 0, dias))
	if err != nil {
		return nil, err
	}
	return s.creditosToResponse(creditos), nil
}

func (s *creditoService) ListarCuotas(ctx context.Context, creditoID uuid.UUID) ([]dto.CuotaResponse, error) {
	c, err := s.repo.FindByID(ctx, creditoID)
	if err != nil {
		return nil, err
	}
	return cuotasToResponse(c.Cuotas, c.Estado, s.now()), nil
}

func (s *creditoService) ObtenerCuota(ctx context.Context, id uuid.UUID) (*dto.CuotaResponse, error) {
	q, err := s.repo.FindCuotaByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, q.CreditoID)
	if err != nil {
		return nil, err
	}
	resp := cuotaToResponse(*q, c.Estado, s.now())
	return &resp, nil
}

func (s *creditoService) ListarCuotasVencidas(ctx context.Context) ([]dto.CuotaResponse, error) {
	cuotas, err := s.repo.ListCuotasVencidas(ctx, s.now())
	if err != nil {
		return nil, err
	}
	// only open credits are listed here
	return cuotasToResponse(cuotas, model.CreditoActivo, s.now()), nil
}

func (s *creditoService) ListarPagos(ctx context.Context, creditoID uuid.UUID) ([]dto.PagoResponse, error) {
	if _, err := s.repo.FindByID(ctx, creditoID); err != nil {
		return nil, err
	}
	pagos, err := s.repo.ListPagos(ctx, creditoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PagoResponse, 0, len(pagos))
	for i := range pagos {
		out = append(out, pagoToResponse(&pagos[i]))
	}
	return out, nil
}

func (s *creditoService) ActualizarEstados(ctx context.Context) (int, error) {
	hoy := s.now()
	cambios := 0
	despues := uuid.Nil
	for {
		var lote []model.CreditoVenta
		err := runTx(ctx, s.db, func(tx *gorm.DB) error {
			var err error
			lote, err = s.repo.ListPendientesTx(ctx, tx, despues, s.lote)
			if err != nil {
				return err
			}
			for i := range lote {
				n, err := s.recalcularTx(ctx, tx, &lote[i], hoy)
				if err != nil {
					return err
				}
				cambios += n
			}
			return nil
		})
		if err != nil {
			return cambios, err
		}
		if len(lote) < s.lote {
			return cambios, nil
		}
		despues = lote[len(lote)-1].ID
	}
}

// recalcularTx refreshes one locked credit and writes only what changed.
func (s *creditoService) recalcularTx(ctx context.Context, tx *gorm.DB, c *model.CreditoVenta, hoy time.Time) (int, error) {
	cambios := 0
	for i := range c.Cuotas {
		q := &c.Cuotas[i]
		antes := q.Estado
		q.RecalcularEstado(hoy)
		if q.Estado != antes {
			if err := s.repo.UpdateCuotaTx(ctx, tx, q); err != nil {
				return cambios, err
			}
			cambios++
		}
	}

	estadoAntes, pagadoAntes, saldoAntes := c.Estado, c.MontoPagado, c.SaldoPendiente
	c.RecalcularMontos()
	c.RecalcularEstado(hoy)
	if c.Estado == estadoAntes && c.MontoPagado.Equal(pagadoAntes) && c.SaldoPendiente.Equal(saldoAntes) {
		return cambios, nil
	}
	if err := s.repo.UpdateTx(ctx, tx, c); err != nil {
		return cambios, err
	}
	if c.Estado == model.CreditoPagado {
		if err := s.ventaRepo.UpdateEstadoTx(ctx, tx, c.VentaID, model.VentaPagada); err != nil {
			return cambios, err
		}
	}
	log.Debug().Str("credito_id", c.ID.String()).Str("de", estadoAntes).Str("a", c.Estado).Msg("credito recalculado")
	return cambios + 1, nil
}

func (s *creditoService) creditosToResponse(creditos []model.CreditoVenta) []dto.CreditoResponse {
	hoy := s.now()
	out := make([]dto.CreditoResponse, 0, len(creditos))
	for i := range creditos {
		out = append(out, creditoToResponse(&creditos[i], hoy))
	}
	return out
}
