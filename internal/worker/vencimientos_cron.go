package worker

// vencimientos_cron.go
// Background goroutine that periodically recomputes installment and credit
// states so that overdue status does not depend on the next payment.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// EstadoActualizador is satisfied by service.CreditoService.
type EstadoActualizador interface {
	ActualizarEstados(ctx context.Context) (int, error)
}

type VencimientosCronConfig struct {
	Actualizador EstadoActualizador
	Intervalo    time.Duration
}

// StartVencimientosCron runs one sweep immediately and then every Intervalo,
// until ctx is cancelled.
func StartVencimientosCron(ctx context.Context, cfg VencimientosCronConfig) {
	if cfg.Intervalo <= 0 {
		cfg.Intervalo = time.Hour
	}
	go func() {
		ticker := time.NewTicker(cfg.Intervalo)
		defer ticker.Stop()

		log.Info().Dur("intervalo", cfg.Intervalo).Msg("vencimientos_cron: started")
		runVencimientos(ctx, cfg.Actualizador)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("vencimientos_cron: shutting down")
				return
			case <-ticker.C:
				runVencimientos(ctx, cfg.Actualizador)
			}
		}
	}()
}

func runVencimientos(ctx context.Context, a EstadoActualizador) {
	n, err := a.ActualizarEstados(ctx)
	if err != nil {
		log.Error().Err(err).Msg("vencimientos_cron: sweep failed")
		return
	}
	if n > 0 {
		log.Info().Int("actualizados", n).Msg("vencimientos_cron: estados actualizados")
	}
}
