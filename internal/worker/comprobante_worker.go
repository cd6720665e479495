package worker

// comprobante_worker.go
// Renders the PDF receipt of a committed sale and, when the customer left an
// e-mail address, enqueues the delivery job.

import (
	"context"
	"encoding/json"
	"fmt"

	"sneakerfever/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ComprobanteJobPayload is the job envelope sent to QueueComprobante.
type ComprobanteJobPayload struct {
	VentaID      string  `json:"venta_id"`
	ClienteEmail *string `json:"cliente_email,omitempty"`
}

// VentaLoader is satisfied by repository.VentaRepository.
type VentaLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
}

// PDFRenderer writes the receipt and returns the file path.
type PDFRenderer func(venta *model.Venta, storagePath, negocio string) (string, error)

type ComprobanteWorker struct {
	ventas      VentaLoader
	render      PDFRenderer
	dispatcher  *Dispatcher
	storagePath string
	negocio     string
}

func NewComprobanteWorker(ventas VentaLoader, render PDFRenderer, dispatcher *Dispatcher, storagePath, negocio string) *ComprobanteWorker {
	return &ComprobanteWorker{
		ventas:      ventas,
		render:      render,
		dispatcher:  dispatcher,
		storagePath: storagePath,
		negocio:     negocio,
	}
}

func (w *ComprobanteWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ComprobanteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("comprobante_worker: invalid payload")
		return
	}
	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("comprobante_worker: invalid venta_id")
		return
	}

	venta, err := w.ventas.FindByID(ctx, ventaID)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("comprobante_worker: venta not found")
		return
	}

	pdfPath, err := w.render(venta, w.storagePath, w.negocio)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("comprobante_worker: PDF generation failed")
		return
	}
	log.Info().Str("venta_id", payload.VentaID).Str("pdf", pdfPath).Msg("comprobante_worker: PDF generated")

	if payload.ClienteEmail == nil || *payload.ClienteEmail == "" || w.dispatcher == nil {
		return
	}
	email := EmailJobPayload{
		ToEmail: *payload.ClienteEmail,
		Subject: fmt.Sprintf("%s - Comprobante %s", w.negocio, venta.ComprobanteCompleto()),
		Body:    fmt.Sprintf("Gracias por su compra. Adjuntamos su comprobante %s por un total de S/ %s.", venta.ComprobanteCompleto(), venta.Total.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, email); err != nil {
		log.Warn().Err(err).Str("venta_id", payload.VentaID).Msg("comprobante_worker: could not enqueue email")
	}
}
