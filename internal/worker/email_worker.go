package worker

// email_worker.go
// Processes email jobs from QueueEmail: receipts to customers and low-stock
// notices to the back office. SMTP calls go through a circuit breaker; jobs
// that still fail after retries land in the DLQ.

import (
	"context"
	"encoding/json"
	"time"

	"sneakerfever/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxEmailAttempts = 3

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path,omitempty"`
}

// MailSender is satisfied by *infra.Mailer.
type MailSender interface {
	SendComprobante(to, subject, body, pdfPath string) error
}

// EmailWorker processes email jobs from QueueEmail.
type EmailWorker struct {
	mailer  MailSender
	cb      *infra.CircuitBreaker
	rdb     *redis.Client
	backoff time.Duration
}

// NewEmailWorker creates an EmailWorker with the provided SMTP mailer.
func NewEmailWorker(mailer MailSender, cb *infra.CircuitBreaker, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, rdb: rdb, backoff: time.Second}
}

// Process sends an email, attaching the PDF when present.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return
	}

	attempts := 0
	err := withRetry(ctx, maxEmailAttempts, w.backoff, func(int) error {
		attempts++
		return w.cb.Execute(func() error {
			return w.mailer.SendComprobante(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
		})
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Int("attempts", attempts).Msg("email_worker: failed to send email")
		if w.rdb == nil {
			return
		}
		if dlqErr := SendToDLQ(ctx, w.rdb, QueueEmail, Job{Type: JobEmail, Payload: raw}, err.Error(), attempts); dlqErr != nil {
			log.Error().Err(dlqErr).Str("to", payload.ToEmail).Msg("email_worker: job lost")
		}
		return
	}
	log.Info().Str("to", payload.ToEmail).Str("subject", payload.Subject).Msg("email_worker: email sent")
}
