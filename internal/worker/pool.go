package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueComprobante = "jobs:comprobante"
	QueueEmail       = "jobs:email"
	QueueAlertaStock = "jobs:alerta_stock"
)

const (
	JobComprobante = "comprobante"
	JobEmail       = "email"
	JobAlertaStock = "alerta_stock"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueComprobante pushes a receipt (PDF + optional e-mail) job.
func (d *Dispatcher) EnqueueComprobante(ctx context.Context, payload ComprobanteJobPayload) error {
	return d.enqueue(ctx, QueueComprobante, JobComprobante, payload)
}

// EnqueueEmail pushes an email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, JobEmail, payload)
}

// EnqueueAlertaStock pushes a low-stock notification job.
func (d *Dispatcher) EnqueueAlertaStock(ctx context.Context, payload AlertaStockJobPayload) error {
	return d.enqueue(ctx, QueueAlertaStock, JobAlertaStock, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers groups the job processors consumed by the pool. A nil handler
// drops its jobs with a warning.
type Handlers struct {
	Comprobante *ComprobanteWorker
	Email       *EmailWorker
	AlertaStock *AlertaStockWorker
}

// popBackoff is the pause after a failed BRPOP (Redis unreachable).
var popBackoff = time.Second

// StartWorkerPool launches numWorkers goroutines consuming all queues.
// Each goroutine blocks on BRPOP and stays idle until a job arrives.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, h Handlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, h, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, h Handlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop, waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, Queues...).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || ctx.Err() != nil {
					continue // timeout or shutdown
				}
				log.Warn().Err(err).Int("worker", id).Msg("brpop failed, backing off")
				select {
				case <-ctx.Done():
				case <-time.After(popBackoff):
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, h, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, h Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	log.Debug().Str("type", job.Type).Str("queue", queue).Msg("processing job")

	switch {
	case job.Type == JobComprobante && h.Comprobante != nil:
		h.Comprobante.Process(ctx, job.Payload)
	case job.Type == JobEmail && h.Email != nil:
		h.Email.Process(ctx, job.Payload)
	case job.Type == JobAlertaStock && h.AlertaStock != nil:
		h.AlertaStock.Process(ctx, job.Payload)
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("no handler for job type, dropping")
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
func withRetry(ctx context.Context, maxAttempts int, base time.Duration, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			// base, 2*base, 4*base …
			wait := base * time.Duration(1<<uint(i-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
