package worker

// dlq.go
// Jobs that still fail after their retries are parked in a Redis list per
// source queue (dlq:{queue}) until an operator lists or requeues them.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// Queues lists every queue consumed by the pool, in BRPOP priority order.
var Queues = []string{QueueComprobante, QueueEmail, QueueAlertaStock}

// DLQEntry keeps the original envelope so the job can be requeued as is.
type DLQEntry struct {
	Queue     string    `json:"queue"`
	Job       Job       `json:"job"`
	Motivo    string    `json:"motivo"`
	Intentos  int       `json:"intentos"`
	FallidoEn time.Time `json:"fallido_en"`
}

// SendToDLQ parks a failed job. Newest entries sit at the head of the list.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, job Job, motivo string, intentos int) error {
	data, err := json.Marshal(DLQEntry{
		Queue:     queue,
		Job:       job,
		Motivo:    motivo,
		Intentos:  intentos,
		FallidoEn: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("dlq: marshal: %w", err)
	}
	if err := rdb.LPush(ctx, DLQPrefix+queue, data).Err(); err != nil {
		return fmt.Errorf("dlq: push %s: %w", queue, err)
	}
	log.Warn().
		Str("queue", queue).
		Str("job_type", job.Type).
		Str("motivo", motivo).
		Int("intentos", intentos).
		Msg("dlq: job moved to dead letter queue")
	return nil
}

// DLQLength returns the number of parked jobs of a queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}

// ListDLQ returns up to limit entries, newest first, without removing them.
// Entries that cannot be decoded are skipped.
func ListDLQ(ctx context.Context, rdb *redis.Client, queue string, limit int64) ([]DLQEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	raws, err := rdb.LRange(ctx, DLQPrefix+queue, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]DLQEntry, 0, len(raws))
	for _, raw := range raws {
		var e DLQEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			log.Warn().Err(err).Str("queue", queue).Msg("dlq: undecodable entry")
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// RequeueDLQ moves up to max entries, oldest first, back onto their source
// queue. It returns how many were requeued.
func RequeueDLQ(ctx context.Context, rdb *redis.Client, queue string, max int) (int, error) {
	n := 0
	for n < max {
		raw, err := rdb.RPop(ctx, DLQPrefix+queue).Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return n, err
		}
		var e DLQEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			log.Warn().Err(err).Str("queue", queue).Msg("dlq: dropping undecodable entry")
			continue
		}
		encoded, err := json.Marshal(e.Job)
		if err != nil {
			return n, err
		}
		if err := rdb.LPush(ctx, e.Queue, encoded).Err(); err != nil {
			// put it back where it was
			_ = rdb.RPush(ctx, DLQPrefix+queue, raw).Err()
			return n, err
		}
		n++
	}
	return n, nil
}
