// cmd/dlq/main.go: Inspecciona o reencola la dead letter queue de los workers.
// Uso: go run ./cmd/dlq [-queue jobs:email] [-limit 20] [-requeue 0]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"sneakerfever/internal/config"
	"sneakerfever/internal/infra"
	"sneakerfever/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	queue := flag.String("queue", "", "source queue; empty = all")
	limit := flag.Int64("limit", 20, "entries to print per queue")
	requeue := flag.Int("requeue", 0, "move up to N entries back to their queue")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	ctx := context.Background()
	rdb, err := infra.NewRedis(ctx, cfg.RedisURL, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	defer rdb.Close()

	queues := worker.Queues
	if *queue != "" {
		queues = []string{*queue}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, q := range queues {
		if *requeue > 0 {
			n, err := worker.RequeueDLQ(ctx, rdb, q, *requeue)
			if err != nil {
				log.Error().Err(err).Str("queue", q).Int("requeued", n).Msg("requeue interrumpido")
				continue
			}
			log.Info().Str("queue", q).Int("requeued", n).Msg("reencolados")
			continue
		}
		total, err := worker.DLQLength(ctx, rdb, q)
		if err != nil {
			log.Fatal().Err(err).Str("queue", q).Msg("dlq length")
		}
		entries, err := worker.ListDLQ(ctx, rdb, q, *limit)
		if err != nil {
			log.Fatal().Err(err).Str("queue", q).Msg("dlq list")
		}
		log.Info().Str("queue", q).Int64("total", total).Msg("dead letter queue")
		for _, e := range entries {
			_ = enc.Encode(e)
		}
	}
}
