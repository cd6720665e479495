package worker

// alerta_stock_worker.go
// Handles low-stock notices emitted after sales. A product is notified at
// most once per alertaTTL; the mark lives in Redis.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	alertaKeyPrefix = "alerta_stock:"
	alertaTTL       = 6 * time.Hour
)

type AlertaStockJobPayload struct {
	ProductoID  string `json:"producto_id"`
	Codigo      string `json:"codigo"`
	Nombre      string `json:"nombre"`
	StockActual int    `json:"stock_actual"`
	StockMinimo int    `json:"stock_minimo"`
}

type AlertaStockWorker struct {
	rdb        *redis.Client
	dispatcher *Dispatcher
	destino    string // empty = log only
}

func NewAlertaStockWorker(rdb *redis.Client, dispatcher *Dispatcher, destino string) *AlertaStockWorker {
	return &AlertaStockWorker{rdb: rdb, dispatcher: dispatcher, destino: destino}
}

func (w *AlertaStockWorker) Process(ctx context.Context, raw json.RawMessage) {
	var p AlertaStockJobPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Error().Err(err).Msg("alerta_stock_worker: invalid payload")
		return
	}

	nueva, err := w.rdb.SetNX(ctx, alertaKeyPrefix+p.ProductoID, p.StockActual, alertaTTL).Result()
	if err != nil {
		log.Warn().Err(err).Str("producto_id", p.ProductoID).Msg("alerta_stock_worker: redis dedupe failed")
		nueva = true
	}
	if !nueva {
		return
	}

	log.Warn().
		Str("producto_id", p.ProductoID).
		Str("codigo", p.Codigo).
		Int("stock", p.StockActual).
		Int("stock_minimo", p.StockMinimo).
		Msg("stock bajo el minimo")

	if w.destino == "" || w.dispatcher == nil {
		return
	}
	email := EmailJobPayload{
		ToEmail: w.destino,
		Subject: fmt.Sprintf("Stock bajo: %s (%s)", p.Nombre, p.Codigo),
		Body:    fmt.Sprintf("El producto %s tiene %d unidades (minimo %d).", p.Nombre, p.StockActual, p.StockMinimo),
	}
	if err := w.dispatcher.EnqueueEmail(ctx, email); err != nil {
		log.Warn().Err(err).Str("producto_id", p.ProductoID).Msg("alerta_stock_worker: could not enqueue email")
	}
}
