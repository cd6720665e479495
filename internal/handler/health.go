package handler

import (
	"context"
	"net/http"
	"time"

	"sneakerfever/internal/infra"
	"sneakerfever/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity and reports circuit breaker states and
// dead letter queue depth. An open breaker or a non-empty DLQ does not fail
// the check.
func Health(db *gorm.DB, rdb *redis.Client, breakers ...*infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		if db == nil {
			dbStatus = "error"
		} else if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		dlq := map[string]int64{}
		if redisStatus == "connected" {
			for _, q := range worker.Queues {
				if n, err := worker.DLQLength(ctx, rdb, q); err == nil {
					dlq[q] = n
				}
			}
		}

		cbs := make([]infra.CBSnapshot, 0, len(breakers))
		for _, cb := range breakers {
			cbs = append(cbs, cb.Snapshot())
		}

		c.JSON(status, gin.H{
			"ok":               status == http.StatusOK,
			"db":               dbStatus,
			"redis":            redisStatus,
			"circuit_breakers": cbs,
			"dlq":              dlq,
		})
	}
}
