package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/tuanona/kasir-bot/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Health reports Redis connectivity and dead-letter backlog. A nil client
// means the job queue is disabled and the core still serves actions.
func Health(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.JSON(http.StatusOK, gin.H{"ok": true, "redis": "disabled"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if rdb.Ping(ctx).Err() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "redis": "error"})
			return
		}

		dlq := gin.H{}
		for _, q := range []string{worker.QueueReceipt, worker.QueueClosing} {
			if n, err := worker.DLQLength(ctx, rdb, q); err == nil {
				dlq[q] = n
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "redis": "connected", "dlq": dlq})
	}
}
