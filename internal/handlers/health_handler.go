package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

// StatsFunc reports cache server statistics.
type StatsFunc func(ctx context.Context) (map[string]string, error)

type HealthHandler struct {
	db    Pinger
	cache StatsFunc
}

// NewHealthHandler accepts a nil cache when Redis is not configured.
func NewHealthHandler(db Pinger, cache StatsFunc) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	services := gin.H{"database": "connected", "redis": "disabled"}

	if err := h.db.PingContext(ctx); err != nil {
		status = http.StatusServiceUnavailable
		services["database"] = "unavailable"
	}

	if h.cache != nil {
		if stats, err := h.cache(ctx); err != nil {
			services["redis"] = "unavailable"
		} else {
			services["redis"] = "connected"
			services["redis_stats"] = stats
		}
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{
		"status":    state,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services":  services,
	})
}
