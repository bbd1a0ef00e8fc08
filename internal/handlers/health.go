package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"quickpay/internal/repositories"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// HealthCheck handles GET /health. Dependencies that do not answer turn the
// status to "degraded" with a 503.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	services := fiber.Map{"database": "connected", "redis": "connected"}
	status, code := "ok", fiber.StatusOK

	if h.db == nil || repositories.Ping(ctx, h.db) != nil {
		services["database"] = "unavailable"
		status, code = "degraded", fiber.StatusServiceUnavailable
	}
	if h.redis == nil || h.redis.Ping(ctx).Err() != nil {
		services["redis"] = "unavailable"
		status, code = "degraded", fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"services": services,
	})
}

// CacheStats handles GET /health/cache.
func (h *HealthHandler) CacheStats(c *fiber.Ctx) error {
	if h.redis == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "redis not configured"})
	}
	poolStats := h.redis.PoolStats()

	return c.JSON(fiber.Map{
		"pool_stats": fiber.Map{
			"hits":        poolStats.Hits,
			"misses":      poolStats.Misses,
			"timeouts":    poolStats.Timeouts,
			"total_conns": poolStats.TotalConns,
			"idle_conns":  poolStats.IdleConns,
			"stale_conns": poolStats.StaleConns,
		},
	})
}
