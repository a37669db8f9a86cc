package handlers

import (
	"tally/internal/repositories"
	"tally/internal/repositories/cache"

	"github.com/gofiber/fiber/v2"
)

// Health reports store connectivity.
func Health(accountCache *cache.AccountCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "connected"
		if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "unavailable"
		}

		redisStatus := "connected"
		if accountCache == nil {
			redisStatus = "disabled"
		} else if err := accountCache.HealthCheck(c.Context()); err != nil {
			redisStatus = "unavailable"
		}

		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	}
}
