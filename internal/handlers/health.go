package handlers

import (
	"vesta/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports liveness of the API and its backing stores.
func HealthCheck(c *fiber.Ctx) error {
	status := fiber.Map{
		"status": "ok",
	}

	if repositories.DB != nil {
		if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
		} else {
			status["database"] = "ok"
		}
	}

	if repositories.CacheService != nil {
		if err := repositories.CacheService.HealthCheck(c.Context()); err != nil {
			status["status"] = "degraded"
			status["cache"] = "unreachable"
		} else {
			status["cache"] = "ok"
		}
	}

	return c.JSON(status)
}
