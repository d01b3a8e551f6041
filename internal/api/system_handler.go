package api

import (
	"context"
	"time"

	"github.com/fathima-sithara/social-service/internal/repository"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const banner = "social server is running"

type SystemHandler struct {
	health repository.Pinger
	log    *zap.Logger
}

func NewSystemHandler(health repository.Pinger, log *zap.Logger) *SystemHandler {
	return &SystemHandler{health: health, log: log}
}

func (h *SystemHandler) Root(c *fiber.Ctx) error {
	return c.SendString(banner)
}

func (h *SystemHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := h.health.Ping(ctx); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
