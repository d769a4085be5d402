package controller

import (
	"time"

	"doc-chat-be/internal/dto"
	"doc-chat-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) IHealthController {
	return &healthController{db: db}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	health := database.CheckHealth(c.db)
	now := time.Now().UTC()

	if health.Connected {
		return ctx.JSON(dto.HealthCheckResponse{
			Status:    "healthy",
			Database:  "connected",
			Timestamp: now,
		})
	}

	dbState := "disconnected"
	if health.Error != "" {
		dbState = "error"
	}

	return ctx.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthCheckResponse{
		Status:    "unhealthy",
		Database:  dbState,
		Timestamp: now,
		Error:     health.Error,
	})
}
