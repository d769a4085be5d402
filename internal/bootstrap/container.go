package bootstrap

import (
	"time"

	"doc-chat-be/internal/config"
	"doc-chat-be/internal/controller"
	"doc-chat-be/internal/pkg/dbretry"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/internal/repository/unitofwork"
	"doc-chat-be/internal/service"

	"gorm.io/gorm"
)

// Container owns every long-lived object and hands controllers to the server.
// All wiring is explicit: no package-level singletons.
type Container struct {
	SessionController controller.ISessionController
	HealthController  controller.IHealthController

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	retryPolicy := dbretry.Policy{
		MaxAttempts:  cfg.Retry.MaxRetries,
		InitialDelay: cfg.Retry.InitialDelay,
		Multiplier:   cfg.Retry.Multiplier,
		MaxDelay:     10 * time.Second,
	}

	sessionService := service.NewSessionService(uowFactory, sysLogger, retryPolicy)

	return &Container{
		SessionController: controller.NewSessionController(sessionService),
		HealthController:  controller.NewHealthController(db),
		Logger:            sysLogger,
	}
}
