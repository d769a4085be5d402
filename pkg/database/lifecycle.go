package database

import (
	"context"
	"time"

	"doc-chat-be/internal/model"
	"doc-chat-be/internal/pkg/dbretry"

	"gorm.io/gorm"
)

// HealthStatus reports store reachability and whether the schema is in place.
type HealthStatus struct {
	Connected   bool   `json:"connected"`
	SchemaReady bool   `json:"schema_ready"`
	Error       string `json:"error,omitempty"`
}

// ConnectWithRetry opens the database, retrying with exponential backoff. The
// startup cap is wider than the per-operation one since cold databases can
// take a while to accept connections.
func ConnectWithRetry(ctx context.Context, dsn string, policy dbretry.Policy) (*gorm.DB, error) {
	policy.MaxDelay = 30 * time.Second

	return dbretry.Do(ctx, policy, func(ctx context.Context) (*gorm.DB, error) {
		db, err := NewGormDBFromDSN(dsn)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, err
		}
		return db, nil
	})
}

// Migrate creates the chat_sessions schema if absent. pgcrypto provides
// gen_random_uuid for server-side primary keys.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(&model.ChatSession{})
}

// CheckHealth probes the connection and the presence of the sessions table.
func CheckHealth(db *gorm.DB) HealthStatus {
	status := HealthStatus{}

	if db == nil {
		status.Error = "not connected"
		return status
	}

	sqlDB, err := db.DB()
	if err != nil {
		status.Error = err.Error()
		return status
	}

	if err := sqlDB.Ping(); err != nil {
		status.Error = err.Error()
		return status
	}
	status.Connected = true

	status.SchemaReady = db.Migrator().HasTable(&model.ChatSession{})

	return status
}

// Disconnect releases the underlying connection pool.
func Disconnect(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
