package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session status values. Stored lowercase; delete always moves a session to archived.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
	StatusPaused    = "paused"
)

// AllowedStatuses is the closed enum a session status must belong to.
var AllowedStatuses = []string{StatusActive, StatusCompleted, StatusArchived, StatusPaused}

type ChatSession struct {
	Id           uuid.UUID
	UserId       *string
	Title        string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Metadata     *string // JSON-serialized form, nil when absent
	IsActive     bool
	MessageCount int
}
