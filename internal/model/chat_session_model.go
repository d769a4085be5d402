package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       *string   `gorm:"type:varchar(255);index"`
	Title        string    `gorm:"type:varchar(500);not null;default:'New Chat Session'"`
	Status       string    `gorm:"type:varchar(50);not null;default:'active';index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
	Metadata     *string   `gorm:"type:text"`
	IsActive     bool      `gorm:"not null;default:true;index"`
	MessageCount int       `gorm:"not null;default:0"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
