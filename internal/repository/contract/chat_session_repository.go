package contract

import (
	"context"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	// Create inserts the session and reloads server-assigned columns
	// (id, timestamps, defaults) back into the entity.
	Create(ctx context.Context, session *entity.ChatSession) error
	// UpdateFields applies a sparse column set to one row by primary key.
	// updated_at is refreshed by the store on every call.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
