package dto

import (
	"time"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/validation"

	"github.com/google/uuid"
)

// Per-operation response messages. The welcome literal's casing is part of
// the external contract and must not be changed.
const (
	WelcomeMessage   = "hello! upload docs for me to Index"
	MessageRetrieved = "Session retrieved successfully"
	MessageUpdated   = "Session updated successfully"
	MessageDeleted   = "Session deleted successfully"
)

type CreateSessionRequest struct {
	UserId   *string                `json:"user_id" validate:"omitempty,max=255"`
	Title    *string                `json:"title" validate:"omitempty,max=500"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Validate normalizes the request in place: the title is trimmed (or
// defaulted), the user id trimmed, metadata checked against size and type
// limits. Runs at the request boundary, before the service layer.
func (r *CreateSessionRequest) Validate() error {
	title, err := validation.ValidateTitle(r.Title, "title")
	if err != nil {
		return err
	}
	r.Title = &title

	userId, err := validation.ValidateUserId(r.UserId, false)
	if err != nil {
		return err
	}
	r.UserId = userId

	if _, err := validation.ValidateMetadata(r.Metadata); err != nil {
		return err
	}

	return nil
}

type UpdateSessionRequest struct {
	Title    *string                `json:"title" validate:"omitempty,max=500"`
	Status   *string                `json:"status"`
	IsActive *bool                  `json:"is_active"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Validate normalizes only the fields present; absent fields stay untouched
// so the service can compute a sparse update set.
func (r *UpdateSessionRequest) Validate() error {
	if r.Title != nil {
		title, err := validation.ValidateTitle(r.Title, "title")
		if err != nil {
			return err
		}
		r.Title = &title
	}

	status, err := validation.ValidateStatus(r.Status)
	if err != nil {
		return err
	}
	r.Status = status

	if _, err := validation.ValidateMetadata(r.Metadata); err != nil {
		return err
	}

	return nil
}

type ListSessionsQuery struct {
	UserId *string `query:"user_id"`
	Limit  int     `query:"limit"`
	Offset int     `query:"offset"`
}

func (q *ListSessionsQuery) Validate() error {
	userId, err := validation.ValidateUserId(q.UserId, false)
	if err != nil {
		return err
	}
	q.UserId = userId

	if _, _, err := validation.ValidatePagination(q.Limit, q.Offset); err != nil {
		return err
	}

	return nil
}

type SessionResponse struct {
	Id           uuid.UUID `json:"id"`
	UserId       *string   `json:"user_id"`
	Title        string    `json:"title"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Metadata     *string   `json:"metadata"`
	IsActive     bool      `json:"is_active"`
	MessageCount int       `json:"message_count"`
	Message      string    `json:"message"`
}

func NewSessionResponse(s *entity.ChatSession, message string) *SessionResponse {
	return &SessionResponse{
		Id:           s.Id,
		UserId:       s.UserId,
		Title:        s.Title,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		Metadata:     s.Metadata,
		IsActive:     s.IsActive,
		MessageCount: s.MessageCount,
		Message:      message,
	}
}
