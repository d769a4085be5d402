package unitofwork

import (
	"context"

	"doc-chat-be/internal/repository/contract"
)

// UnitOfWork is one transactional boundary over the store: Begin opens the
// transaction, Commit/Rollback close it, and repositories acquired from it
// run inside it.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
}
