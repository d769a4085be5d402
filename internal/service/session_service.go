package service

import (
	"context"
	"encoding/json"
	"fmt"

	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/pkg/apperror"
	"doc-chat-be/internal/pkg/dbretry"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/internal/repository/specification"
	"doc-chat-be/internal/repository/unitofwork"
	"doc-chat-be/internal/validation"

	"github.com/google/uuid"
)

const logModule = "session_service"

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*entity.ChatSession, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateSessionRequest) (*entity.ChatSession, error)
	List(ctx context.Context, userId *string, limit, offset int) ([]*entity.ChatSession, error)
	Delete(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
	retry      dbretry.Policy
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
	retry dbretry.Policy,
) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		log:        log,
		retry:      retry,
	}
}

// runInUnitOfWork executes fn inside its own transaction, retried per policy.
// Every attempt acquires a fresh unit of work; commit on success, rollback on
// error. Not-found is decided by callers after the wrapper returns, so it is
// never retried.
func runInUnitOfWork[T any](
	ctx context.Context,
	factory unitofwork.RepositoryFactory,
	policy dbretry.Policy,
	fn func(uow unitofwork.UnitOfWork) (T, error),
) (T, error) {
	return dbretry.Do(ctx, policy, func(ctx context.Context) (T, error) {
		var zero T

		uow := factory.NewUnitOfWork(ctx)
		if err := uow.Begin(ctx); err != nil {
			return zero, err
		}

		out, err := fn(uow)
		if err != nil {
			_ = uow.Rollback()
			return zero, err
		}

		if err := uow.Commit(); err != nil {
			return zero, err
		}
		return out, nil
	})
}

func notFound(id uuid.UUID) *apperror.Error {
	return apperror.NotFound("Session not found", fmt.Sprintf("No session found with ID: %s", id))
}

func serializeMetadata(metadata map[string]interface{}) (*string, error) {
	if metadata == nil {
		return nil, nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}
	s := string(raw)
	return &s, nil
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*entity.ChatSession, error) {
	metadata, err := serializeMetadata(req.Metadata)
	if err != nil {
		return nil, apperror.Validation("Invalid metadata format", "Metadata must be JSON-serializable")
	}

	title := validation.DefaultTitle
	if req.Title != nil && *req.Title != "" {
		title = *req.Title
	}

	created, err := runInUnitOfWork(ctx, s.uowFactory, s.retry, func(uow unitofwork.UnitOfWork) (*entity.ChatSession, error) {
		session := &entity.ChatSession{
			UserId:       req.UserId,
			Title:        title,
			Status:       entity.StatusActive,
			Metadata:     metadata,
			IsActive:     true,
			MessageCount: 0,
		}
		if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
			return nil, err
		}
		return session, nil
	})
	if err != nil {
		s.log.Error(logModule, "failed to create session", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Database("Failed to create session", err)
	}

	s.log.Info(logModule, "session created", map[string]interface{}{"session_id": created.Id.String()})
	return created, nil
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error) {
	session, err := runInUnitOfWork(ctx, s.uowFactory, s.retry, func(uow unitofwork.UnitOfWork) (*entity.ChatSession, error) {
		return uow.ChatSessionRepository().FindOne(ctx, specification.ById{Id: id})
	})
	if err != nil {
		s.log.Error(logModule, "failed to fetch session", map[string]interface{}{
			"session_id": id.String(),
			"error":      err.Error(),
		})
		return nil, apperror.Database("Failed to fetch session", err)
	}
	if session == nil {
		s.log.Warn(logModule, "session not found", map[string]interface{}{"session_id": id.String()})
		return nil, notFound(id)
	}

	return session, nil
}

func (s *sessionService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateSessionRequest) (*entity.ChatSession, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.Metadata != nil {
		metadata, err := serializeMetadata(req.Metadata)
		if err != nil {
			return nil, apperror.Validation("Invalid metadata format", "Metadata must be JSON-serializable")
		}
		fields["metadata"] = *metadata
	}

	// Nothing to change: behave as a plain read.
	if len(fields) == 0 {
		return s.Get(ctx, id)
	}

	updated, err := runInUnitOfWork(ctx, s.uowFactory, s.retry, func(uow unitofwork.UnitOfWork) (*entity.ChatSession, error) {
		repo := uow.ChatSessionRepository()
		if err := repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
		return repo.FindOne(ctx, specification.ById{Id: id})
	})
	if err != nil {
		s.log.Error(logModule, "failed to update session", map[string]interface{}{
			"session_id": id.String(),
			"error":      err.Error(),
		})
		return nil, apperror.Database("Failed to update session", err)
	}
	if updated == nil {
		s.log.Warn(logModule, "session not found for update", map[string]interface{}{"session_id": id.String()})
		return nil, notFound(id)
	}

	s.log.Info(logModule, "session updated", map[string]interface{}{"session_id": id.String()})
	return updated, nil
}

func (s *sessionService) List(ctx context.Context, userId *string, limit, offset int) ([]*entity.ChatSession, error) {
	specs := make([]specification.Specification, 0, 3)
	if userId != nil {
		specs = append(specs, specification.ByUserId{UserId: *userId})
	}
	// Archived sessions stay listable: no implicit is_active filter.
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)

	sessions, err := runInUnitOfWork(ctx, s.uowFactory, s.retry, func(uow unitofwork.UnitOfWork) ([]*entity.ChatSession, error) {
		return uow.ChatSessionRepository().FindAll(ctx, specs...)
	})
	if err != nil {
		s.log.Error(logModule, "failed to list sessions", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Database("Failed to list sessions", err)
	}

	return sessions, nil
}

func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error) {
	// Soft delete only: the row persists, archived and inactive.
	fields := map[string]interface{}{
		"is_active": false,
		"status":    entity.StatusArchived,
	}

	deleted, err := runInUnitOfWork(ctx, s.uowFactory, s.retry, func(uow unitofwork.UnitOfWork) (*entity.ChatSession, error) {
		repo := uow.ChatSessionRepository()
		if err := repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
		return repo.FindOne(ctx, specification.ById{Id: id})
	})
	if err != nil {
		s.log.Error(logModule, "failed to delete session", map[string]interface{}{
			"session_id": id.String(),
			"error":      err.Error(),
		})
		return nil, apperror.Database("Failed to delete session", err)
	}
	if deleted == nil {
		s.log.Warn(logModule, "session not found for deletion", map[string]interface{}{"session_id": id.String()})
		return nil, notFound(id)
	}

	s.log.Info(logModule, "session archived", map[string]interface{}{"session_id": id.String()})
	return deleted, nil
}
