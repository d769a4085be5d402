package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/pkg/apperror"
	"doc-chat-be/internal/pkg/dbretry"
	"doc-chat-be/internal/repository/contract"
	"doc-chat-be/internal/repository/specification"
	"doc-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore backs the fake unit-of-work chain: a map of sessions plus a
// configurable number of transient failures to exercise the retry policy.
type memoryStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]entity.ChatSession
	clock    time.Time

	failuresLeft int
	opCalls      int
	uowsOpened   int
	commits      int
	rollbacks    int
	updateCalls  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sessions: make(map[uuid.UUID]entity.ChatSession),
		clock:    time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *memoryStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memoryStore) maybeFail() error {
	s.opCalls++
	if s.failuresLeft > 0 {
		s.failuresLeft--
		return errors.New("connection reset by peer")
	}
	return nil
}

type memoryRepo struct {
	store *memoryStore
}

func (r *memoryRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.maybeFail(); err != nil {
		return err
	}

	now := r.store.tick()
	session.Id = uuid.New()
	session.CreatedAt = now
	session.UpdatedAt = now
	r.store.sessions[session.Id] = *session
	return nil
}

func (r *memoryRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.updateCalls++
	if err := r.store.maybeFail(); err != nil {
		return err
	}

	stored, ok := r.store.sessions[id]
	if !ok {
		return nil // mirrors UPDATE matching zero rows
	}

	for field, value := range fields {
		switch field {
		case "title":
			stored.Title = value.(string)
		case "status":
			stored.Status = value.(string)
		case "is_active":
			stored.IsActive = value.(bool)
		case "metadata":
			m := value.(string)
			stored.Metadata = &m
		}
	}
	stored.UpdatedAt = r.store.tick()
	r.store.sessions[id] = stored
	return nil
}

func (r *memoryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.maybeFail(); err != nil {
		return nil, err
	}

	for _, spec := range specs {
		if byId, ok := spec.(specification.ById); ok {
			if stored, found := r.store.sessions[byId.Id]; found {
				copied := stored
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (r *memoryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.maybeFail(); err != nil {
		return nil, err
	}

	result := make([]*entity.ChatSession, 0, len(r.store.sessions))
	for _, stored := range r.store.sessions {
		copied := stored
		result = append(result, &copied)
	}

	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByUserId:
			filtered := result[:0]
			for _, session := range result {
				if session.UserId != nil && *session.UserId == s.UserId {
					filtered = append(filtered, session)
				}
			}
			result = filtered
		case specification.OrderBy:
			// only created_at ordering is used by the service
			for i := 0; i < len(result); i++ {
				for j := i + 1; j < len(result); j++ {
					before := result[i].CreatedAt.Before(result[j].CreatedAt)
					if (s.Desc && before) || (!s.Desc && !before) {
						result[i], result[j] = result[j], result[i]
					}
				}
			}
		case specification.Pagination:
			if s.Offset >= len(result) {
				result = nil
				break
			}
			result = result[s.Offset:]
			if s.Limit < len(result) {
				result = result[:s.Limit]
			}
		}
	}
	return result, nil
}

func (r *memoryRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

var _ contract.ChatSessionRepository = (*memoryRepo)(nil)

type fakeUnitOfWork struct {
	store *memoryStore
	began bool
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	u.began = true
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	u.store.commits++
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	u.store.rollbacks++
	return nil
}

func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return &memoryRepo{store: u.store}
}

type fakeFactory struct {
	store *memoryStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	f.store.uowsOpened++
	return &fakeUnitOfWork{store: f.store}
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newTestService(store *memoryStore) ISessionService {
	policy := dbretry.Policy{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		Multiplier:   2,
		MaxDelay:     5 * time.Millisecond,
	}
	return NewSessionService(&fakeFactory{store: store}, noopLogger{}, policy)
}

func strPtr(s string) *string { return &s }

func TestCreateAppliesDefaults(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.Id)
	assert.Equal(t, "New Chat Session", created.Title)
	assert.Equal(t, entity.StatusActive, created.Status)
	assert.True(t, created.IsActive)
	assert.Equal(t, 0, created.MessageCount)
	assert.Nil(t, created.UserId)
	assert.Nil(t, created.Metadata)
	assert.False(t, created.UpdatedAt.Before(created.CreatedAt))
}

func TestCreateSerializesMetadata(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), &dto.CreateSessionRequest{
		UserId:   strPtr("user_123"),
		Title:    strPtr("Research"),
		Metadata: map[string]interface{}{"source": "web"},
	})
	require.NoError(t, err)

	require.NotNil(t, created.Metadata)
	assert.JSONEq(t, `{"source":"web"}`, *created.Metadata)
	require.NotNil(t, created.UserId)
	assert.Equal(t, "user_123", *created.UserId)
}

func TestCreateRetriesTransientFailures(t *testing.T) {
	store := newMemoryStore()
	store.failuresLeft = 2
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.Id)

	// two failed attempts rolled back, the third committed on a fresh uow
	assert.Equal(t, 3, store.uowsOpened)
	assert.Equal(t, 2, store.rollbacks)
	assert.Equal(t, 1, store.commits)
}

func TestCreateExhaustsRetries(t *testing.T) {
	store := newMemoryStore()
	store.failuresLeft = 10
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), &dto.CreateSessionRequest{})
	require.Error(t, err)
	assert.Equal(t, apperror.KindDatabase, apperror.KindOf(err))
	assert.Equal(t, 3, store.uowsOpened)
	assert.Empty(t, store.sessions)
}

func TestGetNotFound(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestGetReturnsPersistedSession(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), &dto.CreateSessionRequest{Title: strPtr("Q&A")})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.Id)
	require.NoError(t, err)
	assert.Equal(t, created.Id, got.Id)
	assert.Equal(t, "Q&A", got.Title)
}

func TestUpdateSparseFields(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), &dto.CreateSessionRequest{
		UserId: strPtr("alice@example.com"),
		Title:  strPtr("Original"),
	})
	require.NoError(t, err)

	status := entity.StatusCompleted
	updated, err := svc.Update(context.Background(), created.Id, &dto.UpdateSessionRequest{
		Status: &status,
	})
	require.NoError(t, err)

	// only status changed; the rest is untouched
	assert.Equal(t, entity.StatusCompleted, updated.Status)
	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, "alice@example.com", *updated.UserId)
	assert.True(t, updated.IsActive)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateWithNoFieldsBehavesAsGet(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), &dto.CreateSessionRequest{Title: strPtr("Stable")})
	require.NoError(t, err)

	store.updateCalls = 0
	got, err := svc.Update(context.Background(), created.Id, &dto.UpdateSessionRequest{})
	require.NoError(t, err)

	assert.Equal(t, 0, store.updateCalls)
	assert.Equal(t, created.Id, got.Id)
	assert.Equal(t, "Stable", got.Title)
	assert.Equal(t, created.UpdatedAt, got.UpdatedAt)
}

func TestUpdateNotFound(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	title := "anything"
	_, err := svc.Update(context.Background(), uuid.New(), &dto.UpdateSessionRequest{Title: &title})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteArchivesSession(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), &dto.CreateSessionRequest{})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.Id)
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)
	assert.Equal(t, entity.StatusArchived, deleted.Status)

	// soft delete: the row is still readable
	got, err := svc.Get(context.Background(), created.Id)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, entity.StatusArchived, got.Status)
}

func TestDeleteNotFound(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	_, err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestListFiltersAndOrders(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), &dto.CreateSessionRequest{UserId: strPtr("alice")})
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), &dto.CreateSessionRequest{UserId: strPtr("bob")})
	require.NoError(t, err)

	sessions, err := svc.List(context.Background(), strPtr("alice"), 50, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	for _, session := range sessions {
		assert.Equal(t, "alice", *session.UserId)
	}
	// newest first
	for i := 1; i < len(sessions); i++ {
		assert.True(t, sessions[i].CreatedAt.Before(sessions[i-1].CreatedAt))
	}
}

func TestListIncludesArchivedSessions(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), &dto.CreateSessionRequest{UserId: strPtr("carol")})
	require.NoError(t, err)
	_, err = svc.Delete(context.Background(), created.Id)
	require.NoError(t, err)

	sessions, err := svc.List(context.Background(), strPtr("carol"), 50, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, entity.StatusArchived, sessions[0].Status)
}

func TestListPagination(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), &dto.CreateSessionRequest{UserId: strPtr("dave")})
		require.NoError(t, err)
	}

	page, err := svc.List(context.Background(), strPtr("dave"), 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	last, err := svc.List(context.Background(), strPtr("dave"), 2, 4)
	require.NoError(t, err)
	assert.Len(t, last, 1)
}
