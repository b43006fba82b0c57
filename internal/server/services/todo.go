package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/monacoremo/postgrest-sessions-example/internal/common"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/models"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/repositories/repomanager"
)

// TodoService enforces the visibility and ownership rules for todo rows.
// Reads are filtered to owner-or-public; writes are scoped to the caller's
// own rows before any caller-supplied input is considered.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTodoService constructs a TodoService.
func NewTodoService(db *sql.DB, m repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

// List returns every row the caller may read: their own rows plus rows
// flagged public. Anonymous callers are rejected.
func (s *TodoService) List(ctx context.Context, identity Identity) ([]*models.Todo, error) {
	if identity.IsAnonymous() {
		return nil, common.ErrUnauthenticated
	}
	repo := s.repomanager.Todos(s.db)
	result, err := repo.ListVisible(ctx, identity.UserID())
	if err != nil {
		return nil, common.ErrInternal
	}
	return result, nil
}

// Create inserts a new row owned by the caller. A non-empty ownerID naming
// anyone other than the caller fails with ErrForbidden; the stored owner is
// always the resolved identity. New rows default to private.
func (s *TodoService) Create(ctx context.Context, identity Identity, description, ownerID string) (*models.Todo, error) {
	if identity.IsAnonymous() {
		return nil, common.ErrUnauthenticated
	}
	if ownerID != "" && ownerID != identity.UserID() {
		return nil, common.ErrForbidden
	}

	todo := &models.Todo{
		ID:          uuid.NewString(),
		UserID:      identity.UserID(),
		Description: description,
		Public:      false,
	}
	repo := s.repomanager.Todos(s.db)
	created, err := repo.Create(ctx, todo)
	if err != nil {
		return nil, common.ErrInternal
	}
	return created, nil
}

// SetPublic flips the public flag on all rows owned by the caller and
// returns how many rows changed. The ownership filter is injected
// unconditionally, so the update can never touch another user's rows.
func (s *TodoService) SetPublic(ctx context.Context, identity Identity, public bool) (int64, error) {
	if identity.IsAnonymous() {
		return 0, common.ErrUnauthenticated
	}
	repo := s.repomanager.Todos(s.db)
	n, err := repo.SetPublic(ctx, identity.UserID(), public)
	if err != nil {
		return 0, common.ErrInternal
	}
	return n, nil
}
