package services

import (
	"context"
	"database/sql"

	"github.com/monacoremo/postgrest-sessions-example/internal/common"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/models"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/repositories/repomanager"
)

// UserService exposes the shared user listing. Only authenticated callers
// may read it.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// List returns all user profiles.
func (s *UserService) List(ctx context.Context, identity Identity) ([]*models.User, error) {
	if identity.IsAnonymous() {
		return nil, common.ErrUnauthenticated
	}
	repo := s.repomanager.Users(s.db)
	result, err := repo.List(ctx)
	if err != nil {
		return nil, common.ErrInternal
	}
	return result, nil
}
