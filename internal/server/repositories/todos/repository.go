package todos

import (
	"context"

	"github.com/monacoremo/postgrest-sessions-example/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	ListVisible(ctx context.Context, userID string) ([]*models.Todo, error)
	SetPublic(ctx context.Context, userID string, public bool) (int64, error)
}
