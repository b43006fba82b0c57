package sessions

import (
	"context"
	"time"

	"github.com/monacoremo/postgrest-sessions-example/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	Find(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}
