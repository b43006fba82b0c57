// Package todos provides a PostgreSQL-backed repository for owned todo rows
// with owner-or-public visibility.
package todos

import (
	"context"
	"fmt"

	"github.com/monacoremo/postgrest-sessions-example/internal/dbx"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/models"
)

// PostgresRepository implements todo storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new todo row and returns it with the server-assigned
// creation time.
func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query := `
		INSERT INTO todos (id, user_id, description, public)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		todo.ID, todo.UserID, todo.Description, todo.Public).Scan(&todo.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return todo, nil
}

// ListVisible returns all rows the given user may read: their own plus any
// row flagged public. The visibility predicate lives in this query; callers
// never see rows outside it.
func (r *PostgresRepository) ListVisible(ctx context.Context, userID string) ([]*models.Todo, error) {
	query := `
		SELECT id, user_id, description, public, created_at FROM todos
		WHERE user_id = $1 OR public = true
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Todo
	for rows.Next() {
		var item models.Todo
		if err := rows.Scan(&item.ID, &item.UserID, &item.Description, &item.Public, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SetPublic flips the public flag on every row owned by userID and returns
// the number of rows affected. The ownership filter is injected here
// unconditionally; no caller-supplied predicate can widen it.
func (r *PostgresRepository) SetPublic(ctx context.Context, userID string, public bool) (int64, error) {
	query := `
		UPDATE todos SET public = $2
		WHERE user_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, userID, public)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
