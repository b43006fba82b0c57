package repomanager

import (
	"context"
	"database/sql"

	"github.com/monacoremo/postgrest-sessions-example/internal/dbx"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/repositories/sessions"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/repositories/todos"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Todos(db dbx.DBTX) todos.Repository
}
