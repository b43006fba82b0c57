// Package server initializes and runs the sessions server: it opens the
// database, applies migrations, wires repositories and services, and starts
// the HTTP endpoint with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/monacoremo/postgrest-sessions-example/internal/logging"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/config"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/repositories/repomanager"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/services"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/web"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	sessionService *services.SessionService
	authService    *services.AuthService
	todoService    *services.TodoService
	userService    *services.UserService
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	ss := services.NewSessionService(db, rm, c)
	as := services.NewAuthService(db, rm, ss)
	ts := services.NewTodoService(db, rm)
	us := services.NewUserService(db, rm)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		sessionService: ss,
		authService:    as,
		todoService:    ts,
		userService:    us,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startWebServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := web.NewWebServer(app.config.EndpointAddrHTTP, app.logger,
		app.sessionService, app.authService, app.todoService, app.userService,
		app.config.CookieSecure)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startWebServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err.Error())
	}
}
