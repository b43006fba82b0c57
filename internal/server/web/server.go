// Package web exposes the HTTP surface of the sessions server: the auth RPC
// endpoints and the owned-resource collections. The session token travels in
// a cookie; every request's identity is resolved once by middleware before
// any handler runs.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/monacoremo/postgrest-sessions-example/internal/logging"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/models"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/services"
)

// AuthService is the slice of the auth service the handlers need.
type AuthService interface {
	Register(ctx context.Context, identity services.Identity, email, name, password string) (string, error)
	Login(ctx context.Context, identity services.Identity, email, password string) (string, error)
	Logout(ctx context.Context, identity services.Identity, token string) error
	CurrentUser(ctx context.Context, identity services.Identity) (*models.User, error)
}

// SessionService resolves and rotates session tokens.
type SessionService interface {
	Resolve(ctx context.Context, token string) (services.Identity, error)
	Refresh(ctx context.Context, token string) (string, error)
}

// TodoService is the visibility engine for the todos collection.
type TodoService interface {
	List(ctx context.Context, identity services.Identity) ([]*models.Todo, error)
	Create(ctx context.Context, identity services.Identity, description, ownerID string) (*models.Todo, error)
	SetPublic(ctx context.Context, identity services.Identity, public bool) (int64, error)
}

// UserService lists user profiles for authenticated callers.
type UserService interface {
	List(ctx context.Context, identity services.Identity) ([]*models.User, error)
}

type WebServer struct {
	address      string
	logger       logging.Logger
	sessions     SessionService
	auth         AuthService
	todos        TodoService
	users        UserService
	cookieSecure bool
}

func NewWebServer(a string, l logging.Logger, ss SessionService, as AuthService, ts TodoService, us UserService, cookieSecure bool) *WebServer {
	return &WebServer{
		address:      a,
		logger:       l.With("module", "web_server"),
		sessions:     ss,
		auth:         as,
		todos:        ts,
		users:        us,
		cookieSecure: cookieSecure,
	}
}

// Handler builds the route table wrapped in the identity middleware.
func (s *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /rpc/register", s.handleRegister)
	mux.HandleFunc("POST /rpc/login", s.handleLogin)
	mux.HandleFunc("POST /rpc/logout", s.handleLogout)
	mux.HandleFunc("POST /rpc/refresh_session", s.handleRefreshSession)
	mux.HandleFunc("GET /rpc/current_user", s.handleCurrentUser)
	mux.HandleFunc("GET /users", s.handleUsersList)
	mux.HandleFunc("GET /todos", s.handleTodosList)
	mux.HandleFunc("POST /todos", s.handleTodosCreate)
	mux.HandleFunc("PATCH /todos", s.handleTodosPatch)

	return s.withIdentity(mux)
}

func (s *WebServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
