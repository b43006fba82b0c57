package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/monacoremo/postgrest-sessions-example/internal/common"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/models"
)

// --------- DTOs ---------

type registerReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
}

type todoDTO struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	Public      bool      `json:"public"`
	CreatedAt   time.Time `json:"created_at"`
}

type createTodoReq struct {
	UserID      string `json:"user_id"`
	Description string `json:"description"`
}

type patchTodoReq struct {
	Public *bool `json:"public"`
}

// --------- helpers ---------

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeClientError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError maps the domain error taxonomy onto status codes. Anything
// outside the taxonomy is an internal fault and deliberately opaque.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrAlreadyAuthenticated),
		errors.Is(err, common.ErrInvalidCredentials):
		writeClientError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrForbidden):
		writeClientError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, common.ErrDuplicateAccount):
		writeClientError(w, http.StatusConflict, err.Error())
	default:
		writeClientError(w, http.StatusInternalServerError, "internal error")
	}
}

func toUserDTO(u *models.User, withEmail bool) userDTO {
	dto := userDTO{UserID: u.ID, Name: u.Name}
	if withEmail {
		dto.Email = u.Email
	}
	return dto
}

func toTodoDTO(t *models.Todo) todoDTO {
	return todoDTO{
		ID:          t.ID,
		UserID:      t.UserID,
		Description: t.Description,
		Public:      t.Public,
		CreatedAt:   t.CreatedAt,
	}
}

// --------- auth handlers ---------

func (s *WebServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerReq
	if err := decodeJSON(r, &in); err != nil {
		writeClientError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Email == "" || in.Name == "" || in.Password == "" {
		writeClientError(w, http.StatusBadRequest, "email, name and password required")
		return
	}

	token, err := s.auth.Register(r.Context(), identityFrom(r.Context()), in.Email, in.Name, in.Password)
	if err != nil {
		s.logger.Warn(r.Context(), "registration rejected", "error", err.Error())
		writeError(w, err)
		return
	}

	s.logger.Info(r.Context(), "registered", "email", in.Email)
	s.setSessionCookie(w, token)
	w.WriteHeader(http.StatusOK)
}

func (s *WebServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginReq
	if err := decodeJSON(r, &in); err != nil {
		writeClientError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Email == "" || in.Password == "" {
		writeClientError(w, http.StatusBadRequest, "email and password required")
		return
	}

	token, err := s.auth.Login(r.Context(), identityFrom(r.Context()), in.Email, in.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	s.setSessionCookie(w, token)
	w.WriteHeader(http.StatusOK)
}

func (s *WebServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), identityFrom(r.Context()), tokenFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusOK)
}

func (s *WebServer) handleRefreshSession(w http.ResponseWriter, r *http.Request) {
	token, err := s.sessions.Refresh(r.Context(), tokenFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	s.setSessionCookie(w, token)
	w.WriteHeader(http.StatusOK)
}

func (s *WebServer) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.auth.CurrentUser(r.Context(), identityFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, []userDTO{toUserDTO(user, true)})
}

// --------- collection handlers ---------

func (s *WebServer) handleUsersList(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.List(r.Context(), identityFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]userDTO, 0, len(list))
	for _, u := range list {
		result = append(result, toUserDTO(u, false))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *WebServer) handleTodosList(w http.ResponseWriter, r *http.Request) {
	list, err := s.todos.List(r.Context(), identityFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]todoDTO, 0, len(list))
	for _, t := range list {
		result = append(result, toTodoDTO(t))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *WebServer) handleTodosCreate(w http.ResponseWriter, r *http.Request) {
	var in createTodoReq
	if err := decodeJSON(r, &in); err != nil {
		writeClientError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Description == "" {
		writeClientError(w, http.StatusBadRequest, "description required")
		return
	}

	todo, err := s.todos.Create(r.Context(), identityFrom(r.Context()), in.Description, in.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, []todoDTO{toTodoDTO(todo)})
}

func (s *WebServer) handleTodosPatch(w http.ResponseWriter, r *http.Request) {
	var in patchTodoReq
	if err := decodeJSON(r, &in); err != nil {
		writeClientError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Public == nil {
		writeClientError(w, http.StatusBadRequest, "public required")
		return
	}

	if _, err := s.todos.SetPublic(r.Context(), identityFrom(r.Context()), *in.Public); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
