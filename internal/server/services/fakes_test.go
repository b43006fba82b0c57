package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/monacoremo/postgrest-sessions-example/internal/common"
	"github.com/monacoremo/postgrest-sessions-example/internal/dbx"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/models"
	sessionsrepo "github.com/monacoremo/postgrest-sessions-example/internal/server/repositories/sessions"
	todosrepo "github.com/monacoremo/postgrest-sessions-example/internal/server/repositories/todos"
	usersrepo "github.com/monacoremo/postgrest-sessions-example/internal/server/repositories/users"
)

// --- canned-response fakes ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error

	listOut []*models.User
	listErr error

	created []*models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, u)
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

type fakeSessionsRepo struct {
	createErr error
	findOut   *models.Session
	findErr   error
	deleteErr error

	created []models.Session
	deleted []string
}

func (f *fakeSessionsRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(validity),
	})
	return nil
}

func (f *fakeSessionsRepo) Find(ctx context.Context, token string) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, token string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

type fakeTodosRepo struct {
	createOut *models.Todo
	createErr error

	listOut []*models.Todo
	listErr error

	setPublicOut int64
	setPublicErr error

	created      []*models.Todo
	listUserID   string
	publicUserID string
	publicValue  bool
}

func (f *fakeTodosRepo) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, todo)
	if f.createOut != nil {
		return f.createOut, nil
	}
	return todo, nil
}

func (f *fakeTodosRepo) ListVisible(ctx context.Context, userID string) ([]*models.Todo, error) {
	f.listUserID = userID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeTodosRepo) SetPublic(ctx context.Context, userID string, public bool) (int64, error) {
	f.publicUserID = userID
	f.publicValue = public
	if f.setPublicErr != nil {
		return 0, f.setPublicErr
	}
	return f.setPublicOut, nil
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	s  *fakeSessionsRepo
	td *fakeTodosRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository { return m.s }
func (m *fakeRepoManager) Todos(db dbx.DBTX) todosrepo.Repository       { return m.td }

// --- stateful in-memory repos for end-to-end service flows ---

type memStore struct {
	mu       sync.Mutex
	users    map[string]*models.User    // keyed by id
	sessions map[string]*models.Session // keyed by token
	todos    []*models.Todo
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*models.User),
		sessions: make(map[string]*models.Session),
	}
}

type memUsersRepo struct{ store *memStore }

func (r *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return nil, common.ErrDuplicateAccount
		}
	}
	u.CreatedAt = time.Now()
	r.store.users[u.ID] = u
	return u, nil
}

func (r *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if u, ok := r.store.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (r *memUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*models.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type memSessionsRepo struct{ store *memStore }

func (r *memSessionsRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sessions[token] = &models.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(validity),
	}
	return nil
}

func (r *memSessionsRepo) Find(ctx context.Context, token string) (*models.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if s, ok := r.store.sessions[token]; ok {
		return s, nil
	}
	return nil, common.ErrNotFound
}

func (r *memSessionsRepo) Delete(ctx context.Context, token string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.sessions, token)
	return nil
}

type memTodosRepo struct{ store *memStore }

func (r *memTodosRepo) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	todo.CreatedAt = time.Now()
	r.store.todos = append(r.store.todos, todo)
	return todo, nil
}

func (r *memTodosRepo) ListVisible(ctx context.Context, userID string) ([]*models.Todo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*models.Todo
	for _, t := range r.store.todos {
		if t.UserID == userID || t.Public {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *memTodosRepo) SetPublic(ctx context.Context, userID string, public bool) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, t := range r.store.todos {
		if t.UserID == userID {
			t.Public = public
			n++
		}
	}
	return n, nil
}

type memRepoManager struct{ store *memStore }

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository {
	return &memUsersRepo{store: m.store}
}
func (m *memRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository {
	return &memSessionsRepo{store: m.store}
}
func (m *memRepoManager) Todos(db dbx.DBTX) todosrepo.Repository {
	return &memTodosRepo{store: m.store}
}
