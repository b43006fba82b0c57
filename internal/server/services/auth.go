package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/monacoremo/postgrest-sessions-example/internal/common"
	"github.com/monacoremo/postgrest-sessions-example/internal/dbx"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/models"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/repositories/repomanager"
)

// dummyHash is compared against the supplied password when the email is
// unknown, so both login failure paths cost one bcrypt verification.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), bcrypt.DefaultCost)

// AuthService orchestrates registration, login, and logout on top of the
// user repository and the session service. Register and login require an
// Anonymous caller; a logged-in actor cannot acquire a second identity
// through these flows.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    *SessionService
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, sessions *SessionService) *AuthService {
	return &AuthService{db: db, repomanager: m, sessions: sessions}
}

// Register creates a user and issues a session for it in one transaction.
// The caller must be Anonymous. A duplicate email fails with
// ErrDuplicateAccount; the uniqueness check is the DB constraint, so
// concurrent registrations of the same email cannot both succeed.
func (s *AuthService) Register(ctx context.Context, identity Identity, email, name, password string) (string, error) {
	if !identity.IsAnonymous() {
		return "", common.ErrAlreadyAuthenticated
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", common.ErrInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}

	var token string
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Users(tx)
		if _, err := repoTx.Create(ctx, user); err != nil {
			if errors.Is(err, common.ErrDuplicateAccount) {
				return common.ErrDuplicateAccount
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		var issueErr error
		token, issueErr = s.sessions.IssueTx(ctx, tx, user.ID)
		return issueErr
	}); err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			return "", common.ErrDuplicateAccount
		}
		return "", common.ErrInternal
	}
	return token, nil
}

// Login verifies the email/password pair and issues a new session. The
// caller must be Anonymous. Unknown email and wrong password both fail with
// the single ErrInvalidCredentials so the response carries no account
// enumeration signal.
func (s *AuthService) Login(ctx context.Context, identity Identity, email, password string) (string, error) {
	if !identity.IsAnonymous() {
		return "", common.ErrAlreadyAuthenticated
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrInternal
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", common.ErrInvalidCredentials
	}
	return s.sessions.Issue(ctx, user.ID)
}

// Logout revokes the caller's session token. The caller must be
// Authenticated; a stale or already-revoked token fails with
// ErrUnauthenticated.
func (s *AuthService) Logout(ctx context.Context, identity Identity, token string) error {
	if identity.IsAnonymous() {
		return common.ErrUnauthenticated
	}
	return s.sessions.Revoke(ctx, token)
}

// CurrentUser returns the profile of exactly the resolved user.
func (s *AuthService) CurrentUser(ctx context.Context, identity Identity) (*models.User, error) {
	if identity.IsAnonymous() {
		return nil, common.ErrUnauthenticated
	}
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, identity.UserID())
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Session outlived the account; treat as not logged in.
			return nil, common.ErrUnauthenticated
		}
		return nil, common.ErrInternal
	}
	return user, nil
}
