package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/monacoremo/postgrest-sessions-example/internal/common"
	"github.com/monacoremo/postgrest-sessions-example/internal/dbx"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/config"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/repositories/repomanager"
)

// SessionService manages the lifecycle of opaque session tokens:
// - Issue: mint a token for a user
// - Resolve: map an incoming token to an Identity
// - Revoke: invalidate a token (logout)
// - Refresh: rotate a token, keeping the user binding
type SessionService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	sessionValidity time.Duration
}

// NewSessionService constructs a SessionService using repositories and server config.
func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *SessionService {
	return &SessionService{
		db:              db,
		repomanager:     m,
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// Issue generates a new random token for userID and persists the session.
func (s *SessionService) Issue(ctx context.Context, userID string) (string, error) {
	return s.IssueTx(ctx, s.db, userID)
}

// IssueTx is Issue running against the given handle, so callers can bundle
// token issuance with other writes in one transaction (registration does).
func (s *SessionService) IssueTx(ctx context.Context, db dbx.DBTX, userID string) (string, error) {
	token, err := common.MakeRandHexString(common.SessionTokenBytes)
	if err != nil {
		return "", common.ErrInternal
	}
	repo := s.repomanager.Sessions(db)
	if err := repo.Create(ctx, userID, token, s.sessionValidity); err != nil {
		return "", common.ErrInternal
	}
	return token, nil
}

// Resolve maps a token to an Identity. A missing, unknown, or expired token
// resolves to Anonymous without error; unknown and expired are deliberately
// indistinguishable to the caller. Only storage faults return an error.
func (s *SessionService) Resolve(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Anonymous(), nil
	}
	repo := s.repomanager.Sessions(s.db)
	session, err := repo.Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return Anonymous(), nil
		}
		return Anonymous(), common.ErrInternal
	}
	if session.ExpiresAt.Before(time.Now()) {
		return Anonymous(), nil
	}
	return Authenticated(session.UserID), nil
}

// Revoke deletes the session behind token. Revoking a token that no longer
// resolves is an error: the caller does not hold a valid session, so the
// operation fails with ErrUnauthenticated (a second logout is rejected).
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	identity, err := s.Resolve(ctx, token)
	if err != nil {
		return err
	}
	if identity.IsAnonymous() {
		return common.ErrUnauthenticated
	}
	repo := s.repomanager.Sessions(s.db)
	if err := repo.Delete(ctx, token); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// Refresh validates token and atomically replaces it with a new one bound to
// the same user. Delete and insert share one transaction, so there is no
// window where both tokens are valid or neither is. Once Refresh returns the
// old token resolves to Anonymous.
func (s *SessionService) Refresh(ctx context.Context, token string) (string, error) {
	identity, err := s.Resolve(ctx, token)
	if err != nil {
		return "", err
	}
	if identity.IsAnonymous() {
		return "", common.ErrUnauthenticated
	}

	var newToken string
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Sessions(tx)
		if err := repoTx.Delete(ctx, token); err != nil {
			return fmt.Errorf("error deleting session: %w", err)
		}
		var issueErr error
		newToken, issueErr = s.IssueTx(ctx, tx, identity.UserID())
		return issueErr
	}); err != nil {
		return "", err
	}
	return newToken, nil
}
