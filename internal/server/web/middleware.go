package web

import (
	"context"
	"net/http"

	"github.com/monacoremo/postgrest-sessions-example/internal/common"
	"github.com/monacoremo/postgrest-sessions-example/internal/server/services"
)

type ctxKey string

const (
	identityKey ctxKey = "identity"
	tokenKey    ctxKey = "sessionToken"
)

// withIdentity resolves the session cookie into an Identity before any
// handler runs. A missing or invalid cookie yields Anonymous, never an
// error; only a storage fault aborts the request.
func (s *WebServer) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if c, err := r.Cookie(common.SessionCookieName); err == nil {
			token = c.Value
		}

		identity, err := s.sessions.Resolve(r.Context(), token)
		if err != nil {
			s.logger.Error(r.Context(), "session resolve failed", "error", err.Error())
			writeError(w, common.ErrInternal)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identityFrom returns the Identity stashed by withIdentity, defaulting to
// Anonymous when the middleware did not run (tests hitting handlers directly).
func identityFrom(ctx context.Context) services.Identity {
	if identity, ok := ctx.Value(identityKey).(services.Identity); ok {
		return identity
	}
	return services.Anonymous()
}

// tokenFrom returns the raw session token of the current request.
func tokenFrom(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey).(string); ok {
		return token
	}
	return ""
}
