package web

import (
	"net/http"

	"github.com/monacoremo/postgrest-sessions-example/internal/common"
)

// setSessionCookie transports a freshly issued token back to the client.
// HttpOnly keeps it away from scripts; SameSite=Lax prevents cross-site
// sends. Lifetime is enforced server-side, so no Expires is set here.
func (s *WebServer) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.cookieSecure,
	})
}

func (s *WebServer) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.cookieSecure,
		MaxAge:   -1,
	})
}
