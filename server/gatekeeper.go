package server

import (
	"net/http"

	"github.com/hotelvalmont/cms-server/internal/locales"
	"github.com/hotelvalmont/cms-server/token"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "admin_session"

// Gatekeeper is the single request-time decision point: it classifies the
// request, checks the session where the class demands one, and either
// forwards, rejects, or redirects. It runs before any handler logic and is
// evaluated exactly once per request.
func (s *Server) Gatekeeper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch Classify(r.URL.Path, r.Method) {
		case RoutePublic, RoutePassThrough:
			next.ServeHTTP(w, r)

		case RouteMutationGuarded, RouteAlwaysGuarded:
			claims, ok := s.sessionClaims(r)
			if !ok {
				// API clients get a rejection, never a redirect.
				respondError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(contextWithAdmin(r.Context(), claims.Info())))

		case RouteAdminPageGuarded:
			claims, ok := s.sessionClaims(r)
			if !ok {
				// A human is browsing: steer them to the login page under
				// the locale they were using. The default locale stays
				// unprefixed.
				locale, _ := locales.Split(r.URL.Path)
				http.Redirect(w, r, locales.Qualify(locale, RouteAdminArea), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(contextWithAdmin(r.Context(), claims.Info())))
		}
	})
}

// sessionClaims extracts and verifies the session cookie. A missing cookie,
// a malformed token, a bad signature and an expired token all report the
// same way.
func (s *Server) sessionClaims(r *http.Request) (*token.Claims, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, false
	}
	return s.services.Tokens.Verify(cookie.Value)
}
