package server

import (
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/hotelvalmont/cms-server/auth"
	"github.com/hotelvalmont/cms-server/token"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// LoginHandler verifies credentials and sets the session cookie. Wrong
// password and unknown email answer identically.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		info, err := s.services.Auth.VerifyCredentials(r.Context(), req.Email, req.Password)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		raw, err := s.services.Tokens.Issue(info)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to issue session token")
			respondError(w, http.StatusInternalServerError, "failed to create session")
			return
		}

		s.setSessionCookie(w, raw)
		respondJSON(w, http.StatusOK, loginResponse{Email: info.Email, DisplayName: info.DisplayName})
	}
}

// LogoutHandler clears the session cookie. It succeeds regardless of
// whether a valid session was presented.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.clearSessionCookie(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePasswordHandler rehashes the caller's password. The gatekeeper has
// already authenticated the session by the time this runs.
func (s *Server) ChangePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, ok := AdminFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		var req changePasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err := s.services.Auth.ChangePassword(r.Context(), admin.ID, req.CurrentPassword, req.NewPassword)
		switch {
		case errors.Is(err, auth.InvalidCredentialsErr):
			respondError(w, http.StatusUnauthorized, "invalid credentials")
		case err != nil:
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}
}

func (s *Server) setSessionCookie(w http.ResponseWriter, raw string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    raw,
		Path:     "/",
		MaxAge:   int(token.SessionLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.config.IsProduction(),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.config.IsProduction(),
	})
}
