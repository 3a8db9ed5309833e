package server

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/hotelvalmont/cms-server/newsletter"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

// SubscribeHandler records a newsletter subscription. Visitors reach it
// without a session.
func (s *Server) SubscribeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req subscribeRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := newsletter.ValidateEmail(req.Email); err != nil {
			respondError(w, http.StatusBadRequest, "invalid email address")
			return
		}

		err := s.services.Subscribers.Subscribe(r.Context(), &newsletter.Subscriber{Email: req.Email})
		switch {
		case errors.Is(err, newsletter.AlreadySubscribedErr):
			respondError(w, http.StatusConflict, "already subscribed")
		case err != nil:
			respondError(w, http.StatusInternalServerError, "failed to subscribe")
		default:
			respondJSON(w, http.StatusCreated, map[string]bool{"subscribed": true})
		}
	}
}
