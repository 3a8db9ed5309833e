package server

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/hotelvalmont/cms-server/pagecache"
)

type revalidateRequest struct {
	Secret string   `json:"secret"`
	Paths  []string `json:"paths,omitempty"`
}

type revalidateResponse struct {
	Revalidated []string `json:"revalidated"`
}

// RevalidateHandler is the secret-gated bulk invalidation entry point. It
// needs no session: infrastructure calls it, not a logged-in editor.
func (s *Server) RevalidateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req revalidateRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		invalidated, err := s.services.Coordinator.BulkInvalidate(r.Context(), req.Secret, req.Paths)
		if err != nil {
			if errors.Is(err, pagecache.ForbiddenErr) {
				respondError(w, http.StatusUnauthorized, "invalid revalidation secret")
				return
			}
			respondError(w, http.StatusInternalServerError, "revalidation failed")
			return
		}

		respondJSON(w, http.StatusOK, revalidateResponse{Revalidated: invalidated})
	}
}
