package server

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/hotelvalmont/cms-server/content"
)

// entityRoutes maps API path segments to entity types. Adding a type here
// is all it takes to expose its CRUD surface; protection comes from the
// classifier, not from per-route wiring.
var entityRoutes = map[string]content.Type{
	"heroes":       content.TypeHero,
	"about":        content.TypeAbout,
	"features":     content.TypeFeature,
	"rooms":        content.TypeRoom,
	"testimonials": content.TypeTestimonial,
	"gallery":      content.TypeGalleryImage,
	"events":       content.TypeEvent,
	"gift-cards":   content.TypeGiftCard,
	"seminars":     content.TypeSeminar,
}

type entityRequest struct {
	Fields   content.Fields `json:"fields"`
	Position int            `json:"position"`
}

func (s *Server) ListEntitiesHandler(t content.Type) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderBy := ""
		if r.URL.Query().Get("order") == "position" {
			orderBy = "position"
		}

		list, err := s.services.Content.List(r.Context(), t, orderBy)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load content")
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

func (s *Server) GetEntityHandler(t content.Type) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := s.services.Content.Get(r.Context(), t, r.PathValue("id"))
		switch {
		case errors.Is(err, content.NotFoundErr):
			respondError(w, http.StatusNotFound, "not found")
		case err != nil:
			respondError(w, http.StatusInternalServerError, "failed to load content")
		default:
			respondJSON(w, http.StatusOK, e)
		}
	}
}

func (s *Server) CreateEntityHandler(t content.Type) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entityRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := s.services.Content.Create(r.Context(), &content.Entity{
			Type:     t,
			Fields:   req.Fields,
			Position: req.Position,
		})
		switch {
		case errors.Is(err, content.InvalidEntityErr):
			respondError(w, http.StatusBadRequest, err.Error())
		case err != nil:
			respondError(w, http.StatusInternalServerError, "failed to save content")
		default:
			respondJSON(w, http.StatusCreated, created)
		}
	}
}

func (s *Server) UpdateEntityHandler(t content.Type) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entityRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		updated, err := s.services.Content.Update(r.Context(), &content.Entity{
			ID:       r.PathValue("id"),
			Type:     t,
			Fields:   req.Fields,
			Position: req.Position,
		})
		switch {
		case errors.Is(err, content.NotFoundErr):
			respondError(w, http.StatusNotFound, "not found")
		case errors.Is(err, content.InvalidEntityErr):
			respondError(w, http.StatusBadRequest, err.Error())
		case err != nil:
			respondError(w, http.StatusInternalServerError, "failed to save content")
		default:
			respondJSON(w, http.StatusOK, updated)
		}
	}
}

func (s *Server) DeleteEntityHandler(t content.Type) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.services.Content.Delete(r.Context(), t, r.PathValue("id"))
		switch {
		case errors.Is(err, content.NotFoundErr):
			respondError(w, http.StatusNotFound, "not found")
		case err != nil:
			respondError(w, http.StatusInternalServerError, "failed to delete content")
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}
}

type pageHeroRequest struct {
	Fields content.Fields `json:"fields"`
}

func (s *Server) GetPageHeroHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := s.services.Content.GetPageHero(r.Context(), r.PathValue("slug"))
		switch {
		case errors.Is(err, content.NotFoundErr):
			respondError(w, http.StatusNotFound, "not found")
		case err != nil:
			respondError(w, http.StatusInternalServerError, "failed to load content")
		default:
			respondJSON(w, http.StatusOK, e)
		}
	}
}

func (s *Server) UpsertPageHeroHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pageHeroRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		hero, err := s.services.Content.UpsertPageHero(r.Context(), r.PathValue("slug"), req.Fields)
		switch {
		case errors.Is(err, content.InvalidEntityErr):
			respondError(w, http.StatusBadRequest, err.Error())
		case err != nil:
			respondError(w, http.StatusInternalServerError, "failed to save content")
		default:
			respondJSON(w, http.StatusOK, hero)
		}
	}
}
