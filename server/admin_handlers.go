package server

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hotelvalmont/cms-server/auth"
)

// ListAdminsHandler returns the non-secret projection of every
// administrator account.
func (s *Server) ListAdminsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.services.Auth.ListAdmins(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to list administrators")
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

type createAdminRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func (s *Server) CreateAdminHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAdminRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		admin, err := s.services.Auth.CreateAdmin(r.Context(), req.Email, req.Password, req.DisplayName)
		switch {
		case errors.Is(err, auth.AdminExistsErr):
			respondError(w, http.StatusConflict, "administrator already exists")
		case err != nil:
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondJSON(w, http.StatusCreated, admin.Info())
		}
	}
}

// DeleteAdminHandler removes an administrator account. The last remaining
// account cannot be removed.
func (s *Server) DeleteAdminHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.services.Auth.DeleteAdmin(r.Context(), r.PathValue("id"))
		switch {
		case errors.Is(err, auth.LastAdminErr):
			respondError(w, http.StatusConflict, "cannot remove the last administrator")
		case err != nil:
			respondError(w, http.StatusInternalServerError, "failed to remove administrator")
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}
}

const maxUploadBytes = 20 << 20 // 20 MiB

// UploadHandler stores an uploaded file under the data folder and returns
// its public URL.
func (s *Server) UploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			respondError(w, http.StatusBadRequest, "missing file field")
			return
		}
		defer file.Close()

		uploadDir := filepath.Join(s.config.DataFolder, "uploads")
		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to store file")
			return
		}

		// Prefix with a UUID so uploads never collide or overwrite.
		name := uuid.New().String() + "-" + filepath.Base(header.Filename)
		dst, err := os.Create(filepath.Join(uploadDir, name))
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to store file")
			return
		}
		defer dst.Close()

		if _, err := io.Copy(dst, file); err != nil {
			respondError(w, http.StatusInternalServerError, "failed to store file")
			return
		}

		respondJSON(w, http.StatusCreated, map[string]string{"url": RouteUploads + name})
	}
}
