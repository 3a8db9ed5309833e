package server

import (
	"net/http"
	"path/filepath"
	"sort"
)

func (s *Server) initRoutes() {
	// Session
	s.RegisterRouteFunc("POST "+RouteAPILogin, s.LoginHandler())
	s.RegisterRouteFunc("POST "+RouteAPILogout, s.LogoutHandler())
	s.RegisterRouteFunc("POST "+RouteAPIPassword, s.ChangePasswordHandler())

	// Public API
	s.RegisterRouteFunc("POST "+RouteAPINewsletter, s.SubscribeHandler())
	s.RegisterRouteFunc("POST "+RouteAPIRevalidate, s.RevalidateHandler())

	// Content collections
	segments := make([]string, 0, len(entityRoutes))
	for segment := range entityRoutes {
		segments = append(segments, segment)
	}
	sort.Strings(segments)
	for _, segment := range segments {
		entityType := entityRoutes[segment]
		base := apiPrefix + segment
		s.RegisterRouteFunc("GET "+base, s.ListEntitiesHandler(entityType))
		s.RegisterRouteFunc("POST "+base, s.CreateEntityHandler(entityType))
		s.RegisterRouteFunc("GET "+base+"/{id}", s.GetEntityHandler(entityType))
		s.RegisterRouteFunc("PUT "+base+"/{id}", s.UpdateEntityHandler(entityType))
		s.RegisterRouteFunc("DELETE "+base+"/{id}", s.DeleteEntityHandler(entityType))
	}

	// Page heroes are addressed by page slug rather than id.
	s.RegisterRouteFunc("GET "+apiPrefix+"page-heroes/{slug}", s.GetPageHeroHandler())
	s.RegisterRouteFunc("PUT "+apiPrefix+"page-heroes/{slug}", s.UpsertPageHeroHandler())

	// Administrator accounts and uploads
	s.RegisterRouteFunc("GET "+RouteAPIAdminUsers, s.ListAdminsHandler())
	s.RegisterRouteFunc("POST "+RouteAPIAdminUsers, s.CreateAdminHandler())
	s.RegisterRouteFunc("DELETE "+RouteAPIAdminUsers+"/{id}", s.DeleteAdminHandler())
	s.RegisterRouteFunc("POST "+RouteAPIAdminUpload, s.UploadHandler())

	uploadsDir := filepath.Join(s.config.DataFolder, "uploads")
	s.RegisterRouteHandler("GET "+RouteUploads, http.StripPrefix(RouteUploads, http.FileServer(http.Dir(uploadsDir))))

	// Everything else is a locale-routed page.
	s.RegisterRouteFunc("GET /", s.PageHandler())
}
