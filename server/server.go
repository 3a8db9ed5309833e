// Package server exposes the HTTP surface of the CMS: public pages served
// through the rendered-page cache, the admin API, and the gatekeeper that
// fronts every request.
package server

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hotelvalmont/cms-server/auth"
	"github.com/hotelvalmont/cms-server/content"
	"github.com/hotelvalmont/cms-server/internal/config"
	"github.com/hotelvalmont/cms-server/newsletter"
	"github.com/hotelvalmont/cms-server/pagecache"
	"github.com/hotelvalmont/cms-server/token"
)

// Services holds all service dependencies for the Server.
type Services struct {
	Auth        *auth.Service
	Tokens      *token.Authority
	Content     *content.Service
	Coordinator *pagecache.Coordinator
	Pages       *pagecache.Cache
	Subscribers newsletter.Repo
}

type Server struct {
	config   config.Config
	log      zerolog.Logger
	mux      *http.ServeMux
	handler  http.Handler
	routes   []string
	services Services
}

func New(cfg config.Config, services Services, logger zerolog.Logger) (*Server, error) {
	if services.Auth == nil {
		return nil, errors.New("[Server New] auth service is required")
	}
	if services.Tokens == nil {
		return nil, errors.New("[Server New] token authority is required")
	}
	if services.Content == nil {
		return nil, errors.New("[Server New] content service is required")
	}
	if services.Coordinator == nil {
		return nil, errors.New("[Server New] invalidation coordinator is required")
	}
	if services.Pages == nil {
		return nil, errors.New("[Server New] page cache is required")
	}
	if services.Subscribers == nil {
		return nil, errors.New("[Server New] newsletter repo is required")
	}

	s := &Server{
		config:   cfg,
		log:      logger,
		mux:      http.NewServeMux(),
		services: services,
	}

	// Bootstrap: make sure an administrator exists before the first login
	if err := services.Auth.Bootstrap(context.Background(), cfg.AdminEmail, cfg.AdminPassword, "Administrator"); err != nil {
		return nil, errors.Wrap(err, "[Server New] bootstrap administrator")
	}

	s.initRoutes()
	s.logRoutes()

	// Every request passes the gatekeeper before any handler executes.
	s.handler = s.RecoverMiddleware(s.LoggingMiddleware(s.Gatekeeper(s.mux)))

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	for _, route := range s.routes {
		s.log.Debug().Str("route", route).Msg("registered")
	}
}
