package server

import (
	"context"
	"html/template"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/hotelvalmont/cms-server/content"
	"github.com/hotelvalmont/cms-server/internal/locales"
	"github.com/hotelvalmont/cms-server/pagecache"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
{{if .Subtitle}}<p>{{.Subtitle}}</p>{{end}}
</body>
</html>
`))

var adminLoginTemplate = template.Must(template.New("admin-login").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head><meta charset="utf-8"><title>{{.AppName}} - Administration</title></head>
<body>
<h1>{{.AppName}}</h1>
<form id="login" method="post" action="/api/admin/login">
<input type="email" name="email" autocomplete="username">
<input type="password" name="password" autocomplete="current-password">
<button type="submit">Connexion</button>
</form>
</body>
</html>
`))

var adminShellTemplate = template.Must(template.New("admin-shell").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head><meta charset="utf-8"><title>{{.AppName}} - Administration</title></head>
<body>
<header>Connecté : {{.DisplayName}}</header>
<main data-page="{{.Page}}"></main>
</body>
</html>
`))

// PageHandler serves every route the mux did not claim: the admin pages and
// the locale-routed public pages, the latter through the rendered-page
// cache.
func (s *Server) PageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale, logical := locales.Split(r.URL.Path)
		if logical != "/" {
			logical = strings.TrimSuffix(logical, "/")
		}

		switch {
		case logical == RouteAdminArea:
			s.renderAdminLogin(w, locale)
			return
		case strings.HasPrefix(logical, adminAreaPrefix):
			// The gatekeeper already authenticated this request.
			s.renderAdminShell(w, r, locale, strings.TrimPrefix(logical, adminAreaPrefix))
			return
		}

		if !isPublicRoute(logical) {
			http.NotFound(w, r)
			return
		}

		ctx := r.Context()
		qualified := locales.Qualify(locale, logical)

		if body, ok := s.services.Pages.Get(ctx, qualified); ok {
			writeHTML(w, "HIT", body)
			return
		}

		body, err := s.renderPage(ctx, locale, logical)
		if err != nil {
			s.log.Error().Err(err).Str("path", qualified).Msg("failed to render page")
			respondError(w, http.StatusInternalServerError, "failed to render page")
			return
		}

		if err := s.services.Pages.Set(ctx, qualified, body); err != nil {
			s.log.Error().Err(err).Str("path", qualified).Msg("failed to cache page")
		}
		writeHTML(w, "MISS", body)
	}
}

// renderPage produces the page body for one locale from the current
// content records.
func (s *Server) renderPage(ctx context.Context, locale, logical string) (string, error) {
	slug := content.HomeSlug
	if logical != "/" {
		slug = strings.TrimPrefix(logical, "/")
	}

	title := s.config.AppName
	subtitle := ""

	hero, err := s.services.Content.GetPageHero(ctx, slug)
	switch {
	case errors.Is(err, content.NotFoundErr):
		// No hero configured for this page yet; render with defaults.
	case err != nil:
		return "", errors.Wrap(err, "[Server.renderPage] GetPageHero")
	default:
		if t := hero.Fields.Localized("title", locale); t != "" {
			title = t
		}
		subtitle = hero.Fields.Localized("subtitle", locale)
	}

	var sb strings.Builder
	err = pageTemplate.Execute(&sb, struct {
		Lang     string
		Title    string
		Subtitle string
	}{Lang: locale, Title: title, Subtitle: subtitle})
	if err != nil {
		return "", errors.Wrap(err, "[Server.renderPage] execute template")
	}
	return sb.String(), nil
}

func (s *Server) renderAdminLogin(w http.ResponseWriter, locale string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = adminLoginTemplate.Execute(w, struct {
		Lang    string
		AppName string
	}{Lang: locale, AppName: s.config.AppName})
}

func (s *Server) renderAdminShell(w http.ResponseWriter, r *http.Request, locale, page string) {
	admin, ok := AdminFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, locales.Qualify(locale, RouteAdminArea), http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = adminShellTemplate.Execute(w, struct {
		Lang        string
		AppName     string
		DisplayName string
		Page        string
	}{Lang: locale, AppName: s.config.AppName, DisplayName: admin.DisplayName, Page: page})
}

func isPublicRoute(logical string) bool {
	for _, route := range pagecache.DefaultRoutes {
		if route == logical {
			return true
		}
	}
	return false
}

func writeHTML(w http.ResponseWriter, cacheState, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Cache", cacheState)
	_, _ = w.Write([]byte(body))
}
