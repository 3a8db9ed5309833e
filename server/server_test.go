package server_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	fakecontentrepo "github.com/hotelvalmont/cms-server/content/repofake"
	fakenewsletterrepo "github.com/hotelvalmont/cms-server/newsletter/repofake"

	"github.com/hotelvalmont/cms-server/admins"
	fakeadminrepo "github.com/hotelvalmont/cms-server/admins/repofake"
	"github.com/hotelvalmont/cms-server/auth"
	"github.com/hotelvalmont/cms-server/content"
	"github.com/hotelvalmont/cms-server/internal/config"
	"github.com/hotelvalmont/cms-server/pagecache"
	"github.com/hotelvalmont/cms-server/server"
	"github.com/hotelvalmont/cms-server/token"
)

const (
	testAdminEmail    = "claire@hotelvalmont.fr"
	testAdminPassword = "Valmont2025"
	testSessionKey    = "test-session-signing-key"
	testRevalidateKey = "test-revalidate-secret"
)

// testFixture holds all test dependencies
type testFixture struct {
	server *server.Server
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	cfg := config.Config{
		Port:             "8080",
		Env:              "development",
		AppName:          "Hotel Valmont",
		SessionSecret:    testSessionKey,
		RevalidateSecret: testRevalidateKey,
		DataFolder:       t.TempDir(),
		AdminEmail:       testAdminEmail,
		AdminPassword:    testAdminPassword,
	}

	logger := zerolog.Nop()

	authService, err := auth.NewService(fakeadminrepo.NewFakeAdminRepo())
	require.NoError(t, err)

	cache := pagecache.NewMemory()
	coordinator := pagecache.NewCoordinator(cache, cfg.RevalidateSecret, logger)

	contentService, err := content.NewService(fakecontentrepo.NewFakeContentRepo(), coordinator, logger)
	require.NoError(t, err)

	srv, err := server.New(cfg, server.Services{
		Auth:        authService,
		Tokens:      token.NewAuthority([]byte(cfg.SessionSecret)),
		Content:     contentService,
		Coordinator: coordinator,
		Pages:       cache,
		Subscribers: fakenewsletterrepo.NewFakeNewsletterRepo(),
	}, logger)
	require.NoError(t, err)

	return &testFixture{server: srv}
}

func (f *testFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func (f *testFixture) login(t *testing.T) *http.Cookie {
	t.Helper()

	rec := f.do(jsonRequest(http.MethodPost, server.RouteAPILogin, map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	for _, c := range rec.Result().Cookies() {
		if c.Name == server.SessionCookieName {
			return c
		}
	}
	t.Fatal("login response did not set the session cookie")
	return nil
}

func jsonRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartUpload(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, server.RouteAPIAdminUpload, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestLoginSetsSessionCookie(t *testing.T) {
	f := setupTestFixture(t)

	cookie := f.login(t)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, "/", cookie.Path)
	require.Equal(t, int(token.SessionLifetime.Seconds()), cookie.MaxAge)
	require.NotEmpty(t, cookie.Value)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := setupTestFixture(t)

	wrongPassword := f.do(jsonRequest(http.MethodPost, server.RouteAPILogin, map[string]string{
		"email":    testAdminEmail,
		"password": "not-the-password",
	}))
	unknownEmail := f.do(jsonRequest(http.MethodPost, server.RouteAPILogin, map[string]string{
		"email":    "nobody@hotelvalmont.fr",
		"password": testAdminPassword,
	}))

	// Wrong password and unknown email must answer identically.
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLogoutClearsCookie(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodPost, server.RouteAPILogout, nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, server.SessionCookieName, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}

func TestMutationRequiresSession(t *testing.T) {
	f := setupTestFixture(t)

	body := map[string]any{"fields": map[string]string{"title": "Chambre Deluxe"}}

	rec := f.do(jsonRequest(http.MethodPost, "/api/rooms", body))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := jsonRequest(http.MethodPost, "/api/rooms", body)
	req.AddCookie(f.login(t))
	rec = f.do(req)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestContentReadsArePublic(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/rooms", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestExpiredSessionRejected(t *testing.T) {
	f := setupTestFixture(t)

	// Same signing key, but the token is already past its expiry.
	expired := token.NewAuthority([]byte(testSessionKey), token.WithLifetime(-time.Hour))
	raw, err := expired.Issue(admins.Info{ID: "a1", Email: testAdminEmail, DisplayName: "Claire"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, server.RouteAPIAdminUsers, nil)
	req.AddCookie(&http.Cookie{Name: server.SessionCookieName, Value: raw})
	rec := f.do(req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestForgedSessionRejected(t *testing.T) {
	f := setupTestFixture(t)

	forged := token.NewAuthority([]byte("some-other-signing-key"))
	raw, err := forged.Issue(admins.Info{ID: "a1", Email: testAdminEmail, DisplayName: "Claire"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, server.RouteAPIAdminUsers, nil)
	req.AddCookie(&http.Cookie{Name: server.SessionCookieName, Value: raw})
	rec := f.do(req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminUserListRequiresSession(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, server.RouteAPIAdminUsers, nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, server.RouteAPIAdminUsers, nil)
	req.AddCookie(f.login(t))
	rec = f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminPageRedirectsToLogin(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin", rec.Header().Get("Location"))

	rec = f.do(httptest.NewRequest(http.MethodGet, "/en/admin/dashboard", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/en/admin", rec.Header().Get("Location"))
}

func TestAdminLoginPageIsPublic(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "form")
}

func TestAdminPageServedWithSession(t *testing.T) {
	f := setupTestFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(f.login(t))
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "dashboard")
}

func TestPublicPageCaching(t *testing.T) {
	f := setupTestFixture(t)

	first := f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, "MISS", first.Header().Get("X-Cache"))
	require.Contains(t, first.Body.String(), "Hotel Valmont")

	second := f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "HIT", second.Header().Get("X-Cache"))
}

func TestPageHeroUpsertInvalidatesCachedPage(t *testing.T) {
	f := setupTestFixture(t)

	stale := f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "MISS", stale.Header().Get("X-Cache"))

	req := jsonRequest(http.MethodPut, "/api/page-heroes/"+content.HomeSlug, map[string]any{
		"fields": map[string]string{"title": "Bienvenue au Valmont", "title_en": "Welcome to the Valmont"},
	})
	req.AddCookie(f.login(t))
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	fresh := f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "MISS", fresh.Header().Get("X-Cache"))
	require.Contains(t, fresh.Body.String(), "Bienvenue au Valmont")

	english := f.do(httptest.NewRequest(http.MethodGet, "/en", nil))
	require.Equal(t, http.StatusOK, english.Code)
	require.Contains(t, english.Body.String(), "Welcome to the Valmont")
}

func TestUnknownPageIs404(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/spa-privatif", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLocalePrefixedPublicPage(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/de/chambres", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `lang="de"`)
}

func TestRevalidateRejectsBadSecret(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(jsonRequest(http.MethodPost, server.RouteAPIRevalidate, map[string]any{
		"secret": "wrong",
	}))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(jsonRequest(http.MethodPost, server.RouteAPIRevalidate, map[string]any{}))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRevalidateDefaultsToPublicRoutes(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(jsonRequest(http.MethodPost, server.RouteAPIRevalidate, map[string]any{
		"secret": testRevalidateKey,
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Revalidated []string `json:"revalidated"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// Every default route, fanned out across every locale variant.
	require.Len(t, resp.Revalidated, len(pagecache.DefaultRoutes)*3)
	require.Contains(t, resp.Revalidated, "/")
	require.Contains(t, resp.Revalidated, "/en")
	require.Contains(t, resp.Revalidated, "/de/chambres")
}

func TestNewsletterSubscribeIsPublic(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(jsonRequest(http.MethodPost, server.RouteAPINewsletter, map[string]string{
		"email": "guest@example.com",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(jsonRequest(http.MethodPost, server.RouteAPINewsletter, map[string]string{
		"email": "guest@example.com",
	}))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	f := setupTestFixture(t)
	cookie := f.login(t)

	req := jsonRequest(http.MethodPost, server.RouteAPIPassword, map[string]string{
		"current_password": "not-the-password",
		"new_password":     "Valmont2026",
	})
	req.AddCookie(cookie)
	rec := f.do(req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = jsonRequest(http.MethodPost, server.RouteAPIPassword, map[string]string{
		"current_password": testAdminPassword,
		"new_password":     "Valmont2026",
	})
	req.AddCookie(cookie)
	rec = f.do(req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLastAdminCannotBeDeleted(t *testing.T) {
	f := setupTestFixture(t)
	cookie := f.login(t)

	req := httptest.NewRequest(http.MethodGet, server.RouteAPIAdminUsers, nil)
	req.AddCookie(cookie)
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	var accounts []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accounts))
	require.Len(t, accounts, 1)

	del := httptest.NewRequest(http.MethodDelete, server.RouteAPIAdminUsers+"/"+accounts[0].ID, nil)
	del.AddCookie(cookie)
	rec = f.do(del)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestUploadStoresFile(t *testing.T) {
	f := setupTestFixture(t)

	req := multipartUpload(t, "brochure.pdf", []byte("%PDF-1.4 test"))
	req.AddCookie(f.login(t))
	rec := f.do(req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, strings.HasPrefix(resp.URL, "/uploads/"))
	require.True(t, strings.HasSuffix(resp.URL, "brochure.pdf"))

	served := f.do(httptest.NewRequest(http.MethodGet, resp.URL, nil))
	require.Equal(t, http.StatusOK, served.Code)
	require.Equal(t, "%PDF-1.4 test", served.Body.String())
}
