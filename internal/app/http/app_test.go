package httpapp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wedding_site/internal/config"
	"wedding_site/internal/lib/logger/handlers/slogdiscard"
	httprouters "wedding_site/internal/transport/http"

	"github.com/stretchr/testify/assert"
)

func newServer(enforce bool) *Server {
	log := slogdiscard.NewDiscardLogger()
	routers := httprouters.NewRouter(log, nil, nil, nil, nil, nil, nil, nil)

	s := New(log, "localhost", "0", config.AuthConfig{Header: "Cf-Access-Jwt-Assertion", Enforce: enforce}, 1024, routers)
	s.BuildRouters()

	return s
}

func TestHealth(t *testing.T) {
	s := newServer(true)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestAdminRequiresAssertion(t *testing.T) {
	s := newServer(true)

	for _, target := range []string{"/api/admin/rsvps", "/api/admin/pages", "/api/admin/gallery", "/api/admin/settings"} {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "unauthorized", target)
	}
}

func TestUploadBodyLimit(t *testing.T) {
	s := newServer(false)

	body := strings.Repeat("x", 1024+128*1024)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/gallery/upload", strings.NewReader(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(true)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
