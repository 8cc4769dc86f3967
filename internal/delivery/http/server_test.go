package http_test

import (
	"context"
	stderrors "errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learning-catalog/internal/config"
	server "github.com/learning-catalog/internal/delivery/http"
	"github.com/learning-catalog/internal/delivery/http/handler"
	"github.com/learning-catalog/internal/delivery/http/middleware"
	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/usecase"
)

type stubCheck struct{ err error }

func (s stubCheck) Health(context.Context) error { return s.err }

func newTestServer(checks map[string]handler.HealthChecker) *server.Server {
	cfg := &config.Config{
		Catalog: config.CatalogConfig{LocaleCookie: "catalog_language"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	logger := zap.NewNop()
	registryUC := usecase.NewRegistryUseCase(domain.Resources)
	locale := middleware.NewLocaleMatcher("fr", []string{"fr", "en"})

	return server.NewServer(cfg, logger, locale, server.Handlers{
		Health:  handler.NewHealthHandler("test", checks),
		Catalog: handler.NewCatalogHandler(nil, registryUC, logger),
		I18n:    handler.NewI18nHandler("catalog_language", locale),
	})
}

func TestServer_Routes(t *testing.T) {
	s := newTestServer(map[string]handler.HealthChecker{"postgres": stubCheck{}, "redis": stubCheck{}})

	t.Run("health", func(t *testing.T) {
		resp, err := s.App().Test(httptest.NewRequest("GET", "/api/v1/health", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("kinds", func(t *testing.T) {
		resp, err := s.App().Test(httptest.NewRequest("GET", "/api/v1/kinds", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), `"type":"sessionway"`)
	})

	t.Run("unknown route uses the error envelope", func(t *testing.T) {
		resp, err := s.App().Test(httptest.NewRequest("GET", "/api/v1/nope", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), `"code":"RESOURCE_NOT_FOUND"`)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := s.App().Test(httptest.NewRequest("GET", "/metrics", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "http_requests_total")
	})
}

func TestServer_HealthDegraded(t *testing.T) {
	s := newTestServer(map[string]handler.HealthChecker{"redis": stubCheck{err: stderrors.New("down")}})

	resp, err := s.App().Test(httptest.NewRequest("GET", "/api/v1/health", nil))

	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"redis":"down"`)
}
