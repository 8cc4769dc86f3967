package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learning-catalog/internal/delivery/http/handler"
	"github.com/learning-catalog/internal/delivery/http/middleware"
	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/learning-catalog/internal/usecase"
)

// fakeResources serves a fixed set of resources; other methods are not expected.
type fakeResources struct {
	repository.ResourceRepository
	byID map[int64]*domain.Resource
}

func (f *fakeResources) GetByID(_ context.Context, id int64) (*domain.Resource, error) {
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, errors.ErrResourceNotFound
}

func (f *fakeResources) GetBySlug(_ context.Context, parentID *int64, typ, slug string) (*domain.Resource, error) {
	for _, r := range f.byID {
		if r.Type == typ && r.Slug == slug && sameParent(r.ParentID, parentID) {
			return r, nil
		}
	}
	return nil, errors.ErrResourceNotFound
}

func (f *fakeResources) Ancestors(_ context.Context, id int64) ([]*domain.Resource, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, errors.ErrResourceNotFound
	}
	chain := []*domain.Resource{r}
	for r.ParentID != nil {
		r = f.byID[*r.ParentID]
		chain = append([]*domain.Resource{r}, chain...)
	}
	return chain, nil
}

func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// nopCache never hits.
type nopCache struct {
	repository.CacheRepository
}

func (nopCache) GetResource(context.Context, int64) (*domain.Resource, error) { return nil, nil }
func (nopCache) SetResource(context.Context, *domain.Resource, time.Duration) error {
	return nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func newResourceApp() *fiber.App {
	root := int64(1)
	resources := &fakeResources{byID: map[int64]*domain.Resource{
		1: {ID: 1, Type: "way", Name: "Jardinage", Slug: "jardinage", Public: true},
		2: {ID: 2, Type: "meeting", Name: "Atelier", Slug: "atelier", ParentID: &root, Public: true},
		3: {ID: 3, Type: "wiki", Name: "Orphelin", Slug: "orphelin", Public: true},
	}}
	logger := zap.NewNop()
	resourceUC := usecase.NewResourceUseCase(resources, nil, nil, nil, nopCache{}, nil, nil, logger, time.Minute, time.Minute)
	registryUC := usecase.NewRegistryUseCase(domain.Resources)

	resourceHandler := handler.NewResourceHandler(resourceUC, logger)
	catalogHandler := handler.NewCatalogHandler(resourceUC, registryUC, logger)

	app := fiber.New()
	app.Use(middleware.Locale("catalog_language", middleware.NewLocaleMatcher("fr", []string{"fr", "en"})))
	app.Get("/resources/:id", resourceHandler.Get)
	app.Post("/resources", resourceHandler.Create)
	app.Get("/resources/:id/url", resourceHandler.URL)
	app.Get("/kinds", catalogHandler.Kinds)
	app.Get("/search-engines/:type", catalogHandler.SearchURL)
	app.Get("/catalog/*", catalogHandler.Resolve)
	return app
}

func TestResourceHandler_Get(t *testing.T) {
	app := newResourceApp()

	t.Run("found", func(t *testing.T) {
		status, env := do(t, app, "GET", "/resources/2", "")

		require.Equal(t, fiber.StatusOK, status)
		var res struct {
			Slug        string `json:"slug"`
			URL         string `json:"url"`
			DisplayType string `json:"display_type"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, "atelier", res.Slug)
		assert.Equal(t, "/catalog/way/jardinage/meeting/atelier/", res.URL)
		assert.Equal(t, "Meeting", res.DisplayType)
	})

	t.Run("not found", func(t *testing.T) {
		status, env := do(t, app, "GET", "/resources/42", "")

		assert.Equal(t, fiber.StatusNotFound, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "RESOURCE_NOT_FOUND", env.Error.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		status, env := do(t, app, "GET", "/resources/abc", "")

		assert.Equal(t, fiber.StatusBadRequest, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "id", env.Error.Details["field"])
	})
}

func TestResourceHandler_URL_Parentless(t *testing.T) {
	app := newResourceApp()

	status, env := do(t, app, "GET", "/resources/3/url", "")

	assert.Equal(t, fiber.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Resource is not filed under a way", env.Error.Message)
}

func TestResourceHandler_Create_Validation(t *testing.T) {
	app := newResourceApp()

	t.Run("malformed body", func(t *testing.T) {
		status, env := do(t, app, "POST", "/resources", "{")

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		status, env := do(t, app, "POST", "/resources", `{"type":"way"}`)

		assert.Equal(t, fiber.StatusBadRequest, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "name", env.Error.Details["field"])
		assert.Equal(t, "This field is required", env.Error.Message)
	})
}

func TestCatalogHandler_Resolve(t *testing.T) {
	app := newResourceApp()

	status, env := do(t, app, "GET", "/catalog/way/jardinage/meeting/atelier/", "")
	require.Equal(t, fiber.StatusOK, status)
	var res struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, int64(2), res.ID)

	status, _ = do(t, app, "GET", "/catalog/wiki/orphelin/", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCatalogHandler_SearchURL(t *testing.T) {
	app := newResourceApp()

	status, env := do(t, app, "GET", "/search-engines/wiki?q=logiciel%20libre", "")
	require.Equal(t, fiber.StatusOK, status)
	var res struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "https://fr.wikipedia.org/w/index.php?search=logiciel+libre", res.URL)

	status, env = do(t, app, "GET", "/search-engines/way?q=x", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "SEARCH_ENGINE_NOT_FOUND", env.Error.Code)
}

func TestI18nHandler_SetLanguage(t *testing.T) {
	app := fiber.New()
	h := handler.NewI18nHandler("catalog_language", middleware.NewLocaleMatcher("fr", []string{"fr", "en"}))
	app.Post("/i18n/setlang", h.SetLanguage)

	t.Run("sets the cookie", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/i18n/setlang", strings.NewReader(`{"language":"en-US"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		cookie := resp.Header.Get("Set-Cookie")
		assert.Contains(t, cookie, "catalog_language=en")
		assert.Contains(t, cookie, "path=/")
	})

	t.Run("unsupported", func(t *testing.T) {
		status, env := do(t, app, "POST", "/i18n/setlang", `{"language":"ja"}`)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "language", env.Error.Details["field"])
	})
}
