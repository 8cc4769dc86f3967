package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/learning-catalog/internal/config"
	"github.com/learning-catalog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*client, *int) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	cfg := &config.GeocoderConfig{
		BaseURL:        server.URL + "/",
		UserAgent:      "learning-catalog-test/1.0",
		RequestTimeout: 2 * time.Second,
	}
	return NewClient(cfg, zap.NewNop()).(*client), &calls
}

func TestClient_Geocode(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "10 rue de Rivoli, Paris", r.URL.Query().Get("q"))
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			assert.Equal(t, "learning-catalog-test/1.0", r.Header.Get("User-Agent"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"lat":"48.8556","lon":"2.3601","display_name":"10, Rue de Rivoli, Paris, France"}]`))
		})

		res, err := c.Geocode(context.Background(), "10 rue de Rivoli, Paris")

		require.NoError(t, err)
		assert.Equal(t, "10, Rue de Rivoli, Paris, France", res.Address)
		assert.Equal(t, domain.Point{Lat: 48.8556, Lon: 2.3601}, res.Location)
	})

	t.Run("empty result", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		})

		_, err := c.Geocode(context.Background(), "nowhere")

		assert.ErrorIs(t, err, ErrNoResult)
	})

	t.Run("server error is not retried", func(t *testing.T) {
		c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := c.Geocode(context.Background(), "Paris")

		assert.Error(t, err)
		assert.Equal(t, 1, *calls)
	})
}

func TestClient_Reverse(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/reverse", r.URL.Path)
			assert.Equal(t, "48.8566", r.URL.Query().Get("lat"))
			assert.Equal(t, "2.3522", r.URL.Query().Get("lon"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"lat":"48.8566","lon":"2.3522","display_name":"Paris, France"}`))
		})

		res, err := c.Reverse(context.Background(), domain.Point{Lat: 48.8566, Lon: 2.3522})

		require.NoError(t, err)
		assert.Equal(t, "Paris, France", res.Address)
	})

	t.Run("unable to geocode", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"error":"Unable to geocode"}`))
		})

		_, err := c.Reverse(context.Background(), domain.Point{Lat: 0, Lon: -160})

		assert.ErrorIs(t, err, ErrNoResult)
	})
}
