package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, mutate func(cfg *config.Config)) *HTTP {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.App.Version = "1.2.3"
	cfg.DB.Driver = config.DriverMongo
	cfg.App.MaxBodyBytes = 1 << 20

	if mutate != nil {
		mutate(cfg)
	}

	otel := otelMocks.NewOtel()
	metrics := middleware.NewMetrics()
	mw := middleware.NewAppMiddleware(otel, cfg, cache.NewRedisCache(nil, otel), metrics)

	return New(cfg, router.New(router.DomainHandlers{}), mw, metrics)
}

func do(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	return rec, res
}

func TestRoot(t *testing.T) {
	server := newTestServer(t, nil)

	rec, res := do(t, server.Adaptor(), http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, res["success"])
	assert.Equal(t, "Hotel Management API", res["message"])
	assert.Equal(t, "1.2.3", res["version"])
}

func TestHealth(t *testing.T) {
	for _, path := range []string{"/health", "/api/health"} {
		t.Run(path, func(t *testing.T) {
			server := newTestServer(t, nil)

			rec, res := do(t, server.Adaptor(), http.MethodGet, path)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "operational", res["status"])
			assert.Equal(t, constant.ServerEnvProduction, res["environment"])
			assert.Equal(t, config.DriverMongo, res["database"])
			assert.NotEmpty(t, rec.Header().Get(constant.RequestHeaderRequestID))
		})
	}
}

func TestHealth_GracePeriod(t *testing.T) {
	server := newTestServer(t, nil)
	handler := server.Adaptor()

	server.state.Store(int32(ServerStateInGracePeriod))

	rec, res := do(t, handler, http.MethodGet, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, false, res["success"])
	assert.Equal(t, constant.ResponseErrorPrepareShutdown, res["message"])
}

func TestRouteNotFound(t *testing.T) {
	server := newTestServer(t, nil)

	rec, res := do(t, server.Adaptor(), http.MethodGet, "/api/unknown")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, res["success"])
	assert.Equal(t, "Route /api/unknown not found", res["message"])
}

func TestRecoverFromPanic(t *testing.T) {
	server := newTestServer(t, nil)

	// The room handler has no service wired, so the listing panics.
	rec, res := do(t, server.Adaptor(), http.MethodGet, "/api/rooms")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, failure.MessageInternalServerError, res["message"])
	assert.NotContains(t, res, "error")
}

func TestRateLimit(t *testing.T) {
	server := newTestServer(t, func(cfg *config.Config) {
		cfg.App.RateLimiter.Enable = true
		cfg.App.RateLimiter.MaxRequests = 2
		cfg.App.RateLimiter.WindowSeconds = 60
	})
	handler := server.Adaptor()

	for range 2 {
		rec, _ := do(t, handler, http.MethodGet, "/health")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get(constant.RequestHeaderRateLimit))
	}

	rec, res := do(t, handler, http.MethodGet, "/health")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, constant.ResponseErrorRequestLimitExceeded, res["message"])
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t, func(cfg *config.Config) {
		cfg.App.CORS.Enable = true
		cfg.App.CORS.AllowedOrigins = []string{"*"}
		cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/rooms", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	server.Adaptor().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost))
}
