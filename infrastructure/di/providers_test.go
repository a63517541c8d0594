package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kindra-backend/application/services"
	"kindra-backend/infrastructure/config"
	"kindra-backend/infrastructure/persistence/memory"
	"kindra-backend/infrastructure/persistence/tracing"
	"kindra-backend/pkg/auth"
	"kindra-backend/pkg/observability"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Environment:      "development",
		StorageBackend:   config.StorageMemory,
		LogLevel:         "info",
		MetricsNamespace: "kindra",
		InsightCacheTTL:  300,
		RateLimitRPS:     10,
		RateLimitBurst:   20,
	}
}

func noopTracer(t *testing.T) *observability.TracerProvider {
	t.Helper()
	tp, err := ProvideTracerProvider(context.Background(), &config.Config{})
	require.NoError(t, err)
	return tp
}

func TestProvideRepositories(t *testing.T) {
	logger := zap.NewNop()

	t.Run("memory", func(t *testing.T) {
		repos, err := ProvideRepositories(memoryConfig(), nil, noopTracer(t), logger)
		require.NoError(t, err)
		assert.IsType(t, &memory.ConnectionRepository{}, repos.Connections)
		assert.NoError(t, repos.ready(context.Background()))
	})

	t.Run("memory with tracing", func(t *testing.T) {
		cfg := memoryConfig()
		cfg.EnableTracing = true
		repos, err := ProvideRepositories(cfg, nil, noopTracer(t), logger)
		require.NoError(t, err)
		assert.IsType(t, &tracing.MomentRepository{}, repos.Moments)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := memoryConfig()
		cfg.StorageBackend = "postgres"
		_, err := ProvideRepositories(cfg, nil, noopTracer(t), logger)
		assert.Error(t, err)
	})
}

func TestProvideJWTValidator(t *testing.T) {
	cfg := memoryConfig()
	v, err := ProvideJWTValidator(cfg, zap.NewNop())
	require.NoError(t, err)

	token, err := v.IssueToken("user-1", time.Hour, time.Now())
	require.NoError(t, err)
	claims, err := v.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)

	cfg.Environment = "production"
	_, err = ProvideJWTValidator(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestApplyOverlay(t *testing.T) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	insights := services.NewInsightService(nil, nil, nil, nil, nil, nil, nil, nil)
	limiter := auth.NewKeyedLimiter(1, 1)
	ttl := 0

	applyOverlay(&config.Overlay{
		LogLevel:        "debug",
		InsightCacheTTL: &ttl,
		RateLimit:       config.RateLimit{RPS: 5, Burst: 5},
	}, level, insights, limiter, zap.NewNop())

	assert.Equal(t, zapcore.DebugLevel, level.Level())
	assert.Equal(t, 0, insights.CacheTTL())

	for i := 0; i < 5; i++ {
		ok, err := limiter.Allow(context.Background(), "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	applyOverlay(&config.Overlay{LogLevel: "loud"}, level, insights, limiter, zap.NewNop())
	assert.Equal(t, zapcore.DebugLevel, level.Level())
}

func TestProvideWatcher_Disabled(t *testing.T) {
	w, err := ProvideWatcher(memoryConfig(), zap.NewAtomicLevel(), nil, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestProvideHTTPHandler_MemoryStack(t *testing.T) {
	cfg := memoryConfig()
	cfg.EnableMetrics = true
	logger := zap.NewNop()
	clock := ProvideClock()
	tp := noopTracer(t)

	repos, err := ProvideRepositories(cfg, nil, tp, logger)
	require.NoError(t, err)
	c := ProvideInMemoryCache()
	defer c.Close()
	collector := ProvideCollector(cfg)
	publisher := ProvideEventPublisher(cfg, nil, logger)
	recorder := ProvideMetricsRecorder(collector, ProvideCloudWatchRecorder(cfg, nil, logger))
	insights := ProvideInsightService(cfg, repos, ProvideEngine(clock, logger), c, publisher, recorder, logger)

	commandBus, err := ProvideCommandBus(repos, publisher, c, clock, logger)
	require.NoError(t, err)
	queryBus, err := ProvideQueryBus(cfg, repos, insights, clock, collector, tp, logger)
	require.NoError(t, err)
	validator, err := ProvideJWTValidator(cfg, logger)
	require.NoError(t, err)

	handler := ProvideHTTPHandler(cfg, commandBus, queryBus, validator, ProvideErrorHandler(cfg, logger),
		clock, collector, ProvideRateLimiter(cfg), repos, logger)

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/insights", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
