package di

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"kindra-backend/application/commands/bus"
	querybus "kindra-backend/application/queries/bus"
	"kindra-backend/application/services"
	"kindra-backend/domain/analytics"
	"kindra-backend/infrastructure/cache"
	"kindra-backend/infrastructure/config"
	"kindra-backend/pkg/auth"
	"kindra-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	LogLevel     zap.AtomicLevel
	Clock        analytics.Clock
	Repositories Repositories
	Cache        *cache.InMemoryCache
	Metrics      *observability.Collector
	CloudWatch   *observability.CloudWatchRecorder
	Tracer       *observability.TracerProvider
	Insights     *services.InsightService
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	Validator    *auth.JWTValidator
	Limiter      *auth.KeyedLimiter
	Watcher      *config.Watcher
	Handler      http.Handler
}

// Close releases background resources in reverse start order
func (c *Container) Close(ctx context.Context) error {
	if c.Watcher != nil {
		c.Watcher.Stop()
	}
	if c.CloudWatch != nil {
		if err := c.CloudWatch.Flush(ctx); err != nil {
			c.Logger.Warn("Final metrics flush failed", zap.Error(err))
		}
	}
	if c.Cache != nil {
		c.Cache.Close()
	}

	var err error
	if c.Tracer != nil {
		err = c.Tracer.Shutdown(ctx)
	}
	_ = c.Logger.Sync()
	return err
}
