//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"kindra-backend/application/ports"
	"kindra-backend/infrastructure/cache"
	"kindra-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogLevel,
	ProvideLogger,
	ProvideClock,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideTracerProvider,
	ProvideRepositories,
	ProvideEventPublisher,
	ProvideInMemoryCache,
	wire.Bind(new(ports.Cache), new(*cache.InMemoryCache)),
	ProvideCollector,
	ProvideCloudWatchRecorder,
	ProvideMetricsRecorder,
	ProvideEngine,
	ProvideInsightService,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideJWTValidator,
	ProvideRateLimiter,
	ProvideErrorHandler,
	ProvideWatcher,
	ProvideHTTPHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
