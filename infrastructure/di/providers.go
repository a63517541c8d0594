package di

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"kindra-backend/application/commands"
	"kindra-backend/application/commands/bus"
	"kindra-backend/application/ports"
	querybus "kindra-backend/application/queries/bus"
	queryhandlers "kindra-backend/application/queries/handlers"
	"kindra-backend/application/services"
	"kindra-backend/domain/analytics"
	"kindra-backend/infrastructure/cache"
	"kindra-backend/infrastructure/config"
	"kindra-backend/infrastructure/messaging/eventbridge"
	"kindra-backend/infrastructure/messaging/local"
	"kindra-backend/infrastructure/persistence/dynamodb"
	"kindra-backend/infrastructure/persistence/memory"
	"kindra-backend/infrastructure/persistence/resilience"
	"kindra-backend/infrastructure/persistence/tracing"
	"kindra-backend/interfaces/http/rest"
	"kindra-backend/interfaces/http/rest/handlers"
	"kindra-backend/pkg/auth"
	pkgerrors "kindra-backend/pkg/errors"
	"kindra-backend/pkg/observability"
)

// developmentJWTSecret signs tokens when no secret is configured outside production
const developmentJWTSecret = "development-secret-change-in-production"

// Repositories groups the three stores
type Repositories struct {
	Connections ports.ConnectionRepository
	Moments     ports.MomentRepository
	Cycles      ports.CycleRepository

	// ready reports whether the backing store answers
	ready handlers.ReadinessCheck
}

// ProvideLogLevel parses LOG_LEVEL into a level the watcher can change later
func ProvideLogLevel(cfg *config.Config) (zap.AtomicLevel, error) {
	return zap.ParseAtomicLevel(cfg.LogLevel)
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = level

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("environment", cfg.Environment)), nil
}

// ProvideClock returns the wall clock
func ProvideClock() analytics.Clock {
	return analytics.SystemClock{}
}

// ProvideAWSConfig creates AWS configuration. Lambda deployments with
// tracing enabled get X-Ray subsegments on every SDK call.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.IsLambda && cfg.EnableTracing {
		observability.InstrumentAWS(&awsCfg)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideTracerProvider installs OpenTelemetry when ENABLE_TRACING is set
func ProvideTracerProvider(ctx context.Context, cfg *config.Config) (*observability.TracerProvider, error) {
	return observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.EnableTracing,
		ServiceName: "kindra-backend",
		Environment: cfg.Environment,
		Endpoint:    cfg.OTELEndpoint,
	})
}

// ProvideRepositories selects the storage backend and decorates it. DynamoDB
// repositories sit behind circuit breakers; both backends get spans when
// tracing is enabled.
func ProvideRepositories(
	cfg *config.Config,
	client *awsdynamodb.Client,
	tp *observability.TracerProvider,
	logger *zap.Logger,
) (Repositories, error) {
	var repos Repositories

	switch cfg.StorageBackend {
	case config.StorageDynamoDB:
		repos = Repositories{
			Connections: resilience.NewConnectionRepository(
				dynamodb.NewConnectionRepository(client, cfg.TableName, logger),
				resilience.DefaultBreakerConfig("dynamodb-connections"), logger),
			Moments: resilience.NewMomentRepository(
				dynamodb.NewMomentRepository(client, cfg.TableName, logger),
				resilience.DefaultBreakerConfig("dynamodb-moments"), logger),
			Cycles: resilience.NewCycleRepository(
				dynamodb.NewCycleRepository(client, cfg.TableName, logger),
				resilience.DefaultBreakerConfig("dynamodb-cycles"), logger),
			ready: func(ctx context.Context) error {
				_, err := client.DescribeTable(ctx, &awsdynamodb.DescribeTableInput{TableName: aws.String(cfg.TableName)})
				return err
			},
		}
	case config.StorageMemory:
		store := memory.NewStore()
		repos = Repositories{
			Connections: store.Connections(),
			Moments:     store.Moments(),
			Cycles:      store.Cycles(),
			ready:       func(context.Context) error { return nil },
		}
	default:
		return Repositories{}, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	if cfg.EnableTracing {
		repos.Connections = tracing.NewConnectionRepository(repos.Connections, tp)
		repos.Moments = tracing.NewMomentRepository(repos.Moments, tp)
		repos.Cycles = tracing.NewCycleRepository(repos.Cycles, tp)
	}

	logger.Info("Storage backend selected", zap.String("backend", cfg.StorageBackend))
	return repos, nil
}

// ProvideEventPublisher ships events to EventBridge when ENABLE_EVENTS is
// set and logs them otherwise
func ProvideEventPublisher(cfg *config.Config, client *awseventbridge.Client, logger *zap.Logger) ports.EventPublisher {
	if !cfg.EnableEvents {
		return local.NewPublisher(logger)
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideInMemoryCache creates the insight cache
func ProvideInMemoryCache() *cache.InMemoryCache {
	return cache.NewInMemoryCache(time.Minute)
}

// ProvideCollector creates the Prometheus collector
func ProvideCollector(cfg *config.Config) *observability.Collector {
	return observability.NewCollector(cfg.MetricsNamespace)
}

// ProvideCloudWatchRecorder is only active inside Lambda with metrics enabled
func ProvideCloudWatchRecorder(cfg *config.Config, client *awscloudwatch.Client, logger *zap.Logger) *observability.CloudWatchRecorder {
	if !cfg.IsLambda || !cfg.EnableMetrics {
		return observability.NewCloudWatchRecorder(cfg.MetricsNamespace, nil, logger)
	}
	return observability.NewCloudWatchRecorder(cfg.MetricsNamespace, client, logger)
}

// ProvideMetricsRecorder fans analytics measurements out to every recorder
func ProvideMetricsRecorder(collector *observability.Collector, cw *observability.CloudWatchRecorder) ports.MetricsRecorder {
	return observability.Recorders{collector, cw}
}

// ProvideEngine creates the analytics engine
func ProvideEngine(clock analytics.Clock, logger *zap.Logger) *analytics.Engine {
	return analytics.NewEngine(analytics.WithClock(clock), analytics.WithLogger(logger.Named("analytics")))
}

// ProvideInsightService creates the insight service
func ProvideInsightService(
	cfg *config.Config,
	repos Repositories,
	engine *analytics.Engine,
	c ports.Cache,
	publisher ports.EventPublisher,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *services.InsightService {
	svc := services.NewInsightService(repos.Connections, repos.Moments, repos.Cycles, engine, c, publisher, metrics, logger)
	svc.SetCacheTTL(cfg.InsightCacheTTL)
	return svc
}

// ProvideCommandBus creates the command bus with every handler registered
func ProvideCommandBus(
	repos Repositories,
	publisher ports.EventPublisher,
	c ports.Cache,
	clock analytics.Clock,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(bus.LoggingMiddleware(logger))
	err := commands.RegisterAll(commandBus, commands.Dependencies{
		Connections: repos.Connections,
		Moments:     repos.Moments,
		Cycles:      repos.Cycles,
		Publisher:   publisher,
		Cache:       c,
		Clock:       clock,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register command handlers: %w", err)
	}
	return commandBus, nil
}

// ProvideQueryBus creates the query bus with every handler registered
func ProvideQueryBus(
	cfg *config.Config,
	repos Repositories,
	insights *services.InsightService,
	clock analytics.Clock,
	collector *observability.Collector,
	tp *observability.TracerProvider,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	middlewares := []querybus.Middleware{querybus.LoggingMiddleware(logger, 500*time.Millisecond)}
	if cfg.EnableMetrics {
		middlewares = append(middlewares, querybus.MetricsMiddleware(collector))
	}
	if cfg.EnableTracing {
		middlewares = append(middlewares, querybus.TracingMiddleware(tp))
	}

	queryBus := querybus.NewQueryBus(middlewares...)
	if err := queryhandlers.RegisterAll(queryBus, repos.Connections, repos.Moments, repos.Cycles, insights, clock); err != nil {
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}
	return queryBus, nil
}

// ProvideJWTValidator creates the bearer-token validator
func ProvideJWTValidator(cfg *config.Config, logger *zap.Logger) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" && !cfg.IsProduction() {
		logger.Warn("JWT_SECRET not set, using the development secret")
		secret = developmentJWTSecret
	}
	return auth.NewJWTValidator(secret, cfg.JWTIssuer)
}

// ProvideRateLimiter creates the per-IP limiter
func ProvideRateLimiter(cfg *config.Config) *auth.KeyedLimiter {
	return auth.NewKeyedLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
}

// ProvideErrorHandler creates the HTTP error handler. Stack traces are only
// exposed in development.
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideWatcher watches the YAML overlay and applies runtime-tunable keys.
// Without CONFIG_FILE no watcher runs and nil is returned.
func ProvideWatcher(
	cfg *config.Config,
	level zap.AtomicLevel,
	insights *services.InsightService,
	limiter *auth.KeyedLimiter,
	logger *zap.Logger,
) (*config.Watcher, error) {
	if cfg.ConfigFile == "" {
		return nil, nil
	}

	watcher, err := config.NewWatcher(cfg.ConfigFile, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", cfg.ConfigFile, err)
	}
	watcher.OnChange(func(o *config.Overlay) {
		applyOverlay(o, level, insights, limiter, logger)
	})
	watcher.Start()
	return watcher, nil
}

func applyOverlay(o *config.Overlay, level zap.AtomicLevel, insights *services.InsightService, limiter *auth.KeyedLimiter, logger *zap.Logger) {
	if o.LogLevel != "" {
		if err := level.UnmarshalText([]byte(o.LogLevel)); err != nil {
			logger.Warn("Ignoring invalid log level", zap.String("logLevel", o.LogLevel), zap.Error(err))
		}
	}
	if o.InsightCacheTTL != nil {
		insights.SetCacheTTL(*o.InsightCacheTTL)
	}
	if o.RateLimit.RPS > 0 && o.RateLimit.Burst > 0 {
		limiter.SetLimit(o.RateLimit.RPS, o.RateLimit.Burst)
	}
	logger.Info("Runtime configuration applied",
		zap.String("logLevel", level.String()),
		zap.Int("insightCacheTTL", insights.CacheTTL()),
	)
}

// ProvideHTTPHandler builds the REST router
func ProvideHTTPHandler(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	validator *auth.JWTValidator,
	errs *pkgerrors.ErrorHandler,
	clock analytics.Clock,
	collector *observability.Collector,
	limiter *auth.KeyedLimiter,
	repos Repositories,
	logger *zap.Logger,
) http.Handler {
	opts := rest.Options{
		EnableCORS:      cfg.EnableCORS,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitRPS:    int(cfg.RateLimitRPS),
		Limiter:         limiter,
		ReadinessChecks: map[string]handlers.ReadinessCheck{"storage": repos.ready},
	}
	if cfg.EnableMetrics {
		opts.Metrics = collector
	}
	return rest.NewRouter(commandBus, queryBus, validator, errs, clock, logger, opts).Setup()
}
