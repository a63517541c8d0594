package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"kindra-backend/application/commands/bus"
	querybus "kindra-backend/application/queries/bus"
	"kindra-backend/domain/analytics"
	"kindra-backend/interfaces/http/rest/handlers"
	"kindra-backend/interfaces/http/rest/middleware"
	"kindra-backend/pkg/auth"
	pkgerrors "kindra-backend/pkg/errors"
)

// Options tunes the router
type Options struct {
	EnableCORS     bool
	AllowedOrigins []string
	RateLimitRPS   int

	// Metrics, when set, instruments every route and serves /metrics
	Metrics interface {
		middleware.HTTPObserver
		Handler() http.Handler
	}

	// Limiter, when set, applies per-IP rate limiting to /api/v1
	Limiter auth.RateLimiter

	// ReadinessChecks run on GET /ready
	ReadinessChecks map[string]handlers.ReadinessCheck
}

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	validator  middleware.TokenValidator
	errors     *pkgerrors.ErrorHandler
	clock      analytics.Clock
	logger     *zap.Logger
	opts       Options
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	validator middleware.TokenValidator,
	errs *pkgerrors.ErrorHandler,
	clock analytics.Clock,
	logger *zap.Logger,
	opts Options,
) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	if errs == nil {
		errs = pkgerrors.NewErrorHandler(logger, false)
	}
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		validator:  validator,
		errors:     errs,
		clock:      clock,
		logger:     logger,
		opts:       opts,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(middleware.RequestContext)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.errors.Middleware)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.opts.Metrics != nil {
		router.Use(middleware.Metrics(rt.opts.Metrics))
	}

	if rt.opts.EnableCORS {
		origins := rt.opts.AllowedOrigins
		if len(origins) == 0 {
			origins = []string{"http://localhost:3000"}
		}
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	health := handlers.NewHealthHandler(rt.opts.ReadinessChecks, rt.logger)
	router.Get("/health", health.Health)
	router.Get("/ready", health.Ready)
	if rt.opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.opts.Metrics.Handler())
	}

	deps := handlers.Deps{
		CommandBus: rt.commandBus,
		QueryBus:   rt.queryBus,
		Errors:     rt.errors,
		Clock:      rt.clock,
		Logger:     rt.logger,
	}

	router.Route("/api/v1", func(r chi.Router) {
		if rt.opts.Limiter != nil {
			r.Use(middleware.RateLimit(rt.opts.Limiter, rt.opts.RateLimitRPS, rt.errors))
		}
		r.Use(middleware.Authenticate(rt.validator, rt.errors, rt.logger))

		r.Route("/connections", func(r chi.Router) {
			h := handlers.NewConnectionHandler(deps)
			r.Post("/", h.CreateConnection)
			r.Get("/", h.ListConnections)
			r.Get("/{connectionID}", h.GetConnection)
			r.Get("/{connectionID}/insights", h.GetConnectionInsights)
		})

		r.Route("/moments", func(r chi.Router) {
			h := handlers.NewMomentHandler(deps)
			r.Post("/", h.RecordMoment)
			r.Get("/", h.ListMoments)
			r.Delete("/{momentID}", h.DeleteMoment)
		})

		r.Route("/cycles", func(r chi.Router) {
			h := handlers.NewCycleHandler(deps)
			r.Post("/", h.RecordCycle)
			r.Get("/", h.ListCycles)
			r.Get("/variability", h.GetVariability)
			r.Get("/prediction", h.GetPrediction)
		})

		r.Get("/insights", handlers.NewInsightHandler(deps).GetInsights)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errors.HandleStatus(w, r, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rt.errors.HandleStatus(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	return router
}
