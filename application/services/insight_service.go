package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"kindra-backend/application/ports"
	"kindra-backend/domain/analytics"
	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
	"kindra-backend/domain/events"
)

// DefaultInsightCacheTTL is the insight cache lifetime in seconds
const DefaultInsightCacheTTL = 300

// Metric kinds reported by the service
const (
	KindAggregate   = "aggregate"
	KindConnection  = "connection"
	KindVariability = "variability"
	KindPrediction  = "prediction"
)

// InsightService loads a user's records and runs the analytics engine over
// them. Query handlers and the CLI share it so caching, events and metrics
// behave the same on every surface.
type InsightService struct {
	connections ports.ConnectionRepository
	moments     ports.MomentRepository
	cycles      ports.CycleRepository
	engine      *analytics.Engine
	cache       ports.Cache
	publisher   ports.EventPublisher
	metrics     ports.MetricsRecorder
	logger      *zap.Logger
	cacheTTL    atomic.Int64
}

// NewInsightService creates a new insight service. Cache and publisher may be nil.
func NewInsightService(
	connections ports.ConnectionRepository,
	moments ports.MomentRepository,
	cycles ports.CycleRepository,
	engine *analytics.Engine,
	cache ports.Cache,
	publisher ports.EventPublisher,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *InsightService {
	if engine == nil {
		engine = analytics.NewEngine()
	}
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &InsightService{
		connections: connections,
		moments:     moments,
		cycles:      cycles,
		engine:      engine,
		cache:       cache,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
	s.cacheTTL.Store(DefaultInsightCacheTTL)
	return s
}

// SetCacheTTL changes the insight cache lifetime. Zero or less disables caching.
func (s *InsightService) SetCacheTTL(seconds int) {
	s.cacheTTL.Store(int64(seconds))
}

// CacheTTL returns the current insight cache lifetime in seconds
func (s *InsightService) CacheTTL() int {
	return int(s.cacheTTL.Load())
}

// AggregateCacheKey is the cache key of the user's aggregate insights
func AggregateCacheKey(userID valueobjects.UserID) string {
	return fmt.Sprintf("insights:%s:aggregate", userID.String())
}

// ConnectionCacheKey is the cache key of one connection's insights
func ConnectionCacheKey(userID valueobjects.UserID, connectionID valueobjects.ConnectionID) string {
	return fmt.Sprintf("insights:%s:connection:%s", userID.String(), connectionID.String())
}

// AnalyticsInsights returns the cross-connection insights of the user
func (s *InsightService) AnalyticsInsights(ctx context.Context, userID valueobjects.UserID) ([]entities.Insight, error) {
	key := AggregateCacheKey(userID)
	if cached, ok := s.cached(ctx, key); ok {
		return cached, nil
	}

	conns, err := s.connections.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	moments, err := s.moments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	insights := s.engine.AnalyticsInsights(conns, moments)
	s.metrics.RecordAnalysisDuration(KindAggregate, time.Since(start))
	s.metrics.RecordInsights(KindAggregate, len(insights))

	s.logger.Debug("Aggregate insights generated",
		zap.String("userId", userID.String()),
		zap.Int("connections", len(conns)),
		zap.Int("moments", len(moments)),
		zap.Int("insights", len(insights)),
	)

	s.publishGenerated(ctx, userID, KindAggregate, insights)
	s.store(ctx, key, insights)
	return insights, nil
}

// ConnectionInsights returns the insights for a single connection. Cycles
// logged for the connection are preferred; without them the user's own
// cycles are used.
func (s *InsightService) ConnectionInsights(ctx context.Context, userID valueobjects.UserID, connectionID valueobjects.ConnectionID) ([]entities.Insight, error) {
	key := ConnectionCacheKey(userID, connectionID)
	if cached, ok := s.cached(ctx, key); ok {
		return cached, nil
	}

	conn, err := s.connections.GetByID(ctx, userID, connectionID)
	if err != nil {
		return nil, err
	}
	moments, err := s.moments.ListByConnection(ctx, userID, connectionID)
	if err != nil {
		return nil, err
	}
	cycles, err := s.resolveCycles(ctx, userID, &connectionID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	insights := s.engine.ConnectionInsights(conn, moments, cycles)
	s.metrics.RecordAnalysisDuration(KindConnection, time.Since(start))
	s.metrics.RecordInsights(KindConnection, len(insights))
	s.recordSkipped(analytics.AssociateCycles(moments, cycles))

	s.publishGenerated(ctx, userID, connectionID.String(), insights)
	s.store(ctx, key, insights)
	return insights, nil
}

// CycleVariability summarizes the spread of cycle lengths. The result is nil
// when fewer than two cycles are available.
func (s *InsightService) CycleVariability(ctx context.Context, userID valueobjects.UserID, connectionID *valueobjects.ConnectionID) (*analytics.CycleVariability, error) {
	cycles, err := s.resolveCycles(ctx, userID, connectionID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	v := s.engine.CycleVariability(cycles)
	s.metrics.RecordAnalysisDuration(KindVariability, time.Since(start))
	return v, nil
}

// PredictOptimalTiming projects the next start of phase, or of the strongest
// phase when phase is empty. A nil prediction means there was not enough data.
func (s *InsightService) PredictOptimalTiming(ctx context.Context, userID valueobjects.UserID, connectionID *valueobjects.ConnectionID, phase valueobjects.Phase) (*analytics.TimingPrediction, error) {
	var (
		moments []*entities.Moment
		err     error
	)
	if connectionID != nil {
		if _, err = s.connections.GetByID(ctx, userID, *connectionID); err != nil {
			return nil, err
		}
		moments, err = s.moments.ListByConnection(ctx, userID, *connectionID)
	} else {
		moments, err = s.moments.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	cycles, err := s.resolveCycles(ctx, userID, connectionID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	prediction := s.engine.PredictOptimalTiming(moments, cycles, phase)
	s.metrics.RecordAnalysisDuration(KindPrediction, time.Since(start))
	return prediction, nil
}

// resolveCycles falls back to the user's own cycles when none were logged
// for the connection.
func (s *InsightService) resolveCycles(ctx context.Context, userID valueobjects.UserID, connectionID *valueobjects.ConnectionID) ([]*entities.CycleRecord, error) {
	cycles, err := s.cycles.ListByConnection(ctx, userID, connectionID)
	if err != nil {
		return nil, err
	}
	if len(cycles) > 0 || connectionID == nil {
		return cycles, nil
	}
	return s.cycles.ListByConnection(ctx, userID, nil)
}

func (s *InsightService) recordSkipped(join analytics.JoinResult) {
	if n := len(join.InvalidCycles); n > 0 {
		s.metrics.RecordSkipped("invalid_cycle", n)
	}
	if join.Malformed > 0 {
		s.metrics.RecordSkipped("malformed_moment", join.Malformed)
	}
}

func (s *InsightService) cached(ctx context.Context, key string) ([]entities.Insight, bool) {
	if s.cache == nil || s.CacheTTL() <= 0 {
		return nil, false
	}
	v, found := s.cache.Get(ctx, key)
	if !found {
		return nil, false
	}
	insights, ok := v.([]entities.Insight)
	return insights, ok
}

func (s *InsightService) store(ctx context.Context, key string, insights []entities.Insight) {
	ttl := s.CacheTTL()
	if s.cache == nil || ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, insights, ttl); err != nil {
		s.logger.Warn("Failed to cache insights", zap.String("key", key), zap.Error(err))
	}
}

func (s *InsightService) publishGenerated(ctx context.Context, userID valueobjects.UserID, scope string, insights []entities.Insight) {
	if s.publisher == nil {
		return
	}
	titles := make([]string, len(insights))
	for i, in := range insights {
		titles[i] = in.Title
	}
	event := events.NewInsightsGenerated(userID, scope, titles, s.engine.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish insights event", zap.String("scope", scope), zap.Error(err))
	}
}
