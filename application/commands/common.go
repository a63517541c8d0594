package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"kindra-backend/application/ports"
	"kindra-backend/domain/analytics"
	"kindra-backend/domain/core/valueobjects"
	"kindra-backend/domain/events"
)

// InsightCachePrefix returns the cache key prefix holding every insight
// result computed for a user.
func InsightCachePrefix(userID valueobjects.UserID) string {
	return fmt.Sprintf("insights:%s:", userID.String())
}

// Dependencies are shared by every command handler
type Dependencies struct {
	Connections ports.ConnectionRepository
	Moments     ports.MomentRepository
	Cycles      ports.CycleRepository
	Publisher   ports.EventPublisher
	Cache       ports.Cache
	Clock       analytics.Clock
	Logger      *zap.Logger
}

func (d Dependencies) now() analytics.Clock {
	if d.Clock == nil {
		return analytics.SystemClock{}
	}
	return d.Clock
}

func (d Dependencies) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// afterWrite publishes the event and drops cached insights for the user.
// Neither failure fails the command: the write already happened.
func (d Dependencies) afterWrite(ctx context.Context, userID valueobjects.UserID, event events.DomainEvent) {
	if d.Publisher != nil {
		if err := d.Publisher.Publish(ctx, event); err != nil {
			d.logger().Warn("Failed to publish event",
				zap.String("eventType", event.GetEventType()),
				zap.String("aggregateId", event.GetAggregateID()),
				zap.Error(err),
			)
		}
	}
	if d.Cache != nil {
		if err := d.Cache.DeletePrefix(ctx, InsightCachePrefix(userID)); err != nil {
			d.logger().Warn("Failed to invalidate insight cache",
				zap.String("userId", userID.String()),
				zap.Error(err),
			)
		}
	}
}
