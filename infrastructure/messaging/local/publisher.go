// Package local provides an in-process event publisher that only logs.
package local

import (
	"context"

	"go.uber.org/zap"

	"kindra-backend/application/ports"
	"kindra-backend/domain/events"
)

// Publisher records events in the log instead of shipping them
type Publisher struct {
	logger *zap.Logger
}

// NewPublisher creates a logging publisher
func NewPublisher(logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.logger.Debug("Domain event",
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateId", event.GetAggregateID()),
		zap.String("userId", event.GetUserID()),
		zap.Time("timestamp", event.GetTimestamp()),
	)
	return nil
}

func (p *Publisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	for _, event := range domainEvents {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.EventPublisher = (*Publisher)(nil)
