package local

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"kindra-backend/domain/core/valueobjects"
	"kindra-backend/domain/events"
)

func TestPublisher_LogsEachEvent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewPublisher(zap.New(core))

	userID := valueobjects.MustUserID("alice")
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	batch := []events.DomainEvent{
		events.NewMomentDeleted(userID, valueobjects.NewMomentID(), at),
		events.NewInsightsGenerated(userID, "aggregate", nil, at),
	}

	require.NoError(t, p.PublishBatch(context.Background(), batch))

	entries := logs.FilterMessage("Domain event").All()
	require.Len(t, entries, 2)
	assert.Equal(t, events.TypeMomentDeleted, entries[0].ContextMap()["eventType"])
	assert.Equal(t, events.TypeInsightsGenerated, entries[1].ContextMap()["eventType"])
}
