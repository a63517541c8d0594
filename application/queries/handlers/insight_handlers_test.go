package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kindra-backend/application/ports/mocks"
	"kindra-backend/application/queries"
	"kindra-backend/application/queries/bus"
	"kindra-backend/application/services"
	"kindra-backend/domain/analytics"
	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
)

var testNow = time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC)

type handlerFixture struct {
	conns   *mocks.MockConnectionRepository
	moments *mocks.MockMomentRepository
	cycles  *mocks.MockCycleRepository
	bus     *bus.QueryBus
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	f := &handlerFixture{
		conns:   new(mocks.MockConnectionRepository),
		moments: new(mocks.MockMomentRepository),
		cycles:  new(mocks.MockCycleRepository),
		bus:     bus.NewQueryBus(),
	}
	clock := analytics.FixedClock{T: testNow}
	engine := analytics.NewEngine(analytics.WithClock(clock))
	service := services.NewInsightService(f.conns, f.moments, f.cycles, engine, nil, nil, nil, nil)
	require.NoError(t, RegisterAll(f.bus, f.conns, f.moments, f.cycles, service, clock))
	return f
}

func TestGetAnalyticsInsights(t *testing.T) {
	f := newHandlerFixture(t)
	userID := valueobjects.MustUserID("user-1")
	f.conns.On("ListByUser", mock.Anything, userID).Return([]*entities.Connection{}, nil).Once()
	f.moments.On("ListByUser", mock.Anything, userID).Return([]*entities.Moment{}, nil).Once()

	result, err := f.bus.Ask(context.Background(), queries.GetAnalyticsInsightsQuery{UserID: "user-1"})

	require.NoError(t, err)
	res := result.(*queries.InsightsResult)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, testNow, res.GeneratedAt)
}

func TestGetCycleVariability_NotEnoughCycles(t *testing.T) {
	f := newHandlerFixture(t)
	userID := valueobjects.MustUserID("user-1")
	f.cycles.On("ListByConnection", mock.Anything, userID, (*valueobjects.ConnectionID)(nil)).
		Return([]*entities.CycleRecord{{PeriodStartDate: testNow}}, nil).Once()

	result, err := f.bus.Ask(context.Background(), queries.GetCycleVariabilityQuery{UserID: "user-1"})

	require.NoError(t, err)
	res := result.(*queries.CycleVariabilityResult)
	assert.False(t, res.Available)
	assert.Nil(t, res.Variability)
}

func TestPredictOptimalTiming_ExplicitPhase(t *testing.T) {
	f := newHandlerFixture(t)
	userID := valueobjects.MustUserID("user-1")
	connID := valueobjects.NewConnectionID()
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 27)

	f.conns.On("GetByID", mock.Anything, userID, connID).Return(&entities.Connection{ID: connID, UserID: userID}, nil).Once()
	f.moments.On("ListByConnection", mock.Anything, userID, connID).Return([]*entities.Moment{}, nil).Once()
	f.cycles.On("ListByConnection", mock.Anything, userID, &connID).
		Return([]*entities.CycleRecord{{PeriodStartDate: start, CycleEndDate: &end}}, nil).Once()

	result, err := f.bus.Ask(context.Background(), queries.PredictOptimalTimingQuery{
		UserID:       "user-1",
		ConnectionID: connID.String(),
		Phase:        "OVULATION",
	})

	require.NoError(t, err)
	res := result.(*queries.TimingPredictionResult)
	require.True(t, res.Available)
	assert.Equal(t, valueobjects.PhaseOvulation, res.Prediction.Phase)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), res.Prediction.NextCycleStart)
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), res.Prediction.NextOptimalDate)
	f.conns.AssertExpectations(t)
	f.cycles.AssertExpectations(t)
}

func TestPredictOptimalTiming_NoStrongestPhase(t *testing.T) {
	f := newHandlerFixture(t)
	userID := valueobjects.MustUserID("user-1")
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	f.moments.On("ListByUser", mock.Anything, userID).Return([]*entities.Moment{}, nil).Once()
	f.cycles.On("ListByConnection", mock.Anything, userID, (*valueobjects.ConnectionID)(nil)).
		Return([]*entities.CycleRecord{{PeriodStartDate: start}}, nil).Once()

	result, err := f.bus.Ask(context.Background(), queries.PredictOptimalTimingQuery{UserID: "user-1"})

	require.NoError(t, err)
	assert.False(t, result.(*queries.TimingPredictionResult).Available)
}
