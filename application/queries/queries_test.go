package queries

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kindra-backend/application/ports/mocks"
	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
	pkgerrors "kindra-backend/pkg/errors"
)

var (
	userID = valueobjects.MustUserID("user-1")
	base   = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
)

func timed(days int) *entities.Moment {
	ts := base.AddDate(0, 0, days)
	return &entities.Moment{ID: valueobjects.NewMomentID(), UserID: userID, Timestamp: &ts, Emoji: "😊", CreatedAt: ts}
}

func untimed(created time.Time) *entities.Moment {
	return &entities.Moment{ID: valueobjects.NewMomentID(), UserID: userID, Emoji: "😊", CreatedAt: created}
}

func TestListMomentsHandler_OrdersNewestFirst(t *testing.T) {
	repo := new(mocks.MockMomentRepository)
	m1, m2, m3 := timed(1), timed(5), timed(3)
	u1, u2 := untimed(base), untimed(base.AddDate(0, 0, 2))
	repo.On("ListByUser", mock.Anything, userID).Return([]*entities.Moment{m1, u1, m2, nil, u2, m3}, nil).Once()

	result, err := NewListMomentsHandler(repo).Handle(context.Background(), ListMomentsQuery{UserID: "user-1"})

	require.NoError(t, err)
	res := result.(*ListMomentsResult)
	assert.Equal(t, []*entities.Moment{m2, m3, m1, u2, u1}, res.Moments)
	assert.Equal(t, 5, res.Pagination.Total)
	repo.AssertExpectations(t)
}

func TestListMomentsHandler_PaginatesByConnection(t *testing.T) {
	repo := new(mocks.MockMomentRepository)
	connID := valueobjects.NewConnectionID()
	moments := []*entities.Moment{timed(1), timed(2), timed(3)}
	repo.On("ListByConnection", mock.Anything, userID, connID).Return(moments, nil).Once()

	result, err := NewListMomentsHandler(repo).Handle(context.Background(), ListMomentsQuery{
		UserID:       "user-1",
		ConnectionID: connID.String(),
		Page:         2,
		PageSize:     2,
	})

	require.NoError(t, err)
	res := result.(*ListMomentsResult)
	require.Len(t, res.Moments, 1)
	assert.Equal(t, moments[0], res.Moments[0])
	assert.False(t, res.Pagination.HasNext)
	repo.AssertExpectations(t)
}

func TestListConnectionsHandler_SortsByName(t *testing.T) {
	repo := new(mocks.MockConnectionRepository)
	zoe := &entities.Connection{Name: "Zoe"}
	ada := &entities.Connection{Name: "Ada"}
	repo.On("ListByUser", mock.Anything, userID).Return([]*entities.Connection{zoe, ada}, nil).Once()

	result, err := NewListConnectionsHandler(repo).Handle(context.Background(), ListConnectionsQuery{UserID: "user-1"})

	require.NoError(t, err)
	res := result.(*ListConnectionsResult)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, []*entities.Connection{ada, zoe}, res.Connections)
}

func TestListConnectionsHandler_EmptyIsNotNil(t *testing.T) {
	repo := new(mocks.MockConnectionRepository)
	repo.On("ListByUser", mock.Anything, userID).Return(nil, nil).Once()

	result, err := NewListConnectionsHandler(repo).Handle(context.Background(), ListConnectionsQuery{UserID: "user-1"})

	require.NoError(t, err)
	assert.NotNil(t, result.(*ListConnectionsResult).Connections)
}

func TestListCyclesHandler(t *testing.T) {
	connID := valueobjects.NewConnectionID()
	older := &entities.CycleRecord{PeriodStartDate: base}
	newer := &entities.CycleRecord{PeriodStartDate: base.AddDate(0, 1, 0)}

	t.Run("all cycles newest first", func(t *testing.T) {
		repo := new(mocks.MockCycleRepository)
		repo.On("ListByUser", mock.Anything, userID).Return([]*entities.CycleRecord{older, newer}, nil).Once()

		result, err := NewListCyclesHandler(repo).Handle(context.Background(), ListCyclesQuery{UserID: "user-1"})

		require.NoError(t, err)
		assert.Equal(t, []*entities.CycleRecord{newer, older}, result.(*ListCyclesResult).Cycles)
	})

	t.Run("connection scoped", func(t *testing.T) {
		repo := new(mocks.MockCycleRepository)
		repo.On("ListByConnection", mock.Anything, userID, &connID).Return([]*entities.CycleRecord{older}, nil).Once()

		result, err := NewListCyclesHandler(repo).Handle(context.Background(), ListCyclesQuery{UserID: "user-1", ConnectionID: connID.String()})

		require.NoError(t, err)
		assert.Equal(t, 1, result.(*ListCyclesResult).Count)
		repo.AssertExpectations(t)
	})
}

func TestQueryValidation(t *testing.T) {
	tests := []struct {
		name  string
		query interface{ Validate() error }
	}{
		{"list connections without user", ListConnectionsQuery{}},
		{"get connection with bad id", GetConnectionQuery{UserID: "u", ConnectionID: "abc"}},
		{"moments with bad connection", ListMomentsQuery{UserID: "u", ConnectionID: "abc"}},
		{"connection insights without id", GetConnectionInsightsQuery{UserID: "u"}},
		{"prediction with unknown phase", PredictOptimalTimingQuery{UserID: "u", Phase: "winter"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			require.Error(t, err)
			assert.True(t, pkgerrors.IsValidation(err))
		})
	}

	assert.NoError(t, PredictOptimalTimingQuery{UserID: "u", Phase: "Ovulation"}.Validate())
}
