package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kindra-backend/domain/core/valueobjects"
	pkgerrors "kindra-backend/pkg/errors"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestNewCycleRecord(t *testing.T) {
	user := valueobjects.MustUserID("user-1")
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("open cycle spans 28 days", func(t *testing.T) {
		c, err := NewCycleRecord(user, nil, start, nil, testNow)
		require.NoError(t, err)

		from, to := c.Window()
		assert.Equal(t, start, from)
		assert.Equal(t, start.AddDate(0, 0, 28), to)
		assert.True(t, c.IsOpen())
		assert.True(t, c.Valid())
		assert.True(t, c.BelongsTo(nil))
	})

	t.Run("closed cycle uses its end date", func(t *testing.T) {
		end := start.AddDate(0, 0, 30)
		conn := valueobjects.NewConnectionID()
		c, err := NewCycleRecord(user, &conn, start, &end, testNow)
		require.NoError(t, err)

		_, to := c.Window()
		assert.Equal(t, end, to)
		assert.False(t, c.IsOpen())
		assert.True(t, c.BelongsTo(&conn))
		assert.False(t, c.BelongsTo(nil))
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		end := start.AddDate(0, 0, -1)
		_, err := NewCycleRecord(user, nil, start, &end, testNow)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
		assert.Equal(t, pkgerrors.CodeInvalidCycleWindow, pkgerrors.GetAppError(err).Code)
	})

	t.Run("missing user is rejected", func(t *testing.T) {
		_, err := NewCycleRecord(valueobjects.UserID{}, nil, start, nil, testNow)
		assert.Error(t, err)
	})
}

func TestCycleRecord_ValidDetectsInvertedWindow(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -2)
	c := &CycleRecord{PeriodStartDate: start, CycleEndDate: &end}

	assert.False(t, c.Valid())
	assert.False(t, (&CycleRecord{}).Valid())
}
