package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kindra-backend/domain/core/valueobjects"
)

func TestNewMoment(t *testing.T) {
	user := valueobjects.MustUserID("user-1")
	conn := valueobjects.NewConnectionID()
	content, err := valueobjects.NewMomentContent("😊", []string{"Green Flag"}, "picnic")
	require.NoError(t, err)

	ts := testNow.Add(-2 * time.Hour)
	future := testNow.Add(72 * time.Hour)
	zero := time.Time{}

	tests := []struct {
		name          string
		user          valueobjects.UserID
		conn          valueobjects.ConnectionID
		timestamp     *time.Time
		wantErr       bool
		wantTimestamp bool
	}{
		{name: "timestamped moment", user: user, conn: conn, timestamp: &ts, wantTimestamp: true},
		{name: "untimed moment", user: user, conn: conn},
		{name: "zero timestamp treated as untimed", user: user, conn: conn, timestamp: &zero},
		{name: "future timestamp rejected", user: user, conn: conn, timestamp: &future, wantErr: true},
		{name: "missing connection", user: user, wantErr: true},
		{name: "missing user", conn: conn, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoment(tt.user, tt.conn, tt.timestamp, content, false, testNow)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTimestamp, m.HasTimestamp())
			assert.Equal(t, "😊", m.Emoji)
			assert.True(t, m.HasTag("Green Flag"))
			assert.False(t, m.ID.IsZero())
		})
	}
}

func TestNewConnection(t *testing.T) {
	user := valueobjects.MustUserID("user-1")

	c, err := NewConnection(user, "  Alex ", "Dating", "Leo", "Quality Time", testNow)
	require.NoError(t, err)
	assert.Equal(t, "Alex", c.Name)
	assert.Equal(t, "Dating", c.StageLabel())

	c, err = NewConnection(user, "Sam", "", "", "", testNow)
	require.NoError(t, err)
	assert.Equal(t, "Unspecified", c.StageLabel())

	_, err = NewConnection(user, " ", "", "", "", testNow)
	assert.Error(t, err)
}

func TestClampConfidence(t *testing.T) {
	assert.Equal(t, 0, ClampConfidence(-5))
	assert.Equal(t, 55, ClampConfidence(55))
	assert.Equal(t, 100, ClampConfidence(250))
}
