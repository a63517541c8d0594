package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTValidator_ValidateToken(t *testing.T) {
	now := time.Now()
	v, err := NewJWTValidator("s3cret", "kindra")
	require.NoError(t, err)
	other, err := NewJWTValidator("different", "kindra")
	require.NoError(t, err)
	foreign, err := NewJWTValidator("s3cret", "someone-else")
	require.NoError(t, err)

	valid, err := v.IssueToken("user-123", time.Hour, now)
	require.NoError(t, err)
	expired, err := v.IssueToken("user-123", time.Hour, now.Add(-3*time.Hour))
	require.NoError(t, err)
	badSig, err := other.IssueToken("user-123", time.Hour, now)
	require.NoError(t, err)
	wrongIssuer, err := foreign.IssueToken("user-123", time.Hour, now)
	require.NoError(t, err)
	noSubject, err := v.IssueToken("", time.Hour, now)
	require.NoError(t, err)
	longSubject, err := v.IssueToken(strings.Repeat("u", 129), time.Hour, now)
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "user-123"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"valid with bearer prefix", "Bearer " + valid, nil},
		{"valid bare", valid, nil},
		{"missing", "Bearer ", ErrMissingToken},
		{"expired", expired, ErrExpiredToken},
		{"bad signature", badSig, ErrInvalidSignature},
		{"wrong issuer", wrongIssuer, ErrInvalidClaims},
		{"no subject", noSubject, ErrInvalidClaims},
		{"subject too long", longSubject, ErrInvalidClaims},
		{"wrong algorithm", hs512, ErrInvalidToken},
		{"garbage", "not.a.token", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := v.ValidateToken(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user-123", claims.Subject)
		})
	}
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	_, err := NewJWTValidator("", "")
	assert.Error(t, err)
}

func TestKeyedLimiter(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	l := NewKeyedLimiter(1, 2)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i, want := range []bool{true, true, false} {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, want, ok, "request %d", i)
	}

	ok, _ := l.Allow(ctx, "10.0.0.2")
	assert.True(t, ok, "keys are independent")

	now = now.Add(time.Second)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.True(t, ok, "bucket refills")

	require.NoError(t, l.Reset(ctx, "10.0.0.1"))
	now = now.Add(10 * time.Minute)
	l.mu.Lock()
	l.limiters["stale"] = &entry{limiter: nil, lastSeen: now.Add(-time.Hour)}
	l.mu.Unlock()
	assert.Equal(t, 2, l.Sweep())
}

func TestKeyedLimiter_SetLimit(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	l := NewKeyedLimiter(1, 1)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _ := l.Allow(ctx, "k")
	require.True(t, ok)
	ok, _ = l.Allow(ctx, "k")
	require.False(t, ok)

	l.SetLimit(10, 5)
	now = now.Add(time.Second)
	allowed := 0
	for i := 0; i < 10; i++ {
		if ok, _ := l.Allow(ctx, "k"); ok {
			allowed++
		}
	}
	assert.Equal(t, 5, allowed)
}

func TestKeyedLimiter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewKeyedLimiter(1, 1).Allow(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
