package auth

import (
	"context"
	"errors"
)

type contextKey struct{}

// UserContext is the authenticated caller attached to a request
type UserContext struct {
	UserID string
	Email  string
}

// ErrNoUser is returned when a request carries no authenticated user
var ErrNoUser = errors.New("no authenticated user in context")

// WithUser attaches user to ctx
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// GetUserFromContext extracts the authenticated user
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(contextKey{}).(*UserContext)
	if !ok || user == nil || user.UserID == "" {
		return nil, ErrNoUser
	}
	return user, nil
}
