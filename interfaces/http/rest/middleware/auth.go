package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"kindra-backend/pkg/auth"
	pkgerrors "kindra-backend/pkg/errors"
)

// TokenValidator verifies bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Authenticate rejects requests without a valid bearer token and attaches
// the token subject as the request user.
func Authenticate(validator TokenValidator, errs *pkgerrors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				errs.Handle(w, r, pkgerrors.NewUnauthorizedError("missing authorization header"))
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				errs.Handle(w, r, pkgerrors.NewUnauthorizedError("invalid authorization header format"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Debug("Token rejected", zap.Error(err), zap.String("path", r.URL.Path))
				errs.Handle(w, r, pkgerrors.NewUnauthorizedError(tokenMessage(err)).WithCause(err))
				return
			}

			user := &auth.UserContext{UserID: claims.Subject, Email: claims.Email}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

func tokenMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "token has expired"
	case errors.Is(err, auth.ErrMissingToken):
		return "missing authentication token"
	default:
		return "invalid token"
	}
}
