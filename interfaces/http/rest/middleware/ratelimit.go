package middleware

import (
	"net"
	"net/http"

	"kindra-backend/pkg/auth"
	pkgerrors "kindra-backend/pkg/errors"
)

// RateLimit applies limiter per client IP. It expects RealIP to have run.
func RateLimit(limiter auth.RateLimiter, rps int, errs *pkgerrors.ErrorHandler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				errs.Handle(w, r, pkgerrors.NewUnavailableError("rate limiter").WithCause(err))
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", "1")
				errs.Handle(w, r, pkgerrors.NewRateLimitError(rps, "second"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
