package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"kindra-backend/pkg/common"
)

// RequestContext exposes the chi request id through pkg/common and echoes
// it in the X-Request-ID response header. It must run after RequestID.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := common.WithStartTime(r.Context(), time.Now())
		if id := middleware.GetReqID(ctx); id != "" {
			ctx = common.WithRequestID(ctx, id)
			w.Header().Set("X-Request-ID", id)
			if r.Header.Get("X-Request-ID") == "" {
				r.Header.Set("X-Request-ID", id)
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
