package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/Fantasim/viteassets/internal/config"
	"github.com/Fantasim/viteassets/internal/httputil"
)

// RateLimit rejects requests above rps with 429. A non-positive rps disables it.
func RateLimit(rps int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiter := rate.NewLimiter(rate.Limit(rps), rps)
	slog.Debug("rate limiter created", "rps", rps, "burst", rps)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				slog.Warn("rate limit exceeded",
					"method", r.Method,
					"path", r.URL.Path,
					"remoteAddr", r.RemoteAddr,
				)
				httputil.Error(w, http.StatusTooManyRequests, config.ErrorRateLimited, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
