package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/ironclub/ironclub-api/internal/config"
	"github.com/ironclub/ironclub-api/internal/httputil"
)

// RateLimit creates an IP-based rate limiter middleware with logging.
func RateLimit(requests int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			if logger != nil {
				logger.Warn("rate limit exceeded",
					"ip", r.RemoteAddr,
					"path", r.URL.Path,
					"method", r.Method,
				)
			}
			httputil.Error(w, http.StatusTooManyRequests, "Too many requests, please try again later")
		}),
	)
}

// NoRateLimit returns a no-op middleware when rate limiting is disabled.
func NoRateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return next
	}
}

// CreateRateLimiters builds the global and auth rate limiters from config.
func CreateRateLimiters(cfg config.RateLimitConfig, logger *slog.Logger) (global, auth func(http.Handler) http.Handler) {
	if !cfg.Enabled {
		noOp := NoRateLimit()
		return noOp, noOp
	}

	global = RateLimit(cfg.Requests, time.Duration(cfg.WindowMinutes)*time.Minute, logger)
	auth = RateLimit(cfg.AuthRequests, time.Duration(cfg.AuthWindowMinutes)*time.Minute, logger)
	return global, auth
}
