package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"github.com/ilkin0/mediagw/internal/config"
	"github.com/ilkin0/mediagw/internal/logger"
)

type RateLimiters struct {
	cfg config.RateLimit
}

func NewRateLimiters(cfg config.RateLimit) *RateLimiters {
	return &RateLimiters{cfg: cfg}
}

func (l *RateLimiters) List() func(http.Handler) http.Handler {
	return l.limiter(l.cfg.ListLimit)
}

func (l *RateLimiters) Upload() func(http.Handler) http.Handler {
	return l.limiter(l.cfg.UploadLimit)
}

func (l *RateLimiters) Delete() func(http.Handler) http.Handler {
	return l.limiter(l.cfg.DeleteLimit)
}

func (l *RateLimiters) limiter(limit int) func(http.Handler) http.Handler {
	return httprate.Limit(
		limit,
		l.cfg.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimitExceededHandler(l.cfg.Window)),
	)
}

func rateLimitExceededHandler(retryAfter time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		log.Warn("rate limit exceeded",
			slog.String("ip", r.RemoteAddr),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("user_agent", r.UserAgent()),
		)

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"Rate limit exceeded. Please try again later."}`))
	}
}
