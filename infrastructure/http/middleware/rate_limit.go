package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/classconnect/backoffice/application/port/inbound"
	"github.com/classconnect/backoffice/infrastructure/http/response"
	"github.com/classconnect/backoffice/infrastructure/service/logger"
)

type RateLimitMiddleware struct {
	rateLimitService inbound.RateLimitService
	logger           logger.Logger
	attempts         int
	window           time.Duration
	blockDuration    time.Duration
}

func NewRateLimitMiddleware(
	rateLimitService inbound.RateLimitService,
	log logger.Logger,
	attempts int,
	window time.Duration,
	blockDuration time.Duration,
) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		rateLimitService: rateLimitService,
		logger:           log,
		attempts:         attempts,
		window:           window,
		blockDuration:    blockDuration,
	}
}

// RateLimit throttles by client IP. Limiter errors never reject a request;
// the limiter failing open beats locking every admin out.
func (m *RateLimitMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.rateLimitService == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		key := fmt.Sprintf("login:ip:%s", getClientIP(r))

		blocked, err := m.rateLimitService.IsBlocked(ctx, key)
		if err != nil {
			m.logger.Error(ctx, "Failed to check block status", err, map[string]interface{}{"key": key})
		}
		if blocked {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(m.blockDuration.Seconds())))
			response.Error(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}

		allowed, err := m.rateLimitService.CheckLimit(ctx, key, m.attempts, m.window)
		if err != nil {
			m.logger.Error(ctx, "Failed to check rate limit", err, map[string]interface{}{"key": key})
		}
		if !allowed {
			if err := m.rateLimitService.Block(ctx, key, m.blockDuration, "login rate limit exceeded"); err != nil {
				m.logger.Error(ctx, "Failed to block key", err, map[string]interface{}{"key": key})
			}
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(m.blockDuration.Seconds())))
			response.Error(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}

		if err := m.rateLimitService.Increment(ctx, key, m.window); err != nil {
			m.logger.Error(ctx, "Failed to increment rate limit", err, map[string]interface{}{"key": key})
		}

		next.ServeHTTP(w, r)
	})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
