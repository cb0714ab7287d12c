package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// AttemptLimiter abstracts the Redis-backed fixed-window counter.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type rateLimitResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LoginRateLimit throttles a route per client IP. Limiter errors fail open:
// an unreachable Redis must not lock everyone out of login.
func LoginRateLimit(limiter AttemptLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if !allowed {
				return c.JSON(http.StatusTooManyRequests, rateLimitResponse{
					Code:    http.StatusTooManyRequests,
					Message: "Too many login attempts, please try again later",
				})
			}
			return next(c)
		}
	}
}
