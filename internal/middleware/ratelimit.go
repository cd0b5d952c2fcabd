package middleware

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/time/rate"

	srverrors "github.com/mcp-instana/mcp-instana/internal/errors"
)

// Default admission parameters: sustained rate and bucket capacity.
const (
	DefaultRequestsPerSecond = 100
	DefaultBurst             = 20
)

// RateLimit returns the rate-limit stage: a token bucket refilled at rps
// tokens per second holding at most burst tokens. Requests that find the
// bucket empty are rejected immediately rather than queued.
func RateLimit(rps float64, burst int, log *slog.Logger) mcp.Middleware {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	log = log.With("component", "pipeline")

	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if !limiter.Allow() {
				log.Warn("request rejected by rate limiter", "method", method)
				return nil, &srverrors.RateLimitError{Method: method}
			}
			return next(ctx, method, req)
		}
	}
}
