package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	srverrors "github.com/mcp-instana/mcp-instana/internal/errors"
)

// DefaultRetryAttempts is the total number of attempts for transient
// failures, including the first call.
const DefaultRetryAttempts = 3

const retryBaseDelay = 100 * time.Millisecond

// Retry returns the retry stage. Connection and timeout failures from the
// downstream handler are retried with exponential backoff up to attempts
// total tries; every other error propagates immediately. Handlers are
// read-only against the Instana API, so re-execution is safe.
func Retry(attempts uint, log *slog.Logger) mcp.Middleware {
	log = log.With("component", "pipeline")

	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			var res mcp.Result
			err := retry.Do(
				func() error {
					var callErr error
					res, callErr = next(ctx, method, req)
					return callErr
				},
				retry.Attempts(attempts),
				retry.RetryIf(srverrors.IsTransient),
				retry.Delay(retryBaseDelay),
				retry.DelayType(retry.BackOffDelay),
				retry.LastErrorOnly(true),
				retry.Context(ctx),
				retry.OnRetry(func(n uint, err error) {
					log.Warn("retrying after transient failure",
						"method", method, "attempt", n+1, "error", err)
				}),
			)
			return res, err
		}
	}
}
