package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	srverrors "github.com/mcp-instana/mcp-instana/internal/errors"
	"github.com/mcp-instana/mcp-instana/internal/instana"
	"github.com/mcp-instana/mcp-instana/internal/registry"
)

// defaultWindowMs is the time window used when duration_ms is absent: the
// last hour.
const defaultWindowMs = int64(60 * 60 * 1000)

// All returns every tool descriptor the server ships, in listing order.
func All(client *instana.Client, log *slog.Logger) []*registry.Descriptor {
	log = log.With("component", "tools")

	var out []*registry.Descriptor
	out = append(out, Trending(client, log)...)
	out = append(out, Website(client, log)...)
	out = append(out, Infrastructure(client, log)...)
	out = append(out, Events(client, log)...)
	out = append(out, Demo()...)
	return out
}

// failTool records an adapter failure: it logs with the tool name, pushes an
// error notification through the session when present, and returns the
// APICallError that becomes the structured tool error.
func failTool(ctx context.Context, req *mcp.CallToolRequest, log *slog.Logger, tool, operation string, err error) error {
	log.Error("tool call failed", "tool", tool, "operation", operation, "error", err)
	notifySessionError(ctx, req, tool, err)
	return &srverrors.APICallError{Operation: operation, Err: err}
}

// notifySessionError sends a logging notification to the client. Notification
// failures are deliberately dropped: the tool error is the authoritative
// response.
func notifySessionError(ctx context.Context, req *mcp.CallToolRequest, tool string, err error) {
	defer func() {
		_ = recover()
	}()

	if req == nil || req.Session == nil {
		return
	}
	_ = req.Session.Log(ctx, &mcp.LoggingMessageParams{
		Level:  "error",
		Logger: tool,
		Data:   fmt.Sprintf("Error calling tool %s: %v", tool, err),
	})
}

// Argument accessors. Tool arguments arrive as generic JSON, so numbers are
// float64; these helpers apply the declared defaults for missing values.

func stringArg(args map[string]any, key, def string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return def
}

func intArg(args map[string]any, key string, def int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return def
}

func int64Arg(args map[string]any, key string, def int64) int64 {
	if v, ok := args[key].(float64); ok {
		return int64(v)
	}
	return def
}

func floatArg(args map[string]any, key string) (float64, bool) {
	v, ok := args[key].(float64)
	return v, ok
}

func stringsArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// timeFrame resolves the to_time_ms/duration_ms argument pair with their
// defaults: now, reaching back one hour.
func timeFrame(args map[string]any) instana.TimeFrame {
	return instana.TimeFrame{
		To:         int64Arg(args, "to_time_ms", time.Now().UnixMilli()),
		WindowSize: int64Arg(args, "duration_ms", defaultWindowMs),
	}
}
