package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oklog/ulid/v2"
)

const (
	// maxArgsLen bounds the serialized argument representation in logs.
	maxArgsLen = 100

	truncationSuffix = "...(truncated)"
	unserializable   = "<unserializable>"
)

// Logging returns the logging stage. It records every inbound message with a
// fresh request id, and for tool calls the tool name and a truncated argument
// dump. Completion is logged with the wall-clock duration in milliseconds.
//
// A failure while logging is caught and logged itself; it never fails the
// request.
func Logging(log *slog.Logger) mcp.Middleware {
	log = log.With("component", "pipeline")

	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			id := ulid.Make().String()
			logInbound(log, id, method, req)

			start := time.Now()
			res, err := next(ctx, method, req)
			logCompleted(log, id, method, time.Since(start), err)

			return res, err
		}
	}
}

func logInbound(log *slog.Logger, id, method string, req mcp.Request) {
	defer swallowLoggingFailure(log, id)

	if call, ok := req.(*mcp.CallToolRequest); ok && call.Params != nil {
		log.Info("invoking tool",
			"request", id,
			"tool", call.Params.Name,
			"method", method,
			"source", sessionID(req))
		log.Debug("tool arguments",
			"request", id,
			"tool", call.Params.Name,
			"args", safeDump(call.Params.Arguments, maxArgsLen))
		return
	}

	log.Info("processing message", "request", id, "method", method, "source", sessionID(req))
}

func logCompleted(log *slog.Logger, id, method string, elapsed time.Duration, err error) {
	defer swallowLoggingFailure(log, id)

	if err != nil {
		log.Info("completed with error",
			"request", id,
			"method", method,
			"duration_ms", elapsed.Milliseconds(),
			"error", err)
		return
	}
	log.Info("completed", "request", id, "method", method, "duration_ms", elapsed.Milliseconds())
}

// swallowLoggingFailure keeps the pipeline alive when a log call panics, for
// example on a misbehaving Stringer in the arguments.
func swallowLoggingFailure(log *slog.Logger, id string) {
	if r := recover(); r != nil {
		log.Error("logging stage failed", "request", id, "panic", fmt.Sprint(r))
	}
}

func sessionID(req mcp.Request) (id string) {
	defer func() {
		if recover() != nil {
			id = ""
		}
	}()

	if s, ok := req.GetSession().(interface{ ID() string }); ok {
		return s.ID()
	}
	return ""
}

// safeDump renders v for logging: JSON first, plain formatting as fallback,
// the unserializable marker if both blow up. The result is truncated to at
// most maxLen bytes plus the truncation suffix, never splitting a rune.
func safeDump(v any, maxLen int) string {
	s := stringify(v)
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncationSuffix
}

func stringify(v any) (s string) {
	defer func() {
		if recover() != nil {
			s = unserializable
		}
	}()

	if raw, ok := v.(json.RawMessage); ok {
		return string(raw)
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
