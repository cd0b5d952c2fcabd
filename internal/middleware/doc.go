// Package middleware implements the request-processing stages applied to
// every inbound MCP message: logging, tag-based tool filtering, rate
// limiting, and retry with backoff.
//
// Each stage is an mcp.Middleware wrapping the server's method handler. The
// server installs them in pipeline order, outermost first:
//
//	logging -> tag filter -> rate limit -> retry -> dispatch
package middleware
