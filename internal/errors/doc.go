// Package errors defines error types for the Instana MCP server.
//
// This package provides structured error types for the failure scenarios the
// server distinguishes: startup configuration problems, duplicate tool
// registration, failed Instana API calls, and rate-limited requests. All
// error types support error unwrapping and can be checked using errors.Is
// and errors.As.
package errors
