package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrToolNotFound indicates no enabled tool matches the requested name.
	ErrToolNotFound = errors.New("tool not found")

	// ErrMissingCredentials indicates the Instana credentials required for
	// stdio mode are absent from the environment.
	ErrMissingCredentials = errors.New(
		"Instana credentials are required for stdio mode but not provided: set INSTANA_API_TOKEN and INSTANA_BASE_URL")

	// ErrHelpRequested indicates the user asked for usage output.
	ErrHelpRequested = errors.New("help requested")
)

// Compile-time verification that typed errors implement error.
var (
	_ error = (*DuplicateToolError)(nil)
	_ error = (*UsageError)(nil)
	_ error = (*APICallError)(nil)
	_ error = (*RateLimitError)(nil)
)

// DuplicateToolError indicates two tools were registered under the same name.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool already registered: %q", e.Name)
}

// UsageError indicates an invalid command-line invocation. The process exits
// with status 2 when it surfaces from argument parsing.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// APICallError indicates an Instana API call made by a tool adapter failed.
// The message names the failing operation so clients can tell which upstream
// call broke.
type APICallError struct {
	Operation string
	Err       error
}

func (e *APICallError) Error() string {
	return fmt.Sprintf("Instana API call [%s] error: %v", e.Operation, e.Err)
}

func (e *APICallError) Unwrap() error {
	return e.Err
}

// RateLimitError indicates a request was rejected by the rate-limit stage.
type RateLimitError struct {
	Method string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s", e.Method)
}

// IsTransient reports whether err is a connection or timeout failure that is
// safe to retry. Anything else, including tool-level errors, is permanent.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}
