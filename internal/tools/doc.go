// Package tools defines the MCP tool adapters exposed by the server.
//
// Each adapter translates tool-call arguments into exactly one Instana API
// request and converts the response into a JSON-shaped tool result. Adapters
// never retry; transient failures are the retry stage's concern. On failure
// an adapter logs the error, notifies the client session out of band when one
// is attached, and returns an error naming the failing API operation.
package tools
