// Package instana provides a minimal client for the Instana REST API.
//
// The client covers the operations the tool adapters need: application,
// service, endpoint, and website metrics, infrastructure metrics, and the
// events feed. Responses are decoded into generic JSON mappings because the
// MCP tool contract returns JSON-shaped data, not typed models.
package instana
