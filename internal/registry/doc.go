// Package registry maintains the set of MCP tools the server exposes.
//
// Tools are described by a Descriptor carrying the MCP metadata (name,
// description, input schema, handler) plus the server-side attributes the
// protocol does not model: category tags used by the tag-filter stage and an
// enabled flag. The registry is populated during startup and is read-only
// once the server begins serving.
package registry
