package registry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	srverrors "github.com/mcp-instana/mcp-instana/internal/errors"
)

// Descriptor describes one tool: its MCP metadata plus the category tags and
// enabled flag the pipeline needs.
type Descriptor struct {
	Name        string
	Description string
	Tags        []string
	Enabled     bool
	InputSchema *jsonschema.Schema
	Handler     mcp.ToolHandler
}

// Tool builds the MCP tool definition for this descriptor.
func (d *Descriptor) Tool() *mcp.Tool {
	return &mcp.Tool{
		Name:        d.Name,
		Description: d.Description,
		InputSchema: d.InputSchema,
	}
}

// Registry holds tool descriptors keyed by name, preserving registration
// order for listings.
type Registry struct {
	log   *slog.Logger
	mu    sync.RWMutex
	order []string
	tools map[string]*Descriptor
}

// New returns an empty registry.
func New(log *slog.Logger) *Registry {
	return &Registry{
		log:   log.With("component", "registry"),
		tools: make(map[string]*Descriptor, 16),
	}
}

// Add registers a descriptor. Registering a second descriptor under an
// already-taken name fails with *srverrors.DuplicateToolError; callers treat
// that as a fatal startup error.
func (r *Registry) Add(d *Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[d.Name]; exists {
		return &srverrors.DuplicateToolError{Name: d.Name}
	}

	r.tools[d.Name] = d
	r.order = append(r.order, d.Name)
	r.log.Debug("registered tool", "tool", d.Name, "tags", d.Tags, "enabled", d.Enabled)
	return nil
}

// List returns the enabled descriptors in registration order. When
// filterTags is non-empty, only descriptors whose tag set intersects it are
// returned; a nil or empty filter returns every enabled descriptor.
func (r *Registry) List(filterTags []string) []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Descriptor, 0, len(r.order))
	for _, name := range r.order {
		d := r.tools[name]
		if !d.Enabled {
			continue
		}
		if len(filterTags) > 0 && !Intersects(d.Tags, filterTags) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Tags returns the tag set of the named tool, or nil if it is unknown.
func (r *Registry) Tags(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if d, ok := r.tools[name]; ok {
		return d.Tags
	}
	return nil
}

// Dispatch resolves the named tool and invokes its handler. Unknown and
// disabled tools fail with srverrors.ErrToolNotFound.
func (r *Registry) Dispatch(ctx context.Context, name string, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r.mu.RLock()
	d, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok || !d.Enabled {
		return nil, srverrors.ErrToolNotFound
	}
	return d.Handler(ctx, req)
}

// Intersects reports whether the two tag slices share at least one element.
func Intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
