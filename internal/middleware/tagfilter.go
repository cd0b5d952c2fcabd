package middleware

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcp-instana/mcp-instana/internal/registry"
)

// TagSource resolves a tool name to its category tags.
type TagSource interface {
	Tags(name string) []string
}

// TagFilter returns the tag-filter stage. It rewrites tools/list results so
// only tools tagged with at least one of the configured categories remain.
// With no categories configured every message passes through untouched.
func TagFilter(categories []string, tags TagSource, log *slog.Logger) mcp.Middleware {
	log = log.With("component", "pipeline")

	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			res, err := next(ctx, method, req)
			if err != nil || method != "tools/list" || len(categories) == 0 {
				return res, err
			}

			list, ok := res.(*mcp.ListToolsResult)
			if !ok {
				return res, err
			}

			filtered := list.Tools[:0]
			for _, tool := range list.Tools {
				if registry.Intersects(tags.Tags(tool.Name), categories) {
					filtered = append(filtered, tool)
				}
			}
			list.Tools = filtered

			log.Info("filtered tool listing", "categories", categories, "tools", len(filtered))
			return list, nil
		}
	}
}
