package tools

import (
	"context"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcp-instana/mcp-instana/internal/instana"
	"github.com/mcp-instana/mcp-instana/internal/registry"
)

// Events returns the event-feed tools.
func Events(client *instana.Client, log *slog.Logger) []*registry.Descriptor {
	return []*registry.Descriptor{
		{
			Name:        "get_events",
			Description: "get the Instana events (issues, incidents, changes) that ended within a time window.",
			Tags:        []string{"events", "tool"},
			Enabled:     true,
			InputSchema: eventsSchema(),
			Handler:     eventsHandler(client, log),
		},
	}
}

func eventsSchema() *jsonschema.Schema {
	return registry.ObjectSchema(map[string]*jsonschema.Schema{
		"to_time_ms": {
			Type:        "integer",
			Description: "End of the time window in epoch milliseconds. Defaults to now.",
		},
		"duration_ms": {
			Type:        "integer",
			Description: "Window size in milliseconds reaching back from to_time_ms. Defaults to the last hour (3600000).",
		},
	})
}

func eventsHandler(client *instana.Client, log *slog.Logger) mcp.ToolHandler {
	const (
		tool      = "get_events"
		operation = "get_events"
	)

	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := registry.ParseArguments(req)
		if err != nil {
			return registry.ErrorResult(err.Error()), nil
		}

		tf := timeFrame(args)
		res, err := client.Events(ctx, tf.To, tf.WindowSize)
		if err != nil {
			return nil, failTool(ctx, req, log, tool, operation, err)
		}
		return registry.JSONResult(res)
	}
}
