package tools

import (
	"context"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcp-instana/mcp-instana/internal/instana"
	"github.com/mcp-instana/mcp-instana/internal/registry"
)

// Infrastructure returns the infrastructure-monitoring tools.
func Infrastructure(client *instana.Client, log *slog.Logger) []*registry.Descriptor {
	return []*registry.Descriptor{
		{
			Name:        "get_infrastructure_metrics",
			Description: "get metrics for infrastructure entities matching a dynamic focus query, e.g. CPU and memory usage of hosts.",
			Tags:        []string{"infra", "tool"},
			Enabled:     true,
			InputSchema: infraSchema(),
			Handler:     infraHandler(client, log),
		},
	}
}

func infraSchema() *jsonschema.Schema {
	return registry.ObjectSchema(map[string]*jsonschema.Schema{
		"metrics": {
			Type:        "array",
			Items:       &jsonschema.Schema{Type: "string"},
			Description: "Metric identifiers to fetch, e.g. cpu.used, memory.used. Defaults to cpu.used and memory.used.",
		},
		"plugin": {
			Type:        "string",
			Description: "Entity plugin to query, e.g. host, jvmRuntimePlatform. Defaults to host.",
		},
		"query": {
			Type:        "string",
			Description: "Instana dynamic focus query restricting the entities. Optional.",
		},
		"rollup": {
			Type:        "integer",
			Description: "Rollup granularity in seconds. Defaults to 60.",
		},
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

func infraHandler(client *instana.Client, log *slog.Logger) mcp.ToolHandler {
	const (
		tool      = "get_infrastructure_metrics"
		operation = "get_infrastructure_metrics"
	)

	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := registry.ParseArguments(req)
		if err != nil {
			return registry.ErrorResult(err.Error()), nil
		}

		metrics := stringsArg(args, "metrics")
		if len(metrics) == 0 {
			metrics = []string{"cpu.used", "memory.used"}
		}

		query := instana.InfraQuery{
			Metrics:   metrics,
			Plugin:    stringArg(args, "plugin", "host"),
			Query:     stringArg(args, "query", ""),
			Rollup:    intArg(args, "rollup", 60),
			TimeFrame: timeFrame(args),
		}

		res, err := client.InfrastructureMetrics(ctx, query)
		if err != nil {
			return nil, failTool(ctx, req, log, tool, operation, err)
		}
		return registry.JSONResult(res)
	}
}
