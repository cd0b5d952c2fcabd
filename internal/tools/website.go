package tools

import (
	"context"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcp-instana/mcp-instana/internal/instana"
	"github.com/mcp-instana/mcp-instana/internal/registry"
)

// Website returns the website-monitoring tools.
func Website(client *instana.Client, log *slog.Logger) []*registry.Descriptor {
	return []*registry.Descriptor{
		{
			Name:        "list_top_websites_by_performance",
			Description: "list top n websites measured by page load beacon metrics, e.g. onLoadTime or pageLoads.",
			Tags:        []string{"website", "tool"},
			Enabled:     true,
			InputSchema: websiteSchema(),
			Handler:     websiteHandler(client, log),
		},
	}
}

func websiteSchema() *jsonschema.Schema {
	return registry.ObjectSchema(map[string]*jsonschema.Schema{
		"metric": {
			Type:        "string",
			Description: "Beacon metric to measure. Options: onLoadTime, pageLoads. Defaults to onLoadTime.",
		},
		"beacon_type": {
			Type:        "string",
			Description: "Beacon type to aggregate over. Defaults to PAGELOAD.",
		},
		"to_time_ms": {
			Type:        "integer",
			Description: "End of the time window in epoch milliseconds. Defaults to now.",
		},
		"duration_ms": {
			Type:        "integer",
			Description: "Window size in milliseconds reaching back from to_time_ms. Defaults to the last hour (3600000).",
		},
		"aggregation": {
			Type:        "string",
			Description: "Aggregation method. Options: MEAN, P95, P99. Defaults to MEAN.",
		},
		"order": {
			Type:        "string",
			Description: "Sort direction, asc or desc. Defaults to desc.",
		},
	})
}

func websiteHandler(client *instana.Client, log *slog.Logger) mcp.ToolHandler {
	const (
		tool      = "list_top_websites_by_performance"
		operation = "get_website_metrics_v2"
	)

	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := registry.ParseArguments(req)
		if err != nil {
			return registry.ErrorResult(err.Error()), nil
		}

		metric := stringArg(args, "metric", "onLoadTime")
		query := instana.WebsiteMetricsQuery{
			Type: stringArg(args, "beacon_type", "PAGELOAD"),
			Metrics: []instana.Metric{
				{Metric: metric, Aggregation: stringArg(args, "aggregation", "MEAN")},
			},
			Order: &instana.Order{
				By:        metric,
				Direction: stringArg(args, "order", "desc"),
			},
			TimeFrame: timeFrame(args),
		}

		res, err := client.WebsiteMetricsV2(ctx, query)
		if err != nil {
			return nil, failTool(ctx, req, log, tool, operation, err)
		}
		return registry.JSONResult(res)
	}
}
