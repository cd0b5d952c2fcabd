package tools

import (
	"context"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcp-instana/mcp-instana/internal/instana"
	"github.com/mcp-instana/mcp-instana/internal/registry"
)

// Trending returns the top-performance tools: the top n applications,
// services, or endpoints measured by a golden signal over a time window.
func Trending(client *instana.Client, log *slog.Logger) []*registry.Descriptor {
	return []*registry.Descriptor{
		{
			Name:        "list_top_applications_by_performance",
			Description: "list top n applications measured by specific metric performance: latency, traffic, or error_rate.",
			Tags:        []string{"trending", "tool"},
			Enabled:     true,
			InputSchema: performanceSchema(),
			Handler: performanceHandler(log,
				"list_top_applications_by_performance", "get_application_data_metrics_v2",
				client.ApplicationMetricsV2),
		},
		{
			Name:        "list_top_services_by_performance",
			Description: "list top n services measured by specific metric performance: latency, traffic, or error_rate.",
			Tags:        []string{"trending", "tool"},
			Enabled:     true,
			InputSchema: performanceSchema(),
			Handler: performanceHandler(log,
				"list_top_services_by_performance", "get_service_data_metrics_v2",
				client.ServiceMetricsV2),
		},
		{
			Name:        "list_top_endpoints_by_performance",
			Description: "list top n endpoints measured by specific metric performance: latency, traffic, or error_rate.",
			Tags:        []string{"trending", "tool"},
			Enabled:     true,
			InputSchema: performanceSchema(),
			Handler: performanceHandler(log,
				"list_top_endpoints_by_performance", "get_endpoint_data_metrics_v2",
				client.EndpointMetricsV2),
		},
	}
}

func performanceSchema() *jsonschema.Schema {
	return registry.ObjectSchema(map[string]*jsonschema.Schema{
		"metric": {
			Type:        "string",
			Description: "The golden signal to measure performance. Options: latency, traffic, error_rate. Defaults to latency.",
		},
		"to_time_ms": {
			Type:        "integer",
			Description: "End of the time window in epoch milliseconds, for example 1618081200000. Defaults to now.",
		},
		"duration_ms": {
			Type:        "integer",
			Description: "Window size in milliseconds reaching back from to_time_ms. Defaults to the last hour (3600000).",
		},
		"top_n": {
			Type:        "integer",
			Description: "Number of entries to return. Defaults to 10.",
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

func performanceHandler(
	log *slog.Logger,
	tool, operation string,
	call func(context.Context, instana.MetricsQuery) (map[string]any, error),
) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := registry.ParseArguments(req)
		if err != nil {
			return registry.ErrorResult(err.Error()), nil
		}

		res, err := call(ctx, performanceQuery(args))
		if err != nil {
			return nil, failTool(ctx, req, log, tool, operation, err)
		}
		return registry.JSONResult(res)
	}
}

func performanceQuery(args map[string]any) instana.MetricsQuery {
	metric := stringArg(args, "metric", "latency")
	return instana.MetricsQuery{
		IncludeInternal:  true,
		IncludeSynthetic: true,
		Metrics: []instana.Metric{
			{Metric: metric, Aggregation: stringArg(args, "aggregation", "MEAN")},
		},
		Order: &instana.Order{
			By:        metric,
			Direction: stringArg(args, "order", "desc"),
		},
		Pagination: &instana.Pagination{
			Page:     1,
			PageSize: intArg(args, "top_n", 10),
		},
		TimeFrame: timeFrame(args),
	}
}
