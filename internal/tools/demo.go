package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcp-instana/mcp-instana/internal/registry"
)

// Demo returns the arithmetic smoke-test tools. subtract_two_numbers is
// registered disabled: it must be absent from listings and dispatch.
func Demo() []*registry.Descriptor {
	return []*registry.Descriptor{
		{
			Name:        "add_two_numbers",
			Description: "add two numbers and return the value.",
			Tags:        []string{"infra"},
			Enabled:     true,
			InputSchema: registry.SimpleSchema(map[string]string{"a": "float64", "b": "float64"}),
			Handler:     arithmeticHandler(func(a, b float64) float64 { return a + b }),
		},
		{
			Name:        "subtract_two_numbers",
			Description: "subtract two numbers and return the value.",
			Tags:        []string{"app"},
			Enabled:     false,
			InputSchema: registry.SimpleSchema(map[string]string{"a": "float64", "b": "float64"}),
			Handler:     arithmeticHandler(func(a, b float64) float64 { return a - b }),
		},
	}
}

func arithmeticHandler(op func(a, b float64) float64) mcp.ToolHandler {
	return func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := registry.ParseArguments(req)
		if err != nil {
			return registry.ErrorResult(err.Error()), nil
		}

		a, aok := floatArg(args, "a")
		b, bok := floatArg(args, "b")
		if !aok || !bok {
			return registry.ErrorResult("arguments a and b must be numbers"), nil
		}
		return registry.JSONResult(map[string]any{"result": op(a, b)})
	}
}
