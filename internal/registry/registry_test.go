package registry

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	srverrors "github.com/mcp-instana/mcp-instana/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func descriptor(name string, tags []string, enabled bool, handler mcp.ToolHandler) *Descriptor {
	if handler == nil {
		handler = func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return TextResult("ok: " + name), nil
		}
	}
	return &Descriptor{
		Name:        name,
		Description: "test tool " + name,
		Tags:        tags,
		Enabled:     enabled,
		InputSchema: SimpleSchema(map[string]string{"value": "string"}),
		Handler:     handler,
	}
}

func TestAddRejectsDuplicates(t *testing.T) {
	reg := New(testLogger())

	require.NoError(t, reg.Add(descriptor("get_events", []string{"events"}, true, nil)))
	require.NoError(t, reg.Add(descriptor("get_hosts", []string{"infra"}, true, nil)))

	err := reg.Add(descriptor("get_events", []string{"events"}, true, nil))
	var dup *srverrors.DuplicateToolError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "get_events", dup.Name)
}

func TestList(t *testing.T) {
	reg := New(testLogger())
	require.NoError(t, reg.Add(descriptor("a", []string{"infra"}, true, nil)))
	require.NoError(t, reg.Add(descriptor("b", []string{"app", "trending"}, true, nil)))
	require.NoError(t, reg.Add(descriptor("c", []string{"app"}, false, nil)))

	t.Run("nil filter returns all enabled in order", func(t *testing.T) {
		got := reg.List(nil)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].Name)
		assert.Equal(t, "b", got[1].Name)
	})

	t.Run("filter requires tag intersection", func(t *testing.T) {
		got := reg.List([]string{"infra"})
		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].Name)
	})

	t.Run("disabled tools never listed", func(t *testing.T) {
		got := reg.List([]string{"app"})
		require.Len(t, got, 1)
		assert.Equal(t, "b", got[0].Name)
	})

	t.Run("no matching tags yields empty list", func(t *testing.T) {
		assert.Empty(t, reg.List([]string{"website"}))
	})
}

func TestDispatch(t *testing.T) {
	reg := New(testLogger())

	var calledA, calledB bool
	require.NoError(t, reg.Add(descriptor("a", nil, true,
		func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			calledA = true
			return TextResult("a"), nil
		})))
	require.NoError(t, reg.Add(descriptor("b", nil, true,
		func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			calledB = true
			return TextResult("b"), nil
		})))
	require.NoError(t, reg.Add(descriptor("off", nil, false, nil)))

	t.Run("dispatch invokes only the named handler", func(t *testing.T) {
		res, err := reg.Dispatch(context.Background(), "a", &mcp.CallToolRequest{})
		require.NoError(t, err)
		require.Len(t, res.Content, 1)
		assert.True(t, calledA)
		assert.False(t, calledB)
	})

	t.Run("unknown name fails with not found", func(t *testing.T) {
		_, err := reg.Dispatch(context.Background(), "nope", &mcp.CallToolRequest{})
		assert.ErrorIs(t, err, srverrors.ErrToolNotFound)
	})

	t.Run("disabled tool fails with not found", func(t *testing.T) {
		_, err := reg.Dispatch(context.Background(), "off", &mcp.CallToolRequest{})
		assert.ErrorIs(t, err, srverrors.ErrToolNotFound)
	})
}

func TestTags(t *testing.T) {
	reg := New(testLogger())
	require.NoError(t, reg.Add(descriptor("a", []string{"infra", "tool"}, true, nil)))

	assert.Equal(t, []string{"infra", "tool"}, reg.Tags("a"))
	assert.Nil(t, reg.Tags("missing"))
}

func TestIntersects(t *testing.T) {
	assert.True(t, Intersects([]string{"infra", "tool"}, []string{"infra"}))
	assert.False(t, Intersects([]string{"app"}, []string{"infra"}))
	assert.False(t, Intersects(nil, []string{"infra"}))
	assert.False(t, Intersects([]string{"app"}, nil))
}

func TestJSONResult(t *testing.T) {
	res, err := JSONResult(map[string]any{"result": 5.0})
	require.NoError(t, err)

	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"result": 5}`, text.Text)

	structured, ok := res.StructuredContent.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5.0, structured["result"])
}

func TestParseArguments(t *testing.T) {
	t.Run("empty request yields empty map", func(t *testing.T) {
		args, err := ParseArguments(&mcp.CallToolRequest{})
		require.NoError(t, err)
		assert.Empty(t, args)
	})

	t.Run("arguments decode into map", func(t *testing.T) {
		raw, _ := json.Marshal(map[string]any{"a": 2.0, "b": 3.0})
		args, err := ParseArguments(&mcp.CallToolRequest{
			Params: &mcp.CallToolParamsRaw{Name: "add_two_numbers", Arguments: raw},
		})
		require.NoError(t, err)
		assert.Equal(t, 2.0, args["a"])
		assert.Equal(t, 3.0, args["b"])
	})

	t.Run("invalid json fails", func(t *testing.T) {
		_, err := ParseArguments(&mcp.CallToolRequest{
			Params: &mcp.CallToolParamsRaw{Name: "add_two_numbers", Arguments: []byte("{")},
		})
		require.Error(t, err)
	})
}
