package mcptools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sort"
	"testing"

	"github.com/dusk-indust/docassist/internal/assistant"
	"github.com/dusk-indust/docassist/internal/capability"
	"github.com/dusk-indust/docassist/internal/config"
	"github.com/dusk-indust/docassist/internal/document"
	"github.com/dusk-indust/docassist/internal/orchestrator"
	"github.com/dusk-indust/docassist/internal/render"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupServerClient wires an MCP server over a degraded orchestrator to a
// client using in-memory transports.
func setupServerClient(t *testing.T) *mcp.ClientSession {
	t.Helper()

	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	caps := orchestrator.Capabilities{
		Rendering: capability.Fixed(render.CapabilityName, render.Rasterizer{}, false, capability.ErrMissing),
		Assistant: capability.Fixed[assistant.ModelCaller](assistant.CapabilityName, nil, false, capability.ErrMissing),
	}
	server := NewServer(orchestrator.New(context.Background(), cfg, caps))

	st, ct := mcp.NewInMemoryTransports()
	ctx := context.Background()

	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
	})
	return session
}

func decode[T any](t *testing.T, result *mcp.CallToolResult) T {
	t.Helper()
	require.NotNil(t, result.StructuredContent)
	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestMCPListTools(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	sort.Strings(names)

	assert.Equal(t, []string{"extract_text", "get_capabilities", "render_preview", "summarize_document"}, names)
}

func TestMCPGetCapabilities(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_capabilities",
		Arguments: GetCapabilitiesInput{},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	out := decode[GetCapabilitiesOutput](t, result)
	assert.Equal(t, "basic", out.Level)
	require.Len(t, out.Capabilities, 2)
	assert.Equal(t, "renderer", out.Capabilities[0].Name)
	assert.False(t, out.Capabilities[0].Available)
}

func TestMCPExtractAndPreview(t *testing.T) {
	session := setupServerClient(t)
	ctx := context.Background()

	src := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, document.WritePDF(src, "Notes", "Launch moved to May."))

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "extract_text",
		Arguments: ExtractTextInput{Path: src},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	extracted := decode[ExtractTextOutput](t, result)
	assert.Equal(t, "pdf", extracted.Format)
	assert.Contains(t, extracted.Text, "Launch moved to May.")

	result, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "render_preview",
		Arguments: RenderPreviewInput{Path: src},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	preview := decode[RenderPreviewOutput](t, result)
	assert.Equal(t, "degraded", preview.Mode)
	require.Len(t, preview.Files, 1)
}

func TestMCPToolErrorIsReported(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "extract_text",
		Arguments: ExtractTextInput{Path: "/nonexistent/file.xlsx"},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
