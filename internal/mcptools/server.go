package mcptools

import (
	"context"
	"net/http"

	"github.com/dusk-indust/docassist/internal/orchestrator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewServer creates an MCP server with the document tools registered.
func NewServer(orch orchestrator.Orchestrator) *mcp.Server {
	svc := NewDocumentService(orch)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "docassist",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_capabilities",
		Description: "Report which optional capabilities (page rasterizer, generative summarizer) were detected at startup and why any are missing.",
	}, svc.GetCapabilities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_text",
		Description: "Extract plain text from a PDF, DOCX, text or markdown file.",
	}, svc.ExtractText)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_preview",
		Description: "Render a document preview. Produces PNG page images when a rasterizer is installed, otherwise a markdown text preview.",
	}, svc.RenderPreview)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize_document",
		Description: "Summarize a document. Uses Gemini when an API key is configured, otherwise returns the leading sentences.",
	}, svc.Summarize)

	return server
}

// NewHTTPHandler returns a streamable HTTP handler serving server.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)
}

// RunStdio runs the MCP server on stdio, blocking until stdin is closed or
// the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
