package mcptools

import (
	"context"
	"fmt"

	"github.com/dusk-indust/docassist/internal/orchestrator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DocumentService holds the orchestrator used by MCP tool handlers.
type DocumentService struct {
	orch orchestrator.Orchestrator
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(orch orchestrator.Orchestrator) *DocumentService {
	return &DocumentService{orch: orch}
}

// GetCapabilities reports which optional capabilities were acquired at startup.
func (s *DocumentService) GetCapabilities(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GetCapabilitiesInput,
) (*mcp.CallToolResult, GetCapabilitiesOutput, error) {
	report := s.orch.Capabilities(ctx)

	out := GetCapabilitiesOutput{
		Level:        report.Level.String(),
		Capabilities: make([]CapabilityOutput, 0, len(report.Statuses)),
	}
	for _, st := range report.Statuses {
		out.Capabilities = append(out.Capabilities, CapabilityOutput{
			Name:      st.Name,
			Available: st.Available,
			Detail:    st.Detail,
			Reason:    st.Reason,
		})
	}
	return nil, out, nil
}

// ExtractText returns the plain text of a document.
func (s *DocumentService) ExtractText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractTextInput,
) (*mcp.CallToolResult, ExtractTextOutput, error) {
	if input.Path == "" {
		return nil, ExtractTextOutput{}, fmt.Errorf("path is required")
	}

	doc, err := s.orch.Extract(ctx, input.Path)
	if err != nil {
		return nil, ExtractTextOutput{}, err
	}

	out := ExtractTextOutput{
		Name:   doc.Name,
		Format: string(doc.Format),
		Pages:  doc.Pages,
		Text:   doc.Text,
	}
	if runes := []rune(doc.Text); input.MaxRunes > 0 && len(runes) > input.MaxRunes {
		out.Text = string(runes[:input.MaxRunes])
		out.Truncated = true
	}
	return nil, out, nil
}

// RenderPreview writes page images, or a text preview when the renderer is
// unavailable.
func (s *DocumentService) RenderPreview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenderPreviewInput,
) (*mcp.CallToolResult, RenderPreviewOutput, error) {
	if input.Path == "" {
		return nil, RenderPreviewOutput{}, fmt.Errorf("path is required")
	}

	p, err := s.orch.Preview(ctx, input.Path)
	if err != nil {
		return nil, RenderPreviewOutput{}, err
	}
	return nil, RenderPreviewOutput{
		Mode:  string(p.Mode),
		Dir:   p.Dir,
		Files: p.Files,
		Pages: p.Pages,
		Note:  p.Note,
	}, nil
}

// Summarize summarizes a document.
func (s *DocumentService) Summarize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummarizeInput,
) (*mcp.CallToolResult, SummarizeOutput, error) {
	if input.Path == "" {
		return nil, SummarizeOutput{}, fmt.Errorf("path is required")
	}

	res, err := s.orch.Summarize(ctx, input.Path)
	if err != nil {
		return nil, SummarizeOutput{}, err
	}
	return nil, SummarizeOutput{
		Document: res.Document,
		Mode:     string(res.Summary.Mode),
		Model:    res.Summary.Model,
		Summary:  res.Summary.Text,
	}, nil
}
