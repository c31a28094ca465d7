// Package orchestrator wires the capability probes to their consumers. It
// probes once at construction, before any caller can spawn workers, and then
// routes each request to the rich or the degraded implementation.
package orchestrator

import (
	"context"
	"fmt"
	"os"

	"github.com/dusk-indust/docassist/internal/assistant"
	"github.com/dusk-indust/docassist/internal/capability"
	"github.com/dusk-indust/docassist/internal/config"
	"github.com/dusk-indust/docassist/internal/document"
	"github.com/dusk-indust/docassist/internal/log"
	"github.com/dusk-indust/docassist/internal/render"
)

// Compile-time check.
var _ Orchestrator = (*Service)(nil)

// Orchestrator is the operation set exposed through the CLI, MCP and HTTP.
type Orchestrator interface {
	Capabilities(ctx context.Context) capability.Report
	Extract(ctx context.Context, path string) (*document.Document, error)
	Preview(ctx context.Context, path string) (*render.Preview, error)
	Summarize(ctx context.Context, path string) (*SummaryResult, error)
	Export(ctx context.Context, req ExportRequest) (*ExportResult, error)
}

// SummaryResult is a summary of one document.
type SummaryResult struct {
	Document string             `json:"document"`
	Summary  *assistant.Summary `json:"summary"`
}

// ExportRequest converts Source into Format at Destination.
type ExportRequest struct {
	Source      string
	Destination string
	Format      document.Format

	// Summarize exports the summary instead of the full text.
	Summarize bool
}

// ExportResult describes a written export.
type ExportResult struct {
	Path   string          `json:"path"`
	Format document.Format `json:"format"`
	Mode   string          `json:"mode"`
}

// Service implements Orchestrator.
type Service struct {
	cfg       *config.Config
	caps      Capabilities
	report    capability.Report
	renderer  render.Renderer
	assistant *assistant.Assistant
}

// New probes caps and builds the renderer and assistant for the result.
// It blocks until every probe has finished. A nil cfg means config.Default.
func New(ctx context.Context, cfg *config.Config, caps Capabilities) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	report := caps.Detect(ctx)
	s := &Service{
		cfg:       cfg,
		caps:      caps,
		report:    report,
		renderer:  render.New(caps.Rendering, render.OptionsFromConfig(cfg.Renderer)...),
		assistant: assistant.New(caps.Assistant, assistant.OptionsFromConfig(cfg.Assistant)...),
	}
	log.Debugf("orchestrator: preview=%s model-summaries=%t", s.renderer.Mode(), s.assistant.Available())
	return s
}

// Capabilities returns the startup capability report.
func (s *Service) Capabilities(_ context.Context) capability.Report {
	return s.report
}

// RenderMode reports which preview path is active.
func (s *Service) RenderMode() render.Mode {
	return s.renderer.Mode()
}

// Extract returns the text of the document at path.
func (s *Service) Extract(_ context.Context, path string) (*document.Document, error) {
	return document.Extract(path)
}

// Preview writes a preview of the document under the output directory.
func (s *Service) Preview(ctx context.Context, path string) (*render.Preview, error) {
	doc, err := document.Extract(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return s.renderer.Render(ctx, doc, s.cfg.OutputDir)
}

// Summarize summarizes the document at path.
func (s *Service) Summarize(ctx context.Context, path string) (*SummaryResult, error) {
	doc, err := document.Extract(path)
	if err != nil {
		return nil, err
	}
	sum, err := s.assistant.Summarize(ctx, doc.Text)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", doc.Name, err)
	}
	return &SummaryResult{Document: doc.Name, Summary: sum}, nil
}

// Export writes the text, or the summary, of req.Source to req.Destination.
func (s *Service) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	doc, err := document.Extract(req.Source)
	if err != nil {
		return nil, err
	}

	text, title, mode := doc.Text, doc.Name, "text"
	if req.Summarize {
		sum, err := s.assistant.Summarize(ctx, doc.Text)
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", doc.Name, err)
		}
		text, title, mode = sum.Text, doc.Name+" (summary)", string(sum.Mode)
	}

	if err := document.Export(req.Destination, req.Format, title, text); err != nil {
		return nil, err
	}
	return &ExportResult{Path: req.Destination, Format: req.Format, Mode: mode}, nil
}
