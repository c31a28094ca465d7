package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dusk-indust/docassist/internal/assistant"
	"github.com/dusk-indust/docassist/internal/capability"
	"github.com/dusk-indust/docassist/internal/config"
	"github.com/dusk-indust/docassist/internal/document"
	"github.com/dusk-indust/docassist/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakePdftoppm = `#!/bin/sh
for last; do :; done
: > "${last}-1.png"
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.Assistant.APIKey = ""
	return cfg
}

func degradedCaps() Capabilities {
	return Capabilities{
		Rendering: capability.Fixed(render.CapabilityName, render.Rasterizer{}, false, capability.ErrMissing),
		Assistant: capability.Fixed[assistant.ModelCaller](assistant.CapabilityName, nil, false, capability.ErrMissing),
	}
}

func writeSource(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brief.pdf")
	require.NoError(t, document.WritePDF(path, "Brief", "Sales doubled. Margins held. Hiring paused."))
	return path
}

func TestService_DegradedPaths(t *testing.T) {
	cfg := testConfig(t)
	svc := New(context.Background(), cfg, degradedCaps())

	report := svc.Capabilities(context.Background())
	assert.Equal(t, capability.LevelBasic, report.Level)
	assert.Equal(t, render.ModeDegraded, svc.RenderMode())

	src := writeSource(t)

	preview, err := svc.Preview(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, render.ModeDegraded, preview.Mode)
	assert.Contains(t, preview.Excerpt, "Sales doubled")
	assert.Equal(t, cfg.OutputDir, filepath.Dir(preview.Dir))

	sum, err := svc.Summarize(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "brief", sum.Document)
	assert.Equal(t, assistant.ModeExtractive, sum.Summary.Mode)
	assert.NotEmpty(t, sum.Summary.Text)
}

func TestService_RichPreview(t *testing.T) {
	bin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bin, "pdftoppm"), []byte(fakePdftoppm), 0o755))
	t.Setenv("PATH", bin)

	caps := degradedCaps()
	caps.Rendering = render.NewCapability(config.RendererConfig{})

	svc := New(context.Background(), testConfig(t), caps)
	assert.Equal(t, capability.LevelPartial, svc.Capabilities(context.Background()).Level)
	assert.Equal(t, render.ModeRich, svc.RenderMode())

	preview, err := svc.Preview(context.Background(), writeSource(t))
	require.NoError(t, err)
	assert.Equal(t, render.ModeRich, preview.Mode)
	assert.Equal(t, 1, preview.Pages)
}

func TestService_Extract(t *testing.T) {
	svc := New(context.Background(), testConfig(t), degradedCaps())

	doc, err := svc.Extract(context.Background(), writeSource(t))
	require.NoError(t, err)
	assert.Equal(t, document.FormatPDF, doc.Format)
	assert.Contains(t, doc.Text, "Margins held")

	_, err = svc.Extract(context.Background(), "deck.pptx")
	assert.ErrorIs(t, err, document.ErrUnsupportedFormat)
}

func TestService_Export(t *testing.T) {
	svc := New(context.Background(), testConfig(t), degradedCaps())
	src := writeSource(t)
	dir := t.TempDir()

	res, err := svc.Export(context.Background(), ExportRequest{
		Source:      src,
		Destination: filepath.Join(dir, "brief.md"),
		Format:      document.FormatMarkdown,
		Summarize:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, string(assistant.ModeExtractive), res.Mode)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# brief (summary)")

	res, err = svc.Export(context.Background(), ExportRequest{
		Source:      src,
		Destination: filepath.Join(dir, "brief.docx"),
		Format:      document.FormatDOCX,
	})
	require.NoError(t, err)
	assert.Equal(t, "text", res.Mode)
	_, err = os.Stat(res.Path)
	assert.NoError(t, err)
}

func TestDefaultCapabilities_NothingInstalled(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	cfg := testConfig(t)

	caps := DefaultCapabilities(cfg)
	report := caps.Detect(context.Background())

	assert.Equal(t, capability.LevelBasic, report.Level)
	require.Len(t, report.Statuses, 2)
	assert.Equal(t, render.CapabilityName, report.Statuses[0].Name)
	assert.Equal(t, assistant.CapabilityName, report.Statuses[1].Name)
	assert.Same(t, render.Rendering(), caps.Rendering)

	// A second configuration attempt keeps the published flag.
	again := DefaultCapabilities(cfg)
	assert.Same(t, caps.Rendering, again.Rendering)
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	svc := New(context.Background(), nil, degradedCaps())

	assert.Equal(t, render.ModeDegraded, svc.RenderMode())
	assert.Equal(t, capability.LevelBasic, svc.Capabilities(context.Background()).Level)
	assert.Equal(t, config.DefaultOutputDir, svc.cfg.OutputDir)
}
