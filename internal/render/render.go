// Package render produces document previews. When the rendering capability
// is available, PDF pages are rasterized to PNG; otherwise a markdown text
// preview is written instead.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dusk-indust/docassist/internal/capability"
	"github.com/dusk-indust/docassist/internal/config"
	"github.com/dusk-indust/docassist/internal/document"
	"github.com/dusk-indust/docassist/internal/log"
	"github.com/google/uuid"
)

// Mode says which path produced a preview.
type Mode string

const (
	ModeRich     Mode = "rich"
	ModeDegraded Mode = "degraded"
)

// Preview describes the files written for one document.
type Preview struct {
	Mode  Mode     `json:"mode"`
	Dir   string   `json:"dir"`
	Files []string `json:"files"`

	// Pages is the number of page images, 0 for degraded previews.
	Pages   int    `json:"pages"`
	Excerpt string `json:"excerpt,omitempty"`

	// Note explains a degraded preview.
	Note string `json:"note,omitempty"`
}

// Renderer writes a preview of doc into a fresh directory under outDir.
type Renderer interface {
	Render(ctx context.Context, doc *document.Document, outDir string) (*Preview, error)
	Mode() Mode
}

type options struct {
	dpi          int
	maxPages     int
	excerptRunes int
}

// Option configures a Renderer.
type Option func(*options)

// WithDPI sets the rasterization resolution.
func WithDPI(dpi int) Option {
	return func(o *options) { o.dpi = dpi }
}

// WithMaxPages limits how many pages are rasterized.
func WithMaxPages(n int) Option {
	return func(o *options) { o.maxPages = n }
}

// WithExcerptRunes limits the length of text previews.
func WithExcerptRunes(n int) Option {
	return func(o *options) { o.excerptRunes = n }
}

// OptionsFromConfig maps renderer settings to options.
func OptionsFromConfig(cfg config.RendererConfig) []Option {
	return []Option{
		WithDPI(cfg.DPI),
		WithMaxPages(cfg.MaxPages),
		WithExcerptRunes(cfg.ExcerptRunes),
	}
}

// New picks the rasterizing renderer when flag is available and the text
// renderer otherwise.
func New(flag *capability.Flag[Rasterizer], opts ...Option) Renderer {
	o := options{
		dpi:          config.DefaultDPI,
		maxPages:     config.DefaultMaxPages,
		excerptRunes: config.DefaultExcerptRunes,
	}
	for _, opt := range opts {
		opt(&o)
	}

	text := &TextRenderer{excerptRunes: o.excerptRunes}
	if r, ok := flag.Handle(); ok {
		return &RasterRenderer{rasterizer: r, dpi: o.dpi, maxPages: o.maxPages, text: text}
	}
	if reason := flag.Reason(); reason != nil {
		text.note = "Page images unavailable: " + reason.Error()
	}
	return text
}

// newPreviewDir creates outDir/preview-<uuid>.
func newPreviewDir(outDir string) (string, error) {
	dir := filepath.Join(outDir, "preview-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create preview dir: %w", err)
	}
	return dir, nil
}

// RasterRenderer renders PDF pages through an external rasterizer. Documents
// that are not PDFs have no pages to rasterize and get a text preview.
type RasterRenderer struct {
	rasterizer Rasterizer
	dpi        int
	maxPages   int
	text       *TextRenderer
}

// Mode implements Renderer.
func (r *RasterRenderer) Mode() Mode { return ModeRich }

// Render implements Renderer.
func (r *RasterRenderer) Render(ctx context.Context, doc *document.Document, outDir string) (*Preview, error) {
	if doc.Format != document.FormatPDF {
		return r.text.Render(ctx, doc, outDir)
	}

	dir, err := newPreviewDir(outDir)
	if err != nil {
		return nil, err
	}

	log.Debugf("render: %s %s -> %s", r.rasterizer.Tool, doc.Path, dir)
	if err := r.rasterizer.Rasterize(ctx, doc.Path, dir, r.dpi, r.maxPages); err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			log.Warnf("render: remove %s: %v", dir, rmErr)
		}
		return nil, fmt.Errorf("rasterize %s: %w", doc.Name, err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return nil, fmt.Errorf("collect page images: %w", err)
	}
	sortPages(files)

	return &Preview{
		Mode:    ModeRich,
		Dir:     dir,
		Files:   files,
		Pages:   len(files),
		Excerpt: excerpt(doc.Text, r.text.excerptRunes),
	}, nil
}

// sortPages orders page-<n>.png files by n. mutool does not zero-pad n, so
// name order would put page-10 before page-2.
func sortPages(files []string) {
	sort.SliceStable(files, func(i, j int) bool {
		ni, nj := pageNumber(files[i]), pageNumber(files[j])
		if ni != nj {
			return ni < nj
		}
		return files[i] < files[j]
	})
}

// pageNumber parses n from page-<n>.png, or returns -1.
func pageNumber(path string) int {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	i := strings.LastIndexByte(name, '-')
	if i < 0 {
		return -1
	}
	n, err := strconv.Atoi(name[i+1:])
	if err != nil {
		return -1
	}
	return n
}

// TextRenderer writes a markdown preview of the extracted text.
type TextRenderer struct {
	excerptRunes int
	note         string
}

// Mode implements Renderer.
func (r *TextRenderer) Mode() Mode { return ModeDegraded }

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, doc *document.Document, outDir string) (*Preview, error) {
	dir, err := newPreviewDir(outDir)
	if err != nil {
		return nil, err
	}

	text := excerpt(doc.Text, r.excerptRunes)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", doc.Name)
	if r.note != "" {
		fmt.Fprintf(&sb, "> %s\n\n", r.note)
	}
	sb.WriteString(text)
	sb.WriteString("\n")

	path := filepath.Join(dir, "preview.md")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write text preview: %w", err)
	}

	return &Preview{
		Mode:    ModeDegraded,
		Dir:     dir,
		Files:   []string{path},
		Excerpt: text,
		Note:    r.note,
	}, nil
}

// excerpt returns the first n runes of text, trimmed, with an ellipsis when
// text was cut.
func excerpt(text string, n int) string {
	text = strings.TrimSpace(text)
	if n <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}
