package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dusk-indust/docassist/internal/capability"
)

// Supported external rasterizers.
const (
	ToolPdftoppm = "pdftoppm"
	ToolMutool   = "mutool"
)

// Rasterizer is an external PDF page rasterizer found on PATH.
type Rasterizer struct {
	Tool string `json:"tool"`
	Path string `json:"path"`
}

func (r Rasterizer) String() string {
	return r.Tool + " (" + r.Path + ")"
}

// LookupRasterizer returns the first supported rasterizer found on PATH.
// It is the acquisition function behind the rendering capability: failure
// wraps capability.ErrMissing.
func LookupRasterizer(binaries []string) (Rasterizer, error) {
	var tried []string
	for _, name := range binaries {
		if name != ToolPdftoppm && name != ToolMutool {
			return Rasterizer{}, fmt.Errorf("%w: unsupported rasterizer %q", capability.ErrMissing, name)
		}
		path, err := exec.LookPath(name)
		if err != nil {
			tried = append(tried, name)
			continue
		}
		return Rasterizer{Tool: name, Path: path}, nil
	}
	return Rasterizer{}, fmt.Errorf("%w: no rasterizer on PATH (tried %s)", capability.ErrMissing, strings.Join(tried, ", "))
}

// args builds the command line that renders pages 1..maxPages of src into
// PNG files under outDir, named page-<n>.png (pdftoppm may zero-pad n).
func (r Rasterizer) args(src, outDir string, dpi, maxPages int) []string {
	switch r.Tool {
	case ToolMutool:
		return []string{
			"draw", "-q",
			"-r", strconv.Itoa(dpi),
			"-o", filepath.Join(outDir, "page-%d.png"),
			src,
			fmt.Sprintf("1-%d", maxPages),
		}
	default:
		return []string{
			"-png",
			"-r", strconv.Itoa(dpi),
			"-f", "1",
			"-l", strconv.Itoa(maxPages),
			src,
			filepath.Join(outDir, "page"),
		}
	}
}

// Rasterize runs the tool. The process is killed if ctx is cancelled.
func (r Rasterizer) Rasterize(ctx context.Context, src, outDir string, dpi, maxPages int) error {
	cmd := exec.CommandContext(ctx, r.Path, r.args(src, outDir, dpi, maxPages)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.WaitDelay = 2 * time.Second
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", r.Tool, err, msg)
		}
		return fmt.Errorf("%s: %w", r.Tool, err)
	}
	return nil
}
