package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dusk-indust/docassist/internal/capability"
	"github.com/dusk-indust/docassist/internal/config"
)

// CapabilityName is the name the rendering capability is reported under.
const CapabilityName = "renderer"

// ErrAlreadyResolved is returned by Configure once the rendering capability
// has been probed; the flag never changes after that.
var ErrAlreadyResolved = errors.New("render: capability already resolved")

var (
	mu        sync.Mutex
	rendering = NewCapability(config.RendererConfig{Binaries: config.DefaultRasterizers})
)

// NewCapability builds an unresolved rendering flag for cfg.
func NewCapability(cfg config.RendererConfig) *capability.Flag[Rasterizer] {
	binaries := cfg.Binaries
	if len(binaries) == 0 {
		binaries = config.DefaultRasterizers
	}
	disabled := cfg.Disabled
	return capability.New(CapabilityName, func() (Rasterizer, error) {
		if disabled {
			return Rasterizer{}, fmt.Errorf("%w: disabled by configuration", capability.ErrMissing)
		}
		return LookupRasterizer(binaries)
	}, capability.WithDescribe(Rasterizer.String))
}

// Configure replaces the process-wide rendering flag. It must run during
// startup, before anything reads Rendering.
func Configure(cfg config.RendererConfig) error {
	mu.Lock()
	defer mu.Unlock()
	if rendering.Resolved() {
		return ErrAlreadyResolved
	}
	rendering = NewCapability(cfg)
	return nil
}

// Rendering returns the process-wide rendering flag.
func Rendering() *capability.Flag[Rasterizer] {
	mu.Lock()
	defer mu.Unlock()
	return rendering
}
