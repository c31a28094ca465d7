package orchestrator

import (
	"context"
	"errors"

	"github.com/dusk-indust/docassist/internal/assistant"
	"github.com/dusk-indust/docassist/internal/capability"
	"github.com/dusk-indust/docassist/internal/config"
	"github.com/dusk-indust/docassist/internal/log"
	"github.com/dusk-indust/docassist/internal/render"
)

// Capabilities bundles the optional capabilities docassist probes.
type Capabilities struct {
	Rendering *capability.Flag[render.Rasterizer]
	Assistant *capability.Flag[assistant.ModelCaller]
}

// DefaultCapabilities configures the process-wide rendering flag from cfg and
// builds the assistant flag. Nothing is probed yet.
func DefaultCapabilities(cfg *config.Config) Capabilities {
	if err := render.Configure(cfg.Renderer); errors.Is(err, render.ErrAlreadyResolved) {
		log.Warnf("orchestrator: renderer already probed; keeping its result")
	}
	return Capabilities{
		Rendering: render.Rendering(),
		Assistant: assistant.Capability(cfg.Assistant),
	}
}

// Detector returns a detector over every capability in c.
func (c Capabilities) Detector() *capability.Detector {
	return capability.NewDetector(c.Rendering, c.Assistant)
}

// Detect probes every capability once and logs the resulting level.
func (c Capabilities) Detect(ctx context.Context) capability.Report {
	report := c.Detector().Detect(ctx)
	for _, s := range report.Statuses {
		if !s.Available {
			log.Infof("orchestrator: %s degraded (%s)", s.Name, s.Reason)
		}
	}
	return report
}
