package capability

import (
	"context"

	"github.com/dusk-indust/docassist/internal/log"
	"golang.org/x/sync/errgroup"
)

// Report is the outcome of a Detect run.
type Report struct {
	Level    Level    `json:"level"`
	Statuses []Status `json:"capabilities"`
}

// Lookup returns the status with the given name.
func (r Report) Lookup(name string) (Status, bool) {
	for _, s := range r.Statuses {
		if s.Name == name {
			return s, true
		}
	}
	return Status{}, false
}

// Detector resolves a fixed set of capabilities, typically once at startup
// before any worker goroutine is spawned.
type Detector struct {
	resolvers []Resolver
}

// NewDetector creates a Detector over the given resolvers. Report order
// follows argument order.
func NewDetector(resolvers ...Resolver) *Detector {
	return &Detector{resolvers: resolvers}
}

// Detect resolves every capability concurrently and waits for all of them.
// It never fails: an absent capability is part of the report, not an error.
// Probes are not interruptible, so a cancelled ctx does not shorten the wait.
func (d *Detector) Detect(_ context.Context) Report {
	var g errgroup.Group
	for _, r := range d.resolvers {
		g.Go(func() error {
			r.Resolve()
			return nil
		})
	}
	_ = g.Wait() // resolvers never return an error

	statuses := make([]Status, 0, len(d.resolvers))
	for _, r := range d.resolvers {
		statuses = append(statuses, r.Status())
	}
	level := levelOf(statuses)

	log.Infof("capability: level=%s probes=%d", level, len(statuses))

	return Report{Level: level, Statuses: statuses}
}
