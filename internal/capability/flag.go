package capability

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dusk-indust/docassist/internal/log"
)

// Compile-time check.
var _ Resolver = (*Flag[struct{}])(nil)

// Resolver is anything the Detector can resolve and report on.
type Resolver interface {
	Name() string
	Resolve()
	Status() Status
}

// Status is a snapshot of a resolved capability.
type Status struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`

	// Detail describes the acquired handle, e.g. the rasterizer path.
	Detail string `json:"detail,omitempty"`

	// Reason is set when the capability is absent.
	Reason string `json:"reason,omitempty"`
}

// Flag holds the set-once result of probing one optional capability. The
// probe runs on the first call to Resolve or any accessor and never again;
// every goroutine observes the same value afterwards.
type Flag[T any] struct {
	name    string
	acquire func() (T, error)

	// describe renders the handle for Status.Detail. Optional.
	describe func(T) string

	once     sync.Once
	resolved atomic.Bool
	handle   T
	ok       bool
	reason   error
}

// FlagOption configures a Flag.
type FlagOption[T any] func(*Flag[T])

// WithDescribe sets how the acquired handle is rendered in Status.Detail.
func WithDescribe[T any](fn func(T) string) FlagOption[T] {
	return func(f *Flag[T]) {
		f.describe = fn
	}
}

// New creates an unresolved flag for the named capability.
func New[T any](name string, acquire func() (T, error), opts ...FlagOption[T]) *Flag[T] {
	f := &Flag[T]{name: name, acquire: acquire}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name returns the capability name.
func (f *Flag[T]) Name() string { return f.name }

// Resolve runs the probe if it has not run yet.
func (f *Flag[T]) Resolve() {
	f.once.Do(func() {
		f.handle, f.ok, f.reason = Probe(f.acquire)
		f.resolved.Store(true)
		if f.ok {
			log.Infof("capability: %s available", f.name)
		} else {
			log.Warnf("capability: %s unavailable: %v", f.name, f.reason)
		}
	})
}

// Resolved reports whether the probe has run. It never triggers the probe.
func (f *Flag[T]) Resolved() bool { return f.resolved.Load() }

// Available reports whether the capability was acquired.
func (f *Flag[T]) Available() bool {
	f.Resolve()
	return f.ok
}

// Handle returns the acquired handle and whether it is valid.
func (f *Flag[T]) Handle() (T, bool) {
	f.Resolve()
	return f.handle, f.ok
}

// Reason returns why the capability is absent, or nil if it is available.
func (f *Flag[T]) Reason() error {
	f.Resolve()
	return f.reason
}

// Status returns a reporting snapshot.
func (f *Flag[T]) Status() Status {
	f.Resolve()
	s := Status{Name: f.name, Available: f.ok}
	if f.ok && f.describe != nil {
		s.Detail = f.describe(f.handle)
	}
	if f.reason != nil {
		s.Reason = f.reason.Error()
	}
	return s
}

// Fixed returns an already-resolved flag. Useful for wiring a known answer,
// e.g. when a capability is switched off by configuration. When ok is false
// the reason wraps ErrMissing like any probed reason; a valid handle never
// carries one.
func Fixed[T any](name string, handle T, ok bool, reason error) *Flag[T] {
	switch {
	case ok:
		reason = nil
	case reason == nil:
		reason = ErrMissing
	case !errors.Is(reason, ErrMissing):
		reason = fmt.Errorf("%w: %w", ErrMissing, reason)
	}

	f := &Flag[T]{name: name}
	f.once.Do(func() {
		f.handle, f.ok, f.reason = handle, ok, reason
		f.resolved.Store(true)
	})
	return f
}
