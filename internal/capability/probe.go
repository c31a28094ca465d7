// Package capability detects optional runtime dependencies. A probe tries to
// acquire a dependency once; failure is recorded as an absent capability and
// never escapes as a fault, so callers can pick a degraded path instead.
package capability

import (
	"errors"
	"fmt"
)

// ErrMissing is wrapped by every reason a capability is absent.
var ErrMissing = errors.New("optional dependency missing")

// Probe runs acquire once and reports whether it succeeded. Errors and panics
// from acquire are converted into ok == false; the returned error explains why
// and always wraps ErrMissing.
func Probe[T any](acquire func() (T, error)) (handle T, ok bool, reason error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			handle, ok = zero, false
			reason = fmt.Errorf("%w: acquisition panicked: %v", ErrMissing, r)
		}
	}()

	if acquire == nil {
		return handle, false, fmt.Errorf("%w: no acquisition function", ErrMissing)
	}

	h, err := acquire()
	if err != nil {
		var zero T
		if errors.Is(err, ErrMissing) {
			return zero, false, err
		}
		return zero, false, fmt.Errorf("%w: %w", ErrMissing, err)
	}
	return h, true, nil
}
