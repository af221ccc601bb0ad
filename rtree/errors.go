package rtree

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Wrap with fmt.Errorf("...: %w", ErrX) at call sites so callers can still match with
// errors.Is while getting a message that names the layer and operation that failed.
var (
	// ErrNotIndexed is returned when a geometry vertex passed to Remove or Get is not reachable from this layer's
	// index root.
	ErrNotIndexed = errors.New("geometry is not indexed by this layer")

	// ErrInternalInvariant is returned when an invariant of the tree's structure was observed violated, e.g.
	// chooseSubtree found no candidate child in a non-empty index vertex. Fatal: the caller should treat the layer
	// as corrupt and stop using it.
	ErrInternalInvariant = errors.New("internal r-tree invariant violated")

	// ErrReadOnlyView is returned when a mutation is attempted against a dynamic sub-layer.
	ErrReadOnlyView = errors.New("dynamic layer is read-only")

	// ErrEncoderMismatch is returned when a bbox property is present but not a recognised 4-double vector.
	ErrEncoderMismatch = errors.New("geometry encoder produced an envelope of unexpected width")

	// ErrHostStoreError wraps any transaction or I/O failure surfaced by the host graph adapter.
	ErrHostStoreError = errors.New("host graph store error")
)

// IsNotIndexed reports whether err is or wraps ErrNotIndexed.
func IsNotIndexed(err error) bool {
	return errors.Is(err, ErrNotIndexed)
}

// IsInternalInvariant reports whether err is or wraps ErrInternalInvariant.
func IsInternalInvariant(err error) bool {
	return errors.Is(err, ErrInternalInvariant)
}

// IsReadOnlyView reports whether err is or wraps ErrReadOnlyView.
func IsReadOnlyView(err error) bool {
	return errors.Is(err, ErrReadOnlyView)
}

// IsEncoderMismatch reports whether err is or wraps ErrEncoderMismatch.
func IsEncoderMismatch(err error) bool {
	return errors.Is(err, ErrEncoderMismatch)
}

// IsHostStoreError reports whether err is or wraps ErrHostStoreError.
func IsHostStoreError(err error) bool {
	return errors.Is(err, ErrHostStoreError)
}

func wrapHostError(op string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w: %w", op, ErrHostStoreError, err)
}

func invariantViolation(layer string, reason string) error {
	return fmt.Errorf("layer %q: %s: %w", layer, reason, ErrInternalInvariant)
}
