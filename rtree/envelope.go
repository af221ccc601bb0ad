package rtree

import "math"

// Envelope is an axis-aligned bounding box stored and transmitted in the fixed component order
// [xmin, xmax, ymin, ymax]. This is the ordering persisted under the bbox property key and the ordering every
// literal test fixture in this package uses; callers translating from a different convention must swap components
// at the boundary, not inside this package.
type Envelope struct {
	Xmin, Xmax, Ymin, Ymax float64
}

// NewEnvelope builds an Envelope from its four components in [xmin, xmax, ymin, ymax] order.
func NewEnvelope(xmin, xmax, ymin, ymax float64) Envelope {
	return Envelope{Xmin: xmin, Xmax: xmax, Ymin: ymin, Ymax: ymax}
}

// NullEnvelope returns an envelope in the canonical "null" state: every component is NaN, so IsNull is true and
// Expand treats it as absorbing whatever it's expanded with. NaN, not a reversed Xmin/Xmax, is the sentinel because
// source geometry can legitimately carry components in a non-canonical order (see the package-level ordering note)
// and such an envelope is still real extent, not "no extent yet".
func NullEnvelope() Envelope {
	return Envelope{Xmin: math.NaN(), Xmax: math.NaN(), Ymin: math.NaN(), Ymax: math.NaN()}
}

// IsNull reports whether this envelope represents "no extent yet" rather than a real, possibly non-canonically
// ordered, envelope.
func (e Envelope) IsNull() bool {
	return math.IsNaN(e.Xmin)
}

// Area returns the envelope's area. A null envelope has area 0.
func (e Envelope) Area() float64 {
	if e.IsNull() {
		return 0
	}

	return math.Abs(e.Xmax-e.Xmin) * math.Abs(e.Ymax-e.Ymin)
}

// Centroid returns the envelope's geometric centre, used as the stable point representative for chooseSubtree.
func (e Envelope) Centroid() (x, y float64) {
	return (e.Xmin + e.Xmax) / 2, (e.Ymin + e.Ymax) / 2
}

// CoversPoint reports whether (x, y) lies within this envelope, inclusive of its boundary. A null envelope covers
// nothing.
func (e Envelope) CoversPoint(x, y float64) bool {
	if e.IsNull() {
		return false
	}

	return e.Xmin <= x && x <= e.Xmax && e.Ymin <= y && y <= e.Ymax
}

// Covers reports whether this envelope fully contains other.
func (e Envelope) Covers(other Envelope) bool {
	if e.IsNull() || other.IsNull() {
		return false
	}

	return e.Xmin <= other.Xmin && other.Xmax <= e.Xmax && e.Ymin <= other.Ymin && other.Ymax <= e.Ymax
}

// Intersects reports whether e and other share any point. Two null envelopes do not intersect.
func (e Envelope) Intersects(other Envelope) bool {
	if e.IsNull() || other.IsNull() {
		return false
	}

	return !(e.Xmax < other.Xmin || other.Xmax < e.Xmin || e.Ymax < other.Ymin || other.Ymax < e.Ymin)
}

// Expand returns the smallest envelope containing both e and other. If other is null, e is returned unchanged; if e
// is null, other is returned.
func (e Envelope) Expand(other Envelope) Envelope {
	if other.IsNull() {
		return e
	}

	if e.IsNull() {
		return other
	}

	return Envelope{
		Xmin: math.Min(e.Xmin, other.Xmin),
		Xmax: math.Max(e.Xmax, other.Xmax),
		Ymin: math.Min(e.Ymin, other.Ymin),
		Ymax: math.Max(e.Ymax, other.Ymax),
	}
}

// Enlargement returns the cost, in additional area, of absorbing other into e.
func (e Envelope) Enlargement(other Envelope) float64 {
	return e.Expand(other).Area() - e.Area()
}

// Slice returns e's components as [xmin, xmax, ymin, ymax], the on-wire/property representation.
func (e Envelope) Slice() [4]float64 {
	return [4]float64{e.Xmin, e.Xmax, e.Ymin, e.Ymax}
}

// EnvelopeFromSlice builds an Envelope from a [xmin, xmax, ymin, ymax] slice, as decoded from the bbox property or a
// GeometryEncoder. Returns ErrEncoderMismatch if values does not have exactly 4 elements.
func EnvelopeFromSlice(values []float64) (Envelope, error) {
	if len(values) != 4 {
		return Envelope{}, ErrEncoderMismatch
	}

	return NewEnvelope(values[0], values[1], values[2], values[3]), nil
}
