package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Envelope is an axis-aligned bounding box. It is always derived from
// coordinates and never stored.
type Envelope struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// UndefinedEnvelope is the envelope of an empty geometry.
var UndefinedEnvelope = Envelope{
	MinX: math.NaN(), MaxX: math.NaN(),
	MinY: math.NaN(), MaxY: math.NaN(),
	MinZ: math.NaN(), MaxZ: math.NaN(),
}

// EnvelopeOf returns the envelope of the valid coordinates in cs, or
// UndefinedEnvelope when there are none.
func EnvelopeOf(cs ...Coordinate) Envelope {
	e := UndefinedEnvelope
	for _, c := range cs {
		e = e.ExpandToInclude(c)
	}
	return e
}

// IsEmpty reports whether the bounds are undefined.
func (e Envelope) IsEmpty() bool {
	return math.IsNaN(e.MinX) || math.IsNaN(e.MinY)
}

// ExpandToInclude returns the smallest envelope containing e and c. Empty
// coordinates are ignored.
func (e Envelope) ExpandToInclude(c Coordinate) Envelope {
	if c.IsEmpty() {
		return e
	}
	if e.IsEmpty() {
		return Envelope{MinX: c.X, MaxX: c.X, MinY: c.Y, MaxY: c.Y, MinZ: c.Z, MaxZ: c.Z}
	}
	return Envelope{
		MinX: math.Min(e.MinX, c.X), MaxX: math.Max(e.MaxX, c.X),
		MinY: math.Min(e.MinY, c.Y), MaxY: math.Max(e.MaxY, c.Y),
		MinZ: math.Min(e.MinZ, c.Z), MaxZ: math.Max(e.MaxZ, c.Z),
	}
}

// Expand returns the smallest envelope containing e and other.
func (e Envelope) Expand(other Envelope) Envelope {
	if other.IsEmpty() {
		return e
	}
	if e.IsEmpty() {
		return other
	}
	return e.ExpandToInclude(other.Minimum()).ExpandToInclude(other.Maximum())
}

// Minimum returns the lower corner.
func (e Envelope) Minimum() Coordinate { return Coordinate{X: e.MinX, Y: e.MinY, Z: e.MinZ} }

// Maximum returns the upper corner.
func (e Envelope) Maximum() Coordinate { return Coordinate{X: e.MaxX, Y: e.MaxY, Z: e.MaxZ} }

// Center returns the center of the envelope.
func (e Envelope) Center() Coordinate {
	return Coordinate{X: (e.MinX + e.MaxX) / 2, Y: (e.MinY + e.MaxY) / 2, Z: (e.MinZ + e.MaxZ) / 2}
}

// Width returns the X extent.
func (e Envelope) Width() float64 { return e.MaxX - e.MinX }

// Height returns the Y extent.
func (e Envelope) Height() float64 { return e.MaxY - e.MinY }

// Depth returns the Z extent.
func (e Envelope) Depth() float64 { return e.MaxZ - e.MinZ }

// Contains reports whether c lies inside or on the planar extent of e.
func (e Envelope) Contains(c Coordinate) bool {
	if e.IsEmpty() || c.IsEmpty() {
		return false
	}
	return c.X >= e.MinX && c.X <= e.MaxX && c.Y >= e.MinY && c.Y <= e.MaxY
}

// Intersects reports whether e and other share at least one planar point.
func (e Envelope) Intersects(other Envelope) bool {
	if e.IsEmpty() || other.IsEmpty() {
		return false
	}
	return e.MinX <= other.MaxX && other.MinX <= e.MaxX &&
		e.MinY <= other.MaxY && other.MinY <= e.MaxY
}

// Bound converts the envelope to a planar orb.Bound.
func (e Envelope) Bound() orb.Bound {
	if e.IsEmpty() {
		return orb.Bound{}
	}
	return orb.Bound{Min: orb.Point{e.MinX, e.MinY}, Max: orb.Point{e.MaxX, e.MaxY}}
}

func (e Envelope) String() string {
	if e.IsEmpty() {
		return "ENVELOPE EMPTY"
	}
	return fmt.Sprintf("ENVELOPE (%s,%s)", e.Minimum(), e.Maximum())
}
