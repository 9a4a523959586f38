package geometry

import (
	"fmt"
	"math"
)

// PrecisionType is the rounding policy of a PrecisionModel.
type PrecisionType int

const (
	// Floating keeps full double precision; no snapping is done.
	Floating PrecisionType = iota
	// FloatingSingle rounds values to single precision.
	FloatingSingle
	// Fixed rounds values to a grid of 1/Scale.
	Fixed
)

func (t PrecisionType) String() string {
	switch t {
	case Floating:
		return "Floating"
	case FloatingSingle:
		return "FloatingSingle"
	case Fixed:
		return "Fixed"
	default:
		return fmt.Sprintf("PrecisionType(%d)", int(t))
	}
}

// PrecisionModel snaps raw coordinates to a canonical precision. Every
// coordinate entering a geometry passes through MakePrecise.
type PrecisionModel struct {
	typ   PrecisionType
	scale float64
}

var defaultPrecision = &PrecisionModel{typ: Floating}

// Default returns the floating precision model that performs no snapping.
func Default() *PrecisionModel {
	return defaultPrecision
}

// NewFloatingSingle returns a single precision model.
func NewFloatingSingle() *PrecisionModel {
	return &PrecisionModel{typ: FloatingSingle}
}

// NewFixed returns a fixed precision model rounding to multiples of 1/scale.
// A scale of 100 keeps two decimal places.
func NewFixed(scale float64) (*PrecisionModel, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, InvalidArgument("precision scale %v must be positive and finite", scale)
	}
	return &PrecisionModel{typ: Fixed, scale: math.Abs(scale)}, nil
}

// Type returns the rounding policy.
func (p *PrecisionModel) Type() PrecisionType { return p.typ }

// Scale returns the scale of a fixed model, 0 otherwise.
func (p *PrecisionModel) Scale() float64 { return p.scale }

// IsFloating reports whether the model does not round to a grid.
func (p *PrecisionModel) IsFloating() bool { return p.typ != Fixed }

// fixedExactLimit is the grid magnitude from which a fixed model keeps
// values as they are. Past it the float64 spacing is within a quarter grid
// step, and rounding k/scale back and forth could drift by an ulp.
const fixedExactLimit = 1 << 50

// MakePrecise snaps a single value. Snapping is idempotent.
func (p *PrecisionModel) MakePrecise(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	switch p.typ {
	case FloatingSingle:
		return float64(float32(v))
	case Fixed:
		if math.Abs(v*p.scale) >= fixedExactLimit {
			return v
		}
		return math.Round(v*p.scale) / p.scale
	default:
		return v
	}
}

// MakePreciseCoordinate snaps every component of c.
func (p *PrecisionModel) MakePreciseCoordinate(c Coordinate) Coordinate {
	if p.typ == Floating {
		return c
	}
	return Coordinate{X: p.MakePrecise(c.X), Y: p.MakePrecise(c.Y), Z: p.MakePrecise(c.Z)}
}

// MakePreciseCoordinates returns a snapped copy of cs.
func (p *PrecisionModel) MakePreciseCoordinates(cs []Coordinate) []Coordinate {
	if len(cs) == 0 {
		return nil
	}
	out := make([]Coordinate, len(cs))
	for i, c := range cs {
		out[i] = p.MakePreciseCoordinate(c)
	}
	return out
}

// Tolerance is the largest difference between two values that snap to the
// same value. It is zero for the floating model.
func (p *PrecisionModel) Tolerance() float64 {
	switch p.typ {
	case FloatingSingle:
		return math.Pow(2, -23)
	case Fixed:
		return 0.5 / p.scale
	default:
		return 0
	}
}

// MaximumSignificantDigits returns the number of significant decimal digits
// the model can represent.
func (p *PrecisionModel) MaximumSignificantDigits() int {
	switch p.typ {
	case FloatingSingle:
		return 6
	case Fixed:
		return 1 + int(math.Ceil(math.Log10(p.scale)))
	default:
		return 16
	}
}

// AreEqual reports whether a and b snap to the same value.
func (p *PrecisionModel) AreEqual(a, b float64) bool {
	return floatEqual(p.MakePrecise(a), p.MakePrecise(b))
}

// Equal reports whether two models apply the same rounding.
func (p *PrecisionModel) Equal(other *PrecisionModel) bool {
	if p == other {
		return true
	}
	if p == nil || other == nil {
		return false
	}
	return p.typ == other.typ && p.scale == other.scale
}

func (p *PrecisionModel) String() string {
	if p.typ == Fixed {
		return fmt.Sprintf("Fixed(%v)", p.scale)
	}
	return p.typ.String()
}

func resolvePrecision(p *PrecisionModel) *PrecisionModel {
	if p == nil {
		return Default()
	}
	return p
}
