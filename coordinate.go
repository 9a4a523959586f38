package geometry

import (
	"math"
	"strconv"
)

// Coordinate is an immutable three dimensional position.
type Coordinate struct {
	X float64
	Y float64
	Z float64
}

// Undefined is the coordinate with every component undefined (NaN). It is
// the coordinate of an empty point.
var Undefined = Coordinate{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}

// NewCoordinate returns the coordinate (x, y, z).
func NewCoordinate(x, y, z float64) Coordinate {
	return Coordinate{X: x, Y: y, Z: z}
}

// NewCoordinate2D returns the coordinate (x, y, 0).
func NewCoordinate2D(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y}
}

// IsEmpty reports whether every component is undefined.
func (c Coordinate) IsEmpty() bool {
	return math.IsNaN(c.X) && math.IsNaN(c.Y) && math.IsNaN(c.Z)
}

// IsValid reports whether no component is NaN or infinite.
func (c Coordinate) IsValid() bool {
	return isFinite(c.X) && isFinite(c.Y) && isFinite(c.Z)
}

// Equal reports component-wise equality. NaN components compare equal to
// each other so that empty coordinates are equal.
func (c Coordinate) Equal(other Coordinate) bool {
	return floatEqual(c.X, other.X) && floatEqual(c.Y, other.Y) && floatEqual(c.Z, other.Z)
}

// Equal2D compares the X and Y components only.
func (c Coordinate) Equal2D(other Coordinate) bool {
	return floatEqual(c.X, other.X) && floatEqual(c.Y, other.Y)
}

// Distance returns the Euclidean distance between c and other.
func (c Coordinate) Distance(other Coordinate) float64 {
	dx, dy, dz := c.X-other.X, c.Y-other.Y, c.Z-other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Distance2D returns the planar distance between c and other.
func (c Coordinate) Distance2D(other Coordinate) float64 {
	return math.Hypot(c.X-other.X, c.Y-other.Y)
}

// Add returns the component-wise sum of c and other.
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{X: c.X + other.X, Y: c.Y + other.Y, Z: c.Z + other.Z}
}

// Sub returns the component-wise difference c - other.
func (c Coordinate) Sub(other Coordinate) Coordinate {
	return Coordinate{X: c.X - other.X, Y: c.Y - other.Y, Z: c.Z - other.Z}
}

// Scale multiplies every component by f.
func (c Coordinate) Scale(f float64) Coordinate {
	return Coordinate{X: c.X * f, Y: c.Y * f, Z: c.Z * f}
}

// String returns the culture invariant "x y z" form.
func (c Coordinate) String() string {
	b := make([]byte, 0, 48)
	return string(c.appendText(b))
}

func (c Coordinate) appendText(b []byte) []byte {
	b = appendFloat(b, c.X)
	b = append(b, ' ')
	b = appendFloat(b, c.Y)
	b = append(b, ' ')
	return appendFloat(b, c.Z)
}

func appendFloat(b []byte, f float64) []byte {
	return strconv.AppendFloat(b, f, 'f', -1, 64)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func floatEqual(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}

// coordinateKey is used for hash-set membership of coordinates.
type coordinateKey struct {
	x, y, z uint64
}

func keyOf(c Coordinate) coordinateKey {
	return coordinateKey{bits(c.X), bits(c.Y), bits(c.Z)}
}

func bits(f float64) uint64 {
	switch {
	case math.IsNaN(f):
		return math.Float64bits(math.NaN())
	case f == 0:
		// -0 and +0 are the same position
		return 0
	default:
		return math.Float64bits(f)
	}
}

func copyCoordinates(cs []Coordinate) []Coordinate {
	if len(cs) == 0 {
		return nil
	}
	out := make([]Coordinate, len(cs))
	copy(out, cs)
	return out
}
