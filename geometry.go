// Package geometry provides a precision aware vector geometry model: points,
// line strings, polygons and collections created through a Factory.
//
// Geometries are defined as interfaces so that the same contract can be
// served by in-memory values (GeometryFactory) or by handles on an external
// store (see the stored package).
package geometry

import (
	"fmt"
	"strings"
)

// Kind identifies the concrete variant of a geometry. The set is closed.
type Kind int

// Geometry kinds.
const (
	KindUnknown Kind = iota
	KindPoint
	KindLineString
	KindLine
	KindLinearRing
	KindPolygon
	KindTriangle
	KindMultiPoint
	KindMultiLineString
	KindMultiPolygon
	KindGeometryCollection
)

var kindNames = [...]string{
	KindUnknown:            "Unknown",
	KindPoint:              "Point",
	KindLineString:         "LineString",
	KindLine:               "Line",
	KindLinearRing:         "LinearRing",
	KindPolygon:            "Polygon",
	KindTriangle:           "Triangle",
	KindMultiPoint:         "MultiPoint",
	KindMultiLineString:    "MultiLineString",
	KindMultiPolygon:       "MultiPolygon",
	KindGeometryCollection: "GeometryCollection",
}

// Kinds lists every concrete geometry kind.
func Kinds() []Kind {
	return []Kind{
		KindPoint, KindLineString, KindLine, KindLinearRing, KindPolygon, KindTriangle,
		KindMultiPoint, KindMultiLineString, KindMultiPolygon, KindGeometryCollection,
	}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Tag returns the textual tag of the kind, e.g. "LINESTRING".
func (k Kind) Tag() string {
	return strings.ToUpper(k.String())
}

// ParseKind parses the name of a kind, case insensitive.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(k.String(), s) {
			return k, nil
		}
	}
	return KindUnknown, InvalidArgument("unknown geometry kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Dimension is the topological dimension of a geometry.
type Dimension int

// Topological dimensions.
const (
	DimensionPoint   Dimension = 0
	DimensionCurve   Dimension = 1
	DimensionSurface Dimension = 2
)

// Orientation of three points or of a ring.
type Orientation int

// Orientations.
const (
	Collinear Orientation = iota
	CounterClockwise
	Clockwise
)

func (o Orientation) String() string {
	switch o {
	case CounterClockwise:
		return "CounterClockwise"
	case Clockwise:
		return "Clockwise"
	default:
		return "Collinear"
	}
}

// Geometry is the common contract of every geometry variant.
type Geometry interface {
	// Kind returns the concrete variant.
	Kind() Kind
	// Factory returns the factory that created the geometry.
	Factory() Factory
	PrecisionModel() *PrecisionModel
	ReferenceSystem() *ReferenceSystem

	// Dimension returns the topological dimension.
	Dimension() Dimension
	// CoordinateDimension is 3 when any coordinate carries a Z value, else 2.
	CoordinateDimension() int
	// SpatialDimension is the dimension of the reference system, or the
	// coordinate dimension when the system does not define one.
	SpatialDimension() int

	Envelope() Envelope
	// Boundary returns the combinatorial boundary or nil when there is none.
	Boundary() Geometry
	Centroid() Coordinate

	IsEmpty() bool
	IsSimple() bool
	IsValid() bool

	// String returns the culture invariant textual representation.
	String() string
}

// Point is a single position.
type Point interface {
	Geometry
	Coordinate() Coordinate
	X() float64
	Y() float64
	Z() float64
	// SetCoordinate replaces the position.
	SetCoordinate(c Coordinate) error
}

// LineString is an ordered, mutable sequence of coordinates. The kinds
// KindLineString, KindLine and KindLinearRing share this interface.
type LineString interface {
	Geometry
	Count() int
	Coordinate(i int) (Coordinate, error)
	Coordinates() []Coordinate
	StartCoordinate() Coordinate
	EndCoordinate() Coordinate
	IndexOf(c Coordinate) int
	IsClosed() bool
	IsRing() bool
	Length() float64

	Add(c Coordinate) error
	Insert(i int, c Coordinate) error
	SetCoordinate(i int, c Coordinate) error
	Remove(c Coordinate) (bool, error)
	RemoveAt(i int) error
	Clear() error
}

// LinearRing is a line string whose first and last coordinates are always
// equal.
type LinearRing interface {
	LineString
	Area() float64
	Orientation() Orientation
	IsConvex() bool
}

// Polygon is a surface bounded by a shell and zero or more holes. The kinds
// KindPolygon and KindTriangle share this interface.
type Polygon interface {
	Geometry
	// Shell returns the live shell ring; mutating it mutates the polygon.
	Shell() LinearRing
	HoleCount() int
	Hole(i int) (LinearRing, error)
	Holes() []LinearRing

	AddHole(hole LinearRing) error
	AddHoleCoordinates(cs []Coordinate) error
	RemoveHole(hole LinearRing) (bool, error)
	RemoveHoleAt(i int) error
	ClearHoles() error

	Area() float64
	Perimeter() float64
	IsConvex() bool
	// IsWhole reports whether the polygon has no holes.
	IsWhole() bool
}

// Collection is an insertion ordered list of geometries of type T. T is
// always a Geometry variant; it is left unconstrained because Geometry
// itself refers to the collection kinds through Factory.
type Collection[T any] interface {
	Geometry
	Count() int
	At(i int) (T, error)
	Geometries() []T

	Add(g T) error
	Insert(i int, g T) error
	Remove(g T) (bool, error)
	RemoveAt(i int) error
	Clear() error
}

// MultiPoint is a collection of points.
type MultiPoint interface {
	Collection[Point]
}

// MultiLineString is a collection of line strings.
type MultiLineString interface {
	Collection[LineString]
	Length() float64
	IsClosed() bool
}

// MultiPolygon is a collection of polygons.
type MultiPolygon interface {
	Collection[Polygon]
	Area() float64
}

// GeometryCollection is a collection of arbitrary geometries.
type GeometryCollection interface {
	Collection[Geometry]
}
