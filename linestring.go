package geometry

import "math"

// curve implements LineString for the kinds LineString, Line and
// LinearRing. Rings keep their first and last coordinate equal across every
// mutation.
type curve struct {
	base
	kind Kind
	// fixed curves (lines, triangle shells) reject structural changes.
	fixed  bool
	coords []Coordinate
}

// ring adds the area operations to a closed curve.
type ring struct {
	*curve
}

func newCurve(f *GeometryFactory, kind Kind, cs []Coordinate) *curve {
	return &curve{
		base:   base{factory: f},
		kind:   kind,
		coords: f.precision.MakePreciseCoordinates(cs),
	}
}

// newRing closes cs when needed. A single coordinate becomes a degenerate
// closed ring of two.
func newRing(f *GeometryFactory, cs []Coordinate) *ring {
	c := newCurve(f, KindLinearRing, cs)
	if n := len(c.coords); n > 0 && !c.coords[0].Equal(c.coords[n-1]) || n == 1 {
		c.coords = append(c.coords, c.coords[0])
	}
	return &ring{curve: c}
}

func (l *curve) Kind() Kind { return l.kind }
func (l *curve) Dimension() Dimension { return DimensionCurve }
func (l *curve) String() string { return Text(l.self()) }

// self returns the value as seen by callers, so rings format as rings.
func (l *curve) self() Geometry {
	if l.kind == KindLinearRing {
		return &ring{curve: l}
	}
	return l
}

func (l *curve) CoordinateDimension() int { return coordinateDimension(l.coords) }
func (l *curve) SpatialDimension() int { return l.spatialDimension(l.CoordinateDimension()) }
func (l *curve) Envelope() Envelope { return EnvelopeOf(l.coords...) }
func (l *curve) Centroid() Coordinate { return CurveCentroid(l.coords) }
func (l *curve) IsEmpty() bool { return len(l.coords) == 0 }
func (l *curve) Count() int { return len(l.coords) }
// Coordinates returns a copy of the coordinates.
func (l *curve) Coordinates() []Coordinate {
	return copyCoordinates(l.coords)
}

// Boundary returns the start and end point of an open curve, nil otherwise.
func (l *curve) Boundary() Geometry {
	if l.IsEmpty() || l.IsClosed() {
		return nil
	}
	mp, err := l.factory.CreateMultiPointFromCoordinates([]Coordinate{l.StartCoordinate(), l.EndCoordinate()})
	if err != nil {
		return nil
	}
	return mp
}

// IsSimple reports whether the curve does not cross itself. A line always is.
func (l *curve) IsSimple() bool {
	if l.kind == KindLine {
		return true
	}
	return IsSimpleCurve(l.coords)
}

// IsValid checks every coordinate, and the ring rules for a linear ring.
func (l *curve) IsValid() bool {
	if l.kind == KindLinearRing {
		return ValidateRing(l.coords) == nil
	}
	for _, c := range l.coords {
		if !c.IsValid() {
			return false
		}
	}
	return true
}

func (l *curve) Coordinate(i int) (Coordinate, error) {
	if i < 0 || i >= len(l.coords) {
		return Undefined, ArgumentOutOfRange("index", i, len(l.coords))
	}
	return l.coords[i], nil
}

// StartCoordinate is Undefined for an empty curve, as is EndCoordinate.
func (l *curve) StartCoordinate() Coordinate {
	if len(l.coords) == 0 {
		return Undefined
	}
	return l.coords[0]
}

func (l *curve) EndCoordinate() Coordinate {
	if len(l.coords) == 0 {
		return Undefined
	}
	return l.coords[len(l.coords)-1]
}

// IndexOf returns the index of the first coordinate equal to c, or -1.
func (l *curve) IndexOf(c Coordinate) int {
	for i, o := range l.coords {
		if o.Equal(c) {
			return i
		}
	}
	return -1
}

func (l *curve) IsClosed() bool {
	n := len(l.coords)
	return n > 0 && l.coords[0].Equal(l.coords[n-1])
}

// IsRing reports whether the curve is closed and simple.
func (l *curve) IsRing() bool {
	return l.IsClosed() && l.IsSimple()
}

func (l *curve) Length() float64 {
	return CurveLength(l.coords)
}

// Add appends c. A ring keeps its closing coordinate last.
func (l *curve) Add(c Coordinate) error {
	if l.fixed {
		return UnsupportedOperation("Add", l.kind)
	}
	c = l.makePrecise(c)
	if l.kind == KindLinearRing {
		cycle := append(openRing(l.coords), c)
		l.coords = closeCycle(cycle)
		return nil
	}
	l.coords = append(l.coords, c)
	return nil
}

// Insert places c before index i. Inserting into a ring at 0 replaces the
// closing coordinate as well; inserting at the closing index appends.
func (l *curve) Insert(i int, c Coordinate) error {
	if l.fixed {
		return UnsupportedOperation("Insert", l.kind)
	}
	n := len(l.coords)
	if i < 0 || i > n {
		return ArgumentOutOfRange("index", i, n+1)
	}
	c = l.makePrecise(c)
	if l.kind == KindLinearRing {
		cycle := openRing(l.coords)
		if i >= n-1 {
			i = len(cycle)
		}
		l.coords = closeCycle(insertCoordinate(cycle, i, c))
		return nil
	}
	l.coords = insertCoordinate(l.coords, i, c)
	return nil
}

// SetCoordinate replaces the coordinate at i. Setting the first or last
// coordinate of a ring sets both.
func (l *curve) SetCoordinate(i int, c Coordinate) error {
	n := len(l.coords)
	if i < 0 || i >= n {
		return ArgumentOutOfRange("index", i, n)
	}
	c = l.makePrecise(c)
	if l.kind == KindLinearRing && (i == 0 || i == n-1) {
		l.coords[0] = c
		l.coords[n-1] = c
		return nil
	}
	l.coords[i] = c
	return nil
}

// Remove drops the first coordinate equal to c and reports whether one was
// found.
func (l *curve) Remove(c Coordinate) (bool, error) {
	if l.fixed {
		return false, UnsupportedOperation("Remove", l.kind)
	}
	i := l.IndexOf(c)
	if i < 0 {
		return false, nil
	}
	return true, l.RemoveAt(i)
}

// RemoveAt drops the coordinate at i. Removing the first or last coordinate
// of a ring reconnects it on the next one; a ring left with a single
// distinct position becomes empty.
func (l *curve) RemoveAt(i int) error {
	if l.fixed {
		return UnsupportedOperation("RemoveAt", l.kind)
	}
	n := len(l.coords)
	if i < 0 || i >= n {
		return ArgumentOutOfRange("index", i, n)
	}
	if l.kind == KindLinearRing {
		if i == n-1 {
			i = 0
		}
		cycle := openRing(l.coords)
		cycle = append(cycle[:i:i], cycle[i+1:]...)
		if len(cycle) <= 1 {
			l.coords = nil
			return nil
		}
		l.coords = closeCycle(cycle)
		return nil
	}
	l.coords = append(l.coords[:i], l.coords[i+1:]...)
	return nil
}

// Clear removes every coordinate.
func (l *curve) Clear() error {
	if l.fixed {
		return UnsupportedOperation("Clear", l.kind)
	}
	l.coords = nil
	return nil
}

func (r *ring) Area() float64 { return math.Abs(SignedArea(r.coords)) }
func (r *ring) Orientation() Orientation { return RingOrientation(r.coords) }
func (r *ring) IsConvex() bool { return IsConvexRing(r.coords) }
func (r *ring) String() string { return Text(r) }

// closeCycle returns a fresh closed copy of the open cycle.
func closeCycle(cycle []Coordinate) []Coordinate {
	out := make([]Coordinate, len(cycle), len(cycle)+1)
	copy(out, cycle)
	return append(out, cycle[0])
}

func insertCoordinate(cs []Coordinate, i int, c Coordinate) []Coordinate {
	out := make([]Coordinate, 0, len(cs)+1)
	out = append(out, cs[:i]...)
	out = append(out, c)
	return append(out, cs[i:]...)
}
