package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"github.com/twpayne/go-geom/xy/location"
	"github.com/twpayne/go-geom/xy/orientation"
)

// Location of a coordinate relative to a ring.
type Location int

// Locations.
const (
	Exterior Location = iota
	OnBoundary
	Interior
)

func xyCoord(c Coordinate) geom.Coord { return geom.Coord{c.X, c.Y} }

func isFinite2D(c Coordinate) bool { return isFinite(c.X) && isFinite(c.Y) }

// orient2D returns 1, -1 or 0 when c lies left of, right of or on the line
// through a and b. Non-finite input counts as collinear.
func orient2D(a, b, c Coordinate) float64 {
	if !isFinite2D(a) || !isFinite2D(b) || !isFinite2D(c) {
		return 0
	}
	return float64(xy.OrientationIndex(xyCoord(a), xyCoord(b), xyCoord(c)))
}

// OrientationOf returns the planar orientation of the triple a, b, c.
func OrientationOf(a, b, c Coordinate) Orientation {
	switch orient2D(a, b, c) {
	case float64(orientation.CounterClockwise):
		return CounterClockwise
	case float64(orientation.Clockwise):
		return Clockwise
	default:
		return Collinear
	}
}

// SignedArea returns the planar area of the ring cs. It is positive for
// counter-clockwise rings. cs may be open or closed.
func SignedArea(cs []Coordinate) float64 {
	if len(cs) < 3 {
		return 0
	}
	return planar.Area(orb.Ring(toOrbLine(cs)))
}

// RingOrientation returns the winding of the ring cs, Collinear when it
// encloses no area.
func RingOrientation(cs []Coordinate) Orientation {
	if SignedArea(cs) == 0 {
		return Collinear
	}
	if xy.IsRingCounterClockwise(geom.XYZ, flatCoords(closeRing(cs))) {
		return CounterClockwise
	}
	return Clockwise
}

// CurveLength returns the sum of the segment lengths of cs.
func CurveLength(cs []Coordinate) float64 {
	var l float64
	for i := 1; i < len(cs); i++ {
		l += cs[i-1].Distance(cs[i])
	}
	return l
}

// CurveCentroid returns the length weighted mean of the segment midpoints
// of cs, with the mean Z of its vertices. A curve of zero planar length
// yields its first coordinate.
func CurveCentroid(cs []Coordinate) Coordinate {
	if len(cs) == 0 {
		return Undefined
	}
	if planar.Length(toOrbLine(cs)) == 0 {
		return cs[0]
	}
	c := xy.LinesCentroid(geom.NewLineStringFlat(geom.XYZ, flatCoords(cs)))
	return Coordinate{X: c[0], Y: c[1], Z: meanZ(cs)}
}

// PointsCentroid returns the mean of the non-empty coordinates of cs.
func PointsCentroid(cs []Coordinate) Coordinate {
	calc := xy.NewPointCentroidCalculator()
	var (
		z float64
		n int
	)
	for _, c := range cs {
		if c.IsEmpty() {
			continue
		}
		calc.AddCoord(xyCoord(c))
		z += c.Z
		n++
	}
	if n == 0 {
		return Undefined
	}
	c := calc.GetCentroid()
	return Coordinate{X: c[0], Y: c[1], Z: z / float64(n)}
}

// PolygonArea returns the area of the shell minus the areas of the holes.
func PolygonArea(shell []Coordinate, holes [][]Coordinate) float64 {
	a := math.Abs(SignedArea(shell))
	for _, h := range holes {
		a -= math.Abs(SignedArea(h))
	}
	return a
}

// PolygonCentroid returns the area centroid of the polygon. The Z value is
// the mean Z of the shell vertices. Degenerate polygons fall back to the
// centroid of the shell curve.
func PolygonCentroid(shell []Coordinate, holes [][]Coordinate) Coordinate {
	if len(shell) == 0 {
		return Undefined
	}
	poly := make(orb.Polygon, 0, 1+len(holes))
	poly = append(poly, orb.Ring(toOrbLine(shell)))
	for _, h := range holes {
		poly = append(poly, orb.Ring(toOrbLine(h)))
	}
	c, a := planar.CentroidArea(poly)
	if a <= 0 {
		return CurveCentroid(shell)
	}
	return Coordinate{X: c[0], Y: c[1], Z: meanZ(openRing(shell))}
}

func meanZ(cs []Coordinate) float64 {
	if len(cs) == 0 {
		return 0
	}
	var z float64
	for _, c := range cs {
		z += c.Z
	}
	return z / float64(len(cs))
}

// openRing drops the closing coordinate of a closed ring.
func openRing(cs []Coordinate) []Coordinate {
	if n := len(cs); n > 1 && cs[0].Equal(cs[n-1]) {
		return cs[:n-1]
	}
	return cs
}

// closeRing returns cs with its first coordinate appended when it is open.
func closeRing(cs []Coordinate) []Coordinate {
	if n := len(cs); n > 0 && !cs[0].Equal2D(cs[n-1]) {
		return closeCycle(cs)
	}
	return cs
}

// IsConvexRing reports whether the closed ring cs turns consistently in one
// direction and does not cross itself.
func IsConvexRing(cs []Coordinate) bool {
	pts := dedupe2D(openRing(cs))
	n := len(pts)
	if n < 3 {
		return false
	}
	var sign float64
	for i := 0; i < n; i++ {
		d := orient2D(pts[i], pts[(i+1)%n], pts[(i+2)%n])
		if d == 0 {
			continue
		}
		if sign == 0 {
			sign = d
		} else if (d > 0) != (sign > 0) {
			return false
		}
	}
	if sign == 0 {
		return false
	}
	return IsSimpleCurve(cs)
}

// LocateInRing returns the location of c relative to the ring cs. An open
// ring is closed first.
func LocateInRing(c Coordinate, cs []Coordinate) Location {
	if len(cs) < 3 || !isFinite2D(c) {
		return Exterior
	}
	switch xy.LocatePointInRing(geom.XYZ, xyCoord(c), flatCoords(closeRing(cs))) {
	case location.Interior:
		return Interior
	case location.Boundary:
		return OnBoundary
	default:
		return Exterior
	}
}

// onSegment reports whether c lies on the closed segment ab.
func onSegment(c, a, b Coordinate) bool {
	if orient2D(a, b, c) != 0 {
		return false
	}
	return xy.IsPointWithinLineBounds(xyCoord(c), xyCoord(a), xyCoord(b))
}

// segmentsIntersect reports whether the closed segments pq and rs share at
// least one point.
func segmentsIntersect(p, q, r, s Coordinate) bool {
	d1 := orient2D(r, s, p)
	d2 := orient2D(r, s, q)
	d3 := orient2D(p, q, r)
	d4 := orient2D(p, q, s)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(p, r, s)) ||
		(d2 == 0 && onSegment(q, r, s)) ||
		(d3 == 0 && onSegment(r, p, q)) ||
		(d4 == 0 && onSegment(s, p, q))
}

// segmentsCross reports whether pq and rs intersect in a single point
// interior to both.
func segmentsCross(p, q, r, s Coordinate) bool {
	d1 := orient2D(r, s, p)
	d2 := orient2D(r, s, q)
	d3 := orient2D(p, q, r)
	d4 := orient2D(p, q, s)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// segmentsOverlap reports whether pq and rs are collinear and share more
// than one point.
func segmentsOverlap(p, q, r, s Coordinate) bool {
	if orient2D(p, q, r) != 0 || orient2D(p, q, s) != 0 {
		return false
	}
	// project on the dominant axis
	proj := func(c Coordinate) float64 { return c.X }
	if math.Abs(q.X-p.X) < math.Abs(q.Y-p.Y) {
		proj = func(c Coordinate) float64 { return c.Y }
	}
	lo1, hi1 := math.Min(proj(p), proj(q)), math.Max(proj(p), proj(q))
	lo2, hi2 := math.Min(proj(r), proj(s)), math.Max(proj(r), proj(s))
	return math.Min(hi1, hi2) > math.Max(lo1, lo2)
}

// IsValidTriangle reports whether a, b, c form a non-degenerate counter
// clockwise triangle. Each side must be strictly shorter than the sum of
// the other two.
func IsValidTriangle(a, b, c Coordinate) bool {
	if !a.IsValid() || !b.IsValid() || !c.IsValid() {
		return false
	}
	ab, bc, ca := a.Distance(b), b.Distance(c), c.Distance(a)
	if !(ab < bc+ca && bc < ab+ca && ca < ab+bc) {
		return false
	}
	return OrientationOf(a, b, c) == CounterClockwise
}

// dedupe2D drops consecutive coordinates that share a planar position.
func dedupe2D(cs []Coordinate) []Coordinate {
	out := make([]Coordinate, 0, len(cs))
	for _, c := range cs {
		if len(out) > 0 && out[len(out)-1].Equal2D(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// coordinateDimension is 3 when any coordinate has a non-zero defined Z.
func coordinateDimension(cs []Coordinate) int {
	for _, c := range cs {
		if c.Z != 0 && !math.IsNaN(c.Z) {
			return 3
		}
	}
	return 2
}
