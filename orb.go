package geometry

import (
	"github.com/paulmach/orb"
)

// ToOrb converts g to the planar orb model. Z values are dropped, empty
// points are skipped inside collections and an empty point yields nil.
func ToOrb(g Geometry) (orb.Geometry, error) {
	return Visit[orb.Geometry](g, orbWriter{})
}

type orbWriter struct{}

func toOrbPoint(c Coordinate) orb.Point {
	return orb.Point{c.X, c.Y}
}

func toOrbLine(cs []Coordinate) orb.LineString {
	ls := make(orb.LineString, 0, len(cs))
	for _, c := range cs {
		ls = append(ls, toOrbPoint(c))
	}
	return ls
}

func toOrbPolygon(p Polygon) orb.Polygon {
	if p.IsEmpty() {
		return orb.Polygon{}
	}
	poly := make(orb.Polygon, 0, 1+p.HoleCount())
	poly = append(poly, orb.Ring(toOrbLine(p.Shell().Coordinates())))
	for _, h := range p.Holes() {
		poly = append(poly, orb.Ring(toOrbLine(h.Coordinates())))
	}
	return poly
}

func (orbWriter) VisitPoint(p Point) (orb.Geometry, error) {
	if p.IsEmpty() {
		return nil, nil
	}
	return toOrbPoint(p.Coordinate()), nil
}

func (orbWriter) VisitLineString(l LineString) (orb.Geometry, error) {
	return toOrbLine(l.Coordinates()), nil
}

func (orbWriter) VisitLine(l LineString) (orb.Geometry, error) {
	return toOrbLine(l.Coordinates()), nil
}

func (orbWriter) VisitLinearRing(r LinearRing) (orb.Geometry, error) {
	return orb.Ring(toOrbLine(r.Coordinates())), nil
}

func (orbWriter) VisitPolygon(p Polygon) (orb.Geometry, error) {
	return toOrbPolygon(p), nil
}

func (orbWriter) VisitTriangle(p Polygon) (orb.Geometry, error) {
	return toOrbPolygon(p), nil
}

func (orbWriter) VisitMultiPoint(m MultiPoint) (orb.Geometry, error) {
	mp := make(orb.MultiPoint, 0, m.Count())
	for _, p := range m.Geometries() {
		if !p.IsEmpty() {
			mp = append(mp, toOrbPoint(p.Coordinate()))
		}
	}
	return mp, nil
}

func (orbWriter) VisitMultiLineString(m MultiLineString) (orb.Geometry, error) {
	mls := make(orb.MultiLineString, 0, m.Count())
	for _, l := range m.Geometries() {
		mls = append(mls, toOrbLine(l.Coordinates()))
	}
	return mls, nil
}

func (orbWriter) VisitMultiPolygon(m MultiPolygon) (orb.Geometry, error) {
	mp := make(orb.MultiPolygon, 0, m.Count())
	for _, p := range m.Geometries() {
		mp = append(mp, toOrbPolygon(p))
	}
	return mp, nil
}

func (w orbWriter) VisitGeometryCollection(c GeometryCollection) (orb.Geometry, error) {
	coll := make(orb.Collection, 0, c.Count())
	for _, g := range c.Geometries() {
		o, err := Visit[orb.Geometry](g, w)
		if err != nil {
			return nil, err
		}
		if o != nil {
			coll = append(coll, o)
		}
	}
	return coll, nil
}

// FromOrb creates the geometry equivalent to g through f. Rings become
// linear rings and bounds become rectangular polygons.
func FromOrb(f Factory, g orb.Geometry) (Geometry, error) {
	if f == nil {
		return nil, ArgumentNull("factory")
	}
	if g == nil {
		return nil, ArgumentNull("geometry")
	}

	switch v := g.(type) {
	case orb.Point:
		return as(f.CreatePoint(fromOrbPoint(v)))
	case orb.MultiPoint:
		return as(f.CreateMultiPointFromCoordinates(fromOrbPoints(v)))
	case orb.LineString:
		return as(f.CreateLineString(fromOrbPoints(v)))
	case orb.MultiLineString:
		lines := make([]LineString, 0, len(v))
		for _, ls := range v {
			l, err := f.CreateLineString(fromOrbPoints(ls))
			if err != nil {
				return nil, err
			}
			lines = append(lines, l)
		}
		return as(f.CreateMultiLineString(lines))
	case orb.Ring:
		return as(f.CreateLinearRing(fromOrbPoints(v)))
	case orb.Polygon:
		return as(fromOrbPolygon(f, v))
	case orb.MultiPolygon:
		polygons := make([]Polygon, 0, len(v))
		for _, poly := range v {
			p, err := fromOrbPolygon(f, poly)
			if err != nil {
				return nil, err
			}
			polygons = append(polygons, p)
		}
		return as(f.CreateMultiPolygon(polygons))
	case orb.Collection:
		members := make([]Geometry, 0, len(v))
		for _, child := range v {
			m, err := FromOrb(f, child)
			if err != nil {
				return nil, err
			}
			members = append(members, m)
		}
		return as(f.CreateGeometryCollection(members))
	case orb.Bound:
		return as(fromOrbPolygon(f, v.ToPolygon()))
	}
	return nil, UnsupportedType(g)
}

func fromOrbPoint(p orb.Point) Coordinate {
	return Coordinate{X: p[0], Y: p[1]}
}

func fromOrbPoints(ps []orb.Point) []Coordinate {
	if len(ps) == 0 {
		return nil
	}
	cs := make([]Coordinate, len(ps))
	for i, p := range ps {
		cs[i] = fromOrbPoint(p)
	}
	return cs
}

func fromOrbPolygon(f Factory, poly orb.Polygon) (Polygon, error) {
	if len(poly) == 0 {
		return f.CreatePolygon(nil)
	}
	holes := make([][]Coordinate, 0, len(poly)-1)
	for _, r := range poly[1:] {
		holes = append(holes, fromOrbPoints(r))
	}
	return f.CreatePolygon(fromOrbPoints(poly[0]), holes...)
}
