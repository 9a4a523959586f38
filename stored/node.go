package stored

import (
	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
)

// nodeWriter writes a geometry as a subtree rooted at (identifier, indexes).
// The node is inserted, so siblings at and after the position shift right.
type nodeWriter struct {
	driver     driver.GeometryDriver
	identifier string
	indexes    []int
}

var _ geometry.Visitor[struct{}] = nodeWriter{}

func (w nodeWriter) child(i int) nodeWriter {
	return nodeWriter{driver: w.driver, identifier: w.identifier, indexes: appendIndex(w.indexes, i)}
}

func (w nodeWriter) node(k geometry.Kind, cs []geometry.Coordinate) (struct{}, error) {
	if err := w.driver.InsertGeometry(w.identifier, k, w.indexes...); err != nil {
		return struct{}{}, err
	}
	if len(cs) == 0 {
		return struct{}{}, nil
	}
	return struct{}{}, w.driver.UpdateCoordinates(w.identifier, cs, w.indexes...)
}

func (w nodeWriter) VisitPoint(p geometry.Point) (struct{}, error) {
	var cs []geometry.Coordinate
	if !p.IsEmpty() {
		cs = []geometry.Coordinate{p.Coordinate()}
	}
	return w.node(geometry.KindPoint, cs)
}

func (w nodeWriter) VisitLineString(l geometry.LineString) (struct{}, error) {
	return w.node(geometry.KindLineString, l.Coordinates())
}

func (w nodeWriter) VisitLine(l geometry.LineString) (struct{}, error) {
	return w.node(geometry.KindLine, l.Coordinates())
}

func (w nodeWriter) VisitLinearRing(r geometry.LinearRing) (struct{}, error) {
	return w.node(geometry.KindLinearRing, r.Coordinates())
}

func (w nodeWriter) VisitPolygon(p geometry.Polygon) (struct{}, error) {
	return w.surface(geometry.KindPolygon, p)
}

func (w nodeWriter) VisitTriangle(p geometry.Polygon) (struct{}, error) {
	return w.surface(geometry.KindTriangle, p)
}

// surface writes the shell as child 0 and hole i as child i+1.
func (w nodeWriter) surface(k geometry.Kind, p geometry.Polygon) (struct{}, error) {
	if _, err := w.node(k, nil); err != nil {
		return struct{}{}, err
	}
	rings := append([]geometry.LinearRing{p.Shell()}, p.Holes()...)
	for i, r := range rings {
		if _, err := w.child(i).VisitLinearRing(r); err != nil {
			return struct{}{}, err
		}
	}
	return struct{}{}, nil
}

func (w nodeWriter) VisitMultiPoint(m geometry.MultiPoint) (struct{}, error) {
	return members(w, geometry.KindMultiPoint, m.Geometries())
}

func (w nodeWriter) VisitMultiLineString(m geometry.MultiLineString) (struct{}, error) {
	return members(w, geometry.KindMultiLineString, m.Geometries())
}

func (w nodeWriter) VisitMultiPolygon(m geometry.MultiPolygon) (struct{}, error) {
	return members(w, geometry.KindMultiPolygon, m.Geometries())
}

func (w nodeWriter) VisitGeometryCollection(c geometry.GeometryCollection) (struct{}, error) {
	return members(w, geometry.KindGeometryCollection, c.Geometries())
}

func members[T geometry.Geometry](w nodeWriter, k geometry.Kind, gs []T) (struct{}, error) {
	if _, err := w.node(k, nil); err != nil {
		return struct{}{}, err
	}
	for i, g := range gs {
		if _, err := geometry.Visit[struct{}](g, w.child(i)); err != nil {
			return struct{}{}, err
		}
	}
	return struct{}{}, nil
}

// read materialises the node at (identifier, indexes) as an in-memory
// geometry created by plain.
func read(d driver.GeometryDriver, plain geometry.Factory, identifier string, indexes []int) (geometry.Geometry, error) {
	k, err := d.ReadGeometryKind(identifier, indexes...)
	if err != nil {
		return nil, err
	}

	switch k {
	case geometry.KindPoint, geometry.KindLineString, geometry.KindLine, geometry.KindLinearRing:
		cs, err := d.ReadCoordinates(identifier, indexes...)
		if err != nil {
			return nil, err
		}
		return curveOf(plain, k, cs)

	case geometry.KindPolygon, geometry.KindTriangle:
		n, err := d.ReadGeometryCount(identifier, indexes...)
		if err != nil {
			return nil, err
		}
		rings := make([][]geometry.Coordinate, n)
		for i := range rings {
			if rings[i], err = d.ReadCoordinates(identifier, appendIndex(indexes, i)...); err != nil {
				return nil, err
			}
		}
		return surfaceOf(plain, k, rings)

	case geometry.KindMultiPoint:
		ms, err := readMembers[geometry.Point](d, plain, identifier, indexes)
		if err != nil {
			return nil, err
		}
		return widen(plain.CreateMultiPoint(ms))
	case geometry.KindMultiLineString:
		ms, err := readMembers[geometry.LineString](d, plain, identifier, indexes)
		if err != nil {
			return nil, err
		}
		return widen(plain.CreateMultiLineString(ms))
	case geometry.KindMultiPolygon:
		ms, err := readMembers[geometry.Polygon](d, plain, identifier, indexes)
		if err != nil {
			return nil, err
		}
		return widen(plain.CreateMultiPolygon(ms))
	case geometry.KindGeometryCollection:
		ms, err := readMembers[geometry.Geometry](d, plain, identifier, indexes)
		if err != nil {
			return nil, err
		}
		return widen(plain.CreateGeometryCollection(ms))
	}
	return nil, geometry.InvalidArgument("unknown geometry kind %v at %v", k, indexes)
}

func curveOf(plain geometry.Factory, k geometry.Kind, cs []geometry.Coordinate) (geometry.Geometry, error) {
	switch k {
	case geometry.KindPoint:
		if len(cs) == 0 {
			return widen(plain.CreatePoint(geometry.Undefined))
		}
		return widen(plain.CreatePoint(cs[0]))
	case geometry.KindLine:
		if len(cs) != 2 {
			return nil, geometry.InvalidArgument("a line needs 2 coordinates, got %d", len(cs))
		}
		return widen(plain.CreateLine(cs[0], cs[1]))
	case geometry.KindLinearRing:
		return widen(plain.CreateLinearRing(cs))
	}
	return widen(plain.CreateLineString(cs))
}

func surfaceOf(plain geometry.Factory, k geometry.Kind, rings [][]geometry.Coordinate) (geometry.Geometry, error) {
	if k == geometry.KindTriangle {
		if len(rings) != 1 || len(rings[0]) != 4 {
			return nil, geometry.InvalidArgument("a triangle needs one ring of 4 coordinates")
		}
		r := rings[0]
		return widen(plain.CreateTriangle(r[0], r[1], r[2]))
	}
	if len(rings) == 0 {
		return widen(plain.CreatePolygon(nil))
	}
	return widen(plain.CreatePolygon(rings[0], rings[1:]...))
}

func readMembers[T geometry.Geometry](d driver.GeometryDriver, plain geometry.Factory, identifier string, indexes []int) ([]T, error) {
	n, err := d.ReadGeometryCount(identifier, indexes...)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		g, err := read(d, plain, identifier, appendIndex(indexes, i))
		if err != nil {
			return nil, err
		}
		t, ok := g.(T)
		if !ok {
			return nil, geometry.UnsupportedType(g)
		}
		out = append(out, t)
	}
	return out, nil
}

// widen turns a typed creation result into a Geometry, keeping a failed
// creation nil.
func widen[T geometry.Geometry](g T, err error) (geometry.Geometry, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}
