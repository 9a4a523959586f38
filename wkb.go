package geometry

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkbcommon"
)

var wkbOptions = []wkbcommon.WKBOption{
	wkbcommon.WKBOptionEmptyPointHandling(wkbcommon.EmptyPointHandlingNaN),
}

// MarshalWKB encodes g as well-known binary in the XYZ layout. WKB has no
// line, ring or triangle types, so they are written as line strings and
// polygons. Empty points are written with NaN coordinates.
func MarshalWKB(g Geometry, byteOrder binary.ByteOrder) ([]byte, error) {
	t, err := ToGeom(g)
	if err != nil {
		return nil, err
	}
	b, err := wkb.Marshal(t, byteOrder, wkbOptions...)
	if err != nil {
		return nil, errors.Wrapf(err, "geometry: encode %s as WKB", g.Kind())
	}
	return b, nil
}

// UnmarshalWKB decodes well-known binary and creates the geometry through f.
func UnmarshalWKB(f Factory, data []byte) (Geometry, error) {
	if f == nil {
		return nil, ArgumentNull("factory")
	}
	t, err := wkb.Unmarshal(data, wkbOptions...)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "geometry: decode WKB"), ErrInvalidArgument)
	}
	return FromGeom(f, t)
}

// ToGeom converts g to a go-geom geometry in the XYZ layout.
func ToGeom(g Geometry) (geom.T, error) {
	return Visit[geom.T](g, geomWriter{})
}

type geomWriter struct{}

func flatCoords(cs []Coordinate) []float64 {
	flat := make([]float64, 0, 3*len(cs))
	for _, c := range cs {
		flat = append(flat, c.X, c.Y, c.Z)
	}
	return flat
}

// flatRings flattens rings appending their end offsets to ends.
func flatRings(flat []float64, ends []int, rings ...[]Coordinate) ([]float64, []int) {
	for _, r := range rings {
		flat = append(flat, flatCoords(r)...)
		ends = append(ends, len(flat))
	}
	return flat, ends
}

func polygonRings(p Polygon) [][]Coordinate {
	if p.IsEmpty() {
		return nil
	}
	rings := [][]Coordinate{p.Shell().Coordinates()}
	for _, h := range p.Holes() {
		rings = append(rings, h.Coordinates())
	}
	return rings
}

func (geomWriter) VisitPoint(p Point) (geom.T, error) {
	if p.IsEmpty() {
		return geom.NewPointEmpty(geom.XYZ), nil
	}
	return geom.NewPointFlat(geom.XYZ, flatCoords([]Coordinate{p.Coordinate()})), nil
}

func (geomWriter) VisitLineString(l LineString) (geom.T, error) {
	return geom.NewLineStringFlat(geom.XYZ, flatCoords(l.Coordinates())), nil
}

func (w geomWriter) VisitLine(l LineString) (geom.T, error) {
	return w.VisitLineString(l)
}

func (w geomWriter) VisitLinearRing(r LinearRing) (geom.T, error) {
	return w.VisitLineString(r)
}

func (geomWriter) VisitPolygon(p Polygon) (geom.T, error) {
	flat, ends := flatRings(nil, nil, polygonRings(p)...)
	return geom.NewPolygonFlat(geom.XYZ, flat, ends), nil
}

func (w geomWriter) VisitTriangle(p Polygon) (geom.T, error) {
	return w.VisitPolygon(p)
}

func (geomWriter) VisitMultiPoint(m MultiPoint) (geom.T, error) {
	var flat []float64
	ends := make([]int, 0, m.Count())
	for _, p := range m.Geometries() {
		if !p.IsEmpty() {
			flat = append(flat, flatCoords([]Coordinate{p.Coordinate()})...)
		}
		ends = append(ends, len(flat))
	}
	return geom.NewMultiPointFlat(geom.XYZ, flat, geom.NewMultiPointFlatOptionWithEnds(ends)), nil
}

func (geomWriter) VisitMultiLineString(m MultiLineString) (geom.T, error) {
	var (
		flat []float64
		ends []int
	)
	for _, l := range m.Geometries() {
		flat, ends = flatRings(flat, ends, l.Coordinates())
	}
	return geom.NewMultiLineStringFlat(geom.XYZ, flat, ends), nil
}

func (geomWriter) VisitMultiPolygon(m MultiPolygon) (geom.T, error) {
	var (
		flat  []float64
		endss [][]int
	)
	for _, p := range m.Geometries() {
		var ends []int
		flat, ends = flatRings(flat, ends, polygonRings(p)...)
		endss = append(endss, ends)
	}
	return geom.NewMultiPolygonFlat(geom.XYZ, flat, endss), nil
}

func (w geomWriter) VisitGeometryCollection(c GeometryCollection) (geom.T, error) {
	gc := geom.NewGeometryCollection()
	for _, g := range c.Geometries() {
		t, err := Visit[geom.T](g, w)
		if err != nil {
			return nil, err
		}
		if err := gc.Push(t); err != nil {
			return nil, errors.Wrap(err, "geometry: build collection")
		}
	}
	return gc, nil
}

// FromGeom creates the geometry equivalent to t through f. Layouts without
// Z yield Z = 0; M values are dropped.
func FromGeom(f Factory, t geom.T) (Geometry, error) {
	if f == nil {
		return nil, ArgumentNull("factory")
	}
	switch v := t.(type) {
	case *geom.Point:
		if v.Empty() {
			return as(f.CreatePoint(Undefined))
		}
		return as(f.CreatePoint(fromGeomCoord(v.Layout(), v.FlatCoords())))
	case *geom.LineString:
		return as(f.CreateLineString(fromGeomFlat(v.Layout(), v.FlatCoords())))
	case *geom.LinearRing:
		return as(f.CreateLinearRing(fromGeomFlat(v.Layout(), v.FlatCoords())))
	case *geom.Polygon:
		return as(fromGeomPolygon(f, v))
	case *geom.MultiPoint:
		cs := make([]Coordinate, v.NumPoints())
		for i := range cs {
			p := v.Point(i)
			if p.Empty() {
				cs[i] = Undefined
				continue
			}
			cs[i] = fromGeomCoord(p.Layout(), p.FlatCoords())
		}
		return as(f.CreateMultiPointFromCoordinates(cs))
	case *geom.MultiLineString:
		lines := make([]LineString, 0, v.NumLineStrings())
		for i := 0; i < v.NumLineStrings(); i++ {
			ls := v.LineString(i)
			l, err := f.CreateLineString(fromGeomFlat(ls.Layout(), ls.FlatCoords()))
			if err != nil {
				return nil, err
			}
			lines = append(lines, l)
		}
		return as(f.CreateMultiLineString(lines))
	case *geom.MultiPolygon:
		polygons := make([]Polygon, 0, v.NumPolygons())
		for i := 0; i < v.NumPolygons(); i++ {
			p, err := fromGeomPolygon(f, v.Polygon(i))
			if err != nil {
				return nil, err
			}
			polygons = append(polygons, p)
		}
		return as(f.CreateMultiPolygon(polygons))
	case *geom.GeometryCollection:
		members := make([]Geometry, 0, v.NumGeoms())
		for _, child := range v.Geoms() {
			m, err := FromGeom(f, child)
			if err != nil {
				return nil, err
			}
			members = append(members, m)
		}
		return as(f.CreateGeometryCollection(members))
	}
	return nil, UnsupportedType(t)
}

func fromGeomPolygon(f Factory, p *geom.Polygon) (Polygon, error) {
	n := p.NumLinearRings()
	if n == 0 {
		return f.CreatePolygon(nil)
	}
	rings := make([][]Coordinate, n)
	for i := range rings {
		r := p.LinearRing(i)
		rings[i] = fromGeomFlat(r.Layout(), r.FlatCoords())
	}
	return f.CreatePolygon(rings[0], rings[1:]...)
}

func fromGeomCoord(layout geom.Layout, flat []float64) Coordinate {
	c := Coordinate{X: flat[0], Y: flat[1]}
	if zi := layout.ZIndex(); zi >= 0 && zi < len(flat) {
		c.Z = flat[zi]
	}
	if math.IsNaN(c.X) && math.IsNaN(c.Y) {
		return Undefined
	}
	return c
}

func fromGeomFlat(layout geom.Layout, flat []float64) []Coordinate {
	stride := layout.Stride()
	if stride == 0 || len(flat) == 0 {
		return nil
	}
	cs := make([]Coordinate, 0, len(flat)/stride)
	for i := 0; i+stride <= len(flat); i += stride {
		cs = append(cs, fromGeomCoord(layout, flat[i:i+stride]))
	}
	return cs
}
