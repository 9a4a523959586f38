package fgb

import (
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb"
)

// typeOf maps an orb geometry to its FlatGeobuf geometry type. Rings and
// bounds are written as polygons.
func typeOf(g orb.Geometry) flattypes.GeometryType {
	switch g.(type) {
	case orb.Point:
		return flattypes.GeometryTypePoint
	case orb.MultiPoint:
		return flattypes.GeometryTypeMultiPoint
	case orb.LineString:
		return flattypes.GeometryTypeLineString
	case orb.MultiLineString:
		return flattypes.GeometryTypeMultiLineString
	case orb.Ring, orb.Polygon, orb.Bound:
		return flattypes.GeometryTypePolygon
	case orb.MultiPolygon:
		return flattypes.GeometryTypeMultiPolygon
	case orb.Collection:
		return flattypes.GeometryTypeGeometryCollection
	}
	return flattypes.GeometryTypeUnknown
}

// layerType is the common type of gs, or Unknown for mixed layers.
func layerType(gs []orb.Geometry) flattypes.GeometryType {
	t := flattypes.GeometryTypeUnknown
	for i, g := range gs {
		if g == nil {
			continue
		}
		switch gt := typeOf(g); {
		case i == 0 || t == flattypes.GeometryTypeUnknown:
			t = gt
		case gt != t:
			return flattypes.GeometryTypeUnknown
		}
	}
	return t
}

// flatten packs point sequences into an interleaved xy array and the
// running end offsets FlatGeobuf uses to split it.
func flatten(parts ...[]orb.Point) ([]float64, []uint32) {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	xy := make([]float64, 0, 2*n)
	ends := make([]uint32, 0, len(parts))
	for _, p := range parts {
		for _, pt := range p {
			xy = append(xy, pt[0], pt[1])
		}
		ends = append(ends, uint32(len(xy)/2))
	}
	return xy, ends
}

func polygonParts(p orb.Polygon) [][]orb.Point {
	parts := make([][]orb.Point, len(p))
	for i, r := range p {
		parts[i] = r
	}
	return parts
}

// encodeGeometry builds the FlatGeobuf geometry of g, or nil when g is nil
// or unsupported.
func encodeGeometry(g orb.Geometry, b *flatbuffers.Builder) *writer.Geometry {
	if g == nil {
		return nil
	}
	out := writer.NewGeometry(b)
	out.SetType(typeOf(g))

	switch v := g.(type) {
	case orb.Point:
		out.SetXY([]float64{v[0], v[1]})
	case orb.MultiPoint:
		xy, _ := flatten(v)
		out.SetXY(xy)
	case orb.LineString:
		xy, _ := flatten(v)
		out.SetXY(xy)
	case orb.MultiLineString:
		parts := make([][]orb.Point, len(v))
		for i, l := range v {
			parts[i] = l
		}
		xy, ends := flatten(parts...)
		out.SetXY(xy)
		out.SetEnds(ends)
	case orb.Ring:
		xy, ends := flatten(v)
		out.SetXY(xy)
		out.SetEnds(ends)
	case orb.Bound:
		xy, ends := flatten(v.ToRing())
		out.SetXY(xy)
		out.SetEnds(ends)
	case orb.Polygon:
		xy, ends := flatten(polygonParts(v)...)
		out.SetXY(xy)
		out.SetEnds(ends)
	case orb.MultiPolygon:
		parts := make([]writer.Geometry, 0, len(v))
		for _, p := range v {
			if part := encodeGeometry(p, b); part != nil {
				parts = append(parts, *part)
			}
		}
		out.SetParts(parts)
	case orb.Collection:
		parts := make([]writer.Geometry, 0, len(v))
		for _, member := range v {
			if part := encodeGeometry(member, b); part != nil {
				parts = append(parts, *part)
			}
		}
		out.SetParts(parts)
	default:
		return nil
	}
	return out
}

// decodeGeometry converts a FlatGeobuf geometry back into orb form.
func decodeGeometry(g *flattypes.Geometry) orb.Geometry {
	if g == nil {
		return nil
	}
	switch g.Type() {
	case flattypes.GeometryTypePoint:
		if g.XyLength() < 2 {
			return orb.Point{}
		}
		return orb.Point{g.Xy(0), g.Xy(1)}
	case flattypes.GeometryTypeMultiPoint:
		return orb.MultiPoint(points(g, 0, g.XyLength()/2))
	case flattypes.GeometryTypeLineString:
		return orb.LineString(points(g, 0, g.XyLength()/2))
	case flattypes.GeometryTypeMultiLineString:
		parts := split(g)
		m := make(orb.MultiLineString, len(parts))
		for i, p := range parts {
			m[i] = orb.LineString(p)
		}
		return m
	case flattypes.GeometryTypePolygon:
		return decodePolygon(g)
	case flattypes.GeometryTypeMultiPolygon:
		if g.PartsLength() == 0 {
			// single polygon stored inline
			if p := decodePolygon(g); len(p) > 0 {
				return orb.MultiPolygon{p}
			}
			return orb.MultiPolygon{}
		}
		m := make(orb.MultiPolygon, 0, g.PartsLength())
		for i := 0; i < g.PartsLength(); i++ {
			var part flattypes.Geometry
			if g.Parts(&part, i) {
				m = append(m, decodePolygon(&part))
			}
		}
		return m
	case flattypes.GeometryTypeGeometryCollection:
		c := make(orb.Collection, 0, g.PartsLength())
		for i := 0; i < g.PartsLength(); i++ {
			var part flattypes.Geometry
			if g.Parts(&part, i) {
				if member := decodeGeometry(&part); member != nil {
					c = append(c, member)
				}
			}
		}
		return c
	}
	return nil
}

func decodePolygon(g *flattypes.Geometry) orb.Polygon {
	parts := split(g)
	p := make(orb.Polygon, len(parts))
	for i, r := range parts {
		p[i] = orb.Ring(r)
	}
	return p
}

// points reads the points [from, to) of the xy array.
func points(g *flattypes.Geometry, from, to int) []orb.Point {
	out := make([]orb.Point, 0, to-from)
	for i := from; i < to && 2*i+1 < g.XyLength(); i++ {
		out = append(out, orb.Point{g.Xy(2 * i), g.Xy(2*i + 1)})
	}
	return out
}

// split cuts the xy array at the end offsets. Without ends the whole array
// is one part.
func split(g *flattypes.Geometry) [][]orb.Point {
	total := g.XyLength() / 2
	if g.EndsLength() == 0 {
		if total == 0 {
			return nil
		}
		return [][]orb.Point{points(g, 0, total)}
	}
	parts := make([][]orb.Point, 0, g.EndsLength())
	start := 0
	for i := 0; i < g.EndsLength(); i++ {
		end := int(g.Ends(i))
		parts = append(parts, points(g, start, end))
		start = end
	}
	return parts
}
