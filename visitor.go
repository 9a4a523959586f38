package geometry

// Visitor handles every concrete geometry variant. Adding a variant adds a
// method here, so every implementation has to cover it.
type Visitor[R any] interface {
	VisitPoint(Point) (R, error)
	VisitLineString(LineString) (R, error)
	VisitLine(LineString) (R, error)
	VisitLinearRing(LinearRing) (R, error)
	VisitPolygon(Polygon) (R, error)
	VisitTriangle(Polygon) (R, error)
	VisitMultiPoint(MultiPoint) (R, error)
	VisitMultiLineString(MultiLineString) (R, error)
	VisitMultiPolygon(MultiPolygon) (R, error)
	VisitGeometryCollection(GeometryCollection) (R, error)
}

// Visit dispatches g to the visitor method of its kind. A geometry whose
// kind is unknown or whose value does not implement the interface of its
// kind fails with ErrUnsupportedType.
func Visit[R any](g Geometry, v Visitor[R]) (R, error) {
	var zero R
	if g == nil {
		return zero, ArgumentNull("geometry")
	}

	switch g.Kind() {
	case KindPoint:
		if p, ok := g.(Point); ok {
			return v.VisitPoint(p)
		}
	case KindLineString:
		if l, ok := g.(LineString); ok {
			return v.VisitLineString(l)
		}
	case KindLine:
		if l, ok := g.(LineString); ok {
			return v.VisitLine(l)
		}
	case KindLinearRing:
		if r, ok := g.(LinearRing); ok {
			return v.VisitLinearRing(r)
		}
	case KindPolygon:
		if p, ok := g.(Polygon); ok {
			return v.VisitPolygon(p)
		}
	case KindTriangle:
		if p, ok := g.(Polygon); ok {
			return v.VisitTriangle(p)
		}
	case KindMultiPoint:
		if m, ok := g.(MultiPoint); ok {
			return v.VisitMultiPoint(m)
		}
	case KindMultiLineString:
		if m, ok := g.(MultiLineString); ok {
			return v.VisitMultiLineString(m)
		}
	case KindMultiPolygon:
		if m, ok := g.(MultiPolygon); ok {
			return v.VisitMultiPolygon(m)
		}
	case KindGeometryCollection:
		if c, ok := g.(GeometryCollection); ok {
			return v.VisitGeometryCollection(c)
		}
	}

	return zero, UnsupportedType(g)
}
