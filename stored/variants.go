package stored

import (
	geometry "github.com/tingold/orb-geometry"
)

// The methods below are the same for every variant X: CreateX and
// CreateXFrom implement geometry.Factory, XAt, CreateXAt, CloneX and
// CloneXAt address nodes explicitly. CreateXFrom is CloneX without a
// suffix, so it aliases stored geometries of the same driver.

// CreatePoint stores a point under a new identifier.
func (f *Factory) CreatePoint(c geometry.Coordinate) (geometry.Point, error) {
	g, err := f.plain.CreatePoint(c)
	return create(f, g, err)
}

// CreatePointFrom aliases other when this driver stores it and stores a copy otherwise.
func (f *Factory) CreatePointFrom(other geometry.Point) (geometry.Point, error) {
	return f.ClonePoint(other)
}

// PointAt returns a handle on the point at identifier and indexes. Nothing is read.
func (f *Factory) PointAt(identifier string, indexes ...int) (geometry.Point, error) {
	return at[geometry.Point](f, geometry.KindPoint, identifier, indexes)
}

// CreatePointAt writes a point at identifier and indexes, replacing any node there.
func (f *Factory) CreatePointAt(identifier string, c geometry.Coordinate, indexes ...int) (geometry.Point, error) {
	g, err := f.plain.CreatePoint(c)
	return createAt(f, identifier, indexes, g, err)
}

// ClonePoint aliases other, followed by indexes, when this driver stores it.
// Anything else is copied under a new identifier.
func (f *Factory) ClonePoint(other geometry.Point, indexes ...int) (geometry.Point, error) {
	return clone(f, geometry.KindPoint, other, "", indexes, f.plain.CreatePointFrom)
}

// ClonePointAt is ClonePoint addressed at identifier.
func (f *Factory) ClonePointAt(identifier string, other geometry.Point, indexes ...int) (geometry.Point, error) {
	return cloneAt(f, geometry.KindPoint, identifier, other, indexes, f.plain.CreatePointFrom)
}

// CreateLineString stores a line string under a new identifier.
func (f *Factory) CreateLineString(cs []geometry.Coordinate) (geometry.LineString, error) {
	g, err := f.plain.CreateLineString(cs)
	return create(f, g, err)
}

// CreateLineStringFrom aliases other when this driver stores it and stores a copy otherwise.
func (f *Factory) CreateLineStringFrom(other geometry.LineString) (geometry.LineString, error) {
	return f.CloneLineString(other)
}

// LineStringAt returns a handle on the line string at identifier and indexes. Nothing is read.
func (f *Factory) LineStringAt(identifier string, indexes ...int) (geometry.LineString, error) {
	return at[geometry.LineString](f, geometry.KindLineString, identifier, indexes)
}

// CreateLineStringAt writes a line string at identifier and indexes, replacing any node there.
func (f *Factory) CreateLineStringAt(identifier string, cs []geometry.Coordinate, indexes ...int) (geometry.LineString, error) {
	g, err := f.plain.CreateLineString(cs)
	return createAt(f, identifier, indexes, g, err)
}

// CloneLineString aliases other, followed by indexes, when this driver stores it.
// Anything else is copied under a new identifier.
func (f *Factory) CloneLineString(other geometry.LineString, indexes ...int) (geometry.LineString, error) {
	return clone(f, geometry.KindLineString, other, "", indexes, f.plain.CreateLineStringFrom)
}

// CloneLineStringAt is CloneLineString addressed at identifier.
func (f *Factory) CloneLineStringAt(identifier string, other geometry.LineString, indexes ...int) (geometry.LineString, error) {
	return cloneAt(f, geometry.KindLineString, identifier, other, indexes, f.plain.CreateLineStringFrom)
}

// CreateLine stores a line under a new identifier.
func (f *Factory) CreateLine(a, b geometry.Coordinate) (geometry.LineString, error) {
	g, err := f.plain.CreateLine(a, b)
	return create(f, g, err)
}

// CreateLineFrom aliases other when this driver stores it and stores a copy otherwise.
func (f *Factory) CreateLineFrom(other geometry.LineString) (geometry.LineString, error) {
	return f.CloneLine(other)
}

// LineAt returns a handle on the line at identifier and indexes. Nothing is read.
func (f *Factory) LineAt(identifier string, indexes ...int) (geometry.LineString, error) {
	return at[geometry.LineString](f, geometry.KindLine, identifier, indexes)
}

// CreateLineAt writes a line at identifier and indexes, replacing any node there.
func (f *Factory) CreateLineAt(identifier string, a, b geometry.Coordinate, indexes ...int) (geometry.LineString, error) {
	g, err := f.plain.CreateLine(a, b)
	return createAt(f, identifier, indexes, g, err)
}

// CloneLine aliases other, followed by indexes, when this driver stores it.
// Anything else is copied under a new identifier.
func (f *Factory) CloneLine(other geometry.LineString, indexes ...int) (geometry.LineString, error) {
	return clone(f, geometry.KindLine, other, "", indexes, f.plain.CreateLineFrom)
}

// CloneLineAt is CloneLine addressed at identifier.
func (f *Factory) CloneLineAt(identifier string, other geometry.LineString, indexes ...int) (geometry.LineString, error) {
	return cloneAt(f, geometry.KindLine, identifier, other, indexes, f.plain.CreateLineFrom)
}

// CreateLinearRing stores a linear ring under a new identifier.
func (f *Factory) CreateLinearRing(cs []geometry.Coordinate) (geometry.LinearRing, error) {
	g, err := f.plain.CreateLinearRing(cs)
	return create(f, g, err)
}

// CreateLinearRingFrom aliases other when this driver stores it and stores a copy otherwise.
func (f *Factory) CreateLinearRingFrom(other geometry.LineString) (geometry.LinearRing, error) {
	return f.CloneLinearRing(other)
}

// LinearRingAt returns a handle on the linear ring at identifier and indexes. Nothing is read.
func (f *Factory) LinearRingAt(identifier string, indexes ...int) (geometry.LinearRing, error) {
	return at[geometry.LinearRing](f, geometry.KindLinearRing, identifier, indexes)
}

// CreateLinearRingAt writes a linear ring at identifier and indexes, replacing any node there.
func (f *Factory) CreateLinearRingAt(identifier string, cs []geometry.Coordinate, indexes ...int) (geometry.LinearRing, error) {
	g, err := f.plain.CreateLinearRing(cs)
	return createAt(f, identifier, indexes, g, err)
}

// CloneLinearRing aliases other, followed by indexes, when this driver stores it.
// Anything else is copied under a new identifier.
func (f *Factory) CloneLinearRing(other geometry.LineString, indexes ...int) (geometry.LinearRing, error) {
	return clone(f, geometry.KindLinearRing, other, "", indexes, f.plain.CreateLinearRingFrom)
}

// CloneLinearRingAt is CloneLinearRing addressed at identifier.
func (f *Factory) CloneLinearRingAt(identifier string, other geometry.LineString, indexes ...int) (geometry.LinearRing, error) {
	return cloneAt(f, geometry.KindLinearRing, identifier, other, indexes, f.plain.CreateLinearRingFrom)
}

// CreatePolygon stores a polygon under a new identifier.
func (f *Factory) CreatePolygon(shell []geometry.Coordinate, holes ...[]geometry.Coordinate) (geometry.Polygon, error) {
	g, err := f.plain.CreatePolygon(shell, holes...)
	return create(f, g, err)
}

// CreatePolygonFromRings stores a polygon built from the given rings under a new identifier.
func (f *Factory) CreatePolygonFromRings(shell geometry.LinearRing, holes ...geometry.LinearRing) (geometry.Polygon, error) {
	g, err := f.plain.CreatePolygonFromRings(shell, holes...)
	return create(f, g, err)
}

// CreatePolygonFrom aliases other when this driver stores it and stores a copy otherwise.
func (f *Factory) CreatePolygonFrom(other geometry.Polygon) (geometry.Polygon, error) {
	return f.ClonePolygon(other)
}

// PolygonAt returns a handle on the polygon at identifier and indexes. Nothing is read.
func (f *Factory) PolygonAt(identifier string, indexes ...int) (geometry.Polygon, error) {
	return at[geometry.Polygon](f, geometry.KindPolygon, identifier, indexes)
}

// CreatePolygonAt writes a polygon at identifier and indexes, replacing any node there.
func (f *Factory) CreatePolygonAt(identifier string, shell []geometry.Coordinate, holes [][]geometry.Coordinate, indexes ...int) (geometry.Polygon, error) {
	g, err := f.plain.CreatePolygon(shell, holes...)
	return createAt(f, identifier, indexes, g, err)
}

// ClonePolygon aliases other, followed by indexes, when this driver stores it.
// Anything else is copied under a new identifier.
func (f *Factory) ClonePolygon(other geometry.Polygon, indexes ...int) (geometry.Polygon, error) {
	return clone(f, geometry.KindPolygon, other, "", indexes, f.plain.CreatePolygonFrom)
}

// ClonePolygonAt is ClonePolygon addressed at identifier.
func (f *Factory) ClonePolygonAt(identifier string, other geometry.Polygon, indexes ...int) (geometry.Polygon, error) {
	return cloneAt(f, geometry.KindPolygon, identifier, other, indexes, f.plain.CreatePolygonFrom)
}

// CreateTriangle stores a triangle under a new identifier.
func (f *Factory) CreateTriangle(a, b, c geometry.Coordinate) (geometry.Polygon, error) {
	g, err := f.plain.CreateTriangle(a, b, c)
	return create(f, g, err)
}

// CreateTriangleFrom aliases other when this driver stores it and stores a copy otherwise.
func (f *Factory) CreateTriangleFrom(other geometry.Polygon) (geometry.Polygon, error) {
	return f.CloneTriangle(other)
}

// TriangleAt returns a handle on the triangle at identifier and indexes. Nothing is read.
func (f *Factory) TriangleAt(identifier string, indexes ...int) (geometry.Polygon, error) {
	return at[geometry.Polygon](f, geometry.KindTriangle, identifier, indexes)
}

// CreateTriangleAt writes a triangle at identifier and indexes, replacing any node there.
func (f *Factory) CreateTriangleAt(identifier string, a, b, c geometry.Coordinate, indexes ...int) (geometry.Polygon, error) {
	g, err := f.plain.CreateTriangle(a, b, c)
	return createAt(f, identifier, indexes, g, err)
}

// CloneTriangle aliases other, followed by indexes, when this driver stores it.
// Anything else is copied under a new identifier.
func (f *Factory) CloneTriangle(other geometry.Polygon, indexes ...int) (geometry.Polygon, error) {
	return clone(f, geometry.KindTriangle, other, "", indexes, f.plain.CreateTriangleFrom)
}

// CloneTriangleAt is CloneTriangle addressed at identifier.
func (f *Factory) CloneTriangleAt(identifier string, other geometry.Polygon, indexes ...int) (geometry.Polygon, error) {
	return cloneAt(f, geometry.KindTriangle, identifier, other, indexes, f.plain.CreateTriangleFrom)
}

// CreateMultiPoint stores a multi point under a new identifier.
func (f *Factory) CreateMultiPoint(points []geometry.Point) (geometry.MultiPoint, error) {
	g, err := f.plain.CreateMultiPoint(points)
	return create(f, g, err)
}

// CreateMultiPointFromCoordinates stores a multi point of one point per coordinate under a new identifier.
func (f *Factory) CreateMultiPointFromCoordinates(cs []geometry.Coordinate) (geometry.MultiPoint, error) {
	g, err := f.plain.CreateMultiPointFromCoordinates(cs)
	return create(f, g, err)
}

// CreateMultiPointFrom aliases other when this driver stores it and stores a copy otherwise.
func (f *Factory) CreateMultiPointFrom(other geometry.MultiPoint) (geometry.MultiPoint, error) {
	return f.CloneMultiPoint(other)
}

// MultiPointAt returns a handle on the multi point at identifier and indexes. Nothing is read.
func (f *Factory) MultiPointAt(identifier string, indexes ...int) (geometry.MultiPoint, error) {
	return at[geometry.MultiPoint](f, geometry.KindMultiPoint, identifier, indexes)
}

// CreateMultiPointAt writes a multi point at identifier and indexes, replacing any node there.
func (f *Factory) CreateMultiPointAt(identifier string, points []geometry.Point, indexes ...int) (geometry.MultiPoint, error) {
	g, err := f.plain.CreateMultiPoint(points)
	return createAt(f, identifier, indexes, g, err)
}

// CloneMultiPoint aliases other, followed by indexes, when this driver stores it.
// Anything else is copied under a new identifier.
func (f *Factory) CloneMultiPoint(other geometry.MultiPoint, indexes ...int) (geometry.MultiPoint, error) {
	return clone(f, geometry.KindMultiPoint, other, "", indexes, f.plain.CreateMultiPointFrom)
}

// CloneMultiPointAt is CloneMultiPoint addressed at identifier.
func (f *Factory) CloneMultiPointAt(identifier string, other geometry.MultiPoint, indexes ...int) (geometry.MultiPoint, error) {
	return cloneAt(f, geometry.KindMultiPoint, identifier, other, indexes, f.plain.CreateMultiPointFrom)
}

// CreateMultiLineString stores a multi line string under a new identifier.
func (f *Factory) CreateMultiLineString(lines []geometry.LineString) (geometry.MultiLineString, error) {
	g, err := f.plain.CreateMultiLineString(lines)
	return create(f, g, err)
}

// CreateMultiLineStringFrom aliases other when this driver stores it and stores a copy otherwise.
func (f *Factory) CreateMultiLineStringFrom(other geometry.MultiLineString) (geometry.MultiLineString, error) {
	return f.CloneMultiLineString(other)
}

// MultiLineStringAt returns a handle on the multi line string at identifier and indexes. Nothing is read.
func (f *Factory) MultiLineStringAt(identifier string, indexes ...int) (geometry.MultiLineString, error) {
	return at[geometry.MultiLineString](f, geometry.KindMultiLineString, identifier, indexes)
}

// CreateMultiLineStringAt writes a multi line string at identifier and indexes, replacing any node there.
func (f *Factory) CreateMultiLineStringAt(identifier string, lines []geometry.LineString, indexes ...int) (geometry.MultiLineString, error) {
	g, err := f.plain.CreateMultiLineString(lines)
	return createAt(f, identifier, indexes, g, err)
}

// CloneMultiLineString aliases other, followed by indexes, when this driver stores it.
// Anything else is copied under a new identifier.
func (f *Factory) CloneMultiLineString(other geometry.MultiLineString, indexes ...int) (geometry.MultiLineString, error) {
	return clone(f, geometry.KindMultiLineString, other, "", indexes, f.plain.CreateMultiLineStringFrom)
}

// CloneMultiLineStringAt is CloneMultiLineString addressed at identifier.
func (f *Factory) CloneMultiLineStringAt(identifier string, other geometry.MultiLineString, indexes ...int) (geometry.MultiLineString, error) {
	return cloneAt(f, geometry.KindMultiLineString, identifier, other, indexes, f.plain.CreateMultiLineStringFrom)
}

// CreateMultiPolygon stores a multi polygon under a new identifier.
func (f *Factory) CreateMultiPolygon(polygons []geometry.Polygon) (geometry.MultiPolygon, error) {
	g, err := f.plain.CreateMultiPolygon(polygons)
	return create(f, g, err)
}

// CreateMultiPolygonFrom aliases other when this driver stores it and stores a copy otherwise.
func (f *Factory) CreateMultiPolygonFrom(other geometry.MultiPolygon) (geometry.MultiPolygon, error) {
	return f.CloneMultiPolygon(other)
}

// MultiPolygonAt returns a handle on the multi polygon at identifier and indexes. Nothing is read.
func (f *Factory) MultiPolygonAt(identifier string, indexes ...int) (geometry.MultiPolygon, error) {
	return at[geometry.MultiPolygon](f, geometry.KindMultiPolygon, identifier, indexes)
}

// CreateMultiPolygonAt writes a multi polygon at identifier and indexes, replacing any node there.
func (f *Factory) CreateMultiPolygonAt(identifier string, polygons []geometry.Polygon, indexes ...int) (geometry.MultiPolygon, error) {
	g, err := f.plain.CreateMultiPolygon(polygons)
	return createAt(f, identifier, indexes, g, err)
}

// CloneMultiPolygon aliases other, followed by indexes, when this driver stores it.
// Anything else is copied under a new identifier.
func (f *Factory) CloneMultiPolygon(other geometry.MultiPolygon, indexes ...int) (geometry.MultiPolygon, error) {
	return clone(f, geometry.KindMultiPolygon, other, "", indexes, f.plain.CreateMultiPolygonFrom)
}

// CloneMultiPolygonAt is CloneMultiPolygon addressed at identifier.
func (f *Factory) CloneMultiPolygonAt(identifier string, other geometry.MultiPolygon, indexes ...int) (geometry.MultiPolygon, error) {
	return cloneAt(f, geometry.KindMultiPolygon, identifier, other, indexes, f.plain.CreateMultiPolygonFrom)
}

// CreateGeometryCollection stores a geometry collection under a new identifier.
func (f *Factory) CreateGeometryCollection(geometries []geometry.Geometry) (geometry.GeometryCollection, error) {
	g, err := f.plain.CreateGeometryCollection(geometries)
	return create(f, g, err)
}

// CreateGeometryCollectionFrom aliases other when this driver stores it and stores a copy otherwise.
func (f *Factory) CreateGeometryCollectionFrom(other geometry.GeometryCollection) (geometry.GeometryCollection, error) {
	return f.CloneGeometryCollection(other)
}

// GeometryCollectionAt returns a handle on the geometry collection at identifier and indexes. Nothing is read.
func (f *Factory) GeometryCollectionAt(identifier string, indexes ...int) (geometry.GeometryCollection, error) {
	return at[geometry.GeometryCollection](f, geometry.KindGeometryCollection, identifier, indexes)
}

// CreateGeometryCollectionAt writes a geometry collection at identifier and indexes, replacing any node there.
func (f *Factory) CreateGeometryCollectionAt(identifier string, geometries []geometry.Geometry, indexes ...int) (geometry.GeometryCollection, error) {
	g, err := f.plain.CreateGeometryCollection(geometries)
	return createAt(f, identifier, indexes, g, err)
}

// CloneGeometryCollection aliases other, followed by indexes, when this driver stores it.
// Anything else is copied under a new identifier.
func (f *Factory) CloneGeometryCollection(other geometry.GeometryCollection, indexes ...int) (geometry.GeometryCollection, error) {
	return clone(f, geometry.KindGeometryCollection, other, "", indexes, f.plain.CreateGeometryCollectionFrom)
}

// CloneGeometryCollectionAt is CloneGeometryCollection addressed at identifier.
func (f *Factory) CloneGeometryCollectionAt(identifier string, other geometry.GeometryCollection, indexes ...int) (geometry.GeometryCollection, error) {
	return cloneAt(f, geometry.KindGeometryCollection, identifier, other, indexes, f.plain.CreateGeometryCollectionFrom)
}
