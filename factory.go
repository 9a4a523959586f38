package geometry

// Factory is the only way to create geometries. It decides the precision
// model and reference system of everything it creates, and every incoming
// coordinate is snapped to that precision.
//
// Go has no overloading, so the creation families are spelled out: CreateX
// builds from raw coordinates, CreateXFrom deep copies another geometry.
// Calling CreateX with no coordinates (or Undefined for points) produces
// the empty form.
type Factory interface {
	PrecisionModel() *PrecisionModel
	ReferenceSystem() *ReferenceSystem

	// WithPrecisionModel returns a factory of the same type using pm.
	WithPrecisionModel(pm *PrecisionModel) Factory
	// WithReferenceSystem returns a factory of the same type using rs.
	WithReferenceSystem(rs *ReferenceSystem) Factory

	CreatePoint(c Coordinate) (Point, error)
	CreatePointFrom(p Point) (Point, error)

	CreateLineString(cs []Coordinate) (LineString, error)
	CreateLineStringFrom(l LineString) (LineString, error)

	CreateLine(a, b Coordinate) (LineString, error)
	CreateLineFrom(l LineString) (LineString, error)

	CreateLinearRing(cs []Coordinate) (LinearRing, error)
	CreateLinearRingFrom(l LineString) (LinearRing, error)

	CreatePolygon(shell []Coordinate, holes ...[]Coordinate) (Polygon, error)
	CreatePolygonFromRings(shell LinearRing, holes ...LinearRing) (Polygon, error)
	CreatePolygonFrom(p Polygon) (Polygon, error)

	CreateTriangle(a, b, c Coordinate) (Polygon, error)
	CreateTriangleFrom(p Polygon) (Polygon, error)

	CreateMultiPoint(points []Point) (MultiPoint, error)
	CreateMultiPointFromCoordinates(cs []Coordinate) (MultiPoint, error)
	CreateMultiPointFrom(m MultiPoint) (MultiPoint, error)

	CreateMultiLineString(lines []LineString) (MultiLineString, error)
	CreateMultiLineStringFrom(m MultiLineString) (MultiLineString, error)

	CreateMultiPolygon(polygons []Polygon) (MultiPolygon, error)
	CreateMultiPolygonFrom(m MultiPolygon) (MultiPolygon, error)

	CreateGeometryCollection(geometries []Geometry) (GeometryCollection, error)
	CreateGeometryCollectionFrom(c GeometryCollection) (GeometryCollection, error)

	// CreateGeometry copies g into the matching variant of this factory.
	CreateGeometry(g Geometry) (Geometry, error)
}

// GeometryFactory creates in-memory geometries. It is immutable and safe
// for concurrent use.
type GeometryFactory struct {
	precision *PrecisionModel
	rs        *ReferenceSystem
}

var _ Factory = (*GeometryFactory)(nil)

// NewFactory returns a factory using pm and rs. A nil pm means Default();
// a nil rs leaves the reference system undefined.
func NewFactory(pm *PrecisionModel, rs *ReferenceSystem) *GeometryFactory {
	return &GeometryFactory{precision: resolvePrecision(pm), rs: rs}
}

// PrecisionModel and ReferenceSystem return what f applies to new geometries.
func (f *GeometryFactory) PrecisionModel() *PrecisionModel { return f.precision }
func (f *GeometryFactory) ReferenceSystem() *ReferenceSystem { return f.rs }

// WithPrecisionModel returns a factory sharing the reference system of f
// and snapping to pm.
func (f *GeometryFactory) WithPrecisionModel(pm *PrecisionModel) Factory {
	return NewFactory(pm, f.rs)
}

// WithReferenceSystem returns a factory sharing the precision model of f.
func (f *GeometryFactory) WithReferenceSystem(rs *ReferenceSystem) Factory {
	return NewFactory(f.precision, rs)
}

// owns reports whether g can be kept as is in a collection of f.
func (f *GeometryFactory) owns(g Geometry) bool {
	o, ok := g.Factory().(*GeometryFactory)
	if !ok {
		return false
	}
	return o == f || (o.precision.Equal(f.precision) && o.rs.Equal(f.rs))
}

// CreatePoint returns a point snapped to the precision model of f.
func (f *GeometryFactory) CreatePoint(c Coordinate) (Point, error) {
	return &point{base: base{factory: f}, c: f.precision.MakePreciseCoordinate(c)}, nil
}

// CreatePointFrom returns a deep copy of the given point, made by f.
func (f *GeometryFactory) CreatePointFrom(p Point) (Point, error) {
	if p == nil {
		return nil, ArgumentNull("point")
	}
	return f.CreatePoint(p.Coordinate())
}

// CreateLineString returns a line string snapped to the precision model of f.
func (f *GeometryFactory) CreateLineString(cs []Coordinate) (LineString, error) {
	return newCurve(f, KindLineString, cs), nil
}

// CreateLineStringFrom returns a deep copy of the given line string, made by f.
func (f *GeometryFactory) CreateLineStringFrom(l LineString) (LineString, error) {
	if l == nil {
		return nil, ArgumentNull("line string")
	}
	return f.CreateLineString(l.Coordinates())
}

// CreateLine returns a line snapped to the precision model of f.
func (f *GeometryFactory) CreateLine(a, b Coordinate) (LineString, error) {
	l := newCurve(f, KindLine, []Coordinate{a, b})
	l.fixed = true
	return l, nil
}

// CreateLineFrom returns a deep copy of the given line, made by f.
func (f *GeometryFactory) CreateLineFrom(l LineString) (LineString, error) {
	if l == nil {
		return nil, ArgumentNull("line")
	}
	if n := l.Count(); n != 2 {
		return nil, InvalidArgument("a line needs 2 coordinates, got %d", n)
	}
	cs := l.Coordinates()
	return f.CreateLine(cs[0], cs[1])
}

// CreateLinearRing returns a linear ring snapped to the precision model of f.
func (f *GeometryFactory) CreateLinearRing(cs []Coordinate) (LinearRing, error) {
	return newRing(f, cs), nil
}

// CreateLinearRingFrom returns a deep copy of the given linear ring, made by f.
func (f *GeometryFactory) CreateLinearRingFrom(l LineString) (LinearRing, error) {
	if l == nil {
		return nil, ArgumentNull("linear ring")
	}
	return f.CreateLinearRing(l.Coordinates())
}

// CreatePolygon returns a polygon snapped to the precision model of f.
func (f *GeometryFactory) CreatePolygon(shell []Coordinate, holes ...[]Coordinate) (Polygon, error) {
	p := &polygon{base: base{factory: f}, kind: KindPolygon, shell: newRing(f, shell)}
	for _, h := range holes {
		p.holes = append(p.holes, newRing(f, h))
	}
	return p, nil
}

// CreatePolygonFromRings returns a polygon copying shell and holes.
func (f *GeometryFactory) CreatePolygonFromRings(shell LinearRing, holes ...LinearRing) (Polygon, error) {
	if shell == nil {
		return nil, ArgumentNull("shell")
	}
	hs := make([][]Coordinate, len(holes))
	for i, h := range holes {
		if h == nil {
			return nil, ArgumentNull("hole")
		}
		hs[i] = h.Coordinates()
	}
	return f.CreatePolygon(shell.Coordinates(), hs...)
}

// CreatePolygonFrom returns a deep copy of the given polygon, made by f.
func (f *GeometryFactory) CreatePolygonFrom(p Polygon) (Polygon, error) {
	if p == nil {
		return nil, ArgumentNull("polygon")
	}
	return f.CreatePolygonFromRings(p.Shell(), p.Holes()...)
}

// CreateTriangle returns a triangle snapped to the precision model of f.
func (f *GeometryFactory) CreateTriangle(a, b, c Coordinate) (Polygon, error) {
	shell := newCurve(f, KindLinearRing, []Coordinate{a, b, c, a})
	shell.fixed = true
	return &polygon{base: base{factory: f}, kind: KindTriangle, shell: &ring{curve: shell}}, nil
}

// CreateTriangleFrom copies a polygon whose shell has three distinct
// vertices and which has no holes.
func (f *GeometryFactory) CreateTriangleFrom(p Polygon) (Polygon, error) {
	if p == nil {
		return nil, ArgumentNull("triangle")
	}
	if p.HoleCount() > 0 {
		return nil, InvalidArgument("a triangle cannot have holes")
	}
	cs := p.Shell().Coordinates()
	if len(cs) != 4 {
		return nil, InvalidArgument("a triangle needs 3 vertices, got %d coordinates", len(cs))
	}
	return f.CreateTriangle(cs[0], cs[1], cs[2])
}

func (f *GeometryFactory) newMultiPoint() *multiPoint {
	return &multiPoint{list: newList(f, KindMultiPoint, adoptWith[Point](f))}
}

// CreateMultiPoint returns a multi point of the given members.
// Members made by another factory are copied.
func (f *GeometryFactory) CreateMultiPoint(points []Point) (MultiPoint, error) {
	m := f.newMultiPoint()
	for _, p := range points {
		if err := m.Add(p); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CreateMultiPointFromCoordinates returns a multi point with one member per
// coordinate. Undefined coordinates become empty points.
func (f *GeometryFactory) CreateMultiPointFromCoordinates(cs []Coordinate) (MultiPoint, error) {
	m := f.newMultiPoint()
	for _, c := range cs {
		p, err := f.CreatePoint(c)
		if err != nil {
			return nil, err
		}
		m.items = append(m.items, p)
	}
	return m, nil
}

// CreateMultiPointFrom returns a deep copy of the given multi point, made by f.
func (f *GeometryFactory) CreateMultiPointFrom(other MultiPoint) (MultiPoint, error) {
	if other == nil {
		return nil, ArgumentNull("multi point")
	}
	m := f.newMultiPoint()
	for _, p := range other.Geometries() {
		c, err := f.CreatePointFrom(p)
		if err != nil {
			return nil, err
		}
		m.items = append(m.items, c)
	}
	return m, nil
}

func (f *GeometryFactory) newMultiLineString() *multiLineString {
	return &multiLineString{list: newList(f, KindMultiLineString, adoptWith[LineString](f))}
}

// CreateMultiLineString returns a multi line string of the given members.
// Members made by another factory are copied.
func (f *GeometryFactory) CreateMultiLineString(lines []LineString) (MultiLineString, error) {
	m := f.newMultiLineString()
	for _, l := range lines {
		if err := m.Add(l); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CreateMultiLineStringFrom returns a deep copy of the given multi line string, made by f.
func (f *GeometryFactory) CreateMultiLineStringFrom(other MultiLineString) (MultiLineString, error) {
	if other == nil {
		return nil, ArgumentNull("multi line string")
	}
	m := f.newMultiLineString()
	for _, l := range other.Geometries() {
		c, err := copyAs[LineString](f, l)
		if err != nil {
			return nil, err
		}
		m.items = append(m.items, c)
	}
	return m, nil
}

func (f *GeometryFactory) newMultiPolygon() *multiPolygon {
	return &multiPolygon{list: newList(f, KindMultiPolygon, adoptWith[Polygon](f))}
}

// CreateMultiPolygon returns a multi polygon of the given members.
// Members made by another factory are copied.
func (f *GeometryFactory) CreateMultiPolygon(polygons []Polygon) (MultiPolygon, error) {
	m := f.newMultiPolygon()
	for _, p := range polygons {
		if err := m.Add(p); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CreateMultiPolygonFrom returns a deep copy of the given multi polygon, made by f.
func (f *GeometryFactory) CreateMultiPolygonFrom(other MultiPolygon) (MultiPolygon, error) {
	if other == nil {
		return nil, ArgumentNull("multi polygon")
	}
	m := f.newMultiPolygon()
	for _, p := range other.Geometries() {
		c, err := copyAs[Polygon](f, p)
		if err != nil {
			return nil, err
		}
		m.items = append(m.items, c)
	}
	return m, nil
}

func (f *GeometryFactory) newGeometryCollection() *geometryCollection {
	return &geometryCollection{list: newList(f, KindGeometryCollection, adoptWith[Geometry](f))}
}

// CreateGeometryCollection returns a geometry collection of the given members.
// Members made by another factory are copied.
func (f *GeometryFactory) CreateGeometryCollection(geometries []Geometry) (GeometryCollection, error) {
	c := f.newGeometryCollection()
	for _, g := range geometries {
		if err := c.Add(g); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// CreateGeometryCollectionFrom returns a deep copy of the given geometry collection, made by f.
func (f *GeometryFactory) CreateGeometryCollectionFrom(other GeometryCollection) (GeometryCollection, error) {
	if other == nil {
		return nil, ArgumentNull("geometry collection")
	}
	c := f.newGeometryCollection()
	for _, g := range other.Geometries() {
		m, err := f.CreateGeometry(g)
		if err != nil {
			return nil, err
		}
		c.items = append(c.items, m)
	}
	return c, nil
}

// CreateGeometry deep copies g, re-snapping every coordinate to the
// precision of f. The result has the same kind as g.
func (f *GeometryFactory) CreateGeometry(g Geometry) (Geometry, error) {
	return Visit[Geometry](g, Copier{Factory: f})
}

// adoptWith keeps members created by an equivalent factory and copies the
// others.
func adoptWith[T Geometry](f *GeometryFactory) func(T) (T, error) {
	return func(g T) (T, error) {
		if f.owns(g) {
			return g, nil
		}
		return copyAs[T](f, g)
	}
}

func copyAs[T Geometry](f Factory, g T) (T, error) {
	var zero T
	c, err := f.CreateGeometry(g)
	if err != nil {
		return zero, err
	}
	t, ok := c.(T)
	if !ok {
		return zero, UnsupportedType(c)
	}
	return t, nil
}

// Empty returns the empty geometry of kind k created by f. Lines and
// triangles have a fixed number of coordinates and no empty form.
func Empty(f Factory, k Kind) (Geometry, error) {
	if f == nil {
		return nil, ArgumentNull("factory")
	}
	switch k {
	case KindPoint:
		return as(f.CreatePoint(Undefined))
	case KindLineString:
		return as(f.CreateLineString(nil))
	case KindLinearRing:
		return as(f.CreateLinearRing(nil))
	case KindPolygon:
		return as(f.CreatePolygon(nil))
	case KindMultiPoint:
		return as(f.CreateMultiPoint(nil))
	case KindMultiLineString:
		return as(f.CreateMultiLineString(nil))
	case KindMultiPolygon:
		return as(f.CreateMultiPolygon(nil))
	case KindGeometryCollection:
		return as(f.CreateGeometryCollection(nil))
	case KindLine, KindTriangle:
		return nil, UnsupportedOperation("Empty", k)
	}
	return nil, InvalidArgument("unknown geometry kind %v", k)
}

// as widens a typed creation result to Geometry without turning a failed
// creation into a non-nil interface.
func as[T Geometry](g T, err error) (Geometry, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Copier is a Visitor that copies every variant through Factory. It is
// what CreateGeometry uses, and can be reused by other Factory
// implementations.
type Copier struct {
	Factory Factory
}

// VisitPoint copies the point through c.Factory.
func (c Copier) VisitPoint(p Point) (Geometry, error) {
	return as(c.Factory.CreatePointFrom(p))
}

// VisitLineString copies the line string through c.Factory.
func (c Copier) VisitLineString(l LineString) (Geometry, error) {
	return as(c.Factory.CreateLineStringFrom(l))
}

// VisitLine copies the line through c.Factory.
func (c Copier) VisitLine(l LineString) (Geometry, error) {
	return as(c.Factory.CreateLineFrom(l))
}

// VisitLinearRing copies the linear ring through c.Factory.
func (c Copier) VisitLinearRing(r LinearRing) (Geometry, error) {
	return as(c.Factory.CreateLinearRingFrom(r))
}

// VisitPolygon copies the polygon through c.Factory.
func (c Copier) VisitPolygon(p Polygon) (Geometry, error) {
	return as(c.Factory.CreatePolygonFrom(p))
}

// VisitTriangle copies the triangle through c.Factory.
func (c Copier) VisitTriangle(p Polygon) (Geometry, error) {
	return as(c.Factory.CreateTriangleFrom(p))
}

// VisitMultiPoint copies the multi point through c.Factory.
func (c Copier) VisitMultiPoint(m MultiPoint) (Geometry, error) {
	return as(c.Factory.CreateMultiPointFrom(m))
}

// VisitMultiLineString copies the multi line string through c.Factory.
func (c Copier) VisitMultiLineString(m MultiLineString) (Geometry, error) {
	return as(c.Factory.CreateMultiLineStringFrom(m))
}

// VisitMultiPolygon copies the multi polygon through c.Factory.
func (c Copier) VisitMultiPolygon(m MultiPolygon) (Geometry, error) {
	return as(c.Factory.CreateMultiPolygonFrom(m))
}

// VisitGeometryCollection copies the geometry collection through c.Factory.
func (c Copier) VisitGeometryCollection(g GeometryCollection) (Geometry, error) {
	return as(c.Factory.CreateGeometryCollectionFrom(g))
}
