package stored

import (
	"github.com/sirupsen/logrus"

	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
)

// Factory creates stored geometries on a driver. It implements
// geometry.Factory, where every creation allocates a new identifier, and
// adds for each variant X:
//
//	XAt(identifier, indexes...)             handle on an existing node
//	CreateXAt(identifier, ..., indexes...)  writes raw data at the address
//	CloneX(other, indexes...)               alias or copy under a new identifier
//	CloneXAt(identifier, other, indexes...) alias or copy at the address
//
// Writing at an address replaces the node found there, or appends when the
// last index equals the number of children of the parent.
type Factory struct {
	driver driver.GeometryDriver
	plain  *geometry.GeometryFactory
	log    logrus.FieldLogger
}

var _ geometry.Factory = (*Factory)(nil)

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger receiving the alias and copy decisions.
func WithLogger(log logrus.FieldLogger) Option {
	return func(f *Factory) {
		if log != nil {
			f.log = log
		}
	}
}

// NewFactory returns a factory writing to d. A nil pm means
// geometry.Default().
func NewFactory(d driver.GeometryDriver, pm *geometry.PrecisionModel, rs *geometry.ReferenceSystem, opts ...Option) (*Factory, error) {
	if d == nil {
		return nil, geometry.ArgumentNull("driver")
	}
	f := &Factory{driver: d, plain: geometry.NewFactory(pm, rs), log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *Factory) Driver() driver.GeometryDriver { return f.driver }
func (f *Factory) PrecisionModel() *geometry.PrecisionModel { return f.plain.PrecisionModel() }
func (f *Factory) ReferenceSystem() *geometry.ReferenceSystem { return f.plain.ReferenceSystem() }

func (f *Factory) WithPrecisionModel(pm *geometry.PrecisionModel) geometry.Factory {
	return &Factory{driver: f.driver, plain: geometry.NewFactory(pm, f.ReferenceSystem()), log: f.log}
}

func (f *Factory) WithReferenceSystem(rs *geometry.ReferenceSystem) geometry.Factory {
	return &Factory{driver: f.driver, plain: geometry.NewFactory(f.PrecisionModel(), rs), log: f.log}
}

// sourceOf is the package sourceOf, except that handles on another driver
// count as in memory and get copied.
func (f *Factory) sourceOf(g geometry.Geometry) source {
	s := sourceOf(g)
	if ref, ok := s.(storedRef); ok && ref.driver != f.driver {
		return inMemory{g: g}
	}
	return s
}

func (f *Factory) handle(k geometry.Kind, identifier string, indexes []int) (geometry.Geometry, error) {
	b := newBase(f, k, identifier, append([]int(nil), indexes...))
	switch k {
	case geometry.KindPoint:
		return &point{base: b}, nil
	case geometry.KindLineString, geometry.KindLine:
		return &curve{base: b}, nil
	case geometry.KindLinearRing:
		return &ring{curve: curve{base: b}}, nil
	case geometry.KindPolygon, geometry.KindTriangle:
		return &polygon{base: b}, nil
	case geometry.KindMultiPoint:
		return &multiPoint{list: list[geometry.Point]{base: b}}, nil
	case geometry.KindMultiLineString:
		return &multiLineString{list: list[geometry.LineString]{base: b}}, nil
	case geometry.KindMultiPolygon:
		return &multiPolygon{list: list[geometry.Polygon]{base: b}}, nil
	case geometry.KindGeometryCollection:
		return &geometryCollection{list: list[geometry.Geometry]{base: b}}, nil
	}
	return nil, geometry.InvalidArgument("unknown geometry kind %v", k)
}

var (
	_ Geometry                    = (*point)(nil)
	_ geometry.Point              = (*point)(nil)
	_ geometry.LineString         = (*curve)(nil)
	_ geometry.LinearRing         = (*ring)(nil)
	_ geometry.Polygon            = (*polygon)(nil)
	_ geometry.MultiPoint         = (*multiPoint)(nil)
	_ geometry.MultiLineString    = (*multiLineString)(nil)
	_ geometry.MultiPolygon       = (*multiPolygon)(nil)
	_ geometry.GeometryCollection = (*geometryCollection)(nil)
)

// at returns the handle of kind k as T. It does not call the driver.
func at[T geometry.Geometry](f *Factory, k geometry.Kind, identifier string, indexes []int) (T, error) {
	var zero T
	if identifier == "" {
		return zero, geometry.ArgumentNull("identifier")
	}
	g, err := f.handle(k, identifier, indexes)
	if err != nil {
		return zero, err
	}
	t, ok := g.(T)
	if !ok {
		return zero, geometry.UnsupportedType(g)
	}
	return t, nil
}

// allocate creates an identifier carrying the reference system of f.
func (f *Factory) allocate() (string, error) {
	id, err := f.driver.CreateIdentifier()
	if err != nil {
		return "", err
	}
	if rs := f.ReferenceSystem(); rs != nil {
		if err := f.driver.UpdateReferenceSystem(id, rs); err != nil {
			return "", err
		}
	}
	return id, nil
}

// put inserts g as the subtree at (identifier, indexes).
func (f *Factory) put(identifier string, indexes []int, g geometry.Geometry) error {
	_, err := geometry.Visit[struct{}](g, nodeWriter{driver: f.driver, identifier: identifier, indexes: indexes})
	return err
}

// replace writes g at (identifier, indexes), removing the node found there
// first.
func (f *Factory) replace(identifier string, indexes []int, g geometry.Geometry) error {
	if last := len(indexes) - 1; last >= 0 {
		n, err := f.driver.ReadGeometryCount(identifier, indexes[:last]...)
		if err != nil {
			return err
		}
		if indexes[last] < n {
			if err := f.driver.DeleteGeometry(identifier, indexes...); err != nil {
				return err
			}
		}
	}
	return f.put(identifier, indexes, g)
}

// create stores g, built in memory, under a new identifier.
func create[T geometry.Geometry](f *Factory, g T, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	id, err := f.allocate()
	if err != nil {
		return zero, err
	}
	if err := f.put(id, nil, g); err != nil {
		return zero, err
	}
	f.log.WithFields(logrus.Fields{"identifier": id, "kind": g.Kind()}).Debug("stored: created geometry")
	return at[T](f, g.Kind(), id, nil)
}

// createAt stores g, built in memory, at (identifier, indexes).
func createAt[T geometry.Geometry](f *Factory, identifier string, indexes []int, g T, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if identifier == "" {
		return zero, geometry.ArgumentNull("identifier")
	}
	if err := f.replace(identifier, indexes, g); err != nil {
		return zero, err
	}
	f.log.WithFields(logrus.Fields{"identifier": identifier, "indexes": indexes, "kind": g.Kind()}).
		Debug("stored: wrote geometry")
	return at[T](f, g.Kind(), identifier, indexes)
}

// clone aliases a stored other and copies anything else through copyAs.
// An empty identifier means a new identifier: the alias keeps the one of
// other, a copy gets a fresh one and is written at its root.
func clone[S, T geometry.Geometry](f *Factory, k geometry.Kind, other S, identifier string, indexes []int, copyAs func(S) (T, error)) (T, error) {
	var zero T
	if geometry.Geometry(other) == nil {
		return zero, geometry.ArgumentNull("geometry")
	}

	switch src := f.sourceOf(other).(type) {
	case storedRef:
		if identifier == "" {
			identifier = src.identifier
		}
		path := append(src.indexes, indexes...)
		f.log.WithFields(logrus.Fields{"identifier": identifier, "indexes": path}).
			Debug("stored: aliasing stored geometry")
		// without a suffix the alias reports the kind of other
		if len(indexes) == 0 {
			if t, err := at[T](f, other.Kind(), identifier, path); err == nil {
				return t, nil
			}
		}
		return at[T](f, k, identifier, path)

	case inMemory:
		c, err := copyAs(other)
		if identifier == "" {
			return create(f, c, err)
		}
		return createAt(f, identifier, indexes, c, err)
	}
	return zero, geometry.UnsupportedType(other)
}

func cloneAt[S, T geometry.Geometry](f *Factory, k geometry.Kind, identifier string, other S, indexes []int, copyAs func(S) (T, error)) (T, error) {
	if identifier == "" {
		var zero T
		return zero, geometry.ArgumentNull("identifier")
	}
	return clone(f, k, other, identifier, indexes, copyAs)
}

// GeometryAt reads the kind of the node at the address and returns the
// matching handle.
func (f *Factory) GeometryAt(identifier string, indexes ...int) (geometry.Geometry, error) {
	if identifier == "" {
		return nil, geometry.ArgumentNull("identifier")
	}
	k, err := f.driver.ReadGeometryKind(identifier, indexes...)
	if err != nil {
		return nil, err
	}
	return at[geometry.Geometry](f, k, identifier, indexes)
}

// CreateGeometry copies g under a new identifier, or aliases it when g is
// stored on the same driver.
func (f *Factory) CreateGeometry(g geometry.Geometry) (geometry.Geometry, error) {
	return f.CloneGeometry(g)
}

func (f *Factory) CloneGeometry(other geometry.Geometry, indexes ...int) (geometry.Geometry, error) {
	return f.cloneGeometry("", other, indexes)
}

func (f *Factory) CloneGeometryAt(identifier string, other geometry.Geometry, indexes ...int) (geometry.Geometry, error) {
	if identifier == "" {
		return nil, geometry.ArgumentNull("identifier")
	}
	return f.cloneGeometry(identifier, other, indexes)
}

// cloneGeometry dispatches on the variant of other so that the result has
// the same kind. An alias with a suffix reads the kind of its target.
func (f *Factory) cloneGeometry(identifier string, other geometry.Geometry, indexes []int) (geometry.Geometry, error) {
	if other == nil {
		return nil, geometry.ArgumentNull("geometry")
	}
	if ref, ok := f.sourceOf(other).(storedRef); ok && len(indexes) > 0 {
		if identifier == "" {
			identifier = ref.identifier
		}
		return f.GeometryAt(identifier, append(ref.indexes, indexes...)...)
	}
	return geometry.Visit[geometry.Geometry](other, cloner{f: f, identifier: identifier, indexes: indexes})
}

// cloner clones every variant through the typed Clone methods.
type cloner struct {
	f          *Factory
	identifier string
	indexes    []int
}

func (c cloner) VisitPoint(p geometry.Point) (geometry.Geometry, error) {
	return widen(clone(c.f, geometry.KindPoint, p, c.identifier, c.indexes, c.f.plain.CreatePointFrom))
}

func (c cloner) VisitLineString(l geometry.LineString) (geometry.Geometry, error) {
	return widen(clone(c.f, geometry.KindLineString, l, c.identifier, c.indexes, c.f.plain.CreateLineStringFrom))
}

func (c cloner) VisitLine(l geometry.LineString) (geometry.Geometry, error) {
	return widen(clone(c.f, geometry.KindLine, l, c.identifier, c.indexes, c.f.plain.CreateLineFrom))
}

func (c cloner) VisitLinearRing(r geometry.LinearRing) (geometry.Geometry, error) {
	return widen(clone(c.f, geometry.KindLinearRing, geometry.LineString(r), c.identifier, c.indexes, c.f.plain.CreateLinearRingFrom))
}

func (c cloner) VisitPolygon(p geometry.Polygon) (geometry.Geometry, error) {
	return widen(clone(c.f, geometry.KindPolygon, p, c.identifier, c.indexes, c.f.plain.CreatePolygonFrom))
}

func (c cloner) VisitTriangle(p geometry.Polygon) (geometry.Geometry, error) {
	return widen(clone(c.f, geometry.KindTriangle, p, c.identifier, c.indexes, c.f.plain.CreateTriangleFrom))
}

func (c cloner) VisitMultiPoint(m geometry.MultiPoint) (geometry.Geometry, error) {
	return widen(clone(c.f, geometry.KindMultiPoint, m, c.identifier, c.indexes, c.f.plain.CreateMultiPointFrom))
}

func (c cloner) VisitMultiLineString(m geometry.MultiLineString) (geometry.Geometry, error) {
	return widen(clone(c.f, geometry.KindMultiLineString, m, c.identifier, c.indexes, c.f.plain.CreateMultiLineStringFrom))
}

func (c cloner) VisitMultiPolygon(m geometry.MultiPolygon) (geometry.Geometry, error) {
	return widen(clone(c.f, geometry.KindMultiPolygon, m, c.identifier, c.indexes, c.f.plain.CreateMultiPolygonFrom))
}

func (c cloner) VisitGeometryCollection(g geometry.GeometryCollection) (geometry.Geometry, error) {
	return widen(clone(c.f, geometry.KindGeometryCollection, g, c.identifier, c.indexes, c.f.plain.CreateGeometryCollectionFrom))
}
