package stored

import (
	"sync"

	"github.com/sirupsen/logrus"

	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
)

// base is the state shared by every handle: where the node lives and the
// factory whose precision model and reference system apply to it.
type base struct {
	factory    *Factory
	kind       geometry.Kind
	identifier string
	indexes    []int
	sticky     *stickyErr
}

// stickyErr keeps the last read failure of a handle. Reads may run
// concurrently, so it is guarded.
type stickyErr struct {
	mu  sync.Mutex
	err error
}

func (s *stickyErr) set(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *stickyErr) get() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func newBase(f *Factory, k geometry.Kind, identifier string, indexes []int) base {
	return base{factory: f, kind: k, identifier: identifier, indexes: indexes, sticky: &stickyErr{}}
}

func (b *base) Kind() geometry.Kind { return b.kind }
func (b *base) Factory() geometry.Factory { return b.factory }
func (b *base) PrecisionModel() *geometry.PrecisionModel { return b.factory.PrecisionModel() }
func (b *base) ReferenceSystem() *geometry.ReferenceSystem { return b.factory.ReferenceSystem() }
func (b *base) Identifier() string { return b.identifier }
func (b *base) Indexes() []int { return append([]int(nil), b.indexes...) }
func (b *base) Driver() driver.GeometryDriver { return b.factory.driver }
func (b *base) Err() error { return b.sticky.get() }
func (b *base) Dimension() geometry.Dimension { return b.view().Dimension() }
func (b *base) CoordinateDimension() int { return b.view().CoordinateDimension() }
func (b *base) SpatialDimension() int { return b.view().SpatialDimension() }
func (b *base) Envelope() geometry.Envelope { return b.view().Envelope() }
func (b *base) Boundary() geometry.Geometry { return b.view().Boundary() }
func (b *base) Centroid() geometry.Coordinate { return b.view().Centroid() }
func (b *base) IsEmpty() bool { return b.view().IsEmpty() }
func (b *base) IsSimple() bool { return b.view().IsSimple() }
func (b *base) IsValid() bool { return b.view().IsValid() }
func (b *base) String() string { return b.view().String() }

func (b *base) fields() logrus.Fields {
	return logrus.Fields{"identifier": b.identifier, "indexes": b.indexes, "kind": b.kind}
}

func (b *base) fail(err error) {
	b.sticky.set(err)
	b.factory.log.WithError(err).WithFields(b.fields()).Debug("stored: read failed")
}

// view materialises the node. On failure the error is kept for Err and the
// empty geometry of the handle kind is returned.
func (b *base) view() geometry.Geometry {
	g, err := read(b.factory.driver, b.factory.plain, b.identifier, b.indexes)
	if err != nil {
		b.fail(err)
		return b.empty()
	}
	return g
}

// empty returns the zero answer for the kind. Lines and triangles have no
// empty form and fall back to a line string and a polygon.
func (b *base) empty() geometry.Geometry {
	k := b.kind
	switch k {
	case geometry.KindLine:
		k = geometry.KindLineString
	case geometry.KindTriangle:
		k = geometry.KindPolygon
	}
	g, _ := geometry.Empty(b.factory.plain, k)
	return g
}

// load materialises the node as T without touching Err.
func load[T geometry.Geometry](b *base) (T, error) {
	var zero T
	g, err := read(b.factory.driver, b.factory.plain, b.identifier, b.indexes)
	if err != nil {
		return zero, err
	}
	t, ok := g.(T)
	if !ok {
		return zero, geometry.UnsupportedType(g)
	}
	return t, nil
}

func viewAs[T geometry.Geometry](b *base) T {
	t, err := load[T](b)
	if err != nil {
		b.fail(err)
		t, _ = b.empty().(T)
	}
	return t
}

// childIndex returns the position of g below b when g is a handle on a
// direct child of the node of b.
func (b *base) childIndex(g geometry.Geometry) (int, bool) {
	ref, ok := b.factory.sourceOf(g).(storedRef)
	if !ok || ref.identifier != b.identifier || len(ref.indexes) != len(b.indexes)+1 {
		return 0, false
	}
	for i, idx := range b.indexes {
		if ref.indexes[i] != idx {
			return 0, false
		}
	}
	return ref.indexes[len(b.indexes)], true
}

func (b *base) count() (int, error) {
	return b.factory.driver.ReadGeometryCount(b.identifier, b.indexes...)
}

func (b *base) child(k geometry.Kind, i int) base {
	return newBase(b.factory, k, b.identifier, appendIndex(b.indexes, i))
}

type point struct {
	base
}

func (p *point) Coordinate() geometry.Coordinate {
	return viewAs[geometry.Point](&p.base).Coordinate()
}

func (p *point) X() float64 { return p.Coordinate().X }
func (p *point) Y() float64 { return p.Coordinate().Y }
func (p *point) Z() float64 { return p.Coordinate().Z }

func (p *point) SetCoordinate(c geometry.Coordinate) error {
	c = p.PrecisionModel().MakePreciseCoordinate(c)
	var cs []geometry.Coordinate
	if !c.IsEmpty() {
		cs = []geometry.Coordinate{c}
	}
	return p.factory.driver.UpdateCoordinates(p.identifier, cs, p.indexes...)
}

// curve serves LineString and Line nodes. Mutators apply the change to an
// in-memory view, which carries the snapping and fixed size rules, and
// write the resulting coordinates back.
type curve struct {
	base
	// fixed is set on the shell of a triangle, whose node alone does not
	// tell that its size is fixed.
	fixed bool
}

func (c *curve) line() geometry.LineString {
	return viewAs[geometry.LineString](&c.base)
}

func (c *curve) Count() int { return c.line().Count() }
func (c *curve) Coordinates() []geometry.Coordinate { return c.line().Coordinates() }
func (c *curve) StartCoordinate() geometry.Coordinate { return c.line().StartCoordinate() }
func (c *curve) EndCoordinate() geometry.Coordinate { return c.line().EndCoordinate() }
func (c *curve) IndexOf(co geometry.Coordinate) int { return c.line().IndexOf(co) }
func (c *curve) IsClosed() bool { return c.line().IsClosed() }
func (c *curve) IsRing() bool { return c.line().IsRing() }
func (c *curve) Length() float64 { return c.line().Length() }

func (c *curve) Coordinate(i int) (geometry.Coordinate, error) {
	l, err := load[geometry.LineString](&c.base)
	if err != nil {
		return geometry.Undefined, err
	}
	return l.Coordinate(i)
}

func (c *curve) resize(op string, fn func(geometry.LineString) error) error {
	if c.fixed {
		return geometry.UnsupportedOperation(op, c.kind)
	}
	return c.mutate(fn)
}

func (c *curve) mutate(fn func(geometry.LineString) error) error {
	l, err := load[geometry.LineString](&c.base)
	if err != nil {
		return err
	}
	if err := fn(l); err != nil {
		return err
	}
	return c.factory.driver.UpdateCoordinates(c.identifier, l.Coordinates(), c.indexes...)
}

func (c *curve) Add(co geometry.Coordinate) error {
	return c.resize("Add", func(l geometry.LineString) error { return l.Add(co) })
}

func (c *curve) Insert(i int, co geometry.Coordinate) error {
	return c.resize("Insert", func(l geometry.LineString) error { return l.Insert(i, co) })
}

func (c *curve) SetCoordinate(i int, co geometry.Coordinate) error {
	return c.mutate(func(l geometry.LineString) error { return l.SetCoordinate(i, co) })
}

func (c *curve) Remove(co geometry.Coordinate) (bool, error) {
	var removed bool
	err := c.resize("Remove", func(l geometry.LineString) (err error) {
		removed, err = l.Remove(co)
		return err
	})
	return removed, err
}

func (c *curve) RemoveAt(i int) error {
	return c.resize("RemoveAt", func(l geometry.LineString) error { return l.RemoveAt(i) })
}

func (c *curve) Clear() error {
	return c.resize("Clear", func(l geometry.LineString) error { return l.Clear() })
}

// ring is a curve whose view is a linear ring, so every mutator keeps the
// ring closed.
type ring struct {
	curve
}

func (r *ring) Area() float64 { return viewAs[geometry.LinearRing](&r.base).Area() }
func (r *ring) Orientation() geometry.Orientation {
	return viewAs[geometry.LinearRing](&r.base).Orientation()
}
func (r *ring) IsConvex() bool { return viewAs[geometry.LinearRing](&r.base).IsConvex() }
