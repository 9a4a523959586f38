package stored

import (
	geometry "github.com/tingold/orb-geometry"
)

// list serves the collection kinds. Member i is child i of the node.
type list[T geometry.Geometry] struct {
	base
}

func (l *list[T]) Count() int {
	n, err := l.count()
	if err != nil {
		l.fail(err)
	}
	return n
}

func (l *list[T]) member(i int) (T, error) {
	var zero T
	g, err := l.factory.GeometryAt(l.identifier, appendIndex(l.indexes, i)...)
	if err != nil {
		return zero, err
	}
	t, ok := g.(T)
	if !ok {
		return zero, geometry.UnsupportedType(g)
	}
	return t, nil
}

func (l *list[T]) At(i int) (T, error) {
	var zero T
	n, err := l.count()
	if err != nil {
		return zero, err
	}
	if i < 0 || i >= n {
		return zero, geometry.ArgumentOutOfRange("index", i, n)
	}
	return l.member(i)
}

func (l *list[T]) Geometries() []T {
	n := l.Count()
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		t, err := l.member(i)
		if err != nil {
			l.fail(err)
			continue
		}
		out = append(out, t)
	}
	return out
}

func (l *list[T]) Add(g T) error {
	if geometry.Geometry(g) == nil {
		return geometry.ArgumentNull("geometry")
	}
	n, err := l.count()
	if err != nil {
		return err
	}
	return l.insert(n, g)
}

func (l *list[T]) Insert(i int, g T) error {
	n, err := l.count()
	if err != nil {
		return err
	}
	if i < 0 || i > n {
		return geometry.ArgumentOutOfRange("index", i, n+1)
	}
	if geometry.Geometry(g) == nil {
		return geometry.ArgumentNull("geometry")
	}
	return l.insert(i, g)
}

// insert copies g, snapped to the precision of the factory, as child i.
func (l *list[T]) insert(i int, g T) error {
	c, err := l.factory.plain.CreateGeometry(g)
	if err != nil {
		return err
	}
	return l.factory.put(l.identifier, appendIndex(l.indexes, i), c)
}

// Remove removes g when it is a handle on one of the members.
func (l *list[T]) Remove(g T) (bool, error) {
	if geometry.Geometry(g) == nil {
		return false, geometry.ArgumentNull("geometry")
	}
	i, ok := l.childIndex(g)
	if !ok {
		return false, nil
	}
	n, err := l.count()
	if err != nil || i >= n {
		return false, err
	}
	return true, l.factory.driver.DeleteGeometry(l.identifier, appendIndex(l.indexes, i)...)
}

func (l *list[T]) RemoveAt(i int) error {
	n, err := l.count()
	if err != nil {
		return err
	}
	if i < 0 || i >= n {
		return geometry.ArgumentOutOfRange("index", i, n)
	}
	return l.factory.driver.DeleteGeometry(l.identifier, appendIndex(l.indexes, i)...)
}

func (l *list[T]) Clear() error {
	n, err := l.count()
	if err != nil {
		return err
	}
	for i := n - 1; i >= 0; i-- {
		if err := l.factory.driver.DeleteGeometry(l.identifier, appendIndex(l.indexes, i)...); err != nil {
			return err
		}
	}
	return nil
}

type multiPoint struct {
	list[geometry.Point]
}

type multiLineString struct {
	list[geometry.LineString]
}

func (m *multiLineString) Length() float64 {
	return viewAs[geometry.MultiLineString](&m.base).Length()
}

func (m *multiLineString) IsClosed() bool {
	return viewAs[geometry.MultiLineString](&m.base).IsClosed()
}

type multiPolygon struct {
	list[geometry.Polygon]
}

func (m *multiPolygon) Area() float64 {
	return viewAs[geometry.MultiPolygon](&m.base).Area()
}

type geometryCollection struct {
	list[geometry.Geometry]
}
