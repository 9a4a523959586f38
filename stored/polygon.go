package stored

import (
	geometry "github.com/tingold/orb-geometry"
)

// polygon serves Polygon and Triangle nodes. The shell is child 0 and hole
// i is child i+1.
type polygon struct {
	base
}

func (p *polygon) surface() geometry.Polygon {
	return viewAs[geometry.Polygon](&p.base)
}

func (p *polygon) ring(i int) *ring {
	return &ring{curve: curve{base: p.child(geometry.KindLinearRing, i), fixed: p.kind == geometry.KindTriangle}}
}

// Shell returns a handle on child 0. It is live like the shell of an
// in-memory polygon.
func (p *polygon) Shell() geometry.LinearRing { return p.ring(0) }

func (p *polygon) holeCount() (int, error) {
	n, err := p.count()
	if err != nil || n == 0 {
		return 0, err
	}
	return n - 1, nil
}

func (p *polygon) HoleCount() int {
	n, err := p.holeCount()
	if err != nil {
		p.fail(err)
	}
	return n
}

func (p *polygon) Hole(i int) (geometry.LinearRing, error) {
	n, err := p.holeCount()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= n {
		return nil, geometry.ArgumentOutOfRange("hole index", i, n)
	}
	return p.ring(i + 1), nil
}

func (p *polygon) Holes() []geometry.LinearRing {
	n := p.HoleCount()
	holes := make([]geometry.LinearRing, n)
	for i := range holes {
		holes[i] = p.ring(i + 1)
	}
	return holes
}

func (p *polygon) AddHole(hole geometry.LinearRing) error {
	v, err := load[geometry.Polygon](&p.base)
	if err != nil {
		return err
	}
	if err := v.AddHole(hole); err != nil {
		return err
	}
	return p.appendHole(v)
}

func (p *polygon) AddHoleCoordinates(cs []geometry.Coordinate) error {
	v, err := load[geometry.Polygon](&p.base)
	if err != nil {
		return err
	}
	if err := v.AddHoleCoordinates(cs); err != nil {
		return err
	}
	return p.appendHole(v)
}

// appendHole writes the last hole of v, already snapped and closed by the
// view, after the existing rings.
func (p *polygon) appendHole(v geometry.Polygon) error {
	hole, err := v.Hole(v.HoleCount() - 1)
	if err != nil {
		return err
	}
	n, err := p.count()
	if err != nil {
		return err
	}
	w := nodeWriter{driver: p.factory.driver, identifier: p.identifier, indexes: p.indexes}
	if n == 0 {
		if _, err := w.child(0).VisitLinearRing(v.Shell()); err != nil {
			return err
		}
		n = 1
	}
	_, err = w.child(n).VisitLinearRing(hole)
	return err
}

// RemoveHole removes hole when it is a handle on one of the holes of p.
func (p *polygon) RemoveHole(hole geometry.LinearRing) (bool, error) {
	v, err := load[geometry.Polygon](&p.base)
	if err != nil {
		return false, err
	}
	if _, err := v.RemoveHole(hole); err != nil {
		return false, err
	}
	i, ok := p.childIndex(hole)
	if !ok || i == 0 || i > v.HoleCount() {
		return false, nil
	}
	return true, p.factory.driver.DeleteGeometry(p.identifier, appendIndex(p.indexes, i)...)
}

func (p *polygon) RemoveHoleAt(i int) error {
	v, err := load[geometry.Polygon](&p.base)
	if err != nil {
		return err
	}
	if err := v.RemoveHoleAt(i); err != nil {
		return err
	}
	return p.factory.driver.DeleteGeometry(p.identifier, appendIndex(p.indexes, i+1)...)
}

func (p *polygon) ClearHoles() error {
	v, err := load[geometry.Polygon](&p.base)
	if err != nil {
		return err
	}
	n := v.HoleCount()
	if err := v.ClearHoles(); err != nil {
		return err
	}
	for i := n; i >= 1; i-- {
		if err := p.factory.driver.DeleteGeometry(p.identifier, appendIndex(p.indexes, i)...); err != nil {
			return err
		}
	}
	return nil
}

func (p *polygon) Area() float64 { return p.surface().Area() }
func (p *polygon) Perimeter() float64 { return p.surface().Perimeter() }
func (p *polygon) IsConvex() bool { return p.surface().IsConvex() }
func (p *polygon) IsWhole() bool { return p.surface().IsWhole() }
