package geometry

// polygon implements Polygon for the kinds Polygon and Triangle. A
// triangle has a fixed shell of three distinct vertices and no holes.
type polygon struct {
	base
	kind  Kind
	shell *ring
	holes []*ring
}

func (p *polygon) Kind() Kind { return p.kind }
func (p *polygon) Dimension() Dimension { return DimensionSurface }
func (p *polygon) String() string { return Text(p) }
func (p *polygon) IsEmpty() bool { return p.shell.IsEmpty() }
func (p *polygon) IsSimple() bool { return true }
func (p *polygon) IsWhole() bool { return len(p.holes) == 0 }
func (p *polygon) Shell() LinearRing { return p.shell }
func (p *polygon) HoleCount() int { return len(p.holes) }
func (p *polygon) Envelope() Envelope { return p.shell.Envelope() }

func (p *polygon) CoordinateDimension() int {
	d := p.shell.CoordinateDimension()
	for _, h := range p.holes {
		if hd := h.CoordinateDimension(); hd > d {
			d = hd
		}
	}
	return d
}

func (p *polygon) SpatialDimension() int { return p.spatialDimension(p.CoordinateDimension()) }

func (p *polygon) Hole(i int) (LinearRing, error) {
	if i < 0 || i >= len(p.holes) {
		return nil, ArgumentOutOfRange("hole index", i, len(p.holes))
	}
	return p.holes[i], nil
}

func (p *polygon) Holes() []LinearRing {
	out := make([]LinearRing, len(p.holes))
	for i, h := range p.holes {
		out[i] = h
	}
	return out
}

func (p *polygon) holeCoordinates() [][]Coordinate {
	out := make([][]Coordinate, len(p.holes))
	for i, h := range p.holes {
		out[i] = h.coords
	}
	return out
}

// AddHole appends a copy of hole, snapped to the polygon's precision.
func (p *polygon) AddHole(hole LinearRing) error {
	if hole == nil {
		return ArgumentNull("hole")
	}
	return p.AddHoleCoordinates(hole.Coordinates())
}

func (p *polygon) AddHoleCoordinates(cs []Coordinate) error {
	if p.kind == KindTriangle {
		return UnsupportedOperation("AddHole", p.kind)
	}
	p.holes = append(p.holes, newRing(p.factory, cs))
	return nil
}

// RemoveHole removes the hole identified by h, as returned by Hole.
func (p *polygon) RemoveHole(h LinearRing) (bool, error) {
	if p.kind == KindTriangle {
		return false, UnsupportedOperation("RemoveHole", p.kind)
	}
	if h == nil {
		return false, ArgumentNull("hole")
	}
	for i, o := range p.holes {
		if LinearRing(o) == h {
			return true, p.RemoveHoleAt(i)
		}
	}
	return false, nil
}

func (p *polygon) RemoveHoleAt(i int) error {
	if p.kind == KindTriangle {
		return UnsupportedOperation("RemoveHoleAt", p.kind)
	}
	if i < 0 || i >= len(p.holes) {
		return ArgumentOutOfRange("hole index", i, len(p.holes))
	}
	p.holes = append(p.holes[:i], p.holes[i+1:]...)
	return nil
}

func (p *polygon) ClearHoles() error {
	if p.kind == KindTriangle {
		return UnsupportedOperation("ClearHoles", p.kind)
	}
	p.holes = nil
	return nil
}

func (p *polygon) Area() float64 {
	return PolygonArea(p.shell.coords, p.holeCoordinates())
}

func (p *polygon) Perimeter() float64 {
	l := p.shell.Length()
	for _, h := range p.holes {
		l += h.Length()
	}
	return l
}

func (p *polygon) IsConvex() bool {
	return p.IsWhole() && p.shell.IsConvex()
}

func (p *polygon) Centroid() Coordinate {
	return PolygonCentroid(p.shell.coords, p.holeCoordinates())
}

func (p *polygon) IsValid() bool {
	if p.kind == KindTriangle {
		cs := p.shell.coords
		return len(cs) == 4 && len(p.holes) == 0 && IsValidTriangle(cs[0], cs[1], cs[2])
	}
	return ValidatePolygon(p.shell.coords, p.holeCoordinates()) == nil
}

// Boundary returns the shell followed by the holes as a MultiLineString.
func (p *polygon) Boundary() Geometry {
	if p.IsEmpty() {
		return nil
	}
	lines := make([]LineString, 0, 1+len(p.holes))
	for _, r := range append([]*ring{p.shell}, p.holes...) {
		l, err := p.factory.CreateLineString(r.coords)
		if err != nil {
			return nil
		}
		lines = append(lines, l)
	}
	mls, err := p.factory.CreateMultiLineString(lines)
	if err != nil {
		return nil
	}
	return mls
}
