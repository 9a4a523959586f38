package geometry

// list is the insertion ordered storage shared by the collection variants.
// Members created by a different factory are re-created through the
// collection's factory when they are added.
type list[T Geometry] struct {
	base
	kind  Kind
	items []T
	adopt func(T) (T, error)
}

func newList[T Geometry](f *GeometryFactory, kind Kind, adopt func(T) (T, error)) *list[T] {
	return &list[T]{base: base{factory: f}, kind: kind, adopt: adopt}
}

func (c *list[T]) Kind() Kind { return c.kind }
func (c *list[T]) Count() int { return len(c.items) }

func (c *list[T]) At(i int) (T, error) {
	if i < 0 || i >= len(c.items) {
		var zero T
		return zero, ArgumentOutOfRange("index", i, len(c.items))
	}
	return c.items[i], nil
}

func (c *list[T]) Geometries() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *list[T]) Add(g T) error {
	return c.Insert(len(c.items), g)
}

func (c *list[T]) Insert(i int, g T) error {
	if i < 0 || i > len(c.items) {
		return ArgumentOutOfRange("index", i, len(c.items)+1)
	}
	if Geometry(g) == nil {
		return ArgumentNull("geometry")
	}
	g, err := c.adopt(g)
	if err != nil {
		return err
	}
	c.items = append(c.items, g)
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = g
	return nil
}

// Remove removes the first member identical to g.
func (c *list[T]) Remove(g T) (bool, error) {
	if Geometry(g) == nil {
		return false, ArgumentNull("geometry")
	}
	for i, o := range c.items {
		if Geometry(o) == Geometry(g) {
			return true, c.RemoveAt(i)
		}
	}
	return false, nil
}

func (c *list[T]) RemoveAt(i int) error {
	if i < 0 || i >= len(c.items) {
		return ArgumentOutOfRange("index", i, len(c.items))
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

func (c *list[T]) Clear() error {
	c.items = nil
	return nil
}

func (c *list[T]) IsEmpty() bool {
	for _, g := range c.items {
		if !g.IsEmpty() {
			return false
		}
	}
	return true
}

func (c *list[T]) IsValid() bool {
	for _, g := range c.items {
		if !g.IsValid() {
			return false
		}
	}
	return true
}

func (c *list[T]) Envelope() Envelope {
	e := UndefinedEnvelope
	for _, g := range c.items {
		e = e.Expand(g.Envelope())
	}
	return e
}

func (c *list[T]) CoordinateDimension() int {
	d := 2
	for _, g := range c.items {
		if gd := g.CoordinateDimension(); gd > d {
			d = gd
		}
	}
	return d
}

func (c *list[T]) SpatialDimension() int { return c.spatialDimension(c.CoordinateDimension()) }

// Dimension is the largest member dimension.
func (c *list[T]) Dimension() Dimension {
	d := DimensionPoint
	for _, g := range c.items {
		if gd := g.Dimension(); gd > d {
			d = gd
		}
	}
	return d
}

// Centroid weights the members of the highest dimension: points by count,
// curves by length and surfaces by area.
func (c *list[T]) Centroid() Coordinate {
	members := make([]Geometry, 0, len(c.items))
	for _, g := range c.items {
		if !g.IsEmpty() {
			members = append(members, g)
		}
	}
	return centroidOf(members)
}

func (c *list[T]) IsSimple() bool {
	for _, g := range c.items {
		if !g.IsSimple() {
			return false
		}
	}
	return true
}

func (c *list[T]) Boundary() Geometry { return nil }

func centroidOf(members []Geometry) Coordinate {
	if len(members) == 0 {
		return Undefined
	}
	top := DimensionPoint
	for _, g := range members {
		if g.Dimension() > top {
			top = g.Dimension()
		}
	}

	var (
		sum   Coordinate
		total float64
	)
	for _, g := range members {
		if g.Dimension() != top {
			continue
		}
		w := 1.0
		switch m := g.(type) {
		case LineString:
			w = m.Length()
		case MultiLineString:
			w = m.Length()
		case Polygon:
			w = m.Area()
		case MultiPolygon:
			w = m.Area()
		case Collection[Point]:
			w = float64(m.Count())
		}
		c := g.Centroid()
		if c.IsEmpty() || w == 0 {
			continue
		}
		sum = sum.Add(c.Scale(w))
		total += w
	}
	if total == 0 {
		cs := make([]Coordinate, 0, len(members))
		for _, g := range members {
			cs = append(cs, g.Centroid())
		}
		return PointsCentroid(cs)
	}
	return sum.Scale(1 / total)
}

type multiPoint struct {
	*list[Point]
}

// IsSimple reports whether no two points share a position.
func (m *multiPoint) IsSimple() bool {
	seen := make(map[coordinateKey]struct{}, len(m.items))
	for _, p := range m.items {
		k := keyOf(p.Coordinate())
		if _, ok := seen[k]; ok {
			return false
		}
		seen[k] = struct{}{}
	}
	return true
}

func (m *multiPoint) Dimension() Dimension { return DimensionPoint }
func (m *multiPoint) String() string { return Text(m) }

type multiLineString struct {
	*list[LineString]
}

func (m *multiLineString) Dimension() Dimension { return DimensionCurve }
func (m *multiLineString) String() string { return Text(m) }

func (m *multiLineString) Length() float64 {
	var l float64
	for _, g := range m.items {
		l += g.Length()
	}
	return l
}

// IsClosed reports whether every member is closed.
func (m *multiLineString) IsClosed() bool {
	for _, g := range m.items {
		if !g.IsClosed() {
			return false
		}
	}
	return true
}

// Boundary applies the mod 2 rule: endpoints shared by an even number of
// open members are interior.
func (m *multiLineString) Boundary() Geometry {
	counts := make(map[coordinateKey]int)
	var order []Coordinate
	for _, g := range m.items {
		if g.IsEmpty() || g.IsClosed() {
			continue
		}
		for _, c := range []Coordinate{g.StartCoordinate(), g.EndCoordinate()} {
			k := keyOf(c)
			if counts[k] == 0 {
				order = append(order, c)
			}
			counts[k]++
		}
	}
	var ends []Coordinate
	for _, c := range order {
		if counts[keyOf(c)]%2 == 1 {
			ends = append(ends, c)
		}
	}
	if len(ends) == 0 {
		return nil
	}
	mp, err := m.factory.CreateMultiPointFromCoordinates(ends)
	if err != nil {
		return nil
	}
	return mp
}

type multiPolygon struct {
	*list[Polygon]
}

func (m *multiPolygon) Dimension() Dimension { return DimensionSurface }
func (m *multiPolygon) String() string { return Text(m) }

func (m *multiPolygon) Area() float64 {
	var a float64
	for _, g := range m.items {
		a += g.Area()
	}
	return a
}

// Boundary collects the rings of every member.
func (m *multiPolygon) Boundary() Geometry {
	var lines []LineString
	for _, p := range m.items {
		b, ok := p.Boundary().(MultiLineString)
		if !ok {
			continue
		}
		lines = append(lines, b.Geometries()...)
	}
	if len(lines) == 0 {
		return nil
	}
	mls, err := m.factory.CreateMultiLineString(lines)
	if err != nil {
		return nil
	}
	return mls
}

type geometryCollection struct {
	*list[Geometry]
}

func (g *geometryCollection) String() string { return Text(g) }

// Boundary collects the boundaries of the members that have one.
func (g *geometryCollection) Boundary() Geometry {
	var parts []Geometry
	for _, m := range g.items {
		if b := m.Boundary(); b != nil {
			parts = append(parts, b)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	gc, err := g.factory.CreateGeometryCollection(parts)
	if err != nil {
		return nil
	}
	return gc
}
