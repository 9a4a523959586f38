package geometry

// base carries the factory shared by the in-memory variants.
type base struct {
	factory *GeometryFactory
}

func (b base) Factory() Factory { return b.factory }
func (b base) PrecisionModel() *PrecisionModel { return b.factory.PrecisionModel() }
func (b base) ReferenceSystem() *ReferenceSystem { return b.factory.ReferenceSystem() }
func (b base) makePrecise(c Coordinate) Coordinate { return b.factory.precision.MakePreciseCoordinate(c) }

func (b base) spatialDimension(coordinateDimension int) int {
	if rs := b.factory.rs; rs != nil && rs.Dimension > 0 {
		return rs.Dimension
	}
	return coordinateDimension
}

type point struct {
	base
	c Coordinate
}

func (p *point) Kind() Kind { return KindPoint }
func (p *point) Dimension() Dimension { return DimensionPoint }
func (p *point) CoordinateDimension() int { return coordinateDimension([]Coordinate{p.c}) }
func (p *point) SpatialDimension() int { return p.spatialDimension(p.CoordinateDimension()) }
func (p *point) Envelope() Envelope { return EnvelopeOf(p.c) }
func (p *point) Boundary() Geometry { return nil }
func (p *point) Centroid() Coordinate { return p.c }
func (p *point) IsEmpty() bool { return p.c.IsEmpty() }
func (p *point) IsSimple() bool { return true }
func (p *point) IsValid() bool { return p.c.IsValid() }
func (p *point) String() string { return Text(p) }
func (p *point) Coordinate() Coordinate { return p.c }
func (p *point) X() float64 { return p.c.X }
func (p *point) Y() float64 { return p.c.Y }
func (p *point) Z() float64 { return p.c.Z }

func (p *point) SetCoordinate(c Coordinate) error {
	p.c = p.makePrecise(c)
	return nil
}
