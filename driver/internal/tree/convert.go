package tree

import (
	geometry "github.com/tingold/orb-geometry"
)

// FromGeometry converts g into a node tree.
func FromGeometry(g geometry.Geometry) (*Node, error) {
	return geometry.Visit[*Node](g, nodeBuilder{})
}

type nodeBuilder struct{}

func (nodeBuilder) VisitPoint(p geometry.Point) (*Node, error) {
	n := &Node{Kind: geometry.KindPoint}
	if !p.IsEmpty() {
		n.Coordinates = []geometry.Coordinate{p.Coordinate()}
	}
	return n, nil
}

func (nodeBuilder) VisitLineString(l geometry.LineString) (*Node, error) {
	return &Node{Kind: geometry.KindLineString, Coordinates: l.Coordinates()}, nil
}

func (nodeBuilder) VisitLine(l geometry.LineString) (*Node, error) {
	return &Node{Kind: geometry.KindLine, Coordinates: l.Coordinates()}, nil
}

func (nodeBuilder) VisitLinearRing(r geometry.LinearRing) (*Node, error) {
	return &Node{Kind: geometry.KindLinearRing, Coordinates: r.Coordinates()}, nil
}

func (b nodeBuilder) surface(k geometry.Kind, p geometry.Polygon) *Node {
	n := &Node{Kind: k, Children: make([]*Node, 0, 1+p.HoleCount())}
	n.Children = append(n.Children, &Node{Kind: geometry.KindLinearRing, Coordinates: p.Shell().Coordinates()})
	for _, h := range p.Holes() {
		n.Children = append(n.Children, &Node{Kind: geometry.KindLinearRing, Coordinates: h.Coordinates()})
	}
	return n
}

func (b nodeBuilder) VisitPolygon(p geometry.Polygon) (*Node, error) {
	return b.surface(geometry.KindPolygon, p), nil
}

func (b nodeBuilder) VisitTriangle(p geometry.Polygon) (*Node, error) {
	return b.surface(geometry.KindTriangle, p), nil
}

func members[T geometry.Geometry](k geometry.Kind, gs []T) (*Node, error) {
	n := &Node{Kind: k, Children: make([]*Node, len(gs))}
	for i, g := range gs {
		child, err := FromGeometry(g)
		if err != nil {
			return nil, err
		}
		n.Children[i] = child
	}
	return n, nil
}

func (nodeBuilder) VisitMultiPoint(m geometry.MultiPoint) (*Node, error) {
	return members(geometry.KindMultiPoint, m.Geometries())
}

func (nodeBuilder) VisitMultiLineString(m geometry.MultiLineString) (*Node, error) {
	return members(geometry.KindMultiLineString, m.Geometries())
}

func (nodeBuilder) VisitMultiPolygon(m geometry.MultiPolygon) (*Node, error) {
	return members(geometry.KindMultiPolygon, m.Geometries())
}

func (nodeBuilder) VisitGeometryCollection(c geometry.GeometryCollection) (*Node, error) {
	return members(geometry.KindGeometryCollection, c.Geometries())
}

// Build creates the geometry a node tree describes through f.
func Build(f geometry.Factory, n *Node) (geometry.Geometry, error) {
	if f == nil {
		return nil, geometry.ArgumentNull("factory")
	}
	if n == nil {
		return nil, geometry.ArgumentNull("node")
	}

	switch n.Kind {
	case geometry.KindPoint:
		c := geometry.Undefined
		if len(n.Coordinates) > 0 {
			c = n.Coordinates[0]
		}
		return asGeometry(f.CreatePoint(c))
	case geometry.KindLineString:
		return asGeometry(f.CreateLineString(n.Coordinates))
	case geometry.KindLine:
		if len(n.Coordinates) != 2 {
			return nil, geometry.InvalidArgument("a line needs 2 coordinates, got %d", len(n.Coordinates))
		}
		return asGeometry(f.CreateLine(n.Coordinates[0], n.Coordinates[1]))
	case geometry.KindLinearRing:
		return asGeometry(f.CreateLinearRing(n.Coordinates))
	case geometry.KindPolygon:
		if len(n.Children) == 0 {
			return asGeometry(f.CreatePolygon(nil))
		}
		holes := make([][]geometry.Coordinate, 0, len(n.Children)-1)
		for _, h := range n.Children[1:] {
			holes = append(holes, h.Coordinates)
		}
		return asGeometry(f.CreatePolygon(n.Children[0].Coordinates, holes...))
	case geometry.KindTriangle:
		if len(n.Children) != 1 || len(n.Children[0].Coordinates) < 3 {
			return nil, geometry.InvalidArgument("a triangle needs a shell of 3 vertices")
		}
		cs := n.Children[0].Coordinates
		return asGeometry(f.CreateTriangle(cs[0], cs[1], cs[2]))
	case geometry.KindMultiPoint:
		ps, err := buildAll[geometry.Point](f, n.Children)
		if err != nil {
			return nil, err
		}
		return asGeometry(f.CreateMultiPoint(ps))
	case geometry.KindMultiLineString:
		ls, err := buildAll[geometry.LineString](f, n.Children)
		if err != nil {
			return nil, err
		}
		return asGeometry(f.CreateMultiLineString(ls))
	case geometry.KindMultiPolygon:
		ps, err := buildAll[geometry.Polygon](f, n.Children)
		if err != nil {
			return nil, err
		}
		return asGeometry(f.CreateMultiPolygon(ps))
	case geometry.KindGeometryCollection:
		gs, err := buildAll[geometry.Geometry](f, n.Children)
		if err != nil {
			return nil, err
		}
		return asGeometry(f.CreateGeometryCollection(gs))
	}
	return nil, geometry.InvalidArgument("unknown geometry kind %v", n.Kind)
}

func buildAll[T geometry.Geometry](f geometry.Factory, nodes []*Node) ([]T, error) {
	out := make([]T, len(nodes))
	for i, child := range nodes {
		g, err := Build(f, child)
		if err != nil {
			return nil, err
		}
		t, ok := g.(T)
		if !ok {
			return nil, geometry.UnsupportedType(g)
		}
		out[i] = t
	}
	return out, nil
}

func asGeometry[T geometry.Geometry](g T, err error) (geometry.Geometry, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}
