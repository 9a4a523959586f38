// Package tree is the document model shared by the drivers: a reference
// system, a tree of geometry nodes addressed by index paths, attributes and
// collection members.
package tree

import (
	"encoding/json"
	"math"

	"github.com/cockroachdb/errors"

	geometry "github.com/tingold/orb-geometry"
)

// Node is one geometry in a document. Points, line strings, lines and
// rings hold coordinates; polygons, triangles and collections hold
// children.
type Node struct {
	Kind        geometry.Kind         `json:"kind"`
	Coordinates []geometry.Coordinate `json:"-"`
	Children    []*Node               `json:"children,omitempty"`
}

// HoldsCoordinates reports whether nodes of kind k store coordinates.
func HoldsCoordinates(k geometry.Kind) bool {
	switch k {
	case geometry.KindPoint, geometry.KindLineString, geometry.KindLine, geometry.KindLinearRing:
		return true
	}
	return false
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind}
	if n.Coordinates != nil {
		c.Coordinates = append([]geometry.Coordinate(nil), n.Coordinates...)
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

type wireNode struct {
	Kind        geometry.Kind `json:"kind"`
	Coordinates [][3]*float64 `json:"coordinates,omitempty"`
	Children    []*Node       `json:"children,omitempty"`
}

// MarshalJSON writes coordinates as [x, y, z] triples; undefined
// components become null.
func (n *Node) MarshalJSON() ([]byte, error) {
	w := wireNode{Kind: n.Kind, Children: n.Children}
	if len(n.Coordinates) > 0 {
		w.Coordinates = make([][3]*float64, len(n.Coordinates))
		for i, c := range n.Coordinates {
			w.Coordinates[i] = [3]*float64{component(c.X), component(c.Y), component(c.Z)}
		}
	}
	return json.Marshal(w)
}

func (n *Node) UnmarshalJSON(b []byte) error {
	var w wireNode
	if err := json.Unmarshal(b, &w); err != nil {
		return errors.Wrap(err, "decoding geometry node")
	}
	n.Kind = w.Kind
	n.Children = w.Children
	n.Coordinates = nil
	if len(w.Coordinates) > 0 {
		n.Coordinates = make([]geometry.Coordinate, len(w.Coordinates))
		for i, t := range w.Coordinates {
			n.Coordinates[i] = geometry.NewCoordinate(value(t[0]), value(t[1]), value(t[2]))
		}
	}
	return nil
}

func component(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func value(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}
