package tree

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
)

// Document is everything a driver stores under one identifier.
type Document struct {
	ReferenceSystem *geometry.ReferenceSystem `json:"crs,omitempty"`
	Root            *Node                     `json:"root,omitempty"`
	Attributes      map[string]any            `json:"attributes,omitempty"`
	Members         []string                  `json:"members,omitempty"`
}

// Decode parses a JSON document.
func Decode(b []byte) (*Document, error) {
	d := &Document{}
	if err := json.Unmarshal(b, d); err != nil {
		return nil, errors.Wrap(err, "decoding document")
	}
	return d, nil
}

// Encode writes d as JSON.
func (d *Document) Encode() ([]byte, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(err, "encoding document")
	}
	return b, nil
}

// Clone returns a deep copy of d. Attribute values are copied shallowly.
func (d *Document) Clone() *Document {
	c := &Document{Root: d.Root.Clone()}
	if d.ReferenceSystem != nil {
		rs := *d.ReferenceSystem
		c.ReferenceSystem = &rs
	}
	if d.Attributes != nil {
		c.Attributes = make(map[string]any, len(d.Attributes))
		for k, v := range d.Attributes {
			c.Attributes[k] = v
		}
	}
	if d.Members != nil {
		c.Members = append([]string(nil), d.Members...)
	}
	return c
}

func pathNotFound(indexes []int) error {
	return errors.Wrapf(driver.ErrPathNotFound, "index path %v", indexes)
}

// Lookup returns the node at the index path.
func (d *Document) Lookup(indexes ...int) (*Node, error) {
	n := d.Root
	if n == nil {
		return nil, pathNotFound(indexes)
	}
	for _, i := range indexes {
		if i < 0 || i >= len(n.Children) {
			return nil, pathNotFound(indexes)
		}
		n = n.Children[i]
	}
	return n, nil
}

// Insert places an empty node of kind k at the index path. The last index
// is the position among the children of the parent, which may equal the
// number of children to append. Without indexes the root is replaced.
func (d *Document) Insert(k geometry.Kind, indexes ...int) error {
	if len(indexes) == 0 {
		d.Root = &Node{Kind: k}
		return nil
	}
	last := len(indexes) - 1
	parent, err := d.Lookup(indexes[:last]...)
	if err != nil {
		return err
	}
	if HoldsCoordinates(parent.Kind) {
		return geometry.UnsupportedOperation("InsertGeometry", parent.Kind)
	}
	pos := indexes[last]
	if pos < 0 || pos > len(parent.Children) {
		return pathNotFound(indexes)
	}
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[pos+1:], parent.Children[pos:])
	parent.Children[pos] = &Node{Kind: k}
	return nil
}

// Delete removes the node at the index path. Without indexes the root is
// removed.
func (d *Document) Delete(indexes ...int) error {
	if len(indexes) == 0 {
		d.Root = nil
		return nil
	}
	last := len(indexes) - 1
	parent, err := d.Lookup(indexes[:last]...)
	if err != nil {
		return err
	}
	pos := indexes[last]
	if pos < 0 || pos >= len(parent.Children) {
		return pathNotFound(indexes)
	}
	parent.Children = append(parent.Children[:pos], parent.Children[pos+1:]...)
	return nil
}

// Count returns the number of children of the node at the index path.
func (d *Document) Count(indexes ...int) (int, error) {
	n, err := d.Lookup(indexes...)
	if err != nil {
		return 0, err
	}
	return len(n.Children), nil
}

// Coordinates returns a copy of the coordinates of the node.
func (d *Document) Coordinates(indexes ...int) ([]geometry.Coordinate, error) {
	n, err := d.Lookup(indexes...)
	if err != nil {
		return nil, err
	}
	return append([]geometry.Coordinate{}, n.Coordinates...), nil
}

// SetCoordinates replaces the coordinates of the node. A point holds at
// most one coordinate, and an undefined coordinate leaves it empty.
func (d *Document) SetCoordinates(cs []geometry.Coordinate, indexes ...int) error {
	n, err := d.Lookup(indexes...)
	if err != nil {
		return err
	}
	if !HoldsCoordinates(n.Kind) {
		return geometry.UnsupportedOperation("UpdateCoordinates", n.Kind)
	}
	if n.Kind == geometry.KindPoint {
		if len(cs) > 1 {
			return geometry.InvalidArgument("a point holds one coordinate, got %d", len(cs))
		}
		if len(cs) == 1 && cs[0].IsEmpty() {
			cs = nil
		}
	}
	n.Coordinates = append([]geometry.Coordinate(nil), cs...)
	return nil
}

// Attribute returns one attribute.
func (d *Document) Attribute(key string) (any, bool) {
	v, ok := d.Attributes[key]
	return v, ok
}

// SetAttribute stores an attribute, allocating the map on first use.
func (d *Document) SetAttribute(key string, v any) {
	if d.Attributes == nil {
		d.Attributes = make(map[string]any)
	}
	d.Attributes[key] = v
}

// DeleteAttribute removes an attribute and reports whether it was present.
func (d *Document) DeleteAttribute(key string) bool {
	_, ok := d.Attributes[key]
	delete(d.Attributes, key)
	return ok
}
