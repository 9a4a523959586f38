// Package stored backs the geometry interfaces with a driver.
//
// A stored geometry is a handle on the node found at (identifier, indexes)
// in a driver.GeometryDriver document. Handles keep no coordinates of their
// own: queries read the node through the driver and mutators write it back,
// so a handle can be dropped and recreated at any time without losing data.
// Two handles with the same identifier and indexes denote the same node.
//
// Cloning a stored geometry through a Factory of the same driver never
// copies data. The clone is another handle whose path is the source path
// followed by the requested suffix. Anything else is copied into the store
// eagerly.
package stored

import (
	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
)

// Geometry is implemented by every stored handle.
type Geometry interface {
	geometry.Geometry

	Identifier() string
	// Indexes is the path of the node below the document root.
	Indexes() []int
	Driver() driver.GeometryDriver
	// Err returns the last driver failure met by a query that has no error
	// result of its own.
	Err() error
}

// source tells where the data of a geometry lives. It is either inMemory or
// storedRef.
type source interface {
	isSource()
}

type inMemory struct {
	g geometry.Geometry
}

type storedRef struct {
	identifier string
	indexes    []int
	driver     driver.GeometryDriver
}

func (inMemory) isSource()  {}
func (storedRef) isSource() {}

func sourceOf(g geometry.Geometry) source {
	if s, ok := g.(Geometry); ok {
		return storedRef{identifier: s.Identifier(), indexes: s.Indexes(), driver: s.Driver()}
	}
	return inMemory{g: g}
}

// ConcatIndexes returns the path of g followed by indexes. For a geometry
// that is not stored the result is a copy of indexes.
func ConcatIndexes(g geometry.Geometry, indexes ...int) []int {
	var path []int
	if ref, ok := sourceOf(g).(storedRef); ok {
		path = append(path, ref.indexes...)
	}
	return append(path, indexes...)
}

func appendIndex(indexes []int, i int) []int {
	path := make([]int, len(indexes)+1)
	copy(path, indexes)
	path[len(indexes)] = i
	return path
}
