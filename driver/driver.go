// Package driver defines the contracts between the geometry layer and the
// stores that persist geometries, attributes and features.
//
// A driver keeps one document per identifier. A document holds a reference
// system, a tree of geometry nodes, attributes and collection members.
// Nodes are addressed by an index path from the root: the shell of a
// polygon is child 0 and hole i is child i+1, and member i of a collection
// is child i.
//
// Missing identifiers and paths, as well as transport failures, are
// reported as *ConnectionError values marked with ErrConnection.
package driver

import (
	geometry "github.com/tingold/orb-geometry"
)

// Driver is the identifier registry every store provides.
type Driver interface {
	// Format describes the driver and the parameters it accepts.
	Format() Format
	// Parameters returns the resolved parameters the driver was opened with.
	Parameters() Parameters

	// CreateIdentifier allocates a new identifier with an empty document.
	CreateIdentifier() (string, error)
	ContainsIdentifier(identifier string) (bool, error)
	// GetIdentifiers lists identifiers in creation order.
	GetIdentifiers() ([]string, error)
	DeleteIdentifier(identifier string) error

	Close() error
}

// ReferenceSystemDriver reads and writes the reference system of a
// document. A nil reference system means undefined.
type ReferenceSystemDriver interface {
	ReadReferenceSystem(identifier string) (*geometry.ReferenceSystem, error)
	UpdateReferenceSystem(identifier string, rs *geometry.ReferenceSystem) error
}

// GeometryDriver reads and writes geometry nodes. An empty index path
// addresses the root node.
type GeometryDriver interface {
	Driver
	ReferenceSystemDriver

	ReadGeometryKind(identifier string, indexes ...int) (geometry.Kind, error)
	// ReadGeometryCount returns the number of children of a node.
	ReadGeometryCount(identifier string, indexes ...int) (int, error)

	// InsertGeometry inserts an empty node of the given kind. The last index
	// is the position among the children of the parent node; with no
	// indexes the root is replaced.
	InsertGeometry(identifier string, kind geometry.Kind, indexes ...int) error
	// DeleteGeometry removes a node and its children. With no indexes the
	// root is removed.
	DeleteGeometry(identifier string, indexes ...int) error

	ReadCoordinates(identifier string, indexes ...int) ([]geometry.Coordinate, error)
	UpdateCoordinates(identifier string, coordinates []geometry.Coordinate, indexes ...int) error
}

// AttributeDriver stores key/value attributes per identifier. Values are
// whatever the JSON encoding of the store can represent.
type AttributeDriver interface {
	Driver

	ReadAttributes(identifier string) (map[string]any, error)
	ReadAttribute(identifier, key string) (any, bool, error)
	UpdateAttribute(identifier, key string, value any) error
	DeleteAttribute(identifier, key string) (bool, error)
	ClearAttributes(identifier string) error
}

// FeatureDriver stores features: a geometry, attributes and, for feature
// collections, the identifiers of the member features.
type FeatureDriver interface {
	GeometryDriver
	AttributeDriver

	ReadCollectionMembers(identifier string) ([]string, error)
	UpdateCollectionMembers(identifier string, members []string) error
}
