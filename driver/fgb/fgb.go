// Package fgb persists documents to a FlatGeobuf file.
//
// The driver keeps documents in memory and writes the whole layer on Flush
// and Close. Every identifier becomes one feature: its geometry is written
// in planar form so other FlatGeobuf tools and the spatial index can use
// it, while the exact node tree (kinds, Z values), reference system,
// creation order and collection members travel in reserved properties.
// Attributes are written as ordinary columns.
//
// The package also exposes the Reader and WriteFeatures codec used by the
// driver, which exchange orb/geojson features.
package fgb

import (
	"github.com/cockroachdb/errors"

	geometry "github.com/tingold/orb-geometry"
)

// Errors returned by the codec.
var (
	ErrNoFeatures = errors.New("fgb: nothing to write")
	ErrNoIndex    = errors.New("fgb: file has no spatial index")
)

// Options configures WriteFeatures.
type Options struct {
	Name            string
	Description     string
	IncludeIndex    bool
	ReferenceSystem *geometry.ReferenceSystem
}

// DefaultOptions writes a spatial index and no reference system.
func DefaultOptions() *Options {
	return &Options{IncludeIndex: true}
}

// ColumnInfo describes a property column.
type ColumnInfo struct {
	Name        string
	Type        string // "Bool", "Int", "Long", "Double", "String", "Json", ...
	Title       string
	Description string
	Nullable    bool
}

// Header is the layer metadata of a file.
type Header struct {
	Name            string
	Description     string
	GeometryType    string
	FeaturesCount   uint64
	Envelope        [4]float64 // minX, minY, maxX, maxY
	ReferenceSystem *geometry.ReferenceSystem
	HasIndex        bool
	Columns         []ColumnInfo
}
