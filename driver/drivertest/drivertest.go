// Package drivertest checks that a driver.FeatureDriver honours the driver
// contract. Driver packages run it from their tests.
package drivertest

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
)

// Run runs the contract suite. open must return a new, empty driver for
// every call.
func Run(t *testing.T, open func(t *testing.T) driver.FeatureDriver) {
	tests := []struct {
		name string
		fn   func(t *testing.T, d driver.FeatureDriver)
	}{
		{"Identifiers", testIdentifiers},
		{"MissingIdentifier", testMissingIdentifier},
		{"ReferenceSystem", testReferenceSystem},
		{"GeometryTree", testGeometryTree},
		{"Coordinates", testCoordinates},
		{"Attributes", testAttributes},
		{"Members", testMembers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := open(t)
			t.Cleanup(func() { _ = d.Close() })
			tt.fn(t, d)
		})
	}
}

func requireConnectionError(t *testing.T, err error, cause error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, driver.ErrConnection), "expected a connection error, got %v", err)
	require.True(t, errors.Is(err, cause), "expected %v, got %v", cause, err)
	var ce *driver.ConnectionError
	require.True(t, errors.As(err, &ce))
}

func testIdentifiers(t *testing.T, d driver.FeatureDriver) {
	ids, err := d.GetIdentifiers()
	require.NoError(t, err)
	require.Empty(t, ids)

	var created []string
	for i := 0; i < 3; i++ {
		id, err := d.CreateIdentifier()
		require.NoError(t, err)
		require.NotEmpty(t, id)
		require.NotContains(t, created, id)
		created = append(created, id)
	}

	ids, err = d.GetIdentifiers()
	require.NoError(t, err)
	require.Equal(t, created, ids, "identifiers are listed in creation order")

	ok, err := d.ContainsIdentifier(created[1])
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, d.DeleteIdentifier(created[1]))
	ok, err = d.ContainsIdentifier(created[1])
	require.NoError(t, err)
	require.False(t, ok)

	ids, err = d.GetIdentifiers()
	require.NoError(t, err)
	require.Equal(t, []string{created[0], created[2]}, ids)
}

func testMissingIdentifier(t *testing.T, d driver.FeatureDriver) {
	const id = "does-not-exist"

	requireConnectionError(t, d.DeleteIdentifier(id), driver.ErrIdentifierNotFound)

	_, err := d.ReadGeometryKind(id)
	requireConnectionError(t, err, driver.ErrIdentifierNotFound)
	_, err = d.ReadCoordinates(id)
	requireConnectionError(t, err, driver.ErrIdentifierNotFound)
	requireConnectionError(t, d.InsertGeometry(id, geometry.KindPoint), driver.ErrIdentifierNotFound)
	requireConnectionError(t, d.UpdateAttribute(id, "k", "v"), driver.ErrIdentifierNotFound)
	_, err = d.ReadCollectionMembers(id)
	requireConnectionError(t, err, driver.ErrIdentifierNotFound)
}

func testReferenceSystem(t *testing.T, d driver.FeatureDriver) {
	id, err := d.CreateIdentifier()
	require.NoError(t, err)

	rs, err := d.ReadReferenceSystem(id)
	require.NoError(t, err)
	require.Nil(t, rs)

	require.NoError(t, d.UpdateReferenceSystem(id, geometry.WGS84()))
	rs, err = d.ReadReferenceSystem(id)
	require.NoError(t, err)
	require.True(t, rs.Equal(geometry.WGS84()), "got %v", rs)

	require.NoError(t, d.UpdateReferenceSystem(id, nil))
	rs, err = d.ReadReferenceSystem(id)
	require.NoError(t, err)
	require.Nil(t, rs)
}

func testGeometryTree(t *testing.T, d driver.FeatureDriver) {
	id, err := d.CreateIdentifier()
	require.NoError(t, err)

	_, err = d.ReadGeometryKind(id)
	requireConnectionError(t, err, driver.ErrPathNotFound)

	// POLYGON with a shell and one hole
	require.NoError(t, d.InsertGeometry(id, geometry.KindPolygon))
	require.NoError(t, d.InsertGeometry(id, geometry.KindLinearRing, 0))
	require.NoError(t, d.InsertGeometry(id, geometry.KindLinearRing, 1))

	k, err := d.ReadGeometryKind(id)
	require.NoError(t, err)
	require.Equal(t, geometry.KindPolygon, k)

	n, err := d.ReadGeometryCount(id)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	k, err = d.ReadGeometryKind(id, 1)
	require.NoError(t, err)
	require.Equal(t, geometry.KindLinearRing, k)

	requireConnectionError(t, d.InsertGeometry(id, geometry.KindLinearRing, 4), driver.ErrPathNotFound)
	_, err = d.ReadGeometryCount(id, 7)
	requireConnectionError(t, err, driver.ErrPathNotFound)

	require.NoError(t, d.DeleteGeometry(id, 0))
	n, err = d.ReadGeometryCount(id)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// inserting without indexes replaces the root
	require.NoError(t, d.InsertGeometry(id, geometry.KindMultiPoint))
	n, err = d.ReadGeometryCount(id)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	require.NoError(t, d.DeleteGeometry(id))
	_, err = d.ReadGeometryKind(id)
	requireConnectionError(t, err, driver.ErrPathNotFound)
}

func testCoordinates(t *testing.T, d driver.FeatureDriver) {
	id, err := d.CreateIdentifier()
	require.NoError(t, err)

	require.NoError(t, d.InsertGeometry(id, geometry.KindMultiLineString))
	require.NoError(t, d.InsertGeometry(id, geometry.KindLineString, 0))

	cs := []geometry.Coordinate{
		geometry.NewCoordinate(0, 0, 0),
		geometry.NewCoordinate(1.5, -2.25, 3),
		geometry.NewCoordinate(4, 5, math.NaN()),
	}
	require.NoError(t, d.UpdateCoordinates(id, cs, 0))

	got, err := d.ReadCoordinates(id, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, cs[:2], got[:2])
	require.Equal(t, 4.0, got[2].X)
	require.True(t, math.IsNaN(got[2].Z), "undefined components survive storage")

	got[0] = geometry.NewCoordinate2D(9, 9)
	again, err := d.ReadCoordinates(id, 0)
	require.NoError(t, err)
	require.Equal(t, cs[0], again[0], "reads return copies")

	err = d.UpdateCoordinates(id, cs)
	require.True(t, errors.Is(err, geometry.ErrUnsupportedOperation), "collections hold no coordinates, got %v", err)

	requireConnectionError(t, d.UpdateCoordinates(id, cs, 3), driver.ErrPathNotFound)

	require.NoError(t, d.InsertGeometry(id, geometry.KindPoint))
	require.NoError(t, d.UpdateCoordinates(id, cs[1:2]))
	got, err = d.ReadCoordinates(id)
	require.NoError(t, err)
	require.Equal(t, cs[1:2], got)
}

func testAttributes(t *testing.T, d driver.FeatureDriver) {
	id, err := d.CreateIdentifier()
	require.NoError(t, err)

	attrs, err := d.ReadAttributes(id)
	require.NoError(t, err)
	require.Empty(t, attrs)

	require.NoError(t, d.UpdateAttribute(id, "name", "river"))
	require.NoError(t, d.UpdateAttribute(id, "length", 12.5))
	require.NoError(t, d.UpdateAttribute(id, "navigable", true))

	v, ok, err := d.ReadAttribute(id, "name")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "river", v)

	_, ok, err = d.ReadAttribute(id, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	attrs, err = d.ReadAttributes(id)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"name": "river", "length": 12.5, "navigable": true}, attrs)

	removed, err := d.DeleteAttribute(id, "length")
	require.NoError(t, err)
	require.True(t, removed)
	removed, err = d.DeleteAttribute(id, "length")
	require.NoError(t, err)
	require.False(t, removed)

	require.NoError(t, d.ClearAttributes(id))
	attrs, err = d.ReadAttributes(id)
	require.NoError(t, err)
	require.Empty(t, attrs)
}

func testMembers(t *testing.T, d driver.FeatureDriver) {
	id, err := d.CreateIdentifier()
	require.NoError(t, err)

	members, err := d.ReadCollectionMembers(id)
	require.NoError(t, err)
	require.Empty(t, members)

	require.NoError(t, d.UpdateCollectionMembers(id, []string{"a", "b", "c"}))
	members, err = d.ReadCollectionMembers(id)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, members)

	require.NoError(t, d.UpdateCollectionMembers(id, nil))
	members, err = d.ReadCollectionMembers(id)
	require.NoError(t, err)
	require.Empty(t, members)
}
