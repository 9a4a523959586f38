package tree

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
)

func TestConvert_RoundTrip(t *testing.T) {
	f := geometry.NewFactory(nil, nil)

	texts := []string{
		"POINT (1 2 3)",
		"POINT EMPTY",
		"LINESTRING (0 0 0,1 1 1)",
		"LINE (0 0 0,2 2 0)",
		"LINEARRING (0 0 0,1 0 0,1 1 0,0 0 0)",
		"POLYGON EMPTY",
		"POLYGON ((0 0 0,4 0 0,4 4 0,0 4 0,0 0 0),(1 1 0,2 1 0,2 2 0,1 1 0))",
		"TRIANGLE ((0 0 0,1 0 0,0 1 0,0 0 0))",
		"MULTIPOINT ((1 1 0),(2 2 0))",
		"MULTILINESTRING ((0 0 0,1 1 0),EMPTY)",
		"MULTIPOLYGON (((0 0 0,1 0 0,1 1 0,0 0 0)),EMPTY)",
		"GEOMETRYCOLLECTION (POINT (1 2 3),TRIANGLE ((0 0 0,1 0 0,0 1 0,0 0 0)),MULTIPOINT EMPTY)",
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			g, err := geometry.ParseText(f, text)
			require.NoError(t, err)

			n, err := FromGeometry(g)
			require.NoError(t, err)

			b, err := json.Marshal(n)
			require.NoError(t, err)
			var decoded Node
			require.NoError(t, json.Unmarshal(b, &decoded))

			back, err := Build(f, &decoded)
			require.NoError(t, err)
			require.Equal(t, text, geometry.Text(back))
		})
	}
}

func TestNode_JSONUndefined(t *testing.T) {
	n := &Node{Kind: geometry.KindLineString, Coordinates: []geometry.Coordinate{
		geometry.NewCoordinate(1, 2, math.NaN()),
	}}
	b, err := json.Marshal(n)
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"LineString","coordinates":[[1,2,null]]}`, string(b))

	var back Node
	require.NoError(t, json.Unmarshal(b, &back))
	require.True(t, math.IsNaN(back.Coordinates[0].Z))
	require.Equal(t, 2.0, back.Coordinates[0].Y)
}

func TestDocument_Paths(t *testing.T) {
	d := &Document{}

	_, err := d.Lookup()
	require.True(t, errors.Is(err, driver.ErrPathNotFound))

	require.NoError(t, d.Insert(geometry.KindGeometryCollection))
	require.NoError(t, d.Insert(geometry.KindPoint, 0))
	require.NoError(t, d.Insert(geometry.KindPolygon, 1))
	require.NoError(t, d.Insert(geometry.KindLinearRing, 1, 0))
	require.NoError(t, d.Insert(geometry.KindLineString, 0))

	count, err := d.Count()
	require.NoError(t, err)
	require.Equal(t, 3, count)

	n, err := d.Lookup(2, 0)
	require.NoError(t, err)
	require.Equal(t, geometry.KindLinearRing, n.Kind)

	require.True(t, errors.Is(d.Insert(geometry.KindPoint, 5), driver.ErrPathNotFound))
	require.True(t, errors.Is(d.Insert(geometry.KindPoint, 1, 0), geometry.ErrUnsupportedOperation))

	require.NoError(t, d.Delete(0))
	n, err = d.Lookup(0)
	require.NoError(t, err)
	require.Equal(t, geometry.KindPoint, n.Kind)
	require.True(t, errors.Is(d.Delete(2), driver.ErrPathNotFound))

	require.NoError(t, d.Delete())
	require.Nil(t, d.Root)
}

func TestDocument_Coordinates(t *testing.T) {
	d := &Document{}
	require.NoError(t, d.Insert(geometry.KindPoint))

	require.True(t, errors.Is(
		d.SetCoordinates([]geometry.Coordinate{geometry.NewCoordinate2D(0, 0), geometry.NewCoordinate2D(1, 1)}),
		geometry.ErrInvalidArgument,
	))

	require.NoError(t, d.SetCoordinates([]geometry.Coordinate{geometry.Undefined}))
	cs, err := d.Coordinates()
	require.NoError(t, err)
	require.Empty(t, cs)

	c := geometry.NewCoordinate(1, 2, 3)
	require.NoError(t, d.SetCoordinates([]geometry.Coordinate{c}))
	cs, _ = d.Coordinates()
	cs[0] = geometry.NewCoordinate2D(9, 9)
	again, _ := d.Coordinates()
	require.Equal(t, c, again[0], "returned coordinates must be a copy")

	require.NoError(t, d.Insert(geometry.KindMultiPoint))
	require.True(t, errors.Is(d.SetCoordinates(nil), geometry.ErrUnsupportedOperation))
}

func TestDocument_EncodeClone(t *testing.T) {
	d := &Document{ReferenceSystem: geometry.WGS84(), Members: []string{"a", "b"}}
	d.SetAttribute("name", "river")
	d.SetAttribute("length", 12.5)
	require.NoError(t, d.Insert(geometry.KindPoint))
	require.NoError(t, d.SetCoordinates([]geometry.Coordinate{geometry.NewCoordinate(1, 2, 3)}))

	b, err := d.Encode()
	require.NoError(t, err)
	back, err := Decode(b)
	require.NoError(t, err)
	require.True(t, back.ReferenceSystem.Equal(geometry.WGS84()))
	require.Equal(t, []string{"a", "b"}, back.Members)
	require.Equal(t, "river", back.Attributes["name"])
	require.Equal(t, 12.5, back.Attributes["length"])
	require.Equal(t, d.Root.Coordinates, back.Root.Coordinates)

	c := d.Clone()
	c.Members[0] = "z"
	c.SetAttribute("name", "lake")
	c.Root.Coordinates[0] = geometry.NewCoordinate2D(0, 0)
	require.Equal(t, "a", d.Members[0])
	require.Equal(t, "river", d.Attributes["name"])
	require.Equal(t, 1.0, d.Root.Coordinates[0].X)

	require.True(t, d.DeleteAttribute("name"))
	require.False(t, d.DeleteAttribute("name"))
}
