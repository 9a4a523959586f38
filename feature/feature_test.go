package feature

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	geometry "github.com/tingold/orb-geometry"
)

func TestAttributes(t *testing.T) {
	src := map[string]any{"name": "a", "rank": 2.0}
	a := NewAttributes(src)
	src["name"] = "changed"

	v, ok, err := a.Get("name")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", v)

	require.NoError(t, a.Set("kind", "road"))
	keys, err := a.Keys()
	require.NoError(t, err)
	require.Equal(t, []string{"kind", "name", "rank"}, keys)

	require.True(t, errors.Is(a.Set("", 1), geometry.ErrArgumentNull))

	removed, err := a.Remove("rank")
	require.NoError(t, err)
	require.True(t, removed)
	removed, err = a.Remove("rank")
	require.NoError(t, err)
	require.False(t, removed)

	require.NoError(t, a.Clear())
	n, err := a.Count()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestFactory_CreateFeature(t *testing.T) {
	f := NewFactory(nil)
	p, err := f.GeometryFactory().CreatePoint(geometry.NewCoordinate2D(1, 2))
	require.NoError(t, err)

	ft, err := f.CreateFeature(p, map[string]any{"name": "a"})
	require.NoError(t, err)
	require.NotEmpty(t, ft.Identifier())

	g, err := ft.Geometry()
	require.NoError(t, err)
	require.Equal(t, "POINT (1 2 0)", geometry.Text(g))
	require.NotSame(t, p, g)

	other, err := f.CreateFeature(nil, nil)
	require.NoError(t, err)
	require.NotEqual(t, ft.Identifier(), other.Identifier())
	g, err = other.Geometry()
	require.NoError(t, err)
	require.Nil(t, g)

	_, err = f.CreateFeatureAt("", nil, nil)
	require.True(t, errors.Is(err, geometry.ErrArgumentNull))
}

func TestFactory_Collection(t *testing.T) {
	f := NewFactory(nil)
	a, _ := f.CreateFeatureAt("a", nil, nil)
	b, _ := f.CreateFeatureAt("b", nil, nil)

	c, err := f.CreateCollection(a, b)
	require.NoError(t, err)
	n, err := c.Count()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	m, err := c.At(1)
	require.NoError(t, err)
	require.Equal(t, "b", m.Identifier())
	_, err = c.At(2)
	require.True(t, errors.Is(err, geometry.ErrArgumentOutOfRange))

	removed, err := c.Remove(a)
	require.NoError(t, err)
	require.True(t, removed)
	removed, err = c.Remove(a)
	require.NoError(t, err)
	require.False(t, removed)

	require.NoError(t, c.Add(a))
	members, err := c.Features()
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, identifiers(members))

	require.True(t, errors.Is(c.Add(nil), geometry.ErrArgumentNull))
}

func identifiers(fs []Feature) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Identifier()
	}
	return out
}
