package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
	"github.com/tingold/orb-geometry/driver/drivertest"
	"github.com/tingold/orb-geometry/driver/internal/tree"
)

func open(t *testing.T, params map[string]any) (*Driver, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	if params == nil {
		params = map[string]any{}
	}
	params["address"] = mr.Addr()
	d, err := Open(params)
	require.NoError(t, err)
	return d, mr
}

func TestContract(t *testing.T) {
	drivertest.Run(t, func(t *testing.T) driver.FeatureDriver {
		d, _ := open(t, nil)
		return d
	})
}

func TestOpen_Parameters(t *testing.T) {
	d, _ := open(t, map[string]any{"prefix": "test", "timeout": "1s"})
	defer d.Close()

	require.Equal(t, "test", d.Parameters().String("prefix"))
	require.Equal(t, defaultRetries, d.Parameters().Int("retries"))

	_, err := Open(map[string]any{})
	require.True(t, errors.Is(err, driver.ErrInvalidParameter))
}

func TestOpen_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Open(map[string]any{"address": addr, "timeout": "200ms"})
	require.True(t, errors.Is(err, driver.ErrConnection), "got %v", err)
}

func TestKeyLayout(t *testing.T) {
	d, mr := open(t, map[string]any{"prefix": "layout"})
	defer d.Close()

	id, err := d.CreateIdentifier()
	require.NoError(t, err)
	require.NoError(t, d.InsertGeometry(id, geometry.KindPoint))
	require.NoError(t, d.UpdateCoordinates(id, []geometry.Coordinate{geometry.NewCoordinate(1, 2, 3)}))

	require.True(t, mr.Exists("layout:doc:"+id))
	require.JSONEq(t,
		`{"root":{"kind":"Point","coordinates":[[1,2,3]]}}`,
		mustGet(t, mr, "layout:doc:"+id),
	)
	members, err := mr.ZMembers("layout:ids")
	require.NoError(t, err)
	require.Equal(t, []string{id}, members)

	require.NoError(t, d.DeleteIdentifier(id))
	require.False(t, mr.Exists("layout:doc:"+id))
}

func TestCreate_ExistingIdentifier(t *testing.T) {
	d, mr := open(t, map[string]any{"prefix": "dup"})
	defer d.Close()

	id, err := d.CreateIdentifier()
	require.NoError(t, err)
	require.NoError(t, d.InsertGeometry(id, geometry.KindPoint))
	before := mustGet(t, mr, "dup:doc:"+id)

	require.Error(t, d.store.Create(id))
	require.Equal(t, before, mustGet(t, mr, "dup:doc:"+id))
	members, err := mr.ZMembers("dup:ids")
	require.NoError(t, err)
	require.Equal(t, []string{id}, members)
	seq := mustGet(t, mr, "dup:seq")
	require.Equal(t, "1", seq)

	other, err := d.CreateIdentifier()
	require.NoError(t, err)
	ids, err := d.GetIdentifiers()
	require.NoError(t, err)
	require.Equal(t, []string{id, other}, ids)
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}

func TestUpdate_ConcurrentModification(t *testing.T) {
	d, _ := open(t, nil)
	defer d.Close()

	id, err := d.CreateIdentifier()
	require.NoError(t, err)
	require.NoError(t, d.InsertGeometry(id, geometry.KindMultiPoint))

	// a write slipping in during the first attempt forces a retry
	raced := false
	err = d.store.Update(id, func(doc *tree.Document) error {
		if !raced {
			raced = true
			require.NoError(t, d.UpdateAttribute(id, "touched", true))
		}
		return doc.Insert(geometry.KindPoint, 0)
	})
	require.NoError(t, err)

	n, err := d.ReadGeometryCount(id)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	v, ok, err := d.ReadAttribute(id, "touched")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, true, v)
}

func TestUpdate_GivesUp(t *testing.T) {
	d, _ := open(t, map[string]any{"retries": 2})
	defer d.Close()

	id, err := d.CreateIdentifier()
	require.NoError(t, err)

	err = d.store.Update(id, func(doc *tree.Document) error {
		return d.UpdateReferenceSystem(id, geometry.WGS84())
	})
	require.True(t, errors.Is(err, driver.ErrConnection), "got %v", err)
}
