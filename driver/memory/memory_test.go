package memory

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	geometry "github.com/tingold/orb-geometry"
	"github.com/tingold/orb-geometry/driver"
	"github.com/tingold/orb-geometry/driver/drivertest"
	"github.com/tingold/orb-geometry/driver/internal/tree"
)

func TestContract(t *testing.T) {
	drivertest.Run(t, func(t *testing.T) driver.FeatureDriver {
		return New()
	})
}

func TestOpen(t *testing.T) {
	d, err := Open(nil)
	require.NoError(t, err)
	require.Equal(t, "memory", d.Format().Identifier)
	require.Empty(t, d.Parameters())

	_, err = Open(map[string]any{"path": "x"})
	require.True(t, errors.Is(err, driver.ErrInvalidParameter))
}

func TestPutKeepsOrder(t *testing.T) {
	d := New()
	a, _ := d.CreateIdentifier()
	b, _ := d.CreateIdentifier()

	doc := &tree.Document{Members: []string{b}}
	d.Put(a, doc)
	d.Put("imported", &tree.Document{})
	doc.Members[0] = "changed"

	ids, err := d.GetIdentifiers()
	require.NoError(t, err)
	require.Equal(t, []string{a, b, "imported"}, ids)

	stored, err := d.Document(a)
	require.NoError(t, err)
	require.Equal(t, []string{b}, stored.Members)
	require.Equal(t, 3, d.Len())

	require.NoError(t, d.Close())
	require.Equal(t, 0, d.Len())
}

func TestFailedUpdateLeavesDocument(t *testing.T) {
	d := New()
	id, _ := d.CreateIdentifier()
	require.NoError(t, d.InsertGeometry(id, geometry.KindPoint))

	err := d.UpdateCoordinates(id, []geometry.Coordinate{geometry.NewCoordinate2D(0, 0), geometry.NewCoordinate2D(1, 1)})
	require.True(t, errors.Is(err, geometry.ErrInvalidArgument))

	cs, err := d.ReadCoordinates(id)
	require.NoError(t, err)
	require.Empty(t, cs)
}

func TestConcurrentWriters(t *testing.T) {
	d := New()
	id, _ := d.CreateIdentifier()
	require.NoError(t, d.InsertGeometry(id, geometry.KindMultiPoint))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.InsertGeometry(id, geometry.KindPoint, 0); err != nil {
				t.Error(err)
			}
			if _, err := d.ReadGeometryCount(id); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	n, err := d.ReadGeometryCount(id)
	require.NoError(t, err)
	require.Equal(t, 16, n)
}
