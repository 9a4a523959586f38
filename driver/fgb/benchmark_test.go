package fgb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	geometry "github.com/tingold/orb-geometry"
)

// randomLayer creates n features of the given kind spread over the globe.
func randomLayer(r *rand.Rand, n int, kind string, withProps bool) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := 0; i < n; i++ {
		x := -180 + r.Float64()*359
		y := -90 + r.Float64()*179

		var g orb.Geometry
		switch kind {
		case "point":
			g = orb.Point{x, y}
		case "linestring":
			ls := make(orb.LineString, 10)
			for j := range ls {
				ls[j] = orb.Point{x + float64(j)*0.01, y + float64(j)*0.01}
			}
			g = ls
		case "polygon":
			// 32-gon around (x, y)
			radius := 0.01 + r.Float64()*0.05
			ring := make(orb.Ring, 33)
			for j := 0; j < 32; j++ {
				a := 2 * math.Pi * float64(j) / 32
				ring[j] = orb.Point{x + radius*math.Cos(a), y + radius*math.Sin(a)}
			}
			ring[32] = ring[0]
			g = orb.Polygon{ring}
		}

		f := geojson.NewFeature(g)
		if withProps {
			f.Properties = geojson.Properties{
				"id":       i,
				"name":     fmt.Sprintf("Feature %d", i),
				"value":    r.Float64() * 1000,
				"active":   r.Intn(2) == 1,
				"category": fmt.Sprintf("cat_%d", r.Intn(10)),
			}
		}
		fc.Append(f)
	}
	return fc
}

func benchmarkWrite(b *testing.B, kind string, n int, withProps bool) {
	fc := randomLayer(rand.New(rand.NewSource(42)), n, kind, withProps)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		if err := WriteFeatures(&buf, fc, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkRead(b *testing.B, kind string, n int, withProps bool) {
	fc := randomLayer(rand.New(rand.NewSource(42)), n, kind, withProps)
	var buf bytes.Buffer
	if err := WriteFeatures(&buf, fc, nil); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r, err := NewReaderFromData(data)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := r.ReadAll(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWrite_Points_1000(b *testing.B) { benchmarkWrite(b, "point", 1000, false) }
func BenchmarkWrite_PointsProps_1000(b *testing.B) { benchmarkWrite(b, "point", 1000, true) }
func BenchmarkWrite_Lines_1000(b *testing.B) { benchmarkWrite(b, "linestring", 1000, false) }
func BenchmarkWrite_Polygons_1000(b *testing.B) { benchmarkWrite(b, "polygon", 1000, false) }

func BenchmarkRead_Points_1000(b *testing.B) { benchmarkRead(b, "point", 1000, false) }
func BenchmarkRead_PointsProps_1000(b *testing.B) { benchmarkRead(b, "point", 1000, true) }
func BenchmarkRead_Polygons_1000(b *testing.B) { benchmarkRead(b, "polygon", 1000, false) }

func BenchmarkSearch_Points_10000(b *testing.B) {
	fc := randomLayer(rand.New(rand.NewSource(42)), 10000, "point", false)
	var buf bytes.Buffer
	if err := WriteFeatures(&buf, fc, nil); err != nil {
		b.Fatal(err)
	}
	r, err := NewReaderFromData(buf.Bytes())
	if err != nil {
		b.Fatal(err)
	}
	bound := orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{10, 10}}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := r.Search(bound); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDriver_Flush measures persisting documents built through the
// driver, including the node tree properties.
func BenchmarkDriver_Flush(b *testing.B) {
	d, err := Open(map[string]any{"path": filepath.Join(b.TempDir(), "bench.fgb")})
	if err != nil {
		b.Fatal(err)
	}
	defer d.Close()

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		id, err := d.CreateIdentifier()
		if err != nil {
			b.Fatal(err)
		}
		if err := d.InsertGeometry(id, geometry.KindLineString); err != nil {
			b.Fatal(err)
		}
		cs := make([]geometry.Coordinate, 8)
		for j := range cs {
			cs[j] = geometry.NewCoordinate(r.Float64()*100, r.Float64()*100, float64(j))
		}
		if err := d.UpdateCoordinates(id, cs); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := d.Flush(); err != nil {
			b.Fatal(err)
		}
	}
}

func TestSizeComparison(t *testing.T) {
	if testing.Short() {
		t.Skip("size report skipped in short mode")
	}
	r := rand.New(rand.NewSource(42))
	for _, kind := range []string{"point", "linestring", "polygon"} {
		fc := randomLayer(r, 1000, kind, true)
		gj, err := json.Marshal(fc)
		if err != nil {
			t.Fatal(err)
		}
		var plain, indexed bytes.Buffer
		if err := WriteFeatures(&plain, fc, &Options{}); err != nil {
			t.Fatal(err)
		}
		if err := WriteFeatures(&indexed, fc, nil); err != nil {
			t.Fatal(err)
		}
		if indexed.Len() <= plain.Len() {
			t.Errorf("%s: expected the index to add bytes (%d <= %d)", kind, indexed.Len(), plain.Len())
		}
		t.Logf("%-10s geojson=%d fgb=%d fgb+index=%d", kind, len(gj), plain.Len(), indexed.Len())
	}
}
