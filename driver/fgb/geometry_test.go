package fgb

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var square = orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		geom orb.Geometry
		want flattypes.GeometryType
	}{
		{"Point", orb.Point{1, 2}, flattypes.GeometryTypePoint},
		{"MultiPoint", orb.MultiPoint{{1, 2}}, flattypes.GeometryTypeMultiPoint},
		{"LineString", orb.LineString{{0, 0}, {1, 1}}, flattypes.GeometryTypeLineString},
		{"MultiLineString", orb.MultiLineString{{{0, 0}, {1, 1}}}, flattypes.GeometryTypeMultiLineString},
		{"Ring", square, flattypes.GeometryTypePolygon},
		{"Polygon", orb.Polygon{square}, flattypes.GeometryTypePolygon},
		{"Bound", orb.Bound{Max: orb.Point{1, 1}}, flattypes.GeometryTypePolygon},
		{"MultiPolygon", orb.MultiPolygon{{square}}, flattypes.GeometryTypeMultiPolygon},
		{"Collection", orb.Collection{orb.Point{1, 2}}, flattypes.GeometryTypeGeometryCollection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := typeOf(tt.geom); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLayerType(t *testing.T) {
	same := []orb.Geometry{orb.Point{1, 2}, nil, orb.Point{3, 4}}
	if got := layerType(same); got != flattypes.GeometryTypePoint {
		t.Errorf("expected Point, got %v", got)
	}
	mixed := []orb.Geometry{orb.Point{1, 2}, orb.LineString{{0, 0}, {1, 1}}}
	if got := layerType(mixed); got != flattypes.GeometryTypeUnknown {
		t.Errorf("expected Unknown, got %v", got)
	}
}

func TestFlatten(t *testing.T) {
	xy, ends := flatten(
		[]orb.Point{{0, 0}, {1, 0}, {1, 1}, {0, 0}},
		[]orb.Point{{5, 5}, {6, 6}},
	)
	wantXY := []float64{0, 0, 1, 0, 1, 1, 0, 0, 5, 5, 6, 6}
	if !reflect.DeepEqual(xy, wantXY) {
		t.Errorf("expected xy %v, got %v", wantXY, xy)
	}
	if !reflect.DeepEqual(ends, []uint32{4, 6}) {
		t.Errorf("expected ends [4 6], got %v", ends)
	}
}

func TestEncodeGeometry_Unsupported(t *testing.T) {
	b := flatbuffers.NewBuilder(64)
	if encodeGeometry(nil, b) != nil {
		t.Error("expected nil for nil geometry")
	}
}

// roundTrip writes one feature and reads it back.
func roundTrip(t *testing.T, g orb.Geometry) orb.Geometry {
	t.Helper()
	var buf bytes.Buffer
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(g))
	if err := WriteFeatures(&buf, fc, nil); err != nil {
		t.Fatalf("WriteFeatures failed: %v", err)
	}
	r, err := NewReaderFromData(buf.Bytes())
	if err != nil {
		t.Fatalf("NewReaderFromData failed: %v", err)
	}
	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(got.Features))
	}
	return got.Features[0].Geometry
}

func TestGeometry_RoundTrip(t *testing.T) {
	hole := orb.Ring{{2, 2}, {8, 2}, {8, 8}, {2, 8}, {2, 2}}
	tests := []struct {
		name string
		in   orb.Geometry
		want orb.Geometry
	}{
		{"Point", orb.Point{1.5, 2.5}, nil},
		{"MultiPoint", orb.MultiPoint{{1, 2}, {3, 4}}, nil},
		{"LineString", orb.LineString{{0, 0}, {1, 1}, {2, 4}}, nil},
		{"MultiLineString", orb.MultiLineString{{{0, 0}, {1, 1}}, {{5, 5}, {6, 7}, {8, 8}}}, nil},
		{"Polygon", orb.Polygon{square, hole}, nil},
		{"Ring", square, orb.Polygon{square}},
		{"Bound", orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 3}}, orb.Polygon{orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 3}}.ToRing()}},
		{"MultiPolygon", orb.MultiPolygon{{square}, {hole}}, nil},
		{"Collection", orb.Collection{orb.Point{1, 2}, orb.LineString{{0, 0}, {3, 3}}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.want
			if want == nil {
				want = tt.in
			}
			got := roundTrip(t, tt.in)
			if !orb.Equal(got, want) {
				t.Errorf("expected %v, got %v", want, got)
			}
		})
	}
}
