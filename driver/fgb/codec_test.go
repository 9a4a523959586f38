package fgb

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	geometry "github.com/tingold/orb-geometry"
)

func pointLayer(n int) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := 0; i < n; i++ {
		f := geojson.NewFeature(orb.Point{float64(i), float64(i * 2)})
		f.Properties = geojson.Properties{"index": i, "name": "point"}
		fc.Append(f)
	}
	return fc
}

func encode(t *testing.T, fc *geojson.FeatureCollection, opts *Options) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteFeatures(&buf, fc, opts); err != nil {
		t.Fatalf("WriteFeatures failed: %v", err)
	}
	return buf.Bytes()
}

func TestNewReaderFromData_Invalid(t *testing.T) {
	if _, err := NewReaderFromData([]byte("not a flatgeobuf")); err == nil {
		t.Error("expected error for invalid data")
	}
	if _, err := NewReaderFromData(nil); err == nil {
		t.Error("expected error for empty data")
	}
}

func TestNewReader_NonExistent(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.fgb")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestWriteFeatures_Nothing(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFeatures(&buf, nil, nil); !errors.Is(err, ErrNoFeatures) {
		t.Errorf("expected ErrNoFeatures, got %v", err)
	}
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(nil))
	if err := WriteFeatures(&buf, fc, nil); !errors.Is(err, ErrNoFeatures) {
		t.Errorf("expected ErrNoFeatures for geometry-less features, got %v", err)
	}
}

func TestRoundTrip_Header(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.fgb")
	opts := &Options{
		Name:            "points",
		Description:     "ten points",
		IncludeIndex:    true,
		ReferenceSystem: geometry.WGS84(),
	}
	if err := os.WriteFile(path, encode(t, pointLayer(10), opts), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer func() { _ = r.Close() }()

	h := r.Header()
	if h == nil {
		t.Fatal("expected non-nil header")
	}
	if h.Name != "points" || h.Description != "ten points" {
		t.Errorf("unexpected name/description %q/%q", h.Name, h.Description)
	}
	if h.GeometryType != "Point" {
		t.Errorf("expected geometry type Point, got %q", h.GeometryType)
	}
	if h.FeaturesCount != 10 {
		t.Errorf("expected 10 features, got %d", h.FeaturesCount)
	}
	if !h.HasIndex {
		t.Error("expected an index")
	}
	if h.Envelope != [4]float64{0, 0, 9, 18} {
		t.Errorf("unexpected envelope %v", h.Envelope)
	}
	if !h.ReferenceSystem.Equal(geometry.WGS84()) {
		t.Errorf("expected WGS84, got %v", h.ReferenceSystem)
	}

	if len(h.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(h.Columns))
	}
	if h.Columns[0].Name != "index" || h.Columns[0].Type != "Long" {
		t.Errorf("unexpected first column %+v", h.Columns[0])
	}
	if h.Columns[1].Name != "name" || h.Columns[1].Type != "String" || !h.Columns[1].Nullable {
		t.Errorf("unexpected second column %+v", h.Columns[1])
	}
}

func TestRoundTrip_Properties(t *testing.T) {
	r, err := NewReaderFromData(encode(t, pointLayer(5), nil))
	if err != nil {
		t.Fatal(err)
	}
	fc, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(fc.Features) != 5 {
		t.Fatalf("expected 5 features, got %d", len(fc.Features))
	}
	for _, f := range fc.Features {
		i, ok := f.Properties["index"].(int64)
		if !ok {
			t.Fatalf("expected int64 index, got %T", f.Properties["index"])
		}
		want := orb.Point{float64(i), float64(i * 2)}
		if !orb.Equal(f.Geometry, want) {
			t.Errorf("feature %d: expected %v, got %v", i, want, f.Geometry)
		}
		if f.Properties["name"] != "point" {
			t.Errorf("feature %d: unexpected name %v", i, f.Properties["name"])
		}
	}
}

func TestSearch(t *testing.T) {
	r, err := NewReaderFromData(encode(t, pointLayer(10), nil))
	if err != nil {
		t.Fatal(err)
	}
	fc, err := r.Search(orb.Bound{Min: orb.Point{1.5, 0}, Max: orb.Point{4.5, 100}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(fc.Features) != 3 {
		t.Errorf("expected 3 features, got %d", len(fc.Features))
	}
}

func TestNoIndex(t *testing.T) {
	r, err := NewReaderFromData(encode(t, pointLayer(3), &Options{IncludeIndex: false}))
	if err != nil {
		t.Fatal(err)
	}
	if h := r.Header(); h.HasIndex {
		t.Error("expected no index")
	}
	if _, err := r.Search(orb.Bound{Max: orb.Point{10, 10}}); !errors.Is(err, ErrNoIndex) {
		t.Errorf("Search: expected ErrNoIndex, got %v", err)
	}
	if _, err := r.ReadAll(); !errors.Is(err, ErrNoIndex) {
		t.Errorf("ReadAll: expected ErrNoIndex, got %v", err)
	}
}

func TestMixedLayer(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Point{1, 1}))
	fc.Append(geojson.NewFeature(orb.LineString{{0, 0}, {2, 2}}))

	r, err := NewReaderFromData(encode(t, fc, nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Header().GeometryType; got != "Unknown" {
		t.Errorf("expected Unknown geometry type, got %q", got)
	}
	all, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Features) != 2 {
		t.Errorf("expected 2 features, got %d", len(all.Features))
	}
}
