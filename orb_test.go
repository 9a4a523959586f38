package geometry

import (
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
)

func TestToOrb(t *testing.T) {
	f := NewFactory(nil, nil)

	tests := []struct {
		text     string
		expected orb.Geometry
	}{
		{"POINT (1 2 3)", orb.Point{1, 2}},
		{"LINESTRING (0 0 0,1 1 5)", orb.LineString{{0, 0}, {1, 1}}},
		{"LINE (0 0 0,1 1 0)", orb.LineString{{0, 0}, {1, 1}}},
		{"LINEARRING (0 0 0,1 0 0,1 1 0,0 0 0)", orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
		{"TRIANGLE ((0 0 0,1 0 0,0 1 0,0 0 0))", orb.Polygon{{{0, 0}, {1, 0}, {0, 1}, {0, 0}}}},
		{"MULTIPOINT ((1 1 0),EMPTY,(2 2 0))", orb.MultiPoint{{1, 1}, {2, 2}}},
		{"MULTIPOLYGON (((0 0 0,1 0 0,1 1 0,0 0 0)),EMPTY)", orb.MultiPolygon{{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}, {}}},
		{"GEOMETRYCOLLECTION (POINT EMPTY,POINT (1 2 0))", orb.Collection{orb.Point{1, 2}}},
	}

	for _, tt := range tests {
		g, err := ParseText(f, tt.text)
		if err != nil {
			t.Fatalf("%s: %v", tt.text, err)
		}
		got, err := ToOrb(g)
		if err != nil {
			t.Fatalf("%s: %v", tt.text, err)
		}
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("%s: expected %v, got %v", tt.text, tt.expected, got)
		}
	}

	empty, _ := f.CreatePoint(Undefined)
	if got, err := ToOrb(empty); err != nil || got != nil {
		t.Errorf("expected nil for an empty point, got %v %v", got, err)
	}
}

func TestFromOrb(t *testing.T) {
	f := NewFactory(nil, nil)

	tests := []struct {
		in       orb.Geometry
		expected string
	}{
		{orb.Point{1, 2}, "POINT (1 2 0)"},
		{orb.MultiPoint{{1, 2}, {3, 4}}, "MULTIPOINT ((1 2 0),(3 4 0))"},
		{orb.LineString{{0, 0}, {1, 1}}, "LINESTRING (0 0 0,1 1 0)"},
		{orb.MultiLineString{{{0, 0}, {1, 1}}}, "MULTILINESTRING ((0 0 0,1 1 0))"},
		{orb.Ring{{0, 0}, {1, 0}, {1, 1}}, "LINEARRING (0 0 0,1 0 0,1 1 0,0 0 0)"},
		{orb.Polygon{}, "POLYGON EMPTY"},
		{orb.MultiPolygon{{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}}, "MULTIPOLYGON (((0 0 0,1 0 0,1 1 0,0 0 0)))"},
		{orb.Collection{orb.Point{1, 1}, orb.LineString{}}, "GEOMETRYCOLLECTION (POINT (1 1 0),LINESTRING EMPTY)"},
		{orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 1}}, "POLYGON ((0 0 0,2 0 0,2 1 0,0 1 0,0 0 0))"},
	}

	for _, tt := range tests {
		g, err := FromOrb(f, tt.in)
		if err != nil {
			t.Fatalf("%v: %v", tt.in, err)
		}
		if got := Text(g); got != tt.expected {
			t.Errorf("expected %s, got %s", tt.expected, got)
		}
	}

	if _, err := FromOrb(f, nil); !errors.Is(err, ErrArgumentNull) {
		t.Errorf("expected ErrArgumentNull, got %v", err)
	}
}

func TestOrb_RoundTripPlanar(t *testing.T) {
	f := NewFactory(nil, nil)
	p, _ := f.CreatePolygon(square(0, 0, 10), square(2, 2, 2))

	o, err := ToOrb(p)
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromOrb(f, o)
	if err != nil {
		t.Fatal(err)
	}
	if Text(back) != Text(p) {
		t.Errorf("expected %s, got %s", Text(p), Text(back))
	}
	if back.(Polygon).Area() != p.Area() {
		t.Errorf("expected area %v, got %v", p.Area(), back.(Polygon).Area())
	}
}
