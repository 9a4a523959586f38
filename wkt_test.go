package geometry

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestText_RoundTrip(t *testing.T) {
	f := NewFactory(nil, nil)

	tests := []struct {
		name string
		text string
		kind Kind
	}{
		{"Point", "POINT (1 2 3)", KindPoint},
		{"PointEmpty", "POINT EMPTY", KindPoint},
		{"LineString", "LINESTRING (0 0 0,1.5 2 0,-3 0.25 7)", KindLineString},
		{"LineStringEmpty", "LINESTRING EMPTY", KindLineString},
		{"Line", "LINE (0 0 0,1 1 1)", KindLine},
		{"LinearRing", "LINEARRING (0 0 0,1 0 0,1 1 0,0 0 0)", KindLinearRing},
		{"Polygon", "POLYGON ((0 0 0,4 0 0,4 4 0,0 4 0,0 0 0),(1 1 0,2 1 0,2 2 0,1 2 0,1 1 0))", KindPolygon},
		{"PolygonEmpty", "POLYGON EMPTY", KindPolygon},
		{"PolygonEmptyShellWithHole", "POLYGON (EMPTY,(1 1 0,2 1 0,2 2 0,1 1 0))", KindPolygon},
		{"Triangle", "TRIANGLE ((0 0 0,2 0 0,1 1 0,0 0 0))", KindTriangle},
		{"MultiPoint", "MULTIPOINT ((1 2 0),EMPTY,(3 4 5))", KindMultiPoint},
		{"MultiPointEmpty", "MULTIPOINT EMPTY", KindMultiPoint},
		{"MultiLineString", "MULTILINESTRING ((0 0 0,1 1 0),EMPTY)", KindMultiLineString},
		{"MultiPolygon", "MULTIPOLYGON (((0 0 0,1 0 0,1 1 0,0 0 0)),EMPTY)", KindMultiPolygon},
		{"MultiPolygonEmptyShellWithHole", "MULTIPOLYGON ((EMPTY,(1 1 0,2 1 0,2 2 0,1 1 0)))", KindMultiPolygon},
		{"GeometryCollection", "GEOMETRYCOLLECTION (POINT (1 2 3),LINESTRING EMPTY,GEOMETRYCOLLECTION EMPTY)", KindGeometryCollection},
		{"LargeAndSmall", "POINT (1000000000000000000000 0.0000001 -2)", KindPoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseText(f, tt.text)
			if err != nil {
				t.Fatal(err)
			}
			if g.Kind() != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, g.Kind())
			}
			if got := Text(g); got != tt.text {
				t.Errorf("expected %s, got %s", tt.text, got)
			}
		})
	}
}

func TestParseText_Lenient(t *testing.T) {
	f := NewFactory(nil, nil)

	tests := []struct {
		in       string
		expected string
	}{
		{"point z (1 2)", "POINT (1 2 0)"},
		{"LINESTRING(0 0,1 1)", "LINESTRING (0 0 0,1 1 0)"},
		{"MULTIPOINT (1 2, 3 4)", "MULTIPOINT ((1 2 0),(3 4 0))"},
		{"  POLYGON (( 0 0 , 1 0 , 1 1 , 0 0 ))  ", "POLYGON ((0 0 0,1 0 0,1 1 0,0 0 0))"},
		{"LinearRing (0 0, 1 0, 1 1)", "LINEARRING (0 0 0,1 0 0,1 1 0,0 0 0)"},
	}

	for _, tt := range tests {
		g, err := ParseText(f, tt.in)
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		if got := Text(g); got != tt.expected {
			t.Errorf("%q: expected %s, got %s", tt.in, tt.expected, got)
		}
	}
}

func TestParseText_Snaps(t *testing.T) {
	pm, _ := NewFixed(10)
	g, err := ParseText(NewFactory(pm, nil), "POINT (1.26 2.74)")
	if err != nil {
		t.Fatal(err)
	}
	if got := Text(g); got != "POINT (1.3 2.7 0)" {
		t.Errorf("expected snapped point, got %s", got)
	}
}

func TestParseText_Errors(t *testing.T) {
	f := NewFactory(nil, nil)

	for _, in := range []string{
		"",
		"CIRCLE (1 2)",
		"POINT (1)",
		"POINT (1 2 3 4)",
		"POINT (a b)",
		"POINT (1 2) trailing",
		"LINE (0 0,1 1,2 2)",
		"TRIANGLE ((0 0,1 0,0 0))",
		"POLYGON ((0 0,1 1)",
		"GEOMETRYCOLLECTION (POINT (1 2),",
	} {
		if _, err := ParseText(f, in); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%q: expected ErrInvalidArgument, got %v", in, err)
		}
	}

	if _, err := ParseText(nil, "POINT (1 2)"); !errors.Is(err, ErrArgumentNull) {
		t.Errorf("expected ErrArgumentNull, got %v", err)
	}
}

func TestText_EmptyShellKeepsHoles(t *testing.T) {
	f := NewFactory(nil, nil)
	p, err := f.CreatePolygon(nil, []Coordinate{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}})
	if err != nil {
		t.Fatal(err)
	}
	expected := "POLYGON (EMPTY,(1 1 0,2 1 0,2 2 0,1 1 0))"
	if got := Text(p); got != expected {
		t.Fatalf("expected %s, got %s", expected, got)
	}
	g, err := ParseText(f, expected)
	if err != nil {
		t.Fatal(err)
	}
	if n := g.(Polygon).HoleCount(); n != 1 {
		t.Errorf("expected 1 hole, got %d", n)
	}
}

func TestCreateMultiPointFromCoordinates(t *testing.T) {
	f := NewFactory(nil, nil)
	m, err := f.CreateMultiPointFromCoordinates([]Coordinate{{X: 1, Y: 2}, Undefined})
	if err != nil {
		t.Fatal(err)
	}
	if got := Text(m); got != "MULTIPOINT ((1 2 0),EMPTY)" {
		t.Errorf("expected untagged members, got %s", got)
	}
}

func TestText_Nil(t *testing.T) {
	if got := Text(nil); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}
