package geometry

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
)

func square(x, y, size float64) []Coordinate {
	return []Coordinate{c2(x, y), c2(x+size, y), c2(x+size, y+size), c2(x, y+size)}
}

func TestPolygon_SquareWithHole(t *testing.T) {
	f := NewFactory(nil, nil)
	shell, _ := f.CreateLinearRing(square(0, 0, 4))
	p, err := f.CreatePolygonFromRings(shell)
	if err != nil {
		t.Fatal(err)
	}

	if p.Area() != 16 {
		t.Errorf("expected area 16, got %v", p.Area())
	}
	if !p.IsConvex() {
		t.Error("expected convex polygon")
	}
	if !p.IsValid() {
		t.Error("expected valid polygon")
	}
	if !p.IsWhole() {
		t.Error("expected whole polygon")
	}

	if err := p.AddHoleCoordinates(square(1, 1, 1)); err != nil {
		t.Fatal(err)
	}
	if p.Area() != 15 {
		t.Errorf("expected area 15, got %v", p.Area())
	}
	if p.IsWhole() {
		t.Error("expected polygon with a hole")
	}
	if p.IsConvex() {
		t.Error("expected polygon with a hole not to be convex")
	}
	if !p.IsValid() {
		t.Error("expected polygon with an inner hole to be valid")
	}
	if p.Perimeter() != 20 {
		t.Errorf("expected perimeter 20, got %v", p.Perimeter())
	}
}

func TestPolygon_AreaSign(t *testing.T) {
	f := NewFactory(nil, nil)
	ccw := square(0, 0, 3)
	cw := []Coordinate{ccw[0], ccw[3], ccw[2], ccw[1]}

	a, _ := f.CreateLinearRing(ccw)
	b, _ := f.CreateLinearRing(cw)
	if a.Area() != b.Area() || a.Area() != 9 {
		t.Errorf("expected area 9 for both windings, got %v and %v", a.Area(), b.Area())
	}
	if SignedArea(a.Coordinates()) != -SignedArea(b.Coordinates()) {
		t.Error("expected reversed rings to have opposite signed areas")
	}

	p, _ := f.CreatePolygon(cw)
	if p.IsValid() {
		t.Error("expected clockwise shell to be invalid")
	}
	if p.Area() != 9 {
		t.Errorf("expected area 9, got %v", p.Area())
	}
}

func TestPolygon_Validity(t *testing.T) {
	f := NewFactory(nil, nil)

	tests := []struct {
		name  string
		shell []Coordinate
		holes [][]Coordinate
		valid bool
	}{
		{"Empty", nil, nil, true},
		{"Square", square(0, 0, 10), nil, true},
		{"Bowtie", []Coordinate{c2(0, 0), c2(2, 2), c2(2, 0), c2(0, 2)}, nil, false},
		{"Flat", []Coordinate{c2(0, 0), c2(1, 0), c2(2, 0)}, nil, false},
		{"TooShort", []Coordinate{c2(0, 0), c2(1, 0)}, nil, false},
		{"HoleInside", square(0, 0, 10), [][]Coordinate{square(2, 2, 2)}, true},
		{"HoleClockwise", square(0, 0, 10), [][]Coordinate{{c2(2, 2), c2(2, 4), c2(4, 4), c2(4, 2)}}, true},
		{"HoleOutside", square(0, 0, 10), [][]Coordinate{square(20, 20, 2)}, false},
		{"HoleCrossesShell", square(0, 0, 10), [][]Coordinate{square(8, 8, 4)}, false},
		{"HoleTouchesShellAtVertex", square(0, 0, 10), [][]Coordinate{{c2(0, 0), c2(2, 1), c2(1, 2)}}, true},
		{"HolesCross", square(0, 0, 10), [][]Coordinate{square(2, 2, 3), square(4, 4, 3)}, false},
		{"HoleNested", square(0, 0, 10), [][]Coordinate{square(1, 1, 6), square(2, 2, 2)}, false},
		{"HolesDisjoint", square(0, 0, 10), [][]Coordinate{square(1, 1, 2), square(5, 5, 2)}, true},
		{"HoleEmpty", square(0, 0, 10), [][]Coordinate{nil}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := f.CreatePolygon(tt.shell, tt.holes...)
			if err != nil {
				t.Fatal(err)
			}
			if got := p.IsValid(); got != tt.valid {
				t.Errorf("expected IsValid %v, got %v (%v)", tt.valid, got,
					ValidatePolygon(p.Shell().Coordinates(), ringCoordinates(p.Holes())))
			}
		})
	}
}

func ringCoordinates(rings []LinearRing) [][]Coordinate {
	out := make([][]Coordinate, len(rings))
	for i, r := range rings {
		out[i] = r.Coordinates()
	}
	return out
}

func TestPolygon_Boundary(t *testing.T) {
	f := NewFactory(nil, nil)
	p, _ := f.CreatePolygon(square(0, 0, 4), square(1, 1, 1))

	b, ok := p.Boundary().(MultiLineString)
	if !ok {
		t.Fatalf("expected MultiLineString boundary, got %T", p.Boundary())
	}
	if b.Count() != 2 {
		t.Fatalf("expected 2 rings, got %d", b.Count())
	}
	if b.Length() != p.Perimeter() {
		t.Errorf("expected boundary length %v, got %v", p.Perimeter(), b.Length())
	}

	empty, _ := f.CreatePolygon(nil)
	if empty.Boundary() != nil {
		t.Error("expected empty polygon to have no boundary")
	}
}

func TestPolygon_Centroid(t *testing.T) {
	f := NewFactory(nil, nil)
	p, _ := f.CreatePolygon(square(0, 0, 4))
	if c := p.Centroid(); c != c2(2, 2) {
		t.Errorf("expected centroid (2 2), got %v", c)
	}

	// removing the left half shifts the centroid right
	h, _ := f.CreatePolygon(square(0, 0, 4), []Coordinate{c2(0.5, 0.5), c2(1.5, 0.5), c2(1.5, 3.5), c2(0.5, 3.5)})
	if c := h.Centroid(); !(c.X > 2) || math.Abs(c.Y-2) > 1e-12 {
		t.Errorf("unexpected centroid %v", c)
	}
}

func TestPolygon_HoleMutators(t *testing.T) {
	f := NewFactory(nil, nil)
	p, _ := f.CreatePolygon(square(0, 0, 10), square(1, 1, 1), square(5, 5, 1))

	h, err := p.Hole(1)
	if err != nil {
		t.Fatal(err)
	}
	removed, err := p.RemoveHole(h)
	if err != nil || !removed {
		t.Fatalf("expected hole removal, got %v %v", removed, err)
	}
	if p.HoleCount() != 1 {
		t.Errorf("expected 1 hole, got %d", p.HoleCount())
	}
	if _, err := p.Hole(3); !errors.Is(err, ErrArgumentOutOfRange) {
		t.Errorf("expected ErrArgumentOutOfRange, got %v", err)
	}
	if err := p.AddHole(nil); !errors.Is(err, ErrArgumentNull) {
		t.Errorf("expected ErrArgumentNull, got %v", err)
	}
	if err := p.ClearHoles(); err != nil {
		t.Fatal(err)
	}
	if !p.IsWhole() {
		t.Error("expected whole polygon after clearing holes")
	}
}

func TestTriangle(t *testing.T) {
	f := NewFactory(nil, nil)

	tests := []struct {
		name    string
		a, b, c Coordinate
		valid   bool
	}{
		{"CounterClockwise", c2(0, 0), c2(2, 0), c2(1, 1), true},
		{"Clockwise", c2(0, 0), c2(1, 1), c2(2, 0), false},
		{"Collinear", c2(0, 0), c2(1, 0), c2(2, 0), false},
		{"PerturbedOffLine", c2(0, 0), c2(2, 0), c2(1, 0.001), true},
		{"Repeated", c2(0, 0), c2(0, 0), c2(1, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tri, err := f.CreateTriangle(tt.a, tt.b, tt.c)
			if err != nil {
				t.Fatal(err)
			}
			if tri.Kind() != KindTriangle {
				t.Errorf("expected Triangle kind, got %v", tri.Kind())
			}
			if got := tri.IsValid(); got != tt.valid {
				t.Errorf("expected IsValid %v, got %v", tt.valid, got)
			}
		})
	}
}

func TestTriangle_Fixed(t *testing.T) {
	f := NewFactory(nil, nil)
	tri, _ := f.CreateTriangle(c2(0, 0), c2(2, 0), c2(1, 1))

	if err := tri.AddHoleCoordinates(square(0, 0, 1)); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("expected ErrUnsupportedOperation, got %v", err)
	}
	if err := tri.ClearHoles(); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("expected ErrUnsupportedOperation, got %v", err)
	}
	if err := tri.Shell().Add(c2(5, 5)); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("expected ErrUnsupportedOperation on shell, got %v", err)
	}
	if err := tri.Shell().SetCoordinate(2, c2(1, 2)); err != nil {
		t.Errorf("expected vertex move to be allowed, got %v", err)
	}
	if tri.Area() != 2 {
		t.Errorf("expected area 2, got %v", tri.Area())
	}
	if got := tri.String(); got != "TRIANGLE ((0 0 0,2 0 0,1 2 0,0 0 0))" {
		t.Errorf("unexpected text %s", got)
	}
}
