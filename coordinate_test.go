package geometry

import (
	"math"
	"testing"
)

func TestCoordinate_EmptyAndValid(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name  string
		c     Coordinate
		empty bool
		valid bool
	}{
		{"Origin", Coordinate{}, false, true},
		{"Regular", NewCoordinate(1, 2, 3), false, true},
		{"Undefined", Undefined, true, false},
		{"PartialNaN", NewCoordinate(nan, 1, 2), false, false},
		{"Infinite", NewCoordinate(math.Inf(1), 0, 0), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty: expected %v, got %v", tt.empty, got)
			}
			if got := tt.c.IsValid(); got != tt.valid {
				t.Errorf("IsValid: expected %v, got %v", tt.valid, got)
			}
		})
	}
}

func TestCoordinate_Equal(t *testing.T) {
	if !Undefined.Equal(Undefined) {
		t.Error("expected undefined coordinates to be equal")
	}
	if NewCoordinate(1, 2, 3).Equal(NewCoordinate(1, 2, 4)) {
		t.Error("expected coordinates with different Z to differ")
	}
	if !NewCoordinate(1, 2, 3).Equal2D(NewCoordinate(1, 2, 4)) {
		t.Error("expected planar equality to ignore Z")
	}
}

func TestCoordinate_Distance(t *testing.T) {
	a, b := NewCoordinate(0, 0, 0), NewCoordinate(3, 4, 12)
	if d := a.Distance(b); d != 13 {
		t.Errorf("expected distance 13, got %v", d)
	}
	if d := a.Distance2D(b); d != 5 {
		t.Errorf("expected planar distance 5, got %v", d)
	}
}

func TestCoordinate_String(t *testing.T) {
	tests := []struct {
		c        Coordinate
		expected string
	}{
		{NewCoordinate(1, 2, 3), "1 2 3"},
		{NewCoordinate(0.1, -2.5, 0), "0.1 -2.5 0"},
		{NewCoordinate(1e21, 1e-7, 0), "1000000000000000000000 0.0000001 0"},
		{Undefined, "NaN NaN NaN"},
	}

	for _, tt := range tests {
		if got := tt.c.String(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}

func TestEnvelopeOf(t *testing.T) {
	e := EnvelopeOf(NewCoordinate(1, 5, 2), NewCoordinate(-1, 2, 7), Undefined)
	expected := Envelope{MinX: -1, MaxX: 1, MinY: 2, MaxY: 5, MinZ: 2, MaxZ: 7}
	if e != expected {
		t.Errorf("expected %v, got %v", expected, e)
	}
	if !e.Contains(NewCoordinate(0, 3, 100)) {
		t.Error("expected planar containment to ignore Z")
	}
	if e.Contains(NewCoordinate(2, 3, 0)) {
		t.Error("expected point outside the envelope")
	}
	if !EnvelopeOf().IsEmpty() {
		t.Error("expected envelope of nothing to be empty")
	}

	b := e.Bound()
	if b.Min[0] != -1 || b.Max[1] != 5 {
		t.Errorf("unexpected bound %v", b)
	}
}

func TestEnvelope_Intersects(t *testing.T) {
	a := EnvelopeOf(NewCoordinate2D(0, 0), NewCoordinate2D(2, 2))
	b := EnvelopeOf(NewCoordinate2D(2, 2), NewCoordinate2D(3, 3))
	c := EnvelopeOf(NewCoordinate2D(5, 5), NewCoordinate2D(6, 6))

	if !a.Intersects(b) {
		t.Error("expected touching envelopes to intersect")
	}
	if a.Intersects(c) {
		t.Error("expected disjoint envelopes not to intersect")
	}
	if a.Intersects(UndefinedEnvelope) {
		t.Error("expected empty envelope not to intersect")
	}
}
