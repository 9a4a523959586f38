package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestPrecisionModel_MakePrecise(t *testing.T) {
	fixed, err := NewFixed(100)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		pm       *PrecisionModel
		in       float64
		expected float64
	}{
		{"FloatingKeeps", Default(), 1.23456789, 1.23456789},
		{"FixedRounds", fixed, 1.23456789, 1.23},
		{"FixedNegative", fixed, -1.236, -1.24},
		{"SingleRounds", NewFloatingSingle(), 0.1, float64(float32(0.1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pm.MakePrecise(tt.in); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPrecisionModel_Idempotent(t *testing.T) {
	fixed, _ := NewFixed(1000)
	models := []*PrecisionModel{Default(), NewFloatingSingle(), fixed}

	r := rand.New(rand.NewSource(7))
	for _, pm := range models {
		for i := 0; i < 1000; i++ {
			v := (r.Float64() - 0.5) * 1e6
			once := pm.MakePrecise(v)
			if twice := pm.MakePrecise(once); twice != once {
				t.Fatalf("%s: MakePrecise(%v) = %v but MakePrecise(%v) = %v", pm, v, once, once, twice)
			}
		}
	}
}

func TestPrecisionModel_IdempotentLargeMagnitudes(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for _, scale := range []float64{3, 7, 100, 1e-3, 1e6, 0.3} {
		pm, err := NewFixed(scale)
		if err != nil {
			t.Fatal(err)
		}
		values := []float64{1e14, -1e14, 1e15, -1e15, 1e16, -1e16, 1e17, -1e17, -6.347454351688525e+14}
		for i := 0; i < 5000; i++ {
			// log uniform over 1e-3..1e18
			v := math.Pow(10, -3+r.Float64()*21)
			if r.Intn(2) == 0 {
				v = -v
			}
			values = append(values, v)
		}
		for _, v := range values {
			once := pm.MakePrecise(v)
			if twice := pm.MakePrecise(once); twice != once {
				t.Fatalf("%s: MakePrecise(%v) = %v but MakePrecise(%v) = %v", pm, v, once, once, twice)
			}
		}
	}
}

func TestPrecisionModel_NaNPassesThrough(t *testing.T) {
	fixed, _ := NewFixed(10)
	if !math.IsNaN(fixed.MakePrecise(math.NaN())) {
		t.Error("expected NaN to be kept")
	}
	if !fixed.MakePreciseCoordinate(Undefined).IsEmpty() {
		t.Error("expected undefined coordinate to stay empty")
	}
}

func TestNewFixed_InvalidScale(t *testing.T) {
	for _, scale := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewFixed(scale); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("scale %v: expected ErrInvalidArgument, got %v", scale, err)
		}
	}
}

func TestPrecisionModel_Equal(t *testing.T) {
	a, _ := NewFixed(10)
	b, _ := NewFixed(10)
	c, _ := NewFixed(100)

	if !a.Equal(b) {
		t.Error("expected equal fixed models")
	}
	if a.Equal(c) {
		t.Error("expected different scales to differ")
	}
	if !a.AreEqual(1.01, 0.99) {
		t.Error("expected values to snap to the same grid point")
	}
	if a.Tolerance() != 0.05 {
		t.Errorf("expected tolerance 0.05, got %v", a.Tolerance())
	}
}
