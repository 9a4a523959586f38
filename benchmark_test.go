package geometry

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"testing"
)

// =============================================================================
// Test Data Generators
// =============================================================================

// generateCircle creates a closed ring of n vertices approximating a circle.
func generateCircle(n int, cx, cy, radius float64) []Coordinate {
	cs := make([]Coordinate, n+1)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		cs[i] = NewCoordinate2D(cx+radius*math.Cos(angle), cy+radius*math.Sin(angle))
	}
	cs[n] = cs[0]
	return cs
}

// generateWalk creates an open random walk of n vertices.
func generateWalk(r *rand.Rand, n int) []Coordinate {
	cs := make([]Coordinate, n)
	var x, y float64
	for i := range cs {
		x += r.Float64()
		y += r.Float64() - 0.5
		cs[i] = NewCoordinate2D(x, y)
	}
	return cs
}

func generateMultiPolygon(f Factory, r *rand.Rand, n int) MultiPolygon {
	polygons := make([]Polygon, n)
	for i := range polygons {
		p, _ := f.CreatePolygon(generateCircle(32, r.Float64()*1000, r.Float64()*1000, 1+r.Float64()*5))
		polygons[i] = p
	}
	mp, _ := f.CreateMultiPolygon(polygons)
	return mp
}

// =============================================================================
// Algorithm Benchmarks
// =============================================================================

func BenchmarkIsSimpleCurve(b *testing.B) {
	sizes := []int{100, 1000, 10000}
	r := rand.New(rand.NewSource(42))

	for _, size := range sizes {
		walk := generateWalk(r, size)
		b.Run(fmt.Sprintf("Vertices_%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				IsSimpleCurve(walk)
			}
		})
	}
}

func BenchmarkPolygonIsValid(b *testing.B) {
	f := NewFactory(nil, nil)
	p, _ := f.CreatePolygon(generateCircle(1000, 0, 0, 100), generateCircle(100, 0, 0, 10))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.IsValid()
	}
}

// =============================================================================
// Encoding Benchmarks
// =============================================================================

func BenchmarkText(b *testing.B) {
	f := NewFactory(nil, nil)
	mp := generateMultiPolygon(f, rand.New(rand.NewSource(42)), 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Text(mp)
	}
}

func BenchmarkParseText(b *testing.B) {
	f := NewFactory(nil, nil)
	text := Text(generateMultiPolygon(f, rand.New(rand.NewSource(42)), 100))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseText(f, text); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMarshalWKB(b *testing.B) {
	f := NewFactory(nil, nil)
	mp := generateMultiPolygon(f, rand.New(rand.NewSource(42)), 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := MarshalWKB(mp, binary.LittleEndian); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCreateGeometry(b *testing.B) {
	pm, _ := NewFixed(1000)
	src := generateMultiPolygon(NewFactory(nil, nil), rand.New(rand.NewSource(42)), 100)
	dst := NewFactory(pm, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dst.CreateGeometry(src); err != nil {
			b.Fatal(err)
		}
	}
}
