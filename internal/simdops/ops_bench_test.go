package simdops

import (
	"testing"

	"github.com/tphakala/simd/f32"
)

func benchSamples(n int) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = float32(i%97) * 0.01
	}
	return s
}

// BenchmarkDirectF32DotProduct measures the direct SIMD call.
func BenchmarkDirectF32DotProduct(b *testing.B) {
	a := benchSamples(1024)

	b.ReportAllocs()
	for b.Loop() {
		_ = f32.DotProductUnsafe(a, a)
	}
}

// BenchmarkIndirectF32DotProduct measures the call through the Ops table.
func BenchmarkIndirectF32DotProduct(b *testing.B) {
	ops := For[float32]()
	a := benchSamples(1024)

	b.ReportAllocs()
	for b.Loop() {
		_ = ops.DotProductUnsafe(a, a)
	}
}

func BenchmarkGain(b *testing.B) {
	src := benchSamples(1024)
	dst := make([]float32, len(src))

	b.ReportAllocs()
	b.SetBytes(int64(len(src) * 4))
	for b.Loop() {
		Gain(dst, src, 0.5)
	}
}

func BenchmarkInterleave(b *testing.B) {
	l := benchSamples(1024)
	r := benchSamples(1024)

	b.ReportAllocs()
	for b.Loop() {
		_ = Interleave(l, r)
	}
}

func BenchmarkRMS(b *testing.B) {
	s := benchSamples(4096)

	b.ReportAllocs()
	for b.Loop() {
		_ = RMS(s)
	}
}
