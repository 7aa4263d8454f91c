// Package simdops provides SIMD block operations for float32 and float64
// sample buffers. The filter recursion itself is sequential; these helpers
// cover the vectorizable work around it: gain scaling, channel
// interleaving, and energy measurement.
package simdops

import (
	"math"

	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated operations for type F.
// Function pointers delegate to the type-specific implementations.
type Ops[F Float] struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []F) F

	// Interleave2 interleaves two slices: dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
	Interleave2 func(dst, a, b []F)

	// Sum returns the sum of all elements.
	Sum func(a []F) F

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)
}

var (
	ops32 = Ops[float32]{
		DotProductUnsafe: f32.DotProductUnsafe,
		Interleave2:      f32.Interleave2,
		Sum:              f32.Sum,
		Scale:            f32.Scale,
	}
	ops64 = Ops[float64]{
		DotProductUnsafe: f64.DotProductUnsafe,
		Interleave2:      f64.Interleave2,
		Sum:              f64.Sum,
		Scale:            f64.Scale,
	}
)

// For returns the Ops instance for type F.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

// Float32Ops returns the float32 SIMD operations.
func Float32Ops() *Ops[float32] {
	return &ops32
}

// Float64Ops returns the float64 SIMD operations.
func Float64Ops() *Ops[float64] {
	return &ops64
}

// Interleave writes min(len(a), len(b)) frames of a and b into a new
// interleaved slice [a0, b0, a1, b1, ...].
func Interleave[F Float](a, b []F) []F {
	n := min(len(a), len(b))
	dst := make([]F, 2*n)
	if n > 0 {
		For[F]().Interleave2(dst, a[:n], b[:n])
	}
	return dst
}

// Deinterleave splits an interleaved two-channel slice. A trailing odd
// sample is dropped.
func Deinterleave[F Float](src []F) (a, b []F) {
	n := len(src) / 2
	a = make([]F, n)
	b = make([]F, n)
	for i := range n {
		a[i] = src[2*i]
		b[i] = src[2*i+1]
	}
	return a, b
}

// Gain scales src into dst by g over min(len(dst), len(src)) samples.
// dst and src may be the same slice.
func Gain[F Float](dst, src []F, g F) {
	n := min(len(dst), len(src))
	if n == 0 {
		return
	}
	For[F]().Scale(dst[:n], src[:n], g)
}

// Energy returns the sum of squares of s.
func Energy[F Float](s []F) F {
	if len(s) == 0 {
		return 0
	}
	return For[F]().DotProductUnsafe(s, s)
}

// RMS returns the root mean square of s, or 0 for an empty slice.
func RMS[F Float](s []F) float64 {
	if len(s) == 0 {
		return 0
	}
	return math.Sqrt(float64(Energy(s)) / float64(len(s)))
}

// Mean returns the arithmetic mean of s, or 0 for an empty slice.
func Mean[F Float](s []F) float64 {
	if len(s) == 0 {
		return 0
	}
	return float64(For[F]().Sum(s)) / float64(len(s))
}
