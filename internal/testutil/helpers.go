// Package testutil provides reusable test helpers and signal generators for
// equalizer tests.
package testutil

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	SampleTolerance    = 1e-6
	CoeffTolerance     = 1e-6
	DBTolerance        = 0.01
	MagnitudeTolerance = 1e-2
)

// Float is the sample type constraint for the generic helpers.
type Float interface {
	float32 | float64
}

// AssertSamplesInDelta verifies that two sample slices have equal length and
// agree element-wise within tolerance.
func AssertSamplesInDelta[F Float](t *testing.T, expected, actual []F, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, float64(expected[i]), float64(actual[i]), tolerance,
			"sample %d: expected %g, got %g", i, expected[i], actual[i]) {
			return false
		}
	}
	return true
}

// AssertAllZero verifies that every sample is exactly zero.
func AssertAllZero[F Float](t *testing.T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "non-zero sample", "s[%d]=%g", i, v)
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf[F Float](t *testing.T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(float64(v)) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(float64(v), 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// Impulse returns a unit impulse of length n.
func Impulse(n int) []float32 {
	s := make([]float32, n)
	if n > 0 {
		s[0] = 1
	}
	return s
}

// Sine returns n samples of a sine at freq Hz with the given amplitude.
func Sine(n int, freq, sampleRate, amplitude float64) []float32 {
	s := make([]float32, n)
	omega := 2 * math.Pi * freq / sampleRate
	for i := range s {
		s[i] = float32(amplitude * math.Sin(omega*float64(i)))
	}
	return s
}

// Noise returns n samples of deterministic uniform noise in [-1, 1).
func Noise(n int, seed uint64) []float32 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s := make([]float32, n)
	for i := range s {
		s[i] = float32(rng.Float64()*2 - 1)
	}
	return s
}
