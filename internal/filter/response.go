package filter

import (
	"math"
	"math/cmplx"

	"github.com/tphakala/go-audio-equalizer/internal/mathutil"
)

// Response evaluates the complex frequency response H(e^jw) at freqHz for
// a stream sampled at sampleRate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := mathutil.AngularFrequency(freqHz, sampleRate)
	z1 := cmplx.Exp(complex(0, -w))
	z2 := cmplx.Exp(complex(0, -2*w))

	num := complex(float64(c.B0), 0) + complex(float64(c.B1), 0)*z1 + complex(float64(c.B2), 0)*z2
	den := complex(float64(c.A0), 0) + complex(float64(c.A1), 0)*z1 + complex(float64(c.A2), 0)*z2
	return num / den
}

// MagnitudeDB returns 20·log10|H(f)|.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return mathutil.AmplitudeToDB(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// Phase returns the phase response in radians, in [-π, π].
func (c Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// Response returns the product of all enabled section responses.
// Disabled sections contribute unity.
func (ch *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for _, s := range ch.sections {
		if !s.enabled {
			continue
		}
		h *= s.coeffs.Response(freqHz, sampleRate)
	}
	return h
}

// MagnitudeDB returns the cascaded magnitude response in dB.
func (ch *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return mathutil.AmplitudeToDB(cmplx.Abs(ch.Response(freqHz, sampleRate)))
}

// IsStable reports whether both poles lie strictly inside the unit circle,
// using the stability triangle on the a0-normalized denominator.
func (c Coefficients) IsStable() bool {
	n := c.normalize()
	a1, a2 := float64(n.a1), float64(n.a2)
	return math.Abs(a2) < 1 && math.Abs(a1) < 1+a2
}
