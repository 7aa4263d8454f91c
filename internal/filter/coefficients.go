// Package filter implements the second-order IIR (biquad) sections used by
// the equalizer: coefficient design, per-sample processing with delay
// history, and ordered cascades of sections.
package filter

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/go-audio-equalizer/internal/mathutil"
)

// Type identifies the response shape of a section.
// The set is closed: LowPass, HighPass and BandPass.
type Type int

const (
	// LowPass attenuates content above the center frequency.
	// GainOrQ is the resonance of the corner.
	LowPass Type = iota

	// HighPass attenuates content below the center frequency.
	// GainOrQ is the resonance of the corner.
	HighPass

	// BandPass is the constant skirt gain band-pass with peak gain equal to Q.
	BandPass
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	case BandPass:
		return "bandpass"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType converts a name such as "lowpass", "lpf" or "bp" to a Type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowpass", "low-pass", "lpf", "lp":
		return LowPass, nil
	case "highpass", "high-pass", "hpf", "hp":
		return HighPass, nil
	case "bandpass", "band-pass", "bpf", "bp":
		return BandPass, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// FrequencyMode selects how the center frequency enters the trigonometric
// design formulas.
type FrequencyMode int

const (
	// FrequencyNormalized uses w0 = 2π·f0/sampleRate and requires
	// 0 < f0 < sampleRate/2.
	FrequencyNormalized FrequencyMode = iota

	// FrequencyRaw uses w0 = 2π·f0 with f0 taken as is, without dividing
	// by the sample rate. The Nyquist bound is not enforced since f0 is not
	// relative to the sample rate, but a (near) zero a0 is rejected.
	FrequencyRaw
)

// String returns the mode name.
func (m FrequencyMode) String() string {
	switch m {
	case FrequencyNormalized:
		return "normalized"
	case FrequencyRaw:
		return "raw"
	default:
		return fmt.Sprintf("FrequencyMode(%d)", int(m))
	}
}

// ParseFrequencyMode converts "normalized" or "raw" to a FrequencyMode.
func ParseFrequencyMode(s string) (FrequencyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normalized", "norm", "":
		return FrequencyNormalized, nil
	case "raw":
		return FrequencyRaw, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// minA0 is the smallest |a0| accepted before the section is considered
// numerically degenerate. Only reachable with FrequencyRaw.
const minA0 = 1e-6

// Design errors. All are returned wrapped with the offending value.
var (
	// ErrInvalidSampleRate indicates a non-positive or non-finite sample rate.
	ErrInvalidSampleRate = errors.New("invalid sample rate")

	// ErrInvalidFrequency indicates a non-positive or non-finite center frequency.
	ErrInvalidFrequency = errors.New("invalid center frequency")

	// ErrAboveNyquist indicates a center frequency at or above sampleRate/2.
	ErrAboveNyquist = errors.New("center frequency not below Nyquist")

	// ErrInvalidQ indicates a non-positive or non-finite Q/gain.
	ErrInvalidQ = errors.New("invalid Q")

	// ErrUnknownType indicates a filter type outside the supported set.
	ErrUnknownType = errors.New("unknown filter type")

	// ErrUnknownMode indicates a frequency mode outside the supported set.
	ErrUnknownMode = errors.New("unknown frequency mode")

	// ErrDegenerate indicates the design produced a (near) zero a0.
	ErrDegenerate = errors.New("degenerate coefficients")
)

// Coefficients holds the un-normalized transfer function of one section:
//
//	H(z) = (B0 + B1·z⁻¹ + B2·z⁻²) / (A0 + A1·z⁻¹ + A2·z⁻²)
type Coefficients struct {
	A0, A1, A2 float32 // feedback (denominator)
	B0, B1, B2 float32 // feedforward (numerator)
}

// normalized holds coefficients pre-divided by a0 for the per-sample loop.
type normalized struct {
	b0, b1, b2 float32
	a1, a2     float32
}

func (c Coefficients) normalize() normalized {
	return normalized{
		b0: c.B0 / c.A0,
		b1: c.B1 / c.A0,
		b2: c.B2 / c.A0,
		a1: c.A1 / c.A0,
		a2: c.A2 / c.A0,
	}
}

// ValidateParams checks the design preconditions for the given mode.
func ValidateParams(sampleRate, f0, q float32, mode FrequencyMode) error {
	if !mathutil.IsFinite32(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("%w: %v Hz", ErrInvalidSampleRate, sampleRate)
	}
	if !mathutil.IsFinite32(f0) || f0 <= 0 {
		return fmt.Errorf("%w: %v Hz", ErrInvalidFrequency, f0)
	}
	if !mathutil.IsFinite32(q) || q <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidQ, q)
	}

	switch mode {
	case FrequencyNormalized:
		if nyquist := mathutil.Nyquist(sampleRate); f0 >= nyquist {
			return fmt.Errorf("%w: %v Hz >= %v Hz", ErrAboveNyquist, f0, nyquist)
		}
	case FrequencyRaw:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}

	return nil
}

// Derive computes the coefficients of a section of type t.
//
// The design follows the RBJ cookbook with alpha = q·sin(w0)/2. For BandPass
// the peak gain equals q (constant skirt gain form). The result is a pure
// function of the inputs. Out-of-range inputs are rejected, never clamped.
func Derive(t Type, sampleRate, f0, q float32, mode FrequencyMode) (Coefficients, error) {
	if err := ValidateParams(sampleRate, f0, q, mode); err != nil {
		return Coefficients{}, err
	}

	rate := float64(sampleRate)
	if mode == FrequencyRaw {
		rate = 1
	}

	w0 := mathutil.AngularFrequency(float64(f0), rate)
	cosw0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2.0 / float64(q))

	a0 := 1 + alpha
	if math.Abs(a0) < minA0 {
		return Coefficients{}, fmt.Errorf("%w: a0=%g for f0=%v q=%v", ErrDegenerate, a0, f0, q)
	}

	var c Coefficients
	c.A0 = float32(a0)
	c.A1 = float32(-2 * cosw0)
	c.A2 = float32(1 - alpha)

	switch t {
	case LowPass:
		c.B0 = float32((1 - cosw0) / 2)
		c.B1 = float32(1 - cosw0)
		c.B2 = c.B0
	case HighPass:
		c.B0 = float32((1 + cosw0) / 2)
		c.B1 = float32(-(1 + cosw0))
		c.B2 = c.B0
	case BandPass:
		c.B0 = float32(float64(q) * alpha)
		c.B1 = 0
		c.B2 = -c.B0
	default:
		return Coefficients{}, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}

	return c, nil
}
