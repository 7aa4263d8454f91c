package filter

import (
	"errors"
	"fmt"
	"strings"
)

// Spacing selects how Build places section center frequencies.
type Spacing int

const (
	// SpacingBelowNyquist places position i of count at
	// (sampleRate/2)·i/(count+1), which keeps every section strictly
	// between 0 and Nyquist.
	SpacingBelowNyquist Spacing = iota

	// SpacingProportional places position i of count at sampleRate·i/count,
	// the legacy equalizer layout. The upper sections land at or above
	// Nyquist, so with FrequencyNormalized Build rejects this layout; use
	// FrequencyRaw to reproduce the legacy equalizer.
	SpacingProportional
)

// String returns the spacing name.
func (s Spacing) String() string {
	switch s {
	case SpacingBelowNyquist:
		return "below-nyquist"
	case SpacingProportional:
		return "proportional"
	default:
		return fmt.Sprintf("Spacing(%d)", int(s))
	}
}

// ParseSpacing converts "below-nyquist" or "proportional" to a Spacing.
func ParseSpacing(s string) (Spacing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "below-nyquist", "nyquist", "":
		return SpacingBelowNyquist, nil
	case "proportional", "legacy":
		return SpacingProportional, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSpacing, s)
	}
}

const (
	// bookendSections are the LowPass and HighPass sections around the bands.
	bookendSections = 2

	// defaultBandQ is the Q every section is built with.
	defaultBandQ = 1.0

	nyquistDivisor = 2
)

// Layout errors.
var (
	// ErrInvalidBandCount indicates a negative band count.
	ErrInvalidBandCount = errors.New("invalid band count")

	// ErrUnknownSpacing indicates a spacing outside the supported set.
	ErrUnknownSpacing = errors.New("unknown spacing")
)

// SectionCount returns the number of sections Build creates for bands.
func SectionCount(bands int) int {
	return bands + bookendSections
}

// TypeAt returns the type Build uses for position i (1-based) of count:
// the first is LowPass, the last HighPass, everything between BandPass.
func TypeAt(i, count int) Type {
	switch i {
	case 1:
		return LowPass
	case count:
		return HighPass
	default:
		return BandPass
	}
}

// BandFrequencies returns the center frequency of every section Build
// would create, in processing order.
func BandFrequencies(bands int, sampleRate float32, spacing Spacing) ([]float32, error) {
	if bands < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBandCount, bands)
	}

	count := SectionCount(bands)
	freqs := make([]float32, count)

	for i := 1; i <= count; i++ {
		switch spacing {
		case SpacingBelowNyquist:
			freqs[i-1] = sampleRate / nyquistDivisor * (float32(i) / float32(count+1))
		case SpacingProportional:
			freqs[i-1] = sampleRate * (float32(i) / float32(count))
		default:
			return nil, fmt.Errorf("%w: %d", ErrUnknownSpacing, int(spacing))
		}
	}

	return freqs, nil
}

// Build creates a multi-band equalizer of bands+2 sections: a LowPass
// bookend, bands BandPass sections, and a HighPass bookend, all at unit Q.
func Build(bands int, sampleRate float32, spacing Spacing, mode FrequencyMode) (*Chain, error) {
	freqs, err := BandFrequencies(bands, sampleRate, spacing)
	if err != nil {
		return nil, err
	}

	count := len(freqs)
	c := &Chain{sections: make([]*Section, 0, count)}

	for i, f0 := range freqs {
		t := TypeAt(i+1, count)
		if err := c.Add(t, sampleRate, f0, defaultBandQ, mode); err != nil {
			return nil, fmt.Errorf("section %d (%s at %v Hz): %w", i, t, f0, err)
		}
	}

	return c, nil
}
