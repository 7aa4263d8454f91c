package equalizer

import "github.com/tphakala/go-audio-equalizer/internal/filter"

// Section and chain types re-exported from the filter engine.
type (
	// FilterType identifies a section's response shape.
	FilterType = filter.Type

	// FrequencyMode selects how center frequencies enter the design formulas.
	FrequencyMode = filter.FrequencyMode

	// Spacing selects how band center frequencies are placed.
	Spacing = filter.Spacing

	// Coefficients is the un-normalized transfer function of one section.
	Coefficients = filter.Coefficients

	// DelayState is a section's two-sample input and output history.
	DelayState = filter.DelayState

	// Section is a single biquad with its own history.
	Section = filter.Section

	// Chain is an ordered cascade of sections.
	Chain = filter.Chain
)

// Filter types.
const (
	LowPass  = filter.LowPass
	HighPass = filter.HighPass
	BandPass = filter.BandPass
)

// Frequency modes.
const (
	FrequencyNormalized = filter.FrequencyNormalized
	FrequencyRaw        = filter.FrequencyRaw
)

// Band spacings.
const (
	SpacingBelowNyquist = filter.SpacingBelowNyquist
	SpacingProportional = filter.SpacingProportional
)

// Design errors, usable with errors.Is on anything this package returns.
var (
	ErrInvalidSampleRate = filter.ErrInvalidSampleRate
	ErrInvalidFrequency  = filter.ErrInvalidFrequency
	ErrAboveNyquist      = filter.ErrAboveNyquist
	ErrInvalidQ          = filter.ErrInvalidQ
	ErrUnknownType       = filter.ErrUnknownType
	ErrUnknownMode       = filter.ErrUnknownMode
	ErrDegenerate        = filter.ErrDegenerate
	ErrInvalidBandCount  = filter.ErrInvalidBandCount
	ErrUnknownSpacing    = filter.ErrUnknownSpacing
)

// NewSection designs a standalone section.
func NewSection(t FilterType, sampleRate, f0, q float32, mode FrequencyMode) (*Section, error) {
	return filter.NewSection(t, sampleRate, f0, q, mode)
}

// NewChain creates a cascade from the given sections, in order.
func NewChain(sections ...*Section) *Chain {
	return filter.NewChain(sections...)
}

// ParseFilterType converts a name such as "lowpass" or "bp" to a FilterType.
func ParseFilterType(s string) (FilterType, error) {
	return filter.ParseType(s)
}

// ParseFrequencyMode converts "normalized" or "raw" to a FrequencyMode.
func ParseFrequencyMode(s string) (FrequencyMode, error) {
	return filter.ParseFrequencyMode(s)
}

// ParseSpacing converts "below-nyquist" or "proportional" to a Spacing.
func ParseSpacing(s string) (Spacing, error) {
	return filter.ParseSpacing(s)
}
