package equalizer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tphakala/go-audio-equalizer/internal/mathutil"
)

// FallbackMode selects what the audio path writes when it cannot acquire
// the processor without blocking.
type FallbackMode int

const (
	// FallbackSilence writes zeros.
	FallbackSilence FallbackMode = iota

	// FallbackPassThrough copies the input unprocessed.
	FallbackPassThrough

	// FallbackLastGood repeats the most recent successfully processed
	// buffer, zero-padded if the current buffer is longer.
	FallbackLastGood
)

// String returns the fallback name.
func (m FallbackMode) String() string {
	switch m {
	case FallbackSilence:
		return "silence"
	case FallbackPassThrough:
		return "pass-through"
	case FallbackLastGood:
		return "last-good"
	default:
		return fmt.Sprintf("FallbackMode(%d)", int(m))
	}
}

// ParseFallbackMode converts a name such as "silence", "pass-through" or
// "last-good" to a FallbackMode. The empty string selects FallbackSilence.
func ParseFallbackMode(s string) (FallbackMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "silence", "mute":
		return FallbackSilence, nil
	case "pass-through", "passthrough", "bypass":
		return FallbackPassThrough, nil
	case "last-good", "lastgood", "repeat":
		return FallbackLastGood, nil
	default:
		return 0, fmt.Errorf("%w: unknown fallback %q", ErrInvalidConfig, s)
	}
}

// Config holds equalizer configuration.
type Config struct {
	// SampleRate is the operating sample rate in Hz, supplied once by the
	// audio transport.
	SampleRate float32

	// Bands is the number of band-pass sections between the low-pass and
	// high-pass bookends. Zero yields just the two bookends.
	Bands int

	// Spacing places band center frequencies. The zero value keeps every
	// section below Nyquist.
	Spacing Spacing

	// FrequencyMode selects whether center frequencies are divided by the
	// sample rate before entering the design formulas.
	FrequencyMode FrequencyMode

	// Fallback selects the audio path's output when the equalizer is busy
	// with a parameter update.
	Fallback FallbackMode

	// MaxBlockSize bounds the buffer remembered for FallbackLastGood.
	// Set to 0 to use the default.
	MaxBlockSize int

	// Logger receives realtime diagnostics (skipped and truncated buffers).
	// Nil discards them.
	Logger *slog.Logger
}

// Common errors returned by the equalizer.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid equalizer configuration")

	// ErrBandIndex indicates a band index outside the equalizer.
	ErrBandIndex = errors.New("band index out of range")

	// ErrContended indicates the audio path found the processor locked by a
	// control update and applied the fallback instead of filtering.
	ErrContended = errors.New("processor busy, buffer skipped")

	// ErrLengthMismatch indicates input and output buffers of different
	// lengths. The shorter length was processed and the rest of the output
	// zeroed.
	ErrLengthMismatch = errors.New("buffer length mismatch")
)

// DefaultConfig returns a configuration with defaultBands bands at the
// given sample rate.
func DefaultConfig(sampleRate float32) *Config {
	return &Config{
		SampleRate:   sampleRate,
		Bands:        defaultBands,
		MaxBlockSize: defaultMaxBlockSize,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !mathutil.IsFinite32(c.SampleRate) || c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}

	if c.SampleRate > maxSampleRate {
		return fmt.Errorf("%w: sample rate above %v Hz", ErrInvalidConfig, maxSampleRate)
	}

	if c.Bands < 0 {
		return fmt.Errorf("%w: bands must not be negative", ErrInvalidConfig)
	}

	if c.Bands > maxBands {
		return fmt.Errorf("%w: too many bands (max %d)", ErrInvalidConfig, maxBands)
	}

	switch c.Spacing {
	case SpacingBelowNyquist, SpacingProportional:
	default:
		return fmt.Errorf("%w: unknown spacing %d", ErrInvalidConfig, int(c.Spacing))
	}

	switch c.FrequencyMode {
	case FrequencyNormalized, FrequencyRaw:
	default:
		return fmt.Errorf("%w: unknown frequency mode %d", ErrInvalidConfig, int(c.FrequencyMode))
	}

	switch c.Fallback {
	case FallbackSilence, FallbackPassThrough, FallbackLastGood:
	default:
		return fmt.Errorf("%w: unknown fallback %d", ErrInvalidConfig, int(c.Fallback))
	}

	if c.MaxBlockSize < 0 {
		return fmt.Errorf("%w: max block size must not be negative", ErrInvalidConfig)
	}

	return nil
}

// discardLogger is used when no logger is configured.
func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
