package equalizer

import (
	"fmt"

	"github.com/tphakala/go-audio-equalizer/internal/simdops"
)

// Common sample rates for convenience functions.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000

	// RateHiRes192 is the very high resolution 4x DAT sample rate.
	RateHiRes192 = 192000

	// RateTelephony is the telephony (PSTN narrowband) sample rate.
	RateTelephony = 8000

	// RateVoIP is the VoIP wideband sample rate.
	RateVoIP = 16000

	// RateSpeech is the speech recognition common sample rate.
	RateSpeech = 22050
)

// NewDefault creates an equalizer with DefaultConfig at sampleRate.
func NewDefault(sampleRate float32) (*Equalizer, error) {
	return New(DefaultConfig(sampleRate))
}

// NewLowPass creates a single low-pass section behind a realtime Adapter.
func NewLowPass(sampleRate, f0, q float32, opts ...AdapterOption) (*Adapter[*Section], error) {
	s, err := NewSection(LowPass, sampleRate, f0, q, FrequencyNormalized)
	if err != nil {
		return nil, err
	}
	return NewAdapter(s, opts...), nil
}

// NewLowPassPreset creates the 400 Hz, Q 5 low-pass used by the live tool.
func NewLowPassPreset(sampleRate float32, opts ...AdapterOption) (*Adapter[*Section], error) {
	return NewLowPass(sampleRate, presetLowPassFreq, presetLowPassQ, opts...)
}

// ProcessMono is a convenience function for one-shot mono equalization.
// It creates an equalizer from config, filters input from silent history,
// and returns the result.
func ProcessMono(input []float32, config *Config) ([]float32, error) {
	e, err := New(config)
	if err != nil {
		return nil, err
	}

	output := make([]float32, len(input))
	if err := e.Process(input, output); err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}
	return output, nil
}

// ProcessStereo is a convenience function for one-shot stereo equalization.
// Each channel gets its own equalizer so histories stay independent.
func ProcessStereo(left, right []float32, config *Config) (leftOut, rightOut []float32, err error) {
	leftOut, err = ProcessMono(left, config)
	if err != nil {
		return nil, nil, err
	}

	rightOut, err = ProcessMono(right, config)
	if err != nil {
		return nil, nil, err
	}

	return leftOut, rightOut, nil
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []float32) []float32 {
	return simdops.Interleave(left, right)
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
func DeinterleaveFromStereo(interleaved []float32) (left, right []float32) {
	return simdops.Deinterleave(interleaved)
}

// ApplyGain scales buf in place by gain.
func ApplyGain(buf []float32, gain float32) {
	simdops.Gain(buf, buf, gain)
}
