package equalizer

import (
	"errors"
	"math"
	"testing"
)

func stereoSine(channels, numSamples int, rate float64) [][]float32 {
	input := make([][]float32, channels)
	for ch := range channels {
		input[ch] = make([]float32, numSamples)
		// Different phases per channel so mixing them up would be visible.
		phase := float64(ch) * math.Pi / 4
		for i := range numSamples {
			input[ch][i] = float32(math.Sin(2*math.Pi*1000*float64(i)/rate + phase))
		}
	}
	return input
}

// TestProcessMultiParallel tests that parallel processing produces correct results.
func TestProcessMultiParallel(t *testing.T) {
	const (
		rate       = 44100.0
		channels   = 2
		numSamples = 4410
	)

	input := stereoSine(channels, numSamples, rate)
	config := DefaultConfig(rate)

	seq, err := NewMultiChannel(config, channels, false)
	if err != nil {
		t.Fatalf("Failed to create sequential equalizer: %v", err)
	}
	par, err := NewMultiChannel(config, channels, true)
	if err != nil {
		t.Fatalf("Failed to create parallel equalizer: %v", err)
	}

	outputSeq, err := seq.ProcessMulti(input)
	if err != nil {
		t.Fatalf("Sequential ProcessMulti failed: %v", err)
	}
	outputPar, err := par.ProcessMulti(input)
	if err != nil {
		t.Fatalf("Parallel ProcessMulti failed: %v", err)
	}

	for ch := range channels {
		if len(outputSeq[ch]) != len(outputPar[ch]) {
			t.Fatalf("Channel %d length mismatch: seq=%d, par=%d",
				ch, len(outputSeq[ch]), len(outputPar[ch]))
		}

		// Bit-exact: each channel runs the same code on the same input.
		for i := range outputSeq[ch] {
			if outputSeq[ch][i] != outputPar[ch][i] {
				t.Errorf("Channel %d sample %d mismatch: seq=%v, par=%v",
					ch, i, outputSeq[ch][i], outputPar[ch][i])
				break
			}
		}
	}
}

// TestProcessMultiChannelIndependence verifies channels keep separate history.
func TestProcessMultiChannelIndependence(t *testing.T) {
	const (
		rate       = 48000.0
		numSamples = 4800
	)

	m, err := NewMultiChannel(DefaultConfig(rate), 2, true)
	if err != nil {
		t.Fatalf("Failed to create equalizer: %v", err)
	}

	input := stereoSine(2, numSamples, rate)
	input[0] = make([]float32, numSamples) // silent channel

	output, err := m.ProcessMulti(input)
	if err != nil {
		t.Fatalf("ProcessMulti failed: %v", err)
	}

	for i, v := range output[0] {
		if v != 0 {
			t.Fatalf("Silent channel has non-zero output at %d: %v", i, v)
		}
	}

	var peak float64
	for _, v := range output[1] {
		peak = math.Max(peak, math.Abs(float64(v)))
	}
	if peak == 0 {
		t.Error("Signal channel produced silence")
	}
}

func TestProcessMultiChannelCount(t *testing.T) {
	m, err := NewMultiChannel(DefaultConfig(RateDAT), 2, false)
	if err != nil {
		t.Fatalf("Failed to create equalizer: %v", err)
	}
	if _, err := m.ProcessMulti(make([][]float32, 3)); err == nil {
		t.Error("expected error for wrong channel count")
	}

	if _, err := NewMultiChannel(DefaultConfig(RateDAT), 0, false); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := NewMultiChannel(&Config{SampleRate: -1}, 2, false); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestMultiChannelSetBand(t *testing.T) {
	m, err := NewMultiChannel(DefaultConfig(RateDAT), 2, false)
	if err != nil {
		t.Fatalf("Failed to create equalizer: %v", err)
	}

	if err := m.SetBand(2, 3000, 4); err != nil {
		t.Fatalf("SetBand failed: %v", err)
	}
	if err := m.SetBandEnabled(1, false); err != nil {
		t.Fatalf("SetBandEnabled failed: %v", err)
	}

	for ch := range m.Channels() {
		b, err := m.Channel(ch).Band(2)
		if err != nil {
			t.Fatalf("Band failed: %v", err)
		}
		if b.CenterFrequency != 3000 || b.GainOrQ != 4 {
			t.Errorf("channel %d band 2 = %+v", ch, b)
		}
		b, _ = m.Channel(ch).Band(1)
		if b.Enabled {
			t.Errorf("channel %d band 1 still enabled", ch)
		}
	}

	if err := m.SetBand(99, 1000, 1); !errors.Is(err, ErrBandIndex) {
		t.Errorf("expected ErrBandIndex, got %v", err)
	}
	m.Reset()
}

// BenchmarkProcessMultiSequential benchmarks sequential multi-channel processing.
func BenchmarkProcessMultiSequential(b *testing.B) {
	benchmarkProcessMulti(b, false)
}

// BenchmarkProcessMultiParallel benchmarks parallel multi-channel processing.
func BenchmarkProcessMultiParallel(b *testing.B) {
	benchmarkProcessMulti(b, true)
}

func benchmarkProcessMulti(b *testing.B, parallel bool) {
	b.Helper()

	const (
		rate       = 44100.0
		channels   = 2
		numSamples = 44100 // 1 second of audio
	)

	m, err := NewMultiChannel(DefaultConfig(rate), channels, parallel)
	if err != nil {
		b.Fatalf("Failed to create equalizer: %v", err)
	}
	input := stereoSine(channels, numSamples, rate)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := m.ProcessMulti(input); err != nil {
			b.Fatalf("ProcessMulti failed: %v", err)
		}
		m.Reset()
	}
}
