// Package equalizer provides a realtime multi-band audio equalizer built from
// second-order IIR (biquad) sections, in pure Go.
//
// # Features
//
//   - Low-pass, high-pass and constant skirt gain band-pass sections designed
//     with the RBJ cookbook formulas
//   - Ordered cascades with per-band bypass that preserves filter history
//   - Parameter updates that never clear history, so retuning does not click
//   - A realtime adapter whose audio path never blocks on parameter updates
//   - Analytic frequency response and impulse response helpers
//   - SIMD-accelerated interleaving and gain via github.com/tphakala/simd
//
// # Quick Start
//
// For one-shot equalization:
//
//	output, err := equalizer.ProcessMono(input, equalizer.DefaultConfig(48000))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For streaming from an audio callback:
//
//	eq, err := equalizer.New(&equalizer.Config{
//	    SampleRate: 48000,
//	    Bands:      8,
//	    Fallback:   equalizer.FallbackPassThrough,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Audio goroutine
//	if err := eq.Process(in, out); err != nil {
//	    // ErrContended or ErrLengthMismatch: out is still fully written.
//	}
//
//	// Any control goroutine
//	if err := eq.SetBand(3, 2500, 2); err != nil {
//	    log.Print(err)
//	}
//
// # Band Layout
//
// An equalizer with n bands has n+2 sections: a [LowPass] bookend, n
// [BandPass] sections and a [HighPass] bookend, all at unit Q. Center
// frequencies are evenly spaced. With [SpacingBelowNyquist] (the default)
// every section lies strictly between 0 Hz and Nyquist. [SpacingProportional]
// reproduces the classic sampleRate·i/(n+2) layout, whose upper sections sit
// at or above Nyquist; it only builds with [FrequencyRaw].
//
// # Frequency Modes
//
// [FrequencyNormalized] (the default) divides the center frequency by the
// sample rate before computing coefficients, so f0 is in Hz and must stay
// below Nyquist. [FrequencyRaw] feeds f0 to the trigonometric formulas
// unscaled; it exists for compatibility with equalizers tuned that way.
//
// # Thread Safety
//
// [Section] and [Chain] are not safe for concurrent use. [Adapter] and
// [Equalizer] are: the audio path uses a non-blocking lock attempt and
// applies the configured [FallbackMode] on contention, while control calls
// block until the audio path releases the processor. Process must be called
// from a single audio goroutine.
package equalizer
