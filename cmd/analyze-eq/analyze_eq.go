// Command analyze-eq cross-checks an equalizer's analytic magnitude
// response against the FFT of its measured impulse response, per band and
// for the whole chain.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	equalizer "github.com/tphakala/go-audio-equalizer"
	"github.com/tphakala/go-audio-equalizer/internal/analysis"
)

const (
	defaultSampleRate = 48000.0
	defaultBands      = 10

	// Frequency range compared against the analytic response
	compareLoHz = 20.0

	// Bins below this level are noise-dominated and skipped
	floorDB = -60.0

	// Fraction of Nyquist used as the upper comparison edge
	nyquistFraction = 0.95

	// Test tone for the level check
	toneHz        = 1000.0
	toneAmplitude = 0.5
	toneSamples   = 48000
)

// bandReport is the measurement for a single section.
type bandReport struct {
	band     equalizer.Band
	peakHz   float64
	peakDB   float64
	maxDevDB float64
}

// chainReport is the measurement for the whole equalizer.
type chainReport struct {
	bands        []bandReport
	chainDevDB   float64
	cascadeDevDB float64
	peakHz       float64
	peakDB       float64
	toneGainDB   float64
	toneExpectDB float64
}

func main() {
	sampleRate := flag.Float64("rate", defaultSampleRate, "Sample rate in Hz")
	bands := flag.Int("bands", defaultBands, "Number of band-pass sections between the bookends")
	fftSize := flag.Int("fft", analysis.DefaultFFTSize, "FFT size (power of two)")
	flag.Parse()

	eq, err := equalizer.New(&equalizer.Config{
		SampleRate: float32(*sampleRate),
		Bands:      *bands,
	})
	if err != nil {
		log.Fatalf("Failed to create equalizer: %v", err)
	}

	fmt.Println("=== Analyzing Equalizer Response ===")
	fmt.Printf("  Sample rate: %.0f Hz, sections: %d, FFT size: %d\n\n", *sampleRate, eq.NumBands(), *fftSize)

	report, err := analyze(eq, *fftSize)
	if err != nil {
		log.Fatal(err)
	}
	printReport(report)
}

// analyze measures each section and the full chain of eq.
func analyze(eq *equalizer.Equalizer, fftSize int) (*chainReport, error) {
	cfg := eq.Config()
	rate := float64(cfg.SampleRate)
	hi := rate / 2 * nyquistFraction
	if fftSize == 0 {
		fftSize = analysis.DefaultFFTSize
	}

	report := &chainReport{}
	var cascade *analysis.Spectrum

	for _, b := range eq.Bands() {
		s, err := equalizer.NewSection(b.Type, cfg.SampleRate, b.CenterFrequency, b.GainOrQ, cfg.FrequencyMode)
		if err != nil {
			return nil, fmt.Errorf("band %d: %w", b.Index, err)
		}
		s.SetEnabled(b.Enabled)

		spec, err := analysis.ImpulseSpectrum(s.ImpulseResponse(fftSize), rate, fftSize)
		if err != nil {
			return nil, fmt.Errorf("band %d: %w", b.Index, err)
		}

		coeffs := s.Coefficients()
		analytic := func(f float64) float64 {
			if !b.Enabled {
				return 0
			}
			return coeffs.MagnitudeDB(f, rate)
		}

		br := bandReport{band: b, maxDevDB: spec.MaxDeviation(analytic, compareLoHz, hi, floorDB)}
		br.peakHz, br.peakDB = spec.Peak()
		report.bands = append(report.bands, br)

		if cascade == nil {
			cascade = spec
		} else if cascade, err = cascade.Cascade(spec); err != nil {
			return nil, err
		}
	}

	chainSpec, err := analysis.ImpulseSpectrum(eq.ImpulseResponse(fftSize), rate, fftSize)
	if err != nil {
		return nil, err
	}
	report.chainDevDB = chainSpec.MaxDeviation(eq.MagnitudeDB, compareLoHz, hi, floorDB)
	report.peakHz, report.peakDB = chainSpec.Peak()
	if cascade != nil {
		report.cascadeDevDB = cascade.MaxDeviation(eq.MagnitudeDB, compareLoHz, hi, floorDB)
	}

	// Measure a steady tone through a fresh copy of the chain
	replica, err := equalizer.New(&cfg)
	if err != nil {
		return nil, err
	}
	for _, b := range eq.Bands() {
		if err := replica.SetBand(b.Index, b.CenterFrequency, b.GainOrQ); err != nil {
			return nil, err
		}
		if err := replica.SetBandEnabled(b.Index, b.Enabled); err != nil {
			return nil, err
		}
	}
	if toneHz < rate/2 {
		in := make([]float32, toneSamples)
		for i := range in {
			in[i] = float32(toneAmplitude * math.Sin(2*math.Pi*toneHz*float64(i)/rate))
		}
		out := make([]float32, len(in))
		if err := replica.Process(in, out); err != nil {
			return nil, err
		}
		// Skip the first half to let the transient settle
		half := len(in) / 2
		report.toneGainDB = analysis.GainDB(in[half:], out[half:])
		report.toneExpectDB = eq.MagnitudeDB(toneHz)
	}

	return report, nil
}

func printReport(r *chainReport) {
	fmt.Println("Per-band response (analytic vs FFT of impulse response):")
	for _, b := range r.bands {
		state := ""
		if !b.band.Enabled {
			state = " (bypassed)"
		}
		fmt.Printf("  %2d %-8s f0=%9.2f Hz q=%6.3f  peak %9.2f Hz %7.2f dB  max dev %.4f dB%s\n",
			b.band.Index, b.band.Type, b.band.CenterFrequency, b.band.GainOrQ,
			b.peakHz, b.peakDB, b.maxDevDB, state)
	}

	fmt.Printf("\nWhole chain:\n")
	fmt.Printf("  Peak: %.2f dB at %.2f Hz\n", r.peakDB, r.peakHz)
	fmt.Printf("  Max deviation (impulse response FFT): %.4f dB\n", r.chainDevDB)
	fmt.Printf("  Max deviation (product of band spectra): %.4f dB\n", r.cascadeDevDB)
	fmt.Printf("  %.0f Hz tone: measured %.3f dB, analytic %.3f dB\n", toneHz, r.toneGainDB, r.toneExpectDB)
}
