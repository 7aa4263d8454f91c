package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	equalizer "github.com/tphakala/go-audio-equalizer"
)

func main() {
	// Command-line flags
	var (
		sampleRate = flag.Float64("rate", defaultSampleRate, "Sample rate in Hz")
		bands      = flag.Int("bands", defaultBands, "Number of band-pass sections between the bookends")
		spacing    = flag.String("spacing", "below-nyquist", "Band spacing: below-nyquist, proportional")
		mode       = flag.String("mode", "normalized", "Frequency mode: normalized, raw")
		coeffs     = flag.Bool("coeffs", false, "Print section coefficients")
		demo       = flag.Bool("demo", false, "Run a demonstration")
	)
	flag.Parse()

	if *demo {
		runDemo()
		return
	}

	sp, err := equalizer.ParseSpacing(*spacing)
	if err != nil {
		log.Fatal(err)
	}
	fm, err := equalizer.ParseFrequencyMode(*mode)
	if err != nil {
		log.Fatal(err)
	}

	config := equalizer.Config{
		SampleRate:    float32(*sampleRate),
		Bands:         *bands,
		Spacing:       sp,
		FrequencyMode: fm,
	}

	eq, err := equalizer.New(&config)
	if err != nil {
		log.Fatalf("Failed to create equalizer: %v", err)
	}

	fmt.Printf("Equalizer created:\n")
	fmt.Printf("  Sample rate: %g Hz\n", eq.SampleRate())
	fmt.Printf("  Sections: %d (%d bands + 2 bookends)\n", eq.NumBands(), *bands)
	fmt.Printf("  Spacing: %s, frequency mode: %s\n", sp, fm)
	printBands(eq)

	if *coeffs {
		fmt.Println("\nCoefficients:")
		for _, line := range coefficientLines(eq) {
			fmt.Println(line)
		}
	}

	fmt.Println("\nMagnitude response:")
	printResponse(eq)

	// Example: process a test signal
	fmt.Println("\nProcessing test signal...")
	testSignal := generateTestSignal(testSignalSamples, *sampleRate)
	output := make([]float32, len(testSignal))
	if err := eq.Process(testSignal, output); err != nil {
		log.Fatalf("Processing failed: %v", err)
	}

	fmt.Printf("Input RMS:  %.6f\n", rms(testSignal))
	fmt.Printf("Output RMS: %.6f\n", rms(output))
	fmt.Printf("Expected gain at %.0f Hz: %.2f dB\n", testSignalFrequency, eq.MagnitudeDB(testSignalFrequency))
}

func printBands(eq *equalizer.Equalizer) {
	for _, b := range eq.Bands() {
		fmt.Printf("  %2d: %-8s f0=%10.2f Hz  q=%.3f\n", b.Index, b.Type, b.CenterFrequency, b.GainOrQ)
	}
}

func printResponse(eq *equalizer.Equalizer) {
	nyquist := float64(eq.SampleRate()) / 2
	for _, f := range responseFrequencies {
		if f >= nyquist {
			break
		}
		fmt.Printf("  %7.0f Hz: %8.2f dB\n", f, eq.MagnitudeDB(f))
	}
}

// coefficientLines redesigns each band standalone from its reported
// parameters and formats its coefficients, pole stability and phase at
// the center frequency.
func coefficientLines(eq *equalizer.Equalizer) []string {
	cfg := eq.Config()
	lines := make([]string, 0, eq.NumBands())
	for _, b := range eq.Bands() {
		s, err := equalizer.NewSection(b.Type, cfg.SampleRate, b.CenterFrequency, b.GainOrQ, cfg.FrequencyMode)
		if err != nil {
			lines = append(lines, fmt.Sprintf("  %2d: %v", b.Index, err))
			continue
		}
		lines = append(lines, formatCoefficients(b.Index, s.Coefficients(), float64(b.CenterFrequency), float64(cfg.SampleRate)))
	}
	return lines
}

func formatCoefficients(i int, c equalizer.Coefficients, f0, rate float64) string {
	stability := "stable"
	if !c.IsStable() {
		stability = "UNSTABLE"
	}
	return fmt.Sprintf("  %2d: b=[% .6e % .6e % .6e] a=[% .6e % .6e % .6e] %s, phase(f0)=% .1f deg",
		i, c.B0, c.B1, c.B2, c.A0, c.A1, c.A2, stability, c.Phase(f0, rate)*180/math.Pi)
}

func generateTestSignal(samples int, sampleRate float64) []float32 {
	signal := make([]float32, samples)

	// Generate a 1kHz sine wave
	omega := 2 * math.Pi * testSignalFrequency / sampleRate

	for i := range signal {
		signal[i] = float32(testSignalAmplitude * math.Sin(omega*float64(i)))
	}

	return signal
}

func rms(s []float32) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(s)))
}

func runDemo() {
	fmt.Println("=== Go Audio Equalizer Demo ===")

	// Demo 1: Band layouts
	fmt.Println("1. Band Layouts")
	fmt.Println("---------------")

	layouts := []struct {
		rate  float32
		bands int
		name  string
	}{
		{sampleRateTelephony, demoBandsSmall, "Telephony"},
		{sampleRateCD, demoBandsMedium, "CD"},
		{sampleRateDAT, demoBandsMedium, "DAT"},
		{sampleRateHiRes, demoBandsLarge, "Hi-res"},
	}

	for _, l := range layouts {
		eq, err := equalizer.New(&equalizer.Config{SampleRate: l.rate, Bands: l.bands})
		if err != nil {
			fmt.Printf("  %s: Error - %v\n", l.name, err)
			continue
		}
		bands := eq.Bands()
		fmt.Printf("  %s (%.0f Hz, %d sections): %.1f Hz .. %.1f Hz\n",
			l.name, l.rate, len(bands), bands[0].CenterFrequency, bands[len(bands)-1].CenterFrequency)
	}

	// Demo 2: Spacing and frequency modes
	fmt.Println("\n2. Spacing and Frequency Modes")
	fmt.Println("------------------------------")

	modes := []struct {
		spacing equalizer.Spacing
		mode    equalizer.FrequencyMode
	}{
		{equalizer.SpacingBelowNyquist, equalizer.FrequencyNormalized},
		{equalizer.SpacingProportional, equalizer.FrequencyNormalized},
		{equalizer.SpacingProportional, equalizer.FrequencyRaw},
	}

	for _, m := range modes {
		_, err := equalizer.New(&equalizer.Config{
			SampleRate:    sampleRateDAT,
			Bands:         demoBandsSmall,
			Spacing:       m.spacing,
			FrequencyMode: m.mode,
		})
		status := "ok"
		if err != nil {
			status = err.Error()
		}
		fmt.Printf("  %s / %s: %s\n", m.spacing, m.mode, status)
	}

	// Demo 3: Retuning a band
	fmt.Println("\n3. Retuning a Band")
	fmt.Println("------------------")

	eq, err := equalizer.New(&equalizer.Config{SampleRate: sampleRateDAT, Bands: demoBandsSmall})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  Before: %.2f dB at %.0f Hz\n", eq.MagnitudeDB(testSignalFrequency), testSignalFrequency)
	if err := eq.SetBand(1, testSignalFrequency, 4); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  After band 1 -> %.0f Hz, peak gain 4: %.2f dB\n", testSignalFrequency, eq.MagnitudeDB(testSignalFrequency))

	if err := eq.SetBandEnabled(1, false); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("  Band 1 bypassed: %.2f dB\n", eq.MagnitudeDB(testSignalFrequency))

	fmt.Println("\n=== Demo Complete ===")
}
