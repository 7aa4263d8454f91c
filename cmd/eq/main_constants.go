package main

// Default command-line flag values
const (
	defaultSampleRate = 48000.0 // DAT/DVD sample rate
	defaultBands      = 10
)

// Test signal parameters
const (
	testSignalFrequency = 1000.0 // 1 kHz test tone
	testSignalSamples   = 4800   // Default test signal length
	testSignalAmplitude = 0.5
)

// Demo sample rates
const (
	sampleRateTelephony = 8000.0  // PSTN narrowband
	sampleRateCD        = 44100.0 // CD quality
	sampleRateDAT       = 48000.0 // DAT/DVD
	sampleRateHiRes     = 96000.0 // Hi-res audio
)

// Demo band counts
const (
	demoBandsSmall  = 3
	demoBandsMedium = 10
	demoBandsLarge  = 31
)

// Frequencies listed in the magnitude printout, in Hz
var responseFrequencies = []float64{50, 100, 250, 500, 1000, 2000, 4000, 8000, 16000}
