package equalizer

// Configuration limits
const (
	maxBands      = 256      // Maximum number of band-pass sections
	maxSampleRate = 768000.0 // Highest accepted sample rate in Hz

	defaultBands = 10 // Band count used by DefaultConfig
)

// Realtime adapter constants
const (
	// defaultMaxBlockSize bounds the last-good buffer kept for
	// FallbackLastGood. Larger transport buffers are only partly repeated.
	defaultMaxBlockSize = 4096
)

// Preset for the single-section live filter.
const (
	presetLowPassFreq = 400.0 // Hz
	presetLowPassQ    = 5.0
)
