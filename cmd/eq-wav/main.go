// Command eq-wav runs WAV audio files through a multi-band equalizer.
//
// Usage:
//
//	eq-wav input.wav output.wav
//	eq-wav -bands 6 -band 3:1000:4 input.wav output.wav   # Boost band 3 at 1 kHz
//	eq-wav -bypass 0 -bypass 7 input.wav output.wav       # Disable both bookends of a 6-band chain
//	eq-wav -gain -6 -parallel=false input.wav out.wav     # Sequential processing, -6 dB output
//
// Each channel gets its own filter history. Parallel processing is enabled
// by default for stereo/multichannel files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	equalizer "github.com/tphakala/go-audio-equalizer"
	"github.com/tphakala/go-audio-equalizer/internal/simdops"
)

const (
	// Frames per processing chunk
	bufferSize = 65536

	// Channel count constants for fast paths
	monoChannels   = 1
	stereoChannels = 2

	// Sample format constants
	bitsPerSample8  = 8
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt8          = 127.0
	maxInt16         = 32767.0
	maxInt24         = 8388607.0
	maxInt32         = 2147483647.0
	progressInterval = 10 // Print progress every N%

	// CLI defaults
	minRequiredArgs = 2
	percentScale    = 100
	dbPerDecade     = 20

	// WAV format tag for integer PCM
	wavFormatPCM = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// bandSetting is one -band flag value, "index:f0:q".
type bandSetting struct {
	index int
	f0    float32
	q     float32
}

// bandFlags collects repeated -band values.
type bandFlags []bandSetting

func (b *bandFlags) String() string {
	parts := make([]string, len(*b))
	for i, s := range *b {
		parts[i] = fmt.Sprintf("%d:%g:%g", s.index, s.f0, s.q)
	}
	return strings.Join(parts, ",")
}

func (b *bandFlags) Set(v string) error {
	s, err := parseBandSetting(v)
	if err != nil {
		return err
	}
	*b = append(*b, s)
	return nil
}

// bypassFlags collects repeated -bypass band indices.
type bypassFlags []int

func (b *bypassFlags) String() string {
	parts := make([]string, len(*b))
	for i, v := range *b {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (b *bypassFlags) Set(v string) error {
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid band index %q: %w", v, err)
	}
	*b = append(*b, i)
	return nil
}

func parseBandSetting(v string) (bandSetting, error) {
	parts := strings.Split(v, ":")
	if len(parts) != 3 {
		return bandSetting{}, fmt.Errorf("band setting %q: want index:f0:q", v)
	}
	i, err := strconv.Atoi(parts[0])
	if err != nil {
		return bandSetting{}, fmt.Errorf("band setting %q: index: %w", v, err)
	}
	f0, err := strconv.ParseFloat(parts[1], 32)
	if err != nil {
		return bandSetting{}, fmt.Errorf("band setting %q: f0: %w", v, err)
	}
	q, err := strconv.ParseFloat(parts[2], 32)
	if err != nil {
		return bandSetting{}, fmt.Errorf("band setting %q: q: %w", v, err)
	}
	return bandSetting{index: i, f0: float32(f0), q: float32(q)}, nil
}

// eqOptions holds everything run needs besides the file paths.
type eqOptions struct {
	bands    int
	spacing  equalizer.Spacing
	mode     equalizer.FrequencyMode
	settings bandFlags
	bypass   bypassFlags
	gainDB   float64
	parallel bool
	verbose  bool
}

func run() error {
	var opts eqOptions

	// Parse command line flags
	flag.IntVar(&opts.bands, "bands", 10, "Number of band-pass sections between the bookends")
	spacing := flag.String("spacing", "below-nyquist", "Band spacing: below-nyquist, proportional")
	mode := flag.String("mode", "normalized", "Frequency mode: normalized, raw")
	flag.Var(&opts.settings, "band", "Band setting index:f0:q (repeatable)")
	flag.Var(&opts.bypass, "bypass", "Band index to bypass (repeatable)")
	flag.Float64Var(&opts.gainDB, "gain", 0, "Output gain in dB")
	flag.BoolVar(&opts.parallel, "parallel", true, "Enable parallel channel processing (faster for stereo/multichannel)")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	flag.Parse()

	// Validate arguments before setting up profiling
	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s in.wav out.wav                       # Default 10-band layout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -band 0:400:5 -bands 0 in.wav out.wav # 400 Hz low-pass into high-pass\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	var err error
	if opts.spacing, err = equalizer.ParseSpacing(*spacing); err != nil {
		return err
	}
	if opts.mode, err = equalizer.ParseFrequencyMode(*mode); err != nil {
		return err
	}

	// Start CPU profiling if requested (for PGO)
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath := args[0]
	outputPath := args[1]

	if opts.verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Bands: %d, spacing: %s, mode: %s", opts.bands, opts.spacing, opts.mode)
		if opts.parallel {
			log.Printf("Parallel: enabled (concurrent channel processing)")
		} else {
			log.Printf("Parallel: disabled (sequential processing)")
		}
	}

	// Process the file
	start := time.Now()
	stats, err := equalizeWAV(inputPath, outputPath, &opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	// Print summary
	fmt.Printf("Equalized %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz, %d channels, %d-bit, %d sections\n",
		stats.sampleRate, stats.channels, stats.bitDepth, stats.sections)
	fmt.Printf("  %d frames, clipped %d samples\n", stats.frames, stats.clipped)
	fmt.Printf("  RMS in %.4f, out %.4f\n", stats.inputRMS(), stats.outputRMS())
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.frames)/float64(stats.sampleRate)/elapsed.Seconds())

	return nil
}

type eqStats struct {
	sampleRate   int
	channels     int
	bitDepth     int
	sections     int
	frames       int64
	clipped      int64
	inputEnergy  float64
	outputEnergy float64
	energyCount  int64
}

func (s *eqStats) inputRMS() float64 {
	if s.energyCount == 0 {
		return 0
	}
	return math.Sqrt(s.inputEnergy / float64(s.energyCount))
}

func (s *eqStats) outputRMS() float64 {
	if s.energyCount == 0 {
		return 0
	}
	return math.Sqrt(s.outputEnergy / float64(s.energyCount))
}

// accumulate adds the energy of one chunk of per-channel buffers.
func (s *eqStats) accumulate(in, out [][]float32) {
	for ch := range in {
		s.inputEnergy += float64(simdops.Energy(in[ch]))
		s.outputEnergy += float64(simdops.Energy(out[ch]))
		s.energyCount += int64(len(in[ch]))
	}
}

func equalizeWAV(inputPath, outputPath string, opts *eqOptions) (stats *eqStats, err error) {
	// 1. Open and validate input
	input, err := openWAVInput(inputPath, opts.verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	// 2. Create per-channel equalizers
	mc, err := createMultiChannel(input.rate, input.channels, opts)
	if err != nil {
		return nil, err
	}

	// 3. Create output writer
	output, err := createWAVOutput(outputPath, input.rate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (important for WAV header updates)
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	// 4. Initialize processing buffers
	buffers := newEQBuffers(input.channels, input.bitDepth, input.format)
	gain := float32(math.Pow(10, opts.gainDB/dbPerDecade))

	// 5. Initialize tracking
	stats = &eqStats{
		sampleRate: input.rate,
		channels:   input.channels,
		bitDepth:   input.bitDepth,
		sections:   mc.Channel(0).NumBands(),
	}
	progress := newProgressTracker(input.totalSamples, opts.verbose)

	// 6. Main processing loop
	for {
		n, err := input.decoder.PCMBuffer(buffers.intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		frames := n / input.channels
		if frames == 0 {
			break
		}

		stats.frames += int64(frames)

		deinterleaveInto(buffers.intBuffer.Data, buffers.channelBufs, input.channels, frames, buffers.invMaxVal)

		in := buffers.view(frames)
		out, err := mc.ProcessMulti(in)
		if err != nil {
			return nil, err
		}
		if gain != 1 {
			for ch := range out {
				simdops.Gain(out[ch], out[ch], gain)
			}
		}
		stats.accumulate(in, out)

		outputLen, clipped := interleaveInto(out, buffers.outputIntBuf, buffers.maxVal)
		stats.clipped += int64(clipped)

		if err := output.WriteSamples(buffers.outputIntBuf[:outputLen]); err != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", err)
		}

		progress.reportIfNeeded(stats.frames)
	}

	return stats, nil
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample8:
		return maxInt8
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleaveInto converts interleaved int samples into preallocated
// per-channel buffers scaled to [-1, 1].
func deinterleaveInto(data []int, channelBufs [][]float32, numChannels, frames int, invMaxVal float64) {
	// Fast path for mono
	if numChannels == monoChannels {
		buf := channelBufs[0]
		for i := range frames {
			buf[i] = float32(float64(data[i]) * invMaxVal)
		}
		return
	}

	// Fast path for stereo
	if numChannels == stereoChannels {
		buf0, buf1 := channelBufs[0], channelBufs[1]
		for i := range frames {
			idx := i * stereoChannels
			buf0[i] = float32(float64(data[idx]) * invMaxVal)
			buf1[i] = float32(float64(data[idx+1]) * invMaxVal)
		}
		return
	}

	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = float32(float64(data[base+ch]) * invMaxVal)
		}
	}
}

// clampUnit limits s to [-1, 1] and reports whether it had to.
func clampUnit(s float64) (float64, bool) {
	switch {
	case s > 1:
		return 1, true
	case s < -1:
		return -1, true
	default:
		return s, false
	}
}

// interleaveInto converts per-channel float slices into a preallocated int
// buffer. It returns the number of elements written and how many samples
// were clipped.
func interleaveInto(channels [][]float32, dst []int, maxVal float64) (written, clipped int) {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return 0, 0
	}

	numChannels := len(channels)
	frames := len(channels[0])
	totalLen := frames * numChannels
	if len(dst) < totalLen {
		return 0, 0
	}

	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			s, c := clampUnit(float64(channels[ch][i]))
			if c {
				clipped++
			}
			dst[base+ch] = int(math.Round(s * maxVal))
		}
	}

	return totalLen, clipped
}
