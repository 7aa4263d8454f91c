package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	equalizer "github.com/tphakala/go-audio-equalizer"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file         *os.File
	decoder      *wav.Decoder
	rate         int
	channels     int
	bitDepth     int
	totalSamples int64
	format       *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	rate := format.SampleRate
	channels := format.NumChannels
	bitDepth := int(decoder.BitDepth)

	if channels < 1 {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s: no channels", path)
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", rate, channels, bitDepth)
	}

	// Total duration for progress reporting
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}
	totalSamples := int64(duration.Seconds() * float64(rate))

	return &wavInputInfo{
		file:         inputFile,
		decoder:      decoder,
		rate:         rate,
		channels:     channels,
		bitDepth:     bitDepth,
		totalSamples: totalSamples,
		format:       format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// createMultiChannel builds one equalizer per channel and applies the band
// settings and bypasses from opts to all of them.
func createMultiChannel(sampleRate, channels int, opts *eqOptions) (*equalizer.MultiChannel, error) {
	config := equalizer.Config{
		SampleRate:    float32(sampleRate),
		Bands:         opts.bands,
		Spacing:       opts.spacing,
		FrequencyMode: opts.mode,
	}

	mc, err := equalizer.NewMultiChannel(&config, channels, opts.parallel)
	if err != nil {
		return nil, fmt.Errorf("failed to create equalizer: %w", err)
	}

	for _, s := range opts.settings {
		if err := mc.SetBand(s.index, s.f0, s.q); err != nil {
			return nil, fmt.Errorf("band %d: %w", s.index, err)
		}
	}
	for _, i := range opts.bypass {
		if err := mc.SetBandEnabled(i, false); err != nil {
			return nil, fmt.Errorf("bypass band %d: %w", i, err)
		}
	}

	if opts.verbose {
		for _, b := range mc.Channel(0).Bands() {
			state := "on"
			if !b.Enabled {
				state = "bypassed"
			}
			log.Printf("  band %2d: %-8s %10.2f Hz  q=%.3f  %s", b.Index, b.Type, b.CenterFrequency, b.GainOrQ, state)
		}
	}

	return mc, nil
}

// wavOutputWriter wraps the output file and its encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
}

// createWAVOutput creates the output file and a PCM encoder matching the
// input format.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	encoder := wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM)

	return &wavOutputWriter{
		file:    outputFile,
		encoder: encoder,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{SampleRate: sampleRate, NumChannels: channels},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteSamples writes interleaved samples to the output file.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	if len(samples) == 0 {
		return nil
	}
	w.buf.Data = samples
	return w.encoder.Write(w.buf)
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// eqBuffers holds all preallocated buffers for one processing chunk.
type eqBuffers struct {
	intBuffer    *audio.IntBuffer
	channelBufs  [][]float32
	views        [][]float32
	outputIntBuf []int
	invMaxVal    float64
	maxVal       float64
}

// newEQBuffers creates and preallocates all processing buffers.
func newEQBuffers(channels, bitDepth int, format *audio.Format) *eqBuffers {
	intBuffer := &audio.IntBuffer{
		Data:   make([]int, bufferSize*channels),
		Format: format,
	}

	channelBufs := make([][]float32, channels)
	for ch := range channels {
		channelBufs[ch] = make([]float32, bufferSize)
	}

	maxVal := getMaxValue(bitDepth)

	return &eqBuffers{
		intBuffer:    intBuffer,
		channelBufs:  channelBufs,
		views:        make([][]float32, channels),
		outputIntBuf: make([]int, bufferSize*channels),
		invMaxVal:    1.0 / maxVal,
		maxVal:       maxVal,
	}
}

// view returns the first frames samples of every channel buffer.
func (b *eqBuffers) view(frames int) [][]float32 {
	for ch, buf := range b.channelBufs {
		b.views[ch] = buf[:frames]
	}
	return b.views
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalSamples int64
	lastProgress int
	verbose      bool
}

func newProgressTracker(totalSamples int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalSamples: totalSamples,
		verbose:      verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentSamples int64) {
	if !p.verbose || p.totalSamples == 0 {
		return
	}

	progress := int(float64(currentSamples) / float64(p.totalSamples) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}
