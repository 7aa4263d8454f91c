// Package analysis measures equalizer behavior offline: the FFT spectrum of
// an impulse response, peak search, and signal levels. It is used by the
// analysis CLI and by tests that cross-check the analytic response.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/tphakala/go-audio-equalizer/internal/mathutil"
	"github.com/tphakala/simd/c128"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// DefaultFFTSize is the transform length used when none is given.
const DefaultFFTSize = 8192

// fftHermitianDivisor: a real FFT of size N has N/2+1 unique bins.
const fftHermitianDivisor = 2

var (
	// ErrEmptyInput indicates an empty impulse response or signal.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidFFTSize indicates an FFT size that is not a positive power of two.
	ErrInvalidFFTSize = errors.New("FFT size must be a positive power of two")

	// ErrSizeMismatch indicates spectra that cannot be combined.
	ErrSizeMismatch = errors.New("spectrum size mismatch")
)

// Spectrum is the one-sided frequency response of a real sequence.
type Spectrum struct {
	SampleRate float64
	FFTSize    int

	// Bins holds the complex response for bins 0..FFTSize/2.
	Bins []complex128
}

// ImpulseSpectrum transforms an impulse response. The response is
// zero-padded (or truncated) to fftSize; fftSize 0 selects DefaultFFTSize.
func ImpulseSpectrum(ir []float32, sampleRate float64, fftSize int) (*Spectrum, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyInput
	}
	if fftSize == 0 {
		fftSize = DefaultFFTSize
	}
	if fftSize < 0 || bits.OnesCount(uint(fftSize)) != 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}

	seq := make([]float64, fftSize)
	for i := range min(len(ir), fftSize) {
		seq[i] = float64(ir[i])
	}

	fft := fourier.NewFFT(fftSize)
	return &Spectrum{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		Bins:       fft.Coefficients(nil, seq),
	}, nil
}

// Cascade returns the response of s followed by other, the bin-wise
// product of both spectra.
func (s *Spectrum) Cascade(other *Spectrum) (*Spectrum, error) {
	if s.FFTSize != other.FFTSize || len(s.Bins) != len(other.Bins) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrSizeMismatch, s.FFTSize, other.FFTSize)
	}

	out := &Spectrum{
		SampleRate: s.SampleRate,
		FFTSize:    s.FFTSize,
		Bins:       make([]complex128, len(s.Bins)),
	}
	c128.Mul(out.Bins, s.Bins, other.Bins)
	return out, nil
}

// Len returns the number of bins.
func (s *Spectrum) Len() int { return len(s.Bins) }

// Freq returns the center frequency of bin i in Hz.
func (s *Spectrum) Freq(i int) float64 {
	return float64(i) * s.SampleRate / float64(s.FFTSize)
}

// Bin returns the bin index nearest to freqHz, clamped to the valid range.
func (s *Spectrum) Bin(freqHz float64) int {
	i := int(math.Round(freqHz * float64(s.FFTSize) / s.SampleRate))
	return max(0, min(i, s.FFTSize/fftHermitianDivisor))
}

// Frequencies returns the frequency of every bin in Hz.
func (s *Spectrum) Frequencies() []float64 {
	f := make([]float64, len(s.Bins))
	for i := range f {
		f[i] = s.Freq(i)
	}
	return f
}

// MagnitudeDB returns 20·log10|H| for every bin.
func (s *Spectrum) MagnitudeDB() []float64 {
	db := make([]float64, len(s.Bins))
	for i, b := range s.Bins {
		db[i] = mathutil.AmplitudeToDB(math.Hypot(real(b), imag(b)))
	}
	return db
}

// At returns the magnitude in dB at the bin nearest to freqHz.
func (s *Spectrum) At(freqHz float64) float64 {
	b := s.Bins[s.Bin(freqHz)]
	return mathutil.AmplitudeToDB(math.Hypot(real(b), imag(b)))
}

// Peak returns the frequency and level of the loudest bin.
func (s *Spectrum) Peak() (freqHz, db float64) {
	mags := s.MagnitudeDB()
	i := floats.MaxIdx(mags)
	return s.Freq(i), mags[i]
}

// MaxDeviation returns the largest absolute difference in dB between the
// spectrum and an analytic response, over bins in [loHz, hiHz]. Levels below
// floorDB on both sides are clipped to floorDB before comparing.
func (s *Spectrum) MaxDeviation(analytic func(freqHz float64) float64, loHz, hiHz, floorDB float64) float64 {
	lo, hi := s.Bin(loHz), s.Bin(hiHz)
	if hi < lo {
		return 0
	}

	mags := s.MagnitudeDB()[lo : hi+1]
	want := make([]float64, len(mags))
	for i := range want {
		want[i] = max(analytic(s.Freq(lo+i)), floorDB)
		mags[i] = max(mags[i], floorDB)
	}
	return floats.Distance(mags, want, math.Inf(1))
}
