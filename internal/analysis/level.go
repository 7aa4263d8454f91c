package analysis

import (
	"math"

	"github.com/tphakala/go-audio-equalizer/internal/mathutil"
	"github.com/tphakala/go-audio-equalizer/internal/simdops"
)

// Level summarizes the amplitude of a signal.
type Level struct {
	RMS   float64
	RMSDB float64
	Peak  float64
	DC    float64
}

// MeasureLevel computes the level of s. An empty slice yields the zero
// Level with RMSDB at the dB floor.
func MeasureLevel(s []float32) Level {
	if len(s) == 0 {
		return Level{RMSDB: mathutil.FloorDB}
	}

	var peak float64
	for _, v := range s {
		peak = max(peak, math.Abs(float64(v)))
	}

	rms := simdops.RMS(s)
	return Level{
		RMS:   rms,
		RMSDB: mathutil.PowerToDB(rms * rms),
		Peak:  peak,
		DC:    simdops.Mean(s),
	}
}

// GainDB returns the level change from in to out in dB, measured by RMS.
func GainDB(in, out []float32) float64 {
	return MeasureLevel(out).RMSDB - MeasureLevel(in).RMSDB
}
