// Package mathutil provides small numeric helpers shared by the filter and
// analysis packages.
package mathutil

import "math"

// IsFinite32 reports whether v is neither NaN nor an infinity.
func IsFinite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Nyquist returns half the sample rate.
func Nyquist(sampleRate float32) float32 {
	return sampleRate / nyquistDivisor
}

// AngularFrequency returns 2π·f0/sampleRate.
// A sampleRate of 1 yields the un-normalized 2π·f0.
func AngularFrequency(f0, sampleRate float64) float64 {
	return twoPi * f0 / sampleRate
}

// AmplitudeToDB converts an amplitude ratio to decibels.
// Non-positive magnitudes map to FloorDB.
func AmplitudeToDB(mag float64) float64 {
	if mag <= 0 {
		return FloorDB
	}
	return math.Max(amplitudeDBFactor*math.Log10(mag), FloorDB)
}

// PowerToDB converts a power ratio (|H|²) to decibels.
// Non-positive powers map to FloorDB.
func PowerToDB(p float64) float64 {
	if p <= 0 {
		return FloorDB
	}
	return math.Max(powerDBFactor*math.Log10(p), FloorDB)
}
