package main

import (
	"encoding/binary"
	"math"
)

// bytesPerFloat32 is the size of one F32 sample in a device buffer.
const bytesPerFloat32 = 4

// decodeF32 reads little-endian float32 samples from src into dst and
// returns how many were decoded.
func decodeF32(dst []float32, src []byte) int {
	n := min(len(dst), len(src)/bytesPerFloat32)
	for i := range n {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*bytesPerFloat32:]))
	}
	return n
}

// encodeF32 writes samples from src into dst as little-endian float32 and
// returns how many were encoded.
func encodeF32(dst []byte, src []float32) int {
	n := min(len(dst)/bytesPerFloat32, len(src))
	for i := range n {
		binary.LittleEndian.PutUint32(dst[i*bytesPerFloat32:], math.Float32bits(src[i]))
	}
	return n
}

// splitChannels deinterleaves frames of src into the per-channel slices of
// dst.
func splitChannels(dst [][]float32, src []float32, frames int) {
	channels := len(dst)
	for i := range frames {
		base := i * channels
		for ch := range channels {
			dst[ch][i] = src[base+ch]
		}
	}
}

// joinChannels interleaves frames of the per-channel slices of src into
// dst.
func joinChannels(dst []float32, src [][]float32, frames int) {
	channels := len(src)
	for i := range frames {
		base := i * channels
		for ch := range channels {
			dst[base+ch] = src[ch][i]
		}
	}
}
