package main

import (
	"errors"
	"fmt"
	"sync/atomic"

	equalizer "github.com/tphakala/go-audio-equalizer"
)

// processor is one channel's realtime filter.
type processor interface {
	Process(in, out []float32) error
	Stats() equalizer.Stats
}

// liveEngine converts device buffers to per-channel float slices and runs
// them through one processor per channel. process is called from the audio
// callback only.
type liveEngine struct {
	procs []processor

	interleaved []float32
	inBufs      [][]float32
	outBufs     [][]float32

	callbacks atomic.Uint64
	contended atomic.Uint64
	failures  atomic.Uint64
}

// newLiveEngine preallocates buffers for maxFrames frames. Callbacks
// delivering more frames are processed in maxFrames chunks.
func newLiveEngine(procs []processor, maxFrames int) *liveEngine {
	channels := len(procs)
	maxFrames = max(maxFrames, 1)
	e := &liveEngine{
		procs:       procs,
		interleaved: make([]float32, maxFrames*channels),
		inBufs:      make([][]float32, channels),
		outBufs:     make([][]float32, channels),
	}
	for ch := range channels {
		e.inBufs[ch] = make([]float32, maxFrames)
		e.outBufs[ch] = make([]float32, maxFrames)
	}
	return e
}

// process is the malgo data callback for a duplex F32 device.
func (e *liveEngine) process(output, input []byte, frameCount uint32) {
	e.callbacks.Add(1)
	channels := len(e.procs)
	chunk := len(e.inBufs[0])
	frameBytes := channels * bytesPerFloat32

	for done := 0; done < int(frameCount); done += chunk {
		frames := min(chunk, int(frameCount)-done)
		off := done * frameBytes
		e.processChunk(output[min(off, len(output)):], input[min(off, len(input)):], frames)
	}
}

func (e *liveEngine) processChunk(output, input []byte, frames int) {
	samples := frames * len(e.procs)
	n := decodeF32(e.interleaved[:samples], input)
	clear(e.interleaved[n:samples])
	splitChannels(e.inBufs, e.interleaved, frames)

	for ch, p := range e.procs {
		err := p.Process(e.inBufs[ch][:frames], e.outBufs[ch][:frames])
		switch {
		case err == nil:
		case errors.Is(err, equalizer.ErrContended):
			e.contended.Add(1)
		default:
			e.failures.Add(1)
		}
	}

	joinChannels(e.interleaved, e.outBufs, frames)
	encodeF32(output, e.interleaved[:samples])
}

// statsLine summarizes the audio path counters.
func (e *liveEngine) statsLine() string {
	var st equalizer.Stats
	for _, p := range e.procs {
		s := p.Stats()
		st.Buffers += s.Buffers
		st.Samples += s.Samples
		st.Skipped += s.Skipped
		st.Truncated += s.Truncated
	}
	return fmt.Sprintf("callbacks=%d buffers=%d samples=%d skipped=%d contended=%d failures=%d",
		e.callbacks.Load(), st.Buffers, st.Samples, st.Skipped, e.contended.Load(), e.failures.Load())
}
