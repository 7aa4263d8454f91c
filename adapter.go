package equalizer

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Processor is anything that filters a block of samples and reports how
// many it processed. *Section and *Chain satisfy it.
type Processor interface {
	ProcessBlock(in, out []float32) int
}

// Stats counts what the audio path has done since the adapter was created.
type Stats struct {
	// Buffers is the number of Process calls.
	Buffers uint64

	// Samples is the number of samples actually filtered.
	Samples uint64

	// Skipped is the number of buffers replaced by the fallback because a
	// control update held the processor.
	Skipped uint64

	// Truncated is the number of buffers whose input and output lengths
	// differed.
	Truncated uint64
}

// Adapter shares a Processor between one realtime audio goroutine and any
// number of control goroutines.
//
// The audio path (Process) never blocks: if a control update holds the
// processor, the buffer is filled by the fallback and ErrContended is
// returned. The control path (Update, View) blocks until the processor is
// free, so parameter changes are never dropped and are visible to the next
// buffer.
//
// Process must not be called from more than one goroutine at a time.
type Adapter[P Processor] struct {
	mu   sync.Mutex
	proc P

	fallback FallbackMode
	logger   *slog.Logger

	// lastGood is only touched by the audio goroutine.
	lastGood []float32
	lastLen  int

	buffers   atomic.Uint64
	samples   atomic.Uint64
	skipped   atomic.Uint64
	truncated atomic.Uint64
}

// AdapterOption configures an Adapter.
type AdapterOption func(*adapterConfig)

type adapterConfig struct {
	fallback     FallbackMode
	logger       *slog.Logger
	maxBlockSize int
}

// WithFallback selects the output written when the processor is busy.
func WithFallback(mode FallbackMode) AdapterOption {
	return func(cfg *adapterConfig) {
		cfg.fallback = mode
	}
}

// WithLogger sets the logger for realtime diagnostics.
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(cfg *adapterConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithMaxBlockSize bounds the buffer remembered for FallbackLastGood.
func WithMaxBlockSize(n int) AdapterOption {
	return func(cfg *adapterConfig) {
		if n > 0 {
			cfg.maxBlockSize = n
		}
	}
}

// NewAdapter wraps p. The adapter takes ownership: p must not be used
// directly afterwards.
func NewAdapter[P Processor](p P, opts ...AdapterOption) *Adapter[P] {
	cfg := adapterConfig{
		fallback:     FallbackSilence,
		maxBlockSize: defaultMaxBlockSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger()
	}

	a := &Adapter[P]{
		proc:     p,
		fallback: cfg.fallback,
		logger:   cfg.logger,
	}
	if cfg.fallback == FallbackLastGood {
		a.lastGood = make([]float32, cfg.maxBlockSize)
	}
	return a
}

// Process filters in into out on the audio path.
//
// If input and output lengths differ, min(len(in), len(out)) samples are
// filtered, the rest of out is zeroed and ErrLengthMismatch is returned.
// If a control update holds the processor, out is filled according to the
// fallback mode and ErrContended is returned. Both conditions are
// non-fatal; out is always fully written.
func (a *Adapter[P]) Process(in, out []float32) error {
	a.buffers.Add(1)
	n := min(len(in), len(out))

	if !a.mu.TryLock() {
		a.skipped.Add(1)
		a.applyFallback(in[:n], out)
		a.logger.Warn("processor busy, buffer skipped",
			"fallback", a.fallback.String(),
			"samples", len(out))
		return ErrContended
	}
	done := a.proc.ProcessBlock(in[:n], out[:n])
	a.mu.Unlock()

	a.samples.Add(uint64(done))
	if a.fallback == FallbackLastGood {
		a.lastLen = copy(a.lastGood, out[:done])
	}
	clear(out[done:])

	if len(in) != len(out) {
		a.truncated.Add(1)
		a.logger.Warn("buffer length mismatch, truncated",
			"in", len(in),
			"out", len(out))
		return fmt.Errorf("%w: in=%d out=%d", ErrLengthMismatch, len(in), len(out))
	}
	return nil
}

// applyFallback fills out when the processor could not be acquired.
func (a *Adapter[P]) applyFallback(in, out []float32) {
	switch a.fallback {
	case FallbackPassThrough:
		n := copy(out, in)
		clear(out[n:])
	case FallbackLastGood:
		n := copy(out, a.lastGood[:a.lastLen])
		clear(out[n:])
	default:
		clear(out)
	}
}

// Update runs fn with exclusive access to the processor, blocking until
// the audio path releases it. The error from fn is returned unchanged.
func (a *Adapter[P]) Update(fn func(P) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fn(a.proc)
}

// View runs fn with exclusive access to the processor. It suits reads and
// mutations that cannot fail, such as clearing history.
func (a *Adapter[P]) View(fn func(P)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.proc)
}

// Fallback returns the configured fallback mode.
func (a *Adapter[P]) Fallback() FallbackMode { return a.fallback }

// Stats returns a snapshot of the audio path counters.
func (a *Adapter[P]) Stats() Stats {
	return Stats{
		Buffers:   a.buffers.Load(),
		Samples:   a.samples.Load(),
		Skipped:   a.skipped.Load(),
		Truncated: a.truncated.Load(),
	}
}
