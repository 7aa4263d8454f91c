package equalizer

import (
	"fmt"

	"github.com/tphakala/go-audio-equalizer/internal/filter"
)

// Band describes one section of an Equalizer. Position 0 is the low-pass
// bookend and the last position the high-pass bookend.
type Band struct {
	Index           int
	Type            FilterType
	CenterFrequency float32
	GainOrQ         float32
	Enabled         bool
}

// Equalizer is a multi-band filter chain behind a realtime Adapter.
// All methods are safe for concurrent use, with the single-goroutine
// restriction on Process inherited from Adapter.
type Equalizer struct {
	config   Config
	adapter  *Adapter[*Chain]
	sections int
}

// New creates an equalizer from config: Bands band-pass sections between a
// low-pass and a high-pass bookend, all at unit Q with silent history.
func New(config *Config) (*Equalizer, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	chain, err := filter.Build(config.Bands, config.SampleRate, config.Spacing, config.FrequencyMode)
	if err != nil {
		return nil, fmt.Errorf("build equalizer: %w", err)
	}

	return &Equalizer{
		config: *config,
		adapter: NewAdapter(chain,
			WithFallback(config.Fallback),
			WithLogger(config.Logger),
			WithMaxBlockSize(config.MaxBlockSize),
		),
		sections: chain.Len(),
	}, nil
}

// Process filters one buffer on the audio path. See Adapter.Process for the
// contention and length-mismatch behavior.
func (e *Equalizer) Process(in, out []float32) error {
	return e.adapter.Process(in, out)
}

// ProcessInPlace filters buf in place.
func (e *Equalizer) ProcessInPlace(buf []float32) error {
	return e.adapter.Process(buf, buf)
}

func (e *Equalizer) checkIndex(i int) error {
	if i < 0 || i >= e.sections {
		return fmt.Errorf("%w: %d (have %d)", ErrBandIndex, i, e.sections)
	}
	return nil
}

// updateSection runs fn on section i under the control lock.
func (e *Equalizer) updateSection(i int, fn func(*Section) error) error {
	if err := e.checkIndex(i); err != nil {
		return err
	}
	return e.adapter.Update(func(c *Chain) error {
		if err := fn(c.Section(i)); err != nil {
			return fmt.Errorf("band %d: %w", i, err)
		}
		return nil
	})
}

// SetBand re-derives band i for a new center frequency and Q/gain. History
// is kept. On error the band is unchanged.
func (e *Equalizer) SetBand(i int, f0, q float32) error {
	return e.updateSection(i, func(s *Section) error {
		return s.Update(f0, q)
	})
}

// SetBandFrequency changes only the center frequency of band i.
func (e *Equalizer) SetBandFrequency(i int, f0 float32) error {
	return e.updateSection(i, func(s *Section) error {
		return s.SetCenterFrequency(f0)
	})
}

// SetBandGainOrQ changes only the Q (bookends) or peak gain (bands) of band i.
func (e *Equalizer) SetBandGainOrQ(i int, q float32) error {
	return e.updateSection(i, func(s *Section) error {
		return s.SetGainOrQ(q)
	})
}

// SetBandEnabled bypasses or re-enables band i without losing its history.
func (e *Equalizer) SetBandEnabled(i int, enabled bool) error {
	return e.updateSection(i, func(s *Section) error {
		s.SetEnabled(enabled)
		return nil
	})
}

// Band returns the current settings of band i.
func (e *Equalizer) Band(i int) (Band, error) {
	if err := e.checkIndex(i); err != nil {
		return Band{}, err
	}
	var b Band
	e.adapter.View(func(c *Chain) {
		b = bandOf(i, c.Section(i))
	})
	return b, nil
}

// Bands returns the settings of every band in processing order.
func (e *Equalizer) Bands() []Band {
	bands := make([]Band, 0, e.sections)
	e.adapter.View(func(c *Chain) {
		for i, s := range c.Sections() {
			bands = append(bands, bandOf(i, s))
		}
	})
	return bands
}

func bandOf(i int, s *Section) Band {
	return Band{
		Index:           i,
		Type:            s.Type(),
		CenterFrequency: s.CenterFrequency(),
		GainOrQ:         s.GainOrQ(),
		Enabled:         s.Enabled(),
	}
}

// NumBands returns the number of sections, bookends included.
func (e *Equalizer) NumBands() int { return e.sections }

// SampleRate returns the operating sample rate in Hz.
func (e *Equalizer) SampleRate() float32 { return e.config.SampleRate }

// Config returns a copy of the configuration the equalizer was built with.
func (e *Equalizer) Config() Config { return e.config }

// MagnitudeDB returns the cascaded magnitude response at freqHz, with
// bypassed bands contributing unity.
func (e *Equalizer) MagnitudeDB(freqHz float64) float64 {
	var db float64
	e.adapter.View(func(c *Chain) {
		db = c.MagnitudeDB(freqHz, float64(e.config.SampleRate))
	})
	return db
}

// ImpulseResponse returns the first n samples of the equalizer's impulse
// response without disturbing its history.
func (e *Equalizer) ImpulseResponse(n int) []float32 {
	var ir []float32
	e.adapter.View(func(c *Chain) {
		ir = c.ImpulseResponse(n)
	})
	return ir
}

// Reset clears the history of every band.
func (e *Equalizer) Reset() {
	e.adapter.View(func(c *Chain) { c.Reset() })
}

// Stats returns the audio path counters.
func (e *Equalizer) Stats() Stats {
	return e.adapter.Stats()
}
