package equalizer

import (
	"fmt"
	"sync"
)

// maxChannels is the maximum supported channel count.
const maxChannels = 256

// MultiChannel runs one Equalizer per channel with identical settings.
// Channel histories are independent.
type MultiChannel struct {
	channels []*Equalizer
	parallel bool
}

// NewMultiChannel creates channels equalizers from config. When parallel is
// true, ProcessMulti filters channels concurrently.
func NewMultiChannel(config *Config, channels int, parallel bool) (*MultiChannel, error) {
	if channels < 1 || channels > maxChannels {
		return nil, fmt.Errorf("%w: channels must be 1-%d, got %d", ErrInvalidConfig, maxChannels, channels)
	}

	m := &MultiChannel{
		channels: make([]*Equalizer, channels),
		parallel: parallel,
	}
	for ch := range m.channels {
		e, err := New(config)
		if err != nil {
			return nil, err
		}
		m.channels[ch] = e
	}
	return m, nil
}

// Channels returns the channel count.
func (m *MultiChannel) Channels() int { return len(m.channels) }

// Channel returns the equalizer for channel ch. It panics if ch is out of
// range.
func (m *MultiChannel) Channel(ch int) *Equalizer { return m.channels[ch] }

// ProcessMulti filters each input channel with its own equalizer and
// returns the outputs in channel order.
func (m *MultiChannel) ProcessMulti(input [][]float32) ([][]float32, error) {
	if len(input) != len(m.channels) {
		return nil, fmt.Errorf("expected %d channels, got %d", len(m.channels), len(input))
	}

	output := make([][]float32, len(input))
	for ch := range input {
		output[ch] = make([]float32, len(input[ch]))
	}

	// Sequential processing (default or when parallel disabled)
	if !m.parallel || len(input) <= 1 {
		for ch := range input {
			if err := m.channels[ch].Process(input[ch], output[ch]); err != nil {
				return nil, fmt.Errorf("channel %d: %w", ch, err)
			}
		}
		return output, nil
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(input))

	for ch := range input {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()

			if err := m.channels[channel].Process(input[channel], output[channel]); err != nil {
				errChan <- fmt.Errorf("channel %d: %w", channel, err)
			}
		}(ch)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return output, nil
}

// SetBand applies the same band settings to every channel. Channels updated
// before a failing one keep the new settings.
func (m *MultiChannel) SetBand(i int, f0, q float32) error {
	for ch, e := range m.channels {
		if err := e.SetBand(i, f0, q); err != nil {
			return fmt.Errorf("channel %d: %w", ch, err)
		}
	}
	return nil
}

// SetBandEnabled bypasses or re-enables band i on every channel.
func (m *MultiChannel) SetBandEnabled(i int, enabled bool) error {
	for ch, e := range m.channels {
		if err := e.SetBandEnabled(i, enabled); err != nil {
			return fmt.Errorf("channel %d: %w", ch, err)
		}
	}
	return nil
}

// Reset clears the history of every channel.
func (m *MultiChannel) Reset() {
	for _, e := range m.channels {
		e.Reset()
	}
}
