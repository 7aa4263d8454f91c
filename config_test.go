package equalizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	valid := func() *Config { return DefaultConfig(RateDAT) }

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"zero_bands", func(c *Config) { c.Bands = 0 }, false},
		{"max_bands", func(c *Config) { c.Bands = maxBands }, false},
		{"raw_proportional", func(c *Config) {
			c.FrequencyMode = FrequencyRaw
			c.Spacing = SpacingProportional
		}, false},
		{"last_good", func(c *Config) { c.Fallback = FallbackLastGood }, false},
		{"zero_rate", func(c *Config) { c.SampleRate = 0 }, true},
		{"negative_rate", func(c *Config) { c.SampleRate = -44100 }, true},
		{"nan_rate", func(c *Config) { c.SampleRate = float32(math.NaN()) }, true},
		{"inf_rate", func(c *Config) { c.SampleRate = float32(math.Inf(1)) }, true},
		{"huge_rate", func(c *Config) { c.SampleRate = 1e7 }, true},
		{"negative_bands", func(c *Config) { c.Bands = -1 }, true},
		{"too_many_bands", func(c *Config) { c.Bands = maxBands + 1 }, true},
		{"unknown_spacing", func(c *Config) { c.Spacing = Spacing(9) }, true},
		{"unknown_mode", func(c *Config) { c.FrequencyMode = FrequencyMode(9) }, true},
		{"unknown_fallback", func(c *Config) { c.Fallback = FallbackMode(9) }, true},
		{"negative_block", func(c *Config) { c.MaxBlockSize = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig(RateCD)
	assert.Equal(t, float32(RateCD), c.SampleRate)
	assert.Equal(t, defaultBands, c.Bands)
	assert.Equal(t, SpacingBelowNyquist, c.Spacing)
	assert.Equal(t, FrequencyNormalized, c.FrequencyMode)
	assert.Equal(t, FallbackSilence, c.Fallback)
	assert.Nil(t, c.Logger)
}

func TestFallbackModeString(t *testing.T) {
	assert.Equal(t, "silence", FallbackSilence.String())
	assert.Equal(t, "pass-through", FallbackPassThrough.String())
	assert.Equal(t, "last-good", FallbackLastGood.String())
	assert.Equal(t, "FallbackMode(7)", FallbackMode(7).String())
}

func TestParseFallbackMode(t *testing.T) {
	for _, m := range []FallbackMode{FallbackSilence, FallbackPassThrough, FallbackLastGood} {
		got, err := ParseFallbackMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	got, err := ParseFallbackMode(" Repeat ")
	require.NoError(t, err)
	assert.Equal(t, FallbackLastGood, got)

	got, err = ParseFallbackMode("")
	require.NoError(t, err)
	assert.Equal(t, FallbackSilence, got)

	_, err = ParseFallbackMode("louder")
	require.ErrorIs(t, err, ErrInvalidConfig)
}
