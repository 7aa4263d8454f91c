package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-equalizer/internal/testutil"
)

func TestChain_EmptyIsIdentity(t *testing.T) {
	c := NewChain()
	assert.Equal(t, 0, c.Len())

	in := testutil.Noise(64, 11)
	for _, x := range in {
		assert.Equal(t, x, c.Process(x))
	}

	out := make([]float32, len(in))
	assert.Equal(t, len(in), c.ProcessBlock(in, out))
	assert.Equal(t, in, out)
}

// TestChain_DisabledSectionIsIdentity verifies a single bypassed section
// passes input through even after it has accumulated history.
func TestChain_DisabledSectionIsIdentity(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.Add(BandPass, testRate48k, 1000, 4, FrequencyNormalized))

	for _, x := range testutil.Noise(128, 12) {
		c.Process(x)
	}
	c.Section(0).SetEnabled(false)

	for _, x := range testutil.Noise(64, 13) {
		assert.Equal(t, x, c.Process(x))
	}
}

// TestChain_FoldOrder verifies sections run in declaration order, each
// output feeding the next.
func TestChain_FoldOrder(t *testing.T) {
	mk := func() (*Section, *Section) {
		lp, err := NewSection(LowPass, testRate48k, 5000, 0.7, FrequencyNormalized)
		require.NoError(t, err)
		bp, err := NewSection(BandPass, testRate48k, 1200, 3, FrequencyNormalized)
		require.NoError(t, err)
		return lp, bp
	}

	lp1, bp1 := mk()
	c := NewChain(lp1, bp1)

	lp2, bp2 := mk()
	for i, x := range testutil.Noise(256, 14) {
		want := bp2.Process(lp2.Process(x))
		assert.Equal(t, want, c.Process(x), "sample %d", i)
	}
}

func TestChain_ProcessBlockMatchesProcess(t *testing.T) {
	build := func() *Chain {
		c, err := Build(3, testRate48k, SpacingBelowNyquist, FrequencyNormalized)
		require.NoError(t, err)
		return c
	}
	in := testutil.Noise(300, 15)

	ref := build()
	want := make([]float32, len(in))
	for i, x := range in {
		want[i] = ref.Process(x)
	}

	got := make([]float32, len(in))
	assert.Equal(t, len(in), build().ProcessBlock(in, got))
	assert.Equal(t, want, got)
}

func TestChain_ProcessBlockLengthMismatch(t *testing.T) {
	c, err := Build(1, testRate48k, SpacingBelowNyquist, FrequencyNormalized)
	require.NoError(t, err)

	out := make([]float32, 8)
	var n int
	require.NotPanics(t, func() { n = c.ProcessBlock(testutil.Noise(10, 16), out) })
	assert.Equal(t, 8, n)

	out = []float32{0, 0, 0, 7}
	assert.Equal(t, 3, c.ProcessBlock(make([]float32, 3), out))
	assert.Equal(t, float32(7), out[3])
}

func TestChain_AddRejectsInvalid(t *testing.T) {
	c := NewChain()
	err := c.Add(LowPass, testRate48k, 30000, 1, FrequencyNormalized)
	require.ErrorIs(t, err, ErrAboveNyquist)
	assert.Equal(t, 0, c.Len())
}

func TestChain_SectionsReturnsCopy(t *testing.T) {
	c, err := Build(2, testRate48k, SpacingBelowNyquist, FrequencyNormalized)
	require.NoError(t, err)

	secs := c.Sections()
	require.Len(t, secs, 4)
	secs[0] = nil
	assert.NotNil(t, c.Section(0))
	assert.Same(t, c.Section(1), secs[1])
}

func TestChain_ResetAndImpulseResponse(t *testing.T) {
	c, err := Build(2, testRate48k, SpacingBelowNyquist, FrequencyNormalized)
	require.NoError(t, err)

	fresh, err := Build(2, testRate48k, SpacingBelowNyquist, FrequencyNormalized)
	require.NoError(t, err)
	want := make([]float32, 64)
	fresh.ProcessBlock(testutil.Impulse(64), want)

	for _, x := range testutil.Noise(50, 17) {
		c.Process(x)
	}
	saved := make([]DelayState, c.Len())
	for i, s := range c.Sections() {
		saved[i] = s.State()
	}

	assert.Equal(t, want, c.ImpulseResponse(64))
	for i, s := range c.Sections() {
		assert.Equal(t, saved[i], s.State(), "section %d", i)
	}

	c.Reset()
	for i, s := range c.Sections() {
		assert.Equal(t, DelayState{}, s.State(), "section %d", i)
	}
	assert.Nil(t, c.ImpulseResponse(0))
}

func BenchmarkChain_ProcessBlock(b *testing.B) {
	c, err := Build(8, testRate48k, SpacingBelowNyquist, FrequencyNormalized)
	require.NoError(b, err)
	in := testutil.Noise(1024, 18)
	out := make([]float32, len(in))

	b.ReportAllocs()
	b.SetBytes(int64(len(in) * 4))
	for b.Loop() {
		c.ProcessBlock(in, out)
	}
}
