package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-equalizer/internal/testutil"
)

const (
	impulseTolerance = 1e-7
	blockLen         = 256
)

func newTestSection(t *testing.T, typ Type, f0, q float32) *Section {
	t.Helper()
	s, err := NewSection(typ, testRate48k, f0, q, FrequencyNormalized)
	require.NoError(t, err)
	return s
}

// TestSection_ImpulseResponse is the canonical regression: a 400 Hz, Q 5
// LowPass at 48 kHz fed a unit impulse follows the difference equation
// evaluated directly on the derived coefficients.
func TestSection_ImpulseResponse(t *testing.T) {
	s := newTestSection(t, LowPass, testFreq400, testQ5)
	c := s.Coefficients()

	a0, a1, a2 := float64(c.A0), float64(c.A1), float64(c.A2)
	b0, b1, b2 := float64(c.B0), float64(c.B1), float64(c.B2)

	y0 := b0 / a0
	y1 := (b1 - a1*y0) / a0
	y2 := (b2 - a1*y1 - a2*y0) / a0
	y3 := (-a1*y2 - a2*y1) / a0
	want := []float64{y0, y1, y2, y3}

	in := testutil.Impulse(len(want))
	for i, x := range in {
		got := s.Process(x)
		assert.InDelta(t, want[i], float64(got), impulseTolerance, "sample %d", i)
	}
}

// TestSection_ImpulseResponseMethod verifies ImpulseResponse matches a
// fresh section and restores the caller's history.
func TestSection_ImpulseResponseMethod(t *testing.T) {
	s := newTestSection(t, LowPass, testFreq400, testQ5)
	for _, x := range testutil.Noise(32, 1) {
		s.Process(x)
	}
	before := s.State()

	ir := s.ImpulseResponse(16)

	fresh := newTestSection(t, LowPass, testFreq400, testQ5)
	want := make([]float32, 16)
	fresh.ProcessBlock(testutil.Impulse(16), want)

	testutil.AssertSamplesInDelta(t, want, ir, impulseTolerance)
	assert.Equal(t, before, s.State(), "history must be restored")
	assert.Nil(t, s.ImpulseResponse(0))
}

// TestSection_ImpulseResponseBypassed verifies a disabled section reports
// the identity response, as it does inside a chain.
func TestSection_ImpulseResponseBypassed(t *testing.T) {
	s := newTestSection(t, BandPass, 3000, 2)
	s.SetEnabled(false)

	want := testutil.Impulse(8)
	assert.Equal(t, want, s.ImpulseResponse(8))
	assert.Equal(t, want, NewChain(s).ImpulseResponse(8))
	assert.False(t, s.Enabled())
}

// TestSection_SilenceInSilenceOut verifies no DC offset is introduced.
func TestSection_SilenceInSilenceOut(t *testing.T) {
	for _, typ := range allTypes {
		for _, q := range []float32{0.1, 1, 10} {
			s := newTestSection(t, typ, 2500, q)
			out := make([]float32, blockLen)
			n := s.ProcessBlock(make([]float32, blockLen), out)
			assert.Equal(t, blockLen, n)
			testutil.AssertAllZero(t, out, "%s q=%v", typ, q)
		}
	}
}

// TestSection_UpdateIdempotent verifies repeated identical updates yield
// identical coefficients.
func TestSection_UpdateIdempotent(t *testing.T) {
	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			s := newTestSection(t, typ, 1000, 1)

			require.NoError(t, s.Update(3000, 2.5))
			once := s.Coefficients()
			require.NoError(t, s.Update(3000, 2.5))
			twice := s.Coefficients()

			assert.Equal(t, once, twice)
			assert.Equal(t, float32(3000), s.CenterFrequency())
			assert.Equal(t, float32(2.5), s.GainOrQ())

			direct, err := Derive(typ, testRate48k, 3000, 2.5, FrequencyNormalized)
			require.NoError(t, err)
			assert.Equal(t, direct, once)
		})
	}
}

// TestSection_UpdateKeepsHistory verifies a coefficient change does not
// clear the delay state.
func TestSection_UpdateKeepsHistory(t *testing.T) {
	s := newTestSection(t, BandPass, 1000, 1)
	for _, x := range testutil.Noise(64, 2) {
		s.Process(x)
	}
	before := s.State()
	require.NotEqual(t, DelayState{}, before)

	require.NoError(t, s.Update(2000, 3))
	assert.Equal(t, before, s.State())
}

// TestSection_UpdateRejectsInvalid verifies a failed update leaves the
// section untouched.
func TestSection_UpdateRejectsInvalid(t *testing.T) {
	s := newTestSection(t, HighPass, 1000, 1)
	before := s.Coefficients()

	err := s.Update(30000, 1)
	require.ErrorIs(t, err, ErrAboveNyquist)
	err = s.Update(1000, 0)
	require.ErrorIs(t, err, ErrInvalidQ)
	err = s.SetCenterFrequency(-1)
	require.ErrorIs(t, err, ErrInvalidFrequency)

	assert.Equal(t, before, s.Coefficients())
	assert.Equal(t, float32(1000), s.CenterFrequency())
	assert.Equal(t, float32(1), s.GainOrQ())
}

func TestSection_SingleParameterUpdates(t *testing.T) {
	s := newTestSection(t, BandPass, 1000, 1)

	require.NoError(t, s.SetCenterFrequency(1500))
	assert.Equal(t, float32(1500), s.CenterFrequency())
	assert.Equal(t, float32(1), s.GainOrQ())

	require.NoError(t, s.SetGainOrQ(4))
	assert.Equal(t, float32(1500), s.CenterFrequency())
	assert.Equal(t, float32(4), s.GainOrQ())

	want, err := Derive(BandPass, testRate48k, 1500, 4, FrequencyNormalized)
	require.NoError(t, err)
	assert.Equal(t, want, s.Coefficients())
}

// TestSection_BypassContinuity verifies that disabling, processing, and
// re-enabling gives the same output as never having been disabled.
func TestSection_BypassContinuity(t *testing.T) {
	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			warmup := testutil.Noise(100, 3)
			bypassed := testutil.Noise(50, 4)
			tail := testutil.Noise(100, 5)

			ref := newTestSection(t, typ, 3000, 2)
			sut := newTestSection(t, typ, 3000, 2)

			for _, x := range warmup {
				ref.Process(x)
				sut.Process(x)
			}

			sut.SetEnabled(false)
			assert.False(t, sut.Enabled())
			stateBefore := sut.State()
			for _, x := range bypassed {
				assert.Equal(t, x, sut.Process(x), "bypass must be identity")
			}
			assert.Equal(t, stateBefore, sut.State(), "bypass must not advance history")
			sut.SetEnabled(true)

			for i, x := range tail {
				assert.Equal(t, ref.Process(x), sut.Process(x), "sample %d", i)
			}
		})
	}
}

// TestSection_ProcessBlockMatchesProcess verifies the block path equals the
// per-sample path.
func TestSection_ProcessBlockMatchesProcess(t *testing.T) {
	in := testutil.Noise(blockLen, 6)

	perSample := newTestSection(t, LowPass, 800, 0.7)
	want := make([]float32, len(in))
	for i, x := range in {
		want[i] = perSample.Process(x)
	}

	block := newTestSection(t, LowPass, 800, 0.7)
	got := make([]float32, len(in))
	// Split into uneven blocks to exercise state carry-over.
	n := block.ProcessBlock(in[:37], got[:37])
	n += block.ProcessBlock(in[37:], got[37:])

	assert.Equal(t, len(in), n)
	testutil.AssertSamplesInDelta(t, want, got, testutil.SampleTolerance)
	py, by := perSample.State().Y, block.State().Y
	testutil.AssertSamplesInDelta(t, py[:], by[:], testutil.SampleTolerance)
}

// TestSection_ProcessBlockInPlace verifies in and out may alias.
func TestSection_ProcessBlockInPlace(t *testing.T) {
	in := testutil.Sine(blockLen, 1000, testRate48k, 0.5)
	want := make([]float32, blockLen)
	newTestSection(t, HighPass, 500, 1).ProcessBlock(in, want)

	buf := append([]float32(nil), in...)
	newTestSection(t, HighPass, 500, 1).ProcessBlock(buf, buf)

	testutil.AssertSamplesInDelta(t, want, buf, 0)
}

// TestSection_ProcessBlockLengthMismatch verifies mismatched buffers are
// truncated to the shorter length.
func TestSection_ProcessBlockLengthMismatch(t *testing.T) {
	t.Run("longer_input", func(t *testing.T) {
		s := newTestSection(t, LowPass, 1000, 1)
		in := testutil.Noise(10, 7)
		out := make([]float32, 8)

		var n int
		require.NotPanics(t, func() { n = s.ProcessBlock(in, out) })
		assert.Equal(t, 8, n)
		assert.Equal(t, in[7], s.State().X[0], "history ends at the last processed sample")
	})

	t.Run("longer_output", func(t *testing.T) {
		s := newTestSection(t, LowPass, 1000, 1)
		in := testutil.Noise(8, 8)
		out := make([]float32, 10)
		out[8], out[9] = 42, 43

		n := s.ProcessBlock(in, out)
		assert.Equal(t, 8, n)
		assert.Equal(t, float32(42), out[8], "tail must be untouched")
		assert.Equal(t, float32(43), out[9], "tail must be untouched")
	})

	t.Run("empty", func(t *testing.T) {
		s := newTestSection(t, LowPass, 1000, 1)
		assert.Equal(t, 0, s.ProcessBlock(nil, make([]float32, 4)))
		assert.Equal(t, DelayState{}, s.State())
	})
}

func TestSection_DisabledBlockIsCopy(t *testing.T) {
	s := newTestSection(t, BandPass, 1000, 3)
	s.SetEnabled(false)

	in := testutil.Noise(blockLen, 9)
	out := make([]float32, blockLen)
	assert.Equal(t, blockLen, s.ProcessBlock(in, out))
	assert.Equal(t, in, out)
	assert.Equal(t, DelayState{}, s.State())
}

func TestSection_Accessors(t *testing.T) {
	s, err := NewSection(HighPass, testRate44k, 250, 0.707, FrequencyRaw)
	require.NoError(t, err)

	assert.Equal(t, HighPass, s.Type())
	assert.Equal(t, FrequencyRaw, s.Mode())
	assert.Equal(t, float32(testRate44k), s.SampleRate())
	assert.Equal(t, float32(250), s.CenterFrequency())
	assert.Equal(t, float32(0.707), s.GainOrQ())
	assert.True(t, s.Enabled())
	assert.Equal(t, DelayState{}, s.State())
}

func TestSection_StateRoundTrip(t *testing.T) {
	s := newTestSection(t, LowPass, 1000, 1)
	st := DelayState{X: [2]float32{0.5, -0.25}, Y: [2]float32{0.1, 0.2}}
	s.SetState(st)
	assert.Equal(t, st, s.State())

	s.Reset()
	assert.Equal(t, DelayState{}, s.State())
}

func TestNewSection_Invalid(t *testing.T) {
	s, err := NewSection(LowPass, testRate48k, 0, 1, FrequencyNormalized)
	require.ErrorIs(t, err, ErrInvalidFrequency)
	assert.Nil(t, s)
}

func BenchmarkSection_Process(b *testing.B) {
	s, err := NewSection(BandPass, testRate48k, 1000, 1, FrequencyNormalized)
	require.NoError(b, err)
	x := float32(0.5)

	b.ReportAllocs()
	for b.Loop() {
		x = s.Process(x)
	}
}

func BenchmarkSection_ProcessBlock(b *testing.B) {
	s, err := NewSection(BandPass, testRate48k, 1000, 1, FrequencyNormalized)
	require.NoError(b, err)
	in := testutil.Noise(1024, 10)
	out := make([]float32, len(in))

	b.ReportAllocs()
	b.SetBytes(int64(len(in) * 4))
	for b.Loop() {
		s.ProcessBlock(in, out)
	}
}
