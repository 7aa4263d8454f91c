package filter

// DelayState is the history a section needs to compute its next output.
// Index 0 holds the most recent sample, index 1 the one before it.
type DelayState struct {
	X [2]float32 // inputs
	Y [2]float32 // outputs
}

// Section is a single biquad with its own coefficients and delay history.
//
// A Section is not safe for concurrent use; share it through a guard such
// as equalizer.Adapter.
type Section struct {
	typ        Type
	mode       FrequencyMode
	sampleRate float32
	freq       float32
	gainOrQ    float32
	enabled    bool

	coeffs Coefficients
	norm   normalized
	state  DelayState
}

// NewSection designs a section of type t and returns it enabled with
// silent (zero) history.
func NewSection(t Type, sampleRate, f0, q float32, mode FrequencyMode) (*Section, error) {
	c, err := Derive(t, sampleRate, f0, q, mode)
	if err != nil {
		return nil, err
	}

	return &Section{
		typ:        t,
		mode:       mode,
		sampleRate: sampleRate,
		freq:       f0,
		gainOrQ:    q,
		enabled:    true,
		coeffs:     c,
		norm:       c.normalize(),
	}, nil
}

// Process filters one sample.
//
//	y = (b0·x + b1·x[0] + b2·x[1] - a1·y[0] - a2·y[1]) / a0
//
// The division by a0 is folded into the coefficients at update time.
// A disabled section returns x unchanged and leaves its history untouched.
func (s *Section) Process(x float32) float32 {
	if !s.enabled {
		return x
	}

	n := &s.norm
	st := &s.state
	y := n.b0*x + n.b1*st.X[0] + n.b2*st.X[1] - n.a1*st.Y[0] - n.a2*st.Y[1]

	st.X[1], st.X[0] = st.X[0], x
	st.Y[1], st.Y[0] = st.Y[0], y
	return y
}

// ProcessBlock filters in into out and returns the number of samples
// processed, which is min(len(in), len(out)). Elements of out beyond that
// count are left untouched. in and out may be the same slice.
func (s *Section) ProcessBlock(in, out []float32) int {
	n := min(len(in), len(out))
	if n == 0 {
		return 0
	}
	in, out = in[:n], out[:n]

	if !s.enabled {
		copy(out, in)
		return n
	}

	b0, b1, b2 := s.norm.b0, s.norm.b1, s.norm.b2
	a1, a2 := s.norm.a1, s.norm.a2
	x0, x1 := s.state.X[0], s.state.X[1]
	y0, y1 := s.state.Y[0], s.state.Y[1]

	for i, x := range in {
		y := b0*x + b1*x0 + b2*x1 - a1*y0 - a2*y1
		x1, x0 = x0, x
		y1, y0 = y0, y
		out[i] = y
	}

	s.state = DelayState{X: [2]float32{x0, x1}, Y: [2]float32{y0, y1}}
	return n
}

// Update re-derives the coefficients for a new center frequency and
// Q/gain, keeping the section's type, sample rate and frequency mode.
// History is not cleared. On error the section is left unchanged.
func (s *Section) Update(f0, q float32) error {
	c, err := Derive(s.typ, s.sampleRate, f0, q, s.mode)
	if err != nil {
		return err
	}

	s.freq = f0
	s.gainOrQ = q
	s.coeffs = c
	s.norm = c.normalize()
	return nil
}

// SetCenterFrequency updates only the center frequency.
func (s *Section) SetCenterFrequency(f0 float32) error {
	return s.Update(f0, s.gainOrQ)
}

// SetGainOrQ updates only the Q (LowPass/HighPass) or peak gain (BandPass).
func (s *Section) SetGainOrQ(q float32) error {
	return s.Update(s.freq, q)
}

// SetEnabled toggles bypass. Re-enabling resumes from the frozen history.
func (s *Section) SetEnabled(enabled bool) { s.enabled = enabled }

// Enabled reports whether the section is filtering.
func (s *Section) Enabled() bool { return s.enabled }

// Type returns the filter type.
func (s *Section) Type() Type { return s.typ }

// Mode returns the frequency mode the section was designed with.
func (s *Section) Mode() FrequencyMode { return s.mode }

// SampleRate returns the sample rate in Hz.
func (s *Section) SampleRate() float32 { return s.sampleRate }

// CenterFrequency returns the center (or corner) frequency in Hz.
func (s *Section) CenterFrequency() float32 { return s.freq }

// GainOrQ returns the resonance for LowPass/HighPass or the peak gain for
// BandPass.
func (s *Section) GainOrQ() float32 { return s.gainOrQ }

// Coefficients returns the current un-normalized coefficients.
func (s *Section) Coefficients() Coefficients { return s.coeffs }

// State returns a copy of the delay history.
func (s *Section) State() DelayState { return s.state }

// SetState restores a previously saved delay history.
func (s *Section) SetState(st DelayState) { s.state = st }

// Reset clears the delay history to silence.
func (s *Section) Reset() { s.state = DelayState{} }

// ImpulseResponse returns the first n samples of the section's impulse
// response from silent history. The section's own history is restored
// afterwards. A bypassed section returns a unit impulse.
func (s *Section) ImpulseResponse(n int) []float32 {
	if n <= 0 {
		return nil
	}

	saved := s.state
	s.state = DelayState{}
	defer func() { s.state = saved }()

	ir := make([]float32, n)
	ir[0] = s.Process(1)
	for i := 1; i < n; i++ {
		ir[i] = s.Process(0)
	}
	return ir
}
