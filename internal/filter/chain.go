package filter

// Chain is an ordered cascade of sections. Each section's output feeds the
// next, in declaration order. An empty chain is the identity.
//
// Like Section, a Chain is not safe for concurrent use.
type Chain struct {
	sections []*Section
}

// NewChain creates a cascade from the given sections, in order.
func NewChain(sections ...*Section) *Chain {
	c := &Chain{sections: make([]*Section, 0, len(sections))}
	c.sections = append(c.sections, sections...)
	return c
}

// Append adds s at the end of the cascade.
func (c *Chain) Append(s *Section) {
	c.sections = append(c.sections, s)
}

// Add designs a new section and appends it.
func (c *Chain) Add(t Type, sampleRate, f0, q float32, mode FrequencyMode) error {
	s, err := NewSection(t, sampleRate, f0, q, mode)
	if err != nil {
		return err
	}
	c.Append(s)
	return nil
}

// Process folds x through every section in order.
func (c *Chain) Process(x float32) float32 {
	for _, s := range c.sections {
		x = s.Process(x)
	}
	return x
}

// ProcessBlock filters in into out sample by sample through the whole
// cascade and returns min(len(in), len(out)). Elements of out beyond that
// count are left untouched. in and out may be the same slice.
func (c *Chain) ProcessBlock(in, out []float32) int {
	n := min(len(in), len(out))
	for i := range n {
		out[i] = c.Process(in[i])
	}
	return n
}

// Len returns the number of sections.
func (c *Chain) Len() int { return len(c.sections) }

// Section returns the i-th section. It panics if i is out of range.
func (c *Chain) Section(i int) *Section { return c.sections[i] }

// Sections returns the sections in processing order.
// The returned slice is a copy; the sections themselves are shared.
func (c *Chain) Sections() []*Section {
	out := make([]*Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// Reset clears the history of every section.
func (c *Chain) Reset() {
	for _, s := range c.sections {
		s.Reset()
	}
}

// ImpulseResponse returns the first n samples of the cascade's impulse
// response from silent history. Section histories are restored afterwards;
// bypassed sections stay bypassed.
func (c *Chain) ImpulseResponse(n int) []float32 {
	if n <= 0 {
		return nil
	}

	saved := make([]DelayState, len(c.sections))
	for i, s := range c.sections {
		saved[i] = s.state
		s.state = DelayState{}
	}
	defer func() {
		for i, s := range c.sections {
			s.state = saved[i]
		}
	}()

	ir := make([]float32, n)
	ir[0] = c.Process(1)
	for i := 1; i < n; i++ {
		ir[i] = c.Process(0)
	}
	return ir
}
