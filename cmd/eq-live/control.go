package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	equalizer "github.com/tphakala/go-audio-equalizer"
)

// errQuit is returned by a command that ends the session.
var errQuit = errors.New("quit")

// controller is the parameter surface the stdin commands drive. It is
// called from the control goroutine only.
type controller interface {
	SetBand(i int, f0, q float32) error
	SetBandFrequency(i int, f0 float32) error
	SetBandGainOrQ(i int, q float32) error
	SetBandEnabled(i int, enabled bool) error
	Describe() []string
}

// multiControl drives every channel of an equalizer.
type multiControl struct {
	mc *equalizer.MultiChannel
}

func (c multiControl) SetBand(i int, f0, q float32) error { return c.mc.SetBand(i, f0, q) }

func (c multiControl) SetBandFrequency(i int, f0 float32) error {
	return c.each(func(e *equalizer.Equalizer) error { return e.SetBandFrequency(i, f0) })
}

func (c multiControl) SetBandGainOrQ(i int, q float32) error {
	return c.each(func(e *equalizer.Equalizer) error { return e.SetBandGainOrQ(i, q) })
}

func (c multiControl) SetBandEnabled(i int, enabled bool) error {
	return c.mc.SetBandEnabled(i, enabled)
}

func (c multiControl) each(fn func(*equalizer.Equalizer) error) error {
	for ch := range c.mc.Channels() {
		if err := fn(c.mc.Channel(ch)); err != nil {
			return fmt.Errorf("channel %d: %w", ch, err)
		}
	}
	return nil
}

func (c multiControl) Describe() []string {
	bands := c.mc.Channel(0).Bands()
	lines := make([]string, len(bands))
	for i, b := range bands {
		lines[i] = describeBand(b.Index, b.Type, b.CenterFrequency, b.GainOrQ, b.Enabled)
	}
	return lines
}

// sectionControl drives one single-section adapter per channel. The only
// valid band index is 0.
type sectionControl struct {
	adapters []*equalizer.Adapter[*equalizer.Section]
}

func (c sectionControl) update(i int, fn func(*equalizer.Section) error) error {
	if i != 0 {
		return fmt.Errorf("%w: %d (single section)", equalizer.ErrBandIndex, i)
	}
	for ch, a := range c.adapters {
		if err := a.Update(fn); err != nil {
			return fmt.Errorf("channel %d: %w", ch, err)
		}
	}
	return nil
}

func (c sectionControl) SetBand(i int, f0, q float32) error {
	return c.update(i, func(s *equalizer.Section) error { return s.Update(f0, q) })
}

func (c sectionControl) SetBandFrequency(i int, f0 float32) error {
	return c.update(i, func(s *equalizer.Section) error { return s.SetCenterFrequency(f0) })
}

func (c sectionControl) SetBandGainOrQ(i int, q float32) error {
	return c.update(i, func(s *equalizer.Section) error { return s.SetGainOrQ(q) })
}

func (c sectionControl) SetBandEnabled(i int, enabled bool) error {
	return c.update(i, func(s *equalizer.Section) error {
		s.SetEnabled(enabled)
		return nil
	})
}

func (c sectionControl) Describe() []string {
	var line string
	c.adapters[0].View(func(s *equalizer.Section) {
		line = describeBand(0, s.Type(), s.CenterFrequency(), s.GainOrQ(), s.Enabled())
	})
	return []string{line}
}

func describeBand(i int, t equalizer.FilterType, f0, q float32, enabled bool) string {
	state := "on"
	if !enabled {
		state = "bypassed"
	}
	return fmt.Sprintf("%2d %-8s %10.2f Hz  q=%.3f  %s", i, t, f0, q, state)
}

const controlHelp = `commands:
  band <i> <f0> <q>   set center frequency and Q/gain
  freq <i> <f0>       set center frequency
  q <i> <q>           set Q/gain
  bypass <i>          disable a band
  enable <i>          re-enable a band
  show                list bands
  stats               print audio path counters
  quit                stop`

// runCommand executes one control line and writes any reply to w.
func runCommand(c controller, line string, stats func() string, w io.Writer) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help", "?":
		_, _ = fmt.Fprintln(w, controlHelp)
		return nil
	case "show":
		for _, l := range c.Describe() {
			_, _ = fmt.Fprintln(w, l)
		}
		return nil
	case "stats":
		_, _ = fmt.Fprintln(w, stats())
		return nil
	case "band":
		if err := wantArgs(cmd, args, 3); err != nil {
			return err
		}
		i, f0, q, err := parseIndexFloats(args)
		if err != nil {
			return err
		}
		return c.SetBand(i, f0, q)
	case "freq":
		if err := wantArgs(cmd, args, 2); err != nil {
			return err
		}
		i, f0, _, err := parseIndexFloats(args)
		if err != nil {
			return err
		}
		return c.SetBandFrequency(i, f0)
	case "q":
		if err := wantArgs(cmd, args, 2); err != nil {
			return err
		}
		i, q, _, err := parseIndexFloats(args)
		if err != nil {
			return err
		}
		return c.SetBandGainOrQ(i, q)
	case "bypass", "enable":
		if err := wantArgs(cmd, args, 1); err != nil {
			return err
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%s: band index: %w", cmd, err)
		}
		return c.SetBandEnabled(i, cmd == "enable")
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func wantArgs(cmd string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s: want %d arguments, got %d", cmd, n, len(args))
	}
	return nil
}

// parseIndexFloats parses "<index> <float> [<float>]".
func parseIndexFloats(args []string) (i int, a, b float32, err error) {
	if i, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, 0, fmt.Errorf("band index: %w", err)
	}
	vals := make([]float32, 2)
	for k, s := range args[1:] {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("argument %d: %w", k+2, err)
		}
		vals[k] = float32(v)
	}
	return i, vals[0], vals[1], nil
}

// controlLoop reads commands from r until EOF or quit. Command errors are
// reported to w and do not end the loop.
func controlLoop(c controller, r io.Reader, w io.Writer, stats func() string) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		err := runCommand(c, scanner.Text(), stats, w)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			_, _ = fmt.Fprintf(w, "error: %v\n", err)
		}
	}
	return scanner.Err()
}
