// Command eq-live runs a duplex audio device through the equalizer in real
// time. Band parameters are changed from stdin while audio is running.
//
// Usage:
//
//	eq-live                          # 400 Hz low-pass, Q 5, mono
//	eq-live -preset eq -bands 10     # full equalizer
//	eq-live -channels 2 -fallback pass-through
//
// Type "help" at the prompt for the control commands.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gen2brain/malgo"

	equalizer "github.com/tphakala/go-audio-equalizer"
)

const (
	defaultSampleRate = 48000
	defaultChannels   = 1
	defaultBands      = 10
	defaultPeriod     = 256 // frames per device callback
	maxLiveChannels   = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rate := flag.Int("rate", defaultSampleRate, "Sample rate in Hz")
	channels := flag.Int("channels", defaultChannels, "Channel count (1 or 2)")
	preset := flag.String("preset", "lowpass", "Processing: lowpass (400 Hz, Q 5), eq")
	bands := flag.Int("bands", defaultBands, "Band count for -preset eq")
	fallback := flag.String("fallback", "silence", "Output while an update holds a channel: silence, pass-through, last-good")
	period := flag.Int("period", defaultPeriod, "Device period in frames")
	verbose := flag.Bool("v", false, "Log audio path contention")
	flag.Parse()

	if *channels < 1 || *channels > maxLiveChannels {
		return fmt.Errorf("channels must be 1-%d, got %d", maxLiveChannels, *channels)
	}
	fb, err := equalizer.ParseFallbackMode(*fallback)
	if err != nil {
		return err
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	procs, ctl, err := buildProcessors(*preset, float32(*rate), *channels, *bands, fb, *period, logger)
	if err != nil {
		return err
	}
	engine := newLiveEngine(procs, *period)

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		if *verbose {
			log.Print(strings.TrimSpace(msg))
		}
	})
	if err != nil {
		return fmt.Errorf("init audio context: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Duplex)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = uint32(*channels)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = uint32(*channels)
	deviceConfig.SampleRate = uint32(*rate)
	deviceConfig.PeriodSizeInFrames = uint32(*period)

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: engine.process})
	if err != nil {
		return fmt.Errorf("init duplex device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("start device: %w", err)
	}

	fmt.Printf("Running %s at %d Hz, %d channel(s), fallback %s\n", *preset, *rate, *channels, fb)
	for _, l := range ctl.Describe() {
		fmt.Println(l)
	}
	fmt.Println(`Type "help" for commands, "quit" to stop.`)

	if err := controlLoop(ctl, os.Stdin, os.Stdout, engine.statsLine); err != nil {
		return err
	}

	if err := device.Stop(); err != nil {
		return fmt.Errorf("stop device: %w", err)
	}
	fmt.Println(engine.statsLine())
	return nil
}

// buildProcessors creates one processor per channel for preset and the
// controller that retunes all of them together.
func buildProcessors(
	preset string,
	sampleRate float32,
	channels, bands int,
	fallback equalizer.FallbackMode,
	period int,
	logger *slog.Logger,
) ([]processor, controller, error) {
	procs := make([]processor, channels)

	switch strings.ToLower(preset) {
	case "lowpass", "lp":
		adapters := make([]*equalizer.Adapter[*equalizer.Section], channels)
		for ch := range channels {
			a, err := equalizer.NewLowPassPreset(sampleRate,
				equalizer.WithFallback(fallback),
				equalizer.WithLogger(logger.With("channel", ch)),
				equalizer.WithMaxBlockSize(period),
			)
			if err != nil {
				return nil, nil, err
			}
			adapters[ch] = a
			procs[ch] = a
		}
		return procs, sectionControl{adapters: adapters}, nil

	case "eq":
		mc, err := equalizer.NewMultiChannel(&equalizer.Config{
			SampleRate:   sampleRate,
			Bands:        bands,
			Fallback:     fallback,
			MaxBlockSize: period,
			Logger:       logger,
		}, channels, false)
		if err != nil {
			return nil, nil, err
		}
		for ch := range channels {
			procs[ch] = mc.Channel(ch)
		}
		return procs, multiControl{mc: mc}, nil

	default:
		return nil, nil, fmt.Errorf("unknown preset %q", preset)
	}
}
