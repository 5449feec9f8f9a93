package config

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"
)

const (
	WindowSize = 800

	// Audio analysis
	SampleRate      = 44100
	FFTSize         = 2048
	Bins            = FFTSize / 2
	FFTSmoothing    = 0.85
	MinDecibels     = -100.0
	MaxDecibels     = -30.0
	TapRingSize     = 8192
	SpeakerBufferMs = 50

	// Note response
	Threshold   = 50.0
	MaxEnergy   = 255.0
	MaxScale    = 1.8
	MaxGlow     = 0.8
	MaxSpin     = 0.1
	ScaleRate   = 0.15
	ColorRate   = 0.12
	RotateRate  = 0.08
	GlowVisible = 0.1

	// Layout
	CirclesPerLine = 5
	LineCount      = 5
	NodeChance     = 0.7
	DotDensity     = 0.004

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 36
	ButtonGap    = 12
	ButtonMargin = 20
)

// NoteCircleIndices are the layout slots bound to C, D, E, F, G, A, B.
var NoteCircleIndices = [7]int{1, 5, 8, 11, 15, 19, 23}

// Settings are the runtime options taken from the command line.
type Settings struct {
	Sources    []string
	SampleRate int
	Threshold  float64
	Seed       int64
	Size       int
	LogLevel   slog.Level
}

// Parse reads Settings from args (without the program name).
func Parse(args []string) (Settings, error) {
	s := Settings{}
	fs := flag.NewFlagSet("note-circles", flag.ContinueOnError)
	fs.IntVar(&s.SampleRate, "sample-rate", SampleRate, "speaker sample rate in Hz")
	fs.Float64Var(&s.Threshold, "threshold", Threshold, "note activation threshold on the 0-255 scale")
	fs.Int64Var(&s.Seed, "seed", 0, "layout seed (0 picks one from the clock)")
	fs.IntVar(&s.Size, "size", WindowSize, "initial window size in pixels")
	level := fs.String("log-level", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Settings{}, err
	}

	if err := s.LogLevel.UnmarshalText([]byte(strings.ToUpper(*level))); err != nil {
		return Settings{}, fmt.Errorf("log level %q: %w", *level, err)
	}
	if s.SampleRate <= 0 {
		return Settings{}, fmt.Errorf("sample rate must be positive, got %d", s.SampleRate)
	}
	if s.Threshold < 0 || s.Threshold >= MaxEnergy {
		return Settings{}, fmt.Errorf("threshold must be in [0,%v), got %v", MaxEnergy, s.Threshold)
	}
	if s.Size < 100 {
		s.Size = 100
	}
	s.Sources = fs.Args()
	return s, nil
}

// Nyquist returns the highest frequency representable at the configured rate.
func (s Settings) Nyquist() float64 {
	return float64(s.SampleRate) / 2
}
