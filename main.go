package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/iburimskiy/note-circles/internal/anim"
	"github.com/iburimskiy/note-circles/internal/audio"
	"github.com/iburimskiy/note-circles/internal/config"
	"github.com/iburimskiy/note-circles/internal/game"
	"github.com/iburimskiy/note-circles/internal/media"
	"github.com/iburimskiy/note-circles/internal/output"
	"github.com/iburimskiy/note-circles/internal/playback"
	"github.com/iburimskiy/note-circles/internal/scene"
	"github.com/iburimskiy/note-circles/internal/spectrum"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "note-circles:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	settings, err := config.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: settings.LogLevel}))
	if settings.Seed == 0 {
		settings.Seed = time.Now().UnixNano()
	}

	paths, skipped, err := media.Collect(settings.Sources)
	switch {
	case errors.Is(err, media.ErrEmpty):
		logger.Info("no tracks given, starting with an empty playlist", "skipped", skipped)
	case err != nil:
		return err
	case skipped > 0:
		logger.Warn("skipped unplayable sources", "skipped", skipped)
	}

	out, err := output.Init(settings.SampleRate)
	if err != nil {
		return err
	}
	load := func(paths []string) []playback.Track {
		return audio.LoadAll(paths, settings.SampleRate, out, logger)
	}

	analyzer := spectrum.NewAnalyzer(spectrum.Options{
		Size:        config.FFTSize,
		Smoothing:   config.FFTSmoothing,
		MinDecibels: config.MinDecibels,
		MaxDecibels: config.MaxDecibels,
	})
	ctrl := playback.NewController(playback.NewPlaylist(load(paths)), analyzer, logger)
	sc := scene.New(scene.Options{
		Size:    float64(settings.Size),
		Seed:    settings.Seed,
		Nyquist: settings.Nyquist(),
		Rates: anim.Rates{
			Scale:    config.ScaleRate,
			Color:    config.ColorRate,
			Rotation: config.RotateRate,
		},
		Response: anim.Response{
			Threshold: settings.Threshold,
			MaxEnergy: config.MaxEnergy,
			MaxScale:  config.MaxScale,
			MaxGlow:   config.MaxGlow,
			MaxSpin:   config.MaxSpin,
		},
	})
	logger.Info("starting", "tracks", ctrl.Playlist().Len(), "seed", settings.Seed, "rate", settings.SampleRate, "bins", analyzer.Bins())

	ebiten.SetWindowSize(settings.Size, settings.Size)
	ebiten.SetWindowTitle("Note Circles - Space: Play/Pause, N/P: Next/Previous, Esc/Q: Quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := game.New(ctrl, analyzer, sc, load, logger)
	defer closeTracks(ctrl.Playlist(), logger)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func closeTracks(list *playback.Playlist, logger *slog.Logger) {
	for i := 0; i < list.Len(); i++ {
		c, ok := list.Track(i).(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			logger.Warn("close track", "index", i, "err", err)
		}
	}
}
