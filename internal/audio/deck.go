// Package audio plays decoded tracks through an Output such as the speaker.
package audio

import (
	"log/slog"

	"github.com/faiface/beep"
	"github.com/iburimskiy/note-circles/internal/config"
	"github.com/iburimskiy/note-circles/internal/media"
	"github.com/iburimskiy/note-circles/internal/playback"
	"github.com/iburimskiy/note-circles/internal/spectrum"
)

const resampleQuality = 4

// Output mixes streamers. Lock must be held while a mixed streamer is
// mutated, since the device pulls samples from its own goroutine.
type Output interface {
	Lock()
	Unlock()
	Play(s ...beep.Streamer)
}

// Deck is one decoded track wired as stream -> loop -> resample -> tap -> ctrl
// and mixed into the output on first play.
type Deck struct {
	info    media.Info
	stream  beep.StreamSeekCloser
	format  beep.Format
	rate    beep.SampleRate
	ctrl    *beep.Ctrl
	tap     *spectrum.Tap
	out     Output
	playing bool
	mixed   bool
	logger  *slog.Logger
}

var _ playback.Track = (*Deck)(nil)

// Load decodes path and prepares it for playback at the output rate.
func Load(path string, rate int, out Output, logger *slog.Logger) (*Deck, error) {
	stream, format, err := media.Open(path)
	if err != nil {
		return nil, err
	}
	d := newDeck(media.Describe(path), stream, format, rate, out, logger)
	d.logger.Debug("audio: loaded", "track", d.info.Title, "id", d.info.ID, "rate", format.SampleRate, "channels", format.NumChannels)
	return d, nil
}

func newDeck(info media.Info, stream beep.StreamSeekCloser, format beep.Format, rate int, out Output, logger *slog.Logger) *Deck {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Deck{
		info:   info,
		stream: stream,
		format: format,
		rate:   beep.SampleRate(rate),
		out:    out,
		logger: logger,
	}
	d.tap = spectrum.NewTap(d.chain(), config.TapRingSize)
	d.ctrl = &beep.Ctrl{Streamer: d.tap, Paused: true}
	return d
}

// chain builds the looping, resampled streamer above the decoder. The
// resampler reads ahead, so it is rebuilt whenever the decoder is rewound.
func (d *Deck) chain() beep.Streamer {
	var s beep.Streamer = beep.Loop(-1, d.stream)
	if d.format.SampleRate != d.rate {
		s = beep.Resample(resampleQuality, d.format.SampleRate, d.rate, s)
	}
	return s
}

// LoadAll loads every path, logging and skipping the ones that fail.
func LoadAll(paths []string, rate int, out Output, logger *slog.Logger) []playback.Track {
	if logger == nil {
		logger = slog.Default()
	}
	tracks := make([]playback.Track, 0, len(paths))
	for _, p := range paths {
		d, err := Load(p, rate, out, logger)
		if err != nil {
			logger.Warn("audio: skipping track", "path", p, "err", err)
			continue
		}
		tracks = append(tracks, d)
	}
	return tracks
}

func (d *Deck) ID() string              { return d.info.ID }
func (d *Deck) Title() string           { return d.info.Title }
func (d *Deck) Playing() bool           { return d.playing }
func (d *Deck) Source() spectrum.Source { return d.tap }

func (d *Deck) Loop() {
	d.out.Lock()
	d.ctrl.Paused = false
	d.out.Unlock()
	if !d.mixed {
		d.out.Play(d.ctrl)
		d.mixed = true
	}
	d.playing = true
}

func (d *Deck) Pause() {
	d.out.Lock()
	d.ctrl.Paused = true
	d.out.Unlock()
	d.playing = false
}

// Stop pauses and rewinds to the start, dropping anything buffered above
// the decoder.
func (d *Deck) Stop() {
	d.out.Lock()
	d.ctrl.Paused = true
	err := d.stream.Seek(0)
	if err == nil {
		d.tap.Source = d.chain()
	}
	d.out.Unlock()
	if err != nil {
		d.logger.Warn("audio: rewind failed", "track", d.info.Title, "err", err)
	}
	d.tap.Reset()
	d.playing = false
}

// Close releases the decoder and its file.
func (d *Deck) Close() error {
	d.out.Lock()
	defer d.out.Unlock()
	d.ctrl.Paused = true
	d.playing = false
	return d.stream.Close()
}
