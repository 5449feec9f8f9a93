// Package playback drives a playlist of looping tracks and keeps the
// spectrum analyzer bound to whichever track is current.
package playback

import (
	"log/slog"

	"github.com/iburimskiy/note-circles/internal/spectrum"
)

// Button labels.
const (
	LabelPlay  = "Play"
	LabelPause = "Pause"
)

// Binder receives the analysis input of the current track.
type Binder interface {
	Bind(src spectrum.Source)
}

// Controller implements play/pause/next/previous over a Playlist.
type Controller struct {
	list   *Playlist
	input  Binder
	label  string
	logger *slog.Logger
}

// NewController binds input to the current track, if any. A nil logger
// uses slog.Default.
func NewController(list *Playlist, input Binder, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		list:   list,
		input:  input,
		label:  LabelPlay,
		logger: logger,
	}
	if t := list.Current(); t != nil {
		input.Bind(t.Source())
	}
	return c
}

// Playlist returns the controlled playlist.
func (c *Controller) Playlist() *Playlist {
	return c.list
}

// Label is the text the play button shows.
func (c *Controller) Label() string {
	return c.label
}

// Playing reports whether the current track is playing.
func (c *Controller) Playing() bool {
	t := c.list.Current()
	return t != nil && t.Playing()
}

// TogglePlay pauses the current track if it is playing, otherwise starts
// or resumes it looping.
func (c *Controller) TogglePlay() {
	t := c.list.Current()
	if t == nil {
		return
	}
	if t.Playing() {
		t.Pause()
		c.label = LabelPlay
		c.logger.Debug("playback: paused", "track", t.Title(), "id", t.ID())
		return
	}
	t.Loop()
	c.label = LabelPause
	c.logger.Debug("playback: playing", "track", t.Title(), "id", t.ID())
}

// Next stops the current track and starts the following one.
func (c *Controller) Next() {
	c.skip(1)
}

// Previous stops the current track and starts the preceding one.
func (c *Controller) Previous() {
	c.skip(-1)
}

// Append adds tracks; the first track added to an empty playlist is bound
// for analysis but not started.
func (c *Controller) Append(tracks ...Track) {
	if len(tracks) == 0 {
		return
	}
	wasEmpty := c.list.Len() == 0
	c.list.Append(tracks...)
	if wasEmpty {
		c.input.Bind(c.list.Current().Source())
	}
}

func (c *Controller) skip(delta int) {
	if c.list.Len() == 0 {
		return
	}
	if t := c.list.Current(); t.Playing() {
		t.Stop()
	}
	c.list.Step(delta)

	t := c.list.Current()
	c.input.Bind(t.Source())
	t.Loop()
	c.label = LabelPause
	c.logger.Info("playback: track changed", "index", c.list.Index(), "track", t.Title(), "id", t.ID())
}
