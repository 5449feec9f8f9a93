package playback

import "github.com/iburimskiy/note-circles/internal/spectrum"

// Track is one playable item. Implementations own the audio transport.
type Track interface {
	ID() string
	Title() string
	// Loop starts or resumes looping playback.
	Loop()
	// Pause halts playback and keeps the position.
	Pause()
	// Stop halts playback and rewinds to the start.
	Stop()
	Playing() bool
	// Source feeds the spectrum analyzer while the track plays.
	Source() spectrum.Source
}

// Playlist is an ordered list of tracks with a wrapping cursor.
// It is only touched from the frame loop.
type Playlist struct {
	tracks  []Track
	current int
}

// NewPlaylist creates a playlist positioned on the first track.
func NewPlaylist(tracks []Track) *Playlist {
	return &Playlist{tracks: tracks}
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// Index returns the cursor position.
func (p *Playlist) Index() int {
	return p.current
}

// Current returns the track under the cursor, or nil when empty.
func (p *Playlist) Current() Track {
	if len(p.tracks) == 0 {
		return nil
	}
	return p.tracks[p.current]
}

// Track returns the track at i, or nil if out of range.
func (p *Playlist) Track(i int) Track {
	if i < 0 || i >= len(p.tracks) {
		return nil
	}
	return p.tracks[i]
}

// Step moves the cursor by delta with wraparound in both directions.
func (p *Playlist) Step(delta int) {
	n := len(p.tracks)
	if n == 0 {
		return
	}
	p.current = ((p.current+delta)%n + n) % n
}

// Append adds tracks at the end without moving the cursor.
func (p *Playlist) Append(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}
