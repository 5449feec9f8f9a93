// Package output owns the beep speaker, the one audio device of the process.
package output

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/iburimskiy/note-circles/internal/config"
)

// Speaker mixes streamers into the default output device.
type Speaker struct{}

// Init opens the output device at rate.
func Init(rate int) (Speaker, error) {
	sr := beep.SampleRate(rate)
	if err := speaker.Init(sr, sr.N(config.SpeakerBufferMs*time.Millisecond)); err != nil {
		return Speaker{}, fmt.Errorf("init speaker: %w", err)
	}
	return Speaker{}, nil
}

func (Speaker) Lock()                   { speaker.Lock() }
func (Speaker) Unlock()                 { speaker.Unlock() }
func (Speaker) Play(s ...beep.Streamer) { speaker.Play(s...) }
