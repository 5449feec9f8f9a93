package spectrum

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and records the last N samples, mixed to mono,
// into a ring buffer so the analyzer can read recently played audio.
type Tap struct {
	Source    beep.Streamer
	buffer    []float64
	nextIndex int
	filled    int
	mu        sync.RWMutex
}

// NewTap creates a tap holding ringSize mono samples.
func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		Source: src,
		buffer: make([]float64, ringSize),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = (samples[i][0] + samples[i][1]) * 0.5
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.filled += n
		if t.filled > len(t.buffer) {
			t.filled = len(t.buffer)
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Snapshot copies the most recent len(dst) samples into dst in chronological
// order. When fewer samples were recorded the head of dst is zeroed. It
// returns the number of recorded samples copied.
func (t *Tap) Snapshot(dst []float64) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := len(dst)
	if n > t.filled {
		n = t.filled
	}
	pad := len(dst) - n
	for i := 0; i < pad; i++ {
		dst[i] = 0
	}
	start := t.nextIndex - n
	if start < 0 {
		start += len(t.buffer)
	}
	for i := 0; i < n; i++ {
		dst[pad+i] = t.buffer[(start+i)%len(t.buffer)]
	}
	return n
}

// Reset forgets everything recorded so far.
func (t *Tap) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextIndex = 0
	t.filled = 0
}
