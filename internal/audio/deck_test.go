package audio

import (
	"testing"

	"github.com/faiface/beep"
	"github.com/iburimskiy/note-circles/internal/media"
)

// rampStream yields a sample that depends only on its position.
type rampStream struct {
	pos    int
	seeks  []int
	closed bool
}

func rampValue(pos int) float64 { return float64(pos%97) / 97 }

func (s *rampStream) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := rampValue(s.pos)
		samples[i] = [2]float64{v, v}
		s.pos++
	}
	return len(samples), true
}

func (s *rampStream) Err() error    { return nil }
func (s *rampStream) Len() int      { return 1 << 20 }
func (s *rampStream) Position() int { return s.pos }
func (s *rampStream) Close() error  { s.closed = true; return nil }

func (s *rampStream) Seek(p int) error {
	s.seeks = append(s.seeks, p)
	s.pos = p
	return nil
}

type fakeOutput struct {
	locked bool
	locks  int
	played []beep.Streamer
}

func (o *fakeOutput) Lock() {
	if o.locked {
		panic("output locked twice")
	}
	o.locked = true
	o.locks++
}

func (o *fakeOutput) Unlock() { o.locked = false }

func (o *fakeOutput) Play(s ...beep.Streamer) {
	if o.locked {
		panic("Play called while holding the lock")
	}
	o.played = append(o.played, s...)
}

func newTestDeck(srcRate, outRate int) (*Deck, *rampStream, *fakeOutput) {
	stream := &rampStream{}
	out := &fakeOutput{}
	format := beep.Format{SampleRate: beep.SampleRate(srcRate), NumChannels: 1, Precision: 2}
	d := newDeck(media.Info{ID: "id", Title: "ramp"}, stream, format, outRate, out, nil)
	return d, stream, out
}

func pull(d *Deck, n int) [][2]float64 {
	buf := make([][2]float64, n)
	d.ctrl.Stream(buf)
	return buf
}

func TestDeckLoopMixesOnce(t *testing.T) {
	d, _, out := newTestDeck(44100, 44100)
	d.Loop()
	d.Pause()
	if d.Playing() || !d.ctrl.Paused {
		t.Fatal("expected paused deck")
	}
	d.Loop()
	if !d.Playing() || d.ctrl.Paused {
		t.Fatal("expected playing deck")
	}
	if len(out.played) != 1 || out.played[0] != d.ctrl {
		t.Fatalf("expected the ctrl mixed exactly once, got %d", len(out.played))
	}
	if out.locked {
		t.Fatal("lock left held")
	}
}

func TestDeckStopRewindsAndClearsTap(t *testing.T) {
	d, stream, out := newTestDeck(44100, 44100)
	d.Loop()
	pull(d, 300)
	if n := d.tap.Snapshot(make([]float64, 16)); n != 16 {
		t.Fatalf("expected recorded samples before stop, got %d", n)
	}

	d.Stop()
	if len(stream.seeks) != 1 || stream.seeks[0] != 0 {
		t.Fatalf("expected one Seek(0), got %v", stream.seeks)
	}
	if d.Playing() || !d.ctrl.Paused {
		t.Fatal("expected stopped deck to be paused")
	}
	if n := d.tap.Snapshot(make([]float64, 16)); n != 0 {
		t.Fatalf("expected empty tap after stop, got %d samples", n)
	}
	if out.locked {
		t.Fatal("lock left held")
	}

	d.Loop()
	got := pull(d, 4)
	for i, s := range got {
		if s[0] != rampValue(i) {
			t.Fatalf("sample %d after restart = %v, want %v", i, s[0], rampValue(i))
		}
	}
}

func TestDeckStopDropsResampledReadAhead(t *testing.T) {
	fresh, _, _ := newTestDeck(22050, 44100)
	fresh.Loop()
	want := pull(fresh, 64)

	d, _, _ := newTestDeck(22050, 44100)
	d.Loop()
	pull(d, 700)
	before := d.tap.Source
	d.Stop()
	if _, ok := d.tap.Source.(*beep.Resampler); !ok || d.tap.Source == before {
		t.Fatalf("expected a new resampler after stop, got %T", d.tap.Source)
	}

	d.Loop()
	got := pull(d, 64)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d after restart = %v, want %v as from a fresh deck", i, got[i], want[i])
		}
	}
}

func TestDeckClose(t *testing.T) {
	d, stream, _ := newTestDeck(44100, 44100)
	d.Loop()
	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !stream.closed || d.Playing() || !d.ctrl.Paused {
		t.Fatal("expected closed and paused deck")
	}
}
