package scene

import (
	"math"
	"testing"

	"github.com/iburimskiy/note-circles/internal/anim"
	"github.com/iburimskiy/note-circles/internal/band"
	"github.com/iburimskiy/note-circles/internal/config"
)

type stubTransport bool

func (s stubTransport) Playing() bool { return bool(s) }

type stubAnalyzer struct {
	spectrum []float64
	calls    int
}

func (a *stubAnalyzer) Analyze() []float64 {
	a.calls++
	return a.spectrum
}

func newTestScene() *Scene {
	return New(Options{
		Size:    800,
		Seed:    42,
		Nyquist: 22050,
		Rates:   anim.Rates{Scale: 0.15, Color: 0.12, Rotation: 0.08},
		Response: anim.Response{
			Threshold: 50, MaxEnergy: 255, MaxScale: 1.8, MaxGlow: 0.8, MaxSpin: 0.1,
		},
	})
}

// spectrumFor lights the bins of one note.
func spectrumFor(note band.NoteBand, level float64) []float64 {
	levels := make([]float64, config.Bins)
	lo, hi := note.Range(22050, len(levels))
	for i := lo; i <= hi; i++ {
		levels[i] = level
	}
	return levels
}

func TestLayout(t *testing.T) {
	s := newTestScene()
	if len(s.Elements) != 25 {
		t.Fatalf("expected 25 elements, got %d", len(s.Elements))
	}
	if len(s.Notes) != 7 {
		t.Fatalf("expected 7 note elements, got %d", len(s.Notes))
	}
	for i, e := range s.Notes {
		if e.Note.Name != band.Notes[i].Name || e.Anim == nil {
			t.Fatalf("note element %d not bound to %s", i, band.Notes[i].Name)
		}
	}
	bound := 0
	for _, e := range s.Elements {
		if e.Anim != nil {
			bound++
		}
		if e.R != 80 {
			t.Fatalf("expected radius 80, got %v", e.R)
		}
	}
	if bound != 7 {
		t.Fatalf("expected 7 animated elements, got %d", bound)
	}
	first := s.Elements[0]
	if math.Abs(first.X-800/7.1) > 1e-9 || math.Abs(first.Y-800/7.1) > 1e-9 {
		t.Fatalf("unexpected first position (%v,%v)", first.X, first.Y)
	}
	size := 800.0
	if want := int(size * size * 0.004); len(s.Dots) != want {
		t.Fatalf("expected %d dots, got %d", want, len(s.Dots))
	}
}

func TestLayoutIsDeterministicPerSeed(t *testing.T) {
	a, b := newTestScene(), newTestScene()
	for i := range a.Elements {
		ea, eb := a.Elements[i], b.Elements[i]
		if ea.Outer != eb.Outer || ea.Middle != eb.Middle || ea.Inner != eb.Inner || ea.Fill != eb.Fill || ea.Node != eb.Node {
			t.Fatalf("element %d differs between equal seeds", i)
		}
	}
}

func TestResizeKeepsPatterns(t *testing.T) {
	s := newTestScene()
	kinds := make([]OuterKind, len(s.Elements))
	for i, e := range s.Elements {
		kinds[i] = e.Outer
	}
	s.Resize(400)
	for i, e := range s.Elements {
		if e.Outer != kinds[i] {
			t.Fatalf("element %d changed pattern on resize", i)
		}
		if e.R != 40 {
			t.Fatalf("expected radius 40 after resize, got %v", e.R)
		}
	}
	for _, l := range s.Links {
		a, b := s.Elements[l[0]], s.Elements[l[1]]
		if !a.Node || !b.Node {
			t.Fatalf("link %v joins a non-node", l)
		}
	}
}

func TestTickDrivesOnlyMatchingNote(t *testing.T) {
	s := newTestScene()
	a := &stubAnalyzer{spectrum: spectrumFor(band.Notes[0], 255)}
	s.Tick(stubTransport(true), a)

	if a.calls != 1 {
		t.Fatalf("expected one analysis per frame, got %d", a.calls)
	}
	c := s.Notes[0]
	if !c.Active() || c.Anim.TargetScale != 1.8 {
		t.Fatalf("expected C active at full scale, got %+v", c.Anim)
	}
	if scale, _ := c.Transform(); scale <= 1 {
		t.Fatalf("expected C to start growing, scale=%v", scale)
	}
	if e := s.Notes[4]; e.Active() {
		t.Fatalf("expected G inactive, energy=%v", s.Energies[4])
	}
}

func TestTickFreezesWhenStopped(t *testing.T) {
	s := newTestScene()
	a := &stubAnalyzer{spectrum: spectrumFor(band.Notes[2], 255)}
	for range 10 {
		s.Tick(stubTransport(true), a)
	}
	e := s.Notes[2]
	if e.Anim.Rotation == 0 {
		t.Fatal("expected E to have rotated")
	}

	s.Tick(stubTransport(false), a)
	if a.calls != 10 {
		t.Fatalf("expected no analysis while stopped, got %d calls", a.calls)
	}
	if e.Active() || e.Anim.TargetScale != 1 || e.Anim.TargetColor != 0 {
		t.Fatalf("expected frozen targets, got %+v", e.Anim)
	}
	rot := e.Anim.Rotation
	s.Tick(stubTransport(false), a)
	if e.Anim.Rotation != rot {
		t.Fatalf("expected rotation held at %v, got %v", rot, e.Anim.Rotation)
	}
}

func TestUnboundElementsStayStatic(t *testing.T) {
	s := newTestScene()
	e := s.Elements[0]
	if scale, rot := e.Transform(); scale != 1 || rot != 0 || e.Glow() != 0 || e.Active() {
		t.Fatal("expected unbound element at rest")
	}
}

func TestNoteBandsAreCopied(t *testing.T) {
	s := newTestScene()
	saved := band.Notes[0]
	defer func() { band.Notes[0] = saved }()

	band.Notes[0].Low, band.Notes[0].High = 0, 22050
	if got := s.Notes[0].Note; got.Low != saved.Low || got.High != saved.High {
		t.Fatalf("element band changed with the table: %+v", *got)
	}
	if &band.Notes[0] == s.Notes[0].Note {
		t.Fatal("element shares the table entry")
	}

	levels := spectrumFor(saved, 255)
	s.Tick(stubTransport(true), &stubAnalyzer{spectrum: levels})
	if s.Energies[0] != 255 {
		t.Fatalf("expected energy from the original band, got %v", s.Energies[0])
	}
}
