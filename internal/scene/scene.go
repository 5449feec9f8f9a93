// Package scene owns the fixed layout of circles and advances the note-bound
// ones once per frame from the playing track's spectrum.
package scene

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/note-circles/internal/anim"
	"github.com/iburimskiy/note-circles/internal/band"
	"github.com/iburimskiy/note-circles/internal/config"
)

// Transport reports whether the current track is playing.
type Transport interface {
	Playing() bool
}

// Analyzer yields one spectrum per call.
type Analyzer interface {
	Analyze() []float64
}

// Dot is one speck of the background texture.
type Dot struct {
	X, Y, Size float64
	Alpha      uint8
}

// Scene is the layout plus the per-frame animation pipeline.
type Scene struct {
	Size     float64
	Elements []*Element
	Notes    []*Element
	Links    [][2]int
	Dots     []Dot
	Energies []float64

	bands    []band.NoteBand
	response anim.Response
	nyquist  float64
	rng      *rand.Rand
}

// Options configures New.
type Options struct {
	Size     float64
	Seed     int64
	Nyquist  float64
	Rates    anim.Rates
	Response anim.Response
}

// New builds the layout: 25 circles on five diagonals, seven of them bound
// to the notes C..B.
func New(opts Options) *Scene {
	rng := rand.New(rand.NewSource(opts.Seed))
	s := &Scene{
		response: opts.Response,
		nyquist:  opts.Nyquist,
		rng:      rng,
	}
	for line := 0; line < config.LineCount; line++ {
		for slot := 0; slot < config.CirclesPerLine; slot++ {
			e := newElement(rng, line, slot)
			e.Node = rng.Float64() < config.NodeChance
			s.Elements = append(s.Elements, e)
		}
	}
	for i, idx := range config.NoteCircleIndices {
		e := s.Elements[idx]
		note := band.Notes[i]
		e.Note = &note
		e.Anim = anim.New(opts.Rates)
		s.Notes = append(s.Notes, e)
		s.bands = append(s.bands, note)
	}
	s.Energies = make([]float64, len(s.Notes))
	s.Resize(opts.Size)
	return s
}

// lineOrigins are the start points of the diagonals as fractions of the
// canvas size.
var lineOrigins = [config.LineCount][2]float64{
	{1 / 7.1, 1 / 7.1},
	{1 / 2.0, 2 / 20.0},
	{4 / 5.0, 0},
	{1 / 20.0, 1 / 2.2},
	{0, 8 / 10.0},
}

// Resize lays the circles out on a square canvas of the given side and
// regenerates the links and background texture.
func (s *Scene) Resize(size float64) {
	if size <= 0 {
		return
	}
	s.Size = size
	step := size / 4.8
	for _, e := range s.Elements {
		o := lineOrigins[e.line]
		e.X = o[0]*size + step*float64(e.slot)
		e.Y = o[1]*size + step*float64(e.slot)
		e.R = size / 10
	}

	s.Links = s.Links[:0]
	maxDist := size / 2.8
	for i, a := range s.Elements {
		if !a.Node {
			continue
		}
		for j := i + 1; j < len(s.Elements); j++ {
			b := s.Elements[j]
			if b.Node && math.Hypot(a.X-b.X, a.Y-b.Y) < maxDist {
				s.Links = append(s.Links, [2]int{i, j})
			}
		}
	}

	n := int(size * size * config.DotDensity)
	s.Dots = s.Dots[:0]
	for range n {
		s.Dots = append(s.Dots, Dot{
			X:     s.rng.Float64() * size,
			Y:     s.rng.Float64() * size,
			Size:  size * (0.002 + s.rng.Float64()*0.003),
			Alpha: uint8(100 + s.rng.Intn(100)),
		})
	}
}

// Tick runs one frame: when the transport plays, the spectrum drives the
// note targets; otherwise every note element is frozen. All note elements
// then advance.
func (s *Scene) Tick(t Transport, a Analyzer) {
	if t.Playing() {
		s.Drive(a.Analyze())
	} else {
		s.Freeze()
	}
	s.Advance()
}

// Drive sets the note targets from one spectrum.
func (s *Scene) Drive(spectrum []float64) {
	s.Energies = band.Energies(s.Energies, s.bands, spectrum, s.nyquist)
	for i, e := range s.Notes {
		s.response.Drive(e.Anim, s.Energies[i])
	}
}

// Freeze rests every note element and holds its rotation.
func (s *Scene) Freeze() {
	for i, e := range s.Notes {
		s.Energies[i] = 0
		e.Anim.Freeze()
	}
}

// Advance eases every animated element toward its targets.
func (s *Scene) Advance() {
	for _, e := range s.Elements {
		if e.Anim != nil {
			e.Anim.Advance()
		}
	}
}
