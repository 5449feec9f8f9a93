package scene

import (
	"image/color"
	"math/rand"

	"github.com/iburimskiy/note-circles/internal/anim"
	"github.com/iburimskiy/note-circles/internal/band"
)

// OuterKind selects the pattern of the outer ring.
type OuterKind uint8

const (
	OuterDots OuterKind = iota
	OuterRays
	OuterStripes
	OuterWave
	outerKinds
)

// MiddleKind selects the pattern of the middle ring.
type MiddleKind uint8

const (
	MiddleDots MiddleKind = iota
	MiddleArcs
	MiddleSolid
	MiddleRings
	middleKinds
)

// InnerKind selects the pattern of the centre.
type InnerKind uint8

const (
	InnerBlob InnerKind = iota
	InnerSpiral
	innerKinds
)

var (
	Background = color.RGBA{R: 30, G: 20, B: 15, A: 255}

	basePalette = []color.RGBA{
		{R: 90, G: 40, B: 20, A: 255},
		{R: 60, G: 30, B: 15, A: 255},
		{R: 40, G: 45, B: 35, A: 255},
		{R: 110, G: 60, B: 30, A: 255},
		{R: 20, G: 20, B: 20, A: 255},
	}
	patternPalette = []color.RGBA{
		{R: 255, G: 255, B: 255, A: 255},
		{R: 255, G: 240, B: 200, A: 255},
		{R: 255, G: 215, B: 0, A: 255},
		{R: 255, G: 140, B: 80, A: 255},
		{R: 160, G: 180, B: 140, A: 255},
		{R: 200, G: 200, B: 210, A: 255},
	}
)

// Element is one circle of the layout. Its kinds and colours are picked
// once; only note-bound elements carry animation state.
type Element struct {
	X, Y, R float64

	Outer  OuterKind
	Middle MiddleKind
	Inner  InnerKind

	// Fill colours of the outer, middle and inner discs.
	Fill [3]color.RGBA
	// Pattern colours drawn over each disc; Ink[3] is the second solid ring.
	Ink [4]color.RGBA
	// Seed drives the hand-drawn jitter so a circle keeps its shape.
	Seed int64

	Node bool
	// Note is the element's own copy of its band, nil when unbound.
	Note *band.NoteBand
	Anim *anim.State

	line, slot int
}

func newElement(rng *rand.Rand, line, slot int) *Element {
	e := &Element{
		Outer:  OuterKind(rng.Intn(int(outerKinds))),
		Middle: MiddleKind(rng.Intn(int(middleKinds))),
		Inner:  InnerKind(rng.Intn(int(innerKinds))),
		Seed:   rng.Int63(),
		line:   line,
		slot:   slot,
	}
	for i := range e.Fill {
		e.Fill[i] = basePalette[rng.Intn(len(basePalette))]
	}
	for i := range e.Ink {
		e.Ink[i] = patternPalette[rng.Intn(len(patternPalette))]
	}
	return e
}

// Active reports whether the bound note is above threshold.
func (e *Element) Active() bool {
	return e.Anim != nil && e.Anim.Active
}

// Transform returns the scale and rotation to draw with.
func (e *Element) Transform() (scale, rotation float64) {
	if e.Anim == nil {
		return 1, 0
	}
	return e.Anim.Scale, e.Anim.Rotation
}

// Glow returns the current glow intensity, 0 for unbound elements.
func (e *Element) Glow() float64 {
	if e.Anim == nil {
		return 0
	}
	return e.Anim.Color
}
