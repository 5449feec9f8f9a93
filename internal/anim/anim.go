// Package anim holds the per-circle animation state and the mapping from a
// note's energy to the values the state eases toward.
package anim

import "math"

// Rates are the fraction of the remaining gap closed per frame.
type Rates struct {
	Scale    float64
	Color    float64
	Rotation float64
}

// State eases current values toward targets, one Advance per frame.
type State struct {
	Scale        float64
	TargetScale  float64
	Color        float64
	TargetColor  float64
	Rotation     float64
	TargetRotate float64
	Active       bool

	rates Rates
}

// New returns a resting state: scale 1, no glow, no rotation.
func New(r Rates) *State {
	return &State{Scale: 1, TargetScale: 1, rates: r}
}

// Advance moves every current value toward its target by its rate.
func (s *State) Advance() {
	s.Scale += (s.TargetScale - s.Scale) * s.rates.Scale
	s.Color += (s.TargetColor - s.Color) * s.rates.Color
	s.Rotation += (s.TargetRotate - s.Rotation) * s.rates.Rotation
}

// Freeze puts s at rest and pins the rotation target to the current angle.
func (s *State) Freeze() {
	s.Active = false
	s.TargetScale = 1
	s.TargetColor = 0
	s.TargetRotate = s.Rotation
}

// Response maps energy on a 0..MaxEnergy scale onto animation targets.
type Response struct {
	Threshold float64
	MaxEnergy float64
	MaxScale  float64
	MaxGlow   float64
	MaxSpin   float64
}

// Drive sets the targets of s for one frame's energy. Energy at or below the
// threshold rests the element but keeps its rotation target; above it the
// rotation target accumulates.
func (r Response) Drive(s *State, energy float64) {
	if energy <= r.Threshold {
		s.Active = false
		s.TargetScale = 1
		s.TargetColor = 0
		return
	}
	s.Active = true
	s.TargetScale = Map(energy, r.Threshold, r.MaxEnergy, 1, r.MaxScale)
	s.TargetColor = Map(energy, r.Threshold, r.MaxEnergy, 0, r.MaxGlow)
	s.TargetRotate += Map(energy, r.Threshold, r.MaxEnergy, 0, r.MaxSpin)

	// Shift both angles together so the target stays bounded while the
	// remaining gap, and so the drawn orientation, is unchanged.
	if s.TargetRotate > 2*math.Pi {
		s.TargetRotate -= 2 * math.Pi
		s.Rotation -= 2 * math.Pi
	}
}

// Map linearly maps v from [inLo,inHi] onto [outLo,outHi], clamping to the
// output range.
func Map(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	t := (v - inLo) / (inHi - inLo)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return outLo + (outHi-outLo)*t
}
