// Package band maps musical notes onto spectrum bins and reduces the bins of
// a note to one energy value per frame.
package band

import (
	"image/color"
	"math"
)

// NoteBand is a named frequency interval in Hz with its glow colour.
type NoteBand struct {
	Name  string
	Low   float64
	High  float64
	Color color.RGBA
}

// Notes covers C4..B4, each band spanning about a semitone either side.
var Notes = [7]NoteBand{
	{Name: "C", Low: 246, High: 277, Color: color.RGBA{R: 255, G: 96, B: 80, A: 255}},
	{Name: "D", Low: 277, High: 311, Color: color.RGBA{R: 255, G: 160, B: 60, A: 255}},
	{Name: "E", Low: 311, High: 349, Color: color.RGBA{R: 255, G: 215, B: 0, A: 255}},
	{Name: "F", Low: 349, High: 392, Color: color.RGBA{R: 160, G: 210, B: 120, A: 255}},
	{Name: "G", Low: 370, High: 415, Color: color.RGBA{R: 110, G: 200, B: 220, A: 255}},
	{Name: "A", Low: 415, High: 466, Color: color.RGBA{R: 150, G: 140, B: 255, A: 255}},
	{Name: "B", Low: 466, High: 523, Color: color.RGBA{R: 230, G: 130, B: 220, A: 255}},
}

// Range converts [low, high] Hz into an inclusive bin range for a spectrum
// of length bins whose last bin sits at maxFreq. Both ends are clamped to
// [0, bins-1]. An inverted band collapses to the single bin at lo.
func Range(low, high, maxFreq float64, bins int) (lo, hi int) {
	if bins <= 0 || maxFreq <= 0 {
		return 0, 0
	}
	binSize := maxFreq / float64(bins)
	lo = clampIndex(math.Floor(low/binSize), bins)
	hi = clampIndex(math.Floor(high/binSize), bins)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Range is a shorthand for the package level Range on the band's interval.
func (n NoteBand) Range(maxFreq float64, bins int) (lo, hi int) {
	return Range(n.Low, n.High, maxFreq, bins)
}

func clampIndex(v float64, bins int) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > float64(bins-1) {
		return bins - 1
	}
	return int(v)
}

// Mean is the arithmetic mean of spectrum[lo..hi]. Indices outside the
// spectrum are dropped; an empty range yields 0.
func Mean(spectrum []float64, lo, hi int) float64 {
	if lo < 0 {
		lo = 0
	}
	if hi > len(spectrum)-1 {
		hi = len(spectrum) - 1
	}
	if hi < lo {
		return 0
	}
	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += spectrum[i]
	}
	return sum / float64(hi-lo+1)
}

// Energy maps and aggregates in one step.
func (n NoteBand) Energy(spectrum []float64, maxFreq float64) float64 {
	if len(spectrum) == 0 {
		return 0
	}
	lo, hi := n.Range(maxFreq, len(spectrum))
	return Mean(spectrum, lo, hi)
}

// Energies fills dst (grown as needed) with one energy per note.
func Energies(dst []float64, notes []NoteBand, spectrum []float64, maxFreq float64) []float64 {
	if cap(dst) < len(notes) {
		dst = make([]float64, len(notes))
	}
	dst = dst[:len(notes)]
	for i, n := range notes {
		dst[i] = n.Energy(spectrum, maxFreq)
	}
	return dst
}
