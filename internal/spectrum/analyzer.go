// Package spectrum turns the samples of the currently bound track into a
// frequency spectrum of byte-scaled magnitudes, one snapshot per frame.
package spectrum

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// Source yields recently played mono samples. Tap implements it.
type Source interface {
	Snapshot(dst []float64) int
}

// Options configures an Analyzer.
type Options struct {
	Size        int     // FFT size, the spectrum has Size/2 bins
	Smoothing   float64 // time averaging between frames, in [0,1)
	MinDecibels float64
	MaxDecibels float64
}

// Analyzer computes byte-scaled spectra the way a browser AnalyserNode does:
// Hann window, FFT, magnitude averaged over time, then dB mapped onto 0..255.
type Analyzer struct {
	opts     Options
	src      Source
	fft      *fourier.FFT
	hann     []float64
	samples  []float64
	coeffs   []complex128
	smoothed []float64
	out      []float64
}

// NewAnalyzer creates an analyzer with no input bound.
func NewAnalyzer(opts Options) *Analyzer {
	if opts.Size < 2 {
		opts.Size = 2
	}
	if opts.MaxDecibels <= opts.MinDecibels {
		opts.MaxDecibels = opts.MinDecibels + 1
	}
	hann := make([]float64, opts.Size)
	for i := range hann {
		hann[i] = 1
	}
	window.Hann(hann)

	bins := opts.Size / 2
	return &Analyzer{
		opts:     opts,
		fft:      fourier.NewFFT(opts.Size),
		hann:     hann,
		samples:  make([]float64, opts.Size),
		coeffs:   make([]complex128, opts.Size/2+1),
		smoothed: make([]float64, bins),
		out:      make([]float64, bins),
	}
}

// Bind switches the analysis input. A nil source yields silence.
func (a *Analyzer) Bind(src Source) {
	a.src = src
}

// Bins is the length of every spectrum returned by Analyze.
func (a *Analyzer) Bins() int {
	return len(a.out)
}

// Analyze returns the spectrum for the latest samples. The returned slice is
// reused by the next call.
func (a *Analyzer) Analyze() []float64 {
	if a.src == nil {
		for i := range a.samples {
			a.samples[i] = 0
		}
	} else {
		a.src.Snapshot(a.samples)
	}
	for i, w := range a.hann {
		a.samples[i] *= w
	}
	a.coeffs = a.fft.Coefficients(a.coeffs, a.samples)

	n := float64(a.opts.Size)
	span := a.opts.MaxDecibels - a.opts.MinDecibels
	tau := a.opts.Smoothing
	for k := range a.out {
		mag := cmplxAbs(a.coeffs[k]) / n
		a.smoothed[k] = tau*a.smoothed[k] + (1-tau)*mag
		db := a.opts.MinDecibels
		if a.smoothed[k] > 0 {
			db = 20 * math.Log10(a.smoothed[k])
		}
		a.out[k] = math.Floor(clamp(255*(db-a.opts.MinDecibels)/span, 0, 255))
	}
	return a.out
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
