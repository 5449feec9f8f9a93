package band

import (
	"math/rand"
	"testing"
)

func TestRangeStaysInBounds(t *testing.T) {
	const maxFreq = 22050.0
	r := rand.New(rand.NewSource(1))
	for _, bins := range []int{1, 2, 7, 512, 1024} {
		for range 500 {
			a := r.Float64() * maxFreq
			b := r.Float64() * maxFreq
			if a > b {
				a, b = b, a
			}
			lo, hi := Range(a, b, maxFreq, bins)
			if lo < 0 || hi > bins-1 || lo > hi {
				t.Fatalf("Range(%v, %v, bins=%d) = [%d,%d] out of bounds", a, b, bins, lo, hi)
			}
		}
	}
}

func TestRangeKnownNote(t *testing.T) {
	// 22050/1024 = 21.53 Hz per bin.
	lo, hi := Notes[5].Range(22050, 1024)
	if lo != 19 || hi != 21 {
		t.Fatalf("A band = [%d,%d], want [19,21]", lo, hi)
	}
}

func TestRangeClampsOutOfBand(t *testing.T) {
	lo, hi := Range(30000, 40000, 22050, 1024)
	if lo != 1023 || hi != 1023 {
		t.Fatalf("expected top bin, got [%d,%d]", lo, hi)
	}
	lo, hi = Range(-50, -10, 22050, 1024)
	if lo != 0 || hi != 0 {
		t.Fatalf("expected bottom bin, got [%d,%d]", lo, hi)
	}
}

func TestRangeInvertedBandIsSingleBin(t *testing.T) {
	lo, hi := Range(500, 300, 22050, 1024)
	if lo != 23 || hi != 23 {
		t.Fatalf("expected single bin at 23, got [%d,%d]", lo, hi)
	}
}

func TestMean(t *testing.T) {
	uniform := []float64{42, 42, 42, 42, 42}
	if got := Mean(uniform, 1, 3); got != 42 {
		t.Fatalf("uniform mean = %v, want 42", got)
	}
	if got := Mean(uniform, 3, 1); got != 0 {
		t.Fatalf("empty range mean = %v, want 0", got)
	}
	if got := Mean(nil, 0, 0); got != 0 {
		t.Fatalf("nil spectrum mean = %v, want 0", got)
	}
	spiky := []float64{0, 0, 255, 0}
	if got := Mean(spiky, 0, 3); got != 63.75 {
		t.Fatalf("mean = %v, want 63.75 (mean, not peak)", got)
	}
}

func TestEnergies(t *testing.T) {
	spectrum := make([]float64, 1024)
	for i := 19; i <= 21; i++ {
		spectrum[i] = 200
	}
	got := Energies(nil, Notes[:], spectrum, 22050)
	if len(got) != 7 {
		t.Fatalf("expected 7 energies, got %d", len(got))
	}
	if got[5] != 200 {
		t.Fatalf("A energy = %v, want 200", got[5])
	}
	if got[0] != 0 {
		t.Fatalf("C energy = %v, want 0", got[0])
	}
}
