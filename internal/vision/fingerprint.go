package vision

import (
	"image"
	"math/bits"

	"golang.org/x/image/draw"
)

const (
	// fingerprintGrid is the downsample dimension; the fingerprint carries one
	// bit per cell.
	fingerprintGrid = 8

	// FingerprintBits is the fingerprint length in bits.
	FingerprintBits = fingerprintGrid * fingerprintGrid

	// duplicateRatio is the normalized Hamming distance below which two
	// fingerprints are considered duplicates.
	duplicateRatio = 0.10
)

// Fingerprint is a fixed-length perceptual hash of a downsampled page:
// one bit per grid cell, set when the cell is at or above mean brightness.
type Fingerprint uint64

// ComputeFingerprint downsamples the page to an 8x8 grid and emits one
// above/below-mean brightness bit per cell.
func ComputeFingerprint(p Page) Fingerprint {
	grid := image.NewRGBA(image.Rect(0, 0, fingerprintGrid, fingerprintGrid))
	draw.ApproxBiLinear.Scale(grid, grid.Bounds(), p.Pix, p.Pix.Bounds(), draw.Src, nil)

	var cells [FingerprintBits]int
	var total int
	for y := range fingerprintGrid {
		for x := range fingerprintGrid {
			v := brightness(rgbAt(grid, x, y))
			cells[y*fingerprintGrid+x] = v
			total += v
		}
	}
	mean := total / FingerprintBits

	var f Fingerprint
	for i, v := range cells {
		if v >= mean {
			f |= 1 << uint(i)
		}
	}

	return f
}

// Distance returns the Hamming distance between two fingerprints.
func (f Fingerprint) Distance(other Fingerprint) int {
	return bits.OnesCount64(uint64(f ^ other))
}

// Duplicates reports whether two fingerprints are near-duplicates: Hamming
// distance under 10% of the fingerprint length. The relation is symmetric and
// reflexive.
func Duplicates(a, b Fingerprint) bool {
	return float64(a.Distance(b))/float64(FingerprintBits) < duplicateRatio
}
