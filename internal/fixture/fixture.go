// Package fixture builds synthetic EdgeMaps of known ellipses for tests,
// the Go equivalent of the reference implementation's batch test-image
// generator: rasterize a parametric ellipse boundary, smooth it the way a
// real edge detector's Gaussian pre-filter would, then derive a gradient
// field from the smoothed image instead of the perimeter's raw analytic
// derivative.
package fixture

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/ericfarng/yaed/pkg/edgemap"
)

// Ellipse describes the true parameters of a synthetic ellipse, in the
// same units the detector reports: center in pixels, rho in radians, axes
// in pixels.
type Ellipse struct {
	CenterX, CenterY float32
	Rho              float32
	N                float32 // axis ratio, bAxis = aAxis * N
	AAxis            float32
}

// BAxis returns the minor semi-axis implied by AAxis and N.
func (e Ellipse) BAxis() float32 { return e.AAxis * e.N }

// SyntheticEdgeMap rasterizes e's boundary into a width x height edge map,
// smooths the raster with a low-pass FFT filter (mirroring the Gaussian
// blur a Canny-style detector applies before computing gradients), then
// derives the gradient field from finite differences of the smoothed
// image.
func SyntheticEdgeMap(width, height int, e Ellipse) *edgemap.DenseEdgeMap {
	raster := rasterizeBoundary(width, height, e)
	smoothed := lowPassSmooth(raster, width, height)
	return edgeMapFromField(smoothed, width, height)
}

// rasterizeBoundary walks the ellipse's perimeter parametrically (the same
// per-angle loop the reference test generator uses, restricted to the
// boundary radius instead of filling the interior) and marks the nearest
// pixel for each angle.
func rasterizeBoundary(width, height int, e Ellipse) []float64 {
	field := make([]float64, width*height)
	cosRho := math.Cos(float64(e.Rho))
	sinRho := math.Sin(float64(e.Rho))
	a := float64(e.AAxis)
	b := float64(e.BAxis())

	for angleDeg := 0.0; angleDeg < 360; angleDeg += 0.1 {
		radians := angleDeg * math.Pi / 180
		dx := a*math.Cos(radians)*cosRho + b*math.Sin(radians)*sinRho
		dy := -a*math.Cos(radians)*sinRho + b*math.Sin(radians)*cosRho
		x := int(math.Round(float64(e.CenterX) + dx))
		y := int(math.Round(float64(e.CenterY) - dy))
		if x >= 0 && y >= 0 && x < width && y < height {
			field[y*width+x] = 1
		}
	}
	return field
}

// lowPassSmooth applies a separable row-then-column low-pass filter in the
// frequency domain, zeroing coefficients above a fixed fraction of the
// Nyquist frequency.
func lowPassSmooth(field []float64, width, height int) []float64 {
	out := make([]float64, len(field))
	copy(out, field)

	row := make([]float64, width)
	for y := 0; y < height; y++ {
		copy(row, out[y*width:(y+1)*width])
		smoothed := smooth1D(row)
		copy(out[y*width:(y+1)*width], smoothed)
	}

	col := make([]float64, height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			col[y] = out[y*width+x]
		}
		smoothed := smooth1D(col)
		for y := 0; y < height; y++ {
			out[y*width+x] = smoothed[y]
		}
	}
	return out
}

// smooth1D low-pass filters one real sequence by zeroing the upper
// three-quarters of its frequency spectrum and transforming back.
func smooth1D(data []float64) []float64 {
	n := len(data)
	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, data)

	cutoff := len(coeff) / 4
	if cutoff < 1 {
		cutoff = 1
	}
	for i := cutoff; i < len(coeff); i++ {
		coeff[i] = 0
	}

	// the inverse transform is unnormalized; scale by 1/n to undo the
	// factor of n it introduces.
	out := fft.Sequence(nil, coeff)
	for i := range out {
		out[i] /= float64(n)
	}
	return out
}

// edgeMapFromField thresholds the smoothed field and computes a central
// finite-difference gradient at each pixel above the threshold.
func edgeMapFromField(field []float64, width, height int) *edgemap.DenseEdgeMap {
	em := edgemap.NewDenseEdgeMap(width, height)
	const threshold = 0.05

	at := func(x, y int) float64 {
		if x < 0 || y < 0 || x >= width || y >= height {
			return 0
		}
		return field[y*width+x]
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			v := at(x, y)
			if v < threshold {
				continue
			}
			gx := at(x+1, y) - at(x-1, y)
			gy := at(x, y+1) - at(x, y-1)
			if gx == 0 && gy == 0 {
				continue
			}
			em.SetEdge(x, y, float32(gx), float32(gy))
		}
	}
	return em
}
