// Package paramest estimates an ellipse's center, rotation (rho), axis
// ratio (n) and major semi-axis (a) from a triplet's chord families, using
// the integer-binned accumulator voting scheme from part 3.2.3 of the
// reference paper (equations 13-23).
package paramest

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ericfarng/yaed/internal/arcseg"
	"github.com/ericfarng/yaed/internal/chord"
	"github.com/ericfarng/yaed/internal/geom"
	"github.com/ericfarng/yaed/internal/triplet"
)

// Params is the result of estimating an ellipse's shape from one triplet.
type Params struct {
	Center [2]float32
	Rho    float32
	AAxis  float32
	BAxis  float32
}

// Options carries the one tunable this package reads directly; the rest of
// the detector's Options flow in only as far as their effect on the chord
// families already baked into the triplet.
type Options struct {
	UseMedianCenter bool
}

// Estimate computes the full parameter set for a triplet.
func Estimate(t *triplet.Triplet, opts Options) Params {
	center := estimateCenter(t, opts)

	nAcc := make(map[int]int)
	rhoAcc := make(map[int]int)
	accumulateNAndRho(t.Chord3Start2Mid, t.Chord2Start1Mid, nAcc, rhoAcc)
	accumulateNAndRho(t.Chord3Start2Mid, t.Chord2Mid1End, nAcc, rhoAcc)
	accumulateNAndRho(t.Chord3Mid2End, t.Chord2Start1Mid, nAcc, rhoAcc)
	accumulateNAndRho(t.Chord3Mid2End, t.Chord2Mid1End, nAcc, rhoAcc)

	n := argmaxMeanInt(nAcc) / 100
	rho := argmaxMeanInt(rhoAcc) * math.Pi / 180

	aAcc := make(map[int]int)
	accumulateSemiAxis(t.Arc3, center, float32(n), float32(rho), aAcc)
	accumulateSemiAxis(t.Arc2, center, float32(n), float32(rho), aAcc)
	accumulateSemiAxis(t.Arc1, center, float32(n), float32(rho), aAcc)

	a := argmaxMeanInt(aAcc)
	b := a * n

	return Params{
		Center: center,
		Rho:    float32(rho),
		AAxis:  float32(a),
		BAxis:  float32(b),
	}
}

func estimateCenter(t *triplet.Triplet, opts Options) [2]float32 {
	x := make([]float32, 7)
	y := make([]float32, 7)
	x[0], y[0] = t.Center32[0], t.Center32[1]
	x[1], y[1] = t.Center21[0], t.Center21[1]

	c := estimateCenterFromChords(t.Chord3Start2Mid, t.Chord2Start1Mid)
	x[2], y[2] = c[0], c[1]
	c = estimateCenterFromChords(t.Chord3Mid2End, t.Chord2Start1Mid)
	x[3], y[3] = c[0], c[1]
	c = estimateCenterFromChords(t.Chord3Start2Mid, t.Chord2Mid1End)
	x[4], y[4] = c[0], c[1]
	c = estimateCenterFromChords(t.Chord3Mid2End, t.Chord2Mid1End)
	x[5], y[5] = c[0], c[1]

	var center [2]float32
	if opts.UseMedianCenter {
		x[6] = (x[0] + x[1]) * 0.5
		y[6] = (y[0] + y[1]) * 0.5
		center[0] = geom.Median(x, 7)
		center[1] = geom.Median(y, 7)
	} else {
		center[0] = float32(stat.Mean(toFloat64(x[:6]), nil))
		center[1] = float32(stat.Mean(toFloat64(y[:6]), nil))
	}
	return center
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// estimateCenterFromChords intersects two Theil-Sen lines, the same
// closed-form solution used to find the interim chord-pair centers during
// triplet discovery.
func estimateCenterFromChords(chord2, chord1 *chord.Chords) [2]float32 {
	denom := chord2.MedianSlope - chord1.MedianSlope
	centerX := (chord1.MedianCentroidY - chord1.MedianSlope*chord1.MedianCentroidX -
		chord2.MedianCentroidY + chord2.MedianSlope*chord2.MedianCentroidX) / denom
	centerY := (chord2.MedianSlope*chord1.MedianCentroidY - chord1.MedianSlope*chord2.MedianCentroidY +
		chord2.MedianSlope*chord1.MedianSlope*(chord2.MedianCentroidX-chord1.MedianCentroidX)) / denom
	return [2]float32{centerX, centerY}
}

// argmaxMeanInt returns the mean of the keys holding the maximum count in
// acc, matching the reference implementation's tie-breaking by averaging
// every bin tied for the lead.
func argmaxMeanInt(acc map[int]int) float64 {
	maxCount := -1
	var maxKeys []int
	for k, v := range acc {
		switch {
		case v > maxCount:
			maxCount = v
			maxKeys = []int{k}
		case v == maxCount:
			maxKeys = append(maxKeys, k)
		}
	}
	if len(maxKeys) == 0 {
		return 0
	}
	sum := 0
	for _, k := range maxKeys {
		sum += k
	}
	return float64(sum) / float64(len(maxKeys))
}

// accumulateNAndRho implements equations 13-18: for every pair of
// perpendicular slopes drawn from the two chord families, solve for the
// implied rotation and axis ratio and bin them.
func accumulateNAndRho(chord2, chord1 *chord.Chords, nAcc, rhoAcc map[int]int) {
	q1 := chord2.ReferenceSlope
	q3 := chord1.ReferenceSlope

	for _, q2 := range chord2.PerpendicularSlopes {
		q1xq2 := q1 * q2
		for _, q4 := range chord1.PerpendicularSlopes {
			q3xq4 := q3 * q4

			gamma := q1xq2 - q3xq4
			if gamma == 0 {
				continue
			}
			beta := (q3xq4+1)*(q1+q2) - (q1xq2+1)*(q3+q4)
			kPlus := (-beta + float32(math.Sqrt(float64(beta*beta+4*gamma*gamma)))) / (2 * gamma)

			denom := (1 + q1*kPlus) * (1 + q2*kPlus)
			if denom == 0 {
				continue
			}
			zPlus := ((q1 - kPlus) * (q2 - kPlus)) / denom
			if zPlus >= 0 {
				continue
			}
			nPlus := float32(math.Sqrt(float64(-zPlus)))

			var rho float32
			if nPlus <= 1 {
				rho = float32(math.Atan(float64(kPlus)))
			} else {
				rho = float32(math.Atan(float64(kPlus))) + math.Pi/2
			}
			var n float32
			if nPlus <= 1 {
				n = nPlus
			} else {
				n = 1 / nPlus
			}

			rhoInt := int(math.Round(float64(rho*180/math.Pi+180))) % 180
			nInt := int(math.Round(float64(n * 100)))

			rhoAcc[rhoInt]++
			nAcc[nInt]++
		}
	}
}

// accumulateSemiAxis implements equations 19-22: for every point on arc,
// solve for the implied major semi-axis given the already-estimated center,
// n, and rho, and bin the rounded result.
func accumulateSemiAxis(arc *arcseg.Arc, center [2]float32, n, rho float32, acc map[int]int) {
	kPlus := float32(math.Tan(float64(rho)))
	cosRho := float32(math.Cos(float64(rho)))
	nSquared := n * n
	denomRecip := 1 / float32(math.Sqrt(float64(kPlus*kPlus+1)))

	for _, p := range arc.Points {
		dx := float32(p.X) - center[0]
		dy := float32(p.Y) - center[1]
		x0 := (dx + dy*kPlus) * denomRecip
		y0 := (-dx*kPlus + dy) * denomRecip

		aX := float32(math.Sqrt(float64((x0*x0*nSquared+y0*y0)/nSquared))) * denomRecip
		a := aX / cosRho
		if a < 0 {
			a = -a
		}
		aInt := int(math.Round(float64(a)))
		acc[aInt]++
	}
}
