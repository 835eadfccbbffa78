// Package triplet scans arcs across pairs of adjacent quadrants for the
// four cyclic quadrant orderings (Q1Q2Q3, Q2Q3Q4, Q3Q4Q1, Q4Q1Q2) and keeps
// the arc triples whose independently-estimated chord centers agree closely
// enough to be worth passing on to parameter estimation.
package triplet

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ericfarng/yaed/internal/arcseg"
	"github.com/ericfarng/yaed/internal/chord"
)

// Triplet is a candidate ellipse hypothesis built from three arcs in
// adjacent quadrants, plus the chord families and interim centers that
// justified grouping them.
type Triplet struct {
	Arc1, Arc2, Arc3 *arcseg.Arc
	Center32, Center21 [2]float32
	Chord3Start2Mid, Chord3Mid2End *chord.Chords
	Chord2Start1Mid, Chord2Mid1End *chord.Chords
}

// Options bundles the tunables this package needs.
type Options struct {
	MutualPositionBoundingBoxPixelTolerance int
	CenterDistancePercent                   float32
	ChordOptions                            chord.Options
}

// cyclicGroup names one of the four (innermost, middle, outer) quadrant
// scans; Find iterates all four independently and concatenates the results.
type cyclicGroup struct {
	inner, middle, outer []*arcseg.Arc
}

// Find returns every triplet surviving the mutual-position filter and the
// center-agreement check, across all four cyclic quadrant orderings.
func Find(q1, q2, q3, q4 []*arcseg.Arc, width, height int, opts Options) []*Triplet {
	diag := math.Sqrt(float64(width)*float64(width) + float64(height)*float64(height))
	allowed := float64(opts.CenterDistancePercent) * diag
	squaredAllowed := allowed * allowed

	groups := []cyclicGroup{
		{inner: q1, middle: q2, outer: q3},
		{inner: q2, middle: q3, outer: q4},
		{inner: q3, middle: q4, outer: q1},
		{inner: q4, middle: q1, outer: q2},
	}

	var results []*Triplet
	for _, g := range groups {
		results = append(results, findInGroup(g, squaredAllowed, opts)...)
	}
	return results
}

func findInGroup(g cyclicGroup, squaredAllowed float64, opts Options) []*Triplet {
	tol := opts.MutualPositionBoundingBoxPixelTolerance
	var results []*Triplet

	for _, innerArc := range g.inner {
		for _, middleArc := range g.middle {
			if !adjacent(middleArc, innerArc, tol) {
				continue
			}
			chord21a, chord21b, center1, ok := chord.EstimateCenter(middleArc, innerArc, opts.ChordOptions)
			if !ok {
				continue
			}
			for _, outerArc := range g.outer {
				if !adjacent(outerArc, middleArc, tol) {
					continue
				}
				chord12a, chord12b, center2, ok := chord.EstimateCenter(outerArc, middleArc, opts.ChordOptions)
				if !ok {
					continue
				}
				dist := squaredDistance(center1, center2)
				if dist >= squaredAllowed {
					continue
				}
				results = append(results, &Triplet{
					Arc3:            outerArc,
					Arc2:            middleArc,
					Arc1:            innerArc,
					Center32:        center2,
					Center21:        center1,
					Chord3Start2Mid: chord21a,
					Chord3Mid2End:   chord21b,
					Chord2Start1Mid: chord12a,
					Chord2Mid1End:   chord12b,
				})
			}
		}
	}
	return results
}

// adjacent reports whether the "next" arc's leading edge overlaps the
// "previous" arc's trailing edge within tol pixels. Quadrant ordering
// determines which edges to compare (right-of-left for Q2->Q1 adjacency,
// top-of-bottom for Q3->Q2 adjacency, etc.) so callers pass arcs already
// known to be in cyclically adjacent quadrants; this just checks bounding
// boxes the way the reference implementation's four near-identical scans
// do, generalized to one function since the box comparison is the same
// shape in each case modulo which axis is compared.
func adjacent(next, prev *arcseg.Arc, tol int) bool {
	// Determine comparison axis from the quadrant transition.
	switch {
	case isQ1Q2(prev, next):
		return next.Right < prev.Left+tol
	case isQ2Q3(prev, next):
		return next.Top > prev.Bottom-tol
	case isQ3Q4(prev, next):
		return next.Left > prev.Right-tol
	case isQ4Q1(prev, next):
		return next.Bottom < prev.Top+tol
	default:
		return false
	}
}

func isQ1Q2(prev, next *arcseg.Arc) bool {
	return prev.Quadrant == 1 && next.Quadrant == 2
}
func isQ2Q3(prev, next *arcseg.Arc) bool {
	return prev.Quadrant == 2 && next.Quadrant == 3
}
func isQ3Q4(prev, next *arcseg.Arc) bool {
	return prev.Quadrant == 3 && next.Quadrant == 4
}
func isQ4Q1(prev, next *arcseg.Arc) bool {
	return prev.Quadrant == 4 && next.Quadrant == 1
}

func squaredDistance(a, b [2]float32) float64 {
	d := floats.Distance([]float64{float64(a[0]), float64(a[1])}, []float64{float64(b[0]), float64(b[1])}, 2)
	return d * d
}
