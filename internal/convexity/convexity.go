// Package convexity labels arcs as convex-up or convex-down by comparing
// the area of their bounding box that lies above the arc to the area below,
// then combines that with the arc's gradient sign to assign one of the four
// ellipse quadrants.
package convexity

import (
	"github.com/ericfarng/yaed/internal/arcseg"
	"github.com/ericfarng/yaed/internal/geom"
)

// Classify assigns a quadrant to every arc in positive and negative
// (arcs are grouped by gradient sign, as produced by arcseg.Segment), and
// returns the four per-quadrant pools. Arcs whose over/under area is equal
// are ambiguous and dropped.
func Classify(positive, negative []*arcseg.Arc) (q1, q2, q3, q4 []*arcseg.Arc) {
	for _, arc := range positive {
		switch convexitySign(arc) {
		case 1:
			arc.Quadrant = geom.Q1
			q1 = append(q1, arc)
		case -1:
			arc.Quadrant = geom.Q3
			q3 = append(q3, arc)
		}
	}
	for _, arc := range negative {
		switch convexitySign(arc) {
		case 1:
			arc.Quadrant = geom.Q2
			q2 = append(q2, arc)
		case -1:
			arc.Quadrant = geom.Q4
			q4 = append(q4, arc)
		}
	}
	return q1, q2, q3, q4
}

// convexitySign returns 1 for convex-up, -1 for convex-down, 0 if the arc
// is ambiguous (the bounding box area is split evenly).
func convexitySign(arc *arcseg.Arc) int {
	areaOver := 0
	previousX := -1
	for _, p := range arc.Points {
		if p.X != previousX {
			areaOver += abs(p.Y - arc.Top)
		}
		previousX = p.X
	}
	areaBoundingBox := (arc.Right - arc.Left) * abs(arc.Bottom-arc.Top)
	if areaBoundingBox == 0 {
		return 0
	}
	areaUnder := areaBoundingBox - len(arc.Points) - areaOver

	switch {
	case areaUnder > areaOver:
		return 1
	case areaUnder < areaOver:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
