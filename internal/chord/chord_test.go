package chord

import (
	"math"
	"testing"

	"github.com/ericfarng/yaed/internal/arcseg"
	"github.com/ericfarng/yaed/internal/geom"
)

// circleArc builds an arc of points along a circle of the given radius
// centered at (cx, cy), spanning [startDeg, endDeg], assigned quadrant q.
func circleArc(cx, cy, radius int, startDeg, endDeg float64, q geom.Quadrant) *arcseg.Arc {
	arc := &arcseg.Arc{Top: 1 << 30, Left: 1 << 30, Quadrant: q}
	for deg := startDeg; deg <= endDeg; deg += 1 {
		rad := deg * math.Pi / 180
		x := cx + int(float64(radius)*math.Cos(rad))
		y := cy + int(float64(radius)*math.Sin(rad))
		p := geom.Point{X: x, Y: y}
		arc.Points = append(arc.Points, p)
		if y < arc.Top {
			arc.Top = y
		}
		if y > arc.Bottom {
			arc.Bottom = y
		}
		if x < arc.Left {
			arc.Left = x
		}
		if x > arc.Right {
			arc.Right = x
		}
	}
	return arc
}

func TestEstimateCenterOnCircle(t *testing.T) {
	cx, cy, radius := 100, 100, 50
	// Q1: gradient-positive convex-up (upper-right quarter, 270..360 deg
	// in screen coords points up-right); Q2: upper-left quarter.
	arc1 := circleArc(cx, cy, radius, 270, 360, geom.Q1)
	arc2 := circleArc(cx, cy, radius, 180, 270, geom.Q2)

	_, _, center, ok := EstimateCenter(arc2, arc1, Options{NumberOfParallelChords: 8})
	if !ok {
		t.Fatal("expected chord estimation to succeed on a clean circle")
	}

	dx := center[0] - float32(cx)
	dy := center[1] - float32(cy)
	dist := math.Sqrt(float64(dx*dx + dy*dy))
	if dist > 5 {
		t.Errorf("estimated center (%f, %f) too far from true center (%d, %d): dist=%f",
			center[0], center[1], cx, cy, dist)
	}
}

func TestEstimateCenterFailsWithTooFewPoints(t *testing.T) {
	arc1 := &arcseg.Arc{Points: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, Quadrant: geom.Q1}
	arc2 := &arcseg.Arc{Points: []geom.Point{{X: 5, Y: 5}, {X: 6, Y: 6}}, Quadrant: geom.Q2}
	_, _, _, ok := EstimateCenter(arc2, arc1, Options{NumberOfParallelChords: 8})
	if ok {
		t.Fatal("expected failure on degenerate tiny arcs")
	}
}
