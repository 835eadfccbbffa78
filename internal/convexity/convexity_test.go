package convexity

import (
	"testing"

	"github.com/ericfarng/yaed/internal/arcseg"
	"github.com/ericfarng/yaed/internal/geom"
)

func arcFromPoints(points []geom.Point) *arcseg.Arc {
	arc := &arcseg.Arc{Top: 1 << 30, Left: 1 << 30}
	for _, p := range points {
		arc.Points = append(arc.Points, p)
		if p.Y < arc.Top {
			arc.Top = p.Y
		}
		if p.Y > arc.Bottom {
			arc.Bottom = p.Y
		}
		if p.X < arc.Left {
			arc.Left = p.X
		}
		if p.X > arc.Right {
			arc.Right = p.X
		}
	}
	return arc
}

func TestClassifyConvexUp(t *testing.T) {
	// an upper-right quarter arc: points hug the top of the bounding box,
	// so most of the box area lies below the arc (convex up).
	arc := arcFromPoints([]geom.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
		{X: 3, Y: 1}, {X: 4, Y: 2}, {X: 5, Y: 4}, {X: 6, Y: 9},
	})
	q1, q2, q3, q4 := Classify([]*arcseg.Arc{arc}, nil)
	if len(q1) != 1 || len(q2) != 0 || len(q3) != 0 || len(q4) != 0 {
		t.Fatalf("expected arc to land in Q1, got q1=%d q2=%d q3=%d q4=%d", len(q1), len(q2), len(q3), len(q4))
	}
	if arc.Quadrant != geom.Q1 {
		t.Errorf("expected Quadrant Q1, got %v", arc.Quadrant)
	}
}

func TestClassifyConvexDown(t *testing.T) {
	arc := arcFromPoints([]geom.Point{
		{X: 0, Y: 9}, {X: 1, Y: 9}, {X: 2, Y: 8},
		{X: 3, Y: 4}, {X: 4, Y: 1}, {X: 5, Y: 0}, {X: 6, Y: 0},
	})
	q1, q2, q3, q4 := Classify([]*arcseg.Arc{arc}, nil)
	if len(q3) != 1 || len(q1) != 0 || len(q2) != 0 || len(q4) != 0 {
		t.Fatalf("expected arc to land in Q3, got q1=%d q2=%d q3=%d q4=%d", len(q1), len(q2), len(q3), len(q4))
	}
}

func TestClassifyNegativeGradientPool(t *testing.T) {
	arc := arcFromPoints([]geom.Point{
		{X: 0, Y: 9}, {X: 1, Y: 4}, {X: 2, Y: 2},
		{X: 3, Y: 1}, {X: 4, Y: 0}, {X: 5, Y: 0},
	})
	q1, q2, q3, q4 := Classify(nil, []*arcseg.Arc{arc})
	if len(q2) != 1 || len(q1) != 0 || len(q3) != 0 || len(q4) != 0 {
		t.Fatalf("expected negative-gradient convex-up arc in Q2, got q1=%d q2=%d q3=%d q4=%d", len(q1), len(q2), len(q3), len(q4))
	}
}
