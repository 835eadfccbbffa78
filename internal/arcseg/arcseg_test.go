package arcseg

import (
	"math"
	"testing"

	"github.com/ericfarng/yaed/pkg/edgemap"
)

func defaultOptions() Options {
	return Options{
		MinArcPixelCount:                 4,
		MinBoundingBoxSize:               3,
		CheckAllArcPointsForStraightLine: false,
	}
}

// quarterCircleEdgeMap draws a single quarter-circle arc (top-left opening)
// into a dense edge map, with gradients pointing away from its center so it
// lands in a single gradient-sign pool.
func quarterCircleEdgeMap(size, radius int) *edgemap.DenseEdgeMap {
	em := edgemap.NewDenseEdgeMap(size, size)
	cx, cy := 0, 0
	for angle := 0; angle <= 90; angle++ {
		rad := float64(angle) * math.Pi / 180
		x := cx + int(float64(radius)*math.Cos(rad))
		y := cy + int(float64(radius)*math.Sin(rad))
		if x <= 0 || y <= 0 || x >= size-1 || y >= size-1 {
			continue
		}
		gx := float32(x - cx)
		gy := float32(y - cy)
		if gx == 0 {
			gx = 0.5
		}
		if gy == 0 {
			gy = 0.5
		}
		em.SetEdge(x, y, gx, gy)
	}
	return em
}

func TestSegmentDropsShortArcs(t *testing.T) {
	em := edgemap.NewDenseEdgeMap(20, 20)
	em.SetEdge(5, 5, 1, 1)
	em.SetEdge(6, 6, 1, 1)

	pos, neg, counters := Segment(em, defaultOptions())
	if len(pos) != 0 || len(neg) != 0 {
		t.Fatalf("expected no surviving arcs, got %d positive %d negative", len(pos), len(neg))
	}
	if counters.ShortLineCount == 0 {
		t.Error("expected short line to be counted")
	}
}

func TestSegmentDropsStraightLines(t *testing.T) {
	em := edgemap.NewDenseEdgeMap(20, 20)
	// a line running down-right carries a gradient perpendicular to it,
	// (1, -1), as an edge detector would report.
	for i := 2; i < 10; i++ {
		em.SetEdge(i, i, 1, -1)
	}
	_, _, counters := Segment(em, defaultOptions())
	if counters.StraightLineCount == 0 {
		t.Error("expected diagonal line to be classified straight")
	}
}

func TestSegmentKeepsCurvedArc(t *testing.T) {
	em := quarterCircleEdgeMap(60, 40)
	pos, neg, _ := Segment(em, defaultOptions())
	if len(pos)+len(neg) == 0 {
		t.Fatal("expected the quarter-circle arc to survive segmentation")
	}
}
