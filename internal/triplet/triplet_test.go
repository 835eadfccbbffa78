package triplet

import (
	"math"
	"sort"
	"testing"

	"github.com/ericfarng/yaed/internal/arcseg"
	"github.com/ericfarng/yaed/internal/chord"
	"github.com/ericfarng/yaed/internal/geom"
)

func circleArc(cx, cy, radius int, startDeg, endDeg float64, q geom.Quadrant) *arcseg.Arc {
	arc := &arcseg.Arc{Top: 1 << 30, Left: 1 << 30, Quadrant: q}
	for deg := startDeg; deg <= endDeg; deg += 1 {
		rad := deg * math.Pi / 180
		x := cx + int(float64(radius)*math.Cos(rad))
		y := cy + int(float64(radius)*math.Sin(rad))
		arc.Points = append(arc.Points, geom.Point{X: x, Y: y})
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
	// order points by x, then y, as arcseg.Segment does for every arc
	sort.Slice(arc.Points, func(i, j int) bool {
		if arc.Points[i].X == arc.Points[j].X {
			return arc.Points[i].Y < arc.Points[j].Y
		}
		return arc.Points[i].X < arc.Points[j].X
	})
	return arc
}

func TestFindRequiresAdjacency(t *testing.T) {
	cx, cy, radius := 200, 200, 60
	q1 := circleArc(cx, cy, radius, 270, 360, geom.Q1)
	q2 := circleArc(cx, cy, radius, 180, 270, geom.Q2)
	q3 := circleArc(cx, cy, radius, 90, 180, geom.Q3)

	opts := Options{
		MutualPositionBoundingBoxPixelTolerance: 1,
		CenterDistancePercent:                   0.05,
		ChordOptions:                            chord.Options{NumberOfParallelChords: 8},
	}

	results := Find([]*arcseg.Arc{q1}, []*arcseg.Arc{q2}, []*arcseg.Arc{q3}, nil, 400, 400, opts)
	if len(results) == 0 {
		t.Fatal("expected at least one triplet from a well-formed circle")
	}
	for _, tr := range results {
		if tr.Arc1 == nil || tr.Arc2 == nil || tr.Arc3 == nil {
			t.Error("triplet missing an arc reference")
		}
	}
}

func TestFindEmptyWithNoArcs(t *testing.T) {
	opts := Options{
		MutualPositionBoundingBoxPixelTolerance: 1,
		CenterDistancePercent:                   0.05,
		ChordOptions:                            chord.Options{NumberOfParallelChords: 8},
	}
	results := Find(nil, nil, nil, nil, 100, 100, opts)
	if len(results) != 0 {
		t.Errorf("expected no triplets, got %d", len(results))
	}
}
