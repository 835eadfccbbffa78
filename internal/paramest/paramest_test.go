package paramest

import (
	"math"
	"sort"
	"testing"

	"github.com/ericfarng/yaed/internal/arcseg"
	"github.com/ericfarng/yaed/internal/chord"
	"github.com/ericfarng/yaed/internal/geom"
	"github.com/ericfarng/yaed/internal/triplet"
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

func buildTriplet(t *testing.T, cx, cy, radius int) *triplet.Triplet {
	arc1 := circleArc(cx, cy, radius, 270, 360, geom.Q1)
	arc2 := circleArc(cx, cy, radius, 180, 270, geom.Q2)
	arc3 := circleArc(cx, cy, radius, 90, 180, geom.Q3)

	copts := chord.Options{NumberOfParallelChords: 8}
	chord21a, chord21b, center21, ok := chord.EstimateCenter(arc2, arc1, copts)
	if !ok {
		t.Fatal("chord estimation (arc2, arc1) failed")
	}
	chord12a, chord12b, center32, ok := chord.EstimateCenter(arc3, arc2, copts)
	if !ok {
		t.Fatal("chord estimation (arc3, arc2) failed")
	}

	return &triplet.Triplet{
		Arc1: arc1, Arc2: arc2, Arc3: arc3,
		Center21: center21, Center32: center32,
		Chord3Start2Mid: chord21a, Chord3Mid2End: chord21b,
		Chord2Start1Mid: chord12a, Chord2Mid1End: chord12b,
	}
}

func TestEstimateCircleYieldsEqualAxes(t *testing.T) {
	cx, cy, radius := 200, 200, 60
	tr := buildTriplet(t, cx, cy, radius)

	params := Estimate(tr, Options{UseMedianCenter: true})

	if params.AAxis <= 0 || params.BAxis <= 0 {
		t.Fatalf("expected positive axes, got a=%f b=%f", params.AAxis, params.BAxis)
	}
	ratio := params.BAxis / params.AAxis
	if ratio < 0.5 || ratio > 1.5 {
		t.Errorf("expected roughly circular axis ratio near 1, got %f (a=%f b=%f)", ratio, params.AAxis, params.BAxis)
	}
}

func TestArgmaxMeanIntTiesAverage(t *testing.T) {
	acc := map[int]int{10: 3, 20: 3, 30: 1}
	got := argmaxMeanInt(acc)
	if got != 15 {
		t.Errorf("expected tie between 10 and 20 to average to 15, got %f", got)
	}
}
