package validate

import (
	"math"
	"testing"

	"github.com/ericfarng/yaed/internal/arcseg"
	"github.com/ericfarng/yaed/internal/geom"
	"github.com/ericfarng/yaed/internal/paramest"
)

func circleArc(cx, cy, radius int, startDeg, endDeg float64) *arcseg.Arc {
	arc := &arcseg.Arc{}
	for deg := startDeg; deg <= endDeg; deg += 2 {
		rad := deg * math.Pi / 180
		x := cx + int(float64(radius)*math.Cos(rad))
		y := cy + int(float64(radius)*math.Sin(rad))
		arc.Points = append(arc.Points, geom.Point{X: x, Y: y})
	}
	return arc
}

func TestValidateAcceptsPointsOnTrueEllipse(t *testing.T) {
	params := paramest.Params{Center: [2]float32{100, 100}, Rho: 0, AAxis: 50, BAxis: 50}
	arc1 := circleArc(100, 100, 50, 0, 90)
	arc2 := circleArc(100, 100, 50, 90, 180)
	arc3 := circleArc(100, 100, 50, 180, 270)

	opts := Options{
		DistanceToEllipseContour:            0.5,
		DistanceToEllipseContourScoreCutoff: 0.4,
		ReliabilityCutoff:                   0.01,
	}
	result, ok := Validate(params, arc1, arc2, arc3, opts)
	if !ok {
		t.Fatal("expected a true circle's own arcs to validate")
	}
	if result.Score <= 0 || result.Score > 1 {
		t.Errorf("expected score in (0,1], got %f", result.Score)
	}
}

func TestValidateRejectsUnrelatedArcs(t *testing.T) {
	params := paramest.Params{Center: [2]float32{100, 100}, Rho: 0, AAxis: 50, BAxis: 50}
	farArc := &arcseg.Arc{Points: []geom.Point{
		{X: 1000, Y: 1000}, {X: 1001, Y: 1001}, {X: 1002, Y: 1002},
	}}

	opts := Options{
		DistanceToEllipseContour:            0.5,
		DistanceToEllipseContourScoreCutoff: 0.4,
		ReliabilityCutoff:                   0.4,
	}
	_, ok := Validate(params, farArc, farArc, farArc, opts)
	if ok {
		t.Fatal("expected unrelated far-away points to fail validation")
	}
}
