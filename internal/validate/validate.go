// Package validate scores ellipse hypotheses by how much of their source
// arcs actually lie on the fitted contour, plus an angular-coverage
// "reliability" check that rejects shapes that happen to fit an ellipse
// equation without tracing a meaningful arc of one (part 3.3.1 of the
// reference paper).
package validate

import (
	"math"

	"github.com/ericfarng/yaed/internal/arcseg"
	"github.com/ericfarng/yaed/internal/paramest"
)

// Options bundles the two cutoffs this package applies.
type Options struct {
	DistanceToEllipseContour            float32
	DistanceToEllipseContourScoreCutoff float32
	ReliabilityCutoff                   float32
}

// Result is one validated, scored hypothesis ready for clustering.
type Result struct {
	Params paramest.Params
	Score  float32
}

// Validate scores the hypothesis formed by params over arc1/arc2/arc3 and
// reports whether it survives both the on-contour score cutoff and the
// reliability cutoff.
func Validate(params paramest.Params, arc1, arc2, arc3 *arcseg.Arc, opts Options) (Result, bool) {
	count := pointsOnEllipse(params, arc1, opts.DistanceToEllipseContour)
	count += pointsOnEllipse(params, arc2, opts.DistanceToEllipseContour)
	count += pointsOnEllipse(params, arc3, opts.DistanceToEllipseContour)

	total := len(arc1.Points) + len(arc2.Points) + len(arc3.Points)
	var score float32
	if count > 0 && total > 0 {
		score = float32(count) / float32(total)
	}

	if score <= opts.DistanceToEllipseContourScoreCutoff {
		return Result{}, false
	}

	reliability := reliabilityOf(params, arc1)
	reliability += reliabilityOf(params, arc2)
	reliability += reliabilityOf(params, arc3)
	reliability = reliability / (3 * (params.AAxis + params.BAxis))
	if reliability > 1 {
		reliability = 1
	}

	if reliability <= opts.ReliabilityCutoff {
		return Result{}, false
	}

	return Result{Params: params, Score: (score + reliability) * 0.5}, true
}

// pointsOnEllipse counts how many of arc's points satisfy the implicit
// ellipse equation within opts.DistanceToEllipseContour of h=1.
func pointsOnEllipse(p paramest.Params, arc *arcseg.Arc, distanceToEllipseContour float32) int {
	cos := float32(math.Cos(float64(p.Rho)))
	sin := float32(math.Sin(float64(p.Rho)))
	invASquared := 1 / (p.AAxis * p.AAxis)
	invBSquared := 1 / (p.BAxis * p.BAxis)

	count := 0
	for _, pt := range arc.Points {
		xDelta := float32(pt.X) - p.Center[0]
		yDelta := float32(pt.Y) - p.Center[1]
		rx := xDelta*cos - yDelta*sin
		ry := xDelta*sin - yDelta*cos
		h := rx*rx*invASquared + ry*ry*invBSquared
		if abs32(h-1) < distanceToEllipseContour {
			count++
		}
	}
	return count
}

// reliabilityOf measures how far apart arc's two endpoints are once
// rotated into the ellipse's frame, an angular-coverage proxy for how much
// of the ellipse's circumference this arc actually traces.
//
// Note: the sign convention for r1y/r2y below intentionally differs from
// the ry used in pointsOnEllipse (+cos here, -cos there). This mirrors the
// reference implementation's own two independent formulas; it is not a
// typo to be "fixed" without a regression suite to validate against.
func reliabilityOf(p paramest.Params, arc *arcseg.Arc) float32 {
	first := arc.Points[0]
	last := arc.Points[len(arc.Points)-1]

	startX := float32(first.X) - p.Center[0]
	startY := float32(first.Y) - p.Center[1]
	endX := float32(last.X) - p.Center[0]
	endY := float32(last.Y) - p.Center[1]

	cos := float32(math.Cos(float64(p.Rho)))
	sin := float32(math.Sin(float64(p.Rho)))

	r1x := startX*cos - startY*sin
	r1y := startX*sin + startY*cos
	r2x := endX*cos - endY*sin
	r2y := endX*sin + endY*cos

	return abs32(r2x-r1x) + abs32(r2y-r1y)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
