// Package ellipse implements ellipse-hypothesis detection over a
// pre-computed edge map, following the pipeline described in "A fast,
// efficient, and robust algorithm for ellipse detection" (the reference
// paper behind EllipseDetector): arc segmentation, convexity
// classification, triplet generation via parallel chords, parameter
// estimation by accumulator voting, validation, and clustering.
package ellipse

import (
	"fmt"

	"github.com/ericfarng/yaed/internal/arcseg"
	"github.com/ericfarng/yaed/internal/chord"
	"github.com/ericfarng/yaed/internal/cluster"
	"github.com/ericfarng/yaed/internal/convexity"
	"github.com/ericfarng/yaed/internal/paramest"
	"github.com/ericfarng/yaed/internal/triplet"
	"github.com/ericfarng/yaed/internal/validate"
	"github.com/ericfarng/yaed/pkg/edgemap"
)

// Ellipse is one detected ellipse: center, rotation, semi-axes, and score.
type Ellipse struct {
	Center [2]float32
	Rho    float32
	AAxis  float32
	BAxis  float32
	Score  float32
}

// Options holds every tunable of the detection pipeline. Field names and
// defaults match the reference implementation's setters.
type Options struct {
	MinArcPixelCount                         int
	MinBoundingBoxSize                       int
	CheckAllArcPointsForStraightLine         bool
	MutualPositionBoundingBoxPixelTolerance  int
	NumberOfParallelChords                   int
	CenterDistancePercent                    float32
	DistanceToEllipseContour                 float32
	DistanceToEllipseContourScoreCutoff      float32
	ReliabilityCutoff                        float32
	UseMedianCenter                          bool
}

// DefaultOptions returns the option set the reference implementation ships
// with.
func DefaultOptions() Options {
	return Options{
		MinArcPixelCount:                        16,
		MinBoundingBoxSize:                      3,
		CheckAllArcPointsForStraightLine:         false,
		MutualPositionBoundingBoxPixelTolerance:  1,
		NumberOfParallelChords:                   16,
		CenterDistancePercent:                    0.05,
		DistanceToEllipseContour:                 0.5,
		DistanceToEllipseContourScoreCutoff:       0.4,
		ReliabilityCutoff:                        0.4,
		UseMedianCenter:                          true,
	}
}

// Counters reports diagnostics about the arc-segmentation stage, always
// populated regardless of whether any ellipse was ultimately found.
type Counters struct {
	TotalLineSegmentCount int
	ShortLineCount        int
	StraightLineCount     int
}

// Detector runs the full pipeline over one configured EdgeMap. A Detector
// is meant to be used for a single image; construct a fresh one per run.
type Detector struct {
	opts     Options
	edgeMap  edgemap.EdgeMap
	counters Counters
}

// NewDetector creates a Detector configured with opts.
func NewDetector(opts Options) *Detector {
	return &Detector{opts: opts}
}

// SetEdgeMap configures the edge data the next Detect call will process.
func (d *Detector) SetEdgeMap(em edgemap.EdgeMap) {
	d.edgeMap = em
}

// Counters returns the diagnostics collected by the most recent Detect call.
func (d *Detector) Counters() Counters {
	return d.counters
}

// Detect runs the pipeline and returns the deduplicated, validated
// ellipses found in the configured edge map.
func (d *Detector) Detect() ([]Ellipse, error) {
	if err := edgemap.Validate(d.edgeMap); err != nil {
		return nil, err
	}

	positive, negative, segCounters := arcseg.Segment(d.edgeMap, arcseg.Options{
		MinArcPixelCount:                 d.opts.MinArcPixelCount,
		MinBoundingBoxSize:               d.opts.MinBoundingBoxSize,
		CheckAllArcPointsForStraightLine: d.opts.CheckAllArcPointsForStraightLine,
	})
	d.counters = Counters{
		TotalLineSegmentCount: segCounters.TotalLineSegmentCount,
		ShortLineCount:        segCounters.ShortLineCount,
		StraightLineCount:     segCounters.StraightLineCount,
	}

	q1, q2, q3, q4 := convexity.Classify(positive, negative)

	tripletOpts := triplet.Options{
		MutualPositionBoundingBoxPixelTolerance: d.opts.MutualPositionBoundingBoxPixelTolerance,
		CenterDistancePercent:                   d.opts.CenterDistancePercent,
		ChordOptions: chord.Options{
			NumberOfParallelChords: d.opts.NumberOfParallelChords,
		},
	}
	triplets := triplet.Find(q1, q2, q3, q4, d.edgeMap.Width(), d.edgeMap.Height(), tripletOpts)

	paramOpts := paramest.Options{UseMedianCenter: d.opts.UseMedianCenter}
	validateOpts := validate.Options{
		DistanceToEllipseContour:             d.opts.DistanceToEllipseContour,
		DistanceToEllipseContourScoreCutoff:  d.opts.DistanceToEllipseContourScoreCutoff,
		ReliabilityCutoff:                    d.opts.ReliabilityCutoff,
	}

	var results []validate.Result
	for _, t := range triplets {
		params := paramest.Estimate(t, paramOpts)
		if result, ok := validate.Validate(params, t.Arc1, t.Arc2, t.Arc3, validateOpts); ok {
			results = append(results, result)
		}
	}

	kept := cluster.Cluster(results)

	ellipses := make([]Ellipse, len(kept))
	for i, r := range kept {
		ellipses[i] = Ellipse{
			Center: r.Params.Center,
			Rho:    r.Params.Rho,
			AAxis:  r.Params.AAxis,
			BAxis:  r.Params.BAxis,
			Score:  r.Score,
		}
	}
	return ellipses, nil
}

// DetectVerbose runs Detect while printing numbered progress lines, for
// callers (like the CLI demo) that want visibility into long-running
// detection without wiring up their own logger.
func (d *Detector) DetectVerbose() ([]Ellipse, error) {
	fmt.Println("Step 1: Segmenting arcs by gradient sign...")
	ellipses, err := d.Detect()
	if err != nil {
		return nil, fmt.Errorf("detection failed: %w", err)
	}
	fmt.Printf("Step 2: Found %d candidate arcs (%d short, %d straight)\n",
		d.counters.TotalLineSegmentCount, d.counters.ShortLineCount, d.counters.StraightLineCount)
	fmt.Printf("Step 3: Detection complete, %d ellipse(s) retained\n", len(ellipses))
	return ellipses, nil
}
