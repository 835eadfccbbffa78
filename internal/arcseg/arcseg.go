// Package arcseg segments an edge map into arcs: maximal runs of
// 8-connected edge pixels that share a gradient sign, filtered down to the
// ones long and curved enough to plausibly be one quarter of an ellipse.
package arcseg

import (
	"math"
	"sort"

	"github.com/ericfarng/yaed/internal/geom"
	"github.com/ericfarng/yaed/pkg/edgemap"
)

// Arc is one candidate quarter-ellipse: an ordered run of connected edge
// points sharing a gradient sign, along with its bounding box. Quadrant is
// filled in later by the convexity classifier; it is 0 until then.
type Arc struct {
	Points   []geom.Point
	Top      int
	Bottom   int
	Left     int
	Right    int
	Quadrant geom.Quadrant
}

// Options bundles the tunables the segmenter needs; it is a narrow view
// onto the detector's full option set so this package does not depend on
// pkg/ellipse.
type Options struct {
	MinArcPixelCount                int
	MinBoundingBoxSize              int
	CheckAllArcPointsForStraightLine bool
}

// Counters reports how many candidate arcs were filtered out and why, the
// same diagnostics the reference implementation always exposes regardless
// of whether any ellipse is ultimately found.
type Counters struct {
	TotalLineSegmentCount int
	ShortLineCount        int
	StraightLineCount     int
}

// Segment runs connected-components labeling over em keyed on gradient
// sign, then filters and sorts the resulting arcs. It returns the
// positive-gradient and negative-gradient arc pools plus filtering
// counters.
func Segment(em edgemap.EdgeMap, opts Options) (positive, negative []*Arc, counters Counters) {
	w, h := em.Width(), em.Height()
	data := em.EdgeData()
	gx := em.XGradient()
	gy := em.YGradient()

	labelOf := make(map[int]int, w*h/8)
	equivalence := make(map[int]int)
	var edgePoints []int
	nextLabel := 0

	gradientSignAt := func(offset int) int {
		return geom.Sign(gx[offset]) * geom.Sign(gy[offset])
	}

	resolve := func(label int) int {
		for {
			if next, ok := equivalence[label]; ok {
				label = next
				continue
			}
			return label
		}
	}

	offset := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if data[offset] == -1 && y > 0 && x > 0 && y < h-1 && x < w-1 {
				edgePoints = append(edgePoints, offset)
				if gx[offset] != 0 && gy[offset] != 0 {
					currentGradient := gradientSignAt(offset)
					currentLabel := -1

					neighborOffsets := []int{
						offset - w - 1, // NW
						offset - w,     // N
						offset - w + 1, // NE
						offset - 1,     // W
					}
					for _, nOff := range neighborOffsets {
						if data[nOff] != -1 {
							continue
						}
						if gradientSignAt(nOff) != currentGradient {
							continue
						}
						nLabel, ok := labelOf[nOff]
						if !ok {
							continue
						}
						switch {
						case currentLabel == -1:
							currentLabel = nLabel
						case nLabel < currentLabel:
							equivalence[currentLabel] = nLabel
							currentLabel = nLabel
						case currentLabel < nLabel:
							equivalence[nLabel] = currentLabel
						}
					}

					if currentLabel == -1 {
						nextLabel++
						currentLabel = nextLabel
					}
					labelOf[offset] = currentLabel
				}
			}
			offset++
		}
	}

	// path-compress every label actually assigned so far, to its root.
	compressed := make(map[int]int, nextLabel)
	for i := nextLabel; i > 0; i-- {
		if _, ok := equivalence[i]; ok {
			compressed[i] = resolve(i)
		}
	}

	arcByLabel := make(map[int]*Arc)
	for _, point := range edgePoints {
		label, ok := labelOf[point]
		if !ok {
			continue
		}
		if root, ok := compressed[label]; ok {
			label = root
		}
		arc, ok := arcByLabel[label]
		if !ok {
			arc = &Arc{Top: 1 << 30, Left: 1 << 30}
			arcByLabel[label] = arc
		}
		x, y := point%w, point/w
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

	counters.TotalLineSegmentCount = len(arcByLabel)

	for _, arc := range arcByLabel {
		if len(arc.Points) < opts.MinArcPixelCount {
			counters.ShortLineCount++
			continue
		}
		if !isCurvedLine(arc, gx, gy, w, opts) {
			counters.StraightLineCount++
			continue
		}

		sort.Slice(arc.Points, func(i, j int) bool {
			if arc.Points[i].X == arc.Points[j].X {
				return arc.Points[i].Y < arc.Points[j].Y
			}
			return arc.Points[i].X < arc.Points[j].X
		})

		first := arc.Points[0]
		firstOffset := first.Y*w + first.X
		sign := geom.OrientedGradientSign(gx[firstOffset], gy[firstOffset])
		switch {
		case sign > 0:
			positive = append(positive, arc)
		case sign < 0:
			negative = append(negative, arc)
		}
	}

	return positive, negative, counters
}

// isCurvedLine checks arc points' distance from the bounding-box diagonal;
// an arc that hugs its diagonal too closely is treated as a straight line
// rather than a plausible quarter-ellipse.
func isCurvedLine(arc *Arc, gx, gy []float32, imageWidth int, opts Options) bool {
	if (arc.Right-arc.Left) < opts.MinBoundingBoxSize || (arc.Bottom-arc.Top) < opts.MinBoundingBoxSize {
		return false
	}

	first := arc.Points[0]
	firstOffset := first.Y*imageWidth + first.X
	gradient := geom.OrientedGradientSign(gx[firstOffset], gy[firstOffset])

	x1, x2 := arc.Left, arc.Right
	var y1, y2 int
	if gradient > 0 {
		y1, y2 = arc.Top, arc.Bottom
	} else {
		y1, y2 = arc.Bottom, arc.Top
	}

	var checkPoints []geom.Point
	if opts.CheckAllArcPointsForStraightLine || len(arc.Points) <= 3 {
		checkPoints = arc.Points
	} else {
		n := len(arc.Points)
		checkPoints = []geom.Point{
			arc.Points[int(float64(n)*0.25)],
			arc.Points[int(float64(n)*0.5)],
			arc.Points[int(float64(n)*0.75)],
		}
	}

	denom := math.Sqrt(float64((y2-y1)*(y2-y1) + (x2-x1)*(x2-x1)))
	numeratorPart := float64(x2*y1 - y2*x1)
	for _, p := range checkPoints {
		dist := math.Abs(float64((y2-y1)*p.X-(x2-x1)*p.Y)+numeratorPart) / denom
		if dist*2 > float64(opts.MinBoundingBoxSize) {
			return true
		}
	}
	return false
}
