// Package chord computes families of parallel chords between two adjacent
// arcs and, from their Theil-Sen median slope and centroid, an implied
// ellipse center. This is the "fast center" estimation step (part 3.2.2 of
// the reference paper): a cheap way to test whether three candidate arcs
// could plausibly belong to the same ellipse before doing any curve fitting.
package chord

import (
	"github.com/ericfarng/yaed/internal/arcseg"
	"github.com/ericfarng/yaed/internal/geom"
)

// Chords is one family of parallel chords between two arcs: their
// midpoints, slopes, and the Theil-Sen median line derived from them.
type Chords struct {
	ReferenceSlope     float32
	Midpoints          [][2]float32
	Slopes             []float32
	PerpendicularSlopes []float32
	MedianSlope        float32
	MedianCentroidX    float32
	MedianCentroidY    float32
}

// Options carries the one tunable this package needs.
type Options struct {
	NumberOfParallelChords int
}

// EstimateCenter computes both chord families between arc2 and arc1 and the
// ellipse center implied by their median lines. It returns false if either
// family could not be built (fewer than 2 chords found).
func EstimateCenter(arc2, arc1 *arcseg.Arc, opts Options) (chord21, chord12 *Chords, center [2]float32, ok bool) {
	chord21 = parallelChords(arc2, arc1, true, opts)
	if chord21 == nil {
		return nil, nil, center, false
	}
	setMedianSlopeAndCentroid(chord21)

	chord12 = parallelChords(arc1, arc2, false, opts)
	if chord12 == nil {
		return nil, nil, center, false
	}
	setMedianSlopeAndCentroid(chord12)

	center = estimateCenterFromChords(chord21, chord12)
	return chord21, chord12, center, true
}

// estimateCenterFromChords intersects the two Theil-Sen lines implied by
// chord2 and chord1, following CEllipseDetectorYaed::GetFastCenter.
func estimateCenterFromChords(chord2, chord1 *Chords) [2]float32 {
	denom := chord2.MedianSlope - chord1.MedianSlope
	centerX := (chord1.MedianCentroidY - chord1.MedianSlope*chord1.MedianCentroidX -
		chord2.MedianCentroidY + chord2.MedianSlope*chord2.MedianCentroidX) / denom
	centerY := (chord2.MedianSlope*chord1.MedianCentroidY - chord1.MedianSlope*chord2.MedianCentroidY +
		chord2.MedianSlope*chord1.MedianSlope*(chord2.MedianCentroidX-chord1.MedianCentroidX)) / denom
	return [2]float32{centerX, centerY}
}

// parallelChords builds chords going from the start/end of arc2 to sample
// points along one half of arc1 (from its middle toward one end), matching
// each against the point on
// arc2 whose slope relative to arc1's sample point most closely follows the
// reference slope set by arc2's own start/end point.
func parallelChords(arc2, arc1 *arcseg.Arc, startOfArc2 bool, opts Options) *Chords {
	n1 := len(arc1.Points)
	middle1 := arc1.Points[n1/2]

	var arc2Index int
	switch arc2.Quadrant {
	case geom.Q1, geom.Q2:
		if startOfArc2 {
			arc2Index = 0
		} else {
			arc2Index = len(arc2.Points) - 1
		}
	case geom.Q3, geom.Q4:
		// arcs are sorted left to right, but this function assumes sorted clockwise
		if startOfArc2 {
			arc2Index = len(arc2.Points) - 1
		} else {
			arc2Index = 0
		}
	default:
		return nil
	}

	ref := arc2.Points[arc2Index]
	dxRef := float32(ref.X - middle1.X)
	dyRef := float32(ref.Y - middle1.Y)
	referenceSlope := dyRef / dxRef
	if dyRef == 0 {
		dyRef = 0.00001
	}

	arc1HalfSize := n1 / 2
	minPoints := opts.NumberOfParallelChords
	if arc1HalfSize < minPoints {
		minPoints = arc1HalfSize
	}
	if minPoints == 0 {
		return nil
	}
	arc1Indexes := make([]int, minPoints)

	if opts.NumberOfParallelChords < arc1HalfSize {
		var stepDirection float32
		switch arc1.Quadrant {
		case geom.Q1, geom.Q2:
			if startOfArc2 {
				stepDirection = -1
			} else {
				stepDirection = 1
			}
		case geom.Q3, geom.Q4:
			if startOfArc2 {
				stepDirection = 1
			} else {
				stepDirection = -1
			}
		default:
			return nil
		}
		indexStep := float32(arc1HalfSize) / float32(opts.NumberOfParallelChords) * stepDirection
		currentIndex := float32(arc1HalfSize) + indexStep/2
		for i := 0; i < opts.NumberOfParallelChords; i++ {
			arc1Indexes[i] = int(currentIndex)
			currentIndex += indexStep
		}
	} else {
		firstHalf := startOfArc2
		if arc1.Quadrant == geom.Q3 || arc1.Quadrant == geom.Q4 {
			firstHalf = !firstHalf
		}
		if firstHalf {
			for i := 0; i < arc1HalfSize; i++ {
				arc1Indexes[i] = i
			}
		} else {
			for i := arc1HalfSize; i < len(arc1Indexes)+arc1HalfSize; i++ {
				arc1Indexes[i-arc1HalfSize] = i
			}
		}
	}

	chords := &Chords{ReferenceSlope: referenceSlope}
	for _, idx := range arc1Indexes {
		if idx < 0 || idx >= n1 {
			continue
		}
		arc1Point := arc1.Points[idx]
		arc1x, arc1y := float32(arc1Point.X), float32(arc1Point.Y)

		if mx, my, found := matchingChordPoint(arc2, arc1x, arc1y, dxRef, dyRef, referenceSlope); found {
			chords.Midpoints = append(chords.Midpoints, [2]float32{(mx + arc1x) / 2, (my + arc1y) / 2})
			chords.Slopes = append(chords.Slopes, (my-arc1y)/(mx-arc1x))
		}
	}

	if len(chords.Midpoints) < 2 {
		return nil
	}
	return chords
}

// matchingChordPoint binary-searches arc2's point list for the point (or
// interpolated point on the segment between two adjacent points) whose
// chord to (arc1x, arc1y) is parallel to the reference chord.
func matchingChordPoint(arc2 *arcseg.Arc, arc1x, arc1y, dxRef, dyRef, referenceSlope float32) (x, y float32, ok bool) {
	slopeDiff := func(p geom.Point) float32 {
		return (float32(p.X)-arc1x)*dyRef - (float32(p.Y)-arc1y)*dxRef
	}

	startIndex := 0
	endIndex := len(arc2.Points) - 1

	beginPoint := arc2.Points[startIndex]
	slopeDiffBegin := slopeDiff(beginPoint)
	signBegin := geom.Sign(slopeDiffBegin)
	if signBegin == 0 {
		return float32(beginPoint.X), float32(beginPoint.Y), true
	}

	endPoint := arc2.Points[endIndex]
	slopeDiffEnd := slopeDiff(endPoint)
	signEnd := geom.Sign(slopeDiffEnd)
	if signEnd == 0 {
		return float32(endPoint.X), float32(endPoint.Y), true
	}

	if signBegin+signEnd != 0 {
		return 0, 0, false
	}

	midIndex := (endIndex + startIndex) / 2
	for endIndex-startIndex > 2 {
		midPoint := arc2.Points[midIndex]
		slopeDiffMid := slopeDiff(midPoint)
		signMid := geom.Sign(slopeDiffMid)

		if signMid == 0 {
			break
		}
		if signMid+signBegin == 0 {
			signEnd = signMid
			endIndex = midIndex
		} else {
			signBegin = signMid
			startIndex = midIndex
		}
		midIndex = (endIndex + startIndex) / 2
	}

	midPoint := arc2.Points[midIndex]
	slopeDiffMid := slopeDiff(midPoint)
	signMid := geom.Sign(slopeDiffMid)
	if signMid == 0 {
		return float32(midPoint.X), float32(midPoint.Y), true
	}

	var otherPoint geom.Point
	switch {
	case signMid+signEnd == 0:
		otherPoint = arc2.Points[endIndex]
	case signMid+signBegin == 0:
		otherPoint = arc2.Points[startIndex]
	default:
		return 0, 0, false
	}

	if otherPoint.X == midPoint.X {
		intersectionX := float32(otherPoint.X)
		intersectionY := referenceSlope*(intersectionX-arc1x) + arc1y
		lo, hi := float32(otherPoint.Y), float32(midPoint.Y)
		if lo > hi {
			lo, hi = hi, lo
		}
		if intersectionY < lo || intersectionY > hi {
			return 0, 0, false
		}
		return intersectionX, intersectionY, true
	}

	slopeOfArcLine := (float32(otherPoint.Y) - float32(midPoint.Y)) / (float32(otherPoint.X) - float32(midPoint.X))
	interceptOfArcLine := float32(midPoint.Y) - float32(midPoint.X)*slopeOfArcLine
	interceptOfReferenceLine := arc1y - arc1x*referenceSlope
	intersectionX := (interceptOfReferenceLine - interceptOfArcLine) / (slopeOfArcLine - referenceSlope)
	intersectionY := slopeOfArcLine*intersectionX + interceptOfArcLine
	return intersectionX, intersectionY, true
}

// setMedianSlopeAndCentroid pairs the i-th midpoint with the
// (i+size/2)-th, takes the median of those perpendicular slopes, and the
// median of all midpoint coordinates (the Theil-Sen estimator, Algorithm 2
// of the reference paper).
func setMedianSlopeAndCentroid(c *Chords) {
	size := len(c.Midpoints)
	middle := size / 2

	slopes := make([]float32, middle)
	xCoord := make([]float32, size)
	yCoord := make([]float32, size)
	c.PerpendicularSlopes = make([]float32, 0, middle)

	for i := 0; i < middle; i++ {
		p1 := c.Midpoints[i]
		p2 := c.Midpoints[i+middle]
		slopes[i] = (p2[1] - p1[1]) / (p2[0] - p1[0])
		c.PerpendicularSlopes = append(c.PerpendicularSlopes, slopes[i])

		xCoord[i] = p1[0]
		xCoord[i+middle] = p2[0]
		yCoord[i] = p1[1]
		yCoord[i+middle] = p2[1]
	}
	if size%2 == 1 {
		last := c.Midpoints[size-1]
		xCoord[size-1] = last[0]
		yCoord[size-1] = last[1]
	}

	c.MedianCentroidX = geom.Median(xCoord, size)
	c.MedianCentroidY = geom.Median(yCoord, size)
	c.MedianSlope = geom.Median(slopes, middle)
}
