// Package cluster deduplicates validated ellipse hypotheses: of several
// triplets that all describe essentially the same ellipse, only the
// highest-scoring one survives (part 3.3.2 of the reference paper,
// equations 26-29).
package cluster

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/ericfarng/yaed/internal/paramest"
	"github.com/ericfarng/yaed/internal/validate"
)

// centerPoint adapts a retained ellipse's center into gonum's 2D kdtree
// comparable interface, the same pattern pkg/interpolation uses for its 3D
// neighbor search, narrowed to two dimensions.
type centerPoint struct {
	x, y  float64
	index int
}

func (p centerPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(centerPoint)
	switch d {
	case 0:
		return p.x - q.x
	case 1:
		return p.y - q.y
	default:
		panic("illegal dimension")
	}
}

func (p centerPoint) Dims() int { return 2 }

func (p centerPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(centerPoint)
	dx := p.x - q.x
	dy := p.y - q.y
	return dx*dx + dy*dy
}

type centerPoints []centerPoint

func (p centerPoints) Index(i int) kdtree.Comparable        { return p[i] }
func (p centerPoints) Len() int                             { return len(p) }
func (p centerPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }
func (p centerPoints) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(centerPlane{centerPoints: p, Dim: d}, kdtree.MedianOfRandoms(centerPlane{centerPoints: p, Dim: d}, 100))
}

type centerPlane struct {
	centerPoints
	kdtree.Dim
}

func (p centerPlane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.centerPoints[i].x < p.centerPoints[j].x
	case 1:
		return p.centerPoints[i].y < p.centerPoints[j].y
	default:
		panic("illegal dimension")
	}
}
func (p centerPlane) Slice(start, end int) kdtree.SortSlicer {
	return centerPlane{centerPoints: p.centerPoints[start:end], Dim: p.Dim}
}
func (p centerPlane) Swap(i, j int) {
	p.centerPoints[i], p.centerPoints[j] = p.centerPoints[j], p.centerPoints[i]
}

// Cluster sorts results by score descending and keeps only those that are
// not a duplicate, by the four equivalence predicates below, of an
// already-kept, higher-scoring result.
func Cluster(results []validate.Result) []validate.Result {
	sorted := make([]validate.Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	var kept []validate.Result
	var keptCenters centerPoints

	for _, candidate := range sorted {
		rho := normalizeRho(candidate.Params.Rho)
		candidate.Params.Rho = rho

		if isDuplicate(candidate, kept, keptCenters) {
			continue
		}

		keptCenters = append(keptCenters, centerPoint{
			x:     float64(candidate.Params.Center[0]),
			y:     float64(candidate.Params.Center[1]),
			index: len(kept),
		})
		kept = append(kept, candidate)
	}
	return kept
}

// isDuplicate reports whether candidate matches an already-kept ellipse
// under all four clustering-equivalence predicates (equations 26-29). A
// kd-tree narrows the candidate set to retained centers within the widest
// possible distance gate (candidate.bAxis * 0.1) before the exact
// predicates are evaluated; any center farther than that radius is
// guaranteed to fail the distance gate regardless of its own bAxis, since
// the gate uses min(candidate.bAxis, kept.bAxis).
func isDuplicate(candidate validate.Result, kept []validate.Result, keptCenters centerPoints) bool {
	if len(kept) == 0 {
		return false
	}

	radius := float64(candidate.Params.BAxis) * 0.1
	tree := kdtree.New(keptCenters, true)
	keeper := kdtree.NewDistKeeper(radius * radius)
	tree.NearestSet(keeper, centerPoint{x: float64(candidate.Params.Center[0]), y: float64(candidate.Params.Center[1])})

	for _, item := range keeper.Heap {
		if item.Comparable == nil {
			continue
		}
		idx := item.Comparable.(centerPoint).index
		if equivalent(candidate.Params, kept[idx].Params) {
			return true
		}
	}
	return false
}

func equivalent(a, b paramest.Params) bool {
	minB := a.BAxis
	if b.BAxis < minB {
		minB = b.BAxis
	}
	minBAxisSquared := (minB * 0.1) * (minB * 0.1)

	dx := a.Center[0] - b.Center[0]
	dy := a.Center[1] - b.Center[1]
	distanceSquared := dx*dx + dy*dy
	if distanceSquared > minBAxisSquared {
		return false
	}

	if absf(a.AAxis-b.AAxis)/maxf(a.AAxis, b.AAxis) > 1 {
		return false
	}
	if absf(a.BAxis-b.BAxis)/maxf(a.BAxis, b.BAxis) > 1 {
		return false
	}

	minAngle := absf(a.Rho - b.Rho)
	angularDistance := minf(math.Pi-float64(minAngle), float64(minAngle))
	if angularDistance/math.Pi > 0.1 && a.BAxis/a.AAxis < 0.9 && b.BAxis/b.AAxis < 0.9 {
		return false
	}

	return true
}

func normalizeRho(rho float32) float32 {
	for rho < 0 {
		rho += math.Pi
	}
	for rho >= math.Pi {
		rho -= math.Pi
	}
	return rho
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
