// Package edgemap defines the external edge-data contract the detection
// pipeline consumes: a binary edge mask plus per-pixel gradient fields. The
// package that produces this data (a Canny edge detector, or anything else)
// is a collaborator outside this module's scope; edgemap only describes the
// shape the pipeline expects and provides a ready-to-use dense
// implementation callers can fill in themselves.
package edgemap

import "fmt"

// edgeSentinel marks a pixel as an edge pixel in EdgeData, matching the
// reference implementation's all-bits-set sentinel value.
const edgeSentinel = int32(-1)

// EdgeMap is the read-only view the detector needs of a pre-computed edge
// image: dimensions, a binary edge mask, and the gradient fields the edge
// detector computed along the way.
type EdgeMap interface {
	Width() int
	Height() int
	// EdgeData returns a Width()*Height() row-major buffer; a pixel is an
	// edge pixel iff its entry equals -1.
	EdgeData() []int32
	// XGradient and YGradient return Width()*Height() row-major gradient
	// fields, defined at least at every edge pixel.
	XGradient() []float32
	YGradient() []float32
}

// ConfigError reports that the detector was asked to run without a
// correctly configured EdgeMap.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("edgemap: configuration error: %s", e.Reason)
}

// IsEdge reports whether the pixel at (x, y) is marked as an edge pixel.
func IsEdge(em EdgeMap, x, y int) bool {
	return em.EdgeData()[y*em.Width()+x] == edgeSentinel
}

// DenseEdgeMap is a straightforward in-memory EdgeMap backed by flat slices,
// suitable both for tests (internal/fixture builds these) and for the CLI
// demo's hand-rolled Sobel pass.
type DenseEdgeMap struct {
	W, H   int
	Edge   []int32
	GradX  []float32
	GradY  []float32
}

// NewDenseEdgeMap allocates a DenseEdgeMap with all buffers zeroed (no
// edges, no gradient) for width*height pixels.
func NewDenseEdgeMap(width, height int) *DenseEdgeMap {
	n := width * height
	return &DenseEdgeMap{
		W:     width,
		H:     height,
		Edge:  make([]int32, n),
		GradX: make([]float32, n),
		GradY: make([]float32, n),
	}
}

func (d *DenseEdgeMap) Width() int            { return d.W }
func (d *DenseEdgeMap) Height() int           { return d.H }
func (d *DenseEdgeMap) EdgeData() []int32     { return d.Edge }
func (d *DenseEdgeMap) XGradient() []float32  { return d.GradX }
func (d *DenseEdgeMap) YGradient() []float32  { return d.GradY }

// SetEdge marks (x, y) as an edge pixel carrying gradient (gx, gy).
func (d *DenseEdgeMap) SetEdge(x, y int, gx, gy float32) {
	idx := y*d.W + x
	d.Edge[idx] = edgeSentinel
	d.GradX[idx] = gx
	d.GradY[idx] = gy
}

// Validate returns a *ConfigError if em cannot be used by the detector.
func Validate(em EdgeMap) error {
	if em == nil {
		return &ConfigError{Reason: "no edge map configured"}
	}
	w, h := em.Width(), em.Height()
	if w <= 2 || h <= 2 {
		return &ConfigError{Reason: fmt.Sprintf("edge map too small: %dx%d", w, h)}
	}
	n := w * h
	if len(em.EdgeData()) != n || len(em.XGradient()) != n || len(em.YGradient()) != n {
		return &ConfigError{Reason: "edge map buffers do not match width*height"}
	}
	return nil
}
