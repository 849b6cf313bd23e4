package strip

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrMultipleSurfaces is returned when a single clustering call receives
// hits from more than one physical surface. Bin-index clustering is only
// meaningful within one sensor's segmentation.
var ErrMultipleSurfaces = errors.New("strip: hits span multiple surfaces")

// Surface is the segmentation geometry of one planar sensor surface.
// Implementations should be pointer types: the clusterer compares surfaces
// by interface equality to reject mixed-surface input.
type Surface interface {
	// LocalToWorld maps a local (x, y) coordinate on the surface into the
	// world frame.
	LocalToWorld(x, y float64) r3.Vec
	// BinBoundsX returns the ascending bin boundaries along local x.
	// Length is bin count + 1. BinBoundsY is the same for local y.
	BinBoundsX() []float64
	BinBoundsY() []float64
}

// Hit is a single strip measurement on one surface. Hits are owned by the
// caller and never copied or mutated here; the builder only reads the local
// coordinate and the surface segmentation.
type Hit interface {
	Surface() Surface
	Local() (x, y float64)
}

// Cluster is one or two bin-adjacent hits on the same surface merged into a
// single logical measurement. Secondary is nil for single-strip clusters.
type Cluster struct {
	Primary   Hit
	Secondary Hit
}

// worldCoords returns the hit's world-frame position.
func worldCoords(h Hit) r3.Vec {
	x, y := h.Local()
	return h.Surface().LocalToWorld(x, y)
}

// Midpoint returns the cluster's world position: the single hit's position,
// or the average of both hits for a two-strip cluster.
func (c Cluster) Midpoint() r3.Vec {
	p := worldCoords(c.Primary)
	if c.Secondary != nil {
		p = r3.Scale(0.5, r3.Add(p, worldCoords(c.Secondary)))
	}
	return p
}

// SpacePoint pairs one front cluster with one back cluster and, once
// solved, carries the reconstructed 3D position. Resolved distinguishes a
// solved position from the zero value: an unresolved point stays Resolved ==
// false and must be filtered out by the caller.
type SpacePoint struct {
	Front    Cluster
	Back     Cluster
	Position r3.Vec
	Resolved bool
}
