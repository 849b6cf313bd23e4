// Package sensor provides a concrete planar-surface implementation of the
// geometry interfaces consumed by the strip reconstruction core, plus a
// JSON scene loader for batch input.
package sensor

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/detlab/spacepoint/internal/strip"
)

// IdentityPose is a 4x4 identity matrix for local-to-world transforms.
// Row-major: [m00,m01,m02,m03, m10,m11,m12,m13, m20,m21,m22,m23, m30,m31,m32,m33]
var IdentityPose = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// ApplyPose applies a 4x4 row-major transform T to point (x,y,z).
func ApplyPose(x, y, z float64, T [16]float64) (wx, wy, wz float64) {
	wx = T[0]*x + T[1]*y + T[2]*z + T[3]
	wy = T[4]*x + T[5]*y + T[6]*z + T[7]
	wz = T[8]*x + T[9]*y + T[10]*z + T[11]
	return wx, wy, wz
}

// PlanarSurface is one planar strip-sensor surface: a rectangular local
// (x, y) frame segmented into bins, placed in the world by a rigid pose.
// Surfaces are shared by all hits that reference them, so identity
// comparisons on the *PlanarSurface pointer are meaningful.
type PlanarSurface struct {
	ID      string
	Pose    [16]float64 // local -> world, row-major 4x4
	BoundsX []float64   // ascending bin boundaries along local x
	BoundsY []float64
}

// NewPlanarSurface validates and builds a surface. Bin boundary slices must
// hold at least one bin each and be strictly ascending.
func NewPlanarSurface(id string, pose [16]float64, boundsX, boundsY []float64) (*PlanarSurface, error) {
	for axis, bounds := range map[string][]float64{"x": boundsX, "y": boundsY} {
		if len(bounds) < 2 {
			return nil, fmt.Errorf("surface %q: need at least 2 bin boundaries along %s, got %d", id, axis, len(bounds))
		}
		for i := 1; i < len(bounds); i++ {
			if bounds[i] <= bounds[i-1] {
				return nil, fmt.Errorf("surface %q: bin boundaries along %s must be strictly ascending", id, axis)
			}
		}
	}
	return &PlanarSurface{ID: id, Pose: pose, BoundsX: boundsX, BoundsY: boundsY}, nil
}

// LocalToWorld maps a local on-surface coordinate into the world frame.
func (s *PlanarSurface) LocalToWorld(x, y float64) r3.Vec {
	wx, wy, wz := ApplyPose(x, y, 0, s.Pose)
	return r3.Vec{X: wx, Y: wy, Z: wz}
}

// BinBoundsX returns the ascending bin boundaries along local x.
func (s *PlanarSurface) BinBoundsX() []float64 { return s.BoundsX }

// BinBoundsY returns the ascending bin boundaries along local y.
func (s *PlanarSurface) BinBoundsY() []float64 { return s.BoundsY }

// StripHit is a strip measurement pinned to a PlanarSurface at a local
// coordinate.
type StripHit struct {
	Surf *PlanarSurface
	X, Y float64
}

// Surface returns the surface the hit was measured on.
func (h *StripHit) Surface() strip.Surface { return h.Surf }

// Local returns the hit's local coordinate on its surface.
func (h *StripHit) Local() (x, y float64) { return h.X, h.Y }

// Compile-time interface checks.
var (
	_ strip.Surface = (*PlanarSurface)(nil)
	_ strip.Hit     = (*StripHit)(nil)
)
