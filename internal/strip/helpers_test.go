package strip

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// testSurface implements Surface with explicit bin boundaries and an affine
// local-to-world map: world = origin + x*axisX + y*axisY.
type testSurface struct {
	boundsX, boundsY []float64
	origin           r3.Vec
	axisX, axisY     r3.Vec
}

func (s *testSurface) LocalToWorld(x, y float64) r3.Vec {
	return r3.Add(s.origin, r3.Add(r3.Scale(x, s.axisX), r3.Scale(y, s.axisY)))
}

func (s *testSurface) BinBoundsX() []float64 { return s.boundsX }
func (s *testSurface) BinBoundsY() []float64 { return s.boundsY }

// planeSurface builds a surface in the z = originZ plane with unit axes and
// the given bin boundaries.
func planeSurface(boundsX, boundsY []float64, originZ float64) *testSurface {
	return &testSurface{
		boundsX: boundsX,
		boundsY: boundsY,
		origin:  r3.Vec{Z: originZ},
		axisX:   r3.Vec{X: 1},
		axisY:   r3.Vec{Y: 1},
	}
}

type testHit struct {
	surf Surface
	x, y float64
}

func (h *testHit) Surface() Surface      { return h.surf }
func (h *testHit) Local() (x, y float64) { return h.x, h.y }

// stripCluster builds a single-hit cluster whose strip endpoints resolve to
// exactly (top, bottom). The surface holds one strip long in local y; the
// hit sits at the strip centre.
func stripCluster(top, bottom r3.Vec) Cluster {
	mid := r3.Scale(0.5, r3.Add(top, bottom))
	axisY := r3.Scale(0.5, r3.Sub(top, bottom))

	// Any direction transverse to the strip works for the narrow axis.
	axisX := r3.Cross(axisY, r3.Vec{Z: 1})
	if r3.Norm(axisX) < 1e-12 {
		axisX = r3.Vec{X: 1}
	} else {
		axisX = r3.Scale(1/r3.Norm(axisX), axisX)
	}

	surf := &testSurface{
		boundsX: []float64{-0.05, 0.05},
		boundsY: []float64{-1, 1},
		origin:  mid,
		axisX:   axisX,
		axisY:   axisY,
	}
	return Cluster{Primary: &testHit{surf: surf}}
}

// pointHit builds a hit whose world position (and therefore single-hit
// cluster midpoint) is exactly p.
func pointHit(p r3.Vec) Hit {
	surf := &testSurface{
		boundsX: []float64{-0.5, 0.5},
		boundsY: []float64{-0.5, 0.5},
		origin:  p,
		axisX:   r3.Vec{X: 1},
		axisY:   r3.Vec{Y: 1},
	}
	return &testHit{surf: surf}
}

func vecNear(a, b r3.Vec, tol float64) bool {
	d := r3.Norm(r3.Sub(a, b))
	return !math.IsNaN(d) && d <= tol
}
