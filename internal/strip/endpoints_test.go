package strip

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestStripEnds_LongAxisY(t *testing.T) {
	// Narrow in x, long in y: the hit constrains x to the bin centre and
	// the ends sit on the y boundaries.
	surf := planeSurface([]float64{0, 0.1}, []float64{0, 2}, 5)
	top, bottom := StripEnds(&testHit{surf: surf, x: 0.07, y: 1.3})

	wantTop := r3.Vec{X: 0.05, Y: 2, Z: 5}
	wantBottom := r3.Vec{X: 0.05, Y: 0, Z: 5}
	if !vecNear(top, wantTop, 1e-12) || !vecNear(bottom, wantBottom, 1e-12) {
		t.Errorf("got (%+v, %+v), want (%+v, %+v)", top, bottom, wantTop, wantBottom)
	}
}

func TestStripEnds_LongAxisX(t *testing.T) {
	surf := planeSurface([]float64{0, 2}, []float64{0, 0.1}, 0)
	top, bottom := StripEnds(&testHit{surf: surf, x: 1.3, y: 0.02})

	wantTop := r3.Vec{X: 0, Y: 0.05}
	wantBottom := r3.Vec{X: 2, Y: 0.05}
	if !vecNear(top, wantTop, 1e-12) || !vecNear(bottom, wantBottom, 1e-12) {
		t.Errorf("got (%+v, %+v), want (%+v, %+v)", top, bottom, wantTop, wantBottom)
	}
}

func TestClusterEnds_TwoHitAverage(t *testing.T) {
	// Two neighbouring strips at x-centres 0.05 and 0.15: the cluster's
	// representative strip runs through their midline.
	surf := planeSurface([]float64{0, 0.1, 0.2}, []float64{0, 2}, 0)
	a := &testHit{surf: surf, x: 0.05, y: 1}
	b := &testHit{surf: surf, x: 0.15, y: 1}

	top, bottom := ClusterEnds(Cluster{Primary: a, Secondary: b})
	if !vecNear(top, r3.Vec{X: 0.1, Y: 2}, 1e-12) || !vecNear(bottom, r3.Vec{X: 0.1}, 1e-12) {
		t.Errorf("unexpected averaged ends: (%+v, %+v)", top, bottom)
	}

	// Swapping primary and secondary must not change the result.
	topSwap, bottomSwap := ClusterEnds(Cluster{Primary: b, Secondary: a})
	if !vecNear(top, topSwap, 1e-15) || !vecNear(bottom, bottomSwap, 1e-15) {
		t.Errorf("ends depend on hit order: (%+v, %+v) vs (%+v, %+v)", top, bottom, topSwap, bottomSwap)
	}
}

func TestClusterMidpoint_OrderIndependent(t *testing.T) {
	surf := planeSurface([]float64{0, 0.1, 0.2}, []float64{0, 2}, 3)
	a := &testHit{surf: surf, x: 0.05, y: 0.5}
	b := &testHit{surf: surf, x: 0.15, y: 1.5}

	m1 := Cluster{Primary: a, Secondary: b}.Midpoint()
	m2 := Cluster{Primary: b, Secondary: a}.Midpoint()
	if !vecNear(m1, m2, 1e-15) {
		t.Errorf("midpoint depends on hit order: %+v vs %+v", m1, m2)
	}
	if !vecNear(m1, r3.Vec{X: 0.1, Y: 1, Z: 3}, 1e-12) {
		t.Errorf("unexpected midpoint %+v", m1)
	}
}

func TestStripClusterHelper(t *testing.T) {
	// The solver tests rely on stripCluster resolving to the exact
	// endpoints it was built from.
	top := r3.Vec{X: 1.2, Y: 0.6, Z: 4}
	bottom := r3.Vec{X: -0.8, Y: 0.6, Z: 4}
	gotTop, gotBottom := ClusterEnds(stripCluster(top, bottom))
	if !vecNear(gotTop, top, 1e-12) || !vecNear(gotBottom, bottom, 1e-12) {
		t.Errorf("got (%+v, %+v), want (%+v, %+v)", gotTop, gotBottom, top, bottom)
	}
}
