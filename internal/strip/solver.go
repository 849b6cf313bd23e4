package strip

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// perpProjFloor is the minimum solver denominator magnitude. Below it the
// two strips are effectively parallel and the projection is undefined.
const perpProjFloor = 1e-6

// spacePointParams is the per-candidate working set of the solver. It is
// reset for every candidate and never shared between them.
type spacePointParams struct {
	q  r3.Vec // front strip axis, top - bottom
	r  r3.Vec // back strip axis
	s  r3.Vec // front top + bottom - 2*vertex
	t  r3.Vec // back top + bottom - 2*vertex
	qs r3.Vec // q × s
	rt r3.Vec // r × t
	m  float64 // position along the front strip, nominally in (-1, 1)
	n  float64 // position along the back strip

	limit float64 // parameter bound, 1 unless widened by tolerance

	// Recovery-only fields.
	limitExtended float64
	qmag          float64
}

func (p *spacePointParams) reset() {
	*p = spacePointParams{limit: 1}
}

// perpProj resolves the closest-approach parameter lambda of two skew lines
// a + lambda*q and c + mu*r. Intended for data without a vertex (cosmics):
// the best estimate of the crossing is simply the point of closest approach.
// For near-parallel strips the system degenerates; the return value 1 lies
// outside the accepted interval and signals failure to the caller.
func perpProj(a, c, q, r r3.Vec) float64 {
	ac := r3.Sub(c, a)
	qr := r3.Dot(q, r)
	denom := r3.Dot(q, q) - qr*qr
	if math.Abs(denom) > perpProjFloor {
		return (r3.Dot(ac, r)*qr - r3.Dot(ac, q)*r3.Dot(r, r)) / denom
	}
	return 1
}

// recoverSpacePoint attempts to pull m and n back inside the limit when the
// solved crossing lies just beyond a strip end. Only an overshoot of both
// parameters in the same direction is correctable: the worse overshoot
// (with n's projected onto the front strip's scale for comparison) is
// subtracted from both. The shift amounts to a small displacement of the
// assumed vertex, which is within the measurement's resolution as long as
// the overshoot stays below StripLengthGapTolerance.
func recoverSpacePoint(p *spacePointParams, cfg Config) bool {
	if cfg.StripLengthGapTolerance <= 0 {
		return false
	}
	p.qmag = r3.Norm(p.q)
	p.limitExtended = p.limit + cfg.StripLengthGapTolerance/p.qmag
	if math.Abs(p.m) > p.limitExtended || math.Abs(p.n) > p.limitExtended {
		return false
	}

	// Scale factor projecting lengths along the back strip onto the front
	// strip.
	secOnFirstScale := r3.Dot(p.q, p.r) / (p.qmag * p.qmag)

	switch {
	case p.m > 1 && p.n > 1:
		mOvershoot := p.m - 1
		nOvershoot := (p.n - 1) * secOnFirstScale
		overshoot := math.Max(mOvershoot, nOvershoot)
		p.m -= overshoot
		p.n -= overshoot / secOnFirstScale
		return math.Abs(p.m) < p.limit && math.Abs(p.n) < p.limit
	case p.m < -1 && p.n < -1:
		mOvershoot := -(p.m + 1)
		nOvershoot := -(p.n + 1) * secOnFirstScale
		overshoot := math.Max(mOvershoot, nOvershoot)
		p.m += overshoot
		p.n += overshoot / secOnFirstScale
		return math.Abs(p.m) < p.limit && math.Abs(p.n) < p.limit
	}
	// Opposite-direction overshoots cannot be absorbed by a vertex shift.
	return false
}

// CalculateSpacePoints computes the 3D position of every unresolved
// candidate in points, in place. Candidates whose geometry admits no valid
// or recoverable solution are left unresolved; the caller filters them.
//
// In the default vertex-based mode the position x on the front strip
// (top a, bottom b) is parametrized as
//
//	2x = (1+m)a + (1-m)b, -1 < m < 1,
//
// and the corresponding back-strip point y (top c, bottom d) analogously
// with parameter n. Demanding that y be a scalar multiple of x (both hits
// stem from one trajectory through the vertex) forces y onto the plane
// spanned by the back strip and the vertex, which closes the system:
//
//	m = -s·(r×t) / q·(r×t),  n = -t·(q×s) / r·(q×s)
//
// with q = a-b, r = c-d, s = a+b-2v, t = c+d-2v. When UsePerpProj is set
// the vertex is ignored and the closest approach of the two strip lines is
// used instead, accepted only for lambda <= 0.
func CalculateSpacePoints(points []SpacePoint, cfg Config) {
	var p spacePointParams
	for i := range points {
		sp := &points[i]
		if sp.Resolved {
			continue
		}

		topFront, bottomFront := ClusterEnds(sp.Front)
		topBack, bottomBack := ClusterEnds(sp.Back)

		p.reset()
		p.q = r3.Sub(topFront, bottomFront)
		p.r = r3.Sub(topBack, bottomBack)

		if cfg.UsePerpProj {
			if lambda := perpProj(topFront, topBack, p.q, p.r); lambda <= 0 {
				sp.Position = r3.Add(topFront, r3.Scale(lambda, p.q))
				sp.Resolved = true
			}
			continue
		}

		vertex2 := r3.Scale(2, cfg.Vertex)
		p.s = r3.Sub(r3.Add(topFront, bottomFront), vertex2)
		p.t = r3.Sub(r3.Add(topBack, bottomBack), vertex2)
		p.qs = r3.Cross(p.q, p.s)
		p.rt = r3.Cross(p.r, p.t)
		p.m = -r3.Dot(p.s, p.rt) / r3.Dot(p.q, p.rt)
		p.n = -r3.Dot(p.t, p.qs) / r3.Dot(p.r, p.qs)

		if cfg.StripLengthTolerance != 0 {
			p.limit = 1 + cfg.StripLengthTolerance
		}

		if (math.Abs(p.m) <= p.limit && math.Abs(p.n) <= p.limit) ||
			recoverSpacePoint(&p, cfg) {
			sp.Position = r3.Scale(0.5, r3.Add(r3.Add(topFront, bottomFront), r3.Scale(p.m, p.q)))
			sp.Resolved = true
		}
	}
}
