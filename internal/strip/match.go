package strip

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// sphericalAngles returns the azimuthal and polar angles of v.
func sphericalAngles(v r3.Vec) (phi, theta float64) {
	phi = math.Atan2(v.Y, v.X)
	theta = math.Atan2(math.Hypot(v.X, v.Y), v.Z)
	return phi, theta
}

// pairScore rates how well two cluster midpoints match in the spherical
// frame centred on cfg.Vertex. Three gates apply in order: absolute 3D
// separation, squared theta difference, squared phi difference. A pair
// failing any gate scores -1 ("not comparable"); otherwise the score is the
// summed squared angular difference, smaller being better.
func pairScore(front, back r3.Vec, cfg Config) float64 {
	if r3.Norm(r3.Sub(back, front)) > cfg.DiffDist {
		return -1
	}

	phi1, theta1 := sphericalAngles(r3.Sub(front, cfg.Vertex))
	phi2, theta2 := sphericalAngles(r3.Sub(back, cfg.Vertex))

	diffTheta2 := (theta1 - theta2) * (theta1 - theta2)
	if diffTheta2 > cfg.DiffTheta2 {
		return -1
	}
	diffPhi2 := (phi1 - phi2) * (phi1 - phi2)
	if diffPhi2 > cfg.DiffPhi2 {
		return -1
	}
	return diffTheta2 + diffPhi2
}

// AddHits clusters the hits of a front and a back surface and appends one
// unresolved SpacePoint per matched cluster pair to points. Matching is
// greedy and one-directional: each front cluster takes the back cluster
// with the lowest score, and several front clusters may pick the same back
// cluster. A front cluster with no back cluster inside the gates simply
// produces nothing.
//
// The caller owns points; positions are filled in later by
// CalculateSpacePoints.
func AddHits(points *[]SpacePoint, frontHits, backHits []Hit, cfg Config) error {
	if len(frontHits) == 0 || len(backHits) == 0 {
		return nil
	}

	clustersFront, err := ClusterHits(frontHits, cfg.ClusterFrontHits)
	if err != nil {
		return fmt.Errorf("clustering front hits: %w", err)
	}
	if len(clustersFront) == 0 {
		return nil
	}
	clustersBack, err := ClusterHits(backHits, cfg.ClusterBackHits)
	if err != nil {
		return fmt.Errorf("clustering back hits: %w", err)
	}
	if len(clustersBack) == 0 {
		return nil
	}

	backPoints := make([]r3.Vec, len(clustersBack))
	for i, c := range clustersBack {
		backPoints[i] = c.Midpoint()
	}

	for _, front := range clustersFront {
		frontPoint := front.Midpoint()
		bestScore := math.MaxFloat64
		best := -1
		for i, backPoint := range backPoints {
			score := pairScore(frontPoint, backPoint, cfg)
			if score >= 0 && score < bestScore {
				bestScore = score
				best = i
			}
		}
		if best >= 0 {
			*points = append(*points, SpacePoint{Front: front, Back: clustersBack[best]})
		}
	}
	return nil
}
