package strip

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Config holds the tuning parameters for space-point building. It is a
// plain immutable value passed explicitly to every operation; there is no
// hidden global default.
//
// Distances are in the same units as the surface world coordinates, angles
// in radians.
type Config struct {
	// DiffDist is the maximum Euclidean separation between a front and a
	// back cluster midpoint for the pair to be considered at all.
	DiffDist float64
	// DiffTheta2 and DiffPhi2 are the maximum squared angular differences
	// between the two cluster midpoints, measured in the spherical frame
	// centred on Vertex.
	DiffTheta2 float64
	DiffPhi2   float64
	// Vertex is the assumed common origin of trajectories. It anchors both
	// the angular matching and the vertex-based solve.
	Vertex r3.Vec
	// StripLengthTolerance widens the valid strip-parameter interval
	// multiplicatively: limit = 1 + StripLengthTolerance. Zero keeps the
	// bound at exactly 1.
	StripLengthTolerance float64
	// StripLengthGapTolerance is the absolute extra strip length allowed
	// during recovery of near-miss solutions. Zero disables recovery.
	StripLengthGapTolerance float64
	// UsePerpProj selects the vertex-free closest-approach solving mode,
	// intended for data without a usable vertex (e.g. cosmics).
	UsePerpProj bool
	// ClusterFrontHits and ClusterBackHits enable bin-adjacency clustering
	// per surface. When disabled every hit becomes its own cluster.
	ClusterFrontHits bool
	ClusterBackHits  bool
}

// DefaultConfig returns the production-default builder parameters.
func DefaultConfig() Config {
	return Config{
		DiffDist:         100,
		DiffTheta2:       1,
		DiffPhi2:         1,
		ClusterFrontHits: true,
		ClusterBackHits:  true,
	}
}

// Validate checks that the configuration values are usable. A malformed
// Config is a programmer error, not a property of the input geometry.
func (c Config) Validate() error {
	if c.DiffDist < 0 {
		return fmt.Errorf("strip: DiffDist must be non-negative, got %g", c.DiffDist)
	}
	if c.DiffTheta2 < 0 || c.DiffPhi2 < 0 {
		return fmt.Errorf("strip: squared angular tolerances must be non-negative, got theta2=%g phi2=%g", c.DiffTheta2, c.DiffPhi2)
	}
	if c.StripLengthTolerance < 0 {
		return fmt.Errorf("strip: StripLengthTolerance must be non-negative, got %g", c.StripLengthTolerance)
	}
	if c.StripLengthGapTolerance < 0 {
		return fmt.Errorf("strip: StripLengthGapTolerance must be non-negative, got %g", c.StripLengthGapTolerance)
	}
	return nil
}
