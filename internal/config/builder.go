package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/detlab/spacepoint/internal/strip"
)

// BuilderConfig is the JSON tuning file for the space-point builder. All
// fields are optional pointers: anything omitted from the file keeps its
// built-in default, so partial configs are safe. The Get* accessors apply
// the defaults.
type BuilderConfig struct {
	DiffDist                *float64   `json:"diff_dist,omitempty"`
	DiffTheta2              *float64   `json:"diff_theta2,omitempty"`
	DiffPhi2                *float64   `json:"diff_phi2,omitempty"`
	Vertex                  *[]float64 `json:"vertex,omitempty"` // [x, y, z]
	StripLengthTolerance    *float64   `json:"strip_length_tolerance,omitempty"`
	StripLengthGapTolerance *float64   `json:"strip_length_gap_tolerance,omitempty"`
	UsePerpProj             *bool      `json:"use_perp_proj,omitempty"`
	ClusterFrontHits        *bool      `json:"cluster_front_hits,omitempty"`
	ClusterBackHits         *bool      `json:"cluster_back_hits,omitempty"`
}

// EmptyBuilderConfig returns a BuilderConfig with all fields unset.
func EmptyBuilderConfig() *BuilderConfig {
	return &BuilderConfig{}
}

// LoadBuilderConfig loads a BuilderConfig from a JSON file. The path must
// carry a .json extension and stay under the max file size.
func LoadBuilderConfig(path string) (*BuilderConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyBuilderConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *BuilderConfig) Validate() error {
	if c.DiffDist != nil && *c.DiffDist < 0 {
		return fmt.Errorf("diff_dist must be non-negative, got %g", *c.DiffDist)
	}
	if c.DiffTheta2 != nil && *c.DiffTheta2 < 0 {
		return fmt.Errorf("diff_theta2 must be non-negative, got %g", *c.DiffTheta2)
	}
	if c.DiffPhi2 != nil && *c.DiffPhi2 < 0 {
		return fmt.Errorf("diff_phi2 must be non-negative, got %g", *c.DiffPhi2)
	}
	if c.Vertex != nil && len(*c.Vertex) != 3 {
		return fmt.Errorf("vertex must have 3 components, got %d", len(*c.Vertex))
	}
	if c.StripLengthTolerance != nil && *c.StripLengthTolerance < 0 {
		return fmt.Errorf("strip_length_tolerance must be non-negative, got %g", *c.StripLengthTolerance)
	}
	if c.StripLengthGapTolerance != nil && *c.StripLengthGapTolerance < 0 {
		return fmt.Errorf("strip_length_gap_tolerance must be non-negative, got %g", *c.StripLengthGapTolerance)
	}
	return nil
}

// GetDiffDist returns the diff_dist value or the default.
func (c *BuilderConfig) GetDiffDist() float64 {
	if c.DiffDist == nil {
		return strip.DefaultConfig().DiffDist
	}
	return *c.DiffDist
}

// GetDiffTheta2 returns the diff_theta2 value or the default.
func (c *BuilderConfig) GetDiffTheta2() float64 {
	if c.DiffTheta2 == nil {
		return strip.DefaultConfig().DiffTheta2
	}
	return *c.DiffTheta2
}

// GetDiffPhi2 returns the diff_phi2 value or the default.
func (c *BuilderConfig) GetDiffPhi2() float64 {
	if c.DiffPhi2 == nil {
		return strip.DefaultConfig().DiffPhi2
	}
	return *c.DiffPhi2
}

// GetVertex returns the vertex or the origin default.
func (c *BuilderConfig) GetVertex() r3.Vec {
	if c.Vertex == nil {
		return r3.Vec{}
	}
	v := *c.Vertex
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// GetStripLengthTolerance returns the strip_length_tolerance value or the default.
func (c *BuilderConfig) GetStripLengthTolerance() float64 {
	if c.StripLengthTolerance == nil {
		return 0
	}
	return *c.StripLengthTolerance
}

// GetStripLengthGapTolerance returns the strip_length_gap_tolerance value or the default.
func (c *BuilderConfig) GetStripLengthGapTolerance() float64 {
	if c.StripLengthGapTolerance == nil {
		return 0
	}
	return *c.StripLengthGapTolerance
}

// GetUsePerpProj returns the use_perp_proj value or the default.
func (c *BuilderConfig) GetUsePerpProj() bool {
	if c.UsePerpProj == nil {
		return false
	}
	return *c.UsePerpProj
}

// GetClusterFrontHits returns the cluster_front_hits value or the default.
func (c *BuilderConfig) GetClusterFrontHits() bool {
	if c.ClusterFrontHits == nil {
		return true
	}
	return *c.ClusterFrontHits
}

// GetClusterBackHits returns the cluster_back_hits value or the default.
func (c *BuilderConfig) GetClusterBackHits() bool {
	if c.ClusterBackHits == nil {
		return true
	}
	return *c.ClusterBackHits
}

// StripConfig assembles the immutable core config from the file values and
// defaults.
func (c *BuilderConfig) StripConfig() strip.Config {
	return strip.Config{
		DiffDist:                c.GetDiffDist(),
		DiffTheta2:              c.GetDiffTheta2(),
		DiffPhi2:                c.GetDiffPhi2(),
		Vertex:                  c.GetVertex(),
		StripLengthTolerance:    c.GetStripLengthTolerance(),
		StripLengthGapTolerance: c.GetStripLengthGapTolerance(),
		UsePerpProj:             c.GetUsePerpProj(),
		ClusterFrontHits:        c.GetClusterFrontHits(),
		ClusterBackHits:         c.GetClusterBackHits(),
	}
}
