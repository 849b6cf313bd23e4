package sensor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/detlab/spacepoint/internal/strip"
)

// Scene is one batch of input: the surface geometry plus the front- and
// back-side hits observed on it.
type Scene struct {
	Surfaces map[string]*PlanarSurface
	Front    []strip.Hit
	Back     []strip.Hit
}

// JSON schema of a scene file. Pose is optional and defaults to identity;
// boundaries are mandatory.
type sceneFile struct {
	Surfaces []surfaceJSON `json:"surfaces"`
	Hits     []hitJSON     `json:"hits"`
}

type surfaceJSON struct {
	ID         string    `json:"id"`
	Pose       []float64 `json:"pose,omitempty"` // row-major 4x4, 16 values
	BinBoundsX []float64 `json:"bin_bounds_x"`
	BinBoundsY []float64 `json:"bin_bounds_y"`
}

type hitJSON struct {
	Surface string  `json:"surface"`
	Side    string  `json:"side"` // "front" or "back"
	X       float64 `json:"x"`    // local coordinate
	Y       float64 `json:"y"`
}

// LoadScene reads and validates a JSON scene file.
func LoadScene(path string) (*Scene, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("scene file must have .json extension, got %q", ext)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return ParseScene(data)
}

// ParseScene decodes a JSON scene document.
func ParseScene(data []byte) (*Scene, error) {
	var file sceneFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scene JSON: %w", err)
	}

	scene := &Scene{Surfaces: make(map[string]*PlanarSurface, len(file.Surfaces))}
	for _, sj := range file.Surfaces {
		if sj.ID == "" {
			return nil, fmt.Errorf("surface without id")
		}
		if _, ok := scene.Surfaces[sj.ID]; ok {
			return nil, fmt.Errorf("duplicate surface id %q", sj.ID)
		}
		pose := IdentityPose
		if len(sj.Pose) != 0 {
			if len(sj.Pose) != 16 {
				return nil, fmt.Errorf("surface %q: pose must have 16 values, got %d", sj.ID, len(sj.Pose))
			}
			copy(pose[:], sj.Pose)
		}
		surface, err := NewPlanarSurface(sj.ID, pose, sj.BinBoundsX, sj.BinBoundsY)
		if err != nil {
			return nil, err
		}
		scene.Surfaces[sj.ID] = surface
	}

	for i, hj := range file.Hits {
		surface, ok := scene.Surfaces[hj.Surface]
		if !ok {
			return nil, fmt.Errorf("hit %d references unknown surface %q", i, hj.Surface)
		}
		hit := &StripHit{Surf: surface, X: hj.X, Y: hj.Y}
		switch hj.Side {
		case "front":
			scene.Front = append(scene.Front, hit)
		case "back":
			scene.Back = append(scene.Back, hit)
		default:
			return nil, fmt.Errorf("hit %d: side must be \"front\" or \"back\", got %q", i, hj.Side)
		}
	}
	return scene, nil
}
