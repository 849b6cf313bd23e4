package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/detlab/spacepoint/internal/strip"
)

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "builder.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestEmptyBuilderConfig_Defaults(t *testing.T) {
	cfg := EmptyBuilderConfig().StripConfig()
	assert.Equal(t, strip.DefaultConfig().DiffDist, cfg.DiffDist)
	assert.Equal(t, strip.DefaultConfig().DiffTheta2, cfg.DiffTheta2)
	assert.Equal(t, r3.Vec{}, cfg.Vertex)
	assert.Zero(t, cfg.StripLengthTolerance)
	assert.Zero(t, cfg.StripLengthGapTolerance)
	assert.False(t, cfg.UsePerpProj)
	assert.True(t, cfg.ClusterFrontHits)
	assert.True(t, cfg.ClusterBackHits)
}

func TestLoadBuilderConfig_PartialOverride(t *testing.T) {
	path := writeConfig(t, `{
		"diff_dist": 5,
		"vertex": [0, 0, -10],
		"strip_length_gap_tolerance": 0.25,
		"cluster_back_hits": false
	}`)

	cfg, err := LoadBuilderConfig(path)
	require.NoError(t, err)

	sc := cfg.StripConfig()
	assert.Equal(t, 5.0, sc.DiffDist)
	assert.Equal(t, r3.Vec{Z: -10}, sc.Vertex)
	assert.Equal(t, 0.25, sc.StripLengthGapTolerance)
	assert.False(t, sc.ClusterBackHits)
	// Untouched fields keep their defaults.
	assert.Equal(t, strip.DefaultConfig().DiffTheta2, sc.DiffTheta2)
	assert.True(t, sc.ClusterFrontHits)
}

func TestLoadBuilderConfig_Invalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"negative diff_dist", `{"diff_dist": -1}`},
		{"negative theta tolerance", `{"diff_theta2": -0.1}`},
		{"short vertex", `{"vertex": [1, 2]}`},
		{"negative gap tolerance", `{"strip_length_gap_tolerance": -0.5}`},
		{"malformed json", `{"diff_dist": }`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadBuilderConfig(writeConfig(t, tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadBuilderConfig_RequiresJSONExtension(t *testing.T) {
	_, err := LoadBuilderConfig("builder.toml")
	assert.ErrorContains(t, err, ".json")
}

func TestStripConfigValidate(t *testing.T) {
	cfg := strip.DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.DiffDist = -1
	assert.Error(t, cfg.Validate())
}
