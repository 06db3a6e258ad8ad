package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christopherhurt/AmbiguousGame/models"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GAME_CONFIG", "")
	t.Setenv("PORT", "")
	t.Setenv("METRICS_PORT", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 12, cfg.World.Base)
	assert.Equal(t, 3, cfg.World.Iterations)

	params, err := cfg.GenerationParams()
	require.NoError(t, err)
	assert.Equal(t, 96, params.Size())
	require.Len(t, params.Rules, 6)
	assert.Equal(t, models.TileAppleTreeBottom, params.Rules[0].Tile)
	assert.Equal(t, models.TileAppleTreeTop, params.Rules[0].Companions[0].Tile)
	assert.Equal(t, -1, params.Rules[0].Companions[0].DRow)

	colliders, err := cfg.ColliderSet()
	require.NoError(t, err)
	assert.True(t, colliders[models.TileStump])
	assert.False(t, colliders[models.TileYellowFlower])
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "game.yaml")
	data := `
server:
  port: 6000
world:
  base: 8
  iterations: 2
objects:
  - kind: stump
    prob: 0.5
colliders: [stump]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6000, cfg.Server.Port)
	assert.Equal(t, 8, cfg.World.Base)
	assert.Equal(t, 0.3, cfg.World.LandProbability)
	require.Len(t, cfg.Objects, 1)
	assert.Equal(t, "stump", cfg.Objects[0].Kind)
}

func TestPortEnvOverride(t *testing.T) {
	t.Setenv("GAME_CONFIG", "")
	t.Setenv("PORT", "7001")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Server.Port)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"base":        func(c *Config) { c.World.Base = 0 },
		"iterations":  func(c *Config) { c.World.Iterations = -1 },
		"land prob":   func(c *Config) { c.World.LandProbability = 1 },
		"smoothness":  func(c *Config) { c.World.Smoothness = -2 },
		"object kind": func(c *Config) { c.Objects[0].Kind = "castle" },
		"object prob": func(c *Config) { c.Objects[1].Prob = 1.5 },
		"companion":   func(c *Config) { c.Objects[0].Companions[0].DRow = 0 },
		"collider":    func(c *Config) { c.Colliders = append(c.Colliders, "dragon") },
		"archive":     func(c *Config) { c.Archive.Driver = "s3" },
	}
	// Grids past the side cap would not fit in memory
	cases["iterations cap"] = func(c *Config) { c.World.Iterations = 40 }
	cases["base cap"] = func(c *Config) { c.World.Base, c.World.Iterations = 4097, 0 }
	cases["doubling cap"] = func(c *Config) { c.World.Base, c.World.Iterations = 12, 9 }
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestExampleConfigMatchesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("METRICS_PORT", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load(filepath.Join("..", "config.example.yaml"))
	require.NoError(t, err)

	want := Default()
	want.Archive.Driver = "file"
	assert.Equal(t, want, cfg)
}
