package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/christopherhurt/AmbiguousGame/mapgen"
	"github.com/christopherhurt/AmbiguousGame/models"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the root of the YAML configuration
type Config struct {
	Server    ServerConfig  `yaml:"server"`
	World     WorldConfig   `yaml:"world"`
	Objects   []ObjectRule  `yaml:"objects"`
	Colliders []string      `yaml:"colliders"`
	Archive   ArchiveConfig `yaml:"archive"`
	Log       LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port        int   `yaml:"port"`
	MetricsPort int   `yaml:"metrics_port"`
	SendBuffer  int   `yaml:"send_buffer"`
	ReadLimit   int64 `yaml:"read_limit"`
}

type WorldConfig struct {
	Base            int     `yaml:"base"`
	LandProbability float64 `yaml:"land_probability"`
	Iterations      int     `yaml:"iterations"`
	Smoothness      int     `yaml:"smoothness"`
	TileSize        int     `yaml:"tile_size"`
	DisplaySize     int     `yaml:"display_size"`
	Seed            uint64  `yaml:"seed"` // 0 derives a seed from the clock
	Noise           float64 `yaml:"noise"`
	NoiseDecay      float64 `yaml:"noise_decay"`
}

// ObjectRule places Kind on land with probability Prob, together with its
// companions
type ObjectRule struct {
	Kind       string          `yaml:"kind"`
	Prob       float64         `yaml:"prob"`
	Companions []CompanionRule `yaml:"companions"`
}

type CompanionRule struct {
	Kind string `yaml:"kind"`
	DRow int    `yaml:"drow"`
	DCol int    `yaml:"dcol"`
}

type ArchiveConfig struct {
	Driver string `yaml:"driver"` // none, file or postgres
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
	Name   string `yaml:"name"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        5000,
			MetricsPort: 2112,
			SendBuffer:  256,
			ReadLimit:   64 * 1024,
		},
		World: WorldConfig{
			Base:            12,
			LandProbability: 0.3,
			Iterations:      3,
			Smoothness:      5,
			TileSize:        16,
			DisplaySize:     64,
			Noise:           0.5,
			NoiseDecay:      0.5,
		},
		Objects: []ObjectRule{
			{Kind: "apple_tree_bottom", Prob: 0.05, Companions: []CompanionRule{{Kind: "apple_tree_top", DRow: -1}}},
			{Kind: "tree_bottom", Prob: 0.25, Companions: []CompanionRule{{Kind: "tree_top", DRow: -1}}},
			{Kind: "yellow_flower", Prob: 0.1},
			{Kind: "red_flower", Prob: 0.03},
			{Kind: "white_flower", Prob: 0.02},
			{Kind: "stump", Prob: 0.01},
		},
		Colliders: []string{"tree_bottom", "apple_tree_bottom", "stump"},
		Archive: ArchiveConfig{
			Driver: "none",
			Path:   "worlds",
			Name:   "world",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. With an empty path the
// GAME_CONFIG environment variable is consulted; with neither set the
// defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("GAME_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Server.Port = portWithEnvFallback(cfg.Server.Port, "PORT", 5000)
	cfg.Server.MetricsPort = portWithEnvFallback(cfg.Server.MetricsPort, "METRICS_PORT", 2112)
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" && cfg.Archive.DSN == "" {
		cfg.Archive.DSN = dsn
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// portWithEnvFallback prefers an explicit env override, then the configured
// value, then the default
func portWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}
	if configPort > 0 {
		return configPort
	}
	return defaultPort
}

// Validate checks the generation parameters and the object tables
func (c *Config) Validate() error {
	w := c.World
	switch {
	case w.Base < 1:
		return fmt.Errorf("%w: world.base must be at least 1, got %d", ErrInvalid, w.Base)
	case w.Iterations < 0:
		return fmt.Errorf("%w: world.iterations must not be negative, got %d", ErrInvalid, w.Iterations)
	case (mapgen.Params{Base: w.Base, Iterations: w.Iterations}).Size() < 0:
		return fmt.Errorf("%w: world.base %d doubled %d times exceeds %d tiles per side", ErrInvalid, w.Base, w.Iterations, mapgen.MaxSide)
	case w.LandProbability <= 0 || w.LandProbability >= 1:
		return fmt.Errorf("%w: world.land_probability must be in (0,1), got %v", ErrInvalid, w.LandProbability)
	case w.Smoothness < 0:
		return fmt.Errorf("%w: world.smoothness must not be negative, got %d", ErrInvalid, w.Smoothness)
	case w.TileSize <= 0 || w.DisplaySize <= 0:
		return fmt.Errorf("%w: tile sizes must be positive", ErrInvalid)
	case w.Noise < 0 || w.Noise > 1 || w.NoiseDecay < 0 || w.NoiseDecay > 1:
		return fmt.Errorf("%w: world.noise and world.noise_decay must be in [0,1]", ErrInvalid)
	}

	if _, err := c.PlacementRules(); err != nil {
		return err
	}
	if _, err := c.ColliderSet(); err != nil {
		return err
	}

	switch c.Archive.Driver {
	case "", "none", "file", "postgres":
	default:
		return fmt.Errorf("%w: unknown archive driver %q", ErrInvalid, c.Archive.Driver)
	}
	return nil
}

// PlacementRules resolves the object table into generator rules
func (c *Config) PlacementRules() ([]mapgen.PlacementRule, error) {
	rules := make([]mapgen.PlacementRule, 0, len(c.Objects))
	for _, obj := range c.Objects {
		tile, ok := models.TileByName(obj.Kind)
		if !ok {
			return nil, fmt.Errorf("%w: unknown object kind %q", ErrInvalid, obj.Kind)
		}
		if obj.Prob < 0 || obj.Prob > 1 {
			return nil, fmt.Errorf("%w: object %s probability %v outside [0,1]", ErrInvalid, obj.Kind, obj.Prob)
		}

		rule := mapgen.PlacementRule{Tile: tile, Prob: obj.Prob}
		for _, comp := range obj.Companions {
			ct, ok := models.TileByName(comp.Kind)
			if !ok {
				return nil, fmt.Errorf("%w: unknown companion kind %q of %s", ErrInvalid, comp.Kind, obj.Kind)
			}
			if comp.DRow == 0 && comp.DCol == 0 {
				return nil, fmt.Errorf("%w: companion %s of %s overlaps its anchor", ErrInvalid, comp.Kind, obj.Kind)
			}
			rule.Companions = append(rule.Companions, mapgen.Companion{DRow: comp.DRow, DCol: comp.DCol, Tile: ct})
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// ColliderSet resolves collider names into tile ids
func (c *Config) ColliderSet() (map[int]bool, error) {
	set := make(map[int]bool, len(c.Colliders))
	for _, name := range c.Colliders {
		tile, ok := models.TileByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown collider %q", ErrInvalid, name)
		}
		set[tile] = true
	}
	return set, nil
}

// GenerationParams converts the world section for the generator
func (c *Config) GenerationParams() (mapgen.Params, error) {
	rules, err := c.PlacementRules()
	if err != nil {
		return mapgen.Params{}, err
	}
	w := c.World
	return mapgen.Params{
		Base:       w.Base,
		LandProb:   w.LandProbability,
		Iterations: w.Iterations,
		Smoothness: w.Smoothness,
		Noise:      w.Noise,
		NoiseDecay: w.NoiseDecay,
		TSize:      w.TileSize,
		DSize:      w.DisplaySize,
		Rules:      rules,
	}, nil
}
