package mapgen

import (
	"errors"
	"fmt"
	"time"

	"github.com/christopherhurt/AmbiguousGame/models"
)

// ErrNoLand is returned when the pipeline produces a world without land
var ErrNoLand = errors.New("generated world has no land")

// MaxSide bounds the generated grid's side length
const MaxSide = 4096

// Params configures one run of the generation pipeline
type Params struct {
	Base       int
	LandProb   float64
	Iterations int
	Smoothness int
	Noise      float64
	NoiseDecay float64
	TSize      int
	DSize      int
	Rules      []PlacementRule
}

// Size returns the side length of the generated grid, or -1 when it would
// exceed MaxSide
func (p Params) Size() int {
	if p.Base < 1 || p.Iterations < 0 {
		return -1
	}
	side := p.Base
	for i := 0; i < p.Iterations; i++ {
		if side > MaxSide {
			return -1
		}
		side *= 2
	}
	if side > MaxSide {
		return -1
	}
	return side
}

// Stats summarises a generated world
type Stats struct {
	LandTiles int
	Islands   int
	Objects   int
	Elapsed   time.Duration
}

// World is the output of Generate
type World struct {
	Map   *models.GameMap
	Seed  uint64
	Stats Stats
}

// Generate runs seed, amplify, smooth, label and decorate and assembles the
// two-layer map.
func Generate(seed uint64, p Params) (*World, error) {
	if p.Size() < 0 {
		return nil, fmt.Errorf("invalid grid shape base=%d iterations=%d (max side %d)", p.Base, p.Iterations, MaxSide)
	}

	start := time.Now()
	rng := NewRand(seed)

	field := Seed(rng, p.Base, p.LandProb)
	field = Amplify(rng, field, p.Iterations, p.Noise, p.NoiseDecay)
	field = Smooth(field, p.Smoothness)

	land := field.LandCount()
	if land == 0 {
		return nil, fmt.Errorf("seed %d: %w", seed, ErrNoLand)
	}

	_, islands := LabelIslands(field)

	terrain := make([]int, len(field.Land))
	for i, l := range field.Land {
		if l {
			terrain[i] = models.TileGrass
		} else {
			terrain[i] = models.TileWater
		}
	}
	objects := make([]int, len(field.Land))
	placed := Decorate(rng, field, objects, p.Rules)

	layers := make([][]int, models.LayerCount)
	layers[models.LayerTerrain] = terrain
	layers[models.LayerObjects] = objects

	return &World{
		Map:  models.NewGameMap(field.Cols, field.Rows, p.TSize, p.DSize, layers, islands),
		Seed: seed,
		Stats: Stats{
			LandTiles: land,
			Islands:   len(islands),
			Objects:   placed,
			Elapsed:   time.Since(start),
		},
	}, nil
}
