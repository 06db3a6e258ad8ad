package services

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/christopherhurt/AmbiguousGame/mapgen"
	"github.com/christopherhurt/AmbiguousGame/models"
)

// ErrOutOfBounds is returned for tile edits outside the grid
var ErrOutOfBounds = errors.New("tile edit out of bounds")

// WorldService holds the canonical map. It is not safe for concurrent use:
// the session loop is its only caller once the server is running.
type WorldService struct {
	gameMap   *models.GameMap
	colliders map[int]bool
	seed      uint64
	rng       *rand.Rand
}

// NewWorldService wraps a generated world
func NewWorldService(world *mapgen.World, colliders map[int]bool) *WorldService {
	return &WorldService{
		gameMap:   world.Map,
		colliders: colliders,
		seed:      world.Seed,
		rng:       mapgen.NewRand(world.Seed + 1),
	}
}

// Map returns the live map
func (ws *WorldService) Map() *models.GameMap {
	return ws.gameMap
}

func (ws *WorldService) Seed() uint64 {
	return ws.seed
}

// SetTile applies a tile edit. Edits are last-write-wins.
func (ws *WorldService) SetTile(layer, col, row, tile int) error {
	if err := ws.gameMap.SetTile(layer, col, row, tile); err != nil {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, err)
	}
	return nil
}

// FindSpawn picks a random standable tile
func (ws *WorldService) FindSpawn() (models.Coord, error) {
	return mapgen.FindSpawn(ws.rng, ws.gameMap, ws.colliders)
}

// IslandUnder returns the island below the pixel position, or -1
func (ws *WorldService) IslandUnder(x, y float64) int {
	return ws.gameMap.IslandAt(ws.gameMap.Col(x), ws.gameMap.Row(y))
}

// Snapshot copies the current map for archiving
func (ws *WorldService) Snapshot() *models.WorldSnapshot {
	return ws.gameMap.Snapshot(ws.seed)
}
