package mapgen

import (
	"errors"
	"math/rand/v2"

	"github.com/christopherhurt/AmbiguousGame/models"
)

// ErrNoValidSpawn is returned when no tile can host a player
var ErrNoValidSpawn = errors.New("no valid spawn tile")

// FindSpawn picks uniformly among tiles whose terrain is land, that hold no
// collider object on any layer and that are not solid.
func FindSpawn(rng *rand.Rand, m *models.GameMap, colliders map[int]bool) (models.Coord, error) {
	var candidates []models.Coord
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			if canSpawn(m, colliders, col, row) {
				candidates = append(candidates, models.Coord{Col: col, Row: row})
			}
		}
	}
	if len(candidates) == 0 {
		return models.Coord{}, ErrNoValidSpawn
	}
	return candidates[rng.IntN(len(candidates))], nil
}

func canSpawn(m *models.GameMap, colliders map[int]bool, col, row int) bool {
	if m.GetTile(models.LayerTerrain, col, row) != models.TileGrass {
		return false
	}
	for layer := range m.Layers {
		tile := m.GetTile(layer, col, row)
		if colliders[tile] || models.IsSolid(tile) {
			return false
		}
	}
	return true
}
