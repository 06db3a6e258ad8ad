package mapgen

import (
	"math/rand/v2"

	"github.com/christopherhurt/AmbiguousGame/models"
)

// Companion is a tile placed at a fixed offset from its anchor
type Companion struct {
	DRow int
	DCol int
	Tile int
}

// PlacementRule is one decorative object kind with its spawn chance
type PlacementRule struct {
	Tile       int
	Prob       float64
	Companions []Companion
}

// Decorate rolls every rule, in order, on every land tile of terrain and
// writes accepted footprints into objects. A footprint is written only when
// the anchor and all of its companions are in bounds and unoccupied.
// It returns the number of anchors placed.
func Decorate(rng *rand.Rand, terrain *Field, objects []int, rules []PlacementRule) int {
	placed := 0
	for row := 0; row < terrain.Rows; row++ {
		for col := 0; col < terrain.Cols; col++ {
			if !terrain.At(col, row) {
				continue
			}
			for _, rule := range rules {
				if rng.Float64() >= rule.Prob {
					continue
				}
				if place(terrain.Cols, terrain.Rows, objects, col, row, rule) {
					placed++
				}
			}
		}
	}
	return placed
}

func place(cols, rows int, objects []int, col, row int, rule PlacementRule) bool {
	free := func(c, r int) bool {
		return c >= 0 && c < cols && r >= 0 && r < rows && objects[r*cols+c] == models.TileEmpty
	}

	if !free(col, row) {
		return false
	}
	for _, comp := range rule.Companions {
		if !free(col+comp.DCol, row+comp.DRow) {
			return false
		}
	}

	objects[row*cols+col] = rule.Tile
	for _, comp := range rule.Companions {
		objects[(row+comp.DRow)*cols+col+comp.DCol] = comp.Tile
	}
	return true
}
