package models

import (
	"fmt"
	"math"
)

// Layer indexes into GameMap.Layers
const (
	LayerTerrain = iota
	LayerObjects
	LayerCount
)

// Coord is a tile coordinate in the grid
type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Island is a maximal 4-connected region of land tiles
type Island struct {
	ID    int     `json:"id"`
	Tiles []Coord `json:"tiles"`
}

// GameMap represents the game world map
type GameMap struct {
	Cols    int      `json:"cols"`
	Rows    int      `json:"rows"`
	TSize   int      `json:"tsize"` // Source tile size in the tileset
	DSize   int      `json:"dsize"` // Display size of a tile in pixels
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Layers  [][]int  `json:"layers"` // Row-major tile ids, one slice per layer
	Islands []Island `json:"islands"`

	islandOf []int
}

// NewGameMap wraps generated layers and islands into a map
func NewGameMap(cols, rows, tsize, dsize int, layers [][]int, islands []Island) *GameMap {
	m := &GameMap{
		Cols:    cols,
		Rows:    rows,
		TSize:   tsize,
		DSize:   dsize,
		Width:   cols * dsize,
		Height:  rows * dsize,
		Layers:  layers,
		Islands: islands,
	}
	m.islandOf = make([]int, cols*rows)
	for i := range m.islandOf {
		m.islandOf[i] = -1
	}
	for _, island := range islands {
		for _, c := range island.Tiles {
			m.islandOf[c.Row*cols+c.Col] = island.ID
		}
	}
	return m
}

// InBounds reports whether layer/col/row addresses a tile
func (m *GameMap) InBounds(layer, col, row int) bool {
	return layer >= 0 && layer < len(m.Layers) &&
		col >= 0 && col < m.Cols &&
		row >= 0 && row < m.Rows
}

// GetTile returns the tile id at the given position
func (m *GameMap) GetTile(layer, col, row int) int {
	return m.Layers[layer][row*m.Cols+col]
}

// SetTile overwrites the tile id at the given position
func (m *GameMap) SetTile(layer, col, row, tile int) error {
	if !m.InBounds(layer, col, row) {
		return fmt.Errorf("tile %d/%d/%d outside %dx%dx%d grid", layer, col, row, len(m.Layers), m.Cols, m.Rows)
	}
	m.Layers[layer][row*m.Cols+col] = tile
	return nil
}

// IslandAt returns the island id of a tile, or -1 for water and out-of-range tiles
func (m *GameMap) IslandAt(col, row int) int {
	if col < 0 || col >= m.Cols || row < 0 || row >= m.Rows {
		return -1
	}
	return m.islandOf[row*m.Cols+col]
}

func (m *GameMap) Col(x float64) int { return floorDiv(x, m.DSize) }
func (m *GameMap) Row(y float64) int { return floorDiv(y, m.DSize) }
func (m *GameMap) X(col int) float64 { return float64(col * m.DSize) }
func (m *GameMap) Y(row int) float64 { return float64(row * m.DSize) }

// IsSolidAt reports whether any layer holds a solid tile under pixel (x, y).
// Positions outside the map are solid.
func (m *GameMap) IsSolidAt(x, y float64) bool {
	col, row := m.Col(x), m.Row(y)
	if col < 0 || col >= m.Cols || row < 0 || row >= m.Rows {
		return true
	}
	for layer := range m.Layers {
		if IsSolid(m.GetTile(layer, col, row)) {
			return true
		}
	}
	return false
}

// Snapshot copies the map into an archivable value
func (m *GameMap) Snapshot(seed uint64) *WorldSnapshot {
	layers := make([][]int, len(m.Layers))
	for i, l := range m.Layers {
		layers[i] = append([]int(nil), l...)
	}
	return &WorldSnapshot{
		Seed:    seed,
		Cols:    m.Cols,
		Rows:    m.Rows,
		TSize:   m.TSize,
		DSize:   m.DSize,
		Layers:  layers,
		Islands: m.Islands,
	}
}

// WorldSnapshot is a detached copy of a map used by the archive
type WorldSnapshot struct {
	Seed    uint64   `json:"seed"`
	Cols    int      `json:"cols"`
	Rows    int      `json:"rows"`
	TSize   int      `json:"tsize"`
	DSize   int      `json:"dsize"`
	Layers  [][]int  `json:"layers"`
	Islands []Island `json:"islands"`
}

func floorDiv(v float64, size int) int {
	return int(math.Floor(v / float64(size)))
}
