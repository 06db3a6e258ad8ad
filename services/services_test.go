package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christopherhurt/AmbiguousGame/mapgen"
	"github.com/christopherhurt/AmbiguousGame/models"
)

// islandWorld is a 4x2 map with land on columns 0 and 2, two islands
func islandWorld() *mapgen.World {
	g, w := models.TileGrass, models.TileWater
	layers := [][]int{
		{g, w, g, w, g, w, g, w},
		make([]int, 8),
	}
	islands := []models.Island{
		{ID: 0, Tiles: []models.Coord{{Col: 0, Row: 0}, {Col: 0, Row: 1}}},
		{ID: 1, Tiles: []models.Coord{{Col: 2, Row: 0}, {Col: 2, Row: 1}}},
	}
	return &mapgen.World{Map: models.NewGameMap(4, 2, 16, 64, layers, islands), Seed: 5}
}

func TestSetTileBounds(t *testing.T) {
	ws := NewWorldService(islandWorld(), nil)

	require.NoError(t, ws.SetTile(models.LayerObjects, 3, 1, models.TileStump))
	assert.Equal(t, models.TileStump, ws.Map().GetTile(models.LayerObjects, 3, 1))

	for _, c := range [][3]int{{2, 0, 0}, {0, 4, 0}, {0, 0, 2}, {0, -1, 0}, {-1, 0, 0}} {
		err := ws.SetTile(c[0], c[1], c[2], 1)
		assert.ErrorIs(t, err, ErrOutOfBounds, "edit %v", c)
	}
}

func TestSetTileLastWriteWins(t *testing.T) {
	ws := NewWorldService(islandWorld(), nil)
	require.NoError(t, ws.SetTile(0, 1, 1, 7))
	require.NoError(t, ws.SetTile(0, 1, 1, 9))
	assert.Equal(t, 9, ws.Map().GetTile(0, 1, 1))
	assert.Equal(t, 9, ws.Snapshot().Layers[0][1*4+1])
}

func TestFindSpawnAfterEdits(t *testing.T) {
	ws := NewWorldService(islandWorld(), map[int]bool{models.TileStump: true})
	for col := 0; col < 4; col += 2 {
		for row := 0; row < 2; row++ {
			if col == 2 && row == 1 {
				continue
			}
			require.NoError(t, ws.SetTile(models.LayerObjects, col, row, models.TileStump))
		}
	}
	c, err := ws.FindSpawn()
	require.NoError(t, err)
	assert.Equal(t, models.Coord{Col: 2, Row: 1}, c)

	require.NoError(t, ws.SetTile(models.LayerTerrain, 2, 1, models.TileWater))
	_, err = ws.FindSpawn()
	assert.ErrorIs(t, err, mapgen.ErrNoValidSpawn)
}

func TestPlayerIdsAndNames(t *testing.T) {
	ps := NewPlayerService(nil)
	a := ps.Connect()
	b := ps.Connect()
	assert.Equal(t, 0, a.ID)
	assert.Equal(t, "London", a.Name)
	assert.Equal(t, 1, b.ID)
	assert.Equal(t, "Zion", b.Name)

	_, ok := ps.Remove(a.ID)
	assert.True(t, ok)
	c := ps.Connect()
	assert.Equal(t, 2, c.ID, "ids are never reused")
	assert.Equal(t, NameFor(len(names)), NameFor(0))
}

func TestRegisterAndSnapshot(t *testing.T) {
	ws := NewWorldService(islandWorld(), nil)
	ps := NewPlayerService(ws)
	p := ps.Connect()
	assert.Empty(t, ps.Snapshot(), "placeholders are not visible")

	_, err := ps.Move(p.ID, 1, 1, models.DirUp, true)
	assert.ErrorIs(t, err, ErrNotRegistered)

	registered, err := ps.Register(p.ID, models.Player{ID: 77, Name: "Mallory", X: 12, Y: 12, Width: 40, Height: 40,
		Attrs: map[string]json.RawMessage{"color": json.RawMessage(`"rgb(1, 2, 3)"`)}})
	require.NoError(t, err)
	assert.Equal(t, p.ID, registered.ID)
	assert.Equal(t, "London", registered.Name)
	assert.Equal(t, []int{0}, registered.VisitedIslands)

	snap := ps.Snapshot()
	require.Contains(t, snap, p.ID)
	assert.JSONEq(t, `"rgb(1, 2, 3)"`, string(snap[p.ID].Attrs["color"]))
	assert.Equal(t, []int{p.ID}, ps.ActiveIDs())

	// Snapshots are detached copies
	snap[p.ID].X = 999
	snap[p.ID].Attrs["color"] = json.RawMessage(`"red"`)
	current, _ := ps.GetPlayer(p.ID)
	assert.Equal(t, 12.0, current.X)
	assert.JSONEq(t, `"rgb(1, 2, 3)"`, string(current.Attrs["color"]))

	_, err = ps.Register(42, models.Player{})
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestMoveTracksIslands(t *testing.T) {
	ws := NewWorldService(islandWorld(), nil)
	ps := NewPlayerService(ws)
	p := ps.Connect()
	_, err := ps.Register(p.ID, models.Player{X: 0, Y: 0, Width: 40, Height: 40})
	require.NoError(t, err)

	// Centre over column 1 is water
	moved, err := ps.Move(p.ID, 80, 10, models.DirRight, true)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, moved.VisitedIslands)

	moved, err = ps.Move(p.ID, 140, 70, models.DirDown, false)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, moved.VisitedIslands)
	assert.True(t, moved.HasVisitedIsland(1))
	assert.Equal(t, models.DirDown, moved.Dir)
	assert.False(t, moved.Moving)

	// Revisits are not duplicated
	moved, err = ps.Move(p.ID, 0, 0, models.DirLeft, true)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, moved.VisitedIslands)

	_, err = ps.Move(99, 0, 0, models.DirUp, false)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}
