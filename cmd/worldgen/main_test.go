package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/christopherhurt/AmbiguousGame/models"
)

func TestRenderDrawsObjectsOverTerrain(t *testing.T) {
	layers := [][]int{
		{models.TileWater, models.TileGrass, models.TileGrass, models.TileGrass},
		{models.TileEmpty, models.TileTreeTop, models.TileEmpty, models.TileTreeBottom},
	}
	m := models.NewGameMap(2, 2, 16, 64, layers, nil)

	var buf bytes.Buffer
	render(&buf, m)
	assert.Equal(t, "~^\n.T\n", buf.String())
}
