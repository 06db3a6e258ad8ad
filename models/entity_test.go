package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerKeepsClientFields(t *testing.T) {
	var p Player
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 9, "name": "Eve", "x": 5, "y": 6, "width": 40, "height": "tall",
		"sprite": "knight", "color": "rgb(1, 2, 3)", "maxX": 100, "visitedIslands": [4]
	}`), &p))

	assert.Equal(t, 5.0, p.X)
	assert.Equal(t, 40.0, p.Width)
	assert.Equal(t, 0.0, p.Height, "non-numeric sizes are not used for collision")
	assert.Equal(t, DirDown, p.Dir)
	assert.NotContains(t, p.Attrs, "id")
	assert.NotContains(t, p.Attrs, "visitedIslands")
	assert.Contains(t, p.Attrs, "height")

	p.ID, p.Name, p.VisitedIslands = 2, "Murphy", nil
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 2, "name": "Murphy", "x": 5, "y": 6, "dir": 3, "moving": false, "visitedIslands": [],
		"width": 40, "height": "tall", "sprite": "knight", "color": "rgb(1, 2, 3)", "maxX": 100
	}`, string(data))
}

func TestPlayerDirection(t *testing.T) {
	var p Player
	require.NoError(t, json.Unmarshal([]byte(`{"dir": 1}`), &p))
	assert.Equal(t, DirLeft, p.Dir)

	require.NoError(t, json.Unmarshal([]byte(`{"dir": 9}`), &p))
	assert.Equal(t, DirDown, p.Dir)

	assert.Error(t, json.Unmarshal([]byte(`null`), &p))
	assert.Error(t, json.Unmarshal([]byte(`"bob"`), &p))
}

func TestPlayerCloneIsDetached(t *testing.T) {
	p := &Player{VisitedIslands: []int{1}, Attrs: map[string]json.RawMessage{"color": json.RawMessage(`"red"`)}}
	c := p.Clone()
	c.MarkIslandVisited(2)
	c.Attrs["color"] = json.RawMessage(`"blue"`)

	assert.Equal(t, []int{1}, p.VisitedIslands)
	assert.JSONEq(t, `"red"`, string(p.Attrs["color"]))
	assert.True(t, c.HasVisitedIsland(2))
}
