package models

import (
	"encoding/json"
	"errors"
)

// Direction is the facing of a player
type Direction int

const (
	DirUp Direction = iota
	DirLeft
	DirRight
	DirDown
)

// Valid reports whether d is one of the four cardinal values
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirDown
}

// Player is the server's record of one connected player. ID, Name and
// VisitedIslands belong to the server; the movement fields are overwritten by
// playerMoved. Everything else the client sent is kept in Attrs and relayed
// as it arrived.
type Player struct {
	ID             int
	Name           string
	X              float64
	Y              float64
	Dir            Direction
	Moving         bool
	VisitedIslands []int

	// Collision box size, read from the client's width/height when numeric
	Width  float64
	Height float64

	Attrs map[string]json.RawMessage
}

// serverKeys are written from the typed fields and never taken from Attrs
var serverKeys = []string{"id", "name", "x", "y", "dir", "moving", "visitedIslands"}

// MarshalJSON emits the client's attributes with the server-owned fields on top
func (p Player) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Attrs)+len(serverKeys))
	for k, v := range p.Attrs {
		out[k] = v
	}
	visited := p.VisitedIslands
	if visited == nil {
		visited = []int{}
	}
	out["id"] = p.ID
	out["name"] = p.Name
	out["x"] = p.X
	out["y"] = p.Y
	out["dir"] = p.Dir
	out["moving"] = p.Moving
	out["visitedIslands"] = visited
	return json.Marshal(out)
}

// UnmarshalJSON accepts any JSON object. Known fields are read when they have
// the expected type; the rest of the object is kept verbatim in Attrs.
func (p *Player) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errors.New("player must be a JSON object")
	}

	*p = Player{Dir: DirDown}
	readField(fields, "id", &p.ID)
	readField(fields, "name", &p.Name)
	readField(fields, "x", &p.X)
	readField(fields, "y", &p.Y)
	readField(fields, "moving", &p.Moving)
	readField(fields, "visitedIslands", &p.VisitedIslands)
	var dir Direction
	if readField(fields, "dir", &dir) && dir.Valid() {
		p.Dir = dir
	}
	readField(fields, "width", &p.Width)
	readField(fields, "height", &p.Height)

	for _, k := range serverKeys {
		delete(fields, k)
	}
	p.Attrs = fields
	return nil
}

// readField decodes fields[key] into dst and reports whether it succeeded
func readField(fields map[string]json.RawMessage, key string, dst interface{}) bool {
	raw, ok := fields[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// Center returns the pixel centre of the player's box
func (p *Player) Center() (float64, float64) {
	return p.X + p.Width/2, p.Y + p.Height/2
}

// MarkIslandVisited records an island once
func (p *Player) MarkIslandVisited(island int) bool {
	if p.HasVisitedIsland(island) {
		return false
	}
	p.VisitedIslands = append(p.VisitedIslands, island)
	return true
}

func (p *Player) HasVisitedIsland(island int) bool {
	for _, id := range p.VisitedIslands {
		if id == island {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices or maps with p
func (p *Player) Clone() *Player {
	c := *p
	c.VisitedIslands = append([]int(nil), p.VisitedIslands...)
	if p.Attrs != nil {
		c.Attrs = make(map[string]json.RawMessage, len(p.Attrs))
		for k, v := range p.Attrs {
			c.Attrs[k] = v
		}
	}
	return &c
}
