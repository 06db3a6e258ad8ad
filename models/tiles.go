package models

// Tile ids are 1-based indexes into the tileset; 0 is an empty tile
const (
	TileEmpty = iota
	TileGrass
	TileWater
	TileTreeBottom
	TileTreeTop
	TileAppleTreeBottom
	TileAppleTreeTop
	TileYellowFlower
	TileRedFlower
	TileWhiteFlower
	TileStump
)

// TileNames maps configuration names to tile ids
var TileNames = map[string]int{
	"empty":             TileEmpty,
	"land":              TileGrass,
	"grass":             TileGrass,
	"water":             TileWater,
	"tree_bottom":       TileTreeBottom,
	"tree_top":          TileTreeTop,
	"apple_tree_bottom": TileAppleTreeBottom,
	"apple_tree_top":    TileAppleTreeTop,
	"yellow_flower":     TileYellowFlower,
	"red_flower":        TileRedFlower,
	"white_flower":      TileWhiteFlower,
	"stump":             TileStump,
}

// solid lists tile ids players cannot occupy
var solid = map[int]bool{
	TileWater:           true,
	TileTreeBottom:      true,
	TileAppleTreeBottom: true,
	TileStump:           true,
}

// IsSolid reports whether a tile id blocks movement
func IsSolid(tile int) bool {
	return solid[tile]
}

// TileByName resolves a configured tile name
func TileByName(name string) (int, bool) {
	id, ok := TileNames[name]
	return id, ok
}
