package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/christopherhurt/AmbiguousGame/config"
	"github.com/christopherhurt/AmbiguousGame/mapgen"
	"github.com/christopherhurt/AmbiguousGame/models"
	"github.com/christopherhurt/AmbiguousGame/persistence"
)

// glyphs used by the preview, objects drawn over terrain
var glyphs = map[int]byte{
	models.TileGrass:           '.',
	models.TileWater:           '~',
	models.TileTreeBottom:      'T',
	models.TileTreeTop:         '^',
	models.TileAppleTreeBottom: 'A',
	models.TileAppleTreeTop:    '^',
	models.TileYellowFlower:    'y',
	models.TileRedFlower:       'r',
	models.TileWhiteFlower:     'w',
	models.TileStump:           'o',
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults to $GAME_CONFIG)")
	seed := flag.Uint64("seed", 0, "world seed; 0 derives one from the clock")
	preview := flag.Bool("preview", true, "print an ASCII preview of the map")
	archiveName := flag.String("archive", "", "save the world under this name using the configured archive")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed == 0 {
		*seed = cfg.World.Seed
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	params, err := cfg.GenerationParams()
	if err != nil {
		log.Fatalf("Invalid generation parameters: %v", err)
	}
	world, err := mapgen.Generate(*seed, params)
	if err != nil {
		log.Fatalf("World generation failed: %v", err)
	}

	if *preview {
		render(os.Stdout, world.Map)
	}
	printStats(os.Stdout, world)

	if *archiveName != "" {
		ctx := context.Background()
		archive, err := persistence.Open(ctx, cfg.Archive)
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
		if archive == nil {
			log.Fatalf("archive.driver is %q; set it to file or postgres", cfg.Archive.Driver)
		}
		defer archive.Close()
		if err := archive.SaveWorld(ctx, *archiveName, world.Map.Snapshot(world.Seed)); err != nil {
			log.Fatalf("Failed to archive world: %v", err)
		}
		fmt.Printf("archived as %s\n", *archiveName)
	}
}

func render(w io.Writer, m *models.GameMap) {
	var sb strings.Builder
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			tile := m.GetTile(models.LayerObjects, col, row)
			if tile == models.TileEmpty {
				tile = m.GetTile(models.LayerTerrain, col, row)
			}
			g, ok := glyphs[tile]
			if !ok {
				g = '?'
			}
			sb.WriteByte(g)
		}
		sb.WriteByte('\n')
	}
	io.WriteString(w, sb.String())
}

func printStats(w io.Writer, world *mapgen.World) {
	total := world.Map.Cols * world.Map.Rows
	fmt.Fprintf(w, "seed:    %d\n", world.Seed)
	fmt.Fprintf(w, "size:    %dx%d tiles (%dx%d px)\n", world.Map.Cols, world.Map.Rows, world.Map.Width, world.Map.Height)
	fmt.Fprintf(w, "land:    %d (%.1f%%)\n", world.Stats.LandTiles, 100*float64(world.Stats.LandTiles)/float64(total))
	fmt.Fprintf(w, "islands: %d\n", world.Stats.Islands)
	for _, island := range world.Map.Islands {
		fmt.Fprintf(w, "  #%d: %d tiles\n", island.ID, len(island.Tiles))
	}
	fmt.Fprintf(w, "objects: %d\n", world.Stats.Objects)
	fmt.Fprintf(w, "elapsed: %s\n", world.Stats.Elapsed)
}
