package mapgen

import "github.com/christopherhurt/AmbiguousGame/models"

// LabelIslands flood-fills 4-connected land regions in row-major discovery
// order. labels holds the island id per cell and -1 for water.
func LabelIslands(f *Field) (labels []int, islands []models.Island) {
	labels = make([]int, len(f.Land))
	for i := range labels {
		labels[i] = -1
	}

	queue := make([]models.Coord, 0, 64)
	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			if !f.At(col, row) || labels[row*f.Cols+col] != -1 {
				continue
			}

			island := models.Island{ID: len(islands)}
			labels[row*f.Cols+col] = island.ID
			queue = append(queue[:0], models.Coord{Col: col, Row: row})
			for len(queue) > 0 {
				c := queue[0]
				queue = queue[1:]
				island.Tiles = append(island.Tiles, c)

				for _, d := range [4][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}} {
					nc, nr := c.Col+d[0], c.Row+d[1]
					if !f.At(nc, nr) || labels[nr*f.Cols+nc] != -1 {
						continue
					}
					labels[nr*f.Cols+nc] = island.ID
					queue = append(queue, models.Coord{Col: nc, Row: nr})
				}
			}
			islands = append(islands, island)
		}
	}
	return labels, islands
}
