package mapgen

// Smooth runs passes of Moore-neighbourhood majority smoothing. A cell becomes
// land with more than four land neighbours, water with fewer than four, and
// keeps its value on a tie. Out-of-bounds neighbours count as water.
func Smooth(f *Field, passes int) *Field {
	cur := &Field{Cols: f.Cols, Rows: f.Rows, Land: append([]bool(nil), f.Land...)}
	nxt := NewField(f.Cols, f.Rows)
	for p := 0; p < passes; p++ {
		for row := 0; row < cur.Rows; row++ {
			for col := 0; col < cur.Cols; col++ {
				n := landNeighbors(cur, col, row)
				switch {
				case n > 4:
					nxt.Set(col, row, true)
				case n < 4:
					nxt.Set(col, row, false)
				default:
					nxt.Set(col, row, cur.At(col, row))
				}
			}
		}
		cur, nxt = nxt, cur
	}
	return cur
}

func landNeighbors(f *Field, col, row int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dc == 0 && dr == 0 {
				continue
			}
			if f.At(col+dc, row+dr) {
				n++
			}
		}
	}
	return n
}
