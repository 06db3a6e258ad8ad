package mapgen

import "math/rand/v2"

// Field is a square-or-rectangular land/water grid stored row-major
type Field struct {
	Cols, Rows int
	Land       []bool
}

// NewField allocates an all-water field
func NewField(cols, rows int) *Field {
	return &Field{Cols: cols, Rows: rows, Land: make([]bool, cols*rows)}
}

// At reports whether (col, row) is land. Out-of-bounds cells are water.
func (f *Field) At(col, row int) bool {
	if col < 0 || col >= f.Cols || row < 0 || row >= f.Rows {
		return false
	}
	return f.Land[row*f.Cols+col]
}

func (f *Field) Set(col, row int, land bool) {
	f.Land[row*f.Cols+col] = land
}

// LandCount returns the number of land cells
func (f *Field) LandCount() int {
	n := 0
	for _, l := range f.Land {
		if l {
			n++
		}
	}
	return n
}

// NewRand returns a deterministic generator for seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Seed draws a base×base field where every cell is independently land with
// probability landProb.
func Seed(rng *rand.Rand, base int, landProb float64) *Field {
	f := NewField(base, base)
	for i := range f.Land {
		f.Land[i] = rng.Float64() < landProb
	}
	return f
}
