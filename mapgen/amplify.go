package mapgen

import (
	"math"
	"math/rand/v2"
)

// Amplify doubles the field resolution iterations times. Each cell becomes a
// 2×2 block copied from its parent; sub-cells whose surrounding parents
// disagree are re-rolled against the local land fraction, blended with fresh
// noise that shrinks by decay every pass.
func Amplify(rng *rand.Rand, f *Field, iterations int, noise, decay float64) *Field {
	for i := 0; i < iterations; i++ {
		f = amplifyOnce(rng, f, noise*math.Pow(decay, float64(i)))
	}
	return f
}

func amplifyOnce(rng *rand.Rand, src *Field, noise float64) *Field {
	dst := NewField(src.Cols*2, src.Rows*2)
	for row := 0; row < dst.Rows; row++ {
		for col := 0; col < dst.Cols; col++ {
			pc, pr := col/2, row/2
			// Neighbouring parents toward this sub-cell's quadrant
			dc, dr := -1, -1
			if col%2 == 1 {
				dc = 1
			}
			if row%2 == 1 {
				dr = 1
			}

			parent := src.At(pc, pr)
			weight := 0
			if parent {
				weight += 2
			}
			for _, n := range [3]bool{src.At(pc+dc, pr), src.At(pc, pr+dr), src.At(pc+dc, pr+dr)} {
				if n {
					weight++
				}
			}

			switch weight {
			case 0, 5:
				dst.Set(col, row, parent)
			default:
				frac := float64(weight) / 5
				p := (1-noise)*frac + noise*0.5
				dst.Set(col, row, rng.Float64() < p)
			}
		}
	}
	return dst
}
