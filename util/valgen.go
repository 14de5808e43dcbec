// Some helpers using closures to generate operand values
package valgen

import "math/rand"

// Edges are the operand values where multiply and divide results most often
// go wrong.
var Edges = []uint32{
	0x00000000,
	0x00000001,
	0x00000002,
	0x7fffffff,
	0x80000000,
	0x80000001,
	0xfffffffe,
	0xffffffff,
}

func MakeIncreasingGen(start uint32) func() uint32 {
	current := start
	return func() uint32 {
		current++
		return current
	}
}

// MakeRandomGen draws uniformly over all 32-bit patterns.
func MakeRandomGen(rng *rand.Rand) func() uint32 {
	return func() uint32 {
		return rng.Uint32()
	}
}

// MakeEdgeGen mixes edge values, small magnitudes and uniform patterns in
// roughly equal shares.
func MakeEdgeGen(rng *rand.Rand) func() uint32 {
	return func() uint32 {
		switch rng.Intn(3) {
		case 0:
			return Edges[rng.Intn(len(Edges))]
		case 1:
			v := uint32(rng.Intn(256))
			if rng.Intn(2) == 0 {
				v = -v
			}
			return v
		default:
			return rng.Uint32()
		}
	}
}
