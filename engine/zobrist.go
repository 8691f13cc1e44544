// zobrist.go holds the magic numbers used to fingerprint positions.
// https://research.cs.wisc.edu/techreports/1970/TR88.pdf

package engine

import "math/rand"

var (
	zobristPiece     [PieceArraySize][SquareArraySize]uint64
	zobristEnpassant [SquareArraySize]uint64 // indexed by pawn square, not target square
	zobristCastle    [CastleArraySize]uint64
	zobristColor     [ColorArraySize]uint64
)

// fill64 draws n consecutive 64-bit values from r into dst, which must
// have length n; every Zobrist table below is just a different-sized
// instance of this same draw.
func fill64(r *rand.Rand, dst []uint64) {
	for i := range dst {
		dst[i] = uint64(r.Int63())<<32 ^ uint64(r.Int63())
	}
}

func init() {
	r := rand.New(rand.NewSource(1))

	flat := make([]uint64, PieceArraySize*SquareArraySize)
	fill64(r, flat)
	for pc := 0; pc < PieceArraySize; pc++ {
		copy(zobristPiece[pc][:], flat[pc*SquareArraySize:(pc+1)*SquareArraySize])
	}

	fill64(r, zobristEnpassant[:])
	fill64(r, zobristCastle[:])
	fill64(r, zobristColor[:])
}
