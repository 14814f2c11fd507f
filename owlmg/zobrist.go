package owlmg

import "math/rand"

var (
	zobristCells     [CellCount][64]uint64 // row NoCell stays zero
	zobristEnpassant [64]uint64            // keyed by the en passant source square
	zobristCastling  [16]uint64
	zobristMoveSide  uint64 // toggled in only when White is to move

	// zobristCastlingDelta covers the king and rook movement of a castle.
	zobristCastlingDelta [2][2]uint64
)

func init() {
	r := rand.New(rand.NewSource(0xC0DE))
	for c := Cell(1); c < CellCount; c++ {
		for s := 0; s < 64; s++ {
			zobristCells[c][s] = r.Uint64()
		}
	}
	for s := 0; s < 64; s++ {
		zobristEnpassant[s] = r.Uint64()
	}
	for i := range zobristCastling {
		zobristCastling[i] = r.Uint64()
	}
	zobristMoveSide = r.Uint64()

	for c := White; c <= Black; c++ {
		king := MakeCell(c, King)
		rook := MakeCell(c, Rook)
		for side := Queenside; side <= Kingside; side++ {
			ks, kd, rs, rd := castlingSquares(c, side)
			zobristCastlingDelta[c][side] = zobristCells[king][ks] ^ zobristCells[king][kd] ^
				zobristCells[rook][rs] ^ zobristCells[rook][rd]
		}
	}
}

// ZobristHash computes the hash of r from scratch. Every field of r must be in
// range, as NewBoard checks.
func (r *RawBoard) ZobristHash() uint64 {
	var h uint64
	if r.Side == White {
		h ^= zobristMoveSide
	}
	if r.EPSource != NoSquare {
		h ^= zobristEnpassant[r.EPSource]
	}
	h ^= zobristCastling[r.Castling]
	for s, c := range r.Squares {
		h ^= zobristCells[c][s]
	}
	return h
}
