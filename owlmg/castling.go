package owlmg

// Castling geometry. Masks are laid out for Black (rank 8, squares 0..7)
// and shifted by 56 for White.

func castlingOffset(c Color) uint {
	if c == White {
		return 56
	}
	return 0
}

// castlingColorDelta is XORed into the color occupancy when castling.
func castlingColorDelta(c Color, s CastlingSide) Bitboard {
	if s == Kingside {
		return 0xf0 << castlingOffset(c)
	}
	return 0x1d << castlingOffset(c)
}

func castlingRookDelta(c Color, s CastlingSide) Bitboard {
	if s == Kingside {
		return 0xa0 << castlingOffset(c)
	}
	return 0x09 << castlingOffset(c)
}

func castlingKingDelta(c Color, s CastlingSide) Bitboard {
	if s == Kingside {
		return 0x50 << castlingOffset(c)
	}
	return 0x14 << castlingOffset(c)
}

// castlingPass holds the squares between king and rook, which must be empty.
func castlingPass(c Color, s CastlingSide) Bitboard {
	if s == Kingside {
		return 0x60 << castlingOffset(c)
	}
	return 0x0e << castlingOffset(c)
}

// castlingSrcs holds the king and rook home squares of one right.
func castlingSrcs(c Color, s CastlingSide) Bitboard {
	if s == Kingside {
		return 0x90 << castlingOffset(c)
	}
	return 0x11 << castlingOffset(c)
}

const castlingAllSrcs Bitboard = 0x91 | 0x91<<56

// castlingSquares returns the king source, king destination, rook source
// and rook destination.
func castlingSquares(c Color, s CastlingSide) (kingSrc, kingDst, rookSrc, rookDst Square) {
	r := CastlingRank(c)
	if s == Kingside {
		return NewSquare(FileE, r), NewSquare(FileG, r), NewSquare(FileH, r), NewSquare(FileF, r)
	}
	return NewSquare(FileE, r), NewSquare(FileC, r), NewSquare(FileA, r), NewSquare(FileD, r)
}

// revokeCastling drops every right whose king or rook home square is in
// change.
func revokeCastling(cr CastlingRights, change Bitboard) CastlingRights {
	if change&castlingAllSrcs == 0 {
		return cr
	}
	for c := White; c <= Black; c++ {
		for s := Queenside; s <= Kingside; s++ {
			if change&castlingSrcs(c, s) != 0 {
				cr = cr.Without(c, s)
			}
		}
	}
	return cr
}
