package owlmg

// Rank helpers per color. White pawns move towards Rank8 (lower square
// indices), Black pawns towards Rank1.

// CastlingRank is the home rank of the king and rooks of color c.
func CastlingRank(c Color) Rank {
	if c == White {
		return Rank1
	}
	return Rank8
}

// DoubleMoveSrcRank is the rank a pawn of color c starts a double push from.
func DoubleMoveSrcRank(c Color) Rank {
	if c == White {
		return Rank2
	}
	return Rank7
}

// DoubleMoveDstRank is the rank a double push of color c lands on.
func DoubleMoveDstRank(c Color) Rank {
	if c == White {
		return Rank4
	}
	return Rank5
}

// PromoteSrcRank is the rank a pawn of color c promotes from.
func PromoteSrcRank(c Color) Rank {
	if c == White {
		return Rank7
	}
	return Rank2
}

// PromoteDstRank is the rank a pawn of color c promotes on.
func PromoteDstRank(c Color) Rank {
	if c == White {
		return Rank8
	}
	return Rank1
}

// EPSrcRank is the rank of a pawn that can be captured en passant when c is
// to move.
func EPSrcRank(c Color) Rank {
	if c == White {
		return Rank5
	}
	return Rank4
}

// EPDstRank is the rank where a pawn of color c lands after capturing en
// passant.
func EPDstRank(c Color) Rank {
	if c == White {
		return Rank6
	}
	return Rank3
}

// PawnForwardDelta is the square index change of a single push.
func PawnForwardDelta(c Color) int {
	if c == White {
		return -8
	}
	return 8
}

// PawnLeftDelta is the square index change of a capture towards file A.
func PawnLeftDelta(c Color) int {
	if c == White {
		return -9
	}
	return 7
}

// PawnRightDelta is the square index change of a capture towards file H.
func PawnRightDelta(c Color) int {
	if c == White {
		return -7
	}
	return 9
}

// AdvanceForward moves every pawn in b one step forward.
func AdvanceForward(c Color, b Bitboard) Bitboard {
	if c == White {
		return b >> 8
	}
	return b << 8
}

// AdvanceLeft moves every pawn in b one step diagonally towards file A.
func AdvanceLeft(c Color, b Bitboard) Bitboard {
	b &^= FileBitboard(FileA)
	if c == White {
		return b >> 9
	}
	return b << 7
}

// AdvanceRight moves every pawn in b one step diagonally towards file H.
func AdvanceRight(c Color, b Bitboard) Bitboard {
	b &^= FileBitboard(FileH)
	if c == White {
		return b >> 7
	}
	return b << 9
}

func addDelta(s Square, d int) Square { return Square(int(s) + d) }

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
