package owlmg

// IsSemilegal reports whether m matches the moving piece and the current
// occupancy. It ignores whether the own king is left attacked.
func (m Move) IsSemilegal(b *Board) bool {
	if m.Kind == MoveNull || !m.IsWellFormed() {
		return false
	}
	c := b.r.Side
	src, dst := m.Src, m.Dst
	srcCell := b.r.Squares[src]

	if srcCell == MakeCell(c, Pawn) {
		if c == White && src <= dst || c == Black && src >= dst {
			return false
		}
		switch {
		case m.Kind == MovePawnDouble:
			mid := addDelta(src, PawnForwardDelta(c))
			return !b.all.Has(mid) && !b.all.Has(dst)
		case m.Kind == MoveEnpassant:
			ep := b.r.EPSource
			if ep == NoSquare || (ep != src+1 && ep != src-1) {
				return false
			}
			return dst == addDelta(ep, PawnForwardDelta(c))
		case m.Kind == MovePawnSimple || m.Kind.IsPromote():
			dstCell := b.r.Squares[dst]
			if dstCell != NoCell {
				return dstCell.Color() != c && src.File() != dst.File()
			}
			return src.File() == dst.File()
		}
		return false
	}

	if m.Kind.IsCastling() {
		return b.isCastlingSemilegal(c, castlingSideOf(m.Kind), src, dst)
	}
	if m.Kind == MoveSimple {
		if !srcCell.Is(c) || b.colors[c].Has(dst) {
			return false
		}
		switch srcCell.Piece() {
		case Bishop:
			return IsBishopLine(src, dst) && BishopBetween(src, dst)&b.all == 0
		case Rook:
			return IsRookLine(src, dst) && RookBetween(src, dst)&b.all == 0
		case Queen:
			return (IsBishopLine(src, dst) && BishopBetween(src, dst)&b.all == 0) ||
				(IsRookLine(src, dst) && RookBetween(src, dst)&b.all == 0)
		case Knight:
			return KnightAttacks(src).Has(dst)
		case King:
			return KingAttacks(src).Has(dst)
		}
		return false
	}
	return false
}

func (b *Board) isCastlingSemilegal(c Color, side CastlingSide, src, dst Square) bool {
	ks, kd, _, _ := castlingSquares(c, side)
	if src != ks || dst != kd || !b.r.Castling.Has(c, side) {
		return false
	}
	if b.all&castlingPass(c, side) != 0 {
		return false
	}
	transit := ks + 1
	if side == Queenside {
		transit = ks - 1
	}
	inv := c.Inv()
	return !IsSquareAttacked(b, ks, inv) && !IsSquareAttacked(b, transit, inv)
}

// IsLegalUnchecked reports whether the semilegal move m keeps the own king
// safe. The result is meaningless if m is not semilegal in b.
func (m Move) IsLegalUnchecked(b *Board) bool {
	c := b.r.Side
	inv := c.Inv()
	src, dst := m.Src, m.Dst
	if b.r.Squares[src] == MakeCell(c, King) {
		return !isSquareAttackedMasked(b, dst, inv, b.all^src.Bitboard(), FullBitboard)
	}

	king := b.KingPos(c)
	all := (b.all ^ src.Bitboard()) | dst.Bitboard()
	theirs := ^dst.Bitboard()
	if m.Kind == MoveEnpassant {
		taken := AdvanceForward(inv, dst.Bitboard())
		all ^= taken
		theirs ^= taken
	}
	return !isSquareAttackedMasked(b, king, inv, all, theirs)
}

// IsLegal runs the full check chain: well-formed, semilegal and legal.
func (m Move) IsLegal(b *Board) bool { return m.Validate(b) == nil }

// Validate reports the first failed check of m in b as a *MoveError
// wrapping ErrNotWellFormed, ErrNotSemilegal or ErrNotLegal.
func (m Move) Validate(b *Board) error {
	if !m.IsWellFormed() {
		return &MoveError{Move: m, Err: ErrNotWellFormed}
	}
	if !m.IsSemilegal(b) {
		return &MoveError{Move: m, Err: ErrNotSemilegal}
	}
	if !m.IsLegalUnchecked(b) {
		return &MoveError{Move: m, Err: ErrNotLegal}
	}
	return nil
}
