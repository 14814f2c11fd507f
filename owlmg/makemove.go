package owlmg

// RawUndo is what UnmakeMoveUnchecked needs to revert one move. It is only
// valid for the move that produced it, on the same board, in LIFO order.
type RawUndo struct {
	hash        uint64
	dstCell     Cell
	castling    CastlingRights
	epSource    Square
	moveCounter uint16
}

// DstCell returns the cell that stood on the destination square before the
// move. For en passant this is NoCell.
func (u *RawUndo) DstCell() Cell { return u.dstCell }

func (b *Board) setCastling(cr CastlingRights) {
	b.hash ^= zobristCastling[b.r.Castling] ^ zobristCastling[cr]
	b.r.Castling = cr
}

func castlingSideOf(k MoveKind) CastlingSide {
	if k == MoveCastlingKingside {
		return Kingside
	}
	return Queenside
}

// MakeMoveUnchecked applies m, which must be NullMove or semilegal in b.
// Any other move corrupts the board.
func (b *Board) MakeMoveUnchecked(m Move) RawUndo {
	c := b.r.Side
	inv := c.Inv()
	src, dst := m.Src, m.Dst
	srcBB, dstBB := src.Bitboard(), dst.Bitboard()
	change := srcBB | dstBB
	pawn := MakeCell(c, Pawn)

	srcCell, dstCell := NoCell, NoCell
	if m.Kind != MoveNull {
		srcCell, dstCell = b.r.Squares[src], b.r.Squares[dst]
	}
	u := RawUndo{
		hash:        b.hash,
		dstCell:     dstCell,
		castling:    b.r.Castling,
		epSource:    b.r.EPSource,
		moveCounter: b.r.MoveCounter,
	}

	if b.r.EPSource != NoSquare {
		b.hash ^= zobristEnpassant[b.r.EPSource]
		b.r.EPSource = NoSquare
	}

	switch m.Kind {
	case MoveNull:
	case MoveSimple, MovePawnSimple:
		b.r.Squares[src] = NoCell
		b.r.Squares[dst] = srcCell
		b.hash ^= zobristCells[srcCell][src] ^ zobristCells[srcCell][dst] ^ zobristCells[dstCell][dst]
		b.colors[c] ^= change
		b.cells[srcCell] ^= change
		b.colors[inv] &^= dstBB
		b.cells[dstCell] &^= dstBB
		b.cells[NoCell] = EmptyBitboard
		if srcCell != pawn {
			b.setCastling(revokeCastling(b.r.Castling, change))
		}
	case MovePawnDouble:
		b.r.Squares[src] = NoCell
		b.r.Squares[dst] = pawn
		b.hash ^= zobristCells[pawn][src] ^ zobristCells[pawn][dst]
		b.colors[c] ^= change
		b.cells[pawn] ^= change
		b.r.EPSource = dst
		b.hash ^= zobristEnpassant[dst]
	case MoveEnpassant:
		taken := addDelta(dst, -PawnForwardDelta(c))
		theirPawn := MakeCell(inv, Pawn)
		b.r.Squares[src] = NoCell
		b.r.Squares[dst] = pawn
		b.r.Squares[taken] = NoCell
		b.hash ^= zobristCells[pawn][src] ^ zobristCells[pawn][dst] ^ zobristCells[theirPawn][taken]
		b.colors[c] ^= change
		b.cells[pawn] ^= change
		b.colors[inv] &^= taken.Bitboard()
		b.cells[theirPawn] &^= taken.Bitboard()
	case MovePromoteKnight, MovePromoteBishop, MovePromoteRook, MovePromoteQueen:
		p, _ := m.Kind.Promote()
		promoted := MakeCell(c, p)
		b.r.Squares[src] = NoCell
		b.r.Squares[dst] = promoted
		b.hash ^= zobristCells[pawn][src] ^ zobristCells[promoted][dst] ^ zobristCells[dstCell][dst]
		b.colors[c] ^= change
		b.cells[pawn] ^= srcBB
		b.cells[promoted] ^= dstBB
		b.colors[inv] &^= dstBB
		b.cells[dstCell] &^= dstBB
		b.cells[NoCell] = EmptyBitboard
		b.setCastling(revokeCastling(b.r.Castling, change))
	case MoveCastlingKingside, MoveCastlingQueenside:
		side := castlingSideOf(m.Kind)
		king, rook := MakeCell(c, King), MakeCell(c, Rook)
		ks, kd, rs, rd := castlingSquares(c, side)
		b.r.Squares[ks] = NoCell
		b.r.Squares[rs] = NoCell
		b.r.Squares[kd] = king
		b.r.Squares[rd] = rook
		b.colors[c] ^= castlingColorDelta(c, side)
		b.cells[king] ^= castlingKingDelta(c, side)
		b.cells[rook] ^= castlingRookDelta(c, side)
		b.hash ^= zobristCastlingDelta[c][side]
		b.setCastling(b.r.Castling.WithoutColor(c))
	}

	if dstCell != NoCell || srcCell == pawn {
		b.r.MoveCounter = 0
	} else {
		b.r.MoveCounter++
	}
	if c == Black {
		b.r.MoveNumber++
	}
	b.r.Side = inv
	b.hash ^= zobristMoveSide
	b.all = b.colors[White] | b.colors[Black]
	return u
}

// UnmakeMoveUnchecked reverts m using the undo record returned when m was
// made. The board returns to its exact previous state.
func (b *Board) UnmakeMoveUnchecked(m Move, u RawUndo) {
	c := b.r.Side.Inv()
	inv := b.r.Side
	src, dst := m.Src, m.Dst
	srcBB, dstBB := src.Bitboard(), dst.Bitboard()
	change := srcBB | dstBB
	pawn := MakeCell(c, Pawn)

	restoreCapture := func() {
		if u.dstCell != NoCell {
			b.r.Squares[dst] = u.dstCell
			b.colors[inv] |= dstBB
			b.cells[u.dstCell] |= dstBB
		}
	}

	switch m.Kind {
	case MoveNull:
	case MoveSimple, MovePawnSimple, MovePawnDouble:
		srcCell := b.r.Squares[dst]
		b.r.Squares[src] = srcCell
		b.r.Squares[dst] = NoCell
		b.colors[c] ^= change
		b.cells[srcCell] ^= change
		restoreCapture()
	case MoveEnpassant:
		taken := addDelta(dst, -PawnForwardDelta(c))
		theirPawn := MakeCell(inv, Pawn)
		b.r.Squares[src] = pawn
		b.r.Squares[dst] = NoCell
		b.r.Squares[taken] = theirPawn
		b.colors[c] ^= change
		b.cells[pawn] ^= change
		b.colors[inv] |= taken.Bitboard()
		b.cells[theirPawn] |= taken.Bitboard()
	case MovePromoteKnight, MovePromoteBishop, MovePromoteRook, MovePromoteQueen:
		promoted := b.r.Squares[dst]
		b.r.Squares[src] = pawn
		b.r.Squares[dst] = NoCell
		b.colors[c] ^= change
		b.cells[pawn] ^= srcBB
		b.cells[promoted] ^= dstBB
		restoreCapture()
	case MoveCastlingKingside, MoveCastlingQueenside:
		side := castlingSideOf(m.Kind)
		king, rook := MakeCell(c, King), MakeCell(c, Rook)
		ks, kd, rs, rd := castlingSquares(c, side)
		b.r.Squares[kd] = NoCell
		b.r.Squares[rd] = NoCell
		b.r.Squares[ks] = king
		b.r.Squares[rs] = rook
		b.colors[c] ^= castlingColorDelta(c, side)
		b.cells[king] ^= castlingKingDelta(c, side)
		b.cells[rook] ^= castlingRookDelta(c, side)
	}

	if c == Black {
		b.r.MoveNumber--
	}
	b.r.Side = c
	b.hash = u.hash
	b.r.Castling = u.castling
	b.r.EPSource = u.epSource
	b.r.MoveCounter = u.moveCounter
	b.all = b.colors[White] | b.colors[Black]
}

// TryMakeMoveUnchecked applies the semilegal move m if it does not leave the
// own king attacked. Otherwise the board is left unchanged and ok is false.
func (b *Board) TryMakeMoveUnchecked(m Move) (u RawUndo, ok bool) {
	u = b.MakeMoveUnchecked(m)
	if b.IsOpponentKingAttacked() {
		b.UnmakeMoveUnchecked(m, u)
		return RawUndo{}, false
	}
	return u, true
}

// MakeMove validates m and applies it.
func (b *Board) MakeMove(m Move) (RawUndo, error) {
	if err := m.Validate(b); err != nil {
		return RawUndo{}, err
	}
	return b.MakeMoveUnchecked(m), nil
}

// MakeUCIMove parses a legal move in UCI notation and applies it.
func (b *Board) MakeUCIMove(s string) (Move, RawUndo, error) {
	m, err := MoveFromUCILegal(s, b)
	if err != nil {
		return Move{}, RawUndo{}, err
	}
	return m, b.MakeMoveUnchecked(m), nil
}
