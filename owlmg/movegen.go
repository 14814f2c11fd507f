package owlmg

import "fmt"

// CheckKind classifies the number of pieces checking the side to move.
type CheckKind uint8

const (
	CheckNone CheckKind = iota
	CheckSingle
	CheckDouble
)

// GenMask selects move categories to generate.
type GenMask uint8

const (
	GenSimple GenMask = 1 << iota
	GenCapture
	GenSimplePromote
	GenCastling

	GenAllMoves             = GenSimple | GenCapture | GenSimplePromote | GenCastling
	GenSimpleMoves          = GenSimple | GenSimplePromote | GenCastling
	GenSimpleNoPromoteMoves = GenSimple | GenCastling
)

// pieceAttackers returns the pieces of color c attacking s, sliders seeing
// through the given occupancy. Only pieces in mask are considered.
func pieceAttackers(b *Board, s Square, c Color, all, mask Bitboard) Bitboard {
	near := (PawnAttacks(c.Inv(), s) & b.cells[MakeCell(c, Pawn)]) |
		(KingAttacks(s) & b.cells[MakeCell(c, King)]) |
		(KnightAttacks(s) & b.cells[MakeCell(c, Knight)])
	far := (BishopAttacks(s, all) & b.PieceDiag(c)) |
		(RookAttacks(s, all) & b.PieceLine(c))
	return (near | far) & mask
}

// SquareAttackers returns the pieces of color c attacking s.
func SquareAttackers(b *Board, s Square, c Color) Bitboard {
	return pieceAttackers(b, s, c, b.all, FullBitboard)
}

// IsSquareAttacked reports whether a piece of color c attacks s.
func IsSquareAttacked(b *Board, s Square, c Color) bool {
	return isSquareAttackedMasked(b, s, c, b.all, FullBitboard)
}

func isSquareAttackedMasked(b *Board, s Square, c Color, all, mask Bitboard) bool {
	near := (PawnAttacks(c.Inv(), s) & b.cells[MakeCell(c, Pawn)]) |
		(KingAttacks(s) & b.cells[MakeCell(c, King)]) |
		(KnightAttacks(s) & b.cells[MakeCell(c, Knight)])
	if near&mask != 0 {
		return true
	}
	if BishopAttacks(s, all)&b.PieceDiag(c)&mask != 0 {
		return true
	}
	return RookAttacks(s, all)&b.PieceLine(c)&mask != 0
}

// MoveGenCtx holds the check state of one position. It is tied to the
// position through its hash.
type MoveGenCtx struct {
	CheckMask Bitboard
	Check     CheckKind
	Hash      uint64
}

// NewMoveGenCtx classifies the check state of b.
func NewMoveGenCtx(b *Board) MoveGenCtx {
	ctx := MoveGenCtx{Hash: b.hash}
	c := b.r.Side
	king := b.KingPos(c)
	checkers := SquareAttackers(b, king, c.Inv())
	switch checkers.Len() {
	case 0:
		ctx.CheckMask = FullBitboard
		ctx.Check = CheckNone
	case 1:
		ctx.CheckMask = Between(checkers.First(), king) | checkers
		ctx.Check = CheckSingle
	default:
		ctx.CheckMask = EmptyBitboard
		ctx.Check = CheckDouble
	}
	return ctx
}

// MoveGen enumerates semilegal moves. Moves that leave the own king attacked
// may still be produced; filter them with IsLegalUnchecked.
type MoveGen struct {
	b   *Board
	ctx MoveGenCtx
}

// NewMoveGen computes the check state of b and returns a generator for it.
func NewMoveGen(b *Board) MoveGen { return MoveGen{b: b, ctx: NewMoveGenCtx(b)} }

// NewMoveGenUnchecked reuses a context computed earlier for the same
// position. It panics if ctx belongs to a different position.
func NewMoveGenUnchecked(b *Board, ctx MoveGenCtx) MoveGen {
	if ctx.Hash != b.hash {
		panic(fmt.Sprintf("owlmg: move generation context for hash %x used on %x", ctx.Hash, b.hash))
	}
	return MoveGen{b: b, ctx: ctx}
}

// Ctx returns the check state, for reuse with NewMoveGenUnchecked.
func (g *MoveGen) Ctx() MoveGenCtx { return g.ctx }

// IsCheck reports whether the side to move is in check.
func (g *MoveGen) IsCheck() bool { return g.ctx.Check != CheckNone }

// GenAll appends every semilegal move.
func (g *MoveGen) GenAll(l *MoveList) { g.Gen(GenAllMoves, l) }

// GenCapture appends captures, capture promotions and en passant.
func (g *MoveGen) GenCapture(l *MoveList) { g.Gen(GenCapture, l) }

// GenSimple appends non-captures, including push promotions and castling.
func (g *MoveGen) GenSimple(l *MoveList) { g.Gen(GenSimpleMoves, l) }

// GenSimpleNoPromote is GenSimple without promotions.
func (g *MoveGen) GenSimpleNoPromote(l *MoveList) { g.Gen(GenSimpleNoPromoteMoves, l) }

// GenSimplePromote appends push promotions only.
func (g *MoveGen) GenSimplePromote(l *MoveList) { g.Gen(GenSimplePromote, l) }

// Gen appends the moves of the requested categories to l.
func (g *MoveGen) Gen(mask GenMask, l *MoveList) {
	b := g.b
	c := b.r.Side
	own := b.colors[c]

	var dstMask Bitboard
	switch {
	case mask&GenSimple != 0 && mask&GenCapture != 0:
		dstMask = ^own
	case mask&GenSimple != 0:
		dstMask = ^b.all
	case mask&GenCapture != 0:
		dstMask = b.colors[c.Inv()]
	}

	if dstMask.NonEmpty() {
		g.genKing(c, dstMask, l)
		if g.ctx.Check != CheckDouble {
			pieceMask := dstMask & g.ctx.CheckMask
			g.genSliders(MakeCell(c, Queen), pieceMask, QueenAttacks, l)
			g.genSliders(MakeCell(c, Rook), pieceMask, RookAttacks, l)
			g.genSliders(MakeCell(c, Bishop), pieceMask, BishopAttacks, l)
			g.genKnights(c, pieceMask, l)
		}
	}
	if g.ctx.Check != CheckDouble {
		g.genPawns(c, mask, l)
	}
	if mask&GenCastling != 0 && g.ctx.Check == CheckNone {
		g.genCastling(c, l)
	}
}

func (g *MoveGen) genKing(c Color, dstMask Bitboard, l *MoveList) {
	src := g.b.KingPos(c)
	for dsts := KingAttacks(src) & dstMask; dsts != 0; {
		l.Push(Move{Kind: MoveSimple, Src: src, Dst: dsts.Pop()})
	}
}

func (g *MoveGen) genSliders(cell Cell, mask Bitboard, attacks func(Square, Bitboard) Bitboard, l *MoveList) {
	for srcs := g.b.cells[cell]; srcs != 0; {
		src := srcs.Pop()
		for dsts := attacks(src, g.b.all) & mask; dsts != 0; {
			l.Push(Move{Kind: MoveSimple, Src: src, Dst: dsts.Pop()})
		}
	}
}

func (g *MoveGen) genKnights(c Color, mask Bitboard, l *MoveList) {
	for srcs := g.b.cells[MakeCell(c, Knight)]; srcs != 0; {
		src := srcs.Pop()
		for dsts := KnightAttacks(src) & mask; dsts != 0; {
			l.Push(Move{Kind: MoveSimple, Src: src, Dst: dsts.Pop()})
		}
	}
}

func pushPromotes(src, dst Square, l *MoveList) {
	l.Push(Move{Kind: MovePromoteKnight, Src: src, Dst: dst})
	l.Push(Move{Kind: MovePromoteBishop, Src: src, Dst: dst})
	l.Push(Move{Kind: MovePromoteRook, Src: src, Dst: dst})
	l.Push(Move{Kind: MovePromoteQueen, Src: src, Dst: dst})
}

func (g *MoveGen) genPawns(c Color, mask GenMask, l *MoveList) {
	b := g.b
	pawns := b.cells[MakeCell(c, Pawn)]
	promoteSrc := RankBitboard(PromoteSrcRank(c))
	regular := pawns &^ promoteSrc
	promoting := pawns & promoteSrc
	fwd := PawnForwardDelta(c)
	empty := ^b.all
	checkMask := g.ctx.CheckMask

	if mask&GenSimple != 0 {
		single := AdvanceForward(c, regular) & empty
		for dsts := single & checkMask; dsts != 0; {
			dst := dsts.Pop()
			l.Push(Move{Kind: MovePawnSimple, Src: addDelta(dst, -fwd), Dst: dst})
		}
		double := AdvanceForward(c, single&RankBitboard(EPDstRank(c.Inv()))) & empty & checkMask
		for dsts := double; dsts != 0; {
			dst := dsts.Pop()
			l.Push(Move{Kind: MovePawnDouble, Src: addDelta(dst, -2*fwd), Dst: dst})
		}
	}
	if mask&GenSimplePromote != 0 {
		for dsts := AdvanceForward(c, promoting) & empty & checkMask; dsts != 0; {
			dst := dsts.Pop()
			pushPromotes(addDelta(dst, -fwd), dst, l)
		}
	}
	if mask&GenCapture != 0 {
		targets := b.colors[c.Inv()] & checkMask
		left, right := PawnLeftDelta(c), PawnRightDelta(c)
		for dsts := AdvanceLeft(c, regular) & targets; dsts != 0; {
			dst := dsts.Pop()
			l.Push(Move{Kind: MovePawnSimple, Src: addDelta(dst, -left), Dst: dst})
		}
		for dsts := AdvanceRight(c, regular) & targets; dsts != 0; {
			dst := dsts.Pop()
			l.Push(Move{Kind: MovePawnSimple, Src: addDelta(dst, -right), Dst: dst})
		}
		for dsts := AdvanceLeft(c, promoting) & targets; dsts != 0; {
			dst := dsts.Pop()
			pushPromotes(addDelta(dst, -left), dst, l)
		}
		for dsts := AdvanceRight(c, promoting) & targets; dsts != 0; {
			dst := dsts.Pop()
			pushPromotes(addDelta(dst, -right), dst, l)
		}

		// En passant ignores the check mask: the captured pawn may be the
		// checker without standing on the destination.
		if ep := b.r.EPSource; ep != NoSquare {
			dst := addDelta(ep, fwd)
			ourPawn := MakeCell(c, Pawn)
			if ep.File() != FileA && b.r.Squares[ep-1] == ourPawn {
				l.Push(Move{Kind: MoveEnpassant, Src: ep - 1, Dst: dst})
			}
			if ep.File() != FileH && b.r.Squares[ep+1] == ourPawn {
				l.Push(Move{Kind: MoveEnpassant, Src: ep + 1, Dst: dst})
			}
		}
	}
}

func (g *MoveGen) genCastling(c Color, l *MoveList) {
	b := g.b
	if !b.r.Castling.HasColor(c) {
		return
	}
	inv := c.Inv()
	if b.r.Castling.Has(c, Queenside) && b.all&castlingPass(c, Queenside) == 0 {
		ks, kd, _, _ := castlingSquares(c, Queenside)
		if !IsSquareAttacked(b, ks-1, inv) {
			l.Push(Move{Kind: MoveCastlingQueenside, Src: ks, Dst: kd})
		}
	}
	if b.r.Castling.Has(c, Kingside) && b.all&castlingPass(c, Kingside) == 0 {
		ks, kd, _, _ := castlingSquares(c, Kingside)
		if !IsSquareAttacked(b, ks+1, inv) {
			l.Push(Move{Kind: MoveCastlingKingside, Src: ks, Dst: kd})
		}
	}
}

// LegalMoves appends every legal move of b to l.
func (b *Board) LegalMoves(l *MoveList) {
	g := NewMoveGen(b)
	var pseudo MoveList
	g.GenAll(&pseudo)
	for _, m := range pseudo.Slice() {
		if m.IsLegalUnchecked(b) {
			l.Push(m)
		}
	}
}

// HasLegalMoves reports whether the side to move can move at all.
func (b *Board) HasLegalMoves() bool {
	var l MoveList
	g := NewMoveGen(b)
	g.GenAll(&l)
	for _, m := range l.Slice() {
		if m.IsLegalUnchecked(b) {
			return true
		}
	}
	return false
}
