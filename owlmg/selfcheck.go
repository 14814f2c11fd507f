package owlmg

import "fmt"

// SelfCheck recomputes the cache from the mailbox and reports the first
// mismatch. A board produced by NewBoard and mutated only through make and
// unmake always passes.
func (b *Board) SelfCheck() error {
	var colors [2]Bitboard
	var cells [CellCount]Bitboard
	for i, cell := range b.r.Squares {
		if cell >= CellCount {
			return fmt.Errorf("selfcheck: bad cell %d on %s", cell, Square(i))
		}
		if cell == NoCell {
			continue
		}
		colors[cell.Color()].Set(Square(i))
		cells[cell].Set(Square(i))
	}
	for c := White; c <= Black; c++ {
		if colors[c] != b.colors[c] {
			return fmt.Errorf("selfcheck: %s occupancy %s, want %s", c.Name(), b.colors[c], colors[c])
		}
	}
	for cell := Cell(0); cell < CellCount; cell++ {
		if cells[cell] != b.cells[cell] {
			return fmt.Errorf("selfcheck: cell %s bitboard %s, want %s", cell, b.cells[cell], cells[cell])
		}
	}
	if b.all != colors[White]|colors[Black] {
		return fmt.Errorf("selfcheck: total occupancy %s, want %s", b.all, colors[White]|colors[Black])
	}
	if h := b.r.ZobristHash(); h != b.hash {
		return fmt.Errorf("selfcheck: hash %x, want %x", b.hash, h)
	}
	for c := White; c <= Black; c++ {
		if n := b.cells[MakeCell(c, King)].Len(); n != 1 {
			return fmt.Errorf("selfcheck: %d %s kings", n, c.Name())
		}
	}
	if b.r.EPSource != NoSquare {
		ep := b.r.EPSource
		if !ep.IsValid() || ep.Rank() != EPSrcRank(b.r.Side) || b.r.Squares[ep] != MakeCell(b.r.Side.Inv(), Pawn) {
			return fmt.Errorf("selfcheck: stale en passant source %s", ep)
		}
	}
	for c := White; c <= Black; c++ {
		for s := Queenside; s <= Kingside; s++ {
			if !b.r.Castling.Has(c, s) {
				continue
			}
			ks, _, rs, _ := castlingSquares(c, s)
			if b.r.Squares[ks] != MakeCell(c, King) || b.r.Squares[rs] != MakeCell(c, Rook) {
				return fmt.Errorf("selfcheck: castling right %s without king and rook at home", b.r.Castling)
			}
		}
	}
	if b.IsOpponentKingAttacked() {
		return fmt.Errorf("selfcheck: %s king can be captured", b.r.Side.Inv().Name())
	}
	return nil
}
