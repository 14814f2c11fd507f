package owlmg

// DiffListener receives the cell changes made by one move.
type DiffListener interface {
	Add(s Square, c Cell)
	Del(s Square, c Cell)
	Upd(s Square, old, new Cell)
}

// DiffFunc adapts a single update function to DiffListener. Add and Del are
// reported as updates from or to NoCell.
type DiffFunc func(s Square, old, new Cell)

func (f DiffFunc) Add(s Square, c Cell)        { f(s, NoCell, c) }
func (f DiffFunc) Del(s Square, c Cell)        { f(s, c, NoCell) }
func (f DiffFunc) Upd(s Square, old, new Cell) { f(s, old, new) }

// DiffAfterMove reports the changes of m, which has just been made on b and
// returned u. Each kind reports its changes in a fixed order.
func (b *Board) DiffAfterMove(m Move, u *RawUndo, l DiffListener) {
	c := b.r.Side.Inv()
	src, dst := m.Src, m.Dst
	switch m.Kind {
	case MoveNull:
	case MoveSimple, MovePawnSimple, MovePawnDouble:
		cell := b.r.Squares[dst]
		l.Del(src, cell)
		l.Upd(dst, u.dstCell, cell)
	case MovePromoteKnight, MovePromoteBishop, MovePromoteRook, MovePromoteQueen:
		l.Del(src, MakeCell(c, Pawn))
		l.Upd(dst, u.dstCell, b.r.Squares[dst])
	case MoveCastlingKingside, MoveCastlingQueenside:
		side := castlingSideOf(m.Kind)
		king, rook := MakeCell(c, King), MakeCell(c, Rook)
		ks, kd, rs, rd := castlingSquares(c, side)
		l.Del(ks, king)
		l.Add(rd, rook)
		l.Add(kd, king)
		l.Del(rs, rook)
	case MoveEnpassant:
		pawn := MakeCell(c, Pawn)
		l.Del(src, pawn)
		l.Del(addDelta(dst, -PawnForwardDelta(c)), MakeCell(c.Inv(), Pawn))
		l.Add(dst, pawn)
	}
}

// DiffItem is one recorded change.
type DiffItem struct {
	Square Square
	Old    Cell
	New    Cell
}

// Diff records the changes of a single move. It never holds more than four
// items.
type Diff struct {
	items [4]DiffItem
	n     int
}

// Add records a piece appearing on s.
func (d *Diff) Add(s Square, c Cell) { d.Upd(s, NoCell, c) }

// Del records a piece leaving s.
func (d *Diff) Del(s Square, c Cell) { d.Upd(s, c, NoCell) }

// Upd records a change of cell on s.
func (d *Diff) Upd(s Square, old, new Cell) {
	d.items[d.n] = DiffItem{Square: s, Old: old, New: new}
	d.n++
}

// Len returns the number of recorded changes.
func (d *Diff) Len() int { return d.n }

// Items returns the recorded changes in report order.
func (d *Diff) Items() []DiffItem { return d.items[:d.n] }

// Reset empties d so it can record the next move.
func (d *Diff) Reset() { d.n = 0 }

// Apply replays the recorded changes onto a mailbox.
func (d *Diff) Apply(squares *[64]Cell) {
	for _, it := range d.items[:d.n] {
		squares[it.Square] = it.New
	}
}
