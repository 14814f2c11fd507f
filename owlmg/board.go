package owlmg

// FENStartPos is the standard initial position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// RawBoard is the canonical position: a mailbox plus game state. It is the
// only state callers build directly and the only state compared for
// equality.
type RawBoard struct {
	Squares     [64]Cell
	Side        Color
	Castling    CastlingRights
	EPSource    Square // pawn that just made a double move, or NoSquare
	MoveCounter uint16 // halfmove clock
	MoveNumber  uint16
}

// EmptyRawBoard returns a board without pieces, White to move.
func EmptyRawBoard() RawBoard {
	return RawBoard{Side: White, Castling: NoCastling, EPSource: NoSquare, MoveNumber: 1}
}

var startRank = [8]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StartRawBoard returns the standard initial position.
func StartRawBoard() RawBoard {
	r := EmptyRawBoard()
	r.Castling = FullCastling
	for f := FileA; f <= FileH; f++ {
		r.Put(NewSquare(f, Rank8), MakeCell(Black, startRank[f]))
		r.Put(NewSquare(f, Rank7), BlackPawn)
		r.Put(NewSquare(f, Rank2), WhitePawn)
		r.Put(NewSquare(f, Rank1), MakeCell(White, startRank[f]))
	}
	return r
}

// Get returns the cell on s.
func (r *RawBoard) Get(s Square) Cell { return r.Squares[s] }

// Put places c on s. Nothing is validated until NewBoard.
func (r *RawBoard) Put(s Square, c Cell) { r.Squares[s] = c }

// Get2 returns the cell on file f, rank rk.
func (r *RawBoard) Get2(f File, rk Rank) Cell { return r.Squares[NewSquare(f, rk)] }

// EPDest returns the square a pawn lands on when capturing en passant, or
// NoSquare.
func (r *RawBoard) EPDest() Square {
	if r.EPSource == NoSquare {
		return NoSquare
	}
	return NewSquare(r.EPSource.File(), EPDstRank(r.Side))
}

// Board is a validated RawBoard with a derived cache: hash, occupancy per
// color, one bitboard per cell and total occupancy. The cache always matches
// the mailbox. Board holds no pointers and may be copied freely.
type Board struct {
	r      RawBoard
	hash   uint64
	colors [2]Bitboard
	cells  [CellCount]Bitboard
	all    Bitboard
}

const badPawnSquares Bitboard = 0xff000000000000ff

// NewBoard validates raw and builds its cache. En passant and castling
// rights that do not match the mailbox are dropped rather than rejected.
func NewBoard(raw RawBoard) (Board, error) {
	if raw.Side > Black {
		return Board{}, &PositionError{Err: ErrBadSide, Color: raw.Side}
	}
	if raw.Castling > FullCastling {
		return Board{}, &PositionError{Err: ErrBadCastling}
	}
	for i, cell := range raw.Squares {
		if cell >= CellCount {
			return Board{}, &PositionError{Err: ErrBadCell, Square: Square(i)}
		}
	}

	if raw.EPSource != NoSquare {
		p := raw.EPSource
		if !p.IsValid() || p.Rank() != EPSrcRank(raw.Side) {
			return Board{}, &PositionError{Err: ErrBadEnpassant, Square: p}
		}
		path := addDelta(p, PawnForwardDelta(raw.Side))
		if raw.Get(p) != MakeCell(raw.Side.Inv(), Pawn) || raw.Get(path) != NoCell {
			raw.EPSource = NoSquare
		}
	}

	for c := White; c <= Black; c++ {
		rk := CastlingRank(c)
		if raw.Get2(FileE, rk) != MakeCell(c, King) {
			raw.Castling = raw.Castling.WithoutColor(c)
		}
		if raw.Get2(FileA, rk) != MakeCell(c, Rook) {
			raw.Castling.Unset(c, Queenside)
		}
		if raw.Get2(FileH, rk) != MakeCell(c, Rook) {
			raw.Castling.Unset(c, Kingside)
		}
	}

	var b Board
	b.r = raw
	for i, cell := range raw.Squares {
		if cell == NoCell {
			continue
		}
		s := Square(i)
		b.colors[cell.Color()].Set(s)
		b.cells[cell].Set(s)
	}
	b.all = b.colors[White] | b.colors[Black]

	for c := White; c <= Black; c++ {
		if b.colors[c].Len() > 16 {
			return Board{}, &PositionError{Err: ErrTooManyPieces, Color: c}
		}
	}
	for c := White; c <= Black; c++ {
		if b.cells[MakeCell(c, King)].IsEmpty() {
			return Board{}, &PositionError{Err: ErrNoKing, Color: c}
		}
	}
	for c := White; c <= Black; c++ {
		if b.cells[MakeCell(c, King)].Len() > 1 {
			return Board{}, &PositionError{Err: ErrTooManyKings, Color: c}
		}
	}
	if bad := (b.cells[WhitePawn] | b.cells[BlackPawn]) & badPawnSquares; bad != 0 {
		return Board{}, &PositionError{Err: ErrBadPawn, Square: bad.First()}
	}

	b.hash = b.r.ZobristHash()
	if b.IsOpponentKingAttacked() {
		return Board{}, &PositionError{Err: ErrOpponentKingAttacked}
	}
	return b, nil
}

// StartBoard returns the validated initial position.
func StartBoard() Board {
	b, err := NewBoard(StartRawBoard())
	if err != nil {
		panic(err)
	}
	return b
}

// Raw returns a copy of the canonical state.
func (b *Board) Raw() RawBoard { return b.r }

// Get returns the cell on s.
func (b *Board) Get(s Square) Cell { return b.r.Squares[s] }

// Get2 returns the cell on file f, rank r.
func (b *Board) Get2(f File, r Rank) Cell { return b.r.Squares[NewSquare(f, r)] }

// Side returns the side to move.
func (b *Board) Side() Color { return b.r.Side }

// Castling returns the castling rights left.
func (b *Board) Castling() CastlingRights { return b.r.Castling }

// EPSource returns the pawn that can be taken en passant, or NoSquare.
func (b *Board) EPSource() Square { return b.r.EPSource }

// EPDest returns the en passant target square, or NoSquare.
func (b *Board) EPDest() Square { return b.r.EPDest() }

// MoveCounter returns the halfmove clock.
func (b *Board) MoveCounter() uint16 { return b.r.MoveCounter }

// MoveNumber returns the fullmove number.
func (b *Board) MoveNumber() uint16 { return b.r.MoveNumber }

// Hash returns the incrementally maintained Zobrist hash.
func (b *Board) Hash() uint64 { return b.hash }

// Color returns the pieces of color c.
func (b *Board) Color(c Color) Bitboard { return b.colors[c] }

// Cells returns the squares holding cell c.
func (b *Board) Cells(c Cell) Bitboard { return b.cells[c] }

// Pieces returns the pieces of kind p and color c.
func (b *Board) Pieces(c Color, p Piece) Bitboard { return b.cells[MakeCell(c, p)] }

// All returns every occupied square.
func (b *Board) All() Bitboard { return b.all }

// PieceDiag returns the bishops and queens of color c.
func (b *Board) PieceDiag(c Color) Bitboard {
	return b.cells[MakeCell(c, Bishop)] | b.cells[MakeCell(c, Queen)]
}

// PieceLine returns the rooks and queens of color c.
func (b *Board) PieceLine(c Color) Bitboard {
	return b.cells[MakeCell(c, Rook)] | b.cells[MakeCell(c, Queen)]
}

// KingPos returns the square of the king of color c.
func (b *Board) KingPos(c Color) Square { return b.cells[MakeCell(c, King)].First() }

// Checkers returns the pieces giving check to the side to move.
func (b *Board) Checkers() Bitboard {
	c := b.r.Side
	return SquareAttackers(b, b.KingPos(c), c.Inv())
}

// IsCheck reports whether the side to move is in check.
func (b *Board) IsCheck() bool {
	c := b.r.Side
	return IsSquareAttacked(b, b.KingPos(c), c.Inv())
}

// IsOpponentKingAttacked reports whether the side to move could capture the
// enemy king. Such a position cannot arise from legal play.
func (b *Board) IsOpponentKingAttacked() bool {
	c := b.r.Side
	return IsSquareAttacked(b, b.KingPos(c.Inv()), c)
}

// Equal compares the canonical state only; the cache is derived from it.
func (b *Board) Equal(o *Board) bool { return b.r == o.r }

func (b *Board) String() string { return b.r.String() }
