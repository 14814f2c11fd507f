package owlmg

// MoveKind tags the shape of a move.
type MoveKind uint8

const (
	MoveNull MoveKind = iota
	MoveSimple
	MoveCastlingKingside
	MoveCastlingQueenside
	MovePawnSimple
	MovePawnDouble
	MoveEnpassant
	MovePromoteKnight
	MovePromoteBishop
	MovePromoteRook
	MovePromoteQueen
)

const moveKindCount = 11

// Promote returns the piece a promotion turns into.
func (k MoveKind) Promote() (Piece, bool) {
	switch k {
	case MovePromoteKnight:
		return Knight, true
	case MovePromoteBishop:
		return Bishop, true
	case MovePromoteRook:
		return Rook, true
	case MovePromoteQueen:
		return Queen, true
	}
	return Pawn, false
}

// IsPromote reports whether k is one of the four promotions.
func (k MoveKind) IsPromote() bool { return k >= MovePromoteKnight && k <= MovePromoteQueen }

// IsCastling reports whether k castles on either side.
func (k MoveKind) IsCastling() bool {
	return k == MoveCastlingKingside || k == MoveCastlingQueenside
}

// IsPawn reports whether only a pawn can make a move of this kind.
func (k MoveKind) IsPawn() bool { return k >= MovePawnSimple }

func promoteKind(p Piece) (MoveKind, bool) {
	switch p {
	case Knight:
		return MovePromoteKnight, true
	case Bishop:
		return MovePromoteBishop, true
	case Rook:
		return MovePromoteRook, true
	case Queen:
		return MovePromoteQueen, true
	}
	return MoveNull, false
}

// Move is a board-independent move description.
type Move struct {
	Kind MoveKind
	Src  Square
	Dst  Square
}

// NullMove passes the turn.
var NullMove = Move{Kind: MoveNull, Src: A8, Dst: A8}

// NewMove builds a move and checks that it is well-formed.
func NewMove(kind MoveKind, src, dst Square) (Move, error) {
	m := Move{Kind: kind, Src: src, Dst: dst}
	if !m.IsWellFormed() {
		return Move{}, &MoveError{Move: m, Err: ErrNotWellFormed}
	}
	return m, nil
}

// IsWellFormed checks the move shape against chess geometry only.
func (m Move) IsWellFormed() bool {
	if !m.Src.IsValid() || !m.Dst.IsValid() || m.Kind >= moveKindCount {
		return false
	}
	if m.Kind == MoveNull {
		return m == NullMove
	}
	if m.Src == m.Dst {
		return false
	}
	sf, sr := int(m.Src.File()), m.Src.Rank()
	df, dr := int(m.Dst.File()), m.Dst.Rank()
	switch m.Kind {
	case MoveSimple:
		return true
	case MoveCastlingKingside:
		return (m.Src == E1 && m.Dst == G1) || (m.Src == E8 && m.Dst == G8)
	case MoveCastlingQueenside:
		return (m.Src == E1 && m.Dst == C1) || (m.Src == E8 && m.Dst == C8)
	case MovePawnSimple:
		return absDiff(sf, df) <= 1 &&
			sr != Rank1 && sr != Rank8 && dr != Rank1 && dr != Rank8 &&
			absDiff(int(sr), int(dr)) == 1
	case MovePawnDouble:
		return sf == df &&
			((sr == DoubleMoveSrcRank(White) && dr == DoubleMoveDstRank(White)) ||
				(sr == DoubleMoveSrcRank(Black) && dr == DoubleMoveDstRank(Black)))
	case MoveEnpassant:
		return absDiff(sf, df) == 1 &&
			((sr == EPSrcRank(White) && dr == EPDstRank(White)) ||
				(sr == EPSrcRank(Black) && dr == EPDstRank(Black)))
	default:
		return absDiff(sf, df) <= 1 &&
			((sr == PromoteSrcRank(White) && dr == PromoteDstRank(White)) ||
				(sr == PromoteSrcRank(Black) && dr == PromoteDstRank(Black)))
	}
}

// String returns UCI move text.
func (m Move) String() string {
	if m.Kind == MoveNull {
		return "0000"
	}
	buf := make([]byte, 0, 5)
	buf = append(buf, m.Src.File().Byte(), m.Src.Rank().Byte(), m.Dst.File().Byte(), m.Dst.Rank().Byte())
	if p, ok := m.Kind.Promote(); ok {
		buf = append(buf, p.Byte())
	}
	return string(buf)
}

// PackedMove is a 16-bit move: kind in bits 15..12, src in 11..6, dst in 5..0.
type PackedMove uint16

// Pack encodes m into 16 bits.
func (m Move) Pack() PackedMove {
	return PackedMove(uint16(m.Kind)<<12 | uint16(m.Src)<<6 | uint16(m.Dst))
}

// Unpack decodes p. The result is not checked for well-formedness.
func (p PackedMove) Unpack() Move {
	return Move{Kind: MoveKind(p >> 12), Src: Square(p >> 6 & 63), Dst: Square(p & 63)}
}

func parseUCISquares(s string) (src, dst Square, err error) {
	if len(s) != 4 && len(s) != 5 {
		return NoSquare, NoSquare, &ParseError{Kind: "uci move", Token: s, Err: ErrBadLength}
	}
	if src, err = ParseSquare(s[0:2]); err != nil {
		return NoSquare, NoSquare, &ParseError{Kind: "uci move", Token: s, Err: err}
	}
	if dst, err = ParseSquare(s[2:4]); err != nil {
		return NoSquare, NoSquare, &ParseError{Kind: "uci move", Token: s, Err: err}
	}
	return src, dst, nil
}

// MoveFromUCI interprets UCI text against b. The result is well-formed but
// may still be illegal in b.
func MoveFromUCI(s string, b *Board) (Move, error) {
	if s == "0000" {
		return NullMove, nil
	}
	src, dst, err := parseUCISquares(s)
	if err != nil {
		return Move{}, err
	}
	side := b.Side()
	cell := b.Get(src)
	if !cell.Is(side) {
		return Move{}, &MoveError{Move: Move{Kind: MoveSimple, Src: src, Dst: dst}, Err: ErrNotWellFormed}
	}

	var kind MoveKind
	switch {
	case len(s) == 5:
		p, ok := pieceFromPromoteByte(s[4])
		if !ok {
			return Move{}, &ParseError{Kind: "uci move", Token: s, Err: ErrBadPromote}
		}
		kind, _ = promoteKind(p)
	case cell.Piece() == Pawn:
		switch {
		case src.Rank() == DoubleMoveSrcRank(side) && dst.Rank() == DoubleMoveDstRank(side):
			kind = MovePawnDouble
		case src.File() != dst.File() && b.Get(dst) == NoCell:
			kind = MoveEnpassant
		default:
			kind = MovePawnSimple
		}
	case cell.Piece() == King && src.File() == FileE && src.Rank() == CastlingRank(side) &&
		dst.Rank() == CastlingRank(side) && dst.File() == FileG:
		kind = MoveCastlingKingside
	case cell.Piece() == King && src.File() == FileE && src.Rank() == CastlingRank(side) &&
		dst.Rank() == CastlingRank(side) && dst.File() == FileC:
		kind = MoveCastlingQueenside
	default:
		kind = MoveSimple
	}
	return NewMove(kind, src, dst)
}

// MoveFromUCILegal is MoveFromUCI that also requires the move to be legal.
func MoveFromUCILegal(s string, b *Board) (Move, error) {
	m, err := MoveFromUCI(s, b)
	if err != nil {
		return Move{}, err
	}
	if err := m.Validate(b); err != nil {
		return Move{}, err
	}
	return m, nil
}

func pieceFromPromoteByte(c byte) (Piece, bool) {
	switch c {
	case 'n':
		return Knight, true
	case 'b':
		return Bishop, true
	case 'r':
		return Rook, true
	case 'q':
		return Queen, true
	}
	return Pawn, false
}

// MoveList is a fixed-capacity move buffer. No position has more than 218
// legal moves.
type MoveList struct {
	moves [256]Move
	n     int
}

// Push appends m. The list must not be full.
func (l *MoveList) Push(m Move) { l.moves[l.n] = m; l.n++ }

// Len returns the number of moves in l.
func (l *MoveList) Len() int { return l.n }

// At returns the i-th move.
func (l *MoveList) At(i int) Move { return l.moves[i] }

// Clear empties l without releasing its storage.
func (l *MoveList) Clear() { l.n = 0 }

// Slice returns the moves of l. It aliases the list storage.
func (l *MoveList) Slice() []Move { return l.moves[:l.n] }
