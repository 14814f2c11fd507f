package owlmg

// File is a board column, FileA through FileH.
type File uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// Rank is a board row. Ranks are numbered top to bottom, so Rank8 has index 0
// and Rank1 has index 7.
type Rank uint8

const (
	Rank8 Rank = iota
	Rank7
	Rank6
	Rank5
	Rank4
	Rank3
	Rank2
	Rank1
)

// Byte returns the file letter, 'a' to 'h'.
func (f File) Byte() byte { return 'a' + byte(f) }

// Byte returns the rank digit, '1' to '8'.
func (r Rank) Byte() byte { return '8' - byte(r) }

func (f File) String() string { return string([]byte{f.Byte()}) }
func (r Rank) String() string { return string([]byte{r.Byte()}) }

// FileFromByte decodes 'a'..'h'.
func FileFromByte(c byte) (File, bool) {
	if c < 'a' || c > 'h' {
		return 0, false
	}
	return File(c - 'a'), true
}

// RankFromByte decodes '1'..'8'.
func RankFromByte(c byte) (Rank, bool) {
	if c < '1' || c > '8' {
		return 0, false
	}
	return Rank('8' - c), true
}

// Square is rank*8+file, so A8 is 0 and H1 is 63.
type Square uint8

// NoSquare marks an absent square (for example, no en passant).
const NoSquare Square = 64

const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

// NewSquare combines a file and a rank.
func NewSquare(f File, r Rank) Square { return Square(uint8(r)<<3 | uint8(f)) }

// File returns the column of s.
func (s Square) File() File { return File(s & 7) }

// Rank returns the row of s.
func (s Square) Rank() Rank { return Rank(s >> 3) }

// IsValid reports whether s is one of the 64 board squares.
func (s Square) IsValid() bool { return s < 64 }

// FlippedRank mirrors the square vertically (a8 <-> a1).
func (s Square) FlippedRank() Square { return s ^ 56 }

// FlippedFile mirrors the square horizontally (a8 <-> h8).
func (s Square) FlippedFile() Square { return s ^ 7 }

// Bitboard returns the set holding only s.
func (s Square) Bitboard() Bitboard { return Bitboard(1) << s }

func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return string([]byte{s.File().Byte(), s.Rank().Byte()})
}

// ParseSquare parses algebraic notation such as "e4".
func ParseSquare(str string) (Square, error) {
	if len(str) != 2 {
		return NoSquare, &ParseError{Kind: "square", Token: str, Err: ErrBadLength}
	}
	f, ok := FileFromByte(str[0])
	if !ok {
		return NoSquare, &ParseError{Kind: "square", Token: str, Err: ErrBadFileChar}
	}
	r, ok := RankFromByte(str[1])
	if !ok {
		return NoSquare, &ParseError{Kind: "square", Token: str, Err: ErrBadRankChar}
	}
	return NewSquare(f, r), nil
}

// Color is the side of a piece or the side to move.
type Color uint8

const (
	White Color = iota
	Black
)

// Inv returns the opposite color.
func (c Color) Inv() Color { return c ^ 1 }

// Byte returns the FEN side letter, 'w' or 'b'.
func (c Color) Byte() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

func (c Color) String() string { return string([]byte{c.Byte()}) }

// Name returns "white" or "black".
func (c Color) Name() string {
	if c == White {
		return "white"
	}
	return "black"
}

// ParseColor parses "w" or "b".
func ParseColor(str string) (Color, error) {
	if len(str) != 1 {
		return White, &ParseError{Kind: "color", Token: str, Err: ErrBadLength}
	}
	switch str[0] {
	case 'w':
		return White, nil
	case 'b':
		return Black, nil
	}
	return White, &ParseError{Kind: "color", Token: str, Err: ErrBadChar}
}

// Piece is a colorless piece kind.
type Piece uint8

const (
	Pawn Piece = iota
	King
	Knight
	Bishop
	Rook
	Queen
)

const PieceCount = 6

// Byte returns the lowercase FEN letter of the piece.
func (p Piece) Byte() byte { return "pknbrq"[p] }

func (p Piece) String() string { return string([]byte{p.Byte()}) }

// Cell is the content of one mailbox square: empty or a colored piece.
type Cell uint8

const (
	NoCell Cell = iota
	WhitePawn
	WhiteKing
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	BlackPawn
	BlackKing
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
)

const CellCount = 13

const cellChars = ".PKNBRQpknbrq"

// MakeCell combines a color and a piece.
func MakeCell(c Color, p Piece) Cell { return Cell(1 + 6*uint8(c) + uint8(p)) }

// Color returns the owner of the cell. It must not be called on NoCell.
func (c Cell) Color() Color {
	if c >= BlackPawn {
		return Black
	}
	return White
}

// Piece returns the piece kind. It must not be called on NoCell.
func (c Cell) Piece() Piece { return Piece((c - 1) % 6) }

// Is reports whether the cell holds a piece of color col.
func (c Cell) Is(col Color) bool { return c != NoCell && c.Color() == col }

// Byte returns the FEN letter of the cell, or '.' for NoCell.
func (c Cell) Byte() byte { return cellChars[c] }

func (c Cell) String() string { return string([]byte{c.Byte()}) }

// CellFromByte decodes a FEN letter or '.'.
func CellFromByte(b byte) (Cell, bool) {
	for i := 0; i < CellCount; i++ {
		if cellChars[i] == b {
			return Cell(i), true
		}
	}
	return NoCell, false
}

// ParseCell parses a single cell character.
func ParseCell(str string) (Cell, error) {
	if len(str) != 1 {
		return NoCell, &ParseError{Kind: "cell", Token: str, Err: ErrBadLength}
	}
	c, ok := CellFromByte(str[0])
	if !ok {
		return NoCell, &ParseError{Kind: "cell", Token: str, Err: ErrBadChar}
	}
	return c, nil
}

// CastlingSide selects the queenside or kingside castle.
type CastlingSide uint8

const (
	Queenside CastlingSide = iota
	Kingside
)

// CastlingRights is a 4-bit set indexed by (color<<1)|side.
type CastlingRights uint8

const (
	NoCastling   CastlingRights = 0
	FullCastling CastlingRights = 15
)

func castlingBit(c Color, s CastlingSide) CastlingRights {
	return CastlingRights(1) << (uint8(c)<<1 | uint8(s))
}

// Has reports whether color c may still castle on side s.
func (cr CastlingRights) Has(c Color, s CastlingSide) bool { return cr&castlingBit(c, s) != 0 }

// HasColor reports whether color c holds any castling right.
func (cr CastlingRights) HasColor(c Color) bool { return cr&(3<<(uint8(c)<<1)) != 0 }

// With returns cr plus the right of c on side s.
func (cr CastlingRights) With(c Color, s CastlingSide) CastlingRights {
	return cr | castlingBit(c, s)
}

// Without returns cr minus the right of c on side s.
func (cr CastlingRights) Without(c Color, s CastlingSide) CastlingRights {
	return cr &^ castlingBit(c, s)
}

// WithoutColor drops both rights of color c.
func (cr CastlingRights) WithoutColor(c Color) CastlingRights {
	return cr &^ (3 << (uint8(c) << 1))
}

// Set adds a right in place.
func (cr *CastlingRights) Set(c Color, s CastlingSide) { *cr = cr.With(c, s) }

// Unset removes a right in place.
func (cr *CastlingRights) Unset(c Color, s CastlingSide) { *cr = cr.Without(c, s) }

func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	buf := make([]byte, 0, 4)
	if cr.Has(White, Kingside) {
		buf = append(buf, 'K')
	}
	if cr.Has(White, Queenside) {
		buf = append(buf, 'Q')
	}
	if cr.Has(Black, Kingside) {
		buf = append(buf, 'k')
	}
	if cr.Has(Black, Queenside) {
		buf = append(buf, 'q')
	}
	return string(buf)
}

// ParseCastlingRights parses "-" or a subset of "KQkq" in any order.
func ParseCastlingRights(str string) (CastlingRights, error) {
	if str == "" {
		return NoCastling, &ParseError{Kind: "castling", Token: str, Err: ErrEmpty}
	}
	if str == "-" {
		return NoCastling, nil
	}
	var res CastlingRights
	for i := 0; i < len(str); i++ {
		var bit CastlingRights
		switch str[i] {
		case 'K':
			bit = castlingBit(White, Kingside)
		case 'Q':
			bit = castlingBit(White, Queenside)
		case 'k':
			bit = castlingBit(Black, Kingside)
		case 'q':
			bit = castlingBit(Black, Queenside)
		default:
			return NoCastling, &ParseError{Kind: "castling", Token: str, Err: ErrBadChar}
		}
		if res&bit != 0 {
			return NoCastling, &ParseError{Kind: "castling", Token: str, Err: ErrDuplicateChar}
		}
		res |= bit
	}
	return res, nil
}
