package owlmg

import (
	"errors"
	"fmt"
)

// Text parsing errors.
var (
	ErrBadFileChar   = errors.New("bad file char")
	ErrBadRankChar   = errors.New("bad rank char")
	ErrBadLength     = errors.New("bad length")
	ErrBadChar       = errors.New("bad char")
	ErrDuplicateChar = errors.New("duplicate char")
	ErrEmpty         = errors.New("empty string")
	ErrBadPromote    = errors.New("bad promote char")
)

// FEN errors.
var (
	ErrNonASCII         = errors.New("non-ASCII data in FEN")
	ErrNoBoard          = errors.New("board not specified")
	ErrNoMoveSide       = errors.New("no move side")
	ErrNoCastling       = errors.New("no castling rights")
	ErrNoEnpassant      = errors.New("no enpassant")
	ErrBadEnpassantRank = errors.New("bad enpassant rank")
	ErrBadMoveCounter   = errors.New("bad move counter")
	ErrBadMoveNumber    = errors.New("bad move number")
	ErrExtraData        = errors.New("extra data in FEN")
	ErrRankOverflow     = errors.New("too many items in rank")
	ErrRankUnderflow    = errors.New("not enough items in rank")
	ErrTooManyRanks     = errors.New("too many ranks")
	ErrNotEnoughRanks   = errors.New("not enough ranks")
	ErrUnexpectedChar   = errors.New("unexpected char")
)

// Position validation errors.
var (
	ErrBadSide              = errors.New("bad move side")
	ErrBadCastling          = errors.New("bad castling rights")
	ErrBadCell              = errors.New("bad cell")
	ErrBadEnpassant         = errors.New("bad enpassant position")
	ErrTooManyPieces        = errors.New("too many pieces")
	ErrNoKing               = errors.New("no king")
	ErrTooManyKings         = errors.New("too many kings")
	ErrBadPawn              = errors.New("pawn on first or last rank")
	ErrOpponentKingAttacked = errors.New("opponent king is attacked")
)

// Move validation errors, ordered from cheapest to most expensive check.
var (
	ErrNotWellFormed = errors.New("move is not well-formed")
	ErrNotSemilegal  = errors.New("move is not semilegal")
	ErrNotLegal      = errors.New("move is not legal")
)

// ParseError reports a token that could not be parsed.
type ParseError struct {
	Kind  string // "square", "color", "cell", "castling", "uci move"
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s %q: %v", e.Kind, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FENError reports the FEN field that failed to parse.
type FENError struct {
	Field string
	Token string
	Err   error
}

func (e *FENError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid FEN: %v", e.Err)
	}
	return fmt.Sprintf("invalid FEN %s %q: %v", e.Field, e.Token, e.Err)
}

func (e *FENError) Unwrap() error { return e.Err }

// PositionError is returned when a RawBoard cannot become a Board.
type PositionError struct {
	Err    error
	Color  Color
	Square Square
}

func (e *PositionError) Error() string {
	switch e.Err {
	case ErrTooManyPieces, ErrNoKing, ErrTooManyKings:
		return fmt.Sprintf("invalid position: %v (%s)", e.Err, e.Color.Name())
	case ErrBadSide:
		return fmt.Sprintf("invalid position: %v (%d)", e.Err, e.Color)
	case ErrBadPawn, ErrBadEnpassant, ErrBadCell:
		if !e.Square.IsValid() {
			return fmt.Sprintf("invalid position: %v (square %d)", e.Err, e.Square)
		}
		return fmt.Sprintf("invalid position: %v (%s)", e.Err, e.Square)
	}
	return fmt.Sprintf("invalid position: %v", e.Err)
}

func (e *PositionError) Unwrap() error { return e.Err }

// MoveError wraps a move that failed validation.
type MoveError struct {
	Move Move
	Err  error
}

func (e *MoveError) Error() string { return fmt.Sprintf("move %s: %v", e.Move, e.Err) }

func (e *MoveError) Unwrap() error { return e.Err }
