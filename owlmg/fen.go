package owlmg

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRawBoard parses a FEN string without validating the position. The
// halfmove clock and fullmove number may be omitted and default to 0 and 1.
func ParseRawBoard(fen string) (RawBoard, error) {
	for i := 0; i < len(fen); i++ {
		if fen[i] >= 0x80 {
			return RawBoard{}, &FENError{Err: ErrNonASCII}
		}
	}
	if fen == "" {
		return RawBoard{}, &FENError{Err: ErrNoBoard}
	}
	fields := strings.Split(fen, " ")
	r := EmptyRawBoard()

	squares, err := parseSquares(fields[0])
	if err != nil {
		return RawBoard{}, err
	}
	r.Squares = squares

	if len(fields) < 2 {
		return RawBoard{}, &FENError{Err: ErrNoMoveSide}
	}
	if r.Side, err = ParseColor(fields[1]); err != nil {
		return RawBoard{}, &FENError{Field: "move side", Token: fields[1], Err: err}
	}

	if len(fields) < 3 {
		return RawBoard{}, &FENError{Err: ErrNoCastling}
	}
	if r.Castling, err = ParseCastlingRights(fields[2]); err != nil {
		return RawBoard{}, &FENError{Field: "castling", Token: fields[2], Err: err}
	}

	if len(fields) < 4 {
		return RawBoard{}, &FENError{Err: ErrNoEnpassant}
	}
	if r.EPSource, err = parseEPSource(fields[3], r.Side); err != nil {
		return RawBoard{}, err
	}

	if len(fields) >= 5 {
		n, err := strconv.ParseUint(fields[4], 10, 16)
		if err != nil {
			return RawBoard{}, &FENError{Field: "move counter", Token: fields[4], Err: ErrBadMoveCounter}
		}
		r.MoveCounter = uint16(n)
	}
	if len(fields) >= 6 {
		n, err := strconv.ParseUint(fields[5], 10, 16)
		if err != nil {
			return RawBoard{}, &FENError{Field: "move number", Token: fields[5], Err: ErrBadMoveNumber}
		}
		r.MoveNumber = uint16(n)
	}
	if len(fields) > 6 {
		return RawBoard{}, &FENError{Field: "trailer", Token: strings.Join(fields[6:], " "), Err: ErrExtraData}
	}
	return r, nil
}

func parseSquares(s string) ([64]Cell, error) {
	var squares [64]Cell
	fail := func(err error, r int) ([64]Cell, error) {
		tok := s
		if r >= 0 {
			tok = Rank(r).String()
		}
		return [64]Cell{}, &FENError{Field: "board", Token: tok, Err: err}
	}
	file, rank, pos := 0, 0, 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= '1' && ch <= '8':
			add := int(ch - '0')
			if file+add > 8 {
				return fail(ErrRankOverflow, rank)
			}
			file += add
			pos += add
		case ch == '/':
			if file < 8 {
				return fail(ErrRankUnderflow, rank)
			}
			rank++
			file = 0
			if rank >= 8 {
				return fail(ErrTooManyRanks, -1)
			}
		default:
			if file >= 8 {
				return fail(ErrRankOverflow, rank)
			}
			cell, ok := CellFromByte(ch)
			if !ok || cell == NoCell {
				return [64]Cell{}, &FENError{Field: "board", Token: string([]byte{ch}), Err: ErrUnexpectedChar}
			}
			squares[pos] = cell
			file++
			pos++
		}
	}
	if file < 8 {
		return fail(ErrRankUnderflow, rank)
	}
	if rank < 7 {
		return fail(ErrNotEnoughRanks, -1)
	}
	return squares, nil
}

// parseEPSource converts the FEN en passant target into the square of the
// pawn that made the double move.
func parseEPSource(s string, side Color) (Square, error) {
	if s == "-" {
		return NoSquare, nil
	}
	ep, err := ParseSquare(s)
	if err != nil {
		return NoSquare, &FENError{Field: "enpassant", Token: s, Err: err}
	}
	if ep.Rank() != EPDstRank(side) {
		return NoSquare, &FENError{Field: "enpassant", Token: s, Err: ErrBadEnpassantRank}
	}
	return NewSquare(ep.File(), EPSrcRank(side)), nil
}

// String formats r as FEN.
func (r *RawBoard) String() string {
	var sb strings.Builder
	sb.Grow(90)
	for rk := Rank8; rk <= Rank1; rk++ {
		if rk != Rank8 {
			sb.WriteByte('/')
		}
		empty := 0
		for f := FileA; f <= FileH; f++ {
			cell := r.Get2(f, rk)
			if cell == NoCell {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(cell.Byte())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	fmt.Fprintf(&sb, " %s %s %s %d %d", r.Side, r.Castling, r.EPDest(), r.MoveCounter, r.MoveNumber)
	return sb.String()
}

// FEN is an alias for String.
func (r *RawBoard) FEN() string { return r.String() }

// FEN formats the position as FEN.
func (b *Board) FEN() string { return b.r.FEN() }

// ParseFEN parses and validates a position.
func ParseFEN(fen string) (Board, error) {
	raw, err := ParseRawBoard(fen)
	if err != nil {
		return Board{}, err
	}
	return NewBoard(raw)
}

// MustParseFEN is ParseFEN that panics on error.
func MustParseFEN(fen string) Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}
