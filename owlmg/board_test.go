package owlmg

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// boardDiff compares two boards field by field, cache included.
func boardDiff(want, got Board) string {
	return cmp.Diff(want, got, cmp.AllowUnexported(Board{}))
}

func mustBoard(t *testing.T, fen string) Board {
	t.Helper()
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func TestStartPosition(t *testing.T) {
	raw := StartRawBoard()
	if got := raw.String(); got != FENStartPos {
		t.Fatalf("StartRawBoard: got %q want %q", got, FENStartPos)
	}
	b := StartBoard()
	if got := b.FEN(); got != FENStartPos {
		t.Fatalf("StartBoard: got %q", got)
	}
	parsed, err := ParseRawBoard(FENStartPos)
	if err != nil || parsed != raw {
		t.Fatalf("ParseRawBoard(start): %v", err)
	}
	if diff := boardDiff(b, mustBoard(t, FENStartPos)); diff != "" {
		t.Fatalf("parsed start board differs (-want +got):\n%s", diff)
	}
	if err := b.SelfCheck(); err != nil {
		t.Fatal(err)
	}
}

func TestMidgame(t *testing.T) {
	const fen = "1rq1r1k1/1p3ppp/pB3n2/3ppP2/Pbb1P3/1PN2B2/2P2QPP/R1R4K w - - 1 21"
	b := mustBoard(t, fen)
	if got := b.FEN(); got != fen {
		t.Fatalf("round trip: got %q", got)
	}
	if b.Get2(FileB, Rank4) != BlackBishop || b.Get2(FileF, Rank2) != WhiteQueen {
		t.Fatalf("pieces misplaced")
	}
	if b.KingPos(White) != H1 || b.KingPos(Black) != G8 {
		t.Fatalf("kings: got %v %v", b.KingPos(White), b.KingPos(Black))
	}
	if b.Side() != White || b.Castling() != NoCastling || b.EPSource() != NoSquare {
		t.Fatalf("game state: side %v castling %v ep %v", b.Side(), b.Castling(), b.EPSource())
	}
	if b.MoveCounter() != 1 || b.MoveNumber() != 21 {
		t.Fatalf("counters: got %d %d", b.MoveCounter(), b.MoveNumber())
	}
}

func TestFixesOnValidate(t *testing.T) {
	const fen = "r1bq1b1r/ppppkppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK1R1 w KQkq c6 6 5"
	raw, err := ParseRawBoard(fen)
	if err != nil {
		t.Fatal(err)
	}
	if raw.Castling != FullCastling || raw.EPSource != C5 || raw.EPDest() != C6 {
		t.Fatalf("raw board: castling %v ep %v", raw.Castling, raw.EPSource)
	}
	if got := raw.String(); got != fen {
		t.Fatalf("raw round trip: got %q", got)
	}
	b, err := NewBoard(raw)
	if err != nil {
		t.Fatal(err)
	}
	if b.Castling() != NoCastling.With(White, Queenside) {
		t.Fatalf("castling: got %v want Q", b.Castling())
	}
	if b.EPSource() != NoSquare || b.EPDest() != NoSquare {
		t.Fatalf("en passant not cleared: %v", b.EPSource())
	}
	const want = "r1bq1b1r/ppppkppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK1R1 w Q - 6 5"
	if got := b.FEN(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestIncompleteFEN(t *testing.T) {
	const board = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"
	for in, want := range map[string]error{
		board:             ErrNoMoveSide,
		board + " w":      ErrNoCastling,
		board + " w KQkq": ErrNoEnpassant,
		"":                ErrNoBoard,
	} {
		if _, err := ParseRawBoard(in); !errors.Is(err, want) {
			t.Fatalf("ParseRawBoard(%q): got %v want %v", in, err, want)
		}
	}
	raw, err := ParseRawBoard(board + " w KQkq -")
	if err != nil || raw.MoveCounter != 0 || raw.MoveNumber != 1 {
		t.Fatalf("defaults: got %d %d, %v", raw.MoveCounter, raw.MoveNumber, err)
	}
	raw, err = ParseRawBoard(board + " w KQkq - 10")
	if err != nil || raw.MoveCounter != 10 || raw.MoveNumber != 1 {
		t.Fatalf("halfmove only: got %d %d, %v", raw.MoveCounter, raw.MoveNumber, err)
	}
}

func TestBadFEN(t *testing.T) {
	cases := []struct {
		fen  string
		want error
	}{
		{"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrUnexpectedChar},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNRR w KQkq - 0 1", ErrRankOverflow},
		{"rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrRankUnderflow},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR/8 w KQkq - 0 1", ErrTooManyRanks},
		{"rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrNotEnoughRanks},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1", ErrUnexpectedChar},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", ErrBadChar},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkk - 0 1", ErrDuplicateChar},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1", ErrBadRankChar},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1", ErrBadEnpassantRank},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1", ErrBadMoveCounter},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 -1", ErrBadMoveNumber},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 extra", ErrExtraData},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR  w KQkq - 0 1", ErrBadLength},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1é", ErrNonASCII},
	}
	for _, tc := range cases {
		_, err := ParseRawBoard(tc.fen)
		if !errors.Is(err, tc.want) {
			t.Fatalf("ParseRawBoard(%q): got %v want %v", tc.fen, err, tc.want)
		}
		var fe *FENError
		if !errors.As(err, &fe) {
			t.Fatalf("ParseRawBoard(%q): %T is not a *FENError", tc.fen, err)
		}
	}
}

func TestInvalidPositions(t *testing.T) {
	cases := []struct {
		fen   string
		want  error
		color Color
	}{
		{"4k3/8/8/8/8/8/8/8 w - - 0 1", ErrNoKing, White},
		{"8/8/8/8/8/8/8/4K3 w - - 0 1", ErrNoKing, Black},
		{"4k3/8/8/8/8/8/8/3KK3 w - - 0 1", ErrTooManyKings, White},
		{"3kk3/8/8/8/8/8/8/4K3 w - - 0 1", ErrTooManyKings, Black},
		{"4k3/8/8/8/8/Q7/QQQQQQQQ/QQQQKQQQ w - - 0 1", ErrTooManyPieces, White},
		{"4k3/8/8/8/8/8/8/4K2P w - - 0 1", ErrBadPawn, White},
		{"4k3/8/8/8/8/8/4R3/4K3 w - - 0 1", ErrOpponentKingAttacked, White},
	}
	for _, tc := range cases {
		_, err := ParseFEN(tc.fen)
		if !errors.Is(err, tc.want) {
			t.Fatalf("ParseFEN(%q): got %v want %v", tc.fen, err, tc.want)
		}
		var pe *PositionError
		if !errors.As(err, &pe) {
			t.Fatalf("ParseFEN(%q): %T is not a *PositionError", tc.fen, err)
		}
		if (tc.want == ErrNoKing || tc.want == ErrTooManyKings || tc.want == ErrTooManyPieces) && pe.Color != tc.color {
			t.Fatalf("ParseFEN(%q): color %v want %v", tc.fen, pe.Color, tc.color)
		}
		if tc.want == ErrBadPawn && pe.Square != H1 {
			t.Fatalf("ParseFEN(%q): square %v want h1", tc.fen, pe.Square)
		}
	}

	raw := StartRawBoard()
	raw.EPSource = E4
	if _, err := NewBoard(raw); !errors.Is(err, ErrBadEnpassant) {
		t.Fatalf("en passant source on the wrong rank: got %v", err)
	}
}

func TestNewBoardRejectsOutOfRangeRaw(t *testing.T) {
	cases := []struct {
		name   string
		modify func(r *RawBoard)
		want   error
		msg    string
	}{
		{"castling", func(r *RawBoard) { r.Castling = 0x30 }, ErrBadCastling, "invalid position: bad castling rights"},
		{"cell", func(r *RawBoard) { r.Squares[A3] = Cell(20) }, ErrBadCell, "invalid position: bad cell (a3)"},
		{"side", func(r *RawBoard) { r.Side = 2 }, ErrBadSide, "invalid position: bad move side (2)"},
		{"enpassant", func(r *RawBoard) { r.EPSource = 70 }, ErrBadEnpassant, "invalid position: bad enpassant position (square 70)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := StartRawBoard()
			tc.modify(&raw)
			_, err := NewBoard(raw)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v want %v", err, tc.want)
			}
			var pe *PositionError
			if !errors.As(err, &pe) {
				t.Fatalf("%T is not a *PositionError", err)
			}
			if err.Error() != tc.msg {
				t.Fatalf("message: got %q want %q", err.Error(), tc.msg)
			}
		})
	}
}

func TestEnpassantKeptWhenConsistent(t *testing.T) {
	const fen = "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"
	b := mustBoard(t, fen)
	if b.EPSource() != E5 || b.EPDest() != E6 {
		t.Fatalf("en passant: got src %v dst %v", b.EPSource(), b.EPDest())
	}
	if got := b.FEN(); got != fen {
		t.Fatalf("round trip: got %q", got)
	}
}

func TestBoardEqualIgnoresCache(t *testing.T) {
	a := StartBoard()
	b := StartBoard()
	if !a.Equal(&b) {
		t.Fatalf("identical boards differ")
	}
	b.r.MoveNumber++
	if a.Equal(&b) {
		t.Fatalf("boards with different move numbers are equal")
	}
}

func TestHashMatchesRecompute(t *testing.T) {
	for _, fen := range []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
	} {
		b := mustBoard(t, fen)
		raw := b.Raw()
		if b.Hash() != raw.ZobristHash() {
			t.Fatalf("%s: hash %x want %x", fen, b.Hash(), raw.ZobristHash())
		}
	}
	w := mustBoard(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	bl := mustBoard(t, "4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	if w.Hash()^bl.Hash() != zobristMoveSide {
		t.Fatalf("side to move must toggle exactly the move side key")
	}
}
