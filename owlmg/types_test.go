package owlmg

import (
	"errors"
	"testing"
)

func TestSquareIndexing(t *testing.T) {
	if A8 != 0 || H8 != 7 || A1 != 56 || H1 != 63 {
		t.Fatalf("unexpected corner indices: a8=%d h8=%d a1=%d h1=%d", A8, H8, A1, H1)
	}
	for s := Square(0); s < 64; s++ {
		if got := NewSquare(s.File(), s.Rank()); got != s {
			t.Fatalf("NewSquare(File, Rank) of %d: got %d", s, got)
		}
		parsed, err := ParseSquare(s.String())
		if err != nil || parsed != s {
			t.Fatalf("ParseSquare(%q): got %v, %v want %v", s.String(), parsed, err, s)
		}
	}
	if E4.String() != "e4" {
		t.Fatalf("E4.String(): got %q", E4.String())
	}
	if E2.FlippedRank() != E7 || A8.FlippedFile() != H8 {
		t.Fatalf("flips are wrong")
	}
}

func TestParseSquareErrors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"", ErrBadLength},
		{"e44", ErrBadLength},
		{"i4", ErrBadFileChar},
		{"E4", ErrBadFileChar},
		{"e9", ErrBadRankChar},
		{"e0", ErrBadRankChar},
	}
	for _, tc := range cases {
		_, err := ParseSquare(tc.in)
		if !errors.Is(err, tc.want) {
			t.Fatalf("ParseSquare(%q): got %v want %v", tc.in, err, tc.want)
		}
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Token != tc.in {
			t.Fatalf("ParseSquare(%q): error %v does not carry the token", tc.in, err)
		}
	}
}

func TestColor(t *testing.T) {
	if White.Inv() != Black || Black.Inv() != White {
		t.Fatalf("Inv is not an involution")
	}
	for _, tc := range []struct {
		in   string
		want Color
		err  error
	}{
		{"w", White, nil},
		{"b", Black, nil},
		{"x", White, ErrBadChar},
		{"wb", White, ErrBadLength},
		{"", White, ErrBadLength},
	} {
		got, err := ParseColor(tc.in)
		if !errors.Is(err, tc.err) || (err == nil && got != tc.want) {
			t.Fatalf("ParseColor(%q): got %v, %v want %v, %v", tc.in, got, err, tc.want, tc.err)
		}
	}
}

func TestCell(t *testing.T) {
	for c := White; c <= Black; c++ {
		for p := Pawn; p <= Queen; p++ {
			cell := MakeCell(c, p)
			if cell.Color() != c || cell.Piece() != p {
				t.Fatalf("MakeCell(%v, %v) = %v decodes as %v %v", c, p, cell, cell.Color(), cell.Piece())
			}
		}
	}
	if MakeCell(White, Pawn) != WhitePawn || MakeCell(Black, Queen) != BlackQueen {
		t.Fatalf("cell numbering changed")
	}
	for i := 0; i < CellCount; i++ {
		cell := Cell(i)
		got, err := ParseCell(cell.String())
		if err != nil || got != cell {
			t.Fatalf("ParseCell(%q): got %v, %v", cell.String(), got, err)
		}
	}
	if _, err := ParseCell("x"); !errors.Is(err, ErrBadChar) {
		t.Fatalf("ParseCell(x): got %v", err)
	}
	if _, err := ParseCell("PP"); !errors.Is(err, ErrBadLength) {
		t.Fatalf("ParseCell(PP): got %v", err)
	}
}

func TestCastlingRights(t *testing.T) {
	if FullCastling.String() != "KQkq" || NoCastling.String() != "-" {
		t.Fatalf("got %q and %q", FullCastling.String(), NoCastling.String())
	}
	cr := NoCastling.With(White, Queenside).With(Black, Kingside)
	if cr.String() != "Qk" {
		t.Fatalf("got %q want Qk", cr.String())
	}
	if cr.WithoutColor(White).String() != "k" {
		t.Fatalf("WithoutColor(White): got %q", cr.WithoutColor(White).String())
	}
	for _, s := range []string{"-", "K", "Qq", "KQkq", "kq"} {
		got, err := ParseCastlingRights(s)
		if err != nil || got.String() != s {
			t.Fatalf("ParseCastlingRights(%q): got %v, %v", s, got, err)
		}
	}
	if got, _ := ParseCastlingRights("qkQK"); got != FullCastling {
		t.Fatalf("order must not matter: got %v", got)
	}
	for in, want := range map[string]error{
		"":     ErrEmpty,
		"KK":   ErrDuplicateChar,
		"KX":   ErrBadChar,
		"K-":   ErrBadChar,
		"KQk ": ErrBadChar,
	} {
		if _, err := ParseCastlingRights(in); !errors.Is(err, want) {
			t.Fatalf("ParseCastlingRights(%q): got %v want %v", in, err, want)
		}
	}
}
