package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func runUCI(t *testing.T, input string) []string {
	t.Helper()
	var out bytes.Buffer
	if err := uciLoop(strings.NewReader(input), &out); err != nil {
		t.Fatalf("uciLoop: %v", err)
	}
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestUCIHandshake(t *testing.T) {
	got := runUCI(t, "uci\nisready\nquit\nisready\n")
	want := []string{"id name owlboard", "id author owlboard authors", "uciok", "readyok"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestUCIPositionMoves(t *testing.T) {
	got := runUCI(t, "position startpos moves e2e4 e7e5 g1f3\nd\n")
	if got[0] != "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2" {
		t.Fatalf("got %q", got[0])
	}

	got = runUCI(t, "position fen 4k3/8/8/8/8/8/8/4R1K1 b - - 0 1\nd\n")
	want := []string{"4k3/8/8/8/8/8/8/4R1K1 b - - 0 1", "", "Checkers: e1"}
	if len(got) != 3 || got[0] != want[0] || !strings.HasPrefix(got[1], "Key: ") || got[2] != want[2] {
		t.Fatalf("got %q", got)
	}
}

func TestUCIBadInputKeepsBoard(t *testing.T) {
	got := runUCI(t, "position startpos moves e2e4\nposition startpos moves e2e5\nd\nposition fen 8/8/8/8/8/8/8/8 w - - 0 1\nd\nfoo\n")
	if len(got) != 7 {
		t.Fatalf("got %q", got)
	}
	if !strings.HasPrefix(got[0], "info string Move e2e5 not applied") {
		t.Fatalf("bad move: got %q", got[0])
	}
	if got[1] != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1" {
		t.Fatalf("board after a rejected position: got %q", got[1])
	}
	if !strings.HasPrefix(got[3], "info string Invalid fen position") {
		t.Fatalf("bad fen: got %q", got[3])
	}
	if got[4] != got[1] {
		t.Fatalf("bad fen replaced the board: got %q", got[4])
	}
	if got[6] != "info string Unknown command foo" {
		t.Fatalf("unknown command: got %q", got[6])
	}
}

func TestUCIGoPerft(t *testing.T) {
	got := runUCI(t, "go perft 2\n")
	if len(got) != 22 {
		t.Fatalf("got %d lines", len(got))
	}
	if got[0] != "a2a3: 20" || got[19] != "h2h4: 20" {
		t.Fatalf("divide lines: %q %q", got[0], got[19])
	}
	if got[21] != "Nodes searched: 400" {
		t.Fatalf("total: got %q", got[21])
	}
}

func TestUCIGoBestMove(t *testing.T) {
	got := runUCI(t, "go\nposition fen 7k/5KQ1/8/8/8/8/8/8 b - - 0 1\ngo\n")
	want := []string{"bestmove a2a3", "bestmove 0000"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}
