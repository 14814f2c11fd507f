package selftest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"owlboard/owlmg"
)

const startTranscript = `fen: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1
moves: [
  a2a3
  a2a4
  b1a3
  b1c3
  b2b3
  b2b4
  c2c3
  c2c4
  d2d3
  d2d4
  e2e3
  e2e4
  f2f3
  f2f4
  g1f3
  g1h3
  g2g3
  g2g4
  h2h3
  h2h4
]
check?: false
white-heatmap: [
  ........
  ........
  ........
  ........
  ........
  ########
  ########
  .######.
]
black-heatmap: [
  .######.
  ########
  ########
  ........
  ........
  ........
  ........
  ........
]
depth-dump-at-1-heatmaps: 10545794492163104294
depth-dump-at-2: 7287019235089223332

`

func TestRunOneStartPosition(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{RunSelfCheck: true, AttackHeatmaps: true}
	if err := New(opts, &buf).RunOne(owlmg.FENStartPos); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(startTranscript, buf.String()); diff != "" {
		t.Fatalf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestDepthDumpWithHeatmaps(t *testing.T) {
	b := owlmg.StartBoard()
	tr := New(Options{}, &bytes.Buffer{})
	ctx := depthCtx{spec: depthSpec{depth: 2, withHeatmaps: true}}
	tr.depthDump(2, &b, &ctx)
	if ctx.hash != 15213811740212042866 {
		t.Fatalf("got %d", ctx.hash)
	}
	if diff := cmp.Diff(owlmg.StartBoard(), b, cmp.AllowUnexported(owlmg.Board{})); diff != "" {
		t.Fatalf("depth dump changed the board (-want +got):\n%s", diff)
	}
}

func TestMoveHash(t *testing.T) {
	cases := []struct {
		m    owlmg.Move
		want uint64
	}{
		{owlmg.Move{Kind: owlmg.MoveSimple, Src: owlmg.A1, Dst: owlmg.A2}, 5},
		{owlmg.Move{Kind: owlmg.MovePawnDouble, Src: owlmg.E2, Dst: owlmg.E4}, (4*512 + 1*64 + 4*8 + 3) * 5},
		{owlmg.Move{Kind: owlmg.MovePromoteKnight, Src: owlmg.A7, Dst: owlmg.A8}, (6*64+7)*5 + 1},
		{owlmg.Move{Kind: owlmg.MovePromoteQueen, Src: owlmg.A7, Dst: owlmg.A8}, (6*64+7)*5 + 4},
	}
	for _, tc := range cases {
		if got := moveHash(tc.m); got != tc.want {
			t.Fatalf("%v: got %d want %d", tc.m, got, tc.want)
		}
	}
}

func TestTraceChains(t *testing.T) {
	var buf bytes.Buffer
	tr := New(Options{DumpTraceChains: true}, &buf)
	b := owlmg.MustParseFEN("7k/8/8/8/8/8/8/K7 w - - 0 1")
	ctx := depthCtx{spec: depthSpec{depth: 1}}
	tr.depthDump(1, &b, &ctx)
	if err := tr.w.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "cur-chain: a1a2 \ncur-chain: a1b1 \ncur-chain: a1b2 \n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRunMany(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"",
		"7k/8/8/8/8/8/8/K7 w - - 0 1",
		"   ",
		"7k/8/8/8/8/8/8/K7 b - - 0 1",
	}, "\n")
	var buf bytes.Buffer
	if err := New(DefaultOptions(), &buf).RunMany(strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if n := strings.Count(out, "fen: "); n != 2 {
		t.Fatalf("got %d positions", n)
	}
	for _, name := range []string{"1-heatmaps", "2", "2-heatmaps", "3"} {
		if !strings.Contains(out, "depth-dump-at-"+name+": ") {
			t.Fatalf("missing depth dump %s", name)
		}
	}
}

func TestRunManyBadFEN(t *testing.T) {
	err := New(DefaultOptions(), &bytes.Buffer{}).RunMany(strings.NewReader("8/8/8/8/8/8/8/8 w - - 0 1\n"))
	if !errors.Is(err, owlmg.ErrNoKing) {
		t.Fatalf("got %v", err)
	}
}

func TestRunOneFlushesOnSelfCheckError(t *testing.T) {
	var buf bytes.Buffer
	tester := New(DefaultOptions(), &buf)
	errBroken := errors.New("broken cache")
	calls := 0
	tester.check = func(b *owlmg.Board) error {
		calls++
		if calls > 1 {
			return errBroken
		}
		return nil
	}
	err := tester.RunOne(owlmg.FENStartPos)
	if !errors.Is(err, errBroken) {
		t.Fatalf("got %v want %v", err, errBroken)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "fen: "+owlmg.FENStartPos+"\nmoves: [\n") {
		t.Fatalf("transcript before the failure was not flushed: %q", out)
	}
	if strings.Contains(out, "depth-dump-at-") {
		t.Fatalf("depth dumps written after a failed check")
	}
}
