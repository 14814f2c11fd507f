// Package selftest prints a deterministic transcript of what the move
// generator sees in each position: legal moves, check state, attack heatmaps
// and hashes of shallow move trees. Two generators agree when their
// transcripts are byte-identical.
package selftest

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/exp/slices"

	"owlboard/owlmg"
)

// Options controls what the Tester prints and checks.
type Options struct {
	BigDepth        bool // also dump depth 3 and depth 2 with heatmaps
	DumpTraceChains bool // print the move chain leading to every leaf
	RunSelfCheck    bool // verify the board cache after every move
	AttackHeatmaps  bool
}

// DefaultOptions enables everything except trace chains.
func DefaultOptions() Options {
	return Options{BigDepth: true, RunSelfCheck: true, AttackHeatmaps: true}
}

// Tester writes transcripts to w.
type Tester struct {
	opts  Options
	w     *bufio.Writer
	check func(b *owlmg.Board) error
}

// New returns a Tester writing to w through a buffer. Every RunOne flushes.
func New(opts Options, w io.Writer) *Tester {
	return &Tester{opts: opts, w: bufio.NewWriter(w), check: (*owlmg.Board).SelfCheck}
}

type depthSpec struct {
	depth        int
	withHeatmaps bool
}

func (s depthSpec) name() string {
	if s.withHeatmaps {
		return fmt.Sprintf("%d-heatmaps", s.depth)
	}
	return fmt.Sprintf("%d", s.depth)
}

type depthCtx struct {
	spec  depthSpec
	hash  uint64
	chain []string
}

func (c *depthCtx) grow(val uint64) {
	c.hash = c.hash*2579 + val
}

// moveHash orders moves by their UCI text: source, destination, then
// promotion piece.
func moveHash(m owlmg.Move) uint64 {
	s := m.String()
	res := uint64(s[0]-'a')*512 + uint64(s[1]-'1')*64 + uint64(s[2]-'a')*8 + uint64(s[3]-'1')
	res *= 5
	if len(s) == 5 {
		res += uint64(strings.IndexByte("nbrq", s[4]) + 1)
	}
	return res
}

func boolVal(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

func (t *Tester) legalStrings(b *owlmg.Board, l *owlmg.MoveList) []string {
	res := make([]string, 0, l.Len())
	for _, m := range l.Slice() {
		if u, ok := b.TryMakeMoveUnchecked(m); ok {
			res = append(res, m.String())
			b.UnmakeMoveUnchecked(m, u)
		}
	}
	slices.Sort(res)
	return res
}

func (t *Tester) depthDump(depth int, b *owlmg.Board, ctx *depthCtx) {
	if depth == 0 {
		if t.opts.DumpTraceChains {
			fmt.Fprint(t.w, "cur-chain: ")
			for _, mv := range ctx.chain {
				fmt.Fprintf(t.w, "%s ", mv)
			}
			fmt.Fprintln(t.w)
		}
		if ctx.spec.withHeatmaps {
			for c := owlmg.White; c <= owlmg.Black; c++ {
				for r := owlmg.Rank8; r <= owlmg.Rank1; r++ {
					var data uint64
					for f := owlmg.FileA; f <= owlmg.FileH; f++ {
						data = data*2 + boolVal(owlmg.IsSquareAttacked(b, owlmg.NewSquare(f, r), c))
					}
					ctx.grow(data)
				}
			}
		}
		ctx.grow(boolVal(b.IsCheck()))
		return
	}

	var l owlmg.MoveList
	g := owlmg.NewMoveGen(b)
	g.GenAll(&l)
	type ordered struct {
		hash uint64
		idx  int
	}
	ord := make([]ordered, 0, l.Len())
	for i, m := range l.Slice() {
		ord = append(ord, ordered{moveHash(m), i})
	}
	sort.Slice(ord, func(i, j int) bool {
		if ord[i].hash != ord[j].hash {
			return ord[i].hash < ord[j].hash
		}
		return ord[i].idx < ord[j].idx
	})

	ctx.grow(519365819)
	for _, o := range ord {
		m := l.At(o.idx)
		u, ok := b.TryMakeMoveUnchecked(m)
		if !ok {
			continue
		}
		if t.opts.DumpTraceChains {
			ctx.chain = append(ctx.chain, m.String())
		}
		ctx.grow(o.hash)
		t.depthDump(depth-1, b, ctx)
		b.UnmakeMoveUnchecked(m, u)
		if t.opts.DumpTraceChains {
			ctx.chain = ctx.chain[:len(ctx.chain)-1]
		}
	}
	ctx.grow(15967534195)
}

// RunMany runs every FEN line of r. Blank lines and lines starting with '#'
// are skipped.
func (t *Tester) RunMany(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := t.RunOne(line); err != nil {
			return err
		}
	}
	return sc.Err()
}

// RunOne writes the transcript of a single position. Whatever was written
// before a failure is flushed too, so the failing position shows up.
func (t *Tester) RunOne(fen string) error {
	err := t.runOne(fen)
	if ferr := t.w.Flush(); err == nil {
		err = ferr
	}
	return err
}

func (t *Tester) runOne(fen string) error {
	b, err := owlmg.ParseFEN(fen)
	if err != nil {
		return fmt.Errorf("selftest %q: %w", fen, err)
	}
	fmt.Fprintf(t.w, "fen: %s\n", fen)
	if t.opts.RunSelfCheck {
		if err := t.check(&b); err != nil {
			return fmt.Errorf("selftest %q: %w", fen, err)
		}
	}

	var l owlmg.MoveList
	g := owlmg.NewMoveGen(&b)
	g.GenAll(&l)

	fmt.Fprintln(t.w, "moves: [")
	for _, s := range t.legalStrings(&b, &l) {
		fmt.Fprintf(t.w, "  %s\n", s)
	}
	fmt.Fprintln(t.w, "]")
	fmt.Fprintf(t.w, "check?: %t\n", b.IsCheck())

	if t.opts.AttackHeatmaps {
		for c := owlmg.White; c <= owlmg.Black; c++ {
			fmt.Fprintf(t.w, "%s-heatmap: [\n", c.Name())
			for r := owlmg.Rank8; r <= owlmg.Rank1; r++ {
				var row [8]byte
				for f := owlmg.FileA; f <= owlmg.FileH; f++ {
					row[f] = '.'
					if owlmg.IsSquareAttacked(&b, owlmg.NewSquare(f, r), c) {
						row[f] = '#'
					}
				}
				fmt.Fprintf(t.w, "  %s\n", row[:])
			}
			fmt.Fprintln(t.w, "]")
		}
	}

	if t.opts.RunSelfCheck {
		for _, m := range l.Slice() {
			u, ok := b.TryMakeMoveUnchecked(m)
			if !ok {
				continue
			}
			err := t.check(&b)
			b.UnmakeMoveUnchecked(m, u)
			if err != nil {
				return fmt.Errorf("selftest %q after %s: %w", fen, m, err)
			}
		}
	}

	specs := []depthSpec{
		{depth: 1, withHeatmaps: t.opts.AttackHeatmaps},
		{depth: 2},
	}
	if t.opts.BigDepth {
		if t.opts.AttackHeatmaps {
			specs = append(specs, depthSpec{depth: 2, withHeatmaps: true})
		}
		specs = append(specs, depthSpec{depth: 3})
	}
	for _, spec := range specs {
		ctx := depthCtx{spec: spec}
		t.depthDump(spec.depth, &b, &ctx)
		fmt.Fprintf(t.w, "depth-dump-at-%s: %d\n", spec.name(), ctx.hash)
	}
	fmt.Fprintln(t.w)
	return nil
}
