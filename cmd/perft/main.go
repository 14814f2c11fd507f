package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"owlboard/owlmg"
)

func main() {
	os.Exit(run())
}

func run() int {
	fen := flag.String("fen", owlmg.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	crosscheck := flag.Bool("crosscheck", false, "Compare per-move counts against goosemg and dragontoothmg")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		return 2
	}
	board, err := owlmg.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		return 2
	}

	stop, err := startCPUProfile(*cpuProf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	code := 0
	switch {
	case *crosscheck:
		if !runCrosscheck(&board, *fen, *depth) {
			code = 1
		}
	case *divide:
		printDivide(ownDivide(&board, *depth))
	default:
		timePerft(&board, *depth, *repeat, *label)
	}
	stop()

	if err := writeHeapProfile(*memProf); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return code
}

// startCPUProfile starts profiling into path. An empty path profiles nothing.
func startCPUProfile(path string) (stop func(), err error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating cpuprofile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("start cpu profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		_ = f.Close()
	}, nil
}

func writeHeapProfile(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating memprofile: %w", err)
	}
	defer f.Close()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("write heap profile: %w", err)
	}
	return nil
}

// timePerft prints one tab separated line: label, depth, nodes, time, NPS.
func timePerft(b *owlmg.Board, depth, repeat int, label string) {
	var nodes uint64
	start := time.Now()
	for i := 0; i < repeat; i++ {
		nodes += owlmg.Perft(b, depth)
	}
	elapsed := time.Since(start)
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", label, depth, nodes, elapsed, float64(nodes)/elapsed.Seconds())
}

func printDivide(div map[string]uint64) {
	keys := maps.Keys(div)
	slices.Sort(keys)
	var sum uint64
	for _, k := range keys {
		fmt.Printf("%s: %d\n", k, div[k])
		sum += div[k]
	}
	fmt.Printf("Total: %d\n", sum)
}

func ownDivide(b *owlmg.Board, depth int) map[string]uint64 {
	res := make(map[string]uint64)
	for m, n := range owlmg.PerftDivide(b, depth) {
		res[m.String()] = n
	}
	return res
}

func gooseDivide(fen string, depth int) (map[string]uint64, error) {
	b, err := goosemg.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	res := make(map[string]uint64)
	for m, n := range goosemg.PerftDivide(b, depth) {
		res[m.String()] = n
	}
	return res, nil
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}

func dragontoothDivide(fen string, depth int) map[string]uint64 {
	b := dragontoothmg.ParseFen(fen)
	res := make(map[string]uint64)
	moves := b.GenerateLegalMoves()
	for i := range moves {
		m := moves[i]
		var n uint64 = 1
		if depth > 1 {
			unapply := b.Apply(m)
			n = dragontoothPerft(&b, depth-1)
			unapply()
		}
		res[strings.ToLower(m.String())] = n
	}
	return res
}

// runCrosscheck prints every root move whose count differs between the
// generators and reports whether all of them agreed.
func runCrosscheck(b *owlmg.Board, fen string, depth int) bool {
	ours := ownDivide(b, depth)
	others := map[string]map[string]uint64{
		"dragontoothmg": dragontoothDivide(fen, depth),
	}
	if goose, err := gooseDivide(fen, depth); err != nil {
		fmt.Fprintf(os.Stderr, "goosemg ParseFEN error: %v\n", err)
	} else {
		others["goosemg"] = goose
	}

	ok := true
	names := maps.Keys(others)
	slices.Sort(names)
	for _, name := range names {
		theirs := others[name]
		keys := maps.Keys(ours)
		for k := range theirs {
			if _, found := ours[k]; !found {
				keys = append(keys, k)
			}
		}
		slices.Sort(keys)
		for _, k := range keys {
			if ours[k] != theirs[k] {
				fmt.Printf("%s: %s owlmg=%d %s=%d\n", name, k, ours[k], name, theirs[k])
				ok = false
			}
		}
	}
	if ok {
		fmt.Printf("crosscheck ok: %d root moves\n", len(ours))
	}
	return ok
}
