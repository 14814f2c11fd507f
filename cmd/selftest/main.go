package main

import (
	"crypto/sha256"
	"flag"
	"fmt"
	"hash"
	"io"
	"os"

	"owlboard/internal/selftest"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup still happens.
func run() int {
	input := flag.String("input", "", "File with one FEN per line (defaults to stdin)")
	bigDepth := flag.Bool("big-depth", true, "Also dump depth 3 and depth 2 with heatmaps")
	heatmaps := flag.Bool("heatmaps", true, "Print and hash attack heatmaps")
	selfCheck := flag.Bool("selfcheck", true, "Verify the board cache after every move")
	trace := flag.Bool("trace", false, "Print the move chain leading to every leaf")
	digest := flag.Bool("sha256", false, "Print only the SHA-256 of the transcript")
	flag.Parse()

	var r io.Reader = os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open input: %v\n", err)
			return 2
		}
		defer f.Close()
		r = f
	}

	var w io.Writer = os.Stdout
	var h hash.Hash
	if *digest {
		h = sha256.New()
		w = h
	}

	opts := selftest.Options{
		BigDepth:        *bigDepth,
		DumpTraceChains: *trace,
		RunSelfCheck:    *selfCheck,
		AttackHeatmaps:  *heatmaps,
	}
	if err := selftest.New(opts, w).RunMany(r); err != nil {
		fmt.Fprintf(os.Stderr, "selftest: %v\n", err)
		return 1
	}
	if h != nil {
		fmt.Printf("%x\n", h.Sum(nil))
	}
	return 0
}
