package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"owlboard/owlmg"
)

func main() {
	if err := uciLoop(os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// uciLoop serves a small subset of UCI on top of the move generator. It
// returns when the input ends or on "quit".
func uciLoop(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	w := bufio.NewWriter(out)
	defer w.Flush()
	board := owlmg.StartBoard()

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Fprintln(w, "id name owlboard")
			fmt.Fprintln(w, "id author owlboard authors")
			fmt.Fprintln(w, "uciok")
		case "isready":
			fmt.Fprintln(w, "readyok")
		case "ucinewgame":
			board = owlmg.StartBoard()
		case "quit":
			return nil
		case "d":
			fmt.Fprintln(w, board.FEN())
			fmt.Fprintf(w, "Key: %016x\n", board.Hash())
			if board.IsCheck() {
				fmt.Fprintf(w, "Checkers: %s\n", strings.Join(squareNames(board.Checkers()), " "))
			}
		case "go":
			handleGo(w, &board, tokens[1:])
		case "position":
			if b, ok := handlePosition(w, tokens[1:]); ok {
				board = b
			}
		default:
			fmt.Fprintln(w, "info string Unknown command", tokens[0])
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func squareNames(bb owlmg.Bitboard) []string {
	var res []string
	for _, s := range bb.Squares() {
		res = append(res, s.String())
	}
	return res
}

func handleGo(w io.Writer, board *owlmg.Board, args []string) {
	if len(args) >= 1 && strings.ToLower(args[0]) == "perft" {
		if len(args) < 2 {
			fmt.Fprintln(w, "info string Malformed go perft command")
			return
		}
		depth, err := strconv.Atoi(args[1])
		if err != nil || depth <= 0 {
			fmt.Fprintln(w, "info string Malformed go perft depth", args[1])
			return
		}
		div := make(map[string]uint64)
		for m, n := range owlmg.PerftDivide(board, depth) {
			div[m.String()] = n
		}
		keys := maps.Keys(div)
		slices.Sort(keys)
		var sum uint64
		for _, k := range keys {
			fmt.Fprintf(w, "%s: %d\n", k, div[k])
			sum += div[k]
		}
		fmt.Fprintf(w, "\nNodes searched: %d\n", sum)
		return
	}

	// No search: answer with the first legal move in UCI order.
	var l owlmg.MoveList
	board.LegalMoves(&l)
	if l.Len() == 0 {
		fmt.Fprintln(w, "bestmove 0000")
		return
	}
	moves := make([]string, 0, l.Len())
	for _, m := range l.Slice() {
		moves = append(moves, m.String())
	}
	slices.Sort(moves)
	fmt.Fprintln(w, "bestmove", moves[0])
}

// handlePosition builds the board described by a position command. On a bad
// FEN or move it reports the problem and returns false, leaving the current
// board in place.
func handlePosition(w io.Writer, args []string) (owlmg.Board, bool) {
	if len(args) == 0 {
		fmt.Fprintln(w, "info string Malformed position command")
		return owlmg.Board{}, false
	}
	var board owlmg.Board
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		board = owlmg.StartBoard()
	case "fen":
		end := len(rest)
		for i, tok := range rest {
			if strings.ToLower(tok) == "moves" {
				end = i
				break
			}
		}
		b, err := owlmg.ParseFEN(strings.Join(rest[:end], " "))
		if err != nil {
			fmt.Fprintln(w, "info string Invalid fen position:", err)
			return owlmg.Board{}, false
		}
		board = b
		rest = rest[end:]
	default:
		fmt.Fprintln(w, "info string Invalid position subcommand")
		return owlmg.Board{}, false
	}

	if len(rest) == 0 || strings.ToLower(rest[0]) != "moves" {
		return board, true
	}
	for _, tok := range rest[1:] {
		if _, _, err := board.MakeUCIMove(strings.ToLower(tok)); err != nil {
			fmt.Fprintln(w, "info string Move", tok, "not applied for position", board.FEN()+":", err)
			return owlmg.Board{}, false
		}
	}
	return board, true
}
