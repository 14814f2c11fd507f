package owlmg

// Perft counts the leaf nodes of the legal move tree of the given depth.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{lists: make([]MoveList, depth+1)}
	return perftRec(b, depth, &pc)
}

// perftCtx keeps one move buffer per depth so the walk does not allocate.
type perftCtx struct {
	lists []MoveList
}

func perftRec(b *Board, depth int, pc *perftCtx) uint64 {
	l := &pc.lists[depth]
	l.Clear()
	g := NewMoveGen(b)
	g.GenAll(l)
	var nodes uint64
	for _, m := range l.Slice() {
		if !m.IsLegalUnchecked(b) {
			continue
		}
		if depth == 1 {
			nodes++
			continue
		}
		u := b.MakeMoveUnchecked(m)
		nodes += perftRec(b, depth-1, pc)
		b.UnmakeMoveUnchecked(m, u)
	}
	return nodes
}

// PerftDivide returns the leaf count below each legal root move.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	var l MoveList
	b.LegalMoves(&l)
	for _, m := range l.Slice() {
		u := b.MakeMoveUnchecked(m)
		result[m] = Perft(b, depth-1)
		b.UnmakeMoveUnchecked(m, u)
	}
	return result
}
