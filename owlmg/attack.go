package owlmg

import "math/bits"

var (
	kingAttacks   [64]Bitboard
	knightAttacks [64]Bitboard
	pawnAttacks   [2][64]Bitboard
)

type direction struct{ df, dr int }

var (
	rookDirs   = [4]direction{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
	bishopDirs = [4]direction{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	kingDirs   = [8]direction{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	knightDirs = [8]direction{{-1, -2}, {1, -2}, {-2, -1}, {2, -1}, {-2, 1}, {2, 1}, {-1, 2}, {1, 2}}
)

// magicEntry locates the attack sets of one square inside sliderTable.
type magicEntry struct {
	mask   Bitboard // relevant occupancy, board edges excluded
	post   Bitboard // attacks on an empty board
	magic  uint64
	shift  uint8
	offset uint32
}

var (
	rookMagics   [64]magicEntry
	bishopMagics [64]magicEntry
	sliderTable  []Bitboard
)

func init() {
	initLeaperTables()
	initMagics()
}

func offsetSquare(s Square, d direction) (Square, bool) {
	f := int(s.File()) + d.df
	r := int(s.Rank()) + d.dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare, false
	}
	return NewSquare(File(f), Rank(r)), true
}

func initLeaperTables() {
	for s := Square(0); s < 64; s++ {
		for _, d := range kingDirs {
			if t, ok := offsetSquare(s, d); ok {
				kingAttacks[s].Set(t)
			}
		}
		for _, d := range knightDirs {
			if t, ok := offsetSquare(s, d); ok {
				knightAttacks[s].Set(t)
			}
		}
		// White captures towards rank 8 (dr = -1), Black towards rank 1.
		for _, df := range [2]int{-1, 1} {
			if t, ok := offsetSquare(s, direction{df, -1}); ok {
				pawnAttacks[White][s].Set(t)
			}
			if t, ok := offsetSquare(s, direction{df, 1}); ok {
				pawnAttacks[Black][s].Set(t)
			}
		}
	}
}

// slideAttacks walks rays from s until the first blocker, inclusive.
func slideAttacks(s Square, occ Bitboard, dirs *[4]direction) Bitboard {
	var res Bitboard
	for _, d := range dirs {
		t := s
		for {
			var ok bool
			t, ok = offsetSquare(t, d)
			if !ok {
				break
			}
			res.Set(t)
			if occ.Has(t) {
				break
			}
		}
	}
	return res
}

// relevantMask is the set of squares whose occupancy can change the attack
// set of a slider on s: the rays without their last square.
func relevantMask(s Square, dirs *[4]direction) Bitboard {
	var res Bitboard
	for _, d := range dirs {
		t := s
		for {
			next, ok := offsetSquare(t, d)
			if !ok {
				break
			}
			if t != s {
				res.Set(t)
			}
			t = next
		}
	}
	return res
}

// magicRand is the xorshift64* generator used for the magic search.
type magicRand struct{ s uint64 }

func (r *magicRand) next() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

// sparse returns a random number with few bits set.
func (r *magicRand) sparse() uint64 { return r.next() & r.next() & r.next() }

var magicSeeds = [8]uint64{255, 16645, 15100, 12281, 32803, 55013, 10316, 728}

func initMagics() {
	size := 0
	for s := Square(0); s < 64; s++ {
		size += 1 << relevantMask(s, &rookDirs).Len()
		size += 1 << relevantMask(s, &bishopDirs).Len()
	}
	sliderTable = make([]Bitboard, size)

	var (
		occ    [4096]Bitboard
		ref    [4096]Bitboard
		epoch  [4096]int
		offset uint32
	)
	fill := func(entries *[64]magicEntry, dirs *[4]direction) {
		for s := Square(0); s < 64; s++ {
			e := &entries[s]
			e.mask = relevantMask(s, dirs)
			e.post = slideAttacks(s, EmptyBitboard, dirs)
			n := e.mask.Len()
			e.shift = uint8(64 - n)
			e.offset = offset
			cnt := 1 << n
			for i := 0; i < cnt; i++ {
				occ[i] = e.mask.DepositBits(uint64(i))
				ref[i] = slideAttacks(s, occ[i], dirs)
			}
			table := sliderTable[offset : offset+uint32(cnt)]
			rng := magicRand{s: magicSeeds[s.Rank()]}
			for i := range epoch[:cnt] {
				epoch[i] = 0
			}
			for attempt := 1; ; attempt++ {
				var magic uint64
				for {
					magic = rng.sparse()
					if bits.OnesCount64((uint64(e.mask)*magic)>>56) >= 6 {
						break
					}
				}
				ok := true
				for i := 0; i < cnt; i++ {
					idx := (uint64(occ[i]) * magic) >> e.shift
					if epoch[idx] < attempt {
						epoch[idx] = attempt
						table[idx] = ref[i]
					} else if table[idx] != ref[i] {
						ok = false
						break
					}
				}
				if ok {
					e.magic = magic
					break
				}
			}
			offset += uint32(cnt)
		}
	}
	fill(&rookMagics, &rookDirs)
	fill(&bishopMagics, &bishopDirs)
}

func (e *magicEntry) attacks(occ Bitboard) Bitboard {
	idx := (uint64(occ&e.mask) * e.magic) >> e.shift
	return sliderTable[e.offset+uint32(idx)] & e.post
}

// KingAttacks returns the squares a king on s attacks.
func KingAttacks(s Square) Bitboard { return kingAttacks[s] }

// KnightAttacks returns the squares a knight on s attacks.
func KnightAttacks(s Square) Bitboard { return knightAttacks[s] }

// PawnAttacks returns the squares a pawn of color c on s captures on.
func PawnAttacks(c Color, s Square) Bitboard { return pawnAttacks[c][s] }

// RookAttacks returns the rook attacks from s, stopping at the first blocker
// in occ on each ray. Blockers are included.
func RookAttacks(s Square, occ Bitboard) Bitboard { return rookMagics[s].attacks(occ) }

// BishopAttacks is RookAttacks for diagonals.
func BishopAttacks(s Square, occ Bitboard) Bitboard { return bishopMagics[s].attacks(occ) }

// QueenAttacks is the union of rook and bishop attacks.
func QueenAttacks(s Square, occ Bitboard) Bitboard {
	return rookMagics[s].attacks(occ) | bishopMagics[s].attacks(occ)
}
