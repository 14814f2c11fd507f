package owlmg

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, bit i standing for Square(i).
type Bitboard uint64

const (
	EmptyBitboard Bitboard = 0
	FullBitboard  Bitboard = ^Bitboard(0)
)

const (
	fileABitboard Bitboard = 0x0101010101010101
	rank8Bitboard Bitboard = 0xff
)

// FileBitboard returns all squares of file f.
func FileBitboard(f File) Bitboard { return fileABitboard << f }

// RankBitboard returns all squares of rank r.
func RankBitboard(r Rank) Bitboard { return rank8Bitboard << (8 * uint(r)) }

// Has reports whether s is in b.
func (b Bitboard) Has(s Square) bool { return b&(1<<s) != 0 }

// With returns b plus s.
func (b Bitboard) With(s Square) Bitboard { return b | 1<<s }

// Without returns b minus s.
func (b Bitboard) Without(s Square) Bitboard { return b &^ (1 << s) }

// Set adds s in place.
func (b *Bitboard) Set(s Square) { *b |= 1 << s }

// Unset removes s in place.
func (b *Bitboard) Unset(s Square) { *b &^= 1 << s }

// Len returns the number of squares in b.
func (b Bitboard) Len() int { return bits.OnesCount64(uint64(b)) }

// IsEmpty reports whether b has no squares.
func (b Bitboard) IsEmpty() bool { return b == 0 }

// NonEmpty reports whether b has at least one square.
func (b Bitboard) NonEmpty() bool { return b != 0 }

// First returns the lowest square in b. b must not be empty.
func (b Bitboard) First() Square { return Square(bits.TrailingZeros64(uint64(b))) }

// Pop removes and returns the lowest square. b must not be empty.
func (b *Bitboard) Pop() Square {
	s := Square(bits.TrailingZeros64(uint64(*b)))
	*b &= *b - 1
	return s
}

// Iter returns a consuming iterator over b in increasing square order.
func (b Bitboard) Iter() BitIter { return BitIter{b} }

// BitIter walks a bitboard lowest bit first. It cannot be restarted.
type BitIter struct {
	rest Bitboard
}

// Next returns the next square, or false once the set is exhausted.
func (it *BitIter) Next() (Square, bool) {
	if it.rest == 0 {
		return NoSquare, false
	}
	return it.rest.Pop(), true
}

// Squares collects b into a slice, lowest square first.
func (b Bitboard) Squares() []Square {
	res := make([]Square, 0, b.Len())
	for b != 0 {
		res = append(res, b.Pop())
	}
	return res
}

// DepositBits maps bit i of x onto the i-th lowest set bit of b.
func (b Bitboard) DepositBits(x uint64) Bitboard {
	var res Bitboard
	for m := b; m != 0 && x != 0; x >>= 1 {
		low := m & -m
		if x&1 != 0 {
			res |= low
		}
		m ^= low
	}
	return res
}

// FlippedRanks mirrors the board vertically.
func (b Bitboard) FlippedRanks() Bitboard { return Bitboard(bits.ReverseBytes64(uint64(b))) }

// String prints rank 8 first, file a leftmost, ranks joined by '/'.
func (b Bitboard) String() string {
	var sb strings.Builder
	sb.Grow(71)
	for r := Rank8; r <= Rank1; r++ {
		if r != Rank8 {
			sb.WriteByte('/')
		}
		for f := FileA; f <= FileH; f++ {
			if b.Has(NewSquare(f, r)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()
}
