package owlmg

// Ray tables. For a square s, *GT holds the squares on the lines through s
// with a greater index and *LT those with a smaller index. For a < b on a
// common line, GT[a] & LT[b] is exactly the open interval between them.
var (
	rookGT, rookLT     [64]Bitboard
	bishopGT, bishopLT [64]Bitboard
	rookLines          [64]Bitboard
	bishopLines        [64]Bitboard
)

func init() {
	for s := Square(0); s < 64; s++ {
		rookLines[s] = slideAttacks(s, EmptyBitboard, &rookDirs)
		bishopLines[s] = slideAttacks(s, EmptyBitboard, &bishopDirs)
		above := FullBitboard << s << 1
		below := Bitboard(1)<<s - 1
		rookGT[s] = rookLines[s] & above
		rookLT[s] = rookLines[s] & below
		bishopGT[s] = bishopLines[s] & above
		bishopLT[s] = bishopLines[s] & below
	}
}

func sortPair(a, b Square) (Square, Square) {
	if a > b {
		return b, a
	}
	return a, b
}

// IsRookLine reports whether a and b are distinct squares on one rank or
// file.
func IsRookLine(a, b Square) bool { return rookLines[a].Has(b) }

// IsBishopLine reports whether a and b are distinct squares on one diagonal.
func IsBishopLine(a, b Square) bool { return bishopLines[a].Has(b) }

// RookBetween returns the squares strictly between a and b. The squares must
// satisfy IsRookLine.
func RookBetween(a, b Square) Bitboard {
	a, b = sortPair(a, b)
	return rookGT[a] & rookLT[b]
}

// BishopBetween returns the squares strictly between a and b. The squares
// must satisfy IsBishopLine.
func BishopBetween(a, b Square) Bitboard {
	a, b = sortPair(a, b)
	return bishopGT[a] & bishopLT[b]
}

// Between returns the squares strictly between a and b, or an empty set if
// they do not share a line.
func Between(a, b Square) Bitboard {
	a, b = sortPair(a, b)
	if bishopGT[a].Has(b) {
		return bishopGT[a] & bishopLT[b]
	}
	if rookGT[a].Has(b) {
		return rookGT[a] & rookLT[b]
	}
	return EmptyBitboard
}
