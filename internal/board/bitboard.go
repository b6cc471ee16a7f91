package board

import (
	"fmt"
	"math/bits"
)

// Bitboard is a set of playable squares, one bit per square.
// Bit 0 = a1, bit 7 = h1, bit 56 = a8, bit 63 = h8 (Square.Index order).
// The rules core works on the mailbox; bitboards are handed out to
// callers that want compact square sets, such as destination highlighting.
type Bitboard uint64

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	if !sq.IsValid() {
		return 0
	}
	return 1 << uint(sq.Index())
}

// Set sets the bit of the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | SquareBB(sq)
}

// Clear clears the bit of the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ SquareBB(sq)
}

// IsSet returns true if the bit of the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return sq.IsValid() && b&SquareBB(sq) != 0
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest set square, NoSquare if empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return SquareFromIndex(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the lowest set square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Squares returns a slice of all squares that are set, a1 first.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	s := ""
	for row := 7; row >= 0; row-- {
		s += fmt.Sprintf("%d ", row+1)
		for _, sq := range Rows[row] {
			if b.IsSet(sq) {
				s += "1 "
			} else {
				s += ". "
			}
		}
		s += "\n"
	}
	s += "  a b c d e f g h\n"
	return s
}
