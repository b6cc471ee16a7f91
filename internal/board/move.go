package board

import (
	"fmt"
	"strings"
)

// Move records a single move together with the state needed to take it
// back. Everything except Check is fixed once the move is built; Check is
// filled in after the move has been made.
type Move struct {
	Piece     Piece
	From      Square
	To        Square
	Captured  Piece // Empty if none
	EnPassant bool
	Promotion Piece // Empty unless the move is a promotion

	CastlingBefore  CastlingRights
	EnPassantBefore Square // NoSquare if none

	Check      bool
	MoveNumber int
}

// Equal reports whether two moves have the same origin, destination,
// moving piece and promotion piece.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Piece == o.Piece && m.Promotion == o.Promotion
}

// IsCastling returns true if this is a king's two-file castling move.
func (m Move) IsCastling() bool {
	if m.Piece.Type() != King {
		return false
	}
	l, ok := castlingFor(m.From, m.To)
	return ok && l.kingFrom.Row() == homeRow(m.Piece.Color())
}

// IsPromotion returns true if a pawn moves onto its last rank.
func (m Move) IsPromotion() bool {
	return m.Piece.Type() == Pawn && m.To.RelativeRow(m.Piece.Color()) == 7
}

// IsCapture returns true if the move takes a piece, en passant included.
func (m Move) IsCapture() bool {
	return m.Captured != Empty
}

// String returns the coordinate form of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() && m.Promotion != Empty {
		s += strings.ToLower(m.Promotion.Symbol())
	}
	return s
}

// ParseCoordinates parses a coordinate move such as "e2e4" or "e7e8n".
// promo is NoPieceType when no promotion letter is given.
func ParseCoordinates(s string) (from, to Square, promo PieceType, err error) {
	if len(s) != 4 && len(s) != 5 {
		return NoSquare, NoSquare, NoPieceType, fmt.Errorf("invalid move string: %s", s)
	}
	if from, err = ParseSquare(s[0:2]); err != nil {
		return NoSquare, NoSquare, NoPieceType, err
	}
	if to, err = ParseSquare(s[2:4]); err != nil {
		return NoSquare, NoSquare, NoPieceType, err
	}
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = Queen
		case 'r':
			promo = Rook
		case 'b':
			promo = Bishop
		case 'n':
			promo = Knight
		default:
			return NoSquare, NoSquare, NoPieceType, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	}
	return from, to, promo, nil
}

// homeRow returns the back rank row of color c.
func homeRow(c Color) int {
	if c == Black {
		return 7
	}
	return 0
}

// MoveList is an ordered collection of moves.
type MoveList []Move

// Contains returns true if some move goes from -> to.
func (ml MoveList) Contains(from, to Square) bool {
	for _, m := range ml {
		if m.From == from && m.To == to {
			return true
		}
	}
	return false
}

// Match returns the moves going from -> to.
func (ml MoveList) Match(from, to Square) MoveList {
	var out MoveList
	for _, m := range ml {
		if m.From == from && m.To == to {
			out = append(out, m)
		}
	}
	return out
}

// From returns the moves starting on sq.
func (ml MoveList) From(sq Square) MoveList {
	var out MoveList
	for _, m := range ml {
		if m.From == sq {
			out = append(out, m)
		}
	}
	return out
}

// Destinations returns the set of squares reachable from sq, for
// highlighting targets in a user interface.
func (ml MoveList) Destinations(sq Square) Bitboard {
	var bb Bitboard
	for _, m := range ml {
		if m.From == sq {
			bb = bb.Set(m.To)
		}
	}
	return bb
}

// Strings returns the coordinate form of every move.
func (ml MoveList) Strings() []string {
	out := make([]string, len(ml))
	for i, m := range ml {
		out[i] = m.String()
	}
	return out
}
