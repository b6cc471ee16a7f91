package board

import "fmt"

// CastlingRights represents the available castling options as a 4-bit set.
// The numeric value doubles as the castling index into the zobrist table.
type CastlingRights uint8

const (
	BlackQueenSide CastlingRights = 1 << iota // q
	BlackKingSide                             // k
	WhiteQueenSide                            // Q
	WhiteKingSide                             // K
	NoCastling     CastlingRights = 0
	AllCastling    CastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// Index returns the 0-15 encoding of the rights.
func (cr CastlingRights) Index() int {
	return int(cr & AllCastling)
}

// Has reports whether every flag in f is set.
func (cr CastlingRights) Has(f CastlingRights) bool {
	return cr&f == f
}

// Without returns the rights with the flags in f revoked.
func (cr CastlingRights) Without(f CastlingRights) CastlingRights {
	return cr &^ f
}

// sideRights returns the kingside and queenside flags of color c.
func sideRights(c Color) (kingSide, queenSide CastlingRights) {
	if c == White {
		return WhiteKingSide, WhiteQueenSide
	}
	return BlackKingSide, BlackQueenSide
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	ks, qs := sideRights(c)
	if kingSide {
		return cr&ks != 0
	}
	return cr&qs != 0
}

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr&AllCastling == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSide != 0 {
		s += "K"
	}
	if cr&WhiteQueenSide != 0 {
		s += "Q"
	}
	if cr&BlackKingSide != 0 {
		s += "k"
	}
	if cr&BlackQueenSide != 0 {
		s += "q"
	}
	return s
}

// ParseCastlingRights parses the FEN castling field ("KQkq", "-", ...).
func ParseCastlingRights(s string) (CastlingRights, error) {
	if s == "-" {
		return NoCastling, nil
	}
	if s == "" {
		return NoCastling, fmt.Errorf("empty castling field")
	}
	var cr CastlingRights
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'K':
			cr |= WhiteKingSide
		case 'Q':
			cr |= WhiteQueenSide
		case 'k':
			cr |= BlackKingSide
		case 'q':
			cr |= BlackQueenSide
		default:
			return cr, fmt.Errorf("invalid castling character: %c", s[i])
		}
	}
	return cr, nil
}

// castlingLayout describes one of the four castling moves.
type castlingLayout struct {
	right            CastlingRights
	kingFrom, kingTo Square
	rookFrom, rookTo Square
	between          []Square // must be empty
	kingPath         []Square // must not be attacked, origin included
}

var castlingLayouts = [4]castlingLayout{
	{WhiteKingSide, E1, G1, H1, F1, []Square{F1, G1}, []Square{E1, F1, G1}},
	{WhiteQueenSide, E1, C1, A1, D1, []Square{D1, C1, B1}, []Square{E1, D1, C1}},
	{BlackKingSide, E8, G8, H8, F8, []Square{F8, G8}, []Square{E8, F8, G8}},
	{BlackQueenSide, E8, C8, A8, D8, []Square{D8, C8, B8}, []Square{E8, D8, C8}},
}

// castlingFor returns the layout of a king move from -> to, if it is one.
func castlingFor(from, to Square) (*castlingLayout, bool) {
	for i := range castlingLayouts {
		l := &castlingLayouts[i]
		if l.kingFrom == from && l.kingTo == to {
			return l, true
		}
	}
	return nil, false
}

// rookHomeRights maps a rook home square to the right it guards.
func rookHomeRights(sq Square) CastlingRights {
	switch sq {
	case H1:
		return WhiteKingSide
	case A1:
		return WhiteQueenSide
	case H8:
		return BlackKingSide
	case A8:
		return BlackQueenSide
	default:
		return NoCastling
	}
}
