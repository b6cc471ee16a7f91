package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other returns the opposite color. NoColor stays NoColor.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the kind of a chess piece regardless of color.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Piece is a signed tag: white pieces are positive, black pieces negative,
// with the magnitude being the PieceType. Empty marks a playable square
// with nothing on it and OffBoard marks the padding ring.
type Piece int8

const (
	Empty       Piece = 0
	WhitePawn   Piece = Piece(Pawn)
	WhiteKnight Piece = Piece(Knight)
	WhiteBishop Piece = Piece(Bishop)
	WhiteRook   Piece = Piece(Rook)
	WhiteQueen  Piece = Piece(Queen)
	WhiteKing   Piece = Piece(King)
	BlackPawn   Piece = -WhitePawn
	BlackKnight Piece = -WhiteKnight
	BlackBishop Piece = -WhiteBishop
	BlackRook   Piece = -WhiteRook
	BlackQueen  Piece = -WhiteQueen
	BlackKing   Piece = -WhiteKing
	OffBoard    Piece = 99
)

// AllPieces lists the twelve real pieces, white first.
var AllPieces = [12]Piece{
	WhitePawn, WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing,
	BlackPawn, BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing,
}

const fenLetters = " PNBRQK"

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType || pt > King {
		return Empty
	}
	switch c {
	case White:
		return Piece(pt)
	case Black:
		return -Piece(pt)
	default:
		return Empty
	}
}

// IsPiece reports whether p is one of the twelve real pieces.
func (p Piece) IsPiece() bool {
	return p != Empty && p != OffBoard && abs(p) <= Piece(King)
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if !p.IsPiece() {
		return NoPieceType
	}
	return PieceType(abs(p))
}

// Color returns the side owning the piece, NoColor for Empty and OffBoard.
func (p Piece) Color() Color {
	switch {
	case !p.IsPiece():
		return NoColor
	case p > 0:
		return White
	default:
		return Black
	}
}

// index maps a real piece to 0-11 (white pawn .. black king).
func (p Piece) index() int {
	i := int(p.Type()) - 1
	if p < 0 {
		i += 6
	}
	return i
}

// FEN returns the FEN letter for the piece, uppercase for white and
// lowercase for black. It returns 0 for Empty and OffBoard.
func (p Piece) FEN() byte {
	if !p.IsPiece() {
		return 0
	}
	ch := fenLetters[p.Type()]
	if p < 0 {
		ch += 'a' - 'A'
	}
	return ch
}

// PieceFromFEN converts a FEN letter to a Piece. ok is false for letters
// outside {P,N,B,R,Q,K,p,n,b,r,q,k}.
func PieceFromFEN(ch byte) (p Piece, ok bool) {
	switch ch {
	case 'P':
		return WhitePawn, true
	case 'N':
		return WhiteKnight, true
	case 'B':
		return WhiteBishop, true
	case 'R':
		return WhiteRook, true
	case 'Q':
		return WhiteQueen, true
	case 'K':
		return WhiteKing, true
	case 'p':
		return BlackPawn, true
	case 'n':
		return BlackKnight, true
	case 'b':
		return BlackBishop, true
	case 'r':
		return BlackRook, true
	case 'q':
		return BlackQueen, true
	case 'k':
		return BlackKing, true
	default:
		return Empty, false
	}
}

// Symbol returns the move notation letter: N, B, R, Q, K, or "" for pawns.
func (p Piece) Symbol() string {
	switch p.Type() {
	case Knight, Bishop, Rook, Queen, King:
		return string(fenLetters[p.Type()])
	default:
		return ""
	}
}

// String returns the FEN character for the piece, "." for Empty.
func (p Piece) String() string {
	switch {
	case p == Empty:
		return "."
	case !p.IsPiece():
		return "#"
	default:
		return string(p.FEN())
	}
}
