// Package board implements the chess rules core on a padded 12x12 mailbox.
package board

import "fmt"

// Square is a cell of the 12x12 mailbox. The 8x8 playable area is
// surrounded by a two cell wide padding ring, so stepping off the board
// never wraps around to the other side. a1 is cell 26, h8 is cell 117.
type Square uint8

// NoSquare is a padding cell and doubles as "none".
const NoSquare Square = 0

const (
	boardWidth = 12
	boardCells = boardWidth * boardWidth
	padding    = 2
)

// Square constants for all 64 playable squares.
const (
	A1 Square = 26
	B1 Square = 27
	C1 Square = 28
	D1 Square = 29
	E1 Square = 30
	F1 Square = 31
	G1 Square = 32
	H1 Square = 33
	A2 Square = 38
	B2 Square = 39
	C2 Square = 40
	D2 Square = 41
	E2 Square = 42
	F2 Square = 43
	G2 Square = 44
	H2 Square = 45
	A3 Square = 50
	B3 Square = 51
	C3 Square = 52
	D3 Square = 53
	E3 Square = 54
	F3 Square = 55
	G3 Square = 56
	H3 Square = 57
	A4 Square = 62
	B4 Square = 63
	C4 Square = 64
	D4 Square = 65
	E4 Square = 66
	F4 Square = 67
	G4 Square = 68
	H4 Square = 69
	A5 Square = 74
	B5 Square = 75
	C5 Square = 76
	D5 Square = 77
	E5 Square = 78
	F5 Square = 79
	G5 Square = 80
	H5 Square = 81
	A6 Square = 86
	B6 Square = 87
	C6 Square = 88
	D6 Square = 89
	E6 Square = 90
	F6 Square = 91
	G6 Square = 92
	H6 Square = 93
	A7 Square = 98
	B7 Square = 99
	C7 Square = 100
	D7 Square = 101
	E7 Square = 102
	F7 Square = 103
	G7 Square = 104
	H7 Square = 105
	A8 Square = 110
	B8 Square = 111
	C8 Square = 112
	D8 Square = 113
	E8 Square = 114
	F8 Square = 115
	G8 Square = 116
	H8 Square = 117
)

// Direction is a signed offset between mailbox cells.
type Direction int8

const (
	DirUp        Direction = boardWidth
	DirDown      Direction = -boardWidth
	DirLeft      Direction = -1
	DirRight     Direction = 1
	DirUpLeft    Direction = boardWidth - 1
	DirUpRight   Direction = boardWidth + 1
	DirDownLeft  Direction = -boardWidth - 1
	DirDownRight Direction = -boardWidth + 1
)

var (
	orthogonals = [4]Direction{DirUp, DirDown, DirLeft, DirRight}
	diagonals   = [4]Direction{DirUpLeft, DirUpRight, DirDownLeft, DirDownRight}
	kingSteps   = [8]Direction{DirUp, DirDown, DirLeft, DirRight, DirUpLeft, DirUpRight, DirDownLeft, DirDownRight}
)

// AllSquares lists the 64 playable squares rank by rank, a1 first.
var AllSquares [64]Square

// Rows groups the playable squares by rank, rank 1 first.
var Rows [8][8]Square

func init() {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := SquareAt(row, col)
			AllSquares[row*8+col] = sq
			Rows[row][col] = sq
		}
	}
}

// SquareAt returns the square at (row, col), both 0-7 with row 0 being
// rank 1 and col 0 being file a. Out of range input yields NoSquare.
func SquareAt(row, col int) Square {
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return NoSquare
	}
	return Square((row+padding)*boardWidth + col + padding)
}

// SquareFromIndex converts a 0-63 little-endian rank-file index.
func SquareFromIndex(i int) Square {
	if i < 0 || i > 63 {
		return NoSquare
	}
	return SquareAt(i>>3, i&7)
}

// Row returns the rank of the square (0-7). Only meaningful for valid squares.
func (sq Square) Row() int {
	return int(sq)/boardWidth - padding
}

// Col returns the file of the square (0-7). Only meaningful for valid squares.
func (sq Square) Col() int {
	return int(sq)%boardWidth - padding
}

// RowCol returns the (row, col) pair of the square.
func (sq Square) RowCol() (int, int) {
	return sq.Row(), sq.Col()
}

// IsValid returns true if the square is one of the 64 playable squares.
func (sq Square) IsValid() bool {
	if int(sq) >= boardCells {
		return false
	}
	r, c := sq.Row(), sq.Col()
	return r >= 0 && r < 8 && c >= 0 && c < 8
}

// Index returns the 0-63 little-endian rank-file index (a1=0, h8=63).
func (sq Square) Index() int {
	return sq.Row()*8 + sq.Col()
}

// Step returns the neighbor in direction d, or NoSquare at the board edge.
func (sq Square) Step(d Direction) Square {
	if !sq.IsValid() {
		return NoSquare
	}
	n := int(sq) + int(d)
	if n < 0 || n >= boardCells {
		return NoSquare
	}
	if next := Square(n); next.IsValid() {
		return next
	}
	return NoSquare
}

// Up returns the square one rank higher, or NoSquare on the 8th rank.
func (sq Square) Up() Square { return sq.Step(DirUp) }

// Down returns the square one rank lower, or NoSquare on the 1st rank.
func (sq Square) Down() Square { return sq.Step(DirDown) }

// Left returns the square one file toward a, or NoSquare on the a-file.
func (sq Square) Left() Square { return sq.Step(DirLeft) }

// Right returns the square one file toward h, or NoSquare on the h-file.
func (sq Square) Right() Square { return sq.Step(DirRight) }

// UpLeft returns the diagonal neighbor toward a8, or NoSquare at the edge.
func (sq Square) UpLeft() Square { return sq.Step(DirUpLeft) }

// UpRight returns the diagonal neighbor toward h8, or NoSquare at the edge.
func (sq Square) UpRight() Square { return sq.Step(DirUpRight) }

// DownLeft returns the diagonal neighbor toward a1, or NoSquare at the edge.
func (sq Square) DownLeft() Square { return sq.Step(DirDownLeft) }

// DownRight returns the diagonal neighbor toward h1, or NoSquare at the edge.
func (sq Square) DownRight() Square { return sq.Step(DirDownRight) }

// Forward returns the neighbor toward the opponent's side for color c.
func (sq Square) Forward(c Color) Square {
	if c == White {
		return sq.Up()
	}
	return sq.Down()
}

// Backward returns the neighbor toward color c's own back rank.
func (sq Square) Backward(c Color) Square {
	if c == White {
		return sq.Down()
	}
	return sq.Up()
}

// RelativeRow returns the rank from a given color's perspective.
// For White, row 0 is the 1st rank; for Black, row 0 is the 8th rank.
func (sq Square) RelativeRow(c Color) int {
	if c == White {
		return sq.Row()
	}
	return 7 - sq.Row()
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col(), '1'+sq.Row())
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	col := int(s[0]) - 'a'
	row := int(s[1]) - '1'

	if col < 0 || col > 7 || row < 0 || row > 7 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return SquareAt(row, col), nil
}
