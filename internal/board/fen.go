package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN failure categories. Errors returned by ParseSetup and ParseFEN wrap
// one or more of these.
var (
	ErrFieldCount     = errors.New("wrong number of fields")
	ErrRankCount      = errors.New("wrong number of ranks")
	ErrPieceChar      = errors.New("invalid piece character")
	ErrFileCount      = errors.New("rank does not cover 8 files")
	ErrSideToMove     = errors.New("invalid side to move")
	ErrCastlingChar   = errors.New("invalid castling character")
	ErrEnPassant      = errors.New("invalid en passant square")
	ErrHalfMoveClock  = errors.New("invalid half-move clock")
	ErrFullMoveNumber = errors.New("invalid full-move number")
)

// Setup is the plain description of a position: what a FEN string holds.
type Setup struct {
	Board          [64]Piece // indexed by Square.Index
	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square // NoSquare if none
	HalfMoveClock  int
	FullMoveNumber int
}

// ParseSetup parses a six-field FEN string. Every field is checked even
// after an earlier one failed, so the returned error joins one wrapped
// sentinel per problem found; scanning of a rank stops at its first bad
// character. On error the returned Setup holds whatever was parsed.
func ParseSetup(fen string) (Setup, error) {
	s := Setup{
		SideToMove:     White,
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}

	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return s, fmt.Errorf("%w: need 6, got %d", ErrFieldCount, len(parts))
	}

	var errs []error

	// Piece placement (field 0)
	errs = append(errs, parsePlacement(&s, parts[0])...)

	// Side to move (field 1)
	switch parts[1] {
	case "w":
		s.SideToMove = White
	case "b":
		s.SideToMove = Black
	default:
		errs = append(errs, fmt.Errorf("%w: %s", ErrSideToMove, parts[1]))
	}

	// Castling rights (field 2)
	cr, err := ParseCastlingRights(parts[2])
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: %s", ErrCastlingChar, parts[2]))
	}
	s.Castling = cr

	// En passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil || (sq.Row() != 2 && sq.Row() != 5) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrEnPassant, parts[3]))
		} else {
			s.EnPassant = sq
		}
	}

	// Half-move clock (field 4)
	if hmc, err := strconv.Atoi(parts[4]); err != nil || hmc < 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrHalfMoveClock, parts[4]))
	} else {
		s.HalfMoveClock = hmc
	}

	// Full-move number (field 5)
	if fmn, err := strconv.Atoi(parts[5]); err != nil || fmn < 1 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrFullMoveNumber, parts[5]))
	} else {
		s.FullMoveNumber = fmn
	}

	return s, errors.Join(errs...)
}

// parsePlacement parses the piece placement section of a FEN string.
func parsePlacement(s *Setup, placement string) []error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return []error{fmt.Errorf("%w: need 8, got %d", ErrRankCount, len(ranks))}
	}

	var errs []error
	for i, rankStr := range ranks {
		row := 7 - i // FEN starts from rank 8
		col := 0
		bad := false

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			piece, ok := PieceFromFEN(c)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %c in rank %d", ErrPieceChar, c, row+1))
				bad = true
				break
			}
			if col < 8 {
				s.Board[SquareAt(row, col).Index()] = piece
			}
			col++
		}

		if !bad && col != 8 {
			errs = append(errs, fmt.Errorf("%w: rank %d has %d", ErrFileCount, row+1, col))
		}
	}
	return errs
}

// ParseFEN parses a FEN string and returns a Position.
func ParseFEN(fen string, opts ...Option) (*Position, error) {
	s, err := ParseSetup(fen)
	if err != nil {
		return nil, fmt.Errorf("invalid FEN %q: %w", fen, err)
	}
	return FromSetup(s, opts...), nil
}

// Setup returns the description of the position.
func (p *Position) Setup() Setup {
	s := Setup{
		SideToMove:     p.sideToMove,
		Castling:       p.castling,
		EnPassant:      p.enPassant,
		HalfMoveClock:  p.halfMoveClock,
		FullMoveNumber: p.fullMoveNumber,
	}
	for _, sq := range AllSquares {
		s.Board[sq.Index()] = p.board[sq]
	}
	return s
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	return p.Setup().FEN()
}

// FEN returns the FEN string of the description.
func (s Setup) FEN() string {
	var sb strings.Builder

	// Piece placement
	for row := 7; row >= 0; row-- {
		empty := 0
		for _, sq := range Rows[row] {
			piece := s.Board[sq.Index()]
			if !piece.IsPiece() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(piece.FEN())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if s.SideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}

	// Castling rights
	sb.WriteByte(' ')
	sb.WriteString(s.Castling.String())

	// En passant
	sb.WriteByte(' ')
	sb.WriteString(s.EnPassant.String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.FullMoveNumber))

	return sb.String()
}
