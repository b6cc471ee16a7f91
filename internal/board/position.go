package board

import (
	"errors"
	"fmt"
	"log"
)

// DebugHashValidation makes every MakeMove and TakeBackMove recompute the
// hash from scratch and panic when it differs from the incremental one.
var DebugHashValidation = false

// Position is a complete, mutable chess position with its move history.
// A Position is not safe for concurrent use; use Copy to hand one to
// another goroutine.
type Position struct {
	board [boardCells]Piece

	sideToMove     Color
	castling       CastlingRights
	enPassant      Square // NoSquare if none
	halfMoveClock  int
	fullMoveNumber int

	history []Move
	hash    uint64
	keys    *Keys

	promotion [2]Piece

	observers []observerEntry
	nextID    int
}

// Option configures a Position at construction time.
type Option func(*Position)

// WithKeys makes the position hash with k instead of DefaultKeys.
func WithKeys(k *Keys) Option {
	return func(p *Position) {
		if k != nil {
			p.keys = k
		}
	}
}

// WithObserver subscribes o to the position's move notifications.
func WithObserver(o MoveObserver) Option {
	return func(p *Position) {
		p.Subscribe(o)
	}
}

// newPosition returns an empty board with default state.
func newPosition(opts ...Option) *Position {
	p := &Position{
		sideToMove:     White,
		enPassant:      NoSquare,
		fullMoveNumber: 1,
		keys:           DefaultKeys,
		promotion:      [2]Piece{WhiteQueen, BlackQueen},
	}
	for i := range p.board {
		p.board[i] = OffBoard
	}
	for _, sq := range AllSquares {
		p.board[sq] = Empty
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewPosition creates the starting position.
func NewPosition(opts ...Option) *Position {
	setup, _ := ParseSetup(StartFEN)
	return FromSetup(setup, opts...)
}

// FromSetup creates a position from a parsed description.
func FromSetup(s Setup, opts ...Option) *Position {
	p := newPosition(opts...)
	for _, sq := range AllSquares {
		if pc := s.Board[sq.Index()]; pc.IsPiece() {
			p.board[sq] = pc
		}
	}
	p.sideToMove = s.SideToMove
	if p.sideToMove != Black {
		p.sideToMove = White
	}
	p.castling = s.Castling & AllCastling
	p.enPassant = NoSquare
	if p.capturableEnPassant(s.EnPassant) {
		p.enPassant = s.EnPassant
	}
	p.halfMoveClock = s.HalfMoveClock
	p.fullMoveNumber = s.FullMoveNumber
	if p.fullMoveNumber < 1 {
		p.fullMoveNumber = 1
	}
	p.hash = p.ComputeHash()
	return p
}

// capturableEnPassant reports whether sq is an en-passant target the side
// to move could capture on: behind an enemy pawn that just made a double
// step and has a pawn of the side to move next to it.
func (p *Position) capturableEnPassant(sq Square) bool {
	if !sq.IsValid() || sq.RelativeRow(p.sideToMove) != 5 {
		return false
	}
	pushed := sq.Backward(p.sideToMove)
	if p.board[pushed] != NewPiece(Pawn, p.sideToMove.Other()) {
		return false
	}
	own := NewPiece(Pawn, p.sideToMove)
	return p.board[pushed.Left()] == own || p.board[pushed.Right()] == own
}

// Copy creates a deep copy of the position, history included.
// Observers are not copied.
func (p *Position) Copy() *Position {
	newPos := *p
	newPos.history = append([]Move(nil), p.history...)
	newPos.observers = nil
	return &newPos
}

// PieceAt returns the piece at the given square. Padding cells hold OffBoard.
func (p *Position) PieceAt(sq Square) Piece {
	if int(sq) >= boardCells {
		return OffBoard
	}
	return p.board[sq]
}

// IsEmpty returns true if sq is a playable square with nothing on it.
func (p *Position) IsEmpty(sq Square) bool {
	return p.PieceAt(sq) == Empty
}

// SideToMove returns the color to play.
func (p *Position) SideToMove() Color { return p.sideToMove }

// CastlingRights returns the castling rights still available.
func (p *Position) CastlingRights() CastlingRights { return p.castling }

// EnPassantSquare returns the en passant target, NoSquare if none.
func (p *Position) EnPassantSquare() Square { return p.enPassant }

// HalfMoveClock returns the half-move clock as it was set up. Moves do not
// update it.
func (p *Position) HalfMoveClock() int { return p.halfMoveClock }

// FullMoveNumber returns the full move counter, starting at 1.
func (p *Position) FullMoveNumber() int { return p.fullMoveNumber }

// Hash returns the incrementally maintained zobrist hash.
func (p *Position) Hash() uint64 { return p.hash }

// Keys returns the key table the position hashes with.
func (p *Position) Keys() *Keys { return p.keys }

// History returns a copy of the moves made so far, oldest first.
func (p *Position) History() []Move {
	return append([]Move(nil), p.history...)
}

// LastMove returns the most recent move, if any.
func (p *Position) LastMove() (Move, bool) {
	if len(p.history) == 0 {
		return Move{}, false
	}
	return p.history[len(p.history)-1], true
}

// PromotionPiece returns the piece pawns of color c promote to.
func (p *Position) PromotionPiece(c Color) Piece {
	if c == Black {
		return p.promotion[Black]
	}
	return p.promotion[White]
}

// SetPromotionPiece changes the default promotion piece of the piece's
// side. Anything but a queen, rook, bishop or knight is ignored and false
// is returned.
func (p *Position) SetPromotionPiece(pc Piece) bool {
	switch pc.Type() {
	case Queen, Rook, Bishop, Knight:
		p.promotion[pc.Color()] = pc
		return true
	default:
		return false
	}
}

// SetPiece places pc on sq, replacing whatever stood there. With hash set
// the old occupant's key is removed and the new one added. Placing on a
// padding cell is a programming error and panics.
func (p *Position) SetPiece(pc Piece, sq Square, hash bool) {
	if !sq.IsValid() {
		panic(fmt.Sprintf("board: SetPiece on invalid square %d", sq))
	}
	if pc == OffBoard {
		panic("board: SetPiece with OffBoard")
	}
	if hash {
		p.hash ^= p.keys.PieceKey(p.board[sq], sq)
		p.hash ^= p.keys.PieceKey(pc, sq)
	}
	p.board[sq] = pc
}

// RemovePieceAt empties sq, removing the occupant's key when hash is set.
func (p *Position) RemovePieceAt(sq Square, hash bool) {
	p.SetPiece(Empty, sq, hash)
}

// KingSquare returns the square of color c's king, NoSquare if it has none.
func (p *Position) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	for _, sq := range AllSquares {
		if p.board[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// SquaresOf returns every square holding pc, a1 first.
func (p *Position) SquaresOf(pc Piece) []Square {
	var out []Square
	for _, sq := range AllSquares {
		if p.board[sq] == pc {
			out = append(out, sq)
		}
	}
	return out
}

// ComputeHash computes the zobrist hash from scratch.
func (p *Position) ComputeHash() uint64 {
	var h uint64
	for _, sq := range AllSquares {
		h ^= p.keys.PieceKey(p.board[sq], sq)
	}
	if p.sideToMove == Black {
		h ^= p.keys.SideKey()
	}
	if p.enPassant != NoSquare {
		h ^= p.keys.EnPassantKey(p.enPassant)
	}
	h ^= p.keys.CastlingKey(p.castling)
	return h
}

// MoveGenerator returns a generator reading this position.
func (p *Position) MoveGenerator() MoveGenerator {
	return MoveGenerator{pos: p}
}

// LegalMoves returns the legal moves of the side to move.
func (p *Position) LegalMoves() MoveList {
	return p.MoveGenerator().GenerateMoves(p.sideToMove, true)
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.isKingAttacked(p.sideToMove)
}

func (p *Position) isKingAttacked(c Color) bool {
	ksq := p.KingSquare(c)
	if ksq == NoSquare {
		return false
	}
	return p.MoveGenerator().IsAttacked(ksq, c.Other())
}

// IsCheckmate returns true if the side to move is in check and has no
// legal move.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && len(p.LegalMoves()) == 0
}

// IsStalemate returns true if the side to move is not in check but has no
// legal move.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && len(p.LegalMoves()) == 0
}

// Validate checks the placement for problems the move generator does not
// guard against.
func (p *Position) Validate() error {
	var errs []error
	if n := len(p.SquaresOf(WhiteKing)); n != 1 {
		errs = append(errs, fmt.Errorf("white must have exactly one king, has %d", n))
	}
	if n := len(p.SquaresOf(BlackKing)); n != 1 {
		errs = append(errs, fmt.Errorf("black must have exactly one king, has %d", n))
	}
	for _, sq := range append(Rows[0][:], Rows[7][:]...) {
		if p.board[sq].Type() == Pawn {
			errs = append(errs, fmt.Errorf("pawn on %s", sq))
		}
	}
	if p.isKingAttacked(p.sideToMove.Other()) {
		errs = append(errs, fmt.Errorf("%s king can be captured", p.sideToMove.Other()))
	}
	return errors.Join(errs...)
}

// verifyHash panics when the incremental hash has drifted.
func (p *Position) verifyHash(op string) {
	if want := p.ComputeHash(); want != p.hash {
		log.Printf("HASH: %s drifted: incremental %016x, computed %016x\n%s", op, p.hash, want, p)
		panic("board: zobrist hash drift after " + op)
	}
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	s := "\n"
	for row := 7; row >= 0; row-- {
		s += fmt.Sprintf("%d  ", row+1)
		for _, sq := range Rows[row] {
			s += p.board[sq].String() + " "
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.sideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.castling)
	s += fmt.Sprintf("En passant: %s\n", p.enPassant)
	s += fmt.Sprintf("Half-move clock: %d\n", p.halfMoveClock)
	s += fmt.Sprintf("Full move: %d\n", p.fullMoveNumber)
	s += fmt.Sprintf("Hash: %016x\n", p.hash)
	return s
}
