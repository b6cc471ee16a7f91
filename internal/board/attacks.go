package board

var knightJumps = [8]Direction{
	2*DirUp + DirLeft, 2*DirUp + DirRight,
	2*DirDown + DirLeft, 2*DirDown + DirRight,
	DirUp + 2*DirLeft, DirUp + 2*DirRight,
	DirDown + 2*DirLeft, DirDown + 2*DirRight,
}

// pawnCaptureDirs returns the two diagonal forward directions of color c.
func pawnCaptureDirs(c Color) [2]Direction {
	if c == White {
		return [2]Direction{DirUpLeft, DirUpRight}
	}
	return [2]Direction{DirDownLeft, DirDownRight}
}

// forEachAttacker calls fn with every square holding a piece of color by
// that attacks sq, stopping early when fn returns false. Pawns attack
// their forward diagonals whether or not anything stands there; pushes and
// castling never attack.
func (g MoveGenerator) forEachAttacker(sq Square, by Color, fn func(from Square) bool) {
	p := g.pos
	if !sq.IsValid() {
		return
	}

	pawn := NewPiece(Pawn, by)
	for _, d := range pawnCaptureDirs(by.Other()) {
		if from := sq.Step(d); p.PieceAt(from) == pawn && !fn(from) {
			return
		}
	}

	knight := NewPiece(Knight, by)
	for _, d := range knightJumps {
		if from := sq.Step(d); p.PieceAt(from) == knight && !fn(from) {
			return
		}
	}

	king := NewPiece(King, by)
	for _, d := range kingSteps {
		if from := sq.Step(d); p.PieceAt(from) == king && !fn(from) {
			return
		}
	}

	queen := NewPiece(Queen, by)
	rook := NewPiece(Rook, by)
	for _, d := range orthogonals {
		if from := g.firstOccupied(sq, d); from != NoSquare {
			if pc := p.board[from]; (pc == rook || pc == queen) && !fn(from) {
				return
			}
		}
	}

	bishop := NewPiece(Bishop, by)
	for _, d := range diagonals {
		if from := g.firstOccupied(sq, d); from != NoSquare {
			if pc := p.board[from]; (pc == bishop || pc == queen) && !fn(from) {
				return
			}
		}
	}
}

// firstOccupied walks from sq in direction d and returns the first square
// holding a piece, NoSquare if the walk reaches the edge.
func (g MoveGenerator) firstOccupied(sq Square, d Direction) Square {
	for to := sq.Step(d); to != NoSquare; to = to.Step(d) {
		if g.pos.board[to] != Empty {
			return to
		}
	}
	return NoSquare
}

// AttackingMoves returns the moves of color by that attack sq.
func (g MoveGenerator) AttackingMoves(sq Square, by Color) MoveList {
	var ml MoveList
	g.forEachAttacker(sq, by, func(from Square) bool {
		ml = append(ml, BuildMove(g.pos, from, sq))
		return true
	})
	return ml
}

// IsAttacked returns true if any piece of color by attacks sq.
func (g MoveGenerator) IsAttacked(sq Square, by Color) bool {
	attacked := false
	g.forEachAttacker(sq, by, func(Square) bool {
		attacked = true
		return false
	})
	return attacked
}
