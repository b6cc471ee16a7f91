package board

// MakeMove plays the move from -> to and reports whether it was applied.
//
// With validate set the move must match exactly one legal move of the side
// to move; promotions use the side's promotion piece. Without it the move
// is built from the current state and applied as is, which is meant for
// replaying moves already known to be legal. With notify set the
// position's observers are told about the move.
func (p *Position) MakeMove(from, to Square, validate, notify bool) bool {
	var m Move
	if validate {
		var matches MoveList
		for _, c := range p.LegalMoves().Match(from, to) {
			if c.IsPromotion() && c.Promotion != p.PromotionPiece(c.Piece.Color()) {
				continue
			}
			matches = append(matches, c)
		}
		if len(matches) != 1 {
			return false
		}
		m = matches[0]
	} else {
		if !from.IsValid() || !to.IsValid() || !p.board[from].IsPiece() {
			return false
		}
		m = BuildMove(p, from, to)
	}

	m = p.apply(m, true)
	if DebugHashValidation {
		p.verifyHash("MakeMove " + m.String())
	}
	if notify {
		p.notify(m)
	}
	return true
}

// PlayMove makes m if it equals one of the legal moves of the side to
// move, any promotion piece allowed. It reports whether m was made.
func (p *Position) PlayMove(m Move, notify bool) bool {
	found := false
	for _, c := range p.MoveGenerator().PromotionVariants(p.LegalMoves()) {
		if c.Equal(m) {
			m, found = c, true
			break
		}
	}
	if !found {
		return false
	}

	m = p.apply(m, true)
	if DebugHashValidation {
		p.verifyHash("PlayMove " + m.String())
	}
	if notify {
		p.notify(m)
	}
	return true
}

// TakeBackMove undoes the last move. It returns false if there is none.
func (p *Position) TakeBackMove() bool {
	if len(p.history) == 0 {
		return false
	}
	m := p.undo()
	if DebugHashValidation {
		p.verifyHash("TakeBackMove " + m.String())
	}
	return true
}

// apply plays m, pushes it on the history and returns it with its check
// flag filled in when evalCheck is set.
func (p *Position) apply(m Move, evalCheck bool) Move {
	side := m.Piece.Color()

	p.SetPiece(Empty, m.From, true)
	p.SetPiece(m.Piece, m.To, true)

	if m.IsCastling() {
		l, _ := castlingFor(m.From, m.To)
		rook := p.board[l.rookFrom]
		p.SetPiece(Empty, l.rookFrom, true)
		p.SetPiece(rook, l.rookTo, true)
	}

	if m.EnPassant {
		p.SetPiece(Empty, m.To.Backward(side), true)
	}

	if m.IsPromotion() && m.Promotion != Empty {
		p.SetPiece(m.Promotion, m.To, true)
	}

	cr := p.castling
	if m.Piece.Type() == King {
		ks, qs := sideRights(side)
		cr = cr.Without(ks | qs)
	}
	// Leaving or landing on a rook home square ends that right.
	cr = cr.Without(rookHomeRights(m.From) | rookHomeRights(m.To))
	p.setCastling(cr)

	ep := NoSquare
	if m.Piece.Type() == Pawn && m.From.RelativeRow(side) == 1 && m.To == m.From.Forward(side).Forward(side) {
		enemy := NewPiece(Pawn, side.Other())
		if p.PieceAt(m.To.Left()) == enemy || p.PieceAt(m.To.Right()) == enemy {
			ep = m.From.Forward(side)
		}
	}
	p.setEnPassant(ep)

	p.sideToMove = p.sideToMove.Other()
	p.hash ^= p.keys.SideKey()

	if evalCheck {
		m.Check = p.InCheck()
	}

	if p.sideToMove == White {
		p.fullMoveNumber++
	}

	p.history = append(p.history, m)
	return m
}

// undo pops the last move and restores the state before it.
func (p *Position) undo() Move {
	m := p.history[len(p.history)-1]
	side := m.Piece.Color()

	p.SetPiece(Empty, m.To, true)
	p.SetPiece(m.Piece, m.From, true)

	if m.IsCastling() {
		l, _ := castlingFor(m.From, m.To)
		rook := p.board[l.rookTo]
		p.SetPiece(Empty, l.rookTo, true)
		p.SetPiece(rook, l.rookFrom, true)
	}

	p.setEnPassant(m.EnPassantBefore)

	if m.Captured != Empty {
		sq := m.To
		if m.EnPassant {
			sq = m.To.Backward(side)
		}
		p.SetPiece(m.Captured, sq, true)
	}

	p.setCastling(m.CastlingBefore)

	p.sideToMove = p.sideToMove.Other()
	p.hash ^= p.keys.SideKey()
	if p.sideToMove == Black {
		p.fullMoveNumber--
	}

	p.history = p.history[:len(p.history)-1]
	return m
}

func (p *Position) setCastling(cr CastlingRights) {
	if cr == p.castling {
		return
	}
	p.hash ^= p.keys.CastlingKey(p.castling)
	p.castling = cr
	p.hash ^= p.keys.CastlingKey(p.castling)
}

func (p *Position) setEnPassant(sq Square) {
	if sq == p.enPassant {
		return
	}
	if p.enPassant != NoSquare {
		p.hash ^= p.keys.EnPassantKey(p.enPassant)
	}
	p.enPassant = sq
	if p.enPassant != NoSquare {
		p.hash ^= p.keys.EnPassantKey(p.enPassant)
	}
}
