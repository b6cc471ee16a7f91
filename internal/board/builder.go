package board

// BuildMove describes the move from -> to in position p without checking
// that it is legal. p is not modified.
func BuildMove(p *Position, from, to Square) Move {
	pc := p.PieceAt(from)
	side := pc.Color()

	m := Move{
		Piece:           pc,
		From:            from,
		To:              to,
		Captured:        Empty,
		Promotion:       Empty,
		CastlingBefore:  p.castling,
		EnPassantBefore: p.enPassant,
		MoveNumber:      p.fullMoveNumber,
	}

	target := p.PieceAt(to)
	switch {
	case target.IsPiece() && side != NoColor && target.Color() != side:
		m.Captured = target
	case pc.Type() == Pawn && to != NoSquare && to == p.enPassant && from.Col() != to.Col():
		m.EnPassant = true
		m.Captured = NewPiece(Pawn, side.Other())
	}

	if m.IsPromotion() {
		m.Promotion = p.PromotionPiece(side)
	}
	return m
}
