package board

// MoveGenerator enumerates moves of a position. It holds no state of its
// own; the legality filter temporarily plays moves on the position and
// takes them back before returning.
type MoveGenerator struct {
	pos *Position
}

// GenerateMoves returns the moves of color c: pawns, bishops, knights,
// rooks, queens and king, in that order. With legalOnly set moves leaving
// c's king attacked are dropped.
func (g MoveGenerator) GenerateMoves(c Color, legalOnly bool) MoveList {
	return g.generate(c, false, legalOnly)
}

// GenerateCaptures is GenerateMoves restricted to capturing moves.
func (g MoveGenerator) GenerateCaptures(c Color, legalOnly bool) MoveList {
	return g.generate(c, true, legalOnly)
}

func (g MoveGenerator) generate(c Color, captureOnly, legalOnly bool) MoveList {
	ml := make(MoveList, 0, 64)
	ml = append(ml, g.PawnMoves(c, captureOnly)...)
	ml = append(ml, g.BishopMoves(c, captureOnly)...)
	ml = append(ml, g.KnightMoves(c, captureOnly)...)
	ml = append(ml, g.RookMoves(c, captureOnly)...)
	ml = append(ml, g.QueenMoves(c, captureOnly)...)
	ml = append(ml, g.KingMoves(c, captureOnly)...)
	if legalOnly {
		return g.FilterLegal(ml)
	}
	return ml
}

// PawnMoves returns the pseudo-legal pawn moves of color c.
func (g MoveGenerator) PawnMoves(c Color, captureOnly bool) MoveList {
	return g.forPieces(NewPiece(Pawn, c), captureOnly, g.pawnMoves)
}

// KnightMoves returns the pseudo-legal knight moves of color c.
func (g MoveGenerator) KnightMoves(c Color, captureOnly bool) MoveList {
	return g.forPieces(NewPiece(Knight, c), captureOnly, func(ml MoveList, from Square, captureOnly bool) MoveList {
		return g.stepMoves(ml, from, knightJumps[:], captureOnly)
	})
}

// BishopMoves returns the pseudo-legal bishop moves of color c.
func (g MoveGenerator) BishopMoves(c Color, captureOnly bool) MoveList {
	return g.forPieces(NewPiece(Bishop, c), captureOnly, func(ml MoveList, from Square, captureOnly bool) MoveList {
		return g.slideMoves(ml, from, diagonals[:], captureOnly)
	})
}

// RookMoves returns the pseudo-legal rook moves of color c.
func (g MoveGenerator) RookMoves(c Color, captureOnly bool) MoveList {
	return g.forPieces(NewPiece(Rook, c), captureOnly, func(ml MoveList, from Square, captureOnly bool) MoveList {
		return g.slideMoves(ml, from, orthogonals[:], captureOnly)
	})
}

// QueenMoves returns the pseudo-legal queen moves of color c.
func (g MoveGenerator) QueenMoves(c Color, captureOnly bool) MoveList {
	return g.forPieces(NewPiece(Queen, c), captureOnly, func(ml MoveList, from Square, captureOnly bool) MoveList {
		return g.slideMoves(ml, from, kingSteps[:], captureOnly)
	})
}

// KingMoves returns the pseudo-legal king moves of color c, castling
// included unless captureOnly is set. Castling is emitted whenever the
// right is held and the squares between king and rook are empty; whether
// the king passes an attacked square is left to FilterLegal.
func (g MoveGenerator) KingMoves(c Color, captureOnly bool) MoveList {
	return g.forPieces(NewPiece(King, c), captureOnly, func(ml MoveList, from Square, captureOnly bool) MoveList {
		ml = g.stepMoves(ml, from, kingSteps[:], captureOnly)
		if !captureOnly {
			ml = g.castlingMoves(ml, from, c)
		}
		return ml
	})
}

type pieceGen func(ml MoveList, from Square, captureOnly bool) MoveList

// forPieces runs gen for every square holding pc.
func (g MoveGenerator) forPieces(pc Piece, captureOnly bool, gen pieceGen) MoveList {
	var ml MoveList
	for _, sq := range AllSquares {
		if g.pos.board[sq] == pc {
			ml = gen(ml, sq, captureOnly)
		}
	}
	return ml
}

func (g MoveGenerator) pawnMoves(ml MoveList, from Square, captureOnly bool) MoveList {
	p := g.pos
	side := p.board[from].Color()

	if !captureOnly {
		if one := from.Forward(side); one != NoSquare && p.IsEmpty(one) {
			ml = append(ml, BuildMove(p, from, one))
			if from.RelativeRow(side) == 1 {
				if two := one.Forward(side); two != NoSquare && p.IsEmpty(two) {
					ml = append(ml, BuildMove(p, from, two))
				}
			}
		}
	}

	for _, d := range pawnCaptureDirs(side) {
		to := from.Step(d)
		if to == NoSquare {
			continue
		}
		target := p.board[to]
		enemy := target.IsPiece() && target.Color() != side
		enPassant := to == p.enPassant && to.RelativeRow(side) == 5
		if enemy || enPassant {
			ml = append(ml, BuildMove(p, from, to))
		}
	}
	return ml
}

// stepMoves adds single-step moves (knight or king) onto squares not held
// by the mover's own side.
func (g MoveGenerator) stepMoves(ml MoveList, from Square, dirs []Direction, captureOnly bool) MoveList {
	p := g.pos
	side := p.board[from].Color()
	for _, d := range dirs {
		to := from.Step(d)
		if to == NoSquare {
			continue
		}
		target := p.board[to]
		if target.Color() == side {
			continue
		}
		if captureOnly && target == Empty {
			continue
		}
		ml = append(ml, BuildMove(p, from, to))
	}
	return ml
}

// slideMoves walks each direction until the edge or a piece. An enemy
// piece is included as a capture, an own piece is not.
func (g MoveGenerator) slideMoves(ml MoveList, from Square, dirs []Direction, captureOnly bool) MoveList {
	p := g.pos
	side := p.board[from].Color()
	for _, d := range dirs {
		for to := from.Step(d); to != NoSquare; to = to.Step(d) {
			target := p.board[to]
			if target == Empty {
				if !captureOnly {
					ml = append(ml, BuildMove(p, from, to))
				}
				continue
			}
			if target.Color() != side {
				ml = append(ml, BuildMove(p, from, to))
			}
			break
		}
	}
	return ml
}

func (g MoveGenerator) castlingMoves(ml MoveList, from Square, c Color) MoveList {
	p := g.pos
	rook := NewPiece(Rook, c)
	ks, qs := sideRights(c)
	for i := range castlingLayouts {
		l := &castlingLayouts[i]
		if l.right != ks && l.right != qs {
			continue
		}
		if l.kingFrom != from || !p.castling.Has(l.right) || p.board[l.rookFrom] != rook {
			continue
		}
		clear := true
		for _, sq := range l.between {
			if p.board[sq] != Empty {
				clear = false
				break
			}
		}
		if clear {
			ml = append(ml, BuildMove(p, from, l.kingTo))
		}
	}
	return ml
}

// FilterLegal returns the moves of ml that do not leave the mover's king
// attacked. Castling is rejected first if the king starts on, passes or
// lands on an attacked square. Every other check plays the move on the
// position and takes it back.
func (g MoveGenerator) FilterLegal(ml MoveList) MoveList {
	p := g.pos
	legal := make(MoveList, 0, len(ml))
	for _, m := range ml {
		side := m.Piece.Color()
		if m.IsCastling() {
			l, _ := castlingFor(m.From, m.To)
			if g.anyAttacked(l.kingPath, side.Other()) {
				continue
			}
		}

		p.apply(m, false)
		ok := !p.isKingAttacked(side)
		p.undo()

		if ok {
			legal = append(legal, m)
		}
	}
	return legal
}

func (g MoveGenerator) anyAttacked(squares []Square, by Color) bool {
	for _, sq := range squares {
		if g.IsAttacked(sq, by) {
			return true
		}
	}
	return false
}

// PromotionVariants replaces every promotion in ml with one move per
// promotion piece: queen, rook, bishop and knight.
func (g MoveGenerator) PromotionVariants(ml MoveList) MoveList {
	out := make(MoveList, 0, len(ml))
	for _, m := range ml {
		if !m.IsPromotion() {
			out = append(out, m)
			continue
		}
		c := m.Piece.Color()
		for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
			v := m
			v.Promotion = NewPiece(pt, c)
			out = append(out, v)
		}
	}
	return out
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	return len(p.LegalMoves()) > 0
}

// IsDraw returns true for stalemate or insufficient material. The
// half-move clock is not maintained by moves, so the fifty-move rule is
// not considered.
func (p *Position) IsDraw() bool {
	return p.IsInsufficientMaterial() || p.IsStalemate()
}

// IsInsufficientMaterial returns true if neither side can checkmate.
func (p *Position) IsInsufficientMaterial() bool {
	var minors [2]int
	for _, sq := range AllSquares {
		pc := p.board[sq]
		switch pc.Type() {
		case Pawn, Rook, Queen:
			return false
		case Knight, Bishop:
			minors[pc.Color()]++
		}
	}

	// K vs K, K+minor vs K
	if minors[White]+minors[Black] == 0 {
		return true
	}
	if minors[White] <= 1 && minors[Black] == 0 {
		return true
	}
	return minors[Black] <= 1 && minors[White] == 0
}
