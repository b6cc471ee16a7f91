package board

import (
	"fmt"
	"strings"
)

// NotationStyle selects short or long algebraic notation.
type NotationStyle uint8

const (
	Short NotationStyle = iota // Nf3, exd5, gxf8Q+
	Long                       // Ng1-f3, e4xd5, g7xf8Q+
)

// Notation renders the move from its own fields: no disambiguation is
// attempted and the check marker comes from m.Check.
func (m Move) Notation(style NotationStyle) string {
	var sb strings.Builder

	if m.IsCastling() {
		if m.To.Col() > m.From.Col() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		sb.WriteString(m.Piece.Symbol())
		switch {
		case style == Long:
			sb.WriteString(m.From.String())
			if m.IsCapture() {
				sb.WriteByte('x')
			} else {
				sb.WriteByte('-')
			}
		case m.IsCapture():
			if m.Piece.Type() == Pawn {
				sb.WriteByte(byte('a' + m.From.Col()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.IsPromotion() && m.Promotion != Empty {
			sb.WriteString(m.Promotion.Symbol())
		}
	}

	if m.Check {
		sb.WriteByte('+')
	}
	return sb.String()
}

// SAN returns the Standard Algebraic Notation of m, which must be a move
// of the side to move in p. Ambiguous piece moves get the origin file,
// rank, or both, and mate is marked with '#'.
func (p *Position) SAN(m Move) string {
	var sb strings.Builder

	if m.IsCastling() {
		if m.To.Col() > m.From.Col() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		pt := m.Piece.Type()
		sb.WriteString(m.Piece.Symbol())
		if pt != Pawn {
			sb.WriteString(p.disambiguation(m))
		}
		if m.IsCapture() {
			if pt == Pawn {
				sb.WriteByte(byte('a' + m.From.Col()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.IsPromotion() && m.Promotion != Empty {
			sb.WriteByte('=')
			sb.WriteString(m.Promotion.Symbol())
		}
	}

	// Make the move temporarily to look at the reply.
	m = p.apply(m, true)
	mate := m.Check && !p.HasLegalMoves()
	p.undo()

	switch {
	case mate:
		sb.WriteByte('#')
	case m.Check:
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguation returns the origin file, rank, or square needed to tell
// m apart from other legal moves of the same piece kind to the same square.
func (p *Position) disambiguation(m Move) string {
	var candidates []Square
	for _, o := range p.LegalMoves() {
		if o.To == m.To && o.From != m.From && o.Piece == m.Piece {
			candidates = append(candidates, o.From)
		}
	}

	// No ambiguity
	if len(candidates) == 0 {
		return ""
	}

	sameFile := false
	sameRank := false
	for _, sq := range candidates {
		if sq.Col() == m.From.Col() {
			sameFile = true
		}
		if sq.Row() == m.From.Row() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + m.From.Col()))
	}
	if !sameRank {
		return string(rune('1' + m.From.Row()))
	}
	return m.From.String()
}

// ParseSAN finds the legal move of the side to move written as s. Check
// and mate markers are optional and the '=' before a promotion piece may
// be left out.
func ParseSAN(s string, p *Position) (Move, error) {
	want := normalizeSAN(s)
	if want == "" {
		return Move{}, fmt.Errorf("empty move")
	}
	for _, m := range p.MoveGenerator().PromotionVariants(p.LegalMoves()) {
		if normalizeSAN(p.SAN(m)) == want {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("no legal move matches %q", s)
}

func normalizeSAN(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")
	s = strings.ReplaceAll(s, "=", "")
	return strings.ReplaceAll(s, "0", "O")
}
