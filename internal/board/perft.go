package board

import "sort"

// Perft counts the leaf nodes of the legal move tree at the given depth,
// counting every promotion piece separately. The standard way to verify
// move generation.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	g := p.MoveGenerator()
	moves := g.PromotionVariants(p.LegalMoves())
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		p.apply(m, false)
		nodes += Perft(p, depth-1)
		p.undo()
	}
	return nodes
}

// DivideEntry is the node count below one root move.
type DivideEntry struct {
	Move  string
	Nodes uint64
}

// Divide runs Perft below each legal root move, sorted by move.
func Divide(p *Position, depth int) []DivideEntry {
	if depth <= 0 {
		return nil
	}
	g := p.MoveGenerator()
	moves := g.PromotionVariants(p.LegalMoves())
	out := make([]DivideEntry, 0, len(moves))
	for _, m := range moves {
		p.apply(m, false)
		out = append(out, DivideEntry{Move: m.String(), Nodes: Perft(p, depth-1)})
		p.undo()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Move < out[j].Move })
	return out
}

// PerftStats breaks the leaf nodes of a perft run down by move kind.
type PerftStats struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
}

// Add accumulates o into s.
func (s *PerftStats) Add(o PerftStats) {
	s.Nodes += o.Nodes
	s.Captures += o.Captures
	s.EnPassant += o.EnPassant
	s.Castles += o.Castles
	s.Promotions += o.Promotions
	s.Checks += o.Checks
}

// PerftDetailed is Perft that also classifies the moves leading to the
// leaves.
func PerftDetailed(p *Position, depth int) PerftStats {
	var s PerftStats
	if depth <= 0 {
		s.Nodes = 1
		return s
	}

	moves := p.MoveGenerator().PromotionVariants(p.LegalMoves())
	for _, m := range moves {
		if depth > 1 {
			p.apply(m, false)
			s.Add(PerftDetailed(p, depth-1))
			p.undo()
			continue
		}

		m = p.apply(m, true)
		p.undo()
		s.Nodes++
		if m.IsCapture() {
			s.Captures++
		}
		if m.EnPassant {
			s.EnPassant++
		}
		if m.IsCastling() {
			s.Castles++
		}
		if m.IsPromotion() {
			s.Promotions++
		}
		if m.Check {
			s.Checks++
		}
	}
	return s
}
