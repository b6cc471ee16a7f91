package board

import "testing"

func mustParseFEN(t *testing.T, fen string) *Position {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	return pos
}

func TestPawnMovesFromStart(t *testing.T) {
	pos := NewPosition()
	moves := pos.MoveGenerator().PawnMoves(White, false)

	if len(moves) != 16 {
		t.Fatalf("got %d pawn moves, want 16: %v", len(moves), moves.Strings())
	}
	if !moves.Contains(E2, E4) || !moves.Contains(C2, C3) {
		t.Error("missing e2e4 or c2c3")
	}
	if moves.Contains(G2, G5) || moves.Contains(E2, D3) {
		t.Error("generated g2g5 or e2d3")
	}
}

func TestStartPositionMoveCount(t *testing.T) {
	pos := NewPosition()
	g := pos.MoveGenerator()
	if n := len(g.GenerateMoves(White, true)); n != 20 {
		t.Errorf("white has %d legal moves, want 20", n)
	}
	if n := len(g.KnightMoves(White, false)); n != 4 {
		t.Errorf("white has %d knight moves, want 4", n)
	}
	if n := len(g.GenerateMoves(Black, true)); n != 20 {
		t.Errorf("black has %d legal moves, want 20", n)
	}
	if n := len(g.GenerateCaptures(White, true)); n != 0 {
		t.Errorf("white has %d captures, want 0", n)
	}
}

func TestCastlingMovesGenerated(t *testing.T) {
	pos := mustParseFEN(t, "r3k2r/pppbqppp/2np1n2/2b1p3/2B1P3/2NP1N2/PPPBQPPP/R3K2R w KQkq - 14 8")
	g := pos.MoveGenerator()

	king := g.KingMoves(White, false)
	if !king.Contains(E1, G1) || !king.Contains(E1, C1) {
		t.Errorf("king moves %v should include both castlings", king.Strings())
	}
	for _, m := range king.Match(E1, G1) {
		if !m.IsCastling() {
			t.Error("e1g1 not flagged as castling")
		}
	}

	captures := g.KingMoves(White, true)
	if captures.Contains(E1, G1) || captures.Contains(E1, C1) {
		t.Error("castling generated in capture-only mode")
	}
	all := g.GenerateCaptures(White, true)
	if all.Contains(E1, G1) || all.Contains(E1, C1) {
		t.Error("castling listed among captures")
	}

	legal := g.GenerateMoves(White, true)
	if !legal.Contains(E1, G1) || !legal.Contains(E1, C1) {
		t.Error("both castlings should be legal")
	}
}

func TestCastlingNeedsEmptyPath(t *testing.T) {
	// b1 is occupied, so queenside castling is not available.
	pos := mustParseFEN(t, "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1")
	king := pos.MoveGenerator().KingMoves(White, false)
	if king.Contains(E1, C1) {
		t.Error("queenside castling with a knight on b1")
	}
	if !king.Contains(E1, G1) {
		t.Error("kingside castling missing")
	}
}

func TestCastlingLegality(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		from, to Square
		want     bool
	}{
		{"allowed", "r1bqk1nr/pppp1ppp/2n5/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 6 4", E1, G1, true},
		{"in check", "r1bqk1nr/p1pp1ppp/1pn1p3/8/1b1P4/5NP1/PPP1PPBP/RNBQK2R w KQkq - 8 5", E1, G1, false},
		{"through attacked square", "r1bqk2r/p1pp1ppp/1pn1Nn2/b7/3P4/6P1/PPPBPPBP/RN1QK2R b KQkq - 13 7", E8, G8, false},
		{"rook attacked", "r1b1k2r/p1p2ppp/1pn1pn2/b2q4/3P4/6PB/PPPBPP1P/RN1QK2R w KQkq - 16 9", E1, G1, true},
		{"no right", "r1bqk1nr/pppp1ppp/2n5/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w Qkq - 6 4", E1, G1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParseFEN(t, tc.fen)
			before := pos.Setup()
			got := pos.MakeMove(tc.from, tc.to, true, false)
			if got != tc.want {
				t.Fatalf("MakeMove(%v, %v) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
			if !got && pos.Setup() != before {
				t.Error("failed move changed the position")
			}
		})
	}
}

func TestCastlingMovesRook(t *testing.T) {
	pos := mustParseFEN(t, "r1bqk1nr/pppp1ppp/2n5/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 6 4")
	if !pos.MakeMove(E1, G1, true, false) {
		t.Fatal("castling failed")
	}
	if pos.PieceAt(G1) != WhiteKing || pos.PieceAt(F1) != WhiteRook {
		t.Error("king or rook not on g1/f1")
	}
	if !pos.IsEmpty(E1) || !pos.IsEmpty(H1) {
		t.Error("e1 or h1 not empty")
	}
	if pos.CastlingRights() != BlackKingSide|BlackQueenSide {
		t.Errorf("castling rights = %v, want kq", pos.CastlingRights())
	}

	if !pos.TakeBackMove() {
		t.Fatal("TakeBackMove failed")
	}
	if pos.PieceAt(E1) != WhiteKing || pos.PieceAt(H1) != WhiteRook || !pos.IsEmpty(F1) || !pos.IsEmpty(G1) {
		t.Error("castling not undone")
	}
	if pos.CastlingRights() != AllCastling {
		t.Errorf("castling rights = %v, want KQkq", pos.CastlingRights())
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	pos := mustParseFEN(t, "rnbqk1nr/pppp1ppp/4p3/8/1b1P4/2N5/PPP1PPPP/R1BQKBNR w KQkq - 4 3")
	g := pos.MoveGenerator()

	if n := len(g.KnightMoves(White, false).From(C3)); n == 0 {
		t.Fatal("pinned knight should still have pseudo-legal moves")
	}
	if n := len(pos.LegalMoves().From(C3)); n != 0 {
		t.Errorf("pinned knight has %d legal moves", n)
	}
	if pos.MakeMove(C3, E4, true, false) {
		t.Error("pinned knight moved")
	}
}

func TestKingCannotMoveIntoCheck(t *testing.T) {
	pos := mustParseFEN(t, "rnbqk1nr/pppp1ppp/8/2b1p3/4PP2/8/PPPP2PP/RNBQKBNR w KQkq - 4 3")
	if pos.MakeMove(E1, F2, true, false) {
		t.Error("king moved into the bishop's line")
	}
	if !pos.LegalMoves().Contains(E1, E2) {
		t.Error("Ke2 should be legal")
	}
}

func TestEnPassantGeneration(t *testing.T) {
	pos := mustParseFEN(t, "rnbqkbnr/p1p1ppp1/1p5p/3pP3/8/P7/1PPP1PPP/RNBQKBNR w KQkq d6 6 4")
	g := pos.MoveGenerator()

	pawns := g.PawnMoves(White, false)
	if !pawns.Contains(E5, D6) || !pawns.Contains(E5, E6) {
		t.Errorf("pawn moves %v should contain e5d6 and e5e6", pawns.Strings())
	}
	captures := g.GenerateCaptures(White, true)
	if !captures.Contains(E5, D6) {
		t.Error("en passant missing from captures")
	}
	for _, m := range captures.Match(E5, D6) {
		if !m.EnPassant || m.Captured != BlackPawn {
			t.Errorf("e5d6 = %+v, want en passant capturing a black pawn", m)
		}
	}
}

func TestBlackEnPassant(t *testing.T) {
	pos := mustParseFEN(t, "rnbqkbnr/pppp1ppp/8/8/4pP2/6PP/PPPPP3/RNBQKBNR b KQkq f3 5 3")
	hash := pos.Hash()

	if !pos.MakeMove(E4, F3, true, false) {
		t.Fatal("exf3 e.p. failed")
	}
	if pos.PieceAt(F3) != BlackPawn || !pos.IsEmpty(F4) || !pos.IsEmpty(E4) {
		t.Error("en passant not applied")
	}
	if pos.Hash() != pos.ComputeHash() {
		t.Error("hash drift after en passant")
	}

	pos.TakeBackMove()
	if pos.PieceAt(F4) != WhitePawn || pos.PieceAt(E4) != BlackPawn || !pos.IsEmpty(F3) {
		t.Error("en passant not undone")
	}
	if pos.EnPassantSquare() != F3 || pos.Hash() != hash {
		t.Error("state not restored")
	}
}

func TestAttackingMoves(t *testing.T) {
	pos := NewPosition()
	g := pos.MoveGenerator()

	attackers := g.AttackingMoves(F3, White)
	if len(attackers) != 3 {
		t.Fatalf("f3 attacked by %v, want e2, g2 and g1", attackers.Strings())
	}
	for _, from := range []Square{E2, G2, G1} {
		if !attackers.Contains(from, F3) {
			t.Errorf("missing attacker on %v", from)
		}
	}

	if len(g.AttackingMoves(E4, White)) != 0 {
		t.Error("e4 is not attacked from the start position")
	}
	if !g.IsAttacked(D3, White) || g.IsAttacked(D4, White) {
		t.Error("pawn diagonals should attack d3 but nothing attacks d4")
	}
	if !g.IsAttacked(F6, Black) {
		t.Error("f6 is covered by the g8 knight")
	}
}

func TestCheckmate(t *testing.T) {
	// Back rank mate, black to move.
	pos := mustParseFEN(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")

	t.Log("Checkmate position:")
	t.Log(pos)

	if !pos.InCheck() {
		t.Error("black should be in check")
	}
	if !pos.IsCheckmate() {
		t.Error("Expected checkmate but got false")
	}
	if pos.IsStalemate() {
		t.Error("checkmate is not stalemate")
	}
}

func TestStalemate(t *testing.T) {
	pos := mustParseFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if pos.InCheck() {
		t.Error("black is not in check")
	}
	if !pos.IsStalemate() || !pos.IsDraw() {
		t.Error("expected stalemate")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		{"8/8/8/4k3/8/8/8/4K3 w - - 0 1", true},
		{"8/8/8/4k3/8/8/8/4K1N1 w - - 0 1", true},
		{"8/8/8/4k3/8/8/4P3/4K3 w - - 0 1", false},
		{"8/8/8/4k3/8/8/8/3BK1N1 w - - 0 1", false},
	}
	for _, tc := range tests {
		pos := mustParseFEN(t, tc.fen)
		if got := pos.IsInsufficientMaterial(); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.fen, got, tc.want)
		}
	}
}

func TestPromotionVariants(t *testing.T) {
	pos := mustParseFEN(t, "rnbqkb1r/ppppnpP1/4p2p/8/8/8/PPPPP1PP/RNBQKBNR w KQkq - 8 5")
	g := pos.MoveGenerator()
	pawn := g.PawnMoves(White, false).From(G7)
	if len(pawn) != 3 {
		t.Fatalf("g7 pawn moves = %v, want g8, f8 and h8", pawn.Strings())
	}
	variants := g.PromotionVariants(pawn)
	if len(variants) != 12 {
		t.Errorf("got %d promotion variants, want 12", len(variants))
	}
}
