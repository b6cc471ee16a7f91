package board

import "testing"

func TestPieceColor(t *testing.T) {
	tests := []struct {
		piece Piece
		want  Color
	}{
		{WhitePawn, White},
		{WhiteKing, White},
		{BlackPawn, Black},
		{BlackQueen, Black},
		{Empty, NoColor},
		{OffBoard, NoColor},
	}
	for _, tc := range tests {
		if got := tc.piece.Color(); got != tc.want {
			t.Errorf("%v.Color() = %v, want %v", tc.piece, got, tc.want)
		}
	}
}

func TestPieceFENBijection(t *testing.T) {
	seen := map[byte]Piece{}
	for _, pc := range AllPieces {
		ch := pc.FEN()
		if prev, dup := seen[ch]; dup {
			t.Fatalf("%v and %v share FEN letter %c", prev, pc, ch)
		}
		seen[ch] = pc

		back, ok := PieceFromFEN(ch)
		if !ok || back != pc {
			t.Errorf("PieceFromFEN(%c) = %v, %v; want %v", ch, back, ok, pc)
		}
	}
	if len(seen) != 12 {
		t.Errorf("got %d distinct letters, want 12", len(seen))
	}

	for _, ch := range []byte{'x', 'X', '1', ' ', 0} {
		if _, ok := PieceFromFEN(ch); ok {
			t.Errorf("PieceFromFEN(%q) should not map", ch)
		}
	}
	if Empty.FEN() != 0 || OffBoard.FEN() != 0 {
		t.Error("Empty and OffBoard must not have FEN letters")
	}
}

func TestPieceSymbol(t *testing.T) {
	want := map[PieceType]string{
		Pawn: "", Knight: "N", Bishop: "B", Rook: "R", Queen: "Q", King: "K",
	}
	for pt, s := range want {
		if got := NewPiece(pt, White).Symbol(); got != s {
			t.Errorf("white %v symbol = %q, want %q", pt, got, s)
		}
		if got := NewPiece(pt, Black).Symbol(); got != s {
			t.Errorf("black %v symbol = %q, want %q", pt, got, s)
		}
	}
}

func TestNewPiece(t *testing.T) {
	if NewPiece(Knight, Black) != BlackKnight {
		t.Error("NewPiece(Knight, Black) != BlackKnight")
	}
	if NewPiece(NoPieceType, White) != Empty || NewPiece(Queen, NoColor) != Empty {
		t.Error("NewPiece should yield Empty for missing type or color")
	}
	if BlackRook.Type() != Rook || OffBoard.Type() != NoPieceType {
		t.Error("Type mismatch")
	}
}
