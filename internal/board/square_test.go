package board

import "testing"

func TestSquareLayout(t *testing.T) {
	if A1 != 26 || H1 != 33 || A8 != 110 || H8 != 117 {
		t.Fatalf("unexpected mailbox layout: a1=%d h1=%d a8=%d h8=%d", A1, H1, A8, H8)
	}
	if NoSquare.IsValid() {
		t.Error("NoSquare must not be a playable square")
	}
	if AllSquares[0] != A1 || AllSquares[63] != H8 || AllSquares[8] != A2 {
		t.Errorf("AllSquares order: got %v %v %v", AllSquares[0], AllSquares[8], AllSquares[63])
	}
	for row := 0; row < 8; row++ {
		for col, sq := range Rows[row] {
			if sq.Row() != row || sq.Col() != col {
				t.Errorf("Rows[%d][%d] = %v, has row %d col %d", row, col, sq, sq.Row(), sq.Col())
			}
		}
	}
}

func TestSquareNeighbors(t *testing.T) {
	tests := []struct {
		name string
		got  Square
		want Square
	}{
		{"e4 up", E4.Up(), E5},
		{"e4 down", E4.Down(), E3},
		{"e4 left", E4.Left(), D4},
		{"e4 right", E4.Right(), F4},
		{"e4 up-left", E4.UpLeft(), D5},
		{"e4 up-right", E4.UpRight(), F5},
		{"e4 down-left", E4.DownLeft(), D3},
		{"e4 down-right", E4.DownRight(), F3},
		{"a1 left", A1.Left(), NoSquare},
		{"a1 down", A1.Down(), NoSquare},
		{"a1 down-left", A1.DownLeft(), NoSquare},
		{"h1 right", H1.Right(), NoSquare},
		{"h8 up", H8.Up(), NoSquare},
		{"h8 up-right", H8.UpRight(), NoSquare},
		{"a8 up-left", A8.UpLeft(), NoSquare},
		{"h4 right does not wrap", H4.Right(), NoSquare},
		{"a5 left does not wrap", A5.Left(), NoSquare},
		{"NoSquare up", NoSquare.Up(), NoSquare},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}
}

func TestSquareAt(t *testing.T) {
	if got := SquareAt(3, 4); got != E4 {
		t.Errorf("SquareAt(3, 4) = %v, want e4", got)
	}
	for _, rc := range [][2]int{{-1, 0}, {0, 8}, {8, 0}, {0, -1}} {
		if got := SquareAt(rc[0], rc[1]); got != NoSquare {
			t.Errorf("SquareAt(%d, %d) = %v, want NoSquare", rc[0], rc[1], got)
		}
	}
	for i, sq := range AllSquares {
		if sq.Index() != i || SquareFromIndex(i) != sq {
			t.Errorf("index round trip failed for %v", sq)
		}
	}
}

func TestParseSquareRoundTrip(t *testing.T) {
	for _, sq := range AllSquares {
		got, err := ParseSquare(sq.String())
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", sq.String(), err)
		}
		if got != sq {
			t.Errorf("ParseSquare(%q) = %v, want %v", sq.String(), got, sq)
		}
	}

	for _, s := range []string{"", "e", "e9", "i1", "e22", "E4"} {
		if _, err := ParseSquare(s); err == nil {
			t.Errorf("ParseSquare(%q) succeeded, want error", s)
		}
	}
}
