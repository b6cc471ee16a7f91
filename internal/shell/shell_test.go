package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hailam/chesstoolkit/internal/storage"
)

func run(t *testing.T, input string, opts ...Option) (*Shell, string) {
	t.Helper()
	var out bytes.Buffer
	opts = append(opts, WithColor(false))
	s := New(strings.NewReader(input), &out, opts...)
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return s, out.String()
}

func memoryStore(t *testing.T) *storage.Storage {
	t.Helper()
	st, err := storage.Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestMoveAndFEN(t *testing.T) {
	_, out := run(t, "move e2e4 e5\nfen\n")

	want := "1. e4\n1... e5\nrnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2\n"
	if out != want {
		t.Errorf("Expected output %q, got %q", want, out)
	}
}

func TestPositionCommand(t *testing.T) {
	tests := []struct {
		input string
		fen   string
	}{
		{"position startpos", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"position startpos moves g1f3", "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 0 1"},
		{"position fen 4k3/8/8/8/8/8/8/4K2R w K - 0 1", "4k3/8/8/8/8/8/8/4K2R w K - 0 1"},
		{"position fen 4k3/8/8/8/8/8/8/4K2R w K - 0 1 moves e1g1", "4k3/8/8/8/8/8/8/5RK1 b - - 0 1"},
	}

	for _, tt := range tests {
		s, _ := run(t, tt.input+"\n")
		if got := s.Position().ToFEN(); got != tt.fen {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.fen, got)
		}
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"frobnicate", "error: unknown command: frobnicate"},
		{"move e2e5", "error: illegal move: e2e5"},
		{"move Nf6", "error: illegal move: Nf6"},
		{"undo", "error: no move to take back"},
		{"perft x", "error: invalid depth: x"},
		{"promote k", "error: cannot promote to k"},
		{"save game", "error: no storage configured"},
		{"position fen 8/8/8 w - - 0 1", "error: invalid FEN"},
	}

	for _, tt := range tests {
		_, out := run(t, tt.input+"\n")
		if !strings.HasPrefix(out, tt.want) {
			t.Errorf("%q: expected output starting with %q, got %q", tt.input, tt.want, out)
		}
	}
}

func TestIllegalMoveLeavesPosition(t *testing.T) {
	s, _ := run(t, "move e2e4 e7e5 e1e3\n")
	if n := len(s.Position().History()); n != 2 {
		t.Errorf("Expected 2 moves in history, got %d", n)
	}
}

func TestUndo(t *testing.T) {
	s, _ := run(t, "move e4 e5 Nf3\nundo 2\n")
	if n := len(s.Position().History()); n != 1 {
		t.Errorf("Expected 1 move in history, got %d", n)
	}

	// Asking for more than was played takes nothing back.
	s, out := run(t, "move e4 e5\nundo 3\n")
	if n := len(s.Position().History()); n != 2 {
		t.Errorf("Expected 2 moves in history, got %d", n)
	}
	if !strings.HasSuffix(out, "error: cannot take back 3 moves, only 2 played\n") {
		t.Errorf("Unexpected undo output %q", out)
	}
}

func TestMovesAndCaptures(t *testing.T) {
	_, out := run(t, "moves\n")
	if !strings.HasPrefix(out, "20: ") {
		t.Errorf("Expected 20 moves, got %q", out)
	}

	_, out = run(t, "position startpos moves e2e4 d7d5\ncaptures\n")
	if !strings.HasSuffix(out, "\n1: exd5\n") {
		t.Errorf("Expected single capture exd5, got %q", out)
	}
}

func TestAttacks(t *testing.T) {
	_, out := run(t, "position fen 4k3/8/8/3p4/4P3/5N2/8/4K3 b - - 0 1\nattacks d5\n")
	if !strings.HasPrefix(out, "1: ") || !strings.Contains(out, "e4xd5") {
		t.Errorf("Expected the e4 pawn to attack d5, got %q", out)
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"check", "no check\n"},
		{"move f3 e5 g4 Qh4\ncheck", "checkmate, Black wins\n"},
		{"position fen 7k/5Q2/6K1/8/8/8/8/8 b - - 0 1\ncheck", "stalemate\n"},
		{"position fen 4k3/8/8/8/8/8/8/4K3 w - - 0 1\ncheck", "draw by insufficient material\n"},
	}

	for _, tt := range tests {
		_, out := run(t, tt.input+"\n")
		if !strings.HasSuffix(out, tt.want) {
			t.Errorf("%q: expected output ending in %q, got %q", tt.input, tt.want, out)
		}
	}
}

func TestHistory(t *testing.T) {
	_, out := run(t, "move e4 e5 Nf3\nhistory\n")
	if !strings.HasSuffix(out, "1. e4 e5 2. Nf3\n") {
		t.Errorf("Unexpected history output %q", out)
	}

	_, out = run(t, "notation long\nmove e4\nhistory\n")
	if !strings.HasSuffix(out, "1. e2-e4\n") {
		t.Errorf("Unexpected long history output %q", out)
	}
}

func TestPerftAndDivide(t *testing.T) {
	_, out := run(t, "perft 2\n")
	if !strings.HasPrefix(out, "Nodes: 400\n") {
		t.Errorf("Expected 400 nodes, got %q", out)
	}

	_, out = run(t, "perft 3\n")
	if !strings.HasPrefix(out, "Nodes: 8,902\n") {
		t.Errorf("Expected 8,902 nodes, got %q", out)
	}

	_, out = run(t, "divide 1\n")
	if !strings.Contains(out, "e2e4: 1\n") || !strings.HasSuffix(out, "Total: 20\n") {
		t.Errorf("Unexpected divide output %q", out)
	}
}

func TestPromotion(t *testing.T) {
	const fen = "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1"

	s, _ := run(t, "position fen "+fen+"\npromote n\nmove b7b8\n")
	if got := s.Position().ToFEN(); !strings.HasPrefix(got, "1N2k3/") {
		t.Errorf("Expected knight promotion, got %s", got)
	}

	s, _ = run(t, "position fen "+fen+"\nmove b7b8r\n")
	if got := s.Position().ToFEN(); !strings.HasPrefix(got, "1R2k3/") {
		t.Errorf("Expected rook promotion, got %s", got)
	}

	s, _ = run(t, "position fen "+fen+"\nmove b8=B\n")
	if got := s.Position().ToFEN(); !strings.HasPrefix(got, "1B2k3/") {
		t.Errorf("Expected bishop promotion, got %s", got)
	}
}

func TestStorageCommands(t *testing.T) {
	st := memoryStore(t)

	s, out := run(t, "move e4\nsave opening\nnew\nlist\n", WithStorage(st))
	if !strings.Contains(out, "opening: rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1\n") {
		t.Errorf("Saved position not listed: %q", out)
	}

	saved, err := st.LoadPosition("opening")
	if err != nil {
		t.Fatalf("LoadPosition: %v", err)
	}
	if saved.Session != s.Session() {
		t.Errorf("Expected session %s, got %s", s.Session(), saved.Session)
	}

	s, _ = run(t, "load opening\n", WithStorage(st))
	if got := s.Position().ToFEN(); got != saved.FEN {
		t.Errorf("Expected loaded FEN %s, got %s", saved.FEN, got)
	}

	_, out = run(t, "delete opening\nload opening\n", WithStorage(st))
	if !strings.Contains(out, "error: ") {
		t.Errorf("Expected error loading deleted position, got %q", out)
	}

	stats, err := st.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats.Sessions != 3 {
		t.Errorf("Expected 3 sessions, got %d", stats.Sessions)
	}
	if stats.MovesPlayed != 1 {
		t.Errorf("Expected 1 move played, got %d", stats.MovesPlayed)
	}
}

func TestPerftCache(t *testing.T) {
	st := memoryStore(t)

	_, out := run(t, "perft 2\nperft 2\n", WithStorage(st))
	if !strings.Contains(out, "Nodes: 400 (cached)\n") {
		t.Errorf("Expected cached perft result, got %q", out)
	}

	stats, err := st.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats.PerftRuns != 1 || stats.CacheHits != 1 {
		t.Errorf("Expected 1 run and 1 cache hit, got %d and %d", stats.PerftRuns, stats.CacheHits)
	}
}

func TestPreferencesPersist(t *testing.T) {
	st := memoryStore(t)

	run(t, "promote r\n", WithStorage(st))

	s, out := run(t, "promote\n", WithStorage(st))
	if out != "promotion: R\n" {
		t.Errorf("Expected rook promotion preference, got %q", out)
	}
	if got := s.Position().PromotionPiece(s.Position().SideToMove()).Symbol(); got != "R" {
		t.Errorf("Expected position promotion piece R, got %s", got)
	}
}

func TestQuitStopsReading(t *testing.T) {
	s, out := run(t, "move e4\nquit\nmove e5\n")
	if n := len(s.Position().History()); n != 1 {
		t.Errorf("Expected 1 move before quit, got %d", n)
	}
	if out != "1. e4\n" {
		t.Errorf("Unexpected output %q", out)
	}
}
