package board

import (
	"math"
	"testing"
)

func TestEvaluateStartIsBalanced(t *testing.T) {
	if s := NewBoard().Score(); s != 0 {
		t.Errorf("start score = %d, want 0", s)
	}
}

func TestEvaluateMirrored(t *testing.T) {
	pairs := [][2]string{
		{"4k3/8/8/8/4P3/8/8/4K3 w - - 0 1", "4k3/8/8/4p3/8/8/8/4K3 b - - 0 1"},
		{"4k3/8/8/8/8/2N5/8/4K3 w - - 0 1", "4k3/8/2n5/8/8/8/8/4K3 b - - 0 1"},
		{"r3k3/8/8/8/3Q4/8/8/4K3 w - - 0 1", "4k3/8/8/3q4/8/8/8/R3K3 b - - 0 1"},
	}
	for _, p := range pairs {
		a, b := MustFromFEN(p[0]), MustFromFEN(p[1])
		if a.Score() != -b.Score() {
			t.Errorf("score(%s) = %d, score(%s) = %d, want negations", p[0], a.Score(), p[1], b.Score())
		}
		if a.Score() <= 0 {
			t.Errorf("score(%s) = %d, want White ahead", p[0], a.Score())
		}
	}
}

func TestKingTableSwitchesInEndgame(t *testing.T) {
	if squareValue(King, White, G1, false) == squareValue(King, White, G1, true) {
		t.Error("king table does not depend on endgame")
	}
	if squareValue(King, White, E4, true) <= squareValue(King, White, E1, true) {
		t.Error("endgame table should favor a central king")
	}
	if squareValue(King, Black, G8, false) != squareValue(King, White, G1, false) {
		t.Error("black table is not the vertical mirror of white's")
	}
}

func TestEndgameFlag(t *testing.T) {
	if NewBoard().Endgame() {
		t.Error("start position flagged as endgame")
	}
	if !MustFromFEN("r3k3/pppp4/8/8/8/8/PPPP4/R3K3 w - - 0 1").Endgame() {
		t.Error("queenless position not flagged as endgame")
	}
}

func TestCheckAdjustment(t *testing.T) {
	// Same material; the black king is in check from the e1 rook only on e8.
	quiet := MustFromFEN("3k4/8/8/8/8/8/8/4RK2 b - - 0 1")
	check := MustFromFEN("4k3/8/8/8/8/8/8/4RK2 b - - 0 1")
	if check.State().Kind != Check {
		t.Fatalf("state = %s, want Check", check.State())
	}
	base := quiet.Score() + squareValue(King, Black, D8, true) - squareValue(King, Black, E8, true)
	if got := check.Score() - base; got != CheckValue {
		t.Errorf("check adjustment = %d, want %d", got, CheckValue)
	}
}

func TestMoveValue(t *testing.T) {
	b := MustFromFEN("3qk3/P7/8/8/4n3/3P4/8/4K3 w - - 0 1")

	if v := b.MoveValue(Move{A7, A8}); v != math.MaxInt32 {
		t.Errorf("promotion value = %d, want MaxInt32", v)
	}

	capture := b.MoveValue(Move{D3, E4})
	quiet := b.MoveValue(Move{D3, D4})
	if capture <= quiet {
		t.Errorf("PxN value %d not above quiet push %d", capture, quiet)
	}

	sorted := b.SortedMoves(White)
	if len(sorted) == 0 || sorted[0] != (Move{A7, A8}) {
		t.Errorf("first sorted move = %v, want a7a8", sorted)
	}
	if len(sorted) != len(b.LegalMoves(White)) {
		t.Errorf("sorted %d moves, legal %d", len(sorted), len(b.LegalMoves(White)))
	}
	for i := 1; i < len(sorted); i++ {
		if b.MoveValue(sorted[i-1]) < b.MoveValue(sorted[i]) {
			t.Fatalf("moves not in descending order at %d: %v", i, sorted)
		}
	}
}

func TestSortedMovesIsACopy(t *testing.T) {
	b := NewBoard()
	sorted := b.SortedMoves(White)
	sorted[0] = NoMove
	for _, m := range b.LegalMoves(White) {
		if m == NoMove {
			t.Fatal("SortedMoves aliases the legal move cache")
		}
	}
}
