package board

import "testing"

func play(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		if !b.IsLegal(m) {
			t.Fatalf("%s is not legal in %s", s, b.ToFEN())
		}
		b.MovePiece(m.From, m.To, true)
	}
}

func TestFoolsMate(t *testing.T) {
	b := NewBoard()
	steps := [][4]int{{5, 6, 5, 5}, {4, 1, 4, 3}, {6, 6, 6, 4}, {3, 0, 7, 4}}
	for _, s := range steps {
		from, to := Loc(s[0], s[1]), Loc(s[2], s[3])
		if !b.IsLegal(Move{from, to}) {
			t.Fatalf("%s%s not legal", from, to)
		}
		b.MovePiece(from, to, true)
	}

	if got := b.State(); got != (State{Kind: Checkmate, Color: White}) {
		t.Errorf("state = %s, want Checkmate(White)", got)
	}
	if !b.IsOver() {
		t.Error("IsOver() = false after checkmate")
	}
	if b.Score() != -CheckmateValue {
		t.Errorf("score = %d, want %d", b.Score(), -CheckmateValue)
	}
}

func TestCheckmate(t *testing.T) {
	// Back rank mate, black to move.
	b := MustFromFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	t.Log(b)
	if got := b.State(); got.Kind != Checkmate || got.Color != Black {
		t.Errorf("state = %s, want Checkmate(Black)", got)
	}
	if n := len(b.LegalMoves(Black)); n != 0 {
		t.Errorf("black has %d legal moves, want 0", n)
	}
}

func TestNotCheckmate(t *testing.T) {
	// The king can take the checking rook.
	b := MustFromFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if got := b.State(); got.Kind != Check || got.Color != Black {
		t.Errorf("state = %s, want Check(Black)", got)
	}
	if !b.IsLegal(Move{H8, G8}) {
		t.Error("Kxg8 should be legal")
	}
}

func TestStalemate(t *testing.T) {
	b := MustFromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if got := b.State(); got.Kind != Stalemate {
		t.Errorf("state = %s, want Stalemate", got)
	}
	if b.Score() != DrawValue {
		t.Errorf("score = %d, want %d", b.Score(), DrawValue)
	}
}

func TestStalemateNeedsRecompute(t *testing.T) {
	b := MustFromFEN("7k/8/4Q1K1/8/8/8/8/8 w - - 0 1")

	lazy := b.Clone()
	lazy.MovePiece(E6, F7, false)
	if got := lazy.State(); got.Kind != Normal {
		t.Errorf("without recompute state = %s, want Normal", got)
	}

	b.MovePiece(E6, F7, true)
	if got := b.State(); got.Kind != Stalemate {
		t.Errorf("with recompute state = %s, want Stalemate", got)
	}
}

func TestThreefoldRepetition(t *testing.T) {
	b := NewBoard()
	cycle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	play(t, b, cycle...)
	if got := b.State(); got.Kind != Normal {
		t.Fatalf("after one cycle state = %s, want Normal", got)
	}
	if n := b.Repetitions(); n != 2 {
		t.Errorf("repetitions = %d, want 2", n)
	}

	play(t, b, cycle...)
	if got := b.State(); got.Kind != Draw {
		t.Errorf("after two cycles state = %s, want Draw", got)
	}

	play(t, b, cycle...)
	if got := b.State(); got.Kind != Draw {
		t.Errorf("after three cycles state = %s, want Draw", got)
	}
}

func TestFiftyMoveRule(t *testing.T) {
	b := MustFromFEN("4k3/4p3/8/8/8/8/4P3/R3K3 w - - 48 60")

	play(t, b, "a1a2")
	if got := b.State(); got.Kind != Normal {
		t.Fatalf("after 49 half-moves state = %s, want Normal", got)
	}
	play(t, b, "e8d8")
	if got := b.State(); got.Kind != Draw {
		t.Errorf("after 50 half-moves state = %s, want Draw", got)
	}
}

func TestFiftyMoveRuleWalk(t *testing.T) {
	// Rooks walk along the back ranks behind a locked pawn chain and the
	// kings step aside between laps, so no placement repeats.
	b := MustFromFEN("r6k/8/8/p1p1p1p1/P1P1P1P1/8/8/R6K w - - 0 1")
	lap := []string{
		"a1b1", "a8b8", "b1c1", "b8c8", "c1d1", "c8d8",
		"d1e1", "d8e8", "e1f1", "e8f8", "f1g1", "f8g8",
	}
	back := []string{
		"g1f1", "g8f8", "f1e1", "f8e8", "e1d1", "e8d8",
		"d1c1", "d8c8", "c1b1", "c8b8", "b1a1", "b8a8",
	}

	var seq []string
	seq = append(seq, lap...)
	seq = append(seq, "h1h2", "h8h7")
	seq = append(seq, back...)
	seq = append(seq, "h2h3", "h7h6")
	seq = append(seq, lap...)
	seq = append(seq, "h3g2", "h6g7")
	seq = append(seq, back[:7]...)

	play(t, b, seq...)
	if len(seq) != 49 {
		t.Fatalf("sequence has %d half-moves, want 49", len(seq))
	}
	if got := b.State(); got.Kind != Normal {
		t.Fatalf("after 49 half-moves state = %s, want Normal", got)
	}
	play(t, b, back[7])
	if got := b.State(); got.Kind != Draw {
		t.Errorf("after 50 half-moves state = %s, want Draw (clock %d)", got, b.HalfMoveClock())
	}
}

func TestFiftyMoveResetByPawnMove(t *testing.T) {
	b := MustFromFEN("4k3/4p3/8/8/8/8/4P3/R3K3 w - - 49 60")
	play(t, b, "e2e4")
	if got := b.State(); got.Kind != Normal {
		t.Errorf("state = %s, want Normal", got)
	}
	if b.HalfMoveClock() != 0 {
		t.Errorf("half-move clock = %d, want 0", b.HalfMoveClock())
	}
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		draw bool
	}{
		{"bare kings", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"king and knight", "4k3/8/8/8/8/8/8/4KN2 w - - 0 1", true},
		{"king and bishop", "4k3/8/8/8/8/8/8/4KB2 w - - 0 1", true},
		{"same colored bishops", "4kb2/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"opposite colored bishops", "4k1b1/8/8/8/8/8/8/2B1K3 w - - 0 1", false},
		{"king and rook", "4k3/8/8/8/8/8/8/4KR2 w - - 0 1", false},
		{"king and pawn", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
		{"two knights", "4k3/8/8/8/8/8/8/3NKN2 w - - 0 1", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := MustFromFEN(tc.fen)
			if got := b.State().Kind == Draw; got != tc.draw {
				t.Errorf("draw = %v, want %v (state %s)", got, tc.draw, b.State())
			}
		})
	}
}

func TestBothInCheckPanicsWithAssertions(t *testing.T) {
	DebugAssertions = true
	defer func() {
		DebugAssertions = false
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	_, _ = FromFEN("4k2R/8/8/8/8/8/8/4K2r w - - 0 1")
}
