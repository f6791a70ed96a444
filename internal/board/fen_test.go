package board

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStartFENRoundTrip(t *testing.T) {
	b := NewBoard()
	if got := b.ToFEN(); got != StartFEN {
		t.Errorf("ToFEN() = %q, want %q", got, StartFEN)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 12 40",
		"r3k3/8/8/8/8/8/8/4K2R b Kq - 3 17",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			b, err := FromFEN(fen)
			if err != nil {
				t.Fatalf("FromFEN: %v", err)
			}
			if got := b.ToFEN(); got != fen {
				t.Errorf("ToFEN() = %q, want %q", got, fen)
			}
		})
	}
}

// TestFENRoundTripAfterMoves checks that reparsing the FEN of a played
// position yields the same placement, turn, castling rights and en passant.
func TestFENRoundTripAfterMoves(t *testing.T) {
	b := NewBoard()
	play(t, b, "e2e4", "c7c5", "g1f3", "d7d6", "f1b5", "b8c6", "e1g1", "c8d7", "d2d4")

	again := MustFromFEN(b.ToFEN())
	if diff := cmp.Diff(b.squares, again.squares); diff != "" {
		t.Errorf("placement differs (-played +parsed):\n%s", diff)
	}
	if b.Turn() != again.Turn() || b.Castling() != again.Castling() {
		t.Errorf("turn/castling = %s/%s, want %s/%s", again.Turn(), again.Castling(), b.Turn(), b.Castling())
	}
	ep1, ok1 := b.EnPassant()
	ep2, ok2 := again.EnPassant()
	if ep1 != ep2 || ok1 != ok2 {
		t.Errorf("en passant = %+v %v, want %+v %v", ep2, ok2, ep1, ok1)
	}
	if b.Hash() != again.Hash() {
		t.Errorf("hash = %016x, want %016x", again.Hash(), b.Hash())
	}
}

func TestFENCounters(t *testing.T) {
	b := NewBoard()
	play(t, b, "g1f3", "g8f6", "b1c3")
	if got, want := b.ToFEN(), "rnbqkb1r/pppppppp/5n2/8/8/2N2N2/PPPPPPPP/R1BQKB1R b KQkq - 3 2"; got != want {
		t.Errorf("ToFEN() = %q, want %q", got, want)
	}
}

func TestFENOptionalCounters(t *testing.T) {
	b, err := FromFEN("4k3/8/8/8/8/8/8/4K3 b - -")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if b.HalfMoveClock() != 0 || b.FullMoveNumber() != 1 || b.Turn() != Black {
		t.Errorf("counters = %d/%d turn %s", b.HalfMoveClock(), b.FullMoveNumber(), b.Turn())
	}
}

func TestFENInvalid(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"too few fields", "8/8/8/8/8/8/8/8 w"},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1"},
		{"short rank", "rnbqkbn/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"long rank", "rnbqkbnrr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"overflowing digits", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad piece", "rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad turn", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
		{"bad castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KX - 0 1"},
		{"bad en passant", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1"},
		{"en passant wrong rank", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1"},
		{"negative clock", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1"},
		{"zero full move", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0"},
		{"pawn on back rank", "rnbqkbnP/pppppppp/8/8/8/8/PPPPPPP1/RNBQKBNR w KQkq - 0 1"},
		{"two kings", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBKKBNR w KQkq - 0 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromFEN(tc.fen)
			if !errors.Is(err, ErrInvalidFEN) {
				t.Errorf("FromFEN(%q) error = %v, want ErrInvalidFEN", tc.fen, err)
			}
		})
	}
}

func TestHashIgnoresTurnAndCounters(t *testing.T) {
	a := MustFromFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	b := MustFromFEN("4k3/8/8/8/8/8/8/R3K3 b - - 7 30")
	if a.Hash() != b.Hash() {
		t.Error("hash depends on turn or counters")
	}
	if a.Key() == b.Key() {
		t.Error("search key ignores the side to move")
	}

	c := MustFromFEN("4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	if a.Hash() == c.Hash() {
		t.Error("hash ignores castling rights")
	}
}
