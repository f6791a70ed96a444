package board

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSAN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move Move
		want string
	}{
		{"pawn push", StartFEN, Move{E2, E4}, "e4"},
		{"knight", StartFEN, Move{G1, F3}, "Nf3"},
		{"pawn capture", "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2", Move{E4, D5}, "exd5"},
		{"castle short", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", Move{E1, G1}, "O-O"},
		{"castle long", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", Move{E8, C8}, "O-O-O"},
		{"file disambiguation", "4k3/8/8/8/8/8/8/R4RK1 w - - 0 1", Move{A1, D1}, "Rad1"},
		{"rank disambiguation", "4k3/8/8/R7/8/8/8/R3K3 w - - 0 1", Move{A5, A3}, "R5a3"},
		{"promotion", "8/P6k/8/8/8/8/8/K7 w - - 0 1", Move{A7, A8}, "a8=Q"},
		{"check", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", Move{A1, A8}, "Ra8+"},
		{"mate", "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2", Move{D8, H4}, "Qh4#"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := MustFromFEN(tc.fen)
			if got := b.SAN(tc.move); got != tc.want {
				t.Errorf("SAN(%s) = %q, want %q", tc.move, got, tc.want)
			}
			m, err := b.ParseSAN(tc.want)
			if err != nil {
				t.Fatalf("ParseSAN(%q): %v", tc.want, err)
			}
			if m != tc.move {
				t.Errorf("ParseSAN(%q) = %s, want %s", tc.want, m, tc.move)
			}
		})
	}
}

func TestParseSANVariants(t *testing.T) {
	b := MustFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	for _, s := range []string{"O-O", "0-0", "O-O+", "O-O!?"} {
		m, err := b.ParseSAN(s)
		if err != nil || m != (Move{E1, G1}) {
			t.Errorf("ParseSAN(%q) = %s, %v", s, m, err)
		}
	}
}

func TestParseSANInvalid(t *testing.T) {
	b := NewBoard()
	for _, s := range []string{"", "e5", "Nf4", "Kxe2", "O-O", "Zf3", "e8=N", "Qd4"} {
		if _, err := b.ParseSAN(s); !errors.Is(err, ErrInvalidSAN) {
			t.Errorf("ParseSAN(%q) error = %v, want ErrInvalidSAN", s, err)
		}
	}

	amb := MustFromFEN("4k3/8/8/8/8/8/8/R4RK1 w - - 0 1")
	if _, err := amb.ParseSAN("Rd1"); !errors.Is(err, ErrInvalidSAN) {
		t.Errorf("ambiguous Rd1 error = %v, want ErrInvalidSAN", err)
	}
}

func TestSANMoves(t *testing.T) {
	b := NewBoard()
	moves := []Move{{E2, E4}, {E7, E5}, {G1, F3}, {B8, C6}, {F1, B5}}
	got := b.SANMoves(moves)
	want := []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SANMoves mismatch (-want +got):\n%s", diff)
	}
	if b.ToFEN() != StartFEN {
		t.Error("SANMoves modified the board")
	}
}
