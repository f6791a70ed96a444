package main

import (
	"context"
	"testing"

	"github.com/hailam/chessagent/internal/board"
	"github.com/hailam/chessagent/internal/engine"
)

func TestRunArena(t *testing.T) {
	m := match{white: engine.Random, black: engine.Random, opts: engine.Options{Seed: 11}, fen: board.StartFEN, maxPly: 300}
	results, err := runArena(context.Background(), m, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	for _, r := range results {
		if r.name == "" {
			t.Error("game has no name")
		}
		if r.plies != len(r.sans) || r.plies > m.maxPly {
			t.Errorf("%s: %d plies, %d moves", r.name, r.plies, len(r.sans))
		}
		if r.plies < m.maxPly && !r.state.IsOver() {
			t.Errorf("%s stopped early in state %s", r.name, r.state)
		}
		t.Logf("%s: %d plies, %s", r.name, r.plies, r.state)
	}
}

func TestPlayGameMaxPly(t *testing.T) {
	m := match{white: engine.Random, black: engine.Random, opts: engine.Options{Seed: 3}, fen: board.StartFEN, maxPly: 3}
	r, err := playGame(context.Background(), m)
	if err != nil {
		t.Fatal(err)
	}
	if r.plies != 3 {
		t.Errorf("played %d plies, want 3", r.plies)
	}
}

func TestPlayGameMinimaxBeatsNothing(t *testing.T) {
	// A lone king cannot stop a queen and rook for long.
	m := match{
		white:  engine.Minimax,
		black:  engine.Random,
		opts:   engine.Options{Limits: engine.SearchLimits{Depth: 3}, Seed: 5},
		fen:    "7k/8/8/8/8/8/8/QR4K1 w - - 0 1",
		maxPly: 300,
	}
	r, err := playGame(context.Background(), m)
	if err != nil {
		t.Fatal(err)
	}
	if r.state.Kind != board.Checkmate || r.state.Color != board.Black {
		t.Errorf("final state %s after %d plies", r.state, r.plies)
	}
}

func TestPlayGameBadFEN(t *testing.T) {
	m := match{white: engine.Random, black: engine.Random, fen: "not a position", maxPly: 10}
	if _, err := playGame(context.Background(), m); err == nil {
		t.Error("bad start position accepted")
	}
}

func TestArenaCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := match{white: engine.Random, black: engine.Random, fen: board.StartFEN, maxPly: 300}
	if _, err := runArena(ctx, m, 2, 1); err == nil {
		t.Error("canceled arena returned no error")
	}
}
