package game

import (
	"fmt"

	"github.com/hailam/chessagent/internal/board"
	"github.com/hailam/chessagent/internal/engine"
	"github.com/hailam/chessagent/internal/storage"
)

// Save returns the session in storable form.
func (s *Session) Save() *storage.SavedGame {
	moves := make([]string, len(s.moves))
	for i, m := range s.moves {
		moves[i] = m.String()
	}
	color := storage.ColorWhite
	if s.cfg.Player == board.Black {
		color = storage.ColorBlack
	}
	return &storage.SavedGame{
		StartFEN:    s.startFEN,
		Moves:       moves,
		PlayerColor: color,
		Agent:       s.cfg.Agent.String(),
	}
}

// Restore replays a saved game into a new session. The saved player color
// and agent override cfg.
func Restore(saved *storage.SavedGame, cfg Config) (*Session, error) {
	kind, err := engine.ParseKind(saved.Agent)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	cfg.Agent = kind
	cfg.StartFEN = saved.StartFEN
	cfg.Player = board.White
	if saved.PlayerColor == storage.ColorBlack {
		cfg.Player = board.Black
	}

	s, err := NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	for i, str := range saved.Moves {
		m, err := board.ParseMove(str)
		if err != nil {
			return nil, fmt.Errorf("restore move %d: %w", i+1, err)
		}
		if s.board.IsOver() || !s.board.IsLegal(m) {
			return nil, fmt.Errorf("restore move %d: %w: %s", i+1, ErrIllegalMove, m)
		}
		s.apply(m)
	}
	return s, nil
}
