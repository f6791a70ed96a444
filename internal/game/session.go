// Package game runs a single game between a user and an agent for a
// presentation layer: move requests, takebacks, agent turns on a worker
// goroutine and persistence of unfinished games.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	petname "github.com/dustinkirkland/golang-petname"

	"github.com/hailam/chessagent/internal/board"
	"github.com/hailam/chessagent/internal/engine"
	"github.com/hailam/chessagent/internal/storage"
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrGameOver      = errors.New("game is over")
	ErrAgentThinking = errors.New("agent is thinking")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNoHistory     = errors.New("nothing to take back")
)

// Config describes a new session.
type Config struct {
	Agent      engine.Kind
	Difficulty engine.Difficulty
	Engine     engine.Options // zero Limits means the Difficulty preset
	Player     board.Color
	StartFEN   string // empty means the standard start position
}

// snapshot is the state before a move, kept for takebacks.
type snapshot struct {
	board *board.Board
	last  board.Move
}

// Session is one game. It is not safe for concurrent use; the agent only
// ever sees a copy of the board.
type Session struct {
	ID string

	cfg      Config
	agent    engine.Agent
	board    *board.Board
	startFEN string
	history  []snapshot
	moves    []board.Move
	sans     []string
	last     board.Move
	started  time.Time

	pending <-chan engine.AsyncResult
	cancel  context.CancelFunc
}

// NewSession creates a session from cfg.
func NewSession(cfg Config) (*Session, error) {
	if cfg.StartFEN == "" {
		cfg.StartFEN = board.StartFEN
	}
	b, err := board.FromFEN(cfg.StartFEN)
	if err != nil {
		return nil, err
	}
	if cfg.Engine.Limits == (engine.SearchLimits{}) {
		cfg.Engine.Limits = engine.DifficultySettings[cfg.Difficulty]
	}

	return &Session{
		ID:       petname.Generate(2, "-"),
		cfg:      cfg,
		agent:    engine.New(cfg.Agent, cfg.Engine),
		board:    b,
		startFEN: cfg.StartFEN,
		last:     board.NoMove,
		started:  time.Now(),
	}, nil
}

// Board returns a copy of the current position.
func (s *Session) Board() *board.Board {
	return s.board.Clone()
}

// Player returns the color the user plays.
func (s *Session) Player() board.Color {
	return s.cfg.Player
}

// Agent returns the opponent kind.
func (s *Session) Agent() engine.Kind {
	return s.cfg.Agent
}

// LastMove returns the most recent move, or board.NoMove.
func (s *Session) LastMove() board.Move {
	return s.last
}

// Moves returns the moves played so far.
func (s *Session) Moves() []board.Move {
	return append([]board.Move(nil), s.moves...)
}

// SANMoves returns the moves played so far in SAN.
func (s *Session) SANMoves() []string {
	return append([]string(nil), s.sans...)
}

// IsOver reports whether the game has finished.
func (s *Session) IsOver() bool {
	return s.board.IsOver()
}

// Thinking reports whether an agent search is outstanding.
func (s *Session) Thinking() bool {
	return s.pending != nil
}

// AgentToMove reports whether the agent should move now.
func (s *Session) AgentToMove() bool {
	return s.cfg.Agent != engine.Control && !s.board.IsOver() && s.board.Turn() != s.cfg.Player
}

// Move plays a user move. A king dragged onto its own rook is read as
// castling.
func (s *Session) Move(from, to board.Location) error {
	if s.pending != nil {
		return ErrAgentThinking
	}
	if s.board.IsOver() {
		return ErrGameOver
	}
	if s.AgentToMove() {
		return ErrNotYourTurn
	}

	m := s.castlingDrag(board.Move{From: from, To: to})
	if !s.board.IsLegal(m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	s.apply(m)
	return nil
}

// castlingDrag maps king-takes-own-rook to the castling move.
func (s *Session) castlingDrag(m board.Move) board.Move {
	k, ok := s.board.Get(m.From)
	if !ok || k.Kind != board.King {
		return m
	}
	r, ok := s.board.Get(m.To)
	if !ok || r.Kind != board.Rook || r.Color != k.Color || m.From.Y != m.To.Y {
		return m
	}
	if m.To.X > m.From.X {
		return board.Move{From: m.From, To: board.Loc(int(m.From.X)+2, int(m.From.Y))}
	}
	return board.Move{From: m.From, To: board.Loc(int(m.From.X)-2, int(m.From.Y))}
}

func (s *Session) apply(m board.Move) {
	s.history = append(s.history, snapshot{board: s.board.Clone(), last: s.last})
	s.sans = append(s.sans, s.board.SAN(m))
	s.moves = append(s.moves, m)
	s.board.MovePiece(m.From, m.To, true)
	s.last = m

	if s.board.IsOver() {
		log.Printf("[GAME] %s finished: %s", s.ID, s.board.State())
	}
}

// Takeback undoes the last user move together with the agent reply that
// followed it. An outstanding agent search is abandoned.
func (s *Session) Takeback() error {
	s.abandon()
	if len(s.history) == 0 {
		return ErrNoHistory
	}
	s.undo()
	for len(s.history) > 0 && s.AgentToMove() {
		s.undo()
	}
	return nil
}

func (s *Session) undo() {
	n := len(s.history) - 1
	prev := s.history[n]
	s.history = s.history[:n]
	s.moves = s.moves[:n]
	s.sans = s.sans[:n]
	s.board = prev.board
	s.last = prev.last
}

// Reset starts over from the session's start position.
func (s *Session) Reset() {
	s.abandon()
	s.board = board.MustFromFEN(s.startFEN)
	s.history = nil
	s.moves = nil
	s.sans = nil
	s.last = board.NoMove
	s.started = time.Now()
	s.ID = petname.Generate(2, "-")
}

// StartAgent starts the agent on a copy of the position if it is the
// agent's turn. It reports whether a search was started.
func (s *Session) StartAgent(ctx context.Context) bool {
	if s.pending != nil || !s.AgentToMove() {
		return false
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.pending = engine.Go(ctx, s.agent, s.board)
	log.Printf("[AI] %s thinking for %s", s.cfg.Agent, s.board.Turn())
	return true
}

// Poll applies the agent's move if its search has finished. It never
// blocks and reports the move applied.
func (s *Session) Poll() (board.Move, bool) {
	if s.pending == nil {
		return board.NoMove, false
	}
	select {
	case r := <-s.pending:
		return s.finish(r)
	default:
		return board.NoMove, false
	}
}

// Wait blocks until the agent's search finishes or ctx is done.
func (s *Session) Wait(ctx context.Context) (board.Move, bool, error) {
	if s.pending == nil {
		return board.NoMove, false, nil
	}
	select {
	case r := <-s.pending:
		m, ok := s.finish(r)
		return m, ok, nil
	case <-ctx.Done():
		return board.NoMove, false, ctx.Err()
	}
}

func (s *Session) finish(r engine.AsyncResult) (board.Move, bool) {
	s.pending = nil
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if !r.OK {
		return board.NoMove, false
	}
	if !s.board.IsLegal(r.Move) {
		log.Printf("[AI] discarding illegal agent move %s", r.Move)
		return board.NoMove, false
	}
	log.Printf("[AI] %s plays %s", s.cfg.Agent, s.board.SAN(r.Move))
	s.apply(r.Move)
	return r.Move, true
}

// abandon cancels an outstanding search and waits for it to return so
// the agent is idle before the next StartAgent. The result is dropped.
func (s *Session) abandon() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.pending != nil {
		<-s.pending
		s.pending = nil
	}
}

// Close releases the session's agent search, if any.
func (s *Session) Close() {
	s.abandon()
}

// Message returns a one-line status for display.
func (s *Session) Message() string {
	st := s.board.State()
	switch st.Kind {
	case board.Checkmate:
		return fmt.Sprintf("Checkmate. %s wins", st.Color.Other())
	case board.Stalemate:
		return "Draw by stalemate"
	case board.Draw:
		return "Draw by " + s.drawReason()
	}

	if s.pending != nil {
		return fmt.Sprintf("%s (%s) is thinking...", s.board.Turn(), s.cfg.Agent)
	}
	if st.Kind == board.Check {
		return fmt.Sprintf("%s to move, in check", s.board.Turn())
	}
	return fmt.Sprintf("%s to move", s.board.Turn())
}

func (s *Session) drawReason() string {
	switch {
	case s.board.HalfMoveClock() >= 50:
		return "fifty-move rule"
	case s.board.Repetitions() >= 3:
		return "threefold repetition"
	}
	return "insufficient material"
}

// Outcome describes a finished game.
type Outcome struct {
	Over   bool
	Draw   bool
	Winner board.Color
}

// Outcome returns the result of the game so far.
func (s *Session) Outcome() Outcome {
	st := s.board.State()
	switch st.Kind {
	case board.Checkmate:
		return Outcome{Over: true, Winner: st.Color.Other()}
	case board.Stalemate, board.Draw:
		return Outcome{Over: true, Draw: true}
	}
	return Outcome{}
}

// GameResult converts a finished game to a statistics record from the
// user's point of view.
func (s *Session) GameResult() storage.GameResult {
	o := s.Outcome()
	return storage.GameResult{
		Won:        o.Over && !o.Draw && o.Winner == s.cfg.Player,
		Draw:       o.Draw,
		Agent:      s.cfg.Agent.String(),
		Difficulty: storage.Difficulty(s.cfg.Difficulty),
		Duration:   time.Since(s.started),
	}
}
