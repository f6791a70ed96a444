package engine

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/hailam/chessagent/internal/board"
)

// Agent chooses a move for the side to move. It returns false when it has
// no move to offer: the game is over, or the agent leaves the choice to the
// user. Implementations never modify b.
type Agent interface {
	GetMove(ctx context.Context, b *board.Board) (board.Move, bool)
}

// Kind selects an agent implementation.
type Kind int

const (
	Random Kind = iota
	Minimax
	Antimax
	Control
)

var kindNames = [...]string{
	Random:  "random",
	Minimax: "minimax",
	Antimax: "antimax",
	Control: "control",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses an agent name as printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown agent %q", s)
}

// Kinds lists every agent kind.
func Kinds() []Kind {
	return []Kind{Random, Minimax, Antimax, Control}
}

// New creates an agent of the given kind.
func New(kind Kind, opts Options) Agent {
	switch kind {
	case Minimax:
		return NewEngine(opts)
	case Antimax:
		return NewAntimaxEngine(opts)
	case Control:
		return ControlAgent{}
	default:
		return NewRandomAgent(opts.Seed)
	}
}

// RandomAgent plays a uniformly random legal move.
type RandomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent creates a random agent. A zero seed picks a time-based one.
func NewRandomAgent(seed int64) *RandomAgent {
	return &RandomAgent{rng: newRand(seed)}
}

// GetMove implements Agent.
func (a *RandomAgent) GetMove(_ context.Context, b *board.Board) (board.Move, bool) {
	if b.IsOver() {
		return board.NoMove, false
	}
	moves := b.Clone().LegalMoves(b.Turn())
	if len(moves) == 0 {
		return board.NoMove, false
	}
	return moves[a.rng.Intn(len(moves))], true
}

// ControlAgent never moves; the user plays both sides.
type ControlAgent struct{}

// GetMove implements Agent.
func (ControlAgent) GetMove(context.Context, *board.Board) (board.Move, bool) {
	return board.NoMove, false
}
