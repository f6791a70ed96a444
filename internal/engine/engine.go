// Package engine implements the agents that choose moves. The main one is an
// alpha-beta minimax search with iterative deepening.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hailam/chessagent/internal/board"
	"github.com/hailam/chessagent/internal/book"
)

// Verbose enables one log line per completed search depth.
var Verbose = false

// ErrSearchInProgress is returned when a search is started on an engine
// that is already searching.
var ErrSearchInProgress = errors.New("search already in progress")

// SearchInfo contains information about the current search.
type SearchInfo struct {
	Depth    int
	Score    int
	Move     board.Move
	Nodes    uint64
	Time     time.Duration
	HashFull int // Permille of hash table used
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth    int           // Maximum depth (0 = no limit)
	MoveTime time.Duration // Time for this move (0 = default budget unless Depth is set)
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // ~2-3 ply, 500ms
	Medium                   // ~4-5 ply, 2s
	Hard                     // ~6+ ply, 5s
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// ParseDifficulty parses "easy", "medium" or "hard".
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		if strings.EqualFold(strings.TrimSpace(s), d.String()) {
			return d, nil
		}
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 3, MoveTime: 500 * time.Millisecond},
	Medium: {Depth: 5, MoveTime: 2 * time.Second},
	Hard:   {Depth: 7, MoveTime: 5 * time.Second},
}

// SearchState is the lifecycle of an engine's search.
type SearchState int32

const (
	Idle SearchState = iota
	Searching
	Done
)

func (s SearchState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Searching:
		return "Searching"
	case Done:
		return "Done"
	}
	return fmt.Sprintf("SearchState(%d)", int32(s))
}

// Options configures an engine or agent.
type Options struct {
	Limits SearchLimits
	Book   *book.Book // nil disables book moves
	Seed   int64      // 0 picks a time-based seed
	NoTT   bool       // disable the transposition table
}

// Result is the outcome of one search.
type Result struct {
	Move    board.Move
	Score   int // positive favors White
	Depth   int // last fully completed depth
	Nodes   uint64
	Book    bool
	Elapsed time.Duration
}

// Found reports whether the search produced a move.
func (r Result) Found() bool {
	return r.Move != board.NoMove
}

// Engine is the minimax search agent. An antimax engine runs the same
// search with the sense of each side reversed.
type Engine struct {
	limits  SearchLimits
	book    *book.Book
	rng     *rand.Rand
	antimax bool
	useTT   bool
	pruning bool

	state    atomic.Int32
	stopFlag atomic.Bool

	nodes uint64
	tm    *TimeManager
	tt    *TranspositionTable

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a minimax engine.
func NewEngine(opts Options) *Engine {
	return &Engine{
		limits:  opts.Limits,
		book:    opts.Book,
		rng:     newRand(opts.Seed),
		useTT:   !opts.NoTT,
		pruning: true,
		tm:      NewTimeManager(),
	}
}

// NewAntimaxEngine creates an engine that plays the worst moves it can find.
// It never uses the opening book.
func NewAntimaxEngine(opts Options) *Engine {
	e := NewEngine(opts)
	e.antimax = true
	e.book = nil
	return e
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// SetDifficulty sets the engine limits from a difficulty preset.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.limits = DifficultySettings[d]
}

// SetLimits sets the search limits.
func (e *Engine) SetLimits(limits SearchLimits) {
	e.limits = limits
}

// Limits returns the configured search limits.
func (e *Engine) Limits() SearchLimits {
	return e.limits
}

// State returns the current search state.
func (e *Engine) State() SearchState {
	return SearchState(e.state.Load())
}

// Stop stops the current search. The best move of the last completed depth
// is still returned.
func (e *Engine) Stop() {
	e.stopFlag.Store(true)
}

// GetMove implements Agent.
func (e *Engine) GetMove(ctx context.Context, b *board.Board) (board.Move, bool) {
	r, err := e.Search(ctx, b)
	if err != nil {
		log.Printf("[AI] %v", err)
		return board.NoMove, false
	}
	return r.Move, r.Found()
}

// Search finds the best move for the side to move within the configured
// limits. The caller's board is never modified.
func (e *Engine) Search(ctx context.Context, b *board.Board) (Result, error) {
	return e.SearchWithLimits(ctx, b, e.limits)
}

// SearchWithLimits finds the best move with specific search limits.
func (e *Engine) SearchWithLimits(ctx context.Context, b *board.Board, limits SearchLimits) (Result, error) {
	if !e.begin() {
		return Result{Move: board.NoMove}, ErrSearchInProgress
	}
	defer e.state.Store(int32(Done))

	pos := b.Clone()
	e.tm.Init(limits)
	e.tt = NewTranspositionTable(DefaultTTEntries)
	e.nodes = 0

	result := Result{Move: board.NoMove}
	if pos.IsOver() || !pos.HasLegalMove(pos.Turn()) {
		return result, nil
	}

	maxDepth := MaxPly
	if limits.Depth > 0 && limits.Depth < MaxPly {
		maxDepth = limits.Depth
	}
	maximizing := e.rootMaximizing(pos)

	// Iterative deepening
	for depth := 1; depth <= maxDepth; depth++ {
		score, move := e.search(ctx, pos, maximizing, depth, 0, -Infinity, Infinity)

		// An aborted pass is discarded entirely.
		if score == timeoutScore {
			break
		}

		if move != board.NoMove {
			result.Move = move
			result.Score = score
			result.Depth = depth
		}
		result.Book = score == BookScore

		if Verbose {
			log.Printf("[AI] depth %d move %s score %s nodes %d time %v",
				depth, move, ScoreToString(score), e.nodes, e.tm.Elapsed())
		}
		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth:    depth,
				Score:    score,
				Move:     move,
				Nodes:    e.nodes,
				Time:     e.tm.Elapsed(),
				HashFull: e.tt.HashFull(),
			})
		}

		// Early termination: book move or forced mate
		if result.Book || isMateScore(score) {
			break
		}

		// If we've used more than half the time, don't start another iteration
		if e.tm.PastOptimum() {
			break
		}
	}

	// Not even depth 1 completed: play the first ordered move.
	if result.Move == board.NoMove {
		moves := orderMoves(pos, board.NoMove, maximizing != (pos.Turn() == board.White))
		result.Move = moves[0]
		result.Score = pos.Score()
	}

	result.Nodes = e.nodes
	result.Elapsed = e.tm.Elapsed()
	return result, nil
}

// SearchDepth runs a single alpha-beta pass of the given depth with a fresh
// transposition table and no time limit.
func (e *Engine) SearchDepth(ctx context.Context, b *board.Board, depth int) (board.Move, int) {
	if !e.begin() {
		return board.NoMove, 0
	}
	defer e.state.Store(int32(Done))

	pos := b.Clone()
	e.tm.Init(SearchLimits{Depth: depth})
	e.tt = NewTranspositionTable(DefaultTTEntries)
	e.nodes = 0

	score, move := e.search(ctx, pos, e.rootMaximizing(pos), depth, 0, -Infinity, Infinity)
	return move, score
}

// Nodes returns the number of nodes visited by the last search.
func (e *Engine) Nodes() uint64 {
	return e.nodes
}

func (e *Engine) begin() bool {
	for {
		s := e.state.Load()
		if SearchState(s) == Searching {
			return false
		}
		if e.state.CompareAndSwap(s, int32(Searching)) {
			e.stopFlag.Store(false)
			return true
		}
	}
}

// rootMaximizing reports whether the root player maximizes the White-positive
// score.
func (e *Engine) rootMaximizing(pos *board.Board) bool {
	return (pos.Turn() == board.White) != e.antimax
}

// ScoreToString converts a White-positive score to a human-readable string.
func ScoreToString(score int) string {
	switch {
	case score == BookScore:
		return "book"
	case score > MateThreshold:
		return fmt.Sprintf("White mates in %d", (board.CheckmateValue-score+1)/2)
	case score < -MateThreshold:
		return fmt.Sprintf("Black mates in %d", (board.CheckmateValue+score+1)/2)
	}

	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}
