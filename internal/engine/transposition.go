package engine

import (
	"github.com/hailam/chessagent/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

func (f TTFlag) String() string {
	switch f {
	case TTExact:
		return "exact"
	case TTLowerBound:
		return "lower"
	case TTUpperBound:
		return "upper"
	}
	return "?"
}

// DefaultTTEntries caps the number of positions a table keeps.
const DefaultTTEntries = 1 << 20

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Key      uint64
	BestMove board.Move
	Score    int
	Depth    int
	Flag     TTFlag
}

// TranspositionTable stores search results for one top-level search. It is
// not safe for concurrent use; every search owns its table.
type TranspositionTable struct {
	entries  map[uint64]TTEntry
	capacity int

	hits   uint64
	probes uint64
}

// NewTranspositionTable creates a table holding at most capacity entries.
// Once full, only entries for positions already present are updated.
func NewTranspositionTable(capacity int) *TranspositionTable {
	if capacity <= 0 {
		capacity = DefaultTTEntries
	}
	return &TranspositionTable{
		entries:  make(map[uint64]TTEntry),
		capacity: capacity,
	}
}

// Probe looks up a position in the transposition table.
func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	tt.probes++
	e, ok := tt.entries[key]
	if ok {
		tt.hits++
	}
	return e, ok
}

// Store saves a search result. An existing entry is only replaced by a
// result searched at least as deep.
func (tt *TranspositionTable) Store(key uint64, depth int, score int, flag TTFlag, bestMove board.Move) {
	old, ok := tt.entries[key]
	if ok && depth < old.Depth {
		return
	}
	if !ok && len(tt.entries) >= tt.capacity {
		return
	}
	tt.entries[key] = TTEntry{
		Key:      key,
		BestMove: bestMove,
		Score:    score,
		Depth:    depth,
		Flag:     flag,
	}
}

// Len returns the number of stored positions.
func (tt *TranspositionTable) Len() int {
	return len(tt.entries)
}

// HashFull returns the permille of the capacity in use.
func (tt *TranspositionTable) HashFull() int {
	return len(tt.entries) * 1000 / tt.capacity
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// AdjustScoreFromTT converts a stored mate score back to a distance from
// the root. Mate scores are stored relative to the node they were found at.
func AdjustScoreFromTT(score int, ply int) int {
	if score > MateThreshold {
		return score - ply
	}
	if score < -MateThreshold {
		return score + ply
	}
	return score
}

// AdjustScoreToTT adjusts a score for storage in the transposition table.
func AdjustScoreToTT(score int, ply int) int {
	if score > MateThreshold {
		return score + ply
	}
	if score < -MateThreshold {
		return score - ply
	}
	return score
}
