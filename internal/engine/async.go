package engine

import (
	"context"

	"github.com/hailam/chessagent/internal/board"
)

// AsyncResult is delivered once by Go.
type AsyncResult struct {
	Move board.Move
	OK   bool
}

// Go runs agent on a snapshot of b in a new goroutine. The returned channel
// receives exactly one result and is then closed. Later changes to b do not
// affect the search.
func Go(ctx context.Context, agent Agent, b *board.Board) <-chan AsyncResult {
	snapshot := b.Clone()
	ch := make(chan AsyncResult, 1)
	go func() {
		defer close(ch)
		m, ok := agent.GetMove(ctx, snapshot)
		ch <- AsyncResult{Move: m, OK: ok}
	}()
	return ch
}
