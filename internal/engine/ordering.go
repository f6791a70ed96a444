package engine

import (
	"slices"

	"github.com/hailam/chessagent/internal/board"
)

// orderMoves returns the legal moves of the side to move, best first for
// that side by board.MoveValue, with ttMove promoted to the front. With
// worstFirst set the move-value order is reversed, which is what a side
// trying to lose wants.
func orderMoves(b *board.Board, ttMove board.Move, worstFirst bool) []board.Move {
	moves := b.SortedMoves(b.Turn())
	if worstFirst {
		slices.Reverse(moves)
	}

	if ttMove == board.NoMove {
		return moves
	}
	for i, m := range moves {
		if m == ttMove {
			copy(moves[1:i+1], moves[:i])
			moves[0] = ttMove
			break
		}
	}
	return moves
}
