package engine

import (
	"context"
	"math"

	"github.com/hailam/chessagent/internal/board"
)

// Search constants
const (
	Infinity      = 1 << 30
	BookScore     = Infinity - 1 // returned for a book move at the root
	MaxPly        = 128
	MateThreshold = board.CheckmateValue - MaxPly

	// timeoutScore marks an aborted subtree. No real score can take it.
	timeoutScore = math.MinInt32
)

// checkInterval is the number of nodes between clock and context checks.
const checkInterval = 256

func isMateScore(score int) bool {
	if score == BookScore || score == timeoutScore {
		return false
	}
	return score > MateThreshold || score < -MateThreshold
}

// aborted reports whether the search must unwind. The stop flag is read at
// every node; the clock and context every checkInterval nodes.
func (e *Engine) aborted(ctx context.Context) bool {
	if e.stopFlag.Load() {
		return true
	}
	if e.nodes%checkInterval != 0 {
		return false
	}
	if ctx.Err() != nil || e.tm.ShouldStop() {
		e.stopFlag.Store(true)
		return true
	}
	return false
}

// leafScore is the static score of pos, with mates scored by distance from
// the root so that faster mates are preferred.
func leafScore(pos *board.Board, ply int) int {
	st := pos.State()
	if st.Kind == board.Checkmate {
		if st.Color == board.White {
			return -(board.CheckmateValue - ply)
		}
		return board.CheckmateValue - ply
	}
	return pos.Score()
}

// search is alpha-beta minimax over White-positive scores. It returns the
// score of pos and the best move found, or timeoutScore when the search was
// aborted.
func (e *Engine) search(ctx context.Context, pos *board.Board, maximizing bool, depth, ply, alpha, beta int) (int, board.Move) {
	e.nodes++
	if e.aborted(ctx) {
		return timeoutScore, board.NoMove
	}

	if depth == 0 || pos.IsOver() || ply >= MaxPly {
		return leafScore(pos, ply), board.NoMove
	}

	if ply == 0 && e.book != nil {
		if entry, ok := e.book.Probe(pos, e.rng); ok {
			return BookScore, entry.Move
		}
	}

	alphaOrig, betaOrig := alpha, beta
	key := pos.Key()
	ttMove := board.NoMove
	if e.useTT {
		if entry, ok := e.tt.Probe(key); ok {
			ttMove = entry.BestMove
			if entry.Depth >= depth {
				score := AdjustScoreFromTT(entry.Score, ply)
				switch entry.Flag {
				case TTExact:
					return score, entry.BestMove
				case TTLowerBound:
					if score >= beta {
						return score, entry.BestMove
					}
				case TTUpperBound:
					if score <= alpha {
						return score, entry.BestMove
					}
				}
			}
		}
	}

	worstFirst := maximizing != (pos.Turn() == board.White)
	moves := orderMoves(pos, ttMove, worstFirst)

	// Best achievable score for this side: mate on the next ply.
	bestPossible := board.CheckmateValue - (ply + 1)

	bestMove := board.NoMove
	var bestScore int
	if maximizing {
		bestScore = -Infinity
	} else {
		bestScore = Infinity
	}

	for _, m := range moves {
		child := pos.Clone()
		child.MovePiece(m.From, m.To, true)

		score, _ := e.search(ctx, child, !maximizing, depth-1, ply+1, alpha, beta)
		if score == timeoutScore {
			return timeoutScore, board.NoMove
		}

		if maximizing {
			if score > bestScore || bestMove == board.NoMove {
				bestScore, bestMove = score, m
			}
			if bestScore > alpha {
				alpha = bestScore
			}
			if bestScore >= bestPossible {
				break
			}
		} else {
			if score < bestScore || bestMove == board.NoMove {
				bestScore, bestMove = score, m
			}
			if bestScore < beta {
				beta = bestScore
			}
			if bestScore <= -bestPossible {
				break
			}
		}

		if e.pruning && alpha >= beta {
			break
		}
	}

	if e.useTT {
		flag := TTExact
		switch {
		case bestScore <= alphaOrig:
			flag = TTUpperBound
		case bestScore >= betaOrig:
			flag = TTLowerBound
		}
		e.tt.Store(key, depth, AdjustScoreToTT(bestScore, ply), flag, bestMove)
	}

	return bestScore, bestMove
}
