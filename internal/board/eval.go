package board

import (
	"math"
	"slices"
)

// Evaluation constants in centipawns.
const (
	CheckmateValue = 20000
	CheckValue     = 50
	DrawValue      = 0
)

// Evaluate returns the static evaluation of b, positive favoring White.
// Terminal states short-circuit to fixed values; otherwise the score is
// material plus piece-square values, adjusted for a side in check.
func Evaluate(b *Board) int {
	switch b.state.Kind {
	case Checkmate:
		if b.state.Color == White {
			return -CheckmateValue
		}
		return CheckmateValue
	case Stalemate, Draw:
		return DrawValue
	}

	score := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := b.squares[y][x]
			if !p.Exists() {
				continue
			}
			v := p.Value() + squareValue(p.Kind, p.Color, p.Pos, b.endgame)
			if p.Color == White {
				score += v
			} else {
				score -= v
			}
		}
	}

	if b.state.Kind == Check {
		if b.state.Color == White {
			score -= CheckValue
		} else {
			score += CheckValue
		}
	}
	return score
}

// Ordering penalties. They only shape move ordering.
const (
	earlyQueenPenalty = 30
	kingWalkPenalty   = 40
)

// MoveValue scores m from the mover's point of view for move ordering.
// Promotions come first. Other moves score the piece-square gain plus, for
// captures, the captured value minus the mover's value.
func (b *Board) MoveValue(m Move) int {
	p := b.squares.at(m.From)
	if !p.Exists() {
		return math.MinInt32
	}
	if b.IsPromotion(m) {
		return math.MaxInt32
	}

	v := squareValue(p.Kind, p.Color, m.To, b.endgame) - squareValue(p.Kind, p.Color, m.From, b.endgame)

	if target := b.squares.at(m.To); target.Exists() {
		v += target.Value() - p.Value()
	} else if b.isEnPassantCapture(p, m.To) {
		v += PieceValue[Pawn] - p.Value()
	}

	if !b.endgame {
		switch p.Kind {
		case Queen:
			if b.undevelopedMinors(p.Color) >= 2 {
				v -= earlyQueenPenalty
			}
		case King:
			if dx := int(m.To.X) - int(m.From.X); dx != 2 && dx != -2 {
				v -= kingWalkPenalty
			}
		}
	}
	return v
}

// undevelopedMinors counts knights and bishops of color c still on their
// home row.
func (b *Board) undevelopedMinors(c Color) int {
	n := 0
	row := c.homeRow()
	for x := uint8(0); x < 8; x++ {
		p := b.squares.at(Location{x, row})
		if p.Color == c && (p.Kind == Knight || p.Kind == Bishop) {
			n++
		}
	}
	return n
}

// SortedMoves returns the legal moves of c ordered best first for c by
// MoveValue. Ties keep generation order. The result is a fresh slice.
func (b *Board) SortedMoves(c Color) []Move {
	legal := b.LegalMoves(c)
	type scored struct {
		m Move
		v int
	}
	list := make([]scored, len(legal))
	for i, m := range legal {
		list[i] = scored{m, b.MoveValue(m)}
	}
	slices.SortStableFunc(list, func(x, y scored) int {
		switch {
		case x.v > y.v:
			return -1
		case x.v < y.v:
			return 1
		}
		return 0
	})
	moves := make([]Move, len(list))
	for i, s := range list {
		moves[i] = s.m
	}
	return moves
}
