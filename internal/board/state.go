package board

import "log"

// DebugAssertions turns invariant violations detected during state
// detection into panics instead of log lines.
var DebugAssertions = false

// detectState classifies the position. Rules are checked in priority order:
// fifty-move rule, threefold repetition, insufficient material, check and
// checkmate, stalemate.
func (b *Board) detectState(recomputeStalemate bool) State {
	if b.halfMoves-b.fiftyBase >= 50 {
		return State{Kind: Draw}
	}
	if b.Repetitions() >= 3 {
		return State{Kind: Draw}
	}
	if b.insufficientMaterial() {
		return State{Kind: Draw}
	}

	wc, bc := b.checked[White], b.checked[Black]
	if wc && bc {
		if DebugAssertions {
			panic("board: both kings in check: " + b.ToFEN())
		}
		log.Printf("[BOARD] both kings in check: %s", b.ToFEN())
		wc = b.turn == White
	}
	if wc || bc {
		c := Black
		if wc {
			c = White
		}
		if !b.HasLegalMove(c) {
			return State{Kind: Checkmate, Color: c}
		}
		return State{Kind: Check, Color: c}
	}

	if recomputeStalemate && !b.HasLegalMove(b.turn) {
		return State{Kind: Stalemate}
	}
	return State{Kind: Normal}
}

// insufficientMaterial reports positions where neither side can mate: bare
// kings, a single minor piece against a bare king, and one bishop each on
// squares of the same color.
func (b *Board) insufficientMaterial() bool {
	var others []Piece
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := b.squares[y][x]
			if !p.Exists() || p.Kind == King {
				continue
			}
			if len(others) == 2 {
				return false
			}
			others = append(others, p)
		}
	}

	switch len(others) {
	case 0:
		return true
	case 1:
		return others[0].Kind == Knight || others[0].Kind == Bishop
	default:
		a, c := others[0], others[1]
		return a.Kind == Bishop && c.Kind == Bishop && a.Color != c.Color &&
			a.Pos.IsLight() == c.Pos.IsLight()
	}
}

// isEndgame is true once the queens are gone or the minor pieces no longer
// outnumber them.
func (b *Board) isEndgame() bool {
	queens, minors := 0, 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			switch b.squares[y][x].Kind {
			case Queen:
				queens++
			case Knight, Bishop:
				minors++
			}
		}
	}
	return queens == 0 || minors <= queens
}
