package board

// LegalMoves returns the legal moves of color c. The result is cached on the
// board until the next MovePiece and must not be modified by the caller.
func (b *Board) LegalMoves(c Color) []Move {
	if !b.legalFresh[c] {
		b.legal[c] = b.generateLegal(c)
		b.legalFresh[c] = true
	}
	return b.legal[c]
}

// HasLegalMove returns true if color c has at least one legal move.
func (b *Board) HasLegalMove(c Color) bool {
	return len(b.LegalMoves(c)) > 0
}

// IsLegal reports whether m is a legal move for the side to move.
func (b *Board) IsLegal(m Move) bool {
	p, ok := b.Get(m.From)
	if !ok || p.Color != b.turn {
		return false
	}
	for _, lm := range b.LegalMoves(b.turn) {
		if lm == m {
			return true
		}
	}
	return false
}

// generateLegal filters pseudo moves down to legal ones. Moves that cannot
// change the safety of the own king are accepted directly; everything else is
// simulated on a scratch grid.
func (b *Board) generateLegal(c Color) []Move {
	moves := make([]Move, 0, 48)
	inCheck := b.checked[c]

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := b.squares[y][x]
			if !p.Exists() || p.Color != c {
				continue
			}
			simulate := inCheck || p.Kind == King || b.blockers.Has(p.Pos)
			for _, to := range p.PseudoMoves(b) {
				if simulate || b.isEnPassantCapture(p, to) {
					if !b.kingSafeAfter(p, to) {
						continue
					}
				}
				moves = append(moves, Move{p.Pos, to})
			}
		}
	}
	return moves
}

// kingSafeAfter plays p to to on a copy of the grid and reports whether the
// king of p's color is then unattacked. A missing king counts as attacked.
func (b *Board) kingSafeAfter(p Piece, to Location) bool {
	g := b.squares
	if b.isEnPassantCapture(p, to) {
		g.clear(Location{to.X, p.Pos.Y})
	}
	if p.Kind == King {
		if dx := int(to.X) - int(p.Pos.X); dx == 2 || dx == -2 {
			rookFrom, rookTo := Location{0, to.Y}, Location{3, to.Y}
			if dx == 2 {
				rookFrom, rookTo = Location{7, to.Y}, Location{5, to.Y}
			}
			rook := g.at(rookFrom)
			g.clear(rookFrom)
			g.put(rookTo, rook)
		}
	}
	g.clear(p.Pos)
	g.put(to, p)

	k, ok := g.findKing(p.Color)
	if !ok {
		return false
	}
	return !g.attacked(k, p.Color.Other())
}
