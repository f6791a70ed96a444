package board

// PseudoMoves returns every square the piece can reach on b, ignoring
// whether the move would leave its own king in check. King moves onto
// attacked squares and unsafe castling are already excluded.
func (p Piece) PseudoMoves(b *Board) []Location {
	switch p.Kind {
	case Pawn:
		return p.pawnMoves(b)
	case Knight:
		return p.stepMoves(b, knightOffsets[:])
	case Bishop:
		return p.rayMoves(b, bishopDirs[:])
	case Rook:
		return p.rayMoves(b, rookDirs[:])
	case Queen:
		return p.rayMoves(b, queenDirs[:])
	case King:
		return p.kingMoves(b)
	default:
		return nil
	}
}

// Attacks returns the squares the piece threatens. For pawns these are the
// two forward diagonals regardless of occupancy; sliders include the first
// blocker of either color.
func (p Piece) Attacks(b *Board) []Location {
	switch p.Kind {
	case Pawn:
		moves := make([]Location, 0, 2)
		for _, dx := range [2]int{-1, 1} {
			if t, out := p.Pos.MoveBy(dx, p.Color.forward()); !out {
				moves = append(moves, t)
			}
		}
		return moves
	case Knight:
		return stepAttacks(p.Pos, knightOffsets[:])
	case Bishop:
		return p.rayAttacks(b, bishopDirs[:])
	case Rook:
		return p.rayAttacks(b, rookDirs[:])
	case Queen:
		return p.rayAttacks(b, queenDirs[:])
	case King:
		return stepAttacks(p.Pos, kingOffsets[:])
	default:
		return nil
	}
}

func (p Piece) pawnMoves(b *Board) []Location {
	moves := make([]Location, 0, 4)
	dir := p.Color.forward()

	// Forward movement, double step only through an empty square
	if one, out := p.Pos.MoveBy(0, dir); !out && !b.squares.occupied(one) {
		moves = append(moves, one)
		if p.Pos.Y == pawnStartRow(p.Color) {
			if two, out := p.Pos.MoveBy(0, 2*dir); !out && !b.squares.occupied(two) {
				moves = append(moves, two)
			}
		}
	}

	// Diagonal captures, including en passant
	for _, dx := range [2]int{-1, 1} {
		t, out := p.Pos.MoveBy(dx, dir)
		if out {
			continue
		}
		if q := b.squares.at(t); q.Exists() {
			if q.Color != p.Color {
				moves = append(moves, t)
			}
		} else if b.hasEP && b.ep.Target == t && b.ep.Color != p.Color {
			moves = append(moves, t)
		}
	}

	return moves
}

func pawnStartRow(c Color) uint8 {
	if c == White {
		return 6
	}
	return 1
}

func (p Piece) stepMoves(b *Board, offsets [][2]int) []Location {
	moves := make([]Location, 0, len(offsets))
	for _, o := range offsets {
		t, out := p.Pos.MoveBy(o[0], o[1])
		if out {
			continue
		}
		if q := b.squares.at(t); q.Exists() && q.Color == p.Color {
			continue
		}
		moves = append(moves, t)
	}
	return moves
}

func stepAttacks(from Location, offsets [][2]int) []Location {
	moves := make([]Location, 0, len(offsets))
	for _, o := range offsets {
		if t, out := from.MoveBy(o[0], o[1]); !out {
			moves = append(moves, t)
		}
	}
	return moves
}

func (p Piece) rayMoves(b *Board, dirs [][2]int) []Location {
	moves := make([]Location, 0, 14)
	for _, d := range dirs {
		cur := p.Pos
		for {
			next, out := cur.MoveBy(d[0], d[1])
			if out {
				break
			}
			if q := b.squares.at(next); q.Exists() {
				if q.Color != p.Color {
					moves = append(moves, next)
				}
				break
			}
			moves = append(moves, next)
			cur = next
		}
	}
	return moves
}

func (p Piece) rayAttacks(b *Board, dirs [][2]int) []Location {
	moves := make([]Location, 0, 14)
	for _, d := range dirs {
		cur := p.Pos
		for {
			next, out := cur.MoveBy(d[0], d[1])
			if out {
				break
			}
			moves = append(moves, next)
			if b.squares.occupied(next) {
				break
			}
			cur = next
		}
	}
	return moves
}

func (p Piece) kingMoves(b *Board) []Location {
	enemy := p.Color.Other()
	moves := make([]Location, 0, 10)
	for _, t := range p.stepMoves(b, kingOffsets[:]) {
		if !b.squares.attacked(t, enemy) {
			moves = append(moves, t)
		}
	}

	row := p.Color.homeRow()
	if p.Pos != (Location{4, row}) || b.squares.attacked(p.Pos, enemy) {
		return moves
	}
	for _, kingSide := range [2]bool{true, false} {
		if t, ok := b.castleTarget(p.Color, kingSide); ok {
			moves = append(moves, t)
		}
	}
	return moves
}

// castleTarget returns the king destination for castling on the given side
// if every castling condition other than "not currently in check" holds: the
// right is held, the rook stands on its corner, the squares between king and
// rook are empty, and the squares the king crosses or lands on are not
// attacked.
func (b *Board) castleTarget(c Color, kingSide bool) (Location, bool) {
	if !b.castling.CanCastle(c, kingSide) {
		return NoLocation, false
	}
	row := c.homeRow()

	rookX, empty, transit := uint8(0), []uint8{1, 2, 3}, []uint8{3, 2}
	if kingSide {
		rookX, empty, transit = 7, []uint8{5, 6}, []uint8{5, 6}
	}

	if r := b.squares.at(Location{rookX, row}); r.Kind != Rook || r.Color != c {
		return NoLocation, false
	}
	for _, x := range empty {
		if b.squares.occupied(Location{x, row}) {
			return NoLocation, false
		}
	}
	for _, x := range transit {
		if b.squares.attacked(Location{x, row}, c.Other()) {
			return NoLocation, false
		}
	}
	return Location{transit[1], row}, true
}
