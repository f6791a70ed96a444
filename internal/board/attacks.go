package board

// Offset tables for the fixed-step pieces and ray directions for sliders.
var (
	knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [8][2]int{{0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}, {-1, -1}, {-1, 0}, {-1, 1}}
	rookDirs      = [4][2]int{{0, -1}, {0, 1}, {1, 0}, {-1, 0}}
	bishopDirs    = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs     = [8][2]int{{0, -1}, {0, 1}, {1, 0}, {-1, 0}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// grid is the raw 8x8 placement, indexed [Y][X].
type grid [8][8]Piece

func (g *grid) at(l Location) Piece {
	return g[l.Y][l.X]
}

func (g *grid) occupied(l Location) bool {
	return g[l.Y][l.X].Kind != NoKind
}

func (g *grid) put(l Location, p Piece) {
	p.Pos = l
	g[l.Y][l.X] = p
}

func (g *grid) clear(l Location) {
	g[l.Y][l.X] = Piece{}
}

// findKing returns the location of the king of color c.
func (g *grid) findKing(c Color) (Location, bool) {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := g[y][x]
			if p.Kind == King && p.Color == c {
				return p.Pos, true
			}
		}
	}
	return NoLocation, false
}

// attacked reports whether any piece of color by attacks l. It walks outward
// from l instead of generating every enemy attack, so it is safe to call on
// scratch grids during legality simulation.
func (g *grid) attacked(l Location, by Color) bool {
	for _, o := range knightOffsets {
		if t, out := l.MoveBy(o[0], o[1]); !out {
			if p := g.at(t); p.Kind == Knight && p.Color == by {
				return true
			}
		}
	}

	for _, o := range kingOffsets {
		if t, out := l.MoveBy(o[0], o[1]); !out {
			if p := g.at(t); p.Kind == King && p.Color == by {
				return true
			}
		}
	}

	// A pawn of color by attacks l from one row behind l, relative to by.
	dy := -by.forward()
	for _, dx := range [2]int{-1, 1} {
		if t, out := l.MoveBy(dx, dy); !out {
			if p := g.at(t); p.Kind == Pawn && p.Color == by {
				return true
			}
		}
	}

	for _, d := range rookDirs {
		if p, ok := g.firstOnRay(l, d); ok && p.Color == by && (p.Kind == Rook || p.Kind == Queen) {
			return true
		}
	}
	for _, d := range bishopDirs {
		if p, ok := g.firstOnRay(l, d); ok && p.Color == by && (p.Kind == Bishop || p.Kind == Queen) {
			return true
		}
	}

	return false
}

// firstOnRay returns the first piece met walking from l (exclusive) in
// direction d.
func (g *grid) firstOnRay(l Location, d [2]int) (Piece, bool) {
	cur := l
	for {
		next, out := cur.MoveBy(d[0], d[1])
		if out {
			return Piece{}, false
		}
		if p := g.at(next); p.Exists() {
			return p, true
		}
		cur = next
	}
}

// attackSet returns every square attacked by pieces of color c, ignoring
// whether moving those pieces would expose their own king.
func (b *Board) attackSet(c Color) SquareSet {
	var set SquareSet
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := b.squares[y][x]
			if p.Kind == NoKind || p.Color != c {
				continue
			}
			for _, l := range p.Attacks(b) {
				set = set.Add(l)
			}
		}
	}
	return set
}

// IsAttacked reports whether square l is attacked by color by.
func (b *Board) IsAttacked(l Location, by Color) bool {
	return b.squares.attacked(l, by)
}

// computeBlockers returns the squares of pieces that stand between a king and
// an enemy slider on a shared line. Moving one of them may expose the king,
// so their moves need full legality simulation.
func (b *Board) computeBlockers() SquareSet {
	var set SquareSet
	for _, c := range [2]Color{White, Black} {
		ksq, ok := b.squares.findKing(c)
		if !ok {
			continue
		}
		for i, d := range queenDirs {
			diagonal := i >= 4
			first, ok := b.squares.firstOnRay(ksq, d)
			if !ok || first.Color != c {
				continue
			}
			behind, ok := b.squares.firstOnRay(first.Pos, d)
			if !ok || behind.Color == c {
				continue
			}
			if behind.Kind == Queen ||
				(diagonal && behind.Kind == Bishop) ||
				(!diagonal && behind.Kind == Rook) {
				set = set.Add(first.Pos)
			}
		}
	}
	return set
}
