package board

import (
	"fmt"
	"strings"
)

// Move is a from/to pair. Promotion is implicit: a pawn reaching the far rank
// always becomes a queen.
type Move struct {
	From, To Location
}

// NoMove represents an invalid or null move.
var NoMove = Move{NoLocation, NoLocation}

// IsValid returns true if both squares are on the board.
func (m Move) IsValid() bool {
	return m.From.Valid() && m.To.Valid()
}

// String returns coordinate notation (e.g., "e2e4").
func (m Move) String() string {
	if !m.IsValid() {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// ParseMove parses coordinate notation such as "e2e4". A trailing promotion
// letter is accepted for queens only.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) == 5 && s[4] == 'q' {
		s = s[:4]
	}
	if len(s) != 4 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := ParseLocation(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}
	to, err := ParseLocation(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}
	return Move{from, to}, nil
}

// IsCapture reports whether m captures on b, en passant included.
func (b *Board) IsCapture(m Move) bool {
	if b.squares.occupied(m.To) {
		return true
	}
	return b.isEnPassantCapture(b.squares.at(m.From), m.To)
}

// IsPromotion reports whether m moves a pawn onto its last rank.
func (b *Board) IsPromotion(m Move) bool {
	p := b.squares.at(m.From)
	return p.Kind == Pawn && m.To.Y == p.Color.Other().homeRow()
}

func (b *Board) isEnPassantCapture(p Piece, to Location) bool {
	return p.Kind == Pawn && b.hasEP && to == b.ep.Target &&
		b.ep.Color != p.Color && p.Pos.X != to.X && !b.squares.occupied(to)
}

// Apply plays m with full state detection. It is shorthand for
// MovePiece(m.From, m.To, true).
func (b *Board) Apply(m Move) bool {
	return b.MovePiece(m.From, m.To, true)
}

// MovePiece moves the piece on from to to and returns whether a piece was
// captured. The move is not validated against the legal move list; callers
// pass moves taken from LegalMoves. Stalemate is only detected when
// recomputeStalemate is set, because it requires the full legal move list of
// the side to move.
//
// MovePiece panics if from is empty.
func (b *Board) MovePiece(from, to Location, recomputeStalemate bool) bool {
	p := b.squares.at(from)
	if !p.Exists() {
		panic(fmt.Sprintf("board: move %s%s from empty square", from, to))
	}
	target := b.squares.at(to)

	// 1. Captures
	epCapture := b.isEnPassantCapture(p, to)
	captured := target.Exists() || epCapture
	pawnMove := p.Kind == Pawn
	b.hasEP = false

	// 2. Side effects by piece kind
	switch p.Kind {
	case King:
		b.castling &^= castleRight(p.Color, true) | castleRight(p.Color, false)
		if dx := int(to.X) - int(from.X); dx == 2 || dx == -2 {
			rookFrom, rookTo := Location{0, from.Y}, Location{3, from.Y}
			if dx == 2 {
				rookFrom, rookTo = Location{7, from.Y}, Location{5, from.Y}
			}
			rook := b.squares.at(rookFrom)
			b.squares.clear(rookFrom)
			b.squares.put(rookTo, rook)
		}
	case Rook:
		b.revokeCorner(p.Color, from)
	case Pawn:
		if epCapture {
			b.squares.clear(Location{to.X, from.Y})
		}
		if dy := int(to.Y) - int(from.Y); dy == 2 || dy == -2 {
			b.ep = EnPassant{Target: Location{from.X, (from.Y + to.Y) / 2}, Color: p.Color}
			b.hasEP = true
		}
		if to.Y == p.Color.Other().homeRow() {
			p.Kind = Queen
		}
	}
	if target.Kind == Rook {
		b.revokeCorner(target.Color, to)
	}

	// 3. Relocation
	b.squares.clear(from)
	b.squares.put(to, p)

	// 4. Turn and counters
	b.turn = b.turn.Other()
	b.halfMoves++

	// 5. Hash and history
	b.hash = b.computeHash()
	b.pushHistory(b.hash)

	// 6. Fifty-move baseline
	if captured || pawnMove {
		b.fiftyBase = b.halfMoves
	}

	// 7. Derived state
	b.update(recomputeStalemate)
	return captured
}

// revokeCorner drops the castling right tied to a rook standing on the given
// corner of c's home row.
func (b *Board) revokeCorner(c Color, l Location) {
	if l.Y != c.homeRow() {
		return
	}
	switch l.X {
	case 0:
		b.castling &^= castleRight(c, false)
	case 7:
		b.castling &^= castleRight(c, true)
	}
}

// update recomputes every derived field in dependency order: attacks, check
// flags, blockers, legal moves, state, endgame flag, score.
func (b *Board) update(recomputeStalemate bool) {
	b.attackedBy[White] = b.attackSet(White)
	b.attackedBy[Black] = b.attackSet(Black)

	for _, c := range [2]Color{White, Black} {
		k, ok := b.squares.findKing(c)
		b.checked[c] = !ok || b.attackedBy[c.Other()].Has(k)
	}

	b.blockers = b.computeBlockers()

	b.legal = [2][]Move{}
	b.legalFresh = [2]bool{}
	if recomputeStalemate {
		b.LegalMoves(b.turn)
	}

	b.state = b.detectState(recomputeStalemate)
	b.endgame = b.isEndgame()
	b.score = Evaluate(b)
}
