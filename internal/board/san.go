package board

import (
	"fmt"
	"strings"
)

// SAN returns the Standard Algebraic Notation of m, which must be legal on b.
func (b *Board) SAN(m Move) string {
	p, ok := b.Get(m.From)
	if !ok || !m.IsValid() {
		return m.String()
	}

	if p.Kind == King {
		switch int(m.To.X) - int(m.From.X) {
		case 2:
			return "O-O" + b.checkSuffix(m)
		case -2:
			return "O-O-O" + b.checkSuffix(m)
		}
	}

	var sb strings.Builder
	if p.Kind != Pawn {
		sb.WriteByte(p.Kind.Char() - 'a' + 'A')
		sb.WriteString(b.disambiguation(p, m))
	}

	if b.IsCapture(m) {
		if p.Kind == Pawn {
			sb.WriteByte('a' + m.From.X)
		}
		sb.WriteByte('x')
	}

	sb.WriteString(m.To.String())

	if b.IsPromotion(m) {
		sb.WriteString("=Q")
	}

	sb.WriteString(b.checkSuffix(m))
	return sb.String()
}

func (b *Board) checkSuffix(m Move) string {
	next := b.Clone()
	next.MovePiece(m.From, m.To, false)
	switch next.State().Kind {
	case Checkmate:
		return "#"
	case Check:
		return "+"
	}
	return ""
}

// disambiguation returns the file, rank or square needed to tell m apart from
// other legal moves of the same kind to the same square.
func (b *Board) disambiguation(p Piece, m Move) string {
	sameFile, sameRank, ambiguous := false, false, false
	for _, lm := range b.LegalMoves(p.Color) {
		if lm.To != m.To || lm.From == m.From || b.squares.at(lm.From).Kind != p.Kind {
			continue
		}
		ambiguous = true
		if lm.From.X == m.From.X {
			sameFile = true
		}
		if lm.From.Y == m.From.Y {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(rune('a' + m.From.X))
	case !sameRank:
		return string(rune('0' + m.From.Rank()))
	default:
		return m.From.String()
	}
}

// ParseSAN parses a SAN move for the side to move on b. Pawn moves, piece
// moves, file/rank/square disambiguation, captures, castling, queen
// promotion and check or annotation suffixes are supported.
func (b *Board) ParseSAN(s string) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")

	// Castling
	row := b.turn.homeRow()
	switch s {
	case "O-O", "0-0":
		return b.matchLegal(orig, Move{Location{4, row}, Location{6, row}})
	case "O-O-O", "0-0-0":
		return b.matchLegal(orig, Move{Location{4, row}, Location{2, row}})
	}

	// Promotion
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		if s[idx+1:] != "Q" {
			return NoMove, fmt.Errorf("%w: %q: only queen promotion is supported", ErrInvalidSAN, orig)
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	kind := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		k, _, ok := kindFromChar(s[0])
		if !ok || k == Pawn {
			return NoMove, fmt.Errorf("%w: %q: unknown piece letter", ErrInvalidSAN, orig)
		}
		kind = k
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("%w: %q: missing destination", ErrInvalidSAN, orig)
	}
	dest, err := ParseLocation(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidSAN, orig, err)
	}
	s = s[:len(s)-2]

	fileHint, rankHint := -1, -1
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'h':
			fileHint = int(c - 'a')
		case c >= '1' && c <= '8':
			rankHint = int(c - '0')
		default:
			return NoMove, fmt.Errorf("%w: %q: bad disambiguation", ErrInvalidSAN, orig)
		}
	}

	found := NoMove
	for _, m := range b.LegalMoves(b.turn) {
		if m.To != dest || b.squares.at(m.From).Kind != kind {
			continue
		}
		if fileHint >= 0 && int(m.From.X) != fileHint {
			continue
		}
		if rankHint >= 0 && m.From.Rank() != rankHint {
			continue
		}
		if isCapture && !b.IsCapture(m) {
			continue
		}
		if found.IsValid() {
			return NoMove, fmt.Errorf("%w: %q: ambiguous", ErrInvalidSAN, orig)
		}
		found = m
	}
	if !found.IsValid() {
		return NoMove, fmt.Errorf("%w: %q: no matching legal move", ErrInvalidSAN, orig)
	}
	return found, nil
}

func (b *Board) matchLegal(orig string, m Move) (Move, error) {
	if p, ok := b.Get(m.From); ok && p.Kind == King && b.IsLegal(m) {
		return m, nil
	}
	return NoMove, fmt.Errorf("%w: %q: castling not legal", ErrInvalidSAN, orig)
}

// SANMoves converts a sequence of legal moves played from b to SAN. b is not
// modified.
func (b *Board) SANMoves(moves []Move) []string {
	result := make([]string, len(moves))
	cur := b.Clone()
	for i, m := range moves {
		result[i] = cur.SAN(m)
		cur.MovePiece(m.From, m.To, false)
	}
	return result
}
