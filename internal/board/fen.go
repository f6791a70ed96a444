package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FromFEN parses a FEN string into a fully updated Board. The half-move
// clock and full-move number fields are optional.
func FromFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return nil, fmt.Errorf("%w: need 4 to 6 fields, got %d", ErrInvalidFEN, len(parts))
	}

	b := &Board{}

	// Piece placement
	if err := parsePlacement(&b.squares, parts[0]); err != nil {
		return nil, err
	}

	// Side to move
	switch parts[1] {
	case "w":
		b.turn = White
	case "b":
		b.turn = Black
	default:
		return nil, fmt.Errorf("%w: invalid side to move %q", ErrInvalidFEN, parts[1])
	}

	// Castling rights
	cr, err := parseCastling(parts[2])
	if err != nil {
		return nil, err
	}
	b.castling = cr

	// En passant target
	if parts[3] != "-" {
		l, err := ParseLocation(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant: %v", ErrInvalidFEN, err)
		}
		pawnColor := b.turn.Other()
		if r := l.Rank(); (pawnColor == White && r != 3) || (pawnColor == Black && r != 6) {
			return nil, fmt.Errorf("%w: en passant square %s does not match side to move", ErrInvalidFEN, l)
		}
		b.ep = EnPassant{Target: l, Color: pawnColor}
		b.hasEP = true
	}

	// Half-move clock and full-move number
	hmc, full := 0, 1
	if len(parts) > 4 {
		if hmc, err = strconv.Atoi(parts[4]); err != nil || hmc < 0 {
			return nil, fmt.Errorf("%w: invalid half-move clock %q", ErrInvalidFEN, parts[4])
		}
	}
	if len(parts) > 5 {
		if full, err = strconv.Atoi(parts[5]); err != nil || full < 1 {
			return nil, fmt.Errorf("%w: invalid full-move number %q", ErrInvalidFEN, parts[5])
		}
	}
	b.halfMoves = (full - 1) * 2
	if b.turn == Black {
		b.halfMoves++
	}
	b.fiftyBase = b.halfMoves - hmc

	b.hash = b.computeHash()
	b.pushHistory(b.hash)
	b.update(true)
	return b, nil
}

// MustFromFEN is like FromFEN but panics on malformed input.
func MustFromFEN(fen string) *Board {
	b, err := FromFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

func parsePlacement(g *grid, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	var kings [2]int
	for y, rankStr := range ranks {
		x := 0
		for i := 0; i < len(rankStr); i++ {
			c := rankStr[i]
			if x > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, 8-y)
			}
			if c >= '1' && c <= '8' {
				x += int(c - '0')
				continue
			}
			kind, color, ok := kindFromChar(c)
			if !ok {
				return fmt.Errorf("%w: invalid piece character %q", ErrInvalidFEN, c)
			}
			if kind == Pawn && (y == 0 || y == 7) {
				return fmt.Errorf("%w: pawn on rank %d", ErrInvalidFEN, 8-y)
			}
			if kind == King {
				kings[color]++
			}
			g.put(Location{uint8(x), uint8(y)}, Piece{Kind: kind, Color: color})
			x++
		}
		if x != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, 8-y, x)
		}
	}

	if kings[White] > 1 || kings[Black] > 1 {
		return fmt.Errorf("%w: more than one king per side", ErrInvalidFEN)
	}
	return nil
}

func parseCastling(s string) (CastlingRights, error) {
	if s == "-" {
		return NoCastling, nil
	}
	var cr CastlingRights
	for _, c := range s {
		switch c {
		case 'K':
			cr |= WhiteKingSideCastle
		case 'Q':
			cr |= WhiteQueenSideCastle
		case 'k':
			cr |= BlackKingSideCastle
		case 'q':
			cr |= BlackQueenSideCastle
		default:
			return NoCastling, fmt.Errorf("%w: invalid castling character %q", ErrInvalidFEN, c)
		}
	}
	return cr, nil
}

// ToFEN returns the FEN representation of the board.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	for y := 0; y < 8; y++ {
		empty := 0
		for x := 0; x < 8; x++ {
			p := b.squares[y][x]
			if !p.Exists() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if y < 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.castling.String())

	sb.WriteByte(' ')
	if b.hasEP {
		sb.WriteString(b.ep.Target.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.HalfMoveClock()))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.FullMoveNumber()))

	return sb.String()
}
