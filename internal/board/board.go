package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, ch := range "KQkq" {
		if cr&(1<<i) != 0 {
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castleRight(c, kingSide) != 0
}

func castleRight(c Color, kingSide bool) CastlingRights {
	switch {
	case c == White && kingSide:
		return WhiteKingSideCastle
	case c == White:
		return WhiteQueenSideCastle
	case kingSide:
		return BlackKingSideCastle
	default:
		return BlackQueenSideCastle
	}
}

// StateKind classifies a board state.
type StateKind uint8

const (
	Normal StateKind = iota
	Check
	Checkmate
	Stalemate
	Draw
)

// State is the game state of a board. Color is meaningful for Check and
// Checkmate only and names the side in check.
type State struct {
	Kind  StateKind
	Color Color
}

// IsOver returns true for Checkmate, Stalemate and Draw.
func (s State) IsOver() bool {
	return s.Kind == Checkmate || s.Kind == Stalemate || s.Kind == Draw
}

func (s State) String() string {
	switch s.Kind {
	case Check:
		return "Check(" + s.Color.String() + ")"
	case Checkmate:
		return "Checkmate(" + s.Color.String() + ")"
	case Stalemate:
		return "Stalemate"
	case Draw:
		return "Draw"
	default:
		return "Normal"
	}
}

// EnPassant records the square skipped by a pawn double step and the color of
// that pawn.
type EnPassant struct {
	Target Location
	Color  Color
}

// historySize bounds the repetition history ring.
const historySize = 64

// Board is a chess position together with the caches derived from it. All
// derived fields are refreshed by MovePiece before it returns, so a Board is
// never observed half-updated. Board is a plain value: Clone copies it without
// sharing mutable state.
type Board struct {
	squares grid
	turn    Color
	state   State

	castling CastlingRights
	ep       EnPassant
	hasEP    bool

	score      int
	attackedBy [2]SquareSet
	checked    [2]bool
	blockers   SquareSet

	// Legal move caches. A slice is replaced, never modified in place, so
	// clones may share it.
	legal      [2][]Move
	legalFresh [2]bool

	halfMoves int
	fiftyBase int

	history    [historySize]uint64
	historyLen int
	historyPos int

	hash    uint64
	endgame bool
}

// NewBoard returns a board set up at the standard starting position.
func NewBoard() *Board {
	b, err := FromFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Get returns the piece on l, if any.
func (b *Board) Get(l Location) (Piece, bool) {
	if !l.Valid() {
		return Piece{}, false
	}
	p := b.squares.at(l)
	return p, p.Exists()
}

// Pieces returns every piece of color c in board order (a8 to h1).
func (b *Board) Pieces(c Color) []Piece {
	pieces := make([]Piece, 0, 16)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if p := b.squares[y][x]; p.Exists() && p.Color == c {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// King returns the location of the king of color c.
func (b *Board) King(c Color) (Location, bool) {
	return b.squares.findKing(c)
}

// Turn returns the side to move.
func (b *Board) Turn() Color { return b.turn }

// State returns the current game state.
func (b *Board) State() State { return b.state }

// IsOver returns true once the game has ended.
func (b *Board) IsOver() bool { return b.state.IsOver() }

// Score returns the static evaluation, positive favoring White.
func (b *Board) Score() int { return b.score }

// Castling returns the remaining castling rights.
func (b *Board) Castling() CastlingRights { return b.castling }

// EnPassant returns the en passant record, if a pawn just double-stepped.
func (b *Board) EnPassant() (EnPassant, bool) { return b.ep, b.hasEP }

// AttackedBy returns the squares attacked by color c.
func (b *Board) AttackedBy(c Color) SquareSet { return b.attackedBy[c] }

// InCheck returns true if color c is in check.
func (b *Board) InCheck(c Color) bool { return b.checked[c] }

// Blockers returns the squares of pieces standing between a king and an enemy
// slider.
func (b *Board) Blockers() SquareSet { return b.blockers }

// Endgame reports whether the endgame king table is in use.
func (b *Board) Endgame() bool { return b.endgame }

// HalfMoves returns the number of half-moves played since the position the
// board was created from, plus the ply implied by its full-move number.
func (b *Board) HalfMoves() int { return b.halfMoves }

// HalfMoveClock returns the half-moves since the last capture or pawn move.
func (b *Board) HalfMoveClock() int { return b.halfMoves - b.fiftyBase }

// FullMoveNumber returns the FEN full-move number.
func (b *Board) FullMoveNumber() int { return b.halfMoves/2 + 1 }

func (b *Board) pushHistory(h uint64) {
	b.history[b.historyPos] = h
	b.historyPos = (b.historyPos + 1) % historySize
	if b.historyLen < historySize {
		b.historyLen++
	}
}

// Repetitions returns how many times the current position hash occurs in the
// history, the current occurrence included.
func (b *Board) Repetitions() int {
	n := 0
	for i := 0; i < b.historyLen; i++ {
		if b.history[i] == b.hash {
			n++
		}
	}
	return n
}

// String returns a visual representation of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for y := 0; y < 8; y++ {
		fmt.Fprintf(&sb, "%d  ", 8-y)
		for x := 0; x < 8; x++ {
			if p := b.squares[y][x]; p.Exists() {
				sb.WriteByte(p.Char())
			} else {
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Turn: %s\n", b.turn)
	fmt.Fprintf(&sb, "State: %s\n", b.state)
	fmt.Fprintf(&sb, "FEN: %s\n", b.ToFEN())
	return sb.String()
}
