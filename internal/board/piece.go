package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// homeRow returns the back-rank row of the color.
func (c Color) homeRow() uint8 {
	if c == White {
		return 7
	}
	return 0
}

// forward returns the row delta of a pawn advance for the color.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// Kind represents the type of a chess piece. The zero value marks an empty
// square.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the kind (lowercase).
func (k Kind) Char() byte {
	return " pnbrqk"[k%7]
}

// PieceValue is the material value of each kind in centipawns.
var PieceValue = [7]int{0, 100, 320, 330, 500, 900, 20000}

// Piece is a piece standing on the board. Its Pos always equals the grid slot
// holding it; Board maintains that when applying moves.
type Piece struct {
	Kind  Kind
	Color Color
	Pos   Location
}

// Exists returns false for the zero Piece used to mark empty squares.
func (p Piece) Exists() bool {
	return p.Kind != NoKind
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Kind]
}

// Char returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) Char() byte {
	c := p.Kind.Char()
	if p.Color == White && p.Kind != NoKind {
		return c - 'a' + 'A'
	}
	return c
}

// String returns the FEN character for the piece.
func (p Piece) String() string {
	return string(p.Char())
}

// kindFromChar converts a FEN character to a kind and color.
func kindFromChar(c byte) (Kind, Color, bool) {
	color := Black
	if c >= 'A' && c <= 'Z' {
		color = White
		c = c - 'A' + 'a'
	}
	switch c {
	case 'p':
		return Pawn, color, true
	case 'n':
		return Knight, color, true
	case 'b':
		return Bishop, color, true
	case 'r':
		return Rook, color, true
	case 'q':
		return Queen, color, true
	case 'k':
		return King, color, true
	default:
		return NoKind, color, false
	}
}
