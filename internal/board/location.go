// Package board implements the chess board: piece placement, move legality,
// move application and game-state detection.
package board

import "fmt"

// Location is a board coordinate. X is the file (0 = a, 7 = h). Y is the row
// counted from Black's back rank: Y=0 is rank 8 and Y=7 is rank 1.
type Location struct {
	X, Y uint8
}

// Named locations for all 64 squares.
var (
	A8 = Location{0, 0}
	B8 = Location{1, 0}
	C8 = Location{2, 0}
	D8 = Location{3, 0}
	E8 = Location{4, 0}
	F8 = Location{5, 0}
	G8 = Location{6, 0}
	H8 = Location{7, 0}
	A7 = Location{0, 1}
	B7 = Location{1, 1}
	C7 = Location{2, 1}
	D7 = Location{3, 1}
	E7 = Location{4, 1}
	F7 = Location{5, 1}
	G7 = Location{6, 1}
	H7 = Location{7, 1}
	A6 = Location{0, 2}
	B6 = Location{1, 2}
	C6 = Location{2, 2}
	D6 = Location{3, 2}
	E6 = Location{4, 2}
	F6 = Location{5, 2}
	G6 = Location{6, 2}
	H6 = Location{7, 2}
	A5 = Location{0, 3}
	B5 = Location{1, 3}
	C5 = Location{2, 3}
	D5 = Location{3, 3}
	E5 = Location{4, 3}
	F5 = Location{5, 3}
	G5 = Location{6, 3}
	H5 = Location{7, 3}
	A4 = Location{0, 4}
	B4 = Location{1, 4}
	C4 = Location{2, 4}
	D4 = Location{3, 4}
	E4 = Location{4, 4}
	F4 = Location{5, 4}
	G4 = Location{6, 4}
	H4 = Location{7, 4}
	A3 = Location{0, 5}
	B3 = Location{1, 5}
	C3 = Location{2, 5}
	D3 = Location{3, 5}
	E3 = Location{4, 5}
	F3 = Location{5, 5}
	G3 = Location{6, 5}
	H3 = Location{7, 5}
	A2 = Location{0, 6}
	B2 = Location{1, 6}
	C2 = Location{2, 6}
	D2 = Location{3, 6}
	E2 = Location{4, 6}
	F2 = Location{5, 6}
	G2 = Location{6, 6}
	H2 = Location{7, 6}
	A1 = Location{0, 7}
	B1 = Location{1, 7}
	C1 = Location{2, 7}
	D1 = Location{3, 7}
	E1 = Location{4, 7}
	F1 = Location{5, 7}
	G1 = Location{6, 7}
	H1 = Location{7, 7}
)

// NoLocation is an off-board sentinel.
var NoLocation = Location{8, 8}

// Loc builds a location from signed coordinates. Out-of-range values yield
// NoLocation.
func Loc(x, y int) Location {
	if x < 0 || x > 7 || y < 0 || y > 7 {
		return NoLocation
	}
	return Location{uint8(x), uint8(y)}
}

// Valid returns true if the location is on the board.
func (l Location) Valid() bool {
	return l.X < 8 && l.Y < 8
}

// MoveBy returns the location offset by (dx, dy) and whether the true
// destination fell outside the board. An out-of-bounds result is clamped to
// the nearest edge and must not be used as a square.
func (l Location) MoveBy(dx, dy int) (Location, bool) {
	x := int(l.X) + dx
	y := int(l.Y) + dy
	out := x < 0 || x > 7 || y < 0 || y > 7
	return Location{uint8(clamp(x)), uint8(clamp(y))}, out
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 7 {
		return 7
	}
	return v
}

// Index returns the 0-63 index of the location (a8=0, h1=63).
func (l Location) Index() int {
	return int(l.Y)*8 + int(l.X)
}

// locationAt is the inverse of Index.
func locationAt(idx int) Location {
	return Location{uint8(idx & 7), uint8(idx >> 3)}
}

// Rank returns the chess rank (1-8) of the location.
func (l Location) Rank() int {
	return 8 - int(l.Y)
}

// IsLight returns true for light squares (h1 and a8 are light).
func (l Location) IsLight() bool {
	return (l.X+l.Y)%2 == 0
}

// String returns the algebraic notation for the location (e.g., "e4").
func (l Location) String() string {
	if !l.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+l.X, '0'+byte(l.Rank()))
}

// ParseLocation parses algebraic notation (e.g., "e4") into a Location.
func ParseLocation(s string) (Location, error) {
	if len(s) != 2 {
		return NoLocation, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '0'

	if file < 0 || file > 7 || rank < 1 || rank > 8 {
		return NoLocation, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	return Location{uint8(file), uint8(8 - rank)}, nil
}

// MustParseLocation is like ParseLocation but panics on malformed input.
// Intended for constants and tests.
func MustParseLocation(s string) Location {
	l, err := ParseLocation(s)
	if err != nil {
		panic(err)
	}
	return l
}
