package board

import (
	"math/bits"
	"strings"
)

// SquareSet is a set of board locations packed into 64 bits.
// Bit i corresponds to the location with Index() == i (a8 = bit 0, h1 = bit 63).
type SquareSet uint64

// SetOf returns a set containing the given locations.
func SetOf(locs ...Location) SquareSet {
	var s SquareSet
	for _, l := range locs {
		s = s.Add(l)
	}
	return s
}

// Add returns the set with l included.
func (s SquareSet) Add(l Location) SquareSet {
	if !l.Valid() {
		return s
	}
	return s | 1<<uint(l.Index())
}

// Remove returns the set with l excluded.
func (s SquareSet) Remove(l Location) SquareSet {
	if !l.Valid() {
		return s
	}
	return s &^ (1 << uint(l.Index()))
}

// Has returns true if l is in the set.
func (s SquareSet) Has(l Location) bool {
	return l.Valid() && s&(1<<uint(l.Index())) != 0
}

// Count returns the number of locations in the set.
func (s SquareSet) Count() int {
	return bits.OnesCount64(uint64(s))
}

// PopFirst removes and returns the lowest-index location in the set.
// The set must not be empty.
func (s *SquareSet) PopFirst() Location {
	idx := bits.TrailingZeros64(uint64(*s))
	*s &= *s - 1
	return locationAt(idx)
}

// Locations returns the members of the set in index order.
func (s SquareSet) Locations() []Location {
	locs := make([]Location, 0, s.Count())
	for s != 0 {
		locs = append(locs, s.PopFirst())
	}
	return locs
}

// String returns an 8x8 grid of the set, rank 8 first.
func (s SquareSet) String() string {
	var sb strings.Builder
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if s.Has(Loc(x, y)) {
				sb.WriteString("X ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
