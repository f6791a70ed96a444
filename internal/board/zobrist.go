package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece     [2][7][64]uint64 // [Color][Kind][Index]; NoKind row unused
	zobristEnPassant [8]uint64        // One per file
	zobristCastling  [16]uint64       // All 16 castling combinations
	zobristTurn      uint64           // Folded into Key when Black is to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: 0x98F107A2BEEF1234}

	for c := White; c <= Black; c++ {
		for k := Pawn; k <= King; k++ {
			for i := 0; i < 64; i++ {
				zobristPiece[c][k][i] = rng.next()
			}
		}
	}
	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}
	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}
	zobristTurn = rng.next()
}

// computeHash hashes piece placement, castling rights and the en passant
// target. Turn and move counters are not part of the hash.
func (b *Board) computeHash() uint64 {
	var h uint64
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if p := b.squares[y][x]; p.Exists() {
				h ^= zobristPiece[p.Color][p.Kind][p.Pos.Index()]
			}
		}
	}
	h ^= zobristCastling[b.castling]
	if b.hasEP {
		h ^= zobristEnPassant[b.ep.Target.X]
	}
	return h
}

// Hash returns the position hash: placement, castling rights and en passant.
func (b *Board) Hash() uint64 {
	return b.hash
}

// Key returns Hash with the side to move folded in. Search tables key on it.
func (b *Board) Key() uint64 {
	if b.turn == Black {
		return b.hash ^ zobristTurn
	}
	return b.hash
}
