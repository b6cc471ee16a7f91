package board

// DefaultSeed seeds DefaultKeys.
const DefaultSeed uint64 = 0x98F107A2BEEF1234

// Keys is an immutable table of zobrist keys. Hash values are only
// comparable when produced from the same Keys.
type Keys struct {
	pieces    [12][64]uint64
	enPassant [16]uint64 // files a-h on rank 3, then rank 6
	castling  [16]uint64 // indexed by CastlingRights.Index
	side      uint64     // XOR when black to move
}

// DefaultKeys is the process-wide table used when no WithKeys option is given.
var DefaultKeys = NewKeys(DefaultSeed)

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// NewKeys builds a key table from seed. The same seed always yields the
// same table.
func NewKeys(seed uint64) *Keys {
	rng := newPRNG(seed)
	k := &Keys{}

	for i := range k.pieces {
		for sq := range k.pieces[i] {
			k.pieces[i][sq] = rng.next()
		}
	}
	for i := range k.enPassant {
		k.enPassant[i] = rng.next()
	}
	for i := range k.castling {
		k.castling[i] = rng.next()
	}
	k.side = rng.next()

	return k
}

// PieceKey returns the key for piece standing on sq. Empty and OffBoard
// contribute nothing.
func (k *Keys) PieceKey(p Piece, sq Square) uint64 {
	if !p.IsPiece() || !sq.IsValid() {
		return 0
	}
	return k.pieces[p.index()][sq.Index()]
}

// EnPassantKey returns the key for an en passant target square.
// It panics for squares that can never be en passant targets.
func (k *Keys) EnPassantKey(sq Square) uint64 {
	if sq.IsValid() {
		switch sq.Row() {
		case 2:
			return k.enPassant[sq.Col()]
		case 5:
			return k.enPassant[8+sq.Col()]
		}
	}
	panic("board: en passant square " + sq.String() + " is not on rank 3 or 6")
}

// CastlingKey returns the key for a castling rights combination.
func (k *Keys) CastlingKey(cr CastlingRights) uint64 {
	return k.castling[cr.Index()]
}

// SideKey returns the key toggled when black is to move.
func (k *Keys) SideKey() uint64 {
	return k.side
}
