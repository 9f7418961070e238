package board

import "math/rand"

// Zobrist keys for pieces, castling, en passant and side to move.
var (
	zobristPiece     [16][64]uint64 // indexed by Piece code
	zobristCastle    [16]uint64     // one key per castling rights state
	zobristEnPassant [8]uint64      // en passant file
	zobristSide      uint64         // Black to move
)

func init() {
	// Fixed seed so hashes are stable across runs.
	rnd := rand.New(rand.NewSource(0xC0DE))
	for p := range zobristPiece {
		for sq := range zobristPiece[p] {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	for cr := range zobristCastle {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// ComputeHash calculates the Zobrist key of the position from scratch.
// MakeMove and SetPiece keep Hash() equal to this value incrementally.
func (p *Position) ComputeHash() uint64 {
	var key uint64
	for sq, pc := range p.squares {
		if pc != NoPiece {
			key ^= zobristPiece[pc][sq]
		}
	}
	if p.side == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[p.castling]
	if p.epSquare != NoSquare {
		key ^= zobristEnPassant[p.epSquare.File()]
	}
	return key
}
