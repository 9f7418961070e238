package board

import "fmt"

// Position is a full game state: a 64-slot mailbox plus the metadata
// needed for legality and draw rules.
type Position struct {
	squares  [64]Piece
	side     Color
	castling CastlingRights
	epSquare Square
	halfmove int
	fullmove int
	hash     uint64
}

// Undo holds the minimal state needed to take back a move made with MakeMove.
type Undo struct {
	captured   Piece
	capturedSq Square
	castling   CastlingRights
	epSquare   Square
	halfmove   int
	fullmove   int
	hash       uint64
}

// Captured returns the piece removed by the move, or NoPiece.
func (u Undo) Captured() Piece { return u.captured }

// castleMask[sq] is ANDed into the castling rights whenever a move leaves
// from or lands on sq.
var castleMask [64]CastlingRights

func init() {
	for i := range castleMask {
		castleMask[i] = AllCastling
	}
	castleMask[E1] &^= WhiteKingside | WhiteQueenside
	castleMask[H1] &^= WhiteKingside
	castleMask[A1] &^= WhiteQueenside
	castleMask[E8] &^= BlackKingside | BlackQueenside
	castleMask[H8] &^= BlackKingside
	castleMask[A8] &^= BlackQueenside
}

// NewPosition returns the standard initial position.
func NewPosition() *Position {
	p, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return p
}

func emptyPosition() *Position {
	return &Position{epSquare: NoSquare, fullmove: 1}
}

func (p *Position) PieceAt(sq Square) Piece { return p.squares[sq] }

// SetPiece places pc on sq (NoPiece clears it), keeping the hash in sync.
func (p *Position) SetPiece(sq Square, pc Piece) {
	if old := p.squares[sq]; old != NoPiece {
		p.hash ^= zobristPiece[old][sq]
	}
	p.squares[sq] = pc
	if pc != NoPiece {
		p.hash ^= zobristPiece[pc][sq]
	}
}

func (p *Position) SideToMove() Color { return p.side }
func (p *Position) Castling() CastlingRights { return p.castling }
func (p *Position) EnPassant() Square { return p.epSquare }
func (p *Position) HalfmoveClock() int { return p.halfmove }
func (p *Position) FullmoveNumber() int { return p.fullmove }
func (p *Position) Hash() uint64 { return p.hash }
func (p *Position) Empty(sq Square) bool { return p.squares[sq] == NoPiece }

// Copy returns an independent deep copy.
func (p *Position) Copy() *Position {
	cp := *p
	return &cp
}

// KingSquare returns the square of c's king or NoSquare if it has none.
func (p *Position) KingSquare(c Color) Square {
	king := MakePiece(c, King)
	for sq, pc := range p.squares {
		if pc == king {
			return Square(sq)
		}
	}
	return NoSquare
}

// withSide returns a copy with side to move set to c. When c is not the
// side to move the en passant target is dropped since it belongs to c only
// on its own turn.
func (p *Position) withSide(c Color) *Position {
	cp := p.Copy()
	if cp.side == c {
		return cp
	}
	if cp.epSquare != NoSquare {
		cp.hash ^= zobristEnPassant[cp.epSquare.File()]
		cp.epSquare = NoSquare
	}
	cp.side = c
	cp.hash ^= zobristSide
	return cp
}

// Apply plays m in place. Moves without a special flag (e.g. from ParseMove)
// are completed from board geometry first. Legality is not re-checked.
func (p *Position) Apply(m Move) error {
	_, err := p.MakeMove(p.complete(m))
	return err
}

// complete fills in the special flag of a bare from/to move.
func (p *Position) complete(m Move) Move {
	if m.Flag() != Normal {
		return m
	}
	from, to := m.From(), m.To()
	pc := p.squares[from]
	switch pc.Kind() {
	case King:
		if from.Rank() == to.Rank() {
			switch to.File() - from.File() {
			case 2:
				return NewMove(from, to, CastleKingside, NoKind)
			case -2:
				return NewMove(from, to, CastleQueenside, NoKind)
			}
		}
	case Pawn:
		dr := to.Rank() - from.Rank()
		if dr == 2 || dr == -2 {
			return NewMove(from, to, DoublePawnPush, NoKind)
		}
		if to == p.epSquare && from.File() != to.File() && p.squares[to] == NoPiece {
			return NewMove(from, to, EnPassant, NoKind)
		}
	}
	return m
}

// MakeMove applies m and returns the delta needed by UnmakeMove.
// It fails with ErrInvalidMove if the origin square is empty.
func (p *Position) MakeMove(m Move) (Undo, error) {
	from, to := m.From(), m.To()
	moving := p.squares[from]
	if moving == NoPiece {
		return Undo{}, fmt.Errorf("%w: no piece on %s (%s)", ErrInvalidMove, from, m)
	}
	u := Undo{
		capturedSq: NoSquare,
		castling:   p.castling,
		epSquare:   p.epSquare,
		halfmove:   p.halfmove,
		fullmove:   p.fullmove,
		hash:       p.hash,
	}

	if p.epSquare != NoSquare {
		p.hash ^= zobristEnPassant[p.epSquare.File()]
		p.epSquare = NoSquare
	}
	p.hash ^= zobristCastle[p.castling]

	flag := m.Flag()
	capSq := to
	if flag == EnPassant {
		capSq = SquareAt(to.File(), from.Rank())
	}
	if captured := p.squares[capSq]; captured != NoPiece {
		u.captured, u.capturedSq = captured, capSq
		p.SetPiece(capSq, NoPiece)
	}

	placed := moving
	if m.Promotion() != NoKind {
		placed = MakePiece(moving.Color(), m.Promotion())
	}
	p.SetPiece(from, NoPiece)
	p.SetPiece(to, placed)

	switch flag {
	case CastleKingside:
		r := from.Rank()
		p.SetPiece(SquareAt(5, r), p.squares[SquareAt(7, r)])
		p.SetPiece(SquareAt(7, r), NoPiece)
	case CastleQueenside:
		r := from.Rank()
		p.SetPiece(SquareAt(3, r), p.squares[SquareAt(0, r)])
		p.SetPiece(SquareAt(0, r), NoPiece)
	case DoublePawnPush:
		p.epSquare = SquareAt(from.File(), (from.Rank()+to.Rank())/2)
		p.hash ^= zobristEnPassant[p.epSquare.File()]
	}

	p.castling &= castleMask[from] & castleMask[to]
	p.hash ^= zobristCastle[p.castling]

	if moving.Kind() == Pawn || u.captured != NoPiece {
		p.halfmove = 0
	} else {
		p.halfmove++
	}
	if p.side == Black {
		p.fullmove++
	}
	p.side = p.side.Other()
	p.hash ^= zobristSide
	return u, nil
}

// UnmakeMove takes back m, which must be the last move made with MakeMove.
func (p *Position) UnmakeMove(m Move, u Undo) {
	p.side = p.side.Other()
	from, to := m.From(), m.To()

	moved := p.squares[to]
	if m.Promotion() != NoKind {
		moved = MakePiece(p.side, Pawn)
	}
	p.squares[to] = NoPiece
	p.squares[from] = moved
	if u.captured != NoPiece {
		p.squares[u.capturedSq] = u.captured
	}

	switch m.Flag() {
	case CastleKingside:
		r := from.Rank()
		p.squares[SquareAt(7, r)] = p.squares[SquareAt(5, r)]
		p.squares[SquareAt(5, r)] = NoPiece
	case CastleQueenside:
		r := from.Rank()
		p.squares[SquareAt(0, r)] = p.squares[SquareAt(3, r)]
		p.squares[SquareAt(3, r)] = NoPiece
	}

	p.castling = u.castling
	p.epSquare = u.epSquare
	p.halfmove = u.halfmove
	p.fullmove = u.fullmove
	p.hash = u.hash
}

// String renders the board rank 8 first, followed by the FEN.
func (p *Position) String() string {
	out := make([]byte, 0, 200)
	for r := 7; r >= 0; r-- {
		out = append(out, byte('1'+r), ' ')
		for f := 0; f < 8; f++ {
			out = append(out, p.squares[SquareAt(f, r)].Char(), ' ')
		}
		out = append(out, '\n')
	}
	out = append(out, "  a b c d e f g h\n"...)
	return string(out) + p.FEN()
}
