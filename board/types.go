package board

// Square represents a board position (0-63), a1 = 0 and h8 = 63.
type Square int8

const NoSquare Square = -1

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// SquareAt builds a square from file and rank (both 0-7).
func SquareAt(file, rank int) Square { return Square(rank*8 + file) }

func (sq Square) File() int { return int(sq) % 8 }
func (sq Square) Rank() int { return int(sq) / 8 }

// IsLight reports whether the square is a light square (h1 and a8 are light).
func (sq Square) IsLight() bool { return (sq.File()+sq.Rank())%2 == 1 }
func (sq Square) IsDark() bool { return !sq.IsLight() }

// Valid reports whether sq is on the board.
func (sq Square) Valid() bool { return sq >= A1 && sq <= H8 }

func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// ParseSquare converts algebraic coordinates ("e4") to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, &ParseError{Input: s, Reason: "square must have two characters"}
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, &ParseError{Input: s, Reason: "square out of range"}
	}
	return SquareAt(int(file-'a'), int(rank-'1')), nil
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceKind is a colorless piece type used for table lookups.
type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindLetters = [...]byte{NoKind: '?', Pawn: 'p', Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q', King: 'k'}

// Letter returns the lowercase letter of the kind as used in move text.
func (k PieceKind) Letter() byte {
	if k > King {
		return '?'
	}
	return kindLetters[k]
}

// Piece packs a color and a kind.
// Black pieces are encoded as (kind | 8) so that
// - piece & 7 gives the kind in [1..6]
// - piece & 8 != 0 indicates Black
type Piece uint8

const NoPiece Piece = 0

const (
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// MakePiece combines a side and a kind into a Piece.
func MakePiece(c Color, k PieceKind) Piece {
	if k == NoKind {
		return NoPiece
	}
	return Piece(uint8(k) | uint8(c)<<3)
}

func (p Piece) Kind() PieceKind { return PieceKind(p & 7) }

// Color returns the side that owns the piece. NoPiece reports White.
func (p Piece) Color() Color { return Color(p>>3) & 1 }

// Char returns the FEN letter of the piece, uppercase for White.
func (p Piece) Char() byte {
	if p == NoPiece {
		return '.'
	}
	ch := p.Kind().Letter()
	if p.Color() == White {
		ch -= 'a' - 'A'
	}
	return ch
}

func (p Piece) String() string { return string(p.Char()) }

// CastlingRights is a bit set over the four castling options.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Has reports whether every right in r is held.
func (cr CastlingRights) Has(r CastlingRights) bool { return cr&r == r }

func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	out := make([]byte, 0, 4)
	if cr&WhiteKingside != 0 {
		out = append(out, 'K')
	}
	if cr&WhiteQueenside != 0 {
		out = append(out, 'Q')
	}
	if cr&BlackKingside != 0 {
		out = append(out, 'k')
	}
	if cr&BlackQueenside != 0 {
		out = append(out, 'q')
	}
	return string(out)
}

func kingsideRight(c Color) CastlingRights {
	if c == White {
		return WhiteKingside
	}
	return BlackKingside
}

func queensideRight(c Color) CastlingRights {
	if c == White {
		return WhiteQueenside
	}
	return BlackQueenside
}
