package board

// Move encodes a chess move in a 32-bit value.
// Captured pieces are not stored; they are read from the board when the move is applied.
type Move uint32

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	moveFlagShift    = 12 // 3 bits
	movePromoteShift = 15 // 3 bits
)

// MoveFlag marks the special handling a move needs when applied.
type MoveFlag uint8

const (
	Normal MoveFlag = iota
	DoublePawnPush
	EnPassant
	CastleKingside
	CastleQueenside
	Promotion
)

// NoMove is the zero value and never a legal move (a1a1).
const NoMove Move = 0

// NewMove constructs a Move value from components.
func NewMove(from, to Square, flag MoveFlag, promo PieceKind) Move {
	return Move(uint32(from&0x3F)<<moveFromShift |
		uint32(to&0x3F)<<moveToShift |
		uint32(flag&0x7)<<moveFlagShift |
		uint32(promo&0x7)<<movePromoteShift)
}

func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x3F) }
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x3F) }
func (m Move) Flag() MoveFlag { return MoveFlag((uint32(m) >> moveFlagShift) & 0x7) }

// Promotion returns the kind the pawn promotes to, or NoKind.
func (m Move) Promotion() PieceKind { return PieceKind((uint32(m) >> movePromoteShift) & 0x7) }

func (m Move) IsCastle() bool {
	f := m.Flag()
	return f == CastleKingside || f == CastleQueenside
}

// String produces move text: "e2e4", "e7e8q". NoMove prints as "0000".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if p := m.Promotion(); p != NoKind {
		s += string(p.Letter())
	}
	return s
}

var promotionKinds = map[byte]PieceKind{'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight}

// ParseMove reads move text (four coordinate characters plus an optional
// lowercase promotion letter). The returned move carries the promotion kind
// but no special flag; use FindMove to resolve it against a position.
func ParseMove(text string) (Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return NoMove, &ParseError{Input: text, Reason: "move must have 4 or 5 characters"}
	}
	from, err := ParseSquare(text[0:2])
	if err != nil {
		return NoMove, &ParseError{Input: text, Reason: "bad origin square"}
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return NoMove, &ParseError{Input: text, Reason: "bad destination square"}
	}
	promo := NoKind
	flag := Normal
	if len(text) == 5 {
		k, ok := promotionKinds[text[4]]
		if !ok {
			return NoMove, &ParseError{Input: text, Reason: "bad promotion letter"}
		}
		promo = k
		flag = Promotion
	}
	return NewMove(from, to, flag, promo), nil
}
