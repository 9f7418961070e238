package board

import (
	"strconv"
	"strings"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceFromChar = map[byte]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop, 'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop, 'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

// ParseFEN builds a Position from FEN text. Six fields are expected; a
// four-field string (no clocks) is accepted with clocks "0 1".
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 4 && len(fields) != 6 {
		return nil, &ParseError{Input: fen, Reason: "expected 4 or 6 fields, got " + strconv.Itoa(len(fields))}
	}
	p := emptyPosition()
	var kings [2]int

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, &ParseError{Input: fen, Reason: "piece placement must have 8 ranks"}
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				if file > 8 {
					return nil, &ParseError{Input: fen, Reason: "rank " + strconv.Itoa(rank+1) + " overflows"}
				}
				continue
			}
			pc, ok := pieceFromChar[ch]
			if !ok {
				return nil, &ParseError{Input: fen, Reason: "bad piece letter " + strconv.QuoteRune(rune(ch))}
			}
			if file >= 8 {
				return nil, &ParseError{Input: fen, Reason: "rank " + strconv.Itoa(rank+1) + " overflows"}
			}
			p.squares[SquareAt(file, rank)] = pc
			if pc.Kind() == King {
				kings[pc.Color()]++
			}
			file++
		}
		if file != 8 {
			return nil, &ParseError{Input: fen, Reason: "rank " + strconv.Itoa(rank+1) + " does not cover 8 files"}
		}
	}

	if kings[White] != 1 || kings[Black] != 1 {
		return nil, &ParseError{Input: fen, Reason: "each side needs exactly one king"}
	}

	switch fields[1] {
	case "w":
		p.side = White
	case "b":
		p.side = Black
	default:
		return nil, &ParseError{Input: fen, Reason: "side to move must be w or b"}
	}

	if fields[2] != "-" {
		for j := 0; j < len(fields[2]); j++ {
			var r CastlingRights
			switch fields[2][j] {
			case 'K':
				r = WhiteKingside
			case 'Q':
				r = WhiteQueenside
			case 'k':
				r = BlackKingside
			case 'q':
				r = BlackQueenside
			default:
				return nil, &ParseError{Input: fen, Reason: "bad castling field " + strconv.Quote(fields[2])}
			}
			p.castling |= r
		}
	}

	if fields[3] != "-" {
		// The square behind a pawn the opponent just pushed two steps.
		epRank := 5
		if p.side == Black {
			epRank = 2
		}
		sq, err := ParseSquare(fields[3])
		if err != nil || sq.Rank() != epRank {
			return nil, &ParseError{Input: fen, Reason: "bad en passant square " + strconv.Quote(fields[3])}
		}
		p.epSquare = sq
	}

	if len(fields) == 6 {
		half, err := strconv.Atoi(fields[4])
		if err != nil || half < 0 {
			return nil, &ParseError{Input: fen, Reason: "bad halfmove clock " + strconv.Quote(fields[4])}
		}
		full, err := strconv.Atoi(fields[5])
		if err != nil || full < 0 {
			return nil, &ParseError{Input: fen, Reason: "bad fullmove number " + strconv.Quote(fields[5])}
		}
		p.halfmove, p.fullmove = half, full
	}

	p.hash = p.ComputeHash()
	return p, nil
}

// FEN serializes the position with canonical minimal digit runs.
func (p *Position) FEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pc := p.squares[SquareAt(f, r)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	if p.side == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(p.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(p.epSquare.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmove))
	return sb.String()
}
