package board

import "strings"

// SAN renders m in standard algebraic notation. m must be legal in p.
func SAN(p *Position, m Move) string {
	var sb strings.Builder
	switch m.Flag() {
	case CastleKingside:
		sb.WriteString("O-O")
	case CastleQueenside:
		sb.WriteString("O-O-O")
	default:
		from, to := m.From(), m.To()
		kind := p.squares[from].Kind()
		capture := IsCapture(p, m)
		if kind == Pawn {
			if capture {
				sb.WriteByte(byte('a' + from.File()))
			}
		} else {
			sb.WriteByte(MakePiece(White, kind).Char())
			sb.WriteString(disambiguation(p, m, kind))
		}
		if capture {
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if m.Promotion() != NoKind {
			sb.WriteByte('=')
			sb.WriteByte(MakePiece(White, m.Promotion()).Char())
		}
	}

	after := p.Copy()
	if _, err := after.MakeMove(m); err == nil && IsInCheck(after, after.side) {
		if len(Legal(after)) == 0 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('+')
		}
	}
	return sb.String()
}

// disambiguation returns the file, rank or square needed to tell m apart
// from other legal moves of the same kind to the same square.
func disambiguation(p *Position, m Move, kind PieceKind) string {
	from := m.From()
	ambiguous, sameFile, sameRank := false, false, false
	for _, o := range Legal(p) {
		if o.To() != m.To() || o.From() == from || p.squares[o.From()].Kind() != kind {
			continue
		}
		ambiguous = true
		sameFile = sameFile || o.From().File() == from.File()
		sameRank = sameRank || o.From().Rank() == from.Rank()
	}
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return from.String()[:1]
	case !sameRank:
		return from.String()[1:]
	}
	return from.String()
}

// MatchSAN reports whether text names m in p. Check marks and annotation
// suffixes are ignored, and plain move text is accepted too.
func MatchSAN(p *Position, m Move, text string) bool {
	if text == m.String() {
		return true
	}
	trim := func(s string) string { return strings.TrimRight(s, "+#!?") }
	return trim(text) == trim(SAN(p, m))
}
