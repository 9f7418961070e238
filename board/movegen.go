package board

import "fmt"

// Status classifies a position from the side to move's point of view.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "ongoing"
}

var promotionOrder = [4]PieceKind{Queen, Rook, Bishop, Knight}

// PseudoLegal returns every geometrically valid move for the side to move,
// including ones that leave its own king in check. Castling is fully
// validated here.
func PseudoLegal(p *Position) []Move {
	return appendPseudoLegal(p, make([]Move, 0, 48))
}

func appendPseudoLegal(p *Position, moves []Move) []Move {
	us := p.side
	for i, pc := range p.squares {
		if pc == NoPiece || pc.Color() != us {
			continue
		}
		from := Square(i)
		switch pc.Kind() {
		case Pawn:
			moves = appendPawnMoves(p, from, moves)
		case Knight:
			moves = appendSteps(p, from, knightTargets[from], moves)
		case Bishop:
			moves = appendSlides(p, from, 4, 8, moves)
		case Rook:
			moves = appendSlides(p, from, 0, 4, moves)
		case Queen:
			moves = appendSlides(p, from, 0, 8, moves)
		case King:
			moves = appendSteps(p, from, kingTargets[from], moves)
			moves = appendCastles(p, from, moves)
		}
	}
	return moves
}

func appendPawnMoves(p *Position, from Square, moves []Move) []Move {
	us := p.side
	forward, startRank, lastRank := 1, 1, 7
	if us == Black {
		forward, startRank, lastRank = -1, 6, 0
	}
	f, r := from.File(), from.Rank()
	addPawn := func(to Square, flag MoveFlag) {
		if to.Rank() == lastRank {
			for _, k := range promotionOrder {
				moves = append(moves, NewMove(from, to, Promotion, k))
			}
			return
		}
		moves = append(moves, NewMove(from, to, flag, NoKind))
	}

	if one, ok := offset(f, r, 0, forward); ok && p.squares[one] == NoPiece {
		addPawn(one, Normal)
		if r == startRank {
			if two, ok := offset(f, r, 0, 2*forward); ok && p.squares[two] == NoPiece {
				moves = append(moves, NewMove(from, two, DoublePawnPush, NoKind))
			}
		}
	}
	for _, df := range [2]int{-1, 1} {
		to, ok := offset(f, r, df, forward)
		if !ok {
			continue
		}
		target := p.squares[to]
		switch {
		case target != NoPiece && target.Color() != us:
			addPawn(to, Normal)
		case target == NoPiece && to == p.epSquare:
			moves = append(moves, NewMove(from, to, EnPassant, NoKind))
		}
	}
	return moves
}

func appendSteps(p *Position, from Square, targets []Square, moves []Move) []Move {
	for _, to := range targets {
		if t := p.squares[to]; t == NoPiece || t.Color() != p.side {
			moves = append(moves, NewMove(from, to, Normal, NoKind))
		}
	}
	return moves
}

func appendSlides(p *Position, from Square, firstDir, lastDir int, moves []Move) []Move {
	for d := firstDir; d < lastDir; d++ {
		for _, to := range rays[from][d] {
			t := p.squares[to]
			if t == NoPiece {
				moves = append(moves, NewMove(from, to, Normal, NoKind))
				continue
			}
			if t.Color() != p.side {
				moves = append(moves, NewMove(from, to, Normal, NoKind))
			}
			break
		}
	}
	return moves
}

// appendCastles emits castling moves when the right is held, king and rook
// stand on their home squares, the squares between them are empty and the
// king is not in check, does not pass through check and does not land in check.
func appendCastles(p *Position, from Square, moves []Move) []Move {
	us := p.side
	home := E1
	if us == Black {
		home = E8
	}
	if from != home || p.castling&(kingsideRight(us)|queensideRight(us)) == 0 {
		return moves
	}
	them := us.Other()
	if IsSquareAttacked(p, home, them) {
		return moves
	}
	r := home.Rank()
	rook := MakePiece(us, Rook)
	if p.castling.Has(kingsideRight(us)) && p.squares[SquareAt(7, r)] == rook {
		f1, g1 := SquareAt(5, r), SquareAt(6, r)
		if p.squares[f1] == NoPiece && p.squares[g1] == NoPiece &&
			!IsSquareAttacked(p, f1, them) && !IsSquareAttacked(p, g1, them) {
			moves = append(moves, NewMove(home, g1, CastleKingside, NoKind))
		}
	}
	if p.castling.Has(queensideRight(us)) && p.squares[SquareAt(0, r)] == rook {
		d1, c1, b1 := SquareAt(3, r), SquareAt(2, r), SquareAt(1, r)
		if p.squares[d1] == NoPiece && p.squares[c1] == NoPiece && p.squares[b1] == NoPiece &&
			!IsSquareAttacked(p, d1, them) && !IsSquareAttacked(p, c1, them) {
			moves = append(moves, NewMove(home, c1, CastleQueenside, NoKind))
		}
	}
	return moves
}

// Legal returns the pseudo-legal moves that do not leave the mover's king in
// check. p is not modified; candidates are tried on a scratch copy.
func Legal(p *Position) []Move {
	scratch := p.Copy()
	pseudo := PseudoLegal(scratch)
	legal := pseudo[:0]
	us := scratch.side
	for _, m := range pseudo {
		u, err := scratch.MakeMove(m)
		if err != nil {
			continue
		}
		if !IsInCheck(scratch, us) {
			legal = append(legal, m)
		}
		scratch.UnmakeMove(m, u)
	}
	return legal
}

// LegalFor returns the legal moves c would have if it were to move in p.
// The en passant target only counts when c is already the side to move.
func LegalFor(p *Position, c Color) []Move {
	return Legal(p.withSide(c))
}

// LegalMoveCount is len(LegalFor(p, c)).
func LegalMoveCount(p *Position, c Color) int {
	return len(LegalFor(p, c))
}

// IsCapture reports whether m takes a piece in p.
func IsCapture(p *Position, m Move) bool {
	return m.Flag() == EnPassant || p.squares[m.To()] != NoPiece
}

// LegalCaptures returns the legal moves that capture, en passant included.
func LegalCaptures(p *Position) []Move {
	all := Legal(p)
	caps := all[:0]
	for _, m := range all {
		if IsCapture(p, m) {
			caps = append(caps, m)
		}
	}
	return caps
}

// Classify reports whether the side to move is mated, stalemated or has moves.
func Classify(p *Position) Status {
	if len(Legal(p)) > 0 {
		return Ongoing
	}
	if IsInCheck(p, p.side) {
		return Checkmate
	}
	return Stalemate
}

// FindMove resolves move text against the legal moves of p, filling in the
// special flag. Malformed text yields a *ParseError; a well-formed move that
// is not legal yields an error wrapping ErrIllegalMove.
func FindMove(p *Position, text string) (Move, error) {
	parsed, err := ParseMove(text)
	if err != nil {
		return NoMove, err
	}
	for _, m := range Legal(p) {
		if m.From() == parsed.From() && m.To() == parsed.To() && m.Promotion() == parsed.Promotion() {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s in %s", ErrIllegalMove, text, p.FEN())
}
