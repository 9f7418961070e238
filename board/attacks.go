package board

// Ray directions as (file, rank) steps. The first four are orthogonal.
var directions = [8][2]int{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

var knightSteps = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

// Precomputed step targets and rays per square.
var (
	knightTargets [64][]Square
	kingTargets   [64][]Square
	rays          [64][8][]Square
)

func init() {
	for sq := A1; sq <= H8; sq++ {
		f, r := sq.File(), sq.Rank()
		for _, s := range knightSteps {
			if t, ok := offset(f, r, s[0], s[1]); ok {
				knightTargets[sq] = append(knightTargets[sq], t)
			}
		}
		for d, s := range directions {
			if t, ok := offset(f, r, s[0], s[1]); ok {
				kingTargets[sq] = append(kingTargets[sq], t)
			}
			for i := 1; ; i++ {
				t, ok := offset(f, r, s[0]*i, s[1]*i)
				if !ok {
					break
				}
				rays[sq][d] = append(rays[sq][d], t)
			}
		}
	}
}

func offset(f, r, df, dr int) (Square, bool) {
	f, r = f+df, r+dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare, false
	}
	return SquareAt(f, r), true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Attacks reports whether the piece on attacker reaches target under the
// same step and ray rules used for move generation. En passant is not an
// attack. An empty attacker square attacks nothing.
func Attacks(attacker, target Square, p *Position) bool {
	pc := p.squares[attacker]
	if pc == NoPiece || attacker == target {
		return false
	}
	df := target.File() - attacker.File()
	dr := target.Rank() - attacker.Rank()
	switch pc.Kind() {
	case Pawn:
		forward := 1
		if pc.Color() == Black {
			forward = -1
		}
		return dr == forward && abs(df) == 1
	case Knight:
		return (abs(df) == 1 && abs(dr) == 2) || (abs(df) == 2 && abs(dr) == 1)
	case King:
		return abs(df) <= 1 && abs(dr) <= 1
	case Bishop:
		return abs(df) == abs(dr) && clearBetween(attacker, target, df, dr, p)
	case Rook:
		return (df == 0 || dr == 0) && clearBetween(attacker, target, df, dr, p)
	case Queen:
		return (df == 0 || dr == 0 || abs(df) == abs(dr)) && clearBetween(attacker, target, df, dr, p)
	}
	return false
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// clearBetween reports whether every square strictly between from and the
// square at (df, dr) from it is empty. The offsets must be aligned.
func clearBetween(from, to Square, df, dr int, p *Position) bool {
	sf, sr := sign(df), sign(dr)
	f, r := from.File()+sf, from.Rank()+sr
	for SquareAt(f, r) != to {
		if p.squares[SquareAt(f, r)] != NoPiece {
			return false
		}
		f, r = f+sf, r+sr
	}
	return true
}

// IsSquareAttacked reports whether any piece of color by attacks sq.
func IsSquareAttacked(p *Position, sq Square, by Color) bool {
	for _, t := range knightTargets[sq] {
		if p.squares[t] == MakePiece(by, Knight) {
			return true
		}
	}
	for _, t := range kingTargets[sq] {
		if p.squares[t] == MakePiece(by, King) {
			return true
		}
	}
	// A pawn of color by attacks sq from one rank behind it (from by's view).
	pawnRank := sq.Rank() - 1
	if by == Black {
		pawnRank = sq.Rank() + 1
	}
	if pawnRank >= 0 && pawnRank <= 7 {
		pawn := MakePiece(by, Pawn)
		for _, df := range [2]int{-1, 1} {
			f := sq.File() + df
			if f >= 0 && f <= 7 && p.squares[SquareAt(f, pawnRank)] == pawn {
				return true
			}
		}
	}
	queen := MakePiece(by, Queen)
	for d := range directions {
		slider := MakePiece(by, Rook)
		if d >= 4 {
			slider = MakePiece(by, Bishop)
		}
		for _, t := range rays[sq][d] {
			pc := p.squares[t]
			if pc == NoPiece {
				continue
			}
			if pc == slider || pc == queen {
				return true
			}
			break
		}
	}
	return false
}

// IsInCheck reports whether c's king is attacked. A side without a king is
// treated as in check.
func IsInCheck(p *Position, c Color) bool {
	k := p.KingSquare(c)
	if k == NoSquare {
		return true
	}
	return IsSquareAttacked(p, k, c.Other())
}
