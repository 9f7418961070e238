package engine

import (
	"chessbot/board"
)

var SeePieceValue = [7]int{
	board.King:   5000,
	board.Pawn:   100,
	board.Knight: 300,
	board.Bishop: 300,
	board.Rook:   500,
	board.Queen:  900}

// see runs the static exchange on the destination of capture m: both sides
// keep recapturing with their least valuable attacker and may stop when
// continuing would lose material. Sliders behind a capturer join in as the
// squares in front of them empty. The result is the material balance for
// the side making m.
func see(p *board.Position, m board.Move) int {
	var gain [32]int
	depth := 0
	from, to := m.From(), m.To()

	scratch := p.Copy()
	victim := scratch.PieceAt(to).Kind()
	if m.Flag() == board.EnPassant {
		victim = board.Pawn
		scratch.SetPiece(board.SquareAt(to.File(), from.Rank()), board.NoPiece)
	}
	attacker := scratch.PieceAt(from)
	gain[depth] = SeePieceValue[victim]
	scratch.SetPiece(from, board.NoPiece)
	scratch.SetPiece(to, attacker)

	side := attacker.Color().Other()
	for depth < len(gain)-1 {
		sq, ok := leastValuableAttacker(scratch, to, side)
		if !ok {
			break
		}
		depth++
		gain[depth] = SeePieceValue[scratch.PieceAt(to).Kind()] - gain[depth-1]

		// Neither side wants to continue a losing trade.
		if Max(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		scratch.SetPiece(to, scratch.PieceAt(sq))
		scratch.SetPiece(sq, board.NoPiece)
		side = side.Other()
	}

	for x := depth; x > 0; x-- {
		gain[x-1] = -Max(-gain[x-1], gain[x])
	}
	return gain[0]
}

func leastValuableAttacker(p *board.Position, target board.Square, side board.Color) (board.Square, bool) {
	best, bestValue := board.NoSquare, 0
	for sq := board.A1; sq <= board.H8; sq++ {
		pc := p.PieceAt(sq)
		if pc == board.NoPiece || pc.Color() != side {
			continue
		}
		v := SeePieceValue[pc.Kind()]
		if best != board.NoSquare && v >= bestValue {
			continue
		}
		if board.Attacks(sq, target, p) {
			best, bestValue = sq, v
		}
	}
	return best, best != board.NoSquare
}
