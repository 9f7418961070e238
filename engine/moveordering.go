package engine

import (
	"sort"

	"chessbot/board"
)

type scoredMove struct {
	move  board.Move
	score int
}

// Most Valuable Victim - Least Valuable Aggressor; used to score captures.
var mvvLva = [7][7]int{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 15, 14, 13, 12, 11, 10}, // victim Pawn
	{0, 25, 24, 23, 22, 21, 20}, // victim Knight
	{0, 35, 34, 33, 32, 31, 30}, // victim Bishop
	{0, 45, 44, 43, 42, 41, 40}, // victim Rook
	{0, 55, 54, 53, 52, 51, 50}, // victim Queen
	{0, 0, 0, 0, 0, 0, 0},       // victim King
}

// Ordering offsets: TT move, captures, promotions, killers, then quiet
// moves by history score.
const (
	ttMoveOffset    = 30000
	captureOffset   = 20000
	promotionOffset = 10000
	killer1Offset   = 9000
	killer2Offset   = 8000
)

// orderRootMoves returns captures first, then promotions, then the rest,
// keeping generation order inside each group.
func orderRootMoves(p *board.Position, moves []board.Move) []board.Move {
	group := func(m board.Move) int {
		switch {
		case board.IsCapture(p, m):
			return 0
		case m.Promotion() != board.NoKind:
			return 1
		}
		return 2
	}
	out := append([]board.Move(nil), moves...)
	sort.SliceStable(out, func(i, j int) bool { return group(out[i]) < group(out[j]) })
	return out
}

func captureScore(p *board.Position, m board.Move) int {
	victim := board.Pawn
	if m.Flag() != board.EnPassant {
		victim = p.PieceAt(m.To()).Kind()
	}
	return mvvLva[victim][p.PieceAt(m.From()).Kind()]
}

// scoreMoves rates moves for inner nodes; ttMove goes first when present.
// history may be nil, as in quiescence.
func scoreMoves(p *board.Position, moves []board.Move, ttMove board.Move, killers [2]board.Move, history *historyTable) []scoredMove {
	list := make([]scoredMove, len(moves))
	for i, m := range moves {
		s := 0
		switch {
		case m == ttMove:
			s = ttMoveOffset
		case board.IsCapture(p, m):
			s = captureOffset + captureScore(p, m)
		case m.Promotion() != board.NoKind:
			s = promotionOffset + PieceValue[m.Promotion()]/100
		case m == killers[0]:
			s = killer1Offset
		case m == killers[1]:
			s = killer2Offset
		case history != nil:
			s = history.score(p.SideToMove(), m)
		}
		list[i] = scoredMove{move: m, score: s}
	}
	return list
}

func isQuiet(p *board.Position, m board.Move) bool {
	return !board.IsCapture(p, m) && m.Promotion() == board.NoKind
}

// orderNextMove swaps the best remaining move into index i.
func orderNextMove(i int, list []scoredMove) board.Move {
	best := i
	for j := i + 1; j < len(list); j++ {
		if list[j].score > list[best].score {
			best = j
		}
	}
	list[i], list[best] = list[best], list[i]
	return list[i].move
}
