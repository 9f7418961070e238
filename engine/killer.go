package engine

import "chessbot/board"

// KillerStruct keeps two quiet moves per ply that recently caused a beta
// cutoff.
type KillerStruct struct {
	KillerMoves [MaxPly + 1][2]board.Move
}

func (k *KillerStruct) InsertKiller(move board.Move, ply int) {
	if ply > MaxPly {
		return
	}
	if move != k.KillerMoves[ply][0] {
		k.KillerMoves[ply][1] = k.KillerMoves[ply][0]
		k.KillerMoves[ply][0] = move
	}
}

// Clear the killer moves table.
func (k *KillerStruct) ClearKillers() {
	for ply := range k.KillerMoves {
		k.KillerMoves[ply][0] = board.NoMove
		k.KillerMoves[ply][1] = board.NoMove
	}
}

func (k *KillerStruct) killersAt(ply int) [2]board.Move {
	if ply > MaxPly {
		return [2]board.Move{}
	}
	return k.KillerMoves[ply]
}
