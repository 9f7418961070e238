package engine

import "chessbot/board"

/*
	HISTORY HEURISTIC
	When a quiet move causes a beta cutoff its history score grows with the
	square of the remaining depth; quiet moves searched before it without a
	cutoff are damped. Scores stay below the killer and capture offsets.
*/

const historyMaxVal = 2000

type historyTable [2][64][64]int

func (h *historyTable) score(c board.Color, m board.Move) int {
	return h[c][m.From()][m.To()]
}

// increment rewards a quiet move that caused a beta cutoff.
func (h *historyTable) increment(c board.Color, m board.Move, depth int) {
	h[c][m.From()][m.To()] += depth * depth
	if h[c][m.From()][m.To()] >= historyMaxVal {
		h.age(c)
	}
}

// decrement damps a quiet move that was searched without a cutoff.
func (h *historyTable) decrement(c board.Color, m board.Move) {
	if h[c][m.From()][m.To()] > 0 {
		h[c][m.From()][m.To()] /= 4
	}
}

// Age the values of one side by dividing them.
func (h *historyTable) age(c board.Color) {
	for sq1 := 0; sq1 < 64; sq1++ {
		for sq2 := 0; sq2 < 64; sq2++ {
			h[c][sq1][sq2] /= 8
		}
	}
}

func (h *historyTable) clear() {
	*h = historyTable{}
}
