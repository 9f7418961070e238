package engine

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"

	"chessbot/board"
)

type number interface {
	constraints.Integer | constraints.Float
}

// Min returns the smaller of x or y.
func Min[T constraints.Ordered](x, y T) T {
	if x < y {
		return x
	}
	return y
}

// Max returns the larger of x or y.
func Max[T constraints.Ordered](x, y T) T {
	if x > y {
		return x
	}
	return y
}

func Abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp restricts f to the inclusive range [low, high].
func Clamp[T number](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// ScoreString formats a search score for an info line: "cp N" or "mate N",
// where N counts full moves and is negative when the side to move gets mated.
func ScoreString(score int32) string {
	if score >= MateThreshold {
		plies := Max(MateScore-score, 0)
		return fmt.Sprintf("mate %d", (plies+1)/2)
	}
	if score <= -MateThreshold {
		plies := Max(MateScore+score, 0)
		return fmt.Sprintf("mate %d", -(plies+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}

// IsMateScore reports whether score encodes a forced mate for either side.
func IsMateScore(score int32) bool {
	return Abs(score) >= MateThreshold
}

func pvString(pv []board.Move) string {
	parts := make([]string, len(pv))
	for i, m := range pv {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
