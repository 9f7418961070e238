package board

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMove is returned when a move is applied from an empty square.
	// Callers that reach it have bypassed the move generator.
	ErrInvalidMove = errors.New("invalid move")
	// ErrIllegalMove is returned when well-formed move text matches no legal move.
	ErrIllegalMove = errors.New("illegal move")
)

// ParseError reports malformed FEN, move text or square notation.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}
