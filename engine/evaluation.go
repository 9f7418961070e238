package engine

import (
	"fmt"

	"chessbot/board"
)

// Weights scale the five evaluation terms, in percent.
type Weights struct {
	Material      int `mapstructure:"material"`
	Placement     int `mapstructure:"placement"`
	Mobility      int `mapstructure:"mobility"`
	KingSafety    int `mapstructure:"king_safety"`
	PawnStructure int `mapstructure:"pawn_structure"`
}

// DefaultWeights mirror the classic 1.0 / 1.0 / 0.1 / 0.5 / 0.3 mix.
var DefaultWeights = Weights{
	Material:      100,
	Placement:     100,
	Mobility:      10,
	KingSafety:    50,
	PawnStructure: 30,
}

// Set updates a weight by its option name (e.g. "king_safety").
func (w *Weights) Set(name string, value int) error {
	switch name {
	case "material":
		w.Material = value
	case "placement":
		w.Placement = value
	case "mobility":
		w.Mobility = value
	case "king_safety":
		w.KingSafety = value
	case "pawn_structure":
		w.PawnStructure = value
	default:
		return fmt.Errorf("unknown evaluation weight %q", name)
	}
	return nil
}

// Breakdown holds the unweighted terms and the weighted total, all White-positive.
type Breakdown struct {
	Material      int
	Placement     int
	Mobility      int
	KingSafety    int
	PawnStructure int
	Total         int
}

// Evaluator scores positions. It holds no per-position state and is safe
// for concurrent use.
type Evaluator struct {
	Weights Weights
}

func NewEvaluator(w Weights) *Evaluator {
	return &Evaluator{Weights: w}
}

// Evaluate returns the weighted score of p in centipawns, positive when
// White is better. p is never modified.
func (e *Evaluator) Evaluate(p *board.Position) int {
	return e.Breakdown(p).Total
}

func (e *Evaluator) Breakdown(p *board.Position) Breakdown {
	b := Breakdown{
		Material:      Material(p),
		Placement:     Placement(p),
		Mobility:      Mobility(p),
		KingSafety:    KingSafety(p),
		PawnStructure: PawnStructure(p),
	}
	w := e.Weights
	b.Total = (w.Material*b.Material +
		w.Placement*b.Placement +
		w.Mobility*b.Mobility +
		w.KingSafety*b.KingSafety +
		w.PawnStructure*b.PawnStructure) / 100
	return b
}

func signOf(c board.Color) int {
	if c == board.White {
		return 1
	}
	return -1
}

// Material sums piece values signed by color.
func Material(p *board.Position) int {
	score := 0
	for sq := board.A1; sq <= board.H8; sq++ {
		if pc := p.PieceAt(sq); pc != board.NoPiece {
			score += signOf(pc.Color()) * PieceValue[pc.Kind()]
		}
	}
	return score
}

// Placement sums the piece-square bonuses.
func Placement(p *board.Position) int {
	score := 0
	for sq := board.A1; sq <= board.H8; sq++ {
		if pc := p.PieceAt(sq); pc != board.NoPiece {
			score += signOf(pc.Color()) * placementValue(pc, sq)
		}
	}
	return score
}

// Mobility is White's legal move count minus Black's, each counted as if
// that side were to move.
func Mobility(p *board.Position) int {
	return board.LegalMoveCount(p, board.White) - board.LegalMoveCount(p, board.Black)
}

var centralKingSquares = map[board.Square]bool{
	board.D3: true, board.D4: true, board.D5: true, board.D6: true,
	board.E3: true, board.E4: true, board.E5: true, board.E6: true,
}

// KingSafety is White's king safety minus Black's.
func KingSafety(p *board.Position) int {
	score := 0
	for _, c := range [2]board.Color{board.White, board.Black} {
		if k := p.KingSquare(c); k != board.NoSquare {
			score += signOf(c) * kingSafety(p, k, c)
		}
	}
	return score
}

func kingSafety(p *board.Position, k board.Square, c board.Color) int {
	safety := 0
	if centralKingSquares[k] {
		safety -= 30
	}
	backRank := 0
	if c == board.Black {
		backRank = 7
	}
	if k.Rank() == backRank {
		safety += 20
	}
	if kingExposed(p, k, c) {
		safety -= 50
	}
	return safety
}

// kingExposed reports that no friendly pawn stands on the three squares
// directly ahead of the king. Off-board squares hold no pawn.
func kingExposed(p *board.Position, k board.Square, c board.Color) bool {
	ahead := k.Rank() + forward(c)
	if ahead < 0 || ahead > 7 {
		return true
	}
	pawn := board.MakePiece(c, board.Pawn)
	for df := -1; df <= 1; df++ {
		f := k.File() + df
		if f >= 0 && f <= 7 && p.PieceAt(board.SquareAt(f, ahead)) == pawn {
			return false
		}
	}
	return true
}

func forward(c board.Color) int {
	if c == board.White {
		return 1
	}
	return -1
}

// PawnStructure is White's pawn structure score minus Black's.
func PawnStructure(p *board.Position) int {
	return pawnStructure(p, board.White) - pawnStructure(p, board.Black)
}

func pawnStructure(p *board.Position, c board.Color) int {
	var files [8]int
	var pawns []board.Square
	own := board.MakePiece(c, board.Pawn)
	for sq := board.A1; sq <= board.H8; sq++ {
		if p.PieceAt(sq) == own {
			files[sq.File()]++
			pawns = append(pawns, sq)
		}
	}

	score := 0
	for _, n := range files {
		if n > 1 {
			score -= 15 * (n - 1)
		}
	}
	for _, sq := range pawns {
		f := sq.File()
		if (f == 0 || files[f-1] == 0) && (f == 7 || files[f+1] == 0) {
			score -= 20
		}
		if passedPawn(p, sq, c) {
			score += 20
		}
		if backwardPawn(p, sq, c) {
			score -= 10
		}
	}
	return score
}

// passedPawn reports that no enemy pawn stands ahead of sq on its own or an
// adjacent file.
func passedPawn(p *board.Position, sq board.Square, c board.Color) bool {
	enemy := board.MakePiece(c.Other(), board.Pawn)
	dir := forward(c)
	for r := sq.Rank() + dir; r >= 0 && r <= 7; r += dir {
		for f := Max(sq.File()-1, 0); f <= Min(sq.File()+1, 7); f++ {
			if p.PieceAt(board.SquareAt(f, r)) == enemy {
				return false
			}
		}
	}
	return true
}

// backwardPawn reports a pawn with no friendly pawn diagonally behind it
// whose empty advance square is controlled by an enemy pawn.
func backwardPawn(p *board.Position, sq board.Square, c board.Color) bool {
	dir := forward(c)
	own := board.MakePiece(c, board.Pawn)
	enemy := board.MakePiece(c.Other(), board.Pawn)
	f, r := sq.File(), sq.Rank()

	if behind := r - dir; behind >= 0 && behind <= 7 {
		for _, df := range [2]int{-1, 1} {
			if nf := f + df; nf >= 0 && nf <= 7 && p.PieceAt(board.SquareAt(nf, behind)) == own {
				return false
			}
		}
	}

	advance := r + dir
	if advance < 0 || advance > 7 || p.PieceAt(board.SquareAt(f, advance)) != board.NoPiece {
		return false
	}
	control := advance + dir
	if control < 0 || control > 7 {
		return false
	}
	for _, df := range [2]int{-1, 1} {
		if nf := f + df; nf >= 0 && nf <= 7 && p.PieceAt(board.SquareAt(nf, control)) == enemy {
			return true
		}
	}
	return false
}
