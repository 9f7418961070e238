package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"chessbot/board"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	MateScore     int32 = 100000
	MateThreshold int32 = 90000
	Infinity      int32 = 1000000
	DrawScore     int32 = 0

	MaxPly = 128

	DefaultDepth  = 10
	DefaultHashMB = 16

	// Check evasions are searched in full this many plies into quiescence.
	quiescenceCheckPlies = 6
)

// Options configure a Searcher.
type Options struct {
	HashMB    int
	Evaluator *Evaluator
	// History holds the hashes of earlier game positions, oldest first,
	// excluding the root. Used for repetition draws.
	History []uint64
	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
	// Info, when set, receives one report per completed depth.
	Info func(Info)
}

// Limits bound one FindBestMove call. A zero MoveTime means no time limit.
type Limits struct {
	Depth    int
	MoveTime time.Duration
	Infinite bool
}

// Result of a search. Move is NoMove only when the root has no legal moves;
// Status then tells checkmate from stalemate.
type Result struct {
	Move   board.Move
	Score  int32
	Depth  int
	Nodes  uint64
	PV     []board.Move
	Status board.Status
}

// Info is the progress report of one completed iteration.
type Info struct {
	Depth    int
	Score    int32
	Nodes    uint64
	Time     time.Duration
	Hashfull int
	PV       []board.Move
}

func (i Info) NPS() uint64 {
	ms := i.Time.Milliseconds()
	if ms <= 0 {
		ms = 1
	}
	return i.Nodes * 1000 / uint64(ms)
}

// String renders the report as a protocol info line.
func (i Info) String() string {
	return fmt.Sprintf("info depth %d score %s nodes %d time %d nps %d hashfull %d pv %s",
		i.Depth, ScoreString(i.Score), i.Nodes, i.Time.Milliseconds(), i.NPS(), i.Hashfull, pvString(i.PV))
}

// PVLine is a principal variation collected during search.
type PVLine struct {
	Moves []board.Move
}

func (pv *PVLine) Clear() { pv.Moves = pv.Moves[:0] }

// Update sets the line to m followed by child.
func (pv *PVLine) Update(m board.Move, child PVLine) {
	pv.Moves = append(append(pv.Moves[:0], m), child.Moves...)
}

func (pv PVLine) Clone() PVLine {
	return PVLine{Moves: append([]board.Move(nil), pv.Moves...)}
}

// Searcher runs iterative-deepening alpha-beta on its own copy of a position.
// It owns its transposition table; searchers never share state. A Searcher
// is not safe for concurrent use.
type Searcher struct {
	pos   *board.Position
	eval  *Evaluator
	tt    *TransTable
	stack stateStack
	stats CutStatistics

	killers KillerStruct
	history historyTable

	log  zerolog.Logger
	info func(Info)

	done      <-chan struct{}
	abortable bool
	aborted   bool
}

// NewSearcher binds a searcher to a copy of p.
func NewSearcher(p *board.Position, opts Options) *Searcher {
	if opts.HashMB <= 0 {
		opts.HashMB = DefaultHashMB
	}
	if opts.Evaluator == nil {
		opts.Evaluator = NewEvaluator(DefaultWeights)
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	pos := p.Copy()
	return &Searcher{
		pos:   pos,
		eval:  opts.Evaluator,
		tt:    NewTransTable(opts.HashMB),
		stack: newStateStack(opts.History, pos.Hash(), pos.HalfmoveClock()),
		log:   logger.With().Str("component", "search").Logger(),
		info:  opts.Info,
	}
}

// Stats returns the counters of the last search.
func (s *Searcher) Stats() CutStatistics { return s.stats }

// TT exposes the searcher's transposition table.
func (s *Searcher) TT() *TransTable { return s.tt }

// FindBestMove deepens from depth 1 until the depth limit, the time limit,
// a forced mate score or cancellation of ctx. Depth 1 always completes; an
// interrupted deeper iteration is discarded.
func (s *Searcher) FindBestMove(ctx context.Context, l Limits) Result {
	s.stats = CutStatistics{}
	s.killers.ClearKillers()
	s.history.clear()
	th := newTimeHandler(l)

	legal := board.Legal(s.pos)
	if len(legal) == 0 {
		res := Result{Status: board.Stalemate, Score: DrawScore}
		if board.IsInCheck(s.pos, s.pos.SideToMove()) {
			res.Status, res.Score = board.Checkmate, -MateScore
		}
		s.log.Debug().Str("status", res.Status.String()).Msg("no legal moves at root")
		return res
	}

	maxDepth := l.Depth
	if l.Infinite {
		maxDepth = MaxPly - 1
	} else if maxDepth <= 0 {
		maxDepth = DefaultDepth
	}
	maxDepth = Min(maxDepth, MaxPly-1)

	if !th.usingCustomDepth {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.MoveTime)
		defer cancel()
	}
	s.done = ctx.Done()

	res := Result{Move: legal[0], Status: board.Ongoing}
	for depth := 1; depth <= maxDepth; depth++ {
		var pv PVLine
		move, score := s.rootSearch(depth, depth > 1, &pv)
		if s.aborted {
			s.log.Debug().Int("depth", depth).Msg("iteration aborted")
			break
		}
		res.Move, res.Score, res.Depth, res.PV = move, score, depth, pv.Clone().Moves

		info := Info{
			Depth:    depth,
			Score:    score,
			Nodes:    s.stats.Nodes,
			Time:     th.Elapsed(),
			Hashfull: s.tt.Hashfull(),
			PV:       res.PV,
		}
		s.log.Debug().Int("depth", depth).Str("score", ScoreString(score)).
			Uint64("nodes", info.Nodes).Str("pv", pvString(info.PV)).Msg("iteration complete")
		if s.info != nil {
			s.info(info)
		}

		if IsMateScore(score) {
			break
		}
		if th.TimeStatus() {
			break
		}
	}
	res.Nodes = s.stats.Nodes
	s.log.Debug().Object("stats", s.stats).Dur("elapsed", th.Elapsed()).Msg("search finished")
	return res
}

// Search runs a single fixed-depth root search. The result is meaningless if
// ctx was cancelled before it finished (unless depth is 1, which always completes).
func (s *Searcher) Search(ctx context.Context, depth int) (board.Move, int) {
	s.done = ctx.Done()
	if len(board.Legal(s.pos)) == 0 {
		if board.IsInCheck(s.pos, s.pos.SideToMove()) {
			return board.NoMove, int(-MateScore)
		}
		return board.NoMove, int(DrawScore)
	}
	var pv PVLine
	m, score := s.rootSearch(Clamp(depth, 1, MaxPly-1), depth > 1, &pv)
	return m, int(score)
}

// rootSearch searches every legal root move with a shared, rising alpha and
// an open beta. Captures come first, then promotions, then the rest.
func (s *Searcher) rootSearch(depth int, abortable bool, pvLine *PVLine) (board.Move, int32) {
	s.abortable, s.aborted = abortable, false
	moves := orderRootMoves(s.pos, board.Legal(s.pos))

	alpha, beta := -Infinity, Infinity
	bestScore := -Infinity
	bestMove := moves[0]
	var childPV PVLine
	for _, m := range moves {
		childPV.Clear()
		score, ok := s.searchMove(m, depth-1, 1, -beta, -alpha, &childPV)
		if !ok || s.aborted {
			break
		}
		if score > bestScore {
			bestScore, bestMove = score, m
			pvLine.Update(m, childPV)
		}
		if score > alpha {
			alpha = score
		}
	}
	if !s.aborted {
		s.tt.Store(s.pos.Hash(), depth, 0, bestMove, bestScore, Exact)
	}
	return bestMove, bestScore
}

// searchMove makes m, searches the child with the negated window and takes
// the move back.
func (s *Searcher) searchMove(m board.Move, depth, ply int, alpha, beta int32, pv *PVLine) (int32, bool) {
	u, err := s.pos.MakeMove(m)
	if err != nil {
		s.log.Error().Err(err).Str("fen", s.pos.FEN()).Msg("generated move failed to apply")
		return 0, false
	}
	s.stack.push(s.pos.Hash(), s.pos.HalfmoveClock())
	score := -s.alphaBeta(depth, ply, alpha, beta, pv)
	s.stack.pop()
	s.pos.UnmakeMove(m, u)
	return score, true
}

// shouldStop polls the cancellation channel. Only abortable iterations stop.
func (s *Searcher) shouldStop() bool {
	if s.aborted {
		return true
	}
	if !s.abortable || s.done == nil {
		return false
	}
	select {
	case <-s.done:
		s.aborted = true
	default:
	}
	return s.aborted
}

// evaluate scores the position from the side to move's view.
func (s *Searcher) evaluate() int32 {
	score := int32(s.eval.Evaluate(s.pos))
	if s.pos.SideToMove() == board.Black {
		return -score
	}
	return score
}

func (s *Searcher) alphaBeta(depth, ply int, alpha, beta int32, pvLine *PVLine) int32 {
	s.stats.Nodes++
	if s.shouldStop() {
		return 0
	}
	if s.stack.isDraw() {
		return DrawScore
	}
	if ply >= MaxPly {
		return s.evaluate()
	}

	alphaOrig := alpha
	key := s.pos.Hash()
	var ttMove board.Move
	if entry, ok := s.tt.Probe(key); ok {
		s.stats.TTHits++
		if score, usable := entry.Usable(depth, ply, alpha, beta); usable {
			s.stats.TTCutoffs++
			return score
		}
		ttMove = entry.Move
	}

	if depth <= 0 {
		score := s.quiescence(ply, alpha, beta, quiescenceCheckPlies)
		if !s.aborted {
			s.tt.Store(key, 0, ply, board.NoMove, score, boundFor(score, alphaOrig, beta))
		}
		return score
	}

	moves := board.Legal(s.pos)
	if len(moves) == 0 {
		if board.IsInCheck(s.pos, s.pos.SideToMove()) {
			return -MateScore + int32(ply)
		}
		return DrawScore
	}

	side := s.pos.SideToMove()
	list := scoreMoves(s.pos, moves, ttMove, s.killers.killersAt(ply), &s.history)
	bestScore := -Infinity
	bestMove := board.NoMove
	var childPV PVLine
	var quietsSearched []board.Move
	for i := range list {
		m := orderNextMove(i, list)
		quiet := isQuiet(s.pos, m)
		childPV.Clear()
		score, ok := s.searchMove(m, depth-1, ply+1, -beta, -alpha, &childPV)
		if !ok {
			continue
		}
		if s.aborted {
			return 0
		}
		if score > bestScore {
			bestScore, bestMove = score, m
		}
		if score > alpha {
			alpha = score
			pvLine.Update(m, childPV)
		}
		if alpha >= beta {
			s.stats.BetaCutoffs++
			if quiet {
				s.killers.InsertKiller(m, ply)
				s.history.increment(side, m, depth)
				for _, q := range quietsSearched {
					s.history.decrement(side, q)
				}
			}
			break
		}
		if quiet {
			quietsSearched = append(quietsSearched, m)
		}
	}

	s.tt.Store(key, depth, ply, bestMove, bestScore, boundFor(bestScore, alphaOrig, beta))
	return bestScore
}

// boundFor classifies score against the window the node was searched with.
func boundFor(score, alpha, beta int32) Bound {
	switch {
	case score <= alpha:
		return UpperBound
	case score >= beta:
		return LowerBound
	}
	return Exact
}

// quiescence resolves captures before trusting the static evaluation. In
// check there is no stand pat: every evasion is searched, and no evasion
// means mate.
func (s *Searcher) quiescence(ply int, alpha, beta int32, checkPlies int) int32 {
	s.stats.Nodes++
	s.stats.QNodes++
	if s.shouldStop() {
		return 0
	}
	if ply >= MaxPly {
		return s.evaluate()
	}

	inCheck := checkPlies > 0 && board.IsInCheck(s.pos, s.pos.SideToMove())
	bestScore := -Infinity
	var moves []board.Move
	if inCheck {
		moves = board.Legal(s.pos)
		if len(moves) == 0 {
			return -MateScore + int32(ply)
		}
	} else {
		standPat := s.evaluate()
		if standPat >= beta {
			s.stats.QStandPatCutoffs++
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
		bestScore = standPat
		moves = board.LegalCaptures(s.pos)
	}

	list := scoreMoves(s.pos, moves, board.NoMove, [2]board.Move{}, nil)
	for i := range list {
		m := orderNextMove(i, list)
		if !inCheck && see(s.pos, m) < 0 {
			s.stats.QSEEPrunes++
			continue
		}
		u, err := s.pos.MakeMove(m)
		if err != nil {
			continue
		}
		score := -s.quiescence(ply+1, -beta, -alpha, checkPlies-1)
		s.pos.UnmakeMove(m, u)
		if s.aborted {
			return 0
		}
		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.stats.QBetaCutoffs++
			break
		}
	}
	return bestScore
}
