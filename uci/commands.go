package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"chessbot/board"
	"chessbot/engine"
)

func (p *Protocol) cmdUCI() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.println("id name " + p.name)
	p.println("id author " + p.author)
	for _, o := range p.optionList() {
		p.println(o.String())
	}
	p.println("uciok")
}

// cmdPosition replaces the position. On any error the current position is
// kept.
func (p *Protocol) cmdPosition(args []string) {
	if len(args) == 0 {
		p.infoString("malformed position command")
		return
	}

	var pos *board.Position
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		i := 0
		for i < len(rest) && strings.ToLower(rest[i]) != "moves" {
			i++
		}
		var err error
		if pos, err = board.ParseFEN(strings.Join(rest[:i], " ")); err != nil {
			p.log.Warn().Err(err).Msg("rejected position")
			p.infoString("%v", err)
			return
		}
		rest = rest[i:]
	default:
		p.infoString("invalid position subcommand %s", args[0])
		return
	}

	var history []uint64
	if len(rest) > 0 {
		if strings.ToLower(rest[0]) != "moves" {
			p.infoString("unexpected token %s", rest[0])
			return
		}
		for _, text := range rest[1:] {
			m, err := board.FindMove(pos, strings.ToLower(text))
			if err != nil {
				p.log.Warn().Err(err).Str("move", text).Msg("rejected position")
				p.infoString("%v", err)
				return
			}
			history = append(history, pos.Hash())
			if err := pos.Apply(m); err != nil {
				p.infoString("%v", err)
				return
			}
		}
	}

	p.mu.Lock()
	p.pos, p.history = pos, history
	p.mu.Unlock()
	p.log.Debug().Str("fen", pos.FEN()).Int("moves", len(history)).Msg("position set")
}

// parseGo reads the go arguments. Clock controls are accepted and ignored.
func (p *Protocol) parseGo(args []string) (engine.Limits, error) {
	l := engine.Limits{Depth: p.depth, MoveTime: p.movetm}
	depthSet, timeSet := false, false
	for i := 0; i < len(args); i++ {
		switch tok := strings.ToLower(args[i]); tok {
		case "infinite":
			l.Infinite = true
		case "depth", "movetime", "wtime", "btime", "winc", "binc", "movestogo", "nodes", "mate":
			if i+1 >= len(args) {
				return l, fmt.Errorf("go %s needs a value", tok)
			}
			i++
			v, err := strconv.Atoi(args[i])
			if err != nil {
				return l, fmt.Errorf("go %s: %w", tok, err)
			}
			switch tok {
			case "depth":
				if v <= 0 {
					return l, fmt.Errorf("go depth must be positive, got %d", v)
				}
				l.Depth, depthSet = v, true
			case "movetime":
				if v <= 0 {
					return l, fmt.Errorf("go movetime must be positive, got %d", v)
				}
				l.MoveTime, timeSet = time.Duration(v)*time.Millisecond, true
			}
		default:
			p.log.Debug().Str("token", tok).Msg("ignored go token")
		}
	}
	if depthSet && !timeSet {
		l.MoveTime = 0
	}
	if l.Infinite {
		l.MoveTime = 0
	}
	return l, nil
}

// runSearch is replaced in tests.
var runSearch = func(ctx context.Context, pos *board.Position, opts engine.Options, l engine.Limits) engine.Result {
	return engine.NewSearcher(pos, opts).FindBestMove(ctx, l)
}

// cmdGo starts a search on a goroutine. Exactly one bestmove line is
// written for every go, even when the search panics.
func (p *Protocol) cmdGo(args []string) {
	p.mu.Lock()
	limits, err := p.parseGo(args)
	if err != nil {
		p.mu.Unlock()
		p.infoString("%v", err)
		p.println("bestmove (none)")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &activeSearch{cancel: cancel, done: make(chan struct{}), infinite: limits.Infinite}
	p.search = s
	log := p.log
	opts := engine.Options{
		HashMB:    p.hashMB,
		Evaluator: engine.NewEvaluator(p.weights),
		History:   append([]uint64(nil), p.history...),
		Logger:    &log,
		Info:      func(i engine.Info) { p.println(i.String()) },
	}
	pos := p.pos.Copy()
	p.mu.Unlock()

	log.Debug().Str("fen", pos.FEN()).Int("depth", limits.Depth).
		Dur("movetime", limits.MoveTime).Bool("infinite", limits.Infinite).Msg("search started")

	go func() {
		best := board.NoMove
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("fen", pos.FEN()).Msg("search failed")
				best = board.NoMove
			}
			p.reportBestMove(best)
			cancel()
			close(s.done)
		}()

		res := runSearch(ctx, pos, opts, limits)
		if limits.Infinite {
			<-ctx.Done()
		}
		best = res.Move
		log.Debug().Str("move", res.Move.String()).Str("score", engine.ScoreString(res.Score)).
			Int("depth", res.Depth).Uint64("nodes", res.Nodes).Msg("search done")
	}()
}

func (p *Protocol) reportBestMove(m board.Move) {
	if m == board.NoMove {
		p.println("bestmove (none)")
		return
	}
	p.println("bestmove " + m.String())
}

func (p *Protocol) cmdDebug(args []string) {
	if len(args) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	switch strings.ToLower(args[0]) {
	case "on":
		p.log = p.log.Level(zerolog.DebugLevel)
	case "off":
		p.log = p.log.Level(p.level)
	}
}

// cmdSetOption handles "name <words...> value <words...>".
func (p *Protocol) cmdSetOption(args []string) {
	if len(args) == 0 || strings.ToLower(args[0]) != "name" {
		p.infoString("malformed setoption command")
		return
	}
	i := 1
	for i < len(args) && strings.ToLower(args[i]) != "value" {
		i++
	}
	name := strings.Join(args[1:i], " ")
	value := ""
	if i+1 < len(args) {
		value = strings.Join(args[i+1:], " ")
	}

	p.mu.Lock()
	err := p.setOption(name, value)
	p.mu.Unlock()
	if err != nil {
		p.log.Warn().Err(err).Str("name", name).Msg("setoption rejected")
		p.infoString("%v", err)
		return
	}
	p.log.Debug().Str("name", name).Str("value", value).Msg("option set")
}

func (p *Protocol) setOption(name, value string) error {
	for _, o := range p.optionList() {
		if !strings.EqualFold(o.Name, name) {
			continue
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("option %s: invalid value %q", o.Name, value)
		}
		if v < o.Min || v > o.Max {
			return fmt.Errorf("option %s: %d out of range %d..%d", o.Name, v, o.Min, o.Max)
		}
		return o.set(p, v)
	}
	return fmt.Errorf("unknown option %q", name)
}

func (p *Protocol) cmdEval() {
	p.mu.Lock()
	pos := p.pos.Copy()
	ev := engine.NewEvaluator(p.weights)
	p.mu.Unlock()

	b := ev.Breakdown(pos)
	w := ev.Weights
	rows := []struct {
		name   string
		value  int
		weight int
	}{
		{"Material", b.Material, w.Material},
		{"Placement", b.Placement, w.Placement},
		{"Mobility", b.Mobility, w.Mobility},
		{"King safety", b.KingSafety, w.KingSafety},
		{"Pawn structure", b.PawnStructure, w.PawnStructure},
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-16s %8s %7s\n", "Term", "White", "Weight")
	for _, r := range rows {
		fmt.Fprintf(&sb, "%-16s %8d %6d%%\n", r.name, r.value, r.weight)
	}
	fmt.Fprintf(&sb, "%-16s %8d", "Total", b.Total)
	p.println(sb.String())
}
