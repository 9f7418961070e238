package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"chessbot/board"
	"chessbot/config"
	"chessbot/engine"
)

// Protocol interprets engine commands read line by line and writes replies
// to out. It owns one position and runs at most one search at a time.
type Protocol struct {
	outMu sync.Mutex
	out   *bufio.Writer

	// mu guards everything below. Searches read a snapshot taken at go time.
	mu      sync.Mutex
	log     zerolog.Logger
	level   zerolog.Level
	pos     *board.Position
	history []uint64
	name    string
	author  string
	weights engine.Weights
	hashMB  int
	threads int
	skill   int
	depth   int
	movetm  time.Duration

	search *activeSearch
}

type activeSearch struct {
	cancel   context.CancelFunc
	done     chan struct{}
	infinite bool
}

// New returns a Protocol set up from cfg, positioned at the start position.
func New(cfg *config.Config, out io.Writer, log zerolog.Logger) *Protocol {
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	return &Protocol{
		out:     bufio.NewWriter(out),
		log:     log.With().Str("component", "uci").Logger(),
		level:   log.GetLevel(),
		pos:     board.NewPosition(),
		name:    cfg.Engine.Name,
		author:  cfg.Engine.Author,
		weights: cfg.Eval,
		hashMB:  cfg.Search.HashMB,
		threads: cfg.Search.Threads,
		skill:   cfg.Search.SkillLevel,
		depth:   cfg.Search.Depth,
		movetm:  cfg.Search.MoveTime(),
	}
}

// Run reads commands until quit, end of input or cancellation of ctx. A
// running search is waited for before Run returns; an infinite one is
// stopped first. Cancelling ctx also stops a running search.
func (p *Protocol) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	quit := make(chan struct{})
	defer close(quit)
	defer context.AfterFunc(ctx, p.stop)()
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := scanner.Text()
			// stop takes effect while the loop is still waiting on a search.
			if isStop(line) {
				p.stop()
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			case <-quit:
				return
			}
		}
		errc <- scanner.Err()
		close(lines)
	}()

	defer p.shutdown()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-errc
			}
			if !p.Handle(line) {
				return nil
			}
		}
	}
}

// Handle processes one command line. It reports false once the session
// should end.
func (p *Protocol) Handle(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return true
	}
	p.log.Debug().Str("cmd", line).Msg("received")

	switch strings.ToLower(tokens[0]) {
	case "uci":
		p.cmdUCI()
	case "isready":
		p.println("readyok")
	case "ucinewgame":
		p.settle()
		p.mu.Lock()
		p.pos = board.NewPosition()
		p.history = nil
		p.mu.Unlock()
	case "position":
		p.settle()
		p.cmdPosition(tokens[1:])
	case "go":
		p.settle()
		p.cmdGo(tokens[1:])
	case "stop":
		p.stop()
	case "quit":
		return false
	case "debug":
		p.cmdDebug(tokens[1:])
	case "setoption":
		p.settle()
		p.cmdSetOption(tokens[1:])
	case "d":
		p.settle()
		p.mu.Lock()
		text := p.pos.String()
		key := p.pos.Hash()
		p.mu.Unlock()
		p.println(text)
		p.printf("Key: %016X\n", key)
	case "eval":
		p.settle()
		p.cmdEval()
	default:
		p.log.Warn().Str("cmd", line).Msg("unknown command")
	}
	return true
}

// settle stops an infinite search and waits for any search to report.
// Commands that read or change the position settle first.
func (p *Protocol) settle() {
	p.mu.Lock()
	s := p.search
	p.mu.Unlock()
	if s != nil && s.infinite {
		s.cancel()
	}
	p.wait()
}

func (p *Protocol) shutdown() { p.settle() }

func isStop(line string) bool {
	tokens := strings.Fields(line)
	return len(tokens) > 0 && strings.EqualFold(tokens[0], "stop")
}

// stop cancels the running search, if any. The search still reports its
// best move.
func (p *Protocol) stop() {
	p.mu.Lock()
	s := p.search
	p.mu.Unlock()
	if s != nil {
		s.cancel()
	}
}

// wait blocks until the running search, if any, has written its bestmove.
func (p *Protocol) wait() {
	p.mu.Lock()
	s := p.search
	p.mu.Unlock()
	if s != nil {
		<-s.done
	}
}

func (p *Protocol) println(s string) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	p.out.WriteString(s)
	p.out.WriteByte('\n')
	p.out.Flush()
}

func (p *Protocol) printf(format string, args ...any) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	fmt.Fprintf(p.out, format, args...)
	p.out.Flush()
}

// infoString reports a problem to the controlling program.
func (p *Protocol) infoString(format string, args ...any) {
	p.println("info string " + fmt.Sprintf(format, args...))
}
