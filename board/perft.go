package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
// p is left unchanged.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(p.Copy(), depth, &pc)
}

// perftCtx keeps one move buffer per depth so the recursion does not allocate.
type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	buf := pc.bufs[depth]
	if buf == nil {
		buf = make([]Move, 0, 256)
		pc.bufs[depth] = buf
	}
	return buf[:0]
}

func perftRec(p *Position, depth int, pc *perftCtx) uint64 {
	moves := appendPseudoLegal(p, pc.bufFor(depth))
	pc.bufs[depth] = moves
	us := p.side
	var nodes uint64
	for _, m := range moves {
		u, err := p.MakeMove(m)
		if err != nil {
			continue
		}
		if !IsInCheck(p, us) {
			if depth == 1 {
				nodes++
			} else {
				nodes += perftRec(p, depth-1, pc)
			}
		}
		p.UnmakeMove(m, u)
	}
	return nodes
}

// PerftDivide returns the perft count below each legal root move.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	scratch := p.Copy()
	for _, m := range Legal(scratch) {
		u, err := scratch.MakeMove(m)
		if err != nil {
			continue
		}
		result[m] = Perft(scratch, depth-1)
		scratch.UnmakeMove(m, u)
	}
	return result
}
