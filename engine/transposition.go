package engine

import (
	"unsafe"

	"chessbot/board"
)

// Bound tells how a stored score relates to the true value.
type Bound uint8

const (
	boundNone  Bound = iota // empty slot
	UpperBound              // failed low: true score <= stored
	LowerBound              // failed high: true score >= stored
	Exact
)

func (b Bound) String() string {
	switch b {
	case UpperBound:
		return "upper"
	case LowerBound:
		return "lower"
	case Exact:
		return "exact"
	}
	return "none"
}

const clusterSize = 4

// TTEntry is one cached search result.
type TTEntry struct {
	Key   uint64
	Move  board.Move
	Score int32
	Depth int8
	Bound Bound
}

// TransTable is a fixed-size hash table of 4-entry clusters. On store an
// entry with the same key is overwritten, else an empty slot is filled,
// else the shallowest entry of the cluster is replaced.
type TransTable struct {
	entries      []TTEntry
	clusterCount uint64
	used         int
}

// NewTransTable sizes the table to roughly mb megabytes (at least one cluster).
func NewTransTable(mb int) *TransTable {
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	totalBytes := uint64(Max(mb, 0)) * 1024 * 1024
	clusterCount := totalBytes / (entrySize * clusterSize)
	if clusterCount == 0 {
		clusterCount = 1
	}
	return &TransTable{
		entries:      make([]TTEntry, clusterCount*clusterSize),
		clusterCount: clusterCount,
	}
}

// Capacity is the number of entries the table can hold.
func (tt *TransTable) Capacity() int { return len(tt.entries) }

// Hashfull returns the fill rate in permille.
func (tt *TransTable) Hashfull() int {
	return tt.used * 1000 / len(tt.entries)
}

func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.used = 0
}

func (tt *TransTable) cluster(key uint64) []TTEntry {
	base := (key % tt.clusterCount) * clusterSize
	return tt.entries[base : base+clusterSize]
}

// Probe returns the entry stored for key, if any.
func (tt *TransTable) Probe(key uint64) (TTEntry, bool) {
	for _, e := range tt.cluster(key) {
		if e.Bound != boundNone && e.Key == key {
			return e, true
		}
	}
	return TTEntry{}, false
}

// Usable returns the entry's score, converted to be relative to ply, when it
// was searched at least to depth and its bound settles the [alpha, beta] window.
func (e TTEntry) Usable(depth, ply int, alpha, beta int32) (int32, bool) {
	if e.Bound == boundNone || int(e.Depth) < depth {
		return 0, false
	}
	score := scoreFromTT(e.Score, ply)
	switch e.Bound {
	case Exact:
		return score, true
	case LowerBound:
		if score >= beta {
			return score, true
		}
	case UpperBound:
		if score <= alpha {
			return score, true
		}
	}
	return 0, false
}

// Store records a search result for key. Mate scores are stored relative to
// the node, not the root.
func (tt *TransTable) Store(key uint64, depth, ply int, move board.Move, score int32, bound Bound) {
	cl := tt.cluster(key)
	target := -1
	for i := range cl {
		if cl[i].Bound != boundNone && cl[i].Key == key {
			target = i
			break
		}
	}
	if target == -1 {
		for i := range cl {
			if cl[i].Bound == boundNone {
				target = i
				tt.used++
				break
			}
		}
	}
	if target == -1 {
		target = 0
		for i := 1; i < len(cl); i++ {
			if cl[i].Depth < cl[target].Depth {
				target = i
			}
		}
	}
	// Keep a known best move when re-storing a node that failed low.
	if move == board.NoMove && cl[target].Key == key {
		move = cl[target].Move
	}
	cl[target] = TTEntry{
		Key:   key,
		Move:  move,
		Score: scoreToTT(score, ply),
		Depth: int8(Clamp(depth, 0, 127)),
		Bound: bound,
	}
}

func scoreToTT(score int32, ply int) int32 {
	switch {
	case score >= MateThreshold:
		return score + int32(ply)
	case score <= -MateThreshold:
		return score - int32(ply)
	}
	return score
}

func scoreFromTT(score int32, ply int) int32 {
	switch {
	case score >= MateThreshold:
		return score - int32(ply)
	case score <= -MateThreshold:
		return score + int32(ply)
	}
	return score
}
