package engine

const fiftyMoveLimit = 100

// State captures what is needed to detect repetitions and fifty-move draws.
type State struct {
	Hash   uint64
	Rule50 int
}

// stateStack holds the game history followed by the current search path.
type stateStack struct {
	states    []State
	rootIndex int
}

// newStateStack seeds the stack with earlier game positions (oldest first)
// and the root position.
func newStateStack(history []uint64, rootHash uint64, rootRule50 int) stateStack {
	st := stateStack{states: make([]State, 0, len(history)+MaxPly+1)}
	for _, h := range history {
		st.states = append(st.states, State{Hash: h})
	}
	st.states = append(st.states, State{Hash: rootHash, Rule50: rootRule50})
	st.rootIndex = len(st.states) - 1
	return st
}

func (st *stateStack) push(hash uint64, rule50 int) {
	st.states = append(st.states, State{Hash: hash, Rule50: rule50})
}

func (st *stateStack) pop() {
	if len(st.states) > st.rootIndex+1 {
		st.states = st.states[:len(st.states)-1]
	}
}

// isDraw reports a fifty-move draw, a threefold repetition, or a single
// repetition of a position first reached inside the search.
func (st *stateStack) isDraw() bool {
	curr := st.states[len(st.states)-1]
	if curr.Rule50 >= fiftyMoveLimit {
		return true
	}
	count, firstIdx := st.repetitionInfo(curr)
	if count >= 2 {
		return true
	}
	return count >= 1 && firstIdx >= st.rootIndex
}

// repetitionInfo counts earlier occurrences of curr since the last
// irreversible move and the index of the first one (-1 if none).
func (st *stateStack) repetitionInfo(curr State) (count int, firstIdx int) {
	firstIdx = -1
	last := len(st.states) - 1
	start := Max(last-curr.Rule50, 0)
	for i := start; i < last; i++ {
		if st.states[i].Hash == curr.Hash {
			count++
			if firstIdx == -1 {
				firstIdx = i
			}
		}
	}
	return count, firstIdx
}
