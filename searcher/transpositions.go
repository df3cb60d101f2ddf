package searcher

import "tictac/game"

type nodeFlag int8

const (
	tValid nodeFlag = iota
	tLBound
	tUBound
)

type tEntry struct {
	state     game.State
	value     float64
	flag      nodeFlag
	remaining int // plies left below the entry, -1 when unlimited
}

// transpositions maps positions reached by different move orders to their
// search value. Hash collisions are resolved with State.Equal.
type transpositions struct {
	entries map[game.StateHash][]tEntry
}

func newTranspositions() *transpositions {
	return &transpositions{entries: make(map[game.StateHash][]tEntry)}
}

// lookup only returns entries searched to the same remaining depth, since a
// depth cutoff makes values depend on it.
func (t *transpositions) lookup(state game.State, remaining int) (tEntry, bool) {
	for _, e := range t.entries[state.Hash()] {
		if e.remaining == remaining && e.state.Equal(state) {
			return e, true
		}
	}
	return tEntry{}, false
}

func (t *transpositions) store(entry tEntry) {
	hash := entry.state.Hash()
	bucket := t.entries[hash]
	for i, e := range bucket {
		if e.remaining == entry.remaining && e.state.Equal(entry.state) {
			bucket[i] = entry
			return
		}
	}
	t.entries[hash] = append(bucket, entry)
}

func (t *transpositions) size() int {
	n := 0
	for _, bucket := range t.entries {
		n += len(bucket)
	}
	return n
}
