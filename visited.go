package bestfirst

// visitedSet records expanded states. Buckets are keyed by State.Hash and
// resolved with State.Equal.
type visitedSet[S State[S]] struct {
	buckets map[uint64][]S
	size    int
}

func newVisitedSet[S State[S]]() *visitedSet[S] {
	return &visitedSet[S]{buckets: make(map[uint64][]S)}
}

// insert adds state unless an equal state is already present.
// It reports whether state was added.
func (v *visitedSet[S]) insert(state S) bool {
	hash := state.Hash()
	bucket := v.buckets[hash]
	for _, seen := range bucket {
		if seen.Equal(state) {
			return false
		}
	}
	v.buckets[hash] = append(bucket, state)
	v.size++
	return true
}

func (v *visitedSet[S]) len() int { return v.size }
