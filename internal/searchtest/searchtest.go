// Package searchtest holds reference checks used by domain tests: an
// exhaustive breadth-first oracle and a replay validator.
package searchtest

import (
	"errors"
	"fmt"

	"github.com/pdrpinto/bestfirst"
)

type seenSet[S bestfirst.State[S]] map[uint64][]S

func (seen seenSet[S]) add(state S) bool {
	hash := state.Hash()
	for _, other := range seen[hash] {
		if other.Equal(state) {
			return false
		}
	}
	seen[hash] = append(seen[hash], state)
	return true
}

// ShortestLength explores the reachable state space breadth first and returns
// the length of the shortest solving action sequence. ok is false when the
// puzzle has no solution.
func ShortestLength[S bestfirst.Puzzle[S, D, A, H], D any, A comparable, H bestfirst.Cost](
	initial S,
	data D,
) (length int, ok bool) {
	seen := seenSet[S]{}
	seen.add(initial)
	level := []S{initial}
	for depth := 1; len(level) > 0; depth++ {
		var next []S
		for _, state := range level {
			for _, transition := range state.Transitions(data) {
				if transition.Outcome == bestfirst.Success {
					return depth, true
				}
				if seen.add(transition.Next) {
					next = append(next, transition.Next)
				}
			}
		}
		level = next
	}
	return 0, false
}

// Replay applies actions from initial using the domain's own transitions.
// It fails if an action is illegal, if the puzzle is solved before the last
// action, or if the last action does not solve it.
func Replay[S bestfirst.Puzzle[S, D, A, H], D any, A comparable, H bestfirst.Cost](
	initial S,
	data D,
	actions []A,
) error {
	if len(actions) == 0 {
		return errors.New("empty solution")
	}
	state := initial
	for i, action := range actions {
		transition, ok := find(state.Transitions(data), action)
		if !ok {
			return fmt.Errorf("action %d (%v) is illegal", i, action)
		}
		last := i == len(actions)-1
		switch {
		case transition.Outcome == bestfirst.Success && !last:
			return fmt.Errorf("action %d (%v) solves the puzzle early", i, action)
		case transition.Outcome != bestfirst.Success && last:
			return fmt.Errorf("final action %d (%v) does not solve the puzzle", i, action)
		}
		state = transition.Next
	}
	return nil
}

func find[S any, A comparable](transitions []bestfirst.Transition[S, A], action A) (bestfirst.Transition[S, A], bool) {
	for _, transition := range transitions {
		if transition.Action == action {
			return transition, true
		}
	}
	return bestfirst.Transition[S, A]{}, false
}
