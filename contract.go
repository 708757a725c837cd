package bestfirst

import "golang.org/x/exp/constraints"

// Cost is the numeric type a heuristic returns. It must be totally ordered
// and accept a plain step count converted into it.
type Cost interface {
	constraints.Integer | constraints.Float
}

// State is the identity contract of a search state.
// Equal and Hash must agree: equal states must return the same hash.
// Interchangeable sub-entities have to be kept in a canonical order.
type State[S any] interface {
	Equal(other S) bool
	Hash() uint64
}

// Puzzle is the full contract a domain state implements to be searched.
// D is the immutable puzzle definition, A the action type and H the cost type.
//
// Transitions and Heuristic must be pure: no mutation of the receiver,
// of data, or of any state reachable from a previously returned transition.
type Puzzle[S any, D any, A comparable, H Cost] interface {
	State[S]

	// Transitions enumerates every legal action from the receiver together with
	// its outcome. Illegal actions are left out. The order must be stable.
	Transitions(data D) []Transition[S, A]

	// Heuristic estimates the remaining number of actions. Lower is closer.
	// Zero is always legal and turns the search into uniform-cost search.
	Heuristic(data D) H
}

// Outcome tags the result of applying an action.
type Outcome uint8

const (
	// Indeterminate means the action is legal and Next holds the new state.
	Indeterminate Outcome = iota
	// Success means the action is legal and solves the puzzle.
	Success
)

func (o Outcome) String() string {
	switch o {
	case Indeterminate:
		return "indeterminate"
	case Success:
		return "success"
	default:
		return "unknown"
	}
}

// Transition is one enumerated move from a state.
type Transition[S any, A comparable] struct {
	Action  A
	Outcome Outcome
	Next    S
}

// Continue builds an Indeterminate transition to next.
func Continue[S any, A comparable](action A, next S) Transition[S, A] {
	return Transition[S, A]{Action: action, Outcome: Indeterminate, Next: next}
}

// Solved builds a Success transition.
func Solved[S any, A comparable](action A) Transition[S, A] {
	return Transition[S, A]{Action: action, Outcome: Success}
}
