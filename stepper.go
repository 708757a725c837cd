package bestfirst

import (
	"container/heap"
	"log/slog"

	"github.com/pdrpinto/bestfirst/internal"
)

// StepSnapshot exposes the per-iteration state of the search.
type StepSnapshot[S any, A comparable] struct {
	Current   S    // state popped by this step, zero before the first pop
	Distance  int  // actions from the initial state to Current
	Discarded bool // Current was already visited and was dropped
	Estimate  float64
	Frontier  int
	Visited   int
	Done      bool
	Found     bool
	Actions   []A // solution, set once Found
	StepIndex int
}

// Stepper drives the search one queue pop at a time.
// It is not safe for concurrent use.
type Stepper[S Puzzle[S, D, A, H], D any, A comparable, H Cost] struct {
	data    D
	logger  *slog.Logger
	hooks   Hooks
	openSet priorityQueue[S, H]
	visited *visitedSet[S]
	history internal.History[A]

	current   *searchNode[S, H]
	discarded bool
	stats     Stats
	stepCount int
	done      bool
	found     bool
	actions   []A
}

// NewStepper creates a stepper and seeds it with the transitions of initial.
// If an action from initial already solves the puzzle the stepper starts done.
func NewStepper[S Puzzle[S, D, A, H], D any, A comparable, H Cost](
	initial S,
	data D,
	options ...Option,
) *Stepper[S, D, A, H] {
	opts := applyOptions(options)
	s := &Stepper[S, D, A, H]{
		data:    data,
		logger:  opts.Logger,
		hooks:   opts.Hooks,
		openSet: make(priorityQueue[S, H], 0),
		visited: newVisitedSet[S](),
	}
	heap.Init(&s.openSet)
	s.seed(initial)
	return s
}

// seed expands the initial state unconditionally, before it is marked visited.
func (s *Stepper[S, D, A, H]) seed(initial S) {
	for _, transition := range initial.Transitions(s.data) {
		if transition.Outcome == Success {
			s.finish([]A{transition.Action})
			return
		}
		s.push(internal.Root, 1, transition)
	}
	s.visited.insert(initial)
	s.stats.Visited = s.visited.len()
	s.logger.Debug("search seeded", "frontier", s.openSet.Len())
}

func (s *Stepper[S, D, A, H]) push(parent int, distance int, transition Transition[S, A]) {
	index := s.history.Push(parent, transition.Action)
	heap.Push(&s.openSet, &searchNode[S, H]{
		state:    transition.Next,
		distance: distance,
		estimate: transition.Next.Heuristic(s.data) + H(distance),
		index:    index,
	})
	s.stats.Generated++
	if n := s.openSet.Len(); n > s.stats.MaxFrontier {
		s.stats.MaxFrontier = n
	}
}

// advance performs one pop. It is a no-op once the search is done.
func (s *Stepper[S, D, A, H]) advance() {
	if s.done {
		return
	}
	if s.openSet.Len() == 0 {
		s.current = nil
		s.finish(nil)
		return
	}

	s.stepCount++
	node := heap.Pop(&s.openSet).(*searchNode[S, H])
	s.current = node

	// Pop-time deduplication: the first pop of a state wins.
	if !s.visited.insert(node.state) {
		s.discarded = true
		s.stats.Duplicates++
		if s.hooks.OnDuplicate != nil {
			s.hooks.OnDuplicate()
		}
		return
	}
	s.discarded = false
	s.stats.Expanded++
	s.stats.Visited = s.visited.len()
	if s.hooks.OnExpand != nil {
		s.hooks.OnExpand(ExpandEvent{
			Distance: node.distance,
			Frontier: s.openSet.Len(),
			Visited:  s.stats.Visited,
		})
	}

	for _, transition := range node.state.Transitions(s.data) {
		if transition.Outcome == Success {
			s.finish(s.history.Reconstruct(node.index, transition.Action))
			return
		}
		s.push(node.index, node.distance+1, transition)
	}
}

func (s *Stepper[S, D, A, H]) finish(actions []A) {
	s.done = true
	s.found = actions != nil
	s.actions = actions
	s.stats.Visited = s.visited.len()
	s.logger.Debug("search finished",
		"found", s.found,
		"length", len(actions),
		"expanded", s.stats.Expanded,
		"generated", s.stats.Generated,
		"duplicates", s.stats.Duplicates,
	)
	if s.hooks.OnFinish != nil {
		s.hooks.OnFinish(s.found, s.stats)
	}
}

// Step advances the search by one pop and returns a snapshot.
// Once done, Step keeps returning the final snapshot.
func (s *Stepper[S, D, A, H]) Step() StepSnapshot[S, A] {
	s.advance()
	return s.Snapshot()
}

// Snapshot returns the current snapshot without advancing.
func (s *Stepper[S, D, A, H]) Snapshot() StepSnapshot[S, A] {
	snapshot := StepSnapshot[S, A]{
		Frontier:  s.openSet.Len(),
		Visited:   s.visited.len(),
		Done:      s.done,
		Found:     s.found,
		StepIndex: s.stepCount,
	}
	if s.current != nil {
		snapshot.Current = s.current.state
		snapshot.Distance = s.current.distance
		snapshot.Estimate = float64(s.current.estimate)
		snapshot.Discarded = s.discarded
	}
	if s.found {
		snapshot.Actions = append([]A(nil), s.actions...)
	}
	return snapshot
}

// Done reports whether the search has terminated.
func (s *Stepper[S, D, A, H]) Done() bool { return s.done }

// Result returns the outcome so far. Found is false until the search succeeds.
func (s *Stepper[S, D, A, H]) Result() Result[A] {
	return Result[A]{
		Actions: append([]A(nil), s.actions...),
		Found:   s.found,
		Stats:   s.stats,
	}
}
