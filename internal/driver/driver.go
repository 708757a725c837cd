// Package driver erases the type parameters of a puzzle domain so the CLI,
// the HTTP service and the TUI can work with any registered domain by name.
package driver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/pdrpinto/bestfirst"
)

var (
	// ErrUnknownDomain is returned by Lookup for an unregistered name.
	ErrUnknownDomain = errors.New("unknown domain")

	// ErrIllegalAction is returned by Replay when an action is not available.
	ErrIllegalAction = errors.New("illegal action")

	// ErrDomainMismatch is returned by SolveAll for an instance of another domain.
	ErrDomainMismatch = errors.New("instance belongs to another domain")
)

// Action is what a domain must offer for its actions to be displayed and
// matched by name.
type Action interface {
	comparable
	fmt.Stringer
}

// Solution is a search result with actions rendered as strings.
type Solution struct {
	Actions []string
	Found   bool
	Stats   bestfirst.Stats
	Elapsed time.Duration
}

func newSolution[A Action](result bestfirst.Result[A]) Solution {
	return Solution{
		Actions: actionNames(result.Actions),
		Found:   result.Found,
		Stats:   result.Stats,
		Elapsed: result.Elapsed,
	}
}

// Frame is one replay step: the board before Action is applied.
type Frame struct {
	Board  string
	Action string
}

// Snapshot is a stepper snapshot with the current state rendered.
type Snapshot struct {
	Board     string   `json:"board"`
	Distance  int      `json:"distance"`
	Estimate  float64  `json:"estimate"`
	Discarded bool     `json:"discarded"`
	Frontier  int      `json:"frontier"`
	Visited   int      `json:"visited"`
	Done      bool     `json:"done"`
	Found     bool     `json:"found"`
	Actions   []string `json:"actions,omitempty"`
	Step      int      `json:"step"`
}

// Stepper advances a search one pop at a time.
type Stepper interface {
	Step() Snapshot
	Snapshot() Snapshot
	Done() bool
}

// Instance is a loaded puzzle.
type Instance interface {
	Domain() string
	// Render draws the initial state.
	Render() string
	Solve(options ...bestfirst.Option) Solution
	// Replay re-derives the states along actions. The board after the final,
	// solving action is not part of the result.
	Replay(actions []string) ([]Frame, error)
	NewStepper(options ...bestfirst.Option) Stepper
}

// Driver loads puzzle text for one domain.
type Driver interface {
	Name() string
	Load(text string) (Instance, error)
	// SolveAll solves instances loaded by this driver concurrently and
	// returns the solutions in order.
	SolveAll(ctx context.Context, instances []Instance, options ...bestfirst.Option) ([]Solution, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Driver)
)

// Register makes d available to Lookup. It panics if the name is taken.
func Register(d Driver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[d.Name()]; ok {
		panic("driver: Register called twice for " + d.Name())
	}
	registry[d.Name()] = d
}

// Lookup returns the driver registered under name.
func Lookup(name string) (Driver, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownDomain, name, namesLocked())
	}
	return d, nil
}

// Names lists the registered domains in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds a Driver from a domain's parser and renderer.
func New[S bestfirst.Puzzle[S, D, A, H], D any, A Action, H bestfirst.Cost](
	name string,
	parse func(string) (S, D, error),
	render func(S, D) string,
) Driver {
	return &domain[S, D, A, H]{name: name, parse: parse, render: render}
}

type domain[S bestfirst.Puzzle[S, D, A, H], D any, A Action, H bestfirst.Cost] struct {
	name   string
	parse  func(string) (S, D, error)
	render func(S, D) string
}

func (d *domain[S, D, A, H]) Name() string { return d.name }

func (d *domain[S, D, A, H]) Load(text string) (Instance, error) {
	initial, data, err := d.parse(text)
	if err != nil {
		return nil, err
	}
	return &instance[S, D, A, H]{domain: d, initial: initial, data: data}, nil
}

func (d *domain[S, D, A, H]) SolveAll(ctx context.Context, instances []Instance, options ...bestfirst.Option) ([]Solution, error) {
	jobs := make([]bestfirst.Job[S, D], len(instances))
	for n, inst := range instances {
		typed, ok := inst.(*instance[S, D, A, H])
		if !ok || typed.domain != d {
			return nil, fmt.Errorf("%w: instance %d is %s, not %s", ErrDomainMismatch, n, inst.Domain(), d.name)
		}
		jobs[n] = bestfirst.Job[S, D]{Initial: typed.initial, Data: typed.data}
	}

	results, err := bestfirst.SolveAll[S, D, A, H](ctx, jobs, options...)
	solutions := make([]Solution, len(results))
	for n, result := range results {
		solutions[n] = newSolution(result)
	}
	return solutions, err
}

type instance[S bestfirst.Puzzle[S, D, A, H], D any, A Action, H bestfirst.Cost] struct {
	domain  *domain[S, D, A, H]
	initial S
	data    D
}

func (i *instance[S, D, A, H]) Domain() string { return i.domain.name }

func (i *instance[S, D, A, H]) Render() string { return i.domain.render(i.initial, i.data) }

func (i *instance[S, D, A, H]) Solve(options ...bestfirst.Option) Solution {
	return newSolution(bestfirst.Solve[S, D, A, H](i.initial, i.data, options...))
}

func (i *instance[S, D, A, H]) Replay(actions []string) ([]Frame, error) {
	frames := make([]Frame, 0, len(actions))
	state := i.initial
	for n, name := range actions {
		frames = append(frames, Frame{Board: i.domain.render(state, i.data), Action: name})

		transitions := state.Transitions(i.data)
		index := slices.IndexFunc(transitions, func(t bestfirst.Transition[S, A]) bool {
			return t.Action.String() == name
		})
		if index < 0 {
			return frames, fmt.Errorf("%w %q at move %d", ErrIllegalAction, name, n+1)
		}
		transition := transitions[index]
		if transition.Outcome == bestfirst.Success {
			if n != len(actions)-1 {
				return frames, fmt.Errorf("%w: move %d already solves the puzzle", ErrIllegalAction, n+1)
			}
			break
		}
		state = transition.Next
	}
	return frames, nil
}

func (i *instance[S, D, A, H]) NewStepper(options ...bestfirst.Option) Stepper {
	return &stepper[S, D, A, H]{
		instance: i,
		inner:    bestfirst.NewStepper[S, D, A, H](i.initial, i.data, options...),
		board:    i.Render(),
	}
}

type stepper[S bestfirst.Puzzle[S, D, A, H], D any, A Action, H bestfirst.Cost] struct {
	instance *instance[S, D, A, H]
	inner    *bestfirst.Stepper[S, D, A, H]
	board    string
	step     int
}

func (s *stepper[S, D, A, H]) Step() Snapshot {
	return s.convert(s.inner.Step())
}

func (s *stepper[S, D, A, H]) Snapshot() Snapshot {
	return s.convert(s.inner.Snapshot())
}

func (s *stepper[S, D, A, H]) Done() bool { return s.inner.Done() }

func (s *stepper[S, D, A, H]) convert(snapshot bestfirst.StepSnapshot[S, A]) Snapshot {
	// Current is only meaningful after a pop; keep the last board otherwise.
	if snapshot.StepIndex > s.step {
		s.step = snapshot.StepIndex
		s.board = s.instance.domain.render(snapshot.Current, s.instance.data)
	}
	return Snapshot{
		Board:     s.board,
		Distance:  snapshot.Distance,
		Estimate:  snapshot.Estimate,
		Discarded: snapshot.Discarded,
		Frontier:  snapshot.Frontier,
		Visited:   snapshot.Visited,
		Done:      snapshot.Done,
		Found:     snapshot.Found,
		Actions:   actionNames(snapshot.Actions),
		Step:      snapshot.StepIndex,
	}
}

func actionNames[A Action](actions []A) []string {
	if len(actions) == 0 {
		return nil
	}
	names := make([]string, len(actions))
	for i, action := range actions {
		names[i] = action.String()
	}
	return names
}
