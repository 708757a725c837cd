package bestfirst

import (
	"errors"
	"log/slog"
	"runtime"
	"time"
)

// ErrNoSolution is returned by Result.Err when the reachable state space was
// exhausted without reaching a Success transition.
var ErrNoSolution = errors.New("no solution")

// Stats counts the work done by one search.
type Stats struct {
	Expanded    int `json:"expanded"`     // states popped and expanded
	Generated   int `json:"generated"`    // indeterminate children pushed, root children included
	Duplicates  int `json:"duplicates"`   // popped states discarded as already visited
	Visited     int `json:"visited"`      // distinct states in the visited set
	MaxFrontier int `json:"max_frontier"` // largest queue length observed
}

// Result contains the outcome of a search.
type Result[A comparable] struct {
	// Actions leads from the initial state to the goal. The initial state is
	// not represented; the goal-reaching action is the last element.
	Actions []A
	Found   bool
	Stats   Stats
	// Elapsed is the wall time spent in Solve.
	Elapsed time.Duration
}

// Err returns ErrNoSolution when nothing was found, nil otherwise.
func (r Result[A]) Err() error {
	if !r.Found {
		return ErrNoSolution
	}
	return nil
}

// ExpandEvent describes a state about to be expanded.
type ExpandEvent struct {
	Distance int
	Frontier int
	Visited  int
}

// Hooks observe a search without influencing it. Nil hooks are skipped.
type Hooks struct {
	OnExpand    func(ExpandEvent)
	OnDuplicate func()
	OnFinish    func(found bool, stats Stats)
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers int
	Logger          *slog.Logger
	Hooks           Hooks
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many goroutines SolveAll uses.
// Solve and Stepper ignore it.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithLogger sets the logger used for debug output. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithHooks installs observation callbacks.
func WithHooks(hooks Hooks) Option {
	return func(options *Options) { options.Hooks = hooks }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.New(slog.DiscardHandler)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	return searchOptions
}

// Solve runs the best-first search from initial to completion.
//
// The returned actions are optimal when the domain heuristic is admissible and
// consistent. When Found is false the whole reachable state space was
// explored: the puzzle has no solution.
func Solve[S Puzzle[S, D, A, H], D any, A comparable, H Cost](
	initial S,
	data D,
	options ...Option,
) Result[A] {
	start := time.Now()
	stepper := NewStepper[S, D, A, H](initial, data, options...)
	for !stepper.done {
		stepper.advance()
	}
	result := stepper.Result()
	result.Elapsed = time.Since(start)
	return result
}
