// Package bestfirst provides a generic best-first (A*) search engine for puzzle
// state spaces that are generated lazily from the current configuration.
//
// It exposes three entry points:
//
//   - Solve: run the search to completion and get a Result.
//   - Stepper: advance the search one pop at a time to drive UIs or debugging tools.
//   - SolveAll: solve many independent puzzles across a pool of goroutines.
//
// A puzzle domain plugs in by implementing Puzzle on its state type: equality
// and hashing over a canonical form, move enumeration and a heuristic. The
// engine returns the shortest action sequence when the heuristic is admissible
// and consistent, or reports that the reachable state space holds no solution.
package bestfirst
