package bestfirst_test

import (
	"github.com/pdrpinto/bestfirst"
)

// A minimal grid maze used to exercise the engine. 'S' is the start, 'G' the
// goal and '#' a wall. Entering the goal is a Success transition.

type cell struct{ x, y int }

type mazeData struct {
	rows  []string
	goal  cell
	zero  bool
	start cell
}

func newMaze(rows ...string) *mazeData {
	m := &mazeData{rows: rows}
	for y, row := range rows {
		for x, c := range row {
			switch c {
			case 'S':
				m.start = cell{x, y}
			case 'G':
				m.goal = cell{x, y}
			}
		}
	}
	return m
}

func (m *mazeData) open(c cell) bool {
	if c.y < 0 || c.y >= len(m.rows) || c.x < 0 || c.x >= len(m.rows[c.y]) {
		return false
	}
	return m.rows[c.y][c.x] != '#'
}

func (m *mazeData) initial() mazeState { return mazeState{pos: m.start} }

var mazeMoves = []struct {
	name   string
	dx, dy int
}{
	{"R", 1, 0},
	{"D", 0, 1},
	{"L", -1, 0},
	{"U", 0, -1},
}

type mazeState struct{ pos cell }

func (s mazeState) Equal(other mazeState) bool { return s.pos == other.pos }

func (s mazeState) Hash() uint64 {
	return uint64(uint32(s.pos.x))<<32 | uint64(uint32(s.pos.y))
}

func (s mazeState) Transitions(m *mazeData) []bestfirst.Transition[mazeState, string] {
	out := make([]bestfirst.Transition[mazeState, string], 0, len(mazeMoves))
	for _, move := range mazeMoves {
		next := cell{s.pos.x + move.dx, s.pos.y + move.dy}
		if !m.open(next) {
			continue
		}
		if next == m.goal {
			out = append(out, bestfirst.Solved[mazeState](move.name))
			continue
		}
		out = append(out, bestfirst.Continue(move.name, mazeState{pos: next}))
	}
	return out
}

func (s mazeState) Heuristic(m *mazeData) int {
	if m.zero {
		return 0
	}
	return abs(s.pos.x-m.goal.x) + abs(s.pos.y-m.goal.y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func solveMaze(m *mazeData, options ...bestfirst.Option) bestfirst.Result[string] {
	return bestfirst.Solve[mazeState, *mazeData, string, int](m.initial(), m, options...)
}

// halfState uses a float heuristic scaled down by half.
type halfState struct{ inner mazeState }

func (s halfState) Equal(other halfState) bool { return s.inner.Equal(other.inner) }
func (s halfState) Hash() uint64               { return s.inner.Hash() }

func (s halfState) Transitions(m *mazeData) []bestfirst.Transition[halfState, string] {
	inner := s.inner.Transitions(m)
	out := make([]bestfirst.Transition[halfState, string], len(inner))
	for i, t := range inner {
		out[i] = bestfirst.Transition[halfState, string]{
			Action:  t.Action,
			Outcome: t.Outcome,
			Next:    halfState{inner: t.Next},
		}
	}
	return out
}

func (s halfState) Heuristic(m *mazeData) float64 {
	return float64(s.inner.Heuristic(m)) / 2
}

// collidingState hashes every state to the same bucket.
type collidingState struct{ inner mazeState }

func (s collidingState) Equal(other collidingState) bool { return s.inner.Equal(other.inner) }
func (s collidingState) Hash() uint64                    { return 42 }

func (s collidingState) Transitions(m *mazeData) []bestfirst.Transition[collidingState, string] {
	inner := s.inner.Transitions(m)
	out := make([]bestfirst.Transition[collidingState, string], len(inner))
	for i, t := range inner {
		out[i] = bestfirst.Transition[collidingState, string]{
			Action:  t.Action,
			Outcome: t.Outcome,
			Next:    collidingState{inner: t.Next},
		}
	}
	return out
}

func (s collidingState) Heuristic(m *mazeData) int { return s.inner.Heuristic(m) }
