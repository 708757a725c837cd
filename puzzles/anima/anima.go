// Package anima implements the mirrored-actor puzzle: red actors move in the
// chosen direction, blue actors in the opposite one, and the puzzle is solved
// when every goal cell holds an actor of its color.
package anima

import (
	"cmp"
	"slices"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/internal/grid"
)

// Color tells which way an actor moves.
type Color uint8

const (
	Red Color = iota
	Blue
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "blue"
}

// Actor is one movable piece.
type Actor struct {
	Position grid.Vec2
	Color    Color
}

func compareActors(a, b Actor) int {
	if c := cmp.Compare(a.Position.X, b.Position.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Position.Y, b.Position.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.Color, b.Color)
}

// Goal is a cell that must end up holding an actor of Color.
type Goal struct {
	Position grid.Vec2
	Color    Color
}

// Data is the static puzzle definition.
type Data struct {
	board *grid.Board
	goals []Goal
}

// NewData builds a puzzle definition.
func NewData(board *grid.Board, goals []Goal) *Data {
	return &Data{board: board, goals: slices.Clone(goals)}
}

func (d *Data) Board() *grid.Board { return d.board }
func (d *Data) Goals() []Goal      { return slices.Clone(d.goals) }

// SolvedBy reports whether every goal holds an actor of the goal's color.
func (d *Data) SolvedBy(s State) bool {
	for _, goal := range d.goals {
		covered := false
		for _, actor := range s.actors {
			if actor.Position == goal.Position && actor.Color == goal.Color {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

// State is the set of actor positions, kept sorted.
type State struct {
	actors []Actor
}

// NewState returns the canonical state for actors in any order.
func NewState(actors []Actor) State {
	sorted := slices.Clone(actors)
	slices.SortFunc(sorted, compareActors)
	return State{actors: sorted}
}

// Actors returns a copy of the actors in canonical order.
func (s State) Actors() []Actor { return slices.Clone(s.actors) }

func (s State) Equal(other State) bool { return slices.Equal(s.actors, other.actors) }

func (s State) Hash() uint64 {
	h := grid.NewHasher()
	for _, actor := range s.actors {
		h.Vec(actor.Position).Byte(byte(actor.Color))
	}
	return h.Sum64()
}

// Move applies direction to every actor. An actor whose target is not
// walkable stays put; actors that would share a cell both stay put, repeated
// until no two actors overlap.
func (s State) Move(data *Data, direction grid.Direction) State {
	moved := slices.Clone(s.actors)
	offset := direction.Vec()
	for i := range moved {
		next := moved[i].Position.Add(offset)
		if moved[i].Color == Blue {
			next = moved[i].Position.Sub(offset)
		}
		if data.board.Walkable(next) {
			moved[i].Position = next
		}
	}

	for collided := true; collided; {
		collided = false
		for i := range moved {
			for j := i + 1; j < len(moved); j++ {
				if moved[i].Position == moved[j].Position {
					moved[i].Position = s.actors[i].Position
					moved[j].Position = s.actors[j].Position
					collided = true
				}
			}
		}
	}

	slices.SortFunc(moved, compareActors)
	return State{actors: moved}
}

// Transitions tries all four directions. Every direction is legal.
func (s State) Transitions(data *Data) []bestfirst.Transition[State, grid.Direction] {
	out := make([]bestfirst.Transition[State, grid.Direction], 0, len(grid.Directions))
	for _, direction := range grid.Directions {
		next := s.Move(data, direction)
		if data.SolvedBy(next) {
			out = append(out, bestfirst.Solved[State](direction))
		} else {
			out = append(out, bestfirst.Continue(direction, next))
		}
	}
	return out
}

// Heuristic is the largest, over goals, of the Manhattan distance to the
// nearest actor. Each move shifts an actor by at most one cell, so it never
// overestimates.
func (s State) Heuristic(data *Data) int {
	worst := 0
	for _, goal := range data.goals {
		nearest := -1
		for _, actor := range s.actors {
			if d := goal.Position.Manhattan(actor.Position); nearest < 0 || d < nearest {
				nearest = d
			}
		}
		worst = max(worst, nearest)
	}
	return worst
}

// Solve runs the search engine on an anima puzzle.
func Solve(initial State, data *Data, options ...bestfirst.Option) bestfirst.Result[grid.Direction] {
	return bestfirst.Solve[State, *Data, grid.Direction, int](initial, data, options...)
}
