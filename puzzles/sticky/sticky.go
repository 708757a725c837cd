// Package sticky implements the pull-wall puzzle. The player pushes a chest
// towards a goal cell; walls cannot be pushed, but any wall directly behind
// the player is dragged along when the player steps away from it.
package sticky

import (
	"cmp"
	"slices"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/internal/grid"
)

// moveOrder is the order in which transitions are enumerated.
var moveOrder = [4]grid.Direction{grid.Up, grid.Right, grid.Down, grid.Left}

// Data is the static puzzle definition.
type Data struct {
	board *grid.Board
	goal  grid.Vec2

	// ZeroHeuristic turns the search into uniform-cost search.
	ZeroHeuristic bool
}

// NewData builds a puzzle definition.
func NewData(board *grid.Board, goal grid.Vec2) *Data {
	return &Data{board: board, goal: goal}
}

func (d *Data) Board() *grid.Board { return d.board }
func (d *Data) Goal() grid.Vec2    { return d.goal }

// State holds the player, the chest and the walls, walls sorted.
type State struct {
	player grid.Vec2
	chest  grid.Vec2
	walls  []grid.Vec2
}

// NewState returns the canonical state for walls in any order.
func NewState(player, chest grid.Vec2, walls []grid.Vec2) State {
	sorted := slices.Clone(walls)
	slices.SortFunc(sorted, compareVec)
	return State{player: player, chest: chest, walls: sorted}
}

func compareVec(a, b grid.Vec2) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

func (s State) Player() grid.Vec2  { return s.player }
func (s State) Chest() grid.Vec2   { return s.chest }
func (s State) Walls() []grid.Vec2 { return slices.Clone(s.walls) }

func (s State) Equal(other State) bool {
	return s.player == other.player && s.chest == other.chest && slices.Equal(s.walls, other.walls)
}

func (s State) Hash() uint64 {
	h := grid.NewHasher().Vec(s.player).Vec(s.chest)
	for _, wall := range s.walls {
		h.Vec(wall)
	}
	return h.Sum64()
}

func (s State) wallAt(p grid.Vec2) int {
	for i, wall := range s.walls {
		if wall == p {
			return i
		}
	}
	return -1
}

// Move steps the player in direction. It reports false when the move is
// illegal: leaving the ground, walking into a wall, or pushing the chest
// against a wall or off the ground.
func (s State) Move(data *Data, direction grid.Direction) (State, bool) {
	forward := direction.Vec()
	target := s.player.Add(forward)
	if !data.board.Walkable(target) || s.wallAt(target) >= 0 {
		return State{}, false
	}

	next := State{player: target, chest: s.chest, walls: slices.Clone(s.walls)}

	if i := s.wallAt(s.player.Add(direction.Reverse().Vec())); i >= 0 {
		next.walls[i] = s.player
	}

	if target == s.chest {
		behind := target.Add(forward)
		if !data.board.Walkable(behind) || next.wallAt(behind) >= 0 {
			return State{}, false
		}
		next.chest = behind
	}

	slices.SortFunc(next.walls, compareVec)
	return next, true
}

// Transitions tries Up, Right, Down and Left, omitting illegal moves.
func (s State) Transitions(data *Data) []bestfirst.Transition[State, grid.Direction] {
	out := make([]bestfirst.Transition[State, grid.Direction], 0, len(moveOrder))
	for _, direction := range moveOrder {
		next, ok := s.Move(data, direction)
		if !ok {
			continue
		}
		if next.chest == data.goal {
			out = append(out, bestfirst.Solved[State](direction))
		} else {
			out = append(out, bestfirst.Continue(direction, next))
		}
	}
	return out
}

// Heuristic is the Manhattan distance from the chest to the goal. The chest
// moves at most one cell per action.
func (s State) Heuristic(data *Data) int {
	if data.ZeroHeuristic {
		return 0
	}
	return s.chest.Manhattan(data.goal)
}

// Solve runs the search engine on a sticky puzzle.
func Solve(initial State, data *Data, options ...bestfirst.Option) bestfirst.Result[grid.Direction] {
	return bestfirst.Solve[State, *Data, grid.Direction, int](initial, data, options...)
}
