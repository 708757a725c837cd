package sticky

import (
	"testing"

	"github.com/pdrpinto/bestfirst/internal/grid"
	"github.com/pdrpinto/bestfirst/internal/parse"
	"github.com/pdrpinto/bestfirst/internal/searchtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	corridor = "puzzle 5 1\n.....\nstart 0 0\nend 4 0\nchest 2 0\nwalls 0\n"
	turn     = "puzzle 3 3\n...\n...\n...\nstart 0 0\nend 2 2\nchest 1 1\nwalls 0\n"
	room     = "puzzle 4 3\n....\n....\n._..\n\nstart 0 0\nend 3 2\nchest 1 1\nwalls 2\n3 0\n0 2\n"
	stuck    = "puzzle 3 1\n...\nstart 0 0\nend 2 0\nchest 1 0\nwalls 1\n2 0\n"
)

func mustParse(t *testing.T, text string) (State, *Data) {
	t.Helper()
	initial, data, err := Parse(text)
	require.NoError(t, err)
	return initial, data
}

func TestSolve_Corridor(t *testing.T) {
	initial, data := mustParse(t, corridor)

	result := Solve(initial, data)

	require.True(t, result.Found)
	assert.Equal(t, []grid.Direction{grid.Right, grid.Right, grid.Right}, result.Actions)
}

func TestSolve_Turn(t *testing.T) {
	initial, data := mustParse(t, turn)

	result := Solve(initial, data)

	require.True(t, result.Found)
	assert.Len(t, result.Actions, 5)
	assert.NoError(t, searchtest.Replay[State, *Data, grid.Direction, int](initial, data, result.Actions))
}

func TestSolve_ZeroHeuristic(t *testing.T) {
	initial, data := mustParse(t, turn)
	data.ZeroHeuristic = true

	assert.Zero(t, initial.Heuristic(data))
	result := Solve(initial, data)

	require.True(t, result.Found)
	assert.Len(t, result.Actions, 5)
}

func TestSolve_Stuck(t *testing.T) {
	initial, data := mustParse(t, stuck)

	result := Solve(initial, data)

	assert.False(t, result.Found)
	assert.Empty(t, result.Actions)
}

func TestSolve_MatchesBreadthFirst(t *testing.T) {
	for _, puzzle := range []string{corridor, turn, room, stuck} {
		initial, data := mustParse(t, puzzle)

		want, ok := searchtest.ShortestLength[State, *Data, grid.Direction, int](initial, data)
		result := Solve(initial, data)

		require.Equal(t, ok, result.Found)
		assert.Len(t, result.Actions, want)
		if ok {
			assert.NoError(t, searchtest.Replay[State, *Data, grid.Direction, int](initial, data, result.Actions))
		}
	}
}

func TestMove(t *testing.T) {
	_, data := mustParse(t, "puzzle 5 1\n...._\nstart 0 0\nend 4 0\nchest 2 0\nwalls 0\n")
	at := func(x int32) grid.Vec2 { return grid.Vec2{X: x} }

	cases := []struct {
		name   string
		before State
		move   grid.Direction
		after  State
		legal  bool
	}{
		{"step", NewState(at(0), at(3), nil), grid.Right, NewState(at(1), at(3), nil), true},
		{"pull wall", NewState(at(1), at(3), []grid.Vec2{at(0)}), grid.Right, NewState(at(2), at(3), []grid.Vec2{at(1)}), true},
		{"push chest", NewState(at(1), at(2), nil), grid.Right, NewState(at(2), at(3), nil), true},
		{"push and pull", NewState(at(1), at(2), []grid.Vec2{at(0)}), grid.Right, NewState(at(2), at(3), []grid.Vec2{at(1)}), true},
		{"into wall", NewState(at(1), at(3), []grid.Vec2{at(2)}), grid.Right, State{}, false},
		{"chest against wall", NewState(at(0), at(1), []grid.Vec2{at(2)}), grid.Right, State{}, false},
		{"chest onto empty", NewState(at(2), at(3), nil), grid.Right, State{}, false},
		{"off board", NewState(at(0), at(3), nil), grid.Left, State{}, false},
		{"off board vertically", NewState(at(0), at(3), nil), grid.Up, State{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			after, legal := tc.before.Move(data, tc.move)

			require.Equal(t, tc.legal, legal)
			if legal {
				assert.True(t, tc.after.Equal(after), "got player %v chest %v walls %v", after.Player(), after.Chest(), after.Walls())
			}
		})
	}
}

func TestMove_WallsStaySorted(t *testing.T) {
	_, data := mustParse(t, turn)
	before := NewState(grid.Vec2{X: 1, Y: 1}, grid.Vec2{X: 2, Y: 2}, []grid.Vec2{{X: 0, Y: 2}, {X: 1, Y: 0}})

	after, legal := before.Move(data, grid.Up)

	require.True(t, legal)
	assert.Equal(t, []grid.Vec2{{X: 0, Y: 2}, {X: 1, Y: 1}}, after.Walls())
	assert.Equal(t, grid.Vec2{X: 1, Y: 2}, after.Player())
}

func TestTransitions_Order(t *testing.T) {
	_, data := mustParse(t, turn)
	center := NewState(grid.Vec2{X: 1, Y: 1}, grid.Vec2{X: 0, Y: 0}, nil)

	transitions := center.Transitions(data)

	require.Len(t, transitions, 4)
	for i, want := range []grid.Direction{grid.Up, grid.Right, grid.Down, grid.Left} {
		assert.Equal(t, want, transitions[i].Action)
	}
}

func TestState_Canonical(t *testing.T) {
	walls := []grid.Vec2{{X: 2, Y: 0}, {X: 0, Y: 1}}
	a := NewState(grid.Vec2{}, grid.Vec2{X: 1}, walls)
	b := NewState(grid.Vec2{}, grid.Vec2{X: 1}, []grid.Vec2{walls[1], walls[0]})

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	swapped := NewState(grid.Vec2{X: 1}, grid.Vec2{}, walls)
	assert.False(t, a.Equal(swapped))
	assert.NotEqual(t, a.Hash(), swapped.Hash())
}

func TestRender(t *testing.T) {
	initial, data := mustParse(t, turn)
	assert.Equal(t, "..*\n.X.\nP..\n", Render(initial, data))

	initial, data = mustParse(t, room)
	assert.Equal(t, "#..*\n.X..\nP .#\n", Render(initial, data))
}

func TestParse_Errors(t *testing.T) {
	const tail = "start 0 0\nend 1 0\nchest 1 0\nwalls 0\n"
	cases := []struct {
		name   string
		input  string
		kind   error
		line   int
		column int
	}{
		{"empty", "", parse.ErrMissingSection, 0, 0},
		{"unknown command", "teleport 1 1", parse.ErrUnknownCommand, 1, 1},
		{"puzzle twice", "puzzle 2 1\n..\npuzzle 2 1\n..", parse.ErrDuplicate, 3, 0},
		{"bad width", "puzzle x 1", parse.ErrInvalidNumber, 1, 0},
		{"missing height", "puzzle 2", parse.ErrMissingField, 1, 0},
		{"zero size", "puzzle 0 1", parse.ErrInvalidValue, 1, 0},
		{"short board", "puzzle 2 2\n..", parse.ErrUnexpectedEOF, 1, 0},
		{"uneven", "puzzle 2 1\n...", parse.ErrUnevenRows, 2, 0},
		{"bad tile", "puzzle 2 1\n.#", parse.ErrUnexpectedCharacter, 2, 2},
		{"start twice", "start 0 0\nstart 1 1", parse.ErrDuplicate, 2, 0},
		{"bad chest y", "chest 0 y", parse.ErrInvalidNumber, 1, 0},
		{"short walls", "walls 2\n0 0", parse.ErrUnexpectedEOF, 1, 0},
		{"wall missing y", "walls 1\n0", parse.ErrMissingField, 2, 0},
		{"negative walls", "walls -1", parse.ErrInvalidValue, 1, 0},
		{"walls twice", "walls 0\nwalls 0", parse.ErrDuplicate, 2, 0},
		{"missing start", "puzzle 2 1\n..\nend 1 0\nchest 1 0\nwalls 0", parse.ErrMissingSection, 0, 0},
		{"missing walls", "puzzle 2 1\n..\nstart 0 0\nend 1 0\nchest 1 0", parse.ErrMissingSection, 0, 0},
		{"start on empty", "puzzle 2 1\n_.\n" + tail, parse.ErrOutOfBounds, 3, 0},
		{"chest on start", "puzzle 2 1\n..\nstart 0 0\nend 1 0\nchest 0 0\nwalls 0", parse.ErrDuplicate, 5, 0},
		{"huge board", "puzzle 1000000000 1000000000", parse.ErrUnexpectedEOF, 1, 0},
		{"width overflows", "puzzle 4294967296 1\n.", parse.ErrInvalidNumber, 1, 0},
		{"huge walls count", "walls 100000000000000", parse.ErrUnexpectedEOF, 1, 0},
		{"start x overflows", "puzzle 3 1\n...\nstart 4294967296 0\nend 2 0\nchest 1 0\nwalls 0\n", parse.ErrInvalidNumber, 3, 0},
		{"wall y overflows", "walls 1\n0 -4294967295", parse.ErrInvalidNumber, 2, 0},
		{"wall off board", "puzzle 2 1\n..\nstart 0 0\nend 1 0\nchest 1 0\nwalls 1\n5 5", parse.ErrOutOfBounds, 7, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.kind)

			var parseErr *parse.Error
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tc.line, parseErr.Line)
			assert.Equal(t, tc.column, parseErr.Column)
		})
	}
}
