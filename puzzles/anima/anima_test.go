package anima

import (
	"testing"

	"github.com/pdrpinto/bestfirst/internal/grid"
	"github.com/pdrpinto/bestfirst/internal/parse"
	"github.com/pdrpinto/bestfirst/internal/searchtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	spiral        = ".....\n.   .\n... .\n    .\nr....\n\nR 2 2"
	deadlock      = " . \nbr.\n b \n\nR 1 1\nB 2 1\nB 1 2"
	squareDance   = " ....\n.r.r.\n.. ..\n.r.r.\n.... \n\nR 2 1\nR 1 2\nR 3 2\nR 2 3"
	closeQuarters = ".rb.\n.br.\n .. \n\nR 0 1\nB 0 2\nB 3 1\nR 3 2"
	boxedIn       = ".r\n  \n..\n\nR 0 0"
)

func solveValidate(t *testing.T, puzzle string, length int) {
	t.Helper()
	initial, data, err := Parse(puzzle)
	require.NoError(t, err)

	result := Solve(initial, data)

	if length < 0 {
		assert.False(t, result.Found)
		assert.Empty(t, result.Actions)
		return
	}
	require.True(t, result.Found)
	assert.Len(t, result.Actions, length)

	state := initial
	for _, direction := range result.Actions {
		state = state.Move(data, direction)
	}
	assert.True(t, data.SolvedBy(state))
	assert.NoError(t, searchtest.Replay[State, *Data, grid.Direction, int](initial, data, result.Actions))
}

func TestSolve_Spiral(t *testing.T)        { solveValidate(t, spiral, 16) }
func TestSolve_Deadlock(t *testing.T)      { solveValidate(t, deadlock, 6) }
func TestSolve_SquareDance(t *testing.T)   { solveValidate(t, squareDance, 12) }
func TestSolve_CloseQuarters(t *testing.T) { solveValidate(t, closeQuarters, 11) }
func TestSolve_BoxedIn(t *testing.T)       { solveValidate(t, boxedIn, -1) }

func TestSolve_MatchesBreadthFirst(t *testing.T) {
	for _, puzzle := range []string{spiral, deadlock, closeQuarters, boxedIn} {
		initial, data, err := Parse(puzzle)
		require.NoError(t, err)

		want, ok := searchtest.ShortestLength[State, *Data, grid.Direction, int](initial, data)
		result := Solve(initial, data)

		assert.Equal(t, ok, result.Found)
		assert.Len(t, result.Actions, want)
	}
}

func TestSolve_Deterministic(t *testing.T) {
	initial, data, err := Parse(squareDance)
	require.NoError(t, err)

	first := Solve(initial, data)
	second := Solve(initial, data)

	assert.Equal(t, first.Actions, second.Actions)
}

func TestNewState_Canonical(t *testing.T) {
	actors := []Actor{
		{Position: grid.Vec2{X: 3, Y: 2}, Color: Red},
		{Position: grid.Vec2{X: 0, Y: 1}, Color: Blue},
		{Position: grid.Vec2{X: 0, Y: 0}, Color: Red},
	}
	reversed := []Actor{actors[2], actors[1], actors[0]}

	a, b := NewState(actors), NewState(reversed)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, grid.Vec2{X: 0, Y: 0}, a.Actors()[0].Position)
}

func TestState_HashDistinguishesColor(t *testing.T) {
	red := NewState([]Actor{{Position: grid.Vec2{X: 1, Y: 1}, Color: Red}})
	blue := NewState([]Actor{{Position: grid.Vec2{X: 1, Y: 1}, Color: Blue}})

	assert.False(t, red.Equal(blue))
	assert.NotEqual(t, red.Hash(), blue.Hash())
}

func TestMove_MirroredAndBlocked(t *testing.T) {
	initial, data, err := Parse("....\n\nR 1 0\nB 3 0")
	require.NoError(t, err)

	next := initial.Move(data, grid.Left)

	// Red steps left; blue would step right off the board and stays.
	assert.Equal(t, []Actor{
		{Position: grid.Vec2{X: 0, Y: 0}, Color: Red},
		{Position: grid.Vec2{X: 3, Y: 0}, Color: Blue},
	}, next.Actors())
}

func TestMove_CollisionRollsBack(t *testing.T) {
	initial, data, err := Parse("...\n\nR 0 0\nB 2 0")
	require.NoError(t, err)

	next := initial.Move(data, grid.Right)

	assert.True(t, next.Equal(initial))
}

func TestMove_CollisionCascades(t *testing.T) {
	// Red at 0 and 1 move right; blue at 3 moves left onto 2 and collides with
	// the red from 1, whose rollback then collides with the red from 0.
	initial, data, err := Parse("....\n\nR 0 0\nR 1 0\nB 3 0")
	require.NoError(t, err)

	next := initial.Move(data, grid.Right)

	assert.True(t, next.Equal(initial))
}

func TestTransitions_AllDirectionsLegal(t *testing.T) {
	initial, data, err := Parse(spiral)
	require.NoError(t, err)

	transitions := initial.Transitions(data)

	require.Len(t, transitions, 4)
	for i, transition := range transitions {
		assert.Equal(t, grid.Directions[i], transition.Action)
	}
}

func TestHeuristic(t *testing.T) {
	initial, data, err := Parse(squareDance)
	require.NoError(t, err)

	assert.Equal(t, 1, initial.Heuristic(data))
}

func TestParse_RoundTripRender(t *testing.T) {
	initial, data, err := Parse(deadlock)
	require.NoError(t, err)

	assert.Equal(t, " B \nbRB\n b \n", Render(initial, data))
	assert.Len(t, data.Goals(), 3)
	assert.Equal(t, int32(3), data.Board().Size.X)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		kind   error
		line   int
		column int
	}{
		{"empty", "", parse.ErrNoRows, 1, 0},
		{"no blank line", "..\n..\nR 0 0", parse.ErrMissingSection, 0, 0},
		{"uneven", "...\n..\n\nR 0 0", parse.ErrUnevenRows, 2, 0},
		{"bad tile", "..\n.x\n\nR 0 0", parse.ErrUnexpectedCharacter, 2, 2},
		{"bad color", "..\n\nG 0 0", parse.ErrInvalidValue, 3, 0},
		{"bad x", "..\n\nR x 0", parse.ErrInvalidNumber, 3, 0},
		{"missing y", "..\n\nR 0", parse.ErrMissingField, 3, 0},
		{"off board", "..\n\nR 5 0", parse.ErrOutOfBounds, 3, 0},
		{"x overflows", "..r\n\nR 4294967296 0", parse.ErrInvalidNumber, 3, 0},
		{"y overflows", "..r\n\nR 0 -2147483649", parse.ErrInvalidNumber, 3, 0},
		{"on void", ". \n\nR 1 0", parse.ErrOutOfBounds, 3, 0},
		{"stacked", "..\n\nR 0 0\nB 0 0", parse.ErrDuplicate, 4, 0},
		{"no actors", "..\n\n", parse.ErrMissingSection, 0, 0},
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
