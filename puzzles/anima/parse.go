package anima

import (
	"fmt"
	"strings"

	"github.com/pdrpinto/bestfirst/internal/grid"
	"github.com/pdrpinto/bestfirst/internal/parse"
)

// Parse reads a puzzle file. The board comes first, top row first:
//
//	'.' floor   ' ' void   'r' red goal   'b' blue goal
//
// followed by a blank line and one actor per line as "R x y" or "B x y",
// with (0,0) at the bottom-left.
func Parse(text string) (State, *Data, error) {
	lines := parse.Lines(text)
	if len(lines) == 0 || lines[0].Text == "" {
		return State{}, nil, parse.At(1, parse.ErrNoRows, "")
	}

	height := -1
	for i, line := range lines {
		if line.Text == "" {
			height = i
			break
		}
	}
	if height < 0 {
		return State{}, nil, parse.At(0, parse.ErrMissingSection, "blank line after rows")
	}
	width := len(lines[0].Text)

	board := grid.NewBoard(width, height)
	var goals []Goal
	for i, line := range lines[:height] {
		y := int32(height - 1 - i)
		if len(line.Text) != width {
			return State{}, nil, parse.At(line.Number, parse.ErrUnevenRows,
				fmt.Sprintf("expected width %d, found %d", width, len(line.Text)))
		}
		for x, c := range []byte(line.Text) {
			position := grid.Vec2{X: int32(x), Y: y}
			switch c {
			case '.':
			case ' ':
				continue
			case 'r':
				goals = append(goals, Goal{Position: position, Color: Red})
			case 'b':
				goals = append(goals, Goal{Position: position, Color: Blue})
			default:
				return State{}, nil, parse.AtColumn(line.Number, x+1, parse.ErrUnexpectedCharacter, fmt.Sprintf("%q", c))
			}
			board.SetWalkable(position, true)
		}
	}

	var actors []Actor
	occupied := make(map[grid.Vec2]bool)
	for _, line := range lines[height+1:] {
		if strings.TrimSpace(line.Text) == "" {
			continue
		}
		actor, err := parseActor(line)
		if err != nil {
			return State{}, nil, err
		}
		if !board.Walkable(actor.Position) {
			return State{}, nil, parse.At(line.Number, parse.ErrOutOfBounds,
				fmt.Sprintf("actor at %v is not on a floor cell", actor.Position))
		}
		if occupied[actor.Position] {
			return State{}, nil, parse.At(line.Number, parse.ErrDuplicate,
				fmt.Sprintf("actor at %v", actor.Position))
		}
		occupied[actor.Position] = true
		actors = append(actors, actor)
	}
	if len(actors) == 0 {
		return State{}, nil, parse.At(0, parse.ErrMissingSection, "actors")
	}

	return NewState(actors), NewData(board, goals), nil
}

func parseActor(line parse.Line) (Actor, error) {
	fields := parse.NewFields(line)
	tag, err := fields.String("actor color")
	if err != nil {
		return Actor{}, err
	}
	var color Color
	switch tag {
	case "R":
		color = Red
	case "B":
		color = Blue
	default:
		return Actor{}, parse.At(line.Number, parse.ErrInvalidValue, fmt.Sprintf("actor color %q", tag))
	}
	x, err := fields.Int32("actor x")
	if err != nil {
		return Actor{}, err
	}
	y, err := fields.Int32("actor y")
	if err != nil {
		return Actor{}, err
	}
	return Actor{Position: grid.Vec2{X: x, Y: y}, Color: color}, nil
}

// Render draws the board with goals and actors, in the same layout Parse
// reads. Uppercase letters are actors.
func Render(s State, data *Data) string {
	canvas := grid.NewCanvas(data.board, '.', ' ')
	for _, goal := range data.goals {
		canvas.Set(goal.Position, colorRune(goal.Color, false))
	}
	for _, actor := range s.actors {
		canvas.Set(actor.Position, colorRune(actor.Color, true))
	}
	return canvas.String()
}

func colorRune(c Color, actor bool) byte {
	r := byte('r')
	if c == Blue {
		r = 'b'
	}
	if actor {
		r -= 'a' - 'A'
	}
	return r
}
