package sticky

import (
	"fmt"
	"strings"

	"github.com/pdrpinto/bestfirst/internal/grid"
	"github.com/pdrpinto/bestfirst/internal/parse"
)

type placed struct {
	position grid.Vec2
	line     int
}

type builder struct {
	board *grid.Board
	start *placed
	end   *placed
	chest *placed
	walls []placed

	wallsLine int // line of the walls command, 0 until seen
}

// Parse reads a puzzle file made of commands, one per line:
//
//	puzzle W H     followed by H rows, top row first: '.' ground, '_' empty
//	start X Y      player position
//	end X Y        goal cell for the chest
//	chest X Y      chest position
//	walls N        followed by N lines "X Y"
//
// Blank lines are ignored. (0,0) is the bottom-left cell.
func Parse(text string) (State, *Data, error) {
	lines := parse.Lines(text)
	b := &builder{}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line.Text) == "" {
			continue
		}
		fields := parse.NewFields(line)
		command, _ := fields.String("command")

		var err error
		switch command {
		case "puzzle":
			if b.board != nil {
				return State{}, nil, parse.At(line.Number, parse.ErrDuplicate, "puzzle")
			}
			i, err = b.parseBoard(fields, lines, i)
		case "start":
			b.start, err = parsePosition(fields, line, b.start, "start")
		case "end":
			b.end, err = parsePosition(fields, line, b.end, "end")
		case "chest":
			b.chest, err = parsePosition(fields, line, b.chest, "chest")
		case "walls":
			if b.wallsLine != 0 {
				return State{}, nil, parse.At(line.Number, parse.ErrDuplicate, "walls")
			}
			i, err = b.parseWalls(fields, lines, i)
		default:
			return State{}, nil, parse.AtColumn(line.Number, 1, parse.ErrUnknownCommand, fmt.Sprintf("%q", command))
		}
		if err != nil {
			return State{}, nil, err
		}
	}

	return b.build()
}

func (b *builder) parseBoard(fields *parse.Fields, lines []parse.Line, i int) (int, error) {
	header := lines[i]
	width, err := fields.Int32("puzzle width")
	if err != nil {
		return i, err
	}
	height, err := fields.Int32("puzzle height")
	if err != nil {
		return i, err
	}
	if width <= 0 || height <= 0 {
		return i, parse.At(header.Number, parse.ErrInvalidValue, fmt.Sprintf("puzzle size %dx%d", width, height))
	}
	if remaining := len(lines) - i - 1; int(height) > remaining {
		return i, parse.At(header.Number, parse.ErrUnexpectedEOF,
			fmt.Sprintf("expected %d rows, found %d", height, remaining))
	}

	// Rows are checked before the board is allocated so its size is bounded
	// by the input.
	rows := lines[i+1 : i+1+int(height)]
	for _, line := range rows {
		if len(line.Text) != int(width) {
			return i, parse.At(line.Number, parse.ErrUnevenRows,
				fmt.Sprintf("expected width %d, found %d", width, len(line.Text)))
		}
	}

	board := grid.NewBoard(int(width), int(height))
	for row, line := range rows {
		y := height - 1 - int32(row)
		for x, c := range []byte(line.Text) {
			switch c {
			case '.':
				board.SetWalkable(grid.Vec2{X: int32(x), Y: y}, true)
			case '_':
			default:
				return i, parse.AtColumn(line.Number, x+1, parse.ErrUnexpectedCharacter, fmt.Sprintf("%q", c))
			}
		}
	}
	b.board = board
	return i + int(height), nil
}

func (b *builder) parseWalls(fields *parse.Fields, lines []parse.Line, i int) (int, error) {
	header := lines[i]
	count, err := fields.Int("walls count")
	if err != nil {
		return i, err
	}
	if count < 0 {
		return i, parse.At(header.Number, parse.ErrInvalidValue, fmt.Sprintf("walls count %d", count))
	}
	if remaining := len(lines) - i - 1; count > remaining {
		return i, parse.At(header.Number, parse.ErrUnexpectedEOF,
			fmt.Sprintf("expected %d walls, found %d", count, remaining))
	}

	walls := make([]placed, 0, count)
	for n := 0; n < count; n++ {
		i++
		line := lines[i]
		position, err := readVec(parse.NewFields(line), "wall")
		if err != nil {
			return i, err
		}
		walls = append(walls, placed{position: position, line: line.Number})
	}
	b.walls = walls
	b.wallsLine = header.Number
	return i, nil
}

func parsePosition(fields *parse.Fields, line parse.Line, previous *placed, what string) (*placed, error) {
	if previous != nil {
		return nil, parse.At(line.Number, parse.ErrDuplicate, what)
	}
	position, err := readVec(fields, what)
	if err != nil {
		return nil, err
	}
	return &placed{position: position, line: line.Number}, nil
}

func readVec(fields *parse.Fields, what string) (grid.Vec2, error) {
	x, err := fields.Int32(what + " x")
	if err != nil {
		return grid.Vec2{}, err
	}
	y, err := fields.Int32(what + " y")
	if err != nil {
		return grid.Vec2{}, err
	}
	return grid.Vec2{X: x, Y: y}, nil
}

func (b *builder) build() (State, *Data, error) {
	switch {
	case b.board == nil:
		return State{}, nil, parse.At(0, parse.ErrMissingSection, "puzzle")
	case b.start == nil:
		return State{}, nil, parse.At(0, parse.ErrMissingSection, "start")
	case b.end == nil:
		return State{}, nil, parse.At(0, parse.ErrMissingSection, "end")
	case b.chest == nil:
		return State{}, nil, parse.At(0, parse.ErrMissingSection, "chest")
	case b.wallsLine == 0:
		return State{}, nil, parse.At(0, parse.ErrMissingSection, "walls")
	}

	occupied := make(map[grid.Vec2]bool)
	check := func(p placed, what string, exclusive bool) error {
		if !b.board.Walkable(p.position) {
			return parse.At(p.line, parse.ErrOutOfBounds, fmt.Sprintf("%s at %v is not on ground", what, p.position))
		}
		if !exclusive {
			return nil
		}
		if occupied[p.position] {
			return parse.At(p.line, parse.ErrDuplicate, fmt.Sprintf("%s at %v overlaps another piece", what, p.position))
		}
		occupied[p.position] = true
		return nil
	}

	if err := check(*b.end, "end", false); err != nil {
		return State{}, nil, err
	}
	if err := check(*b.start, "start", true); err != nil {
		return State{}, nil, err
	}
	if err := check(*b.chest, "chest", true); err != nil {
		return State{}, nil, err
	}
	walls := make([]grid.Vec2, len(b.walls))
	for i, wall := range b.walls {
		if err := check(wall, "wall", true); err != nil {
			return State{}, nil, err
		}
		walls[i] = wall.position
	}

	return NewState(b.start.position, b.chest.position, walls), NewData(b.board, b.end.position), nil
}

// Render draws the board top row first: '.' ground, ' ' empty, '*' goal,
// '#' wall, 'X' chest and 'P' player.
func Render(s State, data *Data) string {
	canvas := grid.NewCanvas(data.board, '.', ' ')
	canvas.Set(data.goal, '*')
	for _, wall := range s.walls {
		canvas.Set(wall, '#')
	}
	canvas.Set(s.chest, 'X')
	canvas.Set(s.player, 'P')
	return canvas.String()
}
