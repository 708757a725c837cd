// Package grid provides the board geometry shared by the puzzle domains.
// Coordinates follow the puzzle files: (0,0) is the bottom-left cell and y
// grows upwards.
package grid

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Vec2 is a board coordinate or offset.
type Vec2 struct {
	X int32
	Y int32
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Manhattan returns |dx| + |dy| between v and o.
func (v Vec2) Manhattan(o Vec2) int {
	d := v.Sub(o)
	return int(abs(d.X) + abs(d.Y))
}

// Less orders vectors by X, then Y.
func (v Vec2) Less(o Vec2) bool {
	if v.X != o.X {
		return v.X < o.X
	}
	return v.Y < o.Y
}

func (v Vec2) String() string { return fmt.Sprintf("(%d, %d)", v.X, v.Y) }

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Direction is one of the four orthogonal moves.
type Direction uint8

const (
	Right Direction = iota
	Up
	Left
	Down
)

// Directions lists every direction in enumeration order.
var Directions = [4]Direction{Right, Up, Left, Down}

var directionNames = [4]string{"Right", "Up", "Left", "Down"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// Vec returns the unit offset of d.
func (d Direction) Vec() Vec2 {
	switch d {
	case Right:
		return Vec2{1, 0}
	case Up:
		return Vec2{0, 1}
	case Left:
		return Vec2{-1, 0}
	default:
		return Vec2{0, -1}
	}
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return (d + 2) % 4
}

// ParseDirection accepts a direction name as printed by String, case-sensitive,
// or its first letter.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if s == name || (len(s) == 1 && s[0] == name[0]) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Board is a rectangular mask of walkable cells.
type Board struct {
	Size  Vec2
	cells []bool
}

// NewBoard returns a board of the given size with no walkable cell.
func NewBoard(width, height int) *Board {
	return &Board{
		Size:  Vec2{int32(width), int32(height)},
		cells: make([]bool, width*height),
	}
}

// Contains reports whether p lies on the board.
func (b *Board) Contains(p Vec2) bool {
	return p.X >= 0 && p.X < b.Size.X && p.Y >= 0 && p.Y < b.Size.Y
}

// Walkable reports whether p is on the board and walkable.
func (b *Board) Walkable(p Vec2) bool {
	if !b.Contains(p) {
		return false
	}
	return b.cells[p.X+p.Y*b.Size.X]
}

// SetWalkable marks p. It panics when p is off the board.
func (b *Board) SetWalkable(p Vec2, walkable bool) {
	if !b.Contains(p) {
		panic(fmt.Sprintf("grid: %v outside %dx%d board", p, b.Size.X, b.Size.Y))
	}
	b.cells[p.X+p.Y*b.Size.X] = walkable
}

// Canvas is a character buffer the size of a board, written top row first.
type Canvas struct {
	size  Vec2
	cells []byte
}

// NewCanvas returns a canvas filled from the board: floor for walkable cells
// and void for the rest.
func NewCanvas(b *Board, floor, void byte) *Canvas {
	c := &Canvas{size: b.Size, cells: make([]byte, len(b.cells))}
	for i, walkable := range b.cells {
		if walkable {
			c.cells[i] = floor
		} else {
			c.cells[i] = void
		}
	}
	return c
}

// Set draws ch at p. Points off the canvas are ignored.
func (c *Canvas) Set(p Vec2, ch byte) {
	if p.X < 0 || p.X >= c.size.X || p.Y < 0 || p.Y >= c.size.Y {
		return
	}
	c.cells[p.X+p.Y*c.size.X] = ch
}

func (c *Canvas) String() string {
	out := make([]byte, 0, len(c.cells)+int(c.size.Y))
	for y := c.size.Y - 1; y >= 0; y-- {
		row := c.cells[y*c.size.X : (y+1)*c.size.X]
		out = append(out, row...)
		out = append(out, '\n')
	}
	return string(out)
}

// Hasher accumulates a 64-bit xxhash over canonical state fields.
type Hasher struct {
	digest *xxhash.Digest
	buf    [8]byte
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{digest: xxhash.New()}
}

// Vec writes a coordinate.
func (h *Hasher) Vec(v Vec2) *Hasher {
	binary.LittleEndian.PutUint32(h.buf[0:4], uint32(v.X))
	binary.LittleEndian.PutUint32(h.buf[4:8], uint32(v.Y))
	_, _ = h.digest.Write(h.buf[:])
	return h
}

// Byte writes a single tag byte.
func (h *Hasher) Byte(b byte) *Hasher {
	h.buf[0] = b
	_, _ = h.digest.Write(h.buf[:1])
	return h
}

// Sum64 returns the hash of everything written so far.
func (h *Hasher) Sum64() uint64 { return h.digest.Sum64() }
