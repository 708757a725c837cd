package driver

import (
	"github.com/pdrpinto/bestfirst/internal/grid"
	"github.com/pdrpinto/bestfirst/puzzles/anima"
	"github.com/pdrpinto/bestfirst/puzzles/sticky"
)

func init() {
	Register(New[anima.State, *anima.Data, grid.Direction, int]("anima", anima.Parse, anima.Render))
	Register(New[sticky.State, *sticky.Data, grid.Direction, int]("sticky", sticky.Parse, sticky.Render))
}
