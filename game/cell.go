package game

import "fmt"

// Cell is a single position on the board grid. The origin is the top left
// corner, X grows to the east and Y grows to the south.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Key returns the canonical identity of a cell, "x,y". Rendered elements are
// keyed by it, one element per occupied cell.
func (c Cell) Key() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Next returns the neighbouring cell one step along the given heading.
func (c Cell) Next(h Heading) Cell {
	switch h {
	case North:
		return Cell{X: c.X, Y: c.Y - 1}
	case South:
		return Cell{X: c.X, Y: c.Y + 1}
	case East:
		return Cell{X: c.X + 1, Y: c.Y}
	case West:
		return Cell{X: c.X - 1, Y: c.Y}
	}
	return c
}

// Rect is a pixel rectangle, the drawable footprint of a cell on a surface.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}
