package game

import "math/rand"

// DefaultCellSize is the edge length, in pixels, of a single grid cell.
const DefaultCellSize = 16

// Board is the playable grid. It is derived from the pixel size of the
// surface the game is drawn into: width and height count whole cells, any
// remainder of the viewport is unused.
type Board struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	CellSize int `json:"cellSize"`
}

// NewBoard derives a board from a viewport measured in pixels. Dimensions
// round down, a 490x330 viewport with 16px cells yields a 30x20 grid.
func NewBoard(viewportWidth, viewportHeight, cellSize int) *Board {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Board{
		Width:    viewportWidth / cellSize,
		Height:   viewportHeight / cellSize,
		CellSize: cellSize,
	}
}

// IsWithinBounds reports whether the cell lies on the board.
func (b *Board) IsWithinBounds(c Cell) bool {
	return c.X >= 0 && c.X < b.Width && c.Y >= 0 && c.Y < b.Height
}

// RandomCell returns a uniformly random cell on the board. It does not
// exclude occupied cells, so food may land under the snake and stay hidden
// until the body moves off of it.
func (b *Board) RandomCell() Cell {
	return Cell{X: rand.Intn(b.Width), Y: rand.Intn(b.Height)}
}

// ToRect maps a cell to the pixel rectangle it occupies on the surface.
func (b *Board) ToRect(c Cell) Rect {
	return Rect{
		X:      c.X * b.CellSize,
		Y:      c.Y * b.CellSize,
		Width:  b.CellSize,
		Height: b.CellSize,
	}
}

// StartSnake returns the initial body for a snake travelling along h: the
// centre of the board followed by one cell ahead of it. The requested size is
// accepted but the body is always exactly two cells long.
func (b *Board) StartSnake(size int, h Heading) []Cell {
	centre := Cell{X: b.Width / 2, Y: b.Height / 2}
	return []Cell{centre, centre.Next(h)}
}
