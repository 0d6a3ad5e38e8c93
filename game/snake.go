package game

// InitialSnakeSize is the body length every new snake starts with.
const InitialSnakeSize = 2

// Snake is the player piece. Body is ordered oldest cell first, the head is
// the final element. Heading is the direction of travel committed on the last
// tick, not the latest request from the player.
type Snake struct {
	Body    []Cell  `json:"body"`
	Heading Heading `json:"heading"`
}

// Head returns the cell the snake will move from on the next tick.
func (s Snake) Head() Cell {
	return s.Body[len(s.Body)-1]
}

// Tail returns the oldest body cell, the one vacated on a non-growing move.
func (s Snake) Tail() Cell {
	return s.Body[0]
}

// Contains reports whether c is occupied by the body.
func (s Snake) Contains(c Cell) bool {
	for _, b := range s.Body {
		if b == c {
			return true
		}
	}
	return false
}
