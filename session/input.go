package session

import (
	"sync"

	"github.com/gridserpent/engine/game"
)

// HeadingCell holds the player's most recent direction request. Writes
// overwrite, they are never queued: of all the requests landing between two
// ticks, only the last one is seen by the game.
type HeadingCell struct {
	mu sync.Mutex
	h  game.Heading
}

// NewHeadingCell returns a cell primed with the initial heading.
func NewHeadingCell(h game.Heading) *HeadingCell {
	return &HeadingCell{h: h}
}

// Set records a direction request.
func (c *HeadingCell) Set(h game.Heading) {
	c.mu.Lock()
	c.h = h
	c.mu.Unlock()
}

// Sample reads the current request without consuming it.
func (c *HeadingCell) Sample() game.Heading {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.h
}
