// Package render applies the incremental deltas carried by game states to a
// drawing surface. It owns no pixels itself, surfaces are supplied by the
// frontends.
package render

import (
	"errors"

	"github.com/gridserpent/engine/game"
)

// ErrNoElement is returned when an element identity is not present on the
// surface.
var ErrNoElement = errors.New("render: no element with that identity")

// Surface is the drawing target owned by the active session. Elements are
// keyed rectangles, creating an existing identity moves it. Implementations
// must be safe for use from the session goroutine plus whatever goroutine
// calls Clear.
type Surface interface {
	// Bounds reports the drawable size in pixels.
	Bounds() (width, height int)
	// CreateElement places the element with the given identity, replacing
	// any element already using it.
	CreateElement(id string, r game.Rect)
	// FindElement returns the rectangle of the element with the given
	// identity, if present.
	FindElement(id string) (game.Rect, bool)
	// RemoveElement deletes the element with the given identity. It returns
	// ErrNoElement when the identity is not present.
	RemoveElement(id string) error
	// Clear removes every element.
	Clear()
}

// ScoreSink receives the running score whenever it is known: the number of
// cells the snake occupies at the most recent state where food was present.
type ScoreSink interface {
	SetScore(score int)
}
