package render

import (
	"github.com/pkg/errors"

	"github.com/gridserpent/engine/game"
)

// FoodID is the reserved element identity for the food item. Snake cells are
// keyed by their coordinates and can never collide with it.
const FoodID = "food"

// Renderer keeps a surface in sync with a stream of states by applying each
// state's evolution instead of repainting. Scores may be nil when nothing
// displays the score.
type Renderer struct {
	Surface Surface
	Scores  ScoreSink
}

// Apply draws one state. Snake cells named in the evolution are added and
// removed, then the food element is reconciled against state.Food. A removal
// of an identity the surface does not know means the surface has drifted from
// the state stream, there is no way to resynchronise short of a restart, so
// the error is returned for the caller to end the session on.
func (r *Renderer) Apply(b *game.Board, state *game.State) error {
	for _, c := range state.Evolution.Added {
		r.Surface.CreateElement(c.Key(), b.ToRect(c))
	}
	for _, c := range state.Evolution.Removed {
		if err := r.Surface.RemoveElement(c.Key()); err != nil {
			return errors.Wrapf(err, "removing vacated cell %s", c.Key())
		}
	}

	if rect, ok := r.Surface.FindElement(FoodID); ok {
		if state.Food == nil || rect != b.ToRect(*state.Food) {
			if err := r.Surface.RemoveElement(FoodID); err != nil {
				return errors.Wrap(err, "removing moved food")
			}
		}
	}
	if state.Food != nil {
		r.Surface.CreateElement(FoodID, b.ToRect(*state.Food))
		if r.Scores != nil {
			r.Scores.SetScore(len(state.Snake.Body))
		}
	}
	return nil
}
