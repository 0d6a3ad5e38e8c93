package game

// Next advances the game by one tick. It is a pure function of the previous
// state and the heading sampled from the player at the start of the tick:
// given the same inputs and the same food rolls it always produces the same
// state, and it never mutates prev.
//
// The sampled heading is ignored when it points opposite to the direction the
// snake last travelled in. The snake then dies if the next head cell is off
// the board or already part of the body, otherwise it advances, growing by
// one cell when the move lands on food.
func Next(b *Board, prev *State, sampled Heading) *State {
	heading := sampled
	if Opposite(prev.Snake.Heading, sampled) {
		heading = prev.Snake.Heading
	}
	newHead := prev.Snake.Head().Next(heading)

	if !b.IsWithinBounds(newHead) {
		return died(prev, DeathCauseWallCollision)
	}
	if prev.Snake.Contains(newHead) {
		return died(prev, DeathCauseSelfCollision)
	}

	didEat := prev.Food != nil && *prev.Food == newHead

	var body []Cell
	removed := []Cell{}
	if didEat {
		body = append(append([]Cell{}, prev.Snake.Body...), newHead)
	} else {
		body = append(append([]Cell{}, prev.Snake.Body[1:]...), newHead)
		removed = []Cell{prev.Snake.Tail()}
	}

	food := prev.Food
	if didEat || food == nil {
		c := b.RandomCell()
		food = &c
	}

	return &State{
		Alive: true,
		Snake: Snake{Body: body, Heading: heading},
		Evolution: Evolution{
			Added:   []Cell{newHead},
			Removed: removed,
		},
		Food: food,
		Turn: prev.Turn + 1,
	}
}

// died returns the terminal state: the board is left exactly as it was, the
// snake and food unchanged and the evolution empty.
func died(prev *State, cause string) *State {
	return &State{
		Alive:      false,
		Snake:      prev.Snake,
		Evolution:  Evolution{Added: []Cell{}, Removed: []Cell{}},
		Food:       prev.Food,
		Turn:       prev.Turn + 1,
		DeathCause: cause,
	}
}
