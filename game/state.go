package game

// Death causes reported on a terminal state.
const (
	DeathCauseWallCollision = "wall-collision"
	DeathCauseSelfCollision = "self-collision"
)

// Evolution is the visual delta between two consecutive states. A renderer
// that applies Added and Removed to the picture of the previous state ends up
// with the picture of this one, no full repaint needed.
type Evolution struct {
	Added   []Cell `json:"added"`
	Removed []Cell `json:"removed"`
}

// State is one frame of a game. States are immutable once produced, each tick
// replaces the previous state wholesale.
type State struct {
	Alive      bool      `json:"alive"`
	Snake      Snake     `json:"snake"`
	Evolution  Evolution `json:"evolution"`
	Food       *Cell     `json:"food,omitempty"`
	Turn       int       `json:"turn"`
	DeathCause string    `json:"deathCause,omitempty"`
}

// NewState returns the state a session starts from: a two cell snake at the
// centre of the board travelling along h, no food yet. The whole body is
// listed in Evolution.Added so that applying the delta to an empty surface
// paints the opening position.
func NewState(b *Board, h Heading) *State {
	body := b.StartSnake(InitialSnakeSize, h)
	return &State{
		Alive: true,
		Snake: Snake{Body: body, Heading: h},
		Evolution: Evolution{
			Added:   append([]Cell{}, body...),
			Removed: []Cell{},
		},
	}
}
