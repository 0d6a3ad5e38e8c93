package api

import (
	"github.com/gridserpent/engine/game"
	"github.com/gridserpent/engine/session"
)

// Coords is the wire form of a board cell.
type Coords struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BoardResponse describes the grid a game is played on.
type BoardResponse struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	CellSize int `json:"cellSize"`
}

// StatusResponse is a point in time summary of the active game.
type StatusResponse struct {
	ID         string        `json:"id"`
	Board      BoardResponse `json:"board"`
	Turn       int           `json:"turn"`
	Alive      bool          `json:"alive"`
	Length     int           `json:"length"`
	DeathCause string        `json:"deathCause,omitempty"`
}

// Frame is the wire form of one delivered state. It carries the full body as
// well as the evolution delta, so watchers can join mid-game.
type Frame struct {
	Turn       int      `json:"turn"`
	Alive      bool     `json:"alive"`
	Heading    string   `json:"heading"`
	Body       []Coords `json:"body"`
	Food       *Coords  `json:"food,omitempty"`
	Added      []Coords `json:"added"`
	Removed    []Coords `json:"removed"`
	DeathCause string   `json:"deathCause,omitempty"`
}

// SubmitScoreRequest is a leaderboard submission.
type SubmitScoreRequest struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func convertCells(cells []game.Cell) []Coords {
	coords := []Coords{}
	for _, c := range cells {
		coords = append(coords, Coords{X: c.X, Y: c.Y})
	}
	return coords
}

func convertFrame(state *game.State) Frame {
	f := Frame{
		Turn:       state.Turn,
		Alive:      state.Alive,
		Heading:    state.Snake.Heading.String(),
		Body:       convertCells(state.Snake.Body),
		Added:      convertCells(state.Evolution.Added),
		Removed:    convertCells(state.Evolution.Removed),
		DeathCause: state.DeathCause,
	}
	if state.Food != nil {
		f.Food = &Coords{X: state.Food.X, Y: state.Food.Y}
	}
	return f
}

func convertStatus(sess *session.Session, state *game.State) StatusResponse {
	return StatusResponse{
		ID: sess.ID,
		Board: BoardResponse{
			Width:    sess.Board.Width,
			Height:   sess.Board.Height,
			CellSize: sess.Board.CellSize,
		},
		Turn:       state.Turn,
		Alive:      state.Alive,
		Length:     len(state.Snake.Body),
		DeathCause: state.DeathCause,
	}
}
