package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiveByFive() *Board {
	return NewBoard(80, 80, 16)
}

func TestNewStateOpeningPosition(t *testing.T) {
	s := NewState(fiveByFive(), East)

	require.True(t, s.Alive)
	require.Equal(t, []Cell{{X: 2, Y: 2}, {X: 3, Y: 2}}, s.Snake.Body)
	assert.Equal(t, East, s.Snake.Heading)
	assert.Equal(t, s.Snake.Body, s.Evolution.Added)
	assert.Empty(t, s.Evolution.Removed)
	assert.Nil(t, s.Food)
	assert.Equal(t, 0, s.Turn)
}

func TestNextAdvancesOneCell(t *testing.T) {
	b := fiveByFive()
	s := NewState(b, East)

	next := Next(b, s, East)

	require.True(t, next.Alive)
	assert.Equal(t, []Cell{{X: 3, Y: 2}, {X: 4, Y: 2}}, next.Snake.Body)
	assert.Equal(t, East, next.Snake.Heading)
	assert.Equal(t, 1, next.Turn)
	require.NotNil(t, next.Food, "food spawns when absent")
}

func TestNextAcceptsPerpendicularTurn(t *testing.T) {
	b := fiveByFive()
	s := NewState(b, East)

	next := Next(b, s, North)

	require.True(t, next.Alive)
	assert.Equal(t, Cell{X: 3, Y: 1}, next.Snake.Head())
	assert.Equal(t, North, next.Snake.Heading)
}

func TestNextIgnoresOppositeTurn(t *testing.T) {
	b := fiveByFive()
	s := NewState(b, East)

	next := Next(b, s, West)

	require.True(t, next.Alive)
	assert.Equal(t, Cell{X: 4, Y: 2}, next.Snake.Head(), "keeps travelling east")
	assert.Equal(t, East, next.Snake.Heading)
}

func TestNextEvolutionIsTheMoveDelta(t *testing.T) {
	b := fiveByFive()
	s := NewState(b, East)

	next := Next(b, s, East)

	assert.Equal(t, []Cell{{X: 4, Y: 2}}, next.Evolution.Added)
	assert.Equal(t, []Cell{{X: 2, Y: 2}}, next.Evolution.Removed)
}

func TestNextGrowsOnFood(t *testing.T) {
	b := fiveByFive()
	food := Cell{X: 3, Y: 2}
	s := &State{
		Alive: true,
		Snake: Snake{Body: []Cell{{X: 1, Y: 2}, {X: 2, Y: 2}}, Heading: East},
		Food:  &food,
		Turn:  5,
	}

	next := Next(b, s, East)

	require.True(t, next.Alive)
	assert.Equal(t, []Cell{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}}, next.Snake.Body)
	assert.Equal(t, []Cell{{X: 3, Y: 2}}, next.Evolution.Added)
	assert.Empty(t, next.Evolution.Removed, "tail stays put on a growing move")
	require.NotNil(t, next.Food, "eaten food is replaced")
	assert.Equal(t, 6, next.Turn)
}

func TestNextLeavesFoodAloneWithoutEating(t *testing.T) {
	b := fiveByFive()
	food := Cell{X: 0, Y: 0}
	s := &State{
		Alive: true,
		Snake: Snake{Body: []Cell{{X: 1, Y: 2}, {X: 2, Y: 2}}, Heading: East},
		Food:  &food,
	}

	next := Next(b, s, East)

	require.NotNil(t, next.Food)
	assert.Equal(t, food, *next.Food)
}

func TestNextDiesAtTheWall(t *testing.T) {
	b := fiveByFive()
	s := NewState(b, East)

	s = Next(b, s, East)
	require.True(t, s.Alive)
	require.Equal(t, []Cell{{X: 3, Y: 2}, {X: 4, Y: 2}}, s.Snake.Body)

	dead := Next(b, s, East)

	require.False(t, dead.Alive)
	assert.Equal(t, DeathCauseWallCollision, dead.DeathCause)
	assert.Equal(t, s.Snake, dead.Snake, "snake is left exactly where it was")
	assert.Equal(t, s.Food, dead.Food)
	assert.Empty(t, dead.Evolution.Added)
	assert.Empty(t, dead.Evolution.Removed)
	assert.NotNil(t, dead.Evolution.Added)
	assert.Equal(t, 2, dead.Turn)
}

func TestNextDiesOnSelfCollision(t *testing.T) {
	b := fiveByFive()
	s := &State{
		Alive: true,
		Snake: Snake{
			Body:    []Cell{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 2}, {X: 2, Y: 2}},
			Heading: West,
		},
	}

	dead := Next(b, s, North)

	require.False(t, dead.Alive)
	assert.Equal(t, DeathCauseSelfCollision, dead.DeathCause)
	assert.Equal(t, s.Snake.Body, dead.Snake.Body)
}

func TestNextTailCellCountsAsCollision(t *testing.T) {
	b := fiveByFive()
	s := &State{
		Alive: true,
		Snake: Snake{
			Body:    []Cell{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 3}, {X: 2, Y: 3}},
			Heading: West,
		},
	}

	// The head moves onto the tail cell. The tail would vacate it this tick,
	// but collision is checked against the full pre-move body.
	dead := Next(b, s, North)

	require.False(t, dead.Alive)
	assert.Equal(t, DeathCauseSelfCollision, dead.DeathCause)
}

func TestNextFoodMayLandUnderTheSnake(t *testing.T) {
	// A 2x2 board fully occupied after eating: the replacement food has
	// nowhere else to go. Spawning does not exclude occupied cells.
	b := NewBoard(32, 32, 16)
	food := Cell{X: 0, Y: 1}
	s := &State{
		Alive: true,
		Snake: Snake{Body: []Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, Heading: South},
		Food:  &food,
	}

	next := Next(b, s, West)

	require.True(t, next.Alive)
	require.Len(t, next.Snake.Body, 4)
	require.NotNil(t, next.Food)
	assert.True(t, next.Snake.Contains(*next.Food))
}

func TestNextDoesNotMutatePrev(t *testing.T) {
	b := fiveByFive()
	food := Cell{X: 0, Y: 0}
	s := &State{
		Alive: true,
		Snake: Snake{Body: []Cell{{X: 1, Y: 2}, {X: 2, Y: 2}}, Heading: East},
		Evolution: Evolution{
			Added:   []Cell{{X: 2, Y: 2}},
			Removed: []Cell{{X: 0, Y: 2}},
		},
		Food: &food,
		Turn: 3,
	}
	foodBefore := Cell{X: 0, Y: 0}
	before := &State{
		Alive: true,
		Snake: Snake{Body: []Cell{{X: 1, Y: 2}, {X: 2, Y: 2}}, Heading: East},
		Evolution: Evolution{
			Added:   []Cell{{X: 2, Y: 2}},
			Removed: []Cell{{X: 0, Y: 2}},
		},
		Food: &foodBefore,
		Turn: 3,
	}

	_ = Next(b, s, North)

	require.Equal(t, before, s)
}
