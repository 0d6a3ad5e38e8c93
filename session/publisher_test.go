package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridserpent/engine/config"
	"github.com/gridserpent/engine/game"
)

func TestPublisherFanOut(t *testing.T) {
	p := NewPublisher()
	a, cancelA := p.Subscribe()
	b, cancelB := p.Subscribe()
	defer cancelA()
	defer cancelB()

	state := &game.State{Turn: 7}
	p.Broadcast(state)

	require.Equal(t, state, <-a)
	require.Equal(t, state, <-b)
}

func TestPublisherDropsForSlowSubscribers(t *testing.T) {
	p := NewPublisher()
	sub, cancel := p.Subscribe()
	defer cancel()

	// Never drained: broadcasts past the buffer are dropped instead of
	// blocking.
	for i := 0; i < config.StreamBuffer+5; i++ {
		p.Broadcast(&game.State{Turn: i})
	}

	assert.Equal(t, config.StreamBuffer, len(sub))
	assert.Equal(t, 0, (<-sub).Turn, "oldest states are the ones kept")
}

func TestPublisherCancelStopsDelivery(t *testing.T) {
	p := NewPublisher()
	sub, cancel := p.Subscribe()

	p.Broadcast(&game.State{Turn: 1})
	cancel()
	cancel() // safe to call twice

	// The channel is closed, drains its buffer, then reports closed.
	s, ok := <-sub
	require.True(t, ok)
	require.Equal(t, 1, s.Turn)
	_, ok = <-sub
	require.False(t, ok)

	// Broadcasting with no subscribers left does nothing.
	p.Broadcast(&game.State{Turn: 2})
}
