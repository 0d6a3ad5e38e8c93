package session

import (
	"sync"

	"github.com/gridserpent/engine/config"
	"github.com/gridserpent/engine/game"
)

// Publisher fans delivered states out to subscribers. Delivery is best
// effort: a subscriber that stops draining its channel loses states rather
// than stalling the game loop.
type Publisher struct {
	mu   sync.Mutex
	subs map[int]chan *game.State
	next int
}

// NewPublisher returns an empty publisher.
func NewPublisher() *Publisher {
	return &Publisher{subs: map[int]chan *game.State{}}
}

// Subscribe registers a watcher. The returned cancel func closes the channel
// and must be called once the watcher is done with it.
func (p *Publisher) Subscribe() (<-chan *game.State, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.next
	p.next++
	ch := make(chan *game.State, config.StreamBuffer)
	p.subs[id] = ch

	cancel := func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if sub, ok := p.subs[id]; ok {
			delete(p.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Broadcast delivers the state to every subscriber with buffer room.
func (p *Publisher) Broadcast(state *game.State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, sub := range p.subs {
		select {
		case sub <- state:
		default:
		}
	}
}
