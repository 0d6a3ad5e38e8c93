package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridserpent/engine/game"
	"github.com/gridserpent/engine/render"
)

type fakeSurface struct {
	mu           sync.Mutex
	width        int
	height       int
	elements     map[string]game.Rect
	creates      int
	clears       int
	failRemovals bool
}

func newFakeSurface(width, height int) *fakeSurface {
	return &fakeSurface{
		width:    width,
		height:   height,
		elements: map[string]game.Rect{},
	}
}

func (f *fakeSurface) Bounds() (int, int) { return f.width, f.height }

func (f *fakeSurface) CreateElement(id string, r game.Rect) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	f.elements[id] = r
}

func (f *fakeSurface) FindElement(id string) (game.Rect, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.elements[id]
	return r, ok
}

func (f *fakeSurface) RemoveElement(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRemovals {
		return render.ErrNoElement
	}
	if _, ok := f.elements[id]; !ok {
		return render.ErrNoElement
	}
	delete(f.elements, id)
	return nil
}

func (f *fakeSurface) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.elements = map[string]game.Rect{}
}

func (f *fakeSurface) elementCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.elements)
}

func (f *fakeSurface) clearCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clears
}

func waitState(t *testing.T, states <-chan *game.State) *game.State {
	t.Helper()
	select {
	case s := <-states:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a state")
		return nil
	}
}

func waitDone(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the session to finish")
	}
}

func drain(states <-chan *game.State) []*game.State {
	var out []*game.State
	for {
		select {
		case s := <-states:
			out = append(out, s)
		default:
			return out
		}
	}
}

func TestSessionDeliversOpeningStateBeforeFirstTick(t *testing.T) {
	ctrl := NewController()
	states, cancel := ctrl.Publisher().Subscribe()
	defer cancel()

	surface := newFakeSurface(80, 80)
	sess := ctrl.Start(Config{Surface: surface, Period: time.Hour})
	defer sess.Abandon()

	first := waitState(t, states)
	require.Equal(t, 0, first.Turn)
	require.True(t, first.Alive)
	assert.Equal(t, []game.Cell{{X: 2, Y: 2}, {X: 3, Y: 2}}, first.Snake.Body)
	assert.Equal(t, first.Snake.Body, first.Evolution.Added)
	assert.Equal(t, 2, surface.elementCount(), "opening position drawn")
}

func TestSessionRunsToGameOver(t *testing.T) {
	ctrl := NewController()
	states, cancel := ctrl.Publisher().Subscribe()
	defer cancel()

	over := make(chan int, 1)
	surface := newFakeSurface(80, 80)
	sess := ctrl.Start(Config{
		Surface:  surface,
		Period:   time.Millisecond,
		GameOver: func(score int) { over <- score },
	})
	waitDone(t, sess)

	select {
	case score := <-over:
		assert.Equal(t, 2, score)
	case <-time.After(time.Second):
		t.Fatal("game over notifier never called")
	}

	all := drain(states)
	require.NotEmpty(t, all)

	// Left to its own devices the snake crosses the 5x5 board and dies at
	// the east wall on turn 2.
	terminal := all[len(all)-1]
	require.False(t, terminal.Alive)
	assert.Equal(t, game.DeathCauseWallCollision, terminal.DeathCause)
	assert.Equal(t, []game.Cell{{X: 3, Y: 2}, {X: 4, Y: 2}}, terminal.Snake.Body)
	assert.Equal(t, 2, terminal.Turn)

	terminals := 0
	for i, s := range all {
		assert.Equal(t, i, s.Turn, "states arrive in tick order")
		if !s.Alive {
			terminals++
		}
	}
	assert.Equal(t, 1, terminals, "the terminal state is delivered exactly once")

	snap := sess.Snapshot()
	require.NotNil(t, snap)
	assert.False(t, snap.Alive)
}

func TestSessionSamplesLatestInput(t *testing.T) {
	ctrl := NewController()
	surface := newFakeSurface(80, 80)
	sess := ctrl.Start(Config{Surface: surface, Period: 20 * time.Millisecond})

	// Two requests land before the first tick, only the second is seen.
	sess.Input().Set(game.South)
	sess.Input().Set(game.North)

	waitDone(t, sess)

	terminal := sess.Snapshot()
	require.NotNil(t, terminal)
	require.False(t, terminal.Alive)
	assert.Equal(t, game.North, terminal.Snake.Heading)
	assert.Equal(t, game.Cell{X: 3, Y: 0}, terminal.Snake.Head(), "died heading north, not south")
	assert.Equal(t, game.DeathCauseWallCollision, terminal.DeathCause)
}

func TestSessionAbandonStopsAndClears(t *testing.T) {
	ctrl := NewController()
	states, cancel := ctrl.Publisher().Subscribe()
	defer cancel()

	surface := newFakeSurface(80, 80)
	sess := ctrl.Start(Config{Surface: surface, Period: time.Hour})

	first := waitState(t, states)
	require.Equal(t, 0, first.Turn)

	sess.Abandon()

	waitDone(t, sess)
	assert.Equal(t, 0, surface.elementCount(), "abandon removes everything it drew")
	assert.Empty(t, drain(states), "no states delivered after abandon returns")
}

func TestControllerReplacesActiveSession(t *testing.T) {
	ctrl := NewController()
	states, cancel := ctrl.Publisher().Subscribe()
	defer cancel()

	surface := newFakeSurface(80, 80)
	first := ctrl.Start(Config{Surface: surface, Period: time.Hour})
	opening := waitState(t, states)
	require.Equal(t, 0, opening.Turn)

	second := ctrl.Start(Config{Surface: surface, Period: time.Hour})
	defer second.Abandon()

	select {
	case <-first.Done():
	default:
		t.Fatal("starting a new session must abandon the old one first")
	}

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, second, ctrl.Active())
	assert.Equal(t, 1, surface.clearCount(), "old elements cleared before the new opening")

	opening = waitState(t, states)
	require.Equal(t, 0, opening.Turn)
	assert.Equal(t, 2, surface.elementCount())
}

func TestSessionEndsOnRenderError(t *testing.T) {
	ctrl := NewController()
	surface := newFakeSurface(80, 80)
	surface.failRemovals = true

	sess := ctrl.Start(Config{Surface: surface, Period: time.Millisecond})
	waitDone(t, sess)

	// The opening state has no removals and renders fine, the first tick
	// does not survive its failed removal.
	snap := sess.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, 0, snap.Turn)
	assert.True(t, snap.Alive)
}
