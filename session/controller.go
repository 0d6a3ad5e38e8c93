package session

import "sync"

// Controller supervises sessions, enforcing that at most one is live at a
// time. It owns the publisher that fans every session's states out to
// watchers.
type Controller struct {
	mu        sync.Mutex
	active    *Session
	publisher *Publisher
}

// NewController returns an idle controller.
func NewController() *Controller {
	return &Controller{publisher: NewPublisher()}
}

// Publisher returns the stream of states across all of the controller's
// sessions.
func (c *Controller) Publisher() *Publisher { return c.publisher }

// Start launches a fresh session bound to the surface in cfg. A session
// still running is abandoned first: its loop is stopped and its elements
// cleared before the new session draws its opening state.
func (c *Controller) Start(cfg Config) *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		c.active.Abandon()
	}
	c.active = newSession(cfg, c.publisher)
	return c.active
}

// Active returns the most recently started session, nil before the first
// Start. The session it returns may already be finished.
func (c *Controller) Active() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}
