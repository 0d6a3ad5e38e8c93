// Package session provides the actual running of games. It owns the per tick
// loop joining the sampled input heading with the rules transition, delivers
// every state to the renderer and the publisher, and supervises the rule that
// at most one session is ever live.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"

	"github.com/gridserpent/engine/game"
	"github.com/gridserpent/engine/render"
)

// DefaultPeriod is the wall clock time between ticks.
const DefaultPeriod = 100 * time.Millisecond

var (
	ticksProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "serpent",
		Subsystem: "session",
		Name:      "ticks_total",
		Help:      "Ticks processed across all sessions.",
	})
	gamesFinished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "serpent",
		Subsystem: "session",
		Name:      "games_total",
		Help:      "Finished games by cause.",
	}, []string{"cause"})
	finalLength = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "serpent",
		Subsystem: "session",
		Name:      "final_length",
		Help:      "Body length when the game ended.",
		Buckets:   prometheus.LinearBuckets(2, 4, 12),
	})
)

func init() {
	prometheus.MustRegister(ticksProcessed, gamesFinished, finalLength)
}

// Config assembles the collaborators for one session.
type Config struct {
	// Surface receives the rendered elements. Required.
	Surface render.Surface
	// Scores receives the running score. Optional.
	Scores render.ScoreSink
	// GameOver is called once with the final score, after the terminal state
	// has been rendered. It runs on the session goroutine and must not
	// block. Optional.
	GameOver func(score int)
	// Period is the tick interval, DefaultPeriod when zero.
	Period time.Duration
	// CellSize is the grid granularity in pixels, game.DefaultCellSize when
	// zero.
	CellSize int
}

// Session is a handle on one running game.
type Session struct {
	ID    string
	Board *game.Board

	surface render.Surface
	input   *HeadingCell
	cancel  context.CancelFunc
	done    chan struct{}

	mu   sync.Mutex
	last *game.State
}

func newSession(cfg Config, pub *Publisher) *Session {
	width, height := cfg.Surface.Bounds()
	s := &Session{
		ID:      uuid.NewV4().String(),
		Board:   game.NewBoard(width, height, cfg.CellSize),
		surface: cfg.Surface,
		input:   NewHeadingCell(game.DefaultHeading),
		done:    make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.run(ctx, cfg, pub)
	return s
}

// Input returns the cell the player's direction requests land in.
func (s *Session) Input() *HeadingCell { return s.input }

// Done is closed once the session stops producing states, whether the game
// ended or the session was abandoned.
func (s *Session) Done() <-chan struct{} { return s.done }

// Snapshot returns the most recently delivered state, nil before the first
// delivery.
func (s *Session) Snapshot() *game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Abandon stops the session and removes everything it drew, regardless of
// whether the game already ended. It blocks until the loop has exited, no
// state is delivered after it returns.
func (s *Session) Abandon() {
	s.cancel()
	<-s.done
	s.surface.Clear()
}

func (s *Session) run(ctx context.Context, cfg Config, pub *Publisher) {
	defer close(s.done)

	renderer := &render.Renderer{Surface: s.surface, Scores: cfg.Scores}

	state := game.NewState(s.Board, game.DefaultHeading)
	if err := s.deliver(renderer, pub, state); err != nil {
		gamesFinished.WithLabelValues("render-error").Inc()
		log.WithError(err).
			WithField("session", s.ID).
			Error("ending game due to fatal render error")
		return
	}

	period := cfg.Period
	if period == 0 {
		period = DefaultPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	log.WithFields(log.Fields{
		"session": s.ID,
		"width":   s.Board.Width,
		"height":  s.Board.Height,
		"period":  period,
	}).Info("session started")

	for {
		// Cancellation is checked before the tick is processed, so an
		// abandoned session delivers nothing further.
		select {
		case <-ctx.Done():
			gamesFinished.WithLabelValues("abandoned").Inc()
			log.WithField("session", s.ID).Info("session abandoned")
			return
		case <-ticker.C:
			next := game.Next(s.Board, state, s.input.Sample())
			ticksProcessed.Inc()
			log.WithFields(log.Fields{
				"session": s.ID,
				"turn":    next.Turn,
			}).Debug("tick")

			if err := s.deliver(renderer, pub, next); err != nil {
				gamesFinished.WithLabelValues("render-error").Inc()
				log.WithError(err).
					WithField("session", s.ID).
					Error("ending game due to fatal render error")
				return
			}

			if !next.Alive {
				final := len(next.Snake.Body)
				gamesFinished.WithLabelValues(next.DeathCause).Inc()
				finalLength.Observe(float64(final))
				log.WithFields(log.Fields{
					"session": s.ID,
					"turn":    next.Turn,
					"cause":   next.DeathCause,
					"score":   final,
				}).Info("game over")
				if cfg.GameOver != nil {
					cfg.GameOver(final)
				}
				return
			}
			state = next
		}
	}
}

// deliver renders the state, then commits it as the latest snapshot and
// broadcasts it. A render failure delivers nothing.
func (s *Session) deliver(r *render.Renderer, pub *Publisher, state *game.State) error {
	if err := r.Apply(s.Board, state); err != nil {
		return err
	}
	s.mu.Lock()
	s.last = state
	s.mu.Unlock()
	pub.Broadcast(state)
	return nil
}
