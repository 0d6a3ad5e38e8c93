// Package api exposes the engine over HTTP: the leaderboard, a status
// snapshot of the live game, and a websocket stream of its states for
// spectators.
package api

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/netutil"
	"golang.org/x/time/rate"

	"github.com/gridserpent/engine/config"
	"github.com/gridserpent/engine/game"
	"github.com/gridserpent/engine/score"
	"github.com/gridserpent/engine/session"
)

// Server serves the engine's HTTP API.
type Server struct {
	hs       *http.Server
	control  *session.Controller
	store    score.Store
	limiter  *rate.Limiter
	upgrader websocket.Upgrader

	started chan struct{}
	port    int
}

// New will initialize a new Server.
func New(listen string, control *session.Controller, store score.Store) *Server {
	s := &Server{
		control: control,
		store:   store,
		limiter: rate.NewLimiter(config.SubmitRate, config.SubmitBurst),
		upgrader: websocket.Upgrader{
			// Spectators connect from anywhere, matching the CORS policy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		started: make(chan struct{}),
	}

	router := httprouter.New()
	router.GET("/scores", s.listScores)
	router.POST("/scores", s.submitScore)
	router.GET("/game", s.gameStatus)
	router.GET("/socket", s.socket)

	s.hs = &http.Server{
		Addr:    listen,
		Handler: cors.AllowAll().Handler(router),
	}
	return s
}

// WaitForExit listens and blocks until the server stops. The listener caps
// concurrent connections at config.MaxAPIConns.
func (s *Server) WaitForExit() error {
	lis, err := net.Listen("tcp", s.hs.Addr)
	if err != nil {
		return errors.Wrap(err, "api: listen failed")
	}
	s.port = lis.Addr().(*net.TCPAddr).Port
	close(s.started)

	log.WithField("listen", lis.Addr().String()).Info("serpent api listening")
	return s.hs.Serve(netutil.LimitListener(lis, config.MaxAPIConns))
}

// DialAddress will return a localhost address to reach the server. This is
// useful if the server will select it's own port.
func (s *Server) DialAddress() string {
	<-s.started
	return fmt.Sprintf("127.0.0.1:%d", s.port)
}

func (s *Server) listScores(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	entries, err := s.store.List(r.Context())
	if err != nil {
		log.WithError(err).Error("unable to list scores")
		writeError(w, http.StatusInternalServerError, "unable to list scores")
		return
	}
	writeJSON(w, http.StatusOK, score.Rank(entries))
}

func (s *Server) submitScore(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "too many submissions")
		return
	}

	req := SubmitScoreRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Score < 0 {
		writeError(w, http.StatusBadRequest, "score must not be negative")
		return
	}

	if err := s.store.Set(r.Context(), req.Name, strconv.Itoa(req.Score)); err != nil {
		log.WithError(err).WithField("name", req.Name).Error("unable to save score")
		writeError(w, http.StatusInternalServerError, "unable to save score")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) gameStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := s.control.Active()
	if sess == nil {
		writeError(w, http.StatusNotFound, "no game")
		return
	}
	state := sess.Snapshot()
	if state == nil {
		writeError(w, http.StatusNotFound, "no game")
		return
	}
	writeJSON(w, http.StatusOK, convertStatus(sess, state))
}

func (s *Server) socket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := s.control.Active()
	if sess == nil {
		writeError(w, http.StatusNotFound, "no game")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Info("websocket upgrade failed")
		return
	}
	defer conn.Close()

	states, cancel := s.control.Publisher().Subscribe()
	defer cancel()

	// Reads are discarded, the pump just notices when the peer goes away.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Catch the spectator up before streaming.
	if snap := sess.Snapshot(); snap != nil {
		if writeFrame(conn, snap) != nil {
			return
		}
		if !snap.Alive {
			closeNormally(conn)
			return
		}
	}

	for {
		select {
		case state := <-states:
			if writeFrame(conn, state) != nil {
				return
			}
			if !state.Alive {
				closeNormally(conn)
				return
			}
		case <-sess.Done():
			// Flush whatever is still buffered so the spectator sees how it
			// ended.
			for {
				select {
				case state := <-states:
					if writeFrame(conn, state) != nil {
						return
					}
					if !state.Alive {
						closeNormally(conn)
						return
					}
				default:
					return
				}
			}
		case <-clientGone:
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, state *game.State) error {
	return conn.WriteJSON(convertFrame(state))
}

func closeNormally(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over")
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
		log.WithError(err).Debug("unable to send websocket close")
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("unable to write response")
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
