package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gridserpent/engine/api"
	"github.com/gridserpent/engine/score"
)

type client struct {
	apiURL string
	client *http.Client
}

func (c *client) gameStatus() (*api.StatusResponse, error) {
	resp, err := c.client.Get(fmt.Sprintf("%s/game", c.apiURL))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	st := &api.StatusResponse{}
	if err := json.NewDecoder(resp.Body).Decode(st); err != nil {
		return nil, err
	}
	return st, nil
}

func (c *client) submitScore(name string, finalScore int) (int, error) {
	data, err := json.Marshal(api.SubmitScoreRequest{Name: name, Score: finalScore})
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Post(fmt.Sprintf("%s/scores", c.apiURL), "application/json", bytes.NewBuffer(data))
	if err != nil {
		return 0, err
	}
	if err := resp.Body.Close(); err != nil {
		return 0, err
	}
	return resp.StatusCode, nil
}

func (c *client) listScores() ([]score.Entry, error) {
	resp, err := c.client.Get(fmt.Sprintf("%s/scores", c.apiURL))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	entries := []score.Entry{}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// watchGame follows the game stream until a terminal frame or a normal
// close, returning every frame received.
func (c *client) watchGame() ([]api.Frame, error) {
	u := strings.Replace(c.apiURL, "http://", "ws://", 1) + "/socket"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	if err := conn.SetReadDeadline(time.Now().Add(30 * time.Second)); err != nil {
		return nil, err
	}

	frames := []api.Frame{}
	for {
		f := api.Frame{}
		if err := conn.ReadJSON(&f); err != nil {
			if strings.Contains(err.Error(), "close 1000 (normal)") {
				return frames, nil
			}
			return frames, err
		}
		frames = append(frames, f)
		if !f.Alive {
			return frames, nil
		}
	}
}
