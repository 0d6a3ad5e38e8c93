package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/gridserpent/engine/api"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "dump the status of the game on a serpent api server",
	Run: func(*cobra.Command, []string) {
		status, err := fetchStatus()
		if err != nil {
			fmt.Println("error while getting status", err)
			return
		}
		if status == nil {
			fmt.Println("no game is running")
			return
		}
		spew.Dump(status)
	},
}

// fetchStatus asks the api server for the active game. It returns nil with
// no error when no game is running.
func fetchStatus() (*api.StatusResponse, error) {
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(fmt.Sprintf("%s/game", apiAddr))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	s := &api.StatusResponse{}
	if err := json.NewDecoder(resp.Body).Decode(s); err != nil {
		return nil, err
	}
	return s, nil
}
