package main

import (
	"flag"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gridserpent/engine/api"
	"github.com/gridserpent/engine/score"
	"github.com/gridserpent/engine/session"
)

func init() { rand.Seed(time.Now().Unix()) }

// Quick development boot: the score api on an in-memory store, no game.
// The full CLI lives in cmd/serpent.
func main() {
	var (
		apiAddr string
	)
	flag.StringVar(&apiAddr, "listen", ":3005", "api listen address")
	flag.Parse()

	srv := api.New(apiAddr, session.NewController(), score.InMemStore())
	log.Infof("api listening on %s", apiAddr)
	if err := srv.WaitForExit(); err != nil {
		log.Fatalf("api failed to serve on (%s): %v", apiAddr, err)
	}
}
