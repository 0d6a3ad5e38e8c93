package commands

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gridserpent/engine/score"
)

func init() {
	scoresCmd.Flags().StringVarP(&storeBackend, "backend", "b", storeBackend, "score store backend, as one of: [inmem, file, redis, sql]")
	scoresCmd.Flags().StringVarP(&storeBackendArgs, "backend-args", "a", storeBackendArgs, "options to pass to the backend being used")
}

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "print the saved scores, best first",
	Run: func(*cobra.Command, []string) {
		printScores()
	},
}

func printScores() {
	store, closeStore := openStore()
	defer closeStore()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries, err := store.List(ctx)
	if err != nil {
		log.WithError(err).Fatal("unable to list scores")
	}
	if len(entries) == 0 {
		fmt.Println("no scores saved yet")
		return
	}

	for i, e := range score.Rank(entries) {
		fmt.Printf("%3d. %-24s %s\n", i+1, e.Name, e.Score)
	}
}
