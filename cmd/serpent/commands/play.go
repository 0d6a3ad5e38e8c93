package commands

import (
	"context"
	"strconv"
	"time"

	termbox "github.com/nsf/termbox-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gridserpent/engine/api"
	"github.com/gridserpent/engine/game"
	"github.com/gridserpent/engine/score"
	"github.com/gridserpent/engine/session"
	"github.com/gridserpent/engine/term"
)

var (
	playPeriod = 100 * time.Millisecond
	playListen = ""
)

func init() {
	playCmd.Flags().StringVarP(&storeBackend, "backend", "b", storeBackend, "score store backend, as one of: [inmem, file, redis, sql]")
	playCmd.Flags().StringVarP(&storeBackendArgs, "backend-args", "a", storeBackendArgs, "options to pass to the backend being used")
	playCmd.Flags().DurationVar(&playPeriod, "period", playPeriod, "time between game ticks")
	playCmd.Flags().StringVar(&playListen, "api-listen", "", "also serve the api while playing, e.g. :3005")
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "play a game of serpent in the terminal",
	Run: func(*cobra.Command, []string) {
		playGame()
	},
}

func playGame() {
	store, closeStore := openStore()
	defer closeStore()

	ui, err := term.NewUI()
	if err != nil {
		log.WithError(err).Fatal("unable to take over the terminal")
	}
	defer ui.Close()

	ctrl := session.NewController()
	if playListen != "" {
		srv := api.New(playListen, ctrl, store)
		go func() {
			if err := srv.WaitForExit(); err != nil {
				log.WithError(err).Error("api server failed")
			}
		}()
	}

	gameOver := make(chan int, 1)
	cfg := session.Config{
		Surface:  ui,
		Scores:   ui,
		CellSize: 1,
		Period:   playPeriod,
		GameOver: func(score int) { gameOver <- score },
	}

	sess := ctrl.Start(cfg)
	events := pumpEvents()

	var (
		over       = false
		name       = ""
		finalScore = 0
	)
	for {
		select {
		case finalScore = <-gameOver:
			over = true
			name = ""
			ui.ShowGameOver(finalScore)

		case ev := <-events:
			if ev.Type == termbox.EventResize {
				ui.Refresh()
				continue
			}
			if ev.Type != termbox.EventKey {
				continue
			}

			if over {
				switch {
				case ev.Key == termbox.KeyEsc:
					sess.Abandon()
					return
				case ev.Key == termbox.KeyEnter:
					saveScore(store, name, finalScore)
					sess = ctrl.Start(cfg)
					over = false
				case ev.Key == termbox.KeyBackspace || ev.Key == termbox.KeyBackspace2:
					if r := []rune(name); len(r) > 0 {
						name = string(r[:len(r)-1])
						ui.SetPromptName(name)
					}
				case ev.Key == termbox.KeySpace:
					name += " "
					ui.SetPromptName(name)
				case ev.Ch != 0:
					name += string(ev.Ch)
					ui.SetPromptName(name)
				}
				continue
			}

			switch ev.Key {
			case termbox.KeyEsc:
				sess.Abandon()
				return
			case termbox.KeyArrowUp:
				sess.Input().Set(game.North)
			case termbox.KeyArrowDown:
				sess.Input().Set(game.South)
			case termbox.KeyArrowLeft:
				sess.Input().Set(game.West)
			case termbox.KeyArrowRight:
				sess.Input().Set(game.East)
			}
			if ev.Ch == 'q' {
				sess.Abandon()
				return
			}
		}
	}
}

// saveScore writes the final score under the entered name. An empty name
// skips the save.
func saveScore(store score.Store, name string, finalScore int) {
	if name == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Set(ctx, name, strconv.Itoa(finalScore)); err != nil {
		log.WithError(err).WithField("name", name).Error("unable to save score")
	}
}

func pumpEvents() <-chan termbox.Event {
	events := make(chan termbox.Event)
	go func(ev chan<- termbox.Event) {
		for {
			ev <- termbox.PollEvent()
		}
	}(events)
	return events
}
