package commands

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	termbox "github.com/nsf/termbox-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gridserpent/engine/api"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "watch the game running on a serpent api server",
	Run: func(*cobra.Command, []string) {
		watchGame()
	},
}

func watchGame() {
	status, err := fetchStatus()
	if err != nil {
		fmt.Println("error while getting status", err)
		return
	}
	if status == nil {
		fmt.Println("no game is running")
		return
	}

	u := url.URL{Scheme: "ws", Host: strings.Replace(apiAddr, "http://", "", 1), Path: "/socket"}
	log.WithField("url", u.String()).Info("connecting to game stream")

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.WithError(err).Fatal("unable to dial game stream")
	}
	defer c.Close()
	frames := streamFrames(c)

	if err := termbox.Init(); err != nil {
		panic(err)
	}
	defer termbox.Close()

	events := pumpEvents()
	for {
		select {
		case f, ok := <-frames:
			if !ok {
				tbprint(0, 0, defaultColor, defaultColor, "Press any key to exit...")
				if err := termbox.Flush(); err != nil {
					log.WithError(err).Error("unable to flush terminal")
				}
				<-events
				return
			}
			if err := renderFrame(status.Board, f); err != nil {
				panic(err)
			}
		case ev := <-events:
			if ev.Type == termbox.EventKey && (ev.Key == termbox.KeyEsc || ev.Ch == 'q') {
				return
			}
		}
	}
}

func streamFrames(c *websocket.Conn) <-chan api.Frame {
	frames := make(chan api.Frame)
	go func() {
		defer close(frames)
		for {
			f := api.Frame{}
			if err := c.ReadJSON(&f); err != nil {
				if !strings.Contains(err.Error(), "close 1000 (normal)") {
					log.WithError(err).Warn("game stream closed")
				}
				return
			}
			frames <- f
		}
	}()
	return frames
}
