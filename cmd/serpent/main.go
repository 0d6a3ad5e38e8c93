package main

import (
	"math/rand"
	"time"

	"github.com/gridserpent/engine/cmd/serpent/commands"
)

func main() {
	rand.Seed(time.Now().UnixNano())
	commands.Execute()
}
