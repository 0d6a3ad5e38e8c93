package commands

import (
	"fmt"
	"math/rand"

	runewidth "github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"

	"github.com/gridserpent/engine/api"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault
	snakeColor   = termbox.ColorGreen
)

func renderFrame(board api.BoardResponse, frame api.Frame) error {
	if err := termbox.Clear(defaultColor, defaultColor); err != nil {
		return err
	}

	var (
		left   = 10
		top    = 3
		bottom = top + board.Height + 1
	)

	renderTitle(left, top, frame.Turn)
	renderBorder(board, top, bottom, left)
	renderSnake(left, top, frame.Body)
	renderFood(left, top, frame.Food)

	text := fmt.Sprintf("Length %d", len(frame.Body))
	if !frame.Alive {
		text = fmt.Sprintf("%s - %s", text, frame.DeathCause)
	}
	tbprint(board.Width+left+5, top+1, defaultColor, defaultColor, text)

	return termbox.Flush()
}

func renderSnake(left, top int, body []api.Coords) {
	for _, b := range body {
		termbox.SetCell(left+b.X, top+b.Y+1, ' ', snakeColor, snakeColor)
	}
}

func renderFood(left, top int, food *api.Coords) {
	if food == nil {
		return
	}
	termbox.SetCell(left+food.X, top+food.Y+1, getFoodEmoji(food.X, food.Y), defaultColor, bgColor)
}

var foods = map[string]rune{}

func getFoodEmoji(x, y int) rune {
	key := fmt.Sprintf("(%d, %d)", x, y)
	r, ok := foods[key]
	if !ok {
		r = randomFoodEmoji()
		foods[key] = r
	}
	return r
}

func randomFoodEmoji() rune {
	f := []rune{
		'🍒',
		'🍍',
		'🍑',
		'🍇',
		'🍏',
		'🍌',
		'🍫',
		'🍭',
		'🍕',
		'🍩',
		'🍗',
		'🍖',
		'🍬',
		'🍤',
		'🍪',
	}

	return f[rand.Intn(len(f))]
}

func renderBorder(board api.BoardResponse, top, bottom, left int) {
	for i := top + 1; i < bottom; i++ {
		termbox.SetCell(left-1, i, '│', defaultColor, bgColor)
		termbox.SetCell(left+board.Width, i, '│', defaultColor, bgColor)
	}

	termbox.SetCell(left-1, top, '┌', defaultColor, bgColor)
	termbox.SetCell(left-1, bottom, '└', defaultColor, bgColor)
	termbox.SetCell(left+board.Width, top, '┐', defaultColor, bgColor)
	termbox.SetCell(left+board.Width, bottom, '┘', defaultColor, bgColor)

	fill(left, top, board.Width, 1, termbox.Cell{Ch: '─'})
	fill(left, bottom, board.Width, 1, termbox.Cell{Ch: '─'})
}

func renderTitle(left, top, turn int) {
	tbprint(left, top-1, defaultColor, defaultColor, fmt.Sprintf("Serpent! - Turn %d", turn))
}

func fill(x, y, w, h int, cell termbox.Cell) {
	for ly := 0; ly < h; ly++ {
		for lx := 0; lx < w; lx++ {
			termbox.SetCell(x+lx, y+ly, cell.Ch, cell.Fg, cell.Bg)
		}
	}
}

func tbprint(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}
