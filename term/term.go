// Package term draws the game on the local terminal with termbox.
package term

import (
	"fmt"
	"math/rand"
	"sync"

	runewidth "github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/gridserpent/engine/game"
	"github.com/gridserpent/engine/render"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault
	snakeColor   = termbox.ColorGreen

	marginLeft = 2
	marginTop  = 3

	maxBoardWidth  = 40
	maxBoardHeight = 20
)

// UI owns the terminal. It is the drawing surface and score readout for a
// session, plus the end of game form. Methods are safe for concurrent use,
// the session loop paints from its own goroutine.
type UI struct {
	mu       sync.Mutex
	width    int
	height   int
	elements map[string]game.Rect
	score    int

	over       bool
	finalScore int
	name       string
}

// NewUI takes over the terminal until Close is called. The playing field is
// sized from the terminal, capped at maxBoardWidth by maxBoardHeight.
func NewUI() (*UI, error) {
	if err := termbox.Init(); err != nil {
		return nil, errors.Wrap(err, "term: unable to initialize terminal")
	}
	w, h := termbox.Size()
	u := &UI{
		width:    clamp(w-marginLeft-1, 0, maxBoardWidth),
		height:   clamp(h-marginTop-1, 0, maxBoardHeight),
		elements: map[string]game.Rect{},
	}
	u.repaint()
	return u, nil
}

// Close releases the terminal.
func (u *UI) Close() { termbox.Close() }

// Bounds reports the size of the playing field in terminal cells. Sessions
// drawing on a UI should use CellSize 1 so board cells map onto them
// directly.
func (u *UI) Bounds() (int, int) { return u.width, u.height }

// CreateElement draws the element, replacing any element with the same
// identity.
func (u *UI) CreateElement(id string, r game.Rect) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.elements[id] = r
	u.repaint()
}

// FindElement returns the element's rect if the identity is present.
func (u *UI) FindElement(id string) (game.Rect, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	r, ok := u.elements[id]
	return r, ok
}

// RemoveElement erases the element with the given identity.
func (u *UI) RemoveElement(id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.elements[id]; !ok {
		return render.ErrNoElement
	}
	delete(u.elements, id)
	u.repaint()
	return nil
}

// Clear removes every element. It also dismisses the end of game form, the
// next session owns the terminal after this.
func (u *UI) Clear() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.elements = map[string]game.Rect{}
	u.over = false
	u.name = ""
	u.repaint()
}

// SetScore updates the score readout above the board.
func (u *UI) SetScore(score int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.score = score
	u.repaint()
}

// ShowGameOver switches the terminal to the end of game form.
func (u *UI) ShowGameOver(score int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.over = true
	u.finalScore = score
	u.name = ""
	u.repaint()
}

// SetPromptName updates the name line of the end of game form.
func (u *UI) SetPromptName(name string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.name = name
	u.repaint()
}

// Refresh repaints the whole terminal, for resize events.
func (u *UI) Refresh() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.repaint()
}

func (u *UI) repaint() {
	if err := termbox.Clear(defaultColor, bgColor); err != nil {
		log.WithError(err).Error("unable to clear terminal")
		return
	}

	tbprint(marginLeft-1, 0, defaultColor, bgColor, "Serpent!")
	tbprint(marginLeft-1, 1, defaultColor, bgColor, fmt.Sprintf("Score: %d", u.score))
	u.paintBorder()

	for id, r := range u.elements {
		if id == render.FoodID {
			continue
		}
		fill(marginLeft+r.X, marginTop+r.Y, r.Width, r.Height, termbox.Cell{Ch: ' ', Fg: snakeColor, Bg: snakeColor})
	}
	if r, ok := u.elements[render.FoodID]; ok {
		termbox.SetCell(marginLeft+r.X, marginTop+r.Y, foodRune(r.X, r.Y), defaultColor, bgColor)
	}

	if u.over {
		mid := marginTop + u.height/2
		tbprint(marginLeft+1, mid-2, defaultColor, bgColor, fmt.Sprintf("Game over! Final score: %d", u.finalScore))
		tbprint(marginLeft+1, mid-1, defaultColor, bgColor, "Type a name and press Enter to save it.")
		tbprint(marginLeft+1, mid, defaultColor, bgColor, "Press Esc to skip.")
		tbprint(marginLeft+1, mid+1, defaultColor, bgColor, fmt.Sprintf("Name: %s_", u.name))
	}

	if err := termbox.Flush(); err != nil {
		log.WithError(err).Error("unable to flush terminal")
	}
}

func (u *UI) paintBorder() {
	var (
		left   = marginLeft - 1
		right  = marginLeft + u.width
		top    = marginTop - 1
		bottom = marginTop + u.height
	)

	for i := top + 1; i < bottom; i++ {
		termbox.SetCell(left, i, '│', defaultColor, bgColor)
		termbox.SetCell(right, i, '│', defaultColor, bgColor)
	}

	termbox.SetCell(left, top, '┌', defaultColor, bgColor)
	termbox.SetCell(left, bottom, '└', defaultColor, bgColor)
	termbox.SetCell(right, top, '┐', defaultColor, bgColor)
	termbox.SetCell(right, bottom, '┘', defaultColor, bgColor)

	fill(marginLeft, top, u.width, 1, termbox.Cell{Ch: '─'})
	fill(marginLeft, bottom, u.width, 1, termbox.Cell{Ch: '─'})
}

var foods = map[string]rune{}

func foodRune(x, y int) rune {
	key := fmt.Sprintf("(%d, %d)", x, y)
	r, ok := foods[key]
	if !ok {
		r = randomFoodRune()
		foods[key] = r
	}
	return r
}

func randomFoodRune() rune {
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

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
