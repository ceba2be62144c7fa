package terminal

import (
	"sort"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/playinput/internal/platform"
)

const (
	touchRune = 'o'
	menuText  = " playinput  edit mode  [alt] play  [ctrl-c] quit"
)

var (
	touchStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	menuStyle   = tcell.StyleDefault.Reverse(true)
	statusStyle = tcell.StyleDefault.Dim(true)
)

// Canvas is a touch emulator that draws every touch as a marker on the
// screen. It also shows toast messages on the bottom row.
type Canvas struct {
	mu      sync.Mutex
	term    *Terminal
	touches map[string]platform.Point
	status  string
}

var _ platform.TouchEmulator = (*Canvas)(nil)

func newCanvas(t *Terminal) *Canvas {
	return &Canvas{term: t, touches: make(map[string]platform.Point)}
}

func (c *Canvas) Press(id string, at platform.Point) {
	c.mu.Lock()
	c.touches[id] = at
	c.mu.Unlock()
	c.Draw()
}

func (c *Canvas) Move(id string, at platform.Point) {
	c.mu.Lock()
	if _, ok := c.touches[id]; ok {
		c.touches[id] = at
	}
	c.mu.Unlock()
	c.Draw()
}

func (c *Canvas) Release(id string) {
	c.mu.Lock()
	delete(c.touches, id)
	c.mu.Unlock()
	c.Draw()
}

// Touches returns the positions of the touches that are down, ordered by id.
func (c *Canvas) Touches() []platform.Point {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]string, 0, len(c.touches))
	for id := range c.touches {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]platform.Point, len(ids))
	for i, id := range ids {
		out[i] = c.touches[id]
	}
	return out
}

// Show sets the status line message.
func (c *Canvas) Show(msg string) {
	c.mu.Lock()
	c.status = msg
	c.mu.Unlock()
	c.Draw()
}

// Status returns the status line message.
func (c *Canvas) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Draw repaints the screen. It does nothing before the terminal starts.
func (c *Canvas) Draw() {
	if !c.term.isStarted() {
		return
	}
	menu := c.term.MenuBarVisible()

	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.term.screen
	w, h := s.Size()
	s.Clear()

	for _, p := range c.touches {
		x, y := int(p.X), int(p.Y)
		if x >= 0 && x < w && y >= 0 && y < h {
			s.SetContent(x, y, touchRune, nil, touchStyle)
		}
	}
	if menu {
		drawText(s, 0, w, menuText, menuStyle, true)
	}
	if c.status != "" && h > 1 {
		drawText(s, h-1, w, c.status, statusStyle, false)
	}
	s.Show()
}

func drawText(s tcell.Screen, row, width int, text string, style tcell.Style, fill bool) {
	x := 0
	for _, r := range text {
		if x >= width {
			return
		}
		s.SetContent(x, row, r, nil, style)
		x++
	}
	for ; fill && x < width; x++ {
		s.SetContent(x, row, ' ', nil, style)
	}
}
