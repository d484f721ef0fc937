// @lixen: #dev{feature[terminal(display,input)]}
package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wxscene/constants"
	"github.com/lixenwraith/wxscene/core"
	"github.com/lixenwraith/wxscene/render"
	"github.com/lixenwraith/wxscene/viewport"
)

// halfBlock carries the top pixel in the foreground and the bottom pixel in the background
const halfBlock = '▀'

// EventKind classifies host events forwarded to the run loop
type EventKind uint8

const (
	EventResize EventKind = iota
	EventQuit
)

// Event is a translated terminal event
type Event struct {
	Kind EventKind
	Dims viewport.Dimensions
}

// Screen presents scene frames on a tcell screen as half-block cells
// Implements render.Display
type Screen struct {
	mu     sync.Mutex
	screen tcell.Screen
	ppc    int
	canvas *render.Canvas
	closed bool

	status     string
	showStatus bool

	events   chan Event
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New initializes the controlling terminal
func New(pixelsPerCell int) (*Screen, error) {
	sc, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := sc.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(sc, pixelsPerCell), nil
}

// NewWithScreen wraps an initialized tcell screen, used with simulation screens in tests
func NewWithScreen(sc tcell.Screen, pixelsPerCell int) *Screen {
	if pixelsPerCell < 1 {
		pixelsPerCell = 1
	}
	if pixelsPerCell > constants.MaxPixelsPerCell {
		pixelsPerCell = constants.MaxPixelsPerCell
	}
	sc.HideCursor()
	sc.Clear()
	return &Screen{
		screen:   sc,
		ppc:      pixelsPerCell,
		events:   make(chan Event, constants.EventChannelSize),
		stopChan: make(chan struct{}),
	}
}

// Dimensions returns the scene pixel size of the current terminal grid
func (s *Screen) Dimensions() viewport.Dimensions {
	cols, rows := s.screen.Size()
	return viewport.FromCells(cols, rows, s.ppc)
}

// PixelsPerCell returns the scene pixels per cell edge
func (s *Screen) PixelsPerCell() int {
	return s.ppc
}

// Events delivers resize and quit events once Start has been called
func (s *Screen) Events() <-chan Event {
	return s.events
}

// Start begins polling terminal input
func (s *Screen) Start() {
	s.wg.Add(1)
	core.Go(s.pollLoop)
}

func (s *Screen) pollLoop() {
	defer s.wg.Done()
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		out, ok := s.translate(ev)
		if !ok {
			continue
		}
		select {
		case s.events <- out:
		case <-s.stopChan:
			return
		}
	}
}

// translate maps a tcell event to a host event, handling local keys in place
func (s *Screen) translate(ev tcell.Event) (Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
		return Event{Kind: EventResize, Dims: s.Dimensions()}, true
	case *tcell.EventKey:
		switch keyAction(ev.Key(), ev.Rune()) {
		case actionQuit:
			return Event{Kind: EventQuit}, true
		case actionToggleStatus:
			s.ToggleStatus()
		}
	}
	return Event{}, false
}

type action uint8

const (
	actionNone action = iota
	actionQuit
	actionToggleStatus
)

func keyAction(key tcell.Key, r rune) action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return actionQuit
		case 's', 'S':
			return actionToggleStatus
		}
	}
	return actionNone
}

// SetStatus replaces the overlay text shown on the top row
func (s *Screen) SetStatus(text string) {
	s.mu.Lock()
	s.status = text
	s.mu.Unlock()
}

// ToggleStatus flips overlay visibility and returns the new state
func (s *Screen) ToggleStatus() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showStatus = !s.showStatus
	return s.showStatus
}

// Acquire returns the offscreen canvas, nil after Fini
func (s *Screen) Acquire(width, height int) render.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if s.canvas == nil {
		s.canvas = render.NewCanvas(width, height)
	} else if w, h := s.canvas.Size(); w != width || h != height {
		s.canvas = render.NewCanvas(width, height)
	}
	return s.canvas
}

// Present downsamples the canvas into half-block cells and shows them
func (s *Screen) Present(surf render.Surface) error {
	c, ok := surf.(*render.Canvas)
	if !ok {
		return fmt.Errorf("terminal: unsupported surface %T", surf)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	img := c.Image()
	bounds := img.Bounds()
	cols, rows := s.screen.Size()
	ppc := s.ppc

	for cy := 0; cy < rows; cy++ {
		top := cy * 2 * ppc
		if top >= bounds.Dy() {
			break
		}
		for cx := 0; cx < cols; cx++ {
			left := cx * ppc
			if left >= bounds.Dx() {
				break
			}
			fg := averageBlock(img.Pix, img.Stride, bounds.Dx(), bounds.Dy(), left, top, ppc)
			bg := averageBlock(img.Pix, img.Stride, bounds.Dx(), bounds.Dy(), left, top+ppc, ppc)
			style := tcell.StyleDefault.Foreground(toColor(fg)).Background(toColor(bg))
			s.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}

	if s.showStatus && s.status != "" {
		s.drawStatusLocked(cols)
	}

	s.screen.Show()
	return nil
}

// drawStatusLocked writes the overlay over a darkened copy of the scene row
func (s *Screen) drawStatusLocked(cols int) {
	x := 0
	for _, r := range " " + s.status + " " {
		if x >= cols {
			break
		}
		_, _, under, _ := s.screen.GetContent(x, 0)
		_, bg, _ := under.Decompose()
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(toColor(dimmed(bg)))
		s.screen.SetContent(x, 0, r, nil, style)
		x++
	}
}

func dimmed(c tcell.Color) render.RGB {
	r, g, b := c.RGB()
	if r < 0 {
		return render.RGBBlack
	}
	return render.Blend(render.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, render.RGBBlack, constants.StatusDimAlpha)
}

// averageBlock averages a size x size pixel block of premultiplied RGBA
// Premultiplied values are already composited over black, so alpha is dropped
func averageBlock(pix []uint8, stride, w, h, x0, y0, size int) render.RGB {
	var r, g, b, n int
	for y := y0; y < y0+size && y < h; y++ {
		row := y * stride
		for x := x0; x < x0+size && x < w; x++ {
			i := row + x*4
			r += int(pix[i])
			g += int(pix[i+1])
			b += int(pix[i+2])
			n++
		}
	}
	if n == 0 {
		return render.RGBBlack
	}
	return render.RGB{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
}

func toColor(c render.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Fini restores the terminal, Acquire returns nil afterwards
func (s *Screen) Fini() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		close(s.stopChan)
		s.screen.Fini()
		s.wg.Wait()
	})
}
