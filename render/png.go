package render

import (
	"errors"
	"fmt"
	"os"
)

// ErrNoFrame is returned when saving before any frame was presented
var ErrNoFrame = errors.New("no frame presented")

// PNGDisplay renders offscreen and keeps the last presented canvas
type PNGDisplay struct {
	canvas *Canvas
	last   *Canvas
	frames int
}

func NewPNGDisplay() *PNGDisplay {
	return &PNGDisplay{}
}

func (d *PNGDisplay) Acquire(width, height int) Surface {
	if d.canvas == nil {
		d.canvas = NewCanvas(width, height)
	} else if w, h := d.canvas.Size(); w != width || h != height {
		d.canvas = NewCanvas(width, height)
	}
	return d.canvas
}

func (d *PNGDisplay) Present(s Surface) error {
	c, ok := s.(*Canvas)
	if !ok {
		return fmt.Errorf("png display: unsupported surface %T", s)
	}
	d.last = c
	d.frames++
	return nil
}

// Frames returns the number of presented frames
func (d *PNGDisplay) Frames() int {
	return d.frames
}

// Save writes the last presented frame to path
func (d *PNGDisplay) Save(path string) error {
	if d.last == nil {
		return ErrNoFrame
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := d.last.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
