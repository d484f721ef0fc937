package render

import (
	"image"
	"io"

	"github.com/fogleman/gg"
)

// Canvas is a Surface backed by a gg raster context
type Canvas struct {
	dc *gg.Context
}

// NewCanvas allocates a transparent canvas of width x height pixels
func NewCanvas(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Canvas{dc: gg.NewContext(width, height)}
}

func (c *Canvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

func (c *Canvas) Clear() {
	c.dc.SetRGBA(0, 0, 0, 0)
	c.dc.Clear()
}

func (c *Canvas) FillGradient(g Gradient) {
	w, h := float64(c.dc.Width()), float64(c.dc.Height())
	grad := gg.NewLinearGradient(0, 0, w, h)
	grad.AddColorStop(0, g.From.Alpha(1).Color())
	grad.AddColorStop(1, g.To.Alpha(1).Color())
	c.dc.SetFillStyle(grad)
	c.dc.DrawRectangle(0, 0, w, h)
	c.dc.Fill()
}

func (c *Canvas) FillCircle(x, y, r float64, col RGBA) {
	c.dc.SetColor(col.Color())
	c.dc.DrawCircle(x, y, r)
	c.dc.Fill()
}

func (c *Canvas) FillCircles(circles []Circle, col RGBA) {
	if len(circles) == 0 {
		return
	}
	c.dc.SetColor(col.Color())
	// One path, nonzero winding: the union is filled once
	for _, ci := range circles {
		c.dc.DrawCircle(ci.X, ci.Y, ci.R)
	}
	c.dc.Fill()
}

func (c *Canvas) FillGlow(x, y, inner, outer float64, col RGBA) {
	if outer <= inner {
		return
	}
	grad := gg.NewRadialGradient(x, y, inner, x, y, outer)
	grad.AddColorStop(0, col.Color())
	grad.AddColorStop(1, col.RGB.Alpha(0).Color())
	c.dc.SetFillStyle(grad)
	c.dc.DrawCircle(x, y, outer)
	c.dc.Fill()
}

func (c *Canvas) StrokeLine(x1, y1, x2, y2, width float64, col RGBA) {
	c.dc.SetColor(col.Color())
	c.dc.SetLineWidth(width)
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
}

// Image exposes the backing raster, premultiplied RGBA
func (c *Canvas) Image() *image.RGBA {
	img, _ := c.dc.Image().(*image.RGBA)
	return img
}

// EncodePNG writes the current frame
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}
