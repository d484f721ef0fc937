package render

// Circle is one lobe of a compound silhouette
type Circle struct {
	X, Y, R float64
}

// Gradient is a two-stop linear gradient from the top-left to the bottom-right corner
type Gradient struct {
	From, To RGB
}

// Surface is the drawing target of one frame, in scene pixels
// Implementations are not safe for concurrent use
type Surface interface {
	Size() (width, height int)

	// Clear resets every pixel to transparent
	Clear()

	// FillGradient paints the whole surface
	FillGradient(g Gradient)

	// FillCircle paints a solid disc
	FillCircle(x, y, r float64, c RGBA)

	// FillCircles paints the union of circles once, so overlaps do not stack alpha
	FillCircles(circles []Circle, c RGBA)

	// FillGlow paints a radial falloff from inner (at c alpha) to outer (transparent)
	FillGlow(x, y, inner, outer float64, c RGBA)

	// StrokeLine draws a round-capped segment
	StrokeLine(x1, y1, x2, y2, width float64, c RGBA)
}

// Display hands out surfaces and presents finished frames
type Display interface {
	// Acquire returns a cleared-or-stale surface of the given size, nil when not attached
	Acquire(width, height int) Surface

	// Present shows a finished frame
	Present(s Surface) error
}
