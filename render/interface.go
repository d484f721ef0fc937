package render

// Layer is implemented by scene systems with visual output
type Layer interface {
	Render(f Frame, s Surface)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}
