package render

type layerEntry struct {
	layer    Layer
	priority RenderPriority
	index    int // registration order for stable sort
}

// Orchestrator composites registered layers onto a surface in priority order
type Orchestrator struct {
	layers   []layerEntry
	regCount int
}

func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		layers: make([]layerEntry, 0, 8),
	}
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (o *Orchestrator) Register(l Layer, priority RenderPriority) {
	entry := layerEntry{
		layer:    l,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.layers)
	for i, e := range o.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.layers = append(o.layers, layerEntry{})
	copy(o.layers[pos+1:], o.layers[pos:])
	o.layers[pos] = entry
}

// Len returns the number of registered layers
func (o *Orchestrator) Len() int {
	return len(o.layers)
}

// RenderFrame clears the surface and renders every visible layer
func (o *Orchestrator) RenderFrame(f Frame, s Surface) {
	s.Clear()

	for _, entry := range o.layers {
		if vt, ok := entry.layer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.layer.Render(f, s)
	}
}
