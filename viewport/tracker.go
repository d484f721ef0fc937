// @lixen: #dev{feature[viewport(resize,listener)]}
package viewport

import (
	"fmt"
	"sort"
	"sync"
)

// Dimensions is the drawing surface size in scene pixels
type Dimensions struct {
	Width  int
	Height int
}

// Valid reports a drawable, non-empty surface
func (d Dimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// FromCells converts a terminal grid to scene pixels
// Each cell carries two vertically stacked half-block pixels, each ppc scene pixels square
func FromCells(cols, rows, ppc int) Dimensions {
	if ppc < 1 {
		ppc = 1
	}
	return Dimensions{Width: cols * ppc, Height: rows * 2 * ppc}
}

// Listener receives the new dimensions after a change
type Listener func(Dimensions)

// Tracker holds the current dimensions and notifies subscribers on change
type Tracker struct {
	mu        sync.Mutex
	dims      Dimensions
	nextID    int
	listeners map[int]Listener
}

func NewTracker(initial Dimensions) *Tracker {
	return &Tracker{
		dims:      initial,
		listeners: make(map[int]Listener),
	}
}

// Current returns the last accepted dimensions
func (t *Tracker) Current() Dimensions {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dims
}

// Subscribe registers fn and returns its detach function, safe to call more than once
func (t *Tracker) Subscribe(fn Listener) (unsubscribe func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.listeners, id)
			t.mu.Unlock()
		})
	}
}

// Listeners returns the number of attached listeners
func (t *Tracker) Listeners() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}

// Update records d and notifies listeners in subscription order
// Invalid or unchanged dimensions are ignored; returns true when listeners were notified
func (t *Tracker) Update(d Dimensions) bool {
	if !d.Valid() {
		return false
	}

	t.mu.Lock()
	if d == t.dims {
		t.mu.Unlock()
		return false
	}
	t.dims = d

	ids := make([]int, 0, len(t.listeners))
	for id := range t.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, len(ids))
	for i, id := range ids {
		fns[i] = t.listeners[id]
	}
	t.mu.Unlock()

	// Outside the lock so listeners may call back into the tracker
	for _, fn := range fns {
		fn(d)
	}
	return true
}
