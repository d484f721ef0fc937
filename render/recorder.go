package render

// OpKind identifies a recorded draw call
type OpKind uint8

const (
	OpClear OpKind = iota
	OpGradient
	OpCircle
	OpCircles
	OpGlow
	OpLine
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpGradient:
		return "gradient"
	case OpCircle:
		return "circle"
	case OpCircles:
		return "circles"
	case OpGlow:
		return "glow"
	case OpLine:
		return "line"
	default:
		return "unknown"
	}
}

// Op is one recorded draw call, fields unused by a kind stay zero
type Op struct {
	Kind     OpKind
	X1, Y1   float64
	X2, Y2   float64
	R, Outer float64
	Width    float64
	Circles  []Circle
	Color    RGBA
	Gradient Gradient
}

// Recorder is a Surface that records draw calls instead of rasterizing
// Clear drops previously recorded ops, matching a real clear
type Recorder struct {
	width, height int
	Ops           []Op
	Clears        int
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) Size() (int, int) { return r.width, r.height }

func (r *Recorder) Clear() {
	r.Ops = r.Ops[:0]
	r.Clears++
	r.Ops = append(r.Ops, Op{Kind: OpClear})
}

func (r *Recorder) FillGradient(g Gradient) {
	r.Ops = append(r.Ops, Op{Kind: OpGradient, Gradient: g})
}

func (r *Recorder) FillCircle(x, y, rad float64, c RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X1: x, Y1: y, R: rad, Color: c})
}

func (r *Recorder) FillCircles(circles []Circle, c RGBA) {
	cp := make([]Circle, len(circles))
	copy(cp, circles)
	r.Ops = append(r.Ops, Op{Kind: OpCircles, Circles: cp, Color: c})
}

func (r *Recorder) FillGlow(x, y, inner, outer float64, c RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpGlow, X1: x, Y1: y, R: inner, Outer: outer, Color: c})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2, width float64, c RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Color: c})
}

// Count returns the number of recorded ops of kind k since the last clear
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Filter returns recorded ops of kind k
func (r *Recorder) Filter(k OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

// RecordingDisplay is a Display over a Recorder, optionally detached
type RecordingDisplay struct {
	Recorder *Recorder
	Detached bool
	Presents int
}

func (d *RecordingDisplay) Acquire(width, height int) Surface {
	if d.Detached {
		return nil
	}
	if d.Recorder == nil || d.Recorder.width != width || d.Recorder.height != height {
		d.Recorder = NewRecorder(width, height)
	}
	return d.Recorder
}

func (d *RecordingDisplay) Present(Surface) error {
	d.Presents++
	return nil
}
