package viewport

import "testing"

func TestFromCells(t *testing.T) {
	tests := []struct {
		cols, rows, ppc int
		want            Dimensions
	}{
		{80, 24, 1, Dimensions{80, 48}},
		{80, 24, 8, Dimensions{640, 384}},
		{10, 5, 0, Dimensions{10, 10}},
	}
	for _, tt := range tests {
		if got := FromCells(tt.cols, tt.rows, tt.ppc); got != tt.want {
			t.Errorf("FromCells(%d,%d,%d) = %v, want %v", tt.cols, tt.rows, tt.ppc, got, tt.want)
		}
	}
}

func TestTrackerNotifiesOnChange(t *testing.T) {
	tr := NewTracker(Dimensions{100, 100})

	var got []Dimensions
	tr.Subscribe(func(d Dimensions) { got = append(got, d) })

	if tr.Update(Dimensions{100, 100}) {
		t.Error("unchanged dimensions must not notify")
	}
	if tr.Update(Dimensions{0, 50}) {
		t.Error("invalid dimensions must not notify")
	}
	if !tr.Update(Dimensions{200, 150}) {
		t.Error("changed dimensions must notify")
	}

	if len(got) != 1 || got[0] != (Dimensions{200, 150}) {
		t.Fatalf("notifications = %v", got)
	}
	if tr.Current() != (Dimensions{200, 150}) {
		t.Errorf("Current() = %v", tr.Current())
	}
}

func TestTrackerUnsubscribe(t *testing.T) {
	tr := NewTracker(Dimensions{})

	var a, b int
	unsubA := tr.Subscribe(func(Dimensions) { a++ })
	tr.Subscribe(func(Dimensions) { b++ })
	if tr.Listeners() != 2 {
		t.Fatalf("Listeners() = %d, want 2", tr.Listeners())
	}

	tr.Update(Dimensions{10, 10})
	unsubA()
	unsubA()
	tr.Update(Dimensions{20, 20})

	if a != 1 || b != 2 {
		t.Errorf("calls a=%d b=%d, want 1 and 2", a, b)
	}
	if tr.Listeners() != 1 {
		t.Errorf("Listeners() = %d, want 1", tr.Listeners())
	}
}

func TestTrackerOrderAndReentry(t *testing.T) {
	tr := NewTracker(Dimensions{})

	var order []int
	tr.Subscribe(func(d Dimensions) {
		order = append(order, 1)
		// Reading back from inside a listener must not deadlock
		if tr.Current() != d {
			t.Errorf("Current() inside listener = %v, want %v", tr.Current(), d)
		}
	})
	tr.Subscribe(func(Dimensions) { order = append(order, 2) })

	tr.Update(Dimensions{5, 5})
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
}
