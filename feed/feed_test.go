package feed

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/wxscene/weather"
)

// recordingSink captures snapshots handed to it
type recordingSink struct {
	mu    sync.Mutex
	snaps []*weather.Snapshot
	err   error
	ch    chan *weather.Snapshot
}

func newRecordingSink() *recordingSink {
	return &recordingSink{ch: make(chan *weather.Snapshot, 16)}
}

func (r *recordingSink) SetWeather(s *weather.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.snaps = append(r.snaps, s)
	select {
	case r.ch <- s:
	default:
	}
	return nil
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

func TestPreset(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tests := []struct {
		main     string
		id       int
		daytime  bool
		wantMain string
		wantID   int
		wantCat  weather.Category
	}{
		{"Clear", 0, true, "Clear", 800, weather.CategoryClear},
		{"rain", 502, true, "Rain", 502, weather.CategoryRain},
		{"thunderstorm", 0, false, "Thunderstorm", 200, weather.CategoryThunderstorm},
		{"snow", 0, true, "Snow", 601, weather.CategorySnow},
		{"fog", 0, true, "Fog", 701, weather.CategoryAtmospheric},
		{"atmospheric", 0, true, "Mist", 701, weather.CategoryAtmospheric},
		{"other", 0, true, "Squall", 771, weather.CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.main, func(t *testing.T) {
			snap, err := Preset(tt.main, tt.id, tt.daytime, now)
			if err != nil {
				t.Fatalf("Preset: %v", err)
			}
			cond, ok := snap.Primary()
			if !ok || cond.Main != tt.wantMain || cond.ID != tt.wantID {
				t.Errorf("condition = %+v, want %s/%d", cond, tt.wantMain, tt.wantID)
			}
			cl := weather.Classify(snap)
			if cl.Category != tt.wantCat {
				t.Errorf("category = %v, want %v", cl.Category, tt.wantCat)
			}
			if cl.Daytime != tt.daytime {
				t.Errorf("daytime = %v, want %v", cl.Daytime, tt.daytime)
			}
		})
	}
}

func TestPresetNoneAndUnknown(t *testing.T) {
	snap, err := Preset("none", 0, true, time.Now())
	if err != nil || snap != nil {
		t.Errorf("Preset(none) = %v, %v, want nil, nil", snap, err)
	}
	if _, err := Preset("hail", 0, true, time.Now()); !errors.Is(err, weather.ErrUnknownCategory) {
		t.Errorf("Preset(hail) error = %v, want ErrUnknownCategory", err)
	}
}
