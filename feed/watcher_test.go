package feed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const rainJSON = `{"weather":[{"id":500,"main":"Rain"}],"dt":100,"sys":{"sunrise":0,"sunset":200}}`
const snowJSON = `{"weather":[{"id":601,"main":"Snow"}],"dt":100,"sys":{"sunrise":0,"sunset":200}}`

func writeSnapshot(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFileWatcherLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.json")
	writeSnapshot(t, path, rainJSON)

	sink := newRecordingSink()
	w, err := NewFileWatcher(path, sink, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := w.Load(); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if sink.count() != 1 || w.Applied() != 1 {
		t.Errorf("identical content applied %d times", sink.count())
	}
	if got := sink.snaps[0].Weather[0].ID; got != 500 {
		t.Errorf("applied code = %d", got)
	}
}

func TestFileWatcherNullAndMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.json")
	sink := newRecordingSink()
	w, _ := NewFileWatcher(path, sink, nil)

	if err := w.Load(); err == nil {
		t.Error("missing file accepted")
	}

	writeSnapshot(t, path, "null")
	if err := w.Load(); err != nil {
		t.Fatalf("Load(null): %v", err)
	}
	if sink.count() != 1 || sink.snaps[0] != nil {
		t.Error("null file must apply a nil snapshot")
	}

	writeSnapshot(t, path, "{not json")
	if err := w.Load(); err == nil {
		t.Error("malformed file accepted")
	}
	if sink.count() != 1 || w.Failed() != 2 {
		t.Errorf("malformed file reached sink: count=%d failed=%d", sink.count(), w.Failed())
	}
}

func TestFileWatcherSinkError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.json")
	writeSnapshot(t, path, rainJSON)
	sink := newRecordingSink()
	sink.err = errors.New("closed")
	w, _ := NewFileWatcher(path, sink, nil)

	if err := w.Load(); err == nil {
		t.Fatal("sink error swallowed")
	}
	sink.err = nil
	if err := w.Load(); err != nil || sink.count() != 1 {
		t.Errorf("retry after sink error: err=%v count=%d", err, sink.count())
	}
}

func TestFileWatcherReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.json")
	writeSnapshot(t, path, rainJSON)

	sink := newRecordingSink()
	w, err := NewFileWatcher(path, sink, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Load(); err != nil {
		t.Fatal(err)
	}
	<-sink.ch

	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Close()

	writeSnapshot(t, path, snowJSON)

	select {
	case snap := <-sink.ch:
		if snap == nil || snap.Weather[0].Main != "Snow" {
			t.Errorf("reloaded snapshot = %+v", snap)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("change not observed")
	}
}

func TestFileWatcherCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.json")
	w, _ := NewFileWatcher(path, newRecordingSink(), nil)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestFileWatcherIgnoresEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.json")
	writeSnapshot(t, path, "")
	sink := newRecordingSink()
	w, _ := NewFileWatcher(path, sink, nil)

	if err := w.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sink.count() != 0 {
		t.Error("empty file must not replace the active snapshot")
	}
}
