// @lixen: #dev{feature[feed(file,watch)]}
package feed

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/wxscene/core"
	"github.com/lixenwraith/wxscene/weather"
)

// FileWatcher applies a snapshot JSON file to a sink and re-applies it on every change
// Malformed content is logged and ignored so the previous snapshot stays active
type FileWatcher struct {
	path   string
	sink   Sink
	logger *slog.Logger

	mu   sync.Mutex
	last []byte

	applied atomic.Uint64
	failed  atomic.Uint64

	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewFileWatcher(path string, sink Sink, logger *slog.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FileWatcher{
		path:     abs,
		sink:     sink,
		logger:   logger.With("component", "feed.file", "path", abs),
		stopChan: make(chan struct{}),
	}, nil
}

// Path returns the watched file
func (w *FileWatcher) Path() string {
	return w.path
}

// Applied returns the number of snapshots handed to the sink
func (w *FileWatcher) Applied() uint64 {
	return w.applied.Load()
}

// Failed returns the number of rejected reloads
func (w *FileWatcher) Failed() uint64 {
	return w.failed.Load()
}

// Load reads the file and applies it, identical content is not re-applied
func (w *FileWatcher) Load() error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.failed.Add(1)
		return fmt.Errorf("read snapshot file: %w", err)
	}

	// Truncated by a writer that has not finished yet, the next event carries the content
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last != nil && bytes.Equal(data, w.last) {
		return nil
	}

	snap, err := weather.DecodeSnapshot(bytes.NewReader(data))
	if err != nil {
		w.failed.Add(1)
		return fmt.Errorf("%s: %w", w.path, err)
	}
	if err := w.sink.SetWeather(snap); err != nil {
		return fmt.Errorf("apply snapshot: %w", err)
	}
	w.last = data
	w.applied.Add(1)
	return nil
}

// Start watches the containing directory so editors that replace the file are observed
func (w *FileWatcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.watcher = fw

	w.wg.Add(1)
	core.Go(w.loop)
	return nil
}

func (w *FileWatcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.stopChan:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := w.Load(); err != nil {
				w.logger.Warn("snapshot reload ignored", "error", err)
				continue
			}
			w.logger.Debug("snapshot reloaded", "op", ev.Op.String())
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// Close stops watching
func (w *FileWatcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		if w.watcher != nil {
			err = w.watcher.Close()
		}
		w.wg.Wait()
	})
	return err
}
