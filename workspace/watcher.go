package workspace

import (
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change is reported by a Watcher for every file it parsed or dropped.
type Change struct {
	Path    string
	Removed bool
	Doc     *Document
}

// Watcher rescans files whose modification time moved forward. File system
// notifications trigger a scan right away; the poll interval is the fallback
// when notifications are unavailable or missed.
type Watcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	doneCh       chan struct{}
	pollInterval time.Duration
	mu           sync.Mutex // guards modTimes
	modTimes     map[string]time.Time
	onChange     func(Change)
}

func NewWatcher(w *Workspace, pollInterval time.Duration, onChange func(Change)) *Watcher {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &Watcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
		pollInterval: pollInterval,
		modTimes:     make(map[string]time.Time),
		onChange:     onChange,
	}
}

func (w *Watcher) Start() {
	go w.run()
}

// Stop ends polling and waits for the running scan to finish.
func (w *Watcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	var events chan fsnotify.Event
	var errs chan error
	notifier, err := w.notifier()
	if err != nil {
		w.workspace.log.Warningf("file notifications unavailable, polling every %s: %s", w.pollInterval, err)
	} else {
		defer notifier.Close()
		events, errs = notifier.Events, notifier.Errors
	}

	w.Poll()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Poll()
		case event := <-events:
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					notifier.Add(event.Name)
				}
			}
			w.Poll()
		case err := <-errs:
			w.workspace.log.Warningf("watch %s: %s", w.workspace.RootDir(), err)
		}
	}
}

// notifier watches every directory the workspace walks.
func (w *Watcher) notifier() (*fsnotify.Watcher, error) {
	dirs, err := w.workspace.dirs()
	if err != nil {
		return nil, err
	}
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := notifier.Add(dir); err != nil {
			notifier.Close()
			return nil, err
		}
	}
	return notifier, nil
}

// Poll runs a single scan and returns the number of changes reported. It
// is safe to call while the watcher is running.
func (w *Watcher) Poll() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	changes := 0
	currentFiles := make(map[string]bool)

	err := w.workspace.walk(func(path string, info fs.FileInfo) {
		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			return
		}
		w.modTimes[path] = info.ModTime()
		if err := w.workspace.ScanFile(path); err != nil {
			w.workspace.log.Warningf("scan %s: %s", path, err)
			return
		}
		changes++
		w.notify(Change{Path: path, Doc: w.workspace.GetFile(path)})
	})
	if err != nil {
		w.workspace.log.Errorf("poll %s: %s", w.workspace.RootDir(), err)
		return changes
	}

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.workspace.RemoveFile(path)
			changes++
			w.notify(Change{Path: path, Removed: true})
		}
	}
	return changes
}

func (w *Watcher) notify(c Change) {
	if w.onChange != nil {
		w.onChange(c)
	}
}
