package assets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/stratum/engine/core"
)

// Reloader is the part of the AsyncLoader the watcher needs.
type Reloader interface {
	Tracks(path string) bool
	Reload(path string) error
}

// Watcher reloads assets when their files change on disk.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	reloader Reloader

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once

	mu       sync.Mutex
	isClosed bool
}

func NewWatcher(reloader Reloader) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsnotify: fsWatch,
		reloader: reloader,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.start()
	return w, nil
}

// AddRecursive starts watching the named directory and all sub-directories.
func (w *Watcher) AddRecursive(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.isClosed {
		return errors.New("asset watcher already closed")
	}
	return w.watchRecursive(name)
}

// watchRecursive adds all directories under the given one to the watch list.
// Files created before a new directory is added are missed; they are picked
// up when written again.
func (w *Watcher) watchRecursive(path string) error {
	return filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsnotify.Add(walkPath)
		}
		return nil
	})
}

func (w *Watcher) start() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			w.handle(e)
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(e fsnotify.Event) {
	if e.Op&fsnotify.Create != 0 {
		if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
			w.mu.Lock()
			if !w.isClosed {
				if err := w.watchRecursive(e.Name); err != nil {
					core.LogWarn("asset watcher: cannot watch %s: %s", e.Name, err)
				}
			}
			w.mu.Unlock()
			return
		}
	}
	// Editors often replace files instead of writing them in place.
	if e.Op&(fsnotify.Create|fsnotify.Write) != 0 && w.reloader.Tracks(e.Name) {
		if err := w.reloader.Reload(e.Name); err != nil {
			core.LogError("asset watcher: %s", err)
		}
	}
}

func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.isClosed = true
		w.mu.Unlock()
		close(w.done)
		w.wg.Wait()
		err = w.fsnotify.Close()
	})
	return err
}
