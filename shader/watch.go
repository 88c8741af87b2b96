package shader

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports edits to a single shader file.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	c       chan struct{}
	wg      sync.WaitGroup
}

// Watch starts watching path. The parent directory is watched rather than the
// file, so editors that save by renaming a temporary file are still seen.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		c:       make(chan struct{}, 1),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// several events per save collapse into one reload
			select {
			case w.c <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Shader watcher error: %v", err)
		}
	}
}

// C receives a value after the file changes.
func (w *Watcher) C() <-chan struct{} { return w.c }

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Close stops watching and waits for the event goroutine to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
