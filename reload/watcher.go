// Package reload rebuilds the active program whenever its shader file
// changes on disk.
package reload

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/richinsley/shaderview/shader"
)

// Target receives freshly split sources. A failed Reload must leave the
// target exactly as it was.
type Target interface {
	Reload(block *shader.StageBlock) error
}

// Outcome of one Check. Err is a recoverable build failure; the previous
// program stays active.
type Outcome struct {
	Changed bool
	Err     error
}

type Watcher struct {
	path   string
	stat   func(string) (os.FileInfo, error)
	last   time.Time
	loaded bool
	notify *fsnotify.Watcher
}

// NewWatcher polls path on every Check. When the platform supports it, file
// system notifications additionally mark the file as pending between checks.
func NewWatcher(path string) *Watcher {
	w := &Watcher{path: path, stat: os.Stat}
	if err := w.startNotify(); err != nil {
		log.Printf("File notifications unavailable, polling only: %v", err)
	}
	return w
}

// Check reloads target if the file's modification time moved since the last
// call. The returned error is fatal and only happens while the file has
// never been read.
func (w *Watcher) Check(target Target) (Outcome, error) {
	info, err := w.stat(w.path)
	if err != nil {
		if !w.loaded {
			return Outcome{}, fmt.Errorf("read shader file %s: %w", w.path, err)
		}
		// Editors often replace the file; try again next tick.
		log.Printf("Shader file unavailable, keeping current program: %v", err)
		return Outcome{}, nil
	}
	if w.loaded && info.ModTime().Equal(w.last) {
		return Outcome{}, nil
	}

	src, err := shader.Load(w.path)
	if err != nil {
		if !w.loaded {
			return Outcome{}, err
		}
		w.last = info.ModTime()
		log.Printf("Shader reload failed: %v", err)
		return Outcome{Changed: true, Err: err}, nil
	}
	w.last = info.ModTime()
	w.loaded = true

	block, err := src.Stages()
	if err == nil {
		err = target.Reload(block)
	}
	if err != nil {
		log.Printf("Shader reload failed: %v", err)
		return Outcome{Changed: true, Err: err}, nil
	}
	log.Printf("Loaded %s", w.path)
	return Outcome{Changed: true}, nil
}
