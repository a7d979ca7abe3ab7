package reload

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// startNotify watches the shader's directory. Editors that save by writing a
// new file and renaming it over the old one drop watches on the file itself.
func (w *Watcher) startNotify() error {
	n, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := n.Add(filepath.Dir(w.path)); err != nil {
		n.Close()
		return err
	}
	w.notify = n
	return nil
}

// Pending reports whether a notification for the shader file arrived since
// the last call. It never blocks. Check still decides whether the file
// actually changed.
func (w *Watcher) Pending() bool {
	if w.notify == nil {
		return false
	}
	base := filepath.Base(w.path)
	pending := false
	for {
		select {
		case ev, ok := <-w.notify.Events:
			if !ok {
				w.notify = nil
				return pending
			}
			if filepath.Base(ev.Name) == base && ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pending = true
			}
		case err, ok := <-w.notify.Errors:
			if !ok {
				w.notify = nil
				return pending
			}
			log.Printf("File notification error: %v", err)
		default:
			return pending
		}
	}
}

// Close stops file notifications. Check keeps working afterwards.
func (w *Watcher) Close() error {
	if w.notify == nil {
		return nil
	}
	err := w.notify.Close()
	w.notify = nil
	return err
}
