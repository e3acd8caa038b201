// Package shaderwatch reloads a fragment shader source file when it changes
// on disk.
//
// The containing directory is watched rather than the file itself, so
// editors that save by writing a temporary file and renaming it over the
// original are still seen.
package shaderwatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long the file must stay quiet before it is read.
const DefaultSettle = 50 * time.Millisecond

// ErrWatch is returned when the watcher cannot be started.
var ErrWatch = errors.New("shaderwatch: cannot watch")

// Update is a reloaded shader source, or the error from reading it.
type Update struct {
	Path   string
	Source string
	Err    error
}

// Watcher delivers an Update each time the watched file settles after a
// change. Only the newest undelivered Update is kept.
type Watcher struct {
	path    string
	settle  time.Duration
	notify  func()
	fsw     *fsnotify.Watcher
	updates chan Update
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// Watch starts watching path. notify, if non-nil, is called from the watch
// goroutine after each Update is queued.
func Watch(path string, notify func()) (*Watcher, error) {
	return watch(path, DefaultSettle, notify)
}

func watch(path string, settle time.Duration, notify func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWatch, path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatch, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrWatch, path, err)
	}
	w := &Watcher{
		path:    abs,
		settle:  settle,
		notify:  notify,
		fsw:     fsw,
		updates: make(chan Update, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	slogger().Info("shapr: watching shader", "path", abs)
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Updates returns the channel Updates are delivered on. It is never closed.
func (w *Watcher) Updates() <-chan Update { return w.updates }

// Poll returns the pending Update without blocking.
func (w *Watcher) Poll() (Update, bool) {
	select {
	case u := <-w.updates:
		return u, true
	default:
		return Update{}, false
	}
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Reset(w.settle)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slogger().Warn("shapr: shader watch error", "path", w.path, "err", err)
		case <-timer.C:
			w.deliver(w.read())
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) read() Update {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return Update{Path: w.path, Err: err}
	}
	return Update{Path: w.path, Source: string(data)}
}

// deliver replaces any undelivered Update with u.
func (w *Watcher) deliver(u Update) {
	for {
		select {
		case w.updates <- u:
			slogger().Debug("shapr: shader changed", "path", u.Path, "err", u.Err)
			if w.notify != nil {
				w.notify()
			}
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}
