package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind says what a changed prefab file affects.
type ChangeKind int

const (
	ChangeOther ChangeKind = iota
	ChangeVariant
	ChangeFSM
	ChangeScript
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeVariant:
		return "variant"
	case ChangeFSM:
		return "fsm"
	case ChangeScript:
		return "script"
	default:
		return "other"
	}
}

// Change is one debounced file event.
type Change struct {
	Path    string
	Kind    ChangeKind
	Variant string
}

// Classify maps a prefab path to the kind of reload it needs.
func Classify(path string) Change {
	c := Change{Path: path}
	switch {
	case isScriptFile(path):
		c.Kind = ChangeScript
	case isSpecFile(path):
		if v, ok := VariantFromPath(path); ok {
			c.Kind = ChangeVariant
			c.Variant = v
		} else if strings.HasPrefix(filepath.Base(path), "fsm_") {
			c.Kind = ChangeFSM
		}
	}
	return c
}

// Watcher reports edits to prefab and script files. Changes arrive on a
// buffered channel and are meant to be drained from the game loop.
type Watcher struct {
	watcher  *fsnotify.Watcher
	Changes  chan Change
	Errors   chan error
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
	debounce time.Duration
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher:  w,
		Changes:  make(chan Change, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
		debounce: 100 * time.Millisecond,
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Changes and Errors are closed once the reader
// goroutine exits.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// Drain returns every change queued so far without blocking.
func (w *Watcher) Drain() []Change {
	var out []Change
	for {
		select {
		case c, ok := <-w.Changes:
			if !ok {
				return out
			}
			out = append(out, c)
		default:
			return out
		}
	}
}

func (w *Watcher) run() {
	defer func() {
		close(w.Changes)
		close(w.Errors)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < w.debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Changes <- Classify(event.Name):
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
