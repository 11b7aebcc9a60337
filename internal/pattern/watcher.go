package pattern

import (
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher monitors a patterns directory and rebuilds the library when
// .cells files change, so new definitions are picked up without a restart.
// Rapid saves are debounced; at most one rebuilt library is pending on
// Updates at a time (a newer build replaces an unconsumed older one).
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dir      string
	maxBox   int
	logger   *zap.Logger
	updates  chan *Library
	stopCh   chan struct{}
	doneCh   chan struct{}
	pending  time.Time
	debounce time.Duration
}

// Watch starts watching dir for .cells changes. The directory must exist;
// callers that tolerate a missing directory skip the watcher and keep the
// static library.
func Watch(dir string, maxBox int, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		dir:      dir,
		maxBox:   maxBox,
		logger:   logger,
		updates:  make(chan *Library, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		debounce: 200 * time.Millisecond,
	}
	go w.run()
	return w, nil
}

// Updates delivers rebuilt libraries after the directory settles.
func (w *Watcher) Updates() <-chan *Library {
	return w.updates
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	close(w.stopCh)
	<-w.doneCh
	return w.watcher.Close()
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".cells") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending = time.Now()
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Debug("pattern watcher error", zap.Error(err))

		case <-ticker.C:
			w.mu.Lock()
			due := !w.pending.IsZero() && time.Since(w.pending) >= w.debounce
			if due {
				w.pending = time.Time{}
			}
			w.mu.Unlock()
			if !due {
				continue
			}
			lib := Load(w.dir, w.maxBox, w.logger)
			// Replace any unconsumed update with the fresher build.
			select {
			case w.updates <- lib:
			default:
				select {
				case <-w.updates:
				default:
				}
				w.updates <- lib
			}
		}
	}
}
