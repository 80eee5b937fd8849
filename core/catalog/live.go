package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Live is a swappable catalog. Each Resolve or Instrument call sees one
// complete snapshot; a swap never exposes a half-loaded catalog.
type Live struct {
	current atomic.Pointer[Catalog]
	logger  *zap.Logger

	mu       sync.Mutex
	stopCh   chan struct{}
	doneCh   chan struct{}
	watchErr error // set by run before doneCh closes
	debounce time.Duration
}

// NewLive wraps an initial catalog. A nil logger disables logging.
func NewLive(initial *Catalog, logger *zap.Logger) *Live {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Live{logger: logger, debounce: 100 * time.Millisecond}
	l.current.Store(initial)
	return l
}

// Snapshot returns the catalog currently in effect.
func (l *Live) Snapshot() *Catalog {
	return l.current.Load()
}

// Swap replaces the catalog in effect.
func (l *Live) Swap(c *Catalog) {
	l.current.Store(c)
}

func (l *Live) Resolve(text string, strict bool) (*Instrument, error) {
	return l.Snapshot().Resolve(text, strict)
}

func (l *Live) Instrument(id int64) (*Instrument, bool) {
	return l.Snapshot().Instrument(id)
}

func (l *Live) Suggest(text string) string {
	return l.Snapshot().Suggest(text)
}

// Watch reloads the YAML catalog at path whenever it is written, created or
// renamed into place. A document that fails to load is logged and the
// previous catalog stays in effect. Watching stops when ctx is done or Close
// is called, and the watcher is released either way. Once a watch has
// stopped with its context, Watch may be called again.
func (l *Live) Watch(ctx context.Context, path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.doneCh != nil {
		select {
		case <-l.doneCh:
		default:
			return errors.New("catalog watch already running")
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}
	// Editors replace files on save, so watch the directory, not the file.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	l.stopCh = make(chan struct{})
	l.doneCh = make(chan struct{})
	l.watchErr = nil
	go l.run(ctx, watcher, filepath.Clean(path), l.stopCh, l.doneCh)
	return nil
}

// Close stops a running watch and waits for it to exit.
func (l *Live) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.doneCh == nil {
		return nil
	}
	close(l.stopCh)
	<-l.doneCh
	err := l.watchErr
	l.stopCh, l.doneCh, l.watchErr = nil, nil, nil
	return err
}

func (l *Live) run(ctx context.Context, watcher *fsnotify.Watcher, path string, stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	defer func() { l.watchErr = watcher.Close() }()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Debounce: editors emit several events per save.
			if timer == nil {
				timer = time.NewTimer(l.debounce)
			} else {
				timer.Reset(l.debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			l.logger.Warn("catalog watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			l.reload(path)
		}
	}
}

func (l *Live) reload(path string) {
	c, err := LoadFile(path)
	if err != nil {
		l.logger.Warn("catalog reload failed, keeping previous catalog",
			zap.String("path", path), zap.Error(err))
		return
	}
	l.Swap(c)
	l.logger.Info("catalog reloaded",
		zap.String("path", path), zap.Int("instruments", c.Len()))
}
