// Package watch converts input files as they appear in watched directories.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/turtacn/computefp/internal/application/convert"
	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/computefp/pkg/errors"
)

// FileConverter converts one input file.
type FileConverter interface {
	ConvertFile(ctx context.Context, path string) (convert.Summary, error)
}

// Config selects what is watched.
type Config struct {
	Dirs []string
	// Patterns are filepath.Match globs applied to the base name.
	Patterns []string
	// Debounce is the quiet period after the last write before a file is
	// converted.
	Debounce time.Duration
	// OutputSuffix marks converter outputs, which are never converted.
	OutputSuffix string
}

// Watcher converts matching files, one at a time, after they have been
// quiet for the debounce period.
type Watcher struct {
	conv   FileConverter
	cfg    Config
	logger logging.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
	ready   chan string
	done    chan struct{}
}

// NewWatcher validates cfg.  Every directory must exist.
func NewWatcher(conv FileConverter, cfg Config, log logging.Logger) (*Watcher, error) {
	if len(cfg.Dirs) == 0 {
		return nil, errors.InvalidParam("watch needs at least one directory")
	}
	for _, dir := range cfg.Dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return nil, errors.InvalidParam("not a directory").WithDetail(dir)
		}
	}
	for _, p := range cfg.Patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, errors.InvalidParam("invalid watch pattern").WithDetail(p)
		}
	}
	if cfg.OutputSuffix == "" {
		cfg.OutputSuffix = convert.DefaultSuffix
	}
	if log == nil {
		log = logging.Default()
	}
	return &Watcher{
		conv:    conv,
		cfg:     cfg,
		logger:  log.Named("watch"),
		pending: make(map[string]*time.Timer),
		ready:   make(chan string, 64),
		done:    make(chan struct{}),
	}, nil
}

// Matches reports whether the file at path should be converted.
func (w *Watcher) Matches(path string) bool {
	base := filepath.Base(path)
	if strings.HasSuffix(base, w.cfg.OutputSuffix) {
		return false
	}
	for _, p := range w.cfg.Patterns {
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}

// Run watches until ctx is done and returns nil on cancellation.  A Watcher
// runs at most once.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := w.open()
	if err != nil {
		return err
	}
	defer fw.Close()
	return w.loop(ctx, fw)
}

func (w *Watcher) open() (*fsnotify.Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIO, "failed to create file watcher")
	}
	for _, dir := range w.cfg.Dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrap(err, errors.ErrCodeIO, "failed to watch directory").WithDetail(dir)
		}
		w.logger.Info("Watching directory", logging.String("dir", dir))
	}
	return fw, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) error {
	defer close(w.done)
	defer w.stopTimers()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if w.Matches(ev.Name) {
				w.schedule(ev.Name)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", logging.Err(err))

		case path := <-w.ready:
			if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
				continue
			}
			if _, err := w.conv.ConvertFile(ctx, path); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.logger.Error("Conversion failed", logging.String("file", path), logging.Err(err))
			}
		}
	}
}

// schedule (re)starts the debounce timer of path.  A timer that already
// fired but lost the race for the lock finds itself replaced and drops out.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if old, ok := w.pending[path]; ok {
		old.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(w.cfg.Debounce, func() {
		w.mu.Lock()
		if w.pending[path] != t {
			w.mu.Unlock()
			return
		}
		delete(w.pending, path)
		w.mu.Unlock()
		select {
		case w.ready <- path:
		case <-w.done:
		}
	})
	w.pending[path] = t
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

//Personal.AI order the ending
