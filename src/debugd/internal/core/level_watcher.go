package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grkek/juicy-fruit/src/debugd/internal/fs"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const _levelDebounce = 200 * time.Millisecond

// LevelWatcher re-applies logging.level whenever a configuration file changes.
type LevelWatcher interface {
	// Reload reads the configuration files and applies the last logging.level found.
	Reload() error
}

// LevelWatcherParams are the dependencies of NewLevelWatcher.
type LevelWatcherParams struct {
	fx.In

	Dir       ConfigDir
	FS        fs.DebugdFS
	Level     zap.AtomicLevel
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
}

type levelWatcher struct {
	dir    string
	fs     fs.DebugdFS
	level  zap.AtomicLevel
	logger *zap.SugaredLogger

	watcher *fsnotify.Watcher
	closer  chan bool
	done    chan bool

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// NewLevelWatcher creates a LevelWatcher that starts and stops with the application.
func NewLevelWatcher(p LevelWatcherParams) LevelWatcher {
	w := &levelWatcher{
		dir:    string(p.Dir),
		fs:     p.FS,
		level:  p.Level,
		logger: p.Logger,
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: w.start,
		OnStop:  w.stop,
	})
	return w
}

func (w *levelWatcher) start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Warnf("Log level watcher unavailable, continuing without watching for changes: %v", err)
		return nil
	}
	if err := watcher.Add(w.dir); err != nil {
		w.logger.Warnf("Unable to watch config directory %q: %v", w.dir, err)
		return watcher.Close()
	}

	w.watcher = watcher
	w.closer = make(chan bool, 1)
	w.done = make(chan bool)
	go w.handleChanges()
	return nil
}

func (w *levelWatcher) stop(ctx context.Context) error {
	if w.watcher == nil {
		return nil
	}
	w.closer <- true
	<-w.done
	return nil
}

func (w *levelWatcher) handleChanges() {
	defer close(w.done)
	for {
		select {
		case event := <-w.watcher.Events:
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !strings.HasSuffix(event.Name, ".yaml") {
				continue
			}
			w.handleDebounce()

		case err := <-w.watcher.Errors:
			w.logger.Warnf("Failure in config change watcher: %v", err)

		case <-w.closer:
			w.debounceMu.Lock()
			if w.debounce != nil {
				w.debounce.Stop()
			}
			w.debounceMu.Unlock()

			if err := w.watcher.Close(); err != nil {
				w.logger.Warnf("Failed to close config change watcher: %v", err)
			}
			return
		}
	}
}

func (w *levelWatcher) handleDebounce() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(_levelDebounce, func() {
		if err := w.Reload(); err != nil {
			w.logger.Warnf("Failed to reload log level: %v", err)
		}
	})
}

type levelDocument struct {
	Files   []string `yaml:"files"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func (w *levelWatcher) Reload() error {
	var meta levelDocument
	if err := w.decode(filepath.Join(w.dir, _metaFile), &meta); err != nil {
		return err
	}

	var levelName string
	for _, file := range meta.Files {
		fullPath := filepath.Join(w.dir, os.Expand(file, expandWithDefault))
		if ok, err := w.fs.FileExists(fullPath); err != nil || !ok {
			continue
		}
		var doc levelDocument
		if err := w.decode(fullPath, &doc); err != nil {
			return err
		}
		if doc.Logging.Level != "" {
			levelName = doc.Logging.Level
		}
	}
	if levelName == "" {
		return nil
	}

	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return err
	}
	if level != w.level.Level() {
		w.logger.Infow("log level changed", zap.Stringer("from", w.level.Level()), zap.Stringer("to", level))
		w.level.SetLevel(level)
	}
	return nil
}

func (w *levelWatcher) decode(name string, out *levelDocument) error {
	data, err := w.fs.ReadFile(name)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}
