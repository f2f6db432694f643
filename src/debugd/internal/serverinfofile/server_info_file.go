// Package serverinfofile maintains the JSON file debugger clients read to find the daemon.
package serverinfofile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/grkek/juicy-fruit/src/debugd/internal/fs"
	"github.com/tidwall/sjson"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=serverinfofilemock/server_info_file_mock.go -package=serverinfofilemock . ServerInfoFile

const (
	_configKeyInfoFile = "serverInfoFilePath"
	_pidKey            = "pid"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// ServerInfoFile publishes connection details of the running daemon, one top level key each.
type ServerInfoFile interface {
	UpdateField(key string, value string) error
}

type infoFile struct {
	path   string
	fs     fs.DebugdFS
	logger *zap.SugaredLogger

	mu      sync.Mutex
	doc     []byte
	written bool
}

// Params define values to be used by ServerInfoFile.
type Params struct {
	fx.In

	Config    config.Provider
	FS        fs.DebugdFS
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
}

// New creates a ServerInfoFile. The file is written on the first update and removed on stop.
func New(p Params) (ServerInfoFile, error) {
	path, err := infoFilePath(p.Config)
	if err != nil {
		return nil, err
	}

	f := newInfoFile(path, p.FS, p.Logger, os.Getpid())
	p.Lifecycle.Append(fx.Hook{
		OnStop: f.OnStop,
	})
	return f, nil
}

func newInfoFile(path string, fs fs.DebugdFS, logger *zap.SugaredLogger, pid int) *infoFile {
	doc, _ := sjson.SetBytes([]byte("{}"), _pidKey, pid)
	return &infoFile{
		path:   path,
		fs:     fs,
		logger: logger,
		doc:    doc,
	}
}

// UpdateField sets key to value and rewrites the whole file.
func (f *infoFile) UpdateField(key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := sjson.SetBytes(f.doc, escapeKey(key), value)
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	if err := f.fs.MkdirAll(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("creating info file directory: %w", err)
	}
	if err := f.fs.WriteFileAtomic(f.path, doc); err != nil {
		return fmt.Errorf("writing info file: %w", err)
	}

	f.doc = doc
	f.written = true
	f.logger.Infow("connection info saved", zap.String("file", f.path), zap.String(key, value))
	return nil
}

// OnStop removes the file if this process wrote it.
func (f *infoFile) OnStop(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.written {
		return nil
	}
	if err := f.fs.Remove(f.path); err != nil {
		return fmt.Errorf("removing info file: %w", err)
	}
	f.written = false
	return nil
}

func infoFilePath(cfg config.Provider) (string, error) {
	var path string
	if err := cfg.Get(_configKeyInfoFile).Populate(&path); err != nil {
		return "", fmt.Errorf("getting config field %q: %w", _configKeyInfoFile, err)
	}
	if path == "" {
		return "", fmt.Errorf("missing field %q in config", _configKeyInfoFile)
	}
	return path, nil
}

// escapeKey keeps sjson from reading path syntax out of a literal key.
func escapeKey(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		switch c := key[i]; c {
		case '.', '*', '?', '|', '#', '@', '\\':
			out = append(out, '\\', c)
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
