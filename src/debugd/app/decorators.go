package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grkek/juicy-fruit/src/debugd/internal/fs"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Context describes where the daemon runs.
type Context struct {
	Environment        string `yaml:"environment"`
	RuntimeEnvironment string `yaml:"runtimeEnvironment"`
}

const (
	// EnvLocal is the default environment.
	EnvLocal = "local"
	// EnvDevelopment selects development.yaml and console logging.
	EnvDevelopment = "development"

	_envDebugdEnvironment = "DEBUGD_ENVIRONMENT"

	_configKeyLogging       = "logging"
	_configKeyServerInfo    = "serverInfoFilePath"
	_configKeyWebsocketPath = "websocket.path"
)

// decorateEnvContext picks the environment from DEBUGD_ENVIRONMENT. Anything but development is local.
func decorateEnvContext(env Context) Context {
	name := EnvLocal
	if strings.EqualFold(strings.TrimSpace(os.Getenv(_envDebugdEnvironment)), EnvDevelopment) {
		name = EnvDevelopment
	}
	env.Environment = name
	env.RuntimeEnvironment = name
	return env
}

// DecorateConfigParams is the set of dependencies required to decorate the config.Provider.
type DecorateConfigParams struct {
	fx.In

	Env Context
	Cfg config.Provider
	FS  fs.DebugdFS
}

// decorateConfigProvider prepares the directories the daemon writes to and rejects settings
// that would only fail once a client connects.
func decorateConfigProvider(p DecorateConfigParams) (config.Provider, error) {
	if err := ensureLogFolder(p.Cfg, p.FS); err != nil {
		return nil, fmt.Errorf("ensuring log folder: %w", err)
	}
	if err := ensureInfoFileFolder(p.Cfg, p.FS); err != nil {
		return nil, fmt.Errorf("ensuring server info folder: %w", err)
	}
	if err := checkWebsocketPath(p.Cfg); err != nil {
		return nil, err
	}
	return p.Cfg, nil
}

func ensureLogFolder(cfg config.Provider, fs fs.DebugdFS) error {
	var c zap.Config
	if err := cfg.Get(_configKeyLogging).Populate(&c); err != nil {
		return fmt.Errorf("loading logging config: %w", err)
	}

	for _, out := range c.OutputPaths {
		if out == "stdout" || out == "stderr" {
			continue
		}
		if err := fs.MkdirAll(filepath.Dir(out)); err != nil {
			return fmt.Errorf("creating logging directory: %w", err)
		}
	}
	return nil
}

// ensureInfoFileFolder creates the directory of serverInfoFilePath. An unset path is left for
// the serverinfofile module to report.
func ensureInfoFileFolder(cfg config.Provider, fs fs.DebugdFS) error {
	var path string
	if err := cfg.Get(_configKeyServerInfo).Populate(&path); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyServerInfo, err)
	}
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	isFile, err := fs.FileExists(dir)
	if err != nil {
		return fmt.Errorf("checking %q: %w", dir, err)
	}
	if isFile {
		return fmt.Errorf("%q is a file, not a directory", dir)
	}
	return fs.MkdirAll(dir)
}

func checkWebsocketPath(cfg config.Provider) error {
	var path string
	if err := cfg.Get(_configKeyWebsocketPath).Populate(&path); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyWebsocketPath, err)
	}
	if path != "" && !strings.HasPrefix(path, "/") {
		return fmt.Errorf("config field %q must start with %q, got %q", _configKeyWebsocketPath, "/", path)
	}
	return nil
}
