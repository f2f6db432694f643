package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	uber_config "go.uber.org/config"
	"go.uber.org/fx"
)

const (
	_envConfigDir     = "DEBUGD_CONFIG_DIR"
	_defaultConfigDir = "src/debugd/config"
	_metaFile         = "meta.yaml"
)

var ConfigModule = fx.Options(
	fx.Provide(NewConfig),
)

// ConfigDir is the directory holding meta.yaml and the files it lists.
type ConfigDir string

type Config struct {
	provider uber_config.Provider
}

func (c Config) Get(path string) uber_config.Value {
	return c.provider.Get(path)
}

func (c Config) Name() string {
	return "config"
}

// NewConfig loads every file listed in meta.yaml, in order, with environment variable expansion.
func NewConfig(dir ConfigDir) (uber_config.Provider, error) {
	files, err := configFiles(string(dir))
	if err != nil {
		return nil, err
	}

	var options []uber_config.YAMLOption
	for _, file := range files {
		options = append(options, uber_config.File(file))
	}
	options = append(options, uber_config.Expand(os.LookupEnv))

	provider, err := uber_config.NewYAML(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return Config{provider: provider}, nil
}

// configFiles returns the existing files listed in meta.yaml.
func configFiles(configDir string) ([]string, error) {
	metaProvider, err := uber_config.NewYAML(
		uber_config.File(filepath.Join(configDir, _metaFile)),
		uber_config.Expand(os.LookupEnv),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load meta configuration: %w", err)
	}

	var listed []string
	if err := metaProvider.Get("files").Populate(&listed); err != nil {
		return nil, fmt.Errorf("failed to read files list from meta.yaml: %w", err)
	}

	var valid []string
	for _, file := range listed {
		fullPath := filepath.Join(configDir, file)
		if _, err := os.Stat(fullPath); err == nil {
			valid = append(valid, fullPath)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("no configuration files found in %s", configDir)
	}
	return valid, nil
}

// expandWithDefault resolves ${NAME:default} the way the YAML provider does.
func expandWithDefault(key string) string {
	name, def, hasDefault := strings.Cut(key, ":")
	if value, ok := os.LookupEnv(name); ok {
		return value
	}
	if hasDefault {
		return def
	}
	return ""
}

// ResolveConfigDir picks the configuration directory: an explicit value first, then
// the DEBUGD_CONFIG_DIR environment variable, then the default relative to the working directory.
func ResolveConfigDir(explicit string) ConfigDir {
	if explicit != "" {
		return ConfigDir(explicit)
	}
	if configDir := os.Getenv(_envConfigDir); configDir != "" {
		return ConfigDir(configDir)
	}
	return _defaultConfigDir
}
