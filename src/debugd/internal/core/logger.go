package core

import (
	"context"
	"fmt"

	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingConfig represents the logging configuration from the config files
type LoggingConfig struct {
	Level       string   `yaml:"level"`
	Development bool     `yaml:"development"`
	Encoding    string   `yaml:"encoding"`
	OutputPaths []string `yaml:"outputPaths"`
}

// LoggerModule provides the logger dependencies
var LoggerModule = fx.Options(
	fx.Provide(NewAtomicLevel),
	fx.Provide(NewSugaredLogger),
	fx.Provide(NewLogger),
	fx.Provide(NewLevelWatcher),
	fx.Invoke(func(LevelWatcher) {}),
)

func NewLogger(sugar *zap.SugaredLogger) *zap.Logger {
	return sugar.Desugar()
}

// NewAtomicLevel returns the configured log level in a form that can be changed at runtime.
func NewAtomicLevel(provider config.Provider) (zap.AtomicLevel, error) {
	var loggingConfig LoggingConfig
	if err := provider.Get("logging").Populate(&loggingConfig); err != nil {
		return zap.AtomicLevel{}, err
	}

	level, err := zapcore.ParseLevel(loggingConfig.Level)
	if err != nil {
		return zap.AtomicLevel{}, err
	}
	return zap.NewAtomicLevelAt(level), nil
}

// SugaredLoggerParams are the dependencies of NewSugaredLogger.
type SugaredLoggerParams struct {
	fx.In

	Config    config.Provider
	Level     zap.AtomicLevel
	Lifecycle fx.Lifecycle `optional:"true"`
}

// NewSugaredLogger creates a new zap.SugaredLogger based on the configuration
func NewSugaredLogger(p SugaredLoggerParams) (*zap.SugaredLogger, error) {
	var loggingConfig LoggingConfig
	if err := p.Config.Get("logging").Populate(&loggingConfig); err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	if loggingConfig.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	var encoder zapcore.Encoder
	switch loggingConfig.Encoding {
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	outputPaths := loggingConfig.OutputPaths
	if len(outputPaths) == 0 {
		outputPaths = []string{"stdout"}
	}
	sink, closeSink, err := zap.Open(outputPaths...)
	if err != nil {
		return nil, fmt.Errorf("opening log outputs: %w", err)
	}

	core := zapcore.NewCore(encoder, sink, p.Level)

	var logger *zap.Logger
	if loggingConfig.Development {
		logger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	} else {
		logger = zap.New(core)
	}

	if p.Lifecycle != nil {
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				// Sync of stdout can fail with EINVAL.
				_ = logger.Sync()
				closeSink()
				return nil
			},
		})
	}

	return logger.Sugar(), nil
}
