// Package engine builds the virtual machines driven by debugger sessions.
package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/grkek/juicy-fruit/src/debugd/internal/clock"
	"github.com/grkek/juicy-fruit/src/vm-lib/vm"
	"go.uber.org/config"
	"go.uber.org/fx"
)

//go:generate mockgen -destination=enginemock/engine_mock.go -package=enginemock . Factory

const _configKeyEngine = "engine"

// Factory creates engines preconfigured with the daemon defaults.
type Factory interface {
	// New returns a fresh engine. Options are applied after the defaults.
	New(opts ...vm.Option) *vm.Engine
	// Defaults returns the configuration every new engine starts with.
	Defaults() vm.Config
}

// Params are inbound parameters to initialize a new Factory.
type Params struct {
	fx.In

	Config config.Provider
	Clock  clock.Clock
}

// Settings is the engine section of the configuration.
type Settings struct {
	IterationLimit    int  `yaml:"iterationLimit"`
	MaxStackSize      int  `yaml:"maxStackSize"`
	MaxMailboxSize    int  `yaml:"maxMailboxSize"`
	ExecutionDelayMs  int  `yaml:"executionDelayMs"`
	DeadlockDetection bool `yaml:"deadlockDetection"`
	AutoReactivate    bool `yaml:"autoReactivate"`
	MessageAcks       bool `yaml:"messageAcks"`
}

type factory struct {
	defaults vm.Config
	clock    clock.Clock
}

// New constructs an engine Factory from the "engine" configuration section.
func New(p Params) (Factory, error) {
	if p.Config == nil || p.Clock == nil {
		return nil, errors.New("required parameters are missing")
	}

	f := &factory{clock: p.Clock}
	if err := f.processConfig(p.Config); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *factory) New(opts ...vm.Option) *vm.Engine {
	all := []vm.Option{
		vm.WithConfig(f.defaults),
		vm.WithOutput(io.Discard),
		vm.WithSleep(f.clock.Sleep),
		vm.WithNow(f.clock.Now),
	}
	return vm.New(append(all, opts...)...)
}

func (f *factory) Defaults() vm.Config {
	return f.defaults
}

func (f *factory) processConfig(cfg config.Provider) error {
	defaults := vm.DefaultConfig()
	settings := Settings{
		IterationLimit:    defaults.IterationLimit,
		MaxStackSize:      defaults.MaxStackSize,
		MaxMailboxSize:    defaults.MaxMailboxSize,
		DeadlockDetection: defaults.DeadlockDetection,
		AutoReactivate:    defaults.AutoReactivate,
		MessageAcks:       defaults.MessageAcks,
	}
	if err := cfg.Get(_configKeyEngine).Populate(&settings); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyEngine, err)
	}

	for key, v := range map[string]int{
		"iterationLimit":   settings.IterationLimit,
		"maxStackSize":     settings.MaxStackSize,
		"maxMailboxSize":   settings.MaxMailboxSize,
		"executionDelayMs": settings.ExecutionDelayMs,
	} {
		if v < 0 {
			return fmt.Errorf("config field %q must not be negative", _configKeyEngine+"."+key)
		}
	}

	f.defaults = vm.Config{
		IterationLimit:    settings.IterationLimit,
		MaxStackSize:      settings.MaxStackSize,
		MaxMailboxSize:    settings.MaxMailboxSize,
		ExecutionDelay:    time.Duration(settings.ExecutionDelayMs) * time.Millisecond,
		DeadlockDetection: settings.DeadlockDetection,
		AutoReactivate:    settings.AutoReactivate,
		MessageAcks:       settings.MessageAcks,
	}
	return nil
}
