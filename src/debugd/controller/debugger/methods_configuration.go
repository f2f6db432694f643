package debugger

import (
	"context"
	"time"

	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/mapper"
	"github.com/grkek/juicy-fruit/src/vm-lib/vm"
)

// SetConfiguration applies any subset of the engine tunables. Absent fields keep their value.
// Every field is validated before anything is applied.
func (c *controller) SetConfiguration(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}

	var updates []func(*vm.Config)
	ints := []struct {
		field string
		set   func(*vm.Config, int64)
	}{
		{"iterationLimit", func(cfg *vm.Config, v int64) { cfg.IterationLimit = int(v) }},
		{"maxStackSize", func(cfg *vm.Config, v int64) { cfg.MaxStackSize = int(v) }},
		{"maxMailboxSize", func(cfg *vm.Config, v int64) { cfg.MaxMailboxSize = int(v) }},
		{"executionDelay", func(cfg *vm.Config, v int64) { cfg.ExecutionDelay = time.Duration(v) * time.Millisecond }},
	}
	for _, f := range ints {
		v, ok, err := mapper.OptionalNonNegative(req, f.field)
		if err != nil {
			return nil, err
		}
		if ok {
			set := f.set
			updates = append(updates, func(cfg *vm.Config) { set(cfg, v) })
		}
	}

	bools := []struct {
		field string
		set   func(*vm.Config, bool)
	}{
		{"deadlockDetection", func(cfg *vm.Config, v bool) { cfg.DeadlockDetection = v }},
		{"autoReactivate", func(cfg *vm.Config, v bool) { cfg.AutoReactivate = v }},
		{"messageAcks", func(cfg *vm.Config, v bool) { cfg.MessageAcks = v }},
	}
	for _, f := range bools {
		v, ok, err := mapper.OptionalBool(req, f.field)
		if err != nil {
			return nil, err
		}
		if ok {
			set := f.set
			updates = append(updates, func(cfg *vm.Config) { set(cfg, v) })
		}
	}

	cfg := e.Configure(func(cfg *vm.Config) {
		for _, update := range updates {
			update(cfg)
		}
	})
	return entity.NewEnvelope("configurationUpdated", entity.Fields{
		"configuration": mapper.ConfigToWire(cfg),
	}), nil
}
