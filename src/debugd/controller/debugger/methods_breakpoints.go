package debugger

import (
	"context"

	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/internal/errors"
	"github.com/grkek/juicy-fruit/src/debugd/mapper"
	"github.com/grkek/juicy-fruit/src/vm-lib/vm"
)

// _conditions compiles each condition template against its threshold.
var _conditions = map[entity.ConditionType]func(value int64) func(vm.Probe) bool{
	entity.ConditionCounter: func(value int64) func(vm.Probe) bool {
		return func(p vm.Probe) bool { return int64(p.Counter) == value }
	},
	entity.ConditionMinStackDepth: func(value int64) func(vm.Probe) bool {
		return func(p vm.Probe) bool { return int64(p.CallDepth) >= value }
	},
	entity.ConditionMaxStackDepth: func(value int64) func(vm.Probe) bool {
		return func(p vm.Probe) bool { return int64(p.CallDepth) <= value }
	},
	entity.ConditionStackSize: func(value int64) func(vm.Probe) bool {
		return func(p vm.Probe) bool { return int64(p.StackSize) == value }
	},
	entity.ConditionProcessAddress: func(value int64) func(vm.Probe) bool {
		return func(p vm.Probe) bool { return value >= 0 && uint64(p.Address) == uint64(value) }
	},
}

// compileCondition builds the predicate for a condition template. Exited units never match.
func compileCondition(t entity.ConditionType, value int64) (vm.Condition, error) {
	build, ok := _conditions[t]
	if !ok {
		return nil, errors.Errorf(errors.CodeInvalidCondition, "unknown condition type %q", t)
	}
	match := build(value)
	return func(p vm.Probe) bool {
		return p.Alive && match(p)
	}, nil
}

// AddBreakpoint registers a breakpoint built from a condition template.
func (c *controller) AddBreakpoint(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	s, _, d, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}

	name, err := mapper.RequestString(req, "conditionType")
	if err != nil {
		return nil, err
	}
	conditionType := entity.ConditionType(name)
	if _, ok := _conditions[conditionType]; !ok {
		return nil, errors.Errorf(errors.CodeInvalidCondition, "unknown condition type %q", name)
	}
	value, err := mapper.RequestInt(req, "value")
	if err != nil {
		return nil, err
	}
	ignoreCount, hasIgnoreCount, err := mapper.OptionalNonNegative(req, "ignoreCount")
	if err != nil {
		return nil, err
	}

	cond, err := compileCondition(conditionType, value)
	if err != nil {
		return nil, err
	}
	handle := d.AddBreakpoint(cond)
	if hasIgnoreCount {
		handle.SetIgnoreCount(int(ignoreCount))
	}

	bp := &entity.Breakpoint{
		ID:            handle.ID().String(),
		ConditionType: conditionType,
		Value:         value,
		Handle:        handle,
	}
	s.AddBreakpoint(bp)

	return entity.NewEnvelope("breakpointAdded", entity.Fields{
		"breakpoint": mapper.BreakpointToWire(bp),
	}), nil
}

// RemoveBreakpoint drops a breakpoint from the session and the debugger.
func (c *controller) RemoveBreakpoint(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	s, _, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	id, err := mapper.RequestID(req, "id")
	if err != nil {
		return nil, err
	}

	if _, ok := s.RemoveBreakpoint(id); !ok {
		return nil, errors.NotFound("breakpoint", id)
	}
	return entity.NewEnvelope("breakpointRemoved", entity.Fields{"id": id}), nil
}

// EnableBreakpoint turns a breakpoint on.
func (c *controller) EnableBreakpoint(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	return c.toggleBreakpoint(ctx, req, true)
}

// DisableBreakpoint turns a breakpoint off without removing it.
func (c *controller) DisableBreakpoint(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	return c.toggleBreakpoint(ctx, req, false)
}

func (c *controller) toggleBreakpoint(ctx context.Context, req *entity.Request, enabled bool) (*entity.Envelope, error) {
	s, _, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	id, err := mapper.RequestID(req, "id")
	if err != nil {
		return nil, err
	}

	bp, ok := s.Breakpoint(id)
	if !ok {
		return nil, errors.NotFound("breakpoint", id)
	}

	envelopeType := "breakpointDisabled"
	if enabled {
		bp.Handle.Enable()
		envelopeType = "breakpointEnabled"
	} else {
		bp.Handle.Disable()
	}
	return entity.NewEnvelope(envelopeType, entity.Fields{
		"breakpoint": mapper.BreakpointToWire(bp),
	}), nil
}

// ClearBreakpoints removes every breakpoint.
func (c *controller) ClearBreakpoints(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	s, _, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	return entity.NewEnvelope("breakpointsCleared", entity.Fields{
		"count": s.ClearBreakpoints(),
	}), nil
}

// ListBreakpoints reports every breakpoint with its live counters.
func (c *controller) ListBreakpoints(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	s, _, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	bps := s.Breakpoints()
	return entity.NewEnvelope("breakpoints", entity.Fields{
		"breakpoints": mapper.BreakpointsToWire(bps),
		"count":       len(bps),
	}), nil
}
