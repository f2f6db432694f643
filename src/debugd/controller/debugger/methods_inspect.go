package debugger

import (
	"context"
	"strconv"
	"strings"

	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/internal/errors"
	"github.com/grkek/juicy-fruit/src/debugd/mapper"
	"github.com/grkek/juicy-fruit/src/vm-lib/vm"
)

// GetState reports the session state. It is valid before init.
func (c *controller) GetState(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	s, err := c.session(ctx)
	if err != nil {
		return nil, err
	}

	e, _ := s.Engine()
	program, _ := s.Program()
	current := s.Current()
	fields := entity.Fields{
		"initialized":     e != nil,
		"isRunning":       s.Running(),
		"isPaused":        current != nil,
		"hasProgram":      program != nil,
		"processCount":    0,
		"breakpointCount": len(s.Breakpoints()),
		"supervisorCount": len(s.Supervisors()),
	}
	if e != nil {
		fields["processCount"] = len(e.Processes())
	}
	if current != nil {
		fields["currentProcess"] = current.Address().String()
	}
	return entity.NewEnvelope("state", fields), nil
}

// Evaluate reads one named property of the paused unit.
func (c *controller) Evaluate(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	s, _, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	p := s.Current()
	if p == nil {
		return nil, errors.Errorf(errors.CodeNotPaused, "execution is not paused")
	}
	expr, err := mapper.RequestString(req, "expression")
	if err != nil {
		return nil, err
	}

	result, err := evaluate(p, strings.TrimSpace(expr))
	if err != nil {
		return nil, err
	}
	return entity.NewEnvelope("evaluation", entity.Fields{
		"expression": expr,
		"result":     result,
	}), nil
}

// evaluate resolves expressions of the form "name", "local.N" or "global.NAME" against p.
func evaluate(p *vm.Process, expr string) (any, error) {
	state := p.Snapshot()

	if rest, ok := strings.CutPrefix(expr, "local."); ok {
		i, err := strconv.Atoi(rest)
		if err != nil || i < 0 || i >= len(state.Locals) {
			return nil, errors.Errorf(errors.CodeInvalidExpression, "no local at index %q", rest)
		}
		return state.Locals[i], nil
	}
	if name, ok := strings.CutPrefix(expr, "global."); ok {
		v, found := state.Globals[name]
		if !found {
			return nil, errors.Errorf(errors.CodeInvalidExpression, "no global named %q", name)
		}
		return v, nil
	}

	switch expr {
	case "stack":
		return mapper.ValuesToWire(state.Stack), nil
	case "top":
		if len(state.Stack) == 0 {
			return nil, nil
		}
		return state.Stack[len(state.Stack)-1], nil
	case "stackSize":
		return len(state.Stack), nil
	case "locals":
		return mapper.ValuesToWire(state.Locals), nil
	case "globals":
		return mapper.GlobalsToWire(state.Globals), nil
	case "callStack":
		return mapper.FramesToWire(state.CallStack), nil
	case "callDepth":
		return state.CallDepth(), nil
	case "counter":
		return state.Counter, nil
	case "address":
		return state.Address.String(), nil
	case "status":
		return state.Status.String(), nil
	case "trapExit":
		return state.TrapExit, nil
	case "mailbox":
		return mapper.ValuesToWire(state.Mailbox), nil
	case "mailboxSize":
		return len(state.Mailbox), nil
	case "links":
		return mapper.AddressesToWire(state.Links), nil
	case "instruction":
		if state.Counter >= len(p.Instructions()) {
			return nil, nil
		}
		return mapper.InstructionToWire(state.Counter, p.Instructions()[state.Counter]), nil
	}
	return nil, errors.Errorf(errors.CodeInvalidExpression, "unknown expression %q", expr)
}

// GetProcessInfo reports the full state of one process.
func (c *controller) GetProcessInfo(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	addr, err := mapper.RequestAddress(req, "address", "address")
	if err != nil {
		return nil, err
	}
	p, err := process(e, addr)
	if err != nil {
		return nil, err
	}
	return entity.NewEnvelope("processInfo", entity.Fields{
		"process": mapper.ProcessToWire(p.Snapshot()),
	}), nil
}

// ListProcesses reports every process known to the engine.
func (c *controller) ListProcesses(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	procs := e.Processes()
	out := make([]entity.Fields, 0, len(procs))
	for _, p := range procs {
		out = append(out, mapper.ProcessToWire(p.Snapshot()))
	}
	return entity.NewEnvelope("processes", entity.Fields{
		"processes": out,
		"count":     len(out),
	}), nil
}

// target resolves the process named by the optional "address" field, falling back to the paused unit.
func (c *controller) target(ctx context.Context, req *entity.Request) (*vm.Process, error) {
	s, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	addr, ok, err := mapper.OptionalAddress(req, "address")
	if err != nil {
		return nil, err
	}
	if ok {
		return process(e, addr)
	}
	p := s.Current()
	if p == nil {
		return nil, errors.Errorf(errors.CodeNotPaused, "execution is not paused and no address was given")
	}
	return p, nil
}

// InspectStack reports the operand stack.
func (c *controller) InspectStack(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	p, err := c.target(ctx, req)
	if err != nil {
		return nil, err
	}
	state := p.Snapshot()
	return entity.NewEnvelope("stack", entity.Fields{
		"address": state.Address.String(),
		"stack":   mapper.ValuesToWire(state.Stack),
		"count":   len(state.Stack),
	}), nil
}

// InspectLocals reports the local variables.
func (c *controller) InspectLocals(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	p, err := c.target(ctx, req)
	if err != nil {
		return nil, err
	}
	state := p.Snapshot()
	return entity.NewEnvelope("locals", entity.Fields{
		"address": state.Address.String(),
		"locals":  mapper.ValuesToWire(state.Locals),
		"count":   len(state.Locals),
	}), nil
}

// InspectGlobals reports the process globals.
func (c *controller) InspectGlobals(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	p, err := c.target(ctx, req)
	if err != nil {
		return nil, err
	}
	state := p.Snapshot()
	return entity.NewEnvelope("globals", entity.Fields{
		"address": state.Address.String(),
		"globals": mapper.GlobalsToWire(state.Globals),
		"count":   len(state.Globals),
	}), nil
}

// GetCallStack reports the call frames.
func (c *controller) GetCallStack(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	p, err := c.target(ctx, req)
	if err != nil {
		return nil, err
	}
	state := p.Snapshot()
	return entity.NewEnvelope("callStack", entity.Fields{
		"address":   state.Address.String(),
		"callStack": mapper.FramesToWire(state.CallStack),
		"depth":     state.CallDepth(),
	}), nil
}

// GetInstructions lists the program of one process, or the loaded program when no address is given.
func (c *controller) GetInstructions(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	s, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	addr, ok, err := mapper.OptionalAddress(req, "address")
	if err != nil {
		return nil, err
	}

	if ok {
		p, err := process(e, addr)
		if err != nil {
			return nil, err
		}
		program := p.Instructions()
		return entity.NewEnvelope("instructions", entity.Fields{
			"address":      addr.String(),
			"instructions": mapper.InstructionsToWire(program),
			"counter":      p.Snapshot().Counter,
			"count":        len(program),
		}), nil
	}

	program, _ := s.Program()
	if program == nil {
		return nil, errors.Errorf(errors.CodeNoProgram, "no program loaded, send load first")
	}
	return entity.NewEnvelope("instructions", entity.Fields{
		"instructions": mapper.InstructionsToWire(program),
		"count":        len(program),
	}), nil
}

// GetConfiguration reports the engine configuration.
func (c *controller) GetConfiguration(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	return entity.NewEnvelope("configuration", entity.Fields{
		"configuration": mapper.ConfigToWire(e.Config()),
	}), nil
}

// GetFaultToleranceStats reports the engine counters.
func (c *controller) GetFaultToleranceStats(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	return entity.NewEnvelope("faultToleranceStats", entity.Fields{
		"stats": mapper.StatsToWire(e.Stats()),
	}), nil
}

// GetCrashDumps reports every recorded abnormal termination.
func (c *controller) GetCrashDumps(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	dumps := e.CrashDumps()
	return entity.NewEnvelope("crashDumps", entity.Fields{
		"crashDumps": mapper.CrashDumpsToWire(dumps),
		"count":      len(dumps),
	}), nil
}

// GetRegisteredProcesses reports the name registry.
func (c *controller) GetRegisteredProcesses(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	names := e.Registered()
	return entity.NewEnvelope("registeredProcesses", entity.Fields{
		"processes": mapper.RegisteredToWire(names),
		"count":     len(names),
	}), nil
}

// SetLocal overwrites a local of the paused unit, growing the locals when needed.
func (c *controller) SetLocal(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	s, _, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	p := s.Current()
	if p == nil {
		return nil, errors.Errorf(errors.CodeNotPaused, "execution is not paused")
	}
	index, err := mapper.RequestInt(req, "index")
	if err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, errors.Invalid("index", "must be a non-negative integer")
	}
	value, err := mapper.RequestValue(req, "value")
	if err != nil {
		return nil, err
	}

	if err := p.SetLocal(int(index), value); err != nil {
		return nil, errors.Invalid("index", err.Error())
	}
	return entity.NewEnvelope("localSet", entity.Fields{
		"address": p.Address().String(),
		"index":   index,
		"value":   value,
		"count":   len(p.Snapshot().Locals),
	}), nil
}

// SetGlobal overwrites a global of the paused unit.
func (c *controller) SetGlobal(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	s, _, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	p := s.Current()
	if p == nil {
		return nil, errors.Errorf(errors.CodeNotPaused, "execution is not paused")
	}
	name, err := mapper.RequestString(req, "name")
	if err != nil {
		return nil, err
	}
	value, err := mapper.RequestValue(req, "value")
	if err != nil {
		return nil, err
	}

	p.SetGlobal(name, value)
	return entity.NewEnvelope("globalSet", entity.Fields{
		"address": p.Address().String(),
		"name":    name,
		"value":   value,
	}), nil
}
