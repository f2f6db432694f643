package debugger

import (
	"context"
	"fmt"

	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/internal/errors"
	"github.com/grkek/juicy-fruit/src/debugd/mapper"
	"github.com/grkek/juicy-fruit/src/vm-lib/vm"
	"go.uber.org/zap"
)

// Ping answers with a pong.
func (c *controller) Ping(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	return entity.NewEnvelope("pong", nil), nil
}

// Init creates the session engine and attaches the debugger.
func (c *controller) Init(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	s, err := c.session(ctx)
	if err != nil {
		return nil, err
	}
	if e, _ := s.Engine(); e != nil {
		return nil, errors.Errorf(errors.CodeAlreadyInitialized, "debugger is already initialized")
	}

	limits := make(map[string]int)
	for _, field := range []string{"iterationLimit", "maxStackSize", "maxMailboxSize"} {
		v, ok, err := mapper.OptionalNonNegative(req, field)
		if err != nil {
			return nil, err
		}
		if ok {
			limits[field] = int(v)
		}
	}

	e := c.engines.New()
	cfg := e.Configure(func(cfg *vm.Config) {
		if v, ok := limits["iterationLimit"]; ok {
			cfg.IterationLimit = v
		}
		if v, ok := limits["maxStackSize"]; ok {
			cfg.MaxStackSize = v
		}
		if v, ok := limits["maxMailboxSize"]; ok {
			cfg.MaxMailboxSize = v
		}
	})
	d := e.AttachDebugger(c.pauseCallback(s))
	e.SetHook(vm.OpPrint, c.printHook(s))

	if !s.Attach(e, d) {
		return nil, errors.Errorf(errors.CodeAlreadyInitialized, "debugger is already initialized")
	}
	c.logger.Infow("debugger initialized", zap.Stringer("uuid", s.UUID))

	return entity.NewEnvelope("initialized", entity.Fields{
		"configuration": mapper.ConfigToWire(cfg),
	}), nil
}

// Load replaces every process of the engine with one unit running the given program.
func (c *controller) Load(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	s, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	if s.Running() {
		return nil, errors.Errorf(errors.CodeAlreadyRunning, "cannot load while a run is active")
	}
	program, err := mapper.RequestInstructions(req, "instructions")
	if err != nil {
		return nil, err
	}

	e.ResetProcesses()
	s.ResetSupervisors()
	p := e.Spawn(program)
	s.SetProgram(program, p.Address())

	return entity.NewEnvelope("loaded", entity.Fields{
		"processAddress":   p.Address().String(),
		"instructionCount": len(program),
	}), nil
}

// Run starts a fresh unit of the loaded program on its own goroutine. Completion is reported with pushes.
func (c *controller) Run(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	s, e, d, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	program, main := s.Program()
	if program == nil {
		return nil, errors.Errorf(errors.CodeNoProgram, "no program loaded, send load first")
	}
	if !s.BeginRun() {
		return nil, errors.Errorf(errors.CodeAlreadyRunning, "a run is already active")
	}

	// Only the unit created for the program is replaced, spawned processes survive.
	if main != 0 {
		e.Discard(main)
	}
	p := e.Spawn(program)
	s.SetProgram(program, p.Address())
	s.Pending().Drain()
	d.Reset()

	c.stats.Counter("runs_started").Inc(1)
	c.runs.Add(1)
	go c.runTask(s, e)

	return entity.NewEnvelope("running", entity.Fields{
		"processAddress": p.Address().String(),
	}), nil
}

// runTask drives the engine until it returns, then reports the outcome. The running flag is
// cleared before any result is pushed.
func (c *controller) runTask(s *entity.Session, e *vm.Engine) {
	defer c.runs.Done()

	sw := c.stats.Timer("run_duration").Start()
	err := runEngine(s.Context(), e)
	sw.Stop()
	s.FinishRun()

	aborted := errors.Is(err, vm.ErrAborted) || errors.Is(err, context.Canceled)
	if err != nil && !aborted {
		c.stats.Counter("runs_failed").Inc(1)
		c.logger.Infow("run failed", zap.Stringer("uuid", s.UUID), zap.Error(err))
		c.push(s, entity.NewEnvelope(entity.PushExecutionError, entity.Fields{
			"message": err.Error(),
		}))
	}

	c.push(s, entity.NewEnvelope(entity.PushExecutionComplete, entity.Fields{
		"aborted": aborted,
		"stats":   mapper.StatsToWire(e.Stats()),
	}))
}

func runEngine(ctx context.Context, e *vm.Engine) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine panic: %v", r)
		}
	}()
	return e.Run(ctx)
}

// pauseCallback blocks the engine goroutine until the client sends a continuation.
func (c *controller) pauseCallback(s *entity.Session) vm.PauseCallback {
	return func(p *vm.Process, in vm.Instruction) vm.Action {
		// A decision offered after the previous pause resumed must not leak into this one.
		s.Pending().Drain()
		s.SetCurrent(p)
		defer s.SetCurrent(nil)

		_, d := s.Engine()
		if d == nil || d.AbortRequested() {
			return vm.ActionAbort
		}

		state := p.Snapshot()
		fields := entity.Fields{
			"process":     mapper.ProcessToWire(state),
			"instruction": mapper.InstructionToWire(state.Counter, in),
		}
		if id, ok := d.LastHit(); ok {
			fields["breakpointId"] = id.String()
		}
		c.push(s, entity.NewEnvelope(entity.PushBreakpointHit, fields))

		action, ok := s.Pending().Receive()
		if !ok {
			return vm.ActionAbort
		}
		return action
	}
}

// printHook forwards PRINT output to the client instead of the engine output.
func (c *controller) printHook(s *entity.Session) vm.Hook {
	return func(p *vm.Process, in vm.Instruction) error {
		v, err := p.Pop()
		if err != nil {
			return err
		}
		c.push(s, entity.NewEnvelope(entity.PushStdout, entity.Fields{
			"data":    vm.Format(v) + "\n",
			"process": p.Address().String(),
		}))
		return nil
	}
}

// Step resumes the paused unit for one instruction.
func (c *controller) Step(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	return nil, c.resume(ctx, vm.ActionStep)
}

// StepOver resumes the paused unit until it is back at the current call depth.
func (c *controller) StepOver(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	return nil, c.resume(ctx, vm.ActionStepOver)
}

// Continue resumes the paused unit until the next breakpoint.
func (c *controller) Continue(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	return nil, c.resume(ctx, vm.ActionContinue)
}

func (c *controller) resume(ctx context.Context, action vm.Action) error {
	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	if !s.Running() || s.Current() == nil {
		return errors.Errorf(errors.CodeNotPaused, "execution is not paused")
	}

	// Best effort, a full or closed slot drops the decision.
	s.Pending().Offer(action)
	return nil
}

// Abort stops the active run.
func (c *controller) Abort(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	s, err := c.session(ctx)
	if err != nil {
		return nil, err
	}
	if !s.Running() {
		return nil, errors.Errorf(errors.CodeNotRunning, "no run is active")
	}

	if _, d := s.Engine(); d != nil {
		d.RequestAbort()
	}
	if s.Current() != nil {
		s.Pending().Offer(vm.ActionAbort)
	}
	return nil, nil
}
