// Package debugger implements the remote debugger business logic.
package debugger

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/gateway/client"
	"github.com/grkek/juicy-fruit/src/debugd/gateway/engine"
	"github.com/grkek/juicy-fruit/src/debugd/internal/errors"
	"github.com/grkek/juicy-fruit/src/debugd/internal/wsfx"
	"github.com/grkek/juicy-fruit/src/debugd/repository/session"
	"github.com/grkek/juicy-fruit/src/vm-lib/vm"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=debuggermock/debugger_mock.go -package=debuggermock . Controller

// Controller orchestrates the business logic for each command. A nil envelope with a nil error means the command has no synchronous reply.
type Controller interface {
	Ping(ctx context.Context, req *entity.Request) (*entity.Envelope, error)

	// Lifecycle and execution control.
	Init(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	Load(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	Run(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	Step(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	StepOver(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	Continue(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	Abort(ctx context.Context, req *entity.Request) (*entity.Envelope, error)

	// Breakpoints.
	AddBreakpoint(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	RemoveBreakpoint(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	EnableBreakpoint(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	DisableBreakpoint(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	ClearBreakpoints(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	ListBreakpoints(ctx context.Context, req *entity.Request) (*entity.Envelope, error)

	// Introspection.
	GetState(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	Evaluate(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	GetProcessInfo(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	ListProcesses(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	InspectStack(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	InspectLocals(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	InspectGlobals(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	GetCallStack(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	GetInstructions(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	GetConfiguration(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	GetFaultToleranceStats(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	GetCrashDumps(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	GetRegisteredProcesses(ctx context.Context, req *entity.Request) (*entity.Envelope, error)

	// Paused state mutation.
	SetLocal(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	SetGlobal(ctx context.Context, req *entity.Request) (*entity.Envelope, error)

	// Process and topology control.
	KillProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	SendMessage(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	GetMailbox(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	SpawnProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	SpawnLinkedProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	SpawnMonitoredProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	LinkProcesses(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	UnlinkProcesses(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	MonitorProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	DemonitorProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	SetTrapExit(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	ExitProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	RegisterProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	WhereisProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	GetProcessLinks(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	GetProcessMonitors(ctx context.Context, req *entity.Request) (*entity.Envelope, error)

	// Supervision.
	CreateSupervisor(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	AddChild(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	ListSupervisors(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	GetSupervisorInfo(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	GetSupervisorChildren(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	RemoveChild(ctx context.Context, req *entity.Request) (*entity.Envelope, error)
	RestartChild(ctx context.Context, req *entity.Request) (*entity.Envelope, error)

	// Configuration.
	SetConfiguration(ctx context.Context, req *entity.Request) (*entity.Envelope, error)

	// Custom methods for use within this service.
	InitSession(ctx context.Context, conn wsfx.Conn) (uuid.UUID, error)
	EndSession(ctx context.Context, id uuid.UUID) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Sessions  session.Repository
	Gateway   client.Gateway
	Engines   engine.Factory
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

type controller struct {
	sessions session.Repository
	gateway  client.Gateway
	engines  engine.Factory
	logger   *zap.SugaredLogger
	stats    tally.Scope

	// runs tracks the engine goroutines started by Run.
	runs sync.WaitGroup
}

// New constructs a new debugger controller.
func New(p Params) Controller {
	c := &controller{
		sessions: p.Sessions,
		gateway:  p.Gateway,
		engines:  p.Engines,
		logger:   p.Logger,
		stats:    p.Stats.SubScope("debugger"),
	}

	if p.Lifecycle != nil {
		p.Lifecycle.Append(fx.Hook{
			OnStop: c.waitForRuns,
		})
	}
	return c
}

// InitSession creates a new empty session and returns its UUID.
func (c *controller) InitSession(ctx context.Context, conn wsfx.Conn) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := c.sessions.Create(ctx, id); err != nil {
		return uuid.Nil, err
	}
	if err := c.gateway.RegisterClient(ctx, id, conn); err != nil {
		_, removeErr := c.sessions.Remove(ctx, id)
		return uuid.Nil, multierr.Append(err, removeErr)
	}
	return id, nil
}

// EndSession tears down the session of a closed connection. Only the caller that removes
// the session from the repository closes it, so a paused run is aborted exactly once.
func (c *controller) EndSession(ctx context.Context, id uuid.UUID) error {
	s, err := c.sessions.Remove(ctx, id)
	if err != nil {
		return err
	}

	if s.Running() {
		c.logger.Infow("aborting run of closed session", zap.Stringer("uuid", id))
	}
	s.Close()

	return c.gateway.DeregisterClient(ctx, id)
}

func (c *controller) waitForRuns(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.runs.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for active runs: %w", ctx.Err())
	}
}

// session returns the session bound to ctx.
func (c *controller) session(ctx context.Context) (*entity.Session, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting session from context: %w", err)
	}
	return s, nil
}

// initialized returns the session bound to ctx along with its engine, failing with notInitialized before init.
func (c *controller) initialized(ctx context.Context) (*entity.Session, *vm.Engine, *vm.Debugger, error) {
	s, err := c.session(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	e, d := s.Engine()
	if e == nil {
		return nil, nil, nil, errors.Errorf(errors.CodeNotInitialized, "debugger is not initialized, send init first")
	}
	return s, e, d, nil
}

// push sends an unsolicited envelope to the session's client. Failures are logged and dropped.
func (c *controller) push(s *entity.Session, env *entity.Envelope) {
	ctx := context.WithValue(context.Background(), entity.SessionContextKey, s.UUID)
	if err := c.gateway.Send(ctx, env); err != nil {
		c.logger.Warnw("dropping push", zap.Stringer("uuid", s.UUID), zap.String("type", env.Type), zap.Error(err))
	}
}

// process resolves an address into a process of e.
func process(e *vm.Engine, addr vm.Address) (*vm.Process, error) {
	p, ok := e.Process(addr)
	if !ok {
		return nil, errors.NotFound("process", addr.String())
	}
	return p, nil
}

// engineError maps failures reported by the engine onto protocol error codes.
func engineError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, vm.ErrProcessNotFound), errors.Is(err, vm.ErrMonitorNotFound):
		return errors.Errorf(errors.CodeNotFound, "%v", err)
	case errors.Is(err, vm.ErrNameRegistered):
		return errors.Errorf(errors.CodeAlreadyRegistered, "%v", err)
	}
	return errors.Errorf(errors.CodeCommandError, "%v", err)
}
