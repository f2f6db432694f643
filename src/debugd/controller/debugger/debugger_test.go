package debugger

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/factory"
	"github.com/grkek/juicy-fruit/src/debugd/gateway/client/clientmock"
	"github.com/grkek/juicy-fruit/src/debugd/gateway/engine"
	"github.com/grkek/juicy-fruit/src/debugd/internal/clock"
	"github.com/grkek/juicy-fruit/src/debugd/internal/errors"
	"github.com/grkek/juicy-fruit/src/debugd/internal/wsfx/wsfxmock"
	"github.com/grkek/juicy-fruit/src/debugd/repository/session"
	"github.com/grkek/juicy-fruit/src/vm-lib/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const _pushTimeout = 5 * time.Second

type command func(context.Context, *entity.Request) (*entity.Envelope, error)

// harness is one controller with one open session whose pushes are collected in order.
type harness struct {
	c        *controller
	sessions session.Repository
	stats    tally.TestScope
	id       uuid.UUID
	ctx      context.Context
	pushes   chan *entity.Envelope
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	ctrl := gomock.NewController(t)
	pushes := make(chan *entity.Envelope, 1024)
	gateway := clientmock.NewMockGateway(ctrl)
	gateway.EXPECT().RegisterClient(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	gateway.EXPECT().DeregisterClient(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	gateway.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, env *entity.Envelope) error {
		pushes <- env
		return nil
	}).AnyTimes()

	cfg, err := config.NewStaticProvider(map[string]any{})
	require.NoError(t, err)
	engines, err := engine.New(engine.Params{Config: cfg, Clock: clock.New()})
	require.NoError(t, err)

	stats := tally.NewTestScope("testing", make(map[string]string, 0))
	sessions := session.New(tally.NoopScope)
	c := New(Params{
		Sessions: sessions,
		Gateway:  gateway,
		Engines:  engines,
		Logger:   zap.NewNop().Sugar(),
		Stats:    stats,
	}).(*controller)

	id, err := c.InitSession(context.Background(), wsfxmock.NewMockConn(ctrl))
	require.NoError(t, err)

	// Runs must be finished before the mock controller verifies its calls.
	t.Cleanup(func() {
		_ = c.EndSession(context.Background(), id)
		c.runs.Wait()
	})

	return &harness{
		c:        c,
		sessions: sessions,
		stats:    stats,
		id:       id,
		ctx:      context.WithValue(context.Background(), entity.SessionContextKey, id),
		pushes:   pushes,
	}
}

func (h *harness) do(t *testing.T, fn command, cmd entity.Command, fields map[string]any) *entity.Envelope {
	t.Helper()
	env, err := fn(h.ctx, factory.Request(cmd, fields))
	require.NoError(t, err)
	return env
}

func (h *harness) fail(t *testing.T, fn command, cmd entity.Command, fields map[string]any, code errors.Code) {
	t.Helper()
	env, err := fn(h.ctx, factory.Request(cmd, fields))
	require.Error(t, err)
	assert.Nil(t, env)
	assert.Equal(t, code, errors.ToCommandError(err).Code, err.Error())
}

func (h *harness) session(t *testing.T) *entity.Session {
	t.Helper()
	s, err := h.sessions.Get(context.Background(), h.id)
	require.NoError(t, err)
	return s
}

// next returns the next pushed envelope.
func (h *harness) next(t *testing.T) *entity.Envelope {
	t.Helper()
	select {
	case env := <-h.pushes:
		return env
	case <-time.After(_pushTimeout):
		require.FailNow(t, "timed out waiting for a push")
	}
	return nil
}

// waitFor skips pushes until one of the given type arrives.
func (h *harness) waitFor(t *testing.T, envelopeType string) *entity.Envelope {
	t.Helper()
	for {
		if env := h.next(t); env.Type == envelopeType {
			return env
		}
	}
}

// init initializes the session engine with optional limits.
func (h *harness) init(t *testing.T, fields map[string]any) {
	t.Helper()
	env := h.do(t, h.c.Init, entity.CommandInit, fields)
	require.Equal(t, "initialized", env.Type)
}

func (h *harness) load(t *testing.T, program string) *entity.Envelope {
	t.Helper()
	return h.do(t, h.c.Load, entity.CommandLoad, map[string]any{"instructions": factory.Program(program)})
}

// pause runs program with a breakpoint on its first instruction and waits until it is hit.
func (h *harness) pause(t *testing.T, program string) *entity.Envelope {
	t.Helper()
	h.init(t, nil)
	h.load(t, program)
	h.do(t, h.c.AddBreakpoint, entity.CommandAddBreakpoint, map[string]any{"conditionType": "counter", "value": 0})
	h.do(t, h.c.Run, entity.CommandRun, nil)
	return h.waitFor(t, entity.PushBreakpointHit)
}

func TestNew(t *testing.T) {
	assert.NotPanics(t, func() {
		New(Params{
			Lifecycle: fxtest.NewLifecycle(t),
			Stats:     tally.NewTestScope("testing", make(map[string]string, 0)),
			Logger:    zap.NewNop().Sugar(),
		})
	})
}

func TestInitSession(t *testing.T) {
	t.Run("should create and end a session", func(t *testing.T) {
		h := newHarness(t)

		count, err := h.sessions.SessionCount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		require.NoError(t, h.c.EndSession(context.Background(), h.id))
		assert.Error(t, h.c.EndSession(context.Background(), h.id), "a session ends once")

		count, err = h.sessions.SessionCount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("should remove the session when the client cannot be registered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := clientmock.NewMockGateway(ctrl)
		gateway.EXPECT().RegisterClient(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("sample"))

		sessions := session.New(tally.NoopScope)
		c := New(Params{Sessions: sessions, Gateway: gateway, Logger: zap.NewNop().Sugar(), Stats: tally.NoopScope})

		_, err := c.InitSession(context.Background(), wsfxmock.NewMockConn(ctrl))
		assert.Error(t, err)

		count, err := sessions.SessionCount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("should fail without a session in the context", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.c.GetState(context.Background(), factory.Request(entity.CommandGetState, nil))
		assert.Error(t, err)
	})
}

func TestPing(t *testing.T) {
	h := newHarness(t)
	env := h.do(t, h.c.Ping, entity.CommandPing, nil)
	assert.Equal(t, "pong", env.Type)
}

func TestInit(t *testing.T) {
	t.Run("should report the effective configuration", func(t *testing.T) {
		h := newHarness(t)
		env := h.do(t, h.c.Init, entity.CommandInit, map[string]any{"iterationLimit": 50, "maxStackSize": 8})

		cfg := env.Fields["configuration"].(entity.Fields)
		assert.Equal(t, 50, cfg["iterationLimit"])
		assert.Equal(t, 8, cfg["maxStackSize"])
		assert.Equal(t, vm.DefaultConfig().MaxMailboxSize, cfg["maxMailboxSize"])
	})

	t.Run("should keep the engine on a second init", func(t *testing.T) {
		h := newHarness(t)
		h.init(t, nil)
		before, _ := h.session(t).Engine()

		h.fail(t, h.c.Init, entity.CommandInit, nil, errors.CodeAlreadyInitialized)

		after, _ := h.session(t).Engine()
		assert.Same(t, before, after)
	})

	t.Run("should reject invalid limits without initializing", func(t *testing.T) {
		h := newHarness(t)
		h.fail(t, h.c.Init, entity.CommandInit, map[string]any{"maxStackSize": "lots"}, errors.CodeInvalidValue)
		h.fail(t, h.c.Init, entity.CommandInit, map[string]any{"iterationLimit": -1}, errors.CodeInvalidValue)

		e, _ := h.session(t).Engine()
		assert.Nil(t, e)
		h.init(t, nil)
	})
}

func TestNotInitialized(t *testing.T) {
	h := newHarness(t)
	commands := map[entity.Command]command{
		entity.CommandLoad:                   h.c.Load,
		entity.CommandRun:                    h.c.Run,
		entity.CommandAddBreakpoint:          h.c.AddBreakpoint,
		entity.CommandRemoveBreakpoint:       h.c.RemoveBreakpoint,
		entity.CommandEnableBreakpoint:       h.c.EnableBreakpoint,
		entity.CommandDisableBreakpoint:      h.c.DisableBreakpoint,
		entity.CommandClearBreakpoints:       h.c.ClearBreakpoints,
		entity.CommandListBreakpoints:        h.c.ListBreakpoints,
		entity.CommandEvaluate:               h.c.Evaluate,
		entity.CommandGetProcessInfo:         h.c.GetProcessInfo,
		entity.CommandListProcesses:          h.c.ListProcesses,
		entity.CommandInspectStack:           h.c.InspectStack,
		entity.CommandInspectLocals:          h.c.InspectLocals,
		entity.CommandInspectGlobals:         h.c.InspectGlobals,
		entity.CommandGetCallStack:           h.c.GetCallStack,
		entity.CommandGetInstructions:        h.c.GetInstructions,
		entity.CommandGetConfiguration:       h.c.GetConfiguration,
		entity.CommandGetFaultToleranceStats: h.c.GetFaultToleranceStats,
		entity.CommandGetCrashDumps:          h.c.GetCrashDumps,
		entity.CommandGetRegisteredProcesses: h.c.GetRegisteredProcesses,
		entity.CommandSetLocal:               h.c.SetLocal,
		entity.CommandSetGlobal:              h.c.SetGlobal,
		entity.CommandKillProcess:            h.c.KillProcess,
		entity.CommandSendMessage:            h.c.SendMessage,
		entity.CommandGetMailbox:             h.c.GetMailbox,
		entity.CommandSpawnProcess:           h.c.SpawnProcess,
		entity.CommandSpawnLinkedProcess:     h.c.SpawnLinkedProcess,
		entity.CommandSpawnMonitoredProcess:  h.c.SpawnMonitoredProcess,
		entity.CommandLinkProcesses:          h.c.LinkProcesses,
		entity.CommandUnlinkProcesses:        h.c.UnlinkProcesses,
		entity.CommandMonitorProcess:         h.c.MonitorProcess,
		entity.CommandDemonitorProcess:       h.c.DemonitorProcess,
		entity.CommandSetTrapExit:            h.c.SetTrapExit,
		entity.CommandExitProcess:            h.c.ExitProcess,
		entity.CommandRegisterProcess:        h.c.RegisterProcess,
		entity.CommandWhereisProcess:         h.c.WhereisProcess,
		entity.CommandGetProcessLinks:        h.c.GetProcessLinks,
		entity.CommandGetProcessMonitors:     h.c.GetProcessMonitors,
		entity.CommandCreateSupervisor:       h.c.CreateSupervisor,
		entity.CommandAddChild:               h.c.AddChild,
		entity.CommandListSupervisors:        h.c.ListSupervisors,
		entity.CommandGetSupervisorInfo:      h.c.GetSupervisorInfo,
		entity.CommandGetSupervisorChildren:  h.c.GetSupervisorChildren,
		entity.CommandSetConfiguration:       h.c.SetConfiguration,
	}

	for cmd, fn := range commands {
		t.Run(string(cmd), func(t *testing.T) {
			h.fail(t, fn, cmd, nil, errors.CodeNotInitialized)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("should load a program into a fresh unit", func(t *testing.T) {
		h := newHarness(t)
		h.init(t, nil)

		env := h.load(t, factory.Counting)
		assert.Equal(t, "loaded", env.Type)
		assert.Equal(t, "1", env.Fields["processAddress"])
		assert.Equal(t, 8, env.Fields["instructionCount"])

		env = h.load(t, `["NOP"]`)
		assert.Equal(t, 1, env.Fields["instructionCount"])
		procs := h.do(t, h.c.ListProcesses, entity.CommandListProcesses, nil)
		assert.Equal(t, 1, procs.Fields["count"], "load replaces every process")
	})

	t.Run("should reject bad programs", func(t *testing.T) {
		h := newHarness(t)
		h.init(t, nil)
		h.fail(t, h.c.Load, entity.CommandLoad, nil, errors.Code("missingInstructions"))
		h.fail(t, h.c.Load, entity.CommandLoad, map[string]any{"instructions": factory.Program(`[{"op":"BOGUS"}]`)}, errors.CodeParseError)
		h.fail(t, h.c.Load, entity.CommandLoad, map[string]any{"instructions": "NOP"}, errors.CodeParseError)
	})

	t.Run("should fail while a run is active", func(t *testing.T) {
		h := newHarness(t)
		h.pause(t, factory.Counting)
		h.fail(t, h.c.Load, entity.CommandLoad, map[string]any{"instructions": factory.Program(`["NOP"]`)}, errors.CodeAlreadyRunning)
		h.do(t, h.c.Continue, entity.CommandContinue, nil)
		h.waitFor(t, entity.PushExecutionComplete)
	})
}

func TestRun(t *testing.T) {
	t.Run("should run to completion", func(t *testing.T) {
		h := newHarness(t)
		h.init(t, nil)
		h.load(t, `["NOP"]`)

		env := h.do(t, h.c.Run, entity.CommandRun, nil)
		assert.Equal(t, "running", env.Type)
		assert.Equal(t, "2", env.Fields["processAddress"], "every run gets a fresh unit")

		done := h.next(t)
		require.Equal(t, entity.PushExecutionComplete, done.Type)
		assert.Equal(t, false, done.Fields["aborted"])
		assert.Contains(t, done.Fields, "stats")

		state := h.do(t, h.c.GetState, entity.CommandGetState, nil)
		assert.Equal(t, false, state.Fields["isRunning"])
		assert.Equal(t, false, state.Fields["isPaused"])

		counter, ok := h.stats.Snapshot().Counters()["testing.debugger.runs_started+"]
		require.True(t, ok)
		assert.Equal(t, int64(1), counter.Value())
	})

	t.Run("should push program output", func(t *testing.T) {
		h := newHarness(t)
		h.init(t, nil)
		h.load(t, factory.Counting)
		running := h.do(t, h.c.Run, entity.CommandRun, nil)

		for _, want := range []string{"1\n", "2\n", "3\n"} {
			env := h.next(t)
			require.Equal(t, entity.PushStdout, env.Type)
			assert.Equal(t, want, env.Fields["data"])
			assert.Equal(t, running.Fields["processAddress"], env.Fields["process"])
		}
		assert.Equal(t, entity.PushExecutionComplete, h.next(t).Type)
	})

	t.Run("should report engine failures", func(t *testing.T) {
		h := newHarness(t)
		h.init(t, map[string]any{"iterationLimit": 5})
		h.load(t, factory.Forever)
		h.do(t, h.c.Run, entity.CommandRun, nil)

		failed := h.next(t)
		require.Equal(t, entity.PushExecutionError, failed.Type)
		assert.Contains(t, failed.Fields["message"], "iteration limit")

		done := h.next(t)
		require.Equal(t, entity.PushExecutionComplete, done.Type)
		assert.Equal(t, false, done.Fields["aborted"])

		counter, ok := h.stats.Snapshot().Counters()["testing.debugger.runs_failed+"]
		require.True(t, ok)
		assert.Equal(t, int64(1), counter.Value())
	})

	t.Run("should require a program", func(t *testing.T) {
		h := newHarness(t)
		h.init(t, nil)
		h.fail(t, h.c.Run, entity.CommandRun, nil, errors.CodeNoProgram)
	})

	t.Run("should reject a second run", func(t *testing.T) {
		h := newHarness(t)
		h.pause(t, factory.Counting)
		h.fail(t, h.c.Run, entity.CommandRun, nil, errors.CodeAlreadyRunning)
		h.do(t, h.c.Continue, entity.CommandContinue, nil)
		h.waitFor(t, entity.PushExecutionComplete)
	})
}

func TestBreakpointHit(t *testing.T) {
	t.Run("should pause and continue", func(t *testing.T) {
		h := newHarness(t)
		hit := h.pause(t, factory.Counting)

		assert.Equal(t, "1", hit.Fields["breakpointId"])
		proc := hit.Fields["process"].(entity.Fields)
		assert.Equal(t, 0, proc["counter"])
		instruction := hit.Fields["instruction"].(entity.Fields)
		assert.Equal(t, "NOP", instruction["op"])

		state := h.do(t, h.c.GetState, entity.CommandGetState, nil)
		assert.Equal(t, true, state.Fields["isRunning"])
		assert.Equal(t, true, state.Fields["isPaused"])
		assert.Equal(t, proc["address"], state.Fields["currentProcess"])

		eval := h.do(t, h.c.Evaluate, entity.CommandEvaluate, map[string]any{"expression": "counter"})
		assert.Equal(t, 0, eval.Fields["result"])

		h.do(t, h.c.Continue, entity.CommandContinue, nil)
		for _, want := range []string{"1\n", "2\n", "3\n"} {
			env := h.next(t)
			require.Equal(t, entity.PushStdout, env.Type)
			assert.Equal(t, want, env.Fields["data"])
		}
		done := h.next(t)
		require.Equal(t, entity.PushExecutionComplete, done.Type)
		assert.Equal(t, false, done.Fields["aborted"])
	})

	t.Run("should step one instruction at a time", func(t *testing.T) {
		h := newHarness(t)
		h.pause(t, factory.Counting)

		h.do(t, h.c.Step, entity.CommandStep, nil)
		hit := h.next(t)
		require.Equal(t, entity.PushBreakpointHit, hit.Type)
		assert.NotContains(t, hit.Fields, "breakpointId")
		assert.Equal(t, 1, hit.Fields["process"].(entity.Fields)["counter"])

		h.do(t, h.c.StepOver, entity.CommandStepOver, nil)
		hit = h.next(t)
		require.Equal(t, entity.PushBreakpointHit, hit.Type)
		assert.Equal(t, 2, hit.Fields["process"].(entity.Fields)["counter"])

		h.do(t, h.c.Continue, entity.CommandContinue, nil)
		h.waitFor(t, entity.PushExecutionComplete)
	})

	t.Run("should honor the ignore count", func(t *testing.T) {
		h := newHarness(t)
		h.init(t, nil)
		h.load(t, `["NOP", {"op":"JUMP","arg":2}, "NOP"]`)
		h.do(t, h.c.AddBreakpoint, entity.CommandAddBreakpoint, map[string]any{"conditionType": "stackSize", "value": 0, "ignoreCount": 2})
		h.do(t, h.c.Run, entity.CommandRun, nil)

		hit := h.next(t)
		require.Equal(t, entity.PushBreakpointHit, hit.Type)
		assert.Equal(t, 2, hit.Fields["process"].(entity.Fields)["counter"])

		h.do(t, h.c.Continue, entity.CommandContinue, nil)
		assert.Equal(t, entity.PushExecutionComplete, h.next(t).Type)

		list := h.do(t, h.c.ListBreakpoints, entity.CommandListBreakpoints, nil)
		bp := list.Fields["breakpoints"].([]entity.Fields)[0]
		assert.Equal(t, 1, bp["hitCount"])
		assert.Equal(t, 0, bp["ignoreCount"])
	})
}

func TestExecutionControlWhenIdle(t *testing.T) {
	h := newHarness(t)
	h.init(t, nil)

	h.fail(t, h.c.Step, entity.CommandStep, nil, errors.CodeNotPaused)
	h.fail(t, h.c.StepOver, entity.CommandStepOver, nil, errors.CodeNotPaused)
	h.fail(t, h.c.Continue, entity.CommandContinue, nil, errors.CodeNotPaused)
	h.fail(t, h.c.Abort, entity.CommandAbort, nil, errors.CodeNotRunning)

	// Nothing was queued for a later pause.
	slot := h.session(t).Pending()
	require.True(t, slot.Offer(vm.ActionStep))
	slot.Drain()
}

func TestAbort(t *testing.T) {
	t.Run("should abort a paused run", func(t *testing.T) {
		h := newHarness(t)
		h.pause(t, factory.Counting)

		env, err := h.c.Abort(h.ctx, factory.Request(entity.CommandAbort, nil))
		require.NoError(t, err)
		assert.Nil(t, env)

		done := h.next(t)
		require.Equal(t, entity.PushExecutionComplete, done.Type, "no executionError after abort")
		assert.Equal(t, true, done.Fields["aborted"])
		assert.False(t, h.session(t).Running())
	})

	t.Run("should abort a busy run", func(t *testing.T) {
		h := newHarness(t)
		h.init(t, map[string]any{"iterationLimit": 0})
		h.load(t, factory.Forever)
		h.do(t, h.c.Run, entity.CommandRun, nil)

		_, err := h.c.Abort(h.ctx, factory.Request(entity.CommandAbort, nil))
		require.NoError(t, err)

		done := h.next(t)
		require.Equal(t, entity.PushExecutionComplete, done.Type)
		assert.Equal(t, true, done.Fields["aborted"])
	})

	t.Run("should allow a new run after abort", func(t *testing.T) {
		h := newHarness(t)
		h.pause(t, factory.Counting)
		_, err := h.c.Abort(h.ctx, factory.Request(entity.CommandAbort, nil))
		require.NoError(t, err)
		h.waitFor(t, entity.PushExecutionComplete)

		h.do(t, h.c.Run, entity.CommandRun, nil)
		hit := h.next(t)
		require.Equal(t, entity.PushBreakpointHit, hit.Type, "the abort request does not leak into the next run")
		h.do(t, h.c.Continue, entity.CommandContinue, nil)
		h.waitFor(t, entity.PushExecutionComplete)
	})
}

func TestEndSessionWhilePaused(t *testing.T) {
	h := newHarness(t)
	h.pause(t, factory.Forever)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, h.c.waitForRuns(ctx), "the run is blocked on the pause")

	require.NoError(t, h.c.EndSession(context.Background(), h.id))

	ctx, cancel = context.WithTimeout(context.Background(), _pushTimeout)
	defer cancel()
	require.NoError(t, h.c.waitForRuns(ctx))

	done := h.waitFor(t, entity.PushExecutionComplete)
	assert.Equal(t, true, done.Fields["aborted"])
}

func TestLifecycleWaitsForRuns(t *testing.T) {
	h := newHarness(t)
	lc := fxtest.NewLifecycle(t)
	c := New(Params{
		Lifecycle: lc,
		Sessions:  h.sessions,
		Gateway:   h.c.gateway,
		Engines:   h.c.engines,
		Logger:    zap.NewNop().Sugar(),
		Stats:     tally.NoopScope,
	}).(*controller)

	lc.RequireStart()
	_, err := c.Init(h.ctx, factory.Request(entity.CommandInit, nil))
	require.NoError(t, err)
	_, err = c.Load(h.ctx, factory.Request(entity.CommandLoad, map[string]any{"instructions": factory.Program(`["NOP"]`)}))
	require.NoError(t, err)
	_, err = c.Run(h.ctx, factory.Request(entity.CommandRun, nil))
	require.NoError(t, err)

	lc.RequireStop()
	h.waitFor(t, entity.PushExecutionComplete)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
