package debugger

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/gorilla/websocket"
	controller "github.com/grkek/juicy-fruit/src/debugd/controller/debugger"
	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/gateway/client"
	"github.com/grkek/juicy-fruit/src/debugd/internal/errors"
	"github.com/grkek/juicy-fruit/src/debugd/mapper"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/zap"
)

const _unknownCommandTag = "unknown"

type router struct {
	debugger controller.Controller
	gateway  client.Gateway
	uuid     uuid.UUID
	logger   *zap.SugaredLogger
	stats    tally.Scope
}

// HandleMessage handles routing for a single message. Every failure is answered with an error envelope
// and the connection stays open.
func (r *router) HandleMessage(ctx context.Context, messageType int, data []byte) {
	ctx = context.WithValue(ctx, entity.SessionContextKey, r.uuid)

	env, cmd, err := r.handle(ctx, messageType, data)
	if cmd != "" {
		r.stats.Tagged(map[string]string{"command": cmd}).Counter("commands").Inc(1)
	}
	if err != nil {
		ce := errors.ToCommandError(err)
		r.stats.Tagged(map[string]string{"code": string(ce.Code)}).Counter("command_errors").Inc(1)
		if ce.Code == errors.CodeCommandError {
			r.logger.Infow("command failed", zap.String("command", cmd), zap.Error(err))
		}
		env = mapper.ErrorToEnvelope(err)
	}
	if env == nil {
		return
	}

	if err := r.gateway.Send(ctx, env); err != nil {
		r.logger.Warnw("sending reply", zap.String("type", env.Type), zap.Error(err))
	}
}

// handle decodes one frame and dispatches it, returning the command name used for metrics.
func (r *router) handle(ctx context.Context, messageType int, data []byte) (env *entity.Envelope, cmd string, err error) {
	if messageType != websocket.TextMessage {
		return nil, "", errors.Errorf(errors.CodeUnsupportedFormat, "only text frames are supported")
	}
	req, err := mapper.MessageToRequest(data)
	if err != nil {
		return nil, "", err
	}

	cmd = string(req.Command)
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Errorw("recovered from panic in command", zap.String("command", cmd), zap.Any("panic", rec), zap.Stack("stack"))
			env, err = nil, errors.Errorf(errors.CodeCommandError, "%v", rec)
		}
	}()

	env, err = r.dispatch(ctx, req)
	if err != nil && errors.ToCommandError(err).Code == errors.CodeUnknownCommand {
		cmd = _unknownCommandTag
	}
	return env, cmd, err
}

func (r *router) dispatch(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	switch req.Command {
	case entity.CommandPing:
		return r.debugger.Ping(ctx, req)

	// Lifecycle and execution control.
	case entity.CommandInit:
		return r.debugger.Init(ctx, req)

	case entity.CommandLoad:
		return r.debugger.Load(ctx, req)

	case entity.CommandRun:
		return r.debugger.Run(ctx, req)

	case entity.CommandStep:
		return r.debugger.Step(ctx, req)

	case entity.CommandStepOver:
		return r.debugger.StepOver(ctx, req)

	case entity.CommandContinue:
		return r.debugger.Continue(ctx, req)

	case entity.CommandAbort:
		return r.debugger.Abort(ctx, req)

	// Breakpoints.
	case entity.CommandAddBreakpoint:
		return r.debugger.AddBreakpoint(ctx, req)

	case entity.CommandRemoveBreakpoint:
		return r.debugger.RemoveBreakpoint(ctx, req)

	case entity.CommandEnableBreakpoint:
		return r.debugger.EnableBreakpoint(ctx, req)

	case entity.CommandDisableBreakpoint:
		return r.debugger.DisableBreakpoint(ctx, req)

	case entity.CommandClearBreakpoints:
		return r.debugger.ClearBreakpoints(ctx, req)

	case entity.CommandListBreakpoints:
		return r.debugger.ListBreakpoints(ctx, req)

	// Introspection.
	case entity.CommandGetState:
		return r.debugger.GetState(ctx, req)

	case entity.CommandEvaluate:
		return r.debugger.Evaluate(ctx, req)

	case entity.CommandGetProcessInfo:
		return r.debugger.GetProcessInfo(ctx, req)

	case entity.CommandListProcesses:
		return r.debugger.ListProcesses(ctx, req)

	case entity.CommandInspectStack:
		return r.debugger.InspectStack(ctx, req)

	case entity.CommandInspectLocals:
		return r.debugger.InspectLocals(ctx, req)

	case entity.CommandInspectGlobals:
		return r.debugger.InspectGlobals(ctx, req)

	case entity.CommandGetCallStack:
		return r.debugger.GetCallStack(ctx, req)

	case entity.CommandGetInstructions:
		return r.debugger.GetInstructions(ctx, req)

	case entity.CommandGetConfiguration:
		return r.debugger.GetConfiguration(ctx, req)

	case entity.CommandGetFaultToleranceStats:
		return r.debugger.GetFaultToleranceStats(ctx, req)

	case entity.CommandGetCrashDumps:
		return r.debugger.GetCrashDumps(ctx, req)

	case entity.CommandGetRegisteredProcesses:
		return r.debugger.GetRegisteredProcesses(ctx, req)

	// Paused state mutation.
	case entity.CommandSetLocal:
		return r.debugger.SetLocal(ctx, req)

	case entity.CommandSetGlobal:
		return r.debugger.SetGlobal(ctx, req)

	// Process and topology control.
	case entity.CommandKillProcess:
		return r.debugger.KillProcess(ctx, req)

	case entity.CommandSendMessage:
		return r.debugger.SendMessage(ctx, req)

	case entity.CommandGetMailbox:
		return r.debugger.GetMailbox(ctx, req)

	case entity.CommandSpawnProcess:
		return r.debugger.SpawnProcess(ctx, req)

	case entity.CommandSpawnLinkedProcess:
		return r.debugger.SpawnLinkedProcess(ctx, req)

	case entity.CommandSpawnMonitoredProcess:
		return r.debugger.SpawnMonitoredProcess(ctx, req)

	case entity.CommandLinkProcesses:
		return r.debugger.LinkProcesses(ctx, req)

	case entity.CommandUnlinkProcesses:
		return r.debugger.UnlinkProcesses(ctx, req)

	case entity.CommandMonitorProcess:
		return r.debugger.MonitorProcess(ctx, req)

	case entity.CommandDemonitorProcess:
		return r.debugger.DemonitorProcess(ctx, req)

	case entity.CommandSetTrapExit:
		return r.debugger.SetTrapExit(ctx, req)

	case entity.CommandExitProcess:
		return r.debugger.ExitProcess(ctx, req)

	case entity.CommandRegisterProcess:
		return r.debugger.RegisterProcess(ctx, req)

	case entity.CommandWhereisProcess:
		return r.debugger.WhereisProcess(ctx, req)

	case entity.CommandGetProcessLinks:
		return r.debugger.GetProcessLinks(ctx, req)

	case entity.CommandGetProcessMonitors:
		return r.debugger.GetProcessMonitors(ctx, req)

	// Supervision.
	case entity.CommandCreateSupervisor:
		return r.debugger.CreateSupervisor(ctx, req)

	case entity.CommandAddChild:
		return r.debugger.AddChild(ctx, req)

	case entity.CommandListSupervisors:
		return r.debugger.ListSupervisors(ctx, req)

	case entity.CommandGetSupervisorInfo:
		return r.debugger.GetSupervisorInfo(ctx, req)

	case entity.CommandGetSupervisorChildren:
		return r.debugger.GetSupervisorChildren(ctx, req)

	case entity.CommandRemoveChild:
		return r.debugger.RemoveChild(ctx, req)

	case entity.CommandRestartChild:
		return r.debugger.RestartChild(ctx, req)

	// Configuration.
	case entity.CommandSetConfiguration:
		return r.debugger.SetConfiguration(ctx, req)

	default:
		return nil, errors.Errorf(errors.CodeUnknownCommand, "unknown command %q", req.Command)
	}
}

func (r *router) UUID() uuid.UUID {
	return r.uuid
}
